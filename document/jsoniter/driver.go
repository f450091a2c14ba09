// Package jsoniter provides a document.Driver backed by json-iterator.
//
//	document.SetDriver(jsoniter.Driver())
package jsoniter

import (
	"io"

	"github.com/cockroachdb/errors"
	ji "github.com/json-iterator/go"

	"github.com/reoring/archival/document"
)

// Driver returns a document.Driver backed by json-iterator's streaming
// Iterator.
func Driver() document.Driver { return driver{} }

type driver struct{}

func (driver) Name() string { return "json-iterator" }

func (driver) Parse(data []byte) (*document.Value, error) {
	iter := ji.ConfigCompatibleWithStandardLibrary.BorrowIterator(data)
	defer ji.ConfigCompatibleWithStandardLibrary.ReturnIterator(iter)

	// The iterator reports io.EOF once the buffer is drained, which is the
	// expected end state for a complete value.
	v := read(iter)
	if iter.Error != nil && !errors.Is(iter.Error, io.EOF) {
		return nil, errors.Mark(errors.Wrap(iter.Error, "document: parse"), document.ErrSyntax)
	}
	if iter.Error == nil && iter.WhatIsNext() != ji.InvalidValue {
		return nil, errors.Wrap(document.ErrSyntax, "trailing data after value")
	}
	return v, nil
}

func read(iter *ji.Iterator) *document.Value {
	switch iter.WhatIsNext() {
	case ji.ObjectValue:
		obj := document.NewObject()
		iter.ReadMapCB(func(it *ji.Iterator, key string) bool {
			obj.Set(key, read(it))
			return it.Error == nil
		})
		return obj
	case ji.ArrayValue:
		arr := document.NewArray()
		iter.ReadArrayCB(func(it *ji.Iterator) bool {
			arr.Append(read(it))
			return it.Error == nil
		})
		return arr
	case ji.StringValue:
		return document.NewString(iter.ReadString())
	case ji.NumberValue:
		return document.NewNumber(string(iter.ReadNumber()))
	case ji.BoolValue:
		return document.NewBool(iter.ReadBool())
	case ji.NilValue:
		iter.ReadNil()
		return document.New()
	}
	iter.ReportError("read", "unexpected value")
	return document.New()
}
