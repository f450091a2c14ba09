package jsonbackend

import (
	"github.com/cockroachdb/errors"

	"github.com/reoring/archival"
	"github.com/reoring/archival/document"
)

// Codec serializes values to JSON text through a Backend.
type Codec struct {
	// Indent, when set, pretty prints with this indent per level.
	Indent  string
	Options []Option
}

var _ archival.Codec = Codec{}

func (c Codec) Marshal(v any) ([]byte, error) {
	doc, ok := Encode(v, c.Options...)
	if !ok {
		return nil, errors.Newf("jsonbackend: %T was not fully serialized", v)
	}
	if c.Indent != "" {
		return document.MarshalIndent(doc, "", c.Indent)
	}
	return document.Marshal(doc)
}

func (c Codec) Unmarshal(data []byte, v any) error {
	doc, err := document.Parse(data)
	if err != nil {
		return err
	}
	if !Decode(doc, v, c.Options...) {
		return errors.Newf("jsonbackend: %T was not fully deserialized", v)
	}
	return nil
}

func (Codec) Name() string { return "json" }
