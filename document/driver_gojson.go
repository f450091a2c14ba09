package document

import (
	"bytes"
	"io"
	"strconv"

	"github.com/cockroachdb/errors"
	j "github.com/goccy/go-json"
)

type goJSONDriver struct{}

func (goJSONDriver) Name() string { return "go-json" }

func (goJSONDriver) Parse(data []byte) (*Value, error) {
	src := newGoJSONSource(bytes.NewReader(data))
	v, err := Build(src)
	if err != nil {
		return nil, err
	}
	if _, err := src.dec.Token(); err != io.EOF {
		return nil, errors.Wrap(ErrSyntax, "trailing data after value")
	}
	return v, nil
}

// ---- TokenSource implementation using go-json Decoder ----

type containerKind int

const (
	containerObject containerKind = iota
	containerArray
)

type frame struct {
	kind         containerKind
	expectingKey bool
}

type goJSONSource struct {
	dec   *j.Decoder
	stack []frame
}

func newGoJSONSource(r io.Reader) *goJSONSource {
	dec := j.NewDecoder(r)
	dec.UseNumber()
	return &goJSONSource{dec: dec}
}

// valueDone flips the enclosing object back to expecting a key.
func (s *goJSONSource) valueDone() {
	if n := len(s.stack); n > 0 {
		top := &s.stack[n-1]
		if top.kind == containerObject && !top.expectingKey {
			top.expectingKey = true
		}
	}
}

func (s *goJSONSource) NextToken() (Token, error) {
	tok, err := s.dec.Token()
	if err != nil {
		return Token{}, err
	}
	switch v := tok.(type) {
	case j.Delim:
		switch v {
		case '{':
			s.stack = append(s.stack, frame{kind: containerObject, expectingKey: true})
			return Token{Kind: TokenBeginObject}, nil
		case '[':
			s.stack = append(s.stack, frame{kind: containerArray})
			return Token{Kind: TokenBeginArray}, nil
		case '}', ']':
			if n := len(s.stack); n > 0 {
				s.stack = s.stack[:n-1]
			}
			s.valueDone()
			if v == '}' {
				return Token{Kind: TokenEndObject}, nil
			}
			return Token{Kind: TokenEndArray}, nil
		}
	case string:
		if n := len(s.stack); n > 0 {
			top := &s.stack[n-1]
			if top.kind == containerObject && top.expectingKey {
				top.expectingKey = false
				return Token{Kind: TokenKey, Str: v}, nil
			}
		}
		s.valueDone()
		return Token{Kind: TokenString, Str: v}, nil
	case bool:
		s.valueDone()
		return Token{Kind: TokenBool, Bool: v}, nil
	case j.Number:
		s.valueDone()
		return Token{Kind: TokenNumber, Str: string(v)}, nil
	case float64:
		s.valueDone()
		return Token{Kind: TokenNumber, Str: strconv.FormatFloat(v, 'g', -1, 64)}, nil
	}
	s.valueDone()
	return Token{Kind: TokenNull}, nil
}
