package document

import (
	"io"
	"sync"

	"github.com/cockroachdb/errors"
)

// Driver parses JSON text into a Value. The default is backed by goccy/go-json
// and may be swapped with SetDriver (see the jsoniter and sonic packages).
type Driver interface {
	Parse(data []byte) (*Value, error)
	Name() string
}

var (
	driverMu      sync.RWMutex
	currentDriver Driver = goJSONDriver{}
)

// SetDriver replaces the global driver; nil values are ignored.
func SetDriver(d Driver) {
	if d == nil {
		return
	}
	driverMu.Lock()
	currentDriver = d
	driverMu.Unlock()
}

// UseDefaultDriver restores the go-json driver.
func UseDefaultDriver() {
	driverMu.Lock()
	currentDriver = goJSONDriver{}
	driverMu.Unlock()
}

// CurrentDriver returns the driver Parse uses.
func CurrentDriver() Driver {
	driverMu.RLock()
	d := currentDriver
	driverMu.RUnlock()
	return d
}

// DefaultDriver returns the go-json driver regardless of SetDriver.
func DefaultDriver() Driver { return goJSONDriver{} }

// ErrSyntax is wrapped by parse failures.
var ErrSyntax = errors.New("document: invalid JSON")

// Parse parses a single JSON value with the current driver.
func Parse(data []byte) (*Value, error) {
	return CurrentDriver().Parse(data)
}

// ParseReader reads r to the end and parses it.
func ParseReader(r io.Reader) (*Value, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "document: read")
	}
	return Parse(data)
}

// MustParse is Parse for literals in tests and examples.
func MustParse(s string) *Value {
	v, err := Parse([]byte(s))
	if err != nil {
		panic(err)
	}
	return v
}

// TokenKind enumerates the events a TokenSource produces.
type TokenKind int

const (
	TokenBeginObject TokenKind = iota
	TokenEndObject
	TokenBeginArray
	TokenEndArray
	TokenKey
	TokenString
	TokenNumber
	TokenBool
	TokenNull
)

// Token is one parse event. Str holds keys, strings and number literals.
type Token struct {
	Kind TokenKind
	Str  string
	Bool bool
}

// TokenSource yields tokens until io.EOF.
type TokenSource interface {
	NextToken() (Token, error)
}

// Build assembles the first value produced by src. Drivers built on streaming
// tokenizers share it.
func Build(src TokenSource) (*Value, error) {
	var (
		stack []*Value
		keys  []string
		root  *Value
	)
	push := func(v *Value) {
		if len(stack) == 0 {
			root = v
			return
		}
		top := stack[len(stack)-1]
		if top.IsArray() {
			top.Append(v)
			return
		}
		top.Set(keys[len(keys)-1], v)
	}
	for {
		tok, err := src.NextToken()
		if err == io.EOF {
			if root == nil || len(stack) > 0 {
				return nil, errors.Wrap(ErrSyntax, "unexpected end of input")
			}
			return root, nil
		}
		if err != nil {
			return nil, errors.Mark(errors.Wrap(err, "document: parse"), ErrSyntax)
		}
		switch tok.Kind {
		case TokenBeginObject:
			v := NewObject()
			push(v)
			stack = append(stack, v)
			keys = append(keys, "")
		case TokenBeginArray:
			v := NewArray()
			push(v)
			stack = append(stack, v)
			keys = append(keys, "")
		case TokenEndObject, TokenEndArray:
			if len(stack) == 0 {
				return nil, errors.Wrap(ErrSyntax, "unbalanced close")
			}
			stack = stack[:len(stack)-1]
			keys = keys[:len(keys)-1]
		case TokenKey:
			if len(keys) == 0 {
				return nil, errors.Wrap(ErrSyntax, "key outside object")
			}
			keys[len(keys)-1] = tok.Str
		case TokenString:
			push(NewString(tok.Str))
		case TokenNumber:
			push(NewNumber(tok.Str))
		case TokenBool:
			push(NewBool(tok.Bool))
		case TokenNull:
			push(New())
		}
		if len(stack) == 0 && root != nil {
			return root, nil
		}
	}
}
