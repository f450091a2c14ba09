//go:build !sonic

// Package sonic provides a document.Driver backed by bytedance/sonic. Build
// with -tags sonic to enable it; otherwise Driver falls back to go-json.
package sonic

import "github.com/reoring/archival/document"

// Driver returns the go-json driver when the sonic tag is not enabled.
func Driver() document.Driver { return stub{} }

type stub struct{}

func (stub) Parse(data []byte) (*document.Value, error) { return document.DefaultDriver().Parse(data) }
func (stub) Name() string                               { return "go-json (sonic stub)" }
