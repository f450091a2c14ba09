package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/reoring/archival/backend/jsonbackend"
	"github.com/reoring/archival/backend/msgpackbackend"
	"github.com/reoring/archival/document"
	"github.com/reoring/archival/examples/scene"
	"github.com/reoring/archival/internal/config"
)

type format int

const (
	formatUnknown format = iota
	formatJSON
	formatYAML
	formatMsgpack
)

func (f format) String() string {
	switch f {
	case formatJSON:
		return "json"
	case formatYAML:
		return "yaml"
	case formatMsgpack:
		return "msgpack"
	}
	return "unknown"
}

func formatOf(path string) (format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return formatJSON, nil
	case ".yaml", ".yml":
		return formatYAML, nil
	case ".msgpack", ".mp":
		return formatMsgpack, nil
	}
	return formatUnknown, errors.Newf("%s: unknown format, want .json, .yaml or .msgpack", path)
}

// readDocument parses a JSON or YAML file into a document tree.
func readDocument(path string, f format) (*document.Value, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read")
	}
	var doc *document.Value
	switch f {
	case formatJSON:
		doc, err = document.Parse(data)
	case formatYAML:
		doc, err = document.FromYAML(data)
	default:
		return nil, errors.Newf("%s: %s has no document form", path, f)
	}
	return doc, errors.Wrapf(err, "parse %s", path)
}

func writeDocument(cfg *config.Config, path string, f format, doc *document.Value) error {
	var (
		data []byte
		err  error
	)
	switch f {
	case formatJSON:
		if cfg.JSON.Indent == "" {
			data, err = document.Marshal(doc)
		} else {
			data, err = document.MarshalIndent(doc, "", cfg.JSON.Indent)
		}
	case formatYAML:
		data, err = document.ToYAML(doc)
	default:
		return errors.Newf("%s: %s has no document form", path, f)
	}
	if err != nil {
		return errors.Wrapf(err, "encode %s", path)
	}
	return writeFile(path, data)
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(err, "creating output dir")
		}
	}
	return errors.Wrap(os.WriteFile(path, data, 0o644), "write")
}

// convertFile rewrites a JSON or YAML document in the other syntax, keeping
// key order.
func convertFile(cfg *config.Config, in, out string) error {
	fin, err := formatOf(in)
	if err != nil {
		return err
	}
	fout, err := formatOf(out)
	if err != nil {
		return err
	}
	doc, err := readDocument(in, fin)
	if err != nil {
		return err
	}
	return writeDocument(cfg, out, fout, doc)
}

// loadScene decodes the scene at path. A scene with fields that could not be
// read is an error.
func loadScene(e env, path string) (*scene.Scene, error) {
	f, err := formatOf(path)
	if err != nil {
		return nil, err
	}
	s := &scene.Scene{}
	if f == formatMsgpack {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(err, "read")
		}
		return s, errors.Wrapf(msgpackbackend.Unmarshal(data, s), "decode %s", path)
	}
	doc, err := readDocument(path, f)
	if err != nil {
		return nil, err
	}
	if !jsonbackend.Decode(doc, s, e.cfg.JSONCodec(e.log).Options...) {
		return s, errors.Newf("decode %s: some fields could not be read", path)
	}
	return s, nil
}

func storeScene(e env, path string, s *scene.Scene) error {
	f, err := formatOf(path)
	if err != nil {
		return err
	}
	if f == formatMsgpack {
		data, err := msgpackbackend.Marshal(s)
		if err != nil {
			return errors.Wrapf(err, "encode %s", path)
		}
		return writeFile(path, data)
	}
	doc, ok := jsonbackend.Encode(s, e.cfg.JSONCodec(e.log).Options...)
	if !ok {
		return errors.Newf("encode %s: some fields could not be written", path)
	}
	return writeDocument(e.cfg, path, f, doc)
}

func saveFile(e env, in, out string, sample bool) error {
	s := scene.Sample()
	if !sample {
		var err error
		if s, err = loadScene(e, in); err != nil {
			return err
		}
	}
	return storeScene(e, out, s)
}
