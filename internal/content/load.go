package content

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultDocument []byte

// Default returns the content compiled into the binary.
func Default() (*Document, error) {
	doc, err := Parse(bytes.NewReader(defaultDocument))
	if err != nil {
		return nil, fmt.Errorf("parsing embedded content: %w", err)
	}
	return doc, nil
}

// Load reads a content document from path. An empty path selects Default.
// The document is validated before it is returned.
func Load(path string) (*Document, error) {
	if path == "" {
		doc, err := Default()
		if err != nil {
			return nil, err
		}
		return doc, Validate(doc)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening content %s: %w", path, err)
	}
	defer f.Close()

	doc, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing content %s: %w", path, err)
	}

	if err := Validate(doc); err != nil {
		return nil, fmt.Errorf("content %s: %w", path, err)
	}

	return doc, nil
}

// Parse decodes a YAML document. Unknown keys are rejected so typos in the
// content file surface at startup.
func Parse(r io.Reader) (*Document, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty document")
		}
		return nil, err
	}

	return &doc, nil
}

// Marshal encodes a document back to YAML, as written by the export command.
func Marshal(doc *Document) ([]byte, error) {
	var buf bytes.Buffer

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)

	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
