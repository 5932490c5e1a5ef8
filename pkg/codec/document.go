package codec

import (
	"bytes"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/questcanvas/pkg/errors"
)

// ReservedKey holds deprecated editor metadata. It is skipped on parse and
// never written on generate.
const ReservedKey = "__meta__"

// Entry is one top-level key of a document and its body.
type Entry struct {
	Key  string
	Body any
}

// Document is an ordered quest document. Decoded bodies are the generic values
// produced by YAML decoding; encoded bodies are [Fields].
type Document []Entry

// Lookup returns the body stored under key.
func (d Document) Lookup(key string) (any, bool) {
	for _, e := range d {
		if e.Key == key {
			return e.Body, true
		}
	}
	return nil, false
}

// Keys returns the top-level keys in document order.
func (d Document) Keys() []string {
	keys := make([]string, len(d))
	for i, e := range d {
		keys[i] = e.Key
	}
	return keys
}

// Field is a single key/value pair of a node body.
type Field struct {
	Key   string
	Value any
}

// Fields is a mapping that keeps its insertion order when written.
type Fields []Field

// Has reports whether key was already written.
func (f Fields) Has(key string) bool {
	for _, fd := range f {
		if fd.Key == key {
			return true
		}
	}
	return false
}

// MarshalYAML implements yaml.Marshaler.
func (f Fields) MarshalYAML() (any, error) {
	n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, fd := range f {
		k, v, err := pair(fd.Key, fd.Value)
		if err != nil {
			return nil, err
		}
		n.Content = append(n.Content, k, v)
	}
	return n, nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Document) MarshalYAML() (any, error) {
	n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, e := range d {
		k, v, err := pair(e.Key, e.Body)
		if err != nil {
			return nil, err
		}
		n.Content = append(n.Content, k, v)
	}
	return n, nil
}

func pair(key string, value any) (*yaml.Node, *yaml.Node, error) {
	var k, v yaml.Node
	if err := k.Encode(key); err != nil {
		return nil, nil, err
	}
	if err := v.Encode(value); err != nil {
		return nil, nil, err
	}
	return &k, &v, nil
}

// Decode reads a YAML document, keeping top-level key order. Empty input is an
// empty document. A root that is not a mapping, a non-scalar key, or a repeated
// key is reported as ErrCodeInvalidDocument.
func Decode(text []byte) (Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(text, &root); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "malformed YAML")
	}
	if root.Kind == 0 || len(root.Content) == 0 {
		return Document{}, nil
	}

	top := root.Content[0]
	if top.Kind == yaml.ScalarNode && top.Tag == "!!null" {
		return Document{}, nil
	}
	if top.Kind != yaml.MappingNode {
		return nil, errors.New(errors.ErrCodeInvalidDocument, "line %d: top level must be a mapping", top.Line)
	}

	doc := make(Document, 0, len(top.Content)/2)
	seen := make(map[string]bool, len(top.Content)/2)
	for i := 0; i+1 < len(top.Content); i += 2 {
		k, v := top.Content[i], top.Content[i+1]
		if k.Kind != yaml.ScalarNode {
			return nil, errors.New(errors.ErrCodeInvalidDocument, "line %d: node key must be a scalar", k.Line)
		}
		if seen[k.Value] {
			return nil, errors.New(errors.ErrCodeInvalidDocument, "line %d: duplicate node key %q", k.Line, k.Value)
		}
		seen[k.Value] = true

		var body any
		if err := v.Decode(&body); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "node %q", k.Value)
		}
		doc = append(doc, Entry{Key: k.Value, Body: body})
	}
	return doc, nil
}

// Marshal writes the document as YAML with two-space indentation. An empty
// document produces no output.
func Marshal(doc Document) ([]byte, error) {
	if len(doc) == 0 {
		return []byte{}, nil
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode document")
	}
	if err := enc.Close(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode document")
	}
	return buf.Bytes(), nil
}
