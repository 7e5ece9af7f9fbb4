// Package codec reads and writes lens Data as JSON or YAML. Decoding keeps
// the key order of the source document.
package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/obrok/lens"
	lenserr "github.com/obrok/lens/errors"
	"gopkg.in/yaml.v3"
)

// Codec encodes and decodes Data documents.
type Codec interface {
	Encode(v any) ([]byte, error)
	Decode(data []byte) (any, error)
}

// JSONCodec encodes Data as JSON.
type JSONCodec struct {
	Pretty bool
	Indent string
}

// NewJSONCodec creates a new JSON codec with default options.
func NewJSONCodec() *JSONCodec {
	return &JSONCodec{Indent: "  "}
}

// Encode encodes value to JSON. Objects keep their key order.
func (c *JSONCodec) Encode(v any) ([]byte, error) {
	if c.Pretty {
		return json.MarshalIndent(v, "", c.Indent)
	}
	return json.Marshal(v)
}

// Decode decodes a JSON document. JSON is read through the YAML parser so
// objects come back as *lens.Object in document order.
func (c *JSONCodec) Decode(data []byte) (any, error) {
	return Decode(data)
}

// WithPretty enables pretty printing.
func (c *JSONCodec) WithPretty() *JSONCodec {
	c.Pretty = true
	return c
}

// WithIndent sets the indentation string.
func (c *JSONCodec) WithIndent(indent string) *JSONCodec {
	c.Indent = indent
	return c
}

// YAMLCodec encodes Data as YAML.
type YAMLCodec struct {
	Indent int
}

// NewYAMLCodec creates a new YAML codec.
func NewYAMLCodec() *YAMLCodec {
	return &YAMLCodec{Indent: 2}
}

// Encode encodes value to YAML.
func (c *YAMLCodec) Encode(v any) ([]byte, error) {
	node, err := toNode(v)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(c.Indent)
	if err := encoder.Encode(node); err != nil {
		return nil, err
	}
	if err := encoder.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode decodes a YAML document.
func (c *YAMLCodec) Decode(data []byte) (any, error) {
	return Decode(data)
}

// WithIndent sets the indentation level.
func (c *YAMLCodec) WithIndent(indent int) *YAMLCodec {
	c.Indent = indent
	return c
}

// ForPath picks a codec from a file extension: YAML for .yaml and .yml,
// JSON otherwise.
func ForPath(path string) Codec {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return NewYAMLCodec()
	default:
		return NewJSONCodec()
	}
}

// ForName returns the codec named "json" or "yaml".
func ForName(name string) (Codec, error) {
	switch strings.ToLower(name) {
	case "json":
		return NewJSONCodec(), nil
	case "yaml", "yml":
		return NewYAMLCodec(), nil
	default:
		return nil, fmt.Errorf("unknown format %q", name)
	}
}

// Decode parses a YAML or JSON document into Data: mappings become
// *lens.Object, sequences []any and scalars their native Go values. An empty
// document decodes to nil.
func Decode(data []byte) (any, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, lenserr.Wrap(err, "failed to parse document")
	}
	return fromNode(&doc)
}

func fromNode(n *yaml.Node) (any, error) {
	switch n.Kind {
	case 0:
		return nil, nil
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return fromNode(n.Content[0])
	case yaml.AliasNode:
		return fromNode(n.Alias)
	case yaml.SequenceNode:
		out := make([]any, 0, len(n.Content))
		for _, child := range n.Content {
			v, err := fromNode(child)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case yaml.MappingNode:
		obj := lens.NewObject()
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i]
			if key.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: mapping key must be a scalar", key.Line)
			}
			v, err := fromNode(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			obj.Set(key.Value, v)
		}
		return obj, nil
	default:
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return v, nil
	}
}

// toNode builds a YAML node tree so that object key order survives encoding.
func toNode(v any) (*yaml.Node, error) {
	switch lens.ShapeOf(v) {
	case lens.ShapeAssoc:
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		pairs, err := lens.ToList(lens.All(), v)
		if err != nil {
			return nil, err
		}
		for _, p := range pairs {
			entry := p.(lens.Tuple)
			value, err := toNode(entry[1])
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: entry[0].(string)},
				value)
		}
		return node, nil
	case lens.ShapeSequence, lens.ShapeTuple, lens.ShapeSet:
		items, err := lens.ToList(lens.All(), v)
		if err != nil {
			return nil, err
		}
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range items {
			child, err := toNode(item)
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, child)
		}
		return node, nil
	default:
		node := &yaml.Node{}
		if err := node.Encode(v); err != nil {
			return nil, err
		}
		return node, nil
	}
}

// EncodeJSON is a convenience function for compact JSON encoding.
func EncodeJSON(v any) ([]byte, error) {
	return NewJSONCodec().Encode(v)
}

// EncodeYAML is a convenience function for YAML encoding.
func EncodeYAML(v any) ([]byte, error) {
	return NewYAMLCodec().Encode(v)
}
