package tree

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ErrDuplicateKey is returned by Decode when an object repeats a property name.
var ErrDuplicateKey = errors.New("duplicate key")

// Decode parses JSON or YAML text into the value model.
// Objects become *OrderedMap so that document key order survives decoding;
// an empty document decodes to nil. Integral numbers decode to int and the
// rest to float64, whichever syntax the document uses.
//
// Text starting with '{' or '[' is read as JSON first, since YAML rejects
// some JSON escapes such as "\/". Flow-style YAML that is not JSON falls
// back to the YAML parser.
func Decode(data []byte) (any, error) {
	if trimmed := bytes.TrimLeft(data, " \t\r\n"); len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		v, err := decodeJSON(trimmed)
		if err == nil || errors.Is(err, ErrDuplicateKey) {
			return v, err
		}
		if yv, yerr := decodeYAML(data); yerr == nil {
			return yv, nil
		}
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	return decodeYAML(data)
}

func decodeYAML(data []byte) (any, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	if doc.Kind == 0 {
		return nil, nil
	}
	return fromNode(&doc)
}

func fromNode(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return fromNode(n.Content[0])

	case yaml.AliasNode:
		return fromNode(n.Alias)

	case yaml.SequenceNode:
		out := make([]any, 0, len(n.Content))
		for _, item := range n.Content {
			v, err := fromNode(item)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil

	case yaml.MappingNode:
		m := NewOrderedMap()
		for i := 0; i+1 < len(n.Content); i += 2 {
			keyNode, valueNode := n.Content[i], n.Content[i+1]
			if keyNode.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: object keys must be scalars", keyNode.Line)
			}
			key := keyNode.Value
			if _, exists := m.Get(key); exists {
				return nil, fmt.Errorf("line %d: %w %q", keyNode.Line, ErrDuplicateKey, key)
			}
			v, err := fromNode(valueNode)
			if err != nil {
				return nil, err
			}
			m.Set(key, v)
		}
		return m, nil

	case yaml.ScalarNode:
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return v, nil
	}
	return nil, fmt.Errorf("line %d: unsupported node kind %v", n.Line, n.Kind)
}

func decodeJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := jsonValue(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		if err == nil {
			err = fmt.Errorf("offset %d: trailing data after document", dec.InputOffset())
		}
		return nil, err
	}
	return v, nil
}

func jsonValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			m := NewOrderedMap()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key := keyTok.(string)
				if _, exists := m.Get(key); exists {
					return nil, fmt.Errorf("offset %d: %w %q", dec.InputOffset(), ErrDuplicateKey, key)
				}
				v, err := jsonValue(dec)
				if err != nil {
					return nil, err
				}
				m.Set(key, v)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return m, nil
		case '[':
			out := []any{}
			for dec.More() {
				v, err := jsonValue(dec)
				if err != nil {
					return nil, err
				}
				out = append(out, v)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return out, nil
		}
		return nil, fmt.Errorf("offset %d: unexpected %q", dec.InputOffset(), t)
	case json.Number:
		return number(t)
	default:
		return t, nil
	}
}

// number mirrors the YAML scalar rules: integers that fit become int.
func number(n json.Number) (any, error) {
	if i, err := strconv.ParseInt(string(n), 10, 0); err == nil {
		return int(i), nil
	}
	f, err := n.Float64()
	if err != nil {
		return nil, fmt.Errorf("number %s: %w", n, err)
	}
	return f, nil
}
