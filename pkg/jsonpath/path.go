package jsonpath

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-openapi/jsonpointer"
)

// Path is an ordered sequence of segments locating a value within a tree.
//
// Paths are values: Append and the helpers built on it always return a path
// with its own segment storage, so two branches of a recursive walk can grow
// from a shared prefix without seeing each other's segments.
type Path struct {
	segments []Segment
}

// Root returns the empty path.
func Root() Path { return Path{} }

// Of builds a path from plain values: strings become keys, ints become
// indexes and nil becomes the wildcard. It panics on any other type.
func Of(segments ...any) Path {
	p := Path{segments: make([]Segment, 0, len(segments))}
	for _, v := range segments {
		s, err := segmentOf(v)
		if err != nil {
			panic(err)
		}
		p.segments = append(p.segments, s)
	}
	return p
}

// Append returns a new path with s added at the end.
func (p Path) Append(s Segment) Path {
	out := make([]Segment, len(p.segments), len(p.segments)+1)
	copy(out, p.segments)
	return Path{segments: append(out, s)}
}

// Key appends a property-name segment.
func (p Path) Key(name string) Path { return p.Append(Key(name)) }

// Index appends an array-index segment.
func (p Path) Index(i int) Path { return p.Append(Index(i)) }

// Any appends the wildcard segment.
func (p Path) Any() Path { return p.Append(Wildcard) }

// Len returns the number of segments.
func (p Path) Len() int { return len(p.segments) }

// IsRoot reports whether the path has no segments.
func (p Path) IsRoot() bool { return len(p.segments) == 0 }

// Segments returns a copy of the segments.
func (p Path) Segments() []Segment {
	out := make([]Segment, len(p.segments))
	copy(out, p.segments)
	return out
}

// Values returns the segments as plain values (see Segment.Value).
func (p Path) Values() []any {
	out := make([]any, len(p.segments))
	for i, s := range p.segments {
		out[i] = s.Value()
	}
	return out
}

// Equal reports whether both paths have the same segments.
func (p Path) Equal(other Path) bool {
	if len(p.segments) != len(other.segments) {
		return false
	}
	for i := range p.segments {
		if p.segments[i] != other.segments[i] {
			return false
		}
	}
	return true
}

// Pointer renders the path as an RFC 6901 JSON pointer. The root path is "".
// The wildcard renders as "*".
func (p Path) Pointer() string {
	if len(p.segments) == 0 {
		return ""
	}
	var b strings.Builder
	for _, s := range p.segments {
		b.WriteByte('/')
		b.WriteString(s.String())
	}
	return b.String()
}

func (p Path) String() string { return p.Pointer() }

// ParsePointer parses an RFC 6901 pointer. Canonical decimal tokens become
// index segments and "*" becomes the wildcard; everything else is a key.
func ParsePointer(s string) (Path, error) {
	ptr, err := jsonpointer.New(s)
	if err != nil {
		return Path{}, fmt.Errorf("invalid pointer %q: %w", s, err)
	}
	tokens := ptr.DecodedTokens()
	p := Path{segments: make([]Segment, 0, len(tokens))}
	for _, tok := range tokens {
		switch {
		case tok == "*":
			p.segments = append(p.segments, Wildcard)
		case isIndexToken(tok):
			i, err := strconv.Atoi(tok)
			if err != nil {
				return Path{}, fmt.Errorf("invalid index %q: %w", tok, err)
			}
			p.segments = append(p.segments, Index(i))
		default:
			p.segments = append(p.segments, Key(tok))
		}
	}
	return p, nil
}

// MarshalJSON encodes the path as an array: keys as strings, indexes as
// numbers and the wildcard as null.
func (p Path) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.Values())
}

// UnmarshalJSON decodes the array form produced by MarshalJSON.
func (p *Path) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw []any
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	segments := make([]Segment, 0, len(raw))
	for _, v := range raw {
		switch x := v.(type) {
		case string:
			segments = append(segments, Key(x))
		case nil:
			segments = append(segments, Wildcard)
		case json.Number:
			i, err := x.Int64()
			if err != nil || i < 0 {
				return fmt.Errorf("jsonpath: invalid index %s", x)
			}
			segments = append(segments, Index(int(i)))
		default:
			return fmt.Errorf("jsonpath: unsupported segment %v", v)
		}
	}
	p.segments = segments
	return nil
}
