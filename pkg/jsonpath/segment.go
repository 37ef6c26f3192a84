package jsonpath

import (
	"fmt"
	"strconv"

	"github.com/go-openapi/jsonpointer"
)

// SegmentKind tells which kind of step a Segment takes.
type SegmentKind int

const (
	// KeySegment selects an object property by name.
	KeySegment SegmentKind = iota
	// IndexSegment selects an array element by position.
	IndexSegment
	// WildcardSegment selects every element of an array. It only appears in
	// schema-space paths.
	WildcardSegment
)

// Segment is a single step of a Path.
type Segment struct {
	kind  SegmentKind
	key   string
	index int
}

// Wildcard is the "any index" segment.
var Wildcard = Segment{kind: WildcardSegment}

// Key returns a property-name segment.
func Key(name string) Segment {
	return Segment{kind: KeySegment, key: name}
}

// Index returns an array-index segment. Negative indexes panic.
func Index(i int) Segment {
	if i < 0 {
		panic(fmt.Sprintf("jsonpath: negative index %d", i))
	}
	return Segment{kind: IndexSegment, index: i}
}

// Kind reports whether s is a key, an index or the wildcard.
func (s Segment) Kind() SegmentKind { return s.kind }

// Name returns the property name of a key segment.
func (s Segment) Name() string { return s.key }

// Position returns the index of an index segment.
func (s Segment) Position() int { return s.index }

// Value returns the segment as a plain value: string for keys, int for
// indexes and nil for the wildcard.
func (s Segment) Value() any {
	switch s.kind {
	case KeySegment:
		return s.key
	case IndexSegment:
		return s.index
	default:
		return nil
	}
}

// token is the unescaped lookup token of the segment.
func (s Segment) token() string {
	switch s.kind {
	case KeySegment:
		return s.key
	case IndexSegment:
		return strconv.Itoa(s.index)
	default:
		return "*"
	}
}

// String renders the segment as an escaped JSON pointer token.
func (s Segment) String() string {
	if s.kind == KeySegment {
		return jsonpointer.Escape(s.key)
	}
	return s.token()
}

func segmentOf(v any) (Segment, error) {
	switch x := v.(type) {
	case Segment:
		return x, nil
	case string:
		return Key(x), nil
	case int:
		if x < 0 {
			return Segment{}, fmt.Errorf("jsonpath: negative index %d", x)
		}
		return Index(x), nil
	case nil:
		return Wildcard, nil
	}
	return Segment{}, fmt.Errorf("jsonpath: unsupported segment type %T", v)
}

// isIndexToken reports whether tok is a canonical array index (RFC 6901 §4).
func isIndexToken(tok string) bool {
	if tok == "" || (len(tok) > 1 && tok[0] == '0') {
		return false
	}
	for _, c := range tok {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
