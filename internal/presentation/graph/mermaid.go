package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/aniame/pkg/jsonpath"
	"github.com/aretw0/aniame/pkg/schema"
)

// Overlay highlights part of the dictionary.
type Overlay struct {
	// Focus is drawn as the current schema.
	Focus string
	// Reachable marks the schemas Focus refers to, directly or not.
	Reachable bool
}

// Edge is one ref descriptor of a schema.
type Edge struct {
	From    string
	To      string
	Pointer string // schema-space location of the ref
}

// Edges lists the refs of every schema in name order, then pre-order.
func Edges(dict schema.Dictionary) []Edge {
	var edges []Edge
	for _, name := range dict.Names() {
		collectRefs(dict[name], jsonpath.Root(), func(at jsonpath.Path, ref string) {
			edges = append(edges, Edge{From: name, To: ref, Pointer: at.Pointer()})
		})
	}
	return edges
}

func collectRefs(d schema.Descriptor, at jsonpath.Path, emit func(jsonpath.Path, string)) {
	switch v := d.(type) {
	case *schema.RefType:
		emit(at, v.Ref)
	case *schema.ArrayType:
		collectRefs(v.Items, at.Any(), emit)
	case *schema.ObjectType:
		for _, name := range v.PropertyNames() {
			child, _ := v.Property(name)
			collectRefs(child, at.Key(name), emit)
		}
	}
}

// GenerateMermaid produces a Mermaid flowchart of the dictionary.
// Each schema is a node shaped by its root kind:
// - Object: [Rectangle]
// - Array: [/Parallelogram/]
// - Ref (alias): [[Subroutine]]
// - Primitive: ((Circle))
// Each ref is an edge labelled with its location. Self references are drawn
// dotted.
func GenerateMermaid(dict schema.Dictionary, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for _, name := range dict.Names() {
		opener, closer := "((", "))"
		switch dict[name].Kind() {
		case schema.KindObject:
			opener, closer = "[", "]"
		case schema.KindArray:
			opener, closer = "[/", "/]"
		case schema.KindRef:
			opener, closer = "[[", "]]"
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", sanitizeMermaidID(name), opener, name, closer)
	}

	for _, e := range Edges(dict) {
		label := e.Pointer
		if label == "" {
			label = "/"
		}
		label = strings.ReplaceAll(label, "\"", "'")
		arrow := fmt.Sprintf("-- \"%s\" -->", label)
		if e.From == e.To {
			arrow = fmt.Sprintf("-. \"%s\" .->", label)
		}
		fmt.Fprintf(&sb, "    %s %s %s\n", sanitizeMermaidID(e.From), arrow, sanitizeMermaidID(e.To))
	}

	if overlay != nil && overlay.Focus != "" {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for contrast regardless of theme.
		sb.WriteString("    classDef reachable fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		if overlay.Reachable {
			for _, name := range Reachable(dict, overlay.Focus) {
				if name != overlay.Focus {
					fmt.Fprintf(&sb, "    class %s reachable;\n", sanitizeMermaidID(name))
				}
			}
		}
		fmt.Fprintf(&sb, "    class %s current;\n", sanitizeMermaidID(overlay.Focus))
	}

	return sb.String()
}

// Reachable returns from and every schema it refers to, transitively, in
// breadth-first order. Names missing from dict are skipped.
func Reachable(dict schema.Dictionary, from string) []string {
	if _, ok := dict.Lookup(from); !ok {
		return nil
	}
	seen := map[string]bool{from: true}
	queue := []string{from}
	for i := 0; i < len(queue); i++ {
		collectRefs(dict[queue[i]], jsonpath.Root(), func(_ jsonpath.Path, ref string) {
			if _, ok := dict.Lookup(ref); ok && !seen[ref] {
				seen[ref] = true
				queue = append(queue, ref)
			}
		})
	}
	return queue
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
