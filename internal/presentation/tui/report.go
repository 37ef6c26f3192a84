// Package tui renders command line reports.
package tui

import (
	"cmp"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/aretw0/aniame/pkg/indexer"
	"github.com/aretw0/aniame/pkg/validator"
)

// Renderer writes human readable reports. Colors are only emitted when the
// destination is a terminal.
type Renderer struct {
	out     io.Writer
	output  *termenv.Output
	profile termenv.Profile
}

// NewRenderer creates a Renderer for w.
func NewRenderer(w io.Writer, color bool) *Renderer {
	profile := termenv.Ascii
	if color && isTerminal(w) {
		profile = termenv.ColorProfile()
	}
	return &Renderer{
		out:     w,
		output:  termenv.NewOutput(w, termenv.WithProfile(profile)),
		profile: profile,
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func (r *Renderer) ok(s string) string {
	return r.style(s).Foreground(r.profile.Color("#22c55e")).Bold().String()
}

func (r *Renderer) bad(s string) string {
	return r.style(s).Foreground(r.profile.Color("#ef4444")).Bold().String()
}

func (r *Renderer) dim(s string) string {
	return r.style(s).Faint().String()
}

// Outcome prints the result of validating a document against schemaName.
func (r *Renderer) Outcome(schemaName string, out *validator.Outcome) {
	if out.Success() {
		fmt.Fprintf(r.out, "%s document conforms to %q\n", r.ok("✔"), schemaName)
		return
	}
	fmt.Fprintf(r.out, "%s %d error(s) against %q\n", r.bad("✘"), len(out.Errors), schemaName)
	for _, e := range out.Errors {
		where := e.Path.Pointer()
		if where == "" {
			where = "/"
		}
		detail := string(e.Reason)
		switch {
		case e.Expected != "":
			detail += r.dim(" (expected " + string(e.Expected) + ")")
		case e.Ref != "":
			detail += r.dim(" (ref " + e.Ref + ")")
		}
		fmt.Fprintf(r.out, "  %s  %s\n", r.bad(where), detail)
	}
}

// SchemaCheck prints the result of meta-validating one schema. A nil err
// means the schema is well-formed.
func (r *Renderer) SchemaCheck(name string, err error) {
	if err == nil {
		fmt.Fprintf(r.out, "%s %s\n", r.ok("✔"), name)
		return
	}
	fmt.Fprintf(r.out, "%s %s: %v\n", r.bad("✘"), name, err)
}

// Index prints an index result grouped by index name.
func (r *Renderer) Index(schemaName string, result indexer.Result) {
	if len(result) == 0 {
		fmt.Fprintf(r.out, "%s\n", r.dim(schemaName+": no indexed locations"))
		return
	}
	fmt.Fprintf(r.out, "%s\n", r.style(schemaName).Bold())
	for _, index := range result.Names() {
		fmt.Fprintf(r.out, "  %s\n", r.style(index).Underline())
		for _, e := range result[index] {
			where := e.Path.Pointer()
			if where == "" {
				where = "/"
			}
			fmt.Fprintf(r.out, "    %s %s\n", where, r.dim(formatData(e.Data)))
		}
	}
}

func formatData(data map[string]any) string {
	if len(data) == 0 {
		return ""
	}
	keys := slices.SortedFunc(maps.Keys(data), func(a, b string) int {
		return cmp.Or(cmp.Compare(fieldOrder(a), fieldOrder(b)), strings.Compare(a, b))
	})
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%v", k, data[k])
	}
	return strings.Join(parts, " ")
}

// fieldOrder follows the layout of a descriptor document.
func fieldOrder(field string) int {
	switch field {
	case "type":
		return 0
	case "required":
		return 1
	case "indexAs":
		return 2
	case "ref":
		return 3
	}
	return 4
}
