package tui

import (
	"fmt"
	"strings"

	"github.com/muesli/termenv"
)

var bannerLines = []struct {
	text  string
	color string
}{
	{`              _                      `, "#818cf8"},
	{`   __ _ _ __ (_) __ _ _ __ ___   ___ `, "#a78bfa"},
	{`  / _' | '_ \| |/ _' | '_ ' _ \ / _ \`, "#c084fc"},
	{` | (_| | | | | | (_| | | | | | |  __/`, "#e879f9"},
	{`  \__,_|_| |_|_|\__,_|_| |_| |_|\___|`, "#f472b6"},
}

// PrintBanner writes the ASCII art banner followed by the version.
func (r *Renderer) PrintBanner(version string) {
	fmt.Fprintln(r.out)
	for _, line := range bannerLines {
		fmt.Fprintln(r.out, r.style(line.text).Foreground(r.profile.Color(line.color)))
	}
	if v := strings.TrimSpace(version); v != "" {
		fmt.Fprintln(r.out, r.style("  v"+v).Faint())
	}
	fmt.Fprintln(r.out)
}

func (r *Renderer) style(s string) termenv.Style {
	return r.output.String(s)
}
