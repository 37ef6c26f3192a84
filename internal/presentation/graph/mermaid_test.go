package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/aniame/internal/presentation/graph"
	"github.com/aretw0/aniame/pkg/schema"
)

func dictionary() schema.Dictionary {
	return schema.Dictionary{
		"person": schema.Object(
			schema.Prop("pets", schema.Array(schema.Ref("pet"))),
			schema.Prop("friend", schema.Ref("person")),
		),
		"pet":       schema.Object(schema.Prop("race", schema.Ref("race-name"))),
		"race-name": schema.String(),
		"tags":      schema.Array(schema.String()),
		"alias":     schema.Ref("pet"),
	}
}

func TestGenerateMermaid(t *testing.T) {
	tests := []struct {
		name     string
		overlay  *graph.Overlay
		contains []string
		excludes []string
	}{
		{
			name: "Shapes",
			contains: []string{
				`person["person"]`,
				`tags[/"tags"/]`,
				`alias[["alias"]]`,
				`race_name(("race-name"))`,
			},
		},
		{
			name: "Edges",
			contains: []string{
				`person -- "/pets/*" --> pet`,
				`person -. "/friend" .-> person`,
				`pet -- "/race" --> race_name`,
				`alias -- "/" --> pet`,
			},
			excludes: []string{"classDef"},
		},
		{
			name:    "Overlay",
			overlay: &graph.Overlay{Focus: "pet", Reachable: true},
			contains: []string{
				"class pet current;",
				"class race_name reachable;",
			},
			excludes: []string{"class person reachable;"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := graph.GenerateMermaid(dictionary(), tt.overlay)
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("GenerateMermaid() = \n%v\nWant substring: %v", got, want)
				}
			}
			for _, unwanted := range tt.excludes {
				if strings.Contains(got, unwanted) {
					t.Errorf("GenerateMermaid() = \n%v\nUnexpected substring: %v", got, unwanted)
				}
			}
		})
	}
}

func TestReachable(t *testing.T) {
	got := graph.Reachable(dictionary(), "person")
	want := []string{"person", "pet", "race-name"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("Reachable() = %v, want %v", got, want)
	}
	if graph.Reachable(dictionary(), "ghost") != nil {
		t.Error("Reachable() of an unknown schema should be nil")
	}
}
