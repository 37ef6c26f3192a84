package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/aniame"
	"github.com/aretw0/aniame/internal/presentation/graph"
)

func newGraphCmd(a *app) *cobra.Command {
	var focus string
	var reachable bool

	cmd := &cobra.Command{
		Use:   "graph <dictionary>",
		Short: "Export the schema reference graph",
		Long:  `Outputs a Mermaid diagram (graph TD) with one node per schema and one edge per ref.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := aniame.New(aniame.WithDictionaryFile(args[0]), aniame.WithLogger(a.logger))
			if err != nil {
				return err
			}
			var overlay *graph.Overlay
			if focus != "" {
				if _, ok := eng.Descriptor(focus); !ok {
					return fmt.Errorf("unknown schema %q", focus)
				}
				overlay = &graph.Overlay{Focus: focus, Reachable: reachable}
			}
			fmt.Fprint(a.stdout, graph.GenerateMermaid(eng.Dictionary(), overlay))
			return nil
		},
	}
	cmd.Flags().StringVar(&focus, "focus", "", "Highlight this schema")
	cmd.Flags().BoolVar(&reachable, "reachable", true, "With --focus, also highlight the schemas it refers to")
	return cmd
}
