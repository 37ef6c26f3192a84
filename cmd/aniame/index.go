package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/aretw0/aniame"
	"github.com/aretw0/aniame/pkg/indexer"
)

func newIndexCmd(a *app) *cobra.Command {
	var indexes, fields []string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "index <dictionary> [schema]",
		Short: "List the schema locations tagged with indexAs",
		Long: `Walks the schemas of a dictionary (or a single one) and prints, per index
name, every tagged location with the selected descriptor fields.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := aniame.New(aniame.WithDictionaryFile(args[0]), aniame.WithLogger(a.logger))
			if err != nil {
				return err
			}

			var opts []indexer.Option
			if len(indexes) > 0 {
				opts = append(opts, indexer.WithIndexNames(indexes...))
			}
			if cmd.Flags().Changed("field") {
				opts = append(opts, indexer.WithCaptureFields(fields...))
			}

			names := eng.Schemas()
			if len(args) == 2 {
				names = []string{args[1]}
			}
			results := make(map[string]indexer.Result, len(names))
			for _, name := range names {
				result, err := eng.Index(name, opts...)
				if err != nil {
					return err
				}
				results[name] = result
			}

			if asJSON {
				enc := json.NewEncoder(a.stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(results)
			}
			r := a.renderer()
			for _, name := range names {
				r.Index(name, results[name])
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&indexes, "index", nil, "Only report these index names")
	cmd.Flags().StringSliceVar(&fields, "field", nil, "Descriptor fields to capture (default: all)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON")
	return cmd
}
