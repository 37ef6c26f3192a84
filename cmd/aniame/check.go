package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/aniame/pkg/schema"
	"github.com/aretw0/aniame/pkg/tree"
)

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check <dictionary>",
		Short: "Check that every schema of a dictionary is well-formed",
		Long: `Meta-validates each entry of a dictionary document and prints the first
defect found in every malformed schema. Refs may name any entry of the file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			doc, err := tree.Decode(data)
			if err != nil {
				return fmt.Errorf("failed to decode %s: %w", args[0], err)
			}
			obj, ok := tree.AsObject(doc)
			if !ok {
				return fmt.Errorf("%s: dictionary must be an object of schemas", args[0])
			}

			r := a.renderer()
			names := obj.Keys()
			failed := 0
			for _, name := range names {
				entry, _ := obj.Get(name)
				err := schema.CheckSchema(entry, names)
				if err != nil {
					failed++
				}
				r.SchemaCheck(name, err)
			}
			a.logger.Info("dictionary checked", "schemas", len(names), "invalid", failed)
			if failed > 0 {
				return errReported
			}
			return nil
		},
	}
}
