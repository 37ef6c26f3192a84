package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/aretw0/aniame"
	"github.com/aretw0/aniame/internal/config"
	httpAdapter "github.com/aretw0/aniame/pkg/adapters/http"
)

func newValidateCmd(a *app) *cobra.Command {
	var partial, asJSON bool
	var concurrency int
	var redisCfg = config.Default().Redis

	cmd := &cobra.Command{
		Use:   "validate <dictionary> <schema> <document>",
		Short: "Validate a document against a schema",
		Long: `Validates a JSON or YAML document ("-" for standard input) against a schema
of the dictionary and prints every error path. Exits with status 1 when the
document does not conform.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			refOpts, closeRefs, err := refOptions(redisCfg)
			if err != nil {
				return err
			}
			defer closeRefs()

			opts := append([]aniame.Option{
				aniame.WithDictionaryFile(args[0]),
				aniame.WithLogger(a.logger),
				aniame.WithConcurrency(concurrency),
			}, refOpts...)
			eng, err := aniame.New(opts...)
			if err != nil {
				return err
			}

			data, err := readDocument(args[2], cmd.InOrStdin())
			if err != nil {
				return err
			}

			validate := eng.Validate
			if partial {
				validate = eng.ValidatePartial
			}
			out, err := validate(cmd.Context(), data, args[1])
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(a.stdout)
				enc.SetIndent("", "  ")
				if err := enc.Encode(httpAdapter.NewValidationResponse(out)); err != nil {
					return err
				}
			} else {
				a.renderer().Outcome(args[1], out)
			}
			if !out.Success() {
				return errReported
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&partial, "partial", false, "Do not enforce required properties at the top level")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON")
	cmd.Flags().IntVar(&concurrency, "concurrency", 1, "Goroutines used to validate sibling branches")
	cmd.Flags().StringVar(&redisCfg.Addr, "redis", "", "Redis address holding foreign keys for ref checks")
	cmd.Flags().StringVar(&redisCfg.Prefix, "redis-prefix", redisCfg.Prefix, "Key prefix of the Redis reference sets")
	return cmd
}
