package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/aniame/internal/logging"
	"github.com/aretw0/aniame/internal/presentation/tui"
)

// errReported signals a failure already printed to the user (invalid data
// or schema); it only sets the exit code.
var errReported = errors.New("reported")

// app holds what every command shares.
type app struct {
	stdout io.Writer
	stderr io.Writer
	logger *slog.Logger
	color  bool
}

func (a *app) renderer() *tui.Renderer {
	return tui.NewRenderer(a.stdout, a.color)
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr, logger: logging.NewNop()}

	var logLevel, logFormat string
	var noColor bool
	cmd := &cobra.Command{
		Use:   "aniame",
		Short: "Aniame validates JSON and YAML documents against named schemas",
		Long: `Aniame checks documents against a dictionary of schemas and reports every
non-conforming location at once. Schemas are written as JSON or YAML.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := logging.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			a.logger = logging.NewWithFormat(a.stderr, logFormat, level)
			a.color = !noColor && os.Getenv("NO_COLOR") == ""
			return nil
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Log format (text, json)")
	cmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	cmd.AddCommand(
		newCheckCmd(a),
		newValidateCmd(a),
		newIndexCmd(a),
		newGraphCmd(a),
		newServeCmd(a),
		newVersionCmd(a),
	)
	return cmd
}

// run executes the command line and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(stderr, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

// Execute runs the root command against the process arguments.
func Execute() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
