package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/akam1o/lnxconfig/pkg/errors"
	"github.com/akam1o/lnxconfig/pkg/lnxconfig"
)

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Parse an lnx file and report problems",
		Long: `check parses the lnx file given with --config. With --strict it also
validates references between records and lists every violation.`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(_ *cobra.Command, _ []string) error {
			path, err := a.requireConfig()
			if err != nil {
				return err
			}

			// Validation runs here so every violation is listed
			config, err := lnxconfig.ParseConfig(path, lnxconfig.WithLogger(a.log.WithField("source", path)))
			if err != nil {
				reportError(a.stderr, err)
				return errReported
			}

			if a.settings.Strict {
				if err := config.Validate(); err != nil {
					reportViolations(a.stderr, path, err)
					return errReported
				}
			}

			fmt.Fprintln(a.stdout, color.GreenString("%s: OK", path))
			fmt.Fprintf(a.stdout, "  %d interfaces, %d neighbors, %d static routes, %d RIP neighbors, routing %s\n",
				len(config.Interfaces), len(config.Neighbors), len(config.StaticRoutes),
				len(config.RipNeighbors), config.RoutingMode)
			return nil
		},
	}
}

func reportViolations(w io.Writer, path string, err error) {
	violations := lnxconfig.Violations(err)

	var e *errors.Error
	if errors.As(err, &e) {
		fmt.Fprintln(w, color.RedString("%s: %s (%d problems)", path, e.Message, len(violations)))
	}
	for _, v := range violations {
		fmt.Fprintln(w, color.RedString("  - %v", v))
	}
}
