package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(_ *cobra.Command, _ []string) error {
			fmt.Fprintf(a.stdout, "lnxctl\n")
			fmt.Fprintf(a.stdout, "  Version:    %s\n", Version)
			fmt.Fprintf(a.stdout, "  Commit:     %s\n", Commit)
			fmt.Fprintf(a.stdout, "  Build Date: %s\n", BuildDate)
			fmt.Fprintf(a.stdout, "  Go:         %s\n", runtime.Version())
			return nil
		},
	}
}
