package main

import (
	"encoding/json"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/akam1o/lnxconfig/pkg/lnxconfig"
)

// Output formats accepted by dump
const (
	outputLnx  = "lnx"
	outputJSON = "json"
	outputYAML = "yaml"
)

func newDumpCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Print the parsed configuration as lnx, JSON or YAML",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(_ *cobra.Command, _ []string) error {
			path, err := a.requireConfig()
			if err != nil {
				return err
			}
			switch output {
			case outputLnx, outputJSON, outputYAML:
			default:
				return usageErrorf("unsupported output format %q (want lnx, json or yaml)", output)
			}

			config, err := a.load(path)
			if err != nil {
				return err
			}
			return dump(a.stdout, config, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", outputLnx, "Output format: lnx, json or yaml")

	return cmd
}

func dump(w io.Writer, c *lnxconfig.IPConfig, output string) error {
	switch output {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(c)
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(c); err != nil {
			return err
		}
		return enc.Close()
	default:
		return lnxconfig.Format(w, c)
	}
}
