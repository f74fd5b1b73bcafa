package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"

	"github.com/akam1o/lnxconfig/pkg/lnxconfig"
)

// Diff output formats
const (
	diffUnified    = "unified"
	diffLines      = "lines"
	diffStructural = "structural"
)

// contextLines is the number of unchanged lines kept around a change in
// the lines format
const contextLines = 3

func newDiffCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "diff <a.lnx> <b.lnx>",
		Short: "Compare two lnx files",
		Long: `diff parses both files and compares the resulting configurations.
The unified and lines formats compare the canonical renderings, so comments
and blank lines do not matter. The structural format prints a field-by-field
comparison. Exits 1 when the files differ.`,
		Args: usageArgs(cobra.ExactArgs(2)),
		RunE: func(_ *cobra.Command, args []string) error {
			switch format {
			case diffUnified, diffLines, diffStructural:
			default:
				return usageErrorf("unsupported diff format %q (want unified, lines or structural)", format)
			}

			from, err := a.load(args[0])
			if err != nil {
				return err
			}
			to, err := a.load(args[1])
			if err != nil {
				return err
			}

			if lnxconfig.Equal(from, to) {
				a.log.Debugw("configurations are equal", "from", args[0], "to", args[1])
				return nil
			}

			switch format {
			case diffStructural:
				fmt.Fprint(a.stdout, lnxconfig.Diff(from, to))
			case diffLines:
				writeColored(a.stdout, lineDiff(from.String(), to.String()))
			default:
				writeColored(a.stdout, unifiedDiff(args[0], args[1], from.String(), to.String()))
			}
			return errReported
		},
	}

	cmd.Flags().StringVar(&format, "format", diffUnified, "Diff format: unified, lines or structural")

	return cmd
}

// unifiedDiff returns a unified diff of two texts
func unifiedDiff(fromName, toName, from, to string) string {
	edits := myers.ComputeEdits(span.URIFromPath(fromName), from, to)
	return fmt.Sprint(gotextdiff.ToUnified(fromName, toName, from, edits))
}

// lineDiff returns a line based diff of two texts.
// Output format:
//   - Lines starting with '-' are removed from the old text
//   - Lines starting with '+' are added in the new text
//   - Lines starting with ' ' are unchanged context
func lineDiff(oldText, newText string) string {
	dmp := diffmatchpatch.New()

	oldChars, newChars, lines := dmp.DiffLinesToChars(oldText, newText)
	diffs := dmp.DiffMain(oldChars, newChars, false)
	diffs = dmp.DiffCharsToLines(diffs, lines)

	var result strings.Builder

	writeLines := func(prefix string, lines []string) {
		for _, line := range lines {
			if line != "" {
				result.WriteString(prefix)
				result.WriteString(line)
				result.WriteString("\n")
			}
		}
	}

	for _, diff := range diffs {
		lines := strings.Split(strings.TrimSuffix(diff.Text, "\n"), "\n")

		switch diff.Type {
		case diffmatchpatch.DiffDelete:
			writeLines("- ", lines)
		case diffmatchpatch.DiffInsert:
			writeLines("+ ", lines)
		case diffmatchpatch.DiffEqual:
			if len(lines) > contextLines*2 {
				writeLines("  ", lines[:contextLines])
				result.WriteString("  ...\n")
				writeLines("  ", lines[len(lines)-contextLines:])
			} else {
				writeLines("  ", lines)
			}
		}
	}

	return result.String()
}

// writeColored prints diff text, coloring removed and added lines
func writeColored(w io.Writer, diff string) {
	for _, line := range strings.SplitAfter(diff, "\n") {
		switch {
		case line == "":
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			fmt.Fprint(w, color.New(color.Bold).Sprint(line))
		case strings.HasPrefix(line, "+"):
			fmt.Fprint(w, color.GreenString("%s", line))
		case strings.HasPrefix(line, "-"):
			fmt.Fprint(w, color.RedString("%s", line))
		case strings.HasPrefix(line, "@@"):
			fmt.Fprint(w, color.CyanString("%s", line))
		default:
			fmt.Fprint(w, line)
		}
	}
}
