package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/akam1o/lnxconfig/pkg/errors"
)

// FormatTable formats data as a table with aligned columns
func FormatTable(w io.Writer, headers []string, rows [][]string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	// Print headers
	fmt.Fprintln(tw, strings.Join(headers, "\t"))

	// Print separator
	sep := make([]string, len(headers))
	for i := range headers {
		sep[i] = strings.Repeat("-", len(headers[i]))
	}
	fmt.Fprintln(tw, strings.Join(sep, "\t"))

	// Print rows
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}

	// Return flush error
	return tw.Flush()
}

// FormatKeyValue formats label/value pairs with aligned values
func FormatKeyValue(w io.Writer, pairs [][2]string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', 0)
	for _, p := range pairs {
		fmt.Fprintf(tw, "%s:\t%s\n", p[0], p[1])
	}
	return tw.Flush()
}

// reportError prints an error with its position, cause and suggested action
func reportError(w io.Writer, err error) {
	fmt.Fprintln(w, color.RedString("Error: %v", err))

	var e *errors.Error
	if !errors.As(err, &e) {
		return
	}

	var pairs [][2]string
	if e.Text != "" {
		pairs = append(pairs, [2]string{"  line", e.Text})
	}
	if e.Cause != "" {
		pairs = append(pairs, [2]string{"  cause", e.Cause})
	}
	if e.Action != "" {
		pairs = append(pairs, [2]string{"  action", e.Action})
	}
	_ = FormatKeyValue(w, pairs)
}
