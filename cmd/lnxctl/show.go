package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/gobwas/glob"
	"github.com/siderolabs/gen/xslices"
	"github.com/spf13/cobra"

	"github.com/akam1o/lnxconfig/pkg/lnxconfig"
)

// Sections accepted by show
const (
	sectionInterfaces = "interfaces"
	sectionNeighbors  = "neighbors"
	sectionRoutes     = "routes"
	sectionRIP        = "rip"
	sectionTimers     = "timers"
)

func newShowCmd(a *app) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "show [interfaces|neighbors|routes|rip|timers]",
		Short: "Show the parsed configuration",
		Long: `Without a section, show prints the configuration as canonical lnx text.
With a section, it prints a table. --name filters interfaces and neighbors
by interface name (glob syntax, e.g. 'if*').`,
		Args: usageArgs(cobra.MaximumNArgs(1)),
		ValidArgs: []string{
			sectionInterfaces, sectionNeighbors, sectionRoutes, sectionRIP, sectionTimers,
		},
		RunE: func(_ *cobra.Command, args []string) error {
			path, err := a.requireConfig()
			if err != nil {
				return err
			}

			section := ""
			if len(args) == 1 {
				section = args[0]
			}

			match := func(string) bool { return true }
			if name != "" {
				g, err := glob.Compile(name)
				if err != nil {
					return usageErrorf("invalid --name pattern %q: %v", name, err)
				}
				match = g.Match
			}

			config, err := a.load(path)
			if err != nil {
				return err
			}
			return showSection(a.stdout, config, section, match)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Only show interfaces and neighbors whose interface name matches this glob")

	return cmd
}

func showSection(w io.Writer, c *lnxconfig.IPConfig, section string, match func(string) bool) error {
	switch section {
	case "":
		return lnxconfig.Format(w, c)
	case sectionInterfaces:
		return showInterfaces(w, c, match)
	case sectionNeighbors:
		return showNeighbors(w, c, match)
	case sectionRoutes:
		return showRoutes(w, c)
	case sectionRIP:
		return showRIP(w, c)
	case sectionTimers:
		return showTimers(w, c)
	default:
		return usageErrorf("unknown section %q", section)
	}
}

func showInterfaces(w io.Writer, c *lnxconfig.IPConfig, match func(string) bool) error {
	ifaces := xslices.Filter(c.Interfaces, func(i lnxconfig.InterfaceConfig) bool {
		return match(i.Name)
	})

	headers := []string{"Name", "Address", "UDP Address", "Neighbors"}
	rows := xslices.Map(ifaces, func(i lnxconfig.InterfaceConfig) []string {
		neighbors := 0
		for _, n := range c.Neighbors {
			if n.InterfaceName == i.Name {
				neighbors++
			}
		}
		return []string{i.Name, i.AssignedPrefix().String(), i.UDPAddr.String(), strconv.Itoa(neighbors)}
	})

	return FormatTable(w, headers, rows)
}

func showNeighbors(w io.Writer, c *lnxconfig.IPConfig, match func(string) bool) error {
	neighbors := xslices.Filter(c.Neighbors, func(n lnxconfig.NeighborConfig) bool {
		return match(n.InterfaceName)
	})

	headers := []string{"Destination", "UDP Address", "Interface"}
	rows := xslices.Map(neighbors, func(n lnxconfig.NeighborConfig) []string {
		return []string{n.DestAddr.String(), n.UDPAddr.String(), n.InterfaceName}
	})

	return FormatTable(w, headers, rows)
}

// showRoutes lists the connected networks of each interface followed by
// the static routes
func showRoutes(w io.Writer, c *lnxconfig.IPConfig) error {
	headers := []string{"T", "Prefix", "Next Hop"}

	rows := xslices.Map(c.Interfaces, func(i lnxconfig.InterfaceConfig) []string {
		return []string{"L", i.AssignedPrefix().Masked().String(), "LOCAL:" + i.Name}
	})
	rows = append(rows, xslices.Map(c.StaticRoutes, func(r lnxconfig.StaticRoute) []string {
		return []string{"S", r.Prefix().String(), r.NextHop.String()}
	})...)

	return FormatTable(w, headers, rows)
}

func showRIP(w io.Writer, c *lnxconfig.IPConfig) error {
	fmt.Fprintf(w, "Routing mode: %s\n\n", c.RoutingMode)

	headers := []string{"Advertise To", "Interface"}
	rows := xslices.Map(c.RipNeighbors, func(r lnxconfig.RIPNeighbor) []string {
		via := "-"
		for _, n := range c.Neighbors {
			if n.DestAddr == r.Dest {
				via = n.InterfaceName
				break
			}
		}
		return []string{r.Dest.String(), via}
	})

	return FormatTable(w, headers, rows)
}

func showTimers(w io.Writer, c *lnxconfig.IPConfig) error {
	headers := []string{"Parameter", "Value", "Unit"}
	rows := [][]string{
		{"rip periodic-update-rate", strconv.FormatUint(c.RipPeriodicUpdateRate, 10), "ms"},
		{"rip route-timeout-threshold", strconv.FormatUint(c.RipTimeoutThreshold, 10), "ms"},
		{"tcp rto-min", strconv.FormatUint(c.TCPRTOMin, 10), "us"},
		{"tcp rto-max", strconv.FormatUint(c.TCPRTOMax, 10), "us"},
	}
	return FormatTable(w, headers, rows)
}
