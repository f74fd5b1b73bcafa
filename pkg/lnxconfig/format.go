package lnxconfig

import (
	"fmt"
	"io"
	"strings"

	"github.com/siderolabs/gen/xslices"
)

// Directive returns the interface line
func (i InterfaceConfig) Directive() string {
	return fmt.Sprintf("%s %s %s/%d %s", KeywordInterface, i.Name, i.AssignedIP, i.PrefixLen, i.UDPAddr)
}

// Directive returns the neighbor line
func (n NeighborConfig) Directive() string {
	return fmt.Sprintf("%s %s at %s via %s", KeywordNeighbor, n.DestAddr, n.UDPAddr, n.InterfaceName)
}

// Directive returns the rip advertise-to line
func (r RIPNeighbor) Directive() string {
	return fmt.Sprintf("%s %s %s", KeywordRIP, KeywordAdvertiseTo, r.Dest)
}

// Directive returns the route line
func (r StaticRoute) Directive() string {
	return fmt.Sprintf("%s %s/%d via %s", KeywordRoute, r.NetworkAddr, r.PrefixLen, r.NextHop)
}

// Format writes c as lnx directives. Records keep their order; the output
// parses back to an equal IPConfig. Timers still at their default are
// omitted unless they apply to the node's routing mode.
func Format(w io.Writer, c *IPConfig) error {
	var b strings.Builder

	section := func(lines []string) {
		if len(lines) == 0 {
			return
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		for _, line := range lines {
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	section(xslices.Map(c.Interfaces, InterfaceConfig.Directive))
	section(xslices.Map(c.Neighbors, NeighborConfig.Directive))
	section([]string{fmt.Sprintf("%s %s", KeywordRouting, c.RoutingMode)})
	section(xslices.Map(c.StaticRoutes, StaticRoute.Directive))
	section(xslices.Map(c.RipNeighbors, RIPNeighbor.Directive))

	var ripTimers []string
	if c.IsRouter() || c.RipPeriodicUpdateRate != DefaultRipPeriodicUpdateRate {
		ripTimers = append(ripTimers, timerDirective(KeywordRIP, KeywordPeriodicUpdateRate, c.RipPeriodicUpdateRate, "milliseconds"))
	}
	if c.IsRouter() || c.RipTimeoutThreshold != DefaultRipTimeoutThreshold {
		ripTimers = append(ripTimers, timerDirective(KeywordRIP, KeywordRouteTimeoutThreshold, c.RipTimeoutThreshold, "milliseconds"))
	}
	section(ripTimers)

	var tcpTimers []string
	if !c.IsRouter() || c.TCPRTOMin != DefaultTCPRTOMin {
		tcpTimers = append(tcpTimers, timerDirective(KeywordTCP, KeywordRTOMin, c.TCPRTOMin, "microseconds"))
	}
	if !c.IsRouter() || c.TCPRTOMax != DefaultTCPRTOMax {
		tcpTimers = append(tcpTimers, timerDirective(KeywordTCP, KeywordRTOMax, c.TCPRTOMax, "microseconds"))
	}
	section(tcpTimers)

	_, err := io.WriteString(w, b.String())
	return err
}

func timerDirective(keyword, sub string, value uint64, unit string) string {
	return fmt.Sprintf("%s %s %d # %s", keyword, sub, value, unit)
}

// String returns c formatted as lnx text
func (c *IPConfig) String() string {
	var b strings.Builder
	_ = Format(&b, c)
	return b.String()
}
