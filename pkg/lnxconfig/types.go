// Package lnxconfig reads lnx files, the line-oriented topology description
// used to start a virtual host or router of the network simulator.
package lnxconfig

import (
	"fmt"
	"net/netip"
)

// Default timing parameters, used when the file does not override them.
const (
	DefaultRipPeriodicUpdateRate uint64 = 5000    // milliseconds
	DefaultRipTimeoutThreshold   uint64 = 12000   // milliseconds
	DefaultTCPRTOMin             uint64 = 1000    // microseconds
	DefaultTCPRTOMax             uint64 = 5000000 // microseconds
)

// RoutingMode selects how a node learns routes
type RoutingMode int

const (
	// RoutingTypeStatic uses only local and manually specified routes.
	// Hosts normally run in this mode; it is the default.
	RoutingTypeStatic RoutingMode = iota
	// RoutingTypeRIP advertises and learns routes via RIP. Used for routers.
	RoutingTypeRIP
)

// String returns the lnx keyword for the routing mode
func (m RoutingMode) String() string {
	switch m {
	case RoutingTypeStatic:
		return "static"
	case RoutingTypeRIP:
		return "rip"
	default:
		return fmt.Sprintf("RoutingMode(%d)", int(m))
	}
}

// ParseRoutingMode converts an lnx keyword to a RoutingMode. Matching is
// case-sensitive.
func ParseRoutingMode(s string) (RoutingMode, bool) {
	switch s {
	case "static":
		return RoutingTypeStatic, true
	case "rip":
		return RoutingTypeRIP, true
	default:
		return RoutingTypeStatic, false
	}
}

// MarshalText implements encoding.TextMarshaler
func (m RoutingMode) MarshalText() ([]byte, error) {
	switch m {
	case RoutingTypeStatic, RoutingTypeRIP:
		return []byte(m.String()), nil
	default:
		return nil, fmt.Errorf("invalid routing mode %d", int(m))
	}
}

// UnmarshalText implements encoding.TextUnmarshaler
func (m *RoutingMode) UnmarshalText(text []byte) error {
	mode, ok := ParseRoutingMode(string(text))
	if !ok {
		return fmt.Errorf("invalid routing mode %q", string(text))
	}
	*m = mode
	return nil
}

// InterfaceConfig is one interface of this node
type InterfaceConfig struct {
	// Name of the interface, e.g. "if0"
	Name string `json:"name" yaml:"name"`

	// AssignedIP is the virtual IP address of the interface
	AssignedIP netip.Addr `json:"assigned-ip" yaml:"assigned-ip"`

	// PrefixLen defines the interface network together with AssignedIP.
	// Expected to be 0-32; the parser does not range check it.
	PrefixLen int `json:"prefix-len" yaml:"prefix-len"`

	// UDPAddr is the bind address and port of the UDP socket carrying
	// this interface's link-layer traffic
	UDPAddr netip.AddrPort `json:"udp-addr" yaml:"udp-addr"`
}

// AssignedPrefix returns the interface address with its prefix length.
// The result is invalid when PrefixLen is outside 0-32.
func (i InterfaceConfig) AssignedPrefix() netip.Prefix {
	return netip.PrefixFrom(i.AssignedIP, i.PrefixLen)
}

// NeighborConfig tells how to reach a node on a directly connected network
type NeighborConfig struct {
	// DestAddr is the virtual IP of the neighboring node
	DestAddr netip.Addr `json:"dest-addr" yaml:"dest-addr"`

	// UDPAddr is where to send frames to reach the neighbor
	UDPAddr netip.AddrPort `json:"udp-addr" yaml:"udp-addr"`

	// InterfaceName is the local interface used to reach the neighbor
	InterfaceName string `json:"interface-name" yaml:"interface-name"`
}

// RIPNeighbor is a router that receives this node's RIP messages
type RIPNeighbor struct {
	// Dest should be the DestAddr of a declared neighbor
	Dest netip.Addr `json:"dest" yaml:"dest"`
}

// StaticRoute is a manually configured route
type StaticRoute struct {
	NetworkAddr netip.Addr `json:"network-addr" yaml:"network-addr"`
	PrefixLen   int        `json:"prefix-len" yaml:"prefix-len"`
	NextHop     netip.Addr `json:"next-hop" yaml:"next-hop"`
}

// Prefix returns the route destination as a prefix
func (r StaticRoute) Prefix() netip.Prefix {
	return netip.PrefixFrom(r.NetworkAddr, r.PrefixLen)
}

// IPConfig is everything an lnx file describes. Collections keep file order
// and duplicates.
type IPConfig struct {
	Interfaces   []InterfaceConfig `json:"interfaces" yaml:"interfaces"`
	Neighbors    []NeighborConfig  `json:"neighbors" yaml:"neighbors"`
	RoutingMode  RoutingMode       `json:"routing-mode" yaml:"routing-mode"`
	RipNeighbors []RIPNeighbor     `json:"rip-neighbors" yaml:"rip-neighbors"`
	StaticRoutes []StaticRoute     `json:"static-routes" yaml:"static-routes"`

	// RIP timing parameters (routers only), milliseconds
	RipPeriodicUpdateRate uint64 `json:"rip-periodic-update-rate" yaml:"rip-periodic-update-rate"`
	RipTimeoutThreshold   uint64 `json:"rip-route-timeout-threshold" yaml:"rip-route-timeout-threshold"`

	// TCP retransmission timeout bounds (hosts only), microseconds
	TCPRTOMin uint64 `json:"tcp-rto-min" yaml:"tcp-rto-min"`
	TCPRTOMax uint64 `json:"tcp-rto-max" yaml:"tcp-rto-max"`
}

// NewIPConfig creates an empty configuration holding the default routing
// mode and timing parameters
func NewIPConfig() *IPConfig {
	return &IPConfig{
		RoutingMode:           RoutingTypeStatic,
		RipPeriodicUpdateRate: DefaultRipPeriodicUpdateRate,
		RipTimeoutThreshold:   DefaultRipTimeoutThreshold,
		TCPRTOMin:             DefaultTCPRTOMin,
		TCPRTOMax:             DefaultTCPRTOMax,
	}
}

// IsRouter reports whether the node exchanges routes via RIP
func (c *IPConfig) IsRouter() bool {
	return c.RoutingMode == RoutingTypeRIP
}

// Interface returns the first interface with the given name
func (c *IPConfig) Interface(name string) (InterfaceConfig, bool) {
	for _, iface := range c.Interfaces {
		if iface.Name == name {
			return iface, true
		}
	}
	return InterfaceConfig{}, false
}
