package lnxconfig

import (
	"net/netip"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akam1o/lnxconfig/pkg/errors"
)

func validRouter() *IPConfig {
	c := NewIPConfig()
	c.RoutingMode = RoutingTypeRIP
	c.Interfaces = []InterfaceConfig{
		{Name: "if0", AssignedIP: netip.MustParseAddr("10.0.0.2"), PrefixLen: 24, UDPAddr: netip.MustParseAddrPort("127.0.0.1:5001")},
		{Name: "if1", AssignedIP: netip.MustParseAddr("10.1.0.1"), PrefixLen: 24, UDPAddr: netip.MustParseAddrPort("127.0.0.1:5002")},
	}
	c.Neighbors = []NeighborConfig{
		{DestAddr: netip.MustParseAddr("10.0.0.1"), UDPAddr: netip.MustParseAddrPort("127.0.0.1:5000"), InterfaceName: "if0"},
		{DestAddr: netip.MustParseAddr("10.1.0.2"), UDPAddr: netip.MustParseAddrPort("127.0.0.1:5003"), InterfaceName: "if1"},
	}
	c.RipNeighbors = []RIPNeighbor{{Dest: netip.MustParseAddr("10.1.0.2")}}
	c.StaticRoutes = []StaticRoute{
		{NetworkAddr: netip.MustParseAddr("10.5.0.0"), PrefixLen: 24, NextHop: netip.MustParseAddr("10.0.0.1")},
	}
	return c
}

func TestValidate_ValidConfig(t *testing.T) {
	if err := validRouter().Validate(); err != nil {
		t.Errorf("Validate() error = %v, want nil", err)
	}
}

func TestValidate_Nil(t *testing.T) {
	var c *IPConfig
	err := c.Validate()
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeConfigValidation))
}

func TestValidate_Violations(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(c *IPConfig)
		wantMsg string
	}{
		{
			name: "duplicate interface",
			modify: func(c *IPConfig) {
				c.Interfaces = append(c.Interfaces, c.Interfaces[0])
			},
			wantMsg: "interface if0: declared more than once",
		},
		{
			name: "interface prefix too long",
			modify: func(c *IPConfig) {
				c.Interfaces[1].PrefixLen = 33
			},
			wantMsg: "interface if1: prefix length 33 out of range",
		},
		{
			name: "neighbor via unknown interface",
			modify: func(c *IPConfig) {
				c.Neighbors[1].InterfaceName = "if7"
			},
			wantMsg: "via unknown interface if7",
		},
		{
			name: "rip neighbor not declared",
			modify: func(c *IPConfig) {
				c.RipNeighbors = append(c.RipNeighbors, RIPNeighbor{Dest: netip.MustParseAddr("10.9.0.1")})
			},
			wantMsg: "rip advertise-to 10.9.0.1: not a declared neighbor",
		},
		{
			name: "route prefix too long",
			modify: func(c *IPConfig) {
				c.StaticRoutes[0].PrefixLen = 99
			},
			wantMsg: "prefix length out of range",
		},
		{
			name: "route next hop off link",
			modify: func(c *IPConfig) {
				c.StaticRoutes[0].NextHop = netip.MustParseAddr("192.168.1.1")
			},
			wantMsg: "next hop 192.168.1.1 is not on any interface network",
		},
		{
			name: "rto bounds inverted",
			modify: func(c *IPConfig) {
				c.TCPRTOMin = 10
				c.TCPRTOMax = 5
			},
			wantMsg: "tcp rto-min 10 exceeds rto-max 5",
		},
		{
			name: "rip timeout not above update rate",
			modify: func(c *IPConfig) {
				c.RipTimeoutThreshold = c.RipPeriodicUpdateRate
			},
			wantMsg: "must be below route-timeout-threshold",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validRouter()
			tt.modify(c)

			err := c.Validate()
			require.Error(t, err)
			assert.True(t, errors.HasCode(err, errors.ErrCodeConfigValidation))

			violations := Violations(err)
			require.Len(t, violations, 1)
			assert.Contains(t, violations[0].Error(), tt.wantMsg)
		})
	}
}

func TestValidate_CollectsAll(t *testing.T) {
	c := validRouter()
	c.Interfaces = append(c.Interfaces, c.Interfaces[0])
	c.Neighbors[0].InterfaceName = "eth0"
	c.TCPRTOMin = c.TCPRTOMax + 1

	err := c.Validate()
	require.Error(t, err)
	assert.Len(t, Violations(err), 3)
}

func TestValidate_ParsedExample(t *testing.T) {
	// The advertised router is not among the declared neighbors
	config := parseString(t, exampleRouter)

	err := config.Validate()
	require.Error(t, err)

	violations := Violations(err)
	require.Len(t, violations, 1)
	assert.True(t, strings.HasPrefix(violations[0].Error(), "rip advertise-to 10.1.0.2"))
}

func TestViolations_NotMultiError(t *testing.T) {
	assert.Nil(t, Violations(nil))

	err := errors.New(errors.ErrCodeSettings, "x", "y", "z")
	assert.Equal(t, []error{err}, Violations(err))
}
