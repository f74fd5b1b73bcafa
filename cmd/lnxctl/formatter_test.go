package main

import (
	"bytes"
	"net/netip"
	"strings"
	"testing"

	"github.com/akam1o/lnxconfig/pkg/errors"
	"github.com/akam1o/lnxconfig/pkg/lnxconfig"
)

func TestFormatTable(t *testing.T) {
	tests := []struct {
		name    string
		headers []string
		rows    [][]string
		want    string
	}{
		{
			name:    "empty table",
			headers: []string{"Col1", "Col2"},
			rows:    [][]string{},
			want:    "Col1  Col2\n----  ----\n",
		},
		{
			name:    "single row",
			headers: []string{"Name", "Address"},
			rows:    [][]string{{"if0", "10.0.0.1/24"}},
			want:    "Name  Address\n----  -------\nif0   10.0.0.1/24\n",
		},
		{
			name:    "column alignment",
			headers: []string{"T", "Prefix", "Next Hop"},
			rows: [][]string{
				{"L", "10.0.0.0/24", "LOCAL:if0"},
				{"S", "0.0.0.0/0", "10.0.0.2"},
			},
			want: "T  Prefix       Next Hop\n-  ------       --------\nL  10.0.0.0/24  LOCAL:if0\nS  0.0.0.0/0    10.0.0.2\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := FormatTable(&buf, tt.headers, tt.rows)
			if err != nil {
				t.Errorf("FormatTable() error = %v", err)
				return
			}
			got := buf.String()
			if got != tt.want {
				t.Errorf("FormatTable() output mismatch:\nGot:\n%s\nWant:\n%s", got, tt.want)
			}
		})
	}
}

func TestFormatKeyValue(t *testing.T) {
	var buf bytes.Buffer
	err := FormatKeyValue(&buf, [][2]string{
		{"  line", "x"},
		{"  cause", "yy"},
	})
	if err != nil {
		t.Fatalf("FormatKeyValue() error = %v", err)
	}

	want := "  line:  x\n  cause: yy\n"
	if got := buf.String(); got != want {
		t.Errorf("FormatKeyValue() = %q, want %q", got, want)
	}
}

func TestReportError(t *testing.T) {
	e := errors.TokenCount("interface", 5).AtLine(3, "interface if0 bad")

	var buf bytes.Buffer
	reportError(&buf, e)
	got := buf.String()

	for _, want := range []string{
		"[CONFIG_TOKEN_COUNT] line 3:",
		"interface if0 bad",
		"cause:",
		"action:",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("reportError() output missing %q:\n%s", want, got)
		}
	}
}

func testConfig() *lnxconfig.IPConfig {
	c := lnxconfig.NewIPConfig()
	c.RoutingMode = lnxconfig.RoutingTypeRIP
	c.Interfaces = []lnxconfig.InterfaceConfig{
		{Name: "if0", AssignedIP: netip.MustParseAddr("10.0.0.1"), PrefixLen: 24, UDPAddr: netip.MustParseAddrPort("127.0.0.1:5000")},
		{Name: "if1", AssignedIP: netip.MustParseAddr("10.1.0.1"), PrefixLen: 24, UDPAddr: netip.MustParseAddrPort("127.0.0.1:5001")},
	}
	c.Neighbors = []lnxconfig.NeighborConfig{
		{DestAddr: netip.MustParseAddr("10.0.0.2"), UDPAddr: netip.MustParseAddrPort("127.0.0.1:5002"), InterfaceName: "if0"},
		{DestAddr: netip.MustParseAddr("10.1.0.2"), UDPAddr: netip.MustParseAddrPort("127.0.0.1:5003"), InterfaceName: "if1"},
	}
	c.RipNeighbors = []lnxconfig.RIPNeighbor{
		{Dest: netip.MustParseAddr("10.1.0.2")},
		{Dest: netip.MustParseAddr("10.9.0.9")},
	}
	c.StaticRoutes = []lnxconfig.StaticRoute{
		{NetworkAddr: netip.MustParseAddr("0.0.0.0"), PrefixLen: 0, NextHop: netip.MustParseAddr("10.0.0.2")},
	}
	return c
}

func TestShowSection(t *testing.T) {
	all := func(string) bool { return true }

	tests := []struct {
		name    string
		section string
		match   func(string) bool
		want    string
	}{
		{
			name:    "interfaces",
			section: sectionInterfaces,
			match:   all,
			want: "Name  Address      UDP Address     Neighbors\n" +
				"----  -------      -----------     ---------\n" +
				"if0   10.0.0.1/24  127.0.0.1:5000  1\n" +
				"if1   10.1.0.1/24  127.0.0.1:5001  1\n",
		},
		{
			name:    "neighbors filtered",
			section: sectionNeighbors,
			match:   func(name string) bool { return name == "if1" },
			want: "Destination  UDP Address     Interface\n" +
				"-----------  -----------     ---------\n" +
				"10.1.0.2     127.0.0.1:5003  if1\n",
		},
		{
			name:    "routes",
			section: sectionRoutes,
			match:   all,
			want: "T  Prefix       Next Hop\n" +
				"-  ------       --------\n" +
				"L  10.0.0.0/24  LOCAL:if0\n" +
				"L  10.1.0.0/24  LOCAL:if1\n" +
				"S  0.0.0.0/0    10.0.0.2\n",
		},
		{
			name:    "rip",
			section: sectionRIP,
			match:   all,
			want: "Routing mode: rip\n\n" +
				"Advertise To  Interface\n" +
				"------------  ---------\n" +
				"10.1.0.2      if1\n" +
				"10.9.0.9      -\n",
		},
		{
			name:    "timers",
			section: sectionTimers,
			match:   all,
			want: "Parameter                    Value    Unit\n" +
				"---------                    -----    ----\n" +
				"rip periodic-update-rate     5000     ms\n" +
				"rip route-timeout-threshold  12000    ms\n" +
				"tcp rto-min                  1000     us\n" +
				"tcp rto-max                  5000000  us\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := showSection(&buf, testConfig(), tt.section, tt.match); err != nil {
				t.Fatalf("showSection() error = %v", err)
			}
			if got := buf.String(); got != tt.want {
				t.Errorf("showSection() output mismatch:\nGot:\n%s\nWant:\n%s", got, tt.want)
			}
		})
	}
}

func TestShowSection_Unknown(t *testing.T) {
	var buf bytes.Buffer
	err := showSection(&buf, testConfig(), "bgp", func(string) bool { return true })
	if err == nil {
		t.Fatal("showSection(bgp) error = nil, want usage error")
	}
	if _, ok := err.(usageError); !ok {
		t.Errorf("showSection(bgp) error type = %T, want usageError", err)
	}
}
