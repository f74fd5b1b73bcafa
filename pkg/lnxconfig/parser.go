package lnxconfig

import (
	"fmt"
	"io"
	"io/fs"
	"net/netip"
	"os"
	"regexp"
	"strconv"

	"github.com/akam1o/lnxconfig/pkg/errors"
	"github.com/akam1o/lnxconfig/pkg/logger"
)

// pattern extracts the fixed fields of one directive. A directive matches
// only if every field is present; text after the last field is ignored.
type pattern struct {
	directive string
	fields    int
	re        *regexp.Regexp
}

func newPattern(directive string, fields int, expr string) pattern {
	return pattern{
		directive: directive,
		fields:    fields,
		re:        regexp.MustCompile(expr),
	}
}

// end of a trailing numeric field: whitespace, a comment or end of line
const fieldEnd = `(?:[\s#]|$)`

var (
	interfacePattern = newPattern("interface", 5,
		`^\s*interface\s+(\S+)\s+([^/\s]+)/(\d{1,2})\s+([^:\s]+):(\d+)`+fieldEnd)
	neighborPattern = newPattern("neighbor", 4,
		`^\s*neighbor\s+(\S+)\s+at\s+([^:\s]+):(\d+)\s+via\s+([^\s#]+)`)
	routingPattern = newPattern("routing", 1,
		`^\s*routing\s+(\S+)`)
	ripCommandPattern = newPattern("rip", 1,
		`^\s*rip\s+(\S+)`)
	ripAdvertisePattern = newPattern("rip advertise-to", 1,
		`^\s*rip\s+advertise-to\s+(\S+)`)
	ripUpdateRatePattern = newPattern("rip periodic-update-rate", 1,
		`^\s*rip\s+periodic-update-rate\s+(\d+)`+fieldEnd)
	ripTimeoutPattern = newPattern("rip route-timeout-threshold", 1,
		`^\s*rip\s+route-timeout-threshold\s+(\d+)`+fieldEnd)
	tcpCommandPattern = newPattern("tcp", 1,
		`^\s*tcp\s+(\S+)`)
	tcpRTOMinPattern = newPattern("tcp rto-min", 1,
		`^\s*tcp\s+rto-min\s+(\d+)`+fieldEnd)
	tcpRTOMaxPattern = newPattern("tcp rto-max", 1,
		`^\s*tcp\s+rto-max\s+(\d+)`+fieldEnd)
	routePattern = newPattern("route", 3,
		`^\s*route\s+([^/\s]+)/(\d{1,2})\s+via\s+(\S+)`)
)

// match returns the directive fields, or a token count error
func (pt pattern) match(text string) ([]string, *errors.Error) {
	m := pt.re.FindStringSubmatch(text)
	if m == nil {
		return nil, errors.TokenCount(pt.directive, pt.fields)
	}
	return m[1:], nil
}

// Option configures a Parser
type Option func(*Parser)

// WithLogger makes the parser log each directive at debug level
func WithLogger(log *logger.Logger) Option {
	return func(p *Parser) {
		if log != nil {
			p.log = log
		}
	}
}

// WithSource sets the input name reported in errors
func WithSource(name string) Option {
	return func(p *Parser) {
		p.source = name
	}
}

// WithStrict runs Validate after a successful parse
func WithStrict() Option {
	return func(p *Parser) {
		p.strict = true
	}
}

// Parser parses lnx configuration
type Parser struct {
	lexer   *Lexer
	current Token
	log     *logger.Logger
	source  string
	strict  bool
}

// NewParser creates a new parser from an io.Reader
func NewParser(r io.Reader, opts ...Option) *Parser {
	p := &Parser{
		lexer: NewLexer(r),
		log:   logger.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParseConfig reads and parses the lnx file at path
func ParseConfig(path string, opts ...Option) (*IPConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.ConfigNotFound(path, err)
		}
		return nil, errors.ConfigOpenError(path, err)
	}
	defer f.Close()

	return NewParser(f, append([]Option{WithSource(path)}, opts...)...).Parse()
}

// Parse parses lnx configuration from r
func Parse(r io.Reader, opts ...Option) (*IPConfig, error) {
	return NewParser(r, opts...).Parse()
}

// Parse parses the entire input and returns an IPConfig. The first
// malformed directive aborts parsing; no partial result is returned.
func (p *Parser) Parse() (*IPConfig, error) {
	config := NewIPConfig()

	for p.nextToken(); p.current.Type != TokenEOF; p.nextToken() {
		switch p.current.Type {
		case TokenError:
			e := errors.ConfigReadError(p.source, p.current.Line, p.current.Err)
			e.Source = p.source
			return nil, e
		case TokenBlank, TokenComment:
			continue
		}

		if err := p.parseDirective(config); err != nil {
			return nil, err
		}
	}

	p.log.Debugw("parsed lnx configuration",
		"source", p.source,
		"interfaces", len(config.Interfaces),
		"neighbors", len(config.Neighbors),
		"routing", config.RoutingMode.String(),
		"rip_neighbors", len(config.RipNeighbors),
		"static_routes", len(config.StaticRoutes),
	)

	if p.strict {
		if err := config.Validate(); err != nil {
			return nil, err
		}
	}

	return config, nil
}

// nextToken advances to the next line
func (p *Parser) nextToken() {
	p.current = p.lexer.NextToken()
}

// parseDirective dispatches on the first field of the current line
func (p *Parser) parseDirective(config *IPConfig) error {
	switch p.current.Keyword {
	case KeywordInterface:
		return p.parseInterface(config)
	case KeywordNeighbor:
		return p.parseNeighbor(config)
	case KeywordRouting:
		return p.parseRouting(config)
	case KeywordRIP:
		return p.parseRIP(config)
	case KeywordTCP:
		return p.parseTCP(config)
	case KeywordRoute:
		return p.parseRoute(config)
	default:
		// Unknown directives are skipped so newer files still load
		p.log.Debugw("ignoring unknown directive",
			"line", p.current.Line,
			"keyword", p.current.Keyword,
		)
		return nil
	}
}

// parseInterface parses: interface <name> <ip>/<prefix> <udp-ip>:<port>
func (p *Parser) parseInterface(config *IPConfig) error {
	fields, perr := interfacePattern.match(p.current.Text)
	if perr != nil {
		return p.error(perr)
	}

	assigned, err := p.parseAddr("interface address", fields[1])
	if err != nil {
		return err
	}
	udpAddr, err := p.parseAddr("interface UDP address", fields[3])
	if err != nil {
		return err
	}
	port, err := p.parsePort(fields[4])
	if err != nil {
		return err
	}

	iface := InterfaceConfig{
		Name:       fields[0],
		AssignedIP: assigned,
		PrefixLen:  parsePrefixLen(fields[2]),
		UDPAddr:    netip.AddrPortFrom(udpAddr, port),
	}
	config.Interfaces = append(config.Interfaces, iface)

	p.log.Debugw("interface", "line", p.current.Line, "name", iface.Name)
	return nil
}

// parseNeighbor parses: neighbor <ip> at <udp-ip>:<port> via <ifname>
func (p *Parser) parseNeighbor(config *IPConfig) error {
	fields, perr := neighborPattern.match(p.current.Text)
	if perr != nil {
		return p.error(perr)
	}

	dest, err := p.parseAddr("neighbor address", fields[0])
	if err != nil {
		return err
	}
	udpAddr, err := p.parseAddr("neighbor UDP address", fields[1])
	if err != nil {
		return err
	}
	port, err := p.parsePort(fields[2])
	if err != nil {
		return err
	}

	neighbor := NeighborConfig{
		DestAddr:      dest,
		UDPAddr:       netip.AddrPortFrom(udpAddr, port),
		InterfaceName: fields[3],
	}
	config.Neighbors = append(config.Neighbors, neighbor)

	p.log.Debugw("neighbor", "line", p.current.Line, "dest", dest.String(), "via", neighbor.InterfaceName)
	return nil
}

// parseRouting parses: routing <rip|static>
func (p *Parser) parseRouting(config *IPConfig) error {
	fields, perr := routingPattern.match(p.current.Text)
	if perr != nil {
		return p.error(perr)
	}

	mode, ok := ParseRoutingMode(fields[0])
	if !ok {
		return p.error(errors.UnrecognizedValue("routing mode", fields[0]))
	}

	config.RoutingMode = mode
	return nil
}

// parseRIP parses the rip directive family
func (p *Parser) parseRIP(config *IPConfig) error {
	fields, perr := ripCommandPattern.match(p.current.Text)
	if perr != nil {
		return p.error(perr)
	}

	switch command := fields[0]; command {
	case KeywordAdvertiseTo:
		fields, perr := ripAdvertisePattern.match(p.current.Text)
		if perr != nil {
			return p.error(perr)
		}
		dest, err := p.parseAddr("RIP neighbor address", fields[0])
		if err != nil {
			return err
		}
		config.RipNeighbors = append(config.RipNeighbors, RIPNeighbor{Dest: dest})
		return nil
	case KeywordPeriodicUpdateRate:
		return p.parseTimer(ripUpdateRatePattern, &config.RipPeriodicUpdateRate)
	case KeywordRouteTimeoutThreshold:
		return p.parseTimer(ripTimeoutPattern, &config.RipTimeoutThreshold)
	default:
		return p.error(errors.UnrecognizedValue("RIP directive", command))
	}
}

// parseTCP parses the tcp directive family
func (p *Parser) parseTCP(config *IPConfig) error {
	fields, perr := tcpCommandPattern.match(p.current.Text)
	if perr != nil {
		return p.error(perr)
	}

	switch command := fields[0]; command {
	case KeywordRTOMin:
		return p.parseTimer(tcpRTOMinPattern, &config.TCPRTOMin)
	case KeywordRTOMax:
		return p.parseTimer(tcpRTOMaxPattern, &config.TCPRTOMax)
	default:
		return p.error(errors.UnrecognizedValue("TCP directive", command))
	}
}

// parseRoute parses: route <ip>/<prefix> via <ip>
func (p *Parser) parseRoute(config *IPConfig) error {
	fields, perr := routePattern.match(p.current.Text)
	if perr != nil {
		return p.error(perr)
	}

	network, err := p.parseAddr("route network address", fields[0])
	if err != nil {
		return err
	}
	nextHop, err := p.parseAddr("route next hop", fields[2])
	if err != nil {
		return err
	}

	config.StaticRoutes = append(config.StaticRoutes, StaticRoute{
		NetworkAddr: network,
		PrefixLen:   parsePrefixLen(fields[1]),
		NextHop:     nextHop,
	})
	return nil
}

// parseTimer overwrites *dst with the single unsigned field of pt
func (p *Parser) parseTimer(pt pattern, dst *uint64) error {
	fields, perr := pt.match(p.current.Text)
	if perr != nil {
		return p.error(perr)
	}

	value, err := strconv.ParseUint(fields[0], 10, 64)
	if err != nil {
		return p.error(errors.NumberRange(pt.directive, fields[0], err))
	}

	*dst = value
	return nil
}

// parseAddr converts a dotted-quad literal to an IPv4 address
func (p *Parser) parseAddr(field, s string) (netip.Addr, error) {
	addr, err := netip.ParseAddr(s)
	if err != nil {
		return netip.Addr{}, p.error(errors.AddressFormat(field, s, err))
	}
	if !addr.Is4() {
		return netip.Addr{}, p.error(errors.AddressFormat(field, s, fmt.Errorf("not an IPv4 address")))
	}
	return addr, nil
}

// parsePort converts a decimal port, rejecting values above 65535
func (p *Parser) parsePort(s string) (uint16, error) {
	port, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		return 0, p.error(errors.NumberRange("UDP port", s, err))
	}
	return uint16(port), nil
}

// parsePrefixLen converts the 1-2 digit prefix field matched by a pattern
func parsePrefixLen(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

// error attaches the current position to a parse error
func (p *Parser) error(e *errors.Error) error {
	e.AtLine(p.current.Line, p.current.Text)
	e.Source = p.source
	return e
}
