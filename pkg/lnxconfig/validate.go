package lnxconfig

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"go4.org/netipx"

	"github.com/akam1o/lnxconfig/pkg/errors"
)

const maxPrefixLen = 32

// Validate performs semantic validation on the configuration. The parser
// only checks syntax; Validate checks the references between records and
// reports every violation found, not just the first.
func (c *IPConfig) Validate() error {
	if c == nil {
		return errors.New(
			errors.ErrCodeConfigValidation,
			"Configuration is nil",
			"Internal error: configuration object is nil",
			"Report this issue to the maintainers",
		)
	}

	var result *multierror.Error

	result = multierror.Append(result, c.validateInterfaces()...)
	result = multierror.Append(result, c.validateNeighbors()...)
	result = multierror.Append(result, c.validateRIP()...)
	result = multierror.Append(result, c.validateRoutes()...)
	result = multierror.Append(result, c.validateTimers()...)

	if err := result.ErrorOrNil(); err != nil {
		return errors.ConfigValidation(err)
	}
	return nil
}

// Violations returns the individual problems held by a validation error
func Violations(err error) []error {
	var merr *multierror.Error
	if !errors.As(err, &merr) {
		if err == nil {
			return nil
		}
		return []error{err}
	}
	return merr.WrappedErrors()
}

func (c *IPConfig) validateInterfaces() []error {
	var errs []error
	seen := make(map[string]bool, len(c.Interfaces))

	for _, iface := range c.Interfaces {
		if seen[iface.Name] {
			errs = append(errs, fmt.Errorf("interface %s: declared more than once", iface.Name))
		}
		seen[iface.Name] = true

		if iface.PrefixLen < 0 || iface.PrefixLen > maxPrefixLen {
			errs = append(errs, fmt.Errorf("interface %s: prefix length %d out of range (0-%d)",
				iface.Name, iface.PrefixLen, maxPrefixLen))
		}
	}

	return errs
}

func (c *IPConfig) validateNeighbors() []error {
	var errs []error
	for _, n := range c.Neighbors {
		if _, ok := c.Interface(n.InterfaceName); !ok {
			errs = append(errs, fmt.Errorf("neighbor %s: via unknown interface %s", n.DestAddr, n.InterfaceName))
		}
	}
	return errs
}

func (c *IPConfig) validateRIP() []error {
	neighbors := make(map[string]bool, len(c.Neighbors))
	for _, n := range c.Neighbors {
		neighbors[n.DestAddr.String()] = true
	}

	var errs []error
	for _, r := range c.RipNeighbors {
		if !neighbors[r.Dest.String()] {
			errs = append(errs, fmt.Errorf("rip advertise-to %s: not a declared neighbor", r.Dest))
		}
	}
	return errs
}

func (c *IPConfig) validateRoutes() []error {
	var errs []error

	// Next hops must be on a directly connected network
	var b netipx.IPSetBuilder
	for _, iface := range c.Interfaces {
		if p := iface.AssignedPrefix(); p.IsValid() {
			b.AddPrefix(p.Masked())
		}
	}
	onLink, err := b.IPSet()
	if err != nil {
		return append(errs, fmt.Errorf("failed to build interface address set: %w", err))
	}

	for _, r := range c.StaticRoutes {
		if r.PrefixLen < 0 || r.PrefixLen > maxPrefixLen {
			errs = append(errs, fmt.Errorf("route %s/%d: prefix length out of range (0-%d)",
				r.NetworkAddr, r.PrefixLen, maxPrefixLen))
		}
		if !onLink.Contains(r.NextHop) {
			errs = append(errs, fmt.Errorf("route %s/%d: next hop %s is not on any interface network",
				r.NetworkAddr, r.PrefixLen, r.NextHop))
		}
	}

	return errs
}

func (c *IPConfig) validateTimers() []error {
	var errs []error
	if c.TCPRTOMin > c.TCPRTOMax {
		errs = append(errs, fmt.Errorf("tcp rto-min %d exceeds rto-max %d", c.TCPRTOMin, c.TCPRTOMax))
	}
	if c.RipPeriodicUpdateRate >= c.RipTimeoutThreshold {
		errs = append(errs, fmt.Errorf("rip periodic-update-rate %d must be below route-timeout-threshold %d",
			c.RipPeriodicUpdateRate, c.RipTimeoutThreshold))
	}
	return errs
}
