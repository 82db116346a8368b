// Package resolver turns a user-supplied server address into a connectable
// host and port. Hosts without an explicit port are first looked up via the
// _minecraft._tcp SRV record, the redirection mechanism most hosting
// providers rely on, before falling back to the literal host on the
// default port.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
)

// DefaultPort is the well-known Minecraft server port.
const DefaultPort = 25565

const (
	srvService = "minecraft"
	srvProto   = "tcp"
)

// ErrResolutionFailed is returned when neither the SRV chain nor the
// literal host yields a usable target. It is fatal for the whole query.
var ErrResolutionFailed = errors.New("address resolution failed")

// Address is the parsed form of the user input, before any DNS work.
type Address struct {
	Host         string
	Port         uint16
	ExplicitPort bool
}

// Target is a connectable endpoint derived from an Address.
type Target struct {
	Host string
	Port uint16
}

// Addr returns the target in host:port form.
func (t Target) Addr() string {
	return net.JoinHostPort(t.Host, strconv.Itoa(int(t.Port)))
}

// ParseAddress splits input into host and optional port. A missing port
// leaves ExplicitPort false and the port at DefaultPort.
func ParseAddress(input string) (Address, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return Address{}, fmt.Errorf("%w: empty address", ErrResolutionFailed)
	}

	host, portStr, err := net.SplitHostPort(input)
	if err != nil {
		// No port suffix; treat the whole input as a host.
		return Address{Host: input, Port: DefaultPort}, nil
	}

	port, err := strconv.ParseUint(portStr, 10, 16)
	if err != nil || port == 0 {
		return Address{}, fmt.Errorf("%w: invalid port %q", ErrResolutionFailed, portStr)
	}
	return Address{Host: host, Port: uint16(port), ExplicitPort: true}, nil
}

// lookups abstracts the DNS queries so tests can inject answers.
type lookups interface {
	LookupSRV(ctx context.Context, service, proto, name string) (string, []*net.SRV, error)
	LookupHost(ctx context.Context, host string) ([]string, error)
}

// Resolver resolves addresses through an ordered chain of strategies:
// SRV redirection first (when applicable), then the literal host.
type Resolver struct {
	dns     lookups
	skipSRV bool
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithoutSRV disables the SRV lookup entirely, resolving the literal host
// even when no port was given.
func WithoutSRV() Option {
	return func(r *Resolver) { r.skipSRV = true }
}

// withLookups overrides the DNS backend; used by tests.
func withLookups(l lookups) Option {
	return func(r *Resolver) { r.dns = l }
}

// New creates a Resolver backed by the system DNS resolver.
func New(opts ...Option) *Resolver {
	r := &Resolver{dns: net.DefaultResolver}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve parses input and runs the resolution chain. Each strategy either
// produces a target or passes; only exhausting the chain is an error.
func (r *Resolver) Resolve(ctx context.Context, input string) (Target, error) {
	addr, err := ParseAddress(input)
	if err != nil {
		return Target{}, err
	}
	return r.ResolveAddress(ctx, addr)
}

// ResolveAddress runs the resolution chain for an already-parsed address.
func (r *Resolver) ResolveAddress(ctx context.Context, addr Address) (Target, error) {
	for _, strat := range []func(context.Context, Address) (Target, bool, error){
		r.resolveSRV,
		r.resolveLiteral,
	} {
		target, ok, err := strat(ctx, addr)
		if err != nil {
			return Target{}, err
		}
		if ok {
			return target, nil
		}
	}
	return Target{}, fmt.Errorf("%w: %s", ErrResolutionFailed, addr.Host)
}

// resolveSRV follows the _minecraft._tcp record. Any lookup failure is a
// pass, not an error: old DNS setups routinely NXDOMAIN the SRV name.
func (r *Resolver) resolveSRV(ctx context.Context, addr Address) (Target, bool, error) {
	if addr.ExplicitPort || r.skipSRV || net.ParseIP(addr.Host) != nil {
		return Target{}, false, nil
	}

	_, records, err := r.dns.LookupSRV(ctx, srvService, srvProto, addr.Host)
	if err != nil || len(records) == 0 {
		if ctx.Err() != nil {
			return Target{}, false, ctx.Err()
		}
		return Target{}, false, nil
	}

	rec := records[0]
	return Target{Host: strings.TrimSuffix(rec.Target, "."), Port: rec.Port}, true, nil
}

// resolveLiteral uses the host as given. Hostnames are checked against DNS
// so an unresolvable name surfaces as ErrResolutionFailed instead of a
// confusing dial error later.
func (r *Resolver) resolveLiteral(ctx context.Context, addr Address) (Target, bool, error) {
	if net.ParseIP(addr.Host) == nil {
		if _, err := r.dns.LookupHost(ctx, addr.Host); err != nil {
			if ctx.Err() != nil {
				return Target{}, false, ctx.Err()
			}
			return Target{}, false, fmt.Errorf("%w: %s: %w", ErrResolutionFailed, addr.Host, err)
		}
	}
	return Target{Host: addr.Host, Port: addr.Port}, true, nil
}
