// Package batch probes several servers concurrently. Each target gets its
// own session and timeout, so one unresponsive server never stalls the
// others, and a rate limiter spaces out probe launches.
package batch

import (
	"context"
	"sync"

	"golang.org/x/time/rate"

	"github.com/statcraft/mcstat/internal/geoip"
	"github.com/statcraft/mcstat/internal/ping"
	"github.com/statcraft/mcstat/internal/resolver"
	"github.com/statcraft/mcstat/internal/status"
)

// Result is the outcome of probing one address.
type Result struct {
	Address  string
	Target   resolver.Target
	Response *status.Response
	Country  string
	Err      error
}

// Prober runs status queries over a bounded worker pool.
type Prober struct {
	resolver *resolver.Resolver
	geo      *geoip.Provider
	opts     ping.Options
	workers  int
	limiter  *rate.Limiter
}

// New creates a Prober. probesPerSecond <= 0 disables rate limiting; geo
// may be nil.
func New(res *resolver.Resolver, geo *geoip.Provider, opts ping.Options, workers int, probesPerSecond float64) *Prober {
	if workers < 1 {
		workers = 1
	}
	limit := rate.Inf
	if probesPerSecond > 0 {
		limit = rate.Limit(probesPerSecond)
	}
	return &Prober{
		resolver: res,
		geo:      geo,
		opts:     opts,
		workers:  workers,
		limiter:  rate.NewLimiter(limit, 1),
	}
}

// Run probes every address and returns the results in input order.
func (p *Prober) Run(ctx context.Context, addresses []string) []Result {
	results := make([]Result, len(addresses))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < p.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				results[idx] = p.probe(ctx, addresses[idx])
			}
		}()
	}

	for idx := range addresses {
		jobs <- idx
	}
	close(jobs)
	wg.Wait()

	return results
}

// Probe runs a single address through the same resolve/query/annotate
// pipeline the batch workers use.
func (p *Prober) Probe(ctx context.Context, address string) Result {
	return p.probe(ctx, address)
}

func (p *Prober) probe(ctx context.Context, address string) Result {
	result := Result{Address: address}

	if err := p.limiter.Wait(ctx); err != nil {
		result.Err = err
		return result
	}

	// The per-target deadline covers DNS resolution as well as the
	// session itself.
	timeout := p.opts.Timeout
	if timeout <= 0 {
		timeout = ping.DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	target, err := p.resolver.Resolve(ctx, address)
	if err != nil {
		result.Err = err
		return result
	}
	result.Target = target

	resp, err := ping.QueryTarget(ctx, target, p.opts)
	if err != nil {
		result.Err = err
		return result
	}
	result.Response = resp
	result.Country = p.geo.CountryForHost(ctx, target.Host)

	return result
}
