// main is the entry point of the mcstat CLI. It resolves the requested
// servers, runs the status probes, and renders the results; all protocol
// work lives in the internal packages.
package main

import (
	"context"
	"errors"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/statcraft/mcstat/internal/batch"
	"github.com/statcraft/mcstat/internal/config"
	"github.com/statcraft/mcstat/internal/geoip"
	"github.com/statcraft/mcstat/internal/logger"
	"github.com/statcraft/mcstat/internal/ping"
	"github.com/statcraft/mcstat/internal/render"
	"github.com/statcraft/mcstat/internal/resolver"
)

// Exit codes, one per error kind the probe can surface.
const (
	exitOK = iota
	exitFailure
	exitResolution
	exitConnect
	exitTimeout
)

func main() {
	_ = godotenv.Load()

	cfg := config.Parse()
	logger.Setup(cfg.Logger)

	addresses := cfg.Args.Addresses
	if cfg.Batch.TargetsFile != "" {
		fromFile, err := config.LoadTargets(cfg.Batch.TargetsFile)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load targets file")
		}
		addresses = append(addresses, fromFile...)
	}

	var geo *geoip.Provider
	if cfg.Query.GeoIP != "" {
		var err error
		geo, err = geoip.Open(cfg.Query.GeoIP)
		if err != nil {
			log.Error().Err(err).Msg("Failed to open GeoIP database, country detection disabled")
		} else {
			defer func() {
				if err := geo.Close(); err != nil {
					log.Error().Err(err).Msg("Error closing GeoIP database")
				}
			}()
		}
	}

	var resolverOpts []resolver.Option
	if cfg.Query.NoSRV {
		resolverOpts = append(resolverOpts, resolver.WithoutSRV())
	}

	prober := batch.New(
		resolver.New(resolverOpts...),
		geo,
		ping.Options{
			ProtocolVersion: cfg.Query.Protocol,
			Timeout:         cfg.Query.Timeout,
		},
		cfg.Batch.Concurrency,
		cfg.Batch.Rate,
	)

	renderOpts := render.Options{
		Raw:    cfg.Output.Raw,
		Image:  cfg.Output.Image,
		Size:   cfg.Output.Size,
		Color:  cfg.Output.Color,
		Invert: cfg.Output.Invert,
	}

	ctx := context.Background()

	var results []batch.Result
	if len(addresses) == 1 {
		results = []batch.Result{prober.Probe(ctx, addresses[0])}
	} else {
		log.Debug().Int("targets", len(addresses)).Msg("Starting batch probe")
		results = prober.Run(ctx, addresses)
	}

	exit := exitOK
	for i, res := range results {
		if i > 0 {
			os.Stdout.WriteString("\n")
		}
		if res.Err != nil {
			diagnose(res)
			if exit == exitOK {
				exit = exitCode(res.Err)
			}
			continue
		}
		if err := render.Status(os.Stdout, res.Address, res.Target, res.Response, res.Country, renderOpts); err != nil {
			log.Error().Err(err).Str("address", res.Address).Msg("Failed to render status")
			exit = exitFailure
		}
	}

	os.Exit(exit)
}

// diagnose logs one clear line per error kind.
func diagnose(res batch.Result) {
	evt := log.Error().Str("address", res.Address)
	switch {
	case errors.Is(res.Err, resolver.ErrResolutionFailed):
		evt.Err(res.Err).Msg("Could not resolve server address")
	case errors.Is(res.Err, ping.ErrTimeout):
		evt.Err(res.Err).Msg("Server did not answer in time")
	case errors.Is(res.Err, ping.ErrConnect):
		evt.Err(res.Err).Msg("Could not connect to server")
	case errors.Is(res.Err, ping.ErrProtocol):
		evt.Err(res.Err).Msg("Server speaks no known status protocol")
	default:
		evt.Err(res.Err).Msg("Query failed")
	}
}

func exitCode(err error) int {
	switch {
	case errors.Is(err, resolver.ErrResolutionFailed):
		return exitResolution
	case errors.Is(err, ping.ErrTimeout):
		return exitTimeout
	case errors.Is(err, ping.ErrConnect):
		return exitConnect
	default:
		return exitFailure
	}
}
