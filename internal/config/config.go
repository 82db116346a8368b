// Package config handles the parsing and validation of the CLI
// configuration from command-line arguments, environment variables and an
// optional YAML targets file.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/statcraft/mcstat/internal/logger"
	"github.com/statcraft/mcstat/internal/vars"
	"gopkg.in/yaml.v3"
)

// Config represents the complete flags configuration.
type Config struct {
	Query  Query         `group:"Query Options" env-namespace:"MCSTAT"`
	Output Output        `group:"Output Options" namespace:"out" env-namespace:"MCSTAT_OUT"`
	Batch  Batch         `group:"Batch Options" namespace:"batch" env-namespace:"MCSTAT_BATCH"`
	Logger logger.Config `group:"Logger Options" namespace:"log" env-namespace:"MCSTAT_LOG"`

	Version bool `short:"v" long:"version" description:"Print version and build info"`

	Args struct {
		Addresses []string `positional-arg-name:"address" description:"Server address, host or host:port"`
	} `positional-args:"yes"`
}

// Query holds the options of a single status probe.
type Query struct {
	Protocol int32         `short:"p" long:"protocol" env:"PROTOCOL" description:"Protocol version number sent in the handshake" default:"767"`
	Timeout  time.Duration `short:"t" long:"timeout" env:"TIMEOUT" description:"Overall timeout per server" default:"5s"`
	NoSRV    bool          `long:"no-srv" env:"NO_SRV" description:"Skip the DNS SRV lookup and use the literal host"`
	GeoIP    string        `long:"geoip" env:"GEOIP" description:"Path to a MMDB file for country annotation"`
}

// Output holds the presentation options.
type Output struct {
	Raw    bool `short:"r" long:"raw" description:"Print the raw JSON status payload"`
	Image  bool `short:"i" long:"image" description:"Render the server icon as ASCII art"`
	Size   uint `short:"s" long:"size" description:"ASCII art height in rows" default:"16"`
	Color  bool `short:"c" long:"color" description:"Colorize the ASCII art"`
	Invert bool `long:"invert" description:"Invert the ASCII art brightness"`
}

// Batch holds the multi-target prober options.
type Batch struct {
	TargetsFile string  `short:"f" long:"file" env:"FILE" description:"YAML file with a servers list to query"`
	Concurrency int     `long:"concurrency" env:"CONCURRENCY" description:"Concurrent probes in batch mode" default:"4"`
	Rate        float64 `long:"rate" env:"RATE" description:"Probe launches per second in batch mode" default:"8"`
}

// Parse reads the configuration from flags and environment variables. It
// terminates the process on usage errors, help, or --version.
func Parse() *Config {
	var cfg Config
	parser := flags.NewParser(&cfg, flags.Default)
	parser.NamespaceDelimiter = "-"

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if cfg.Version {
		vars.Print()
		os.Exit(0)
	}

	if len(cfg.Args.Addresses) == 0 && cfg.Batch.TargetsFile == "" {
		fmt.Fprintln(os.Stderr, "No server address given: pass one or more addresses or --batch-file")
		os.Exit(1)
	}

	if cfg.Batch.Concurrency < 1 {
		cfg.Batch.Concurrency = 1
	}

	return &cfg
}

// targetsFile is the YAML shape of --batch-file.
type targetsFile struct {
	Servers []string `yaml:"servers"`
}

// LoadTargets reads the YAML servers list.
func LoadTargets(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var tf targetsFile
	if err := yaml.Unmarshal(data, &tf); err != nil {
		return nil, fmt.Errorf("parse targets file %s: %w", path, err)
	}
	if len(tf.Servers) == 0 {
		return nil, fmt.Errorf("targets file %s lists no servers", path)
	}
	return tf.Servers, nil
}
