// Package logger initializes the global zerolog instance for the CLI.
// The protocol packages never log; diagnostics belong to this layer.
package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config holds the logger flag group.
type Config struct {
	Level  string `long:"level" env:"LEVEL" description:"Log level (trace, debug, info, warn, error)" default:"warn"`
	Format string `long:"format" env:"FORMAT" description:"Log format (console or json)" default:"console"`
}

// Setup configures the global logger. Logs always go to stderr so they
// never mix with the status output on stdout.
func Setup(cfg Config) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.WarnLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.Format == "json" {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
		return
	}

	writer := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}
	if os.Getenv("NO_COLOR") != "" || !isTerminal(os.Stderr) {
		writer.NoColor = true
	}
	log.Logger = log.Output(writer)
}

// isTerminal checks whether f refers to a character device.
func isTerminal(f *os.File) bool {
	stat, err := f.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) != 0
}
