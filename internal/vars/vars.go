// Package vars holds build-time variables populated via the linker.
package vars

import (
	"fmt"
	"time"
)

var (
	// Name of the binary.
	Name = "mcstat"

	// Version is the git tag, e.g. v1.2.3.
	Version = "dev"

	// Commit is the git SHA the binary was built from.
	Commit = "unknown"

	// BuildTime is RFC3339 UTC, set at build.
	BuildTime = time.Unix(0, 0)

	_buildTime string
)

func init() {
	if _buildTime != "" {
		if t, err := time.Parse(time.RFC3339, _buildTime); err == nil {
			BuildTime = t.UTC()
		}
	}
}

// Print writes the build information to standard output.
func Print() {
	fmt.Printf("name:    %s\nversion: %s\ncommit:  %s\nbuilt:   %s\n",
		Name, Version, Commit, BuildTime.Format(time.RFC3339))
}
