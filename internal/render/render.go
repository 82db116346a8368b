// Package render prints decoded status records for the terminal: an
// aligned key/value table, the MOTD with its formatting mapped to ANSI,
// and optionally the server icon as ASCII art.
package render

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/statcraft/mcstat/internal/resolver"
	"github.com/statcraft/mcstat/internal/status"
)

// Options control what gets printed.
type Options struct {
	Raw    bool
	Image  bool
	Size   uint
	Color  bool
	Invert bool
}

// Status writes the full report for one probed server.
func Status(w io.Writer, address string, target resolver.Target, resp *status.Response, country string, opts Options) error {
	var t table

	if motd := renderDescription(&resp.Description); motd != "" {
		t.big("Description", motd)
	}
	if len(resp.Players.Sample) > 0 {
		names := make([]string, len(resp.Players.Sample))
		for i, p := range resp.Players.Sample {
			names[i] = legacyToANSI(p.Name)
		}
		t.big("Player Sample", strings.Join(names, "\n"))
	}
	if len(resp.Mods) > 0 {
		lines := make([]string, len(resp.Mods))
		for i, m := range resp.Mods {
			lines[i] = fmt.Sprintf("%s %s", m.ID, m.Version)
		}
		t.big(fmt.Sprintf("Mods (%d)", len(resp.Mods)), strings.Join(lines, "\n"))
	}

	t.small("Address", address)
	if target.Addr() != address {
		t.small("Resolved", target.Addr())
	}
	if resp.Version.Name != "" {
		t.small("Server Version", legacyToANSI(resp.Version.Name))
	}
	t.small("Server Protocol", fmt.Sprintf("%d", resp.Version.Protocol))
	t.small("Online Players", fmt.Sprintf("%d", resp.Players.Online))
	t.small("Max Players", fmt.Sprintf("%d", resp.Players.Max))
	if resp.Latency > 0 {
		t.small("Latency", resp.Latency.Round(time.Millisecond).String())
	}
	if resp.Legacy {
		t.small("Protocol Era", "legacy ping")
	}
	if country != "" {
		t.small("Country", country)
	}
	if len(resp.Channels) > 0 {
		t.small("Forge Channels", fmt.Sprintf("%d", len(resp.Channels)))
	}
	if resp.Favicon != nil {
		t.small("Icon Hash", fmt.Sprintf("%016x", resp.Favicon.Fingerprint()))
	}

	if err := t.print(w); err != nil {
		return err
	}

	if opts.Image && resp.Favicon != nil {
		art, err := asciiIcon(resp.Favicon, opts)
		if err != nil {
			return fmt.Errorf("render icon: %w", err)
		}
		if _, err := fmt.Fprintln(w, art); err != nil {
			return err
		}
	}

	if opts.Raw && len(resp.RawJSON) > 0 {
		if _, err := fmt.Fprintln(w, string(resp.RawJSON)); err != nil {
			return err
		}
	}

	return nil
}

// table collects small (one-line, aligned) and big (block) entries and
// prints them in insertion order.
type table struct {
	entries []entry
	width   int
}

type entry struct {
	label string
	value string
	block bool
}

func (t *table) small(label, value string) {
	if len(label) > t.width {
		t.width = len(label)
	}
	t.entries = append(t.entries, entry{label: label, value: value})
}

func (t *table) big(label, value string) {
	t.entries = append(t.entries, entry{label: label, value: value, block: true})
}

func (t *table) print(w io.Writer) error {
	for _, e := range t.entries {
		var err error
		if e.block {
			_, err = fmt.Fprintf(w, "=====%s=====\n%s\n============%s\n",
				e.label, e.value, strings.Repeat("=", len(e.label)))
		} else {
			_, err = fmt.Fprintf(w, "%-*s | %s\n", t.width, e.label, e.value)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
