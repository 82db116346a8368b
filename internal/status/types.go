// Package status decodes the server list ping payloads into structured
// records: the modern JSON status document, the forge mod extension and
// the legacy plaintext ping format.
package status

import (
	"time"

	"github.com/google/uuid"
)

// Response is the decoded result of one status query.
//
// Version.Protocol, Players.Online and Players.Max are always set; every
// other field may be absent. Nil slices and nil pointers mean the server
// did not send the data, as opposed to sending an empty value.
type Response struct {
	Version     Version
	Players     Players
	Description Description

	// Favicon is the decoded server icon, nil when the server sent none.
	Favicon *Favicon

	// Mods and Channels carry the forge extension; nil means the server
	// is not forge-modded, which is not an error.
	Mods     []Mod
	Channels []Channel

	// Latency is the ping round-trip time, zero when not measured.
	Latency time.Duration

	// Legacy is true when the response came from the pre-JSON ping path.
	Legacy bool

	// RawJSON preserves the original payload text for the modern path.
	RawJSON []byte
}

// Version identifies the server software version and protocol number.
type Version struct {
	Name     string
	Protocol int32
}

// Players carries the player counts and the optional sample list. The
// protocol does not guarantee len(Sample) <= Max.
type Players struct {
	Online int32
	Max    int32
	Sample []PlayerSample
}

// PlayerSample is one entry of the advertised player sample. ID is
// uuid.Nil when the server sent no parseable UUID.
type PlayerSample struct {
	Name string
	ID   uuid.UUID
}

// Mod is one entry of the forge mod list.
type Mod struct {
	ID      string
	Version string
}

// Channel is one forge network channel advertisement.
type Channel struct {
	Name     string
	Version  string
	Required bool
}
