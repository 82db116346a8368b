package status

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrMalformedStatus is returned when the status payload is not valid
// JSON or is missing the fields the protocol guarantees.
var ErrMalformedStatus = errors.New("malformed status payload")

// wireStatus mirrors the status JSON document. Pointer fields distinguish
// absent from zero.
type wireStatus struct {
	Version struct {
		Name     string `json:"name"`
		Protocol *int32 `json:"protocol"`
	} `json:"version"`
	Players *struct {
		Online *int32       `json:"online"`
		Max    *int32       `json:"max"`
		Sample []wireSample `json:"sample"`
	} `json:"players"`
	Description json.RawMessage `json:"description"`
	Favicon     string          `json:"favicon"`
	ModInfo     *wireModInfo    `json:"modinfo"`
	ForgeData   *wireForgeData  `json:"forgeData"`
}

type wireSample struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// Decode parses a modern status payload into a Response. The original
// payload text is preserved in RawJSON.
func Decode(raw []byte) (*Response, error) {
	var wire wireStatus
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedStatus, err)
	}

	if wire.Players == nil || wire.Players.Online == nil || wire.Players.Max == nil {
		return nil, fmt.Errorf("%w: missing players.online or players.max", ErrMalformedStatus)
	}

	resp := &Response{
		Version: Version{Name: wire.Version.Name},
		Players: Players{
			Online: *wire.Players.Online,
			Max:    *wire.Players.Max,
		},
		RawJSON: append([]byte(nil), raw...),
	}
	if wire.Version.Protocol != nil {
		resp.Version.Protocol = *wire.Version.Protocol
	}

	if len(wire.Players.Sample) > 0 {
		resp.Players.Sample = make([]PlayerSample, 0, len(wire.Players.Sample))
		for _, s := range wire.Players.Sample {
			entry := PlayerSample{Name: s.Name}
			// Sample IDs are frequently fake or zeroed; a bad UUID is not
			// a protocol violation.
			if id, err := uuid.Parse(s.ID); err == nil {
				entry.ID = id
			}
			resp.Players.Sample = append(resp.Players.Sample, entry)
		}
	}

	if len(wire.Description) > 0 {
		if err := json.Unmarshal(wire.Description, &resp.Description); err != nil {
			return nil, fmt.Errorf("%w: description: %w", ErrMalformedStatus, err)
		}
	}

	favicon, err := ParseFavicon(wire.Favicon)
	if err != nil {
		return nil, err
	}
	resp.Favicon = favicon

	decodeForge(&wire, resp)

	return resp, nil
}
