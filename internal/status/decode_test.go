package status

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestDecodeBasic(t *testing.T) {
	raw := []byte(`{"version":{"name":"1.20","protocol":763},` +
		`"players":{"online":5,"max":20,"sample":[{"name":"Alice","id":"af74a02d-19cb-445b-b07f-6866a861f783"}]},` +
		`"description":"A server"}`)

	resp, err := Decode(raw)
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}

	if resp.Version.Name != "1.20" || resp.Version.Protocol != 763 {
		t.Errorf("version = %+v", resp.Version)
	}
	if resp.Players.Online != 5 || resp.Players.Max != 20 {
		t.Errorf("players = %+v", resp.Players)
	}
	if len(resp.Players.Sample) != 1 {
		t.Fatalf("sample length = %d, want 1", len(resp.Players.Sample))
	}
	sample := resp.Players.Sample[0]
	if sample.Name != "Alice" {
		t.Errorf("sample name = %q", sample.Name)
	}
	if sample.ID == uuid.Nil {
		t.Errorf("sample uuid not parsed")
	}
	if resp.Description.Plain() != "A server" {
		t.Errorf("description = %q", resp.Description.Plain())
	}
	if resp.Favicon != nil {
		t.Errorf("favicon should be absent")
	}
	if resp.Mods != nil || resp.Channels != nil {
		t.Errorf("forge data should be absent")
	}
	if string(resp.RawJSON) != string(raw) {
		t.Errorf("raw json not preserved")
	}
}

func TestDecodeStructuredDescription(t *testing.T) {
	raw := []byte(`{"players":{"online":0,"max":10},` +
		`"description":{"text":"Hello ","color":"gold","bold":true,` +
		`"extra":[{"text":"World","color":"red"},{"text":"!"}]}}`)

	resp, err := Decode(raw)
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if got := resp.Description.Plain(); got != "Hello World!" {
		t.Errorf("Plain() = %q, want %q", got, "Hello World!")
	}

	spans := resp.Description.Flatten()
	if len(spans) != 3 {
		t.Fatalf("span count = %d, want 3", len(spans))
	}
	// Children inherit bold from the parent; color is overridden by the
	// second span and inherited by the third.
	if !spans[1].Style.Bold || spans[1].Style.Color != "red" {
		t.Errorf("span[1] style = %+v", spans[1].Style)
	}
	if !spans[2].Style.Bold || spans[2].Style.Color != "red" {
		t.Errorf("span[2] style = %+v", spans[2].Style)
	}
}

func TestDecodeDescriptionArray(t *testing.T) {
	raw := []byte(`{"players":{"online":1,"max":2},` +
		`"description":[{"text":"a"},{"text":"b"}]}`)

	resp, err := Decode(raw)
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if got := resp.Description.Plain(); got != "ab" {
		t.Errorf("Plain() = %q, want %q", got, "ab")
	}
}

func TestDecodeMissingPlayers(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"no players object", `{"version":{"name":"1.20","protocol":763}}`},
		{"missing online", `{"players":{"max":20}}`},
		{"missing max", `{"players":{"online":5}}`},
		{"online not integer", `{"players":{"online":"5","max":20}}`},
		{"not json", `{"players":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode([]byte(tt.raw)); !errors.Is(err, ErrMalformedStatus) {
				t.Errorf("Decode() error = %v, want ErrMalformedStatus", err)
			}
		})
	}
}

func TestDecodeSampleLongerThanMax(t *testing.T) {
	// The protocol does not promise len(sample) <= max; the decoder must
	// pass it through untouched.
	raw := []byte(`{"players":{"online":3,"max":1,"sample":[` +
		`{"name":"a","id":""},{"name":"b","id":""},{"name":"c","id":""}]}}`)

	resp, err := Decode(raw)
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if len(resp.Players.Sample) != 3 {
		t.Errorf("sample length = %d, want 3", len(resp.Players.Sample))
	}
	if resp.Players.Sample[0].ID != uuid.Nil {
		t.Errorf("unparseable id should map to uuid.Nil")
	}
}

func TestDecodeForgeData(t *testing.T) {
	raw := []byte(`{"players":{"online":0,"max":20},` +
		`"forgeData":{"fmlNetworkVersion":3,` +
		`"mods":[{"modId":"forge","modmarker":"ANY"},{"modId":"jei","modmarker":"15.2.0.27"}],` +
		`"channels":[{"res":"forge:handshake","version":"1.2","required":true}]}}`)

	resp, err := Decode(raw)
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if len(resp.Mods) != 2 || resp.Mods[1].ID != "jei" || resp.Mods[1].Version != "15.2.0.27" {
		t.Errorf("mods = %+v", resp.Mods)
	}
	if len(resp.Channels) != 1 {
		t.Fatalf("channels = %+v", resp.Channels)
	}
	ch := resp.Channels[0]
	if ch.Name != "forge:handshake" || ch.Version != "1.2" || !ch.Required {
		t.Errorf("channel = %+v", ch)
	}
}

func TestDecodeLegacyModInfo(t *testing.T) {
	raw := []byte(`{"players":{"online":0,"max":20},` +
		`"modinfo":{"type":"FML","modList":[{"modid":"mcp","version":"9.42"},{"modid":"buildcraft","version":"7.99"}]}}`)

	resp, err := Decode(raw)
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if len(resp.Mods) != 2 || resp.Mods[0].ID != "mcp" {
		t.Errorf("mods = %+v", resp.Mods)
	}
	if resp.Channels != nil {
		t.Errorf("modinfo carries no channels, got %+v", resp.Channels)
	}
}

func TestDecodeFavicon(t *testing.T) {
	// "data:image/png;base64," + base64("PNG")
	raw := []byte(`{"players":{"online":0,"max":0},"favicon":"data:image/png;base64,UE5H"}`)

	resp, err := Decode(raw)
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if resp.Favicon == nil {
		t.Fatal("favicon should be present")
	}
	if string(resp.Favicon.Bytes()) != "PNG" {
		t.Errorf("favicon bytes = %q", resp.Favicon.Bytes())
	}
	if resp.Favicon.Fingerprint() == 0 {
		t.Errorf("fingerprint should be non-zero for non-empty data")
	}
}

func TestDecodeBadFavicon(t *testing.T) {
	raw := []byte(`{"players":{"online":0,"max":0},"favicon":"data:image/png;base64,!!!"}`)
	if _, err := Decode(raw); !errors.Is(err, ErrMalformedStatus) {
		t.Fatalf("Decode() error = %v, want ErrMalformedStatus", err)
	}
}
