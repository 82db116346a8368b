package status

import (
	"fmt"
	"strconv"
	"strings"
)

// legacyPrefix marks the 1.6-style null-separated response. 1.4-style
// responses instead separate the three fields with § itself.
const legacyPrefix = "§1\x00"

// ParseLegacy parses the decoded text of a legacy ping response into a
// Response. Two payload shapes exist:
//
//	§1 NUL protocol NUL [version NUL] motd NUL online NUL max
//	motd § online § max
func ParseLegacy(payload string) (*Response, error) {
	if rest, ok := strings.CutPrefix(payload, legacyPrefix); ok {
		return parseLegacy16(rest)
	}
	return parseLegacy14(payload)
}

func parseLegacy16(rest string) (*Response, error) {
	fields := strings.Split(rest, "\x00")

	var protocolStr, versionName, motd, onlineStr, maxStr string
	switch len(fields) {
	case 5:
		protocolStr, versionName, motd, onlineStr, maxStr = fields[0], fields[1], fields[2], fields[3], fields[4]
	case 4:
		// Some servers omit the version name field.
		protocolStr, motd, onlineStr, maxStr = fields[0], fields[1], fields[2], fields[3]
	default:
		return nil, fmt.Errorf("legacy response: expected 4 or 5 fields, got %d", len(fields))
	}

	online, max, err := parseLegacyCounts(onlineStr, maxStr)
	if err != nil {
		return nil, err
	}

	resp := &Response{
		Version: Version{Name: versionName},
		Players: Players{Online: online, Max: max},
		Legacy:  true,
	}
	resp.Description.Text = motd
	if protocol, err := strconv.ParseInt(protocolStr, 10, 32); err == nil {
		resp.Version.Protocol = int32(protocol)
	}
	return resp, nil
}

func parseLegacy14(payload string) (*Response, error) {
	fields := strings.Split(payload, "§")
	if len(fields) != 3 {
		return nil, fmt.Errorf("legacy response: expected 3 §-separated fields, got %d", len(fields))
	}

	online, max, err := parseLegacyCounts(fields[1], fields[2])
	if err != nil {
		return nil, err
	}

	resp := &Response{
		Players: Players{Online: online, Max: max},
		Legacy:  true,
	}
	resp.Description.Text = fields[0]
	return resp, nil
}

func parseLegacyCounts(onlineStr, maxStr string) (int32, int32, error) {
	online, err := strconv.ParseInt(onlineStr, 10, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("legacy response: online count %q: %w", onlineStr, err)
	}
	max, err := strconv.ParseInt(maxStr, 10, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("legacy response: max count %q: %w", maxStr, err)
	}
	return int32(online), int32(max), nil
}
