package status

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
)

const faviconPrefix = "data:image/png;base64,"

// Favicon is the decoded server icon.
type Favicon struct {
	data []byte
}

// ParseFavicon decodes the favicon data URI. An empty input yields nil,
// matching an absent field.
func ParseFavicon(uri string) (*Favicon, error) {
	if uri == "" {
		return nil, nil
	}
	encoded, ok := strings.CutPrefix(uri, faviconPrefix)
	if !ok {
		return nil, fmt.Errorf("%w: favicon is not a png data uri", ErrMalformedStatus)
	}
	// Some servers emit base64 with embedded newlines.
	encoded = strings.ReplaceAll(encoded, "\n", "")

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: favicon base64: %w", ErrMalformedStatus, err)
	}
	return &Favicon{data: data}, nil
}

// Bytes returns the raw PNG bytes.
func (f *Favicon) Bytes() []byte {
	return f.data
}

// Fingerprint returns a stable hash of the icon bytes, so identical icons
// can be recognized across servers without comparing the images.
func (f *Favicon) Fingerprint() uint64 {
	return xxhash.Sum64(f.data)
}
