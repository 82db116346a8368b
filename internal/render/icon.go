package render

import (
	"bytes"
	"image/png"
	"strings"

	"github.com/fatih/color"
	"github.com/nfnt/resize"

	"github.com/statcraft/mcstat/internal/status"
)

// ramp orders glyphs from dark to bright; the luminance picks the index.
const ramp = " .:-=+*#%@"

// asciiIcon renders the 64x64 favicon as ASCII art. Width is doubled to
// compensate for terminal cell aspect ratio.
func asciiIcon(f *status.Favicon, opts Options) (string, error) {
	img, err := png.Decode(bytes.NewReader(f.Bytes()))
	if err != nil {
		return "", err
	}

	size := opts.Size
	if size == 0 {
		size = 16
	}
	scaled := resize.Resize(size*2, size, img, resize.Lanczos3)
	bounds := scaled.Bounds()

	var sb strings.Builder
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, a := scaled.At(x, y).RGBA()
			sb.WriteString(glyph(r, g, b, a, opts))
		}
		sb.WriteByte('\n')
	}
	return strings.TrimRight(sb.String(), "\n"), nil
}

func glyph(r, g, b, a uint32, opts Options) string {
	if a == 0 {
		return " "
	}

	// Rec. 601 luma on the 16-bit channels, scaled to the ramp.
	luma := (299*r + 587*g + 114*b) / 1000
	idx := int(luma * uint32(len(ramp)-1) / 0xFFFF)
	if opts.Invert {
		idx = len(ramp) - 1 - idx
	}
	ch := string(ramp[idx])

	if !opts.Color {
		return ch
	}
	return color.RGB(int(r>>8), int(g>>8), int(b>>8)).Sprint(ch)
}
