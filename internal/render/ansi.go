package render

import (
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/statcraft/mcstat/internal/status"
)

// componentColors maps chat-component color names to ANSI foregrounds.
var componentColors = map[string]color.Attribute{
	"black":        color.FgBlack,
	"dark_blue":    color.FgBlue,
	"dark_green":   color.FgGreen,
	"dark_aqua":    color.FgCyan,
	"dark_red":     color.FgRed,
	"dark_purple":  color.FgMagenta,
	"gold":         color.FgYellow,
	"gray":         color.FgWhite,
	"dark_gray":    color.FgHiBlack,
	"blue":         color.FgHiBlue,
	"green":        color.FgHiGreen,
	"aqua":         color.FgHiCyan,
	"red":          color.FgHiRed,
	"light_purple": color.FgHiMagenta,
	"yellow":       color.FgHiYellow,
	"white":        color.FgHiWhite,
}

// legacyColors maps § code characters to the same palette.
var legacyColors = map[rune]color.Attribute{
	'0': color.FgBlack,
	'1': color.FgBlue,
	'2': color.FgGreen,
	'3': color.FgCyan,
	'4': color.FgRed,
	'5': color.FgMagenta,
	'6': color.FgYellow,
	'7': color.FgWhite,
	'8': color.FgHiBlack,
	'9': color.FgHiBlue,
	'a': color.FgHiGreen,
	'b': color.FgHiCyan,
	'c': color.FgHiRed,
	'd': color.FgHiMagenta,
	'e': color.FgHiYellow,
	'f': color.FgHiWhite,
}

// renderDescription turns the component tree into a terminal string. Each
// span's resolved style is applied, then any legacy § codes inside the
// span text are interpreted on top.
func renderDescription(d *status.Description) string {
	spans := d.Flatten()
	if len(spans) == 0 {
		return ""
	}

	var sb strings.Builder
	for _, span := range spans {
		sb.WriteString(legacyToANSIStyled(span.Text, styleColor(span.Style)))
	}
	return strings.TrimRight(sb.String(), "\n ")
}

// styleColor builds the color for one resolved span style.
func styleColor(s status.Style) *color.Color {
	c := color.New()
	if attr, ok := componentColors[strings.ToLower(s.Color)]; ok {
		c.Add(attr)
	} else if r, g, b, ok := parseHexColor(s.Color); ok {
		c = color.RGB(r, g, b)
	}
	if s.Bold {
		c.Add(color.Bold)
	}
	if s.Italic {
		c.Add(color.Italic)
	}
	if s.Underlined {
		c.Add(color.Underline)
	}
	if s.Strikethrough {
		c.Add(color.CrossedOut)
	}
	if s.Obfuscated {
		c.Add(color.BlinkRapid)
	}
	return c
}

// parseHexColor handles the modern "#RRGGBB" component colors.
func parseHexColor(s string) (r, g, b int, ok bool) {
	if len(s) != 7 || s[0] != '#' {
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return int(v >> 16), int(v >> 8 & 0xFF), int(v & 0xFF), true
}

// legacyToANSI renders a string containing § formatting codes.
func legacyToANSI(s string) string {
	return legacyToANSIStyled(s, color.New())
}

// legacyToANSIStyled walks s, switching styles at each § code. base is the
// style in effect at the start and after a §r reset.
func legacyToANSIStyled(s string, base *color.Color) string {
	if !strings.ContainsRune(s, '§') {
		return base.Sprint(s)
	}

	var sb strings.Builder
	current := copyColor(base)
	runes := []rune(s)

	flush := func(text []rune) {
		if len(text) > 0 {
			sb.WriteString(current.Sprint(string(text)))
		}
	}

	var pending []rune
	for i := 0; i < len(runes); i++ {
		if runes[i] != '§' || i+1 >= len(runes) {
			pending = append(pending, runes[i])
			continue
		}

		flush(pending)
		pending = nil

		i++
		code := runes[i]
		if attr, ok := legacyColors[code]; ok {
			// A color code resets prior formatting.
			current = color.New(attr)
			continue
		}
		switch code {
		case 'l':
			current.Add(color.Bold)
		case 'm':
			current.Add(color.CrossedOut)
		case 'n':
			current.Add(color.Underline)
		case 'o':
			current.Add(color.Italic)
		case 'k':
			current.Add(color.BlinkRapid)
		case 'r':
			current = copyColor(base)
		}
	}
	flush(pending)

	return sb.String()
}

func copyColor(c *color.Color) *color.Color {
	clone := *c
	return &clone
}
