package status

import (
	"encoding/json"
	"strings"
)

// Description is the recursive chat-component tree used for the MOTD.
// A node is a text leaf plus ordered children; formatting fields left nil
// are inherited from the parent when the tree is rendered.
type Description struct {
	Text          string        `json:"text"`
	Color         string        `json:"color,omitempty"`
	Bold          *bool         `json:"bold,omitempty"`
	Italic        *bool         `json:"italic,omitempty"`
	Underlined    *bool         `json:"underlined,omitempty"`
	Strikethrough *bool         `json:"strikethrough,omitempty"`
	Obfuscated    *bool         `json:"obfuscated,omitempty"`
	Extra         []Description `json:"extra,omitempty"`
}

// UnmarshalJSON accepts the three wire forms of a chat component: a plain
// string, an object, or an array whose first element is the parent and the
// rest are appended children.
func (d *Description) UnmarshalJSON(data []byte) error {
	data = []byte(strings.TrimSpace(string(data)))
	if len(data) == 0 {
		return nil
	}

	switch data[0] {
	case '"':
		return json.Unmarshal(data, &d.Text)
	case '[':
		var parts []Description
		if err := json.Unmarshal(data, &parts); err != nil {
			return err
		}
		if len(parts) > 0 {
			*d = parts[0]
			d.Extra = append(d.Extra, parts[1:]...)
		}
		return nil
	default:
		type plain Description
		return json.Unmarshal(data, (*plain)(d))
	}
}

// Style is the resolved formatting of one rendered span.
type Style struct {
	Color         string
	Bold          bool
	Italic        bool
	Underlined    bool
	Strikethrough bool
	Obfuscated    bool
}

// Span is a run of text with its fully-resolved style.
type Span struct {
	Text  string
	Style Style
}

// Flatten walks the tree depth-first and returns the ordered spans, each
// carrying the style resolved against its ancestors. Unset attributes
// inherit; set attributes override for the node and its subtree.
func (d *Description) Flatten() []Span {
	var spans []Span
	d.flatten(Style{}, &spans)
	return spans
}

func (d *Description) flatten(inherited Style, spans *[]Span) {
	style := inherited
	if d.Color != "" {
		style.Color = d.Color
	}
	if d.Bold != nil {
		style.Bold = *d.Bold
	}
	if d.Italic != nil {
		style.Italic = *d.Italic
	}
	if d.Underlined != nil {
		style.Underlined = *d.Underlined
	}
	if d.Strikethrough != nil {
		style.Strikethrough = *d.Strikethrough
	}
	if d.Obfuscated != nil {
		style.Obfuscated = *d.Obfuscated
	}

	if d.Text != "" {
		*spans = append(*spans, Span{Text: d.Text, Style: style})
	}
	for i := range d.Extra {
		d.Extra[i].flatten(style, spans)
	}
}

// Plain concatenates the tree's text in order, children after their
// parent, with legacy formatting codes stripped.
func (d *Description) Plain() string {
	var sb strings.Builder
	for _, span := range d.Flatten() {
		sb.WriteString(span.Text)
	}
	return StripCodes(sb.String())
}

// IsEmpty reports whether the tree carries no text at all.
func (d *Description) IsEmpty() bool {
	if d.Text != "" {
		return false
	}
	for i := range d.Extra {
		if !d.Extra[i].IsEmpty() {
			return false
		}
	}
	return true
}

// StripCodes removes legacy § formatting codes from s, dropping the §
// and the single code character that follows it.
func StripCodes(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		if runes[i] == '§' {
			i++ // skip the code character too
			continue
		}
		sb.WriteRune(runes[i])
	}
	return sb.String()
}
