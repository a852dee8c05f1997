package celadon

import (
	"strconv"
	"strings"
)

// MarkupParser turns markup text into styled spans.
type MarkupParser interface {
	// Parse parses markup, starting from base. A reset tag returns to base.
	Parse(markup string, base Style) Line

	// Style applies space-separated style tokens to base.
	Style(tokens string, base Style) Style
}

// Markup is the default MarkupParser. Tags are written in square brackets
// and hold style tokens:
//
//	[bold #ff0000]warning[/] text with [@main.panel1 italic]a background[/italic]
//
// Tokens are attribute names, hex colors, ANSI color names and palette
// references such as "main.primary+1". A leading "@" targets the
// background, a "*alpha" suffix blends the color with the background, and
// "/name" unsets a single attribute. A lone "/" resets everything. "\[" is
// a literal bracket.
type Markup struct {
	Palettes *PaletteRegistry
}

var defaultMarkup MarkupParser = Markup{}

// Parse implements MarkupParser.
func (m Markup) Parse(markup string, base Style) Line {
	var line Line
	var text strings.Builder
	style := base

	flush := func() {
		if text.Len() == 0 {
			return
		}
		line = append(line, Span{Text: text.String(), Style: style})
		text.Reset()
	}

	for i := 0; i < len(markup); i++ {
		c := markup[i]
		switch {
		case c == '\\' && i+1 < len(markup) && markup[i+1] == '[':
			text.WriteByte('[')
			i++
		case c == '[':
			end := strings.IndexByte(markup[i:], ']')
			if end < 0 {
				text.WriteString(markup[i:])
				i = len(markup)
				continue
			}
			flush()
			style = m.apply(markup[i+1:i+end], style, base)
			i += end
		default:
			text.WriteByte(c)
		}
	}
	flush()
	return line
}

// Style implements MarkupParser.
func (m Markup) Style(tokens string, base Style) Style {
	return m.apply(tokens, base, base)
}

func (m Markup) apply(tokens string, style, base Style) Style {
	for _, tok := range strings.Fields(tokens) {
		switch {
		case tok == "/":
			style = base
		case strings.HasPrefix(tok, "/"):
			style = unset(tok[1:], style, base)
		case attrNames[tok] != 0:
			style.Attrs |= attrNames[tok]
		case strings.HasPrefix(tok, "@"):
			if c, ok := m.color(tok[1:], style.Bg); ok {
				style.Bg = c
			}
		default:
			if c, ok := m.color(tok, style.Bg); ok {
				style.Fg = c
			}
		}
	}
	return style
}

func unset(name string, style, base Style) Style {
	switch name {
	case "fg":
		style.Fg = base.Fg
	case "bg":
		style.Bg = base.Bg
	default:
		style.Attrs &^= attrNames[name]
	}
	return style
}

// color resolves a color token. bg is what an alpha suffix blends against.
func (m Markup) color(tok string, bg Color) (Color, bool) {
	alpha := 1.0
	if name, a, ok := strings.Cut(tok, "*"); ok {
		f, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return Color{}, false
		}
		tok, alpha = name, f
	}

	var c Color
	switch {
	case strings.HasPrefix(tok, "#"):
		hex, err := HexColor(tok)
		if err != nil {
			return Color{}, false
		}
		c = hex
	case namedColors[tok] != 0 || tok == "black":
		c = ANSIColor(namedColors[tok])
	default:
		palettes := m.Palettes
		if palettes == nil {
			palettes = DefaultPalettes
		}
		found, ok := palettes.Lookup(tok)
		if !ok {
			return Color{}, false
		}
		c = found
	}

	if alpha < 1 && bg.Type() == ColorRGB {
		c = bg.Blend(c, alpha)
	}
	return c, true
}
