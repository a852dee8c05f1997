package celadon

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Span is a run of text drawn with one style.
type Span struct {
	Text  string
	Style Style
}

// Line is a row of spans.
type Line []Span

// Width returns the number of terminal cells the line occupies.
func (l Line) Width() int {
	w := 0
	for _, s := range l {
		w += runewidth.StringWidth(s.Text)
	}
	return w
}

// String returns the line's text without styling.
func (l Line) String() string {
	var b strings.Builder
	for _, s := range l {
		b.WriteString(s.Text)
	}
	return b.String()
}

// Slice returns the cells in [start, start+width) as a new line, padding
// with spaces in pad when the line is shorter. A wide character cut by
// either edge is replaced by spaces.
func (l Line) Slice(start, width int, pad Style) Line {
	if width <= 0 {
		return nil
	}
	end := start + width
	var out Line
	col := 0
	for _, s := range l {
		var b strings.Builder
		for _, r := range s.Text {
			w := runewidth.RuneWidth(r)
			switch {
			case col >= start && col+w <= end:
				b.WriteRune(r)
			case col+w > start && col < end:
				// Partially visible wide rune.
				visible := min(col+w, end) - max(col, start)
				b.WriteString(strings.Repeat(" ", visible))
			}
			col += w
			if col >= end {
				break
			}
		}
		if b.Len() > 0 {
			out = append(out, Span{Text: b.String(), Style: s.Style})
		}
		if col >= end {
			break
		}
	}
	if w := out.Width(); w < width {
		out = append(out, Span{Text: strings.Repeat(" ", width-w), Style: pad})
	}
	return out
}

// Pad aligns the line inside width cells, filling the rest with spaces in
// pad. Lines wider than width are returned unchanged.
func (l Line) Pad(width int, before bool, pad Style) Line {
	diff := width - l.Width()
	if diff <= 0 {
		return l
	}
	filler := Span{Text: strings.Repeat(" ", diff), Style: pad}
	if before {
		return append(Line{filler}, l...)
	}
	return append(append(Line{}, l...), filler)
}

func blankLine(width int, style Style) Line {
	if width <= 0 {
		return nil
	}
	return Line{{Text: strings.Repeat(" ", width), Style: style}}
}
