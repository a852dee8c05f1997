package celadon

import (
	"strings"
	"unicode/utf8"

	"github.com/celadon-tui/celadon/internal/layout"
)

// Styles returns the style tokens of the current state. References that
// start with "." or "@." are resolved against the widget's palette, so
// ".primary" becomes "main.primary".
func (b *Base) Styles() map[string]string {
	raw := b.styles.Lookup(b.State())
	out := make(map[string]string, len(raw))
	for key, style := range raw {
		out[key] = b.fillPalette(style)
	}
	return out
}

func (b *Base) fillPalette(style string) string {
	words := strings.Fields(style)
	for i, w := range words {
		switch {
		case strings.HasPrefix(w, "."):
			words[i] = b.palette + w
		case strings.HasPrefix(w, "@."):
			words[i] = "@" + b.palette + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// fillTokens returns the fill style, inherited from the parent when the
// widget has none.
func (b *Base) fillTokens() string {
	if fill := b.Styles()["fill"]; fill != "" {
		return fill
	}
	if p := b.Parent(); p != nil {
		return p.WidgetBase().fillTokens()
	}
	return ""
}

// Style resolves the style stored under key for the current state, drawn
// over the widget's fill.
func (b *Base) Style(key string) Style {
	m := b.markup()
	return m.Style(b.Styles()[key], m.Style(b.fillTokens(), Style{}))
}

// viewSize returns the inner size left for content once the frame and the
// scrollbars are taken out.
func (b *Base) viewSize() (width, height int) {
	barX, barY := b.barCells()
	return max(b.framedWidth()-barY, 0), max(b.framedHeight()-barX, 0)
}

func (b *Base) barCells() (x, y int) {
	if b.HasScrollbar(0) {
		x = 1
	}
	if b.HasScrollbar(1) {
		y = 1
	}
	return x, y
}

func clampScroll(scroll, virtual, visible int) int {
	return max(min(scroll, virtual-visible), 0)
}

// Build implements Widget.
func (b *Base) Build() ([]Line, error) {
	return b.build(nil)
}

// build renders the widget. Containers pass the extent of their children as
// virtual; other widgets measure their content.
func (b *Base) build(virtual *layout.Point) ([]Line, error) {
	b.PreBuild.Emit(b.self)

	m := b.markup()
	fill := m.Style(b.fillTokens(), Style{})
	content := b.Style("content")

	var lines []Line
	if virtual != nil {
		b.virtual = *virtual
	} else {
		raw, err := b.self.Content()
		if err != nil {
			return nil, err
		}
		widest := 0
		lines = make([]Line, len(raw))
		for i, text := range raw {
			lines[i] = m.Parse(text, content)
			widest = max(widest, lines[i].Width())
		}
		b.virtual = layout.Point{X: max(widest, 1), Y: max(len(lines), 1)}
	}

	barX, barY := b.barCells()
	viewW, viewH := b.viewSize()
	b.scroll = layout.Point{
		X: clampScroll(b.scroll.X, b.virtual.X, viewW),
		Y: clampScroll(b.scroll.Y, b.virtual.Y, viewH),
	}

	lines = lines[min(b.scroll.Y, len(lines)):min(b.scroll.Y+viewH, len(lines))]
	lines = b.alignVertical(lines, viewH)

	span := max(viewW, b.virtual.X)
	for i, line := range lines {
		lines[i] = b.alignHorizontal(line, span, content).Slice(b.scroll.X, viewW, content)
	}

	if barY > 0 {
		for i := range lines {
			lines[i] = append(lines[i], Span{Text: " ", Style: fill})
		}
	}
	if barX > 0 {
		lines = append(lines, blankLine(viewW+barY, fill))
	}

	lines = b.applyFrame(lines, viewW+barY, fill)
	if len(lines) > b.computedHeight {
		lines = lines[:b.computedHeight]
	}

	lines = b.applyClip(lines, fill)
	b.updateScrollbars(viewW, viewH)

	b.OnBuild.Emit(b.self)
	return lines, nil
}

func (b *Base) alignVertical(lines []Line, height int) []Line {
	spare := height - len(lines)
	if spare <= 0 {
		return lines
	}
	top, _ := layout.Align(b.alignment[1], spare)
	out := make([]Line, 0, height)
	out = append(out, make([]Line, top)...)
	out = append(out, lines...)
	return append(out, make([]Line, spare-top)...)
}

func (b *Base) alignHorizontal(line Line, width int, pad Style) Line {
	w := line.Width()
	before, _ := layout.Align(b.alignment[0], width-w)
	return line.Pad(before+w, true, pad).Pad(width, false, pad)
}

// applyFrame surrounds lines of the given inner width with the frame.
func (b *Base) applyFrame(lines []Line, width int, fill Style) []Line {
	f := b.frame
	if f.Width() == 0 && f.Height() == 0 {
		return lines
	}

	m := b.markup()
	tokens := b.Styles()["frame"]
	plain := m.Style(tokens, fill)
	outer := plain
	if p := b.Parent(); p != nil {
		outer = m.Style(tokens, m.Style(p.WidgetBase().fillTokens(), fill))
	}

	glyph := func(text string, isOuter bool) Line {
		if text == "" {
			return nil
		}
		if isOuter {
			return Line{{Text: text, Style: outer}}
		}
		return Line{{Text: text, Style: plain}}
	}
	edge := func(left, middle, right string) Line {
		row := glyph(left, f.OuterCorner)
		row = append(row, glyph(strings.Repeat(middle, width), f.OuterHorizontal)...)
		return append(row, glyph(right, f.OuterCorner)...)
	}

	for i, line := range lines {
		row := glyph(f.Left(), f.OuterVertical)
		row = append(row, line...)
		lines[i] = append(row, glyph(f.Right(), f.OuterVertical)...)
	}
	if f.Top() != "" {
		lines = append([]Line{edge(f.corner(0), f.Top(), f.corner(1))}, lines...)
	}
	if f.Bottom() != "" {
		lines = append(lines, edge(f.corner(3), f.Bottom(), f.corner(2)))
	}
	return lines
}

// applyClip cuts the clipped cells off every side. A fully clipped widget
// renders nothing.
func (b *Base) applyClip(lines []Line, fill Style) []Line {
	visible := b.VisibleRect()
	if visible.IsEmpty() {
		return nil
	}
	start := min(b.clipStart.Y, len(lines))
	lines = lines[start:min(start+visible.Height, len(lines))]
	for i, line := range lines {
		lines[i] = line.Slice(b.clipStart.X, visible.Width, fill)
	}
	return lines
}

// updateScrollbars places the scrollbars in the reserved column and row and
// sizes their thumbs from the visible share of the content.
func (b *Base) updateScrollbars(viewW, viewH int) {
	inner := b.position.Add(layout.Point{
		X: utf8.RuneCountInString(b.frame.Left()),
		Y: boolInt(b.frame.Top() != ""),
	})
	visible := b.VisibleRect()

	for axis := range b.scrollbars {
		if !b.HasScrollbar(axis) {
			continue
		}
		bar := b.scrollbar(axis)
		var rect layout.Rect
		var scroll, virtual, length int
		if axis == 0 {
			rect = layout.NewRect(inner.X, inner.Y+viewH, viewW, 1)
			scroll, virtual, length = b.scroll.X, b.virtual.X, viewW
		} else {
			rect = layout.NewRect(inner.X+viewW, inner.Y, 1, viewH)
			scroll, virtual, length = b.scroll.Y, b.virtual.Y, viewH
		}

		bar.MoveTo(rect.X, rect.Y)
		bar.computedWidth, bar.computedHeight = rect.Width, rect.Height
		bar.Clip(rect.Clip(visible))

		bar.cursorSize = length
		bar.value = 0
		if virtual > length && length > 0 {
			bar.cursorSize = min(max(length*length/virtual, 1), length)
			bar.value = float64(scroll) / float64(virtual-length)
		}
	}
}

// scrollbar returns the slider drawn for axis, creating it on first use.
func (b *Base) scrollbar(axis int) *Slider {
	if bar := b.scrollbars[axis]; bar != nil {
		return bar
	}
	var bar *Slider
	if axis == 0 {
		bar = NewSlider()
	} else {
		bar = NewVerticalSlider()
	}
	bar.owner = b
	bar.parent = b.self
	bar.OnChange.Subscribe(func(value float64) bool {
		viewW, viewH := b.viewSize()
		if axis == 0 {
			b.ScrollTo(int(value*float64(max(b.virtual.X-viewW, 0))+0.5), b.scroll.Y)
		} else {
			b.ScrollTo(b.scroll.X, int(value*float64(max(b.virtual.Y-viewH, 0))+0.5))
		}
		return true
	})
	b.scrollbars[axis] = bar
	return bar
}

func boolInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
