package celadon

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"

	"github.com/celadon-tui/celadon/internal/layout"
)

const fieldRules = `
Field:
    frame: [heavy, null, null, null]
    height: 1

    placeholder_style: 'dim italic'
    frame_style: .primary-1

    /hover:
        fill_style: '@.panel1-2'

    /selected|active:
        content_style: ''
        cursor_style: '@.panel1+3'

    /disabled:
        frame_style: .primary-3
`

// Field is an editable text input. It takes printable keys while selected
// and keeps a cursor that the arrow keys and clicks move. A multiline
// field splits lines on return.
type Field struct {
	Base
	lines       [][]rune
	placeholder string
	multiline   bool
	cursor      layout.Point

	// OnChange receives the value after every edit.
	OnChange Event[string]
	// OnSubmit receives the value when return is pressed in a single line
	// field.
	OnSubmit Event[string]
}

var _ Widget = (*Field)(nil)

// NewField returns a field holding value with the cursor at its start.
func NewField(value string, opts ...Option) *Field {
	f := &Field{}
	f.Init(f, "Field")
	f.styles = f.styles.Merge(statesWith(f.machine, "cursor", "")).
		Merge(statesWith(f.machine, "placeholder", ""))
	f.setValue(value)
	f.Apply(opts...)

	f.DefineAttr("placeholder", func(v any) error {
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("%w: expected string, got %T", ErrValue, v)
		}
		f.placeholder = s
		return nil
	})
	f.DefineAttr("multiline", func(v any) error {
		m, ok := v.(bool)
		if !ok {
			return fmt.Errorf("%w: expected bool, got %T", ErrValue, v)
		}
		f.multiline = m
		return nil
	})
	f.OnMouse("click", f.click)
	return f
}

// Value returns the text in the field.
func (f *Field) Value() string {
	lines := make([]string, len(f.lines))
	for i, line := range f.lines {
		lines[i] = string(line)
	}
	return strings.Join(lines, "\n")
}

// SetValue replaces the text and moves the cursor to its end.
func (f *Field) SetValue(value string) {
	f.setValue(value)
	last := len(f.lines) - 1
	f.SetCursor(len(f.lines[last]), last)
}

func (f *Field) setValue(value string) {
	parts := strings.Split(value, "\n")
	f.lines = make([][]rune, len(parts))
	for i, part := range parts {
		f.lines[i] = []rune(part)
	}
	f.SetCursor(f.cursor.X, f.cursor.Y)
}

// Placeholder returns the text shown while the field is empty.
func (f *Field) Placeholder() string { return f.placeholder }

// SetPlaceholder sets the text shown while the field is empty.
func (f *Field) SetPlaceholder(placeholder string) { f.placeholder = placeholder }

// Multiline reports whether return inserts line breaks.
func (f *Field) Multiline() bool { return f.multiline }

// SetMultiline lets return insert line breaks instead of submitting.
func (f *Field) SetMultiline(multiline bool) { f.multiline = multiline }

// Cursor returns the cursor as a column and line.
func (f *Field) Cursor() layout.Point { return f.cursor }

// SetCursor moves the cursor, clamped to the text.
func (f *Field) SetCursor(x, y int) {
	y = min(max(y, 0), len(f.lines)-1)
	x = min(max(x, 0), len(f.lines[y]))
	f.cursor = layout.Point{X: x, Y: y}
}

// MoveCursor moves the cursor by the given deltas.
func (f *Field) MoveCursor(dx, dy int) {
	f.SetCursor(f.cursor.X+dx, f.cursor.Y+dy)
}

func (f *Field) changed() {
	f.OnChange.Emit(f.Value())
}

// HandleKeyboard implements Widget. Keys bound with Bind run first and
// editing happens after them.
func (f *Field) HandleKeyboard(event KeyEvent) bool {
	if f.disabled {
		return false
	}
	if f.Base.HandleKeyboard(event) {
		return true
	}

	x, y := f.cursor.X, f.cursor.Y
	line := f.lines[y]

	switch event.Name() {
	case "left":
		f.MoveCursor(-1, 0)
		return true
	case "right":
		f.MoveCursor(1, 0)
		return true
	case "up":
		f.MoveCursor(0, -1)
		return true
	case "down":
		f.MoveCursor(0, 1)
		return true
	case "home":
		f.SetCursor(0, y)
		return true
	case "end":
		f.SetCursor(len(line), y)
		return true

	case "backspace", "ctrl-h":
		if x == 0 {
			return f.joinPrevious()
		}
		f.lines[y] = append(line[:x-1:x-1], line[x:]...)
		f.SetCursor(x-1, y)
		f.changed()
		return true
	case "ctrl-backspace", "ctrl-u":
		if x == 0 {
			return f.joinPrevious()
		}
		f.lines[y] = line[x:]
		f.SetCursor(0, y)
		f.changed()
		return true
	case "alt-backspace", "ctrl-w":
		if x == 0 {
			return f.joinPrevious()
		}
		start := wordStart(line, x)
		f.lines[y] = append(line[:start:start], line[x:]...)
		f.SetCursor(start, y)
		f.changed()
		return true
	case "delete":
		if x < len(line) {
			f.lines[y] = append(line[:x:x], line[x+1:]...)
			f.changed()
		}
		return true

	case "return":
		if !f.multiline {
			f.OnSubmit.Emit(f.Value())
			return true
		}
		rest := append([]rune(nil), line[x:]...)
		f.lines[y] = line[:x:x]
		f.lines = append(f.lines[:y+1], append([][]rune{rest}, f.lines[y+1:]...)...)
		f.SetCursor(0, y+1)
		f.changed()
		return true
	}

	if event.Key == KeyRune && !event.Mod.Has(ModCtrl) && !event.Mod.Has(ModAlt) && unicode.IsPrint(event.Rune) {
		f.lines[y] = append(line[:x:x], append([]rune{event.Rune}, line[x:]...)...)
		f.SetCursor(x+1, y)
		f.changed()
		return true
	}
	return false
}

// joinPrevious deletes the line break before the cursor's line. It does
// nothing on the first line.
func (f *Field) joinPrevious() bool {
	y := f.cursor.Y
	if y == 0 {
		return true
	}
	x := len(f.lines[y-1])
	f.lines[y-1] = append(f.lines[y-1], f.lines[y]...)
	f.lines = append(f.lines[:y], f.lines[y+1:]...)
	f.SetCursor(x, y-1)
	f.changed()
	return true
}

// wordStart returns where the word before x begins. Delimiters directly
// before the cursor are deleted along with the word.
func wordStart(line []rune, x int) int {
	i := x
	for i > 0 && isDelimiter(line[i-1]) {
		i--
	}
	for i > 0 && !isDelimiter(line[i-1]) {
		i--
	}
	if i == x {
		return x - 1
	}
	return i
}

func isDelimiter(r rune) bool {
	return unicode.IsSpace(r) || unicode.IsPunct(r) || unicode.IsSymbol(r)
}

// click moves the cursor under the pointer.
func (f *Field) click(event MouseEvent) bool {
	inner := f.position.Add(layout.Point{
		X: utf8.RuneCountInString(f.frame.Left()),
		Y: boolInt(f.frame.Top() != ""),
	})
	f.SetCursor(event.X-inner.X-1+f.scroll.X, event.Y-inner.Y+f.scroll.Y)
	return true
}

// ShrinkWidth implements Widget with the widest line, its padding and a
// cell for the cursor.
func (f *Field) ShrinkWidth() (int, error) {
	widest := runewidth.StringWidth(f.placeholder)
	for _, line := range f.lines {
		widest = max(widest, runewidth.StringWidth(string(line)))
	}
	return widest + 3, nil
}

// ShrinkHeight implements Widget.
func (f *Field) ShrinkHeight() (int, error) { return len(f.lines), nil }

// Content implements Widget.
func (f *Field) Content() ([]string, error) {
	styles := f.Styles()
	cursorStyle := styles["cursor"]
	empty := len(f.lines) == 1 && len(f.lines[0]) == 0

	if empty {
		if f.placeholder == "" {
			return []string{" [" + cursorStyle + "] [/] "}, nil
		}
		if f.selectedIndex < 0 {
			cursorStyle = styles["placeholder"]
		}
		rest := []rune(f.placeholder)
		return []string{
			" [" + cursorStyle + "]" + escapeMarkup(string(rest[:1])) + "[/]" +
				"[" + styles["placeholder"] + "]" + escapeMarkup(string(rest[1:])) + "[/] ",
		}, nil
	}

	out := make([]string, len(f.lines))
	for y, line := range f.lines {
		if y != f.cursor.Y {
			out[y] = " " + escapeMarkup(string(line)) + " "
			continue
		}
		x := f.cursor.X
		under := " "
		right := ""
		if x < len(line) {
			under = string(line[x])
			right = string(line[x+1:])
		}
		out[y] = " " + escapeMarkup(string(line[:x])) +
			"[" + cursorStyle + "]" + escapeMarkup(under) + "[/]" +
			escapeMarkup(right) + " "
	}
	return out, nil
}

// escapeMarkup makes s print literally.
func escapeMarkup(s string) string {
	return strings.ReplaceAll(s, "[", `\[`)
}

func init() {
	RegisterType(TypeRegistration{
		Name:  "Field",
		Rules: fieldRules,
		New:   func() Widget { return NewField("") },
	})
}
