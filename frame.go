package celadon

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Frame describes the border drawn around a widget. Borders are ordered
// left, top, right, bottom and corners left-top, right-top, right-bottom,
// left-bottom. An empty string means the side or corner is not drawn.
type Frame struct {
	Name    string
	Borders [4]string
	Corners [4]string

	// Outer flags draw the matching glyphs over the parent's fill color
	// instead of the widget's own, which lets half-block frames sit flush
	// against their surroundings.
	OuterHorizontal bool
	OuterVertical   bool
	OuterCorner     bool

	// ScrollbarX and ScrollbarY hold the rail and thumb glyphs.
	ScrollbarX [2]string
	ScrollbarY [2]string
}

// Width returns the number of columns the left and right borders take.
func (f Frame) Width() int {
	return utf8.RuneCountInString(f.Borders[0]) + utf8.RuneCountInString(f.Borders[2])
}

// Height returns the number of rows the top and bottom borders take.
func (f Frame) Height() int {
	h := 0
	if f.Borders[1] != "" {
		h++
	}
	if f.Borders[3] != "" {
		h++
	}
	return h
}

// Left returns the left border.
func (f Frame) Left() string { return f.Borders[0] }

// Top returns the top border.
func (f Frame) Top() string { return f.Borders[1] }

// Right returns the right border.
func (f Frame) Right() string { return f.Borders[2] }

// Bottom returns the bottom border.
func (f Frame) Bottom() string { return f.Borders[3] }

// corner returns corner i, falling back to the adjacent horizontal border
// when the corner is unset but a vertical border needs covering.
func (f Frame) corner(i int) string {
	if c := f.Corners[i]; c != "" {
		return c
	}
	vertical, horizontal := f.Borders[0], f.Borders[1]
	switch i {
	case 1:
		vertical = f.Borders[2]
	case 2:
		vertical, horizontal = f.Borders[2], f.Borders[3]
	case 3:
		horizontal = f.Borders[3]
	}
	if vertical == "" {
		return ""
	}
	return horizontal
}

// ComposeFrame builds a frame whose side i is taken from sides[i]. The
// result has no corners of its own.
func ComposeFrame(sides [4]Frame) Frame {
	f := Frame{
		Name:       "composed",
		ScrollbarX: sides[3].ScrollbarX,
		ScrollbarY: sides[2].ScrollbarY,
	}
	names := make([]string, 4)
	for i, side := range sides {
		f.Borders[i] = side.Borders[i]
		names[i] = side.Name
	}
	f.Name = strings.Join(names, ",")
	return f
}

// GetFrame returns the frame registered under name, ignoring case. The empty
// name returns the frameless frame.
func GetFrame(name string) (Frame, error) {
	if name == "" {
		return frames["frameless"], nil
	}
	f, ok := frames[strings.ToLower(name)]
	if !ok {
		return Frame{}, fmt.Errorf("%w: no frame defined with name %q", ErrValue, name)
	}
	return f, nil
}

// FrameNames returns the names accepted by GetFrame.
func FrameNames() []string {
	return []string{
		"ascii_x", "light", "lightvertical", "heavy", "rounded", "double",
		"dashed", "heavydashed", "padded", "frameless", "horizontalouter",
		"verticalouter",
	}
}

var frames = map[string]Frame{
	"ascii_x": describeFrame("ASCII_X",
		"X---X",
		"|   |",
		"X---X"),
	"light": describeFrame("Light",
		"┌───┐",
		"│   │",
		"└───┘"),
	"lightvertical": withScrollbars(Frame{
		Name:    "LightVertical",
		Borders: [4]string{"│", "", "│", ""},
	}),
	"heavy": describeFrame("Heavy",
		"┏━━━┓",
		"┃   ┃",
		"┗━━━┛"),
	"rounded": describeFrame("Rounded",
		"╭───╮",
		"│   │",
		"╰───╯"),
	"double": describeFrame("Double",
		"╔═══╗",
		"║   ║",
		"╚═══╝"),
	"dashed": describeFrame("Dashed",
		"┌╌╌╌┐",
		"╎   ╎",
		"└╌╌╌┘"),
	"heavydashed": describeFrame("HeavyDashed",
		"┏╍╍╍┓",
		"╏   ╏",
		"┗╍╍╍┛"),
	"padded": describeFrame("Padded",
		"   ",
		"   ",
		"   "),
	"frameless":       withScrollbars(Frame{Name: "Frameless"}),
	"horizontalouter": outer(describeFrame("HorizontalOuter", "▁▁▁▁▁", "▎ x 🮇", "▔▔▔▔▔"), true),
	"verticalouter":   outer(describeFrame("VerticalOuter", "🮇▔▔▔▔▔▎", "🮇  x  ▎", "🮇▁▁▁▁▁▎"), false),
}

// describeFrame reads the corner and border glyphs from a three line
// drawing of the frame.
func describeFrame(name, top, middle, bottom string) Frame {
	t, m, b := []rune(top), []rune(middle), []rune(bottom)
	return withScrollbars(Frame{
		Name: name,
		Borders: [4]string{
			string(m[0]), string(t[1]), string(m[len(m)-1]), string(b[1]),
		},
		Corners: [4]string{
			string(t[0]), string(t[len(t)-1]), string(b[len(b)-1]), string(b[0]),
		},
	})
}

func outer(f Frame, horizontal bool) Frame {
	f.OuterHorizontal = horizontal
	f.OuterVertical = !horizontal
	f.OuterCorner = true
	return f
}

func withScrollbars(f Frame) Frame {
	f.ScrollbarX = [2]string{"─", "━"}
	f.ScrollbarY = [2]string{"│", "┃"}
	return f
}
