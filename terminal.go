package celadon

import (
	"context"

	"github.com/muesli/termenv"
)

// Capabilities describes what the terminal can show.
type Capabilities struct {
	// Profile is the color profile reported by the environment.
	Profile termenv.Profile

	// Unicode reports whether box drawing and wide characters render.
	Unicode bool
}

// ColorGroup names the color profile the way rules select it:
// "Terminal.true-color", "Terminal.256-color", "Terminal.16-color" or
// "Terminal.no-color".
func (c Capabilities) ColorGroup() string {
	switch c.Profile {
	case termenv.TrueColor:
		return "true-color"
	case termenv.ANSI256:
		return "256-color"
	case termenv.ANSI:
		return "16-color"
	}
	return "no-color"
}

// Terminal is the screen an Application draws to and reads input from.
type Terminal interface {
	// Size returns the terminal size in cells.
	Size() (width, height int)

	// Start prepares the terminal for drawing: raw mode, the alternate
	// screen and mouse reporting. Stop undoes it.
	Start() error
	Stop() error

	// Clear blanks the screen.
	Clear()

	// Flush draws the changed cells.
	Flush(changes []CellChange) error

	// SetTitle sets the window title. An empty title restores the default.
	SetTitle(title string)

	// Caps returns the terminal's capabilities.
	Caps() Capabilities

	// ReadEvent blocks until an input event arrives or ctx is done.
	ReadEvent(ctx context.Context) (InputEvent, error)
}

// terminalNode lets selectors match the terminal, as in
// "Terminal.256-color *> Palette/main".
type terminalNode struct {
	term Terminal
}

func (n terminalNode) TypeName() string { return "Terminal" }
func (n terminalNode) ID() string       { return "" }
func (n terminalNode) State() string    { return StateIdle }
func (n terminalNode) ParentNode() Node { return nil }

func (n terminalNode) Groups() []string {
	if n.term == nil {
		return []string{Capabilities{Profile: termenv.TrueColor}.ColorGroup()}
	}
	return []string{n.term.Caps().ColorGroup()}
}

// TerminalNode returns the node itself, so rules evaluated against the
// terminal can use "Terminal" parents too.
func (n terminalNode) TerminalNode() Node { return n }
