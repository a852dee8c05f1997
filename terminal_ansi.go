package celadon

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// pollInterval bounds how long ReadEvent waits before checking its context.
const pollInterval = 50 * time.Millisecond

// ANSITerminal draws with ANSI escape sequences and reads keys and SGR
// mouse reports from its input.
type ANSITerminal struct {
	out  io.Writer
	in   *os.File
	caps Capabilities

	mu       sync.Mutex
	buf      bytes.Buffer
	seq      *termenv.Output
	renderer *lipgloss.Renderer
	raw      *term.State

	resize  chan os.Signal
	pending []InputEvent
	partial []byte
}

var _ Terminal = (*ANSITerminal)(nil)

// NewANSITerminal returns a terminal writing to out and reading from in.
// The color profile is detected from the environment.
func NewANSITerminal(out io.Writer, in *os.File) *ANSITerminal {
	profile := termenv.NewOutput(out).EnvColorProfile()
	return NewANSITerminalWithCaps(out, in, Capabilities{Profile: profile, Unicode: true})
}

// NewANSITerminalWithCaps is like NewANSITerminal with explicit
// capabilities.
func NewANSITerminalWithCaps(out io.Writer, in *os.File, caps Capabilities) *ANSITerminal {
	t := &ANSITerminal{out: out, in: in, caps: caps}
	t.seq = termenv.NewOutput(&t.buf, termenv.WithProfile(caps.Profile))
	t.renderer = lipgloss.NewRenderer(&t.buf, termenv.WithProfile(caps.Profile))
	t.renderer.SetColorProfile(caps.Profile)
	return t
}

// Size implements Terminal. It falls back to 80x24 when the output is not
// a terminal.
func (t *ANSITerminal) Size() (width, height int) {
	if f, ok := t.out.(*os.File); ok {
		if w, h, err := term.GetSize(int(f.Fd())); err == nil {
			return w, h
		}
	}
	return 80, 24
}

// Caps implements Terminal.
func (t *ANSITerminal) Caps() Capabilities { return t.caps }

// Start implements Terminal.
func (t *ANSITerminal) Start() error {
	if t.in != nil && term.IsTerminal(int(t.in.Fd())) {
		state, err := term.MakeRaw(int(t.in.Fd()))
		if err != nil {
			return fmt.Errorf("entering raw mode: %w", err)
		}
		t.raw = state
	}
	t.resize = make(chan os.Signal, 1)
	notifyResize(t.resize)

	return t.write(func() {
		t.seq.AltScreen()
		t.seq.HideCursor()
		t.seq.EnableMouseAllMotion()
		t.seq.EnableMouseExtendedMode()
		t.seq.ClearScreen()
	})
}

// Stop implements Terminal.
func (t *ANSITerminal) Stop() error {
	if t.resize != nil {
		signal.Stop(t.resize)
	}
	err := t.write(func() {
		t.seq.DisableMouseExtendedMode()
		t.seq.DisableMouseAllMotion()
		t.seq.ShowCursor()
		t.seq.ExitAltScreen()
	})
	if t.raw != nil {
		err = errors.Join(err, term.Restore(int(t.in.Fd()), t.raw))
		t.raw = nil
	}
	return err
}

// Clear implements Terminal.
func (t *ANSITerminal) Clear() {
	_ = t.write(func() { t.seq.ClearScreen() })
}

// SetTitle implements Terminal.
func (t *ANSITerminal) SetTitle(title string) {
	_ = t.write(func() { t.seq.SetWindowTitle(title) })
}

// Flush implements Terminal. Consecutive cells sharing a row and a style
// are written as one styled run.
func (t *ANSITerminal) Flush(changes []CellChange) error {
	if len(changes) == 0 {
		return nil
	}
	return t.write(func() {
		var run []rune
		var runStyle Style
		nextX, y := -1, -1

		emit := func() {
			if len(run) > 0 {
				t.buf.WriteString(t.render(string(run), runStyle))
				run = run[:0]
			}
		}

		for _, ch := range changes {
			if ch.Cell.IsContinuation() {
				continue
			}
			if ch.Y != y || ch.X != nextX || !ch.Cell.Style.Equal(runStyle) {
				emit()
				if ch.Y != y || ch.X != nextX {
					t.seq.MoveCursor(ch.Y+1, ch.X+1)
				}
				runStyle = ch.Cell.Style
			}
			r := ch.Cell.Rune
			if r == 0 {
				r = ' '
			}
			run = append(run, r)
			y, nextX = ch.Y, ch.X+max(int(ch.Cell.Width), 1)
		}
		emit()
	})
}

// render wraps text in the SGR sequences for s.
func (t *ANSITerminal) render(text string, s Style) string {
	if s == (Style{}) {
		return text
	}
	st := t.renderer.NewStyle()
	if c, ok := terminalColor(s.Fg); ok {
		st = st.Foreground(c)
	}
	if c, ok := terminalColor(s.Bg); ok {
		st = st.Background(c)
	}
	if s.HasAttr(AttrBold) {
		st = st.Bold(true)
	}
	if s.HasAttr(AttrDim) {
		st = st.Faint(true)
	}
	if s.HasAttr(AttrItalic) {
		st = st.Italic(true)
	}
	if s.HasAttr(AttrUnderline) {
		st = st.Underline(true)
	}
	if s.HasAttr(AttrBlink) {
		st = st.Blink(true)
	}
	if s.HasAttr(AttrReverse) {
		st = st.Reverse(true)
	}
	if s.HasAttr(AttrStrikethrough) {
		st = st.Strikethrough(true)
	}
	return st.Render(text)
}

func terminalColor(c Color) (lipgloss.TerminalColor, bool) {
	switch c.Type() {
	case ColorANSI:
		return lipgloss.Color(strconv.Itoa(int(c.ANSI()))), true
	case ColorRGB:
		return lipgloss.Color(c.Hex()), true
	}
	return nil, false
}

// write runs fn against the sequence buffer and sends the result to the
// output in one write.
func (t *ANSITerminal) write(fn func()) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.buf.Reset()
	fn()
	_, err := t.out.Write(t.buf.Bytes())
	return err
}

// ReadEvent implements Terminal. Resizes are reported as ResizeEvents.
func (t *ANSITerminal) ReadEvent(ctx context.Context) (InputEvent, error) {
	buf := make([]byte, 256)
	for {
		if len(t.pending) > 0 {
			ev := t.pending[0]
			t.pending = t.pending[1:]
			return ev, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-t.resize:
			w, h := t.Size()
			return ResizeEvent{Width: w, Height: h}, nil
		default:
		}

		if t.in == nil {
			return nil, io.EOF
		}
		ready, err := readable(int(t.in.Fd()), pollInterval)
		if err != nil {
			return nil, fmt.Errorf("polling input: %w", err)
		}
		if !ready {
			continue
		}
		n, err := t.in.Read(buf)
		if err != nil {
			return nil, fmt.Errorf("reading input: %w", err)
		}

		data := append(t.partial, buf[:n]...)
		cut := incompleteSuffix(data)
		t.partial = append([]byte(nil), data[cut:]...)
		t.pending = append(t.pending, parseInput(data[:cut])...)
	}
}

// incompleteSuffix returns where a trailing partial UTF-8 sequence starts,
// or len(data) if there is none.
func incompleteSuffix(data []byte) int {
	for i := len(data) - 1; i >= max(len(data)-3, 0); i-- {
		if utf8.RuneStart(data[i]) {
			if !utf8.FullRune(data[i:]) {
				return i
			}
			break
		}
	}
	return len(data)
}
