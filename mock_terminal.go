package celadon

import (
	"context"
	"strings"
	"sync"

	"github.com/muesli/termenv"
)

// MockTerminal is an in-memory Terminal for tests. Events queued with Feed
// are returned by ReadEvent in order.
type MockTerminal struct {
	mu      sync.Mutex
	width   int
	height  int
	cells   []Cell
	caps    Capabilities
	title   string
	started bool
	clears  int
	flushes int

	events chan InputEvent
}

var _ Terminal = (*MockTerminal)(nil)

// NewMockTerminal returns a true-color mock terminal of the given size.
func NewMockTerminal(width, height int) *MockTerminal {
	m := &MockTerminal{
		caps:   Capabilities{Profile: termenv.TrueColor, Unicode: true},
		events: make(chan InputEvent, 64),
	}
	m.Resize(width, height)
	return m
}

// Size implements Terminal.
func (m *MockTerminal) Size() (width, height int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.width, m.height
}

// Start implements Terminal.
func (m *MockTerminal) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.started = true
	return nil
}

// Stop implements Terminal.
func (m *MockTerminal) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.started = false
	return nil
}

// Started reports whether the terminal is between Start and Stop.
func (m *MockTerminal) Started() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.started
}

// Clear implements Terminal.
func (m *MockTerminal) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clears++
	for i := range m.cells {
		m.cells[i] = blankCell
	}
}

// Flush implements Terminal.
func (m *MockTerminal) Flush(changes []CellChange) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.flushes++
	for _, ch := range changes {
		if ch.X >= 0 && ch.X < m.width && ch.Y >= 0 && ch.Y < m.height {
			m.cells[ch.Y*m.width+ch.X] = ch.Cell
		}
	}
	return nil
}

// Flushes returns how many times Flush was called.
func (m *MockTerminal) Flushes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.flushes
}

// SetTitle implements Terminal.
func (m *MockTerminal) SetTitle(title string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.title = title
}

// Title returns the last title set.
func (m *MockTerminal) Title() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.title
}

// Caps implements Terminal.
func (m *MockTerminal) Caps() Capabilities {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.caps
}

// SetCaps replaces the reported capabilities.
func (m *MockTerminal) SetCaps(caps Capabilities) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.caps = caps
}

// Feed queues events for ReadEvent.
func (m *MockTerminal) Feed(events ...InputEvent) {
	for _, ev := range events {
		m.events <- ev
	}
}

// ReadEvent implements Terminal.
func (m *MockTerminal) ReadEvent(ctx context.Context) (InputEvent, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case ev := <-m.events:
		return ev, nil
	}
}

// CellAt returns the cell drawn at (x, y).
func (m *MockTerminal) CellAt(x, y int) Cell {
	m.mu.Lock()
	defer m.mu.Unlock()
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return Cell{}
	}
	return m.cells[y*m.width+x]
}

// String returns the screen's text with trailing spaces trimmed from each
// row.
func (m *MockTerminal) String() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	rows := make([]string, m.height)
	for y := range rows {
		var row strings.Builder
		for x := 0; x < m.width; x++ {
			c := m.cells[y*m.width+x]
			switch {
			case c.IsContinuation():
			case c.Rune == 0:
				row.WriteByte(' ')
			default:
				row.WriteRune(c.Rune)
			}
		}
		rows[y] = strings.TrimRight(row.String(), " ")
	}
	return strings.Join(rows, "\n")
}

// Resize changes the screen size and blanks it. It does not emit a
// ResizeEvent; Feed one to simulate the terminal reporting it.
func (m *MockTerminal) Resize(width, height int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.width, m.height = width, height
	m.cells = make([]Cell, width*height)
	for i := range m.cells {
		m.cells[i] = blankCell
	}
}
