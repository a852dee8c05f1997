package celadon

import "testing"

func TestParseInput_Keys(t *testing.T) {
	type tc struct {
		input    []byte
		expected []KeyEvent
	}

	tests := map[string]tc{
		"single letter": {input: []byte("a"), expected: []KeyEvent{{Key: KeyRune, Rune: 'a'}}},
		"multiple chars": {
			input:    []byte("ab"),
			expected: []KeyEvent{{Key: KeyRune, Rune: 'a'}, {Key: KeyRune, Rune: 'b'}},
		},
		"utf8":            {input: []byte("日"), expected: []KeyEvent{{Key: KeyRune, Rune: '日'}}},
		"ctrl-c":          {input: []byte{0x03}, expected: []KeyEvent{{Key: KeyCtrlC}}},
		"tab":             {input: []byte{0x09}, expected: []KeyEvent{{Key: KeyTab}}},
		"enter":           {input: []byte{0x0d}, expected: []KeyEvent{{Key: KeyEnter}}},
		"del backspace":   {input: []byte{0x7f}, expected: []KeyEvent{{Key: KeyBackspace}}},
		"lone escape":     {input: []byte{0x1b}, expected: []KeyEvent{{Key: KeyEscape}}},
		"alt-x":           {input: []byte("\x1bx"), expected: []KeyEvent{{Key: KeyRune, Rune: 'x', Mod: ModAlt}}},
		"arrow up":        {input: []byte("\x1b[A"), expected: []KeyEvent{{Key: KeyUp}}},
		"ss3 arrow right": {input: []byte("\x1bOC"), expected: []KeyEvent{{Key: KeyRight}}},
		"shift-tab":       {input: []byte("\x1b[Z"), expected: []KeyEvent{{Key: KeyTab, Mod: ModShift}}},
		"ctrl-up":         {input: []byte("\x1b[1;5A"), expected: []KeyEvent{{Key: KeyUp, Mod: ModCtrl}}},
		"delete":          {input: []byte("\x1b[3~"), expected: []KeyEvent{{Key: KeyDelete}}},
		"f12":             {input: []byte("\x1b[24~"), expected: []KeyEvent{{Key: KeyF12}}},
		"unknown tilde":   {input: []byte("\x1b[99~"), expected: nil},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			events := parseInput(tt.input)
			if len(events) != len(tt.expected) {
				t.Fatalf("parseInput(%q) returned %d events, want %d", tt.input, len(events), len(tt.expected))
			}
			for i, e := range events {
				ke, ok := e.(KeyEvent)
				if !ok {
					t.Fatalf("event %d is %T, want KeyEvent", i, e)
				}
				if ke != tt.expected[i] {
					t.Errorf("event %d = %+v, want %+v", i, ke, tt.expected[i])
				}
			}
		})
	}
}

func TestParseMouseSGR(t *testing.T) {
	type tc struct {
		input    []byte
		expected MouseEvent
		consumed int
	}

	tests := map[string]tc{
		"left click": {
			input:    []byte("\x1b[<0;1;1M"),
			expected: MouseEvent{Action: LeftClick, X: 0, Y: 0},
			consumed: 9,
		},
		"left release": {
			input:    []byte("\x1b[<0;1;1m"),
			expected: MouseEvent{Action: LeftRelease, X: 0, Y: 0},
			consumed: 9,
		},
		"right click": {
			input:    []byte("\x1b[<2;5;5M"),
			expected: MouseEvent{Action: MouseAction{Kind: MouseClick, Button: MouseRight}, X: 4, Y: 4},
			consumed: 9,
		},
		"left drag": {
			input:    []byte("\x1b[<32;15;25M"),
			expected: MouseEvent{Action: LeftDrag, X: 14, Y: 24},
			consumed: 12,
		},
		"hover": {
			input:    []byte("\x1b[<35;3;4M"),
			expected: MouseEvent{Action: Hover, X: 2, Y: 3},
			consumed: 10,
		},
		"scroll up": {
			input:    []byte("\x1b[<64;10;10M"),
			expected: MouseEvent{Action: ScrollUp, X: 9, Y: 9},
			consumed: 12,
		},
		"scroll right": {
			input:    []byte("\x1b[<67;10;10M"),
			expected: MouseEvent{Action: MouseAction{Kind: MouseScrollRight}, X: 9, Y: 9},
			consumed: 12,
		},
		"shift click": {
			input:    []byte("\x1b[<4;5;5M"),
			expected: MouseEvent{Action: MouseAction{Kind: MouseClick, Button: MouseLeft, Mod: ModShift}, X: 4, Y: 4},
			consumed: 9,
		},
		"ctrl alt click": {
			input:    []byte("\x1b[<24;5;5M"),
			expected: MouseEvent{Action: MouseAction{Kind: MouseClick, Button: MouseLeft, Mod: ModCtrl | ModAlt}, X: 4, Y: 4},
			consumed: 10,
		},
		"truncated": {
			input:    []byte("\x1b[<0;1"),
			consumed: 0,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			ev, consumed := parseMouseSGR(tt.input)
			if consumed != tt.consumed {
				t.Fatalf("consumed = %d, want %d", consumed, tt.consumed)
			}
			if consumed > 0 && ev != tt.expected {
				t.Errorf("event = %+v, want %+v", ev, tt.expected)
			}
		})
	}
}

func TestParseInput_MixedStream(t *testing.T) {
	events := parseInput([]byte("a\x1b[<0;3;2M\x1b[B"))
	if len(events) != 3 {
		t.Fatalf("parseInput returned %d events, want 3", len(events))
	}
	if ke, ok := events[0].(KeyEvent); !ok || !ke.IsRune('a') {
		t.Errorf("events[0] = %+v, want rune a", events[0])
	}
	if me, ok := events[1].(MouseEvent); !ok || me.Action != LeftClick || me.X != 2 || me.Y != 1 {
		t.Errorf("events[1] = %+v, want left click at (2, 1)", events[1])
	}
	if ke, ok := events[2].(KeyEvent); !ok || ke.Key != KeyDown {
		t.Errorf("events[2] = %+v, want down", events[2])
	}
}

func TestIncompleteSuffix(t *testing.T) {
	type tc struct {
		data     []byte
		expected int
	}

	full := []byte("日")
	tests := map[string]tc{
		"ascii":         {data: []byte("abc"), expected: 3},
		"complete rune": {data: full, expected: 3},
		"one byte cut":  {data: full[:2], expected: 0},
		"after ascii":   {data: append([]byte("ab"), full[:1]...), expected: 2},
		"empty":         {data: nil, expected: 0},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := incompleteSuffix(tt.data); got != tt.expected {
				t.Errorf("incompleteSuffix(%q) = %d, want %d", tt.data, got, tt.expected)
			}
		})
	}
}

func TestKeyEvent_Names(t *testing.T) {
	type tc struct {
		event    KeyEvent
		expected []string
		nav      int
	}

	tests := map[string]tc{
		"rune":       {event: KeyEvent{Key: KeyRune, Rune: 'q'}, expected: []string{"q"}},
		"shift rune": {event: KeyEvent{Key: KeyRune, Rune: 'Q', Mod: ModShift}, expected: []string{"Q"}},
		"alt rune":   {event: KeyEvent{Key: KeyRune, Rune: 'x', Mod: ModAlt}, expected: []string{"alt-x"}},
		"enter":      {event: KeyEvent{Key: KeyEnter}, expected: []string{"return", "enter"}},
		"ctrl-c":     {event: KeyEvent{Key: KeyCtrlC}, expected: []string{"ctrl-c"}},
		"tab":        {event: KeyEvent{Key: KeyTab}, expected: []string{"tab"}, nav: 1},
		"shift-tab":  {event: KeyEvent{Key: KeyTab, Mod: ModShift}, expected: []string{"shift-tab"}, nav: -1},
		"up":         {event: KeyEvent{Key: KeyUp}, expected: []string{"up"}, nav: -1},
		"ctrl-down":  {event: KeyEvent{Key: KeyDown, Mod: ModCtrl}, expected: []string{"ctrl-down"}},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got := tt.event.Names()
			if len(got) != len(tt.expected) {
				t.Fatalf("Names() = %v, want %v", got, tt.expected)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("Names()[%d] = %q, want %q", i, got[i], tt.expected[i])
				}
			}
			if nav := tt.event.navigation(); nav != tt.nav {
				t.Errorf("navigation() = %d, want %d", nav, tt.nav)
			}
		})
	}
}

func TestMouseAction_Names(t *testing.T) {
	type tc struct {
		action   MouseAction
		expected []string
	}

	tests := map[string]tc{
		"left click":  {action: LeftClick, expected: []string{"left_click", "click"}},
		"hover":       {action: Hover, expected: []string{"hover"}},
		"scroll down": {action: ScrollDown, expected: []string{"scroll_down"}},
		"shift ctrl right drag": {
			action:   MouseAction{Kind: MouseDrag, Button: MouseRight, Mod: ModShift | ModCtrl},
			expected: []string{"shift_ctrl_right_drag", "right_drag", "drag"},
		},
		"option scroll up": {
			action:   MouseAction{Kind: MouseScrollUp, Mod: ModAlt},
			expected: []string{"option_scroll_up", "scroll_up"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got := tt.action.Names()
			if len(got) != len(tt.expected) {
				t.Fatalf("Names() = %v, want %v", got, tt.expected)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("Names()[%d] = %q, want %q", i, got[i], tt.expected[i])
				}
			}
		})
	}
}
