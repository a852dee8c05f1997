package celadon

import (
	"errors"
	"testing"

	"github.com/muesli/termenv"

	"github.com/celadon-tui/celadon/internal/layout"
)

func applyRules(t *testing.T, p *Page) {
	t.Helper()
	if _, err := p.ApplyRules(); err != nil {
		t.Fatalf("ApplyRules() error = %v", err)
	}
}

func TestPage_Cascade(t *testing.T) {
	type tc struct {
		rules    string
		groups   []string
		extra    func(*Page)
		expected string
	}

	tests := map[string]tc{
		"type rule": {
			rules:    "Button:\n  content: type\n",
			expected: "type",
		},
		"group beats type": {
			rules:    "Button.big:\n  content: group\nButton:\n  content: type\n",
			groups:   []string{"big"},
			expected: "group",
		},
		"id beats group": {
			rules:    "Button#ok:\n  content: id\nButton.big:\n  content: group\n",
			groups:   []string{"big"},
			expected: "id",
		},
		"state rule": {
			rules:    "Button:\n  content: type\n  /idle:\n    content: idle\n",
			expected: "idle",
		},
		"parent rule": {
			rules:    "Tower > Button:\n  content: child\nButton:\n  content: type\n",
			expected: "child",
		},
		"forced score": {
			rules: "Button#ok:\n  content: id\n",
			extra: func(p *Page) {
				if _, err := p.Rule("Button", map[string]any{"content": "forced"}, WithScore(5000)); err != nil {
					t.Fatalf("Rule() error = %v", err)
				}
			},
			expected: "forced",
		},
		"later rules merge into earlier ones": {
			rules:    "Button:\n  content: first\n",
			extra:    func(p *Page) { _, _ = p.Rule("Button", map[string]any{"content": "second"}) },
			expected: "second",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			button := NewButton("label", WithID("ok"), WithGroups(tt.groups...))
			tower := NewTower()
			tower.AddChild(button)

			p, err := NewPage([]Widget{tower}, WithRules(tt.rules))
			if err != nil {
				t.Fatalf("NewPage() error = %v", err)
			}
			if tt.extra != nil {
				tt.extra(p)
			}
			applyRules(t, p)

			if button.Label() != tt.expected {
				t.Errorf("Label() = %q, want %q", button.Label(), tt.expected)
			}
		})
	}
}

func TestPage_BuiltinRules(t *testing.T) {
	big := NewButton("big", WithGroups("big"))
	plain := NewButton("plain")
	text := NewText("hi")
	p := MustNewPage([]Widget{big, plain, text}, WithRules("Button:\n  width: 20\n"))
	applyRules(t, p)

	if plain.Height() != layout.Fixed(1) || plain.Width() != layout.Fixed(20) {
		t.Errorf("plain button size = %v x %v, want 20 x 1", plain.Width(), plain.Height())
	}
	if big.Height() != layout.Fixed(3) {
		t.Errorf("big button height = %v, want 3", big.Height())
	}
	if text.Height() != layout.Fixed(1) {
		t.Errorf("text height = %v, want 1", text.Height())
	}
}

func TestPage_ReappliesOnStateChange(t *testing.T) {
	text := NewText("")
	p := MustNewPage([]Widget{text}, WithRules("Text:\n  content: plain\n  /hover:\n    content: hover\n"))
	applyRules(t, p)
	if text.Text() != "plain" {
		t.Fatalf("Text() = %q, want plain", text.Text())
	}

	text.StateMachine().ApplyAction(ActionHovered)
	applyRules(t, p)
	if text.Text() != "hover" {
		t.Errorf("Text() while hovered = %q, want hover", text.Text())
	}

	text.StateMachine().ApplyAction(ActionReleased)
	applyRules(t, p)
	if text.Text() != "plain" {
		t.Errorf("Text() after leaving = %q, want plain", text.Text())
	}

	applied, err := p.ApplyRules()
	if err != nil || applied {
		t.Errorf("ApplyRules() without changes = (%v, %v), want (false, nil)", applied, err)
	}
}

func TestPage_ApplyRulesError(t *testing.T) {
	p := MustNewPage([]Widget{NewButton("x")}, WithRules("Button:\n  bogus: 1\n"))
	if _, err := p.ApplyRules(); !errors.Is(err, ErrAttribute) {
		t.Errorf("ApplyRules() error = %v, want ErrAttribute", err)
	}
}

func TestPage_Palettes(t *testing.T) {
	type tc struct {
		profile  termenv.Profile
		expected string
	}

	rules := `
Palette/ocean:
    primary: '#0077be'

Terminal.256-color *> Palette/ocean:
    primary: '#112233'
`

	tests := map[string]tc{
		"true color":         {profile: termenv.TrueColor, expected: "#0077be"},
		"256 color override": {profile: termenv.ANSI256, expected: "#112233"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			term := NewMockTerminal(10, 2)
			term.SetCaps(Capabilities{Profile: tt.profile})

			button := NewButton("x")
			p := MustNewPage([]Widget{button}, WithRules(rules))
			p.terminal = term
			applyRules(t, p)

			got, ok := p.Palettes().Lookup("ocean.primary")
			if !ok {
				t.Fatal("Lookup(ocean.primary) found nothing")
			}
			want, _ := HexColor(tt.expected)
			if got != want {
				t.Errorf("ocean.primary = %v, want %v", got, want)
			}
			if _, ok := p.Palettes().Lookup("main.primary"); !ok {
				t.Error("the page lost the default palette")
			}

			for _, m := range p.MatchingRules(button) {
				if m.Query == "Palette/ocean" {
					t.Errorf("palette rule %q matched a widget", m.Query)
				}
			}
		})
	}
}

func TestPage_MatchingRules(t *testing.T) {
	button := NewButton("x", WithID("ok"))
	p := MustNewPage([]Widget{button}, WithRules("Button#ok:\n  width: 3\n  content_style: bold\n"))
	applyRules(t, p)

	matches := p.MatchingRules(button)
	if len(matches) < 2 {
		t.Fatalf("MatchingRules() = %+v, want the builtin and user rules", matches)
	}
	for i := 1; i < len(matches); i++ {
		if matches[i].Score < matches[i-1].Score {
			t.Errorf("MatchingRules() not sorted by score: %+v", matches)
		}
	}

	last := matches[len(matches)-1]
	if last.Query != "Button#ok" || last.Score != 1100 {
		t.Errorf("last match = %s (%d), want Button#ok (1100)", last.Query, last.Score)
	}
	if last.Values["width"] != 3 || last.Values["content_style"] != "bold" {
		t.Errorf("last match values = %v", last.Values)
	}
}

func TestPage_Find(t *testing.T) {
	a := NewButton("a", WithID("a"), WithGroups("action"))
	b := NewButton("b", WithGroups("action", "hidden"))
	row := NewRow(WithID("bar"))
	row.AddChild(a, b, NewText("t"))
	p := MustNewPage([]Widget{row})

	all, err := p.FindAll("Button.action")
	if err != nil {
		t.Fatalf("FindAll() error = %v", err)
	}
	if len(all) != 2 {
		t.Errorf("len(FindAll(Button.action)) = %d, want 2", len(all))
	}

	found, err := p.Find("Row#bar > Button#a")
	if err != nil || found != Widget(a) {
		t.Errorf("Find() = (%v, %v), want the first button", found, err)
	}

	found, err = p.Find("#missing")
	if err != nil || found != nil {
		t.Errorf("Find(#missing) = (%v, %v), want (nil, nil)", found, err)
	}

	if _, err := p.FindAll("button"); !errors.Is(err, ErrSyntax) {
		t.Errorf("FindAll(button) error = %v, want ErrSyntax", err)
	}
}

func TestPage_Options(t *testing.T) {
	if _, err := NewPage(nil, WithRoute("about")); !errors.Is(err, ErrValue) {
		t.Errorf("WithRoute(about) error = %v, want ErrValue", err)
	}
	if _, err := NewPage(nil, WithRules("Button: [")); err == nil {
		t.Error("WithRules() with broken YAML returned no error")
	}

	p := MustNewPage(nil, WithTitle("Home"), WithRoute("/home"))
	if p.Title() != "Home" || p.Route() != "/home" || p.ID() != "/home" {
		t.Errorf("page = (%q, %q), want (Home, /home)", p.Title(), p.Route())
	}
}

func TestPage_LayoutAndDraw(t *testing.T) {
	type tc struct {
		build    func() Widget
		expected string
	}

	tests := map[string]tc{
		"text at the origin": {
			build:    func() Widget { return NewText("hello") },
			expected: "hello\n\n",
		},
		"centered by group": {
			build: func() Widget {
				return NewText("hello", WithGroups("center"), WithWidth(layout.Fixed(9)))
			},
			expected: "  hello\n\n",
		},
		"anchored to the screen": {
			build: func() Widget {
				text := NewText("hello")
				text.SetAnchor(AnchorScreen, layout.Point{X: 3, Y: 2})
				return text
			},
			expected: "\n\n   hello",
		},
		"clipped at the screen edge": {
			build: func() Widget {
				text := NewText("hello world")
				text.SetAnchor(AnchorScreen, layout.Point{X: 4, Y: 0})
				return text
			},
			expected: "    hello\n\n",
		},
		"hidden": {
			build:    func() Widget { return NewText("hello", WithGroups("hidden")) },
			expected: "\n\n",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			p := MustNewPage([]Widget{tt.build()})
			applyRules(t, p)
			if err := p.Layout(10, 3); err != nil {
				t.Fatalf("Layout() error = %v", err)
			}
			buf := NewBuffer(10, 3)
			if err := p.Draw(buf); err != nil {
				t.Fatalf("Draw() error = %v", err)
			}
			if got := buf.StringTrimmed(); got != tt.expected {
				t.Errorf("screen = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestPage_KeyboardWraps(t *testing.T) {
	buttons := []Widget{NewButton("a"), NewButton("b"), NewButton("c")}
	p := MustNewPage(buttons)
	tab := KeyEvent{Key: KeyTab}

	for i, want := range []int{0, 1, 2, 0} {
		if !p.HandleKeyboard(tab) {
			t.Fatalf("tab %d not handled", i)
		}
		if p.SelectedIndex() != want {
			t.Errorf("after tab %d SelectedIndex() = %d, want %d", i, p.SelectedIndex(), want)
		}
	}
	if buttons[0].State() != StateSelected || buttons[2].State() != StateIdle {
		t.Errorf("states = (%q, %q), want the first button selected", buttons[0].State(), buttons[2].State())
	}

	p.ClearSelection()
	p.HandleKeyboard(KeyEvent{Key: KeyTab, Mod: ModShift})
	if p.SelectedIndex() != 2 {
		t.Errorf("SelectedIndex() after shift-tab = %d, want 2", p.SelectedIndex())
	}

	quit := false
	p.Bind("q", func(*Page) bool {
		quit = true
		return true
	})
	if !p.HandleKeyboard(KeyEvent{Key: KeyRune, Rune: 'q'}) || !quit {
		t.Error("page binding for q was not called")
	}
}

func TestPage_ClickSelects(t *testing.T) {
	row := NewRow(WithWidth(layout.Fixed(10)), WithHeight(layout.Fixed(1)))
	row.SetGap(layout.Fixed(0), 0)
	first, second := NewButton("a"), NewButton("b")
	row.AddChild(first, second)
	p := MustNewPage([]Widget{NewText("x", WithGroups("hidden")), row})
	if err := p.Layout(10, 1); err != nil {
		t.Fatalf("Layout() error = %v", err)
	}

	if !p.HandleMouse(MouseEvent{Action: LeftClick, X: 7, Y: 0}) {
		t.Fatal("HandleMouse(click) = false, want true")
	}
	if p.Selected() != Widget(row) || p.SelectedIndex() != 1 {
		t.Errorf("selection = (%v, %d), want the row at index 1", p.Selected(), p.SelectedIndex())
	}
	p.HandleMouse(MouseEvent{Action: LeftRelease, X: 7, Y: 0})
	if second.State() != StateSelected {
		t.Errorf("second button state = %q, want %q", second.State(), StateSelected)
	}

	p.HandleMouse(MouseEvent{Action: LeftClick, X: 5, Y: 5})
	if p.Selected() != nil || second.State() != StateIdle {
		t.Errorf("a click outside every widget kept the selection")
	}
}

func TestPage_RuleTableCached(t *testing.T) {
	p := MustNewPage([]Widget{NewText("hi")})
	applyRules(t, p)

	first := p.rules()
	if again := p.rules(); len(again) != len(first) || &again[0] != &first[0] {
		t.Error("rules() rebuilt an unchanged table")
	}

	if _, err := p.Rule("Text#greeting", map[string]any{"content": "changed"}); err != nil {
		t.Fatalf("Rule() error = %v", err)
	}
	after := p.rules()
	if len(after) != len(first)+1 {
		t.Errorf("len(rules()) after Rule = %d, want %d", len(after), len(first)+1)
	}
	if &after[0] == &first[0] {
		t.Error("rules() returned the stale table after Rule")
	}
}
