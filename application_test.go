package celadon

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/celadon-tui/celadon/internal/layout"
)

func newTestApp(t *testing.T, pages ...*Page) (*Application, *MockTerminal) {
	t.Helper()
	term := NewMockTerminal(20, 3)
	app, err := NewApplication("demo", WithTerminal(term), WithLogger(log.New(io.Discard)))
	if err != nil {
		t.Fatalf("NewApplication() error = %v", err)
	}
	for _, p := range pages {
		if err := app.AddPage(p); err != nil {
			t.Fatalf("AddPage() error = %v", err)
		}
	}
	return app, term
}

func tick(t *testing.T, app *Application, elapsed time.Duration) {
	t.Helper()
	if err := app.Tick(elapsed); err != nil {
		t.Fatalf("Tick() error = %v", err)
	}
}

func TestNewApplication_Options(t *testing.T) {
	type tc struct {
		opt      AppOption
		expected error
	}

	tests := map[string]tc{
		"frame rate":          {opt: WithFrameRate(30)},
		"frame rate too low":  {opt: WithFrameRate(0), expected: ErrValue},
		"frame rate too high": {opt: WithFrameRate(241), expected: ErrValue},
		"fps sample":          {opt: WithFPSSample(10)},
		"empty fps sample":    {opt: WithFPSSample(0), expected: ErrValue},
		"queue size":          {opt: WithEventQueueSize(8)},
		"empty queue":         {opt: WithEventQueueSize(0), expected: ErrValue},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := NewApplication("demo", WithTerminal(NewMockTerminal(5, 5)), tt.opt)
			if tt.expected == nil {
				if err != nil {
					t.Errorf("NewApplication() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.expected) {
				t.Errorf("NewApplication() error = %v, want %v", err, tt.expected)
			}
		})
	}
}

func TestApplication_TickDraws(t *testing.T) {
	home := MustNewPage([]Widget{NewText("hello")})
	app, term := newTestApp(t, home)

	if app.CurrentPage() != home {
		t.Fatalf("CurrentPage() = %v, want the first page added", app.CurrentPage())
	}
	tick(t, app, 0)

	if got := term.String(); got != "hello\n\n" {
		t.Errorf("screen = %q, want %q", got, "hello\n\n")
	}
	flushes := term.Flushes()
	tick(t, app, 10*time.Millisecond)
	if term.Flushes() != flushes+1 {
		t.Errorf("Flushes() = %d, want one per frame", term.Flushes())
	}
}

func TestApplication_Route(t *testing.T) {
	home := MustNewPage([]Widget{NewText("home")}, WithTitle("Home"))
	about := MustNewPage([]Widget{NewText("about")}, WithTitle("About"), WithRoute("/about"))
	app, term := newTestApp(t, home, about)

	var changed []*Page
	app.OnPageChanged.Subscribe(func(p *Page) bool {
		changed = append(changed, p)
		return true
	})

	if term.Title() != "demo" {
		t.Errorf("Title() = %q, want %q", term.Title(), "demo")
	}
	if err := app.Route("/about"); err != nil {
		t.Fatalf("Route(/about) error = %v", err)
	}
	if term.Title() != "demo - About" {
		t.Errorf("Title() = %q, want %q", term.Title(), "demo - About")
	}
	tick(t, app, 0)
	if got := term.String(); !strings.HasPrefix(got, "about") {
		t.Errorf("screen = %q, want the about page", got)
	}
	if len(changed) != 1 || changed[0] != about {
		t.Errorf("OnPageChanged received %v, want the about page", changed)
	}

	if err := app.Route("/missing"); !errors.Is(err, ErrValue) {
		t.Errorf("Route(/missing) error = %v, want ErrValue", err)
	}
	if app.CurrentPage() != about {
		t.Error("a failed Route changed the current page")
	}
}

func TestApplication_TextLinkRoutes(t *testing.T) {
	home := MustNewPage([]Widget{NewText("go ~/about")})
	about := MustNewPage([]Widget{NewText("about")}, WithRoute("/about"))
	app, _ := newTestApp(t, home, about)
	tick(t, app, 0)

	app.HandleInput(MouseEvent{Action: LeftClick, X: 1, Y: 0})
	if app.CurrentPage() != about {
		t.Errorf("CurrentPage() = %v, want the about page", app.CurrentPage().Route())
	}
}

func TestApplication_RulesReachPages(t *testing.T) {
	text := NewText("")
	term := NewMockTerminal(20, 3)
	app, err := NewApplication("demo", WithTerminal(term), WithLogger(log.New(io.Discard)))
	if err != nil {
		t.Fatalf("NewApplication() error = %v", err)
	}
	if _, err := app.Rule("Text", map[string]any{"content": "from app"}); err != nil {
		t.Fatalf("Rule() error = %v", err)
	}
	if err := app.AddPage(MustNewPage([]Widget{text})); err != nil {
		t.Fatalf("AddPage() error = %v", err)
	}
	tick(t, app, 0)

	if text.Text() != "from app" {
		t.Errorf("Text() = %q, want %q", text.Text(), "from app")
	}
}

func TestApplication_RuleAfterAddPage(t *testing.T) {
	home, about := NewText(""), NewText("")
	app, _ := newTestApp(t,
		MustNewPage([]Widget{home}),
		MustNewPage([]Widget{about}, WithRoute("/about")),
	)
	tick(t, app, 0)

	if _, err := app.Rule("Text", map[string]any{"content": "from app"}); err != nil {
		t.Fatalf("Rule() error = %v", err)
	}
	tick(t, app, 0)
	if home.Text() != "from app" {
		t.Errorf("Text() on the current page = %q, want %q", home.Text(), "from app")
	}

	if err := app.Route("/about"); err != nil {
		t.Fatalf("Route() error = %v", err)
	}
	tick(t, app, 0)
	if about.Text() != "from app" {
		t.Errorf("Text() on a page added earlier = %q, want %q", about.Text(), "from app")
	}

	if err := app.LoadRules("Text:\n  content: loaded\n"); err != nil {
		t.Fatalf("LoadRules() error = %v", err)
	}
	tick(t, app, 0)
	if about.Text() != "loaded" {
		t.Errorf("Text() after LoadRules = %q, want %q", about.Text(), "loaded")
	}

	if _, err := app.Rule("text", map[string]any{"content": "x"}); !errors.Is(err, ErrSyntax) {
		t.Errorf("Rule() with a bad selector error = %v, want ErrSyntax", err)
	}
}

func TestApplication_TextLinkToMissingRoute(t *testing.T) {
	home := MustNewPage([]Widget{NewText("go ~/nowhere")})
	app, _ := newTestApp(t, home)
	tick(t, app, 0)

	var reported []error
	app.OnError.Subscribe(func(err error) bool {
		reported = append(reported, err)
		return true
	})

	app.HandleInput(MouseEvent{Action: LeftClick, X: 1, Y: 0})
	if app.CurrentPage() != home {
		t.Errorf("CurrentPage() = %v, want the home page", app.CurrentPage().Route())
	}
	if len(reported) != 1 || !errors.Is(reported[0], ErrValue) {
		t.Fatalf("OnError received %v, want one ErrValue", reported)
	}
	if !strings.Contains(reported[0].Error(), "/nowhere") {
		t.Errorf("error = %q, want it to name the route", reported[0])
	}
}

func TestApplication_Builder(t *testing.T) {
	built := 0
	page := MustNewPage(nil, WithBuilder(func(p *Page) error {
		built++
		p.AddChild(NewText("built"))
		return nil
	}))
	app, term := newTestApp(t, page)
	tick(t, app, 0)

	if built != 1 {
		t.Errorf("builder ran %d times, want 1", built)
	}
	if got := term.String(); !strings.HasPrefix(got, "built") {
		t.Errorf("screen = %q, want the built text", got)
	}

	failing := MustNewPage(nil, WithRoute("/bad"), WithBuilder(func(*Page) error {
		return ErrValue
	}))
	if err := app.AddPage(failing); !errors.Is(err, ErrValue) {
		t.Errorf("AddPage() error = %v, want the builder's error", err)
	}
}

func TestApplication_Pin(t *testing.T) {
	overlay := NewText("top")
	overlay.SetAnchor(AnchorScreen, layout.Point{X: 2, Y: 1})
	app, term := newTestApp(t, MustNewPage([]Widget{NewText("page")}))

	app.Pin(overlay)
	tick(t, app, 0)
	if got := term.String(); got != "page\n  top\n" {
		t.Errorf("screen = %q, want %q", got, "page\n  top\n")
	}

	if !app.Unpin(overlay) {
		t.Fatal("Unpin() = false, want true")
	}
	tick(t, app, 0)
	if got := term.String(); got != "page\n\n" {
		t.Errorf("screen after Unpin = %q, want %q", got, "page\n\n")
	}
}

func TestApplication_Timeout(t *testing.T) {
	app, _ := newTestApp(t, MustNewPage(nil))

	calls := 0
	app.Timeout(100*time.Millisecond, func() { calls++ })
	cancelled := app.Timeout(50*time.Millisecond, func() { t.Error("cleared timeout ran") })
	if err := app.ClearTimeout(cancelled); err != nil {
		t.Fatalf("ClearTimeout() error = %v", err)
	}

	tick(t, app, 60*time.Millisecond)
	if calls != 0 {
		t.Errorf("calls after 60ms = %d, want 0", calls)
	}
	tick(t, app, 60*time.Millisecond)
	if calls != 1 {
		t.Errorf("calls after 120ms = %d, want 1", calls)
	}
	tick(t, app, time.Second)
	if calls != 1 {
		t.Errorf("calls after a second = %d, want the timeout to run once", calls)
	}

	if err := app.ClearTimeout(cancelled); !errors.Is(err, ErrValue) {
		t.Errorf("second ClearTimeout() error = %v, want ErrValue", err)
	}
}

func TestApplication_KeyboardPressReleasesOnTimeout(t *testing.T) {
	button := NewButton("ok")
	app, _ := newTestApp(t, MustNewPage([]Widget{button}))
	tick(t, app, 0)

	app.HandleInput(KeyEvent{Key: KeyTab})
	if button.State() != StateSelected {
		t.Fatalf("State() after tab = %q, want %q", button.State(), StateSelected)
	}

	submitted := 0
	button.OnSubmit.Subscribe(func(*Button) bool {
		submitted++
		return true
	})
	app.HandleInput(KeyEvent{Key: KeyEnter})
	app.HandleInput(KeyEvent{Key: KeyEnter})
	if button.State() != StateActive {
		t.Errorf("State() while pressed = %q, want %q", button.State(), StateActive)
	}
	if submitted != 1 {
		t.Errorf("submitted = %d, want 1 while the button is held", submitted)
	}

	tick(t, app, 100*time.Millisecond)
	if button.State() != StateActive {
		t.Errorf("State() after 100ms = %q, want %q", button.State(), StateActive)
	}
	tick(t, app, 100*time.Millisecond)
	if button.State() != StateSelected {
		t.Errorf("State() after the press = %q, want %q", button.State(), StateSelected)
	}
}

func TestApplication_ClickSubmits(t *testing.T) {
	button := NewButton("ok")
	app, _ := newTestApp(t, MustNewPage([]Widget{button}))
	tick(t, app, 0)

	submitted := 0
	button.OnSubmit.Subscribe(func(*Button) bool {
		submitted++
		return true
	})
	if !app.HandleInput(MouseEvent{Action: LeftClick, X: 1, Y: 0}) {
		t.Error("HandleInput(click) = false, want true")
	}
	app.HandleInput(MouseEvent{Action: LeftRelease, X: 1, Y: 0})

	if submitted != 1 {
		t.Errorf("submitted = %d, want 1", submitted)
	}
	if app.CurrentPage().Selected() != Widget(button) {
		t.Errorf("Selected() = %v, want the clicked button", app.CurrentPage().Selected())
	}
	if app.HandleInput(MouseEvent{Action: LeftClick, X: 15, Y: 2}) {
		t.Error("HandleInput(click on nothing) = true, want false")
	}
}

func TestApplication_Resize(t *testing.T) {
	app, _ := newTestApp(t, MustNewPage([]Widget{NewText("x")}))
	app.HandleInput(ResizeEvent{Width: 40, Height: 10})

	if w, h := app.buffer.Size(); w != 40 || h != 10 {
		t.Errorf("buffer size = (%d, %d), want (40, 10)", w, h)
	}
	tick(t, app, 0)
}

func TestApplication_Run(t *testing.T) {
	t.Run("ctrl-c stops", func(t *testing.T) {
		app, term := newTestApp(t, MustNewPage([]Widget{NewText("hi")}))
		term.Feed(KeyEvent{Key: KeyCtrlC})

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := app.Run(ctx); err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		if term.Started() {
			t.Error("terminal still started after Run returned")
		}
		if term.Flushes() == 0 {
			t.Error("Run() drew no frames")
		}
	})

	t.Run("context cancel stops", func(t *testing.T) {
		app, _ := newTestApp(t, MustNewPage(nil))
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
		defer cancel()
		if err := app.Run(ctx); err != nil {
			t.Errorf("Run() error = %v, want nil", err)
		}
	})

	t.Run("queued update stops", func(t *testing.T) {
		app, _ := newTestApp(t, MustNewPage(nil))
		go app.QueueUpdate(app.Stop)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := app.Run(ctx); err != nil {
			t.Errorf("Run() error = %v, want nil", err)
		}
		if ctx.Err() != nil {
			t.Error("Run() only returned at the deadline")
		}
	})

	t.Run("frame error", func(t *testing.T) {
		page := MustNewPage([]Widget{NewButton("x")}, WithRules("Button:\n  bogus: 1\n"))
		app, _ := newTestApp(t, page)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := app.Run(ctx); !errors.Is(err, ErrAttribute) {
			t.Errorf("Run() error = %v, want ErrAttribute", err)
		}
	})

	t.Run("no pages", func(t *testing.T) {
		app, _ := newTestApp(t)
		if err := app.Run(context.Background()); !errors.Is(err, ErrValue) {
			t.Errorf("Run() error = %v, want ErrValue", err)
		}
	})
}
