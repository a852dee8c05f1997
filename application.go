package celadon

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/celadon-tui/celadon/internal/debug"
)

// TimeoutHandle identifies a callback scheduled with Timeout.
type TimeoutHandle struct {
	remaining time.Duration
	fn        func()
}

// AppOption configures an Application.
type AppOption func(*Application) error

// WithTerminal sets the terminal the application draws to. The default
// is an ANSITerminal on stdout and stdin.
func WithTerminal(t Terminal) AppOption {
	return func(a *Application) error {
		a.terminal = t
		return nil
	}
}

// WithFrameRate sets the target frame rate. Valid range is 1-240 fps.
func WithFrameRate(fps int) AppOption {
	return func(a *Application) error {
		if fps < 1 {
			return fmt.Errorf("%w: frame rate must be at least 1 fps", ErrValue)
		}
		if fps > 240 {
			return fmt.Errorf("%w: frame rate cannot exceed 240 fps", ErrValue)
		}
		a.frameDuration = time.Second / time.Duration(fps)
		return nil
	}
}

// WithLogger sets the logger the application reports frames and errors
// to. The default logs to the debug log.
func WithLogger(logger *log.Logger) AppOption {
	return func(a *Application) error {
		a.logger = logger
		return nil
	}
}

// WithFPSSample sets how many frames the measured frame rate is averaged
// over.
func WithFPSSample(frames int) AppOption {
	return func(a *Application) error {
		if frames < 1 {
			return fmt.Errorf("%w: fps sample must be at least 1 frame", ErrValue)
		}
		a.fpsSample = frames
		return nil
	}
}

// WithEventQueueSize sets the capacity of the queue holding input and
// updates between frames. Default is 256.
func WithEventQueueSize(size int) AppOption {
	return func(a *Application) error {
		if size < 1 {
			return fmt.Errorf("%w: event queue size must be at least 1", ErrValue)
		}
		a.queueSize = size
		return nil
	}
}

// Application runs pages on a terminal. Its own rules apply to every
// page, and widgets pinned to it are drawn above the current page.
type Application struct {
	Page

	pages   []*Page
	current *Page

	logger        *log.Logger
	frameDuration time.Duration
	fpsSample     int
	queueSize     int

	timeouts []*TimeoutHandle
	watchers []Watcher
	frames   []time.Duration
	fps      float64
	width    int
	height   int
	buffer   *Buffer

	queue   chan func()
	stopCh  chan struct{}
	stopped bool

	// OnPageAdded fires after AddPage adds a page.
	OnPageAdded Event[*Page]
	// OnPageChanged fires after Route switches pages.
	OnPageChanged Event[*Page]
	// OnError fires for errors raised by widgets while handling input,
	// such as a link to a route that does not exist.
	OnError Event[error]
}

var _ scheduler = (*Application)(nil)

// NewApplication returns an application with the given title. It has no
// pages until AddPage is called.
func NewApplication(title string, opts ...AppOption) (*Application, error) {
	page, err := NewPage(nil, WithTitle(title))
	if err != nil {
		return nil, err
	}
	a := &Application{
		Page:          *page,
		frameDuration: time.Second / 60,
		fpsSample:     30,
		queueSize:     256,
		stopCh:        make(chan struct{}),
	}
	for _, opt := range opts {
		if err := opt(a); err != nil {
			return nil, err
		}
	}
	if a.terminal == nil {
		a.terminal = NewANSITerminal(os.Stdout, os.Stdin)
	}
	if a.logger == nil {
		a.logger = debug.Logger()
	}
	a.queue = make(chan func(), a.queueSize)
	a.width, a.height = a.terminal.Size()
	a.buffer = NewBuffer(a.width, a.height)
	return a, nil
}

// TypeName implements Node.
func (a *Application) TypeName() string { return "Application" }

// ID implements Node.
func (a *Application) ID() string { return "" }

// Terminal returns the terminal the application draws to.
func (a *Application) Terminal() Terminal { return a.terminal }

// Pages returns the application's pages in the order they were added.
func (a *Application) Pages() []*Page { return a.pages }

// CurrentPage returns the page being shown, or nil.
func (a *Application) CurrentPage() *Page { return a.current }

// FPS returns the frame rate averaged over the last frames.
func (a *Application) FPS() float64 { return a.fps }

// AddPage adds a page to the application. The application's rules are
// copied into it and its builder runs. The first page added is shown.
func (a *Application) AddPage(p *Page) error {
	p.parent = a
	p.palettes.SetParent(a.palettes)
	a.user.each(func(r *rule) {
		p.insertRule(&p.user, r.selector, r.attrs, r.styles)
	})
	p.changed = true
	if err := p.build(); err != nil {
		return fmt.Errorf("building page %s: %w", p.route, err)
	}
	a.pages = append(a.pages, p)
	a.OnPageAdded.Emit(p)
	if a.current == nil {
		return a.Route(p.route)
	}
	return nil
}

// Rule adds a rule to the application and to every page it holds. Pages
// added later receive it in AddPage.
func (a *Application) Rule(query string, values map[string]any, opts ...RuleOption) (*Selector, error) {
	sel, err := a.Page.Rule(query, values, opts...)
	if err != nil {
		return nil, err
	}
	for _, p := range a.pages {
		if _, err := p.Rule(query, values, opts...); err != nil {
			return nil, fmt.Errorf("page %s: %w", p.route, err)
		}
	}
	return sel, nil
}

// LoadRules adds every rule in the YAML source to the application.
func (a *Application) LoadRules(source string, opts ...RuleOption) error {
	rules, err := LoadRules(source)
	if err != nil {
		return err
	}
	return a.AddRules(rules, opts...)
}

// AddRules adds already parsed rules to the application.
func (a *Application) AddRules(rules []RuleSource, opts ...RuleOption) error {
	for _, r := range rules {
		if _, err := a.Rule(r.Query, r.Values, opts...); err != nil {
			return err
		}
	}
	return nil
}

// ReportError logs err and passes it to OnError subscribers.
func (a *Application) ReportError(err error) {
	a.logger.Error("widget error", "err", err)
	a.OnError.Emit(err)
}

// Route shows the page registered under dest.
func (a *Application) Route(dest string) error {
	i := slices.IndexFunc(a.pages, func(p *Page) bool { return p.route == dest })
	if i < 0 {
		return fmt.Errorf("%w: no page with route %q", ErrValue, dest)
	}
	page := a.pages[i]
	if a.current != nil && a.current != page {
		a.current.ClearSelection()
		a.current.mouseTarget, a.current.hoverTarget = nil, nil
	}
	a.current = page

	title := a.title
	if dest != "/" && page.title != "" {
		title = a.title + " - " + page.title
	}
	a.terminal.SetTitle(title)
	a.terminal.Clear()
	if a.buffer != nil {
		a.buffer.Invalidate()
	}
	page.changed = true
	a.OnPageChanged.Emit(page)
	a.logger.Debug("routed", "route", dest, "title", title)
	return nil
}

// Pin draws w above every page and gives it the mouse.
func (a *Application) Pin(w Widget) {
	a.AddChild(w)
	w.WidgetBase().parent = a
	a.mouseTarget = w
}

// Unpin removes a widget added with Pin.
func (a *Application) Unpin(w Widget) bool {
	return a.RemoveChild(w)
}

// Watch adds a background source of updates. It starts when Run does.
func (a *Application) Watch(w Watcher) {
	a.watchers = append(a.watchers, w)
}

// Timeout calls fn once delay has passed. The callback runs on the frame
// loop.
func (a *Application) Timeout(delay time.Duration, fn func()) *TimeoutHandle {
	h := &TimeoutHandle{remaining: delay, fn: fn}
	a.timeouts = append(a.timeouts, h)
	return h
}

// ClearTimeout cancels a callback scheduled with Timeout.
func (a *Application) ClearTimeout(h *TimeoutHandle) error {
	i := slices.Index(a.timeouts, h)
	if i < 0 {
		return fmt.Errorf("%w: timeout is not scheduled", ErrValue)
	}
	a.timeouts = slices.Delete(a.timeouts, i, i+1)
	return nil
}

// runTimeouts counts elapsed off every scheduled callback and calls the
// ones that are due.
func (a *Application) runTimeouts(elapsed time.Duration) {
	var due []*TimeoutHandle
	remaining := a.timeouts[:0]
	for _, h := range a.timeouts {
		h.remaining -= elapsed
		if h.remaining <= 0 {
			due = append(due, h)
			continue
		}
		remaining = append(remaining, h)
	}
	a.timeouts = remaining
	for _, h := range due {
		h.fn()
	}
}

// layers returns the page and the application overlay, drawn in order.
func (a *Application) layers() []*Page {
	if a.current == nil {
		return []*Page{&a.Page}
	}
	return []*Page{a.current, &a.Page}
}

// Tick draws one frame and advances timeouts by elapsed.
func (a *Application) Tick(elapsed time.Duration) error {
	for _, p := range a.layers() {
		if _, err := p.ApplyRules(); err != nil {
			return err
		}
	}

	a.buffer.Clear()
	for _, p := range a.layers() {
		if err := p.Layout(a.width, a.height); err != nil {
			return err
		}
		if err := p.Draw(a.buffer); err != nil {
			return err
		}
	}

	changes := a.buffer.Diff()
	if err := a.terminal.Flush(changes); err != nil {
		return fmt.Errorf("flushing frame: %w", err)
	}
	a.buffer.Swap()

	a.measure(elapsed)
	a.runTimeouts(elapsed)
	return nil
}

func (a *Application) measure(elapsed time.Duration) {
	if elapsed <= 0 {
		return
	}
	a.frames = append(a.frames, elapsed)
	if len(a.frames) > a.fpsSample {
		a.frames = a.frames[len(a.frames)-a.fpsSample:]
	}
	var total time.Duration
	for _, f := range a.frames {
		total += f
	}
	a.fps = float64(len(a.frames)) / total.Seconds()
}

// HandleInput routes one input event. Ctrl-C stops the application.
// Mouse events go to the topmost widget under the pointer; keys go to the
// current page.
func (a *Application) HandleInput(event InputEvent) bool {
	switch ev := event.(type) {
	case ResizeEvent:
		a.resize(ev.Width, ev.Height)
		return true

	case KeyEvent:
		if ev.Key == KeyCtrlC {
			a.Stop()
			return true
		}
		if a.Page.selected != nil && a.Page.HandleKeyboard(ev) {
			return true
		}
		if a.current != nil && a.current.HandleKeyboard(ev) {
			return true
		}
		return a.Page.HandleKeyboard(ev)

	case MouseEvent:
		if a.Page.HandleMouse(ev) {
			return true
		}
		if a.current != nil {
			return a.current.HandleMouse(ev)
		}
	}
	return false
}

func (a *Application) resize(width, height int) {
	a.width, a.height = width, height
	a.buffer.Resize(width, height)
	a.buffer.Invalidate()
	a.terminal.Clear()
	a.logger.Debug("resized", "width", width, "height", height)
}

// QueueUpdate runs fn on the frame loop. It is safe to call from any
// goroutine.
func (a *Application) QueueUpdate(fn func()) {
	select {
	case a.queue <- fn:
	case <-a.stopCh:
	}
}

// enqueue is QueueUpdate for goroutines started by Run, which must not
// block once ctx is done.
func (a *Application) enqueue(ctx context.Context, fn func()) {
	select {
	case a.queue <- fn:
	case <-a.stopCh:
	case <-ctx.Done():
	}
}

// Stop ends Run after the current frame. Stop is idempotent.
func (a *Application) Stop() {
	if a.stopped {
		return
	}
	a.stopped = true
	close(a.stopCh)
}

// Run starts the terminal and draws frames until Stop is called, ctx is
// cancelled or a frame fails. The terminal is restored before Run
// returns.
func (a *Application) Run(ctx context.Context) (err error) {
	if a.current == nil {
		return fmt.Errorf("%w: application has no pages", ErrValue)
	}
	if err := a.terminal.Start(); err != nil {
		return fmt.Errorf("starting terminal: %w", err)
	}
	defer func() {
		err = errors.Join(err, a.terminal.Stop())
	}()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	defer signal.Stop(sigCh)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return a.readInput(ctx)
	})
	for _, w := range a.watchers {
		w := w
		g.Go(func() error {
			return w.Watch(ctx, func(fn func()) { a.enqueue(ctx, fn) })
		})
	}
	g.Go(func() error {
		defer cancel()
		select {
		case <-sigCh:
			a.enqueue(ctx, a.Stop)
		case <-a.stopCh:
		case <-ctx.Done():
		}
		return nil
	})
	g.Go(func() error {
		defer cancel()
		return a.loop(ctx)
	})

	err = g.Wait()
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	return err
}

// readInput feeds terminal input to the frame loop.
func (a *Application) readInput(ctx context.Context) error {
	for {
		ev, err := a.terminal.ReadEvent(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("reading input: %w", err)
		}
		a.enqueue(ctx, func() { a.HandleInput(ev) })
	}
}

// loop drains queued updates and draws a frame every frame duration.
func (a *Application) loop(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("frame panicked: %v", r)
		}
		if err != nil {
			a.logger.Error("application stopped", "err", err)
		}
	}()

	ticker := time.NewTicker(a.frameDuration)
	defer ticker.Stop()

	last := time.Now()
	if err := a.Tick(0); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-a.stopCh:
			return nil
		case fn := <-a.queue:
			fn()
		case now := <-ticker.C:
			if err := a.Tick(now.Sub(last)); err != nil {
				return err
			}
			last = now
		}
	}
}
