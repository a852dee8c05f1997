package celadon

import (
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/celadon-tui/celadon/internal/layout"
)

// Widget is an element of the UI tree. Concrete widgets embed Base, which
// provides every method; a widget overrides the ones it needs, such as
// Content for its text or HandleMouse for click behavior.
type Widget interface {
	Node

	// WidgetBase returns the shared widget state.
	WidgetBase() *Base

	// Content returns the markup lines drawn inside the frame.
	Content() ([]string, error)

	// ShrinkWidth and ShrinkHeight measure the content for shrink
	// dimensions. They return ErrNotImplemented when the widget cannot
	// measure itself.
	ShrinkWidth() (int, error)
	ShrinkHeight() (int, error)

	// Drawables returns the widget followed by everything drawn on top of
	// it, in drawing order.
	Drawables() []Widget

	// ComputeDimensions resolves width and height against the space offered
	// by the parent.
	ComputeDimensions(availableWidth, availableHeight int) error

	// Update applies attributes and styles produced by matching rules.
	Update(attrs map[string]any, styles map[string]string) error

	HandleMouse(event MouseEvent) bool
	HandleKeyboard(event KeyEvent) bool

	// SelectableCount returns how many selectable widgets the widget holds,
	// counting itself.
	SelectableCount() int

	// Select selects the index-th selectable widget inside the widget,
	// counting from 0 in tree order. It reports whether index was in range.
	// A negative index clears the selection.
	Select(index int) bool

	MoveBy(dx, dy int)

	// Build renders the widget into lines the size of its visible area.
	Build() ([]Line, error)
}

// Anchor places a widget outside its parent's flow.
type Anchor uint8

const (
	// AnchorNone lays the widget out with its siblings.
	AnchorNone Anchor = iota
	// AnchorParent positions the widget at its offset from the parent.
	AnchorParent
	// AnchorScreen positions the widget at its offset from the screen origin.
	AnchorScreen
)

func (a Anchor) String() string {
	switch a {
	case AnchorParent:
		return "parent"
	case AnchorScreen:
		return "screen"
	}
	return "none"
}

// ParseAnchor parses "none", "parent" or "screen".
func ParseAnchor(s string) (Anchor, error) {
	switch s {
	case "none":
		return AnchorNone, nil
	case "parent":
		return AnchorParent, nil
	case "screen":
		return AnchorScreen, nil
	}
	return 0, fmt.Errorf("%w: unknown anchor %q", ErrValue, s)
}

// AttrSetter applies one attribute value from a rule.
type AttrSetter func(value any) error

// Base holds the state shared by every widget.
type Base struct {
	self     Widget
	typeName string
	id       string
	groups   []string
	parent   Node

	width, height  layout.Dimension
	computedWidth  int
	computedHeight int

	position  layout.Point
	scroll    layout.Point
	virtual   layout.Point
	clipStart layout.Point
	clipEnd   layout.Point

	alignment [2]layout.Alignment
	overflow  [2]layout.Overflow
	frame     Frame

	anchor Anchor
	offset layout.Point
	layer  int

	palette       string
	scrollStep    int
	consumesMouse bool
	disabled      bool

	machine *StateMachine
	styles  StyleMap
	setters map[string]AttrSetter
	attrs   map[string]any

	selectedIndex int

	bindings      map[string]*Event[Widget]
	mouseHandlers map[string]*Event[MouseEvent]
	mouseTarget   Widget
	hoverTarget   Widget
	scrollbars    [2]*Slider

	lastQuery string

	// PreBuild and OnBuild fire around every Build.
	PreBuild Event[Widget]
	OnBuild  Event[Widget]
}

// Option configures a widget at construction.
type Option func(*Base)

// WithID sets the widget's id. Widgets get a random id by default.
func WithID(id string) Option {
	return func(b *Base) {
		b.id = id
	}
}

// WithGroups sets the widget's groups.
func WithGroups(groups ...string) Option {
	return func(b *Base) {
		b.groups = slices.Clone(groups)
	}
}

// WithDisabled starts the widget disabled.
func WithDisabled() Option {
	return func(b *Base) {
		b.SetDisabled(true)
	}
}

// WithWidth sets the requested width.
func WithWidth(d layout.Dimension) Option {
	return func(b *Base) {
		b.width = d
	}
}

// WithHeight sets the requested height.
func WithHeight(d layout.Dimension) Option {
	return func(b *Base) {
		b.height = d
	}
}

// Init prepares b for use as the base of self. It must be called by every
// widget constructor before the widget is used.
func (b *Base) Init(self Widget, typeName string, opts ...Option) {
	b.self = self
	b.typeName = typeName
	b.id = uuid.NewString()
	b.width, b.height = layout.Fill(), layout.Fill()
	b.computedWidth, b.computedHeight = 1, 1
	b.frame, _ = GetFrame("frameless")
	b.palette = "main"
	b.scrollStep = 1
	b.machine = DefaultStateMachine()
	b.styles = defaultStyleMap()
	b.selectedIndex = -1
	b.bindings = make(map[string]*Event[Widget])
	b.mouseHandlers = make(map[string]*Event[MouseEvent])
	b.setters = make(map[string]AttrSetter)
	b.defineBaseAttrs()
	b.Apply(opts...)
}

// Apply runs opts against the widget. Constructors that change defaults
// after Init apply the caller's options last.
func (b *Base) Apply(opts ...Option) {
	for _, opt := range opts {
		opt(b)
	}
}

// WidgetBase implements Widget.
func (b *Base) WidgetBase() *Base { return b }

// TypeName returns the name selectors match the widget's type against.
func (b *Base) TypeName() string { return b.typeName }

// ID returns the widget's id.
func (b *Base) ID() string { return b.id }

// Groups returns the widget's groups.
func (b *Base) Groups() []string { return b.groups }

// State returns the combined state of the widget's state machine.
func (b *Base) State() string { return b.machine.State() }

// StateMachine returns the widget's state machine.
func (b *Base) StateMachine() *StateMachine { return b.machine }

// SetStateMachine replaces the widget's state machine, usually with a
// modified copy of the default one.
func (b *Base) SetStateMachine(m *StateMachine) { b.machine = m }

// StyleMap returns the widget's styles per state.
func (b *Base) StyleMap() StyleMap { return b.styles }

// SetStyleMap replaces the widget's styles.
func (b *Base) SetStyleMap(s StyleMap) { b.styles = s }

// ParentNode returns the widget's parent, or nil when it is detached.
func (b *Base) ParentNode() Node {
	if b.parent == nil {
		return nil
	}
	return b.parent
}

// Parent returns the parent widget, or nil when the parent is not a widget.
func (b *Base) Parent() Widget {
	w, _ := b.parent.(Widget)
	return w
}

// Attrs returns the attributes applied by the last Update.
func (b *Base) Attrs() map[string]any { return b.attrs }

// Width returns the requested width.
func (b *Base) Width() layout.Dimension { return b.width }

// Height returns the requested height.
func (b *Base) Height() layout.Dimension { return b.height }

// SetWidth sets the requested width.
func (b *Base) SetWidth(d layout.Dimension) { b.width = d }

// SetHeight sets the requested height.
func (b *Base) SetHeight(d layout.Dimension) { b.height = d }

// ComputedSize returns the size resolved by the last layout.
func (b *Base) ComputedSize() (width, height int) {
	return b.computedWidth, b.computedHeight
}

// Position returns the top-left corner of the widget.
func (b *Base) Position() layout.Point { return b.position }

// Scroll returns the scroll offset.
func (b *Base) Scroll() layout.Point { return b.scroll }

// VirtualSize returns the size of the content measured by the last Build.
func (b *Base) VirtualSize() layout.Point { return b.virtual }

// Frame returns the widget's frame.
func (b *Base) Frame() Frame { return b.frame }

// SetFrame sets the widget's frame.
func (b *Base) SetFrame(f Frame) { b.frame = f }

// Alignment returns the horizontal and vertical alignment.
func (b *Base) Alignment() [2]layout.Alignment { return b.alignment }

// SetAlignment sets the horizontal and vertical alignment.
func (b *Base) SetAlignment(h, v layout.Alignment) { b.alignment = [2]layout.Alignment{h, v} }

// Overflow returns the horizontal and vertical overflow.
func (b *Base) Overflow() [2]layout.Overflow { return b.overflow }

// SetOverflow sets the horizontal and vertical overflow.
func (b *Base) SetOverflow(h, v layout.Overflow) { b.overflow = [2]layout.Overflow{h, v} }

// Anchor returns how the widget is positioned.
func (b *Base) Anchor() Anchor { return b.anchor }

// SetAnchor anchors the widget at offset from its parent or the screen.
func (b *Base) SetAnchor(a Anchor, offset layout.Point) {
	b.anchor = a
	b.offset = offset
}

// Layer returns the drawing layer. Higher layers draw later.
func (b *Base) Layer() int { return b.layer }

// Palette returns the namespace "." style references resolve against.
func (b *Base) Palette() string { return b.palette }

// Disabled reports whether the widget ignores input.
func (b *Base) Disabled() bool { return b.disabled }

// SetDisabled disables or enables the widget.
func (b *Base) SetDisabled(disabled bool) {
	b.disabled = disabled
	if disabled {
		b.machine.ApplyAction(ActionDisabled)
		return
	}
	b.machine.ApplyAction(ActionEnabled)
}

// IsStatic reports whether the widget is anchored outside the flow.
func (b *Base) IsStatic() bool { return b.anchor != AnchorNone }

// SelectedIndex returns the index last selected, or -1.
func (b *Base) SelectedIndex() int { return b.selectedIndex }

// Query returns the most specific selector matching the widget, such as
// "Button#ok.primary".
func (b *Base) Query() string {
	var s strings.Builder
	s.WriteString(b.typeName)
	if b.id != "" {
		s.WriteString("#" + b.id)
	}
	for _, g := range b.groups {
		s.WriteString("." + g)
	}
	return s.String()
}

func (b *Base) String() string { return b.Query() }

// queryChanged reports whether the query or state changed since the last
// call.
func (b *Base) queryChanged() bool {
	q := b.Query() + "/" + b.State()
	changed := q != b.lastQuery
	b.lastQuery = q
	return changed
}

// AddGroup adds group to the widget's groups.
func (b *Base) AddGroup(group string) {
	if !slices.Contains(b.groups, group) {
		b.groups = append(b.groups, group)
	}
}

// RemoveGroup removes group from the widget's groups.
func (b *Base) RemoveGroup(group string) {
	b.groups = slices.DeleteFunc(slices.Clone(b.groups), func(g string) bool { return g == group })
}

// ToggleGroup adds or removes group and reports whether it is now set.
func (b *Base) ToggleGroup(group string) bool {
	if slices.Contains(b.groups, group) {
		b.RemoveGroup(group)
		return false
	}
	b.AddGroup(group)
	return true
}

// Hide adds the "hidden" group, which removes the widget from layout and
// drawing.
func (b *Base) Hide() { b.AddGroup("hidden") }

// Show removes the "hidden" group.
func (b *Base) Show() { b.RemoveGroup("hidden") }

// Hidden reports whether the widget is in the "hidden" group.
func (b *Base) Hidden() bool { return slices.Contains(b.groups, "hidden") }

// Rect returns the area the widget occupies.
func (b *Base) Rect() layout.Rect {
	return layout.NewRect(b.position.X, b.position.Y, b.computedWidth, b.computedHeight)
}

// VisibleRect returns the part of the widget that is left after clipping.
func (b *Base) VisibleRect() layout.Rect {
	return layout.NewRect(
		b.position.X+b.clipStart.X,
		b.position.Y+b.clipStart.Y,
		max(b.computedWidth-b.clipStart.X-b.clipEnd.X, 0),
		max(b.computedHeight-b.clipStart.Y-b.clipEnd.Y, 0),
	)
}

// Contains reports whether the terminal position lies on the visible part
// of the widget.
func (b *Base) Contains(x, y int) bool {
	return b.VisibleRect().Contains(x, y)
}

// MoveTo places the widget's top-left corner.
func (b *Base) MoveTo(x, y int) {
	b.position = layout.Point{X: x, Y: y}
}

// MoveBy moves the widget by the given deltas.
func (b *Base) MoveBy(dx, dy int) {
	b.position = b.position.Add(layout.Point{X: dx, Y: dy})
}

// Clip sets how many cells are cut from each side of the widget.
func (b *Base) Clip(start, end layout.Point) {
	b.clipStart, b.clipEnd = start, end
}

// ClippedPosition returns the position of the widget's first visible cell.
func (b *Base) ClippedPosition() layout.Point {
	return b.position.Add(b.clipStart)
}

// ScrollTo scrolls the widget. -1 scrolls to the end of an axis; the offset
// is clamped on the next Build.
func (b *Base) ScrollTo(x, y int) {
	if x == -1 {
		x = b.virtual.X
	}
	if y == -1 {
		y = b.virtual.Y
	}
	b.scroll = layout.Point{X: x, Y: y}
}

func (b *Base) framedWidth() int  { return max(b.computedWidth-b.frame.Width(), 0) }
func (b *Base) framedHeight() int { return max(b.computedHeight-b.frame.Height(), 0) }

// HasScrollbar reports whether a scrollbar is shown on axis, 0 for the
// horizontal bar and 1 for the vertical one.
func (b *Base) HasScrollbar(axis int) bool {
	if axis == 0 {
		return b.overflow[0].ShowsScrollbar(b.virtual.X, b.framedWidth())
	}
	return b.overflow[1].ShowsScrollbar(b.virtual.Y, b.framedHeight())
}

// ComputeDimensions implements Widget.
func (b *Base) ComputeDimensions(availableWidth, availableHeight int) error {
	w, err := b.resolve(b.width, availableWidth, b.self.ShrinkWidth, b.frame.Width())
	if err != nil {
		return err
	}
	h, err := b.resolve(b.height, availableHeight, b.self.ShrinkHeight, b.frame.Height())
	if err != nil {
		return err
	}
	b.computedWidth, b.computedHeight = max(w, 0), max(h, 0)
	return nil
}

func (b *Base) resolve(d layout.Dimension, available int, shrink func() (int, error), frame int) (int, error) {
	if d.Mode != layout.ModeShrink {
		return d.Resolve(available, 0), nil
	}
	n, err := shrink()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", b.Query(), err)
	}
	return d.Resolve(available, n+frame), nil
}

// ShrinkWidth implements Widget.
func (b *Base) ShrinkWidth() (int, error) {
	return 0, fmt.Errorf("%w: %s does not implement shrink width", ErrNotImplemented, b.typeName)
}

// ShrinkHeight implements Widget.
func (b *Base) ShrinkHeight() (int, error) {
	return 0, fmt.Errorf("%w: %s does not implement shrink height", ErrNotImplemented, b.typeName)
}

// Content implements Widget.
func (b *Base) Content() ([]string, error) {
	return nil, fmt.Errorf("%w: %s has no content", ErrNotImplemented, b.typeName)
}

// Drawables implements Widget.
func (b *Base) Drawables() []Widget {
	out := []Widget{b.self}
	for axis := range b.scrollbars {
		if b.HasScrollbar(axis) {
			out = append(out, b.scrollbar(axis))
		}
	}
	return out
}

// SelectableCount implements Widget.
func (b *Base) SelectableCount() int {
	if b.disabled {
		return 0
	}
	return 1
}

// Select implements Widget.
func (b *Base) Select(index int) bool {
	if index < 0 || index >= b.self.SelectableCount() {
		if b.selectedIndex >= 0 {
			b.selectedIndex = -1
			b.machine.ApplyAction(ActionUnselected)
		}
		return false
	}
	b.selectedIndex = index
	b.machine.ApplyAction(ActionSelected)
	return true
}

// ClearSelection removes the selection from the widget and its children.
func (b *Base) ClearSelection() {
	b.self.Select(-1)
}

// DefineAttr makes name settable from rules. Widgets call it from their
// constructors for the attributes they add.
func (b *Base) DefineAttr(name string, set AttrSetter) {
	b.setters[name] = set
}

// AttrNames returns the attributes the widget accepts, sorted.
func (b *Base) AttrNames() []string {
	names := make([]string, 0, len(b.setters))
	for name := range b.setters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Update implements Widget. Attributes are applied in key order; styles are
// merged into the bucket of the current state.
func (b *Base) Update(attrs map[string]any, styles map[string]string) error {
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if strings.HasPrefix(key, "_") {
			return fmt.Errorf("%w: cannot set non-public attribute %q on %s", ErrAttribute, key, b.typeName)
		}
		set, ok := b.setters[key]
		if !ok {
			return fmt.Errorf("%w: %s has no attribute %q", ErrAttribute, b.typeName, key)
		}
		if err := set(attrs[key]); err != nil {
			return fmt.Errorf("%s.%s: %w", b.typeName, key, err)
		}
	}
	b.attrs = attrs

	if len(styles) > 0 {
		b.styles = b.styles.Merge(StyleMap{b.State(): styles})
	}
	return nil
}

func (b *Base) defineBaseAttrs() {
	b.DefineAttr("width", func(v any) error {
		d, err := dimensionValue(v)
		if err == nil {
			b.width = d
		}
		return err
	})
	b.DefineAttr("height", func(v any) error {
		d, err := dimensionValue(v)
		if err == nil {
			b.height = d
		}
		return err
	})
	b.DefineAttr("frame", func(v any) error {
		f, err := frameValue(v)
		if err == nil {
			b.frame = f
		}
		return err
	})
	b.DefineAttr("alignment", func(v any) error {
		pair, err := pairValue(v)
		if err != nil {
			return err
		}
		for i, s := range pair {
			a, err := layout.ParseAlignment(s)
			if err != nil {
				return fmt.Errorf("%w: %v", ErrValue, err)
			}
			b.alignment[i] = a
		}
		return nil
	})
	b.DefineAttr("overflow", func(v any) error {
		pair, err := pairValue(v)
		if err != nil {
			return err
		}
		for i, s := range pair {
			o, err := layout.ParseOverflow(s)
			if err != nil {
				return fmt.Errorf("%w: %v", ErrValue, err)
			}
			b.overflow[i] = o
		}
		return nil
	})
	b.DefineAttr("groups", func(v any) error {
		groups, err := stringsValue(v)
		if err == nil {
			b.groups = groups
		}
		return err
	})
	b.DefineAttr("disabled", func(v any) error {
		d, ok := v.(bool)
		if !ok {
			return fmt.Errorf("%w: expected bool, got %T", ErrValue, v)
		}
		b.SetDisabled(d)
		return nil
	})
	b.DefineAttr("anchor", func(v any) error {
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("%w: expected string, got %T", ErrValue, v)
		}
		a, err := ParseAnchor(s)
		if err == nil {
			b.anchor = a
		}
		return err
	})
	b.DefineAttr("offset", func(v any) error {
		items, ok := v.([]any)
		if !ok || len(items) != 2 {
			return fmt.Errorf("%w: offset must be a list of two integers", ErrValue)
		}
		x, errX := intValue(items[0])
		y, errY := intValue(items[1])
		if errX != nil || errY != nil {
			return fmt.Errorf("%w: offset must be a list of two integers", ErrValue)
		}
		b.offset = layout.Point{X: x, Y: y}
		return nil
	})
	b.DefineAttr("layer", func(v any) error {
		n, err := intValue(v)
		if err == nil {
			b.layer = n
		}
		return err
	})
	b.DefineAttr("palette", func(v any) error {
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("%w: expected string, got %T", ErrValue, v)
		}
		b.palette = s
		return nil
	})
	b.DefineAttr("scroll_step", func(v any) error {
		n, err := intValue(v)
		if err == nil {
			b.scrollStep = n
		}
		return err
	})
	b.DefineAttr("consumes_mouse", func(v any) error {
		c, ok := v.(bool)
		if !ok {
			return fmt.Errorf("%w: expected bool, got %T", ErrValue, v)
		}
		b.consumesMouse = c
		return nil
	})
}

// dimensionValue converts a rule value into a Dimension. Integers are
// fixed, floats are ratios of the available space, null is fill, and
// strings use the "fill+N" / "shrink-N" forms.
func dimensionValue(v any) (layout.Dimension, error) {
	switch v := v.(type) {
	case nil:
		return layout.Fill(), nil
	case layout.Dimension:
		return v, nil
	case int:
		return layout.Fixed(v), nil
	case int64:
		return layout.Fixed(int(v)), nil
	case float64:
		return layout.FillRatio(v), nil
	case string:
		d, err := layout.ParseDimension(v)
		if err != nil {
			return layout.Dimension{}, fmt.Errorf("%w: %v", ErrValue, err)
		}
		return d, nil
	}
	return layout.Dimension{}, fmt.Errorf("%w: invalid dimension %v (%T)", ErrValue, v, v)
}

func intValue(v any) (int, error) {
	switch v := v.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		if v == float64(int(v)) {
			return int(v), nil
		}
	}
	return 0, fmt.Errorf("%w: expected integer, got %v", ErrValue, v)
}

// pairValue accepts a single string, applied to both axes, or a list of two.
func pairValue(v any) ([2]string, error) {
	switch v := v.(type) {
	case string:
		return [2]string{v, v}, nil
	case []any:
		if len(v) == 2 {
			h, okH := v[0].(string)
			w, okW := v[1].(string)
			if okH && okW {
				return [2]string{h, w}, nil
			}
		}
	case []string:
		if len(v) == 2 {
			return [2]string{v[0], v[1]}, nil
		}
	}
	return [2]string{}, fmt.Errorf("%w: expected a string or a list of two strings, got %v", ErrValue, v)
}

func stringsValue(v any) ([]string, error) {
	switch v := v.(type) {
	case nil:
		return nil, nil
	case string:
		return []string{v}, nil
	case []string:
		return slices.Clone(v), nil
	case []any:
		out := make([]string, len(v))
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%w: expected strings, got %T", ErrValue, item)
			}
			out[i] = s
		}
		return out, nil
	}
	return nil, fmt.Errorf("%w: expected a list of strings, got %T", ErrValue, v)
}

// frameValue accepts a frame name or a list of four names, one per side,
// where null leaves the side empty.
func frameValue(v any) (Frame, error) {
	switch v := v.(type) {
	case nil:
		return GetFrame("")
	case string:
		return GetFrame(v)
	case []any:
		if len(v) != 4 {
			return Frame{}, fmt.Errorf("%w: a frame list needs four sides, got %d", ErrValue, len(v))
		}
		var sides [4]Frame
		for i, item := range v {
			name, ok := item.(string)
			if item != nil && !ok {
				return Frame{}, fmt.Errorf("%w: frame side must be a string or null, got %T", ErrValue, item)
			}
			f, err := GetFrame(name)
			if err != nil {
				return Frame{}, err
			}
			sides[i] = f
		}
		return ComposeFrame(sides), nil
	}
	return Frame{}, fmt.Errorf("%w: invalid frame %v", ErrValue, v)
}

// scheduler is implemented by the node at the root of a running tree.
type scheduler interface {
	Timeout(delay time.Duration, fn func()) *TimeoutHandle
}

// markupProvider is implemented by pages, which own the palettes markup
// resolves against.
type markupProvider interface {
	Markup() MarkupParser
}

// Timeout schedules fn on the application running the widget. It returns
// nil and never calls fn when the widget is not part of a running tree.
func (b *Base) Timeout(delay time.Duration, fn func()) *TimeoutHandle {
	for n := b.ParentNode(); n != nil; n = n.ParentNode() {
		if s, ok := n.(scheduler); ok {
			return s.Timeout(delay, fn)
		}
	}
	return nil
}

func (b *Base) markup() MarkupParser {
	for n := b.ParentNode(); n != nil; n = n.ParentNode() {
		if p, ok := n.(markupProvider); ok {
			return p.Markup()
		}
	}
	return defaultMarkup
}

// TypeRegistration describes a widget type known to the rule engine.
type TypeRegistration struct {
	Name string

	// Rules are the builtin rules loaded into a page the first time it sees
	// a widget of this type.
	Rules string

	// New returns a widget of the type with default settings. The CLI uses
	// it to check which attributes a rule may set.
	New func() Widget
}

var (
	typesMu sync.RWMutex
	types   = make(map[string]TypeRegistration)
)

// RegisterType makes a widget type known to pages and the rule checker.
// Registering a name twice replaces the earlier registration.
func RegisterType(reg TypeRegistration) {
	typesMu.Lock()
	defer typesMu.Unlock()
	types[reg.Name] = reg
}

// LookupType returns the registration for name.
func LookupType(name string) (TypeRegistration, bool) {
	typesMu.RLock()
	defer typesMu.RUnlock()
	reg, ok := types[name]
	return reg, ok
}

// TypeNames returns the registered widget type names, sorted.
func TypeNames() []string {
	typesMu.RLock()
	defer typesMu.RUnlock()
	names := make([]string, 0, len(types))
	for name := range types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
