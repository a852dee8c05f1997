package celadon

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/celadon-tui/celadon/internal/layout"
)

// defaultRules are loaded into every page.
const defaultRules = `
.fill:
    width: null
    height: null

.w-fill:
    width: null

.h-fill:
    height: null

.start:
    alignment: [start, start]

.center:
    alignment: [center, center]

.end:
    alignment: [end, end]

.of-scroll:
    overflow: [scroll, scroll]

.of-auto:
    overflow: [auto, auto]

.of-hide:
    overflow: [hide, hide]
`

// rule is the attributes and styles a selector sets.
type rule struct {
	selector *Selector
	attrs    map[string]any
	styles   map[string]string
}

// ruleTable holds rules keyed by selector in insertion order.
type ruleTable struct {
	order []string
	rules map[string]*rule
}

func (t *ruleTable) insert(sel *Selector, attrs map[string]any, styles map[string]string) {
	if t.rules == nil {
		t.rules = make(map[string]*rule)
	}
	key := sel.Key()
	r, ok := t.rules[key]
	if !ok {
		t.order = append(t.order, key)
		t.rules[key] = &rule{selector: sel, attrs: deepMerge(nil, attrs), styles: mergeStrings(nil, styles)}
		return
	}
	r.attrs = deepMerge(r.attrs, attrs)
	r.styles = mergeStrings(r.styles, styles)
}

func (t *ruleTable) each(fn func(*rule)) {
	for _, key := range t.order {
		fn(t.rules[key])
	}
}

// PageOption configures a Page.
type PageOption func(*Page) error

// WithTitle sets the page title.
func WithTitle(title string) PageOption {
	return func(p *Page) error {
		p.title = title
		return nil
	}
}

// WithRoute sets the route the page is reached by. Routes start with "/".
func WithRoute(route string) PageOption {
	return func(p *Page) error {
		if !strings.HasPrefix(route, "/") {
			return fmt.Errorf("%w: route names must start with a slash, got %q", ErrValue, route)
		}
		p.route = route
		return nil
	}
}

// WithRules loads YAML rules into the page.
func WithRules(source string) PageOption {
	return func(p *Page) error {
		return p.LoadRules(source)
	}
}

// WithBuilder sets a function that fills the page. It runs when the page
// is added to an application.
func WithBuilder(build func(*Page) error) PageOption {
	return func(p *Page) error {
		p.builder = build
		return nil
	}
}

// RuleOption configures a rule added to a page.
type RuleOption func(*ruleOptions)

type ruleOptions struct {
	score   int
	builtin bool
}

// WithScore replaces the score of the rule's selector when it matches.
func WithScore(score int) RuleOption {
	return func(o *ruleOptions) {
		o.score = score
	}
}

func builtinRule() RuleOption {
	return func(o *ruleOptions) {
		o.builtin = true
	}
}

// Page is a screen of an application: top-level widgets and the rules
// that style them.
type Page struct {
	title    string
	route    string
	parent   Node
	builder  func(*Page) error
	children []Widget

	builtin ruleTable
	user    ruleTable
	merged  []*rule
	loaded  map[string]bool
	changed bool

	palettes *PaletteRegistry
	terminal Terminal

	mouseTarget   Widget
	hoverTarget   Widget
	selected      Widget
	selectedIndex int

	bindings map[string]*Event[*Page]
}

var _ Node = (*Page)(nil)

// NewPage returns a page holding children.
func NewPage(children []Widget, opts ...PageOption) (*Page, error) {
	p := &Page{
		route:         "/",
		loaded:        make(map[string]bool),
		palettes:      DefaultPalettes.Child(),
		selectedIndex: -1,
		bindings:      make(map[string]*Event[*Page]),
	}
	if err := p.LoadRules(defaultRules, builtinRule()); err != nil {
		return nil, err
	}
	if err := p.loadTypeRules(NewSlider()); err != nil {
		return nil, err
	}
	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}
	p.AddChild(children...)
	return p, nil
}

// MustNewPage is like NewPage but panics on error.
func MustNewPage(children []Widget, opts ...PageOption) *Page {
	p, err := NewPage(children, opts...)
	if err != nil {
		panic(err)
	}
	return p
}

// Title returns the page title.
func (p *Page) Title() string { return p.title }

// Route returns the route the page is reached by.
func (p *Page) Route() string { return p.route }

// TypeName implements Node.
func (p *Page) TypeName() string { return "Page" }

// ID implements Node. A page is identified by its route.
func (p *Page) ID() string { return p.route }

// Groups implements Node.
func (p *Page) Groups() []string { return nil }

// State implements Node.
func (p *Page) State() string { return StateIdle }

// ParentNode implements Node.
func (p *Page) ParentNode() Node { return p.parent }

// Markup returns the parser widgets on the page resolve markup with. It
// knows the palettes defined by the page's rules.
func (p *Page) Markup() MarkupParser {
	return Markup{Palettes: p.palettes}
}

// Palettes returns the page's palette registry.
func (p *Page) Palettes() *PaletteRegistry { return p.palettes }

// TerminalNode returns the node "Terminal" selectors are matched against.
func (p *Page) TerminalNode() Node {
	if tp, ok := p.parent.(terminalProvider); ok {
		return tp.TerminalNode()
	}
	return terminalNode{term: p.terminal}
}

// Children returns the page's top-level widgets.
func (p *Page) Children() []Widget { return p.children }

// AddChild adds widgets to the page.
func (p *Page) AddChild(children ...Widget) {
	for _, child := range children {
		p.InsertChild(len(p.children), child)
	}
}

// InsertChild inserts child at index.
func (p *Page) InsertChild(index int, child Widget) {
	detach(child)
	index = min(max(index, 0), len(p.children))
	p.children = slices.Insert(p.children, index, child)
	child.WidgetBase().parent = p
	p.changed = true
}

// RemoveChild removes child and reports whether it was found.
func (p *Page) RemoveChild(child Widget) bool {
	i := slices.Index(p.children, child)
	if i < 0 {
		return false
	}
	if p.selected == child {
		p.Select(-1)
	}
	p.children = slices.Delete(p.children, i, i+1)
	child.WidgetBase().parent = nil
	if p.mouseTarget == child {
		p.mouseTarget = nil
	}
	if p.hoverTarget == child {
		p.hoverTarget = nil
	}
	return true
}

// ClearChildren removes every widget from the page.
func (p *Page) ClearChildren() {
	for _, child := range slices.Clone(p.children) {
		p.RemoveChild(child)
	}
}

// Rule adds a rule setting values on widgets matching query. Keys ending
// in "_style" set styles; the rest are attributes. Adding a rule for a
// selector that already has one merges the two.
func (p *Page) Rule(query string, values map[string]any, opts ...RuleOption) (*Selector, error) {
	var o ruleOptions
	for _, opt := range opts {
		opt(&o)
	}
	sel, err := ParseSelectorWithScore(query, o.score)
	if err != nil {
		return nil, err
	}
	attrs, styles, err := splitStyles(values)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", query, err)
	}

	table := &p.user
	if o.builtin {
		table = &p.builtin
	}
	p.insertRule(table, sel, attrs, styles)
	return sel, nil
}

// insertRule adds a rule to table and drops the merged table so the next
// ApplyRules rebuilds it.
func (p *Page) insertRule(table *ruleTable, sel *Selector, attrs map[string]any, styles map[string]string) {
	table.insert(sel, attrs, styles)
	p.merged = nil
	p.changed = true
}

// LoadRules adds every rule in the YAML source.
func (p *Page) LoadRules(source string, opts ...RuleOption) error {
	rules, err := LoadRules(source)
	if err != nil {
		return err
	}
	return p.AddRules(rules, opts...)
}

// AddRules adds already parsed rules.
func (p *Page) AddRules(rules []RuleSource, opts ...RuleOption) error {
	for _, r := range rules {
		if _, err := p.Rule(r.Query, r.Values, opts...); err != nil {
			return err
		}
	}
	return nil
}

// loadTypeRules loads the builtin rules of w's type the first time the
// page sees it.
func (p *Page) loadTypeRules(w Widget) error {
	name := w.TypeName()
	if p.loaded[name] {
		return nil
	}
	p.loaded[name] = true
	reg, ok := LookupType(name)
	if !ok || reg.Rules == "" {
		return nil
	}
	// Types sharing a rule document load it once.
	if p.loaded["\x00"+reg.Rules] {
		return nil
	}
	p.loaded["\x00"+reg.Rules] = true
	if err := p.LoadRules(reg.Rules, builtinRule()); err != nil {
		return fmt.Errorf("builtin rules for %s: %w", name, err)
	}
	return nil
}

// rules returns the effective rule table: builtin rules with user rules
// merged over them. The table is built once per rule change.
func (p *Page) rules() []*rule {
	if p.merged != nil {
		return p.merged
	}
	out := make([]*rule, 0, len(p.builtin.order)+len(p.user.order))
	index := make(map[string]*rule)
	p.builtin.each(func(r *rule) {
		c := &rule{selector: r.selector, attrs: deepMerge(nil, r.attrs), styles: mergeStrings(nil, r.styles)}
		index[r.selector.Key()] = c
		out = append(out, c)
	})
	p.user.each(func(r *rule) {
		if c, ok := index[r.selector.Key()]; ok {
			c.attrs = deepMerge(c.attrs, r.attrs)
			c.styles = mergeStrings(c.styles, r.styles)
			return
		}
		out = append(out, r)
	})
	p.merged = out
	return out
}

// Drawables returns every widget on the page in draw order.
func (p *Page) Drawables() []Widget {
	var out []Widget
	for _, child := range p.layered() {
		if child.WidgetBase().Hidden() {
			continue
		}
		out = append(out, child.Drawables()...)
	}
	return out
}

// layered returns the children sorted by layer, keeping insertion order
// within a layer.
func (p *Page) layered() []Widget {
	children := slices.Clone(p.children)
	sort.SliceStable(children, func(i, j int) bool {
		return children[i].WidgetBase().layer < children[j].WidgetBase().layer
	})
	return children
}

// ApplyRules matches the page's rules against its widgets and updates the
// widgets that changed since the last call. It reports whether any widget
// was restyled.
func (p *Page) ApplyRules() (bool, error) {
	drawables := p.Drawables()
	for _, w := range drawables {
		if err := p.loadTypeRules(w); err != nil {
			return false, err
		}
	}

	rules := p.rules()
	changed := p.changed
	if changed {
		if err := p.applyPalettes(rules); err != nil {
			return false, err
		}
	}

	applied := false
	for _, target := range drawables {
		b := target.WidgetBase()
		if !b.queryChanged() && !changed {
			continue
		}
		matched, err := applyMatching(target, rules)
		if err != nil {
			return applied, err
		}
		applied = applied || matched
	}
	p.changed = false
	return applied, nil
}

type scoredRule struct {
	rule  *rule
	score int
}

func matchingRules(target Node, rules []*rule) []scoredRule {
	var out []scoredRule
	for _, r := range rules {
		if r.selector.IsPalette() {
			continue
		}
		if score := r.selector.Matches(target); score != 0 {
			out = append(out, scoredRule{rule: r, score: score})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].score < out[j].score })
	return out
}

// applyMatching merges every rule matching target, lowest score first, and
// updates the target with the result.
func applyMatching(target Widget, rules []*rule) (bool, error) {
	matches := matchingRules(target, rules)
	if len(matches) == 0 {
		return false, nil
	}
	attrs := make(map[string]any)
	styles := make(map[string]string)
	for _, m := range matches {
		attrs = deepMerge(attrs, m.rule.attrs)
		styles = mergeStrings(styles, m.rule.styles)
	}
	if err := target.Update(attrs, styles); err != nil {
		return true, err
	}
	return true, nil
}

// applyPalettes registers the colors of every palette rule that matches
// the terminal, lowest score first.
func (p *Page) applyPalettes(rules []*rule) error {
	term := p.TerminalNode()
	var palettes []scoredRule
	for _, r := range rules {
		if !r.selector.IsPalette() || r.selector.PaletteNamespace() == "" {
			continue
		}
		if score := r.selector.Matches(term); score != 0 {
			palettes = append(palettes, scoredRule{rule: r, score: score})
		}
	}
	sort.SliceStable(palettes, func(i, j int) bool { return palettes[i].score < palettes[j].score })

	for _, m := range palettes {
		colors := make(map[string]string, len(m.rule.attrs))
		for key, value := range m.rule.attrs {
			s, ok := value.(string)
			if !ok {
				return fmt.Errorf("%w: palette color %q must be a string", ErrValue, key)
			}
			colors[key] = s
		}
		palette, err := NewPalette(colors)
		if err != nil {
			return fmt.Errorf("%s: %w", m.rule.selector.Query, err)
		}
		p.palettes.Register(m.rule.selector.PaletteNamespace(), palette)
	}
	return nil
}

// MatchingRules returns the queries of the rules matching w with their
// scores, lowest score first.
func (p *Page) MatchingRules(w Widget) []RuleMatch {
	var out []RuleMatch
	for _, m := range matchingRules(w, p.rules()) {
		values := deepMerge(nil, m.rule.attrs)
		for key, style := range m.rule.styles {
			values[key+"_style"] = style
		}
		out = append(out, RuleMatch{Query: m.rule.selector.Query, Score: m.score, Values: values})
	}
	return out
}

// RuleMatch is a rule that matched a widget.
type RuleMatch struct {
	Query  string
	Score  int
	Values map[string]any
}

// FindAll returns every widget on the page matching query.
func (p *Page) FindAll(query string) ([]Widget, error) {
	sel, err := ParseSelector(query)
	if err != nil {
		return nil, err
	}
	var out []Widget
	for _, child := range p.children {
		for _, w := range flatten(child) {
			if sel.Matches(w) != 0 {
				out = append(out, w)
			}
		}
	}
	return out, nil
}

// Find returns the first widget matching query, or nil.
func (p *Page) Find(query string) (Widget, error) {
	all, err := p.FindAll(query)
	if err != nil || len(all) == 0 {
		return nil, err
	}
	return all[0], nil
}

// flatten returns w and all of its descendants, hidden ones included.
func flatten(w Widget) []Widget {
	out := []Widget{w}
	if c, ok := w.(interface{ Children() []Widget }); ok {
		for _, child := range c.Children() {
			out = append(out, flatten(child)...)
		}
	}
	return out
}

// Layout sizes the page's widgets against the screen and arranges them.
// Anchored widgets are placed at their offset; others keep their position.
func (p *Page) Layout(width, height int) error {
	screen := layout.NewRect(0, 0, width, height)
	for _, child := range p.layered() {
		b := child.WidgetBase()
		if b.Hidden() {
			continue
		}
		if err := child.ComputeDimensions(width, height); err != nil {
			return err
		}
		if b.anchor != AnchorNone {
			b.MoveTo(b.offset.X, b.offset.Y)
		}
		b.Clip(b.Rect().Clip(screen))
		if c, ok := child.(interface{ Layout() error }); ok {
			if err := c.Layout(); err != nil {
				return err
			}
		}
	}
	return nil
}

// Draw builds every widget on the page into buf.
func (p *Page) Draw(buf *Buffer) error {
	for _, w := range p.Drawables() {
		lines, err := w.Build()
		if err != nil {
			return fmt.Errorf("building %s: %w", w.WidgetBase().Query(), err)
		}
		origin := w.WidgetBase().ClippedPosition()
		for i, line := range lines {
			buf.SetLine(origin.X, origin.Y+i, line)
		}
	}
	return nil
}

// visible returns the children that are not hidden.
func (p *Page) visible() []Widget {
	out := make([]Widget, 0, len(p.children))
	for _, child := range p.children {
		if !child.WidgetBase().Hidden() {
			out = append(out, child)
		}
	}
	return out
}

// SelectableCount returns the number of selectable widgets on the page.
func (p *Page) SelectableCount() int {
	return selectableCount(p.visible())
}

// Select selects the index-th selectable widget on the page. A negative
// index clears the selection.
func (p *Page) Select(index int) bool {
	selected, ok := selectAmong(p.visible(), p.selected, index)
	p.selected = selected
	if !ok {
		p.selectedIndex = -1
		return false
	}
	p.selectedIndex = index
	return true
}

// SelectedIndex returns the index of the selected widget, or -1.
func (p *Page) SelectedIndex() int { return p.selectedIndex }

// Selected returns the top-level widget holding the selection, or nil.
func (p *Page) Selected() Widget { return p.selected }

// ClearSelection removes the selection from the page.
func (p *Page) ClearSelection() { p.Select(-1) }

// Bind calls fn when no widget handles the key named key.
func (p *Page) Bind(key string, fn func(*Page) bool) Subscription {
	ev, ok := p.bindings[key]
	if !ok {
		ev = &Event[*Page]{}
		p.bindings[key] = ev
	}
	return ev.Subscribe(fn)
}

// HandleKeyboard offers the key to the selected widget, then moves the
// selection on navigation keys. Navigation wraps around the page.
func (p *Page) HandleKeyboard(event KeyEvent) bool {
	if p.selected != nil && p.selected.HandleKeyboard(event) {
		offset := selectionOffset(p.visible(), p.selected)
		p.selectedIndex = offset + max(p.selected.WidgetBase().selectedIndex, 0)
		return true
	}
	if d := event.navigation(); d != 0 {
		if n := p.SelectableCount(); n > 0 {
			next := p.selectedIndex + d
			if p.selectedIndex < 0 && d < 0 {
				next = n - 1
			}
			return p.Select((next%n + n) % n)
		}
	}
	for _, name := range event.Names() {
		if ev, ok := p.bindings[name]; ok && ev.Emit(p) {
			return true
		}
	}
	return false
}

// HandleMouse routes a mouse event to the topmost widget under it. A
// clicked widget takes the selection.
func (p *Page) HandleMouse(event MouseEvent) bool {
	handled, mouse, hover := HandleMouseOnChildren(event, p.mouseTarget, p.hoverTarget, p.mouseOrder())
	p.mouseTarget, p.hoverTarget = attached(mouse), attached(hover)
	if event.Action.Kind != MouseClick {
		return handled
	}
	if handled && mouse != nil && mouse.SelectableCount() > 0 && slices.Contains(p.children, mouse) {
		offset := selectionOffset(p.visible(), mouse)
		p.Select(offset + max(mouse.WidgetBase().selectedIndex, 0))
		return true
	}
	if !handled {
		p.Select(-1)
	}
	return handled
}

// attached returns w, or nil when a handler removed it from the tree.
func attached(w Widget) Widget {
	if w == nil || w.WidgetBase().parent == nil {
		return nil
	}
	return w
}

// mouseOrder returns the visible children topmost first.
func (p *Page) mouseOrder() []Widget {
	children := p.visible()
	slices.Reverse(children)
	sort.SliceStable(children, func(i, j int) bool {
		return children[i].WidgetBase().layer > children[j].WidgetBase().layer
	})
	return children
}

// build runs the page's builder.
func (p *Page) build() error {
	if p.builder == nil {
		return nil
	}
	return p.builder(p)
}
