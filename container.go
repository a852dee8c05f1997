package celadon

import (
	"fmt"
	"slices"
	"sort"
	"unicode/utf8"

	"github.com/celadon-tui/celadon/internal/layout"
)

// Container is a widget that arranges its children one after another.
// Tower stacks them vertically and Row places them side by side.
//
//	+----------------+ <- alignment: [center, center]
//	|     +---+      |
//	|     |   | <------- width: 0.5
//	|     +---+      |
//	|   +--------+   |
//	|   |        | <---- width: fill
//	|   +--------+   |
//	|    +-----+     |
//	|    |     | <------ width: 7
//	|    +-----+     |
//	+----------------+
type Container struct {
	Base

	children    []Widget
	direction   layout.Direction
	gap         layout.Dimension
	fallbackGap int
	extent      layout.Point
	selected    Widget
}

var _ Widget = (*Container)(nil)

// NewTower returns a container that stacks its children vertically.
func NewTower(opts ...Option) *Container {
	return newContainer("Tower", layout.Vertical, opts)
}

// NewRow returns a container that places its children side by side.
func NewRow(opts ...Option) *Container {
	return newContainer("Row", layout.Horizontal, opts)
}

func newContainer(typeName string, direction layout.Direction, opts []Option) *Container {
	c := &Container{}
	c.initContainer(c, typeName, direction, opts)
	return c
}

// initContainer prepares c as the container behind self. Widgets built on
// a container, such as Dropdown, pass themselves as self.
func (c *Container) initContainer(self Widget, typeName string, direction layout.Direction, opts []Option) {
	c.direction, c.gap = direction, layout.Fill()
	c.Init(self, typeName, opts...)
	c.styles = c.styles.Merge(StyleMap{
		StateIdle: {"scrollbar_y": ".secondary"},
	})

	c.DefineAttr("direction", func(v any) error {
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("%w: expected string, got %T", ErrValue, v)
		}
		d, err := layout.ParseDirection(s)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrValue, err)
		}
		c.direction = d
		return nil
	})
	c.DefineAttr("gap", func(v any) error {
		d, err := dimensionValue(v)
		if err == nil {
			c.gap = d
		}
		return err
	})
	c.DefineAttr("fallback_gap", func(v any) error {
		n, err := intValue(v)
		if err == nil {
			c.fallbackGap = n
		}
		return err
	})
}

// Direction returns the flow direction.
func (c *Container) Direction() layout.Direction { return c.direction }

// SetDirection sets the flow direction.
func (c *Container) SetDirection(d layout.Direction) { c.direction = d }

// Gap returns the requested gap between children.
func (c *Container) Gap() layout.Dimension { return c.gap }

// SetGap sets the gap between children. fallback replaces it when it does
// not fit or when fill children take the leftover space.
func (c *Container) SetGap(gap layout.Dimension, fallback int) {
	c.gap, c.fallbackGap = gap, fallback
}

// Extent returns the size of the children measured by the last Layout.
func (c *Container) Extent() layout.Point { return c.extent }

// Children returns the container's children. The slice must not be
// modified.
func (c *Container) Children() []Widget { return c.children }

// VisibleChildren returns the children that are not hidden.
func (c *Container) VisibleChildren() []Widget {
	out := make([]Widget, 0, len(c.children))
	for _, child := range c.children {
		if !child.WidgetBase().Hidden() {
			out = append(out, child)
		}
	}
	return out
}

// AddChild appends children to the container.
func (c *Container) AddChild(children ...Widget) {
	for _, child := range children {
		c.InsertChild(len(c.children), child)
	}
}

// InsertChild inserts child at index. A child that already has a parent is
// removed from it first.
func (c *Container) InsertChild(index int, child Widget) {
	detach(child)
	index = min(max(index, 0), len(c.children))
	c.children = slices.Insert(c.children, index, child)
	child.WidgetBase().parent = c
}

// RemoveChild removes child and reports whether it was found.
func (c *Container) RemoveChild(child Widget) bool {
	i := slices.Index(c.children, child)
	if i < 0 {
		return false
	}
	if c.selected == child {
		c.Select(-1)
	}
	c.children = slices.Delete(c.children, i, i+1)
	child.WidgetBase().parent = nil
	if c.mouseTarget == child {
		c.mouseTarget = nil
	}
	if c.hoverTarget == child {
		c.hoverTarget = nil
	}
	return true
}

// ClearChildren removes every child.
func (c *Container) ClearChildren() {
	for _, child := range slices.Clone(c.children) {
		c.RemoveChild(child)
	}
}

type childRemover interface {
	RemoveChild(Widget) bool
}

func detach(w Widget) {
	if r, ok := w.WidgetBase().parent.(childRemover); ok {
		r.RemoveChild(w)
	}
}

// MoveBy moves the container along with its children.
func (c *Container) MoveBy(dx, dy int) {
	c.Base.MoveBy(dx, dy)
	for _, child := range c.children {
		child.MoveBy(dx, dy)
	}
}

// layoutItem adapts a Widget to layout.Item.
type layoutItem struct {
	w Widget
}

func (it layoutItem) Dimensions() (width, height layout.Dimension) {
	b := it.w.WidgetBase()
	return b.width, b.height
}

func (it layoutItem) Compute(availableWidth, availableHeight int) error {
	return it.w.ComputeDimensions(availableWidth, availableHeight)
}

func (it layoutItem) Size() (width, height int) { return it.w.WidgetBase().ComputedSize() }

func (it layoutItem) MoveTo(x, y int) { it.w.WidgetBase().MoveTo(x, y) }

func (it layoutItem) IsStatic() bool { return it.w.WidgetBase().IsStatic() }

// inner returns the top-left corner of the content area.
func (c *Container) inner() layout.Point {
	return c.position.Add(layout.Point{
		X: utf8.RuneCountInString(c.frame.Left()),
		Y: boolInt(c.frame.Top() != ""),
	})
}

// Layout sizes and places the container's children, then lays out child
// containers. The container's own size must already be computed.
func (c *Container) Layout() error {
	children := c.VisibleChildren()
	items := make([]layout.Item, len(children))
	for i, child := range children {
		items[i] = layoutItem{child}
	}

	// Showing a scrollbar shrinks the space children get, which can change
	// the extent and with it whether the scrollbar is needed.
	for pass := 0; pass < 3; pass++ {
		bars := [2]int{}
		bars[0], bars[1] = c.barCells()

		viewW, viewH := c.viewSize()
		flow := layout.Flow{
			Direction:   c.direction,
			Alignment:   c.alignment,
			Gap:         c.gap,
			FallbackGap: c.fallbackGap,
			Width:       viewW,
			Height:      viewH,
		}
		extent, err := layout.Arrange(flow, c.inner().Sub(c.scroll), items)
		if err != nil {
			return fmt.Errorf("%s: %w", c.Query(), err)
		}
		c.extent, c.virtual = extent, extent

		viewW, viewH = c.viewSize()
		scroll := layout.Point{
			X: clampScroll(c.scroll.X, extent.X, viewW),
			Y: clampScroll(c.scroll.Y, extent.Y, viewH),
		}
		x, y := c.barCells()
		if bars == [2]int{x, y} && scroll == c.scroll {
			break
		}
		c.scroll = scroll
	}

	viewW, viewH := c.viewSize()
	view := c.VisibleRect().Intersect(layout.Rect{X: c.inner().X, Y: c.inner().Y, Width: viewW, Height: viewH})

	for _, child := range children {
		b := child.WidgetBase()
		switch b.anchor {
		case AnchorParent:
			b.MoveTo(c.position.X+b.offset.X, c.position.Y+b.offset.Y)
			b.Clip(layout.Point{}, layout.Point{})
		case AnchorScreen:
			b.MoveTo(b.offset.X, b.offset.Y)
			b.Clip(layout.Point{}, layout.Point{})
		default:
			b.Clip(b.Rect().Clip(view))
		}

		if nested, ok := child.(interface{ Layout() error }); ok {
			if err := nested.Layout(); err != nil {
				return err
			}
		}
	}
	return nil
}

// ShrinkWidth implements Widget by measuring the children that are not
// flexible.
func (c *Container) ShrinkWidth() (int, error) {
	return c.measure(layout.Horizontal)
}

// ShrinkHeight implements Widget.
func (c *Container) ShrinkHeight() (int, error) {
	return c.measure(layout.Vertical)
}

func (c *Container) measure(axis layout.Direction) (int, error) {
	total, count := 0, 0
	for _, child := range c.VisibleChildren() {
		b := child.WidgetBase()
		if b.IsStatic() {
			continue
		}
		count++
		d := b.width
		if axis == layout.Vertical {
			d = b.height
		}
		if d.IsFlexible() {
			continue
		}
		if err := child.ComputeDimensions(0, 0); err != nil {
			return 0, err
		}
		w, h := b.ComputedSize()
		size := w
		if axis == layout.Vertical {
			size = h
		}
		if axis == c.direction {
			total += size
		} else {
			total = max(total, size)
		}
	}
	if axis == c.direction && count > 1 && c.gap.Mode == layout.ModeFixed {
		total += c.gap.Cells * (count - 1)
	}
	return total, nil
}

// Drawables implements Widget. Children are drawn in layer order.
func (c *Container) Drawables() []Widget {
	out := c.Base.Drawables()
	children := c.VisibleChildren()
	sort.SliceStable(children, func(i, j int) bool {
		return children[i].WidgetBase().layer < children[j].WidgetBase().layer
	})
	for _, child := range children {
		out = append(out, child.Drawables()...)
	}
	return out
}

// Build implements Widget. The container's content is its fill; the
// children are drawn separately.
func (c *Container) Build() ([]Line, error) {
	extent := c.extent
	return c.build(&extent)
}

// Content implements Widget.
func (c *Container) Content() ([]string, error) {
	return nil, nil
}

// SelectableCount implements Widget.
func (c *Container) SelectableCount() int {
	if c.disabled {
		return 0
	}
	return selectableCount(c.VisibleChildren())
}

// Selected returns the child holding the selection, or nil.
func (c *Container) Selected() Widget { return c.selected }

// Select implements Widget. The index counts selectable widgets across
// all descendants in tree order.
func (c *Container) Select(index int) bool {
	selected, ok := selectAmong(c.VisibleChildren(), c.selected, index)
	c.selected = selected
	if !ok {
		if c.selectedIndex >= 0 {
			c.selectedIndex = -1
			c.machine.ApplyAction(ActionUnselected)
		}
		return false
	}
	c.selectedIndex = index
	c.machine.ApplyAction(ActionSelected)
	return true
}

// syncSelection recomputes the selected index after the selected child
// moved its own selection.
func (c *Container) syncSelection() {
	if c.selected == nil {
		return
	}
	offset := selectionOffset(c.VisibleChildren(), c.selected)
	c.selectedIndex = offset + max(c.selected.WidgetBase().selectedIndex, 0)
}

// HandleKeyboard implements Widget. Keys go to the selected child first.
// Navigation keys then move the selection and report false at either
// end, leaving the parent to move on.
func (c *Container) HandleKeyboard(event KeyEvent) bool {
	if c.disabled {
		return false
	}
	if c.selected != nil && c.selected.HandleKeyboard(event) {
		c.syncSelection()
		return true
	}
	if d := event.navigation(); d != 0 {
		next := c.selectedIndex + d
		if c.selectedIndex < 0 && d < 0 {
			next = c.SelectableCount() - 1
		}
		if next >= 0 && next < c.SelectableCount() {
			return c.Select(next)
		}
	}
	return c.Base.HandleKeyboard(event)
}

// mouseOrder returns the visible children topmost first.
func (c *Container) mouseOrder() []Widget {
	children := c.VisibleChildren()
	slices.Reverse(children)
	sort.SliceStable(children, func(i, j int) bool {
		return children[i].WidgetBase().layer > children[j].WidgetBase().layer
	})
	return children
}

// HandleMouse implements Widget. Events go to the scrollbars and the
// child under the pointer; a clicked child becomes selected. A click that
// no child handles clears the selection.
func (c *Container) HandleMouse(event MouseEvent) bool {
	if c.disabled {
		return false
	}

	handled, target := c.routeMouse(event, c.mouseOrder())
	if handled {
		if event.Action.Kind == MouseClick && slices.Contains(c.children, target) {
			if target.SelectableCount() > 0 {
				offset := selectionOffset(c.VisibleChildren(), target)
				c.Select(offset + max(target.WidgetBase().selectedIndex, 0))
			}
		}
		return true
	}

	if event.Action.Kind == MouseClick {
		c.Select(-1)
	}
	c.applyMouseState(event.Action)
	return c.mouseFallback(event)
}

func selectableCount(children []Widget) int {
	n := 0
	for _, child := range children {
		n += child.SelectableCount()
	}
	return n
}

func selectionOffset(children []Widget, target Widget) int {
	offset := 0
	for _, child := range children {
		if child == target {
			return offset
		}
		offset += child.SelectableCount()
	}
	return offset
}

// selectAmong clears the current selection and selects the index-th
// selectable widget among children. It returns the child that took the
// selection.
func selectAmong(children []Widget, current Widget, index int) (Widget, bool) {
	if current != nil {
		current.Select(-1)
	}
	if index < 0 {
		return nil, false
	}
	for _, child := range children {
		n := child.SelectableCount()
		if index < n {
			return child, child.Select(index)
		}
		index -= n
	}
	return nil, false
}

func init() {
	RegisterType(TypeRegistration{
		Name: "Tower",
		New:  func() Widget { return NewTower() },
	})
	RegisterType(TypeRegistration{
		Name: "Row",
		New:  func() Widget { return NewRow() },
	})
}
