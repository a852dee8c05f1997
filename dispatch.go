package celadon

import "fmt"

// Bind calls fn when the widget receives the key named key, such as "a",
// "return" or "ctrl-s". Binding a key twice adds a second handler.
func (b *Base) Bind(key string, fn func(Widget) bool) Subscription {
	ev, ok := b.bindings[key]
	if !ok {
		ev = &Event[Widget]{}
		b.bindings[key] = ev
	}
	return ev.Subscribe(fn)
}

// Unbind removes every handler bound to key.
func (b *Base) Unbind(key string) error {
	if _, ok := b.bindings[key]; !ok {
		return fmt.Errorf("%w: no binding for key %q", ErrValue, key)
	}
	delete(b.bindings, key)
	return nil
}

// OnMouse calls fn for mouse events dispatched under name. Names go from
// the most specific ("shift_left_click") to the least ("click"); only the
// handlers of the first name with any are called.
func (b *Base) OnMouse(name string, fn func(MouseEvent) bool) Subscription {
	ev, ok := b.mouseHandlers[name]
	if !ok {
		ev = &Event[MouseEvent]{}
		b.mouseHandlers[name] = ev
	}
	return ev.Subscribe(fn)
}

// HandleKeyboard implements Widget by calling the handlers bound to the
// key's names. It reports whether any of them handled the key.
func (b *Base) HandleKeyboard(event KeyEvent) bool {
	if b.disabled {
		return false
	}
	for _, name := range event.Names() {
		if ev, ok := b.bindings[name]; ok && ev.Emit(b.self) {
			return true
		}
	}
	return false
}

// HandleMouse implements Widget. The event updates the widget's state,
// then goes to its scrollbars, the scroll wheel and finally the handlers
// registered with OnMouse.
func (b *Base) HandleMouse(event MouseEvent) bool {
	if b.disabled {
		return false
	}
	b.applyMouseState(event.Action)
	if handled, _ := b.routeMouse(event, nil); handled {
		return true
	}
	return b.mouseFallback(event)
}

// routeMouse offers the event to the visible scrollbars, then to children.
// It returns whether one of them handled it and the widget now holding the
// mouse.
func (b *Base) routeMouse(event MouseEvent, children []Widget) (bool, Widget) {
	var targets []Widget
	for axis := range b.scrollbars {
		if b.HasScrollbar(axis) {
			targets = append(targets, b.scrollbar(axis))
		}
	}
	targets = append(targets, children...)

	handled, mouse, hover := HandleMouseOnChildren(event, b.mouseTarget, b.hoverTarget, targets)
	b.mouseTarget, b.hoverTarget = mouse, hover
	b.updateScrolling(event.Action, mouse)
	return handled, mouse
}

// mouseFallback scrolls on wheel events and otherwise calls the handlers
// registered for the event's names.
func (b *Base) mouseFallback(event MouseEvent) bool {
	if event.Action.IsScroll() && b.wheel(event.Action) {
		return true
	}
	for _, name := range event.Action.Names() {
		if ev, ok := b.mouseHandlers[name]; ok {
			return ev.Emit(event)
		}
	}
	return false
}

func (b *Base) applyMouseState(a MouseAction) {
	switch a.Kind {
	case MouseClick:
		b.machine.ApplyAction(ActionClicked)
	case MouseRelease:
		b.machine.ApplyAction(ActionReleased)
		if b.selectedIndex >= 0 {
			b.machine.ApplyAction(ActionSelected)
		}
	case MouseHover:
		b.machine.ApplyAction(ActionHovered)
	}
}

// updateScrolling moves the substate into scrolling while a scrollbar is
// held and back out on release.
func (b *Base) updateScrolling(a MouseAction, target Widget) {
	switch a.Kind {
	case MouseRelease:
		b.machine.ApplyAction(ActionExitScrollingX)
		b.machine.ApplyAction(ActionExitScrollingY)
	case MouseClick, MouseDrag:
		if target == nil {
			return
		}
		if bar := b.scrollbars[0]; bar != nil && target == Widget(bar) {
			b.machine.ApplyAction(ActionEnterScrollingX)
		}
		if bar := b.scrollbars[1]; bar != nil && target == Widget(bar) {
			b.machine.ApplyAction(ActionEnterScrollingY)
		}
	}
}

// wheel scrolls by the scroll step and reports whether the offset changed.
func (b *Base) wheel(a MouseAction) bool {
	viewW, viewH := b.viewSize()
	if d := a.horizontalScroll(); d != 0 && b.HasScrollbar(0) {
		next := clampScroll(b.scroll.X+d*b.scrollStep, b.virtual.X, viewW)
		if next != b.scroll.X {
			b.scroll.X = next
			return true
		}
	}
	if d := a.verticalScroll(); d != 0 && b.HasScrollbar(1) {
		next := clampScroll(b.scroll.Y+d*b.scrollStep, b.virtual.Y, viewH)
		if next != b.scroll.Y {
			b.scroll.Y = next
			return true
		}
	}
	return false
}
