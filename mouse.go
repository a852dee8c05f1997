package celadon

import (
	"strings"

	"github.com/celadon-tui/celadon/internal/layout"
)

// MouseKind is what happened in a mouse event.
type MouseKind uint8

const (
	MouseClick MouseKind = iota
	MouseRelease
	MouseDrag
	MouseHover
	MouseScrollUp
	MouseScrollDown
	MouseScrollLeft
	MouseScrollRight
)

var mouseKindNames = [...]string{
	MouseClick:       "click",
	MouseRelease:     "release",
	MouseDrag:        "drag",
	MouseHover:       "hover",
	MouseScrollUp:    "scroll_up",
	MouseScrollDown:  "scroll_down",
	MouseScrollLeft:  "scroll_left",
	MouseScrollRight: "scroll_right",
}

func (k MouseKind) String() string {
	if int(k) < len(mouseKindNames) {
		return mouseKindNames[k]
	}
	return "unknown"
}

// MouseButton identifies the button involved in a click, release or drag.
type MouseButton uint8

const (
	MouseNoButton MouseButton = iota
	MouseLeft
	MouseMiddle
	MouseRight
)

func (b MouseButton) String() string {
	switch b {
	case MouseLeft:
		return "left"
	case MouseMiddle:
		return "middle"
	case MouseRight:
		return "right"
	}
	return ""
}

// MouseAction describes a mouse event without its position.
type MouseAction struct {
	Kind   MouseKind
	Button MouseButton
	Mod    Modifier
}

// Common actions.
var (
	LeftClick   = MouseAction{Kind: MouseClick, Button: MouseLeft}
	LeftRelease = MouseAction{Kind: MouseRelease, Button: MouseLeft}
	LeftDrag    = MouseAction{Kind: MouseDrag, Button: MouseLeft}
	Hover       = MouseAction{Kind: MouseHover}
	ScrollUp    = MouseAction{Kind: MouseScrollUp}
	ScrollDown  = MouseAction{Kind: MouseScrollDown}
)

// String returns the full name of the action, such as "left_click" or
// "shift_ctrl_option_right_drag".
func (a MouseAction) String() string {
	var parts []string
	if a.Mod.Has(ModShift) {
		parts = append(parts, "shift")
	}
	if a.Mod.Has(ModCtrl) {
		parts = append(parts, "ctrl")
	}
	if a.Mod.Has(ModAlt) {
		parts = append(parts, "option")
	}
	if b := a.Button.String(); b != "" && a.Kind <= MouseDrag {
		parts = append(parts, b)
	}
	parts = append(parts, a.Kind.String())
	return strings.Join(parts, "_")
}

// Names returns the handler names the action dispatches to, most specific
// first: the full name, the button and kind ("left_click"), then the kind
// ("click").
func (a MouseAction) Names() []string {
	full, kind := a.String(), a.Kind.String()
	names := []string{full}
	if b := a.Button.String(); b != "" && a.Kind <= MouseDrag && a.Mod != ModNone {
		names = append(names, b+"_"+kind)
	}
	if full != kind {
		names = append(names, kind)
	}
	return names
}

// IsScroll reports whether the action is a wheel event.
func (a MouseAction) IsScroll() bool {
	return a.Kind >= MouseScrollUp
}

// horizontalScroll returns -1 or +1 when the action scrolls along the x axis.
// Shift turns the vertical wheel into a horizontal one.
func (a MouseAction) horizontalScroll() int {
	switch {
	case a.Kind == MouseScrollLeft, a.Kind == MouseScrollUp && a.Mod.Has(ModShift):
		return -1
	case a.Kind == MouseScrollRight, a.Kind == MouseScrollDown && a.Mod.Has(ModShift):
		return 1
	}
	return 0
}

// verticalScroll returns -1 or +1 when the action scrolls along the y axis.
func (a MouseAction) verticalScroll() int {
	if a.Mod.Has(ModShift) {
		return 0
	}
	switch a.Kind {
	case MouseScrollUp:
		return -1
	case MouseScrollDown:
		return 1
	}
	return 0
}

// MouseEvent is a mouse action at a terminal position.
type MouseEvent struct {
	Action MouseAction
	X, Y   int
}

func (MouseEvent) inputEvent() {}

// Position returns the event's coordinates.
func (e MouseEvent) Position() layout.Point {
	return layout.Point{X: e.X, Y: e.Y}
}

// release returns a left release at the same position.
func (e MouseEvent) release() MouseEvent {
	return MouseEvent{Action: LeftRelease, X: e.X, Y: e.Y}
}

// HandleMouseOnChildren routes a mouse event to the first of children, in
// order, that contains it. Containers and the application share it so
// capture and hover behave the same at every level.
//
// mouseTarget is the widget that captured the last click and hoverTarget
// the widget under the pointer; the updated pair is returned with whether
// the event was handled.
//
//   - A release is sent to both targets and clears them.
//   - Non-click events go to the mouse target first.
//   - A hover outside the hover target sends it a release.
//   - The first child containing the position that handles the event, or
//     consumes mouse events, becomes the mouse target and ends the scan.
func HandleMouseOnChildren(event MouseEvent, mouseTarget, hoverTarget Widget, children []Widget) (handled bool, newMouse, newHover Widget) {
	if event.Action.Kind == MouseRelease {
		handled := false
		if mouseTarget != nil {
			mouseTarget.HandleMouse(event)
			handled = true
		}
		if hoverTarget != nil && hoverTarget != mouseTarget {
			hoverTarget.HandleMouse(event)
			handled = true
		}
		return handled, nil, nil
	}

	isHover := event.Action.Kind == MouseHover
	if mouseTarget != nil && event.Action.Kind != MouseClick && mouseTarget.HandleMouse(event) {
		return true, mouseTarget, hoverTarget
	}

	if hoverTarget != nil {
		if event.Action.IsScroll() && hoverTarget.HandleMouse(event) {
			return true, mouseTarget, hoverTarget
		}
		if isHover && !contains(hoverTarget, event.X, event.Y) {
			hoverTarget.HandleMouse(event.release())
			hoverTarget = nil
		}
	}

	for _, child := range children {
		if !contains(child, event.X, event.Y) {
			continue
		}

		if isHover {
			if hoverTarget != nil && hoverTarget != child {
				hoverTarget.HandleMouse(event.release())
			}
			hoverTarget = child
		}

		childHandled := child.HandleMouse(event)
		consumes := child.WidgetBase().consumesMouse
		if !childHandled && !consumes {
			break
		}
		if mouseTarget != nil && mouseTarget != child {
			mouseTarget.HandleMouse(event.release())
		}
		if !childHandled {
			return true, mouseTarget, hoverTarget
		}
		return true, child, hoverTarget
	}
	return false, mouseTarget, hoverTarget
}

func contains(w Widget, x, y int) bool {
	return w.WidgetBase().Contains(x, y)
}
