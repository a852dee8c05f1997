package celadon

import (
	"fmt"
	"strings"
	"time"

	"github.com/celadon-tui/celadon/internal/layout"
)

const semanticButtonRules = `
    .{base}:
        /idle|hover:
            frame_style: ui.{base}

        /selected:
            frame_style: ui.{base}

        /active:
            frame_style: ui.panel1-2
            fill_style: '@ui.{base}+3'
`

var buttonRules = `
Button:
    content_style: dim
    alignment: [center, center]

    height: 1
    frame: [heavy, null, heavy, null]

    /idle:
        fill_style: '@ui.panel1'
        frame_style: ui.primary+1

    /hover:
        fill_style: '@ui.panel1+1'
        frame_style: ui.primary+1

    /selected:
        content_style: dim bold
        fill_style: '@ui.panel1+1'
        frame_style: ui.primary+1

    /active:
        fill_style: '@ui.primary+3'
        frame_style: 'ui.panel1-2'
        frame: frameless

    .big:
        height: 3
` + strings.ReplaceAll(semanticButtonRules, "{base}", "success") +
	strings.ReplaceAll(semanticButtonRules, "{base}", "warning") +
	strings.ReplaceAll(semanticButtonRules, "{base}", "error")

// keyboardPress is how long a key press keeps a button in the active state.
const keyboardPress = 150 * time.Millisecond

// Button is a pressable widget. It submits when clicked or when "return"
// is pressed while it is selected.
type Button struct {
	Base
	content string
	pressed bool

	// fitted is set while the width follows the label.
	fitted bool

	// OnSubmit fires on every submit.
	OnSubmit Event[*Button]
}

var _ Widget = (*Button)(nil)

// NewButton returns a button labelled content.
func NewButton(content string, opts ...Option) *Button {
	b := &Button{content: content, fitted: true}
	b.Init(b, "Button")
	b.fit()
	fitted := b.width
	b.Apply(opts...)
	b.fitted = b.width == fitted

	b.DefineAttr("content", func(v any) error {
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("%w: expected string, got %T", ErrValue, v)
		}
		b.SetLabel(s)
		return nil
	})
	b.DefineAttr("width", func(v any) error {
		d, err := dimensionValue(v)
		if err == nil {
			b.SetWidth(d)
		}
		return err
	})
	b.Bind("return", func(Widget) bool { return b.keyboardSubmit() })
	b.OnMouse("click", func(MouseEvent) bool {
		b.OnSubmit.Emit(b)
		return true
	})
	return b
}

// Content implements Widget.
func (b *Button) Content() ([]string, error) {
	return []string{b.content}, nil
}

// Label returns the button's content.
func (b *Button) Label() string { return b.content }

// SetLabel replaces the button's content. A button whose width was never
// set is resized to fit it.
func (b *Button) SetLabel(content string) {
	b.content = content
	b.fit()
}

// SetWidth sets the requested width. The width stops following the label.
func (b *Button) SetWidth(d layout.Dimension) {
	b.fitted = false
	b.width = d
}

func (b *Button) fit() {
	if b.fitted {
		b.width = layout.Fixed(b.markup().Parse(b.content, Style{}).Width() + 4)
	}
}

// keyboardSubmit shows the button as active for a moment, then submits.
func (b *Button) keyboardSubmit() bool {
	if b.pressed {
		return false
	}
	pressKeyboard(&b.Base, &b.pressed)
	return b.OnSubmit.Emit(b)
}

// pressKeyboard moves the widget into the active state until a timeout
// releases it. Outside a running application the release is immediate.
func pressKeyboard(b *Base, pressed *bool) {
	b.machine.ApplyAction(ActionClicked)
	*pressed = true
	release := func() {
		b.machine.ApplyAction(ActionReleasedKeyboard)
		*pressed = false
	}
	if b.Timeout(keyboardPress, release) == nil {
		release()
	}
}

func init() {
	RegisterType(TypeRegistration{
		Name:  "Button",
		Rules: buttonRules,
		New:   func() Widget { return NewButton("") },
	})
}
