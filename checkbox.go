package celadon

import (
	"fmt"

	"github.com/mattn/go-runewidth"

	"github.com/celadon-tui/celadon/internal/layout"
)

const checkboxRules = `
Checkbox:
    content_style: dim

    height: 1
    width: shrink

    /idle:
        frame_style: .primary+1

    /hover:
        fill_style: '@.panel1-2'
        frame_style: .primary+1

    /selected:
        content_style: dim bold
        fill_style: '@.panel1-1'
        frame_style: .primary+1

    /active:
        fill_style: '@.primary+3'
        frame_style: '.panel1'
        indicator_style: 'dim'
`

// Checkbox is a toggle with a label.
type Checkbox struct {
	Base
	content    string
	checked    bool
	indicators [2]string
	pressed    bool

	// OnChange receives the new value whenever the box is toggled.
	OnChange Event[bool]
}

var _ Widget = (*Checkbox)(nil)

// NewCheckbox returns an unchecked checkbox labelled content.
func NewCheckbox(content string, opts ...Option) *Checkbox {
	c := &Checkbox{content: content, indicators: [2]string{"□", "▣"}}
	c.Init(c, "Checkbox")
	c.width = layout.Shrink()
	c.styles = c.styles.Merge(statesWith(c.machine, "indicator", ""))
	c.Apply(opts...)

	c.DefineAttr("content", func(v any) error {
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("%w: expected string, got %T", ErrValue, v)
		}
		c.content = s
		return nil
	})
	c.DefineAttr("checked", func(v any) error {
		checked, ok := v.(bool)
		if !ok {
			return fmt.Errorf("%w: expected bool, got %T", ErrValue, v)
		}
		c.checked = checked
		return nil
	})
	c.DefineAttr("indicators", func(v any) error {
		items, err := stringsValue(v)
		if err != nil || len(items) != 2 {
			return fmt.Errorf("%w: indicators must be a list of two strings", ErrValue)
		}
		c.indicators = [2]string{items[0], items[1]}
		return nil
	})

	c.Bind("return", func(Widget) bool {
		if c.pressed {
			return false
		}
		c.checked = !c.checked
		pressKeyboard(&c.Base, &c.pressed)
		return c.OnChange.Emit(c.checked)
	})
	c.OnMouse("click", func(MouseEvent) bool {
		c.Toggle()
		return true
	})
	return c
}

// Checked reports whether the box is checked.
func (c *Checkbox) Checked() bool { return c.checked }

// SetChecked checks or unchecks the box without firing OnChange.
func (c *Checkbox) SetChecked(checked bool) { c.checked = checked }

// Toggle flips the box and fires OnChange.
func (c *Checkbox) Toggle() {
	c.checked = !c.checked
	c.OnChange.Emit(c.checked)
}

func (c *Checkbox) indicator() string {
	if c.checked {
		return c.indicators[1]
	}
	return c.indicators[0]
}

// Content implements Widget.
func (c *Checkbox) Content() ([]string, error) {
	return []string{fmt.Sprintf(" [%s]%s[/] %s ", c.Styles()["indicator"], c.indicator(), c.content)}, nil
}

// ShrinkWidth implements Widget.
func (c *Checkbox) ShrinkWidth() (int, error) {
	label := c.markup().Parse(c.content, Style{}).Width()
	return runewidth.StringWidth(c.indicator()) + label + 3, nil
}

// ShrinkHeight implements Widget.
func (c *Checkbox) ShrinkHeight() (int, error) { return 1, nil }

// statesWith returns a style map setting key to value in every state of m.
func statesWith(m *StateMachine, key, value string) StyleMap {
	out := make(StyleMap)
	for _, state := range m.States() {
		out[state] = map[string]string{key: value}
	}
	return out
}

func init() {
	RegisterType(TypeRegistration{
		Name:  "Checkbox",
		Rules: checkboxRules,
		New:   func() Widget { return NewCheckbox("") },
	})
}
