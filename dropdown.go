package celadon

import (
	"github.com/mattn/go-runewidth"

	"github.com/celadon-tui/celadon/internal/layout"
)

const dropdownRules = `
Dropdown:
    width: shrink
    height: 1

    "> Button":
        width: null
`

// Dropdown picks one of a list of options. Closed, it shows a trigger
// button with the current label; open, the options are listed below the
// trigger on top of whatever is there. The first option is the title the
// dropdown was created with.
type Dropdown struct {
	Container
	trigger    *Button
	options    []*Button
	label      string
	value      string
	open       bool
	indicators [2]string

	// OnChange receives the value of every option picked.
	OnChange Event[string]
}

var _ Widget = (*Dropdown)(nil)

// NewDropdown returns a closed dropdown showing title, followed by the
// given options.
func NewDropdown(title string, options []string, opts ...Option) *Dropdown {
	d := &Dropdown{label: title, value: title, indicators: [2]string{"▼", "▲"}}
	d.initContainer(d, "Dropdown", layout.Vertical, opts)
	d.gap, d.fallbackGap = layout.Fixed(0), 0
	d.layer = 1

	d.trigger = NewButton("")
	d.trigger.OnSubmit.Subscribe(func(*Button) bool {
		d.Toggle()
		return true
	})
	d.Container.AddChild(d.trigger)

	d.AddOption(title)
	for _, option := range options {
		d.AddOption(option)
	}
	d.sync()
	return d
}

// AddOption appends an option and returns its button.
func (d *Dropdown) AddOption(label string) *Button {
	option := NewButton(label)
	option.OnSubmit.Subscribe(func(b *Button) bool {
		d.pick(b)
		return true
	})
	d.options = append(d.options, option)
	d.Container.AddChild(option)
	d.sync()
	return option
}

// Options returns the option buttons, the title first.
func (d *Dropdown) Options() []*Button { return d.options }

// Trigger returns the button that opens and closes the dropdown.
func (d *Dropdown) Trigger() *Button { return d.trigger }

// Value returns the label of the option picked last, or the title.
func (d *Dropdown) Value() string { return d.value }

// Label returns the text shown on the trigger.
func (d *Dropdown) Label() string { return d.label }

// IsOpen reports whether the options are shown.
func (d *Dropdown) IsOpen() bool { return d.open }

// Open shows the options.
func (d *Dropdown) Open() {
	d.open = true
	d.sync()
}

// Close hides the options. A selection held by an option moves to the
// trigger.
func (d *Dropdown) Close() {
	d.open = false
	d.sync()
	if d.selected != nil && d.selected != Widget(d.trigger) {
		d.Container.Select(0)
	}
}

// Toggle opens a closed dropdown and closes an open one. It reports
// whether the dropdown is now open.
func (d *Dropdown) Toggle() bool {
	if d.open {
		d.Close()
	} else {
		d.Open()
	}
	return d.open
}

func (d *Dropdown) pick(option *Button) {
	d.label = option.Label()
	d.value = option.Label()
	d.Close()
	d.OnChange.Emit(d.value)
}

// sync updates the trigger's label and hides the options of a closed
// dropdown. An open dropdown takes every mouse event over it.
func (d *Dropdown) sync() {
	d.trigger.SetLabel(d.label + " " + d.indicators[boolInt(d.open)])
	for _, option := range d.options {
		if d.open {
			option.Show()
		} else {
			option.Hide()
		}
	}
	d.consumesMouse = d.open
}

// Select implements Widget. Losing the selection closes the dropdown.
func (d *Dropdown) Select(index int) bool {
	ok := d.Container.Select(index)
	if !ok && d.open {
		d.Close()
	}
	return ok
}

// ShrinkWidth implements Widget with the widest label, the indicator and
// the trigger's padding. Options count while hidden so the width does not
// change when the dropdown opens.
func (d *Dropdown) ShrinkWidth() (int, error) {
	m := d.markup()
	widest := 0
	for _, option := range d.options {
		widest = max(widest, m.Parse(option.Label(), Style{}).Width())
	}
	indicator := max(runewidth.StringWidth(d.indicators[0]), runewidth.StringWidth(d.indicators[1]))
	return widest + indicator + 5, nil
}

// Layout implements the container layout. An open dropdown grows to fit
// every option and is drawn unclipped over its siblings.
func (d *Dropdown) Layout() error {
	if d.open {
		d.computedHeight = len(d.VisibleChildren()) + d.frame.Height()
		d.Clip(layout.Point{}, layout.Point{})
	}
	return d.Container.Layout()
}

func init() {
	RegisterType(TypeRegistration{
		Name:  "Dropdown",
		Rules: dropdownRules,
		New:   func() Widget { return NewDropdown("", nil) },
	})
}
