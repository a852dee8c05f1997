package celadon

import "github.com/celadon-tui/celadon/internal/layout"

const dialogueRules = `
Dialogue:
    consumes_mouse: true
    anchor: screen
    layer: 2

    width: 1.0
    height: 1.0

    alignment: [center, center]
    fill_style: '@black*0.6'

    "> Tower":
        consumes_mouse: true

        width: 0.6
        height: 0.5

        alignment: [center, start]
        frame: [padded, verticalouter, padded, verticalouter]

    "*> Text.title":
        alignment: [center, center]
        height: 2
        content_style: bold dim

    "*> Text.body":
        height: null
        overflow: [hide, auto]

    "*> Tower.body":
        gap: 1

    "*> Row.input":
        height: 3
        alignment: [center, end]
`

// Dialogue is a screen-sized overlay that dims what is below it and shows
// its children in a centered tower. Clicking the dimmed area outside the
// tower removes the dialogue.
type Dialogue struct {
	Container
	content *Container

	// OnDismiss fires when a click outside the content removes the
	// dialogue.
	OnDismiss Event[*Dialogue]
}

var _ Widget = (*Dialogue)(nil)

// NewDialogue returns a dialogue showing children.
func NewDialogue(children []Widget, opts ...Option) *Dialogue {
	d := &Dialogue{content: NewTower()}
	d.initContainer(d, "Dialogue", layout.Vertical, opts)
	d.Container.AddChild(d.content)
	d.content.AddChild(children...)

	d.OnMouse("click", func(MouseEvent) bool {
		d.Dismiss()
		return true
	})
	return d
}

// ContentTower returns the tower holding the dialogue's children.
func (d *Dialogue) ContentTower() *Container { return d.content }

// AddChild adds children to the dialogue's content.
func (d *Dialogue) AddChild(children ...Widget) {
	d.content.AddChild(children...)
}

// InsertChild inserts child into the dialogue's content.
func (d *Dialogue) InsertChild(index int, child Widget) {
	d.content.InsertChild(index, child)
}

// RemoveChild removes child from the dialogue's content.
func (d *Dialogue) RemoveChild(child Widget) bool {
	return d.content.RemoveChild(child)
}

// ClearChildren removes every child from the dialogue's content.
func (d *Dialogue) ClearChildren() {
	d.content.ClearChildren()
}

// Dismiss removes the dialogue from its parent.
func (d *Dialogue) Dismiss() {
	if r, ok := d.parent.(childRemover); ok && r.RemoveChild(d) {
		d.OnDismiss.Emit(d)
	}
}

func init() {
	RegisterType(TypeRegistration{
		Name:  "Dialogue",
		Rules: dialogueRules,
		New:   func() Widget { return NewDialogue(nil) },
	})
}
