package celadon

import (
	"cmp"
	"slices"

	"github.com/celadon-tui/celadon/internal/layout"
)

const navRules = `
Nav:
    height: 1
    gap: 1
    alignment: [start, center]

    "> Button.current":
        content_style: bold
`

// Nav is a row holding a button for every page of an application. The
// button of the current page is in the "current" group. Pages are listed
// with the "/" route first and the rest sorted by route.
type Nav struct {
	Container
	app     *Application
	buttons map[string]*Button
}

var _ Widget = (*Nav)(nil)

// NewNav returns a nav for app's pages. It follows pages added later.
func NewNav(app *Application, opts ...Option) *Nav {
	n := &Nav{app: app}
	n.initContainer(n, "Nav", layout.Horizontal, opts)

	app.OnPageAdded.Subscribe(func(*Page) bool {
		n.rebuild()
		return true
	})
	app.OnPageChanged.Subscribe(func(*Page) bool {
		n.markCurrent()
		return true
	})
	n.rebuild()
	return n
}

// Button returns the button routing to route, or nil.
func (n *Nav) Button(route string) *Button { return n.buttons[route] }

func (n *Nav) rebuild() {
	n.ClearChildren()
	n.buttons = make(map[string]*Button)

	pages := slices.Clone(n.app.Pages())
	slices.SortStableFunc(pages, func(a, b *Page) int {
		if a.route == "/" || b.route == "/" {
			return boolInt(b.route == "/") - boolInt(a.route == "/")
		}
		return cmp.Compare(a.route, b.route)
	})

	for _, page := range pages {
		label := page.title
		if label == "" {
			label = page.route
		}
		route := page.route
		button := NewButton(label)
		button.OnSubmit.Subscribe(func(*Button) bool {
			if err := n.app.Route(route); err != nil {
				n.app.ReportError(err)
				return false
			}
			return true
		})
		n.buttons[route] = button
		n.AddChild(button)
	}
	n.markCurrent()
}

func (n *Nav) markCurrent() {
	current := ""
	if p := n.app.CurrentPage(); p != nil {
		current = p.route
	}
	for route, button := range n.buttons {
		if route == current {
			button.AddGroup("current")
		} else {
			button.RemoveGroup("current")
		}
	}
}

func init() {
	RegisterType(TypeRegistration{
		Name:  "Nav",
		Rules: navRules,
	})
}
