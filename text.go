package celadon

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/celadon-tui/celadon/internal/debug"
	"github.com/celadon-tui/celadon/internal/layout"
)

const textRules = `
Text:
    height: 1
`

// linkPattern finds "~/route" links in text content.
var linkPattern = regexp.MustCompile(`~([^ \][]+)`)

// Text displays static markup. Its width follows the content.
type Text struct {
	Base
	content string
}

var _ Widget = (*Text)(nil)

// NewText returns a Text showing content.
func NewText(content string, opts ...Option) *Text {
	t := &Text{content: content}
	t.Init(t, "Text")
	t.width = layout.Shrink()
	t.Apply(opts...)

	t.DefineAttr("content", func(v any) error {
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("%w: expected string, got %T", ErrValue, v)
		}
		t.content = s
		return nil
	})
	t.OnMouse("click", t.followLink)
	return t
}

// Content implements Widget.
func (t *Text) Content() ([]string, error) {
	return strings.Split(t.content, "\n"), nil
}

// SetContent replaces the text.
func (t *Text) SetContent(content string) { t.content = content }

// Text returns the markup the widget shows.
func (t *Text) Text() string { return t.content }

// ShrinkWidth implements Widget with the width of the widest line.
func (t *Text) ShrinkWidth() (int, error) {
	m := t.markup()
	widest := 0
	for _, line := range strings.Split(t.content, "\n") {
		widest = max(widest, m.Parse(line, Style{}).Width())
	}
	return widest, nil
}

// ShrinkHeight implements Widget with the number of lines.
func (t *Text) ShrinkHeight() (int, error) {
	return strings.Count(t.content, "\n") + 1, nil
}

// SelectableCount implements Widget. Text is never selected.
func (t *Text) SelectableCount() int { return 0 }

// router is implemented by the application.
type router interface {
	Route(name string) error
	ReportError(err error)
}

// followLink routes the application to the first "~/route" link in the
// content. It never reports the click as handled, so the parent does not
// select the text.
func (t *Text) followLink(MouseEvent) bool {
	match := linkPattern.FindStringSubmatch(t.content)
	if match == nil {
		return false
	}
	for n := t.ParentNode(); n != nil; n = n.ParentNode() {
		if r, ok := n.(router); ok {
			if err := r.Route(match[1]); err != nil {
				debug.Log("text link %q: %v", match[1], err)
				r.ReportError(fmt.Errorf("following link in %s: %w", t.Query(), err))
			}
			break
		}
	}
	return false
}

func init() {
	RegisterType(TypeRegistration{
		Name:  "Text",
		Rules: textRules,
		New:   func() Widget { return NewText("") },
	})
}
