package celadon

import (
	"fmt"
	"math"
	"strings"

	"github.com/celadon-tui/celadon/internal/layout"
)

const sliderRules = `
Slider:
    height: 1
    content_style: '.panel1+1'

    /hover|selected:
        fill_style: '@.panel1-1'

    /selected|active:
        cursor_style: '.primary'

VerticalSlider:
    width: 1
    content_style: '.panel1+1'

    /hover|selected:
        fill_style: '@.panel1-1'

    /selected|active:
        cursor_style: '.primary'
`

// sliderStep is how far one key press moves a slider.
const sliderStep = 0.1

// Slider picks a value between 0 and 1 by moving a cursor along a rail.
// Widgets also use sliders as their scrollbars, in which case the slider
// takes its glyphs and styles from the scrolled widget.
type Slider struct {
	Base
	value      float64
	cursor     string
	rail       string
	cursorSize int
	vertical   bool

	// owner is the widget scrolled by the slider, or nil.
	owner *Base

	// OnChange receives the new value whenever it changes.
	OnChange Event[float64]
}

var _ Widget = (*Slider)(nil)

// NewSlider returns a horizontal slider.
func NewSlider(opts ...Option) *Slider {
	return newSlider("Slider", false, opts)
}

// NewVerticalSlider returns a vertical slider.
func NewVerticalSlider(opts ...Option) *Slider {
	return newSlider("VerticalSlider", true, opts)
}

func newSlider(typeName string, vertical bool, opts []Option) *Slider {
	s := &Slider{cursor: "┃", rail: "─", cursorSize: 1, vertical: vertical}
	if vertical {
		s.cursor, s.rail = "━", "│"
	}
	s.Init(s, typeName)
	if vertical {
		s.width = layout.Fixed(1)
	} else {
		s.height = layout.Fixed(1)
	}
	s.styles = s.styles.Merge(statesWith(s.machine, "cursor", ""))
	s.Apply(opts...)

	s.DefineAttr("cursor", func(v any) error {
		return setGlyph(&s.cursor, v)
	})
	s.DefineAttr("rail", func(v any) error {
		return setGlyph(&s.rail, v)
	})
	s.DefineAttr("value", func(v any) error {
		switch n := v.(type) {
		case float64:
			s.SetValue(n)
		case int:
			s.SetValue(float64(n))
		default:
			return fmt.Errorf("%w: expected number, got %T", ErrValue, v)
		}
		return nil
	})

	back, forward := "left", "right"
	if vertical {
		back, forward = "up", "down"
	}
	s.Bind(back, func(Widget) bool { return s.step(-sliderStep) })
	s.Bind(forward, func(Widget) bool { return s.step(sliderStep) })
	s.OnMouse("click", s.follow)
	s.OnMouse("drag", s.follow)
	return s
}

func setGlyph(dst *string, v any) error {
	s, ok := v.(string)
	if !ok || s == "" {
		return fmt.Errorf("%w: expected a glyph, got %v", ErrValue, v)
	}
	*dst = s
	return nil
}

// Value returns the slider's value.
func (s *Slider) Value() float64 { return s.value }

// Vertical reports whether the slider runs top to bottom.
func (s *Slider) Vertical() bool { return s.vertical }

// SetValue moves the cursor. The value is clamped to [0, 1] and OnChange
// fires if it changed.
func (s *Slider) SetValue(v float64) {
	v = min(max(v, 0), 1)
	if v == s.value {
		return
	}
	s.value = v
	s.OnChange.Emit(v)
}

func (s *Slider) step(delta float64) bool {
	before := s.value
	s.SetValue(math.Round((s.value+delta)*10) / 10)
	return s.value != before
}

// length is the number of cells along the rail.
func (s *Slider) length() int {
	if s.vertical {
		return s.computedHeight
	}
	return s.computedWidth
}

// follow moves the cursor under the pointer.
func (s *Slider) follow(event MouseEvent) bool {
	offset := event.X - s.position.X
	if s.vertical {
		offset = event.Y - s.position.Y
	}
	span := s.length() - s.cursorSize
	if span <= 0 {
		s.SetValue(0)
		return true
	}
	s.SetValue(float64(offset-s.cursorSize/2) / float64(span))
	return true
}

// SelectableCount implements Widget. Scrollbars are never selected.
func (s *Slider) SelectableCount() int {
	if s.owner != nil {
		return 0
	}
	return s.Base.SelectableCount()
}

// glyphs returns the rail and cursor glyphs and their style tokens.
func (s *Slider) glyphs() (rail, cursor, railStyle, cursorStyle string) {
	if s.owner == nil {
		return s.rail, s.cursor, "", s.Styles()["cursor"]
	}
	styles := s.owner.Styles()
	if s.vertical {
		return s.owner.frame.ScrollbarY[0], s.owner.frame.ScrollbarY[1], styles["frame"], styles["scrollbar_y"]
	}
	return s.owner.frame.ScrollbarX[0], s.owner.frame.ScrollbarX[1], styles["frame"], styles["scrollbar_x"]
}

// Content implements Widget.
func (s *Slider) Content() ([]string, error) {
	length := s.length()
	size := min(max(s.cursorSize, 1), length)
	start := int(math.Round(s.value * float64(length-size)))

	rail, cursor, railStyle, cursorStyle := s.glyphs()
	cells := make([]string, length)
	for i := range cells {
		if i >= start && i < start+size {
			cells[i] = "[" + cursorStyle + "]" + cursor + "[/]"
		} else {
			cells[i] = "[" + railStyle + "]" + rail + "[/]"
		}
	}
	if s.vertical {
		return cells, nil
	}
	return []string{strings.Join(cells, "")}, nil
}

func init() {
	RegisterType(TypeRegistration{
		Name:  "Slider",
		Rules: sliderRules,
		New:   func() Widget { return NewSlider() },
	})
	RegisterType(TypeRegistration{
		Name:  "VerticalSlider",
		Rules: sliderRules,
		New:   func() Widget { return NewVerticalSlider() },
	})
}
