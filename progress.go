package celadon

import (
	"fmt"
	"math"
	"strings"

	"github.com/mattn/go-runewidth"
)

const progressRules = `
Progress:
    height: 1

    frame_style: '.panel1'
    content_style: '.primary'

    .minimal:
        show_percentage: false

    .tall:
        rail: '█'
        filled: '█'

        percentage_style: '@.primary .panel1'
        frame_style: '.panel1-1'
`

// Progress is a bar showing a value between 0 and 1. It is never
// selected. The filled part uses the content style and the rail uses the
// frame style.
type Progress struct {
	Base
	value          float64
	rail           string
	filled         string
	showPercentage bool
}

var _ Widget = (*Progress)(nil)

// NewProgress returns a progress bar at value.
func NewProgress(value float64, opts ...Option) *Progress {
	p := &Progress{rail: "─", filled: "━", showPercentage: true}
	p.Init(p, "Progress")
	p.styles = p.styles.Merge(statesWith(p.machine, "percentage", ""))
	p.SetValue(value)
	p.Apply(opts...)

	p.DefineAttr("rail", func(v any) error {
		return setGlyph(&p.rail, v)
	})
	p.DefineAttr("filled", func(v any) error {
		return setGlyph(&p.filled, v)
	})
	p.DefineAttr("show_percentage", func(v any) error {
		show, ok := v.(bool)
		if !ok {
			return fmt.Errorf("%w: expected bool, got %T", ErrValue, v)
		}
		p.showPercentage = show
		return nil
	})
	p.DefineAttr("value", func(v any) error {
		switch n := v.(type) {
		case float64:
			p.SetValue(n)
		case int:
			p.SetValue(float64(n))
		default:
			return fmt.Errorf("%w: expected number, got %T", ErrValue, v)
		}
		return nil
	})
	return p
}

// Value returns the progress between 0 and 1.
func (p *Progress) Value() float64 { return p.value }

// SetValue sets the progress, clamped to [0, 1].
func (p *Progress) SetValue(v float64) { p.value = min(max(v, 0), 1) }

// SelectableCount implements Widget.
func (p *Progress) SelectableCount() int { return 0 }

// ShrinkHeight implements Widget.
func (p *Progress) ShrinkHeight() (int, error) { return 1, nil }

// Content implements Widget.
func (p *Progress) Content() ([]string, error) {
	width, _ := p.viewSize()
	filled := int(math.Round(float64(width) * p.value))
	styles := p.Styles()

	label := ""
	if p.showPercentage {
		label = fmt.Sprintf(" %.0f%% ", p.value*100)
		if runewidth.StringWidth(label) > width {
			label = ""
		}
	}
	labelWidth := runewidth.StringWidth(label)
	filled = min(filled, width-labelWidth)
	rail := max(width-filled-labelWidth, 0)

	var b strings.Builder
	b.WriteString(strings.Repeat(p.filled, filled))
	if label != "" {
		b.WriteString("[" + styles["percentage"] + "]" + label + "[/]")
	}
	b.WriteString("[" + styles["frame"] + "]" + strings.Repeat(p.rail, rail) + "[/]")
	return []string{b.String()}, nil
}

func init() {
	RegisterType(TypeRegistration{
		Name:  "Progress",
		Rules: progressRules,
		New:   func() Widget { return NewProgress(0) },
	})
}
