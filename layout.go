// layout.go re-exports layout types from internal/layout.
// Any changes to internal/layout types must be mirrored here.
package celadon

import "github.com/celadon-tui/celadon/internal/layout"

// Direction specifies the axis a container lays its children out on.
type Direction = layout.Direction

const (
	Vertical   = layout.Vertical
	Horizontal = layout.Horizontal
)

// Alignment places content along one axis.
type Alignment = layout.Alignment

const (
	AlignStart  = layout.AlignStart
	AlignCenter = layout.AlignCenter
	AlignEnd    = layout.AlignEnd
)

// Overflow specifies what happens when content exceeds a widget.
type Overflow = layout.Overflow

const (
	OverflowHide   = layout.OverflowHide
	OverflowScroll = layout.OverflowScroll
	OverflowAuto   = layout.OverflowAuto
)

// Dimension is the requested size of a widget along one axis.
type Dimension = layout.Dimension

// Point is a terminal position or a pair of per-axis values.
type Point = layout.Point

// Rect represents a rectangle with position and dimensions.
type Rect = layout.Rect

// Fixed returns a Dimension of exactly n cells.
func Fixed(n int) Dimension { return layout.Fixed(n) }

// Fill returns a Dimension sharing leftover space with flexible siblings.
func Fill() Dimension { return layout.Fill() }

// FillRatio returns a Dimension taking ratio of the available space.
func FillRatio(ratio float64) Dimension { return layout.FillRatio(ratio) }

// Shrink returns a Dimension sized to fit the widget's content.
func Shrink() Dimension { return layout.Shrink() }

// ParseDimension parses the rule form of a dimension.
func ParseDimension(s string) (Dimension, error) { return layout.ParseDimension(s) }
