package layout

import "fmt"

// Direction specifies the main axis for laying out children.
type Direction uint8

const (
	Vertical   Direction = iota // Children laid out top-to-bottom
	Horizontal                  // Children laid out left-to-right
)

// Axis returns 0 for Horizontal and 1 for Vertical.
func (d Direction) Axis() int {
	if d == Horizontal {
		return 0
	}
	return 1
}

func (d Direction) String() string {
	if d == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// ParseDirection parses "horizontal" or "vertical".
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "horizontal":
		return Horizontal, nil
	case "vertical":
		return Vertical, nil
	}
	return 0, fmt.Errorf("unknown direction %q", s)
}

// Alignment specifies where a box sits within spare space on one axis.
type Alignment uint8

const (
	AlignStart  Alignment = iota // Align to start of axis
	AlignCenter                  // Center on axis
	AlignEnd                     // Align to end of axis
)

func (a Alignment) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignEnd:
		return "end"
	}
	return "start"
}

// ParseAlignment parses "start", "center" or "end".
func ParseAlignment(s string) (Alignment, error) {
	switch s {
	case "start":
		return AlignStart, nil
	case "center":
		return AlignCenter, nil
	case "end":
		return AlignEnd, nil
	}
	return 0, fmt.Errorf("unknown alignment %q", s)
}

// Align returns the offset of a box inside available spare cells, along
// with the remainder that centering could not split evenly. The remainder
// is already included in the offset.
func Align(a Alignment, available int) (offset, extra int) {
	if available <= 0 {
		return 0, 0
	}
	switch a {
	case AlignCenter:
		offset, extra = available/2, available%2
		return offset + extra, extra
	case AlignEnd:
		return available, 0
	}
	return 0, 0
}

// Overflow specifies what happens when content exceeds a box on one axis.
type Overflow uint8

const (
	OverflowHide   Overflow = iota // Content is cut off
	OverflowScroll                 // A scrollbar is always shown
	OverflowAuto                   // A scrollbar is shown when content is larger
)

func (o Overflow) String() string {
	switch o {
	case OverflowScroll:
		return "scroll"
	case OverflowAuto:
		return "auto"
	}
	return "hide"
}

// ParseOverflow parses "hide", "scroll" or "auto".
func ParseOverflow(s string) (Overflow, error) {
	switch s {
	case "hide":
		return OverflowHide, nil
	case "scroll":
		return OverflowScroll, nil
	case "auto":
		return OverflowAuto, nil
	}
	return 0, fmt.Errorf("unknown overflow %q", s)
}

// ShowsScrollbar reports whether a scrollbar is drawn for content of size
// virtual inside a viewport of size visible.
func (o Overflow) ShowsScrollbar(virtual, visible int) bool {
	switch o {
	case OverflowScroll:
		return true
	case OverflowAuto:
		return virtual > visible
	}
	return false
}
