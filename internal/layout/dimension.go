package layout

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Mode specifies how a Dimension is interpreted.
type Mode uint8

const (
	ModeFixed  Mode = iota // Absolute terminal cells
	ModeFill               // Share of the space given by the parent
	ModeShrink             // Size measured from content
)

// Dimension is the requested size of a box along one axis.
//
// A Fill dimension created by [Fill] is flexible: it competes with its
// siblings for the space left over after fixed children are placed.
// A Fill dimension created by [FillRatio] instead reserves a fraction of the
// full available space, the same way a fixed child reserves cells.
type Dimension struct {
	Mode   Mode
	Cells  int
	Ratio  float64
	Offset int

	explicit bool
}

// Fixed returns a Dimension of exactly n cells.
func Fixed(n int) Dimension {
	return Dimension{Mode: ModeFixed, Cells: n}
}

// Fill returns a flexible Dimension that takes an equal share of leftover space.
func Fill() Dimension {
	return Dimension{Mode: ModeFill, Ratio: 1}
}

// FillRatio returns a Dimension that takes ratio of the available space.
func FillRatio(ratio float64) Dimension {
	return Dimension{Mode: ModeFill, Ratio: ratio, explicit: true}
}

// Shrink returns a Dimension sized to fit the box's content.
func Shrink() Dimension {
	return Dimension{Mode: ModeShrink}
}

// WithOffset returns a copy of d that adds offset cells after resolution.
func (d Dimension) WithOffset(offset int) Dimension {
	d.Offset = offset
	return d
}

// IsFlexible reports whether d shares leftover space with its siblings.
func (d Dimension) IsFlexible() bool {
	return d.Mode == ModeFill && !d.explicit
}

// Resolve computes the size in cells given the available space. Shrink
// dimensions resolve to the measured content size.
func (d Dimension) Resolve(available, measured int) int {
	var n int
	switch d.Mode {
	case ModeFixed:
		n = d.Cells
	case ModeFill:
		n = int(math.Round(d.Ratio * float64(available)))
	case ModeShrink:
		n = measured
	}
	return n + d.Offset
}

// String formats d the way it is written in rule files.
func (d Dimension) String() string {
	var base string
	switch d.Mode {
	case ModeFixed:
		return strconv.Itoa(d.Cells + d.Offset)
	case ModeFill:
		if d.explicit {
			base = strconv.FormatFloat(d.Ratio, 'g', -1, 64)
		} else {
			base = "fill"
		}
	case ModeShrink:
		base = "shrink"
	}
	switch {
	case d.Offset > 0:
		return fmt.Sprintf("%s+%d", base, d.Offset)
	case d.Offset < 0:
		return fmt.Sprintf("%s%d", base, d.Offset)
	}
	return base
}

// ParseDimension parses the textual forms "fill", "shrink", "fill+N",
// "fill-N", "shrink+N", "shrink-N" and plain integers.
func ParseDimension(s string) (Dimension, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return Fixed(n), nil
	}

	var d Dimension
	var rest string
	switch {
	case strings.HasPrefix(s, "fill"):
		d, rest = Fill(), s[len("fill"):]
	case strings.HasPrefix(s, "shrink"):
		d, rest = Shrink(), s[len("shrink"):]
	default:
		return Dimension{}, fmt.Errorf("unknown dimension %q", s)
	}
	if rest == "" {
		return d, nil
	}
	if rest[0] != '+' && rest[0] != '-' {
		return Dimension{}, fmt.Errorf("invalid dimension offset in %q", s)
	}
	offset, err := strconv.Atoi(rest)
	if err != nil {
		return Dimension{}, fmt.Errorf("invalid dimension offset in %q: %w", s, err)
	}
	return d.WithOffset(offset), nil
}
