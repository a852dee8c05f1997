package layout

// Flow describes the box children are arranged in.
type Flow struct {
	Direction Direction

	// Alignment holds the horizontal and vertical alignment of children
	// inside their slots.
	Alignment [2]Alignment

	// Gap is the requested space after each child. A flexible Fill gap
	// spreads leftover space evenly; FillRatio takes a fraction of the
	// per-child share; Fixed asks for exact cells.
	Gap Dimension

	// FallbackGap replaces a non-fixed Gap when fill children consume the
	// leftover space, and any Gap that would not fit.
	FallbackGap int

	// Width and Height are the inner size available to children.
	Width, Height int
}

// Arrange computes every item's size and places the items one after another
// along the flow's main axis, starting at origin. It returns the extent of
// the placed items measured from origin, which is the virtual content size of
// the flow.
func Arrange(flow Flow, origin Point, items []Item) (Point, error) {
	horizontal := flow.Direction == Horizontal
	available := flow.Height
	if horizontal {
		available = flow.Width
	}

	count, fills := 0, 0
	for _, it := range items {
		if !it.IsStatic() {
			count++
		}
		if isFlexible(it, horizontal) {
			fills++
			continue
		}
		if err := it.Compute(flow.Width, flow.Height); err != nil {
			return Point{}, err
		}
		if it.IsStatic() {
			continue
		}
		available -= mainSize(it, horizontal)
	}

	gap, gapExtra := flow.FallbackGap, 0
	if fills > 0 && flow.Gap.Mode == ModeFixed {
		gap = flow.Gap.Cells
	}
	if fills == 0 && count > 0 {
		gap, gapExtra = Gap(flow.Gap, available, count)
		if count > 1 && gap*(count-1) >= available {
			gap, gapExtra = flow.FallbackGap, 0
		}
	}

	if count > 0 {
		available -= gap*(count-1) + gapExtra
	}
	fillSize, fillExtra := 0, 0
	if fills > 0 && available > 0 {
		fillSize, fillExtra = available/fills, available%fills
	}

	cursor := origin
	var extent Point
	for _, it := range items {
		if isFlexible(it, horizontal) {
			share := fillSize
			if fillExtra > 0 {
				share++
				fillExtra--
			}
			var err error
			if horizontal {
				err = it.Compute(share, flow.Height)
			} else {
				err = it.Compute(flow.Width, share)
			}
			if err != nil {
				return Point{}, err
			}
		}
		if it.IsStatic() {
			continue
		}

		slot := gap
		if gapExtra > 0 {
			slot++
			gapExtra--
		}

		w, h := it.Size()
		var x, y int
		if horizontal {
			x, _ = Align(flow.Alignment[0], slot)
			y, _ = Align(flow.Alignment[1], flow.Height-h)
		} else {
			x, _ = Align(flow.Alignment[0], flow.Width-w)
			y, _ = Align(flow.Alignment[1], slot)
		}
		pos := cursor.Add(Point{X: x, Y: y})
		it.MoveTo(pos.X, pos.Y)

		extent.X = max(extent.X, pos.X-origin.X+w)
		extent.Y = max(extent.Y, pos.Y-origin.Y+h)
		if horizontal {
			cursor.X += w + slot
		} else {
			cursor.Y += h + slot
		}
	}
	return extent, nil
}

// Gap resolves a requested gap against the leftover space shared by count
// children. It returns the gap after each child and how many children get
// one extra cell.
func Gap(d Dimension, available, count int) (gap, extra int) {
	if count <= 0 {
		return 0, 0
	}
	perChild, rem := 0, 0
	if available > 0 {
		perChild, rem = available/count, available%count
	}
	switch {
	case d.Mode == ModeFixed:
		return d.Cells, 0
	case d.IsFlexible():
		return perChild + d.Offset, rem
	}
	return d.Resolve(perChild, 0), 0
}

func isFlexible(it Item, horizontal bool) bool {
	w, h := it.Dimensions()
	if horizontal {
		return w.IsFlexible()
	}
	return h.IsFlexible()
}

func mainSize(it Item, horizontal bool) int {
	w, h := it.Size()
	if horizontal {
		return w
	}
	return h
}
