package layout

// Item is anything that can be placed by [Arrange].
// The layout engine works entirely with this interface, so it can be tested
// without widgets.
type Item interface {
	// Dimensions returns the requested width and height.
	Dimensions() (width, height Dimension)

	// Compute resolves the requested dimensions against the available
	// space and stores the result as the item's size.
	Compute(availableWidth, availableHeight int) error

	// Size returns the size stored by the last Compute.
	Size() (width, height int)

	// MoveTo places the item's top-left corner.
	MoveTo(x, y int)

	// IsStatic reports whether the item is positioned outside the flow.
	// Static items are computed but neither placed nor counted.
	IsStatic() bool
}
