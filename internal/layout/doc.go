// Package layout implements the box-layout arithmetic behind containers.
//
// Children are placed one after another along a main axis. Fixed and shrink
// sized children keep their computed size, bare fill children share whatever
// space is left, and the remaining slack becomes the gap between children.
// Alignment then decides where each child sits inside its slot.
//
// The package is pure: it knows nothing about widgets, styles or terminals.
// The root celadon package adapts widgets to [Item] and calls [Arrange].
package layout
