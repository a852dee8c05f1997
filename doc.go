// Package celadon provides the styling and layout engine for terminal UIs.
//
// Widgets form a tree rooted at a Page. Their look and size come from rules:
// CSS-like selectors such as "Button.primary/hover" mapped to attributes
// (width, frame, alignment) and style keys. Each widget carries a small state
// machine (idle, hover, selected, active, disabled, plus scrolling substates)
// whose current state takes part in selector matching, so rules react to
// interaction without widget code doing any styling itself.
//
// Containers (Tower, Row) place their children with fixed, fill and shrink
// sizing, gaps, alignment, clipping and scrollbars. An Application drives the
// loop: it reads terminal events, routes them through the widget tree, applies
// the rule cascade and draws the result.
package celadon
