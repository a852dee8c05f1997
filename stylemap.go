package celadon

import "strings"

// StyleMap holds the style markup of a widget per state. Keys of the outer
// map are primary states ("hover"), substates ("/scrolling_x") or combined
// states ("hover/scrolling_x"); keys of the inner maps are style keys such as
// "fill", "frame" or "content".
type StyleMap map[string]map[string]string

// Clone returns a deep copy of s.
func (s StyleMap) Clone() StyleMap {
	out := make(StyleMap, len(s))
	for state, styles := range s {
		out[state] = mergeStrings(nil, styles)
	}
	return out
}

// Merge returns a new StyleMap with other deep-merged over s. Neither input
// is modified.
func (s StyleMap) Merge(other StyleMap) StyleMap {
	out := s.Clone()
	for state, styles := range other {
		out[state] = mergeStrings(out[state], styles)
	}
	return out
}

// Lookup returns the styles for a combined state. The primary state's bucket
// is overlaid with the substate's bucket and then with the bucket stored
// under the combined state itself.
func (s StyleMap) Lookup(state string) map[string]string {
	primary, sub, hasSub := strings.Cut(state, "/")

	out := mergeStrings(nil, s[primary])
	if hasSub {
		out = mergeStrings(out, s["/"+sub])
		out = mergeStrings(out, s[state])
	}
	return out
}

func defaultStyleMap() StyleMap {
	base := map[string]string{
		"fill":        "@.panel1-3",
		"frame":       ".panel1+1",
		"content":     ".text-1",
		"scrollbar_x": ".panel1+3",
		"scrollbar_y": ".panel1+3",
	}
	selected := mergeStrings(nil, base)
	selected["content"] = ".text+1"

	return StyleMap{
		StateIdle:     base,
		StateHover:    mergeStrings(nil, base),
		StateSelected: selected,
		StateActive:   mergeStrings(nil, base),
		StateDisabled: {
			"fill":        "",
			"frame":       ".panel1",
			"content":     ".panel1+2",
			"scrollbar_x": ".panel1",
			"scrollbar_y": ".panel1",
		},
		"/scrolling_x": {"scrollbar_x": ".primary"},
		"/scrolling_y": {"scrollbar_y": ".primary"},
	}
}
