package celadon

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/lucasb-eyer/go-colorful"
)

// PaletteKeys are the color names every palette defines.
var PaletteKeys = []string{
	"text", "primary", "secondary", "accent",
	"panel1", "panel2", "panel3",
	"success", "warning", "error",
}

// PaletteRegistry stores named colors under namespaces, such as
// "main.primary". Lookups accept a shade suffix: "main.panel1-3" is panel1
// darkened three steps.
type PaletteRegistry struct {
	mu     sync.RWMutex
	colors map[string]Color
	parent *PaletteRegistry
}

// NewPaletteRegistry returns an empty registry.
func NewPaletteRegistry() *PaletteRegistry {
	return &PaletteRegistry{colors: make(map[string]Color)}
}

// Child returns an empty registry that falls back to r for names it does
// not define. Pages register their palettes in a child of the
// application's registry.
func (r *PaletteRegistry) Child() *PaletteRegistry {
	return &PaletteRegistry{colors: make(map[string]Color), parent: r}
}

// SetParent changes the registry lookups fall back to.
func (r *PaletteRegistry) SetParent(parent *PaletteRegistry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.parent = parent
}

// DefaultPalettes is the registry widgets resolve palette references against.
// It starts with the "main" and "ui" namespaces.
var DefaultPalettes = func() *PaletteRegistry {
	r := NewPaletteRegistry()
	p, err := NewPalette(map[string]string{"primary": "#AFE1AF"})
	if err != nil {
		panic(err)
	}
	p["primary"] = p["primary"].Shade(-2)
	r.Register("main", p)
	r.Register("ui", p)
	return r
}()

// NewPalette derives a full palette from the given colors. Only "primary"
// is required; missing keys are derived from it.
func NewPalette(colors map[string]string) (map[string]Color, error) {
	parsed := make(map[string]Color, len(colors))
	for name, value := range colors {
		c, err := HexColor(value)
		if err != nil {
			return nil, fmt.Errorf("palette color %q: %w", name, err)
		}
		parsed[name] = c
	}
	primary, ok := parsed["primary"]
	if !ok {
		return nil, fmt.Errorf("%w: palette needs a primary color", ErrValue)
	}

	h, c, _ := primary.toColorful().Hcl()
	derived := map[string]Color{
		"text":      fromColorful(colorful.Hcl(h, 0.02, 0.92)),
		"primary":   primary,
		"secondary": fromColorful(colorful.Hcl(h+40, c, 0.7).Clamped()),
		"accent":    fromColorful(colorful.Hcl(h+180, c, 0.7).Clamped()),
		"panel1":    fromColorful(colorful.Hcl(h, c*0.15, 0.25).Clamped()),
		"panel2":    fromColorful(colorful.Hcl(h, c*0.15, 0.3).Clamped()),
		"panel3":    fromColorful(colorful.Hcl(h, c*0.15, 0.35).Clamped()),
		"success":   RGBColor(0x5c, 0xb8, 0x5c),
		"warning":   RGBColor(0xf0, 0xad, 0x4e),
		"error":     RGBColor(0xd9, 0x53, 0x4f),
	}
	for name, col := range parsed {
		derived[name] = col
	}
	return derived, nil
}

// Register stores colors under namespace, replacing existing entries with
// the same name.
func (r *PaletteRegistry) Register(namespace string, colors map[string]Color) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for name, c := range colors {
		r.colors[namespace+"."+name] = c
	}
}

// Namespaces returns the registered namespaces in sorted order.
func (r *PaletteRegistry) Namespaces() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	seen := make(map[string]bool)
	for key := range r.colors {
		ns, _, _ := strings.Cut(key, ".")
		seen[ns] = true
	}
	if r.parent != nil {
		for _, ns := range r.parent.Namespaces() {
			seen[ns] = true
		}
	}
	out := make([]string, 0, len(seen))
	for ns := range seen {
		out = append(out, ns)
	}
	sort.Strings(out)
	return out
}

// Lookup resolves a reference such as "main.primary" or "main.panel1+2".
func (r *PaletteRegistry) Lookup(ref string) (Color, bool) {
	name, steps := splitShade(ref)

	r.mu.RLock()
	c, ok := r.colors[name]
	parent := r.parent
	r.mu.RUnlock()
	if !ok {
		if parent != nil {
			return parent.Lookup(ref)
		}
		return Color{}, false
	}
	return c.Shade(steps), true
}

// splitShade separates a trailing "+N" or "-N" from a palette reference.
func splitShade(ref string) (string, int) {
	i := strings.LastIndexAny(ref, "+-")
	if i <= 0 || i == len(ref)-1 {
		return ref, 0
	}
	n, err := strconv.Atoi(ref[i:])
	if err != nil {
		return ref, 0
	}
	return ref[:i], n
}
