package celadon

import (
	"slices"
	"testing"
)

func TestNav_FollowsPages(t *testing.T) {
	app, _ := newTestApp(t,
		MustNewPage(nil, WithRoute("/b"), WithTitle("Bravo")),
		MustNewPage(nil, WithTitle("Home")),
	)
	nav := NewNav(app)
	if err := app.AddPage(MustNewPage(nil, WithRoute("/a"))); err != nil {
		t.Fatalf("AddPage() error = %v", err)
	}

	var labels []string
	for _, child := range nav.Children() {
		labels = append(labels, child.(*Button).Label())
	}
	expected := []string{"Home", "/a", "Bravo"}
	if len(labels) != len(expected) {
		t.Fatalf("labels = %q, want %q", labels, expected)
	}
	for i := range expected {
		if labels[i] != expected[i] {
			t.Errorf("labels = %q, want %q", labels, expected)
			break
		}
	}
}

func TestNav_MarksCurrentPage(t *testing.T) {
	app, _ := newTestApp(t,
		MustNewPage(nil, WithTitle("Home")),
		MustNewPage(nil, WithRoute("/about"), WithTitle("About")),
	)
	nav := NewNav(app)

	type tc struct {
		route    string
		expected map[string]bool
	}

	tests := map[string]tc{
		"home":  {route: "/", expected: map[string]bool{"/": true, "/about": false}},
		"about": {route: "/about", expected: map[string]bool{"/": false, "/about": true}},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			nav.Button(tt.route).OnSubmit.Emit(nav.Button(tt.route))
			if app.CurrentPage().Route() != tt.route {
				t.Fatalf("CurrentPage() = %q, want %q", app.CurrentPage().Route(), tt.route)
			}
			for route, current := range tt.expected {
				if got := slices.Contains(nav.Button(route).Groups(), "current"); got != current {
					t.Errorf("button %s current = %v, want %v", route, got, current)
				}
			}
		})
	}
}
