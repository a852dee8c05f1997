package celadon

import (
	"errors"
	"testing"
)

func TestFrame_Dimensions(t *testing.T) {
	type tc struct {
		name   string
		width  int
		height int
	}

	tests := map[string]tc{
		"light":         {name: "light", width: 2, height: 2},
		"padded":        {name: "Padded", width: 2, height: 2},
		"frameless":     {name: "frameless", width: 0, height: 0},
		"lightvertical": {name: "LightVertical", width: 2, height: 0},
		"ascii":         {name: "ASCII_X", width: 2, height: 2},
		"vertical outer": {name: "verticalouter", width: 2, height: 2},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			f, err := GetFrame(tt.name)
			if err != nil {
				t.Fatalf("GetFrame(%q) error = %v", tt.name, err)
			}
			if f.Width() != tt.width {
				t.Errorf("Width() = %d, want %d", f.Width(), tt.width)
			}
			if f.Height() != tt.height {
				t.Errorf("Height() = %d, want %d", f.Height(), tt.height)
			}
		})
	}
}

func TestGetFrame(t *testing.T) {
	heavy, err := GetFrame("HEAVY")
	if err != nil {
		t.Fatalf("GetFrame(HEAVY) error = %v", err)
	}
	if heavy.Borders != [4]string{"┃", "━", "┃", "━"} {
		t.Errorf("heavy borders = %q", heavy.Borders)
	}
	if heavy.Corners != [4]string{"┏", "┓", "┛", "┗"} {
		t.Errorf("heavy corners = %q", heavy.Corners)
	}

	empty, err := GetFrame("")
	if err != nil || empty.Name != "Frameless" {
		t.Errorf("GetFrame(\"\") = %q, %v, want Frameless", empty.Name, err)
	}

	if _, err := GetFrame("wobbly"); !errors.Is(err, ErrValue) {
		t.Errorf("GetFrame(wobbly) error = %v, want ErrValue", err)
	}

	for _, name := range FrameNames() {
		if _, err := GetFrame(name); err != nil {
			t.Errorf("GetFrame(%q) error = %v", name, err)
		}
	}
}

func TestComposeFrame(t *testing.T) {
	heavy, _ := GetFrame("heavy")
	none, _ := GetFrame("frameless")

	f := ComposeFrame([4]Frame{heavy, none, heavy, none})
	if f.Borders != [4]string{"┃", "", "┃", ""} {
		t.Errorf("composed borders = %q", f.Borders)
	}
	if f.Width() != 2 || f.Height() != 0 {
		t.Errorf("composed size = %dx%d, want 2x0", f.Width(), f.Height())
	}
	if f.Corners != [4]string{} {
		t.Errorf("composed corners = %q, want none", f.Corners)
	}
}

func TestFrame_CornerFallback(t *testing.T) {
	f := Frame{Borders: [4]string{"|", "-", "", "="}}
	if got := f.corner(0); got != "-" {
		t.Errorf("left-top = %q, want top border", got)
	}
	if got := f.corner(1); got != "" {
		t.Errorf("right-top = %q, want empty without a right border", got)
	}
	if got := f.corner(3); got != "=" {
		t.Errorf("left-bottom = %q, want bottom border", got)
	}
}
