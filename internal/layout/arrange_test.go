package layout

import "testing"

func TestArrange_Positions(t *testing.T) {
	type tc struct {
		flow      Flow
		origin    Point
		nodes     []*testNode
		positions []Point
		sizes     []Point
		extent    Point
	}

	tests := map[string]tc{
		"fixed child starts at origin": {
			flow:      Flow{Direction: Vertical, Gap: Fill(), Width: 30, Height: 10},
			origin:    Point{X: 2, Y: 3},
			nodes:     []*testNode{newTestNode(Fixed(10), Fixed(1))},
			positions: []Point{{X: 2, Y: 3}},
			sizes:     []Point{{X: 10, Y: 1}},
			extent:    Point{X: 10, Y: 1},
		},
		"two fills split height": {
			flow:      Flow{Direction: Vertical, Gap: Fill(), Width: 30, Height: 10},
			nodes:     []*testNode{newTestNode(Fill(), Fill()), newTestNode(Fill(), Fill())},
			positions: []Point{{X: 0, Y: 0}, {X: 0, Y: 5}},
			sizes:     []Point{{X: 30, Y: 5}, {X: 30, Y: 5}},
			extent:    Point{X: 30, Y: 10},
		},
		"three fills give remainder to the first": {
			flow: Flow{Direction: Vertical, Gap: Fill(), Width: 4, Height: 10},
			nodes: []*testNode{
				newTestNode(Fill(), Fill()),
				newTestNode(Fill(), Fill()),
				newTestNode(Fill(), Fill()),
			},
			positions: []Point{{X: 0, Y: 0}, {X: 0, Y: 4}, {X: 0, Y: 7}},
			sizes:     []Point{{X: 4, Y: 4}, {X: 4, Y: 3}, {X: 4, Y: 3}},
			extent:    Point{X: 4, Y: 10},
		},
		"ratio children reserve their fraction": {
			flow: Flow{Direction: Horizontal, Gap: Fill(), Width: 10, Height: 1},
			nodes: []*testNode{
				newTestNode(FillRatio(0.3), Fixed(1)),
				newTestNode(FillRatio(0.7), Fixed(1)),
			},
			positions: []Point{{X: 0, Y: 0}, {X: 3, Y: 0}},
			sizes:     []Point{{X: 3, Y: 1}, {X: 7, Y: 1}},
			extent:    Point{X: 10, Y: 1},
		},
		"leftover space becomes even slots": {
			flow: Flow{Direction: Vertical, Gap: Fill(), Width: 30, Height: 10},
			nodes: []*testNode{
				newTestNode(Fixed(10), Fixed(1)),
				newTestNode(Fixed(10), Fixed(1)),
			},
			positions: []Point{{X: 0, Y: 0}, {X: 0, Y: 5}},
			sizes:     []Point{{X: 10, Y: 1}, {X: 10, Y: 1}},
			extent:    Point{X: 10, Y: 6},
		},
		"gap remainder goes to the first slots": {
			flow: Flow{Direction: Vertical, Gap: Fill(), Width: 1, Height: 10},
			nodes: []*testNode{
				newTestNode(Fixed(1), Fixed(1)),
				newTestNode(Fixed(1), Fixed(1)),
				newTestNode(Fixed(1), Fixed(1)),
			},
			positions: []Point{{X: 0, Y: 0}, {X: 0, Y: 4}, {X: 0, Y: 7}},
			sizes:     []Point{{X: 1, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 1}},
			extent:    Point{X: 1, Y: 8},
		},
		"center alignment": {
			flow: Flow{
				Direction: Vertical,
				Alignment: [2]Alignment{AlignCenter, AlignCenter},
				Gap:       Fill(),
				Width:     30,
				Height:    10,
			},
			nodes:     []*testNode{newTestNode(Fixed(10), Fixed(1))},
			positions: []Point{{X: 10, Y: 5}},
			sizes:     []Point{{X: 10, Y: 1}},
			extent:    Point{X: 20, Y: 6},
		},
		"end alignment in a row": {
			flow: Flow{
				Direction: Horizontal,
				Alignment: [2]Alignment{AlignEnd, AlignEnd},
				Gap:       Fill(),
				Width:     20,
				Height:    5,
			},
			nodes:     []*testNode{newTestNode(Fixed(4), Fixed(1))},
			positions: []Point{{X: 16, Y: 4}},
			sizes:     []Point{{X: 4, Y: 1}},
			extent:    Point{X: 20, Y: 5},
		},
		"fixed gap survives fill children": {
			flow: Flow{Direction: Horizontal, Gap: Fixed(1), Width: 20, Height: 1},
			nodes: []*testNode{
				newTestNode(Fixed(5), Fixed(1)),
				newTestNode(Fill(), Fixed(1)),
				newTestNode(Fixed(5), Fixed(1)),
			},
			positions: []Point{{X: 0, Y: 0}, {X: 6, Y: 0}, {X: 15, Y: 0}},
			sizes:     []Point{{X: 5, Y: 1}, {X: 8, Y: 1}, {X: 5, Y: 1}},
			extent:    Point{X: 20, Y: 1},
		},
		"oversized gap falls back": {
			flow: Flow{Direction: Horizontal, Gap: Fixed(2), FallbackGap: 0, Width: 10, Height: 1},
			nodes: []*testNode{
				newTestNode(Fixed(3), Fixed(1)),
				newTestNode(Fixed(3), Fixed(1)),
				newTestNode(Fixed(3), Fixed(1)),
			},
			positions: []Point{{X: 0, Y: 0}, {X: 3, Y: 0}, {X: 6, Y: 0}},
			sizes:     []Point{{X: 3, Y: 1}, {X: 3, Y: 1}, {X: 3, Y: 1}},
			extent:    Point{X: 9, Y: 1},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			extent, err := Arrange(tt.flow, tt.origin, items(tt.nodes...))
			if err != nil {
				t.Fatalf("Arrange() error = %v", err)
			}
			for i, n := range tt.nodes {
				if n.pos != tt.positions[i] {
					t.Errorf("node %d position = %+v, want %+v", i, n.pos, tt.positions[i])
				}
				if n.size != tt.sizes[i] {
					t.Errorf("node %d size = %+v, want %+v", i, n.size, tt.sizes[i])
				}
			}
			if extent != tt.extent {
				t.Errorf("extent = %+v, want %+v", extent, tt.extent)
			}
		})
	}
}

func TestArrange_StaticItemsStayOutOfFlow(t *testing.T) {
	static := newTestNode(Fixed(3), Fixed(1))
	static.static = true
	flowing := newTestNode(Fixed(3), Fixed(1))

	_, err := Arrange(Flow{Direction: Vertical, Gap: Fill(), Width: 10, Height: 10},
		Point{X: 5, Y: 5}, items(static, flowing))
	if err != nil {
		t.Fatalf("Arrange() error = %v", err)
	}

	if static.size != (Point{X: 3, Y: 1}) {
		t.Errorf("static size = %+v, want computed {3 1}", static.size)
	}
	if static.pos != (Point{}) {
		t.Errorf("static item was moved to %+v", static.pos)
	}
	if flowing.pos != (Point{X: 5, Y: 5}) {
		t.Errorf("flowing position = %+v, want {5 5}", flowing.pos)
	}
}

func TestArrange_MainAxisConservation(t *testing.T) {
	for total := 1; total <= 40; total++ {
		for count := 1; count <= 5; count++ {
			nodes := make([]*testNode, count)
			for i := range nodes {
				nodes[i] = newTestNode(Fixed(1), Fixed(1))
			}
			flow := Flow{Direction: Horizontal, Gap: Fill(), Width: total, Height: 1}
			if _, err := Arrange(flow, Point{}, items(nodes...)); err != nil {
				t.Fatalf("Arrange() error = %v", err)
			}
			if count > total {
				continue
			}
			last := nodes[count-1]
			slotEnd := total
			if count > 1 {
				// Each slot runs from one child's start to the next.
				prev := nodes[count-2]
				if last.pos.X <= prev.pos.X {
					t.Fatalf("total=%d count=%d: children overlap", total, count)
				}
			}
			if last.pos.X+1 > slotEnd {
				t.Errorf("total=%d count=%d: last child ends at %d past %d", total, count, last.pos.X+1, slotEnd)
			}
		}
	}
}

func TestGap(t *testing.T) {
	type tc struct {
		requested Dimension
		available int
		count     int
		gap       int
		extra     int
	}

	tests := map[string]tc{
		"auto splits evenly":  {requested: Fill(), available: 9, count: 3, gap: 3},
		"auto with remainder": {requested: Fill(), available: 10, count: 3, gap: 3, extra: 1},
		"fixed ignores space": {requested: Fixed(2), available: 100, count: 3, gap: 2},
		"ratio of share":      {requested: FillRatio(0.5), available: 12, count: 3, gap: 2},
		"no children":         {requested: Fill(), available: 12, count: 0},
		"negative space":      {requested: Fill(), available: -4, count: 2},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			gap, extra := Gap(tt.requested, tt.available, tt.count)
			if gap != tt.gap || extra != tt.extra {
				t.Errorf("Gap() = (%d, %d), want (%d, %d)", gap, extra, tt.gap, tt.extra)
			}
		})
	}
}
