package layout

type testNode struct {
	width, height Dimension
	measured      Point
	static        bool

	size Point
	pos  Point
}

func newTestNode(width, height Dimension) *testNode {
	return &testNode{width: width, height: height}
}

func (n *testNode) Dimensions() (Dimension, Dimension) { return n.width, n.height }

func (n *testNode) Compute(availableWidth, availableHeight int) error {
	n.size = Point{
		X: n.width.Resolve(availableWidth, n.measured.X),
		Y: n.height.Resolve(availableHeight, n.measured.Y),
	}
	return nil
}

func (n *testNode) Size() (int, int) { return n.size.X, n.size.Y }

func (n *testNode) MoveTo(x, y int) { n.pos = Point{X: x, Y: y} }

func (n *testNode) IsStatic() bool { return n.static }

func items(nodes ...*testNode) []Item {
	out := make([]Item, len(nodes))
	for i, n := range nodes {
		out[i] = n
	}
	return out
}
