package bboxdist

// Position is where the second bounding box lies relative to the first one
type Position uint16

const (
	// PositionOverlap means boxes share at least one point
	PositionOverlap Position = iota
	// PositionTopLeft means second box is above and to the left
	PositionTopLeft
	// PositionTopRight means second box is above and to the right
	PositionTopRight
	// PositionBottomRight means second box is below and to the right
	PositionBottomRight
	// PositionBottomLeft means second box is below and to the left
	PositionBottomLeft
	// PositionBottom means second box is below, horizontal projections intersect
	PositionBottom
	// PositionTop means second box is above, horizontal projections intersect
	PositionTop
	// PositionLeft means second box is to the left, vertical projections intersect
	PositionLeft
	// PositionRight means second box is to the right, vertical projections intersect
	PositionRight
)

func (p Position) String() string {
	switch p {
	case PositionOverlap:
		return "overlap"
	case PositionTopLeft:
		return "top-left"
	case PositionTopRight:
		return "top-right"
	case PositionBottomRight:
		return "bottom-right"
	case PositionBottomLeft:
		return "bottom-left"
	case PositionBottom:
		return "bottom"
	case PositionTop:
		return "top"
	case PositionLeft:
		return "left"
	case PositionRight:
		return "right"
	default:
		return "unknown"
	}
}

// IsDiagonal reports whether boxes are separated along both axes
func (p Position) IsDiagonal() bool {
	switch p {
	case PositionTopLeft, PositionTopRight, PositionBottomRight, PositionBottomLeft:
		return true
	default:
		return false
	}
}

// relation holds the four raw predicates of the second box against the first one
type relation struct {
	left   bool
	right  bool
	top    bool
	bottom bool
}

func relate(a, b BoundingBox) relation {
	return relation{
		left:   b.XRight < a.XLeft,
		right:  b.XLeft > a.XRight,
		top:    b.YBottom > a.YTop,
		bottom: b.YTop < a.YBottom,
	}
}

// positionCases is evaluated in order, first match wins.
// Diagonal cases go before single-axis ones, overlap is the fallback.
var positionCases = []struct {
	position Position
	match    func(r relation) bool
}{
	{PositionTopLeft, func(r relation) bool { return r.top && r.left }},
	{PositionTopRight, func(r relation) bool { return r.top && r.right }},
	{PositionBottomRight, func(r relation) bool { return r.bottom && r.right }},
	{PositionBottomLeft, func(r relation) bool { return r.bottom && r.left }},
	{PositionBottom, func(r relation) bool { return r.bottom }},
	{PositionTop, func(r relation) bool { return r.top }},
	{PositionLeft, func(r relation) bool { return r.left }},
	{PositionRight, func(r relation) bool { return r.right }},
}

// Classify returns position of box b relative to box a.
// It panics when predicates contradict each other (e.g. b is both left and right of a): this
// is only possible for malformed boxes such as XLeft > XRight.
func Classify(a, b BoundingBox) Position {
	r := relate(a, b)
	if r.left && r.right {
		panic("bounding box can't be both on the left and on the right of another one")
	}
	if r.top && r.bottom {
		panic("bounding box can't be both above and below another one")
	}
	for _, c := range positionCases {
		if c.match(r) {
			return c.position
		}
	}
	return PositionOverlap
}
