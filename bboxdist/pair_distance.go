package bboxdist

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Measurement is minimum distance between a pair of bounding boxes
type Measurement struct {
	// Distance in requested units. Zero for overlapping boxes
	Distance float64
	// Minimum distance vector from the first box to the second one. Nil for overlapping boxes
	Vector *Segment
	// Position of the second box relative to the first one
	Position Position
}

// PairDistance returns minimum distance between two bounding boxes.
//
// Distance is the length of a vector connecting the boxes. Horizontal ends of the vector are chosen
// by relative position of the boxes; vertical ends are always top edges of the boxes (a.YTop, b.YTop).
// Overlapping boxes give zero distance and no vector.
//
// With UnitReal the pixel distance is multiplied by the depth scale factor estimated from widths of
// objects (see WithWidths, defaults are 1). Image shape is only required for UnitReal.
// PairDistance panics for boxes with contradicting relative position (see Classify).
func PairDistance(a, b BoundingBox, shape ImageShape, opts ...Option) (Measurement, error) {
	o := newOptions(opts)
	if o.widths != nil && len(o.widths) != 2 {
		return Measurement{}, errors.Wrapf(ErrShapeMismatch, "expected 2 widths for a pair, got %d", len(o.widths))
	}
	if err := o.validateUnit(shape); err != nil {
		return Measurement{}, err
	}
	return pairDistance(a, b, shape, o.width(0), o.width(1), &o)
}

func pairDistance(a, b BoundingBox, shape ImageShape, widthA, widthB float64, o *options) (Measurement, error) {
	position := Classify(a, b)
	if o.verbose {
		o.logger.Debug("relative position",
			zap.Stringer("box_a", a),
			zap.Stringer("box_b", b),
			zap.Stringer("position", position),
		)
	}
	vector := minimumVector(position, a, b)
	if vector == nil {
		return Measurement{Position: position}, nil
	}
	// Vertical ends always go from top edge to top edge
	vector.Y1 = a.YTop
	vector.Y2 = b.YTop

	distance := vector.Length()
	if distance != 0 && o.unit == UnitReal {
		ds, err := EstimateDepthScale(a, b, widthA, widthB)
		if err != nil {
			return Measurement{}, errors.Wrap(err, "can't estimate depth scale")
		}
		if o.verbose {
			o.logger.Debug("depth scale",
				zap.Float64("apparent_width_a", a.ApparentWidth()),
				zap.Float64("apparent_width_b", b.ApparentWidth()),
				zap.Float64("row_a", ds.RowA),
				zap.Float64("row_b", ds.RowB),
				zap.Float64("scale_a", ds.ScaleA),
				zap.Float64("scale_b", ds.ScaleB),
				zap.Int("height", shape.Height),
			)
		}
		distance *= ds.Factor()
	}
	return Measurement{
		Distance: distance,
		Vector:   vector,
		Position: position,
	}, nil
}

// minimumVector returns vector connecting the boxes before vertical ends are replaced
func minimumVector(position Position, a, b BoundingBox) *Segment {
	switch position {
	case PositionTopLeft:
		return &Segment{X1: a.XLeft, Y1: a.YTop, X2: b.XRight, Y2: b.YBottom}
	case PositionTopRight:
		return &Segment{X1: a.XRight, Y1: a.YTop, X2: b.XLeft, Y2: b.YBottom}
	case PositionBottomRight:
		return &Segment{X1: a.XRight, Y1: a.YBottom, X2: b.XLeft, Y2: b.YTop}
	case PositionBottomLeft:
		return &Segment{X1: a.XLeft, Y1: a.YBottom, X2: b.XRight, Y2: b.YTop}
	case PositionBottom:
		xc := middleMean(a.XLeft, a.XRight, b.XLeft, b.XRight)
		return &Segment{X1: xc, Y1: a.YBottom, X2: xc, Y2: b.YTop}
	case PositionTop:
		xc := middleMean(a.XLeft, a.XRight, b.XLeft, b.XRight)
		return &Segment{X1: xc, Y1: a.YTop, X2: xc, Y2: b.YBottom}
	case PositionLeft:
		yc := middleMean(a.YBottom, a.YTop, b.YBottom, b.YTop)
		return &Segment{X1: a.XLeft, Y1: yc, X2: b.XRight, Y2: yc}
	case PositionRight:
		yc := middleMean(a.YBottom, a.YTop, b.YBottom, b.YTop)
		return &Segment{X1: a.XRight, Y1: yc, X2: b.XLeft, Y2: yc}
	default:
		return nil
	}
}
