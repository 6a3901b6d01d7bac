package bboxdist

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// DepthScale is pixel to real units conversion estimated from two objects of known size.
// Apparent width of an object shrinks with distance from camera, so units-per-pixel of each
// object is assigned to the row of its top edge and interpolated linearly in between.
type DepthScale struct {
	// Real units per pixel for the first object
	ScaleA float64
	// Real units per pixel for the second object
	ScaleB float64
	// Rows (top edges) the scales are measured at
	RowA float64
	RowB float64
}

// EstimateDepthScale computes per-object scales. Each box must have positive apparent width.
func EstimateDepthScale(a, b BoundingBox, widthA, widthB float64) (DepthScale, error) {
	if err := validateWidth(widthA); err != nil {
		return DepthScale{}, errors.Wrap(err, "first object")
	}
	if err := validateWidth(widthB); err != nil {
		return DepthScale{}, errors.Wrap(err, "second object")
	}
	apparentA := a.ApparentWidth()
	if apparentA <= 0 {
		return DepthScale{}, errors.Wrapf(ErrDegenerateBox, "apparent width of %s is %g", a, apparentA)
	}
	apparentB := b.ApparentWidth()
	if apparentB <= 0 {
		return DepthScale{}, errors.Wrapf(ErrDegenerateBox, "apparent width of %s is %g", b, apparentB)
	}
	return DepthScale{
		ScaleA: widthA / apparentA,
		ScaleB: widthB / apparentB,
		RowA:   a.YTop,
		RowB:   b.YTop,
	}, nil
}

// DepthScaleFactor returns conversion factor for a pair of objects
func DepthScaleFactor(shape ImageShape, a, b BoundingBox, widthA, widthB float64) (float64, error) {
	if err := validateShape(shape); err != nil {
		return 0, err
	}
	ds, err := EstimateDepthScale(a, b, widthA, widthB)
	if err != nil {
		return 0, err
	}
	return ds.Factor(), nil
}

// Factor returns mean of two object scales. This global factor is what distances are multiplied by,
// not a sample of the row profile.
func (ds DepthScale) Factor() float64 {
	return stat.Mean([]float64{ds.ScaleA, ds.ScaleB}, nil)
}

// line returns intercept and slope of the interpolant going through (RowA, ScaleA) and (RowB, ScaleB).
// Both objects on the same row give a flat line at the mean scale.
func (ds DepthScale) line() (float64, float64) {
	if ds.RowA == ds.RowB {
		return ds.Factor(), 0
	}
	return stat.LinearRegression([]float64{ds.RowA, ds.RowB}, []float64{ds.ScaleA, ds.ScaleB}, nil, false)
}

// At evaluates scale at given row. Rows outside of [RowA, RowB] are extrapolated.
func (ds DepthScale) At(row float64) float64 {
	alpha, beta := ds.line()
	return alpha + beta*row
}

// Profile evaluates scale for every row of the image
func (ds DepthScale) Profile(shape ImageShape) (*DepthProfile, error) {
	if err := validateShape(shape); err != nil {
		return nil, err
	}
	alpha, beta := ds.line()
	rows := make([]float64, shape.Height)
	for row := range rows {
		rows[row] = alpha + beta*float64(row)
	}
	return &DepthProfile{
		rows:  rows,
		width: shape.Width,
	}, nil
}

// DepthProfile is per-row scale broadcast across all columns: depth is constant along a row.
type DepthProfile struct {
	rows  []float64
	width int
}

// Shape returns image shape the profile covers
func (p *DepthProfile) Shape() ImageShape {
	return ImageShape{Height: len(p.rows), Width: p.width}
}

// Row returns scale at given row
func (p *DepthProfile) Row(row int) float64 {
	return p.rows[row]
}

// At returns scale at given pixel
func (p *DepthProfile) At(row, col int) float64 {
	if col < 0 || col >= p.width {
		panic(mat.ErrColAccess)
	}
	return p.rows[row]
}

// Dense materialises the profile as height x width matrix (e.g. for rendering a depth image)
func (p *DepthProfile) Dense() *mat.Dense {
	dense := mat.NewDense(len(p.rows), p.width, nil)
	for row, scale := range p.rows {
		for col := 0; col < p.width; col++ {
			dense.Set(row, col, scale)
		}
	}
	return dense
}

func validateWidth(width float64) error {
	if width <= 0 || math.IsNaN(width) || math.IsInf(width, 0) {
		return errors.Wrapf(ErrInvalidWidth, "width %g", width)
	}
	return nil
}

func validateShape(shape ImageShape) error {
	if shape.Height <= 0 || shape.Width <= 0 {
		return errors.Wrapf(ErrInvalidShape, "%dx%d", shape.Height, shape.Width)
	}
	return nil
}
