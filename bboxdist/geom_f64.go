package bboxdist

import (
	"fmt"
	"image"
	"math"
)

// BoundingBox is an axis-aligned box in image pixel coordinates.
// Coordinates are expected to satisfy XLeft <= XRight and YBottom <= YTop, but it is not enforced.
type BoundingBox struct {
	XLeft   float64
	YBottom float64
	XRight  float64
	YTop    float64
}

func NewBBox(xLeft, yBottom, xRight, yTop float64) BoundingBox {
	return BoundingBox{
		XLeft:   xLeft,
		YBottom: yBottom,
		XRight:  xRight,
		YTop:    yTop,
	}
}

// NewBBoxFromRect creates box from top-left corner and size (detector-style x, y, w, h)
func NewBBoxFromRect(x, y, width, height float64) BoundingBox {
	return BoundingBox{
		XLeft:   x,
		YBottom: y,
		XRight:  x + width,
		YTop:    y + height,
	}
}

func NewBBoxFrom(rect image.Rectangle) BoundingBox {
	return BoundingBox{
		XLeft:   float64(rect.Min.X),
		YBottom: float64(rect.Min.Y),
		XRight:  float64(rect.Max.X),
		YTop:    float64(rect.Max.Y),
	}
}

// ApparentWidth returns box width in pixels
func (bbox BoundingBox) ApparentWidth() float64 {
	return bbox.XRight - bbox.XLeft
}

// ApparentHeight returns box height in pixels
func (bbox BoundingBox) ApparentHeight() float64 {
	return bbox.YTop - bbox.YBottom
}

// Overlaps reports whether two boxes share at least one point
func (bbox BoundingBox) Overlaps(other BoundingBox) bool {
	return Classify(bbox, other) == PositionOverlap
}

func (bbox BoundingBox) String() string {
	return fmt.Sprintf("(%g, %g, %g, %g)", bbox.XLeft, bbox.YBottom, bbox.XRight, bbox.YTop)
}

type Point struct {
	X float64
	Y float64
}

func NewPoint(x, y float64) Point {
	return Point{
		X: x,
		Y: y,
	}
}

// Segment is a minimum distance vector going from the first box to the second one
type Segment struct {
	X1 float64
	Y1 float64
	X2 float64
	Y2 float64
}

// Start returns the end of segment lying on the first box
func (s Segment) Start() Point {
	return Point{X: s.X1, Y: s.Y1}
}

// End returns the end of segment lying on the second box
func (s Segment) End() Point {
	return Point{X: s.X2, Y: s.Y2}
}

// Length returns Euclidean length of segment in pixels
func (s Segment) Length() float64 {
	return euclideanDistance(s.Start(), s.End())
}

// ImageShape is 2D image size in pixels
type ImageShape struct {
	Height int
	Width  int
}

func NewImageShape(height, width int) ImageShape {
	return ImageShape{
		Height: height,
		Width:  width,
	}
}

func NewImageShapeFrom(rect image.Rectangle) ImageShape {
	return ImageShape{
		Height: rect.Dy(),
		Width:  rect.Dx(),
	}
}

func euclideanDistance(p1, p2 Point) float64 {
	return math.Sqrt(math.Pow(float64(p1.X-p2.X), 2) + math.Pow(float64(p1.Y-p2.Y), 2))
}
