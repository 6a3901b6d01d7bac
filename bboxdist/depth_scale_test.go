package bboxdist

import (
	"math"
	"testing"

	"github.com/pkg/errors"
)

func TestEstimateDepthScale(t *testing.T) {
	a := NewBBox(0, 0, 10, 10)
	b := NewBBox(40, 40, 45, 50)
	ds, err := EstimateDepthScale(a, b, 6, 6)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(ds.ScaleA-0.6) > eps {
		t.Errorf("Wrong scale A: %v, correct answer: %v", ds.ScaleA, 0.6)
	}
	if math.Abs(ds.ScaleB-1.2) > eps {
		t.Errorf("Wrong scale B: %v, correct answer: %v", ds.ScaleB, 1.2)
	}
	if math.Abs(ds.Factor()-0.9) > eps {
		t.Errorf("Wrong factor: %v, correct answer: %v", ds.Factor(), 0.9)
	}
	if ds.RowA != 10 || ds.RowB != 50 {
		t.Errorf("Wrong rows: %v %v, correct answer: %v %v", ds.RowA, ds.RowB, 10, 50)
	}

	factor, err := DepthScaleFactor(testShape, a, b, 6, 6)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(factor-0.9) > eps {
		t.Errorf("Wrong factor: %v, correct answer: %v", factor, 0.9)
	}
}

func TestEstimateDepthScaleErrors(t *testing.T) {
	a := NewBBox(0, 0, 10, 10)
	if _, err := EstimateDepthScale(a, NewBBox(20, 0, 20, 10), 6, 6); !errors.Is(err, ErrDegenerateBox) {
		t.Errorf("Expected ErrDegenerateBox, got %v", err)
	}
	if _, err := EstimateDepthScale(NewBBox(30, 0, 20, 10), a, 6, 6); !errors.Is(err, ErrDegenerateBox) {
		t.Errorf("Expected ErrDegenerateBox for negative width, got %v", err)
	}
	if _, err := EstimateDepthScale(a, a, math.NaN(), 6); !errors.Is(err, ErrInvalidWidth) {
		t.Errorf("Expected ErrInvalidWidth, got %v", err)
	}
	if _, err := EstimateDepthScale(a, a, 6, -1); !errors.Is(err, ErrInvalidWidth) {
		t.Errorf("Expected ErrInvalidWidth, got %v", err)
	}
	if _, err := DepthScaleFactor(NewImageShape(0, 10), a, a, 6, 6); !errors.Is(err, ErrInvalidShape) {
		t.Errorf("Expected ErrInvalidShape, got %v", err)
	}
}

func TestDepthProfile(t *testing.T) {
	a := NewBBox(0, 0, 10, 10)
	b := NewBBox(0, 40, 5, 50)
	ds, err := EstimateDepthScale(a, b, 6, 6)
	if err != nil {
		t.Fatal(err)
	}
	profile, err := ds.Profile(NewImageShape(100, 20))
	if err != nil {
		t.Fatal(err)
	}
	if profile.Shape() != NewImageShape(100, 20) {
		t.Errorf("Wrong shape: %v", profile.Shape())
	}
	// Slope is (1.2 - 0.6) / (50 - 10)
	cases := []struct {
		row   int
		scale float64
	}{
		{10, 0.6},
		{50, 1.2},
		{30, 0.9},
		{0, 0.45},   // extrapolated above
		{99, 1.935}, // extrapolated below
	}
	for _, c := range cases {
		if math.Abs(profile.Row(c.row)-c.scale) > eps {
			t.Errorf("Wrong scale at row %d: %v, correct answer: %v", c.row, profile.Row(c.row), c.scale)
		}
		if math.Abs(ds.At(float64(c.row))-c.scale) > eps {
			t.Errorf("Wrong interpolated scale at row %d: %v, correct answer: %v", c.row, ds.At(float64(c.row)), c.scale)
		}
	}
	// Every column of a row has the same scale
	for col := 0; col < 20; col++ {
		if profile.At(30, col) != profile.Row(30) {
			t.Errorf("Scale differs along row 30 at column %d", col)
		}
	}

	dense := profile.Dense()
	rows, cols := dense.Dims()
	if rows != 100 || cols != 20 {
		t.Errorf("Wrong dims: %dx%d, correct answer: %dx%d", rows, cols, 100, 20)
	}
	if math.Abs(dense.At(30, 7)-0.9) > eps {
		t.Errorf("Wrong answer: %v, correct answer: %v", dense.At(30, 7), 0.9)
	}
}

func TestDepthProfileSameRow(t *testing.T) {
	ds, err := EstimateDepthScale(NewBBox(0, 0, 10, 10), NewBBox(50, 0, 55, 10), 6, 6)
	if err != nil {
		t.Fatal(err)
	}
	profile, err := ds.Profile(NewImageShape(20, 5))
	if err != nil {
		t.Fatal(err)
	}
	for row := 0; row < 20; row++ {
		if math.Abs(profile.Row(row)-0.9) > eps {
			t.Errorf("Wrong scale at row %d: %v, correct answer: %v", row, profile.Row(row), 0.9)
		}
	}
	if _, err := ds.Profile(NewImageShape(-1, 5)); !errors.Is(err, ErrInvalidShape) {
		t.Errorf("Expected ErrInvalidShape, got %v", err)
	}
}
