package bboxdist

import (
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/atomic"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
)

// Matrix is symmetric matrix of minimum distances between bounding boxes of a single frame.
// Element (i, j) is the distance between the i-th and the j-th box; diagonal is zero.
type Matrix struct {
	id     uuid.UUID
	n      int
	unit   Unit
	values *mat.SymDense
	// computed marks filled cells, so mirrored cells are never derived twice
	computed    [][]bool
	evaluations *atomic.Int64
}

func newMatrix(id uuid.UUID, n int, unit Unit) *Matrix {
	values := &mat.SymDense{}
	if n > 0 {
		values = mat.NewSymDense(n, nil)
	}
	computed := make([][]bool, n)
	for i := range computed {
		computed[i] = make([]bool, n)
	}
	return &Matrix{
		id:          id,
		n:           n,
		unit:        unit,
		values:      values,
		computed:    computed,
		evaluations: atomic.NewInt64(0),
	}
}

// ID returns identifier of computation. It is attached to log lines produced while filling the matrix
func (m *Matrix) ID() uuid.UUID {
	return m.id
}

// N returns number of objects
func (m *Matrix) N() int {
	return m.n
}

// Unit returns units of distances
func (m *Matrix) Unit() Unit {
	return m.unit
}

// At returns distance between i-th and j-th objects
func (m *Matrix) At(i, j int) float64 {
	return m.values.At(i, j)
}

// Sym returns copy of distances as gonum symmetric matrix
func (m *Matrix) Sym() *mat.SymDense {
	if m.n == 0 {
		return &mat.SymDense{}
	}
	sym := mat.NewSymDense(m.n, nil)
	sym.CopySym(m.values)
	return sym
}

// Evaluations returns how many times pair distance has been computed while filling the matrix
func (m *Matrix) Evaluations() int64 {
	return m.evaluations.Load()
}

// DistanceMatrix computes minimum distances between all pairs of bounding boxes of a single frame.
//
// Each unordered pair is computed once and written to both (i, j) and (j, i) unless WithPairCache(false)
// is given. Per-object inputs (WithWidths, WithLabels) must have len(boxes) elements.
// WithWorkers(n) spreads rows of the matrix across n goroutines.
func DistanceMatrix(boxes []BoundingBox, shape ImageShape, opts ...Option) (*Matrix, error) {
	o := newOptions(opts)
	if err := o.validate(len(boxes), shape); err != nil {
		return nil, errors.Wrap(err, "invalid input")
	}
	return distanceMatrix(uuid.New(), boxes, shape, &o)
}

func distanceMatrix(id uuid.UUID, boxes []BoundingBox, shape ImageShape, o *options) (*Matrix, error) {
	m := newMatrix(id, len(boxes), o.unit)
	var err error
	if o.workers > 1 && m.n > 2 {
		err = m.fillConcurrent(boxes, shape, o)
	} else {
		err = m.fill(boxes, shape, o)
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Matrix) fill(boxes []BoundingBox, shape ImageShape, o *options) error {
	for i := 0; i < m.n; i++ {
		for j := 0; j < m.n; j++ {
			if i == j {
				m.setDiagonal(i)
				continue
			}
			if o.pairCache && m.computed[i][j] {
				continue
			}
			if err := m.computePair(i, j, boxes, shape, o); err != nil {
				return err
			}
		}
	}
	return nil
}

// fillConcurrent computes every row in its own task. Row i owns pairs (i, j) with j > i,
// so tasks never write the same cell.
func (m *Matrix) fillConcurrent(boxes []BoundingBox, shape ImageShape, o *options) error {
	g := errgroup.Group{}
	g.SetLimit(minInt(o.workers, m.n))
	tasks := taskPanic{}
	defer tasks.repanic()
	for i := 0; i < m.n; i++ {
		m.setDiagonal(i)
		g.Go(tasks.guard(func() error {
			for j := i + 1; j < m.n; j++ {
				if err := m.computePair(i, j, boxes, shape, o); err != nil {
					return err
				}
				if !o.pairCache {
					if err := m.computePair(j, i, boxes, shape, o); err != nil {
						return err
					}
				}
			}
			return nil
		}))
	}
	return g.Wait()
}

var errTaskPanicked = errors.New("concurrent task panicked")

// taskPanic keeps the first panic raised by concurrent tasks, so it can be raised again
// in the caller's goroutine after the group is done
type taskPanic struct {
	once  sync.Once
	value any
}

func (p *taskPanic) guard(task func() error) func() error {
	return func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				p.once.Do(func() { p.value = r })
				err = errTaskPanicked
			}
		}()
		return task()
	}
}

// repanic must be called after the group is waited for
func (p *taskPanic) repanic() {
	if p.value != nil {
		panic(p.value)
	}
}

func (m *Matrix) setDiagonal(i int) {
	m.values.SetSym(i, i, 0)
	m.computed[i][i] = true
}

func (m *Matrix) computePair(i, j int, boxes []BoundingBox, shape ImageShape, o *options) error {
	measurement, err := pairDistance(boxes[i], boxes[j], shape, o.width(i), o.width(j), o)
	if err != nil {
		return errors.Wrapf(err, "objects %d and %d", i, j)
	}
	m.evaluations.Inc()
	m.values.SetSym(i, j, measurement.Distance)
	m.computed[i][j] = true
	m.computed[j][i] = true
	if o.verbose {
		o.logger.Info("pair distance",
			zap.Stringer("run", m.id),
			zap.Int("i", i),
			zap.String("label_i", o.label(i)),
			zap.Int("j", j),
			zap.String("label_j", o.label(j)),
			zap.Stringer("position", measurement.Position),
			zap.Float64("distance", measurement.Distance),
			zap.String("units", o.unitLabel()),
		)
	}
	return nil
}

// validate checks per-object inputs against number of objects
func (o *options) validate(n int, shape ImageShape) error {
	var errs error
	if o.widths != nil && len(o.widths) != n {
		errs = multierr.Append(errs, errors.Wrapf(ErrShapeMismatch, "got %d widths for %d objects", len(o.widths), n))
	}
	if o.labels != nil && len(o.labels) != n {
		errs = multierr.Append(errs, errors.Wrapf(ErrShapeMismatch, "got %d labels for %d objects", len(o.labels), n))
	}
	errs = multierr.Append(errs, o.validateUnit(shape))
	if o.unit == UnitReal {
		for idx, width := range o.widths {
			if err := validateWidth(width); err != nil {
				errs = multierr.Append(errs, errors.Wrapf(err, "object %d", idx))
			}
		}
	}
	return errs
}
