package bboxdist

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Tensor is N x N x T stack of per-frame distance matrices
type Tensor struct {
	id     uuid.UUID
	n      int
	frames []*Matrix
}

// ID returns identifier of computation
func (tensor *Tensor) ID() uuid.UUID {
	return tensor.id
}

// N returns number of objects
func (tensor *Tensor) N() int {
	return tensor.n
}

// T returns number of frames
func (tensor *Tensor) T() int {
	return len(tensor.frames)
}

// Frame returns distance matrix of frame t
func (tensor *Tensor) Frame(t int) *Matrix {
	return tensor.frames[t]
}

// At returns distance between i-th and j-th objects at frame t
func (tensor *Tensor) At(i, j, t int) float64 {
	return tensor.frames[t].At(i, j)
}

// Series returns distance between i-th and j-th objects for every frame
func (tensor *Tensor) Series(i, j int) []float64 {
	series := make([]float64, len(tensor.frames))
	for t, frame := range tensor.frames {
		series[t] = frame.At(i, j)
	}
	return series
}

// MultiFrameMatrix computes distance matrix for every frame.
// frames[t][i] is bounding box of i-th object at frame t; every frame must contain the same number of objects.
// Frames are independent: nothing computed for one frame is reused for another.
// With WithWorkers(n) frames are computed concurrently.
func MultiFrameMatrix(frames [][]BoundingBox, shape ImageShape, opts ...Option) (*Tensor, error) {
	o := newOptions(opts)
	n := 0
	if len(frames) > 0 {
		n = len(frames[0])
	}
	var errs error
	for t, frame := range frames {
		if len(frame) != n {
			errs = multierr.Append(errs, errors.Wrapf(ErrShapeMismatch, "frame %d has %d objects, expected %d", t, len(frame), n))
		}
	}
	errs = multierr.Append(errs, o.validate(n, shape))
	if errs != nil {
		return nil, errors.Wrap(errs, "invalid input")
	}

	tensor := &Tensor{
		id:     uuid.New(),
		n:      n,
		frames: make([]*Matrix, len(frames)),
	}
	logger := o.logger.With(zap.Stringer("sequence", tensor.id))

	frameOptions := o
	parallelFrames := o.workers > 1 && len(frames) > 1
	if parallelFrames {
		// One goroutine per frame already, rows of a frame go sequentially
		frameOptions.workers = 1
	}
	computeFrame := func(t int) error {
		fo := frameOptions
		fo.logger = logger.With(zap.Int("frame", t))
		matrix, err := distanceMatrix(uuid.New(), frames[t], shape, &fo)
		if err != nil {
			return errors.Wrapf(err, "frame %d", t)
		}
		tensor.frames[t] = matrix
		return nil
	}

	if !parallelFrames {
		for t := range frames {
			if err := computeFrame(t); err != nil {
				return nil, err
			}
		}
		return tensor, nil
	}

	g := errgroup.Group{}
	g.SetLimit(o.workers)
	tasks := taskPanic{}
	for t := range frames {
		g.Go(tasks.guard(func() error {
			return computeFrame(t)
		}))
	}
	err := g.Wait()
	tasks.repanic()
	if err != nil {
		return nil, err
	}
	return tensor, nil
}

// FramesFromTracks converts per-object tracks (tracks[i][t]) into per-frame layout (frames[t][i]).
// Every track must have the same length.
func FramesFromTracks(tracks [][]BoundingBox) ([][]BoundingBox, error) {
	if len(tracks) == 0 {
		return [][]BoundingBox{}, nil
	}
	numFrames := len(tracks[0])
	for i, track := range tracks {
		if len(track) != numFrames {
			return nil, errors.Wrapf(ErrShapeMismatch, "track %d has %d frames, expected %d", i, len(track), numFrames)
		}
	}
	frames := make([][]BoundingBox, numFrames)
	for t := range frames {
		frames[t] = make([]BoundingBox, len(tracks))
		for i, track := range tracks {
			frames[t][i] = track[t]
		}
	}
	return frames, nil
}
