package bboxdist

import (
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Unit is for selecting units of computed distances
type Unit uint16

const (
	// UnitPixel keeps distances in image pixels
	UnitPixel Unit = iota
	// UnitReal converts distances into units of the supplied object widths via depth estimation
	UnitReal
)

func (u Unit) String() string {
	switch u {
	case UnitPixel:
		return "pixels"
	case UnitReal:
		return "real"
	default:
		return "unknown"
	}
}

// ParseUnit parses unit name. Accepts "pixel", "pixels", "px" and "real".
func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pixel", "pixels", "px":
		return UnitPixel, nil
	case "real":
		return UnitReal, nil
	default:
		return UnitPixel, errors.Wrapf(ErrInvalidUnit, "unit %q", s)
	}
}

type options struct {
	widths    []float64
	labels    []string
	unit      Unit
	unitName  string
	logger    *zap.Logger
	verbose   bool
	workers   int
	pairCache bool
}

// Option configures distance computations
type Option func(*options)

func defaultOptions() options {
	return options{
		unit:      UnitPixel,
		logger:    zap.NewNop(),
		workers:   1,
		pairCache: true,
	}
}

func newOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithWidths sets real-world widths of objects in the order boxes are passed.
// When not set every object has width 1.
func WithWidths(widths ...float64) Option {
	return func(o *options) {
		o.widths = widths
	}
}

// WithLabels sets human-readable object labels. They are used in log lines only.
func WithLabels(labels ...string) Option {
	return func(o *options) {
		o.labels = labels
	}
}

// WithUnit sets units of computed distances. Default is UnitPixel.
func WithUnit(unit Unit) Option {
	return func(o *options) {
		o.unit = unit
	}
}

// WithRealUnits switches to UnitReal and names the units for log lines (e.g. "feet")
func WithRealUnits(name string) Option {
	return func(o *options) {
		o.unit = UnitReal
		o.unitName = name
	}
}

// WithLogger sets logger. Nothing is logged by default.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = zap.NewNop()
		}
		o.logger = logger
	}
}

// WithVerbose enables per-pair status lines
func WithVerbose(verbose bool) Option {
	return func(o *options) {
		o.verbose = verbose
	}
}

// WithWorkers sets number of goroutines computing pairs (and frames). Default is 1 (sequential).
// A panic raised by a malformed box is raised again in the caller's goroutine once all workers stop.
func WithWorkers(workers int) Option {
	return func(o *options) {
		o.workers = maxInt(workers, 1)
	}
}

// WithPairCache toggles reuse of mirrored matrix cells. Enabled by default.
// When disabled both (i, j) and (j, i) are computed independently.
func WithPairCache(enabled bool) Option {
	return func(o *options) {
		o.pairCache = enabled
	}
}

func (o *options) unitLabel() string {
	if o.unit == UnitReal && o.unitName != "" {
		return o.unitName
	}
	return o.unit.String()
}

// validateUnit checks unit and whether image shape is usable for it
func (o *options) validateUnit(shape ImageShape) error {
	switch o.unit {
	case UnitPixel:
		return nil
	case UnitReal:
		return validateShape(shape)
	default:
		return errors.Wrapf(ErrInvalidUnit, "unit %d", o.unit)
	}
}

func (o *options) width(idx int) float64 {
	if o.widths == nil {
		return 1.0
	}
	return o.widths[idx]
}

func (o *options) label(idx int) string {
	if o.labels == nil {
		return ""
	}
	return o.labels[idx]
}
