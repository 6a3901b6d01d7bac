package bboxdist

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const maxConfigFileSize = 1 * 1024 * 1024

// Config is file-based configuration of distance computations.
// Omitted fields keep defaults, so partial configs are safe.
type Config struct {
	// "pixel" or "real"
	Unit *string `json:"unit,omitempty"`
	// Name of real units for log lines, e.g. "feet"
	UnitName *string `json:"unit_name,omitempty"`
	// Real-world widths of objects, in order of boxes
	Widths []float64 `json:"widths,omitempty"`
	// Object labels for log lines
	Labels    []string `json:"labels,omitempty"`
	Workers   *int     `json:"workers,omitempty"`
	Verbose   *bool    `json:"verbose,omitempty"`
	PairCache *bool    `json:"pair_cache,omitempty"`
}

// LoadConfig loads Config from a JSON file.
// The file must have .json extension and be under 1MB.
func LoadConfig(path string) (*Config, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, errors.Wrapf(ErrInvalidConfig, "config file must have .json extension, got %q", ext)
	}
	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, errors.Wrap(err, "can't stat config file")
	}
	if fileInfo.Size() > maxConfigFileSize {
		return nil, errors.Wrapf(ErrInvalidConfig, "config file too large: %d bytes (max %d)", fileInfo.Size(), maxConfigFileSize)
	}
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, errors.Wrap(err, "can't read config file")
	}
	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(multierr.Append(ErrInvalidConfig, err), "can't parse config file")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values which are set
func (cfg *Config) Validate() error {
	var errs error
	if cfg.Unit != nil {
		if _, err := ParseUnit(*cfg.Unit); err != nil {
			errs = multierr.Append(errs, err)
		}
	}
	if cfg.Workers != nil && *cfg.Workers < 1 {
		errs = multierr.Append(errs, errors.Errorf("workers must be positive, got %d", *cfg.Workers))
	}
	for idx, width := range cfg.Widths {
		if err := validateWidth(width); err != nil {
			errs = multierr.Append(errs, errors.Wrapf(err, "object %d", idx))
		}
	}
	if cfg.Labels != nil && cfg.Widths != nil && len(cfg.Labels) != len(cfg.Widths) {
		errs = multierr.Append(errs, errors.Wrapf(ErrShapeMismatch, "got %d labels and %d widths", len(cfg.Labels), len(cfg.Widths)))
	}
	if errs != nil {
		return errors.Wrap(multierr.Append(ErrInvalidConfig, errs), "validation failed")
	}
	return nil
}

// GetUnit returns configured unit, UnitPixel by default
func (cfg *Config) GetUnit() Unit {
	if cfg.Unit == nil {
		return UnitPixel
	}
	unit, err := ParseUnit(*cfg.Unit)
	if err != nil {
		return UnitPixel
	}
	return unit
}

// GetUnitName returns configured unit name, empty by default
func (cfg *Config) GetUnitName() string {
	if cfg.UnitName == nil {
		return ""
	}
	return *cfg.UnitName
}

// GetWorkers returns configured number of workers, 1 by default
func (cfg *Config) GetWorkers() int {
	if cfg.Workers == nil {
		return 1
	}
	return *cfg.Workers
}

// GetVerbose returns whether per-pair logging is on, false by default
func (cfg *Config) GetVerbose() bool {
	if cfg.Verbose == nil {
		return false
	}
	return *cfg.Verbose
}

// GetPairCache returns whether mirrored cells are reused, true by default
func (cfg *Config) GetPairCache() bool {
	if cfg.PairCache == nil {
		return true
	}
	return *cfg.PairCache
}

// Options converts configuration into options. Logger is used for verbose output.
func (cfg *Config) Options(logger *zap.Logger) []Option {
	opts := []Option{
		WithUnit(cfg.GetUnit()),
		WithWorkers(cfg.GetWorkers()),
		WithVerbose(cfg.GetVerbose()),
		WithPairCache(cfg.GetPairCache()),
		WithLogger(logger),
	}
	if cfg.GetUnit() == UnitReal && cfg.GetUnitName() != "" {
		opts = append(opts, WithRealUnits(cfg.GetUnitName()))
	}
	if cfg.Widths != nil {
		opts = append(opts, WithWidths(cfg.Widths...))
	}
	if cfg.Labels != nil {
		opts = append(opts, WithLabels(cfg.Labels...))
	}
	return opts
}
