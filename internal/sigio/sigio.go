package sigio

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format identifies an on-disk sample encoding.
type Format int

const (
	FormatUnknown Format = iota
	FormatCSV
	FormatText
	FormatFloat64
	FormatParquet
)

func (f Format) String() string {
	switch f {
	case FormatCSV:
		return "csv"
	case FormatText:
		return "txt"
	case FormatFloat64:
		return "f64"
	case FormatParquet:
		return "parquet"
	default:
		return "unknown"
	}
}

// FormatOf returns the format implied by the extension of path.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV
	case ".txt", ".dat":
		return FormatText
	case ".f64", ".bin":
		return FormatFloat64
	case ".parquet":
		return FormatParquet
	default:
		return FormatUnknown
	}
}

type options struct {
	column int
}

// Option configures [Load].
type Option func(*options)

// WithColumn selects the zero-based column of delimited text files.
// Binary formats ignore it.
func WithColumn(i int) Option {
	return func(o *options) {
		if i >= 0 {
			o.column = i
		}
	}
}

// Load reads all samples from path.
func Load(path string, opts ...Option) ([]float64, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	var (
		x   []float64
		err error
	)
	switch FormatOf(path) {
	case FormatCSV:
		x, err = loadCSV(path, o.column)
	case FormatText:
		x, err = loadText(path, o.column)
	case FormatFloat64:
		x, err = loadFloat64(path)
	case FormatParquet:
		x, err = loadParquet(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	if len(x) == 0 {
		return nil, fmt.Errorf("load %s: %w", path, ErrEmpty)
	}
	return x, nil
}

// Write stores x at path in the format implied by its extension.
func Write(path string, x []float64) error {
	var err error
	switch FormatOf(path) {
	case FormatCSV:
		err = writeCSV(path, x)
	case FormatText:
		err = writeText(path, x)
	case FormatFloat64:
		err = writeFloat64(path, x)
	case FormatParquet:
		err = writeParquet(path, x)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
