package sigio

import "errors"

var (
	ErrUnsupportedFormat = errors.New("sigio: unsupported format")
	ErrEmpty             = errors.New("sigio: no samples")
	ErrMalformed         = errors.New("sigio: malformed data")
)
