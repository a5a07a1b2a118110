package pdfs

import (
	"errors"
	"fmt"
)

// ErrLayoutContract reports a row whose column widths do not cover its allocated width
var ErrLayoutContract = errors.New("pdfs: layout contract violated")

// ErrNoImage is wrapped by ImageDecodeError when the payload is empty after decoding
var ErrNoImage = errors.New("pdfs: empty image payload")

// ImageDecodeError is returned when embedded image bytes cannot be used.
// Callers fall back to a Blank of the same footprint.
type ImageDecodeError struct {
	Stage string // base64, decode, encode
	Err   error
}

func (e *ImageDecodeError) Error() string {
	return fmt.Sprintf("image %s failed: %v", e.Stage, e.Err)
}

func (e *ImageDecodeError) Unwrap() error {
	return e.Err
}
