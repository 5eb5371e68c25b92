package mbe

import "errors"

var (
	// ErrFrameLength is returned when a frame is not exactly the codec's frame size.
	ErrFrameLength = errors.New("mbe: invalid frame length")

	// ErrInvalidHex is returned by DecodeHex for malformed input.
	ErrInvalidHex = errors.New("mbe: invalid hex frame")

	// ErrInvalidGain is returned for an output gain outside (0, 16).
	ErrInvalidGain = errors.New("mbe: gain out of range")

	// ErrInvalidHeader is returned when a .mbe header does not carry the magic bytes.
	ErrInvalidHeader = errors.New("mbe: invalid file header")

	// ErrUnsupportedMode is returned for an unknown codec or header mode.
	ErrUnsupportedMode = errors.New("mbe: unsupported mode")
)
