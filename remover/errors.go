package remover

import "errors"

// Errors returned by the image and video pipelines. All are terminal for the
// current job; nothing is retried. Callers discriminate with errors.Is.
var (
	ErrDecodeFailed       = errors.New("decode failed")
	ErrInvalidRegion      = errors.New("invalid region")
	ErrRegionOutOfBounds  = errors.New("region out of bounds")
	ErrInpaintingFailed   = errors.New("inpainting failed")
	ErrEncodeFailed       = errors.New("encode failed")
	ErrVideoOpenFailed    = errors.New("video open failed")
	ErrWriterOpenFailed   = errors.New("video writer open failed")
	ErrCancelled          = errors.New("cancelled")
	ErrRemuxFailed        = errors.New("remux failed")
	ErrExternalToolFailed = errors.New("external tool failed")
)
