package remover

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// Region is a watermark rectangle in absolute pixel coordinates, top-left
// origin. It is supplied by the caller (typically a UI selection) and never
// mutated by the pipelines.
type Region struct {
	X      int `yaml:"x"`
	Y      int `yaml:"y"`
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Validate checks the region against the frame dimensions it will be applied
// to. The out-of-bounds message carries both the frame and region geometry so
// a failed job can be diagnosed from the log alone.
func (r Region) Validate(frameWidth, frameHeight int) error {
	if r.X < 0 || r.Y < 0 || r.Width <= 0 || r.Height <= 0 {
		return fmt.Errorf("%w: (%d, %d) + %dx%d", ErrInvalidRegion, r.X, r.Y, r.Width, r.Height)
	}
	if r.X+r.Width > frameWidth || r.Y+r.Height > frameHeight {
		return fmt.Errorf("%w: frame %dx%d, region (%d, %d) + %dx%d",
			ErrRegionOutOfBounds, frameWidth, frameHeight, r.X, r.Y, r.Width, r.Height)
	}
	return nil
}

func (r Region) rect() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

// BuildMask returns a single-channel mask of the frame's dimensions with every
// pixel inside the region set to 255 and all others to 0. The caller owns the
// returned Mat and must Close it.
func BuildMask(frameWidth, frameHeight int, region Region) (gocv.Mat, error) {
	if err := region.Validate(frameWidth, frameHeight); err != nil {
		return gocv.Mat{}, err
	}

	mask := gocv.NewMatWithSize(frameHeight, frameWidth, gocv.MatTypeCV8UC1)

	roi := mask.Region(region.rect())
	roi.SetTo(gocv.Scalar{Val1: 255})
	roi.Close()

	return mask, nil
}
