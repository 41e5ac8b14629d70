package remover

import (
	"errors"
	"fmt"

	"gocv.io/x/gocv"
)

// inpaintFrame reconstructs the masked pixels of frame into dst. The output
// keeps the input's dimensions and channel layout; only pixels under the mask
// are expected to change.
func inpaintFrame(frame, mask gocv.Mat, dst *gocv.Mat, radius float32, method gocv.InpaintMethods) error {
	if frame.Empty() || mask.Empty() {
		return errors.New("empty input buffer")
	}
	if frame.Cols() != mask.Cols() || frame.Rows() != mask.Rows() {
		return fmt.Errorf("frame %dx%d does not match mask %dx%d",
			frame.Cols(), frame.Rows(), mask.Cols(), mask.Rows())
	}
	if radius <= 0 {
		return fmt.Errorf("inpaint radius must be positive, got %v", radius)
	}

	gocv.Inpaint(frame, mask, dst, radius, method)

	if dst.Empty() {
		return errors.New("inpainting produced an empty result")
	}
	return nil
}
