package remover

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"
)

// DilateMask grows the selected region outward by roughly marginPixels using
// an elliptical structuring element of diameter 2*marginPixels+1. Growing the
// mask pulls a ring of real pixels into the fill request, which the inpainting
// algorithms use to condition the fill and avoid a hard seam.
//
// A margin of zero or less returns a clone of the input. The input mask is
// never mutated. The caller owns the returned Mat and must Close it.
func DilateMask(mask gocv.Mat, marginPixels int) gocv.Mat {
	if marginPixels <= 0 {
		return mask.Clone()
	}

	ksize := marginPixels*2 + 1
	kernel := gocv.GetStructuringElement(gocv.MorphEllipse, image.Pt(ksize, ksize))
	defer kernel.Close()

	dilated := gocv.NewMat()
	gocv.DilateWithParams(mask, &dilated, kernel, image.Pt(-1, -1), 1, int(gocv.BorderConstant), color.RGBA{})

	return dilated
}
