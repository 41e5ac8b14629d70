package remover

import (
	"strings"

	"github.com/rs/zerolog/log"
	"gocv.io/x/gocv"
)

// Defaults applied by DefaultOptions.
const (
	DefaultAlgorithm     = "telea"
	DefaultDilatePixels  = 3
	DefaultInpaintRadius = 5.0
)

// Options controls one removal invocation. Options are independent of frame
// content and are not mutated by the pipelines.
type Options struct {
	// Algorithm selects the inpainting variant: "telea" (fast marching) or
	// "navier_stokes"/"ns" (fluid dynamics propagation). Case-insensitive.
	Algorithm string `yaml:"algorithm"`
	// DilatePixels is the mask growth margin applied before inpainting.
	DilatePixels int `yaml:"dilate_pixels"`
	// InpaintRadius is how far around each masked pixel the algorithm samples
	// known pixels. Must be positive.
	InpaintRadius float32 `yaml:"inpaint_radius"`
	// Lossless switches the image encoder to exact output. JPEG has no
	// lossless mode and is redirected to PNG, see ProcessImage.
	Lossless bool `yaml:"lossless"`
}

func DefaultOptions() Options {
	return Options{
		Algorithm:     DefaultAlgorithm,
		DilatePixels:  DefaultDilatePixels,
		InpaintRadius: DefaultInpaintRadius,
	}
}

// InpaintMethodFor maps an algorithm name to a gocv inpainting method. Unknown
// names fall back to Telea rather than erroring; that permissiveness is
// deliberate, but a warning is logged so a typo does not pass silently.
func InpaintMethodFor(algorithm string) gocv.InpaintMethods {
	switch strings.ToLower(algorithm) {
	case "navier_stokes", "ns":
		return gocv.NS
	case "", DefaultAlgorithm:
		return gocv.Telea
	default:
		log.Warn().Str("algorithm", algorithm).Msg("unknown inpainting algorithm, falling back to telea")
		return gocv.Telea
	}
}
