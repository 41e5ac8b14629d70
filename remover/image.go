package remover

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"gocv.io/x/gocv"
)

// ImageResult summarizes a completed image job. Sizes are file byte counts so
// callers can display the compression delta.
type ImageResult struct {
	OutputPath    string
	OriginalSize  int64
	ProcessedSize int64
}

// ImageInfo is a read-only snapshot of an image file's dimensions.
type ImageInfo struct {
	Width  int
	Height int
	Path   string
}

// ReadImageInfo decodes just enough of the file to report its dimensions.
func ReadImageInfo(path string) (ImageInfo, error) {
	img := gocv.IMRead(path, gocv.IMReadColor)
	if img.Empty() {
		return ImageInfo{}, fmt.Errorf("%w: %s", ErrDecodeFailed, path)
	}
	defer img.Close()

	return ImageInfo{Width: img.Cols(), Height: img.Rows(), Path: path}, nil
}

// ProcessImage removes the watermark region from a still image and encodes the
// result to outputPath. The encode format follows the output extension.
//
// Requesting lossless output with a .jpg/.jpeg path redirects the output to a
// .png file, since JPEG has no lossless mode; the returned result reports the
// path actually written.
func ProcessImage(inputPath, outputPath string, region Region, opts Options) (*ImageResult, error) {
	start := time.Now()

	img := gocv.IMRead(inputPath, gocv.IMReadColor)
	if img.Empty() {
		return nil, fmt.Errorf("%w: %s", ErrDecodeFailed, inputPath)
	}
	defer img.Close()

	mask, err := BuildMask(img.Cols(), img.Rows(), region)
	if err != nil {
		return nil, err
	}
	defer mask.Close()

	dilated := DilateMask(mask, opts.DilatePixels)
	defer dilated.Close()

	out := gocv.NewMat()
	defer out.Close()
	if err := inpaintFrame(img, dilated, &out, opts.InpaintRadius, InpaintMethodFor(opts.Algorithm)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInpaintingFailed, err)
	}

	finalPath, params := encodeParams(outputPath, opts.Lossless)
	if ok := gocv.IMWriteWithParams(finalPath, out, params); !ok {
		return nil, fmt.Errorf("%w: writing %s", ErrEncodeFailed, finalPath)
	}

	originalSize, processedSize := fileSize(inputPath), fileSize(finalPath)

	log.Debug().
		Int64("duration(ms)", time.Since(start).Milliseconds()).
		Int64("original", originalSize).
		Int64("processed", processedSize).
		Str("dst", finalPath).
		Msg(filepath.Base(inputPath))

	return &ImageResult{
		OutputPath:    finalPath,
		OriginalSize:  originalSize,
		ProcessedSize: processedSize,
	}, nil
}

// encodeParams maps the output extension and encode policy to imwrite
// parameters, possibly substituting the output path. Lossy presets: JPEG
// quality 95, PNG compression 6, WebP quality 95. Lossless: PNG maximum
// compression, WebP quality 101 (the encoder's reserved lossless range).
func encodeParams(outputPath string, lossless bool) (string, []int) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(outputPath), "."))

	if lossless {
		switch ext {
		case "jpg", "jpeg":
			path := strings.TrimSuffix(outputPath, filepath.Ext(outputPath)) + ".png"
			return path, []int{gocv.IMWritePngCompression, 9}
		case "webp":
			return outputPath, []int{gocv.IMWriteWebpQuality, 101}
		default:
			return outputPath, []int{gocv.IMWritePngCompression, 9}
		}
	}

	switch ext {
	case "jpg", "jpeg":
		return outputPath, []int{gocv.IMWriteJpegQuality, 95}
	case "webp":
		return outputPath, []int{gocv.IMWriteWebpQuality, 95}
	default:
		return outputPath, []int{gocv.IMWritePngCompression, 6}
	}
}

func fileSize(path string) int64 {
	fi, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return fi.Size()
}
