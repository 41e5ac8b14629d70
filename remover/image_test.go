package remover

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"
)

func writeTestImage(t *testing.T, path string) {
	t.Helper()

	img := gocv.NewMatWithSize(48, 64, gocv.MatTypeCV8UC3)
	defer img.Close()
	img.SetTo(gocv.Scalar{Val1: 90, Val2: 120, Val3: 200, Val4: 255})

	// A contrasting block gives the inpainting something to reconstruct.
	roi := img.Region(testRegion.rect())
	roi.SetTo(gocv.Scalar{Val1: 255, Val2: 255, Val3: 255, Val4: 255})
	roi.Close()

	require.True(t, gocv.IMWrite(path, img))
}

var testRegion = Region{X: 8, Y: 8, Width: 16, Height: 16}

func TestProcessImageLossyJPEG(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.png")
	writeTestImage(t, src)

	dst := filepath.Join(dir, "out.jpg")
	result, err := ProcessImage(src, dst, testRegion, DefaultOptions())
	require.NoError(t, err)

	require.Equal(t, dst, result.OutputPath)
	require.Positive(t, result.OriginalSize)
	require.Positive(t, result.ProcessedSize)

	out := gocv.IMRead(dst, gocv.IMReadColor)
	defer out.Close()
	require.False(t, out.Empty())
	require.Equal(t, 64, out.Cols())
	require.Equal(t, 48, out.Rows())
}

func TestProcessImageLosslessJPEGRedirectsToPNG(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.png")
	writeTestImage(t, src)

	opts := DefaultOptions()
	opts.Lossless = true

	dst := filepath.Join(dir, "out.jpg")
	result, err := ProcessImage(src, dst, testRegion, opts)
	require.NoError(t, err)

	want := filepath.Join(dir, "out.png")
	require.Equal(t, want, result.OutputPath)
	require.FileExists(t, want)
	require.NoFileExists(t, dst)
}

func TestProcessImageLosslessDeterministic(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.png")
	writeTestImage(t, src)

	opts := DefaultOptions()
	opts.Lossless = true

	first, err := ProcessImage(src, filepath.Join(dir, "a.png"), testRegion, opts)
	require.NoError(t, err)
	second, err := ProcessImage(src, filepath.Join(dir, "b.png"), testRegion, opts)
	require.NoError(t, err)

	a, err := os.ReadFile(first.OutputPath)
	require.NoError(t, err)
	b, err := os.ReadFile(second.OutputPath)
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestProcessImageDecodeFailure(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "garbage.png")
	require.NoError(t, os.WriteFile(src, []byte("not an image"), 0o644))

	_, err := ProcessImage(src, filepath.Join(dir, "out.png"), testRegion, DefaultOptions())
	require.ErrorIs(t, err, ErrDecodeFailed)
}

func TestProcessImageOutOfBoundsNeverEncodes(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.png")
	writeTestImage(t, src)

	dst := filepath.Join(dir, "out.png")
	_, err := ProcessImage(src, dst, Region{X: 60, Y: 0, Width: 20, Height: 10}, DefaultOptions())
	require.ErrorIs(t, err, ErrRegionOutOfBounds)
	require.NoFileExists(t, dst)
}

func TestReadImageInfo(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.png")
	writeTestImage(t, src)

	info, err := ReadImageInfo(src)
	require.NoError(t, err)
	require.Equal(t, 64, info.Width)
	require.Equal(t, 48, info.Height)
	require.Equal(t, src, info.Path)

	_, err = ReadImageInfo(filepath.Join(dir, "missing.png"))
	require.ErrorIs(t, err, ErrDecodeFailed)
}
