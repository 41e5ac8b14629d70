package remover

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
	"gocv.io/x/gocv"
)

// defaultFourcc is the codec tag written to the output container.
const defaultFourcc = "avc1"

// VideoInfo is a read-only snapshot of a container's metadata, taken at job
// start.
type VideoInfo struct {
	Width        int
	Height       int
	FPS          float64
	FrameCount   int
	DurationSecs float64
	Codec        string
	Path         string
}

// VideoResult summarizes a completed video job. FramesProcessed may be less
// than the container's reported frame count if the stream ends early.
type VideoResult struct {
	OutputPath      string
	FramesProcessed uint32
	DurationSecs    float64
}

// ReadVideoInfo opens the container and reads its properties. The codec tag is
// the container's fourcc decoded as raw ASCII bytes; it is not validated as
// printable.
func ReadVideoInfo(path string) (VideoInfo, error) {
	cap, err := gocv.VideoCaptureFile(path)
	if err != nil {
		return VideoInfo{}, fmt.Errorf("%w: %s: %v", ErrVideoOpenFailed, path, err)
	}
	defer cap.Close()

	if !cap.IsOpened() {
		return VideoInfo{}, fmt.Errorf("%w: %s", ErrVideoOpenFailed, path)
	}

	width := int(cap.Get(gocv.VideoCaptureFrameWidth))
	height := int(cap.Get(gocv.VideoCaptureFrameHeight))
	fps := cap.Get(gocv.VideoCaptureFPS)
	frameCount := int(cap.Get(gocv.VideoCaptureFrameCount))

	if width <= 0 || height <= 0 {
		return VideoInfo{}, fmt.Errorf("%w: %s reports invalid dimensions %dx%d",
			ErrVideoOpenFailed, path, width, height)
	}

	var duration float64
	if fps > 0 {
		duration = float64(frameCount) / fps
	}

	return VideoInfo{
		Width:        width,
		Height:       height,
		FPS:          fps,
		FrameCount:   frameCount,
		DurationSecs: duration,
		Codec:        fourccString(int64(cap.Get(gocv.VideoCaptureFOURCC))),
		Path:         path,
	}, nil
}

func fourccString(v int64) string {
	return string([]byte{
		byte(v & 0xff),
		byte((v >> 8) & 0xff),
		byte((v >> 16) & 0xff),
		byte((v >> 24) & 0xff),
	})
}

// ExtractFrame decodes a single frame by index. The caller owns the returned
// Mat and must Close it.
func ExtractFrame(videoPath string, frameNumber int) (gocv.Mat, error) {
	cap, err := gocv.VideoCaptureFile(videoPath)
	if err != nil {
		return gocv.Mat{}, fmt.Errorf("%w: %s: %v", ErrVideoOpenFailed, videoPath, err)
	}
	defer cap.Close()

	if !cap.IsOpened() {
		return gocv.Mat{}, fmt.Errorf("%w: %s", ErrVideoOpenFailed, videoPath)
	}

	cap.Set(gocv.VideoCapturePosFrames, float64(frameNumber))

	frame := gocv.NewMat()
	if ok := cap.Read(&frame); !ok || frame.Empty() {
		frame.Close()
		return gocv.Mat{}, fmt.Errorf("%w: empty frame %d in %s", ErrDecodeFailed, frameNumber, videoPath)
	}
	return frame, nil
}

// SaveFrame writes the first frame of the video to outputPath as a PNG, for
// callers that need a preview of the source.
func SaveFrame(videoPath, outputPath string) error {
	frame, err := ExtractFrame(videoPath, 0)
	if err != nil {
		return err
	}
	defer frame.Close()

	if ok := gocv.IMWriteWithParams(outputPath, frame, []int{gocv.IMWritePngCompression, 6}); !ok {
		return fmt.Errorf("%w: writing %s", ErrEncodeFailed, outputPath)
	}
	return nil
}

// VideoProcessor runs whole-video watermark removal jobs. Status must be
// non-nil; it is the handle the caller polls for progress and signals
// cancellation through. A nil Muxer disables audio preservation entirely.
type VideoProcessor struct {
	Status *Status
	Muxer  Muxer

	// TempDir holds the intermediate silent-video and audio files. Defaults
	// to a fixed directory under os.TempDir().
	TempDir string

	// Fourcc overrides the output codec tag. Defaults to avc1.
	Fourcc string
}

// Process removes the watermark region from every frame of inputPath and
// writes the result to outputPath, carrying over the source audio track when
// one can be extracted.
//
// The job is synchronous and may block for the full duration of the video.
// Frames are written in the exact order they are read, one at a time.
// Cancellation is polled once per frame; a cancelled job deletes all partial
// output and returns ErrCancelled.
func (p *VideoProcessor) Process(inputPath, outputPath string, region Region, opts Options) (*VideoResult, error) {
	p.Status.Reset()
	start := time.Now()

	info, err := ReadVideoInfo(inputPath)
	if err != nil {
		return nil, err
	}
	if info.FrameCount > 0 {
		p.Status.SetTotal(uint32(info.FrameCount))
	}

	if err := region.Validate(info.Width, info.Height); err != nil {
		return nil, err
	}

	tempDir := p.TempDir
	if tempDir == "" {
		tempDir = filepath.Join(os.TempDir(), "unwatermark")
	}
	if err := os.MkdirAll(tempDir, 0o755); err != nil {
		return nil, fmt.Errorf("create temp directory: %w", err)
	}

	// Audio extraction is best effort. A silent source, a missing track or a
	// missing tool all degrade to "no audio" and the job continues.
	// The silent intermediate keeps the output's container format so the
	// writer codec does not have to change between the two targets.
	silentExt := filepath.Ext(outputPath)
	if silentExt == "" {
		silentExt = ".mp4"
	}
	audioPath := filepath.Join(tempDir, "audio_temp.aac")
	silentPath := filepath.Join(tempDir, "video_no_audio"+silentExt)
	hasAudio := p.Muxer != nil && p.Muxer.ExtractAudio(inputPath, audioPath)
	if !hasAudio {
		log.Debug().Str("src", inputPath).Msg("no audio track extracted")
	}

	cap, err := gocv.VideoCaptureFile(inputPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrVideoOpenFailed, inputPath, err)
	}
	defer cap.Close()

	if !cap.IsOpened() {
		return nil, fmt.Errorf("%w: %s", ErrVideoOpenFailed, inputPath)
	}

	// With audio in hand the writer targets a temporary silent file and the
	// remux step below produces the final output.
	writerTarget := outputPath
	if hasAudio {
		writerTarget = silentPath
	}

	fourcc := p.Fourcc
	if fourcc == "" {
		fourcc = defaultFourcc
	}

	writer, err := gocv.VideoWriterFile(writerTarget, fourcc, info.FPS, info.Width, info.Height, true)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrWriterOpenFailed, writerTarget, err)
	}
	defer writer.Close()

	if !writer.IsOpened() {
		return nil, fmt.Errorf("%w: %s", ErrWriterOpenFailed, writerTarget)
	}

	// The region is fixed for the whole job, so the mask and its dilation are
	// computed once, not per frame.
	mask, err := BuildMask(info.Width, info.Height, region)
	if err != nil {
		return nil, err
	}
	defer mask.Close()

	dilated := DilateMask(mask, opts.DilatePixels)
	defer dilated.Close()

	method := InpaintMethodFor(opts.Algorithm)

	frame := gocv.NewMat()
	defer frame.Close()
	result := gocv.NewMat()
	defer result.Close()

	var processed uint32
	for {
		if p.Status.Cancelled() {
			writer.Close()
			os.Remove(writerTarget)
			if hasAudio {
				os.Remove(audioPath)
			}
			return nil, fmt.Errorf("%w: video processing cancelled at frame %d", ErrCancelled, processed)
		}

		if ok := cap.Read(&frame); !ok || frame.Empty() {
			break
		}

		if err := inpaintFrame(frame, dilated, &result, opts.InpaintRadius, method); err != nil {
			return nil, fmt.Errorf("%w: frame %d: %v", ErrInpaintingFailed, processed, err)
		}

		if err := writer.Write(result); err != nil {
			return nil, fmt.Errorf("%w: frame %d: %v", ErrEncodeFailed, processed, err)
		}

		processed = p.Status.FrameDone()
	}

	// Flush before the remux step reads the file.
	writer.Close()
	cap.Close()

	if hasAudio {
		remuxErr := p.Muxer.Remux(silentPath, audioPath, outputPath)
		os.Remove(silentPath)
		os.Remove(audioPath)
		if remuxErr != nil {
			return nil, fmt.Errorf("%w: %v", ErrRemuxFailed, remuxErr)
		}
	}

	elapsed := time.Since(start)
	log.Info().
		Int64("duration(ms)", elapsed.Milliseconds()).
		Uint32("frames", processed).
		Bool("audio", hasAudio).
		Str("dst", outputPath).
		Msg(filepath.Base(inputPath))

	return &VideoResult{
		OutputPath:      outputPath,
		FramesProcessed: processed,
		DurationSecs:    elapsed.Seconds(),
	}, nil
}
