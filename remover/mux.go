package remover

// Muxer splits and recombines the audio and video streams of a container. The
// video pipeline only ever talks to this narrow interface so it can run with a
// fake in tests; the real implementation shells out to ffmpeg.
type Muxer interface {
	// ExtractAudio writes the input's audio track to audioPath. A false
	// return means "no audio" (missing track, missing tool) and is never
	// fatal to the job.
	ExtractAudio(videoPath, audioPath string) bool

	// Remux combines a silent video with an extracted audio track into
	// outputPath, copying the video stream unmodified and overwriting any
	// existing file. The returned error carries the tool's diagnostics.
	Remux(videoPath, audioPath, outputPath string) error
}
