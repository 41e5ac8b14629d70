// Package ffmpeg shells out to the ffmpeg binary for the audio extract and
// remux steps of the video pipeline.
package ffmpeg

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/cyber-nic/unwatermark/remover"
)

const (
	defaultBinary = "ffmpeg"
	audioCodec    = "aac"
	audioBitrate  = "192k"
)

// Available reports whether an ffmpeg binary can be found on PATH.
func Available() bool {
	_, err := exec.LookPath(defaultBinary)
	return err == nil
}

// Muxer implements remover.Muxer on top of the ffmpeg CLI.
type Muxer struct {
	// Binary optionally overrides the ffmpeg executable path.
	Binary string
}

var _ remover.Muxer = (*Muxer)(nil)

func New() *Muxer {
	return &Muxer{}
}

func (m *Muxer) binary() string {
	if m.Binary != "" {
		return m.Binary
	}
	return defaultBinary
}

func extractArgs(videoPath, audioPath string) []string {
	return []string{
		"-y",
		"-i", videoPath,
		"-vn",
		"-acodec", audioCodec,
		"-b:a", audioBitrate,
		audioPath,
	}
}

func remuxArgs(videoPath, audioPath, outputPath string) []string {
	return []string{
		"-y",
		"-i", videoPath,
		"-i", audioPath,
		"-c:v", "copy",
		"-c:a", audioCodec,
		"-strict", "experimental",
		outputPath,
	}
}

// ExtractAudio writes the source's audio track to audioPath as AAC. Any
// failure, including a missing binary or a silent source, reads as "no audio".
func (m *Muxer) ExtractAudio(videoPath, audioPath string) bool {
	cmd := exec.Command(m.binary(), extractArgs(videoPath, audioPath)...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		log.Debug().Err(err).Str("src", videoPath).
			Str("output", strings.TrimSpace(string(out))).
			Msg("audio extraction failed")
		return false
	}
	return true
}

// Remux combines the silent video with the extracted audio into outputPath,
// copying the video stream bit-for-bit and re-encoding the audio. The tool's
// standard error is surfaced verbatim in the returned error.
func (m *Muxer) Remux(videoPath, audioPath, outputPath string) error {
	var stderr bytes.Buffer
	cmd := exec.Command(m.binary(), remuxArgs(videoPath, audioPath, outputPath)...)
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%w: ffmpeg: %v: %s",
			remover.ErrExternalToolFailed, err, strings.TrimSpace(stderr.String()))
	}
	return nil
}
