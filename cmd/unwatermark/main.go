// Command unwatermark removes a rectangular watermark from an image or video
// by inpainting the region from surrounding pixels. Video jobs keep the
// source audio track when ffmpeg is available.
package main

import (
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/cyber-nic/unwatermark/ffmpeg"
	"github.com/cyber-nic/unwatermark/remover"
)

type AppConfig struct {
	Debug   bool            `yaml:"debug"`
	Info    bool            `yaml:"info"`
	Human   bool            `yaml:"human"`
	Region  remover.Region  `yaml:"region"`
	Options remover.Options `yaml:"options"`
}

func main() {
	// Read flags
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	srcPath := pflag.String("src", "", "sets input image or video path")
	dstPath := pflag.String("dst", "", "sets destination path (temp workspace when empty)")
	configFilename := pflag.String("config", "", "config file")
	debugFlag := pflag.Bool("debug", false, "debug logging level")
	x := pflag.Int("x", 0, "region left edge")
	y := pflag.Int("y", 0, "region top edge")
	width := pflag.Int("width", 0, "region width")
	height := pflag.Int("height", 0, "region height")
	algorithm := pflag.String("algorithm", "", "inpainting algorithm: telea or navier_stokes")
	dilate := pflag.Int("dilate", -1, "mask dilation margin in pixels")
	radius := pflag.Float32("radius", 0, "inpainting sampling radius")
	lossless := pflag.Bool("lossless", false, "lossless image output")
	cleanup := pflag.Bool("cleanup", false, "remove workspace temp files and exit")
	pflag.Parse()

	// Read config file, flags override
	cfg := AppConfig{Options: remover.DefaultOptions()}
	if *configFilename != "" {
		configFile, err := os.ReadFile(*configFilename)
		if err != nil {
			log.Fatal().Err(err).Str("config", *configFilename).Msg("reading config")
		}
		if err := yaml.Unmarshal(configFile, &cfg); err != nil {
			log.Fatal().Err(err).Str("config", *configFilename).Msg("parsing config")
		}
	}

	debug := cfg.Debug
	if *debugFlag {
		debug = true
	}

	// Set log level
	zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	if cfg.Info {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	if cfg.Human {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	ws := remover.NewWorkspace()

	if *cleanup {
		if err := ws.Cleanup(); err != nil {
			log.Fatal().Err(err).Msg("cleaning workspace")
		}
		return
	}

	// Perform input validation
	if *srcPath == "" {
		log.Fatal().Msg("src is required")
	}

	region := cfg.Region
	if *width > 0 && *height > 0 {
		region = remover.Region{X: *x, Y: *y, Width: *width, Height: *height}
	}

	opts := cfg.Options
	if *algorithm != "" {
		opts.Algorithm = *algorithm
	}
	if *dilate >= 0 {
		opts.DilatePixels = *dilate
	}
	if *radius > 0 {
		opts.InpaintRadius = *radius
	}
	if *lossless {
		opts.Lossless = true
	}

	// Start
	start := time.Now()
	base := filepath.Base(*srcPath)
	log.Debug().Str("src", *srcPath).Msg(base)

	if isVideoPath(*srcPath) {
		runVideo(ws, *srcPath, *dstPath, region, opts)
	} else {
		runImage(ws, *srcPath, *dstPath, region, opts)
	}

	log.Debug().Int64("duration(ms)", time.Since(start).Milliseconds()).Msg(base)
}

func isVideoPath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp4", ".mov", ".avi", ".mkv", ".webm", ".m4v":
		return true
	}
	return false
}

func runImage(ws *remover.Workspace, src, dst string, region remover.Region, opts remover.Options) {
	if dst == "" {
		ext := strings.TrimPrefix(filepath.Ext(src), ".")
		if ext == "" {
			ext = "png"
		}
		var err error
		if dst, err = ws.OutputPath("processed", ext); err != nil {
			log.Fatal().Err(err).Msg("choosing output path")
		}
	}

	result, err := remover.ProcessImage(src, dst, region, opts)
	if err != nil {
		log.Fatal().Err(err).Str("src", src).Msg("image processing failed")
	}

	// Done
	log.Info().
		Int64("original", result.OriginalSize).
		Int64("processed", result.ProcessedSize).
		Str("dst", result.OutputPath).
		Msg(filepath.Base(src))
}

func runVideo(ws *remover.Workspace, src, dst string, region remover.Region, opts remover.Options) {
	if dst == "" {
		var err error
		if dst, err = ws.OutputPath("processed", "mp4"); err != nil {
			log.Fatal().Err(err).Msg("choosing output path")
		}
	}

	status := remover.NewStatus()
	proc := &remover.VideoProcessor{
		Status:  status,
		Muxer:   ffmpeg.New(),
		TempDir: ws.Dir,
	}
	if !ffmpeg.Available() {
		log.Warn().Msg("ffmpeg not found on PATH, output will have no audio")
	}

	// Interrupt requests cooperative cancellation; the in-flight frame
	// finishes before the job stops and cleans up.
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sig)
	go func() {
		<-sig
		log.Info().Msg("cancellation requested")
		status.RequestCancel()
	}()

	done := make(chan struct{})
	go pollProgress(status, done)

	result, err := proc.Process(src, dst, region, opts)
	close(done)
	if err != nil {
		log.Fatal().Err(err).Str("src", src).Msg("video processing failed")
	}

	// Done
	log.Info().
		Uint32("frames", result.FramesProcessed).
		Float64("duration(s)", result.DurationSecs).
		Str("dst", result.OutputPath).
		Msg(filepath.Base(src))
}

func pollProgress(status *remover.Status, done <-chan struct{}) {
	var bar *progressbar.ProgressBar
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			if bar != nil {
				bar.Finish()
			}
			return
		case <-ticker.C:
			p := status.Progress()
			if p.TotalFrames == 0 {
				continue
			}
			if bar == nil {
				bar = progressbar.NewOptions(int(p.TotalFrames),
					progressbar.OptionSetDescription("processing"),
					progressbar.OptionShowCount(),
					progressbar.OptionSetWidth(50),
				)
			}
			bar.Set(int(p.CurrentFrame))
		}
	}
}
