package remover

import (
	"sync/atomic"
	"time"
)

// Progress is a point-in-time snapshot of a video job.
type Progress struct {
	CurrentFrame uint32
	TotalFrames  uint32
	Percent      float32
	// EstimatedRemainingSecs is nil until at least one frame has completed.
	EstimatedRemainingSecs *float64
}

// Status is the shared state between one running video job (the writer) and
// any number of polling observers. It is an explicit handle the caller
// creates, passes into the VideoProcessor, and keeps for polling; there is no
// hidden process-wide instance. One writer and many readers are safe; running
// two jobs against the same Status concurrently is not supported and must be
// serialized by the caller.
type Status struct {
	current   atomic.Uint32
	total     atomic.Uint32
	cancelled atomic.Bool
	startNano atomic.Int64
}

func NewStatus() *Status {
	return &Status{}
}

// Reset clears leftover state from any prior job. Called at the start of each
// video job, before the container is even opened.
func (s *Status) Reset() {
	s.cancelled.Store(false)
	s.current.Store(0)
	s.total.Store(0)
	s.startNano.Store(time.Now().UnixNano())
}

// RequestCancel is a fire-and-forget signal. The job observes it at the next
// frame boundary; the in-flight frame always completes first.
func (s *Status) RequestCancel() {
	s.cancelled.Store(true)
}

func (s *Status) Cancelled() bool {
	return s.cancelled.Load()
}

func (s *Status) SetTotal(frames uint32) {
	s.total.Store(frames)
}

// FrameDone bumps the frame counter and returns the new value.
func (s *Status) FrameDone() uint32 {
	return s.current.Add(1)
}

// Progress never divides by zero: percent is 0 while the total is unknown,
// including before any job has ever run.
func (s *Status) Progress() Progress {
	current := s.current.Load()
	total := s.total.Load()

	var percent float32
	if total > 0 {
		percent = float32(current) / float32(total) * 100
	}

	p := Progress{
		CurrentFrame: current,
		TotalFrames:  total,
		Percent:      percent,
	}

	if start := s.startNano.Load(); start > 0 && current > 0 && total > current {
		elapsed := time.Since(time.Unix(0, start)).Seconds()
		remaining := elapsed / float64(current) * float64(total-current)
		p.EstimatedRemainingSecs = &remaining
	}

	return p
}
