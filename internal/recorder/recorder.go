// Package recorder implements the capture-mix-persist pipeline: capture
// callbacks feed per-source queues, a dedicated mixer goroutine combines the
// streams into a single stereo timeline, and a WAV sink persists the result.
package recorder

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/jgavinray/recorder/internal/audio"
	"github.com/jgavinray/recorder/internal/config"
	"github.com/jgavinray/recorder/internal/wav"
)

// ErrMixerFailure marks the mixer goroutine ending abnormally rather than
// through its normal loop exit, distinct from sink I/O errors.
var ErrMixerFailure = errors.New("recorder: mixer ended abnormally")

const (
	// queueDepth bounds each source's block queue. At typical callback
	// cadence this holds over half a second of audio; a full queue drops
	// the newest block rather than block the real-time callback.
	queueDepth = 64

	outputChannels = 2
	stopPoll       = 100 * time.Millisecond
)

// Recorder captures from a microphone and, optionally, a system-audio
// loopback device, mixing both into a single stereo WAV file.
type Recorder struct {
	session *Session
	log     zerolog.Logger

	mic       audio.Source
	micConfig audio.StreamConfig
	sys       audio.Source // nil when system audio is skipped
	sysConfig audio.StreamConfig
}

// Result describes a finished recording.
type Result struct {
	Path  string
	Bytes int64
}

// New creates a recorder for the given sources. sys may be nil.
func New(mic audio.Source, micConfig audio.StreamConfig, sys audio.Source, sysConfig audio.StreamConfig, log zerolog.Logger) *Recorder {
	return &Recorder{
		session:   NewSession(),
		log:       log,
		mic:       mic,
		micConfig: micConfig,
		sys:       sys,
		sysConfig: sysConfig,
	}
}

// RequestStop ends the session. Safe to call from any goroutine, including a
// signal handler.
func (r *Recorder) RequestStop() {
	r.session.RequestStop()
}

// Filename returns the output file name for a session started at t, rendered
// in UTC.
func Filename(t time.Time) string {
	return t.UTC().Format("01-02-2006-15-04") + "-recording.wav"
}

// Record runs a recording session until RequestStop, then drains and
// finalizes the output file. The output is always stereo 16-bit PCM at the
// higher of the two source sample rates.
func (r *Recorder) Record(cfg *config.Config) (*Result, error) {
	path := cfg.RecordingPath(Filename(time.Now()))

	outputRate := r.micConfig.SampleRate
	if r.sys != nil && r.sysConfig.SampleRate > outputRate {
		outputRate = r.sysConfig.SampleRate
	}

	sink, err := wav.NewWriter(path, outputChannels, outputRate)
	if err != nil {
		return nil, err
	}

	micBlocks := make(chan []int16, queueDepth)
	sysBlocks := make(chan []int16, queueDepth)

	m := newMixer(r.session, sink, r.log, micBlocks, r.micConfig.Channels, sysBlocks, r.sysConfig.Channels)

	mixerDone := make(chan error, 1)
	go func() {
		defer func() {
			if p := recover(); p != nil {
				mixerDone <- fmt.Errorf("%w: %v", ErrMixerFailure, p)
			}
		}()
		mixerDone <- m.run()
	}()

	// The mixer goroutine is already running; from here on every failure
	// path must stop the session and join it so the sink is finalized
	// exactly once.
	micStream, err := r.openStream(r.mic, r.micConfig, micBlocks, "microphone")
	if err != nil {
		close(micBlocks)
		close(sysBlocks)
		return nil, r.abort(mixerDone, err)
	}

	var sysStream audio.Stream
	if r.sys != nil {
		sysStream, err = r.openStream(r.sys, r.sysConfig, sysBlocks, "system")
		if err != nil {
			micStream.Close()
			close(micBlocks)
			close(sysBlocks)
			return nil, r.abort(mixerDone, err)
		}
	} else {
		// No producer will ever feed this queue.
		close(sysBlocks)
	}

	if err := micStream.Start(); err != nil {
		micStream.Close()
		if sysStream != nil {
			sysStream.Close()
		}
		close(micBlocks)
		if r.sys != nil {
			close(sysBlocks)
		}
		return nil, r.abort(mixerDone, fmt.Errorf("failed to start microphone stream: %w", err))
	}
	if sysStream != nil {
		if err := sysStream.Start(); err != nil {
			micStream.Stop()
			micStream.Close()
			sysStream.Close()
			close(micBlocks)
			close(sysBlocks)
			return nil, r.abort(mixerDone, fmt.Errorf("failed to start system stream: %w", err))
		}
	}

	r.log.Info().
		Str("path", path).
		Int("channels", outputChannels).
		Int("sample_rate", outputRate).
		Msg("recording started")

	for r.session.Running() {
		time.Sleep(stopPoll)
	}

	// Stop the streams before closing the queues: once Stop returns the
	// hardware no longer invokes the callbacks, so no send can race the
	// close.
	if err := micStream.Stop(); err != nil {
		r.log.Warn().Err(err).Msg("failed to stop microphone stream")
	}
	micStream.Close()
	close(micBlocks)

	if sysStream != nil {
		if err := sysStream.Stop(); err != nil {
			r.log.Warn().Err(err).Msg("failed to stop system stream")
		}
		sysStream.Close()
		close(sysBlocks)
	}

	if err := <-mixerDone; err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat finished recording: %w", err)
	}

	r.log.Info().Str("path", path).Int64("bytes", info.Size()).Msg("recording complete")
	return &Result{Path: path, Bytes: info.Size()}, nil
}

// abort stops the session, joins the mixer and returns cause, logging any
// secondary mixer error.
func (r *Recorder) abort(mixerDone <-chan error, cause error) error {
	r.session.RequestStop()
	if err := <-mixerDone; err != nil {
		r.log.Warn().Err(err).Msg("mixer error during abort")
	}
	return cause
}

func (r *Recorder) openStream(src audio.Source, cfg audio.StreamConfig, blocks chan<- []int16, name string) (audio.Stream, error) {
	onData := newCaptureFunc(r.session, blocks, r.log, name)
	onErr := func(err error) {
		r.log.Warn().Err(err).Str("source", name).Msg("stream error")
	}

	stream, err := src.OpenInputStream(cfg, onData, onErr)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s stream: %w", name, err)
	}
	return stream, nil
}
