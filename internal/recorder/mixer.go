package recorder

import (
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"
)

// Sink consumes stereo frames in timeline order and is finalized exactly
// once after the last frame.
type Sink interface {
	WriteFrame(left, right int16) error
	Finalize() error
}

const idleSleep = 10 * time.Millisecond

// sourceQueue couples one source's block channel with its channel layout and
// the accumulation buffer awaiting alignment. The buffer is owned by the
// mixer goroutine alone.
type sourceQueue struct {
	blocks   <-chan []int16
	channels int

	buf      []int16 // stereo-interleaved
	received uint64
}

// drain performs a non-blocking receive of every currently queued block,
// expanding mono blocks to stereo pairs. Reports whether anything arrived.
func (q *sourceQueue) drain() bool {
	got := false
	for {
		select {
		case block, ok := <-q.blocks:
			if !ok {
				return got
			}
			got = true
			q.received += uint64(len(block))
			q.buf = append(q.buf, expandStereo(block, q.channels)...)
		default:
			return got
		}
	}
}

// trim discards the consumed prefix, keeping the remainder at the front of
// the buffer.
func (q *sourceQueue) trim(n int) {
	q.buf = append(q.buf[:0], q.buf[n:]...)
}

// expandStereo duplicates mono samples into left/right pairs. Stereo blocks
// pass through unchanged.
func expandStereo(block []int16, channels int) []int16 {
	if channels != 1 {
		return block
	}
	out := make([]int16, 0, len(block)*2)
	for _, s := range block {
		out = append(out, s, s)
	}
	return out
}

// mixSample additively combines two 16-bit samples, clipping the sum to the
// 16-bit range instead of wrapping.
func mixSample(a, b int16) int16 {
	sum := int32(a) + int32(b)
	if sum > math.MaxInt16 {
		return math.MaxInt16
	}
	if sum < math.MinInt16 {
		return math.MinInt16
	}
	return int16(sum)
}

// sampleAt reads buf[i], treating anything past the end as silence.
func sampleAt(buf []int16, i int) int16 {
	if i < len(buf) {
		return buf[i]
	}
	return 0
}

// mixer combines two independently-arriving sample streams into one stereo
// timeline. It is the sole writer to the sink.
type mixer struct {
	session *Session
	sink    Sink
	log     zerolog.Logger

	mic *sourceQueue
	sys *sourceQueue

	written uint64
}

func newMixer(session *Session, sink Sink, log zerolog.Logger, mic <-chan []int16, micChannels int, sys <-chan []int16, sysChannels int) *mixer {
	return &mixer{
		session: session,
		sink:    sink,
		log:     log,
		mic:     &sourceQueue{blocks: mic, channels: micChannels},
		sys:     &sourceQueue{blocks: sys, channels: sysChannels},
	}
}

// run loops until the session has stopped and both queues have gone quiet,
// then flushes whatever is left and finalizes the sink. A sink write failure
// aborts the loop: the file is not salvaged.
func (m *mixer) run() error {
	for {
		received := m.mic.drain()
		if m.sys.drain() {
			received = true
		}

		if err := m.mixOverlap(); err != nil {
			return err
		}
		if err := m.passThroughStarved(); err != nil {
			return err
		}

		// Blocks enqueued before the stop request are still processed:
		// exit only once a full iteration sees nothing new.
		if !m.session.Running() && !received {
			break
		}
		if !received {
			time.Sleep(idleSleep)
		}
	}

	if err := m.finalDrain(); err != nil {
		return err
	}

	if err := m.sink.Finalize(); err != nil {
		return fmt.Errorf("failed to finalize recording: %w", err)
	}

	m.log.Info().
		Uint64("mic_samples", m.mic.received).
		Uint64("sys_samples", m.sys.received).
		Uint64("samples_written", m.written).
		Msg("mixer finished")
	return nil
}

// mixOverlap combines the overlapping prefix of both buffers, one stereo
// pair at a time, and trims the consumed samples.
func (m *mixer) mixOverlap() error {
	minLen := len(m.mic.buf)
	if len(m.sys.buf) < minLen {
		minLen = len(m.sys.buf)
	}
	pairs := minLen / 2
	if pairs == 0 {
		return nil
	}

	for i := 0; i < pairs; i++ {
		left := mixSample(m.mic.buf[i*2], m.sys.buf[i*2])
		right := mixSample(m.mic.buf[i*2+1], m.sys.buf[i*2+1])
		if err := m.writeFrame(left, right); err != nil {
			return err
		}
	}
	m.mic.trim(pairs * 2)
	m.sys.trim(pairs * 2)
	return nil
}

// passThroughStarved writes one source's buffered pairs unmixed when the
// other source has nothing at all, so a fast source never waits indefinitely
// behind a slow or absent one.
func (m *mixer) passThroughStarved() error {
	switch {
	case len(m.sys.buf) == 0 && len(m.mic.buf) >= 2:
		return m.passThrough(m.mic)
	case len(m.mic.buf) == 0 && len(m.sys.buf) >= 2:
		return m.passThrough(m.sys)
	}
	return nil
}

func (m *mixer) passThrough(q *sourceQueue) error {
	pairs := len(q.buf) / 2
	for i := 0; i < pairs; i++ {
		if err := m.writeFrame(q.buf[i*2], q.buf[i*2+1]); err != nil {
			return err
		}
	}
	q.trim(pairs * 2)
	return nil
}

// finalDrain flushes everything still buffered after the loop has exited,
// mixing the overlap and treating the missing counterpart of the longer
// buffer as silence. Nothing is dropped; an odd trailing sample becomes a
// frame with a silent right channel.
func (m *mixer) finalDrain() error {
	maxLen := len(m.mic.buf)
	if len(m.sys.buf) > maxLen {
		maxLen = len(m.sys.buf)
	}
	frames := (maxLen + 1) / 2

	for i := 0; i < frames; i++ {
		left := mixSample(sampleAt(m.mic.buf, i*2), sampleAt(m.sys.buf, i*2))
		right := mixSample(sampleAt(m.mic.buf, i*2+1), sampleAt(m.sys.buf, i*2+1))
		if err := m.writeFrame(left, right); err != nil {
			return err
		}
	}
	m.mic.buf = m.mic.buf[:0]
	m.sys.buf = m.sys.buf[:0]
	return nil
}

func (m *mixer) writeFrame(left, right int16) error {
	if err := m.sink.WriteFrame(left, right); err != nil {
		return fmt.Errorf("failed to write frame: %w", err)
	}
	m.written += 2
	return nil
}
