package audio

import "math"

// StreamConfig describes the negotiated format of one input source, fixed at
// session start.
type StreamConfig struct {
	Channels   int
	SampleRate int
}

// Stream is a running hardware input stream.
type Stream interface {
	Start() error
	Stop() error
	Close() error
}

// Source is one input device capable of producing a callback-driven stream.
// onData receives interleaved float32 samples in [-1, 1]; it must never
// block. onErr receives non-fatal runtime stream errors.
type Source interface {
	Name() string
	DefaultConfig() (StreamConfig, error)
	OpenInputStream(cfg StreamConfig, onData func([]float32), onErr func(error)) (Stream, error)
}

// ToInt16 converts float samples to signed 16-bit, clamping out-of-range
// values to the rails before scaling.
func ToInt16(in []float32) []int16 {
	out := make([]int16, len(in))
	for i, s := range in {
		if s > 1.0 {
			s = 1.0
		} else if s < -1.0 {
			s = -1.0
		}
		out[i] = int16(s * math.MaxInt16)
	}
	return out
}
