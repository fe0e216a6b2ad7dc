package recorder

import (
	"github.com/rs/zerolog"

	"github.com/jgavinray/recorder/internal/audio"
)

// newCaptureFunc builds the hardware on-data callback for one source. The
// callback never blocks: it converts the block to 16-bit and attempts a
// non-blocking enqueue, dropping the block with a log entry when the mixer
// has fallen behind. Blocks arriving after a stop request are discarded so a
// partially-stopped stream cannot enqueue stale audio.
func newCaptureFunc(session *Session, blocks chan<- []int16, log zerolog.Logger, source string) func([]float32) {
	return func(in []float32) {
		if !session.Running() {
			return
		}

		samples := audio.ToInt16(in)

		select {
		case blocks <- samples:
		default:
			log.Warn().Str("source", source).Int("samples", len(samples)).Msg("queue full, dropping block")
		}
	}
}
