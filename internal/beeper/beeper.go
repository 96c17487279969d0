// Package beeper is the host's Web-Audio-equivalent: it decodes an mp3
// beep sound once and plays it on every 0->positive edge of the VM's
// sound timer. It is a host collaborator; the core only exposes a level
// (beeper_active), never an edge -- this package derives the edge.
package beeper

import (
	"os"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
)

// Beeper plays a beep tone each time the VM's beeper transitions from
// inactive to active.
type Beeper struct {
	streamer  beep.StreamSeekCloser
	format    beep.Format
	wasActive bool
}

// New decodes assetPath (an mp3 beep sound) and initializes the speaker.
// If the asset can't be opened or decoded, New returns an error and the
// host is expected to run without audio.
func New(assetPath string) (*Beeper, error) {
	f, err := os.Open(assetPath)
	if err != nil {
		return nil, err
	}

	streamer, format, err := mp3.Decode(f)
	if err != nil {
		return nil, err
	}

	if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10)); err != nil {
		streamer.Close()
		return nil, err
	}

	return &Beeper{streamer: streamer, format: format}, nil
}

// Update plays the beep sound exactly once per 0->positive transition of
// active, matching the VM's level-based beeper_active reading.
func (b *Beeper) Update(active bool) {
	if active && !b.wasActive {
		b.streamer.Seek(0)
		speaker.Play(b.streamer)
	}
	b.wasActive = active
}

// Close releases the decoded audio stream.
func (b *Beeper) Close() {
	if b.streamer != nil {
		b.streamer.Close()
	}
}
