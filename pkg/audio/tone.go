// Package audio plays the continuous alarm tone for escalated alerts. Tones
// are synthesized directly (square wave for "beep", sine for "chime") so no
// sound assets need to ship with the binary.
package audio

import (
	"errors"
	"log"
	"math"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

const sampleRate = 44100

// Global audio context singleton. Created lazily on first use; if the audio
// device never comes up, tones are unavailable for the rest of the process
// and callers degrade to visual-only alerts.
var (
	globalCtx     *oto.Context
	globalCtxOnce sync.Once
	ctxReady      bool
)

func initContext() {
	globalCtxOnce.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   sampleRate,
			ChannelCount: 1,
			Format:       oto.FormatSignedInt16LE,
		}

		ctx, readyChan, err := oto.NewContext(op)
		if err != nil {
			log.Printf("Failed to initialize audio context: %v", err)
			return
		}

		// Wait for the hardware audio devices to be ready
		<-readyChan

		globalCtx = ctx
		ctxReady = true
		log.Println("Audio context initialized successfully")
	})
}

// toneWave is an endless PCM stream of a single tone. oto pulls samples from
// it until the player is closed.
type toneWave struct {
	freq   float64
	square bool
	gain   float64
	pos    int64
}

func (w *toneWave) Read(p []byte) (int, error) {
	n := len(p) - len(p)%2
	for i := 0; i < n; i += 2 {
		v := math.Sin(2 * math.Pi * w.freq * float64(w.pos) / sampleRate)
		if w.square {
			if v >= 0 {
				v = 1
			} else {
				v = -1
			}
		}
		sample := int16(v * w.gain * 32767)
		p[i] = byte(sample)
		p[i+1] = byte(sample >> 8)
		w.pos++
	}
	return n, nil
}

// Tone is a continuously playing alarm tone
type Tone struct {
	player *oto.Player
}

// StartTone begins playing the named sound at the given volume. "chime" is a
// 660 Hz sine, anything else a 880 Hz square, matching the alarm-config
// sounds the backend stores. Returns an error if the audio context is not
// available; callers log it and keep the alert visual-only.
func StartTone(sound string, volumePercent int) (*Tone, error) {
	initContext()
	if !ctxReady || globalCtx == nil {
		return nil, errors.New("audio context not ready")
	}

	if volumePercent < 0 {
		volumePercent = 0
	}
	if volumePercent > 100 {
		volumePercent = 100
	}

	wave := &toneWave{gain: float64(volumePercent) / 100}
	if sound == "chime" {
		wave.freq = 660
	} else {
		wave.freq = 880
		wave.square = true
	}

	player := globalCtx.NewPlayer(wave)
	player.Play()
	return &Tone{player: player}, nil
}

// Stop ends the tone. Safe on a nil Tone.
func (t *Tone) Stop() {
	if t == nil || t.player == nil {
		return
	}
	if err := t.player.Close(); err != nil {
		log.Printf("Failed to close tone player: %v", err)
	}
	t.player = nil
}

// Preview plays a short burst of the given sound, used by the settings
// window's test button.
func Preview(sound string, volumePercent int, d time.Duration) error {
	tone, err := StartTone(sound, volumePercent)
	if err != nil {
		return err
	}
	time.AfterFunc(d, tone.Stop)
	return nil
}
