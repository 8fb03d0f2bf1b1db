// Package audio synthesises the game sounds and plays them through the speaker.
package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
)

const (
	sampleRate = beep.SampleRate(44100)

	hitFreq       = 880
	hitDuration   = 50 * time.Millisecond
	whistleFreq   = 2100
	whistleTrill  = 18 // Hz of the pea rattle
	whistleLength = 180 * time.Millisecond
)

var (
	initialized bool
)

// Init initializes the audio system
func Init() error {
	if initialized {
		return nil
	}

	err := speaker.Init(sampleRate, sampleRate.N(time.Second/30))
	if err != nil {
		return err
	}

	initialized = true
	return nil
}

// Close shuts down the audio system
func Close() {
	if initialized {
		speaker.Close()
		initialized = false
	}
}

// squareWave generates a square wave tone (more retro/8-bit feel)
func squareWave(freq float64, duration time.Duration) beep.Streamer {
	numSamples := sampleRate.N(duration)
	phase := 0.0
	phaseStep := freq / float64(sampleRate)

	return beep.StreamerFunc(func(samples [][2]float64) (n int, ok bool) {
		for i := range samples {
			if numSamples <= 0 {
				return i, false
			}
			val := 0.2
			if math.Mod(phase, 1.0) > 0.5 {
				val = -val
			}
			samples[i][0] = val
			samples[i][1] = val
			phase += phaseStep
			numSamples--
		}
		return len(samples), true
	})
}

// trill generates a sine tone whose pitch wobbles rate times per second
func trill(freq, rate float64, duration time.Duration) beep.Streamer {
	numSamples := sampleRate.N(duration)
	phase, t := 0.0, 0.0
	dt := 1 / float64(sampleRate)

	return beep.StreamerFunc(func(samples [][2]float64) (n int, ok bool) {
		for i := range samples {
			if numSamples <= 0 {
				return i, false
			}
			f := freq * (1 + 0.06*math.Sin(2*math.Pi*rate*t))
			val := math.Sin(phase) * 0.3
			samples[i][0] = val
			samples[i][1] = val
			phase += 2 * math.Pi * f * dt
			t += dt
			numSamples--
		}
		return len(samples), true
	})
}

func hitSound() beep.Streamer {
	// the hit is the loud one
	return &effects.Volume{Streamer: squareWave(hitFreq, hitDuration), Base: 2, Volume: 1}
}

func whistleSound() beep.Streamer {
	return &effects.Volume{
		Streamer: beep.Seq(
			trill(whistleFreq, whistleTrill, whistleLength),
			beep.Silence(sampleRate.N(40*time.Millisecond)),
			trill(whistleFreq, whistleTrill, whistleLength*2),
		),
		Base:   2,
		Volume: -1,
	}
}

// Player plays the match sounds, it stays silent when muted or when the
// speaker could not be initialised
type Player struct {
	muted bool
}

func NewPlayer(muted bool) *Player {
	return &Player{muted: muted}
}

func (p *Player) enabled() bool {
	return initialized && !p.muted
}

// PlayHit plays the sound of the ball bouncing off a blob
func (p *Player) PlayHit() {
	if !p.enabled() {
		return
	}
	speaker.Play(hitSound())
}

// PlayWhistle plays the referee whistle for faults and the first serve
func (p *Player) PlayWhistle() {
	if !p.enabled() {
		return
	}
	speaker.Play(whistleSound())
}
