package audio

import (
	"math"
	"math/bits"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates a fixed-length raw wave
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates an oscillator that ends after duration
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies linear attack/release shaping and cuts the stream at its total length
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	sustainSamples int
	totalSamples   int
}

// NewEnvelope wraps s with an attack/release envelope
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)

	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		sustainSamples: max(total-att-rel, 0),
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		releaseStart := e.attackSamples + e.sustainSamples
		if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = max(float64(e.totalSamples-e.position)/float64(e.releaseSamples), 0)
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}

	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales s linearly; math.Log2(0) is -Inf so zero maps to silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// MergeFrequency returns the blip pitch for a merged tile: A4 for 2, two semitones per doubling
func MergeFrequency(tile uint32) float64 {
	tier := 1
	if tile > 1 {
		tier = bits.Len32(tile) - 1
	}
	return 440.0 * math.Pow(2, float64(tier-1)*2/12)
}

// CreateMergeSound generates a short sine blip pitched by tile
func CreateMergeSound(rate beep.SampleRate, tile uint32, vol float64) beep.Streamer {
	var tone beep.Streamer
	if sine, err := generators.SineTone(rate, MergeFrequency(tile)); err == nil {
		tone = beep.Take(rate.N(mergeDuration), sine)
	} else {
		// Pitch above Nyquist for very low rates
		tone = NewOscillator(MergeFrequency(tile), mergeDuration, WaveSine, rate)
	}
	shaped := NewEnvelope(tone, mergeDuration, mergeAttack, mergeRelease, rate)
	return newVolume(shaped, vol)
}

// CreateWinSound generates a rising two-note chime
func CreateWinSound(rate beep.SampleRate, vol float64) beep.Streamer {
	// E5
	n1 := NewOscillator(659.25, winNote1Duration, WaveSquare, rate)
	n1Shaped := NewEnvelope(n1, winNote1Duration, winAttack, winNote1Release, rate)

	// A5
	n2 := NewOscillator(880.0, winNote2Duration, WaveSquare, rate)
	n2Shaped := NewEnvelope(n2, winNote2Duration, winAttack, winNote2Release, rate)

	return newVolume(beep.Seq(n1Shaped, n2Shaped), vol*0.5)
}

// CreateLoseSound generates a low saw buzz
func CreateLoseSound(rate beep.SampleRate, vol float64) beep.Streamer {
	osc := NewOscillator(110.0, loseDuration, WaveSaw, rate)
	shaped := NewEnvelope(osc, loseDuration, loseAttack, loseRelease, rate)
	return newVolume(shaped, vol)
}

// CueStreamer returns the streamer for cue, or nil for an unknown cue
func CueStreamer(cue Cue, tile uint32, rate beep.SampleRate, vol float64) beep.Streamer {
	switch cue {
	case CueMerge:
		return CreateMergeSound(rate, tile, vol)
	case CueWin:
		return CreateWinSound(rate, vol)
	case CueLose:
		return CreateLoseSound(rate, vol)
	default:
		return nil
	}
}
