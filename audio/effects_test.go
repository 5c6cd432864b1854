package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"
)

const testRate = beep.SampleRate(44100)

// drainLen streams s to exhaustion and returns the sample count and peak amplitude
func drainLen(t *testing.T, s beep.Streamer) (int, float64) {
	t.Helper()
	buf := make([][2]float64, 512)
	total := 0
	peak := 0.0
	for i := 0; i < 10000; i++ {
		n, ok := s.Stream(buf)
		for _, smp := range buf[:n] {
			peak = math.Max(peak, math.Abs(smp[0]))
		}
		total += n
		if !ok {
			return total, peak
		}
	}
	t.Fatal("streamer never drained")
	return 0, 0
}

// TestOscillatorSine verifies sine wave generation
func TestOscillatorSine(t *testing.T) {
	osc := NewOscillator(440.0, 100*time.Millisecond, WaveSine, testRate)

	samples := make([][2]float64, 100)
	n, ok := osc.Stream(samples)
	if !ok || n != 100 {
		t.Fatalf("Stream = (%d, %v), want (100, true)", n, ok)
	}
	for i := 0; i < n; i++ {
		if samples[i][0] < -1.0 || samples[i][0] > 1.0 {
			t.Errorf("Sample %d out of range: %f", i, samples[i][0])
		}
		if samples[i][0] != samples[i][1] {
			t.Errorf("Sample %d channels differ", i)
		}
	}
	if osc.Err() != nil {
		t.Errorf("Expected no error, got: %v", osc.Err())
	}
}

// TestOscillatorSquare verifies square wave only produces full-scale values
func TestOscillatorSquare(t *testing.T) {
	osc := NewOscillator(220.0, 50*time.Millisecond, WaveSquare, testRate)

	samples := make([][2]float64, 50)
	n, _ := osc.Stream(samples)
	for i := 0; i < n; i++ {
		if v := samples[i][0]; v != -1.0 && v != 1.0 {
			t.Errorf("Square wave sample %d should be -1.0 or 1.0, got %f", i, v)
		}
	}
}

// TestOscillatorDuration verifies the oscillator ends after its duration
func TestOscillatorDuration(t *testing.T) {
	osc := NewOscillator(440.0, 10*time.Millisecond, WaveSaw, testRate)
	n, _ := drainLen(t, osc)
	if want := testRate.N(10 * time.Millisecond); n != want {
		t.Errorf("Streamed %d samples, want %d", n, want)
	}
}

// TestEnvelopeShape verifies the envelope starts silent and peaks in the sustain phase
func TestEnvelopeShape(t *testing.T) {
	dur := 20 * time.Millisecond
	osc := NewOscillator(0, dur, WaveSquare, testRate) // DC at +1
	env := NewEnvelope(osc, dur, 5*time.Millisecond, 5*time.Millisecond, testRate)

	total := testRate.N(dur)
	samples := make([][2]float64, total)
	n, _ := env.Stream(samples)
	if n != total {
		t.Fatalf("Streamed %d samples, want %d", n, total)
	}
	if samples[0][0] != 0 {
		t.Errorf("First sample = %f, want 0 (attack start)", samples[0][0])
	}
	if mid := samples[total/2][0]; mid != 1.0 {
		t.Errorf("Sustain sample = %f, want 1.0", mid)
	}
	if last := samples[total-1][0]; last >= 0.01 {
		t.Errorf("Last sample = %f, want near 0 (release end)", last)
	}
}

func TestMergeFrequencyRisesWithTile(t *testing.T) {
	if f := MergeFrequency(2); f != 440.0 {
		t.Errorf("MergeFrequency(2) = %f, want 440", f)
	}
	prev := 0.0
	for tile := uint32(2); tile <= 2048; tile <<= 1 {
		f := MergeFrequency(tile)
		if f <= prev {
			t.Errorf("MergeFrequency(%d) = %f, not above %f", tile, f, prev)
		}
		prev = f
	}
}

func TestCueStreamers(t *testing.T) {
	tests := []struct {
		cue  Cue
		want int
	}{
		{CueMerge, testRate.N(mergeDuration)},
		{CueWin, testRate.N(winNote1Duration) + testRate.N(winNote2Duration)},
		{CueLose, testRate.N(loseDuration)},
	}

	for _, tt := range tests {
		t.Run(tt.cue.String(), func(t *testing.T) {
			s := CueStreamer(tt.cue, 64, testRate, 1.0)
			if s == nil {
				t.Fatal("nil streamer")
			}
			n, peak := drainLen(t, s)
			if n != tt.want {
				t.Errorf("Streamed %d samples, want %d", n, tt.want)
			}
			if peak == 0 {
				t.Error("cue is silent")
			}
		})
	}

	if CueStreamer(cueCount, 2, testRate, 1.0) != nil {
		t.Error("unknown cue produced a streamer")
	}
}

func TestZeroVolumeIsSilent(t *testing.T) {
	_, peak := drainLen(t, CueStreamer(CueLose, 0, testRate, 0))
	if peak != 0 {
		t.Errorf("peak = %f at zero volume", peak)
	}
}

func TestUninitializedManagerIgnoresCues(t *testing.T) {
	sm := NewSoundManager(2.0)
	if sm.volume != 1.0 {
		t.Errorf("volume = %f, want clamped to 1", sm.volume)
	}
	// Must not touch the speaker
	sm.Play(CueMerge, 2)
	sm.Close()

	var p Player = Silent{}
	p.Play(CueWin, 2048)
	p.Close()
}
