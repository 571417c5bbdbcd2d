package audio

import (
	"encoding/binary"
	"math"
	"time"
)

// SampleRate is the rate every backend plays at.
const SampleRate = 44100

// Synth renders melodies with a single voice: a blend of a square and a sine
// oscillator shaped by a linear attack/release envelope.
type Synth struct {
	SampleRate int
	// Volume scales the output, 0..1.
	Volume float64
	// SquareMix is the square oscillator's share of the voice, 0..1.
	SquareMix float64
	Attack    time.Duration
	Release   time.Duration
}

func DefaultSynth() Synth {
	return Synth{
		SampleRate: SampleRate,
		Volume:     0.25,
		SquareMix:  0.35,
		Attack:     8 * time.Millisecond,
		Release:    40 * time.Millisecond,
	}
}

func (s Synth) samples(d time.Duration) int {
	return int(math.Round(d.Seconds() * float64(s.SampleRate)))
}

// Render produces one loop of m as mono samples in [-1, 1].
func (s Synth) Render(m Melody) []float64 {
	if s.SampleRate <= 0 {
		return nil
	}
	beat := m.Beat()
	out := make([]float64, 0, s.samples(m.Duration()))
	attack := s.samples(s.Attack)
	release := s.samples(s.Release)
	volume := max(0, min(s.Volume, 1))
	mix := max(0, min(s.SquareMix, 1))

	for _, n := range m.Notes {
		count := s.samples(time.Duration(n.Beats * float64(beat)))
		if n.Freq <= 0 {
			out = append(out, make([]float64, count)...)
			continue
		}
		step := n.Freq / float64(s.SampleRate)
		var phase float64
		for i := range count {
			sq := 1.0
			if phase >= 0.5 {
				sq = -1.0
			}
			v := mix*sq + (1-mix)*math.Sin(2*math.Pi*phase)
			out = append(out, v*volume*envelope(i, count, attack, release))

			phase += step
			phase -= math.Floor(phase)
		}
	}
	return out
}

// envelope returns the gain at sample i of a note n samples long.
func envelope(i, n, attack, release int) float64 {
	gain := 1.0
	if attack > 0 && i < attack {
		gain = float64(i) / float64(attack)
	}
	if release > 0 && i >= n-release {
		gain = min(gain, float64(n-i)/float64(release))
	}
	return max(gain, 0)
}

// RenderPCM16 encodes one loop of m as interleaved 16-bit little-endian
// stereo PCM.
func RenderPCM16(s Synth, m Melody) []byte {
	mono := s.Render(m)
	buf := make([]byte, len(mono)*4)
	for i, v := range mono {
		sample := uint16(int16(math.Round(max(-1, min(v, 1)) * math.MaxInt16)))
		binary.LittleEndian.PutUint16(buf[i*4:], sample)
		binary.LittleEndian.PutUint16(buf[i*4+2:], sample)
	}
	return buf
}
