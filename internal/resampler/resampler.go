// Package resampler implements streaming arbitrary-ratio sample-rate
// conversion with a Kaiser-windowed polyphase sinc filter, in the style of
// libsoxr. One Resampler handles one channel; multi-channel callers run one
// instance per channel over deinterleaved buffers.
//
// Coefficients are tabulated at a fixed number of fractional phases per
// input sample and interpolated linearly between adjacent phases, so any
// output/input rate ratio is supported without per-sample filter design.
// Input a call cannot yet filter (the trailing half-window) is kept as
// history and consumed by the next call, so chunk boundaries never drop or
// duplicate audio.
package resampler

import (
	"errors"
	"fmt"

	"github.com/tphakala/simd/f64"
)

// Quality selects a filter design trade-off between throughput and
// stopband attenuation.
type Quality int

const (
	// QualityQuick is the shortest filter, for previews and low-power use.
	QualityQuick Quality = iota
	QualityLow
	QualityMedium
	QualityHigh
	// QualityVeryHigh approaches mastering-grade attenuation.
	QualityVeryHigh
)

func (q Quality) String() string {
	switch q {
	case QualityQuick:
		return "quick"
	case QualityLow:
		return "low"
	case QualityMedium:
		return "medium"
	case QualityHigh:
		return "high"
	case QualityVeryHigh:
		return "veryhigh"
	default:
		return fmt.Sprintf("Quality(%d)", int(q))
	}
}

// qualitySpec fixes the design parameters for each preset: one-sided tap
// count at unity ratio and stopband attenuation in dB. Longer filters
// narrow the transition band; higher attenuation raises beta, which widens
// it again, so the two grow together across the ladder.
type qualitySpec struct {
	half  int
	atten float64
}

var qualityTable = map[Quality]qualitySpec{
	QualityQuick:    {half: 4, atten: 60},
	QualityLow:      {half: 8, atten: 70},
	QualityMedium:   {half: 16, atten: 85},
	QualityHigh:     {half: 24, atten: 100},
	QualityVeryHigh: {half: 32, atten: 120},
}

const (
	// phaseCount fractional positions are tabulated per input sample;
	// linear interpolation between adjacent phases keeps the table small
	// while holding interpolation error well below the stopband floor.
	phaseCount = 256

	// rolloff leaves headroom between the passband edge and Nyquist for
	// the filter's transition band.
	rolloff = 0.945
)

var (
	// ErrInvalidRate is returned by New for a non-positive sample rate.
	ErrInvalidRate = errors.New("resampler: sample rate must be positive")

	// ErrUnknownQuality is returned by New for a Quality outside the
	// preset ladder.
	ErrUnknownQuality = errors.New("resampler: unknown quality preset")
)

// Resampler converts one channel of audio from an input to an output
// sample rate. It is streaming: Process may be called any number of times
// with arbitrarily sized chunks, and Flush drains the tail once the stream
// ends. Not safe for concurrent use.
type Resampler struct {
	step  float64 // input samples advanced per output sample
	half  int     // one-sided tap count, scaled for the actual ratio
	table [][]float64

	buf []float64 // pending input, including left history
	pos float64   // next output position, in buf index units
}

// New builds a Resampler converting inRate to outRate at the given quality.
func New(inRate, outRate int, quality Quality) (*Resampler, error) {
	if inRate <= 0 || outRate <= 0 {
		return nil, fmt.Errorf("%w: %d -> %d", ErrInvalidRate, inRate, outRate)
	}
	spec, ok := qualityTable[quality]
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrUnknownQuality, quality)
	}

	ratio := float64(outRate) / float64(inRate)

	// When downsampling, the anti-aliasing cutoff drops to the output
	// Nyquist and the filter stretches by the same factor to keep its
	// transition band proportional.
	cutoff := rolloff
	half := spec.half
	if ratio < 1 {
		cutoff = rolloff * ratio
		half = int(float64(spec.half)/ratio) + 1
	}

	r := &Resampler{
		step:  1 / ratio,
		half:  half,
		table: designPhases(cutoff, spec.atten, half, phaseCount),
	}
	r.Reset()
	return r, nil
}

// Reset discards all buffered input and returns the resampler to its
// initial state, ready for a new stream at the same rates.
func (r *Resampler) Reset() {
	r.buf = r.buf[:0]
	// The first output needs half-1 samples of left context; starting the
	// position there means the stream begins without synthetic leading
	// zeros, at the cost of a half-window startup latency.
	r.pos = float64(r.half - 1)
}

// Process converts a chunk of input samples and returns the output samples
// the combined buffered input now supports. The trailing half-window of
// input stays buffered until a later Process or Flush call provides its
// right-hand context.
func (r *Resampler) Process(in []float32) ([]float32, error) {
	for _, v := range in {
		r.buf = append(r.buf, float64(v))
	}
	return r.produce(), nil
}

// Flush pads the stream with one window of silence and returns whatever
// output the buffered tail still holds. After Flush the resampler is Reset.
func (r *Resampler) Flush() []float32 {
	for i := 0; i < 2*r.half; i++ {
		r.buf = append(r.buf, 0)
	}
	out := r.produce()
	r.Reset()
	return out
}

// Latency returns the startup delay in input samples: output lags input by
// about this many samples of filter history.
func (r *Resampler) Latency() int {
	return r.half - 1
}

func (r *Resampler) produce() []float32 {
	var out []float32
	for {
		i0 := int(r.pos)
		if i0+r.half >= len(r.buf) {
			break
		}
		frac := r.pos - float64(i0)
		ph := frac * phaseCount
		q := int(ph)
		fq := ph - float64(q)

		seg := r.buf[i0-r.half+1 : i0+r.half+1]
		a := f64.DotProductUnsafe(seg, r.table[q])
		b := f64.DotProductUnsafe(seg, r.table[q+1])
		out = append(out, float32(a+fq*(b-a)))

		r.pos += r.step
	}

	// Drop input no future output position can reach, keeping the left
	// context the next window needs.
	keep := int(r.pos) - (r.half - 1)
	if keep > 0 {
		if keep > len(r.buf) {
			keep = len(r.buf)
		}
		r.buf = append(r.buf[:0], r.buf[keep:]...)
		r.pos -= float64(keep)
	}
	return out
}
