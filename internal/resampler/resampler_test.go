package resampler

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewValidatesArguments(t *testing.T) {
	_, err := New(0, 48000, QualityMedium)
	require.ErrorIs(t, err, ErrInvalidRate)

	_, err = New(44100, -1, QualityMedium)
	require.ErrorIs(t, err, ErrInvalidRate)

	_, err = New(44100, 48000, Quality(42))
	require.ErrorIs(t, err, ErrUnknownQuality)
}

func TestAllPresetsConstruct(t *testing.T) {
	for q := QualityQuick; q <= QualityVeryHigh; q++ {
		r, err := New(44100, 48000, q)
		require.NoError(t, err, "preset %v", q)
		require.NotNil(t, r)
	}
}

func TestDCPreservation(t *testing.T) {
	r, err := New(44100, 48000, QualityHigh)
	require.NoError(t, err)

	in := make([]float32, 8192)
	for i := range in {
		in[i] = 0.5
	}
	out, err := r.Process(in)
	require.NoError(t, err)
	require.NotEmpty(t, out)

	// Skip the startup transient, then every sample must sit at DC.
	skip := 2 * r.Latency()
	for i, v := range out[skip:] {
		require.InDelta(t, 0.5, v, 1e-3, "sample %d", i+skip)
	}
}

func TestOutputLengthTracksRatio(t *testing.T) {
	const n = 10000
	r, err := New(44100, 48000, QualityMedium)
	require.NoError(t, err)

	// Feed in uneven chunks, the way a decoder delivers audio.
	var total int
	in := make([]float32, n)
	for off := 0; off < n; off += 337 {
		end := off + 337
		if end > n {
			end = n
		}
		out, err := r.Process(in[off:end])
		require.NoError(t, err)
		total += len(out)
	}
	total += len(r.Flush())

	want := int(math.Round(n * 48000.0 / 44100.0))
	assert.InDelta(t, want, total, 8, "total output frames")
}

func TestChunkingInvariance(t *testing.T) {
	const n = 4000
	in := make([]float32, n)
	for i := range in {
		in[i] = float32(math.Sin(2 * math.Pi * 440 * float64(i) / 44100))
	}

	oneShot, err := New(44100, 48000, QualityMedium)
	require.NoError(t, err)
	whole, err := oneShot.Process(in)
	require.NoError(t, err)
	whole = append(whole, oneShot.Flush()...)

	chunked, err := New(44100, 48000, QualityMedium)
	require.NoError(t, err)
	var parts []float32
	for off := 0; off < n; off += 611 {
		end := off + 611
		if end > n {
			end = n
		}
		out, err := chunked.Process(in[off:end])
		require.NoError(t, err)
		parts = append(parts, out...)
	}
	parts = append(parts, chunked.Flush()...)

	require.Equal(t, len(whole), len(parts))
	for i := range whole {
		require.InDelta(t, whole[i], parts[i], 1e-6, "sample %d", i)
	}
}

func TestDownsampleProducesFewerFrames(t *testing.T) {
	const n = 9600
	r, err := New(48000, 22050, QualityMedium)
	require.NoError(t, err)

	in := make([]float32, n)
	out, err := r.Process(in)
	require.NoError(t, err)
	out = append(out, r.Flush()...)

	want := n * 22050 / 48000
	assert.Less(t, len(out), n/2+1)
	assert.InDelta(t, want, len(out), 12)
}

func TestSineAmplitudePreserved(t *testing.T) {
	const n = 16384
	r, err := New(44100, 48000, QualityHigh)
	require.NoError(t, err)

	in := make([]float32, n)
	for i := range in {
		in[i] = float32(0.5 * math.Sin(2*math.Pi*1000*float64(i)/44100))
	}
	out, err := r.Process(in)
	require.NoError(t, err)
	require.Greater(t, len(out), 4000)

	// RMS of a 0.5-amplitude sine is 0.5/sqrt(2); compare away from the
	// filter transient at both ends.
	var sum float64
	body := out[1000 : len(out)-1000]
	for _, v := range body {
		sum += float64(v) * float64(v)
	}
	rms := math.Sqrt(sum / float64(len(body)))
	assert.InDelta(t, 0.5/math.Sqrt2, rms, 0.02)

	for _, v := range body {
		require.Less(t, math.Abs(float64(v)), 0.55, "overshoot beyond passband ripple")
	}
}

func TestResetStartsAFreshStream(t *testing.T) {
	r, err := New(44100, 48000, QualityQuick)
	require.NoError(t, err)

	in := make([]float32, 1000)
	for i := range in {
		in[i] = float32(math.Sin(float64(i) / 7))
	}
	first, err := r.Process(in)
	require.NoError(t, err)

	r.Reset()
	second, err := r.Process(in)
	require.NoError(t, err)

	require.Equal(t, len(first), len(second))
	for i := range first {
		require.Equal(t, first[i], second[i], "sample %d", i)
	}
}

func TestErrorsAreDistinct(t *testing.T) {
	require.False(t, errors.Is(ErrInvalidRate, ErrUnknownQuality))
}
