package pcmconv

import (
	"fmt"
	"math"

	"github.com/wavegate/pcmconv/internal/channelmix"
	"github.com/wavegate/pcmconv/internal/endian"
	"github.com/wavegate/pcmconv/internal/quantize"
	"github.com/wavegate/pcmconv/internal/reduce"
	"github.com/wavegate/pcmconv/internal/signflip"
)

// Convert drives input through the ordered stage decision tree for d: byte
// order normalization, an optional fast-path width reduction, float
// conversion, resampling, encoding conversion, channel remap, and a final
// endianness fix-up. input is never modified; the returned buffer is freshly
// allocated and owned by the caller.
//
// Illegal format combinations reaching a stage (a Descriptor built for one
// pair of SoundParams fed bytes that don't match from's layout) are
// programmer errors and panic. The only error Convert returns under normal
// operation is ErrResampleFailed.
func Convert(d *Descriptor, input []byte) ([]byte, error) {
	buf := append([]byte(nil), input...)
	cur := d.from.Format

	// 1. Normalize endianness.
	if cur.HasEndianness() && cur.Resolved() != hostEndian {
		if err := endian.Swap(buf, endianWidth(cur)); err != nil {
			panic(fmt.Sprintf("pcmconv: %v", err))
		}
		cur = cur.WithEndian(Native)
	}

	// 2. Fast-path reducer.
	fastPathed := false
	if d.from.SampleRate == d.to.SampleRate {
		if fn, ok := fastPathReduce(cur, d.to.Format); ok {
			buf = fn(buf)
			cur = d.to.Format.WithEndian(Native)
			fastPathed = true
		}
	}

	// 3. Convert to float if needed. A packed-24 sign-only mismatch also
	// routes through float, since the sign flipper doesn't support packed
	// 3-byte samples.
	packed24SignOnly := !d.needResample && !d.to.Format.IsFloat() &&
		cur.BitWidth() == d.to.Format.BitWidth() &&
		cur.BytesPerSample() == d.to.Format.BytesPerSample() &&
		cur.Encoding != d.to.Format.Encoding &&
		(cur.Encoding == U24P || cur.Encoding == S24P)
	needFloat := d.needResample || d.to.Format.IsFloat() || packed24SignOnly ||
		cur.BitWidth() != d.to.Format.BitWidth() ||
		cur.BytesPerSample() != d.to.Format.BytesPerSample()
	if !fastPathed && needFloat && !cur.IsFloat() {
		floats, err := quantize.ToFloat(buf, quantizeKind(cur.Encoding))
		if err != nil {
			panic(fmt.Sprintf("pcmconv: %v", err))
		}
		buf = float32ToBytes(floats)
		cur = NewFormat(Float, Native)
	}

	// 4. Resample.
	if d.needResample {
		floats := bytesToFloat32(buf)
		resampled, err := d.resample(floats)
		if err != nil {
			return nil, err
		}
		buf = float32ToBytes(resampled)
	}

	// 5. Convert float -> target encoding, or sign-flip if that's all
	// that differs.
	if cur.IsFloat() && !d.to.Format.IsFloat() {
		floats := bytesToFloat32(buf)
		fixed, err := quantize.FromFloat(floats, quantizeKind(d.to.Format.Encoding))
		if err != nil {
			panic(fmt.Sprintf("pcmconv: %v", err))
		}
		buf = fixed
		cur = d.to.Format.WithEndian(Native)
	} else if cur.Encoding != d.to.Format.Encoding {
		w, ok := signflipWidth(cur)
		if !ok {
			panic(fmt.Sprintf("pcmconv: cannot sign-flip %v directly", cur))
		}
		if err := signflip.Flip(buf, w); err != nil {
			panic(fmt.Sprintf("pcmconv: %v", err))
		}
		cur = cur.WithEncoding(d.to.Format.Encoding)
	}

	// 6. Channel remap.
	switch {
	case d.from.Channels == d.to.Channels:
		// no-op
	case d.from.Channels == 1 && d.to.Channels == 2:
		buf = channelmix.MonoToStereo(buf, cur.BytesPerSample())
	case d.from.Channels == 6 && d.to.Channels == 2:
		buf = downmixBuf(buf, cur)
	default:
		panic(fmt.Sprintf("pcmconv: unreachable channel mapping %d -> %d", d.from.Channels, d.to.Channels))
	}

	// 7. Endianness fix-up.
	if d.to.Format.HasEndianness() && d.to.Format.Resolved() != hostEndian {
		if err := endian.Swap(buf, endianWidth(d.to.Format)); err != nil {
			panic(fmt.Sprintf("pcmconv: %v", err))
		}
	}

	return buf, nil
}

// downmixBuf applies the 5.1 -> stereo matrix to buf, which is already in
// the target fixed-point or float encoding: it quantizes to float locally,
// mixes, and quantizes back, so the matrix multiply always happens in
// float64 regardless of the caller's target width.
func downmixBuf(buf []byte, cur Format) []byte {
	if cur.IsFloat() {
		out := channelmix.DownmixToStereo(bytesToFloat32(buf))
		return float32ToBytes(out)
	}
	kind := quantizeKind(cur.Encoding)
	floats, err := quantize.ToFloat(buf, kind)
	if err != nil {
		panic(fmt.Sprintf("pcmconv: %v", err))
	}
	mixed := channelmix.DownmixToStereo(floats)
	out, err := quantize.FromFloat(mixed, kind)
	if err != nil {
		panic(fmt.Sprintf("pcmconv: %v", err))
	}
	return out
}

func (d *Descriptor) resample(buf []float32) ([]float32, error) {
	channels := d.from.Channels
	chans := deinterleaveFloat32(buf, channels)
	outChans := make([][]float32, channels)

	if d.zita != nil {
		for c := 0; c < channels; c++ {
			out, err := d.zita[c].Process(chans[c])
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrResampleFailed, err)
			}
			outChans[c] = out
		}
	} else {
		for c := 0; c < channels; c++ {
			outChans[c] = d.method[c].Push(chans[c])
		}
	}

	minLen := -1
	for _, oc := range outChans {
		if minLen == -1 || len(oc) < minLen {
			minLen = len(oc)
		}
	}
	if minLen < 0 {
		minLen = 0
	}
	for c := range outChans {
		outChans[c] = outChans[c][:minLen]
	}

	return interleaveFloat32(outChans), nil
}

func deinterleaveFloat32(buf []float32, channels int) [][]float32 {
	frames := len(buf) / channels
	out := make([][]float32, channels)
	for c := range out {
		out[c] = make([]float32, frames)
	}
	for i := 0; i < frames; i++ {
		for c := 0; c < channels; c++ {
			out[c][i] = buf[i*channels+c]
		}
	}
	return out
}

func interleaveFloat32(chans [][]float32) []float32 {
	if len(chans) == 0 {
		return nil
	}
	frames := len(chans[0])
	out := make([]float32, frames*len(chans))
	for i := 0; i < frames; i++ {
		for c := range chans {
			out[i*len(chans)+c] = chans[c][i]
		}
	}
	return out
}

func float32ToBytes(in []float32) []byte {
	out := make([]byte, len(in)*4)
	for i, v := range in {
		bits := math.Float32bits(v)
		out[4*i] = byte(bits)
		out[4*i+1] = byte(bits >> 8)
		out[4*i+2] = byte(bits >> 16)
		out[4*i+3] = byte(bits >> 24)
	}
	return out
}

func bytesToFloat32(in []byte) []float32 {
	n := len(in) / 4
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		bits := uint32(in[4*i]) | uint32(in[4*i+1])<<8 | uint32(in[4*i+2])<<16 | uint32(in[4*i+3])<<24
		out[i] = math.Float32frombits(bits)
	}
	return out
}

// quantizeKind maps a fixed-point Encoding to its quantize.Kind. Float has
// no quantize.Kind: callers must branch on IsFloat before calling this.
func quantizeKind(e Encoding) quantize.Kind {
	switch e {
	case U8:
		return quantize.U8
	case S8:
		return quantize.S8
	case U16:
		return quantize.U16
	case S16:
		return quantize.S16
	case U24:
		return quantize.U24
	case S24:
		return quantize.S24
	case U24P:
		return quantize.U24Packed
	case S24P:
		return quantize.S24Packed
	case U32:
		return quantize.U32
	case S32:
		return quantize.S32
	default:
		panic(fmt.Sprintf("pcmconv: %v has no fixed-point quantize kind", e))
	}
}

// endianWidth maps f to the endian.Width its container size needs. Callers
// must check f.HasEndianness() first; Float and 8-bit formats have none.
func endianWidth(f Format) endian.Width {
	switch f.Encoding {
	case U16, S16:
		return endian.Width16
	case U24P, S24P:
		return endian.Width24Packed
	default:
		return endian.Width32
	}
}

// signflipWidth maps f to the signflip.Width that toggles its sign bit, or
// false if f's encoding isn't one signflip supports directly (Float,
// U24P/S24P).
func signflipWidth(f Format) (signflip.Width, bool) {
	switch f.Encoding {
	case U8, S8:
		return signflip.Width8, true
	case U16, S16:
		return signflip.Width16, true
	case U24, S24:
		return signflip.Width24Padded, true
	case U32, S32:
		return signflip.Width32, true
	default:
		return 0, false
	}
}

// fastPathReduce returns the bit-width reducer for (cur, target), if the
// pair is one of the direct narrowing paths package reduce implements at
// matching signedness.
func fastPathReduce(cur, target Format) (func([]byte) []byte, bool) {
	switch {
	case cur.Encoding == S32 && target.Encoding == S24P:
		return reduce.S32ToS24Packed, true
	case cur.Encoding == U32 && target.Encoding == U24P:
		return reduce.U32ToU24Packed, true
	case cur.Encoding == S32 && target.Encoding == S16:
		return reduce.S32ToS16, true
	case cur.Encoding == U32 && target.Encoding == U16:
		return reduce.U32ToU16, true
	case cur.Encoding == S32 && target.Encoding == S24:
		return reduce.S32ToS24, true
	case cur.Encoding == U32 && target.Encoding == U24:
		return reduce.U32ToU24, true
	case cur.Encoding == S24 && target.Encoding == S16:
		return reduce.S24ToS16, true
	case cur.Encoding == U24 && target.Encoding == U16:
		return reduce.U24ToU16, true
	default:
		return nil, false
	}
}
