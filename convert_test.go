package pcmconv

import (
	"bytes"
	"math"
	"testing"
)

func TestConvertU8MonoToS16Stereo(t *testing.T) {
	from := SoundParams{Format: NewFormat(U8, Native), SampleRate: 8000, Channels: 1}
	to := SoundParams{Format: NewFormat(S16, LittleEndian), SampleRate: 8000, Channels: 2}
	d, err := Build(from, to, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	out, err := Convert(d, []byte{0x80})
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if len(out) != 4 {
		t.Fatalf("got %d bytes, want 4", len(out))
	}
	// Midpoint U8 (0x80) should land very close to zero once duplicated to
	// stereo S16.
	l := int16(uint16(out[0]) | uint16(out[1])<<8)
	r := int16(uint16(out[2]) | uint16(out[3])<<8)
	if l != r {
		t.Fatalf("channels differ: %d vs %d", l, r)
	}
	if math.Abs(float64(l)) > 1 {
		t.Fatalf("expected near-zero sample, got %d", l)
	}
}

func TestConvertBigEndianToLittleEndianMonoToStereo(t *testing.T) {
	from := SoundParams{Format: NewFormat(S16, BigEndian), SampleRate: 44100, Channels: 1}
	to := SoundParams{Format: NewFormat(S16, LittleEndian), SampleRate: 44100, Channels: 2}
	d, err := Build(from, to, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	out, err := Convert(d, []byte{0x12, 0x34})
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	want := []byte{0x34, 0x12, 0x34, 0x12}
	if !bytes.Equal(out, want) {
		t.Fatalf("got %x, want %x", out, want)
	}
}

func TestConvertFastPathS32ToS16(t *testing.T) {
	from := SoundParams{Format: NewFormat(S32, LittleEndian), SampleRate: 48000, Channels: 2}
	to := SoundParams{Format: NewFormat(S16, LittleEndian), SampleRate: 48000, Channels: 2}
	d, err := Build(from, to, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	in := []byte{0x00, 0x00, 0xFF, 0x7F, 0x00, 0x00, 0x00, 0x80}
	out, err := Convert(d, in)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if len(out) != 4 {
		t.Fatalf("got %d bytes, want 4", len(out))
	}
	l := int16(uint16(out[0]) | uint16(out[1])<<8)
	r := int16(uint16(out[2]) | uint16(out[3])<<8)
	if l != math.MaxInt16 {
		t.Fatalf("got %d, want %d", l, math.MaxInt16)
	}
	if r != math.MinInt16 {
		t.Fatalf("got %d, want %d", r, math.MinInt16)
	}
}

func TestConvertDownmix51ToStereo(t *testing.T) {
	from := SoundParams{Format: NewFormat(Float, Native), SampleRate: 44100, Channels: 6}
	to := SoundParams{Format: NewFormat(S16, LittleEndian), SampleRate: 44100, Channels: 2}
	d, err := Build(from, to, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	in := float32ToBytes([]float32{0.5, 0.5, 0, 0, 0, 0})
	out, err := Convert(d, in)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if len(out) != 4 {
		t.Fatalf("got %d bytes, want 4", len(out))
	}
	l := int16(uint16(out[0]) | uint16(out[1])<<8)
	r := int16(uint16(out[2]) | uint16(out[3])<<8)
	if l != r {
		t.Fatalf("expected symmetric downmix, got L=%d R=%d", l, r)
	}
	if math.Abs(float64(l)-4301) > 10 {
		t.Fatalf("got %d, want approximately 4301", l)
	}
}

func TestConvertDownmixSilence(t *testing.T) {
	from := SoundParams{Format: NewFormat(Float, Native), SampleRate: 44100, Channels: 6}
	to := SoundParams{Format: NewFormat(S16, LittleEndian), SampleRate: 44100, Channels: 2}
	d, err := Build(from, to, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	out, err := Convert(d, nil)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("expected empty output for empty input, got %d bytes", len(out))
	}
}

func TestConvertZitaPathResamples(t *testing.T) {
	from := SoundParams{Format: NewFormat(S16, LittleEndian), SampleRate: 44100, Channels: 2}
	to := SoundParams{Format: NewFormat(S16, LittleEndian), SampleRate: 48000, Channels: 2}
	opts := MapOptions{Ints: map[string]int{OptZitaResampleQuality: 3}}
	d, err := Build(from, to, opts)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	n := 4096
	in := make([]byte, n*4)
	for i := 0; i < n; i++ {
		v := int16(8000 * math.Sin(2*math.Pi*440*float64(i)/44100))
		for c := 0; c < 2; c++ {
			in[4*i+2*c] = byte(uint16(v))
			in[4*i+2*c+1] = byte(uint16(v) >> 8)
		}
	}
	var frames int
	for off := 0; off < len(in); off += 1024 {
		end := off + 1024
		if end > len(in) {
			end = len(in)
		}
		out, err := Convert(d, in[off:end])
		if err != nil {
			t.Fatalf("Convert: %v", err)
		}
		if len(out)%4 != 0 {
			t.Fatalf("output not a whole number of stereo S16 frames: %d bytes", len(out))
		}
		frames += len(out) / 4
	}
	// Frame count tracks the rate ratio, minus the filter's startup window.
	want := n * 48000 / 44100
	if frames < want-200 || frames > want+8 {
		t.Fatalf("got %d frames, want near %d", frames, want)
	}
}

func TestConvertResamplesAndScalesFrameCount(t *testing.T) {
	from := SoundParams{Format: NewFormat(S16, LittleEndian), SampleRate: 22050, Channels: 1}
	to := SoundParams{Format: NewFormat(S16, LittleEndian), SampleRate: 44100, Channels: 2}
	d, err := Build(from, to, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	n := 100
	in := make([]byte, n*2)
	for i := 0; i < n; i++ {
		v := int16(1000 * math.Sin(2*math.Pi*1000*float64(i)/22050))
		in[2*i] = byte(uint16(v))
		in[2*i+1] = byte(uint16(v) >> 8)
	}
	out, err := Convert(d, in)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	// 2 channels, S16 (2 bytes) per sample; frame count should be roughly
	// n * (44100/22050) = 2n, within interpolation tolerance.
	gotFrames := len(out) / 4
	if gotFrames < 150 || gotFrames > 250 {
		t.Fatalf("got %d frames, want approximately 200", gotFrames)
	}
}
