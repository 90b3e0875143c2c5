// Package pcmconv converts streams of PCM audio between formats: sample
// encoding (signed/unsigned integers at 8, 16, 24, and 32 bits, packed and
// padded 24-bit, and normalized float32), byte order, sample rate, and
// channel count (mono to stereo, 5.1 to stereo).
//
// # Quick Start
//
//	from := pcmconv.SoundParams{
//	    Format:     pcmconv.NewFormat(pcmconv.S16, pcmconv.LittleEndian),
//	    SampleRate: 44100,
//	    Channels:   1,
//	}
//	to := pcmconv.SoundParams{
//	    Format:     pcmconv.NewFormat(pcmconv.S16, pcmconv.LittleEndian),
//	    SampleRate: 48000,
//	    Channels:   2,
//	}
//	d, err := pcmconv.Build(from, to, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer pcmconv.Destroy(d)
//
//	for chunk := range decodedChunks {
//	    out, err := pcmconv.Convert(d, chunk)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    sink.Write(out)
//	}
//
// A descriptor is built once per stream and owned by a single goroutine;
// nothing is shared between descriptors. Common bit-width reductions at
// matching sample rates take direct narrowing paths that skip the float
// round trip entirely. When rates differ, samples are converted to float,
// resampled (by an interpolating resampler selected with the
// ResampleMethod option, or by a polyphase sinc engine selected
// with ZitaResampleQuality), and quantized to the target encoding. Input
// frames the resampler cannot yet consume are carried over to the next
// Convert call, so chunk boundaries never drop or duplicate audio.
package pcmconv
