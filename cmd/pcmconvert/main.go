// Command pcmconvert converts WAV audio files between PCM formats: sample
// width, sample rate, and channel count in one pass.
//
// Usage:
//
//	pcmconvert -rate 48000 input.wav output.wav
//	pcmconvert -bits 16 -channels 2 surround.wav stereo.wav
//	pcmconvert -rate 44100 -method Linear input.wav output.wav
//	pcmconvert -rate 96000 -zita 4 input.wav output.wav   # polyphase engine
//
// Channel conversion is limited to what the pipeline supports: equal counts,
// mono to stereo, and 5.1 to stereo.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	pcmconv "github.com/wavegate/pcmconv"
)

const (
	// Frames read from the decoder per Convert call. Large enough to keep
	// resampler transients negligible, small enough to bound memory.
	chunkFrames = 65536

	progressInterval = 10 // percent
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	rate := flag.Int("rate", 0, "Target sample rate in Hz (0 keeps the input rate)")
	bits := flag.Int("bits", 0, "Target sample width: 8, 16, 24, or 32 (0 keeps the input width)")
	channels := flag.Int("channels", 0, "Target channel count (0 keeps the input count)")
	method := flag.String("method", "", "Resample method: SincBestQuality, SincMediumQuality, SincFastest, ZeroOrderHold, Linear")
	zita := flag.Int("zita", 0, "Polyphase resampler quality 1-4 (overrides -method)")
	verbose := flag.Bool("v", false, "Verbose output")
	flag.Parse()

	args := flag.Args()
	if len(args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] input.wav output.wav\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		return fmt.Errorf("insufficient arguments")
	}
	inputPath, outputPath := args[0], args[1]

	in, err := openWAVInput(inputPath, *verbose)
	if err != nil {
		return err
	}
	defer in.Close()

	from, err := soundParamsFor(in.bitDepth, in.rate, in.channels)
	if err != nil {
		return err
	}
	to := from
	if *rate != 0 {
		to.SampleRate = *rate
	}
	if *bits != 0 {
		f, err := formatForBits(*bits)
		if err != nil {
			return err
		}
		to.Format = f
	}
	if *channels != 0 {
		to.Channels = *channels
	}
	if from == to {
		return fmt.Errorf("input already matches the requested format (%s)", to)
	}

	opts := pcmconv.MapOptions{
		Ints:    map[string]int{},
		Symbols: map[string]string{},
	}
	if *method != "" {
		opts.Symbols[pcmconv.OptResampleMethod] = *method
	}
	if *zita != 0 {
		opts.Ints[pcmconv.OptZitaResampleQuality] = *zita
	}

	desc, err := pcmconv.Build(from, to, opts)
	if err != nil {
		return fmt.Errorf("cannot build conversion %s -> %s: %w", from, to, err)
	}
	defer pcmconv.Destroy(desc)

	if *verbose {
		log.Printf("Converting %s -> %s", from, to)
	}

	outFile, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer outFile.Close()

	enc := wav.NewEncoder(outFile, to.SampleRate, to.Format.BitWidth(), to.Channels, 1)
	if err := convertStream(in, desc, from, to, enc, *verbose); err != nil {
		return err
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to finalize output: %w", err)
	}
	return nil
}

// convertStream pumps decoded chunks through the pipeline and into enc,
// reporting progress at progressInterval steps when verbose.
func convertStream(in *wavInputInfo, desc *pcmconv.Descriptor, from, to pcmconv.SoundParams, enc *wav.Encoder, verbose bool) error {
	intBuf := &audio.IntBuffer{
		Data:   make([]int, chunkFrames*from.Channels),
		Format: in.format,
	}
	outFormat := &audio.Format{SampleRate: to.SampleRate, NumChannels: to.Channels}

	var framesIn int64
	lastPct := -1
	for {
		n, err := in.decoder.PCMBuffer(intBuf)
		if err != nil {
			return fmt.Errorf("decode failed: %w", err)
		}
		if n == 0 {
			break
		}

		raw, err := packSamples(intBuf.Data[:n], from.Format)
		if err != nil {
			return err
		}
		converted, err := pcmconv.Convert(desc, raw)
		if err != nil {
			return fmt.Errorf("conversion failed: %w", err)
		}
		outInts, err := unpackSamples(converted, to.Format)
		if err != nil {
			return err
		}
		if len(outInts) > 0 {
			out := &audio.IntBuffer{Data: outInts, Format: outFormat, SourceBitDepth: to.Format.BitWidth()}
			if err := enc.Write(out); err != nil {
				return fmt.Errorf("write failed: %w", err)
			}
		}

		framesIn += int64(n / from.Channels)
		if verbose && in.totalFrames > 0 {
			pct := int(framesIn * 100 / in.totalFrames)
			if pct/progressInterval > lastPct/progressInterval {
				log.Printf("%d%%", pct)
				lastPct = pct
			}
		}
	}
	return nil
}

// soundParamsFor maps a WAV bit depth to the pipeline format it decodes as:
// WAV stores 8-bit audio unsigned and wider widths signed little-endian,
// with 24-bit packed into 3 bytes.
func soundParamsFor(bitDepth, rate, channels int) (pcmconv.SoundParams, error) {
	f, err := formatForBits(bitDepth)
	if err != nil {
		return pcmconv.SoundParams{}, err
	}
	return pcmconv.SoundParams{Format: f, SampleRate: rate, Channels: channels}, nil
}

func formatForBits(bits int) (pcmconv.Format, error) {
	switch bits {
	case 8:
		return pcmconv.NewFormat(pcmconv.U8, pcmconv.Native), nil
	case 16:
		return pcmconv.NewFormat(pcmconv.S16, pcmconv.LittleEndian), nil
	case 24:
		return pcmconv.NewFormat(pcmconv.S24P, pcmconv.LittleEndian), nil
	case 32:
		return pcmconv.NewFormat(pcmconv.S32, pcmconv.LittleEndian), nil
	default:
		return pcmconv.Format{}, fmt.Errorf("unsupported sample width %d (want 8, 16, 24, or 32)", bits)
	}
}

var errUnhandledFormat = errors.New("unhandled sample format")
