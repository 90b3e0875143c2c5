package main

import (
	"fmt"
	"log"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	pcmconv "github.com/wavegate/pcmconv"
)

// wavInputInfo holds validated input file information.
type wavInputInfo struct {
	file        *os.File
	decoder     *wav.Decoder
	rate        int
	channels    int
	bitDepth    int
	totalFrames int64
	format      *audio.Format
}

// openWAVInput opens and validates a WAV file, returning format information.
func openWAVInput(path string, verbose bool) (*wavInputInfo, error) {
	inputFile, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}

	decoder := wav.NewDecoder(inputFile)
	if !decoder.IsValidFile() {
		_ = inputFile.Close()
		return nil, fmt.Errorf("invalid WAV file: %s", path)
	}

	format := decoder.Format()
	if verbose {
		log.Printf("Input format: %d Hz, %d channels, %d-bit",
			format.SampleRate, format.NumChannels, decoder.BitDepth)
	}

	duration, err := decoder.Duration()
	if err != nil {
		duration = 0
	}
	totalFrames := int64(duration.Seconds() * float64(format.SampleRate))

	return &wavInputInfo{
		file:        inputFile,
		decoder:     decoder,
		rate:        format.SampleRate,
		channels:    format.NumChannels,
		bitDepth:    int(decoder.BitDepth),
		totalFrames: totalFrames,
		format:      format,
	}, nil
}

// Close closes the input file.
func (w *wavInputInfo) Close() error {
	return w.file.Close()
}

// packSamples serializes decoded integer samples into the raw byte layout
// the pipeline expects for f. The decoder hands us 8-bit WAV audio as
// unsigned 0..255 and wider widths as signed values, so this is a pure
// little-endian re-layout, not a range conversion.
func packSamples(data []int, f pcmconv.Format) ([]byte, error) {
	switch f.Encoding {
	case pcmconv.U8:
		out := make([]byte, len(data))
		for i, v := range data {
			out[i] = byte(v)
		}
		return out, nil
	case pcmconv.S16:
		out := make([]byte, len(data)*2)
		for i, v := range data {
			out[2*i] = byte(v)
			out[2*i+1] = byte(v >> 8)
		}
		return out, nil
	case pcmconv.S24P:
		out := make([]byte, len(data)*3)
		for i, v := range data {
			out[3*i] = byte(v)
			out[3*i+1] = byte(v >> 8)
			out[3*i+2] = byte(v >> 16)
		}
		return out, nil
	case pcmconv.S32:
		out := make([]byte, len(data)*4)
		for i, v := range data {
			out[4*i] = byte(v)
			out[4*i+1] = byte(v >> 8)
			out[4*i+2] = byte(v >> 16)
			out[4*i+3] = byte(v >> 24)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %s", errUnhandledFormat, f)
	}
}

// unpackSamples deserializes pipeline output bytes back into integer samples
// for the WAV encoder, sign-extending where the width requires it.
func unpackSamples(raw []byte, f pcmconv.Format) ([]int, error) {
	switch f.Encoding {
	case pcmconv.U8:
		out := make([]int, len(raw))
		for i, b := range raw {
			out[i] = int(b)
		}
		return out, nil
	case pcmconv.S16:
		out := make([]int, len(raw)/2)
		for i := range out {
			out[i] = int(int16(uint16(raw[2*i]) | uint16(raw[2*i+1])<<8))
		}
		return out, nil
	case pcmconv.S24P:
		out := make([]int, len(raw)/3)
		for i := range out {
			v := uint32(raw[3*i]) | uint32(raw[3*i+1])<<8 | uint32(raw[3*i+2])<<16
			out[i] = int(int32(v<<8) >> 8)
		}
		return out, nil
	case pcmconv.S32:
		out := make([]int, len(raw)/4)
		for i := range out {
			v := uint32(raw[4*i]) | uint32(raw[4*i+1])<<8 |
				uint32(raw[4*i+2])<<16 | uint32(raw[4*i+3])<<24
			out[i] = int(int32(v))
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %s", errUnhandledFormat, f)
	}
}
