package pcmconv

import (
	"fmt"

	"github.com/wavegate/pcmconv/internal/carryresample"
	"github.com/wavegate/pcmconv/internal/resampler"
)

// defaultResampleMethod is used when ResampleMethod is unset and
// ZitaResampleQuality is unset or zero: a reasonable general-purpose
// default, matching neither extreme of the named-method table.
const defaultResampleMethod = "SincFastest"

// Build validates the from/to pair, reads resampling configuration from
// opts, and returns a ready Descriptor. from and to must differ in at
// least one field; Build fails on an identical pair rather than silently
// returning a no-op descriptor.
func Build(from, to SoundParams, opts Options) (*Descriptor, error) {
	if from == to {
		return nil, fmt.Errorf("%w: from and to are identical", ErrInvalidParams)
	}
	if from.SampleRate <= 0 || to.SampleRate <= 0 {
		return nil, fmt.Errorf("%w: sample rates must be positive", ErrInvalidParams)
	}
	if !validChannelConversion(from.Channels, to.Channels) {
		return nil, fmt.Errorf("%w: %d -> %d channels", ErrUnsupportedChannelConversion, from.Channels, to.Channels)
	}

	d := &Descriptor{from: from, to: to}

	if from.SampleRate == to.SampleRate {
		return d, nil
	}
	d.needResample = true

	enableResample := 1
	if opts != nil {
		if v, ok := opts.Int(OptEnableResample); ok {
			enableResample = v
		}
	}
	if enableResample == 0 {
		return nil, fmt.Errorf("%w: %d -> %d Hz", ErrResamplingDisabled, from.SampleRate, to.SampleRate)
	}

	zitaQuality := 0
	if opts != nil {
		if v, ok := opts.Int(OptZitaResampleQuality); ok {
			zitaQuality = v
		}
	}

	if zitaQuality != 0 {
		preset, ok := zitaQualityTable[zitaQuality]
		if !ok {
			return nil, fmt.Errorf("%w: zita quality %d out of range", ErrResamplerInitFailed, zitaQuality)
		}
		engines := make([]*resampler.Resampler, from.Channels)
		for c := 0; c < from.Channels; c++ {
			eng, err := resampler.New(from.SampleRate, to.SampleRate, preset)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrResamplerInitFailed, err)
			}
			engines[c] = eng
		}
		d.zita = engines
		return d, nil
	}

	methodName := defaultResampleMethod
	if opts != nil {
		if v, ok := opts.Symbol(OptResampleMethod); ok {
			methodName = v
		}
	}
	methodID, ok := lookupResampleMethod(methodName)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownResampleMethod, methodName)
	}
	method := carryMethodFromID(methodID)

	resamplers := make([]*carryresample.Resampler, from.Channels)
	for c := 0; c < from.Channels; c++ {
		r, err := carryresample.New(1, from.SampleRate, to.SampleRate, method)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrResamplerInitFailed, err)
		}
		resamplers[c] = r
	}
	d.method = resamplers

	return d, nil
}

func carryMethodFromID(id int) carryresample.Method {
	switch id {
	case methodLinear:
		return carryresample.Linear
	case methodHold:
		return carryresample.Hold
	default:
		return carryresample.Cubic
	}
}

// validChannelConversion reports whether the from->to channel mapping is
// one this pipeline implements: identity, or the two fixed-matrix/ duplicate
// paths (1->2, 6->2).
func validChannelConversion(from, to int) bool {
	if from == to {
		return true
	}
	return (from == 1 && to == 2) || (from == 6 && to == 2)
}
