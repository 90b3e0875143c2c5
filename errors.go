package pcmconv

import "errors"

// Errors raised by Build and Convert. Build returns these wrapped with
// context via fmt.Errorf("%w: ...", ...); Convert only ever surfaces
// ErrResampleFailed as an ordinary runtime error — any other mismatch
// reaching Convert is a programmer error in how the descriptor was built
// and is treated as fatal (see convert.go).
var (
	// ErrUnsupportedChannelConversion is returned by Build when the
	// requested channel mapping is not {equal, 1->2, 6->2}.
	ErrUnsupportedChannelConversion = errors.New("pcmconv: unsupported channel conversion")

	// ErrResamplingDisabled is returned by Build when from.SampleRate !=
	// to.SampleRate but the EnableResample option is 0.
	ErrResamplingDisabled = errors.New("pcmconv: resampling disabled")

	// ErrUnknownResampleMethod is returned by Build when ResampleMethod
	// names a string not in the recognized method table.
	ErrUnknownResampleMethod = errors.New("pcmconv: unknown resample method")

	// ErrResamplerInitFailed is returned by Build when the underlying
	// resampler rejects the requested rates or quality.
	ErrResamplerInitFailed = errors.New("pcmconv: resampler init failed")

	// ErrResampleFailed is returned by Convert when a resample step fails
	// at runtime. This is the one error Convert can return after a
	// successful Build.
	ErrResampleFailed = errors.New("pcmconv: resample failed")

	// ErrUnsupportedFormat names a sample encoding outside the set this
	// package implements. No function in this package returns it: Convert
	// panics on such an encoding instead.
	ErrUnsupportedFormat = errors.New("pcmconv: unsupported sample format")

	// ErrUnsupportedChannelLayout names a channel remap of an encoding the
	// remapper does not implement. No function in this package returns it:
	// Convert panics on such a remap instead.
	ErrUnsupportedChannelLayout = errors.New("pcmconv: unsupported channel layout for remap")

	// ErrInvalidParams is returned by Build when from == to, or either
	// SoundParams value is otherwise malformed.
	ErrInvalidParams = errors.New("pcmconv: invalid sound parameters")
)
