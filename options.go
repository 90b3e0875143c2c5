package pcmconv

import (
	"strings"

	"github.com/wavegate/pcmconv/internal/resampler"
)

// Options is the host configuration surface. It is consumed once, at Build
// time: Build asks for the values it needs by name and never holds on to
// the Options value itself, so later configuration changes do not affect a
// live descriptor.
type Options interface {
	// Int returns the named integer option and whether it was present.
	Int(name string) (int, bool)
	// Symbol returns the named string-valued option and whether it was
	// present.
	Symbol(name string) (string, bool)
}

// Recognized option names.
const (
	// OptEnableResample is an int; 0 disables resampling (Build fails with
	// ErrResamplingDisabled if a rate change is requested), any other value
	// enables it. Defaults to enabled.
	OptEnableResample = "EnableResample"

	// OptResampleMethod is a symbol naming the resampling method, matched
	// case-insensitively: "SincBestQuality", "SincMediumQuality",
	// "SincFastest", "ZeroOrderHold", or "Linear" (the libsamplerate method
	// names; see resampleMethodTable for what each maps to here). Ignored if
	// OptZitaResampleQuality is also set and non-zero.
	OptResampleMethod = "ResampleMethod"

	// OptZitaResampleQuality is an int (0-4). When non-zero, Build uses the
	// polyphase sinc engine instead of the named-method primitive, at the
	// quality preset zitaQualityTable maps it to.
	OptZitaResampleQuality = "ZitaResampleQuality"
)

// resampleMethodTable maps the recognized ResampleMethod symbols, lowercased,
// to a carryresample.Method. The names are libsamplerate's; this package has
// one cubic kernel rather than libsamplerate's graded sinc filters, so the
// three Sinc* tiers all select Cubic (variable-quality sinc filtering lives
// on the ZitaResampleQuality path instead). This table is the single source
// of truth for method validation: Build fails on anything not listed here.
var resampleMethodTable = map[string]int{
	"sincbestquality":   methodCubic,
	"sincmediumquality": methodCubic,
	"sincfastest":       methodCubic,
	"zeroorderhold":     methodHold,
	"linear":            methodLinear,
}

// lookupResampleMethod resolves a configured method name case-insensitively.
func lookupResampleMethod(name string) (int, bool) {
	id, ok := resampleMethodTable[strings.ToLower(name)]
	return id, ok
}

const (
	methodLinear = iota
	methodCubic
	methodHold
)

// zitaQualityTable maps the 0-4 ZitaResampleQuality scale to the engine's
// quality ladder. Build treats 0 as "not set" and selects the named-method
// path, so the 0 entry (QualityQuick) is never reached through Build.
var zitaQualityTable = map[int]resampler.Quality{
	0: resampler.QualityQuick,
	1: resampler.QualityLow,
	2: resampler.QualityMedium,
	3: resampler.QualityHigh,
	4: resampler.QualityVeryHigh,
}

// MapOptions is a map-backed Options implementation for callers that do not
// have their own configuration system.
type MapOptions struct {
	Ints    map[string]int
	Symbols map[string]string
}

func (m MapOptions) Int(name string) (int, bool) {
	v, ok := m.Ints[name]
	return v, ok
}

func (m MapOptions) Symbol(name string) (string, bool) {
	v, ok := m.Symbols[name]
	return v, ok
}
