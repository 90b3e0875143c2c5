package pcmconv

import (
	"github.com/wavegate/pcmconv/internal/carryresample"
	"github.com/wavegate/pcmconv/internal/resampler"
)

// Descriptor is the opaque pipeline state for one conversion session,
// built once by Build and driven by repeated Convert calls. Its fields are
// unexported: callers only ever hold a *Descriptor, never inspect it.
type Descriptor struct {
	from SoundParams
	to   SoundParams

	// method is set when resampling uses the named-method primitive, one
	// carryresample.Resampler per channel (channel count = from.Channels).
	method []*carryresample.Resampler

	// zita is set when resampling uses the polyphase sinc engine, one
	// independent instance per channel.
	zita []*resampler.Resampler

	// needResample is true iff from.SampleRate != to.SampleRate. Neither
	// method nor zita is populated when this is false.
	needResample bool
}

// Destroy releases resampler state held by d. The Go garbage collector
// reclaims the memory regardless, but Destroy gives callers an explicit
// end-of-session hook, and gives a future resampler backend with real
// external resources (a cgo handle, a file descriptor) somewhere to
// release them.
func Destroy(d *Descriptor) {
	if d == nil {
		return
	}
	d.method = nil
	d.zita = nil
}
