package pcmconv

import (
	"encoding/binary"
	"fmt"
)

// Encoding names one PCM sample encoding: a bit width, a signedness, and
// (for the two 24-bit variants) a container size. Float is always 32-bit
// and always signed.
type Encoding int

const (
	U8 Encoding = iota
	S8
	U16
	S16
	// U24 and S24 are 24-bit samples padded into a 4-byte container.
	U24
	S24
	// U24P and S24P are 24-bit samples packed into a 3-byte container.
	U24P
	S24P
	U32
	S32
	Float
)

func (e Encoding) String() string {
	switch e {
	case U8:
		return "U8"
	case S8:
		return "S8"
	case U16:
		return "U16"
	case S16:
		return "S16"
	case U24:
		return "U24"
	case S24:
		return "S24"
	case U24P:
		return "U24_3"
	case S24P:
		return "S24_3"
	case U32:
		return "U32"
	case S32:
		return "S32"
	case Float:
		return "FLOAT"
	default:
		return fmt.Sprintf("Encoding(%d)", int(e))
	}
}

// Endian names a buffer's byte order. Native resolves to little or big at
// the point a swap decision is made (see Resolved); Convert tags its working
// buffer Native once it has been brought into host byte order.
type Endian int

const (
	Native Endian = iota
	LittleEndian
	BigEndian
)

// Format names exactly one sample encoding: a bit width, a signedness, the
// float flag implied by Encoding, and a byte order. Values are immutable;
// With* methods return a modified copy.
type Format struct {
	Encoding Encoding
	Endian   Endian
}

// NewFormat builds a Format with the given byte order for multi-byte
// encodings, ignoring the endian argument for 8-bit and float formats
// (they have no meaningful byte order distinct from native).
func NewFormat(enc Encoding, endian Endian) Format {
	f := Format{Encoding: enc, Endian: endian}
	if !f.HasEndianness() {
		f.Endian = Native
	}
	return f
}

// BytesPerSample returns the container size in bytes for one sample in
// this format. Packed 24-bit is 3 bytes; padded 24-bit is 4.
func (f Format) BytesPerSample() int {
	switch f.Encoding {
	case U8, S8:
		return 1
	case U16, S16:
		return 2
	case U24P, S24P:
		return 3
	case U24, S24, U32, S32, Float:
		return 4
	default:
		return 0
	}
}

// BitWidth returns the numeric range width in bits, independent of
// container size: U24 and U24P both report 24.
func (f Format) BitWidth() int {
	switch f.Encoding {
	case U8, S8:
		return 8
	case U16, S16:
		return 16
	case U24, S24, U24P, S24P:
		return 24
	case U32, S32, Float:
		return 32
	default:
		return 0
	}
}

// IsFloat reports whether this format is the normalized float32 encoding.
func (f Format) IsFloat() bool { return f.Encoding == Float }

// IsSigned reports whether this format's integers are two's-complement.
// Float is considered signed (it is always centered on zero).
func (f Format) IsSigned() bool {
	switch f.Encoding {
	case S8, S16, S24, S24P, S32, Float:
		return true
	default:
		return false
	}
}

// HasEndianness reports whether byte order is a meaningful distinction for
// this format. 8-bit formats have no multi-byte order; float is always
// stored native (the pipeline treats float buffers as host-order scratch
// space, never serialized across an endianness boundary in this design).
func (f Format) HasEndianness() bool {
	switch f.Encoding {
	case U8, S8, Float:
		return false
	default:
		return true
	}
}

// SameBitWidth reports whether f and other occupy the same numeric range,
// regardless of signedness or container size (U24 and S24P report true).
func (f Format) SameBitWidth(other Format) bool {
	return f.BitWidth() == other.BitWidth()
}

// SamePacking reports whether f and other have identical container size
// (U24 and S24P report false).
func (f Format) SamePacking(other Format) bool {
	return f.BytesPerSample() == other.BytesPerSample()
}

// WithEncoding returns a copy of f with Encoding replaced, re-deriving
// whether the result still has meaningful endianness.
func (f Format) WithEncoding(enc Encoding) Format {
	return NewFormat(enc, f.Endian)
}

// WithEndian returns a copy of f with Endian replaced.
func (f Format) WithEndian(e Endian) Format {
	if !f.HasEndianness() {
		return f
	}
	f.Endian = e
	return f
}

func (f Format) String() string {
	if !f.HasEndianness() {
		return f.Encoding.String()
	}
	switch f.Endian {
	case LittleEndian:
		return f.Encoding.String() + "-LE"
	case BigEndian:
		return f.Encoding.String() + "-BE"
	default:
		return f.Encoding.String() + "-NE"
	}
}

// hostEndian is resolved once at init by probing binary.NativeEndian,
// since Go exposes no direct query for the runtime's byte order.
var hostEndian = func() Endian {
	var buf [2]byte
	binary.NativeEndian.PutUint16(buf[:], 1)
	if buf[0] == 1 {
		return LittleEndian
	}
	return BigEndian
}()

// Resolved returns f.Endian with Native replaced by the concrete host byte
// order, so a format can be compared against the host's order to decide
// whether a swap is needed.
func (f Format) Resolved() Endian {
	if !f.HasEndianness() {
		return f.Endian
	}
	if f.Endian == Native {
		return hostEndian
	}
	return f.Endian
}

// SoundParams is the triple (format, sample rate, channel count) that
// names one side of a conversion.
type SoundParams struct {
	Format     Format
	SampleRate int
	Channels   int
}

func (p SoundParams) String() string {
	return fmt.Sprintf("%s %dHz %dch", p.Format, p.SampleRate, p.Channels)
}
