// Package signflip toggles the top bit of every sample in a buffer,
// converting between the signed and unsigned interpretation of a width.
// 24-bit packed (3-byte) buffers are not supported here: the orchestrator
// routes packed-24 sign changes through the full float conversion path
// instead of this stage.
package signflip

import (
	"encoding/binary"
	"fmt"
)

// Width identifies the sample width a Flip call should toggle.
type Width int

const (
	Width8 Width = iota
	Width16
	Width24Padded
	Width32
)

// ErrUnsupportedWidth is returned by Flip for a Width it does not handle.
type ErrUnsupportedWidth struct{ Width Width }

func (e ErrUnsupportedWidth) Error() string {
	return fmt.Sprintf("signflip: unsupported width %d", e.Width)
}

// Flip toggles the top bit of every sample in buf in place. buf must
// already be in native byte order.
func Flip(buf []byte, w Width) error {
	switch w {
	case Width8:
		flip8(buf)
	case Width16:
		flip16(buf)
	case Width24Padded:
		flip24Padded(buf)
	case Width32:
		flip32(buf)
	default:
		return ErrUnsupportedWidth{Width: w}
	}
	return nil
}

func flip8(buf []byte) {
	for i := range buf {
		buf[i] ^= 1 << 7
	}
}

func flip16(buf []byte) {
	for i := 0; i+1 < len(buf); i += 2 {
		v := binary.NativeEndian.Uint16(buf[i:])
		binary.NativeEndian.PutUint16(buf[i:], v^(1<<15))
	}
}

// flip24Padded toggles bit 23 of each 24-in-32 sample without disturbing
// the unused top byte of the container.
func flip24Padded(buf []byte) {
	for i := 0; i+3 < len(buf); i += 4 {
		v := binary.NativeEndian.Uint32(buf[i:])
		binary.NativeEndian.PutUint32(buf[i:], v^(1<<23))
	}
}

func flip32(buf []byte) {
	for i := 0; i+3 < len(buf); i += 4 {
		v := binary.NativeEndian.Uint32(buf[i:])
		binary.NativeEndian.PutUint32(buf[i:], v^(1<<31))
	}
}
