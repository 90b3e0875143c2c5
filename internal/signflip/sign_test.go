package signflip

import (
	"bytes"
	"testing"
)

func TestFlipInvolution(t *testing.T) {
	for _, w := range []Width{Width8, Width16, Width24Padded, Width32} {
		orig := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}
		buf := append([]byte(nil), orig...)
		if err := Flip(buf, w); err != nil {
			t.Fatalf("first flip: %v", err)
		}
		if err := Flip(buf, w); err != nil {
			t.Fatalf("second flip: %v", err)
		}
		if !bytes.Equal(buf, orig) {
			t.Fatalf("width %v: flip twice != identity: got %x, want %x", w, buf, orig)
		}
	}
}

func TestFlip8TopBit(t *testing.T) {
	buf := []byte{0x00, 0xFF, 0x7F, 0x80}
	if err := Flip(buf, Width8); err != nil {
		t.Fatalf("Flip: %v", err)
	}
	want := []byte{0x80, 0x7F, 0xFF, 0x00}
	if !bytes.Equal(buf, want) {
		t.Fatalf("got %x, want %x", buf, want)
	}
}
