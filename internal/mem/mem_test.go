package mem_test

import (
	"bytes"
	"testing"

	"github.com/bsdphk/PHC/internal/mem"
)

func TestXORInPlace(t *testing.T) {
	dst := []byte{0x0f, 0xff, 0x00}
	mem.XORInPlace(dst, []byte{0xff, 0xff, 0xff})
	if want := []byte{0xf0, 0x00, 0xff}; !bytes.Equal(dst, want) {
		t.Errorf("XORInPlace = %x, want %x", dst, want)
	}
}

func TestZero(t *testing.T) {
	b := []byte{1, 2, 3, 4}
	mem.Zero(b)
	for i, v := range b {
		if v != 0 {
			t.Fatalf("b[%d] = %d, want 0", i, v)
		}
	}
}

func TestSliceForAppend(t *testing.T) {
	in := make([]byte, 0, 16)
	in = append(in, 'a', 'b')
	head, tail := mem.SliceForAppend(in, 4)
	if len(head) != 6 || len(tail) != 4 {
		t.Fatalf("len(head)=%d len(tail)=%d, want 6,4", len(head), len(tail))
	}
	copy(tail, []byte{'c', 'd', 'e', 'f'})
	if got, want := string(head), "abcdef"; got != want {
		t.Errorf("head = %q, want %q", got, want)
	}
}
