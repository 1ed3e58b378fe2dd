package rotate

import (
	"encoding/binary"
	"fmt"
	"math/bits"
	"unsafe"
)

// checkQuarterTurn validates the extents handed to a quarter-turn.
func checkQuarterTurn(src, dst []byte, width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: invalid dimensions %dx%d", ErrExtentSize, width, height)
	}
	size := width * height
	if len(src) != size {
		return fmt.Errorf("%w: source is %d bytes, %dx%d needs %d", ErrExtentSize, len(src), width, height, size)
	}
	if len(dst) != size {
		return fmt.Errorf("%w: destination is %d bytes, %dx%d needs %d", ErrExtentSize, len(dst), width, height, size)
	}
	if overlaps(src, dst) {
		return ErrAliasedExtents
	}
	return nil
}

// overlaps reports whether a and b share any backing memory.
func overlaps(a, b []byte) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	a0 := uintptr(unsafe.Pointer(unsafe.SliceData(a)))
	b0 := uintptr(unsafe.Pointer(unsafe.SliceData(b)))
	return a0 < b0+uintptr(len(b)) && b0 < a0+uintptr(len(a))
}

// RotateClockwise turns a width x height raster a quarter-turn clockwise.
//
// The result in dst is a height x width raster:
//
//	dst[x*height+y] = src[(height-1-y)*width+x]
//
// Each destination row is a source column read bottom-to-top. src and dst
// must both be exactly width*height bytes and must not overlap.
func RotateClockwise(src, dst []byte, width, height int) error {
	if err := checkQuarterTurn(src, dst, width, height); err != nil {
		return err
	}

	last := len(src) - width
	d := 0
	for x := 0; x < width; x++ {
		for s := last + x; s >= 0; s -= width {
			dst[d] = src[s]
			d++
		}
	}
	return nil
}

// RotateCounterClockwise turns a width x height raster a quarter-turn
// counter-clockwise.
//
// It walks the source exactly as RotateClockwise does but fills dst from its
// last byte backwards, which is the clockwise result turned a further half:
//
//	dst[(width-1-x)*height+(height-1-y)] = src[(height-1-y)*width+x]
//
// src and dst must both be exactly width*height bytes and must not overlap.
func RotateCounterClockwise(src, dst []byte, width, height int) error {
	if err := checkQuarterTurn(src, dst, width, height); err != nil {
		return err
	}

	last := len(src) - width
	d := len(dst) - 1
	for x := 0; x < width; x++ {
		for s := last + x; s >= 0; s -= width {
			dst[d] = src[s]
			d--
		}
	}
	return nil
}

// ReverseInPlace reverses buf byte-for-byte, which is a half-turn of any
// raster stored in it.
//
// It swaps 32-bit words from both ends towards the middle and byte-swaps each
// word on the way. len(buf) must be a positive multiple of 4.
func ReverseInPlace(buf []byte) error {
	if len(buf) == 0 || len(buf)%4 != 0 {
		return fmt.Errorf("%w: %d bytes is not a positive multiple of 4", ErrExtentSize, len(buf))
	}

	// lo == hi is the middle word of an odd word count; it is swapped with itself.
	for lo, hi := 0, len(buf)-4; lo <= hi; lo, hi = lo+4, hi-4 {
		head := binary.LittleEndian.Uint32(buf[lo:])
		tail := binary.LittleEndian.Uint32(buf[hi:])
		binary.LittleEndian.PutUint32(buf[hi:], bits.ReverseBytes32(head))
		binary.LittleEndian.PutUint32(buf[lo:], bits.ReverseBytes32(tail))
	}
	return nil
}
