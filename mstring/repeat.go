package mstring

import (
	"fmt"
	"math"
)

// Concat returns a new buffer holding the receiver's content followed by
// other. Its capacity doubles up from the receiver's until it fits.
// Neither operand is modified.
func (b *MString) Concat(other []byte) (*MString, error) {
	if b.data == nil {
		return nil, releasedError("concat")
	}
	return newWithSettings("concat", b.cfg, len(b.data), b.Bytes(), other)
}

// ConcatInPlace appends other to the receiver.
func (b *MString) ConcatInPlace(other []byte) error {
	return b.splice("concat", b.length, b.length, other)
}

// Repeat returns a new buffer holding the content n times over. n == 0
// yields an empty buffer; a negative n is ErrValue.
func (b *MString) Repeat(n int) (*MString, error) {
	if b.data == nil {
		return nil, releasedError("repeat")
	}
	total, err := b.repeatLen("repeat", n)
	if err != nil {
		return nil, err
	}
	out := &MString{cfg: b.cfg}
	capacity, err := NextCapacity(len(b.data), total+1)
	if err != nil {
		return nil, out.allocFailed("repeat", total+1, err)
	}
	region, err := out.allocate("repeat", capacity)
	if err != nil {
		return nil, err
	}
	copy(region, b.Bytes())
	fill(region, b.length, total)
	region[total] = 0
	out.data = region
	out.length = total
	return out, nil
}

// RepeatInPlace replaces the content with n copies of itself.
func (b *MString) RepeatInPlace(n int) error {
	if b.data == nil {
		return releasedError("repeat")
	}
	total, err := b.repeatLen("repeat", n)
	if err != nil {
		return err
	}
	if err := b.ensureCapacity("repeat", total+1); err != nil {
		return err
	}
	fill(b.data, b.length, total)
	b.data[total] = 0
	b.length = total
	return nil
}

func (b *MString) repeatLen(op string, n int) (int, error) {
	if n < 0 {
		return 0, newError(ErrValue, op, "count must be non-negative, got %d", n)
	}
	if b.length > 0 && n > (math.MaxInt-1)/b.length {
		return 0, b.allocFailed(op, math.MaxInt, fmt.Errorf("repeating %d bytes %d times overflows", b.length, n))
	}
	return b.length * n, nil
}

// fill extends the unit region[:unit] by doubling copies until region[:total]
// holds whole repetitions of it.
func fill(region []byte, unit, total int) {
	if unit == 0 {
		return
	}
	for w := unit; w < total; {
		w += copy(region[w:total], region[:w])
	}
}
