package mstring

import "iter"

// Iterator walks the bytes of a buffer with an external cursor. It never
// modifies the buffer and observes mutations made between calls.
type Iterator struct {
	b   *MString
	pos int
}

// Iter returns an iterator positioned at the first byte.
func (b *MString) Iter() *Iterator {
	return &Iterator{b: b}
}

// Next returns the next byte, or false once the content is exhausted.
func (it *Iterator) Next() (byte, bool) {
	if it.pos >= it.b.length {
		return 0, false
	}
	c := it.b.data[it.pos]
	it.pos++
	return c, true
}

// Reset rewinds the iterator to the first byte.
func (it *Iterator) Reset() { it.pos = 0 }

// All returns a restartable sequence of (offset, byte) pairs.
func (b *MString) All() iter.Seq2[int, byte] {
	return func(yield func(int, byte) bool) {
		for i := 0; i < b.length; i++ {
			if !yield(i, b.data[i]) {
				return
			}
		}
	}
}
