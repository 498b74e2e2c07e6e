package mstring

import (
	"bytes"
	"fmt"
)

// MString is a growable mutable byte sequence. The zero value is not
// usable; create buffers with New or NewString.
//
// Invariants: len(data) is the capacity, length+1 <= len(data), and
// data[length] is a zero terminator. A released buffer has data == nil.
type MString struct {
	data   []byte
	length int
	cfg    settings
}

// New creates a buffer holding a copy of initial. Its capacity is the
// smallest doubling of MinCapacity that fits len(initial)+1.
func New(initial []byte, opts ...Option) (*MString, error) {
	cfg := defaultSettings()
	for _, opt := range opts {
		opt(&cfg)
	}
	return newWithSettings("new", cfg, MinCapacity, initial)
}

// NewString is New for string content.
func NewString(initial string, opts ...Option) (*MString, error) {
	return New([]byte(initial), opts...)
}

// newWithSettings allocates a buffer whose capacity doubles up from base
// until it fits content plus the terminator, then copies content in.
func newWithSettings(op string, cfg settings, base int, content ...[]byte) (*MString, error) {
	total := 0
	for _, c := range content {
		total += len(c)
	}
	b := &MString{cfg: cfg}
	capacity, err := NextCapacity(base, total+1)
	if err != nil {
		return nil, b.allocFailed(op, total+1, err)
	}
	region, err := b.allocate(op, capacity)
	if err != nil {
		return nil, err
	}
	b.data = region
	for _, c := range content {
		b.length += copy(b.data[b.length:], c)
	}
	b.data[b.length] = 0
	return b, nil
}

// Len returns the number of bytes in use.
func (b *MString) Len() int { return b.length }

// Cap returns the allocated capacity, terminator byte included.
func (b *MString) Cap() int { return len(b.data) }

// Released reports whether Release has been called.
func (b *MString) Released() bool { return b.data == nil }

// Bytes returns a view of the content. The view aliases the buffer and is
// invalidated by any operation that grows or replaces the storage.
func (b *MString) Bytes() []byte {
	if b.data == nil {
		return nil
	}
	return b.data[:b.length:b.length]
}

// String returns the content as a string.
func (b *MString) String() string {
	return string(b.Bytes())
}

// Repr returns a debugging representation of the buffer.
func (b *MString) Repr() string {
	return fmt.Sprintf("<MString: %s>", b.Bytes())
}

// Equal reports whether both buffers hold the same bytes. Capacity is
// not compared.
func (b *MString) Equal(other *MString) bool {
	if other == nil {
		return false
	}
	return bytes.Equal(b.Bytes(), other.Bytes())
}

// Clone returns an independent copy that shares the receiver's options.
func (b *MString) Clone() (*MString, error) {
	if b.data == nil {
		return nil, releasedError("clone")
	}
	return newWithSettings("clone", b.cfg, len(b.data), b.Bytes())
}

// Release frees the storage region. It is safe to call more than once;
// only the first call frees anything. A released buffer reports zero
// length and rejects mutation with ErrReleased.
func (b *MString) Release() {
	if b.data == nil {
		return
	}
	old := b.data
	b.data = nil
	b.length = 0
	b.release(old)
}
