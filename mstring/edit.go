package mstring

import "bytes"

// Append adds p to the end of the buffer.
func (b *MString) Append(p []byte) error {
	return b.splice("append", b.length, b.length, p)
}

// AppendString adds s to the end of the buffer.
func (b *MString) AppendString(s string) error {
	return b.Append([]byte(s))
}

// Insert places p before the byte at index. index must be within
// [0, Len()]; inserting at Len() appends. Negative indices are rejected.
func (b *MString) Insert(index int, p []byte) error {
	if index < 0 || index > b.length {
		return indexError("insert")
	}
	return b.splice("insert", index, index, p)
}

// Find returns the offset of the first occurrence of needle, or -1.
// An empty needle is found at offset 0.
func (b *MString) Find(needle []byte) int {
	return bytes.Index(b.Bytes(), needle)
}

// Contains reports whether needle occurs in the buffer.
func (b *MString) Contains(needle []byte) bool {
	return b.Find(needle) >= 0
}

// Replace substitutes every non-overlapping occurrence of old, scanning
// left to right, with new. old must not be empty. The result is built in
// a fresh region which replaces the current one only once it is complete.
func (b *MString) Replace(old, new []byte) error {
	if len(old) == 0 {
		return newError(ErrValue, "replace", "old must not be empty")
	}
	if b.data == nil {
		return releasedError("replace")
	}
	content := b.Bytes()
	count := bytes.Count(content, old)
	if count == 0 {
		return nil
	}

	newLen := b.length + count*(len(new)-len(old))
	capacity, err := NextCapacity(len(b.data), newLen+1)
	if err != nil {
		return b.allocFailed("replace", newLen+1, err)
	}
	region, err := b.allocate("replace", capacity)
	if err != nil {
		return err
	}

	w, r := 0, 0
	for {
		i := bytes.Index(content[r:], old)
		if i < 0 {
			break
		}
		w += copy(region[w:], content[r:r+i])
		w += copy(region[w:], new)
		r += i + len(old)
	}
	w += copy(region[w:], content[r:])
	region[w] = 0

	prev := b.data
	b.data = region
	b.length = newLen
	b.release(prev)
	if capacity > len(prev) {
		b.cfg.metrics.grew()
	}
	return nil
}

// ReplaceString is Replace for string arguments.
func (b *MString) ReplaceString(old, new string) error {
	return b.Replace([]byte(old), []byte(new))
}

// Reverse reverses the bytes in place.
func (b *MString) Reverse() {
	for i, j := 0, b.length-1; i < j; i, j = i+1, j-1 {
		b.data[i], b.data[j] = b.data[j], b.data[i]
	}
}

// Clear discards the content and shrinks storage back to MinCapacity.
// The new region is allocated before the old one is released.
func (b *MString) Clear() error {
	if b.data == nil {
		return releasedError("clear")
	}
	region, err := b.allocate("clear", MinCapacity)
	if err != nil {
		return err
	}
	region[0] = 0
	prev := b.data
	b.data = region
	b.length = 0
	b.release(prev)
	return nil
}
