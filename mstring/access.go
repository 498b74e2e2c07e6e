package mstring

import "math"

// Bound is an optional slice bound. The zero value is Open.
type Bound struct {
	Value int
	Set   bool
}

// Open is an absent slice bound: the start or end of the buffer,
// depending on position and step direction.
var Open = Bound{}

// At returns a bound at index i. Negative values count from the end.
func At(i int) Bound { return Bound{Value: i, Set: true} }

// normalize maps a possibly negative index onto [0, length).
func (b *MString) normalize(op string, index int) (int, error) {
	if index < 0 {
		index += b.length
	}
	if index < 0 || index >= b.length {
		return 0, indexError(op)
	}
	return index, nil
}

// Get returns the byte at index. Negative indices count from the end.
func (b *MString) Get(index int) (byte, error) {
	i, err := b.normalize("get", index)
	if err != nil {
		return 0, err
	}
	return b.data[i], nil
}

// SetByte overwrites the byte at index. Length and capacity are unchanged.
func (b *MString) SetByte(index int, c byte) error {
	i, err := b.normalize("set", index)
	if err != nil {
		return err
	}
	b.data[i] = c
	return nil
}

// Set overwrites the byte at index with unit, which must be exactly one
// byte long.
func (b *MString) Set(index int, unit []byte) error {
	i, err := b.normalize("set", index)
	if err != nil {
		return err
	}
	if len(unit) != 1 {
		return newError(ErrType, "set", "value must be a single unit, got %d bytes", len(unit))
	}
	b.data[i] = unit[0]
	return nil
}

// adjustIndices resolves slice bounds against length the way conventional
// slicing does: negative values count from the end, out-of-range values
// clamp, and absent bounds follow the step direction. It returns the
// resolved start and stop plus the number of selected elements.
func adjustIndices(length int, start, stop Bound, step int) (int, int, int) {
	var lo, hi int
	switch {
	case start.Set:
		lo = start.Value
	case step < 0:
		lo = math.MaxInt
	}
	switch {
	case stop.Set:
		hi = stop.Value
	case step < 0:
		hi = math.MinInt
	default:
		hi = math.MaxInt
	}

	clamp := func(i int) int {
		if i < 0 {
			i += length
			if i < 0 {
				if step < 0 {
					return -1
				}
				return 0
			}
		} else if i >= length {
			if step < 0 {
				return length - 1
			}
			return length
		}
		return i
	}
	lo, hi = clamp(lo), clamp(hi)

	if step < 0 {
		if hi < lo {
			return lo, hi, (lo-hi-1)/(-step) + 1
		}
	} else if lo < hi {
		return lo, hi, (hi-lo-1)/step + 1
	}
	return lo, hi, 0
}

// Slice returns a copy of the selected bytes. Empty and inverted ranges
// yield an empty result; a zero step is ErrValue.
func (b *MString) Slice(start, stop Bound, step int) ([]byte, error) {
	if step == 0 {
		return nil, newError(ErrValue, "slice", "slice step cannot be zero")
	}
	lo, _, n := adjustIndices(b.length, start, stop, step)
	out := make([]byte, n)
	if step == 1 {
		copy(out, b.data[lo:lo+n])
		return out, nil
	}
	for i, j := 0, lo; i < n; i, j = i+1, j+step {
		out[i] = b.data[j]
	}
	return out, nil
}

// SetSlice replaces the contiguous range [start, stop) with value. Only a
// step of 1 is supported for assignment; other steps are ErrValue. An
// inverted range inserts value at start.
func (b *MString) SetSlice(start, stop Bound, step int, value []byte) error {
	if step != 1 {
		return newError(ErrValue, "set_slice", "only contiguous (step 1) slices can be assigned")
	}
	lo, hi, _ := adjustIndices(b.length, start, stop, 1)
	hi = max(hi, lo)
	return b.splice("set_slice", lo, hi, value)
}

// Splice deletes [start, stop) and inserts value at start. Both bounds
// must already be within [0, Len()] with start <= stop.
func (b *MString) Splice(start, stop int, value []byte) error {
	if start < 0 || stop > b.length || start > stop {
		return indexError("splice")
	}
	return b.splice("splice", start, stop, value)
}

// splice is the single slice-mutation routine. Capacity is secured
// before any byte moves, so a failed grow leaves the content untouched.
func (b *MString) splice(op string, start, stop int, value []byte) error {
	if b.data == nil {
		return releasedError(op)
	}
	value = b.detach(value)
	newLen := b.length - (stop - start) + len(value)
	if err := b.ensureCapacity(op, newLen+1); err != nil {
		return err
	}
	// Shift the tail, terminator included; copy handles the overlap.
	copy(b.data[start+len(value):], b.data[stop:b.length+1])
	copy(b.data[start:], value)
	b.length = newLen
	return nil
}
