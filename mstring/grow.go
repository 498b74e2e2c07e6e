package mstring

import (
	"bytes"
	"fmt"
	"math"
	"unsafe"

	"go.uber.org/zap"
)

// MinCapacity is the capacity of a new or cleared buffer.
const MinCapacity = 4

// NextCapacity returns the capacity reached by doubling from current until
// it holds required bytes. A current capacity below MinCapacity starts at
// MinCapacity. The result never shrinks below current.
func NextCapacity(current, required int) (int, error) {
	c := max(current, MinCapacity)
	for c < required {
		if c > math.MaxInt/2 {
			return 0, fmt.Errorf("capacity overflow growing to %d bytes", required)
		}
		c *= 2
	}
	return c, nil
}

// ensureCapacity makes room for required bytes, terminator included. The
// old region stays in place until the new one holds a full copy.
func (b *MString) ensureCapacity(op string, required int) error {
	if b.data == nil {
		return releasedError(op)
	}
	if required <= len(b.data) {
		return nil
	}
	newCap, err := NextCapacity(len(b.data), required)
	if err != nil {
		return b.allocFailed(op, required, err)
	}
	region, err := b.allocate(op, newCap)
	if err != nil {
		return err
	}
	copy(region, b.data[:b.length+1])
	old := b.data
	b.data = region
	b.release(old)

	b.cfg.metrics.grew()
	b.cfg.log.Debug("grow",
		zap.String("op", op),
		zap.Int("from", len(old)),
		zap.Int("to", newCap))
	return nil
}

// allocate obtains a region of exactly n bytes. A panicking allocator, a
// short region or a request above the configured maximum all report
// ErrAllocation and leave nothing allocated.
func (b *MString) allocate(op string, n int) (region []byte, err error) {
	if b.cfg.maxCap > 0 && n > b.cfg.maxCap {
		return nil, b.allocFailed(op, n, fmt.Errorf("exceeds maximum capacity of %d bytes", b.cfg.maxCap))
	}
	defer func() {
		if r := recover(); r != nil {
			region = nil
			err = b.allocFailed(op, n, fmt.Errorf("allocator panic: %v", r))
		}
	}()

	region = b.cfg.mem.Allocate(n)
	if len(region) < n {
		if len(region) > 0 {
			b.cfg.mem.Free(region)
		}
		return nil, b.allocFailed(op, n, fmt.Errorf("allocator returned %d bytes", len(region)))
	}
	b.cfg.metrics.allocated(n)
	return region[:n], nil
}

func (b *MString) release(region []byte) {
	if len(region) == 0 {
		return
	}
	b.cfg.mem.Free(region)
	b.cfg.metrics.released(len(region))
}

func (b *MString) allocFailed(op string, requested int, cause error) *Error {
	b.cfg.metrics.failed()
	b.cfg.log.Warn("allocation failed",
		zap.String("op", op),
		zap.Int("requested", requested),
		zap.Error(cause))
	return &Error{Kind: ErrAllocation, Op: op, Msg: fmt.Sprintf("cannot allocate %d bytes", requested), Cause: cause}
}

// detach returns v, or a private copy of it when v points into the
// buffer's own storage and would be clobbered by a shift or a regrow.
func (b *MString) detach(v []byte) []byte {
	if overlaps(b.data, v) {
		return bytes.Clone(v)
	}
	return v
}

func overlaps(a, v []byte) bool {
	if len(a) == 0 || len(v) == 0 {
		return false
	}
	a0 := uintptr(unsafe.Pointer(unsafe.SliceData(a)))
	v0 := uintptr(unsafe.Pointer(unsafe.SliceData(v)))
	return a0 < v0+uintptr(len(v)) && v0 < a0+uintptr(len(a))
}
