// Package mstring provides MString, a growable mutable byte sequence with
// string semantics.
//
// An MString owns one contiguous storage region obtained from an
// arrow memory.Allocator. It tracks a logical length and an allocated
// capacity, and always keeps capacity >= length+1 so that a zero
// terminator can follow the content. Capacity grows by doubling, one
// step at a time, until the requested size fits, which keeps appends
// amortized O(1) and makes every capacity value predictable.
//
// Basic usage:
//
//	ms, _ := mstring.NewString("hello")
//	ms.AppendString(" world")     // "hello world"
//	ms.Insert(5, []byte(","))     // "hello, world"
//	ms.ReplaceString("l", "L")    // "heLLo, worLd"
//	ms.Find([]byte("wor"))        // 7
//
// Indexing and slicing follow the conventional negative-index,
// half-open-range rules: Get(-1) is the last byte, and
// Slice(Open, At(-3), 1) drops the last three bytes.
//
// Byte and character views:
//
// Get, Set, Slice and SetSlice address raw bytes. CharAt, SetChar and
// Chars address extended grapheme clusters, which is the right unit
// for text that contains multi-byte characters.
//
// Growth and failure:
//
// Every operation that needs more room allocates the new region, copies
// into it and only then releases the old one. If the allocator fails
// or a configured maximum capacity is exceeded, the operation returns
// an error wrapping ErrAllocation and the buffer is left exactly as it
// was before the call.
//
// Concurrency:
//
// MString performs no locking. Mutating a buffer from more than one
// goroutine, or reading it while another goroutine mutates it, is a
// data race; callers must synchronize externally.
//
// Borrowed views returned by Bytes are invalidated by any operation that
// grows or replaces the storage region.
package mstring
