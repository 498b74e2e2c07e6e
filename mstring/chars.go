package mstring

import (
	"github.com/rivo/uniseg"
)

// The character view addresses extended grapheme clusters rather than
// bytes, so a multi-byte character is always read and written whole.

// CharLen returns the number of grapheme clusters in the content.
func (b *MString) CharLen() int {
	return uniseg.GraphemeClusterCount(b.String())
}

// Chars returns the content split into grapheme clusters.
func (b *MString) Chars() []string {
	if b.length == 0 {
		return nil
	}
	g := uniseg.NewGraphemes(b.String())
	out := make([]string, 0, b.length)
	for g.Next() {
		out = append(out, g.Str())
	}
	return out
}

// charSpan returns the byte range of the cluster at index, with negative
// indices counting from the last cluster.
func (b *MString) charSpan(op string, index int) (int, int, error) {
	if index < 0 {
		index += b.CharLen()
	}
	if index < 0 {
		return 0, 0, indexError(op)
	}
	g := uniseg.NewGraphemes(b.String())
	for i := 0; g.Next(); i++ {
		if i == index {
			start, end := g.Positions()
			return start, end, nil
		}
	}
	return 0, 0, indexError(op)
}

// CharAt returns the grapheme cluster at index.
func (b *MString) CharAt(index int) (string, error) {
	start, end, err := b.charSpan("char_at", index)
	if err != nil {
		return "", err
	}
	return string(b.data[start:end]), nil
}

// SetChar replaces the grapheme cluster at index with c, which must be
// exactly one cluster. The byte length may change.
func (b *MString) SetChar(index int, c string) error {
	start, end, err := b.charSpan("set_char", index)
	if err != nil {
		return err
	}
	if uniseg.GraphemeClusterCount(c) != 1 {
		return newError(ErrType, "set_char", "value must be a single character, got %q", c)
	}
	return b.splice("set_char", start, end, []byte(c))
}
