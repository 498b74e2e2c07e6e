package mstring

import (
	"bytes"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func invariantsHold(ms *MString) bool {
	c := ms.Cap()
	if c < MinCapacity || c&(c-1) != 0 {
		return false
	}
	return ms.Len()+1 <= c && ms.data[ms.Len()] == 0
}

func TestBufferProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("construction round-trips content", prop.ForAll(
		func(s string) bool {
			ms, err := NewString(s)
			return err == nil && ms.String() == s && ms.Len() == len(s) && invariantsHold(ms)
		},
		gen.AnyString(),
	))

	properties.Property("appends keep capacity a power of two above length", prop.ForAll(
		func(parts []string) bool {
			ms, err := NewString("")
			if err != nil {
				return false
			}
			var want strings.Builder
			for _, p := range parts {
				if ms.AppendString(p) != nil || !invariantsHold(ms) {
					return false
				}
				want.WriteString(p)
			}
			return ms.String() == want.String()
		},
		gen.SliceOf(gen.AlphaString()),
	))

	properties.Property("slice assignment matches splicing a copy", prop.ForAll(
		func(s, v string, i, j int) bool {
			ms, err := NewString(s)
			if err != nil {
				return false
			}
			lo, hi, _ := adjustIndices(len(s), At(i), At(j), 1)
			hi = max(hi, lo)
			want := s[:lo] + v + s[hi:]
			return ms.SetSlice(At(i), At(j), 1, []byte(v)) == nil && ms.String() == want && invariantsHold(ms)
		},
		gen.AlphaString(),
		gen.AlphaString(),
		gen.IntRange(-40, 40),
		gen.IntRange(-40, 40),
	))

	properties.Property("insert then delete restores content", prop.ForAll(
		func(s, v string, pos int) bool {
			ms, err := NewString(s)
			if err != nil {
				return false
			}
			pos = pos % (len(s) + 1)
			if ms.Insert(pos, []byte(v)) != nil {
				return false
			}
			if ms.Splice(pos, pos+len(v), nil) != nil {
				return false
			}
			return ms.String() == s && invariantsHold(ms)
		},
		gen.AlphaString(),
		gen.AlphaString(),
		gen.IntRange(0, 1000),
	))

	properties.Property("reverse is an involution", prop.ForAll(
		func(p []byte) bool {
			ms, err := New(p)
			if err != nil {
				return false
			}
			ms.Reverse()
			ms.Reverse()
			return bytes.Equal(ms.Bytes(), p)
		},
		gen.SliceOf(gen.UInt8()),
	))

	properties.Property("repeat matches strings.Repeat", prop.ForAll(
		func(s string, n int) bool {
			ms, err := NewString(s)
			if err != nil {
				return false
			}
			r, err := ms.Repeat(n)
			return err == nil && r.String() == strings.Repeat(s, n) && invariantsHold(r)
		},
		gen.AlphaString(),
		gen.IntRange(0, 20),
	))

	properties.Property("replace matches strings.ReplaceAll", prop.ForAll(
		func(s, old, new string) bool {
			if old == "" {
				return true
			}
			ms, err := NewString(s)
			if err != nil {
				return false
			}
			return ms.ReplaceString(old, new) == nil && ms.String() == strings.ReplaceAll(s, old, new) && invariantsHold(ms)
		},
		gen.RegexMatch("[ab]{0,12}"),
		gen.RegexMatch("[ab]{1,3}"),
		gen.RegexMatch("[xy]{0,4}"),
	))

	properties.Property("slice agrees with a naive walk", prop.ForAll(
		func(s string, i, j, step int) bool {
			if step == 0 {
				step = 1
			}
			ms, err := NewString(s)
			if err != nil {
				return false
			}
			got, err := ms.Slice(At(i), At(j), step)
			if err != nil {
				return false
			}
			lo, hi, _ := adjustIndices(len(s), At(i), At(j), step)
			var want []byte
			for k := lo; (step > 0 && k < hi) || (step < 0 && k > hi); k += step {
				want = append(want, s[k])
			}
			return bytes.Equal(got, want)
		},
		gen.AlphaString(),
		gen.IntRange(-30, 30),
		gen.IntRange(-30, 30),
		gen.IntRange(-4, 4),
	))

	properties.TestingRun(t)
}
