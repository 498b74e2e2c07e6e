package ops

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rubiojr/faststring/mstring"
)

func init() {
	for _, o := range builtins {
		Register(o)
	}
}

var builtins = []*Op{
	{
		Name: "new", Doc: "replace the buffer with a fresh one holding text",
		Args: []ArgType{String}, Optional: 1,
		Run: func(s *Session, args []Value) error {
			var initial []byte
			if len(args) > 0 {
				initial = args[0].Bytes
			}
			return s.Reset(initial)
		},
	},
	{
		Name: "append", Doc: "append s to the buffer",
		Args: []ArgType{String},
		Run: func(s *Session, args []Value) error {
			return s.Buf.Append(args[0].Bytes)
		},
	},
	{
		Name: "insert", Doc: "insert s before offset i",
		Args: []ArgType{Int, String},
		Run: func(s *Session, args []Value) error {
			return s.Buf.Insert(args[0].Int, args[1].Bytes)
		},
	},
	{
		Name: "get", Doc: "print the unit at index i",
		Args: []ArgType{Int},
		Run: func(s *Session, args []Value) error {
			c, err := s.Buf.Get(args[0].Int)
			if err != nil {
				return err
			}
			s.printf("%s\n", []byte{c})
			return nil
		},
	},
	{
		Name: "set", Doc: "overwrite the unit at index i with the single unit c",
		Args: []ArgType{Int, String},
		Run: func(s *Session, args []Value) error {
			return s.Buf.Set(args[0].Int, args[1].Bytes)
		},
	},
	{
		Name: "slice", Doc: "print the bytes selected by start:stop:step",
		Args: []ArgType{Bound, Bound, Int}, Optional: 1,
		Run: func(s *Session, args []Value) error {
			step := 1
			if len(args) > 2 {
				step = args[2].Int
			}
			out, err := s.Buf.Slice(args[0].Bound, args[1].Bound, step)
			if err != nil {
				return err
			}
			s.printf("%s\n", out)
			return nil
		},
	},
	{
		Name: "splice", Doc: "assign s to the contiguous range start:stop",
		Args: []ArgType{Bound, Bound, String},
		Run: func(s *Session, args []Value) error {
			return s.Buf.SetSlice(args[0].Bound, args[1].Bound, 1, args[2].Bytes)
		},
	},
	{
		Name: "find", Doc: "print the offset of the first occurrence of s, or -1",
		Args: []ArgType{String},
		Run: func(s *Session, args []Value) error {
			s.printf("%d\n", s.Buf.Find(args[0].Bytes))
			return nil
		},
	},
	{
		Name: "contains", Doc: "print whether s occurs in the buffer",
		Args: []ArgType{String},
		Run: func(s *Session, args []Value) error {
			s.printf("%t\n", s.Buf.Contains(args[0].Bytes))
			return nil
		},
	},
	{
		Name: "replace", Doc: "replace every occurrence of old with new",
		Args: []ArgType{String, String},
		Run: func(s *Session, args []Value) error {
			return s.Buf.Replace(args[0].Bytes, args[1].Bytes)
		},
	},
	{
		Name: "reverse", Doc: "reverse the buffer in place",
		Run: func(s *Session, _ []Value) error {
			s.Buf.Reverse()
			return nil
		},
	},
	{
		Name: "clear", Doc: "empty the buffer and shrink it to minimum capacity",
		Run: func(s *Session, _ []Value) error {
			return s.Buf.Clear()
		},
	},
	{
		Name: "concat", Doc: "replace the buffer with its concatenation with s",
		Args: []ArgType{String},
		Run: func(s *Session, args []Value) error {
			out, err := s.Buf.Add(args[0].Bytes)
			if err != nil {
				return err
			}
			s.Buf.Release()
			s.Buf = out
			return nil
		},
	},
	{
		Name: "repeat", Doc: "replace the buffer with n copies of itself",
		Args: []ArgType{Int},
		Run: func(s *Session, args []Value) error {
			return s.Buf.MulInPlace(args[0].Int)
		},
	},
	{
		Name: "len", Doc: "print the length in bytes",
		Run: func(s *Session, _ []Value) error {
			s.printf("%d\n", s.Buf.Len())
			return nil
		},
	},
	{
		Name: "cap", Doc: "print the allocated capacity",
		Run: func(s *Session, _ []Value) error {
			s.printf("%d\n", s.Buf.Cap())
			return nil
		},
	},
	{
		Name: "print", Doc: "print the buffer content",
		Run: func(s *Session, _ []Value) error {
			s.printf("%s\n", s.Buf.Bytes())
			return nil
		},
	},
	{
		Name: "repr", Doc: "print the debugging representation",
		Run: func(s *Session, _ []Value) error {
			s.printf("%s\n", s.Buf.Repr())
			return nil
		},
	},
	{
		Name: "chars", Doc: "print the characters, quoted, one per field",
		Run: func(s *Session, _ []Value) error {
			chars := s.Buf.Chars()
			quoted := make([]string, len(chars))
			for i, c := range chars {
				quoted[i] = fmt.Sprintf("%q", c)
			}
			s.printf("%s\n", strings.Join(quoted, " "))
			return nil
		},
	},
	{
		Name: "char", Doc: "print the character at index i",
		Args: []ArgType{Int},
		Run: func(s *Session, args []Value) error {
			c, err := s.Buf.CharAt(args[0].Int)
			if err != nil {
				return err
			}
			s.printf("%s\n", c)
			return nil
		},
	},
	{
		Name: "expect", Doc: "fail unless the buffer holds exactly s",
		Args: []ArgType{String},
		Run: func(s *Session, args []Value) error {
			if !bytes.Equal(s.Buf.Bytes(), args[0].Bytes) {
				return &mstring.Error{
					Kind: mstring.ErrValue,
					Op:   "expect",
					Msg:  fmt.Sprintf("expected %q, got %q", args[0].Bytes, s.Buf.Bytes()),
				}
			}
			return nil
		},
	},
}
