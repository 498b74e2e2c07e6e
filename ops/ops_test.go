package ops

import (
	"bytes"
	"strings"
	"testing"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rubiojr/faststring/mstring"
)

func withCleanRegistry(t *testing.T) {
	t.Helper()
	old := registry
	registry = make(map[string]*Op)
	t.Cleanup(func() { registry = old })
}

func run(t *testing.T, src string, opts ...mstring.Option) (string, *Session, error) {
	t.Helper()
	var out bytes.Buffer
	s, err := NewSession(&out, nil, opts...)
	require.NoError(t, err)
	t.Cleanup(s.Close)
	err = Exec(src, s)
	return out.String(), s, err
}

func TestRegisterAndGet(t *testing.T) {
	withCleanRegistry(t)
	Register(&Op{Name: "noop", Run: func(*Session, []Value) error { return nil }})

	o, ok := Get("noop")
	require.True(t, ok)
	assert.Equal(t, "noop", o.Name)

	_, ok = Get("missing")
	assert.False(t, ok)
}

func TestNames(t *testing.T) {
	withCleanRegistry(t)
	Register(&Op{Name: "beta"})
	Register(&Op{Name: "alpha"})
	assert.Equal(t, []string{"alpha", "beta"}, Names())
}

func TestBuiltinsRegistered(t *testing.T) {
	for _, name := range []string{
		"new", "append", "insert", "get", "set", "slice", "splice", "find", "contains",
		"replace", "reverse", "clear", "concat", "repeat", "len", "cap", "print", "repr",
		"chars", "char", "expect",
	} {
		_, ok := Get(name)
		assert.True(t, ok, name)
	}
}

func TestUsageAndFormat(t *testing.T) {
	o, ok := Get("slice")
	require.True(t, ok)
	assert.Equal(t, "slice <bound> <bound> [int]", o.Usage())

	doc := Format()
	lines := strings.Split(strings.TrimSuffix(doc, "\n"), "\n")
	assert.Len(t, lines, len(Names()))
	assert.Contains(t, doc, "append <string>")
	assert.Contains(t, doc, "print the length in bytes")
}

func TestExecScenario(t *testing.T) {
	out, s, err := run(t, `
append "hello"
insert 5 " world"
find "wor"
replace l L
print; len; cap
`)
	require.NoError(t, err)
	assert.Equal(t, "6\nheLLo worLd\n11\n16\n", out)
	assert.Equal(t, "heLLo worLd", s.Buf.String())
}

func TestExecQueries(t *testing.T) {
	out, _, err := run(t, `new "Hello, World!"
get 0; get -1
slice 0 5; slice _ _ -1; slice _ _ 2
contains World; contains Hi
repr
char 4
find Hi`)
	require.NoError(t, err)
	assert.Equal(t, strings.Join([]string{
		"H", "!",
		"Hello", "!dlroW ,olleH", "Hlo ol!",
		"true", "false",
		"<MString: Hello, World!>",
		"o",
		"-1",
	}, "\n")+"\n", out)
}

func TestExecMutations(t *testing.T) {
	_, s, err := run(t, `
new abc
set 0 X; expect Xbc
splice 1 2 "--"; expect "X--c"
splice _ 0 '>'; expect ">X--c"
reverse; expect "c--X>"
concat "!"; expect "c--X>!"
repeat 2; expect "c--X>!c--X>!"
clear; expect ""
append "a\x00b"; expect "a\0b"
`)
	require.NoError(t, err)
	assert.Equal(t, 3, s.Buf.Len())
}

func TestExecChars(t *testing.T) {
	out, _, err := run(t, `new "né!"; chars; char -2`)
	require.NoError(t, err)
	assert.Equal(t, "\"n\" \"é\" \"!\"\né\n", out)
}

func TestExecErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		kind error
		line string
	}{
		{"unknown op", "len\nfrobnicate", mstring.ErrValue, "line 2"},
		{"too few args", "insert 1", mstring.ErrType, "line 1"},
		{"too many args", "len 1", mstring.ErrType, "line 1"},
		{"wrong type", "get abc", mstring.ErrType, "line 1"},
		{"bound type", `slice "a" 1`, mstring.ErrType, "line 1"},
		{"index", "new abc\nget 5", mstring.ErrIndex, "line 2"},
		{"multi-unit set", "new abc; set 0 xy", mstring.ErrType, "line 1"},
		{"zero step", "slice _ _ 0", mstring.ErrValue, "line 1"},
		{"empty replace", `replace "" x`, mstring.ErrValue, "line 1"},
		{"negative repeat", "new a\n\nrepeat -1", mstring.ErrValue, "line 3"},
		{"expect", "new a; expect b", mstring.ErrValue, "line 1"},
		{"bad literal", `append "\q"`, mstring.ErrValue, "line 1"},
		{"not an op", `"append"`, mstring.ErrValue, "line 1"},
		{"unterminated string", "len\nappend \"abc\nlen", mstring.ErrValue, "line 2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := run(t, tt.src)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.kind)
			assert.True(t, strings.HasPrefix(err.Error(), tt.line+": "), err.Error())
		})
	}
}

func TestExecCommentsWithQuotes(t *testing.T) {
	out, s, err := run(t, "# don't panic\nappend hello # the \"greeting\nlen\n")
	require.NoError(t, err)
	assert.Equal(t, "5\n", out)
	assert.Equal(t, "hello", s.Buf.String())
}

func TestExecStopsAtFirstError(t *testing.T) {
	out, s, err := run(t, "append a\nget 9\nappend b\nprint")
	require.Error(t, err)
	assert.Empty(t, out)
	assert.Equal(t, "a", s.Buf.String())
}

func TestSessionAllocator(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	var out bytes.Buffer
	s, err := NewSession(&out, nil, mstring.WithAllocator(mem))
	require.NoError(t, err)

	require.NoError(t, Exec(`append "0123456789"; new x; concat yz; repeat 10`, s))
	assert.Equal(t, s.Buf.Cap(), mem.CurrentAlloc(), "replaced buffers are released")

	s.Close()
	mem.AssertSize(t, 0)
}

func TestSessionMaxCapacity(t *testing.T) {
	_, s, err := run(t, `append "0123456789"`, mstring.WithMaxCapacity(8))
	require.ErrorIs(t, err, mstring.ErrAllocation)
	assert.Equal(t, "", s.Buf.String())
}
