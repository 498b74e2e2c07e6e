package luamod

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	lua "github.com/yuin/gopher-lua"

	"github.com/rubiojr/faststring/mstring"
)

func newState(t *testing.T, opts ...mstring.Option) *lua.LState {
	t.Helper()
	L := NewState(opts...)
	t.Cleanup(L.Close)
	return L
}

func doString(t *testing.T, L *lua.LState, code string) {
	t.Helper()
	require.NoError(t, L.DoString(code))
}

func global(L *lua.LState, name string) string {
	return L.GetGlobal(name).String()
}

func TestScenario(t *testing.T) {
	L := newState(t)
	doString(t, L, `
local s = mstring.new()
s:append("hello")
s:insert(5, " world")
pos = s:find("wor")
s:replace("l", "L")
result = s:to_string()
n = #s
c = s:cap()
`)
	assert.Equal(t, "6", global(L, "pos"))
	assert.Equal(t, "heLLo worLd", global(L, "result"))
	assert.Equal(t, "11", global(L, "n"))
	assert.Equal(t, "16", global(L, "c"))
}

func TestIndexing(t *testing.T) {
	L := newState(t)
	doString(t, L, `
local s = mstring.new("Hello, World!")
first, last, via_get = s[0], s[-1], s:get(7)
s[0] = "J"
s:set(-1, "?")
result = tostring(s)
`)
	assert.Equal(t, "H", global(L, "first"))
	assert.Equal(t, "!", global(L, "last"))
	assert.Equal(t, "W", global(L, "via_get"))
	assert.Equal(t, "Jello, World?", global(L, "result"))
}

func TestSlicing(t *testing.T) {
	L := newState(t)
	doString(t, L, `
local s = mstring.new("Hello, World!")
whole = s:slice()
tail = s:slice(-6)
head = s:slice(nil, 5)
rev = s:slice(nil, nil, -1)
every = s:slice(0, nil, 2)
s:set_slice(7, 12, "Lua")
assigned = tostring(s)
`)
	assert.Equal(t, "Hello, World!", global(L, "whole"))
	assert.Equal(t, "World!", global(L, "tail"))
	assert.Equal(t, "Hello", global(L, "head"))
	assert.Equal(t, "!dlroW ,olleH", global(L, "rev"))
	assert.Equal(t, "Hlo ol!", global(L, "every"))
	assert.Equal(t, "Hello, Lua!", global(L, "assigned"))
}

func TestOperators(t *testing.T) {
	L := newState(t)
	doString(t, L, `
local a = mstring.new("Hello, ")
local b = mstring.new("World!")
local sum = a + b
plus_string = tostring(a + "there")
sum_str = tostring(sum)
sum_is = mstring.is(sum)
cat_right = tostring(a .. "x")
cat_left = tostring("x" .. b)
cat_both = tostring(a .. b)
rep = tostring(mstring.new("ab") * 3)
same = mstring.new("abc") == mstring.new("abc")
differ = mstring.new("abc") == mstring.new("abd")
unchanged = tostring(a)
`)
	assert.Equal(t, "Hello, there", global(L, "plus_string"))
	assert.Equal(t, "Hello, World!", global(L, "sum_str"))
	assert.Equal(t, "true", global(L, "sum_is"))
	assert.Equal(t, "Hello, x", global(L, "cat_right"))
	assert.Equal(t, "xWorld!", global(L, "cat_left"))
	assert.Equal(t, "Hello, World!", global(L, "cat_both"))
	assert.Equal(t, "ababab", global(L, "rep"))
	assert.Equal(t, "true", global(L, "same"))
	assert.Equal(t, "false", global(L, "differ"))
	assert.Equal(t, "Hello, ", global(L, "unchanged"))
}

func TestMethods(t *testing.T) {
	L := newState(t)
	doString(t, L, `
local s = mstring.new("abc")
has = s:contains("bc")
missing = s:contains("x")
s:reverse()
reversed = tostring(s)
r = s:repr()
s:clear()
cleared_len, cleared_cap = #s, s:cap()
`)
	assert.Equal(t, "true", global(L, "has"))
	assert.Equal(t, "false", global(L, "missing"))
	assert.Equal(t, "cba", global(L, "reversed"))
	assert.Equal(t, "<MString: cba>", global(L, "r"))
	assert.Equal(t, "0", global(L, "cleared_len"))
	assert.Equal(t, "4", global(L, "cleared_cap"))
}

func TestOperandKinds(t *testing.T) {
	L := newState(t)
	doString(t, L, `
local s = mstring.new("ab")
s:append(s)
self_append = tostring(s)
s:append(mstring.new("!"))
with_buffer = tostring(s)
doubled = tostring(s * 2)
none = #(s * 0)
`)
	assert.Equal(t, "abab", global(L, "self_append"))
	assert.Equal(t, "abab!", global(L, "with_buffer"))
	assert.Equal(t, "abab!abab!", global(L, "doubled"))
	assert.Equal(t, "0", global(L, "none"))
}

func TestIterAndChars(t *testing.T) {
	L := newState(t)
	doString(t, L, `
local s = mstring.new("abc")
local units = {}
for c in s:iter() do units[#units + 1] = c end
joined = table.concat(units, ",")

local w = mstring.new("né!")
local cs = w:chars()
count = #cs
second = cs[2]
at = w:char_at(-2)
`)
	assert.Equal(t, "a,b,c", global(L, "joined"))
	assert.Equal(t, "3", global(L, "count"))
	assert.Equal(t, "é", global(L, "second"))
	assert.Equal(t, "é", global(L, "at"))
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name string
		code string
		want string
	}{
		{"index out of range", `local x = mstring.new("abc")[5]`, "IndexError"},
		{"get out of range", `mstring.new("abc"):get(-4)`, "IndexError"},
		{"insert past end", `mstring.new("abc"):insert(4, "x")`, "IndexError"},
		{"multi-unit set", `mstring.new("abc"):set(0, "xy")`, "TypeError"},
		{"non-string set", `local s = mstring.new("abc"); s[0] = 1`, "TypeError"},
		{"field assignment", `local s = mstring.new("abc"); s.foo = "x"`, "TypeError"},
		{"float index", `mstring.new("abc"):get(1.5)`, "TypeError"},
		{"empty replace", `mstring.new("abc"):replace("", "x")`, "ValueError"},
		{"zero step", `mstring.new("abc"):slice(nil, nil, 0)`, "ValueError"},
		{"negative repeat", `local x = mstring.new("abc") * -1`, "ValueError"},
		{"float repeat", `local x = mstring.new("abc") * 1.5`, "TypeError"},
		{"huge repeat", `local x = mstring.new("abc") * math.huge`, "TypeError"},
		{"negative huge repeat", `local x = mstring.new("abc") * -math.huge`, "TypeError"},
		{"nan index", `mstring.new("abc"):get(0/0)`, "TypeError"},
		{"huge index", `mstring.new("abc"):get(1e300)`, "TypeError"},
		{"huge insert", `mstring.new("abc"):insert(2^63, "x")`, "TypeError"},
		{"bad add operand", `local x = mstring.new("abc") + 5`, "TypeError"},
		{"bad append operand", `mstring.new("abc"):append({})`, "TypeError"},
		{"released", `local s = mstring.new("abc"); s:release(); s:append("x")`, "ReferenceError"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			L := newState(t)
			err := L.DoString(tt.code)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want+": mstring:")
		})
	}
}

func TestBufferOptions(t *testing.T) {
	L := newState(t, mstring.WithMaxCapacity(8))
	doString(t, L, `ok = pcall(function() return mstring.new("abc") end)`)
	assert.Equal(t, "true", global(L, "ok"))

	err := L.DoString(`mstring.new("0123456789")`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MemoryError")

	err = L.DoString(`local s = mstring.new("abc"); s:append("defgh")`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MemoryError")
}

func TestSandboxedLibraries(t *testing.T) {
	L := newState(t)
	doString(t, L, `has_io, has_os, has_string = io ~= nil, os ~= nil, string ~= nil`)
	assert.Equal(t, "false", global(L, "has_io"))
	assert.Equal(t, "false", global(L, "has_os"))
	assert.Equal(t, "true", global(L, "has_string"))
}

func TestPreload(t *testing.T) {
	L := lua.NewState()
	defer L.Close()
	Preload(L)

	require.NoError(t, L.DoString(`
local m = require("mstring")
result = m.new("a"):repr()
`))
	assert.Equal(t, "<MString: a>", global(L, "result"))
}

func TestStatesAreIndependent(t *testing.T) {
	a := newState(t)
	b := newState(t)
	doString(t, a, `getmetatable(mstring.new("x")).__tostring = nil`)
	doString(t, b, `result = tostring(mstring.new("y"))`)
	assert.Equal(t, "y", global(b, "result"))
}
