// Package luamod exposes MString buffers to Lua scripts running on
// gopher-lua.
//
// Buffers are userdata values sharing a per-state metatable. Indexing is
// 0-based and negative indices count from the end, exactly as in the Go
// API:
//
//	local mstring = require("mstring")
//	local s = mstring.new("hello")
//	s:append(" world")
//	print(s[0], #s, s:find("wor"))
//
// Engine errors are raised as Lua errors whose message starts with the
// error kind ("IndexError: ...", "TypeError: ...", ...).
package luamod

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/rubiojr/faststring/mstring"
)

// ModuleName is the name used with require and for the global table.
const ModuleName = "mstring"

const typeName = "faststring.MString"

type binding struct {
	opts []mstring.Option
}

// Preload makes require("mstring") available in L. opts apply to every
// buffer created through mstring.new.
func Preload(L *lua.LState, opts ...mstring.Option) {
	b := &binding{opts: opts}
	b.register(L)
	L.PreloadModule(ModuleName, b.loader)
}

// Open installs the mstring table as a global in L.
func Open(L *lua.LState, opts ...mstring.Option) {
	b := &binding{opts: opts}
	b.register(L)
	L.SetGlobal(ModuleName, b.module(L))
}

// NewState returns a state with only the base, table, string and math
// libraries plus the global mstring table. The caller closes it.
func NewState(opts ...mstring.Option) *lua.LState {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
	Open(L, opts...)
	return L
}

func (b *binding) loader(L *lua.LState) int {
	L.Push(b.module(L))
	return 1
}

func (b *binding) module(L *lua.LState) *lua.LTable {
	return L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"new": b.newBuffer,
		"is":  isBuffer,
	})
}

// register installs the buffer metatable once per state.
func (b *binding) register(L *lua.LState) {
	if _, ok := L.GetTypeMetatable(typeName).(*lua.LTable); ok {
		return
	}
	mt := L.NewTypeMetatable(typeName)
	methods := L.SetFuncs(L.NewTable(), methodFuncs())
	L.SetFuncs(mt, map[string]lua.LGFunction{
		"__index":    indexFunc(methods),
		"__newindex": newIndex,
		"__len":      length,
		"__add":      add,
		"__mul":      mul,
		"__concat":   concat,
		"__eq":       equal,
		"__tostring": toString,
	})
}

// mstring.new([s]) -> buffer
func (b *binding) newBuffer(L *lua.LState) int {
	var initial []byte
	if L.GetTop() >= 1 && L.Get(1) != lua.LNil {
		initial = bytesArg(L, 1, "new")
	}
	ms, err := mstring.New(initial, b.opts...)
	if err != nil {
		raise(L, err)
		return 0
	}
	push(L, ms)
	return 1
}

// mstring.is(v) -> bool
func isBuffer(L *lua.LState) int {
	_, ok := toMString(L.Get(1))
	L.Push(lua.LBool(ok))
	return 1
}

// push wraps ms in userdata carrying the buffer metatable.
func push(L *lua.LState, ms *mstring.MString) {
	ud := L.NewUserData()
	ud.Value = ms
	L.SetMetatable(ud, L.GetTypeMetatable(typeName))
	L.Push(ud)
}

func toMString(v lua.LValue) (*mstring.MString, bool) {
	ud, ok := v.(*lua.LUserData)
	if !ok {
		return nil, false
	}
	ms, ok := ud.Value.(*mstring.MString)
	return ms, ok
}
