package luamod

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/rubiojr/faststring/mstring"
)

func methodFuncs() map[string]lua.LGFunction {
	return map[string]lua.LGFunction{
		"append":    appendMethod,
		"insert":    insert,
		"find":      find,
		"contains":  contains,
		"replace":   replace,
		"reverse":   reverse,
		"clear":     clear,
		"to_string": toString,
		"repr":      repr,
		"slice":     slice,
		"set_slice": setSlice,
		"get":       get,
		"set":       set,
		"cap":       capacity,
		"chars":     chars,
		"char_at":   charAt,
		"iter":      iterate,
		"release":   release,
	}
}

// s:append(v)
func appendMethod(L *lua.LState) int {
	ms := self(L, "append")
	if err := ms.AddInPlace(operand(L, 2)); err != nil {
		raise(L, err)
	}
	return 0
}

// s:insert(i, v)
func insert(L *lua.LState) int {
	ms := self(L, "insert")
	if err := ms.Insert(intArg(L, 2, "insert"), bytesArg(L, 3, "insert")); err != nil {
		raise(L, err)
	}
	return 0
}

// s:find(v) -> offset or -1
func find(L *lua.LState) int {
	ms := self(L, "find")
	L.Push(lua.LNumber(ms.Find(bytesArg(L, 2, "find"))))
	return 1
}

// s:contains(v) -> bool
func contains(L *lua.LState) int {
	ms := self(L, "contains")
	L.Push(lua.LBool(ms.Contains(bytesArg(L, 2, "contains"))))
	return 1
}

// s:replace(old, new)
func replace(L *lua.LState) int {
	ms := self(L, "replace")
	if err := ms.Replace(bytesArg(L, 2, "replace"), bytesArg(L, 3, "replace")); err != nil {
		raise(L, err)
	}
	return 0
}

func reverse(L *lua.LState) int {
	self(L, "reverse").Reverse()
	return 0
}

func clear(L *lua.LState) int {
	if err := self(L, "clear").Clear(); err != nil {
		raise(L, err)
	}
	return 0
}

func repr(L *lua.LState) int {
	L.Push(lua.LString(self(L, "repr").Repr()))
	return 1
}

// s:slice([start [, stop [, step]]]) -> string
func slice(L *lua.LState) int {
	ms := self(L, "slice")
	step := 1
	if L.Get(4) != lua.LNil {
		step = intArg(L, 4, "slice")
	}
	out, err := ms.Slice(boundArg(L, 2, "slice"), boundArg(L, 3, "slice"), step)
	if err != nil {
		raise(L, err)
		return 0
	}
	L.Push(lua.LString(out))
	return 1
}

// s:set_slice(start, stop, v)
func setSlice(L *lua.LState) int {
	ms := self(L, "set_slice")
	err := ms.SetSlice(boundArg(L, 2, "set_slice"), boundArg(L, 3, "set_slice"), 1, bytesArg(L, 4, "set_slice"))
	if err != nil {
		raise(L, err)
	}
	return 0
}

// s:get(i) -> single-unit string
func get(L *lua.LState) int {
	ms := self(L, "get")
	c, err := ms.Get(intArg(L, 2, "get"))
	if err != nil {
		raise(L, err)
		return 0
	}
	L.Push(lua.LString([]byte{c}))
	return 1
}

// s:set(i, c)
func set(L *lua.LState) int {
	ms := self(L, "set")
	setUnit(L, ms, intArg(L, 2, "set"), L.Get(3))
	return 0
}

func setUnit(L *lua.LState, ms *mstring.MString, index int, v lua.LValue) {
	s, ok := v.(lua.LString)
	if !ok {
		typeError(L, "set", "value must be a single-unit string, got %s", v.Type())
		return
	}
	if err := ms.Set(index, []byte(s)); err != nil {
		raise(L, err)
	}
}

func capacity(L *lua.LState) int {
	L.Push(lua.LNumber(self(L, "cap").Cap()))
	return 1
}

// s:chars() -> array of characters
func chars(L *lua.LState) int {
	tbl := L.NewTable()
	for _, c := range self(L, "chars").Chars() {
		tbl.Append(lua.LString(c))
	}
	L.Push(tbl)
	return 1
}

// s:char_at(i) -> character
func charAt(L *lua.LState) int {
	ms := self(L, "char_at")
	c, err := ms.CharAt(intArg(L, 2, "char_at"))
	if err != nil {
		raise(L, err)
		return 0
	}
	L.Push(lua.LString(c))
	return 1
}

// s:iter() returns a function yielding one single-unit string per call
// and nil at the end, for use with a generic for.
func iterate(L *lua.LState) int {
	it := self(L, "iter").Iter()
	L.Push(L.NewFunction(func(L *lua.LState) int {
		c, ok := it.Next()
		if !ok {
			L.Push(lua.LNil)
			return 1
		}
		L.Push(lua.LString([]byte{c}))
		return 1
	}))
	return 1
}

func release(L *lua.LState) int {
	self(L, "release").Release()
	return 0
}
