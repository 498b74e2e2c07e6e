package luamod

import lua "github.com/yuin/gopher-lua"

// indexFunc resolves integer keys to single units and string keys to
// methods.
func indexFunc(methods *lua.LTable) lua.LGFunction {
	return func(L *lua.LState) int {
		ms := self(L, "index")
		switch key := L.Get(2).(type) {
		case lua.LNumber:
			c, err := ms.Get(intArg(L, 2, "get"))
			if err != nil {
				raise(L, err)
				return 0
			}
			L.Push(lua.LString([]byte{c}))
		case lua.LString:
			L.Push(methods.RawGetString(string(key)))
		default:
			typeError(L, "index", "indices must be integers, got %s", key.Type())
		}
		return 1
	}
}

func newIndex(L *lua.LState) int {
	ms := self(L, "set")
	if _, ok := L.Get(2).(lua.LNumber); !ok {
		typeError(L, "set", "indices must be integers, got %s", L.Get(2).Type())
		return 0
	}
	setUnit(L, ms, intArg(L, 2, "set"), L.Get(3))
	return 0
}

func length(L *lua.LState) int {
	L.Push(lua.LNumber(self(L, "len").Len()))
	return 1
}

// a + b: the left operand must be a buffer; the right may be a string or
// a buffer.
func add(L *lua.LState) int {
	ms, ok := toMString(L.Get(1))
	if !ok {
		typeError(L, "add", "unsupported operand %s for +", L.Get(1).Type())
		return 0
	}
	out, err := ms.Add(operand(L, 2))
	if err != nil {
		raise(L, err)
		return 0
	}
	push(L, out)
	return 1
}

// s * n
func mul(L *lua.LState) int {
	ms, ok := toMString(L.Get(1))
	if !ok {
		typeError(L, "mul", "unsupported operand %s for *", L.Get(1).Type())
		return 0
	}
	out, err := ms.Mul(intArg(L, 2, "mul"))
	if err != nil {
		raise(L, err)
		return 0
	}
	push(L, out)
	return 1
}

// a .. b accepts a buffer on either side and yields a new buffer.
func concat(L *lua.LState) int {
	if ms, ok := toMString(L.Get(1)); ok {
		out, err := ms.Add(operand(L, 2))
		if err != nil {
			raise(L, err)
			return 0
		}
		push(L, out)
		return 1
	}
	left := bytesArg(L, 1, "concat")
	right, ok := toMString(L.Get(2))
	if !ok {
		typeError(L, "concat", "unsupported operand %s for ..", L.Get(2).Type())
		return 0
	}
	out, err := right.Clone()
	if err == nil {
		err = out.Insert(0, left)
	}
	if err != nil {
		raise(L, err)
		return 0
	}
	push(L, out)
	return 1
}

func equal(L *lua.LState) int {
	a, _ := toMString(L.Get(1))
	b, _ := toMString(L.Get(2))
	L.Push(lua.LBool(a != nil && a.Equal(b)))
	return 1
}

func toString(L *lua.LState) int {
	L.Push(lua.LString(self(L, "to_string").String()))
	return 1
}
