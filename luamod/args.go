package luamod

import (
	"fmt"
	"math"

	lua "github.com/yuin/gopher-lua"

	"github.com/rubiojr/faststring/mstring"
)

// raise converts an engine error into a Lua error named after its kind.
func raise(L *lua.LState, err error) {
	kind := mstring.KindName(err)
	if kind == "" {
		kind = "Error"
	}
	L.RaiseError("%s: %v", kind, err)
}

func typeError(L *lua.LState, op, format string, args ...any) {
	raise(L, &mstring.Error{Kind: mstring.ErrType, Op: op, Msg: fmt.Sprintf(format, args...)})
}

// self returns the buffer at stack position 1.
func self(L *lua.LState, op string) *mstring.MString {
	ms, ok := toMString(L.Get(1))
	if !ok {
		typeError(L, op, "expected an MString receiver, got %s", L.Get(1).Type())
	}
	return ms
}

// bytesArg accepts a Lua string or a buffer.
func bytesArg(L *lua.LState, n int, op string) []byte {
	v := L.Get(n)
	if s, ok := v.(lua.LString); ok {
		return []byte(s)
	}
	if ms, ok := toMString(v); ok {
		return ms.Bytes()
	}
	typeError(L, op, "argument %d must be a string or MString, got %s", n, v.Type())
	return nil
}

// operand maps a Lua value to what mstring.Operand accepts. Other values
// pass through unchanged and are rejected there.
func operand(L *lua.LState, n int) any {
	v := L.Get(n)
	if s, ok := v.(lua.LString); ok {
		return string(s)
	}
	if ms, ok := toMString(v); ok {
		return ms
	}
	return v
}

// intArg accepts only integral numbers that fit in an int.
func intArg(L *lua.LState, n int, op string) int {
	v := L.Get(n)
	num, ok := v.(lua.LNumber)
	f := float64(num)
	if !ok || f != math.Trunc(f) || f < math.MinInt || f >= -math.MinInt {
		typeError(L, op, "argument %d must be an integer, got %s", n, describe(v))
	}
	return int(num)
}

// boundArg maps nil or an absent argument to an open bound.
func boundArg(L *lua.LState, n int, op string) mstring.Bound {
	if L.Get(n) == lua.LNil {
		return mstring.Open
	}
	return mstring.At(intArg(L, n, op))
}

func describe(v lua.LValue) string {
	if num, ok := v.(lua.LNumber); ok {
		return fmt.Sprintf("number %v", num)
	}
	return v.Type().String()
}
