package cmd

import (
	"fmt"
	"io"
	"strings"

	lua "github.com/yuin/gopher-lua"
)

// installPrint replaces the base print so script output follows the
// command's writer.
func installPrint(L *lua.LState, w io.Writer) {
	L.SetGlobal("print", L.NewFunction(func(L *lua.LState) int {
		parts := make([]string, L.GetTop())
		for i := range parts {
			parts[i] = L.ToStringMeta(L.Get(i + 1)).String()
		}
		fmt.Fprintln(w, strings.Join(parts, "\t"))
		return 0
	}))
}

// setArgs exposes the script path as arg[0] and its arguments as arg[1..].
func setArgs(L *lua.LState, script string, args []string) {
	tbl := L.NewTable()
	tbl.RawSetInt(0, lua.LString(script))
	for i, a := range args {
		tbl.RawSetInt(i+1, lua.LString(a))
	}
	L.SetGlobal("arg", tbl)
}
