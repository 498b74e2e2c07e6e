// Package ops implements a small line-oriented script language that
// drives a single MString buffer. Each statement names a registered op
// followed by its arguments.
package ops

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rubiojr/faststring/mstring"
)

// ArgType represents the expected type of an op argument.
type ArgType int

const (
	// String accepts quoted strings and bare words.
	String ArgType = iota
	// Int accepts base-10 integers, optionally negative.
	Int
	// Bound accepts an integer or "_" for an open slice bound.
	Bound
)

func (a ArgType) String() string {
	switch a {
	case String:
		return "string"
	case Int:
		return "int"
	case Bound:
		return "bound"
	}
	return fmt.Sprintf("ArgType(%d)", int(a))
}

// Value is a converted argument. Only the field matching the declared
// ArgType is meaningful.
type Value struct {
	Bytes []byte
	Int   int
	Bound mstring.Bound
}

// Op describes a script operation.
type Op struct {
	// Name is the statement keyword (e.g. "append").
	Name string
	// Doc is a one-line description shown by Format.
	Doc string
	// Args lists the expected argument types in order.
	Args []ArgType
	// Optional is how many trailing Args may be omitted. Run receives
	// only the arguments actually given.
	Optional int
	// Run executes the op against the session.
	Run func(s *Session, args []Value) error
}

// Usage returns the op name followed by its argument placeholders.
func (o *Op) Usage() string {
	var sb strings.Builder
	sb.WriteString(o.Name)
	required := len(o.Args) - o.Optional
	for i, a := range o.Args {
		if i < required {
			fmt.Fprintf(&sb, " <%s>", a)
		} else {
			fmt.Fprintf(&sb, " [%s]", a)
		}
	}
	return sb.String()
}

var registry = make(map[string]*Op)

// Register adds an op to the global registry, replacing any op of the
// same name.
func Register(o *Op) {
	registry[o.Name] = o
}

// Get returns a registered op by name.
func Get(name string) (*Op, bool) {
	o, ok := registry[name]
	return o, ok
}

// Names returns sorted names of all registered ops.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Format renders the registry as an aligned usage table, one op per line.
func Format() string {
	width := 0
	for _, name := range Names() {
		width = max(width, len(registry[name].Usage()))
	}
	var sb strings.Builder
	for _, name := range Names() {
		o := registry[name]
		fmt.Fprintf(&sb, "%-*s  %s\n", width, o.Usage(), o.Doc)
	}
	return sb.String()
}
