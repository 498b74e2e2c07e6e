package ops

import (
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/rubiojr/faststring/mstring"
	"github.com/rubiojr/faststring/scanner"
)

// Session holds the buffer a script operates on and where query ops
// write their results.
type Session struct {
	Buf  *mstring.MString
	Out  io.Writer
	Log  *zap.Logger
	opts []mstring.Option
}

// NewSession returns a session with an empty buffer. opts are applied to
// every buffer the session creates.
func NewSession(out io.Writer, log *zap.Logger, opts ...mstring.Option) (*Session, error) {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Session{Out: out, Log: log, opts: opts}
	if err := s.Reset(nil); err != nil {
		return nil, err
	}
	return s, nil
}

// Reset replaces the session buffer with a fresh one holding initial.
func (s *Session) Reset(initial []byte) error {
	buf, err := mstring.New(initial, s.opts...)
	if err != nil {
		return err
	}
	if s.Buf != nil {
		s.Buf.Release()
	}
	s.Buf = buf
	return nil
}

// Close releases the session buffer.
func (s *Session) Close() {
	if s.Buf != nil {
		s.Buf.Release()
	}
}

func (s *Session) printf(format string, args ...any) {
	fmt.Fprintf(s.Out, format, args...)
}

// Exec runs every statement in src against s, stopping at the first
// failure. Errors carry the line of the failing statement.
func Exec(src string, s *Session) error {
	stmts, err := scanner.Statements(src)
	if err != nil {
		var syn *scanner.SyntaxError
		if errors.As(err, &syn) {
			return fmt.Errorf("line %d: %w", syn.Line, &mstring.Error{Kind: mstring.ErrValue, Op: "parse", Msg: err.Error()})
		}
		return err
	}
	for _, stmt := range stmts {
		if err := execStatement(s, stmt.Text); err != nil {
			return fmt.Errorf("line %d: %w", stmt.Line, err)
		}
	}
	return nil
}

func execStatement(s *Session, text string) error {
	toks, err := scanner.Tokenize(text)
	if err != nil {
		return &mstring.Error{Kind: mstring.ErrValue, Op: "parse", Msg: err.Error()}
	}
	if len(toks) == 0 {
		return nil
	}
	if toks[0].Kind != scanner.Word {
		return &mstring.Error{Kind: mstring.ErrValue, Op: "parse", Msg: fmt.Sprintf("expected an op name, got %s", toks[0].Text)}
	}
	name := toks[0].Text
	o, ok := Get(name)
	if !ok {
		return &mstring.Error{Kind: mstring.ErrValue, Op: name, Msg: "unknown op"}
	}
	args, err := convertArgs(o, toks[1:])
	if err != nil {
		return err
	}
	s.Log.Debug("exec", zap.String("op", name), zap.Int("args", len(toks)-1))
	return o.Run(s, args)
}

func convertArgs(o *Op, toks []scanner.Token) ([]Value, error) {
	required := len(o.Args) - o.Optional
	if len(toks) < required || len(toks) > len(o.Args) {
		return nil, &mstring.Error{
			Kind: mstring.ErrType,
			Op:   o.Name,
			Msg:  fmt.Sprintf("takes %s, got %d argument(s); usage: %s", arity(required, len(o.Args)), len(toks), o.Usage()),
		}
	}
	vals := make([]Value, len(toks))
	for i, tok := range toks {
		v, ok := convert(o.Args[i], tok)
		if !ok {
			return nil, &mstring.Error{
				Kind: mstring.ErrType,
				Op:   o.Name,
				Msg:  fmt.Sprintf("argument %d must be %s, got %s %s", i+1, o.Args[i], tok.Kind, tok.Text),
			}
		}
		vals[i] = v
	}
	return vals, nil
}

func convert(t ArgType, tok scanner.Token) (Value, bool) {
	switch t {
	case String:
		switch tok.Kind {
		case scanner.String, scanner.Word:
			return Value{Bytes: tok.Bytes}, true
		case scanner.Int:
			return Value{Bytes: []byte(tok.Text)}, true
		}
	case Int:
		if tok.Kind == scanner.Int {
			return Value{Int: tok.Int}, true
		}
	case Bound:
		switch tok.Kind {
		case scanner.Int:
			return Value{Int: tok.Int, Bound: mstring.At(tok.Int)}, true
		case scanner.Blank:
			return Value{Bound: mstring.Open}, true
		}
	}
	return Value{}, false
}

func arity(lo, hi int) string {
	if lo == hi {
		return fmt.Sprintf("%d argument(s)", lo)
	}
	return fmt.Sprintf("%d to %d arguments", lo, hi)
}
