package mstring

import "math"

// The operator surface mirrors + , += , * and *= for bindings that hand
// over dynamically typed operands. Each MString carries these as methods,
// so no shared operator table exists.

// Adder is implemented by values supporting concatenation operators.
type Adder interface {
	Add(other any) (*MString, error)
	AddInPlace(other any) error
}

// Multiplier is implemented by values supporting repetition operators.
type Multiplier interface {
	Mul(n any) (*MString, error)
	MulInPlace(n any) error
}

var (
	_ Adder      = (*MString)(nil)
	_ Multiplier = (*MString)(nil)
)

// Add concatenates other, which may be a string, []byte or *MString.
func (b *MString) Add(other any) (*MString, error) {
	p, err := Operand("add", other)
	if err != nil {
		return nil, err
	}
	return b.Concat(p)
}

// AddInPlace appends other, which may be a string, []byte or *MString.
func (b *MString) AddInPlace(other any) error {
	p, err := Operand("add", other)
	if err != nil {
		return err
	}
	return b.ConcatInPlace(p)
}

// Mul repeats the content n times; n must be a Go integer.
func (b *MString) Mul(n any) (*MString, error) {
	k, err := Count("mul", n)
	if err != nil {
		return nil, err
	}
	return b.Repeat(k)
}

// MulInPlace repeats the content n times in place.
func (b *MString) MulInPlace(n any) error {
	k, err := Count("mul", n)
	if err != nil {
		return err
	}
	return b.RepeatInPlace(k)
}

// Operand converts a concatenation operand to bytes. Unsupported types are
// ErrType.
func Operand(op string, v any) ([]byte, error) {
	switch x := v.(type) {
	case string:
		return []byte(x), nil
	case []byte:
		return x, nil
	case *MString:
		if x == nil {
			break
		}
		return x.Bytes(), nil
	}
	return nil, newError(ErrType, op, "can only concatenate with an MString, string or []byte, got %T", v)
}

// Count converts a repetition count to int. Non-integers are ErrType and
// negative counts are ErrValue.
func Count(op string, v any) (int, error) {
	var n int64
	switch x := v.(type) {
	case int:
		n = int64(x)
	case int8:
		n = int64(x)
	case int16:
		n = int64(x)
	case int32:
		n = int64(x)
	case int64:
		n = x
	case uint:
		if uint64(x) > math.MaxInt64 {
			return 0, newError(ErrValue, op, "count %d too large", x)
		}
		n = int64(x)
	case uint8:
		n = int64(x)
	case uint16:
		n = int64(x)
	case uint32:
		n = int64(x)
	case uint64:
		if x > math.MaxInt64 {
			return 0, newError(ErrValue, op, "count %d too large", x)
		}
		n = int64(x)
	default:
		return 0, newError(ErrType, op, "count must be an integer, got %T", v)
	}
	if n < 0 {
		return 0, newError(ErrValue, op, "count must be non-negative, got %d", n)
	}
	if n > math.MaxInt {
		return 0, newError(ErrValue, op, "count %d too large", n)
	}
	return int(n), nil
}
