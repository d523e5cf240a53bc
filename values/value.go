package values

import (
	"math"

	"github.com/reusee/starbind/handles"
)

// Value is a native value tagged with its type.
// The zero Value is untagged and converts to nothing.
type Value struct {
	typ    Type
	bits   uint64
	float  float64
	str    string
	handle *handles.Handle
}

var VoidValue = Value{typ: Void}

// MakeInt truncates i to the width of t, which must be a signed integer type.
func MakeInt(t Type, i int64) Value {
	return Value{
		typ:  t,
		bits: truncate(uint64(i), t),
	}
}

// MakeUint truncates u to the width of t, which must be an unsigned integer type.
func MakeUint(t Type, u uint64) Value {
	return Value{
		typ:  t,
		bits: truncate(u, t),
	}
}

// MakeFloat rounds f to the precision of t, which must be a float type.
func MakeFloat(t Type, f float64) Value {
	if t.Bits == 32 {
		f = float64(float32(f))
	}
	return Value{
		typ:   t,
		float: f,
	}
}

func MakeBool(b bool) Value {
	v := Value{typ: Bool}
	if b {
		v.bits = 1
	}
	return v
}

func MakeString(s string) Value {
	return Value{
		typ: String,
		str: s,
	}
}

func MakeObject(h *handles.Handle) Value {
	return Value{
		typ:    Object(h.Class()),
		handle: h,
	}
}

func I32(i int32) Value {
	return MakeInt(Int32, int64(i))
}

func I64(i int64) Value {
	return MakeInt(Int64, i)
}

func U32(u uint32) Value {
	return MakeUint(Uint32, uint64(u))
}

func F64(f float64) Value {
	return MakeFloat(Float64, f)
}

func (v Value) Type() Type {
	return v.typ
}

func (v Value) IsValid() bool {
	return v.typ.Kind != KindInvalid
}

func (v Value) Int() int64 {
	switch v.typ.Kind {
	case KindFloat:
		return int64(v.float)
	}
	return int64(v.bits)
}

func (v Value) Uint() uint64 {
	switch v.typ.Kind {
	case KindFloat:
		return uint64(v.float)
	}
	return v.bits
}

func (v Value) Float() float64 {
	switch v.typ.Kind {
	case KindInt:
		return float64(int64(v.bits))
	case KindUint:
		return float64(v.bits)
	}
	return v.float
}

func (v Value) Bool() bool {
	return v.bits != 0
}

func (v Value) Str() string {
	return v.str
}

func (v Value) Handle() *handles.Handle {
	return v.handle
}

func truncate(u uint64, t Type) uint64 {
	if t.Bits <= 0 || t.Bits >= 64 {
		return u
	}
	switch t.Kind {
	case KindInt:
		shift := 64 - t.Bits
		return uint64(int64(u<<shift) >> shift)
	case KindUint:
		return u & (1<<t.Bits - 1)
	}
	return u
}

const (
	twoPow63 = float64(1 << 63)
	twoPow64 = twoPow63 * 2
)

func floatBits(f float64) (uint64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	f = math.Trunc(f)
	if f < -twoPow63 || f >= twoPow64 {
		return 0, false
	}
	if f < 0 {
		return uint64(int64(f)), true
	}
	return uint64(f), true
}
