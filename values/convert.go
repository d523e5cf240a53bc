package values

import (
	"math/big"

	"github.com/reusee/starbind/errs"
	"github.com/reusee/starbind/handles"
	"github.com/ygrebnov/errorc"
	"go.starlark.net/starlark"
)

// Wrapper is a host value backed by an instance handle.
type Wrapper interface {
	starlark.Value
	InstanceHandle() *handles.Handle
}

// ToNative converts a host value to a native value of type t.
// Numbers convert to any numeric type, truncated or widened to its width.
// There is no coercion between strings, booleans and numbers.
func ToNative(host starlark.Value, t Type) (Value, error) {
	switch t.Kind {

	case KindInt, KindUint:
		if !t.Valid() {
			break
		}
		bits, ok := integerBits(host)
		if !ok {
			return Value{}, mismatch(host, t)
		}
		return Value{
			typ:  t,
			bits: truncate(bits, t),
		}, nil

	case KindFloat:
		if !t.Valid() {
			break
		}
		var f float64
		switch host := host.(type) {
		case starlark.Float:
			f = float64(host)
		case starlark.Int:
			f = float64(host.Float())
		default:
			return Value{}, mismatch(host, t)
		}
		return MakeFloat(t, f), nil

	case KindBool:
		b, ok := host.(starlark.Bool)
		if !ok {
			return Value{}, mismatch(host, t)
		}
		return MakeBool(bool(b)), nil

	case KindString:
		s, ok := host.(starlark.String)
		if !ok {
			return Value{}, mismatch(host, t)
		}
		return MakeString(string(s)), nil

	case KindObject:
		wrapper, ok := host.(Wrapper)
		if !ok {
			return Value{}, mismatch(host, t)
		}
		h := wrapper.InstanceHandle()
		if h == nil {
			return Value{}, mismatch(host, t)
		}
		if t.Class != "" && h.Class() != t.Class {
			return Value{}, mismatch(host, t)
		}
		if _, err := h.Native(); err != nil {
			return Value{}, err
		}
		return MakeObject(h), nil

	}

	return Value{}, errorc.With(
		errs.ErrTypeMismatch,
		errorc.String(errs.FieldWant, t.String()),
		errorc.String(errs.FieldGot, typeName(host)),
		errorc.String(errs.FieldReason, "unknown native type"),
	)
}

// ToHost converts a native value to its host representation.
func ToHost(v Value) (starlark.Value, error) {
	switch v.typ.Kind {
	case KindVoid:
		return starlark.None, nil
	case KindInt:
		return starlark.MakeInt64(int64(v.bits)), nil
	case KindUint:
		return starlark.MakeUint64(v.bits), nil
	case KindFloat:
		return starlark.Float(v.float), nil
	case KindBool:
		return starlark.Bool(v.bits != 0), nil
	case KindString:
		return starlark.String(v.str), nil
	case KindObject:
		if v.handle == nil {
			break
		}
		return v.handle.Owner()
	}
	return nil, errorc.With(
		errs.ErrTypeMismatch,
		errorc.String(errs.FieldGot, v.typ.String()),
		errorc.String(errs.FieldReason, "untagged native value"),
	)
}

var uint64Mask = new(big.Int).SetUint64(^uint64(0))

func integerBits(host starlark.Value) (uint64, bool) {
	switch host := host.(type) {
	case starlark.Int:
		if i, ok := host.Int64(); ok {
			return uint64(i), true
		}
		if u, ok := host.Uint64(); ok {
			return u, true
		}
		// low 64 bits, two's complement
		low := new(big.Int).And(host.BigInt(), uint64Mask)
		return low.Uint64(), true
	case starlark.Float:
		return floatBits(float64(host))
	}
	return 0, false
}

func mismatch(host starlark.Value, t Type) error {
	return errorc.With(
		errs.ErrTypeMismatch,
		errorc.String(errs.FieldWant, t.String()),
		errorc.String(errs.FieldGot, typeName(host)),
	)
}

func typeName(v starlark.Value) string {
	if v == nil {
		return "nil"
	}
	return v.Type()
}
