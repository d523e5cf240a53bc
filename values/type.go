package values

import "fmt"

type Kind uint8

const (
	KindInvalid Kind = iota
	KindVoid
	KindInt
	KindUint
	KindFloat
	KindBool
	KindString
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindVoid:
		return "void"
	case KindInt:
		return "int"
	case KindUint:
		return "uint"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindObject:
		return "object"
	}
	return "invalid"
}

// Type is the declared native type of a parameter, result or property.
type Type struct {
	Kind Kind
	// Bits is the declared width of numeric kinds.
	Bits int
	// Class is the class tag of object kinds. Empty accepts any instance.
	Class string
}

var (
	Void = Type{Kind: KindVoid}

	Int8  = Type{Kind: KindInt, Bits: 8}
	Int16 = Type{Kind: KindInt, Bits: 16}
	Int32 = Type{Kind: KindInt, Bits: 32}
	Int64 = Type{Kind: KindInt, Bits: 64}

	Uint8  = Type{Kind: KindUint, Bits: 8}
	Uint16 = Type{Kind: KindUint, Bits: 16}
	Uint32 = Type{Kind: KindUint, Bits: 32}
	Uint64 = Type{Kind: KindUint, Bits: 64}

	Float32 = Type{Kind: KindFloat, Bits: 32}
	Float64 = Type{Kind: KindFloat, Bits: 64}

	Bool   = Type{Kind: KindBool}
	String = Type{Kind: KindString}

	AnyObject = Type{Kind: KindObject}
)

func Object(class string) Type {
	return Type{
		Kind:  KindObject,
		Class: class,
	}
}

func (t Type) String() string {
	switch t.Kind {
	case KindInt, KindUint, KindFloat:
		return fmt.Sprintf("%s%d", t.Kind, t.Bits)
	case KindObject:
		if t.Class == "" {
			return "object"
		}
		return t.Class
	}
	return t.Kind.String()
}

// Valid reports whether t is a well-formed type a value can be converted to.
func (t Type) Valid() bool {
	switch t.Kind {
	case KindInt, KindUint:
		switch t.Bits {
		case 8, 16, 32, 64:
			return true
		}
		return false
	case KindFloat:
		return t.Bits == 32 || t.Bits == 64
	case KindBool, KindString, KindObject, KindVoid:
		return t.Bits == 0
	}
	return false
}

// Accepts reports whether v is a value of type t.
func (t Type) Accepts(v Value) bool {
	if v.typ.Kind != t.Kind {
		return false
	}
	switch t.Kind {
	case KindInt, KindUint, KindFloat:
		return v.typ.Bits == t.Bits
	case KindObject:
		return t.Class == "" || v.typ.Class == t.Class
	}
	return true
}
