package classes

import (
	"github.com/reusee/starbind/params"
	"github.com/reusee/starbind/values"
)

// Constructor creates the native instance from converted constructor arguments.
type Constructor func(args []values.Value) (any, error)

// Destructor releases a native instance. It runs exactly once per instance,
// possibly on a runtime cleanup goroutine.
type Destructor func(native any)

type Accessor struct {
	Name string
	Type values.Type
	Get  func(native any) (values.Value, error)
	// Set is nil for read-only properties.
	Set func(native any, v values.Value) error
}

type Method struct {
	Name   string
	Spec   params.Spec
	Result values.Type
	Call   func(native any, args []values.Value) (values.Value, error)
}

type Def struct {
	Name      string
	Ctor      params.Spec
	New       Constructor
	Destroy   Destructor
	Accessors []Accessor
	Methods   []Method
}

// Field builds an accessor over a field of a native struct type.
// A nil set makes the property read-only.
func Field[T any](
	name string,
	t values.Type,
	get func(*T) values.Value,
	set func(*T, values.Value),
) Accessor {
	acc := Accessor{
		Name: name,
		Type: t,
		Get: func(native any) (values.Value, error) {
			ptr, err := as[T](native)
			if err != nil {
				return values.Value{}, err
			}
			return get(ptr), nil
		},
	}
	if set != nil {
		acc.Set = func(native any, v values.Value) error {
			ptr, err := as[T](native)
			if err != nil {
				return err
			}
			set(ptr, v)
			return nil
		}
	}
	return acc
}

// Func builds a method over a native struct type.
func Func[T any](
	name string,
	spec params.Spec,
	result values.Type,
	fn func(*T, []values.Value) (values.Value, error),
) Method {
	return Method{
		Name:   name,
		Spec:   spec,
		Result: result,
		Call: func(native any, args []values.Value) (values.Value, error) {
			ptr, err := as[T](native)
			if err != nil {
				return values.Value{}, err
			}
			return fn(ptr, args)
		},
	}
}
