package funcs

import (
	"github.com/reusee/starbind/params"
	"github.com/reusee/starbind/values"
	"go.starlark.net/starlark"
)

// Native is the native entry point of a bound function.
// args always has exactly one value per declared parameter, defaults applied.
type Native func(args []values.Value) (values.Value, error)

// Binding is an immutable registered function.
type Binding struct {
	name   string
	spec   params.Spec
	result values.Type
	native Native
	table  *Table
}

func (b *Binding) Name() string {
	return b.name
}

func (b *Binding) Spec() params.Spec {
	return b.spec
}

func (b *Binding) Result() values.Type {
	return b.result
}

func (b *Binding) Signature() string {
	return b.name + b.spec.String() + " " + b.result.String()
}

// Call runs the binding on host arguments and returns the host result.
func (b *Binding) Call(args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	return b.table.call(b, args, kwargs)
}

// Builtin exposes the binding as a host function.
func (b *Binding) Builtin() *starlark.Builtin {
	return starlark.NewBuiltin(b.name, func(
		thread *starlark.Thread,
		fn *starlark.Builtin,
		args starlark.Tuple,
		kwargs []starlark.Tuple,
	) (starlark.Value, error) {
		return b.Call(args, kwargs)
	})
}
