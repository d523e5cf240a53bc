package classes

import (
	"fmt"
	"slices"

	"github.com/reusee/starbind/handles"
	"github.com/reusee/starbind/values"
	"go.starlark.net/starlark"
)

// Object is the host-side wrapper of a native instance.
type Object struct {
	class  *Class
	handle *handles.Handle
	frozen bool
}

var (
	_ starlark.HasSetField = new(Object)
	_ values.Wrapper       = new(Object)
)

func (o *Object) Class() *Class {
	return o.class
}

func (o *Object) InstanceHandle() *handles.Handle {
	return o.handle
}

func (o *Object) String() string {
	return o.class.describe(o)
}

func (o *Object) Type() string {
	return o.class.name
}

func (o *Object) Freeze() {
	o.frozen = true
}

func (o *Object) Truth() starlark.Bool {
	return starlark.True
}

func (o *Object) Hash() (uint32, error) {
	return 0, fmt.Errorf("unhashable type: %s", o.class.name)
}

func (o *Object) Attr(name string) (starlark.Value, error) {
	return o.class.GetProperty(o, name)
}

func (o *Object) AttrNames() []string {
	names := o.class.Members()
	slices.Sort(names)
	return names
}

func (o *Object) SetField(name string, v starlark.Value) error {
	return o.class.SetProperty(o, name, v)
}

// Release destroys the native instance now instead of waiting for reclamation.
func (o *Object) Release() bool {
	return o.handle.Release()
}
