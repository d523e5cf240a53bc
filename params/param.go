package params

import "github.com/reusee/starbind/values"

type Param struct {
	Name     string
	Type     values.Type
	Optional bool
	// Default is substituted when an optional argument is not supplied.
	Default values.Value
}

func Required(name string, t values.Type) Param {
	return Param{
		Name: name,
		Type: t,
	}
}

func Optional(name string, t values.Type, def values.Value) Param {
	return Param{
		Name:     name,
		Type:     t,
		Optional: true,
		Default:  def,
	}
}
