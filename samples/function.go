package samples

import (
	"github.com/reusee/starbind/exports"
	"github.com/reusee/starbind/params"
	"github.com/reusee/starbind/values"
)

func add(args []values.Value) (values.Value, error) {
	return values.I32(int32(args[0].Int() + args[1].Int())), nil
}

// add(int32, int32) int32
func defineFunction(r *exports.Registry) error {
	return r.Func("add", params.Must(
		params.Required("arg0", values.Int32),
		params.Required("arg1", values.Int32),
	), values.Int32, add)
}

// add(int32 = 1, int32 = 2) int32
func defineDefaultArgument(r *exports.Registry) error {
	return r.Func("add", params.Must(
		params.Optional("arg0", values.Int32, values.I32(1)),
		params.Optional("arg1", values.Int32, values.I32(2)),
	), values.Int32, add)
}
