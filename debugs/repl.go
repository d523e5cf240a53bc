package debugs

import (
	"context"
	"maps"

	"github.com/reusee/starbind/errs"
	"github.com/reusee/starbind/hosts"
	"github.com/reusee/starbind/logs"
	"github.com/reusee/starbind/values"
	"github.com/reusee/starlarkutil"
	"github.com/ygrebnov/errorc"
	"go.starlark.net/repl"
	"go.starlark.net/starlark"
)

// Helpers returns the debugging builtins available in the REPL.
func Helpers(host *hosts.Host) starlark.StringDict {
	return starlark.StringDict{
		"inspect": starlark.NewBuiltin("inspect", inspect),
		"live":    starlarkutil.MakeFunc("live", host.Live),
		"modules": starlarkutil.MakeFunc("modules", host.Modules),
	}
}

// inspect(instance) renders the native instance behind a bound object.
func inspect(
	thread *starlark.Thread,
	fn *starlark.Builtin,
	args starlark.Tuple,
	kwargs []starlark.Tuple,
) (starlark.Value, error) {
	var v starlark.Value
	if err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 1, &v); err != nil {
		return nil, err
	}
	wrapper, ok := v.(values.Wrapper)
	if !ok {
		return nil, errorc.With(
			errs.ErrTypeMismatch,
			errorc.String(errs.FieldWant, "bound instance"),
			errorc.String(errs.FieldGot, v.Type()),
		)
	}
	native, err := wrapper.InstanceHandle().Native()
	if err != nil {
		return nil, err
	}
	return reflectValue(native), nil
}

// REPL runs an interactive session over the host's bound modules.
type REPL func(ctx context.Context, host *hosts.Host)

func (Module) REPL(
	logger logs.Logger,
) REPL {
	return func(ctx context.Context, host *hosts.Host) {
		logger.InfoContext(ctx, "repl",
			"modules", host.Modules(),
		)
		defer func() {
			logger.InfoContext(ctx, "repl end",
				"live", host.Live(),
			)
		}()

		globals := host.Predeclared()
		maps.Copy(globals, Helpers(host))

		thread, stop := host.Thread(ctx, "repl")
		defer stop()
		repl.REPLOptions(hosts.FileOptions, thread, globals)
	}
}
