package funcs

import (
	"slices"

	"github.com/reusee/starbind/errs"
	"github.com/reusee/starbind/logs"
	"github.com/reusee/starbind/modes"
	"github.com/reusee/starbind/params"
	"github.com/reusee/starbind/values"
	"github.com/samber/lo"
	"github.com/ygrebnov/errorc"
	"go.starlark.net/starlark"
)

// Table maps names to function bindings.
// It is written during registration and read-only after Seal.
type Table struct {
	bindings map[string]*Binding
	sealed   bool
	logger   logs.Logger
	mode     modes.Mode
}

func New(logger logs.Logger, mode modes.Mode) *Table {
	return &Table{
		bindings: make(map[string]*Binding),
		logger:   logger,
		mode:     mode,
	}
}

func (t *Table) Register(name string, spec params.Spec, result values.Type, native Native) (*Binding, error) {
	fail := func(err error, reason string) (*Binding, error) {
		return nil, errorc.With(
			err,
			errorc.String(errs.FieldFunction, name),
			errorc.String(errs.FieldReason, reason),
		)
	}
	if t.sealed {
		return fail(errs.ErrSealed, "register after seal")
	}
	if name == "" {
		return fail(errs.ErrInvalidSpec, "empty function name")
	}
	if native == nil {
		return fail(errs.ErrInvalidSpec, "nil native function")
	}
	if !result.Valid() {
		return fail(errs.ErrInvalidSpec, "invalid result type "+result.String())
	}
	if _, ok := t.bindings[name]; ok {
		return fail(errs.ErrDuplicate, "function already registered")
	}

	b := &Binding{
		name:   name,
		spec:   spec,
		result: result,
		native: native,
		table:  t,
	}
	t.bindings[name] = b
	t.logger.Debug("function registered",
		"function", name,
		"signature", b.Signature(),
	)
	return b, nil
}

func (t *Table) Seal() {
	t.sealed = true
}

func (t *Table) Sealed() bool {
	return t.sealed
}

func (t *Table) Lookup(name string) (*Binding, error) {
	b, ok := t.bindings[name]
	if !ok {
		return nil, errorc.With(
			errs.ErrNotFound,
			errorc.String(errs.FieldFunction, name),
		)
	}
	return b, nil
}

// Names returns the registered names in sorted order.
func (t *Table) Names() []string {
	names := lo.Keys(t.bindings)
	slices.Sort(names)
	return names
}

// Invoke calls the binding registered under name.
func (t *Table) Invoke(name string, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	b, err := t.Lookup(name)
	if err != nil {
		return nil, err
	}
	return t.call(b, args, kwargs)
}

func (t *Table) call(b *Binding, args starlark.Tuple, kwargs []starlark.Tuple) (ret starlark.Value, err error) {
	defer func() {
		if err != nil {
			err = errorc.With(err, errorc.String(errs.FieldFunction, b.name))
			t.logger.Debug("function call failed",
				"function", b.name,
				"args", len(args),
				"error", err,
			)
		}
	}()

	result, err := Apply(t.logger, t.mode, b.name, b.spec, args, kwargs, b.native)
	if err != nil {
		return nil, err
	}
	if err := CheckResult(b.result, result); err != nil {
		return nil, err
	}
	return values.ToHost(normalizeResult(b.result, result))
}

// Apply runs the matching, conversion and native call steps shared by every bound entry point.
// The native function is called at most once, and only when every argument converted.
func Apply(
	logger logs.Logger,
	mode modes.Mode,
	name string,
	spec params.Spec,
	args starlark.Tuple,
	kwargs []starlark.Tuple,
	native Native,
) (values.Value, error) {
	nativeArgs, err := spec.Unpack(args, kwargs)
	if err != nil {
		return values.Value{}, err
	}
	logger.Debug("native call",
		"name", name,
		"args", len(args),
		"defaulted", spec.Len()-len(args),
	)
	return Protect(logger, mode, name, func() (values.Value, error) {
		return native(nativeArgs)
	})
}

// CheckResult verifies a native result against the declared result type.
// A void function may return the zero Value.
func CheckResult(want values.Type, got values.Value) error {
	if want.Kind == values.KindVoid && !got.IsValid() {
		return nil
	}
	if !want.Accepts(got) {
		return errorc.With(
			errs.ErrTypeMismatch,
			errorc.String(errs.FieldWant, want.String()),
			errorc.String(errs.FieldGot, got.Type().String()),
			errorc.String(errs.FieldReason, "native result"),
		)
	}
	return nil
}

func normalizeResult(want values.Type, got values.Value) values.Value {
	if want.Kind == values.KindVoid && !got.IsValid() {
		return values.VoidValue
	}
	return got
}
