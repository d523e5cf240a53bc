package classes

import (
	"errors"
	"fmt"
	"runtime"
	"slices"
	"weak"

	"github.com/reusee/starbind/errs"
	"github.com/reusee/starbind/funcs"
	"github.com/reusee/starbind/handles"
	"github.com/reusee/starbind/logs"
	"github.com/reusee/starbind/modes"
	"github.com/reusee/starbind/params"
	"github.com/reusee/starbind/values"
	"github.com/ygrebnov/errorc"
	"go.starlark.net/starlark"
)

// Class is a registered native class. Calling it from the host constructs an instance.
type Class struct {
	name      string
	ctor      params.Spec
	newFn     Constructor
	destroy   Destructor
	accessors map[string]*Accessor
	methods   map[string]*Method
	// declaration order
	members []string
	handles *handles.Table
	logger  logs.Logger
	mode    modes.Mode
}

var _ starlark.Callable = new(Class)

func Define(def Def, table *handles.Table, logger logs.Logger, mode modes.Mode) (*Class, error) {
	fail := func(err error, property string, reason string) (*Class, error) {
		return nil, errorc.With(
			err,
			errorc.String(errs.FieldClass, def.Name),
			errorc.String(errs.FieldProperty, property),
			errorc.String(errs.FieldReason, reason),
		)
	}

	if def.Name == "" {
		return fail(errs.ErrInvalidSpec, "", "empty class name")
	}
	if def.New == nil {
		return fail(errs.ErrInvalidSpec, "", "nil constructor")
	}

	c := &Class{
		name:      def.Name,
		ctor:      def.Ctor,
		newFn:     def.New,
		destroy:   def.Destroy,
		accessors: make(map[string]*Accessor, len(def.Accessors)),
		methods:   make(map[string]*Method, len(def.Methods)),
		handles:   table,
		logger:    logger,
		mode:      mode,
	}

	for _, acc := range def.Accessors {
		if acc.Name == "" {
			return fail(errs.ErrInvalidSpec, "", "empty property name")
		}
		if c.has(acc.Name) {
			return fail(errs.ErrDuplicate, acc.Name, "duplicated member")
		}
		if !acc.Type.Valid() || acc.Type.Kind == values.KindVoid {
			return fail(errs.ErrInvalidSpec, acc.Name, "invalid property type "+acc.Type.String())
		}
		if acc.Get == nil {
			return fail(errs.ErrInvalidSpec, acc.Name, "nil getter")
		}
		c.accessors[acc.Name] = &acc
		c.members = append(c.members, acc.Name)
	}

	for _, method := range def.Methods {
		if method.Name == "" {
			return fail(errs.ErrInvalidSpec, "", "empty method name")
		}
		if c.has(method.Name) {
			return fail(errs.ErrDuplicate, method.Name, "duplicated member")
		}
		if !method.Result.Valid() {
			return fail(errs.ErrInvalidSpec, method.Name, "invalid result type "+method.Result.String())
		}
		if method.Call == nil {
			return fail(errs.ErrInvalidSpec, method.Name, "nil method")
		}
		c.methods[method.Name] = &method
		c.members = append(c.members, method.Name)
	}

	logger.Debug("class defined",
		"class", c.name,
		"constructor", c.name+c.ctor.String(),
		"members", c.members,
	)
	return c, nil
}

func (c *Class) has(name string) bool {
	_, ok := c.accessors[name]
	if ok {
		return true
	}
	_, ok = c.methods[name]
	return ok
}

func (c *Class) Name() string {
	return c.name
}

func (c *Class) String() string {
	return "<class " + c.name + ">"
}

func (c *Class) Type() string {
	return "class"
}

func (c *Class) Freeze() {}

func (c *Class) Truth() starlark.Bool {
	return starlark.True
}

func (c *Class) Hash() (uint32, error) {
	return starlark.String(c.name).Hash()
}

func (c *Class) CallInternal(thread *starlark.Thread, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	return c.Construct(args, kwargs)
}

// Members returns property and method names in declaration order.
func (c *Class) Members() []string {
	return slices.Clone(c.members)
}

// Construct creates a host instance backed by a new native instance.
// Nothing is created unless every step succeeds.
func (c *Class) Construct(args starlark.Tuple, kwargs []starlark.Tuple) (_ *Object, err error) {
	defer func() {
		if err != nil {
			err = errorc.With(err, errorc.String(errs.FieldClass, c.name))
			c.logger.Debug("construct failed",
				"class", c.name,
				"args", len(args),
				"error", err,
			)
		}
	}()

	nativeArgs, err := c.ctor.Unpack(args, kwargs)
	if err != nil {
		return nil, err
	}

	native, err := funcs.Protect(c.logger, c.mode, c.name, func() (any, error) {
		return c.newFn(nativeArgs)
	})
	if err != nil {
		return nil, err
	}
	if native == nil {
		return nil, errorc.With(
			errs.ErrNativeExecution,
			errorc.String(errs.FieldReason, "constructor returned nil"),
		)
	}

	h, err := c.handles.Insert(c.name, native, c.destroy)
	if err != nil {
		if c.destroy != nil {
			_, destroyErr := funcs.Protect(c.logger, c.mode, c.name, func() (struct{}, error) {
				c.destroy(native)
				return struct{}{}, nil
			})
			err = errors.Join(err, destroyErr)
		}
		return nil, err
	}

	obj := &Object{
		class:  c,
		handle: h,
	}
	ref := weak.Make(obj)
	if err := h.Adopt(func() starlark.Value {
		if o := ref.Value(); o != nil {
			return o
		}
		return nil
	}); err != nil {
		h.Release()
		return nil, err
	}
	runtime.AddCleanup(obj, reclaim, h)

	c.logger.Debug("constructed",
		"class", c.name,
		"instance", h.String(),
	)
	return obj, nil
}

func reclaim(h *handles.Handle) {
	h.Release()
}

// New constructs an instance from Go.
func (c *Class) New(args ...starlark.Value) (*Object, error) {
	return c.Construct(args, nil)
}

func (c *Class) check(obj *Object) error {
	if obj == nil || obj.class != c {
		got := "nil"
		if obj != nil {
			got = obj.class.name
		}
		return errorc.With(
			errs.ErrTypeMismatch,
			errorc.String(errs.FieldWant, c.name),
			errorc.String(errs.FieldGot, got),
		)
	}
	_, err := obj.handle.Native()
	return err
}

// GetProperty reads a property, or returns a method bound to obj.
func (c *Class) GetProperty(obj *Object, name string) (_ starlark.Value, err error) {
	defer func() {
		if err != nil {
			err = errorc.With(err,
				errorc.String(errs.FieldClass, c.name),
				errorc.String(errs.FieldProperty, name),
			)
		}
	}()

	if err := c.check(obj); err != nil {
		return nil, err
	}

	acc, ok := c.accessors[name]
	if !ok {
		if method, ok := c.methods[name]; ok {
			return c.bindMethod(obj, method), nil
		}
		return nil, errs.ErrNotFound
	}

	var v values.Value
	if err := obj.handle.Use(func(native any) error {
		var err error
		v, err = funcs.Protect(c.logger, c.mode, c.name+"."+name, func() (values.Value, error) {
			return acc.Get(native)
		})
		return err
	}); err != nil {
		return nil, err
	}
	if err := funcs.CheckResult(acc.Type, v); err != nil {
		return nil, err
	}
	return values.ToHost(v)
}

// SetProperty converts host and writes it through the property's setter.
func (c *Class) SetProperty(obj *Object, name string, host starlark.Value) (err error) {
	defer func() {
		if err != nil {
			err = errorc.With(err,
				errorc.String(errs.FieldClass, c.name),
				errorc.String(errs.FieldProperty, name),
			)
		}
	}()

	if err := c.check(obj); err != nil {
		return err
	}

	acc, ok := c.accessors[name]
	if !ok {
		if _, ok := c.methods[name]; ok {
			return errorc.With(errs.ErrReadOnly, errorc.String(errs.FieldReason, "method"))
		}
		return errs.ErrNotFound
	}
	if acc.Set == nil {
		return errs.ErrReadOnly
	}
	if obj.frozen {
		return errorc.With(errs.ErrReadOnly, errorc.String(errs.FieldReason, "frozen instance"))
	}

	v, err := values.ToNative(host, acc.Type)
	if err != nil {
		return err
	}
	return obj.handle.Use(func(native any) error {
		_, err := funcs.Protect(c.logger, c.mode, c.name+"."+name, func() (struct{}, error) {
			return struct{}{}, acc.Set(native, v)
		})
		return err
	})
}

func (c *Class) bindMethod(obj *Object, method *Method) *starlark.Builtin {
	name := c.name + "." + method.Name
	return starlark.NewBuiltin(method.Name, func(
		thread *starlark.Thread,
		fn *starlark.Builtin,
		args starlark.Tuple,
		kwargs []starlark.Tuple,
	) (_ starlark.Value, err error) {
		defer func() {
			if err != nil {
				err = errorc.With(err, errorc.String(errs.FieldFunction, name))
			}
		}()

		if err := c.check(obj); err != nil {
			return nil, err
		}
		var result values.Value
		if err := obj.handle.Use(func(native any) error {
			var err error
			result, err = funcs.Apply(c.logger, c.mode, name, method.Spec, args, kwargs, func(args []values.Value) (values.Value, error) {
				return method.Call(native, args)
			})
			return err
		}); err != nil {
			return nil, err
		}
		if err := funcs.CheckResult(method.Result, result); err != nil {
			return nil, err
		}
		if !result.IsValid() {
			return starlark.None, nil
		}
		return values.ToHost(result)
	}).BindReceiver(obj)
}

func (c *Class) describe(obj *Object) string {
	if _, err := obj.handle.Native(); err != nil {
		return fmt.Sprintf("<%s %s>", obj.handle.State(), obj.handle)
	}
	s := c.name + "("
	first := true
	for _, name := range c.members {
		if _, ok := c.accessors[name]; !ok {
			continue
		}
		v, err := c.GetProperty(obj, name)
		if err != nil {
			continue
		}
		if !first {
			s += ", "
		}
		first = false
		s += name + "=" + v.String()
	}
	return s + ")"
}
