package exports

import (
	"sync"

	"github.com/reusee/starbind/classes"
	"github.com/reusee/starbind/errs"
	"github.com/reusee/starbind/funcs"
	"github.com/reusee/starbind/handles"
	"github.com/reusee/starbind/logs"
	"github.com/reusee/starbind/modes"
	"github.com/reusee/starbind/params"
	"github.com/reusee/starbind/values"
	"github.com/samber/lo"
	"github.com/ygrebnov/errorc"
	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"
)

// Registry is the registration table of one host module.
// Members are added before Seal; the sealed module is read-only.
type Registry struct {
	mu      sync.Mutex
	name    string
	funcs   *funcs.Table
	classes map[string]*classes.Class
	handles *handles.Table
	module  *starlarkstruct.Module
	closed  bool
	logger  logs.Logger
	mode    modes.Mode
}

func newRegistry(name string, logger logs.Logger, mode modes.Mode) *Registry {
	r := &Registry{
		name:    name,
		funcs:   funcs.New(logger, mode),
		classes: make(map[string]*classes.Class),
		handles: handles.NewTable(),
		logger:  logger.With("module", name),
		mode:    mode,
	}
	r.handles.Subscribe(handles.ObserverFunc(r.onHandleEvent))
	return r
}

func (r *Registry) onHandleEvent(e handles.Event) {
	switch e.Type {
	case handles.EventCreated:
		r.logger.Debug("instance created",
			"class", e.Class,
			"id", e.ID,
		)
	case handles.EventDestroyed:
		if e.Err != nil {
			r.logger.Warn("destructor failed",
				"class", e.Class,
				"id", e.ID,
				"error", e.Err,
			)
			return
		}
		r.logger.Debug("instance destroyed",
			"class", e.Class,
			"id", e.ID,
		)
	}
}

func (r *Registry) Name() string {
	return r.name
}

func (r *Registry) fail(err error, member string, reason string) error {
	return errorc.With(
		err,
		errorc.String(errs.FieldModule, r.name),
		errorc.String(errs.FieldFunction, member),
		errorc.String(errs.FieldReason, reason),
	)
}

func (r *Registry) checkOpen(member string) error {
	if r.module != nil {
		return r.fail(errs.ErrSealed, member, "module sealed")
	}
	if r.closed {
		return r.fail(errs.ErrSealed, member, "module closed")
	}
	return nil
}

// Func registers a native function.
func (r *Registry) Func(name string, spec params.Spec, result values.Type, native funcs.Native) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.checkOpen(name); err != nil {
		return err
	}
	if _, ok := r.classes[name]; ok {
		return r.fail(errs.ErrDuplicate, name, "name used by a class")
	}
	binding, err := r.funcs.Register(name, spec, result, native)
	if err != nil {
		return errorc.With(err, errorc.String(errs.FieldModule, r.name))
	}
	r.logger.Info("function registered",
		"signature", binding.Signature(),
	)
	return nil
}

// Class registers a native class.
func (r *Registry) Class(def classes.Def) (*classes.Class, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.checkOpen(def.Name); err != nil {
		return nil, err
	}
	if _, ok := r.classes[def.Name]; ok {
		return nil, r.fail(errs.ErrDuplicate, def.Name, "duplicated class")
	}
	if _, err := r.funcs.Lookup(def.Name); err == nil {
		return nil, r.fail(errs.ErrDuplicate, def.Name, "name used by a function")
	}
	class, err := classes.Define(def, r.handles, r.logger, r.mode)
	if err != nil {
		return nil, errorc.With(err, errorc.String(errs.FieldModule, r.name))
	}
	r.classes[def.Name] = class
	r.logger.Info("class registered",
		"class", def.Name,
		"constructor", def.Name+def.Ctor.String(),
		"members", class.Members(),
	)
	return class, nil
}

// Seal ends registration and returns the host module.
// Later calls return the same module.
func (r *Registry) Seal() (*starlarkstruct.Module, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.module != nil {
		return r.module, nil
	}
	if r.closed {
		return nil, r.fail(errs.ErrSealed, "", "module closed")
	}
	r.funcs.Seal()

	members := make(starlark.StringDict)
	for _, name := range r.funcs.Names() {
		binding, err := r.funcs.Lookup(name)
		if err != nil {
			return nil, err
		}
		members[name] = binding.Builtin()
	}
	for name, class := range r.classes {
		members[name] = class
	}
	r.module = &starlarkstruct.Module{
		Name:    r.name,
		Members: members,
	}
	r.logger.Info("module sealed",
		"members", lo.Keys(members),
	)
	return r.module, nil
}

func (r *Registry) Sealed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.module != nil
}

// Invoke calls a bound function from Go through the same path as the host.
func (r *Registry) Invoke(name string, args ...starlark.Value) (starlark.Value, error) {
	return r.funcs.Invoke(name, args, nil)
}

// Construct creates an instance of a bound class from Go.
func (r *Registry) Construct(class string, args ...starlark.Value) (*classes.Object, error) {
	r.mu.Lock()
	c, ok := r.classes[class]
	r.mu.Unlock()
	if !ok {
		return nil, errorc.With(
			errs.ErrNotFound,
			errorc.String(errs.FieldModule, r.name),
			errorc.String(errs.FieldClass, class),
		)
	}
	return c.Construct(args, nil)
}

// Live returns the number of live instances.
func (r *Registry) Live() int {
	return r.handles.Len()
}

// Instances calls fn for each live instance until it returns false.
func (r *Registry) Instances(fn func(*handles.Handle) bool) {
	r.handles.Each(fn)
}

// Close tears the module down, destroying every live instance exactly once.
// It returns the number of instances destroyed.
func (r *Registry) Close() int {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return 0
	}
	r.closed = true
	r.mu.Unlock()

	n := r.handles.Close()
	r.logger.Info("module closed",
		"destroyed", n,
	)
	return n
}
