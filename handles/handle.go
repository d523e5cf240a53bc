package handles

import (
	"fmt"
	"sync"

	"github.com/reusee/starbind/errs"
	"github.com/ygrebnov/errorc"
	"go.starlark.net/starlark"
)

// ID is unique within a Table. ID 0 is never assigned.
type ID uint64

type Handle struct {
	mu      sync.RWMutex
	id      ID
	class   string
	state   State
	native  any
	destroy func(any)
	table   *Table
	owner   func() starlark.Value
}

func (h *Handle) ID() ID {
	return h.id
}

func (h *Handle) Class() string {
	return h.class
}

func (h *Handle) State() State {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.state
}

func (h *Handle) String() string {
	return fmt.Sprintf("%s#%d", h.class, h.id)
}

// Use runs fn with the native instance while holding the handle live.
func (h *Handle) Use(fn func(native any) error) error {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if err := h.check(); err != nil {
		return err
	}
	return fn(h.native)
}

// Native returns the native instance of a live handle.
func (h *Handle) Native() (any, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if err := h.check(); err != nil {
		return nil, err
	}
	return h.native, nil
}

func (h *Handle) check() error {
	switch h.state {
	case Live:
		return nil
	case Destroyed:
		return errorc.With(
			errs.ErrUseAfterFree,
			errorc.String(errs.FieldClass, h.class),
			errorc.String(errs.FieldReason, "instance "+h.String()+" destroyed"),
		)
	}
	return errorc.With(
		errs.ErrNotFound,
		errorc.String(errs.FieldClass, h.class),
		errorc.String(errs.FieldReason, "instance not initialized"),
	)
}

// Adopt binds the handle to its host wrapper. A handle has at most one owner.
func (h *Handle) Adopt(owner func() starlark.Value) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.check(); err != nil {
		return err
	}
	if h.owner != nil {
		return errorc.With(
			errs.ErrInvalidSpec,
			errorc.String(errs.FieldClass, h.class),
			errorc.String(errs.FieldReason, "instance "+h.String()+" already owned"),
		)
	}
	h.owner = owner
	return nil
}

// Owner returns the host wrapper of a live handle, if it is still reachable.
func (h *Handle) Owner() (starlark.Value, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if err := h.check(); err != nil {
		return nil, err
	}
	if h.owner == nil {
		return nil, errorc.With(
			errs.ErrTypeMismatch,
			errorc.String(errs.FieldClass, h.class),
			errorc.String(errs.FieldReason, "instance "+h.String()+" has no host wrapper"),
		)
	}
	v := h.owner()
	if v == nil {
		return nil, errorc.With(
			errs.ErrUseAfterFree,
			errorc.String(errs.FieldClass, h.class),
			errorc.String(errs.FieldReason, "host wrapper of "+h.String()+" reclaimed"),
		)
	}
	return v, nil
}

// Release destroys a live handle and runs its destructor.
// It reports whether this call performed the transition.
func (h *Handle) Release() bool {
	h.mu.Lock()
	if h.state != Live {
		h.mu.Unlock()
		return false
	}
	h.state = Destroyed
	native := h.native
	destroy := h.destroy
	h.native = nil
	h.destroy = nil
	h.owner = nil
	h.mu.Unlock()

	var err error
	if destroy != nil {
		err = runDestructor(destroy, native)
	}
	if h.table != nil {
		h.table.drop(h, err)
	}
	return true
}

func runDestructor(destroy func(any), native any) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%w: destructor panic: %v", errs.ErrNativeExecution, p)
		}
	}()
	destroy(native)
	return nil
}
