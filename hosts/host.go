package hosts

import (
	"context"
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/reusee/starbind/errs"
	"github.com/reusee/starbind/exports"
	"github.com/reusee/starbind/logs"
	"github.com/ygrebnov/errorc"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

var FileOptions = &syntax.FileOptions{
	Set:             true,
	While:           true,
	TopLevelControl: true,
	GlobalReassign:  true,
}

// Host runs Starlark scripts against a set of bound modules.
type Host struct {
	registries []*exports.Registry
	// loadable by name
	modules  map[string]starlark.StringDict
	globals  starlark.StringDict
	maxSteps uint64
	stdout   io.Writer
	logger   logs.Logger
	newSpan  logs.NewSpan
}

// Provide makes members loadable by name without predeclaring them.
func (h *Host) Provide(name string, members starlark.StringDict) error {
	if _, ok := h.modules[name]; ok {
		return errorc.With(
			errs.ErrDuplicate,
			errorc.String(errs.FieldModule, name),
		)
	}
	h.modules[name] = members
	return nil
}

// Predeclared returns the names visible to every script: one module value per bound module.
func (h *Host) Predeclared() starlark.StringDict {
	return maps.Clone(h.globals)
}

func (h *Host) Modules() []string {
	return slices.Sorted(maps.Keys(h.globals))
}

func (h *Host) load(_ *starlark.Thread, module string) (starlark.StringDict, error) {
	members, ok := h.modules[module]
	if !ok {
		return nil, errorc.With(
			errs.ErrNotFound,
			errorc.String(errs.FieldModule, module),
		)
	}
	return members, nil
}

// Thread returns a thread that loads bound modules, prints to the host output,
// and is cancelled when ctx is done. Call stop when the thread is no longer used.
func (h *Host) Thread(ctx context.Context, name string) (thread *starlark.Thread, stop func()) {
	thread = &starlark.Thread{
		Name: name,
		Load: h.load,
		Print: func(_ *starlark.Thread, msg string) {
			fmt.Fprintln(h.stdout, msg)
		},
	}
	if h.maxSteps > 0 {
		thread.SetMaxExecutionSteps(h.maxSteps)
	}
	thread.SetLocal("context", ctx)
	cancel := context.AfterFunc(ctx, func() {
		thread.Cancel(context.Cause(ctx).Error())
	})
	stop = func() {
		cancel()
	}
	return
}

// Exec runs one script. src is as for starlark.ExecFile.
// setups run on the thread before execution.
func (h *Host) Exec(ctx context.Context, filename string, src any, setups ...func(*starlark.Thread)) (_ starlark.StringDict, err error) {
	ctx, span := h.newSpan(ctx, "")
	defer func() {
		if err != nil {
			err = logs.WrapSpan(ctx, err)
			h.logger.DebugContext(ctx, "exec failed",
				"file", filename,
				"error", err,
			)
		}
	}()

	thread, stop := h.Thread(ctx, filename)
	defer stop()
	for _, setup := range setups {
		setup(thread)
	}

	h.logger.DebugContext(ctx, "exec",
		"file", filename,
		"span", span,
		"max steps", h.maxSteps,
	)
	globals, err := starlark.ExecFileOptions(FileOptions, thread, filename, src, h.globals)
	if err != nil {
		return nil, err
	}
	h.logger.DebugContext(ctx, "exec done",
		"file", filename,
		"steps", thread.ExecutionSteps(),
	)
	return globals, nil
}

// Live returns the number of live instances across the bound modules.
func (h *Host) Live() int {
	n := 0
	for _, r := range h.registries {
		n += r.Live()
	}
	return n
}

// Close tears down every bound module.
func (h *Host) Close() int {
	n := 0
	for _, r := range h.registries {
		n += r.Close()
	}
	return n
}
