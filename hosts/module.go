package hosts

import (
	"io"
	"os"

	"github.com/reusee/dscope"
	"github.com/reusee/starbind/bindconfigs"
	"github.com/reusee/starbind/errs"
	"github.com/reusee/starbind/exports"
	"github.com/reusee/starbind/logs"
	"github.com/ygrebnov/errorc"
	"go.starlark.net/starlark"
)

type Module struct {
	dscope.Module
	Logs    logs.Module
	Configs bindconfigs.Module
}

type Stdout io.Writer

func (Module) Stdout() Stdout {
	return os.Stdout
}

// NewHost seals the registries and exposes them as modules.
type NewHost func(registries ...*exports.Registry) (*Host, error)

func (Module) NewHost(
	logger logs.Logger,
	newSpan logs.NewSpan,
	maxSteps bindconfigs.MaxSteps,
	stdout Stdout,
) NewHost {
	return func(registries ...*exports.Registry) (*Host, error) {
		h := &Host{
			registries: registries,
			modules:    make(map[string]starlark.StringDict),
			globals:    make(starlark.StringDict),
			maxSteps:   uint64(maxSteps),
			stdout:     stdout,
			logger:     logger,
			newSpan:    newSpan,
		}
		for _, r := range registries {
			if _, ok := h.globals[r.Name()]; ok {
				return nil, errorc.With(
					errs.ErrDuplicate,
					errorc.String(errs.FieldModule, r.Name()),
				)
			}
			module, err := r.Seal()
			if err != nil {
				return nil, err
			}
			h.globals[r.Name()] = module
			h.modules[r.Name()] = module.Members
		}
		logger.Info("host ready",
			"modules", h.Modules(),
			"max steps", h.maxSteps,
		)
		return h, nil
	}
}
