package exports

import (
	"github.com/reusee/dscope"
	"github.com/reusee/starbind/logs"
	"github.com/reusee/starbind/modes"
)

type Module struct {
	dscope.Module
	Logs logs.Module
}

type New func(name string) *Registry

func (Module) New(
	logger logs.Logger,
	mode modes.Mode,
) New {
	return func(name string) *Registry {
		return newRegistry(name, logger, mode)
	}
}
