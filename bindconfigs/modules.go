package bindconfigs

import (
	"github.com/reusee/starbind/cmds"
	"github.com/reusee/starbind/configs"
	"github.com/reusee/starbind/logs"
)

// Modules names the bound modules to expose. Empty means all.
type Modules []string

var _ configs.Configurable = Modules(nil)

func (m Modules) ConfigPath() string {
	return "modules"
}

var moduleFlags = cmds.Collect[string]("-module")

func (Module) Modules(
	loader configs.Loader,
	logger logs.Logger,
) Modules {
	// flag
	if len(*moduleFlags) > 0 {
		return Modules(*moduleFlags)
	}

	// config
	var modules Modules
	if _, err := configs.Lookup(loader, &modules); err != nil {
		logger.Warn("bad modules config",
			"error", err,
		)
		return nil
	}
	return modules
}
