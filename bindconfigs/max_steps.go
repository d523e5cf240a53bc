package bindconfigs

import (
	"github.com/reusee/starbind/cmds"
	"github.com/reusee/starbind/configs"
	"github.com/reusee/starbind/vars"
)

// MaxSteps bounds the execution steps of one script. Zero is unlimited.
type MaxSteps uint64

var _ configs.Configurable = MaxSteps(0)

func (m MaxSteps) ConfigPath() string {
	return "max_steps"
}

var maxStepsFlag = cmds.Var[uint64]("-max-steps")

func (Module) MaxSteps(
	loader configs.Loader,
) MaxSteps {
	return MaxSteps(vars.FirstNonZero(
		// flag
		*maxStepsFlag,
		// config
		configs.First[uint64](loader, MaxSteps(0).ConfigPath()),
	))
}
