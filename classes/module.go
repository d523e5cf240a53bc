package classes

import (
	"github.com/reusee/dscope"
	"github.com/reusee/starbind/handles"
	"github.com/reusee/starbind/logs"
	"github.com/reusee/starbind/modes"
)

type Module struct {
	dscope.Module
	Logs logs.Module
}

type DefineClass func(table *handles.Table, def Def) (*Class, error)

func (Module) DefineClass(
	logger logs.Logger,
	mode modes.Mode,
) DefineClass {
	return func(table *handles.Table, def Def) (*Class, error) {
		return Define(def, table, logger, mode)
	}
}
