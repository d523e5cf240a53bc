package funcs

import (
	"github.com/reusee/dscope"
	"github.com/reusee/starbind/logs"
	"github.com/reusee/starbind/modes"
)

type Module struct {
	dscope.Module
	Logs logs.Module
}

type NewTable func() *Table

func (Module) NewTable(
	logger logs.Logger,
	mode modes.Mode,
) NewTable {
	return func() *Table {
		return New(logger, mode)
	}
}
