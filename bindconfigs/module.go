package bindconfigs

import (
	"github.com/reusee/dscope"
	"github.com/reusee/starbind/logs"
)

type Module struct {
	dscope.Module
	Logs logs.Module
}
