package main

import (
	"github.com/reusee/dscope"
	"github.com/reusee/starbind/debugs"
	"github.com/reusee/starbind/hosts"
	"github.com/reusee/starbind/samples"
)

type Module struct {
	dscope.Module
	Samples samples.Module
	Hosts   hosts.Module
	Debugs  debugs.Module
}
