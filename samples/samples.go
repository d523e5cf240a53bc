// Package samples binds the example native modules exercised by the scripts in testdata.
package samples

import (
	"maps"
	"slices"

	"github.com/reusee/starbind/exports"
)

type Define func(r *exports.Registry) error

var Definitions = map[string]Define{
	"function":          defineFunction,
	"default_argument":  defineDefaultArgument,
	"constructor":       defineConstructor,
	"instance_accessor": defineInstanceAccessor,
	"point":             definePoint,
}

func Names() []string {
	return slices.Sorted(maps.Keys(Definitions))
}
