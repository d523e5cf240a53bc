package samples

import (
	"github.com/reusee/dscope"
	"github.com/reusee/starbind/errs"
	"github.com/reusee/starbind/exports"
	"github.com/ygrebnov/errorc"
)

type Module struct {
	dscope.Module
	Exports exports.Module
}

// NewRegistries defines the named sample modules. No names means all of them.
type NewRegistries func(names ...string) ([]*exports.Registry, error)

func (Module) NewRegistries(
	newRegistry exports.New,
) NewRegistries {
	return func(names ...string) (ret []*exports.Registry, err error) {
		defer func() {
			if err != nil {
				for _, r := range ret {
					r.Close()
				}
				ret = nil
			}
		}()

		if len(names) == 0 {
			names = Names()
		}
		for _, name := range names {
			define, ok := Definitions[name]
			if !ok {
				return ret, errorc.With(
					errs.ErrNotFound,
					errorc.String(errs.FieldModule, name),
				)
			}
			r := newRegistry(name)
			ret = append(ret, r)
			if err := define(r); err != nil {
				return ret, err
			}
		}
		return ret, nil
	}
}
