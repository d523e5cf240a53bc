package classes

import (
	"fmt"

	"github.com/reusee/starbind/errs"
)

func as[T any](native any) (*T, error) {
	ptr, ok := native.(*T)
	if !ok || ptr == nil {
		return nil, fmt.Errorf("%w: native instance is %T, want %T", errs.ErrTypeMismatch, native, ptr)
	}
	return ptr, nil
}
