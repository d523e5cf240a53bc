package funcs

import (
	"fmt"
	"runtime/debug"

	"github.com/reusee/starbind/errs"
	"github.com/reusee/starbind/logs"
	"github.com/reusee/starbind/modes"
	"github.com/ygrebnov/errorc"
)

// Protect calls a native entry point, turning its errors and panics into errs.ErrNativeExecution.
func Protect[T any](logger logs.Logger, mode modes.Mode, name string, fn func() (T, error)) (ret T, err error) {
	defer func() {
		p := recover()
		if p == nil {
			return
		}
		var zero T
		ret = zero
		if mode.Verbose() {
			logger.Error("native panic",
				"name", name,
				"panic", p,
				"stack", string(debug.Stack()),
			)
		}
		err = fmt.Errorf("%w: panic: %v", nativeError(name), p)
	}()

	ret, err = fn()
	if err != nil {
		var zero T
		return zero, fmt.Errorf("%w: %w", nativeError(name), err)
	}
	return ret, nil
}

func nativeError(name string) error {
	return errorc.With(
		errs.ErrNativeExecution,
		errorc.String(errs.FieldFunction, name),
	)
}
