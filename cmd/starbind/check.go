package main

import (
	"context"
	"fmt"
	"os"

	"github.com/reusee/dscope"
	"github.com/reusee/starbind/hosts"
	"github.com/reusee/starbind/logs"
	"github.com/reusee/starbind/samples"
)

type reporter struct {
	logger logs.Logger
	failed int
}

func (r *reporter) Error(args ...any) {
	r.failed++
	r.logger.Error("assertion failed",
		"message", fmt.Sprint(args...),
	)
}

// runCheck runs the binding scenarios and returns the number of failed assertions.
func runCheck(ctx context.Context, scope dscope.Scope) (failed int, err error) {
	scope.Call(func(
		newRegistries samples.NewRegistries,
		newHost hosts.NewHost,
		logger logs.Logger,
	) {
		// the scenarios need every sample module
		registries, e := newRegistries()
		if e != nil {
			err = e
			return
		}
		host, e := newHost(registries...)
		if e != nil {
			for _, r := range registries {
				r.Close()
			}
			err = e
			return
		}
		defer host.Close()

		r := &reporter{
			logger: logger,
		}
		err = samples.Check(ctx, host, r)
		failed = r.failed
	})
	return
}

func check(ctx context.Context, scope dscope.Scope) {
	failed, err := runCheck(ctx, scope)
	ce(err)
	if failed > 0 {
		fmt.Fprintf(os.Stderr, "check failed: %d assertions\n", failed)
		os.Exit(1)
	}
	fmt.Println("check ok")
}
