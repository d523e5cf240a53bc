package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/reusee/dscope"
	"github.com/reusee/starbind/bindconfigs"
	"github.com/reusee/starbind/cmds"
	"github.com/reusee/starbind/debugs"
	"github.com/reusee/starbind/hosts"
	"github.com/reusee/starbind/logs"
	"github.com/reusee/starbind/modes"
	"github.com/reusee/starbind/samples"
)

type action func(ctx context.Context, scope dscope.Scope)

var todo action

func init() {
	cmds.Define("run", cmds.Func(func(path string) {
		todo = func(ctx context.Context, scope dscope.Scope) {
			src, err := os.ReadFile(path)
			ce(err)
			ce(withHost(scope, func(host *hosts.Host) error {
				_, err := host.Exec(ctx, path, src)
				return err
			}))
		}
	}).Desc("run a script against the bound modules"))

	cmds.Define("example", cmds.Func(func() {
		todo = func(ctx context.Context, scope dscope.Scope) {
			src, err := samples.Scripts.ReadFile(samples.PointScript)
			ce(err)
			ce(withHost(scope, func(host *hosts.Host) error {
				_, err := host.Exec(ctx, samples.PointScript, src)
				return err
			}))
		}
	}).Desc("run the point example"))

	cmds.Define("repl", cmds.Func(func() {
		todo = func(ctx context.Context, scope dscope.Scope) {
			scope.Call(func(
				repl debugs.REPL,
			) {
				ce(withHost(scope, func(host *hosts.Host) error {
					repl(ctx, host)
					return nil
				}))
			})
		}
	}).Desc("interactive session over the bound modules"))

	cmds.Define("check", cmds.Func(func() {
		todo = check
	}).Desc("run the binding scenarios"))

	cmds.Define("modules", cmds.Func(func() {
		todo = func(ctx context.Context, scope dscope.Scope) {
			for _, name := range samples.Names() {
				fmt.Println(name)
			}
		}
	}).Desc("list the bindable modules"))

	cmds.Define("usage", cmds.Func(func() {
		todo = nil
	}).Desc("print usage"))
}

func main() {
	cmds.Execute(os.Args[1:])
	if todo == nil {
		cmds.GlobalExecutor.PrintUsage()
		return
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	scope := dscope.New(
		new(Module),
		modes.ForProduction(),
	)
	todo(ctx, scope)
}

// withHost runs fn against a host over the configured modules.
// The host is closed before withHost returns, also when fn fails.
func withHost(scope dscope.Scope, fn func(host *hosts.Host) error) (err error) {
	scope.Call(func(
		modules bindconfigs.Modules,
		newRegistries samples.NewRegistries,
		newHost hosts.NewHost,
		logger logs.Logger,
	) {
		registries, e := newRegistries(modules...)
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
		defer func() {
			logger.Info("host closed",
				"destroyed", host.Close(),
			)
		}()
		err = fn(host)
	})
	return
}
