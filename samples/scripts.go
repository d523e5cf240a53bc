package samples

import (
	"context"
	"embed"
	"fmt"

	"github.com/reusee/starbind/hosts"
	"go.starlark.net/starlark"
	"go.starlark.net/starlarktest"
)

//go:embed testdata/*.star
var Scripts embed.FS

const (
	BindingsScript = "testdata/bindings.star"
	PointScript    = "testdata/point.star"
)

// Check runs the binding scenario script, reporting assertion failures to reporter.
// The host must expose every sample module.
func Check(ctx context.Context, host *hosts.Host, reporter starlarktest.Reporter) error {
	src, err := Scripts.ReadFile(BindingsScript)
	if err != nil {
		return err
	}
	assert, err := starlarktest.LoadAssertModule()
	if err != nil {
		return err
	}
	if err := host.Provide("assert.star", assert); err != nil {
		return err
	}
	if _, err := host.Exec(ctx, BindingsScript, src, func(thread *starlark.Thread) {
		starlarktest.SetReporter(thread, reporter)
	}); err != nil {
		return fmt.Errorf("check: %w", err)
	}
	return nil
}
