package cmds

import (
	"bytes"
	"strings"
	"testing"
)

func TestUsage(t *testing.T) {
	executor := NewExecutor()
	executor.Define("run", Func(func(path string) {
	}).Desc("run a script"))
	executor.Define("module", Sub(map[string]*Command{
		"list": Func(func() {
		}).Desc("list modules"),
	}).Desc("module commands"))

	buf := new(bytes.Buffer)
	executor.WriteUsage(buf)
	out := buf.String()
	for _, want := range []string{
		"run\trun a script",
		"module\tmodule commands",
		"  list\tlist modules",
		"print this usage",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("%q not in %q", want, out)
		}
	}
}

func TestBadArgument(t *testing.T) {
	executor := NewExecutor()
	executor.Define("steps", Func(func(n uint8) {
	}))
	err := executor.Execute([]string{"steps", "300"})
	if err == nil || !strings.Contains(err.Error(), "steps: convert 300 to uint8") {
		t.Fatalf("got %v", err)
	}
}
