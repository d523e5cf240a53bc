package configs

import (
	"testing"
)

func TestFirst(t *testing.T) {
	loader := NewLoader([]string{"testdata/test2.cue", "testdata/test.cue"}, testSchema)

	if n := First[int](loader, "max_steps"); n != 50 {
		t.Fatalf("got %v", n)
	}
	if modules := First[[]string](loader, "modules"); len(modules) != 2 {
		t.Fatalf("got %v", modules)
	}
	if s := First[string](loader, "missing"); s != "" {
		t.Fatalf("got %v", s)
	}
}

type testSteps int

func (testSteps) ConfigPath() string {
	return "max_steps"
}

func TestLookup(t *testing.T) {
	loader := NewLoader([]string{"testdata/test.cue"}, testSchema)
	var steps testSteps
	ok, err := Lookup(loader, &steps)
	if err != nil {
		t.Fatal(err)
	}
	if !ok || steps != 1000 {
		t.Fatalf("got %v %v", ok, steps)
	}
}
