package configs

import (
	"errors"
	"fmt"
	"testing"
)

var testSchema = `
max_steps?: int & >=0
modules?: [...string]
`

func TestLoaderAssignFirst(t *testing.T) {
	loader := NewLoader([]string{"testdata/test.cue"}, testSchema)

	var steps int
	if err := loader.AssignFirst("max_steps", &steps); err != nil {
		t.Fatal(err)
	}
	if steps != 1000 {
		t.Fatalf("got %d", steps)
	}

	var modules []string
	if err := loader.AssignFirst("modules", &modules); err != nil {
		t.Fatal(err)
	}
	if str := fmt.Sprintf("%v", modules); str != "[function point]" {
		t.Fatalf("got %s", str)
	}

	err := loader.AssignFirst("not", &modules)
	if !errors.Is(err, ErrValueNotFound) {
		t.Fatalf("got %v", err)
	}
}

func TestLoaderIterCueValues(t *testing.T) {
	loader := NewLoader([]string{
		"testdata/test.cue",
		"testdata/test2.cue",
	}, testSchema)

	var steps []int
	for value, err := range loader.IterCueValues("max_steps") {
		if err != nil {
			t.Fatal(err)
		}
		var n int
		if err := value.Decode(&n); err != nil {
			t.Fatal(err)
		}
		steps = append(steps, n)
	}
	if str := fmt.Sprintf("%v", steps); str != "[1000 50]" {
		t.Fatalf("got %s", str)
	}

	steps = steps[:0]
	for n := range All[int](loader, "max_steps") {
		steps = append(steps, n)
	}
	if str := fmt.Sprintf("%v", steps); str != "[1000 50]" {
		t.Fatalf("got %s", str)
	}

	paths, err := loader.Paths()
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) != 2 {
		t.Fatalf("got %v", paths)
	}
}

func TestUnknownField(t *testing.T) {
	loader := NewLoader([]string{
		"testdata/bad.cue",
	}, testSchema)
	var str string
	err := loader.AssignFirst("unknown_field", &str)
	if err == nil {
		t.Fatal("should error")
	}
}

func TestMissingFile(t *testing.T) {
	loader := NewLoader([]string{"testdata/missing.cue"}, testSchema)
	var n int
	if err := loader.AssignFirst("max_steps", &n); err == nil {
		t.Fatal("should error")
	}
}
