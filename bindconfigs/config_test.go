package bindconfigs

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/reusee/dscope"
	"github.com/reusee/starbind/configs"
	"github.com/reusee/starbind/modes"
)

func TestConfigs(t *testing.T) {
	dscope.New(new(Module), modes.ForTest(t)).Fork(
		func() configs.Loader {
			return configs.NewLoader([]string{"testdata/starbind.cue"}, schema)
		},
	).Call(func(
		maxSteps MaxSteps,
		modules Modules,
	) {
		if maxSteps != 5000 {
			t.Fatalf("got %d", maxSteps)
		}
		if !slices.Equal(modules, Modules{"point"}) {
			t.Fatalf("got %v", modules)
		}
	})
}

func TestNoConfig(t *testing.T) {
	dscope.New(new(Module), modes.ForTest(t)).Fork(
		func() configs.Loader {
			return configs.NewLoader(nil, schema)
		},
	).Call(func(
		maxSteps MaxSteps,
		modules Modules,
	) {
		if maxSteps != 0 {
			t.Fatalf("got %d", maxSteps)
		}
		if len(modules) != 0 {
			t.Fatalf("got %v", modules)
		}
	})
}

func TestSchema(t *testing.T) {
	loader := configs.NewLoader([]string{"testdata/bad.cue"}, schema)
	if _, err := loader.Paths(); err == nil {
		t.Fatal("expected schema violation")
	}
}

func writeConfig(t *testing.T, dir string, name string, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestConfigDirs(t *testing.T) {
	project := t.TempDir()
	user := t.TempDir()
	writeConfig(t, project, "starbind.cue", "max_steps: 10\n")
	writeConfig(t, user, ".starbind.cue", "max_steps: 20\nmodules: [\"function\"]\n")

	dscope.New(new(Module), modes.ForTest(t)).Fork(
		func() ConfigDirs {
			return ConfigDirs{project, user, t.TempDir()}
		},
	).Call(func(
		loader configs.Loader,
		maxSteps MaxSteps,
		modules Modules,
	) {
		paths, err := loader.Paths()
		if err != nil {
			t.Fatal(err)
		}
		if len(paths) != 2 ||
			paths[0] != filepath.Join(project, "starbind.cue") ||
			paths[1] != filepath.Join(user, ".starbind.cue") {
			t.Fatalf("got %v", paths)
		}
		// first file wins
		if maxSteps != 10 {
			t.Fatalf("got %d", maxSteps)
		}
		if !slices.Equal(modules, Modules{"function"}) {
			t.Fatalf("got %v", modules)
		}
	})
}

func TestConfigDirsSchema(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "starbind.cue", "max_step: 10\n")

	dscope.New(new(Module), modes.ForTest(t)).Fork(
		func() ConfigDirs {
			return ConfigDirs{dir}
		},
	).Call(func(
		loader configs.Loader,
	) {
		if _, err := loader.Paths(); err == nil {
			t.Fatal("expected unknown field error")
		}
	})
}
