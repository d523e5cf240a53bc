package bindconfigs

import (
	_ "embed"
	"os"
	"path/filepath"

	"github.com/reusee/starbind/configs"
	"github.com/reusee/starbind/logs"
)

//go:embed schema.cue
var schema string

var fileNames = []string{
	"starbind.cue",
	".starbind.cue",
}

// ConfigDirs lists the directories searched for config files, highest priority first.
type ConfigDirs []string

func (Module) ConfigDirs() ConfigDirs {
	var dirs ConfigDirs
	// working directory
	if dir, err := os.Getwd(); err == nil {
		dirs = append(dirs, dir)
	}
	// user config dir
	if dir, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, dir)
	}
	// system wide dir
	return append(dirs, "/etc")
}

func findConfigFiles(dirs ConfigDirs) (paths []string) {
	for _, dir := range dirs {
		for _, name := range fileNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				paths = append(paths, path)
			}
		}
	}
	return
}

func (Module) ConfigsLoader(
	logger logs.Logger,
	dirs ConfigDirs,
) configs.Loader {
	paths := findConfigFiles(dirs)
	if len(paths) > 0 {
		logger.Info("config file",
			"paths", paths,
		)
	}
	return configs.NewLoader(paths, schema)
}
