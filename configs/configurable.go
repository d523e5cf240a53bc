package configs

import "errors"

// Configurable is a provided value that may be overridden by a config file entry.
type Configurable interface {
	ConfigPath() string
}

// Lookup decodes the first value at c's path into c.
// It reports whether a value was found.
func Lookup[T Configurable](loader Loader, c *T) (bool, error) {
	if err := loader.AssignFirst((*c).ConfigPath(), c); err != nil {
		if errors.Is(err, ErrValueNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
