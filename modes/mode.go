package modes

type Mode uint8

const (
	ModeDevelopment Mode = iota + 1
	ModeProduction
)

func (m Mode) String() string {
	switch m {
	case ModeDevelopment:
		return "development"
	case ModeProduction:
		return "production"
	}
	return "unknown"
}

// Verbose reports whether diagnostics such as panic stacks should be logged.
func (m Mode) Verbose() bool {
	return m != ModeProduction
}
