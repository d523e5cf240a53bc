package handles

type State uint8

const (
	Uninitialized State = iota
	Live
	Destroyed
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Live:
		return "live"
	case Destroyed:
		return "destroyed"
	}
	return "unknown"
}
