package app

// State represents the current application state.
type State int

const (
	StateLoading  State = iota // Waiting for the first catalog
	StateBrowsing              // Catalog on screen
	StateError                 // First load failed; nothing to show
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateBrowsing:
		return "browsing"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}
