package common

type Mode int

const (
	// Normal routes typing into the filter input.
	Normal Mode = iota
	// Prompt routes typing into the path prompt opened by ctrl+o.
	Prompt
)

func (m Mode) String() string {
	switch m {
	case Normal:
		return "normal"
	case Prompt:
		return "prompt"
	default:
		return "unknown"
	}
}

// ModelReader defines the interface that views use to read model state
type ModelReader interface {
	Mode() Mode
	Root() string
	FilterView() string
	PromptView() string
	ListView() string
	Status() string
	Err() error
}
