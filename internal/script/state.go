package script

// State is the runner's position in the execution lifecycle:
// Idle -> Compiling -> Running -> (Completed | Failed) -> Idle.
type State int

const (
	StateIdle State = iota
	StateCompiling
	StateRunning
	StateCompleted
	StateFailed
)

var stateNames = map[State]string{
	StateIdle:      "idle",
	StateCompiling: "compiling",
	StateRunning:   "running",
	StateCompleted: "completed",
	StateFailed:    "failed",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// Observer is notified of every state transition.
type Observer func(from, to State)
