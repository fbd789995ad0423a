package session

// State is the lifecycle stage of the playback session.
type State int

const (
	Idle State = iota
	Loading
	Loaded
	Playing
	Paused
	Stopped
)

var stateNames = map[State]string{
	Idle:    "idle",
	Loading: "loading",
	Loaded:  "loaded",
	Playing: "playing",
	Paused:  "paused",
	Stopped: "stopped",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// Active reports whether a file is open in the engine.
func (s State) Active() bool {
	return s == Loaded || s == Playing || s == Paused
}
