package config

// StateID is a hero's coarse motion state, derived after each move.
type StateID int

const (
	StateNone StateID = iota
	Idle
	Running
	Jump
	Falling
	WallSlide
)

var stateNames = [...]string{
	StateNone: "none",
	Idle:      "idle",
	Running:   "running",
	Jump:      "jump",
	Falling:   "falling",
	WallSlide: "wall_slide",
}

func (s StateID) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// RunningSpeed is the horizontal speed, in units per second, above which a
// grounded hero counts as running.
const RunningSpeed = 0.1
