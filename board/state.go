package board

// State is the board's phase.
type State uint8

const (
	Ready State = iota
	Playing
	Paused
	Clearing
	Trapped
)

var stateNames = [...]string{"Ready", "Playing", "Paused", "Clearing", "Trapped"}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "Unknown"
}
