package session

// State is the game phase.
type State int

const (
	StateIdle    State = iota // Not started
	StatePlaying              // Ticking
	StateOver                 // Player hit an obstacle
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePlaying:
		return "playing"
	case StateOver:
		return "over"
	default:
		return "unknown"
	}
}

// Event is what a tick produced.
type Event int

const (
	EventNone Event = iota
	EventLevelComplete
	EventGameOver
)

func (e Event) String() string {
	switch e {
	case EventNone:
		return "none"
	case EventLevelComplete:
		return "level_complete"
	case EventGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Totals accumulates collision counts over a game.
type Totals struct {
	Ticks   int
	Walls   int
	Corners int
	Pairs   int
}
