package state

import "time"

// State identifies a finite-state-machine step used in conversations.
type State string

const (
	// StateIdle indicates there is no active conversation with the user.
	StateIdle State = "idle"
)

// Session stores the conversation state and typed dialogue data for a user.
type Session[D any] struct {
	State    State
	Data     D
	LastSeen time.Time
}
