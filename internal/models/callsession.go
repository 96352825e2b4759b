package models

import "time"

// CallStep enumerates the scripted dialogue states of an emergency call.
// Steps only ever move forward within a session.
type CallStep int

const (
	StepLocation CallStep = iota
	StepDescription
	StepPeople
	StepDanger
	StepDone
)

// CallSession tracks one in-progress phone call through the four-step script.
// Sessions are keyed by the telephony provider's call SID and are deleted the
// moment the script completes.
type CallSession struct {
	CallSID string

	Step CallStep

	// Answers recorded by the script, each set exactly once when its step is
	// satisfied.
	Location    string
	Description string
	People      int
	Danger      bool

	// Transcript collects the raw speech fragments in arrival order. It is
	// kept for audit only; extraction works off the recorded answers.
	Transcript []string

	// LastActivity drives the stalled-session sweeper.
	LastActivity time.Time
}
