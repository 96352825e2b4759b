package models

import "time"

// EmergencyType classifies what kind of response an incident needs.
type EmergencyType string

const (
	EmergencyFire    EmergencyType = "fire"
	EmergencyMedical EmergencyType = "medical"
	EmergencyCrime   EmergencyType = "crime"
	EmergencyTraffic EmergencyType = "traffic"
	EmergencyOther   EmergencyType = "other"
)

// Severity grades how urgent an incident is.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Incident is a structured triage result extracted from a call transcript.
// It is immutable after insertion and lives only for the process lifetime.
//
// The JSON field names double as the strict output contract given to the
// language model, so they must stay in sync with the extraction prompt.
type Incident struct {
	ID             int64         `json:"id"`
	EmergencyType  EmergencyType `json:"emergency_type"`
	Location       string        `json:"location"`
	PeopleInvolved int           `json:"people_involved"`
	Severity       Severity      `json:"severity"`
	Summary        string        `json:"summary"`
	Timestamp      time.Time     `json:"timestamp"`
}
