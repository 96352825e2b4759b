package callflow

import (
	"context"
	"fmt"
	"github.com/lifeline-dispatch/lifeline/internal/errors"
	"github.com/lifeline-dispatch/lifeline/internal/models"
	"github.com/lifeline-dispatch/lifeline/internal/repositories"
	"github.com/lifeline-dispatch/lifeline/internal/triage"
	"log/slog"
	"strings"
	"time"
)

// Prompts spoken to the caller. Greeting and ClosingAck are exported because
// the entry webhook and the error path of the continuation webhook need them.
const (
	Greeting   = "This is Lifeline. I will collect details to help dispatch responders."
	ClosingAck = "Thank you. We have your location and details. Help is being dispatched now."
	Apology    = "Sorry, I didn't catch that."

	promptLocation    = "First, what is the address or nearest cross street?"
	promptDescription = "Briefly describe what happened."
	promptPeople      = "How many people need help? Say a number."
	promptDanger      = "Is anyone in immediate danger? Please say yes or no."
)

// Extractor is the structured-extraction dependency of the script.
type Extractor interface {
	Extract(ctx context.Context, transcript string) models.Incident
}

// Turn is the script's answer to one webhook delivery: what to say next and
// whether the call is over. Reset asks the provider to restart the flow at
// the entry webhook.
type Turn struct {
	Prompt     string
	Done       bool
	Reset      bool
	IncidentID int64
}

// Script advances call sessions through the fixed dialogue and files an
// incident when a call completes.
type Script struct {
	store     *Store
	extractor Extractor
	incidents *repositories.IncidentRepository
	logger    *slog.Logger
}

func NewScript(
	store *Store,
	extractor Extractor,
	incidents *repositories.IncidentRepository,
	logger *slog.Logger,
) *Script {
	return &Script{
		store:     store,
		extractor: extractor,
		incidents: incidents,
		logger:    logger.With("source", "callflow.Script"),
	}
}

// StepPrompt returns the question asked at the given step.
func StepPrompt(step models.CallStep) string {
	switch step {
	case models.StepLocation:
		return promptLocation
	case models.StepDescription:
		return promptDescription
	case models.StepPeople:
		return promptPeople
	case models.StepDanger:
		return promptDanger
	default:
		return ClosingAck
	}
}

// Advance processes one speech fragment for the call. An empty fragment
// re-asks the current step's question without advancing. A non-empty fragment
// records the answer, advances the step, and asks the next question in the
// same turn. Answering the final step synthesizes the combined transcript,
// extracts an incident, stores it, and discards the session.
func (s *Script) Advance(ctx context.Context, callSID, speech string) (Turn, error) {
	sess := s.store.GetOrCreate(callSID)
	text := strings.TrimSpace(speech)
	sess.LastActivity = time.Now()
	if text != "" {
		sess.Transcript = append(sess.Transcript, text)
	}

	if sess.Step == models.StepDone {
		// Only reachable through a duplicate delivery racing completion.
		// Apologise and send the caller back to the entry webhook.
		return Turn{Prompt: Apology, Reset: true}, nil
	}

	if text == "" {
		// Silence never terminates the flow; the caller is asked again.
		return Turn{Prompt: StepPrompt(sess.Step)}, nil
	}

	switch sess.Step {
	case models.StepLocation:
		sess.Location = text
		sess.Step = models.StepDescription
	case models.StepDescription:
		sess.Description = text
		sess.Step = models.StepPeople
	case models.StepPeople:
		sess.People = triage.Headcount(text, 1)
		sess.Step = models.StepDanger
	case models.StepDanger:
		sess.Danger = strings.Contains(strings.ToLower(text), "yes")
		sess.Step = models.StepDone
		return s.finalise(ctx, sess)
	}

	return Turn{Prompt: StepPrompt(sess.Step)}, nil
}

// finalise turns the completed session into a stored incident and removes the
// session in the same turn, so no session outlives its call.
func (s *Script) finalise(ctx context.Context, sess *models.CallSession) (Turn, error) {
	defer s.store.Remove(sess.CallSID)

	transcript := combinedTranscript(sess)
	incident := s.extractor.Extract(ctx, transcript)

	// Backfill fields the extractor omitted with the literal session answers.
	if incident.Location == "" {
		incident.Location = sess.Location
		if incident.Location == "" {
			incident.Location = "unknown"
		}
	}
	if incident.PeopleInvolved == 0 {
		incident.PeopleInvolved = sess.People
		if incident.PeopleInvolved == 0 {
			incident.PeopleInvolved = 1
		}
	}
	if incident.Severity == "" {
		if sess.Danger {
			incident.Severity = models.SeverityHigh
		} else {
			incident.Severity = models.SeverityMedium
		}
	}

	stored, err := s.incidents.Insert(ctx, incident)
	if err != nil {
		return Turn{}, errors.Wrap(err, "store incident", slog.String("callSID", sess.CallSID))
	}

	s.logger.LogAttrs(ctx, slog.LevelInfo, "call completed",
		slog.String("callSID", sess.CallSID),
		slog.Int64("incidentID", stored.ID),
		slog.String("emergencyType", string(stored.EmergencyType)))

	return Turn{Prompt: ClosingAck, Done: true, IncidentID: stored.ID}, nil
}

// combinedTranscript renders the session answers in the fixed template the
// extraction prompt expects.
func combinedTranscript(sess *models.CallSession) string {
	danger := "no"
	if sess.Danger {
		danger = "yes"
	}
	return fmt.Sprintf("Location: %s. Description: %s. People: %d. Immediate danger: %s.",
		sess.Location, sess.Description, sess.People, danger)
}
