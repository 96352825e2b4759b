// Package ai extracts structured incidents from call transcripts with a
// language model, degrading to the keyword heuristic whenever the model is
// unavailable or its output cannot be parsed.
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"github.com/lifeline-dispatch/lifeline/internal/errors"
	"github.com/lifeline-dispatch/lifeline/internal/models"
	"github.com/lifeline-dispatch/lifeline/internal/triage"
	"github.com/sashabaranov/go-openai"
	"log/slog"
	"regexp"
	"strings"
	"time"
)

const (
	// maxTokens bounds the completion length; the contract asks for a small
	// JSON object so this is generous.
	maxTokens = 300

	// completionTimeout bounds the blocking model call so a hung transport
	// degrades to the heuristic instead of stalling the webhook turn.
	completionTimeout = 30 * time.Second

	// rawSummaryLimit caps the summary taken from unparseable model output.
	rawSummaryLimit = 200
)

const promptTemplate = `You are a 911 emergency triage assistant. Extract key fields from the transcript.

Transcript:
"""%s"""

Return STRICT JSON only:
{
  "emergency_type": "fire|medical|crime|traffic|other",
  "location": "address/landmark or 'unknown'",
  "people_involved": <integer>,
  "severity": "low|medium|high",
  "summary": "<=25 words concise summary"
}`

// jsonSpan finds the first brace-delimited span in model output, newlines
// included. Models often wrap the object in prose despite the strict contract.
var jsonSpan = regexp.MustCompile(`(?s)\{.*\}`)

// Extractor turns free-text transcripts into incident records. A nil client
// selects heuristic-only mode.
type Extractor struct {
	client *openai.Client
	model  string
	logger *slog.Logger
}

// NewExtractor creates a live-mode extractor backed by the given OpenAI client.
func NewExtractor(client *openai.Client, model string, logger *slog.Logger) *Extractor {
	return &Extractor{
		client: client,
		model:  model,
		logger: logger.With("source", "Extractor"),
	}
}

// NewMockExtractor creates a heuristic-only extractor that never calls out.
func NewMockExtractor(logger *slog.Logger) *Extractor {
	return &Extractor{
		client: nil,
		model:  "",
		logger: logger.With("source", "Extractor"),
	}
}

// Mock reports whether the extractor runs in heuristic-only mode.
func (e *Extractor) Mock() bool {
	return e.client == nil
}

// Extract produces a best-effort incident for the transcript. It never fails:
// transport faults and unparseable model output both degrade to a fallback
// record, so the caller always gets something to store.
func (e *Extractor) Extract(ctx context.Context, transcript string) models.Incident {
	if e.Mock() {
		return triage.Assess(transcript, 1)
	}

	raw, err := e.complete(ctx, transcript)
	if err != nil {
		e.logger.LogAttrs(ctx, slog.LevelWarn, "model call failed, using heuristic", errors.SlogError(err))
		return triage.Assess(transcript, 1)
	}

	return parseModelOutput(raw, time.Now())
}

func (e *Extractor) complete(ctx context.Context, transcript string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, completionTimeout)
	defer cancel()

	completion, err := e.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{ //nolint:exhaustruct // this is better for readability
			Model:       e.model,
			MaxTokens:   maxTokens,
			Temperature: 0,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: fmt.Sprintf(promptTemplate, transcript),
				},
			},
		},
	)
	if err != nil {
		return "", errors.Wrap(err, "create chat completion")
	}
	if len(completion.Choices) == 0 {
		return "", errors.New("completion has no choices")
	}
	return completion.Choices[0].Message.Content, nil
}

// parseModelOutput scans raw model output for a JSON object matching the
// incident contract. When no object is found or it fails to parse, a minimal
// record carrying the raw text as summary is returned instead. A successfully
// parsed object is accepted as-is apart from timestamp backfill; the call
// script layers its own merge rule on top for missing fields.
func parseModelOutput(raw string, now time.Time) models.Incident {
	span := jsonSpan.FindString(raw)
	if span == "" {
		return fallbackRecord(raw, now)
	}

	var incident models.Incident
	if err := json.Unmarshal([]byte(span), &incident); err != nil {
		return fallbackRecord(raw, now)
	}
	if incident.Timestamp.IsZero() {
		incident.Timestamp = now
	}
	return incident
}

func fallbackRecord(raw string, now time.Time) models.Incident {
	summary := strings.TrimSpace(raw)
	// Truncate on rune boundaries so multi-byte model output stays valid UTF-8.
	if runes := []rune(summary); len(runes) > rawSummaryLimit {
		summary = string(runes[:rawSummaryLimit])
	}
	return models.Incident{
		EmergencyType:  models.EmergencyOther,
		Location:       "unknown",
		PeopleInvolved: 0,
		Severity:       models.SeverityMedium,
		Summary:        summary,
		Timestamp:      now,
	}
}
