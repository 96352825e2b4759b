// Package triage implements the deterministic keyword heuristic used when no
// language model is available, and the headcount parser shared with the call
// script.
package triage

import (
	"github.com/lifeline-dispatch/lifeline/internal/models"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	summaryLimit = 180
	ellipsis     = "..."
)

var digitRun = regexp.MustCompile(`\b(\d+)\b`)

// numberWords maps spelled-out English numbers zero through ten to their values.
var numberWords = []struct {
	word  string
	value int
}{
	{"zero", 0}, {"one", 1}, {"two", 2}, {"three", 3}, {"four", 4},
	{"five", 5}, {"six", 6}, {"seven", 7}, {"eight", 8}, {"nine", 9}, {"ten", 10},
}

// keywordRanking holds the emergency type keyword sets in canonical priority
// order: fire, then traffic, then crime, then medical. The first set with a
// match wins.
var keywordRanking = []struct {
	emergencyType models.EmergencyType
	keywords      []string
}{
	{models.EmergencyFire, []string{"fire", "smoke", "burn"}},
	{models.EmergencyTraffic, []string{"crash", "accident", "car", "highway", "traffic"}},
	{models.EmergencyCrime, []string{"robbery", "theft", "gun", "assault"}},
	{models.EmergencyMedical, []string{"hurt", "injur", "bleed", "ambulance", "medical"}},
}

var highSeverityKeywords = []string{"fire", "gun", "bleeding", "unconscious", "not breathing"}

// Headcount parses the number of people from spoken text. The first standalone
// digit run wins; failing that, the earliest spelled-out number word zero
// through ten; failing both, fallback.
func Headcount(text string, fallback int) int {
	lowered := strings.ToLower(text)
	if match := digitRun.FindString(lowered); match != "" {
		if n, err := strconv.Atoi(match); err == nil {
			return n
		}
	}

	earliest := -1
	value := fallback
	for _, nw := range numberWords {
		if idx := strings.Index(lowered, nw.word); idx >= 0 && (earliest < 0 || idx < earliest) {
			earliest = idx
			value = nw.value
		}
	}
	return value
}

// Classify picks the emergency type with the highest-priority keyword match.
func Classify(text string) models.EmergencyType {
	lowered := strings.ToLower(text)
	for _, ranked := range keywordRanking {
		for _, keyword := range ranked.keywords {
			if strings.Contains(lowered, keyword) {
				return ranked.emergencyType
			}
		}
	}
	return models.EmergencyOther
}

// Severity returns high when the text mentions a life-threatening marker,
// otherwise medium.
func Severity(text string) models.Severity {
	lowered := strings.ToLower(text)
	for _, keyword := range highSeverityKeywords {
		if strings.Contains(lowered, keyword) {
			return models.SeverityHigh
		}
	}
	return models.SeverityMedium
}

// Summarize truncates the transcript to the summary length budget. The limit
// counts runes so multi-byte text is never split mid-character.
func Summarize(text string) string {
	runes := []rune(text)
	if len(runes) > summaryLimit {
		return string(runes[:summaryLimit]) + ellipsis
	}
	return text
}

// Assess builds a complete best-effort incident from the transcript without
// calling any external service. defaultCount is used when no headcount can be
// parsed from the text.
func Assess(transcript string, defaultCount int) models.Incident {
	return models.Incident{
		EmergencyType:  Classify(transcript),
		Location:       "unknown",
		PeopleInvolved: Headcount(transcript, defaultCount),
		Severity:       Severity(transcript),
		Summary:        Summarize(transcript),
		Timestamp:      time.Now(),
	}
}
