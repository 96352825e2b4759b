package triage_test

import (
	"github.com/lifeline-dispatch/lifeline/internal/models"
	"github.com/lifeline-dispatch/lifeline/internal/triage"
	"github.com/stretchr/testify/require"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestHeadcount(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		fallback int
		want     int
	}{
		{
			name:     "standalone digits win",
			text:     "there are 3 people hurt",
			fallback: 1,
			want:     3,
		},
		{
			name:     "first digit run wins",
			text:     "12 cars, maybe 4 people",
			fallback: 1,
			want:     12,
		},
		{
			name:     "spelled-out number",
			text:     "two people are stuck",
			fallback: 1,
			want:     2,
		},
		{
			name:     "earliest spelled-out number wins",
			text:     "ten or maybe two people",
			fallback: 1,
			want:     10,
		},
		{
			name:     "digits beat words",
			text:     "two adults and 5 children",
			fallback: 1,
			want:     5,
		},
		{
			name:     "fallback when nothing matches",
			text:     "someone needs help",
			fallback: 1,
			want:     1,
		},
		{
			name:     "zero is a valid count",
			text:     "zero injuries so far",
			fallback: 1,
			want:     0,
		},
		{
			name:     "empty text uses fallback",
			text:     "",
			fallback: 4,
			want:     4,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, triage.Headcount(tt.text, tt.fallback))
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		text string
		want models.EmergencyType
	}{
		{
			name: "fire",
			text: "I smell smoke in the hallway",
			want: models.EmergencyFire,
		},
		{
			name: "fire outranks traffic",
			text: "a car crash and now there is a fire",
			want: models.EmergencyFire,
		},
		{
			name: "traffic outranks crime",
			text: "someone stole a car on the highway",
			want: models.EmergencyTraffic,
		},
		{
			name: "crime outranks medical",
			text: "a robbery, my friend is hurt",
			want: models.EmergencyCrime,
		},
		{
			name: "medical",
			text: "she is bleeding badly, send an ambulance",
			want: models.EmergencyMedical,
		},
		{
			name: "injur matches injured and injury",
			text: "three injured hikers",
			want: models.EmergencyMedical,
		},
		{
			name: "case insensitive",
			text: "FIRE on Main Street",
			want: models.EmergencyFire,
		},
		{
			name: "no match",
			text: "my cat is on the roof",
			want: models.EmergencyOther,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, triage.Classify(tt.text))
		})
	}
}

func TestSeverity(t *testing.T) {
	tests := []struct {
		name string
		text string
		want models.Severity
	}{
		{
			name: "fire is high",
			text: "the kitchen is on fire",
			want: models.SeverityHigh,
		},
		{
			name: "not breathing is high",
			text: "he is not breathing",
			want: models.SeverityHigh,
		},
		{
			name: "default is medium",
			text: "a fender bender on elm street",
			want: models.SeverityMedium,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, triage.Severity(tt.text))
		})
	}
}

func TestSummarize(t *testing.T) {
	short := "short transcript"
	require.Equal(t, short, triage.Summarize(short))

	long := strings.Repeat("a", 200)
	got := triage.Summarize(long)
	require.Equal(t, strings.Repeat("a", 180)+"...", got)

	exact := strings.Repeat("b", 180)
	require.Equal(t, exact, triage.Summarize(exact))
}

func TestSummarizeKeepsMultiByteTextValid(t *testing.T) {
	long := strings.Repeat("é", 200)
	got := triage.Summarize(long)
	require.True(t, utf8.ValidString(got))
	require.Equal(t, strings.Repeat("é", 180)+"...", got)
}

func TestAssess(t *testing.T) {
	incident := triage.Assess("two people hurt in a house fire", 1)
	require.Equal(t, models.EmergencyFire, incident.EmergencyType)
	require.Equal(t, "unknown", incident.Location)
	require.Equal(t, 2, incident.PeopleInvolved)
	require.Equal(t, models.SeverityHigh, incident.Severity)
	require.Equal(t, "two people hurt in a house fire", incident.Summary)
	require.False(t, incident.Timestamp.IsZero())
}
