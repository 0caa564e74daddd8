package insights

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strrl/stance/internal/history"
	"github.com/strrl/stance/internal/schema"
)

func sessionEntries() []history.Entry {
	log := history.NewLog()
	log.Record(history.Entry{Query: "a", Persona: schema.PersonaStrategist, Behavior: schema.BehaviorAnalyze,
		Confidence: 0.9, Latency: 100 * time.Millisecond, Success: true, Tier: history.TierValidated})
	log.Record(history.Entry{Query: "b", Persona: schema.PersonaStrategist, Behavior: schema.BehaviorAnalyze,
		Confidence: 0.7, Latency: 200 * time.Millisecond, Success: true, Tier: history.TierValidated})
	log.Record(history.Entry{Query: "c", Persona: schema.PersonaSage, Behavior: schema.BehaviorAcknowledge,
		Confidence: 0.6, Latency: 50 * time.Millisecond, Success: false, Tier: history.TierHeuristic})
	log.Record(history.Entry{Query: "d", Persona: schema.PersonaSage, Behavior: schema.BehaviorAcknowledge,
		Confidence: 0.95, Latency: 10 * time.Millisecond, Success: false, Tier: history.TierConnection})
	return log.Entries()
}

func TestReport(t *testing.T) {
	entries := sessionEntries()

	summary, err := Report(entries)
	require.NoError(t, err)

	assert.Equal(t, 4, summary.TotalRequests)
	assert.InDelta(t, 0.5, summary.SuccessRate, 1e-9)

	require.Len(t, summary.Personas, 2)
	assert.Equal(t, "Strategist", summary.Personas[0].Persona)
	assert.Equal(t, 2, summary.Personas[0].Count)
	assert.InDelta(t, 0.8, summary.Personas[0].AvgConfidence, 1e-9)

	tiers := map[string]int{}
	for _, row := range summary.Tiers {
		tiers[row.Tier] = row.Count
	}
	assert.Equal(t, map[string]int{
		"validated":            2,
		"intelligent_analysis": 1,
		"connection_error":     1,
	}, tiers)

	assert.InDelta(t, 200.0, summary.Latency.Max, 1e-6)
	assert.Greater(t, summary.Latency.P95, summary.Latency.P50)
}

// Report must agree with the history package's own projection.
func TestReportMatchesStatsProjection(t *testing.T) {
	log := history.NewLog()
	log.Record(history.Entry{Persona: schema.PersonaBuilder, Confidence: 0.8, Success: true, Tier: history.TierValidated})
	log.Record(history.Entry{Persona: schema.PersonaSage, Confidence: 0.6, Success: false, Tier: history.TierPartial})

	summary, err := Report(log.Entries())
	require.NoError(t, err)

	assert.InDelta(t, log.Stats().SuccessRate(), summary.SuccessRate, 1e-9)
	assert.Equal(t, log.Stats().TotalRequests, summary.TotalRequests)
}

func TestReportEmptySession(t *testing.T) {
	summary, err := Report(nil)
	require.NoError(t, err)

	assert.Equal(t, 0, summary.TotalRequests)
	assert.Equal(t, 0.0, summary.SuccessRate)
	assert.Empty(t, summary.Personas)
	assert.Equal(t, 0.0, summary.Latency.Max)
}

// Repeated reports replace the table rather than accumulating rows.
func TestReportReplacesPreviousLoad(t *testing.T) {
	entries := sessionEntries()

	_, err := Report(entries)
	require.NoError(t, err)

	summary, err := Report(entries[:1])
	require.NoError(t, err)
	assert.Equal(t, 1, summary.TotalRequests)
	require.Len(t, summary.Personas, 1)
	assert.Equal(t, 1, summary.Personas[0].Count)
}
