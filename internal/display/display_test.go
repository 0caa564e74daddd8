package display

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/strrl/stance/internal/fallback"
	"github.com/strrl/stance/internal/history"
	"github.com/strrl/stance/internal/schema"
)

func TestRecordPanelContent(t *testing.T) {
	rec := &schema.Record{
		Intent:   "analysis_request",
		Persona:  schema.PersonaStrategist,
		Emotion:  schema.EmotionalState{Primary: "analytical", Intensity: 0.8, Valence: 0.5, Arousal: 0.6},
		Emoji:    "🧠",
		Response: "Breaking it down.",
		Behavior: schema.Behavior{
			Name:    schema.BehaviorAnalyze,
			Goal:    "Deep examination",
			Actions: []schema.Action{{Type: schema.ActionCognitiveShift, Target: "thinking_mode", Value: "analytical"}},
		},
		Confidence: 0.85,
	}

	panel := RecordPanel(rec, 1500*time.Millisecond)

	assert.Contains(t, panel, "Breaking it down.")
	assert.Contains(t, panel, "Strategist")
	assert.Contains(t, panel, "ANALYZE")
	assert.Contains(t, panel, "Cognitive Shift")
	assert.Contains(t, panel, "thinking_mode")
	assert.Contains(t, panel, "0.85")
	assert.NotContains(t, panel, "Fallback Mode")
}

func TestRecordPanelShowsFallbackMode(t *testing.T) {
	rec := fallback.Synthesize("anything", "boom")
	panel := RecordPanel(rec, time.Second)
	assert.Contains(t, panel, "Fallback Mode")
	assert.Contains(t, panel, "intelligent_analysis")
}

func TestBorderColorByLatency(t *testing.T) {
	rec := &schema.Record{Behavior: schema.Behavior{Name: schema.BehaviorGuide}}

	assert.Equal(t, fastColor, borderColor(rec, time.Second))
	assert.Equal(t, normalColor, borderColor(rec, 3*time.Second))
	assert.Equal(t, slowColor, borderColor(rec, 7*time.Second))
	assert.Equal(t, verySlowColor, borderColor(rec, 11*time.Second))

	// Any fallback overrides the latency color.
	assert.Equal(t, fallbackColor, borderColor(fallback.Synthesize("q", "e"), time.Second))
	assert.Equal(t, fallbackColor, borderColor(fallback.ConnectionError("q"), time.Second))
}

func TestStatsTable(t *testing.T) {
	out := StatsTable(history.Stats{
		TotalRequests:    4,
		SuccessfulParses: 3,
		FallbacksUsed:    1,
		AvgConfidence:    0.75,
	})

	assert.Contains(t, out, "Total Requests")
	assert.Contains(t, out, "75.0%")
	assert.Contains(t, out, "0.75")
}
