package schema

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validPayload = `{
	"intent": "analysis_request",
	"persona": "Strategist",
	"emotional_state": {
		"primary": "analytical",
		"secondary": "focused",
		"intensity": 0.8,
		"valence": 0.5,
		"arousal": 0.6,
		"stability": 0.7
	},
	"emoji": "🧠",
	"response": "Let's break this down systematically.",
	"behavior": {
		"name": "analyze",
		"goal": "Deep examination",
		"actions": [
			{"type": "cognitive_shift", "target": "thinking_mode", "value": "analytical"},
			{"type": "state", "target": "focus_level", "value": "high", "duration": 2.5}
		]
	},
	"confidence": 0.85,
	"metadata": {"processing_notes": "clean run", "depth": 2}
}`

func TestParseStrictValid(t *testing.T) {
	rec, err := ParseStrict(validPayload)
	require.NoError(t, err)

	assert.Equal(t, "analysis_request", rec.Intent)
	assert.Equal(t, PersonaStrategist, rec.Persona)
	assert.Equal(t, "analytical", rec.Emotion.Primary)
	assert.Equal(t, "focused", rec.Emotion.Secondary)
	assert.Equal(t, 0.8, rec.Emotion.Intensity)
	require.NotNil(t, rec.Emotion.Stability)
	assert.Equal(t, 0.7, *rec.Emotion.Stability)
	assert.Equal(t, BehaviorAnalyze, rec.Behavior.Name)
	require.Len(t, rec.Behavior.Actions, 2)
	assert.Equal(t, ActionCognitiveShift, rec.Behavior.Actions[0].Type)
	assert.Equal(t, 2.5, rec.Behavior.Actions[1].Duration)
	assert.Equal(t, 0.85, rec.Confidence)

	// Strict success carries no fallback marker.
	assert.Empty(t, rec.FallbackType())

	notes, ok := rec.Metadata["processing_notes"].AsString()
	require.True(t, ok)
	assert.Equal(t, "clean run", notes)
}

func TestParseStrictRoundTrip(t *testing.T) {
	rec, err := ParseStrict(validPayload)
	require.NoError(t, err)

	encoded, err := json.Marshal(rec)
	require.NoError(t, err)

	again, err := ParseStrict(string(encoded))
	require.NoError(t, err)
	assert.Equal(t, rec, again)
}

func TestParseStrictViolations(t *testing.T) {
	mutate := func(fn func(m map[string]any)) string {
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(validPayload), &m))
		fn(m)
		out, err := json.Marshal(m)
		require.NoError(t, err)
		return string(out)
	}

	tests := []struct {
		name  string
		raw   string
		field string
	}{
		{"empty payload", "", "$"},
		{"malformed JSON", "{not json", "$"},
		{"missing intent", mutate(func(m map[string]any) { delete(m, "intent") }), "intent"},
		{"unknown persona", mutate(func(m map[string]any) { m["persona"] = "Wizard" }), "persona"},
		{"missing emotional state", mutate(func(m map[string]any) { delete(m, "emotional_state") }), "emotional_state"},
		{"missing intensity", mutate(func(m map[string]any) {
			delete(m["emotional_state"].(map[string]any), "intensity")
		}), "emotional_state.intensity"},
		{"intensity out of range", mutate(func(m map[string]any) {
			m["emotional_state"].(map[string]any)["intensity"] = 1.5
		}), "emotional_state.intensity"},
		{"valence out of range", mutate(func(m map[string]any) {
			m["emotional_state"].(map[string]any)["valence"] = -1.2
		}), "emotional_state.valence"},
		{"stability out of range", mutate(func(m map[string]any) {
			m["emotional_state"].(map[string]any)["stability"] = 2.0
		}), "emotional_state.stability"},
		{"missing response", mutate(func(m map[string]any) { delete(m, "response") }), "response"},
		{"unknown behavior", mutate(func(m map[string]any) {
			m["behavior"].(map[string]any)["name"] = "meditate"
		}), "behavior.name"},
		{"empty actions", mutate(func(m map[string]any) {
			m["behavior"].(map[string]any)["actions"] = []any{}
		}), "behavior.actions"},
		{"unknown action type", mutate(func(m map[string]any) {
			m["behavior"].(map[string]any)["actions"].([]any)[1].(map[string]any)["type"] = "levitate"
		}), "behavior.actions[1].type"},
		{"negative duration", mutate(func(m map[string]any) {
			m["behavior"].(map[string]any)["actions"].([]any)[1].(map[string]any)["duration"] = -1.0
		}), "behavior.actions[1].duration"},
		{"missing confidence", mutate(func(m map[string]any) { delete(m, "confidence") }), "confidence"},
		{"confidence out of range", mutate(func(m map[string]any) { m["confidence"] = 1.1 }), "confidence"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := ParseStrict(tt.raw)
			require.Nil(t, rec)

			var violation *Violation
			require.True(t, errors.As(err, &violation), "expected *Violation, got %v", err)
			assert.Equal(t, tt.field, violation.Field)
			assert.NotEmpty(t, violation.Reason)
		})
	}
}

func TestViolationError(t *testing.T) {
	v := violationf("behavior.name", "%q is not an allowed behavior", "meditate")
	assert.Contains(t, v.Error(), "behavior.name")
	assert.Contains(t, v.Error(), "meditate")
}
