// Package fallback builds guaranteed-valid records when strict validation of
// model output is impossible. Reconstruct salvages field-by-field from
// generically parsed JSON; Synthesize and ConnectionError fabricate records
// from the query alone.
package fallback

import (
	"encoding/json"
	"fmt"

	"github.com/strrl/stance/internal/schema"
)

// Reconstruct builds a conforming record from a syntactically valid but
// schema-invalid key-value structure. Each field is kept when it passes its
// own check and defaulted otherwise; numerics are clamped after the choice.
// This tier has no failure mode.
//
// Source-provided actions are always replaced by a single synthetic action.
// Other fields are preserved-if-valid, actions are not; that asymmetry is
// deliberate and pinned by tests.
func Reconstruct(data map[string]any, query string) *schema.Record {
	emotionData := subMap(data, "emotional_state")
	behaviorData := subMap(data, "behavior")

	persona := schema.Persona(stringField(data, "persona", ""))
	if !persona.IsValid() {
		persona = schema.PersonaSage
	}

	behaviorName := schema.BehaviorName(stringField(behaviorData, "name", ""))
	if !behaviorName.IsValid() {
		behaviorName = schema.BehaviorAcknowledge
	}

	emotion := schema.EmotionalState{
		Primary:   stringField(emotionData, "primary", "helpful"),
		Intensity: numberField(emotionData, "intensity", 0.7),
		Valence:   numberField(emotionData, "valence", 0.5),
		Arousal:   numberField(emotionData, "arousal", 0.5),
	}
	emotion.Normalize()

	return &schema.Record{
		Intent:  stringField(data, "intent", "general_assistance"),
		Persona: persona,
		Emotion: emotion,
		Emoji:   stringField(data, "emoji", "🤖"),
		Response: stringField(data, "response",
			fmt.Sprintf("I understand you're asking about: %s. Let me help you with that.", query)),
		Behavior: schema.Behavior{
			Name: behaviorName,
			Goal: stringField(behaviorData, "goal", "Provide helpful assistance"),
			Actions: []schema.Action{
				{Type: schema.ActionState, Target: "assistance", Value: "active"},
			},
		},
		Confidence: schema.ClampUnit(numberField(data, "confidence", 0.6)),
		Metadata: map[string]schema.Value{
			"fallback_type":         schema.StringValue("partial_extraction"),
			"original_data_quality": schema.StringValue("partial"),
		},
	}
}

func stringField(data map[string]any, key, fallback string) string {
	if data == nil {
		return fallback
	}
	s, ok := data[key].(string)
	if !ok || s == "" {
		return fallback
	}
	return s
}

func numberField(data map[string]any, key string, fallback float64) float64 {
	if data == nil {
		return fallback
	}
	switch n := data[key].(type) {
	case float64:
		return n
	case json.Number:
		if f, err := n.Float64(); err == nil {
			return f
		}
		return fallback
	default:
		return fallback
	}
}

func subMap(data map[string]any, key string) map[string]any {
	if data == nil {
		return nil
	}
	m, _ := data[key].(map[string]any)
	return m
}
