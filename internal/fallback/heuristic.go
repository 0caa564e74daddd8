package fallback

import (
	"fmt"
	"strings"

	"github.com/strrl/stance/internal/schema"
)

type classification struct {
	keywords []string
	persona  schema.Persona
	behavior schema.BehaviorName
	emotion  string
	intent   string
}

// Ordered rule list, first match wins. The final general-assistance
// classification is the fallthrough, not a rule.
var classifications = []classification{
	{
		keywords: []string{"analyze", "compare", "evaluate"},
		persona:  schema.PersonaStrategist,
		behavior: schema.BehaviorAnalyze,
		emotion:  "analytical",
		intent:   "analysis_request",
	},
	{
		keywords: []string{"explore", "discover", "learn"},
		persona:  schema.PersonaExplorer,
		behavior: schema.BehaviorExplore,
		emotion:  "curious",
		intent:   "exploration_request",
	},
	{
		keywords: []string{"build", "create", "make"},
		persona:  schema.PersonaBuilder,
		behavior: schema.BehaviorGuide,
		emotion:  "practical",
		intent:   "creation_request",
	},
}

func classify(query string) classification {
	lowered := strings.ToLower(query)
	for _, c := range classifications {
		for _, keyword := range c.keywords {
			if strings.Contains(lowered, keyword) {
				return c
			}
		}
	}
	return classification{
		persona:  schema.PersonaSage,
		behavior: schema.BehaviorAcknowledge,
		emotion:  "helpful",
		intent:   "general_assistance",
	}
}

// Synthesize fabricates a record from the query text alone, with no
// dependency on model output. The diagnostic from the failed attempt is
// preserved verbatim in metadata. This tier never fails.
func Synthesize(query, diagnostic string) *schema.Record {
	c := classify(query)

	return &schema.Record{
		Intent:  c.intent,
		Persona: c.persona,
		Emotion: schema.EmotionalState{
			Primary:   c.emotion,
			Intensity: 0.7,
			Valence:   0.5,
			Arousal:   0.4,
			Stability: float64Ptr(0.8),
		},
		Emoji: "🛡️",
		Response: fmt.Sprintf("I encountered a processing issue, but I can still help you with '%s'. "+
			"While my cognitive control system had difficulties, I'm functioning in safe mode and ready to assist.", query),
		Behavior: schema.Behavior{
			Name: c.behavior,
			Goal: "Provide reliable assistance despite processing limitations",
			Actions: []schema.Action{
				{Type: schema.ActionState, Target: "safe_mode", Value: "active"},
				{Type: schema.ActionCognitiveShift, Target: "fallback_processing", Value: "enabled"},
			},
		},
		Confidence: 0.6,
		Metadata: map[string]schema.Value{
			"fallback_type":   schema.StringValue("intelligent_analysis"),
			"error":           schema.StringValue(diagnostic),
			"processing_mode": schema.StringValue("safe_fallback"),
		},
	}
}

// ConnectionError is the variant used when the model endpoint is entirely
// unreachable. Confidence is fixed high because the failure cause is
// certain, and the response names the remediation step.
func ConnectionError(query string) *schema.Record {
	return &schema.Record{
		Intent:  "connection_error",
		Persona: schema.PersonaSage,
		Emotion: schema.EmotionalState{
			Primary:   "concerned",
			Secondary: "helpful",
			Intensity: 0.6,
			Valence:   -0.2,
			Arousal:   0.3,
		},
		Emoji: "🔌",
		Response: fmt.Sprintf("I'm unable to connect to the local AI model (Ollama) to process your request "+
			"about '%s'. Please ensure Ollama is running with 'ollama serve' and try again.", query),
		Behavior: schema.Behavior{
			Name: schema.BehaviorAcknowledge,
			Goal: "Inform user of connection issue and provide guidance",
			Actions: []schema.Action{
				{Type: schema.ActionState, Target: "connection", Value: "error"},
				{Type: schema.ActionVisual, Target: "status", Value: "warning"},
			},
		},
		Confidence: 0.95,
		Metadata: map[string]schema.Value{
			"error_type":       schema.StringValue("connection_failure"),
			"suggested_action": schema.StringValue("restart_ollama"),
		},
	}
}

func float64Ptr(v float64) *float64 {
	return &v
}
