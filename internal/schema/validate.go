package schema

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Violation reports the first structural problem found during strict
// validation. It carries the path of the offending field so callers can log
// exactly what the model got wrong.
type Violation struct {
	Field  string
	Reason string
}

func (v *Violation) Error() string {
	return fmt.Sprintf("schema violation at %s: %s", v.Field, v.Reason)
}

func violationf(field, format string, args ...any) *Violation {
	return &Violation{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// Wire shapes use pointers for required fields so that a missing field is
// distinguishable from a zero value before range checks run.
type wireRecord struct {
	Intent     *string          `json:"intent"`
	Persona    *string          `json:"persona"`
	Emotion    *wireEmotion     `json:"emotional_state"`
	Emoji      string           `json:"emoji"`
	Response   *string          `json:"response"`
	Behavior   *wireBehavior    `json:"behavior"`
	Confidence *float64         `json:"confidence"`
	Metadata   map[string]Value `json:"metadata"`
}

type wireEmotion struct {
	Primary   *string  `json:"primary"`
	Secondary string   `json:"secondary"`
	Intensity *float64 `json:"intensity"`
	Valence   *float64 `json:"valence"`
	Arousal   *float64 `json:"arousal"`
	Stability *float64 `json:"stability"`
}

type wireBehavior struct {
	Name    *string      `json:"name"`
	Goal    string       `json:"goal"`
	Actions []wireAction `json:"actions"`
}

type wireAction struct {
	Type     *string  `json:"type"`
	Target   string   `json:"target"`
	Value    string   `json:"value"`
	Duration *float64 `json:"duration"`
	Priority string   `json:"priority"`
}

// ParseStrict attempts a full structural and range validation of raw model
// output. On success the returned Record mirrors the input exactly and
// carries no fallback metadata. Any failure is a *Violation naming the field
// and reason; it is the caller's job to absorb it and degrade.
func ParseStrict(raw string) (*Record, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, violationf("$", "empty payload")
	}

	var wire wireRecord
	if err := json.Unmarshal([]byte(raw), &wire); err != nil {
		return nil, violationf("$", "malformed JSON: %v", err)
	}

	return wire.toRecord()
}

func (w *wireRecord) toRecord() (*Record, error) {
	if w.Intent == nil || strings.TrimSpace(*w.Intent) == "" {
		return nil, violationf("intent", "required field is missing or empty")
	}
	if w.Persona == nil {
		return nil, violationf("persona", "required field is missing")
	}
	persona := Persona(*w.Persona)
	if !persona.IsValid() {
		return nil, violationf("persona", "%q is not an allowed persona", *w.Persona)
	}
	if w.Emotion == nil {
		return nil, violationf("emotional_state", "required field is missing")
	}
	emotion, err := w.Emotion.toEmotionalState()
	if err != nil {
		return nil, err
	}
	if w.Response == nil || strings.TrimSpace(*w.Response) == "" {
		return nil, violationf("response", "required field is missing or empty")
	}
	if w.Behavior == nil {
		return nil, violationf("behavior", "required field is missing")
	}
	behavior, err := w.Behavior.toBehavior()
	if err != nil {
		return nil, err
	}
	if w.Confidence == nil {
		return nil, violationf("confidence", "required field is missing")
	}
	if *w.Confidence < 0.0 || *w.Confidence > 1.0 {
		return nil, violationf("confidence", "value %v outside [0,1]", *w.Confidence)
	}

	return &Record{
		Intent:     *w.Intent,
		Persona:    persona,
		Emotion:    *emotion,
		Emoji:      w.Emoji,
		Response:   *w.Response,
		Behavior:   *behavior,
		Confidence: *w.Confidence,
		Metadata:   w.Metadata,
	}, nil
}

func (w *wireEmotion) toEmotionalState() (*EmotionalState, error) {
	if w.Primary == nil || strings.TrimSpace(*w.Primary) == "" {
		return nil, violationf("emotional_state.primary", "required field is missing or empty")
	}
	if w.Intensity == nil {
		return nil, violationf("emotional_state.intensity", "required field is missing")
	}
	if *w.Intensity < 0.0 || *w.Intensity > 1.0 {
		return nil, violationf("emotional_state.intensity", "value %v outside [0,1]", *w.Intensity)
	}
	if w.Valence == nil {
		return nil, violationf("emotional_state.valence", "required field is missing")
	}
	if *w.Valence < -1.0 || *w.Valence > 1.0 {
		return nil, violationf("emotional_state.valence", "value %v outside [-1,1]", *w.Valence)
	}
	if w.Arousal == nil {
		return nil, violationf("emotional_state.arousal", "required field is missing")
	}
	if *w.Arousal < 0.0 || *w.Arousal > 1.0 {
		return nil, violationf("emotional_state.arousal", "value %v outside [0,1]", *w.Arousal)
	}
	if w.Stability != nil && (*w.Stability < 0.0 || *w.Stability > 1.0) {
		return nil, violationf("emotional_state.stability", "value %v outside [0,1]", *w.Stability)
	}

	return &EmotionalState{
		Primary:   *w.Primary,
		Secondary: w.Secondary,
		Intensity: *w.Intensity,
		Valence:   *w.Valence,
		Arousal:   *w.Arousal,
		Stability: w.Stability,
	}, nil
}

func (w *wireBehavior) toBehavior() (*Behavior, error) {
	if w.Name == nil {
		return nil, violationf("behavior.name", "required field is missing")
	}
	name := BehaviorName(*w.Name)
	if !name.IsValid() {
		return nil, violationf("behavior.name", "%q is not an allowed behavior", *w.Name)
	}
	if len(w.Actions) == 0 {
		return nil, violationf("behavior.actions", "at least one action is required")
	}

	actions := make([]Action, 0, len(w.Actions))
	for i, wa := range w.Actions {
		action, err := wa.toAction(i)
		if err != nil {
			return nil, err
		}
		actions = append(actions, *action)
	}

	return &Behavior{
		Name:    name,
		Goal:    w.Goal,
		Actions: actions,
	}, nil
}

func (w *wireAction) toAction(index int) (*Action, error) {
	path := fmt.Sprintf("behavior.actions[%d]", index)

	if w.Type == nil {
		return nil, violationf(path+".type", "required field is missing")
	}
	actionType := ActionType(*w.Type)
	if !actionType.IsValid() {
		return nil, violationf(path+".type", "%q is not an allowed action type", *w.Type)
	}

	var duration float64
	if w.Duration != nil {
		if *w.Duration < 0.0 {
			return nil, violationf(path+".duration", "value %v is negative", *w.Duration)
		}
		duration = *w.Duration
	}

	return &Action{
		Type:     actionType,
		Target:   w.Target,
		Value:    w.Value,
		Duration: duration,
		Priority: w.Priority,
	}, nil
}
