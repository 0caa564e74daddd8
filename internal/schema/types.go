package schema

// Persona is the cognitive role the model assigns itself for a response.
type Persona string

const (
	PersonaStrategist Persona = "Strategist"
	PersonaArchitect  Persona = "Architect"
	PersonaBuilder    Persona = "Builder"
	PersonaExplorer   Persona = "Explorer"
	PersonaSage       Persona = "Sage"
)

var ValidPersonas = map[Persona]string{
	PersonaStrategist: "Analytical thinking and systematic evaluation",
	PersonaArchitect:  "Structured design and big-picture organization",
	PersonaBuilder:    "Practical, hands-on problem solving",
	PersonaExplorer:   "Creative discovery and open-ended learning",
	PersonaSage:       "Balanced wisdom and general guidance",
}

func (p Persona) IsValid() bool {
	_, ok := ValidPersonas[p]
	return ok
}

// BehaviorName is the cognitive strategy chosen for a response.
type BehaviorName string

const (
	BehaviorGuide       BehaviorName = "guide"
	BehaviorAnalyze     BehaviorName = "analyze"
	BehaviorExplore     BehaviorName = "explore"
	BehaviorSynthesize  BehaviorName = "synthesize"
	BehaviorChallenge   BehaviorName = "challenge"
	BehaviorAcknowledge BehaviorName = "acknowledge"
	BehaviorAdapt       BehaviorName = "adapt"
	BehaviorFocus       BehaviorName = "focus"
	BehaviorDiverge     BehaviorName = "diverge"
	BehaviorSoothe      BehaviorName = "soothe"
)

var ValidBehaviors = map[BehaviorName]string{
	BehaviorGuide:       "Step-by-step instruction and structured support",
	BehaviorAnalyze:     "Deep examination and systematic breakdown",
	BehaviorExplore:     "Creative discovery and possibility generation",
	BehaviorSynthesize:  "Combining ideas and finding connections",
	BehaviorChallenge:   "Critical thinking and assumption questioning",
	BehaviorAcknowledge: "Recognition and validation of your concerns",
	BehaviorAdapt:       "Flexible adjustment to your specific needs",
	BehaviorFocus:       "Concentrated attention on specific details",
	BehaviorDiverge:     "Broad thinking and multiple perspectives",
	BehaviorSoothe:      "Calming and supportive approach",
}

func (b BehaviorName) IsValid() bool {
	_, ok := ValidBehaviors[b]
	return ok
}

// ActionType tags a single cognitive operation within a behavior.
type ActionType string

const (
	ActionCognitiveShift       ActionType = "cognitive_shift"
	ActionState                ActionType = "state"
	ActionVisual               ActionType = "visual"
	ActionSequence             ActionType = "sequence"
	ActionExperienceAdaptation ActionType = "experience_adaptation"
	ActionProcessingStyle      ActionType = "processing_style"
	ActionFocusAdjustment      ActionType = "focus_adjustment"
)

var ValidActionTypes = map[ActionType]string{
	ActionCognitiveShift:       "changing thinking style",
	ActionState:                "adjusting mental state",
	ActionVisual:               "modifying visual presentation",
	ActionSequence:             "organizing information flow",
	ActionExperienceAdaptation: "learning from past interactions",
	ActionProcessingStyle:      "altering analysis method",
	ActionFocusAdjustment:      "refining attention level",
}

func (a ActionType) IsValid() bool {
	_, ok := ValidActionTypes[a]
	return ok
}

// Action is one cognitive operation. Actions are independent descriptive
// tags; nothing links them to each other.
type Action struct {
	Type     ActionType `json:"type"`
	Target   string     `json:"target,omitempty"`
	Value    string     `json:"value,omitempty"`
	Duration float64    `json:"duration,omitempty"`
	Priority string     `json:"priority,omitempty"`
}

// Behavior pairs a named cognitive strategy with its constituent actions.
// Every reconstruction path leaves at least one action in place.
type Behavior struct {
	Name    BehaviorName `json:"name"`
	Goal    string       `json:"goal,omitempty"`
	Actions []Action     `json:"actions"`
}

// EmotionalState is a multi-dimensional emotional reading. Stability is a
// pointer because absent and zero are different states.
type EmotionalState struct {
	Primary   string   `json:"primary"`
	Secondary string   `json:"secondary,omitempty"`
	Intensity float64  `json:"intensity"`
	Valence   float64  `json:"valence"`
	Arousal   float64  `json:"arousal"`
	Stability *float64 `json:"stability,omitempty"`
}

// Record is the top-level structured output unit: the model's cognitive
// stance toward one query. Every pipeline path terminates in exactly one
// Record with all numeric fields inside their declared ranges.
type Record struct {
	Intent     string           `json:"intent"`
	Persona    Persona          `json:"persona"`
	Emotion    EmotionalState   `json:"emotional_state"`
	Emoji      string           `json:"emoji,omitempty"`
	Response   string           `json:"response"`
	Behavior   Behavior         `json:"behavior"`
	Confidence float64          `json:"confidence"`
	Metadata   map[string]Value `json:"metadata,omitempty"`
}

// FallbackType returns the fallback tier recorded in metadata, or "" when
// the record came through strict validation.
func (r *Record) FallbackType() string {
	if r.Metadata == nil {
		return ""
	}
	v, ok := r.Metadata["fallback_type"]
	if !ok {
		return ""
	}
	s, _ := v.AsString()
	return s
}
