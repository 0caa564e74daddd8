// Package display renders records, statistics, and session analytics as
// terminal panels. It is a thin presentation layer: everything it shows is
// computed elsewhere.
package display

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/strrl/stance/internal/history"
	"github.com/strrl/stance/internal/insights"
	"github.com/strrl/stance/internal/schema"
)

var actionIcons = map[schema.ActionType]string{
	schema.ActionCognitiveShift:       "🧠",
	schema.ActionState:                "⚡",
	schema.ActionVisual:               "🎨",
	schema.ActionSequence:             "🎬",
	schema.ActionExperienceAdaptation: "📚",
	schema.ActionProcessingStyle:      "⚙️",
	schema.ActionFocusAdjustment:      "🎯",
}

var intentExplanations = map[string]string{
	"seek_clarity":          "You're asking for clearer understanding or explanation",
	"explore_concepts":      "You want to discover and learn new ideas",
	"solve_problem":         "You need help finding a solution to a challenge",
	"find_information":      "You're looking for specific facts or data",
	"get_guidance":          "You want advice or direction on how to proceed",
	"challenge_assumptions": "You're questioning existing ideas or beliefs",
	"analysis_request":      "You want something analyzed or evaluated",
	"exploration_request":   "You're interested in exploring possibilities",
	"creation_request":      "You want to build or create something",
	"general_assistance":    "You need general help or support",
}

// QueryPanel echoes the user's question above the record panel.
func QueryPanel(query string) string {
	return queryPanelStyle.Render(titleStyle.Render("👤 Your Question") + "\n" + query)
}

// RecordPanel renders one record. Border color tracks processing latency;
// any fallback tier overrides it with bright red.
func RecordPanel(rec *schema.Record, latency time.Duration) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("%s %s | Intent: %s", rec.Emoji, rec.Persona, rec.Intent)))
	b.WriteString("\n\n")
	b.WriteString(responseStyle.Render(rec.Response))
	b.WriteString("\n\n")

	if explanation, ok := intentExplanations[rec.Intent]; ok {
		b.WriteString("🎯 Intent Detection: " + dimStyle.Render(explanation) + "\n\n")
	}

	b.WriteString(emotionLine(rec.Emotion))
	b.WriteString("\n\n")
	b.WriteString(behaviorLines(rec.Behavior))
	b.WriteString("\n")
	b.WriteString(actionLines(rec.Behavior.Actions))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("📊 Confidence: %.2f %s\n", rec.Confidence, confidenceLabel(rec.Confidence)))
	b.WriteString(fmt.Sprintf("⏱️  Processing: %.2fs", latency.Seconds()))

	if fallbackType := rec.FallbackType(); fallbackType != "" {
		b.WriteString("\n🛡️  Fallback Mode: " + warnStyle.Render(fallbackType))
	}

	return recordPanelStyle.BorderForeground(borderColor(rec, latency)).Render(b.String())
}

func borderColor(rec *schema.Record, latency time.Duration) lipgloss.Color {
	if rec.FallbackType() != "" || rec.Intent == "connection_error" {
		return fallbackColor
	}
	switch {
	case latency > 10*time.Second:
		return verySlowColor
	case latency > 5*time.Second:
		return slowColor
	case latency > 2*time.Second:
		return normalColor
	default:
		return fastColor
	}
}

func emotionLine(e schema.EmotionalState) string {
	label := titleWords(e.Primary)
	if e.Secondary != "" {
		label += " + " + titleWords(e.Secondary)
	}
	metrics := fmt.Sprintf("Intensity:%.2f Mood:%.2f Energy:%.2f", e.Intensity, e.Valence, e.Arousal)
	if e.Stability != nil {
		metrics += fmt.Sprintf(" Stability:%.2f", *e.Stability)
	}
	return fmt.Sprintf("🎭 Emotional State: %s (%s)", titleStyle.Render(label), dimStyle.Render(metrics))
}

func behaviorLines(b schema.Behavior) string {
	var sb strings.Builder
	sb.WriteString("🧠 Cognitive Approach: " + titleStyle.Render(strings.ToUpper(string(b.Name))))
	if b.Goal != "" {
		sb.WriteString("\n   Goal: " + b.Goal)
	}
	if explanation, ok := schema.ValidBehaviors[b.Name]; ok {
		sb.WriteString("\n   " + dimStyle.Render(explanation))
	}
	return sb.String()
}

func actionLines(actions []schema.Action) string {
	var sb strings.Builder
	sb.WriteString("⚙️  Cognitive Actions:")
	for _, action := range actions {
		icon := actionIcons[action.Type]
		if icon == "" {
			icon = "•"
		}
		label := titleWords(strings.ReplaceAll(string(action.Type), "_", " "))
		sb.WriteString(fmt.Sprintf("\n   %s %s", icon, label))
		if action.Target != "" {
			sb.WriteString(" → " + action.Target)
		}
		if action.Value != "" {
			sb.WriteString(" = " + action.Value)
		}
		if explanation, ok := schema.ValidActionTypes[action.Type]; ok {
			sb.WriteString(" " + dimStyle.Render("("+explanation+")"))
		}
	}
	return sb.String()
}

func titleWords(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func confidenceLabel(confidence float64) string {
	switch {
	case confidence > 0.9:
		return "(Very High - Extremely certain)"
	case confidence > 0.8:
		return "(High - Very confident)"
	case confidence > 0.7:
		return "(Good - Reasonably confident)"
	case confidence > 0.6:
		return "(Medium - Somewhat uncertain)"
	case confidence > 0.5:
		return "(Low - Limited confidence)"
	default:
		return "(Very Low - High uncertainty)"
	}
}

// StatsTable renders the rolling performance counters.
func StatsTable(stats history.Stats) string {
	rows := [][2]string{
		{"Total Requests", fmt.Sprintf("%d", stats.TotalRequests)},
		{"Successful Parses", fmt.Sprintf("%d", stats.SuccessfulParses)},
		{"Fallbacks Used", fmt.Sprintf("%d", stats.FallbacksUsed)},
		{"Success Rate", fmt.Sprintf("%.1f%%", stats.SuccessRate()*100)},
		{"Avg Confidence", fmt.Sprintf("%.2f", stats.AvgConfidence)},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("🔍 Performance Statistics") + "\n")
	for _, row := range rows {
		b.WriteString(headerCellStyle.Width(20).Render(row[0]) + cellStyle.Render(row[1]) + "\n")
	}
	return guidePanelStyle.Render(strings.TrimRight(b.String(), "\n"))
}

// Guide explains the record anatomy; shown for the first few interactions.
func Guide() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("📖 Understanding the Cognitive Stance Output") + "\n\n")
	b.WriteString(titleStyle.Render("What You're Seeing:") + "\n")
	b.WriteString("• Persona: the chosen cognitive role for this task\n")
	for _, p := range []schema.Persona{schema.PersonaStrategist, schema.PersonaArchitect,
		schema.PersonaBuilder, schema.PersonaExplorer, schema.PersonaSage} {
		b.WriteString(dimStyle.Render(fmt.Sprintf("    %s: %s", p, schema.ValidPersonas[p])) + "\n")
	}
	b.WriteString("• Intent Detection: what the model thinks you're trying to accomplish\n")
	b.WriteString("• Emotional State: the model's emotional approach to your question\n")
	b.WriteString(dimStyle.Render("    Intensity: engagement (0 detached, 1 very engaged); "+
		"Mood: -1 negative to +1 positive; Energy: 0 calm to 1 high") + "\n")
	b.WriteString("• Cognitive Approach: how the model decides to think about the question\n")
	b.WriteString("• Actions: specific mental processes in use\n")
	b.WriteString("• Confidence: certainty about approach and answer\n\n")
	b.WriteString(titleStyle.Render("Border Colors:") + "\n")
	b.WriteString("green < 2s, cyan 2-5s, yellow 5-10s, red > 10s, bright red = fallback mode")
	return guidePanelStyle.Render(b.String())
}

// ConnectionHelp names the remediation steps when the daemon is unreachable.
func ConnectionHelp() string {
	var b strings.Builder
	b.WriteString(errorStyle.Render("❌ Ollama not detected!") + "\n")
	b.WriteString("Please ensure Ollama is running:\n")
	b.WriteString("1. Install: curl -fsSL https://ollama.ai/install.sh | sh\n")
	b.WriteString("2. Start: ollama serve\n")
	b.WriteString("3. Pull model: ollama pull mistral-small3.2:latest")
	return guidePanelStyle.BorderForeground(verySlowColor).Render(b.String())
}

// InsightsReport renders the DuckDB session analytics.
func InsightsReport(summary *insights.Summary) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("📈 Session Insights") + "\n\n")
	b.WriteString(fmt.Sprintf("Requests: %d   Success Rate: %.1f%%\n\n",
		summary.TotalRequests, summary.SuccessRate*100))

	b.WriteString(titleStyle.Render("Personas") + "\n")
	for _, row := range summary.Personas {
		b.WriteString(fmt.Sprintf("  %-12s %3d  avg confidence %.2f\n", row.Persona, row.Count, row.AvgConfidence))
	}

	b.WriteString("\n" + titleStyle.Render("Resolution Tiers") + "\n")
	for _, row := range summary.Tiers {
		b.WriteString(fmt.Sprintf("  %-22s %3d\n", row.Tier, row.Count))
	}

	b.WriteString("\n" + titleStyle.Render("Latency (ms)") + "\n")
	b.WriteString(fmt.Sprintf("  p50 %.0f   p95 %.0f   max %.0f", summary.Latency.P50, summary.Latency.P95, summary.Latency.Max))

	return guidePanelStyle.Render(b.String())
}
