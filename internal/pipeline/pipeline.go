// Package pipeline orchestrates the normalization cascade: probe the model
// endpoint, dispatch the query, then validate, partially reconstruct, or
// heuristically synthesize until exactly one valid record exists, recording
// the outcome either way.
package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/strrl/stance/internal/fallback"
	"github.com/strrl/stance/internal/history"
	"github.com/strrl/stance/internal/ollama"
	"github.com/strrl/stance/internal/schema"
)

// Personas of this many recent exchanges are injected into the next request.
const contextPersonaWindow = 3

type state int

const (
	stateIdle state = iota
	stateConnectivityChecked
	stateDispatched
	stateValidated
	statePartiallyRecovered
	stateSynthesized
	stateRecorded
)

func (s state) String() string {
	switch s {
	case stateIdle:
		return "idle"
	case stateConnectivityChecked:
		return "connectivity_checked"
	case stateDispatched:
		return "dispatched"
	case stateValidated:
		return "validated"
	case statePartiallyRecovered:
		return "partially_recovered"
	case stateSynthesized:
		return "synthesized"
	case stateRecorded:
		return "recorded"
	default:
		return "unknown"
	}
}

// Pipeline is the single-threaded controller. It owns the interaction log
// exclusively; callers read projections through Stats and Entries.
type Pipeline struct {
	client  *ollama.Client
	history *history.Log
	logger  zerolog.Logger
}

// Result is what one full cycle produces: the record, how long resolution
// took, and which tier resolved it.
type Result struct {
	Record  *schema.Record
	Latency time.Duration
	Tier    history.Tier
}

func New(client *ollama.Client, logger zerolog.Logger) *Pipeline {
	return &Pipeline{
		client:  client,
		history: history.NewLog(),
		logger:  logger.With().Str("component", "pipeline").Logger(),
	}
}

// cycle carries one query through the state transitions.
type cycle struct {
	query      string
	start      time.Time
	content    string
	record     *schema.Record
	tier       history.Tier
	diagnostic string
}

// Process runs one query through the cascade. The returned error is always
// nil: every failure mode is absorbed into a clearly marked fallback record.
// The signature leaves room for caller-visible display errors later.
func (p *Pipeline) Process(ctx context.Context, query string) (Result, error) {
	c := &cycle{query: query, start: time.Now()}

	st := stateIdle
	for st != stateRecorded {
		next := p.step(ctx, st, c)
		p.logger.Debug().Str("from", st.String()).Str("to", next.String()).Msg("transition")
		st = next
	}

	latency := time.Since(c.start)
	entry := p.history.Record(history.Entry{
		Query:      query,
		Persona:    c.record.Persona,
		Behavior:   c.record.Behavior.Name,
		Confidence: c.record.Confidence,
		Latency:    latency,
		Success:    c.tier == history.TierValidated,
		Tier:       c.tier,
	})

	p.logger.Info().
		Str("entry", entry.ID).
		Str("tier", string(c.tier)).
		Str("persona", string(c.record.Persona)).
		Float64("confidence", c.record.Confidence).
		Dur("latency", latency).
		Msg("query resolved")

	return Result{Record: c.record, Latency: latency, Tier: c.tier}, nil
}

// step performs exactly one transition. Transitions are single-directional:
// a cycle only ever moves toward stateRecorded.
func (p *Pipeline) step(ctx context.Context, st state, c *cycle) state {
	switch st {
	case stateIdle:
		if !p.client.Ping(ctx) {
			p.logger.Warn().Str("query", c.query).Msg("model endpoint unreachable")
			c.record = fallback.ConnectionError(c.query)
			c.tier = history.TierConnection
			return stateSynthesized
		}
		return stateConnectivityChecked

	case stateConnectivityChecked:
		messages := BuildMessages(c.query, "", p.history.RecentPersonas(contextPersonaWindow))
		content, err := p.client.Chat(ctx, messages)
		if err != nil {
			c.diagnostic = err.Error()
			p.logger.Warn().Err(err).Msg("dispatch failed")
			return stateSynthesized
		}
		c.content = content
		return stateDispatched

	case stateDispatched:
		payload := ollama.ExtractJSON(c.content)
		record, err := schema.ParseStrict(payload)
		if err == nil {
			c.record = record
			return stateValidated
		}

		var violation *schema.Violation
		if errors.As(err, &violation) {
			p.logger.Debug().Str("field", violation.Field).Str("reason", violation.Reason).
				Msg("strict validation failed, trying partial extraction")
			var data map[string]any
			if jsonErr := json.Unmarshal([]byte(payload), &data); jsonErr == nil {
				c.record = fallback.Reconstruct(data, c.query)
				return statePartiallyRecovered
			}
		}
		c.diagnostic = fmt.Sprintf("JSON parsing failed: %v", err)
		return stateSynthesized

	case stateValidated:
		c.tier = history.TierValidated
		return stateRecorded

	case statePartiallyRecovered:
		c.tier = history.TierPartial
		return stateRecorded

	case stateSynthesized:
		// The connectivity path arrives here with its record already built.
		if c.record == nil {
			c.record = fallback.Synthesize(c.query, c.diagnostic)
			c.tier = history.TierHeuristic
		}
		return stateRecorded

	default:
		// Unreachable; terminate the cycle rather than spin.
		if c.record == nil {
			c.record = fallback.Synthesize(c.query, "internal state error")
			c.tier = history.TierHeuristic
		}
		return stateRecorded
	}
}

// Stats projects the current performance counters from the log.
func (p *Pipeline) Stats() history.Stats {
	return p.history.Stats()
}

// Entries returns a copy of the interaction log in arrival order.
func (p *Pipeline) Entries() []history.Entry {
	return p.history.Entries()
}
