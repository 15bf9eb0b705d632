// Package summary produces the narrative inventory report. It asks the text
// generator once and falls back to a locally rendered report on any failure.
package summary

import (
	"context"
	"fmt"
	"time"

	"github.com/andresuchdata/aurora-inventory/backend-go/internal/ai"
	"github.com/andresuchdata/aurora-inventory/backend-go/internal/domain"
	"github.com/andresuchdata/aurora-inventory/backend-go/internal/inventory"
	"github.com/rs/zerolog/log"
)

// Source tells the caller how the summary text was produced.
type Source string

const (
	SourceGenerated Source = "generated"
	SourceFallback  Source = "fallback"
)

const (
	DefaultPromptLimit = 30
	DefaultTimeout     = 20 * time.Second
)

// Result is the summary handed to the presentation layer.
type Result struct {
	Text   string `json:"text"`
	Source Source `json:"source"`
}

// Recorder observes summary outcomes. A nil Recorder is allowed.
type Recorder interface {
	RecordSummary(source string, reason string, elapsed time.Duration)
}

type Summarizer struct {
	generator   ai.Generator
	promptLimit int
	timeout     time.Duration
	recorder    Recorder
}

type Option func(*Summarizer)

func WithPromptLimit(n int) Option {
	return func(s *Summarizer) {
		if n > 0 {
			s.promptLimit = n
		}
	}
}

func WithTimeout(d time.Duration) Option {
	return func(s *Summarizer) {
		if d > 0 {
			s.timeout = d
		}
	}
}

func WithRecorder(r Recorder) Option {
	return func(s *Summarizer) { s.recorder = r }
}

func NewSummarizer(generator ai.Generator, opts ...Option) *Summarizer {
	if generator == nil {
		generator = ai.Disabled{}
	}
	s := &Summarizer{
		generator:   generator,
		promptLimit: DefaultPromptLimit,
		timeout:     DefaultTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Summarize never fails. records is the full unfiltered health dataset; sel
// only shapes the prompt context.
func (s *Summarizer) Summarize(ctx context.Context, records []domain.InventoryHealthRecord, sel domain.Selection) Result {
	start := time.Now()

	if len(records) == 0 {
		s.record(SourceFallback, "no_data", start)
		return Result{Text: noDataText, Source: SourceFallback}
	}

	completion := s.attempt(ctx, records, sel)
	if completion.Usable() {
		s.record(SourceGenerated, "", start)
		return Result{Text: completion.Text, Source: SourceGenerated}
	}

	log.Warn().
		Err(completion.Err).
		Str("reason", string(completion.Reason)).
		Msg("summary: generation unavailable, using fallback")

	text := Fallback(records)
	s.record(SourceFallback, string(completion.Reason), start)
	return Result{Text: text, Source: SourceFallback}
}

func (s *Summarizer) attempt(ctx context.Context, records []domain.InventoryHealthRecord, sel domain.Selection) (completion ai.Completion) {
	defer recoverCompletion(&completion)

	top, err := inventory.TopRisk(records, s.promptLimit)
	if err != nil {
		return ai.Failed(err)
	}
	prompt := buildPrompt(top, sel)

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	// The deadline holds even for a generator that ignores ctx; a late
	// completion lands in the buffered channel and is dropped.
	done := make(chan ai.Completion, 1)
	go func() {
		done <- s.complete(ctx, prompt)
	}()

	select {
	case completion = <-done:
	case <-ctx.Done():
		return ai.Failed(ctx.Err())
	}

	if !completion.Usable() && completion.Reason == ai.FailureNone {
		completion.Reason = ai.FailureEmpty
	}
	return completion
}

func (s *Summarizer) complete(ctx context.Context, prompt string) (completion ai.Completion) {
	defer recoverCompletion(&completion)
	return s.generator.Complete(ctx, prompt)
}

func recoverCompletion(completion *ai.Completion) {
	if r := recover(); r != nil {
		*completion = ai.Failed(fmt.Errorf("generator panic: %v", r))
	}
}

func (s *Summarizer) record(source Source, reason string, start time.Time) {
	if s.recorder == nil {
		return
	}
	s.recorder.RecordSummary(string(source), reason, time.Since(start))
}
