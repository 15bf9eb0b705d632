// Package ai wraps the external text-generation service. Callers receive an
// explicit Completion instead of an error so every failure branch can be
// inspected and simulated.
package ai

import (
	"context"
	"errors"
	"strings"
)

// FailureReason classifies why no usable text was obtained.
type FailureReason string

const (
	FailureNone      FailureReason = ""
	FailureDisabled  FailureReason = "disabled"
	FailureTimeout   FailureReason = "timeout"
	FailureCanceled  FailureReason = "canceled"
	FailureTransport FailureReason = "transport"
	FailureEmpty     FailureReason = "empty_response"
)

// Completion is the outcome of a single generation attempt.
type Completion struct {
	Text   string
	Reason FailureReason
	Err    error
}

// Usable reports whether the attempt produced non-blank text.
func (c Completion) Usable() bool {
	return c.Reason == FailureNone && strings.TrimSpace(c.Text) != ""
}

// Generator turns a prompt into a Completion. Implementations make at most one
// upstream call, never retry, and should return promptly once ctx is done.
// Callers must not rely on that: the summarizer stops waiting at its deadline
// whether or not Complete has returned.
type Generator interface {
	Complete(ctx context.Context, prompt string) Completion
}

// Succeeded builds a completion from response text, demoting blank text to FailureEmpty.
func Succeeded(text string) Completion {
	if strings.TrimSpace(text) == "" {
		return Completion{Reason: FailureEmpty}
	}
	return Completion{Text: text}
}

// Failed classifies err into a failure completion.
func Failed(err error) Completion {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return Completion{Reason: FailureTimeout, Err: err}
	case errors.Is(err, context.Canceled):
		return Completion{Reason: FailureCanceled, Err: err}
	default:
		return Completion{Reason: FailureTransport, Err: err}
	}
}

// Disabled is the generator used when no API key is configured.
type Disabled struct{}

func (Disabled) Complete(ctx context.Context, prompt string) Completion {
	return Completion{Reason: FailureDisabled}
}
