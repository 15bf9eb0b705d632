package ai

import (
	"context"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/param"
	"github.com/openai/openai-go/responses"
	"github.com/openai/openai-go/shared"
	"github.com/pkg/errors"
)

const defaultModel = shared.ChatModelGPT4oMini

// Config configures the OpenAI-backed generator.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// OpenAIGenerator calls the Responses API once per prompt.
type OpenAIGenerator struct {
	client  *openai.Client
	model   string
	timeout time.Duration
}

// NewOpenAIGenerator builds a generator with SDK retries turned off, so a slow
// upstream costs at most one call's timeout.
func NewOpenAIGenerator(cfg Config) *OpenAIGenerator {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	model := cfg.Model
	if model == "" {
		model = string(defaultModel)
	}

	client := openai.NewClient(opts...)
	return &OpenAIGenerator{
		client:  &client,
		model:   model,
		timeout: cfg.Timeout,
	}
}

// Complete sends the prompt and returns the response output text.
func (g *OpenAIGenerator) Complete(ctx context.Context, prompt string) Completion {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	params := responses.ResponseNewParams{
		Model: shared.ResponsesModel(g.model),
		Input: responses.ResponseNewParamsInputUnion{
			OfString: param.NewOpt(prompt),
		},
	}

	resp, err := g.client.Responses.New(ctx, params)
	if err != nil {
		// The SDK may wrap the context error; prefer the context's own verdict.
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Failed(errors.Wrap(ctxErr, "openai responses"))
		}
		return Failed(errors.Wrap(err, "openai responses"))
	}
	if resp == nil {
		return Completion{Reason: FailureEmpty}
	}

	return Succeeded(resp.OutputText())
}
