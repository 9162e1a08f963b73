// Package suggest produces AI remediation advice for finished audits.
package suggest

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"go.uber.org/zap"

	"github.com/auditkit/seo-audit/internal/audit"
)

// Fallback is returned whenever suggestions cannot be generated. The
// audit itself is unaffected.
const Fallback = "No suggestions available"

const systemPrompt = `You are an SEO consultant. You receive the result of an automated ` +
	`single-page SEO audit as JSON. Propose concrete fixes ONLY for the checks ` +
	`that have "passed": false. Be brief and actionable. Plain text output.`

// OpenAI implements audit.Suggester using the OpenAI chat API. Without a
// credential it degrades to the fixed fallback string without any call.
type OpenAI struct {
	client  openai.Client
	model   openai.ChatModel
	enabled bool
	logger  *zap.Logger
}

// New builds the suggestion adapter. An empty apiKey disables it. An
// optional baseURL redirects the calls (proxies, tests).
func New(apiKey, model, baseURL string, logger *zap.Logger) *OpenAI {
	s := &OpenAI{logger: logger}
	if apiKey == "" {
		return s
	}
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	s.client = openai.NewClient(opts...)
	s.model = openai.ChatModelGPT4o
	if model != "" {
		s.model = model
	}
	s.enabled = true
	return s
}

// Suggest returns remediation advice for the failed checks, or the
// fallback string on any failure. Errors are logged, never propagated.
func (s *OpenAI) Suggest(ctx context.Context, score int, grade string, categories audit.Categories) string {
	if !s.enabled {
		return Fallback
	}

	payload, err := json.MarshalIndent(categories, "", "  ")
	if err != nil {
		s.logger.Warn("marshal categories for suggestions failed", zap.Error(err))
		return Fallback
	}
	prompt := fmt.Sprintf("SEO score: %d/100 (grade %s)\n\nAudit result:\n%s", score, grade, payload)

	chat, err := s.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(prompt),
		},
		Model: s.model,
	})
	if err != nil {
		s.logger.Warn("suggestion generation failed", zap.Error(err))
		return Fallback
	}
	if len(chat.Choices) == 0 || chat.Choices[0].Message.Content == "" {
		s.logger.Warn("suggestion response empty")
		return Fallback
	}
	return chat.Choices[0].Message.Content
}
