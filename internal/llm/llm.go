package llm

import (
	"context"
	"errors"
	"strings"

	"github.com/kevinmichaelchen/readme-gen/internal/apperr"
	"github.com/kevinmichaelchen/readme-gen/internal/models"
	openai "github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
)

// Generator produces README content for a repository.
type Generator interface {
	Generate(ctx context.Context, repo models.Repo, languages models.Languages, contents []models.ContentEntry) (*Result, error)
}

// Result is validated generated content. FallbackUsed is set when the model
// reply could not be parsed and Fallback() was substituted.
type Result struct {
	Content      models.GeneratedContent
	FallbackUsed bool
	Raw          string
}

func newResult(log logrus.FieldLogger, repo models.Repo, text string) *Result {
	content, fallback := ParseContent(text)
	entry := log.WithFields(logrus.Fields{
		"repo":                  repo.FullName,
		"content.fallback_used": fallback,
	})
	if fallback {
		entry.Debug("model reply unusable, using fallback content")
	} else {
		entry.Debug("generated content parsed")
	}
	return &Result{Content: content, FallbackUsed: fallback, Raw: text}
}

// OpenAIClient talks to any OpenAI-compatible chat completions endpoint.
type OpenAIClient struct {
	client *openai.Client
	model  string
	log    logrus.FieldLogger
}

func NewOpenAIClient(baseURL, apiKey, model string, log logrus.FieldLogger) *OpenAIClient {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = strings.TrimSuffix(baseURL, "/")
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &OpenAIClient{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
		log:    log,
	}
}

func (c *OpenAIClient) Generate(ctx context.Context, repo models.Repo, languages models.Languages, contents []models.ContentEntry) (*Result, error) {
	prompt := BuildPrompt(repo, languages, contents)

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		// No ResponseFormat: not every compatible backend supports json_object.
		Temperature: 0.3,
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return nil, apperr.Upstream("LLM", apiErr.HTTPStatusCode, apiErr.Message)
		}
		var reqErr *openai.RequestError
		if errors.As(err, &reqErr) {
			return nil, apperr.Upstream("LLM", reqErr.HTTPStatusCode, reqErr.HTTPStatus)
		}
		return nil, apperr.Connectivity(err, msgGenerateFailed)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return nil, apperr.ContentGeneration("Failed to generate content from LLM API")
	}

	return newResult(c.log, repo, resp.Choices[0].Message.Content), nil
}
