package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/kevinmichaelchen/readme-gen/internal/apperr"
	"github.com/kevinmichaelchen/readme-gen/internal/models"
	"github.com/sirupsen/logrus"
)

const DefaultGeminiEndpoint = "https://generativelanguage.googleapis.com/v1beta/models/gemini-1.5-flash-latest:generateContent"

const (
	msgGenerateFailed = "Failed to generate content. Please check your API key and try again."
	msgNoText         = "Failed to generate content from Gemini API"
)

// GeminiClient calls the Gemini generateContent REST endpoint. The API key is
// sent as the "key" query parameter.
type GeminiClient struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
	log        logrus.FieldLogger
}

type GeminiOption func(*GeminiClient)

func WithEndpoint(endpoint string) GeminiOption {
	return func(c *GeminiClient) {
		if endpoint != "" {
			c.endpoint = endpoint
		}
	}
}

func WithGeminiHTTPClient(hc *http.Client) GeminiOption {
	return func(c *GeminiClient) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

func WithGeminiLogger(l logrus.FieldLogger) GeminiOption {
	return func(c *GeminiClient) {
		if l != nil {
			c.log = l
		}
	}
}

func NewGeminiClient(apiKey string, opts ...GeminiOption) *GeminiClient {
	c := &GeminiClient{
		apiKey:     apiKey,
		endpoint:   DefaultGeminiEndpoint,
		httpClient: http.DefaultClient,
		log:        logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

func (r geminiResponse) text() string {
	if len(r.Candidates) == 0 || len(r.Candidates[0].Content.Parts) == 0 {
		return ""
	}
	return r.Candidates[0].Content.Parts[0].Text
}

func (c *GeminiClient) Generate(ctx context.Context, repo models.Repo, languages models.Languages, contents []models.ContentEntry) (*Result, error) {
	prompt := BuildPrompt(repo, languages, contents)

	text, err := c.complete(ctx, prompt)
	if err != nil {
		return nil, err
	}
	return newResult(c.log, repo, text), nil
}

func (c *GeminiClient) complete(ctx context.Context, prompt string) (string, error) {
	reqBody, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	})
	if err != nil {
		return "", apperr.Wrap(err, apperr.KindInternal, msgGenerateFailed)
	}

	u, err := url.Parse(c.endpoint)
	if err != nil {
		return "", apperr.Wrap(fmt.Errorf("parsing endpoint: %w", err), apperr.KindInternal, msgGenerateFailed)
	}
	q := u.Query()
	q.Set("key", c.apiKey)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), bytes.NewReader(reqBody))
	if err != nil {
		return "", apperr.Wrap(fmt.Errorf("creating request: %w", err), apperr.KindInternal, msgGenerateFailed)
	}
	req.Header.Set("Content-Type", "application/json")

	c.log.WithField("endpoint", c.endpoint).Debug("POST generateContent")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", apperr.Connectivity(fmt.Errorf("executing request: %w", err), msgGenerateFailed)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", apperr.Upstream("Gemini", resp.StatusCode, apperr.StatusText(resp))
	}

	var gr geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&gr); err != nil {
		return "", apperr.Connectivity(fmt.Errorf("decoding response: %w", err), msgGenerateFailed)
	}

	text := gr.text()
	if text == "" {
		return "", apperr.ContentGeneration(msgNoText)
	}
	return text, nil
}
