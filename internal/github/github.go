package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/kevinmichaelchen/readme-gen/internal/apperr"
	"github.com/kevinmichaelchen/readme-gen/internal/models"
	"github.com/sirupsen/logrus"
)

const DefaultBaseURL = "https://api.github.com"

const (
	msgNotFound     = "Repository not found. Please check the URL and try again."
	msgConnectivity = "Failed to fetch repository data. Please check your internet connection."
)

// Client is a thin wrapper around the GitHub REST API. Requests are
// unauthenticated unless a token is configured.
type Client struct {
	baseURL    string
	token      string
	userAgent  string
	httpClient *http.Client
	log        logrus.FieldLogger
}

type Option func(*Client)

func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = strings.TrimSuffix(u, "/")
		}
	}
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		userAgent:  "readme-gen",
		httpClient: http.DefaultClient,
		log:        logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchRepository returns the repository record. Its absence is fatal, so
// every failure is classified for the user.
func (c *Client) FetchRepository(ctx context.Context, ref models.RepoRef) (*models.Repo, error) {
	resp, err := c.get(ctx, repoPath(ref))
	if err != nil {
		return nil, apperr.Connectivity(err, msgConnectivity)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return nil, apperr.NotFound(msgNotFound)
	}
	if !isSuccess(resp.StatusCode) {
		return nil, apperr.Upstream("GitHub", resp.StatusCode, apperr.StatusText(resp))
	}

	var repo models.Repo
	if err := json.NewDecoder(resp.Body).Decode(&repo); err != nil {
		return nil, apperr.Connectivity(fmt.Errorf("decoding repository: %w", err), msgConnectivity)
	}
	return &repo, nil
}

// FetchLanguages returns the language breakdown. It never fails: any error
// yields an empty map.
func (c *Client) FetchLanguages(ctx context.Context, ref models.RepoRef) models.Languages {
	body, err := c.getBestEffort(ctx, repoPath(ref)+"/languages")
	if err != nil {
		c.log.WithError(err).WithField("repo", ref.String()).Debug("languages unavailable")
		return models.Languages{}
	}

	langs := models.Languages{}
	if err := json.Unmarshal(body, &langs); err != nil {
		c.log.WithError(err).WithField("repo", ref.String()).Debug("languages unavailable")
		return models.Languages{}
	}
	return langs
}

// FetchContents returns the top-level content listing. It never fails: any
// error, or a body that is not a JSON array, yields an empty slice.
func (c *Client) FetchContents(ctx context.Context, ref models.RepoRef) []models.ContentEntry {
	body, err := c.getBestEffort(ctx, repoPath(ref)+"/contents")
	if err != nil {
		c.log.WithError(err).WithField("repo", ref.String()).Debug("contents unavailable")
		return []models.ContentEntry{}
	}

	var entries []models.ContentEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		// A single file object, or anything else that isn't a listing.
		c.log.WithError(err).WithField("repo", ref.String()).Debug("contents unavailable")
		return []models.ContentEntry{}
	}
	if entries == nil {
		entries = []models.ContentEntry{}
	}
	return entries
}

// --- internal ---

func repoPath(ref models.RepoRef) string {
	return fmt.Sprintf("/repos/%s/%s", ref.Owner, ref.Name)
}

func isSuccess(code int) bool {
	return code >= 200 && code < 300
}

func (c *Client) get(ctx context.Context, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	c.log.WithField("url", req.URL.String()).Debug("GET")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	return resp, nil
}

func (c *Client) getBestEffort(ctx context.Context, path string) ([]byte, error) {
	resp, err := c.get(ctx, path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if !isSuccess(resp.StatusCode) {
		return nil, fmt.Errorf("GitHub API returned %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	return body, nil
}
