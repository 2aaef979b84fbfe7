package pipeline

import (
	"context"
	"strings"

	"github.com/kevinmichaelchen/readme-gen/internal/apperr"
	"github.com/kevinmichaelchen/readme-gen/internal/github"
	"github.com/kevinmichaelchen/readme-gen/internal/llm"
	"github.com/kevinmichaelchen/readme-gen/internal/models"
	"github.com/kevinmichaelchen/readme-gen/internal/readme"
	"github.com/sirupsen/logrus"
)

// Progress checkpoints, in order.
const (
	StepParse     = "Parsing repository URL..."
	StepRepo      = "Fetching repository data..."
	StepLanguages = "Fetching repository languages..."
	StepContents  = "Fetching repository contents..."
	StepGenerate  = "Generating content with AI..."
	StepRender    = "Creating README..."
	StepComplete  = "Complete!"
)

const (
	msgMissingInput = "Please provide both repository URL and API key"
	msgInvalidURL   = "Invalid GitHub repository URL. Please use format: https://github.com/owner/repo"
)

// Input is what the user supplies for one generation.
type Input struct {
	RepoURL string
	APIKey  string
}

// Reporter receives progress checkpoints.
type Reporter func(step string, percent int)

// GitHubFactory builds a fresh hosting API client for one request.
type GitHubFactory func() *github.Client

// GeneratorFactory builds a fresh content generator for one request.
type GeneratorFactory func(apiKey string) llm.Generator

type Options struct {
	// NewGitHub defaults to an unauthenticated client for api.github.com.
	NewGitHub GitHubFactory
	// NewGenerator defaults to the Gemini REST client.
	NewGenerator GeneratorFactory
	Progress     Reporter
	Logger       logrus.FieldLogger
	Render       []readme.Option
}

func (o Options) withDefaults() Options {
	if o.Logger == nil {
		o.Logger = logrus.StandardLogger()
	}
	if o.NewGitHub == nil {
		log := o.Logger
		o.NewGitHub = func() *github.Client {
			return github.NewClient(github.WithLogger(log))
		}
	}
	if o.NewGenerator == nil {
		log := o.Logger
		o.NewGenerator = func(apiKey string) llm.Generator {
			return llm.NewGeminiClient(apiKey, llm.WithGeminiLogger(log))
		}
	}
	if o.Progress == nil {
		o.Progress = func(string, int) {}
	}
	return o
}

// Result is a completed generation.
type Result struct {
	Ref          models.RepoRef
	Repo         *models.Repo
	Languages    models.Languages
	Contents     []models.ContentEntry
	Generated    models.GeneratedContent
	FallbackUsed bool
	Document     string
}

// Run performs one generation: parse, fetch metadata, generate, render. Steps
// run strictly in sequence. On error no document is returned.
func Run(ctx context.Context, in Input, opts Options) (*Result, error) {
	opts = opts.withDefaults()

	res, err := collect(ctx, in, opts, true)
	if err != nil {
		return nil, err
	}
	log := opts.Logger.WithField("repo", res.Ref.String())

	opts.Progress(StepGenerate, 85)
	gen := opts.NewGenerator(strings.TrimSpace(in.APIKey))
	out, err := gen.Generate(ctx, *res.Repo, res.Languages, res.Contents)
	if err != nil {
		log.WithError(err).WithField("stage", "generate").Debug("generation failed")
		return nil, err
	}
	res.Generated = out.Content
	res.FallbackUsed = out.FallbackUsed

	opts.Progress(StepRender, 95)
	res.Document = readme.Render(readme.Data{
		Repo:      *res.Repo,
		Languages: res.Languages,
		Contents:  res.Contents,
		Generated: res.Generated,
	}, opts.Render...)

	opts.Progress(StepComplete, 100)
	log.WithField("content.fallback_used", res.FallbackUsed).Info("README generated")
	return res, nil
}

// Prompt fetches the repository metadata and returns the prompt that Run
// would send, without calling the generative API. No API key is needed.
func Prompt(ctx context.Context, in Input, opts Options) (string, error) {
	opts = opts.withDefaults()

	res, err := collect(ctx, in, opts, false)
	if err != nil {
		return "", err
	}
	return llm.BuildPrompt(*res.Repo, res.Languages, res.Contents), nil
}

// collect validates input and runs the three metadata fetches. Only the
// repository record is fatal.
func collect(ctx context.Context, in Input, opts Options, needKey bool) (*Result, error) {
	repoURL := strings.TrimSpace(in.RepoURL)
	if repoURL == "" || (needKey && strings.TrimSpace(in.APIKey) == "") {
		return nil, apperr.Validation(msgMissingInput)
	}

	opts.Progress(StepParse, 20)
	ref, ok := github.ParseRepoURL(repoURL)
	if !ok {
		return nil, apperr.Validation(msgInvalidURL)
	}
	log := opts.Logger.WithField("repo", ref.String())
	gh := opts.NewGitHub()

	opts.Progress(StepRepo, 40)
	repo, err := gh.FetchRepository(ctx, ref)
	if err != nil {
		log.WithError(err).WithField("stage", "repository").Debug("fetch failed")
		return nil, err
	}

	opts.Progress(StepLanguages, 60)
	languages := gh.FetchLanguages(ctx, ref)

	opts.Progress(StepContents, 70)
	contents := gh.FetchContents(ctx, ref)

	log.WithFields(logrus.Fields{
		"languages": len(languages),
		"contents":  len(contents),
	}).Debug("metadata collected")

	return &Result{
		Ref:       ref,
		Repo:      repo,
		Languages: languages,
		Contents:  contents,
	}, nil
}
