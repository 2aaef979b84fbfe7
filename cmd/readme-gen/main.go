package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"
	"github.com/kevinmichaelchen/readme-gen/internal/apperr"
	"github.com/kevinmichaelchen/readme-gen/internal/config"
	"github.com/kevinmichaelchen/readme-gen/internal/github"
	"github.com/kevinmichaelchen/readme-gen/internal/llm"
	"github.com/kevinmichaelchen/readme-gen/internal/logging"
	"github.com/kevinmichaelchen/readme-gen/internal/models"
	"github.com/kevinmichaelchen/readme-gen/internal/pipeline"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:           "readme-gen",
		Short:         "GitHub repository → AI-written README",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.String("api-key", "", "Gemini API key (env GEMINI_API_KEY)")
	pf.String("provider", "", "Generative backend: gemini or openai (env LLM_PROVIDER)")
	pf.String("model", "", "Model for the openai provider (env LLM_MODEL)")
	pf.String("llm-base-url", "", "Base URL for the openai provider (env LLM_BASE_URL)")
	pf.String("llm-api-key", "", "API key for the openai provider (env LLM_API_KEY)")
	pf.String("gemini-endpoint", "", "Gemini generateContent URL (env GEMINI_ENDPOINT)")
	pf.String("github-api-url", "", "GitHub REST base URL (env GITHUB_API_URL)")
	pf.String("github-token", "", "Optional GitHub token (env GITHUB_TOKEN)")
	pf.String("log-level", "", "Log level: debug, info, warn, error (env LOG_LEVEL)")

	root.AddCommand(generateCmd(), batchCmd(), promptCmd())

	if err := root.Execute(); err != nil {
		printError(err)
		os.Exit(apperr.ExitCode(err))
	}
}

// app is the per-invocation wiring shared by every subcommand.
type app struct {
	cfg  *config.Config
	log  *logrus.Logger
	opts pipeline.Options
}

func newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return nil, err
	}
	log := logging.New(os.Stderr, cfg.LogLevel)

	return &app{
		cfg: cfg,
		log: log,
		opts: pipeline.Options{
			NewGitHub:    githubFactory(cfg, log),
			NewGenerator: generatorFactory(cfg, log),
			Logger:       log,
		},
	}, nil
}

func githubFactory(cfg *config.Config, log logrus.FieldLogger) pipeline.GitHubFactory {
	return func() *github.Client {
		return github.NewClient(
			github.WithBaseURL(cfg.GitHubAPIURL),
			github.WithToken(cfg.GitHubToken),
			github.WithLogger(log),
		)
	}
}

// generatorFactory builds a new client per request with the credential it is
// handed.
func generatorFactory(cfg *config.Config, log logrus.FieldLogger) pipeline.GeneratorFactory {
	if cfg.Provider == config.ProviderOpenAI {
		return func(apiKey string) llm.Generator {
			return llm.NewOpenAIClient(cfg.LLMBaseURL, apiKey, cfg.LLMModel, log)
		}
	}
	return func(apiKey string) llm.Generator {
		return llm.NewGeminiClient(apiKey,
			llm.WithEndpoint(cfg.GeminiEndpoint),
			llm.WithGeminiLogger(log),
		)
	}
}

func withTimeout(timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout > 0 {
		return context.WithTimeout(context.Background(), timeout)
	}
	return context.WithCancel(context.Background())
}

func generateCmd() *cobra.Command {
	var (
		output  string
		copyOut bool
		preview bool
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "generate [repo]",
		Short: "Generate a README for a GitHub repository",
		Example: `  readme-gen generate https://github.com/acme/widget
  readme-gen generate acme/widget --copy -o README.md`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := withTimeout(timeout)
			defer cancel()

			opts := a.opts
			opts.Progress = newProgress(os.Stderr).Report

			res, err := pipeline.Run(ctx, pipeline.Input{RepoURL: args[0], APIKey: a.cfg.APIKey()}, opts)
			if err != nil {
				return err
			}
			if res.FallbackUsed {
				a.log.WithField("repo", res.Ref.String()).Info("model reply could not be parsed; generic content was used")
			}

			if err := emit(os.Stdout, res.Document, output, preview); err != nil {
				return err
			}

			if copyOut {
				if err := clipboard.WriteAll(res.Document); err != nil {
					a.log.WithError(err).Warn("could not copy README to clipboard")
				} else {
					color.New(color.FgGreen).Fprintln(os.Stderr, "✓ Copied to clipboard")
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the README to this file instead of stdout")
	cmd.Flags().BoolVar(&copyOut, "copy", false, "Copy the README to the system clipboard")
	cmd.Flags().BoolVar(&preview, "preview", false, "Render the README in the terminal")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "Abort after this long (0 = no limit)")
	return cmd
}

func batchCmd() *cobra.Command {
	var (
		outDir      string
		concurrency int
		timeout     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "batch [repo...]",
		Short: "Generate READMEs for several repositories",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := withTimeout(timeout)
			defer cancel()

			inputs := make([]pipeline.Input, len(args))
			for i, arg := range args {
				inputs[i] = pipeline.Input{RepoURL: arg, APIKey: a.cfg.APIKey()}
			}

			opts := a.opts
			opts.Progress = newProgress(os.Stderr).Report

			var failed int
			for _, r := range pipeline.RunBatch(ctx, inputs, concurrency, opts) {
				if r.Err != nil {
					failed++
					color.New(color.FgRed).Fprintf(os.Stderr, "✗ %s: %s\n", r.RepoURL, apperr.UserMessage(r.Err))
					continue
				}
				path := batchPath(outDir, r.Result.Ref)
				if err := writeFile(path, r.Result.Document); err != nil {
					failed++
					color.New(color.FgRed).Fprintf(os.Stderr, "✗ %s: %v\n", r.RepoURL, err)
					continue
				}
				color.New(color.FgGreen).Fprintf(os.Stderr, "✓ %s → %s\n", r.RepoURL, path)
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d repositories failed", failed, len(args))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&outDir, "out-dir", "readmes", "Directory to write <owner>/<repo>/README.md into")
	cmd.Flags().IntVarP(&concurrency, "concurrency", "c", 3, "Repositories processed at once")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "Abort after this long (0 = no limit)")
	return cmd
}

func promptCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prompt [repo]",
		Short: "Print the prompt that would be sent for a repository",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			prompt, err := pipeline.Prompt(context.Background(), pipeline.Input{RepoURL: args[0]}, a.opts)
			if err != nil {
				return err
			}
			fmt.Println(prompt)
			return nil
		},
	}
}

// batchPath is where the batch command writes the README for ref.
func batchPath(outDir string, ref models.RepoRef) string {
	return filepath.Join(outDir, ref.Owner, ref.Name, "README.md")
}

// emit writes doc to output when set and renders it to w when preview is set.
// With neither, the raw Markdown goes to w.
func emit(w io.Writer, doc, output string, preview bool) error {
	if preview {
		r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
		if err != nil {
			return fmt.Errorf("creating preview renderer: %w", err)
		}
		out, err := r.Render(doc)
		if err != nil {
			return fmt.Errorf("rendering preview: %w", err)
		}
		fmt.Fprint(w, out)
	}

	if output != "" {
		if err := writeFile(output, doc); err != nil {
			return err
		}
		color.New(color.FgGreen).Fprintf(os.Stderr, "✓ Wrote %s\n", output)
		return nil
	}
	if !preview {
		fmt.Fprint(w, doc)
	}
	return nil
}

func writeFile(path, content string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// printError shows the classified message when there is one, otherwise the
// raw error (flag parsing, config, file output).
func printError(err error) {
	red := color.New(color.FgRed, color.Bold)
	var ae *apperr.Error
	if errors.As(err, &ae) {
		red.Fprintf(os.Stderr, "Error: %s\n", ae.Message)
		return
	}
	red.Fprintf(os.Stderr, "Error: %v\n", err)
}
