package llm

import (
	"fmt"
	"strings"

	"github.com/kevinmichaelchen/readme-gen/internal/models"
)

const promptTemplate = `
Generate professional README content for a GitHub repository with the following information:

Repository: %s
Description: %s
Languages: %s
Files: %s
Topics: %s
Stars: %d
Forks: %d

Please provide the following in JSON format:
{
  "description": "A comprehensive, engaging description of what this project does (2-3 sentences)",
  "features": ["Feature 1", "Feature 2", "Feature 3", "Feature 4", "Feature 5"],
  "usage": "Basic usage instructions with code examples if applicable",
  "installation": "Step-by-step installation instructions"
}

Requirements:
- Description should be professional and highlight the project's value
- Features should be 4-6 key functionalities or benefits
- Usage should include practical examples
- Installation should be clear and complete
- Consider the programming languages and file structure when generating content
- Make it sound professional and production-ready
`

// BuildPrompt renders the generation request for a repository. Languages are
// listed by descending byte count so the prompt is deterministic.
func BuildPrompt(repo models.Repo, languages models.Languages, contents []models.ContentEntry) string {
	description := "No description provided"
	if repo.Description != nil && *repo.Description != "" {
		description = *repo.Description
	}

	files := make([]string, len(contents))
	for i, c := range contents {
		files[i] = c.Name
	}

	return fmt.Sprintf(promptTemplate,
		repo.Name,
		description,
		strings.Join(languages.Top(0), ", "),
		strings.Join(files, ", "),
		strings.Join(repo.Topics, ", "),
		repo.Stars,
		repo.Forks,
	)
}
