package github

import (
	"regexp"

	"github.com/kevinmichaelchen/readme-gen/internal/models"
)

var (
	schemePattern = regexp.MustCompile(`(?i)^https?://`)
	gitSuffix     = regexp.MustCompile(`\.git$`)
	repoPatterns  = []*regexp.Regexp{
		regexp.MustCompile(`github\.com/([^/]+)/([^/]+)(?:/.*)?$`),
		regexp.MustCompile(`^([^/]+)/([^/]+)$`),
	}
)

// ParseRepoURL extracts owner and repository name from a GitHub URL or a
// bare "owner/repo" reference. It reports false when neither shape matches.
func ParseRepoURL(s string) (models.RepoRef, bool) {
	clean := schemePattern.ReplaceAllString(s, "")
	clean = gitSuffix.ReplaceAllString(clean, "")

	for _, p := range repoPatterns {
		if m := p.FindStringSubmatch(clean); m != nil {
			return models.RepoRef{Owner: m[1], Name: m[2]}, true
		}
	}
	return models.RepoRef{}, false
}
