package models

import (
	"sort"
	"time"
)

// RepoRef identifies a repository on the hosting provider.
type RepoRef struct {
	Owner string `json:"owner"`
	Name  string `json:"name"`
}

func (r RepoRef) String() string {
	return r.Owner + "/" + r.Name
}

// Repo is the repository record as returned by GET /repos/{owner}/{repo}.
type Repo struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	FullName      string    `json:"full_name"`
	Description   *string   `json:"description"`
	HTMLURL       string    `json:"html_url"`
	CloneURL      string    `json:"clone_url"`
	Language      *string   `json:"language"`
	LanguagesURL  string    `json:"languages_url"`
	Stars         int       `json:"stargazers_count"`
	Forks         int       `json:"forks_count"`
	OpenIssues    int       `json:"open_issues_count"`
	License       *License  `json:"license"`
	Topics        []string  `json:"topics"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	DefaultBranch string    `json:"default_branch"`
	Owner         Owner     `json:"owner"`
}

type License struct {
	Key    string `json:"key"`
	Name   string `json:"name"`
	SPDXID string `json:"spdx_id"`
}

type Owner struct {
	Login   string `json:"login"`
	HTMLURL string `json:"html_url"`
}

// Languages maps a language name to the number of bytes written in it.
type Languages map[string]int64

// Top returns up to n language names ordered by descending byte count.
// Equal counts are ordered by name. n <= 0 returns every language.
func (l Languages) Top(n int) []string {
	names := make([]string, 0, len(l))
	for name := range l {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if l[names[i]] != l[names[j]] {
			return l[names[i]] > l[names[j]]
		}
		return names[i] < names[j]
	})
	if n > 0 && len(names) > n {
		names = names[:n]
	}
	return names
}

// ContentEntry is one item of a repository's top-level content listing.
type ContentEntry struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Path string `json:"path"`
}

const (
	ContentTypeFile = "file"
	ContentTypeDir  = "dir"
)

func (c ContentEntry) IsDir() bool {
	return c.Type == ContentTypeDir
}

// GeneratedContent is the model-written part of a README.
type GeneratedContent struct {
	Description  string   `json:"description"`
	Features     []string `json:"features"`
	Usage        string   `json:"usage"`
	Installation string   `json:"installation"`
}
