package readme_test

import (
	"strings"
	"testing"
	"time"

	"github.com/kevinmichaelchen/readme-gen/internal/models"
	"github.com/kevinmichaelchen/readme-gen/internal/readme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

func widgetData() readme.Data {
	return readme.Data{
		Repo: models.Repo{
			Name:      "widget",
			FullName:  "acme/widget",
			HTMLURL:   "https://github.com/acme/widget",
			CreatedAt: time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC),
			UpdatedAt: time.Date(2025, 11, 20, 23, 30, 0, 0, time.UTC),
			Owner:     models.Owner{Login: "acme", HTMLURL: "https://github.com/acme"},
		},
		Languages: models.Languages{"TypeScript": 1000, "CSS": 200},
		Contents: []models.ContentEntry{
			{Name: "src", Type: "dir", Path: "src"},
			{Name: "package.json", Type: "file", Path: "package.json"},
		},
		Generated: models.GeneratedContent{
			Description:  "Widget renders widgets.",
			Features:     []string{"Fast rendering", "Tiny bundle"},
			Usage:        "widget --help",
			Installation: "Run the installer.",
		},
	}
}

// headings returns the text of every heading in doc, in order.
func headings(t *testing.T, doc string) []string {
	t.Helper()
	src := []byte(doc)
	root := goldmark.New().Parser().Parse(text.NewReader(src))

	var out []string
	err := gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		h, ok := n.(*gmast.Heading)
		if !ok || !entering {
			return gmast.WalkContinue, nil
		}
		var b strings.Builder
		for c := h.FirstChild(); c != nil; c = c.NextSibling() {
			if tx, ok := c.(*gmast.Text); ok {
				b.Write(tx.Segment.Value(src))
			}
		}
		out = append(out, b.String())
		return gmast.WalkSkipChildren, nil
	})
	require.NoError(t, err)
	return out
}

// section returns the body between "## <title>" and the next "## ".
func section(t *testing.T, doc, title string) string {
	t.Helper()
	marker := "## " + title + "\n\n"
	i := strings.Index(doc, marker)
	require.NotEqual(t, -1, i, "missing section %q", title)
	body := doc[i+len(marker):]
	if j := strings.Index(body, "\n## "); j != -1 {
		body = body[:j]
	}
	return strings.TrimSpace(body)
}

func TestRenderStructure(t *testing.T) {
	t.Parallel()

	doc := readme.Render(widgetData(), readme.WithLocation(time.UTC))

	assert.Equal(t, []string{
		"widget",
		"✨ Features",
		"🚀 Installation",
		"📖 Usage",
		"🛠️ Tech Stack",
		"📁 Project Structure",
		"🤝 Contributing",
		"📄 License",
		"⭐ Support",
	}, headings(t, doc))
}

func TestRenderWidgetExample(t *testing.T) {
	t.Parallel()

	doc := readme.Render(widgetData(), readme.WithLocation(time.UTC))

	assert.True(t, strings.HasPrefix(doc, "# widget\n\nWidget renders widgets.\n"))
	assert.Equal(t, "- Fast rendering\n- Tiny bundle", section(t, doc, "✨ Features"))
	assert.Equal(t, "- **TypeScript**\n- **CSS**", section(t, doc, "🛠️ Tech Stack"))

	install := section(t, doc, "🚀 Installation")
	assert.True(t, strings.HasPrefix(install, "```bash\n# Clone the repository\n"))
	assert.Contains(t, install, "npm install\n")
	assert.Contains(t, install, "npm run dev\n")
	assert.True(t, strings.HasSuffix(install, "```\n\nRun the installer."))

	assert.Equal(t, "```bash\nwidget --help\n```", section(t, doc, "📖 Usage"))
	assert.Equal(t, "```\nwidget/\n├── src/\n├── package.json\n```", section(t, doc, "📁 Project Structure"))
	assert.Contains(t, section(t, doc, "📄 License"), "licensed under the MIT License")

	assert.Contains(t, doc, "[![GitHub stars](https://img.shields.io/github/stars/acme/widget?style=social)](https://github.com/acme/widget/stargazers)")
	assert.Contains(t, doc, "[![GitHub forks](https://img.shields.io/github/forks/acme/widget?style=social)](https://github.com/acme/widget/network/members)")
	assert.Contains(t, doc, "**Repository:** [acme/widget](https://github.com/acme/widget)")
	assert.Contains(t, doc, "**Author:** [acme](https://github.com/acme)")
	assert.Contains(t, doc, "**Created:** 3/5/2024")
	assert.Contains(t, doc, "**Last Updated:** 11/20/2025\n")
}

func TestRenderIdempotent(t *testing.T) {
	t.Parallel()

	data := widgetData()
	assert.Equal(t, readme.Render(data), readme.Render(data))
}

func TestRenderDatesUseLocation(t *testing.T) {
	t.Parallel()

	tokyo := time.FixedZone("JST", 9*60*60)
	doc := readme.Render(widgetData(), readme.WithLocation(tokyo))

	// 2025-11-20 23:30 UTC is already the 21st in Tokyo.
	assert.Contains(t, doc, "**Last Updated:** 11/21/2025")
}

func TestRenderInstallation(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		languages models.Languages
		install   string
		want      []string
		wantExact string
	}{
		{
			name:      "verbatim when fenced",
			languages: models.Languages{"TypeScript": 10},
			install:   "```sh\nmake\n```",
			wantExact: "```sh\nmake\n```",
		},
		{
			name:      "javascript",
			languages: models.Languages{"JavaScript": 10, "HTML": 5},
			install:   "Then open the app.",
			want:      []string{"npm install", "npm run dev", "```\n\nThen open the app."},
		},
		{
			name:      "python",
			languages: models.Languages{"Python": 10, "Shell": 1},
			install:   "Then run main.py.",
			want:      []string{"python -m venv venv", `venv\Scripts\activate`, "pip install -r requirements.txt", "```\n\nThen run main.py."},
		},
		{
			name:      "generic",
			languages: models.Languages{"Go": 10},
			install:   "go build ./...",
			want:      []string{"git clone https://github.com/username/repository.git", "cd project-name\n\ngo build ./...\n```"},
		},
		{
			name:      "javascript outside top five",
			languages: models.Languages{"Go": 60, "C": 50, "Rust": 40, "Zig": 30, "Nix": 20, "JavaScript": 1},
			install:   "go build ./...",
			want:      []string{"cd project-name\n\ngo build ./...\n```"},
		},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			data := widgetData()
			data.Languages = tc.languages
			data.Generated.Installation = tc.install
			got := section(t, readme.Render(data, readme.WithLocation(time.UTC)), "🚀 Installation")

			if tc.wantExact != "" {
				assert.Equal(t, tc.wantExact, got)
			}
			for _, w := range tc.want {
				assert.Contains(t, got, w)
			}
			if tc.name == "generic" || tc.name == "javascript outside top five" {
				assert.NotContains(t, got, "npm install")
				assert.NotContains(t, got, "pip install")
			}
		})
	}
}

func TestRenderUsageAlreadyFenced(t *testing.T) {
	t.Parallel()

	data := widgetData()
	data.Generated.Usage = "Run:\n```go\nwidget.Run()\n```"
	doc := readme.Render(data, readme.WithLocation(time.UTC))

	assert.Equal(t, "Run:\n```go\nwidget.Run()\n```", section(t, doc, "📖 Usage"))
}

func TestRenderProjectStructure(t *testing.T) {
	t.Parallel()

	t.Run("placeholder", func(t *testing.T) {
		t.Parallel()
		data := widgetData()
		data.Contents = nil
		got := section(t, readme.Render(data), "📁 Project Structure")
		assert.Equal(t, "```\nwidget/\n├── src/\n├── README.md\n├── package.json\n```", got)
	})

	t.Run("truncated to eight", func(t *testing.T) {
		t.Parallel()
		data := widgetData()
		data.Contents = nil
		for _, name := range []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"} {
			data.Contents = append(data.Contents, models.ContentEntry{Name: name, Type: "file"})
		}
		got := section(t, readme.Render(data), "📁 Project Structure")
		assert.Equal(t, readme.StructureSize, strings.Count(got, "├── "))
		assert.Contains(t, got, "├── h\n")
		assert.NotContains(t, got, "├── i")
	})
}

func TestRenderTechStackTopFive(t *testing.T) {
	t.Parallel()

	data := widgetData()
	data.Languages = models.Languages{"A": 1, "B": 6, "C": 5, "D": 4, "E": 3, "F": 2}
	got := section(t, readme.Render(data), "🛠️ Tech Stack")

	assert.Equal(t, "- **B**\n- **C**\n- **D**\n- **E**\n- **F**", got)
}

func TestRenderLicense(t *testing.T) {
	t.Parallel()

	data := widgetData()
	data.Repo.License = &models.License{Key: "apache-2.0", Name: "Apache 2.0"}
	got := section(t, readme.Render(data), "📄 License")

	assert.Equal(t, "This project is licensed under the Apache 2.0 License - see the [LICENSE](LICENSE) file for details.", got)
}
