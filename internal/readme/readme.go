// Package readme renders the final README document from repository metadata
// and generated content. Rendering is pure: the same inputs and location
// always produce the same bytes.
//
// Repository and model strings are embedded as-is. The output is Markdown
// meant to be committed as a README, not HTML served to a browser.
package readme

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/kevinmichaelchen/readme-gen/internal/models"
)

const (
	// TechStackSize is the number of languages listed under Tech Stack.
	TechStackSize = 5
	// StructureSize is the number of content entries shown under Project Structure.
	StructureSize = 8

	fence       = "```"
	dateLayout  = "1/2/2006"
	cloneSample = "https://github.com/username/repository.git"
)

// Data is everything a README is built from.
type Data struct {
	Repo      models.Repo
	Languages models.Languages
	Contents  []models.ContentEntry
	Generated models.GeneratedContent
}

type options struct {
	loc *time.Location
}

type Option func(*options)

// WithLocation sets the time zone used for the created/updated dates.
// Defaults to time.Local.
func WithLocation(loc *time.Location) Option {
	return func(o *options) {
		if loc != nil {
			o.loc = loc
		}
	}
}

// Render builds the README document.
func Render(data Data, opts ...Option) string {
	o := options{loc: time.Local}
	for _, opt := range opts {
		opt(&o)
	}

	repo := data.Repo
	gen := data.Generated
	techStack := data.Languages.Top(TechStackSize)

	var b strings.Builder
	section := func(title, body string) {
		fmt.Fprintf(&b, "## %s\n\n%s\n\n", title, body)
	}

	fmt.Fprintf(&b, "# %s\n\n%s\n\n", repo.Name, gen.Description)
	section("✨ Features", bulletList(gen.Features, "%s"))
	section("🚀 Installation", installationSection(techStack, gen.Installation))
	section("📖 Usage", usageSection(gen.Usage))
	section("🛠️ Tech Stack", bulletList(techStack, "**%s**"))
	section("📁 Project Structure", fmt.Sprintf("%s\n%s/\n%s\n%s", fence, repo.Name, projectStructure(data.Contents), fence))
	section("🤝 Contributing", contributing)
	section("📄 License", licenseSection(repo.License))
	section("⭐ Support", supportSection(repo))

	b.WriteString("---\n\n")
	fmt.Fprintf(&b, "**Repository:** [%s](%s)  \n", repo.FullName, repo.HTMLURL)
	fmt.Fprintf(&b, "**Author:** [%s](%s)  \n", repo.Owner.Login, repo.Owner.HTMLURL)
	fmt.Fprintf(&b, "**Created:** %s  \n", formatDate(repo.CreatedAt, o.loc))
	fmt.Fprintf(&b, "**Last Updated:** %s\n", formatDate(repo.UpdatedAt, o.loc))

	return b.String()
}

const contributing = `Contributions are welcome! Please feel free to submit a Pull Request.

1. Fork the project
2. Create your feature branch (` + "`git checkout -b feature/AmazingFeature`" + `)
3. Commit your changes (` + "`git commit -m 'Add some AmazingFeature'`" + `)
4. Push to the branch (` + "`git push origin feature/AmazingFeature`" + `)
5. Open a Pull Request`

func bulletList(items []string, format string) string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = "- " + fmt.Sprintf(format, item)
	}
	return strings.Join(lines, "\n")
}

const cloneHeader = "# Clone the repository\ngit clone " + cloneSample + "\n\n# Navigate to project directory\ncd project-name\n"

func installationSection(techStack []string, installation string) string {
	if strings.Contains(installation, fence) {
		return installation
	}

	switch {
	case slices.Contains(techStack, "JavaScript") || slices.Contains(techStack, "TypeScript"):
		return fence + "bash\n" + cloneHeader +
			"\n# Install dependencies\nnpm install\n" +
			"\n# Start development server\nnpm run dev\n" +
			fence + "\n\n" + installation
	case slices.Contains(techStack, "Python"):
		return fence + "bash\n" + cloneHeader +
			"\n# Create virtual environment\npython -m venv venv\n" +
			"\n# Activate virtual environment\nsource venv/bin/activate  # On Windows: venv\\Scripts\\activate\n" +
			"\n# Install dependencies\npip install -r requirements.txt\n" +
			fence + "\n\n" + installation
	default:
		return fence + "bash\n" + cloneHeader + "\n" + installation + "\n" + fence
	}
}

func usageSection(usage string) string {
	if strings.Contains(usage, fence) {
		return usage
	}
	return fence + "bash\n" + usage + "\n" + fence
}

func projectStructure(contents []models.ContentEntry) string {
	if len(contents) == 0 {
		return "├── src/\n├── README.md\n├── package.json"
	}
	if len(contents) > StructureSize {
		contents = contents[:StructureSize]
	}

	lines := make([]string, len(contents))
	for i, c := range contents {
		name := c.Name
		if c.IsDir() {
			name += "/"
		}
		lines[i] = "├── " + name
	}
	return strings.Join(lines, "\n")
}

func licenseSection(license *models.License) string {
	name := "MIT"
	if license != nil && license.Name != "" {
		name = license.Name
	}
	return fmt.Sprintf("This project is licensed under the %s License - see the [LICENSE](LICENSE) file for details.", name)
}

func supportSection(repo models.Repo) string {
	return "If you find this project helpful, please consider giving it a star on GitHub!\n\n" +
		fmt.Sprintf("[![GitHub stars](https://img.shields.io/github/stars/%s?style=social)](%s/stargazers)\n", repo.FullName, repo.HTMLURL) +
		fmt.Sprintf("[![GitHub forks](https://img.shields.io/github/forks/%s?style=social)](%s/network/members)", repo.FullName, repo.HTMLURL)
}

func formatDate(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return "unknown"
	}
	return t.In(loc).Format(dateLayout)
}
