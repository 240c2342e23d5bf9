package testsupport

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

// PostFixture describes a markdown post file. Zero-valued fields are left out of
// the front matter so the reader's defaults apply. Date is written verbatim, so
// tests can use any layout or an invalid one. Raw, when set, replaces the
// rendered file contents.
type PostFixture struct {
	Slug       string
	Title      string
	Excerpt    string
	CoverImage string
	Date       string
	Tags       []string
	AuthorName string
	Body       string
	Raw        string
}

type frontMatter struct {
	Title      string   `yaml:"title,omitempty"`
	Excerpt    string   `yaml:"excerpt,omitempty"`
	CoverImage string   `yaml:"coverImage,omitempty"`
	Date       string   `yaml:"date,omitempty"`
	Tags       []string `yaml:"tags,omitempty"`
	AuthorName string   `yaml:"authorName,omitempty"`
}

func (f frontMatter) empty() bool {
	return f.Title == "" && f.Excerpt == "" && f.CoverImage == "" &&
		f.Date == "" && len(f.Tags) == 0 && f.AuthorName == ""
}

// Markdown renders the fixture as a markdown file with YAML front matter.
func (p PostFixture) Markdown() (string, error) {
	if p.Raw != "" {
		return p.Raw, nil
	}

	fm := frontMatter{
		Title:      p.Title,
		Excerpt:    p.Excerpt,
		CoverImage: p.CoverImage,
		Date:       p.Date,
		Tags:       p.Tags,
		AuthorName: p.AuthorName,
	}
	if fm.empty() {
		return p.Body, nil
	}

	header, err := yaml.Marshal(fm)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(header)
	b.WriteString("---\n")
	b.WriteString(p.Body)
	return b.String(), nil
}

// WritePost writes the fixture to <dir>/<slug>.md and returns the file path.
func WritePost(t testing.TB, dir string, post PostFixture) string {
	t.Helper()

	content, err := post.Markdown()
	if err != nil {
		t.Fatalf("failed to render fixture %s: %v", post.Slug, err)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("failed to create directory %s: %v", dir, err)
	}

	path := filepath.Join(dir, post.Slug+".md")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write fixture to %s: %v", path, err)
	}

	return path
}

// WritePosts writes every fixture into dir.
func WritePosts(t testing.TB, dir string, posts ...PostFixture) {
	t.Helper()

	for _, post := range posts {
		WritePost(t, dir, post)
	}
}

// ContentDir returns a fresh temporary directory holding posts.
func ContentDir(t testing.TB, posts ...PostFixture) string {
	t.Helper()

	dir := t.TempDir()
	WritePosts(t, dir, posts...)
	return dir
}

// Words returns a body of n words.
func Words(n int) string {
	return strings.TrimSpace(strings.Repeat("word ", n))
}

// Day returns midnight UTC of the given date, for comparing parsed dates.
func Day(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// LoadFixture loads test data from a fixture file.
// The path is relative to the test package directory.
func LoadFixture(t testing.TB, path string) []byte {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to load fixture from %s: %v", path, err)
	}

	return data
}

// CopyFixtures copies the files of a testdata directory into dst.
func CopyFixtures(t testing.TB, src, dst string) {
	t.Helper()

	entries, err := os.ReadDir(src)
	if err != nil {
		t.Fatalf("failed to list fixtures in %s: %v", src, err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		data := LoadFixture(t, filepath.Join(src, entry.Name()))
		if err := os.WriteFile(filepath.Join(dst, entry.Name()), data, 0644); err != nil {
			t.Fatalf("failed to copy fixture %s: %v", entry.Name(), err)
		}
	}
}

// FixturePath constructs a path to a fixture file relative to the testdata directory.
func FixturePath(filename string) string {
	return filepath.Join("testdata", filename)
}
