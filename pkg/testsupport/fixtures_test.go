package testsupport

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestPostFixture_Markdown(t *testing.T) {
	post := PostFixture{
		Slug:       "hello",
		Title:      "Hello: World",
		Date:       "2025-01-03",
		Tags:       []string{"Go", "YAML"},
		AuthorName: "Ada",
		Body:       "# Hello\n",
	}

	content, err := post.Markdown()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.HasPrefix(content, "---\n") {
		t.Fatalf("expected front matter, got %q", content)
	}
	header, body, found := strings.Cut(strings.TrimPrefix(content, "---\n"), "---\n")
	if !found {
		t.Fatalf("expected closing delimiter in %q", content)
	}
	if body != "# Hello\n" {
		t.Errorf("unexpected body %q", body)
	}

	var fields map[string]any
	if err := yaml.Unmarshal([]byte(header), &fields); err != nil {
		t.Fatalf("front matter is not valid YAML: %v", err)
	}
	if fields["title"] != "Hello: World" {
		t.Errorf("title not preserved: %v", fields["title"])
	}
	if _, ok := fields["excerpt"]; ok {
		t.Error("expected empty excerpt to be omitted")
	}
	if tags, ok := fields["tags"].([]any); !ok || len(tags) != 2 {
		t.Errorf("unexpected tags %v", fields["tags"])
	}
}

func TestPostFixture_MarkdownWithoutFields(t *testing.T) {
	content, err := PostFixture{Slug: "bare", Body: "only body"}.Markdown()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if content != "only body" {
		t.Errorf("expected body without front matter, got %q", content)
	}

	raw, _ := PostFixture{Slug: "raw", Title: "ignored", Raw: "---\n: bad\n---\n"}.Markdown()
	if raw != "---\n: bad\n---\n" {
		t.Errorf("expected raw contents verbatim, got %q", raw)
	}
}

func TestWritePostAndContentDir(t *testing.T) {
	dir := ContentDir(t,
		PostFixture{Slug: "one", Title: "One"},
		PostFixture{Slug: "two", Body: "text"},
	)

	for _, name := range []string{"one.md", "two.md"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("expected %s to exist: %v", name, err)
		}
	}

	nested := filepath.Join(t.TempDir(), "content", "posts")
	path := WritePost(t, nested, PostFixture{Slug: "deep", Body: "x"})
	if got := string(LoadFixture(t, path)); got != "x" {
		t.Errorf("unexpected contents %q", got)
	}
}

func TestCopyFixtures(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	WritePost(t, src, PostFixture{Slug: "copied", Body: "body"})
	if err := os.Mkdir(filepath.Join(src, "nested"), 0755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}

	CopyFixtures(t, src, dst)

	if got := string(LoadFixture(t, filepath.Join(dst, "copied.md"))); got != "body" {
		t.Errorf("unexpected copy %q", got)
	}
	if _, err := os.Stat(filepath.Join(dst, "nested")); !os.IsNotExist(err) {
		t.Error("expected directories to be skipped")
	}
}

func TestWords(t *testing.T) {
	if got := len(strings.Fields(Words(400))); got != 400 {
		t.Errorf("expected 400 words, got %d", got)
	}
	if Words(0) != "" {
		t.Error("expected empty body for zero words")
	}
}

func TestFixturePath(t *testing.T) {
	if got := FixturePath("a.md"); got != filepath.Join("testdata", "a.md") {
		t.Errorf("FixturePath() = %q", got)
	}
}
