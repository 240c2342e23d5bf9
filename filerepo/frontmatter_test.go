package filerepo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-blog-content/pkg/testsupport"
)

func TestSplitFrontMatter(t *testing.T) {
	tests := []struct {
		name       string
		src        string
		wantHeader string
		wantBody   string
		wantOK     bool
	}{
		{
			name:       "standard block",
			src:        "---\ntitle: Hi\n---\nbody\n",
			wantHeader: "title: Hi\n",
			wantBody:   "body\n",
			wantOK:     true,
		},
		{
			name:       "crlf line endings",
			src:        "---\r\ntitle: Hi\r\n---\r\nbody",
			wantHeader: "title: Hi\n",
			wantBody:   "body",
			wantOK:     true,
		},
		{
			name:       "closing delimiter at end of file",
			src:        "---\ntitle: Hi\n---",
			wantHeader: "title: Hi\n",
			wantBody:   "",
			wantOK:     true,
		},
		{
			name:       "empty block",
			src:        "---\n---\nbody",
			wantHeader: "",
			wantBody:   "body",
			wantOK:     true,
		},
		{
			name:     "no block",
			src:      "# Title\n\ntext",
			wantBody: "# Title\n\ntext",
		},
		{
			name:     "unterminated block",
			src:      "---\ntitle: Hi\nbody",
			wantBody: "---\ntitle: Hi\nbody",
		},
		{
			name:     "delimiter not on first line",
			src:      "intro\n---\ntitle: Hi\n---\n",
			wantBody: "intro\n---\ntitle: Hi\n---\n",
		},
		{
			name:       "byte order mark",
			src:        "\ufeff---\ntitle: Hi\n---\nbody",
			wantHeader: "title: Hi\n",
			wantBody:   "body",
			wantOK:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header, body, ok := splitFrontMatter(tt.src)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantHeader, header)
			assert.Equal(t, tt.wantBody, body)
		})
	}
}

func TestParseDocument_InvalidYAML(t *testing.T) {
	src := "---\ntitle: [unclosed\n---\nbody"

	doc, err := parseDocument(src)
	require.Error(t, err)
	assert.Empty(t, doc.fields)
	assert.Equal(t, src, doc.body)
}

func TestParseDocument_NonMappingHeader(t *testing.T) {
	_, err := parseDocument("---\n- a\n- b\n---\nbody")
	require.Error(t, err)
}

func TestDocument_Text(t *testing.T) {
	doc, err := parseDocument("---\ntitle: '  Spaced  '\nexcerpt: ''\nversion: 2\nlist: [a]\n---\n")
	require.NoError(t, err)

	assert.Equal(t, "Spaced", doc.text("title", "Untitled"))
	assert.Equal(t, "fallback", doc.text("excerpt", "fallback"))
	assert.Equal(t, "2", doc.text("version", ""))
	assert.Equal(t, "fallback", doc.text("list", "fallback"))
	assert.Equal(t, "fallback", doc.text("missing", "fallback"))
}

func TestDocument_Date(t *testing.T) {
	fixed := time.Date(2030, 6, 1, 12, 0, 0, 0, time.UTC)
	now := func() time.Time { return fixed }

	tests := []struct {
		value string
		want  time.Time
	}{
		{"2025-01-03", time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC)},
		{"'2025-01-03'", time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC)},
		{"2025-01-03T10:20:30Z", time.Date(2025, 1, 3, 10, 20, 30, 0, time.UTC)},
		{"2025-01-03 10:20", time.Date(2025, 1, 3, 10, 20, 0, 0, time.UTC)},
		{"2025-01-03 10:20:30", time.Date(2025, 1, 3, 10, 20, 30, 0, time.UTC)},
		{"'Fri, 03 Jan 2025 10:20:30 UTC'", time.Date(2025, 1, 3, 10, 20, 30, 0, time.UTC)},
		{"not a date", fixed},
		{"42", fixed},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			doc, err := parseDocument("---\ndate: " + tt.value + "\n---\n")
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(doc.date(now)), "got %v", doc.date(now))
		})
	}

	doc, err := parseDocument("no front matter")
	require.NoError(t, err)
	assert.Equal(t, fixed, doc.date(now))
}

func TestDocument_Tags(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   []string
	}{
		{"sequence", "tags:\n  - Go\n  - ' Web '\n", []string{"Go", "Web"}},
		{"flow sequence", "tags: [Go, React]\n", []string{"Go", "React"}},
		{"single string", "tags: Go\n", []string{"Go"}},
		{"skips blanks and non-strings", "tags: [Go, '', 3, {a: b}]\n", []string{"Go"}},
		{"missing", "title: x\n", []string{}},
		{"blank string", "tags: '  '\n", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := parseDocument("---\n" + tt.header + "---\n")
			require.NoError(t, err)
			assert.Equal(t, tt.want, doc.tags())
		})
	}
}

func TestParseDocument_Fixture(t *testing.T) {
	src := string(testsupport.LoadFixture(t, testsupport.FixturePath("with-front-matter.md")))

	doc, err := parseDocument(src)
	require.NoError(t, err)
	assert.Equal(t, "Building a Blog with Go", doc.text("title", ""))
	assert.Equal(t, "Ada Lovelace", doc.text("authorName", ""))
	assert.Equal(t, []string{"Go", "Markdown"}, doc.tags())
	assert.True(t, doc.date(time.Now).Equal(time.Date(2024, 11, 20, 9, 30, 0, 0, time.UTC)))
}
