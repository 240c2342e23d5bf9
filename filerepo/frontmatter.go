package filerepo

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const delimiter = "---"

// dateLayouts are tried in order for string dates.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	time.RFC1123Z,
	time.RFC1123,
}

// document is a markdown file split into its front matter fields and body.
type document struct {
	fields map[string]any
	body   string
}

// splitFrontMatter separates a leading "---" delimited block from the body.
// ok is false when the file has no complete block; the whole input is then body.
func splitFrontMatter(src string) (header, body string, ok bool) {
	src = strings.TrimPrefix(src, "\ufeff")
	normalized := strings.ReplaceAll(src, "\r\n", "\n")

	first, rest, found := strings.Cut(normalized, "\n")
	if !found || strings.TrimRight(first, " \t") != delimiter {
		return "", src, false
	}

	lines := strings.SplitAfter(rest, "\n")
	offset := 0
	for _, line := range lines {
		if strings.TrimRight(line, " \t\n") == delimiter {
			return rest[:offset], rest[offset+len(line):], true
		}
		offset += len(line)
	}

	return "", src, false
}

// parseDocument decodes the front matter as YAML. A block that is not a YAML
// mapping is an error; the caller decides how to degrade.
func parseDocument(src string) (document, error) {
	header, body, ok := splitFrontMatter(src)
	if !ok {
		return document{fields: map[string]any{}, body: body}, nil
	}

	fields := map[string]any{}
	if strings.TrimSpace(header) != "" {
		if err := yaml.Unmarshal([]byte(header), &fields); err != nil {
			return document{fields: map[string]any{}, body: src}, fmt.Errorf("front matter: %w", err)
		}
	}
	if fields == nil {
		fields = map[string]any{}
	}

	return document{fields: fields, body: body}, nil
}

// text returns the field as a string, or fallback when it is missing or blank.
func (d document) text(key, fallback string) string {
	var s string
	switch v := d.fields[key].(type) {
	case string:
		s = v
	case int, int64, uint64, float64, bool:
		s = fmt.Sprint(v)
	default:
		return fallback
	}
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return strings.TrimSpace(s)
}

// date returns the publish date, or the result of now when it is missing or unparseable.
func (d document) date(now func() time.Time) time.Time {
	switch v := d.fields["date"].(type) {
	case time.Time:
		return v
	case string:
		s := strings.TrimSpace(v)
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t
			}
		}
	}
	return now()
}

// tags accepts a sequence of strings or a single string. Blank and non-string
// items are dropped.
func (d document) tags() []string {
	tags := make([]string, 0)
	switch v := d.fields["tags"].(type) {
	case string:
		if s := strings.TrimSpace(v); s != "" {
			tags = append(tags, s)
		}
	case []any:
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				continue
			}
			if s = strings.TrimSpace(s); s != "" {
				tags = append(tags, s)
			}
		}
	}
	return tags
}
