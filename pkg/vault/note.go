package vault

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Note represents a parsed markdown note
type Note struct {
	Path        string
	Frontmatter map[string]interface{}
	Content     string // The markdown content after frontmatter
	ModTime     time.Time
}

// ReadNote reads a markdown file and parses its frontmatter and content.
// A note without a leading "---" block gets an empty frontmatter map.
func ReadNote(path string) (*Note, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, err
	}

	scanner := bufio.NewScanner(file)
	var frontmatterLines []string
	var contentLines []string
	inFrontmatter := false
	lineCount := 0

	for scanner.Scan() {
		line := scanner.Text()
		lineCount++

		if lineCount == 1 && line == "---" {
			inFrontmatter = true
			continue
		}

		if inFrontmatter {
			if line == "---" {
				inFrontmatter = false
				continue
			}
			frontmatterLines = append(frontmatterLines, line)
		} else {
			contentLines = append(contentLines, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	fm := map[string]interface{}{}
	fmData := strings.Join(frontmatterLines, "\n")
	if len(fmData) > 0 {
		if err := yaml.Unmarshal([]byte(fmData), &fm); err != nil {
			return nil, fmt.Errorf("failed to parse frontmatter: %w", err)
		}
	}

	return &Note{
		Path:        path,
		Frontmatter: fm,
		Content:     strings.Join(contentLines, "\n"),
		ModTime:     info.ModTime(),
	}, nil
}

// Basename returns the note filename without the .md extension.
func (n *Note) Basename() string {
	return strings.TrimSuffix(filepath.Base(n.Path), ".md")
}

// String returns a frontmatter field as a string. Scalar values that YAML
// decoded as something else (numbers, booleans) are formatted back.
func (n *Note) String(key string) string {
	v, ok := n.Frontmatter[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	// yaml decodes unquoted ISO dates as time.Time
	if t, ok := v.(time.Time); ok {
		return t.Format("2006-01-02")
	}
	return fmt.Sprintf("%v", v)
}

// Bool returns a frontmatter field as a bool; anything but true is false.
func (n *Note) Bool(key string) bool {
	b, _ := n.Frontmatter[key].(bool)
	return b
}

// Int returns a frontmatter field as an int, or 0 when absent or not numeric.
func (n *Note) Int(key string) int {
	switch v := n.Frontmatter[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}

// ListMarkdown walks dir and returns the paths of all markdown files,
// sorted. A missing directory yields an empty slice, not an error.
func ListMarkdown(dir string) ([]string, error) {
	var paths []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // skip inaccessible
		}
		if !info.IsDir() && strings.HasSuffix(info.Name(), ".md") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	sort.Strings(paths)
	return paths, nil
}
