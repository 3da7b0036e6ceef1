package mailer

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

var frontmatterDelimiter = []byte("---")

// Template is a parsed email template: frontmatter metadata and markdown body.
type Template struct {
	Metadata map[string]any
	Body     string
}

// ParseTemplate splits optional YAML frontmatter from the markdown body.
func ParseTemplate(content []byte) (*Template, error) {
	if !bytes.HasPrefix(content, frontmatterDelimiter) {
		return &Template{
			Metadata: make(map[string]any),
			Body:     string(content),
		}, nil
	}

	rest := bytes.TrimLeft(bytes.TrimPrefix(content, frontmatterDelimiter), "\r\n")
	if len(rest) == 0 {
		return nil, fmt.Errorf("%w: no content after opening delimiter", ErrInvalidFrontmatter)
	}

	end := bytes.Index(rest, frontmatterDelimiter)
	if end == -1 {
		return nil, fmt.Errorf("%w: closing delimiter not found", ErrInvalidFrontmatter)
	}

	front := rest[:end]
	body := rest[end+len(frontmatterDelimiter):]
	body = bytes.TrimPrefix(body, []byte("\r\n"))
	body = bytes.TrimPrefix(body, []byte("\n"))

	metadata := make(map[string]any)
	if len(bytes.TrimSpace(front)) > 0 {
		if err := yaml.Unmarshal(front, &metadata); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFrontmatter, err)
		}
	}

	return &Template{
		Metadata: metadata,
		Body:     string(body),
	}, nil
}
