// ABOUTME: YAML frontmatter parser for Markdown agent definitions, with CRLF normalization
// ABOUTME: Splits "---" delimited YAML from the body and decodes it into a typed value

package config

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const frontmatterDelimiter = "---"

var errUnterminatedFrontmatter = errors.New("unterminated frontmatter: missing closing ---")

// ParseFrontmatter decodes the YAML frontmatter of content into T and returns
// the body that follows it. Without frontmatter it returns (zero T, content, nil).
func ParseFrontmatter[T any](content string) (T, string, error) {
	var zero T

	normalized := strings.ReplaceAll(content, "\r\n", "\n")
	yamlText, body, found, err := splitFrontmatter(normalized)
	if err != nil {
		return zero, "", err
	}
	if !found {
		return zero, content, nil
	}

	var result T
	if err := yaml.Unmarshal([]byte(yamlText), &result); err != nil {
		return zero, "", fmt.Errorf("parse frontmatter YAML: %w", err)
	}
	return result, body, nil
}

// splitFrontmatter expects LF line endings.
func splitFrontmatter(s string) (yamlText, body string, found bool, err error) {
	if !strings.HasPrefix(s, frontmatterDelimiter+"\n") {
		return "", s, false, nil
	}
	rest := s[len(frontmatterDelimiter)+1:]

	// Empty frontmatter.
	if rest == frontmatterDelimiter || strings.HasPrefix(rest, frontmatterDelimiter+"\n") {
		return "", strings.TrimPrefix(rest[len(frontmatterDelimiter):], "\n"), true, nil
	}

	before, after, ok := strings.Cut(rest, "\n"+frontmatterDelimiter)
	if !ok {
		return "", "", false, errUnterminatedFrontmatter
	}
	return before, strings.TrimPrefix(after, "\n"), true, nil
}
