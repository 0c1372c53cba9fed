// Package parser extracts YAML frontmatter from skill manifest files.
//
// A manifest is a SKILL.md file that opens with a `---` delimiter line,
// carries a YAML mapping, and closes with another `---` line before the
// free-form body. The parser accepts only that shape: the header must be
// a mapping, never a sequence or scalar document.
package parser

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Delimiter marks the start and end of the frontmatter block.
const Delimiter = "---"

// Manifest file names accepted inside a skill directory, in preference order.
var manifestNames = []string{"SKILL.md", "skill.md"}

// ParseError reports a manifest that is missing or structurally malformed.
type ParseError struct {
	// Path is the manifest or directory the error refers to (may be empty)
	Path string
	// Message describes the structural problem
	Message string
	// Err is the underlying error (if any)
	Err error
}

// Error returns the formatted parse error message.
func (e *ParseError) Error() string {
	msg := e.Message
	if e.Path != "" {
		msg = fmt.Sprintf("%s: %s", e.Path, msg)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap returns the underlying error for errors.Is/As.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// FindManifest locates the manifest file inside a skill directory.
// SKILL.md is preferred over skill.md; no other name is accepted.
// Returns an empty string when the directory holds no manifest.
func FindManifest(dir string) string {
	for _, name := range manifestNames {
		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		if err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// SplitFrontmatter splits raw manifest text into its metadata mapping and
// body. The text must start with a delimiter line; the header is decoded as
// a single YAML mapping document; the body is returned with surrounding
// whitespace trimmed.
//
// A nested `metadata` mapping has every value coerced to its string form,
// so consumers always see map[string]string underneath that key.
func SplitFrontmatter(content []byte) (map[string]any, string, error) {
	text := string(content)
	if !hasOpeningDelimiter(text) {
		return nil, "", &ParseError{Message: "missing frontmatter: file must start with ---"}
	}

	parts := strings.SplitN(text, Delimiter, 3)
	if len(parts) < 3 {
		return nil, "", &ParseError{Message: "frontmatter not properly closed: missing --- delimiter"}
	}

	meta, err := decodeMapping([]byte(parts[1]))
	if err != nil {
		return nil, "", err
	}

	if nested, ok := meta["metadata"].(map[string]any); ok {
		meta["metadata"] = coerceStringMap(nested)
	}

	return meta, strings.TrimSpace(parts[2]), nil
}

// ParseFile reads a manifest from disk and splits it.
func ParseFile(path string) (map[string]any, string, error) {
	// #nosec G304 - path comes from manifest discovery inside a caller-supplied directory
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, "", &ParseError{Path: path, Message: "failed to read manifest", Err: err}
	}
	meta, body, err := SplitFrontmatter(content)
	if err != nil {
		var perr *ParseError
		if errors.As(err, &perr) && perr.Path == "" {
			perr.Path = path
		}
		return nil, "", err
	}
	return meta, body, nil
}

// hasOpeningDelimiter reports whether text starts with a line that is
// exactly the delimiter. Windows line endings are tolerated.
func hasOpeningDelimiter(text string) bool {
	if !strings.HasPrefix(text, Delimiter) {
		return false
	}
	rest := text[len(Delimiter):]
	return rest == "" || strings.HasPrefix(rest, "\n") || strings.HasPrefix(rest, "\r\n")
}

// decodeMapping parses the header block, rejecting anything that is not a
// YAML mapping. An empty header yields an empty mapping.
func decodeMapping(header []byte) (map[string]any, error) {
	var raw any
	if err := yaml.Unmarshal(header, &raw); err != nil {
		return nil, &ParseError{Message: "invalid frontmatter", Err: err}
	}

	switch v := raw.(type) {
	case nil:
		return map[string]any{}, nil
	case map[string]any:
		return v, nil
	case []any:
		return nil, &ParseError{Message: "invalid frontmatter: expected a mapping, got a sequence"}
	default:
		return nil, &ParseError{Message: fmt.Sprintf("invalid frontmatter: expected a mapping, got %T", raw)}
	}
}

// coerceStringMap converts every value in a nested mapping to its string
// form, leaving keys unchanged.
func coerceStringMap(m map[string]any) map[string]string {
	result := make(map[string]string, len(m))
	for k, v := range m {
		if s, ok := v.(string); ok {
			result[k] = s
		} else {
			result[k] = fmt.Sprintf("%v", v)
		}
	}
	return result
}
