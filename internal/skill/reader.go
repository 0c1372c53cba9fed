// Package skill reads skill packages from disk: directories holding a
// SKILL.md manifest whose frontmatter carries the skill's metadata.
package skill

import (
	"fmt"
	"strings"

	"github.com/klauern/skillmeta/internal/model"
	"github.com/klauern/skillmeta/internal/parser"
)

// ValidationError reports a manifest whose metadata fails the minimal
// shape checks applied while reading properties.
type ValidationError struct {
	// Field is the frontmatter key that failed
	Field string
	// Message describes the failure
	Message string
}

// Error returns the formatted validation error message.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid field %q: %s", e.Field, e.Message)
}

// ReadProperties loads the manifest from a skill directory and returns its
// typed properties.
//
// Only minimal shape checks run here: name and description must be present
// and non-blank. Naming syntax, length limits, and directory agreement are
// the validation package's job, so callers can read properties without
// paying for a full validation pass.
func ReadProperties(dir string) (model.SkillProperties, error) {
	manifest := parser.FindManifest(dir)
	if manifest == "" {
		return model.SkillProperties{}, &parser.ParseError{Path: dir, Message: "no SKILL.md file found"}
	}

	meta, _, err := parser.ParseFile(manifest)
	if err != nil {
		return model.SkillProperties{}, err
	}

	return PropertiesFromMetadata(meta)
}

// PropertiesFromMetadata builds SkillProperties from an already-parsed
// metadata mapping.
func PropertiesFromMetadata(meta map[string]any) (model.SkillProperties, error) {
	name, err := requiredString(meta, "name")
	if err != nil {
		return model.SkillProperties{}, err
	}
	description, err := requiredString(meta, "description")
	if err != nil {
		return model.SkillProperties{}, err
	}

	props := model.SkillProperties{
		Name:          name,
		Description:   description,
		License:       optionalString(meta, "license"),
		Compatibility: optionalString(meta, "compatibility"),
		AllowedTools:  optionalString(meta, "allowed-tools"),
		Metadata:      map[string]string{},
	}
	if nested, ok := meta["metadata"].(map[string]string); ok {
		props.Metadata = nested
	}

	return props, nil
}

// requiredString extracts a mandatory field, trimmed. Absent or blank
// values fail with a ValidationError naming the field.
func requiredString(meta map[string]any, key string) (string, error) {
	val, ok := meta[key]
	if !ok {
		return "", &ValidationError{Field: key, Message: "missing required field"}
	}
	s, ok := val.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return "", &ValidationError{Field: key, Message: "must be a non-empty string"}
	}
	return strings.TrimSpace(s), nil
}

// optionalString extracts an optional field verbatim, or "" when absent
// or not a string.
func optionalString(meta map[string]any, key string) string {
	if s, ok := meta[key].(string); ok {
		return s
	}
	return ""
}
