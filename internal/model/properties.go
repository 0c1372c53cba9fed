// Package model defines the core data types for skill metadata.
package model

// SkillProperties holds the typed metadata read from a skill manifest.
// Name and Description are always non-empty trimmed strings once a value
// has been constructed by the reader; every other field may be absent.
type SkillProperties struct {
	Name          string            `json:"name" yaml:"name"`
	Description   string            `json:"description" yaml:"description"`
	License       string            `json:"license,omitempty" yaml:"license,omitempty"`
	Compatibility string            `json:"compatibility,omitempty" yaml:"compatibility,omitempty"`
	AllowedTools  string            `json:"allowed-tools,omitempty" yaml:"allowed-tools,omitempty"`
	Metadata      map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// ToMap returns the external representation of the properties: a mapping
// with name and description always present and optional fields omitted
// entirely when absent. The allowed-tools key keeps its hyphenated form.
func (p SkillProperties) ToMap() map[string]any {
	m := map[string]any{
		"name":        p.Name,
		"description": p.Description,
	}
	if p.License != "" {
		m["license"] = p.License
	}
	if p.Compatibility != "" {
		m["compatibility"] = p.Compatibility
	}
	if p.AllowedTools != "" {
		m["allowed-tools"] = p.AllowedTools
	}
	if len(p.Metadata) > 0 {
		m["metadata"] = p.Metadata
	}
	return m
}
