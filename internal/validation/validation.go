// Package validation applies the normative rules for skill metadata.
//
// Unlike the reader's minimal shape checks, validation evaluates every
// rule unconditionally and aggregates all violations into an ordered list
// of messages. An empty list means the metadata is valid.
package validation

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/klauern/skillmeta/internal/parser"
)

// Field length limits. Name length is measured after NFKC normalization;
// description and compatibility are measured raw.
const (
	MaxNameLength          = 64
	MaxDescriptionLength   = 1024
	MaxCompatibilityLength = 500
)

// allowedFields is the complete set of permitted top-level frontmatter keys.
var allowedFields = map[string]struct{}{
	"name":          {},
	"description":   {},
	"license":       {},
	"allowed-tools": {},
	"metadata":      {},
	"compatibility": {},
}

// nameRanges approximates "Unicode letter or digit" with explicit block
// ranges: Basic Latin letters and digits, Latin-1 and Latin Extended-A/B,
// combining diacritical marks, Cyrillic, and CJK Unified Ideographs plus
// Extension A. Scripts outside these blocks (Hangul, Arabic, Devanagari,
// Greek, ...) are not accepted; widening the table changes which names
// validate, so the gap stays documented rather than fixed.
var nameRanges = [...]struct{ lo, hi rune }{
	{'0', '9'},
	{'A', 'Z'},
	{'a', 'z'},
	{0x00C0, 0x00FF}, // Latin-1 letters
	{0x0100, 0x017F}, // Latin Extended-A
	{0x0180, 0x024F}, // Latin Extended-B
	{0x0300, 0x036F}, // combining diacritical marks
	{0x0400, 0x04FF}, // Cyrillic
	{0x3400, 0x4DBF}, // CJK Extension A
	{0x4E00, 0x9FFF}, // CJK Unified Ideographs
}

// ValidateMetadata checks a parsed metadata mapping against the full rule
// set. dir, when non-empty, is the originating skill directory and enables
// the directory-name agreement check. All rules run even when earlier ones
// fail; the returned messages keep rule order: allowed fields, name,
// description, compatibility.
func ValidateMetadata(meta map[string]any, dir string) []string {
	var errs []string
	errs = append(errs, checkAllowedFields(meta)...)
	errs = append(errs, checkName(meta, dir)...)
	errs = append(errs, checkDescription(meta)...)
	errs = append(errs, checkCompatibility(meta)...)
	return errs
}

// ValidateDir resolves a skill directory, parses its manifest, and runs
// ValidateMetadata. It never fails: I/O and parse problems are converted
// into single-element violation lists, preserving the always-returns-a-list
// contract at this layer.
func ValidateDir(dir string) []string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return []string{err.Error()}
	}

	info, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{fmt.Sprintf("Skill directory does not exist: %s", abs)}
		}
		return []string{err.Error()}
	}
	if !info.IsDir() {
		return []string{fmt.Sprintf("Not a directory: %s", abs)}
	}

	manifest := parser.FindManifest(abs)
	if manifest == "" {
		return []string{fmt.Sprintf("Missing required file SKILL.md in %s", abs)}
	}

	meta, _, err := parser.ParseFile(manifest)
	if err != nil {
		return []string{err.Error()}
	}

	return ValidateMetadata(meta, abs)
}

// checkAllowedFields reports unexpected top-level keys as one aggregated
// message, keys sorted alphabetically.
func checkAllowedFields(meta map[string]any) []string {
	var unexpected []string
	for key := range meta {
		if _, ok := allowedFields[key]; !ok {
			unexpected = append(unexpected, key)
		}
	}
	if len(unexpected) == 0 {
		return nil
	}
	sort.Strings(unexpected)
	return []string{fmt.Sprintf("Unexpected fields in frontmatter: %s", strings.Join(unexpected, ", "))}
}

// checkName validates the name field. The name is NFKC-normalized before
// any rule runs; only the emptiness check short-circuits the rest.
func checkName(meta map[string]any, dir string) []string {
	val, ok := meta["name"]
	if !ok {
		return []string{"Missing required field: name"}
	}
	raw, ok := val.(string)
	if !ok {
		return []string{"Name must be a string"}
	}

	name := norm.NFKC.String(raw)
	if strings.TrimSpace(name) == "" {
		return []string{"Name cannot be empty"}
	}

	var errs []string
	if length := utf8.RuneCountInString(name); length > MaxNameLength {
		errs = append(errs, fmt.Sprintf("Name exceeds %d character limit: %d characters", MaxNameLength, length))
	}
	if name != strings.ToLower(name) {
		errs = append(errs, fmt.Sprintf("Name must be lowercase: %q", name))
	}
	if strings.HasPrefix(name, "-") || strings.HasSuffix(name, "-") {
		errs = append(errs, fmt.Sprintf("Name cannot start or end with a hyphen: %q", name))
	}
	if strings.Contains(name, "--") {
		errs = append(errs, fmt.Sprintf("Name cannot contain consecutive hyphens: %q", name))
	}
	if invalid := invalidNameRunes(name); len(invalid) > 0 {
		errs = append(errs, fmt.Sprintf("Name contains invalid characters: %q", string(invalid)))
	}

	if dir != "" {
		dirName := norm.NFKC.String(filepath.Base(dir))
		if dirName != name {
			errs = append(errs, fmt.Sprintf("Directory name %q does not match skill name %q", dirName, name))
		}
	}

	return errs
}

// checkDescription validates presence, non-blankness, and raw length.
func checkDescription(meta map[string]any) []string {
	val, ok := meta["description"]
	if !ok {
		return []string{"Missing required field: description"}
	}
	desc, ok := val.(string)
	if !ok {
		return []string{"Description must be a string"}
	}
	if strings.TrimSpace(desc) == "" {
		return []string{"Description cannot be empty"}
	}
	if length := utf8.RuneCountInString(desc); length > MaxDescriptionLength {
		return []string{fmt.Sprintf("Description exceeds %d character limit: %d characters", MaxDescriptionLength, length)}
	}
	return nil
}

// checkCompatibility validates type and length of the optional field.
func checkCompatibility(meta map[string]any) []string {
	val, ok := meta["compatibility"]
	if !ok {
		return nil
	}
	compat, ok := val.(string)
	if !ok {
		return []string{"Compatibility must be a string"}
	}
	if length := utf8.RuneCountInString(compat); length > MaxCompatibilityLength {
		return []string{fmt.Sprintf("Compatibility exceeds %d character limit: %d characters", MaxCompatibilityLength, length)}
	}
	return nil
}

// invalidNameRunes returns the distinct runes in name that fall outside
// the accepted ranges, in first-appearance order. Hyphen is always valid.
func invalidNameRunes(name string) []rune {
	var invalid []rune
	seen := make(map[rune]struct{})
	for _, r := range name {
		if r == '-' || nameRuneValid(r) {
			continue
		}
		if _, dup := seen[r]; dup {
			continue
		}
		seen[r] = struct{}{}
		invalid = append(invalid, r)
	}
	return invalid
}

func nameRuneValid(r rune) bool {
	for _, rng := range nameRanges {
		if r >= rng.lo && r <= rng.hi {
			return true
		}
	}
	return false
}
