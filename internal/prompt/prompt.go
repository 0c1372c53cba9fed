// Package prompt renders skill metadata into the text block an agent
// receives so it can discover and invoke available skills.
package prompt

import (
	"path/filepath"
	"strings"
	"sync"

	"github.com/klauern/skillmeta/internal/model"
	"github.com/klauern/skillmeta/internal/parser"
	"github.com/klauern/skillmeta/internal/skill"
)

type renderEntry struct {
	props    model.SkillProperties
	location string
	err      error
}

// Render produces the <available_skills> block for an ordered list of
// skill directories. Manifest reads fan out concurrently, but output
// records always appear in input order. Rendering is all-or-nothing: the
// first failing directory (in input order) aborts the whole render.
func Render(dirs []string) (string, error) {
	entries := make([]renderEntry, len(dirs))

	var wg sync.WaitGroup
	for i, dir := range dirs {
		wg.Add(1)
		go func(i int, dir string) {
			defer wg.Done()
			entries[i] = readEntry(dir)
		}(i, dir)
	}
	wg.Wait()

	lines := []string{"<available_skills>"}
	for _, entry := range entries {
		if entry.err != nil {
			return "", entry.err
		}
		lines = append(lines,
			"<skill>",
			"<name>",
			escape(entry.props.Name),
			"</name>",
			"<description>",
			escape(entry.props.Description),
			"</description>",
			"<location>",
			escape(entry.location),
			"</location>",
			"</skill>",
		)
	}
	lines = append(lines, "</available_skills>")

	return strings.Join(lines, "\n"), nil
}

// readEntry resolves one directory and reads its properties and manifest
// location.
func readEntry(dir string) renderEntry {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return renderEntry{err: err}
	}
	props, err := skill.ReadProperties(abs)
	if err != nil {
		return renderEntry{err: err}
	}
	return renderEntry{props: props, location: parser.FindManifest(abs)}
}

// escape substitutes the five XML metacharacters. Ampersand is replaced
// first so later entity substitutions are never double-encoded.
func escape(value string) string {
	value = strings.ReplaceAll(value, "&", "&amp;")
	value = strings.ReplaceAll(value, "<", "&lt;")
	value = strings.ReplaceAll(value, ">", "&gt;")
	value = strings.ReplaceAll(value, `"`, "&quot;")
	value = strings.ReplaceAll(value, "'", "&#39;")
	return value
}
