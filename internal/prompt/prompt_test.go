package prompt

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauern/skillmeta/internal/util"
)

func TestRenderEmpty(t *testing.T) {
	got, err := Render(nil)
	util.AssertNoError(t, err)
	util.AssertEqual(t, got, "<available_skills>\n</available_skills>")

	got, err = Render([]string{})
	util.AssertNoError(t, err)
	util.AssertEqual(t, got, "<available_skills>\n</available_skills>")
}

func TestRenderSingleSkill(t *testing.T) {
	root := t.TempDir()
	dir := util.WriteSkill(t, root, "my-skill", "name: my-skill\ndescription: A test skill")

	got, err := Render([]string{dir})
	util.AssertNoError(t, err)

	manifest, err := filepath.Abs(filepath.Join(dir, "SKILL.md"))
	util.AssertNoError(t, err)

	want := strings.Join([]string{
		"<available_skills>",
		"<skill>",
		"<name>",
		"my-skill",
		"</name>",
		"<description>",
		"A test skill",
		"</description>",
		"<location>",
		manifest,
		"</location>",
		"</skill>",
		"</available_skills>",
	}, "\n")
	util.AssertEqual(t, got, want)
}

func TestRenderPreservesInputOrder(t *testing.T) {
	root := t.TempDir()
	dirA := util.WriteSkill(t, root, "alpha", "name: alpha\ndescription: First")
	dirB := util.WriteSkill(t, root, "beta", "name: beta\ndescription: Second")

	got, err := Render([]string{dirB, dirA})
	util.AssertNoError(t, err)

	if strings.Count(got, "<skill>") != 2 || strings.Count(got, "</skill>") != 2 {
		t.Fatalf("Render() = %q, want two skill blocks", got)
	}
	if strings.Index(got, "beta") > strings.Index(got, "alpha") {
		t.Errorf("Render() emitted alpha before beta; want input order:\n%s", got)
	}
}

func TestRenderEscapesMetacharacters(t *testing.T) {
	root := t.TempDir()
	dir := util.WriteSkill(t, root, "escapes",
		`name: escapes
description: "Handles <tags> & \"quotes\" & 'apostrophes'"`)

	got, err := Render([]string{dir})
	util.AssertNoError(t, err)

	if !strings.Contains(got, "Handles &lt;tags&gt; &amp; &quot;quotes&quot; &amp; &#39;apostrophes&#39;") {
		t.Errorf("Render() did not escape metacharacters:\n%s", got)
	}

	desc := extractSection(t, got, "description")
	for _, banned := range []string{"<", ">", "&", `"`, "'"} {
		stripped := strings.NewReplacer(
			"&amp;", "", "&lt;", "", "&gt;", "", "&quot;", "", "&#39;", "",
		).Replace(desc)
		if strings.Contains(stripped, banned) {
			t.Errorf("description %q still contains literal %q", desc, banned)
		}
	}
}

func TestRenderNoDoubleEncoding(t *testing.T) {
	root := t.TempDir()
	dir := util.WriteSkill(t, root, "amp", `name: amp
description: "Already has &amp; inside"`)

	got, err := Render([]string{dir})
	util.AssertNoError(t, err)

	// The literal ampersand in "&amp;" escapes once, never twice.
	if !strings.Contains(got, "Already has &amp;amp; inside") {
		t.Errorf("Render() = %q, want single-pass ampersand escaping", got)
	}
}

func TestRenderAllOrNothing(t *testing.T) {
	root := t.TempDir()
	good := util.WriteSkill(t, root, "good", "name: good\ndescription: Fine")
	bad := filepath.Join(root, "bad")
	util.WriteFile(t, filepath.Join(bad, "SKILL.md"), "missing delimiters entirely")

	if _, err := Render([]string{good, bad}); err == nil {
		t.Fatal("Render() succeeded with an unparseable skill, want error")
	}
	if _, err := Render([]string{good, filepath.Join(root, "absent")}); err == nil {
		t.Fatal("Render() succeeded with a missing skill directory, want error")
	}
}

// extractSection pulls the text between <tag> and </tag> lines.
func extractSection(t *testing.T, block, tag string) string {
	t.Helper()
	openTag := fmt.Sprintf("<%s>\n", tag)
	closeTag := fmt.Sprintf("\n</%s>", tag)
	start := strings.Index(block, openTag)
	end := strings.Index(block, closeTag)
	if start == -1 || end == -1 {
		t.Fatalf("block has no %s section:\n%s", tag, block)
	}
	return block[start+len(openTag) : end]
}
