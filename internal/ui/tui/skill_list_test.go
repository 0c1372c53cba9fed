package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/klauern/skillmeta/internal/model"
	"github.com/klauern/skillmeta/internal/skill"
)

func testSkills() []skill.Discovered {
	return []skill.Discovered{
		{
			Directory: "/home/user/.claude/skills/git-workflows",
			Manifest:  "/home/user/.claude/skills/git-workflows/SKILL.md",
			Properties: model.SkillProperties{
				Name:        "git-workflows",
				Description: "Helpful git workflows",
				License:     "MIT",
				Metadata:    map[string]string{"author": "Test Author"},
			},
		},
		{
			Directory: "/home/user/.claude/skills/code-review",
			Manifest:  "/home/user/.claude/skills/code-review/SKILL.md",
			Properties: model.SkillProperties{
				Name:        "code-review",
				Description: "Review code carefully",
			},
		},
	}
}

func TestNewSkillListModel(t *testing.T) {
	m := NewSkillListModel(testSkills())

	if len(m.skills) != 2 {
		t.Errorf("expected 2 skills, got %d", len(m.skills))
	}
	if len(m.filtered) != 2 {
		t.Errorf("expected 2 filtered skills, got %d", len(m.filtered))
	}
	// Sorted alphabetically by name
	if m.skills[0].Properties.Name != "code-review" {
		t.Errorf("expected code-review first, got %s", m.skills[0].Properties.Name)
	}
}

func TestSkillListModel_Filter(t *testing.T) {
	m := NewSkillListModel(testSkills())
	m.filter = "git"
	m.applyFilter()

	if len(m.filtered) != 1 {
		t.Fatalf("expected 1 filtered skill, got %d", len(m.filtered))
	}
	if m.filtered[0].Properties.Name != "git-workflows" {
		t.Errorf("expected git-workflows, got %s", m.filtered[0].Properties.Name)
	}

	m.filter = ""
	m.applyFilter()
	if len(m.filtered) != 2 {
		t.Errorf("expected filter reset to 2 skills, got %d", len(m.filtered))
	}
}

func TestSkillListModel_FilterByDirectory(t *testing.T) {
	m := NewSkillListModel(testSkills())
	m.filter = "code-review"
	m.applyFilter()

	if len(m.filtered) != 1 {
		t.Errorf("expected 1 filtered skill, got %d", len(m.filtered))
	}
}

func TestSkillListModel_QuitKey(t *testing.T) {
	m := NewSkillListModel(testSkills())

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if sm, ok := updated.(SkillListModel); !ok || !sm.quitting {
		t.Error("expected model to be quitting")
	}
}

func TestSkillListModel_DetailPhase(t *testing.T) {
	m := NewSkillListModel(testSkills())
	m.width = 80
	m.height = 24

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	sm, ok := updated.(SkillListModel)
	if !ok {
		t.Fatal("unexpected model type")
	}
	if sm.phase != skillListPhaseDetail {
		t.Fatal("expected detail phase after enter")
	}
	if sm.detailSkill.Properties.Name != "code-review" {
		t.Errorf("expected selected skill code-review, got %s", sm.detailSkill.Properties.Name)
	}

	back, _ := sm.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'b'}})
	if bm, ok := back.(SkillListModel); !ok || bm.phase != skillListPhaseList {
		t.Error("expected list phase after back")
	}
}

func TestSkillListModel_DetailContent(t *testing.T) {
	m := NewSkillListModel(testSkills())
	m.detailSkill = m.skills[1] // git-workflows after sorting

	content := m.buildDetailContent(60)
	for _, want := range []string{"git-workflows", "MIT", "author: Test Author", "Helpful git workflows"} {
		if !strings.Contains(content, want) {
			t.Errorf("detail content missing %q:\n%s", want, content)
		}
	}
}

func TestTruncateCell(t *testing.T) {
	tests := map[string]struct {
		value string
		width int
		want  string
	}{
		"fits":        {"short", 10, "short"},
		"exact":       {"exactly-10", 10, "exactly-10"},
		"truncated":   {"a very long value", 10, "a very ..."},
		"tiny width":  {"abcdef", 2, "ab"},
		"zero width":  {"abc", 0, ""},
		"wide glyphs": {"技能技能技能", 6, "技..."},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			if got := truncateCell(tc.value, tc.width); got != tc.want {
				t.Errorf("truncateCell(%q, %d) = %q, want %q", tc.value, tc.width, got, tc.want)
			}
		})
	}
}
