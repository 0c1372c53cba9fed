package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/klauern/skillmeta/internal/skill"
)

// skillListKeyMap defines the key bindings for the skill list.
type skillListKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Detail   key.Binding
	Filter   key.Binding
	ClearFlt key.Binding
	Back     key.Binding
	Quit     key.Binding
}

func defaultSkillListKeyMap() skillListKeyMap {
	return skillListKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Detail: key.NewBinding(
			key.WithKeys("enter", "v"),
			key.WithHelp("enter/v", "details"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		ClearFlt: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear filter"),
		),
		Back: key.NewBinding(
			key.WithKeys("b", "esc"),
			key.WithHelp("b/esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

type skillListPhase int

const (
	skillListPhaseList skillListPhase = iota
	skillListPhaseDetail
)

const (
	skillListNameWidth     = 25
	skillListDescWidth     = 45
	skillListLocationWidth = 35
	skillListColumnPadding = 2
	skillListColumnCount   = 3
)

type skillListColumnWidths struct {
	name     int
	desc     int
	location int
}

// SkillListModel is the BubbleTea model for browsing discovered skills.
type SkillListModel struct {
	table        table.Model
	skills       []skill.Discovered
	filtered     []skill.Discovered
	keys         skillListKeyMap
	filter       string
	filtering    bool
	width        int
	height       int
	columnWidths skillListColumnWidths
	phase        skillListPhase
	detailSkill  skill.Discovered
	viewport     viewport.Model
	ready        bool
	quitting     bool
}

// NewSkillListModel creates a new skill list model.
func NewSkillListModel(skills []skill.Discovered) SkillListModel {
	sort.Slice(skills, func(i, j int) bool {
		return strings.ToLower(skills[i].Properties.Name) < strings.ToLower(skills[j].Properties.Name)
	})

	columns, widths := skillListColumns(0)
	m := SkillListModel{
		skills:       skills,
		filtered:     skills,
		keys:         defaultSkillListKeyMap(),
		columnWidths: widths,
		phase:        skillListPhaseList,
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(m.skillsToRows(skills)),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	m.table = t
	return m
}

func skillListColumns(totalWidth int) ([]table.Column, skillListColumnWidths) {
	widths := skillListColumnWidths{
		name:     skillListNameWidth,
		desc:     skillListDescWidth,
		location: skillListLocationWidth,
	}

	if totalWidth > 0 {
		baseTotal := widths.name + widths.desc + widths.location +
			(skillListColumnPadding * skillListColumnCount)
		extra := totalWidth - baseTotal
		if extra > 0 {
			nameExtra := extra / 3
			widths.name += nameExtra
			widths.desc += extra - nameExtra
		}
	}

	columns := []table.Column{
		{Title: "Name", Width: widths.name},
		{Title: "Description", Width: widths.desc},
		{Title: "Location", Width: widths.location},
	}
	return columns, widths
}

func (m *SkillListModel) updateColumns(totalWidth int) {
	columns, widths := skillListColumns(totalWidth)
	m.columnWidths = widths
	m.table.SetColumns(columns)
}

func (m SkillListModel) skillsToRows(skills []skill.Discovered) []table.Row {
	rows := make([]table.Row, len(skills))
	for i, s := range skills {
		rows[i] = table.Row{
			truncateCell(s.Properties.Name, m.columnWidths.name),
			truncateCell(s.Properties.Description, m.columnWidths.desc),
			truncateCell(s.Directory, m.columnWidths.location),
		}
	}
	return rows
}

func truncateCell(value string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width, "...")
}

// Init implements tea.Model.
func (m SkillListModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m SkillListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.phase == skillListPhaseDetail {
		return m.updateDetail(msg)
	}
	return m.updateList(msg)
}

func (m SkillListModel) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetHeight(max(msg.Height-8, 5))
		m.updateColumns(msg.Width)
		m.table.SetRows(m.skillsToRows(m.filtered))

	case tea.KeyMsg:
		if m.filtering {
			switch msg.String() {
			case "enter":
				m.filtering = false
				return m, nil
			case "esc":
				m.filter = ""
				m.filtering = false
				m.applyFilter()
				return m, nil
			case "backspace":
				if len(m.filter) > 0 {
					m.filter = m.filter[:len(m.filter)-1]
					m.applyFilter()
				}
				return m, nil
			default:
				if len(msg.String()) == 1 {
					m.filter += msg.String()
					m.applyFilter()
				}
				return m, nil
			}
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Filter):
			m.filtering = true
			return m, nil

		case key.Matches(msg, m.keys.ClearFlt):
			m.filter = ""
			m.applyFilter()
			return m, nil

		case key.Matches(msg, m.keys.Detail):
			if len(m.filtered) > 0 {
				m.detailSkill = m.selectedSkill()
				m.phase = skillListPhaseDetail
				m.ready = false
				m.ensureDetailViewport()
			}
			return m, nil
		}
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m SkillListModel) updateDetail(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ensureDetailViewport()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.phase = skillListPhaseList
			return m, nil
		}
	}

	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *SkillListModel) applyFilter() {
	if m.filter == "" {
		m.filtered = m.skills
	} else {
		var filtered []skill.Discovered
		lowerFilter := strings.ToLower(m.filter)
		for _, s := range m.skills {
			if strings.Contains(strings.ToLower(s.Properties.Name), lowerFilter) ||
				strings.Contains(strings.ToLower(s.Properties.Description), lowerFilter) ||
				strings.Contains(strings.ToLower(s.Directory), lowerFilter) {
				filtered = append(filtered, s)
			}
		}
		m.filtered = filtered
	}
	m.table.SetRows(m.skillsToRows(m.filtered))
}

func (m SkillListModel) selectedSkill() skill.Discovered {
	cursor := m.table.Cursor()
	if cursor >= 0 && cursor < len(m.filtered) {
		return m.filtered[cursor]
	}
	return skill.Discovered{}
}

// View implements tea.Model.
func (m SkillListModel) View() string {
	if m.quitting {
		return ""
	}

	if m.phase == skillListPhaseDetail {
		return m.viewDetail()
	}

	var b strings.Builder

	b.WriteString(Styles.Title.Render("Skills"))
	b.WriteString("\n\n")

	if m.filter != "" || m.filtering {
		filterVal := Styles.FilterInput.Render(m.filter)
		if m.filtering {
			filterVal += "█"
		}
		b.WriteString(Styles.Filter.Render("Filter: ") + filterVal + "\n\n")
	}

	b.WriteString(m.table.View())
	b.WriteString("\n")

	status := fmt.Sprintf("%d skill(s)", len(m.filtered))
	if m.filter != "" {
		status = fmt.Sprintf("%d of %d skill(s) (filtered)", len(m.filtered), len(m.skills))
	}
	b.WriteString(Styles.Status.Render(status))
	b.WriteString("\n")

	keys := []string{
		"↑/↓ navigate",
		"enter details",
		"/ filter",
		"q quit",
	}
	b.WriteString(Styles.Help.Render(strings.Join(keys, " • ")))

	return b.String()
}

func (m SkillListModel) viewDetail() string {
	m.ensureDetailViewport()
	if !m.ready {
		return "Loading..."
	}

	var b strings.Builder

	b.WriteString(Styles.Title.Render(fmt.Sprintf("Skill: %s", m.detailSkill.Properties.Name)))
	b.WriteString("\n\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(Styles.Help.Render("↑/↓ scroll • b back • q quit"))

	return b.String()
}

func (m *SkillListModel) ensureDetailViewport() {
	if m.width <= 0 || m.height <= 0 {
		return
	}

	viewportHeight := max(m.height-6, 5)
	if !m.ready {
		m.viewport = viewport.New(m.width-2, viewportHeight)
		m.viewport.SetContent(m.buildDetailContent(m.viewport.Width))
		m.ready = true
		return
	}

	m.viewport.Width = m.width - 2
	m.viewport.Height = viewportHeight
	m.viewport.SetContent(m.buildDetailContent(m.viewport.Width))
}

func (m SkillListModel) buildDetailContent(width int) string {
	props := m.detailSkill.Properties
	if props.Name == "" {
		return "No skill selected."
	}

	var b strings.Builder
	indent := "  "

	b.WriteString(Styles.DetailTitle.Render("Skill"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%sName: %s\n", indent, props.Name))
	b.WriteString(fmt.Sprintf("%sLocation: %s\n", indent, m.detailSkill.Manifest))
	if props.License != "" {
		b.WriteString(fmt.Sprintf("%sLicense: %s\n", indent, props.License))
	}
	if props.Compatibility != "" {
		b.WriteString(fmt.Sprintf("%sCompatibility: %s\n", indent, props.Compatibility))
	}
	if props.AllowedTools != "" {
		b.WriteString(fmt.Sprintf("%sAllowed tools: %s\n", indent, props.AllowedTools))
	}
	if len(props.Metadata) > 0 {
		b.WriteString(fmt.Sprintf("%sMetadata:\n", indent))
		keys := make([]string, 0, len(props.Metadata))
		for k := range props.Metadata {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			b.WriteString(fmt.Sprintf("%s%s%s: %s\n", indent, indent, k, props.Metadata[k]))
		}
	}

	b.WriteString("\n")
	b.WriteString(Styles.DetailTitle.Render("Description"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Width(max(width, 10)).Render(props.Description))
	b.WriteString("\n")

	return b.String()
}

// RunSkillList runs the interactive skill browser.
func RunSkillList(skills []skill.Discovered) error {
	if len(skills) == 0 {
		return nil
	}
	_, err := Run(NewSkillListModel(skills))
	return err
}
