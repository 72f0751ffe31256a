package browse

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/amishk599/skillradar/internal/tagger"
)

var (
	pickerTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("39")).
				Padding(1, 0, 1, 2)

	pickerItemStyle = lipgloss.NewStyle().
			Padding(0, 0, 0, 4)

	pickerSelectedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("39")).
				Bold(true).
				Padding(0, 0, 0, 2)

	pickerEmptyStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")).
				Padding(0, 0, 0, 4)

	pickerHintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Padding(1, 0, 0, 2)
)

const (
	noChoice = -1
	quit     = -2
)

type pickerModel struct {
	counts []tagger.SkillCount
	valid  int
	cursor int
	chosen int
}

func (m pickerModel) Init() tea.Cmd {
	return nil
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.chosen = quit
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.counts)-1 {
				m.cursor++
			}
		case "enter":
			if len(m.counts) > 0 {
				m.chosen = m.cursor
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

func (m pickerModel) View() string {
	s := pickerTitleStyle.Render(fmt.Sprintf("Skill Demand (%d postings): select a skill", m.valid))
	s += "\n"

	width := 0
	for _, c := range m.counts {
		width = max(width, len(c.Skill))
	}

	for i, c := range m.counts {
		label := fmt.Sprintf("%-*s %4d", width, c.Skill, c.Count)
		switch {
		case i == m.cursor:
			s += pickerSelectedStyle.Render("> "+label) + "\n"
		case c.Count == 0:
			s += pickerEmptyStyle.Render(label) + "\n"
		default:
			s += pickerItemStyle.Render(label) + "\n"
		}
	}

	s += pickerHintStyle.Render("↑/↓/j/k navigate  enter select  q quit")
	return s
}

// RunSkillPicker shows an interactive skill selector with per-skill counts.
// Returns the index of the chosen skill, or -1 if the user quit.
func RunSkillPicker(res tagger.Result) (int, error) {
	m := pickerModel{
		counts: res.Counts,
		valid:  res.Valid,
		chosen: noChoice,
	}

	p := tea.NewProgram(m)
	result, err := p.Run()
	if err != nil {
		return -1, err
	}

	final := result.(pickerModel)
	if final.chosen < 0 {
		return -1, nil
	}
	return final.chosen, nil
}
