package browse

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/amishk599/skillradar/internal/model"
)

// Lines per job item in the list pane (title + subtitle + blank separator).
const jobItemHeight = 3

const (
	paneJobs = iota
	paneDetail
)

var (
	activeBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("39")) // bright blue

	inactiveBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("240")) // dim gray

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1)

	activeHeaderStyle = headerStyle.
				Foreground(lipgloss.Color("39"))

	inactiveHeaderStyle = headerStyle.
				Foreground(lipgloss.Color("240"))

	statusBarStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("236"))

	jobTitleStyle = lipgloss.NewStyle().
			Bold(true)

	jobSubtitleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("245"))

	selectedJobTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("24"))

	selectedJobSubtitleStyle = lipgloss.NewStyle().
					Foreground(lipgloss.Color("252")).
					Background(lipgloss.Color("24"))

	detailLabelStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("39")).
				Width(12)

	detailTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("15")).
				MarginBottom(1)

	skillStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	focusSkillStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("36"))

	descDividerStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240"))

	descBodyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))
)

type browseModel struct {
	skill          string
	jobs           []model.Job
	tags           [][]string // matched skills per job
	listViewport   viewport.Model
	detailViewport viewport.Model
	activePane     int
	cursor         int
	width          int
	height         int
	ready          bool

	wantQuit bool
}

func newBrowseModel(skill string, jobs []model.Job, tagFn func(model.Job) []string) browseModel {
	tags := make([][]string, len(jobs))
	for i, j := range jobs {
		tags[i] = tagFn(j)
	}
	return browseModel{skill: skill, jobs: jobs, tags: tags}
}

func (m browseModel) Init() tea.Cmd {
	return nil
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.recalcLayout()
		return m, nil

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}

	return m, nil
}

func (m browseModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.wantQuit = true
		return m, tea.Quit
	case "esc", "b":
		m.wantQuit = false
		return m, tea.Quit
	case "tab", "left", "right":
		m.activePane = 1 - m.activePane
		m.recalcContent()
		return m, nil
	case "enter":
		if m.activePane == paneJobs && len(m.jobs) > 0 {
			m.activePane = paneDetail
			m.recalcContent()
		}
		return m, nil
	case "o":
		if len(m.jobs) > 0 && m.jobs[m.cursor].Link != "" {
			openURL(m.jobs[m.cursor].Link)
		}
		return m, nil
	}

	if m.activePane == paneJobs {
		switch msg.String() {
		case "up", "k":
			m.moveCursor(-1)
			return m, nil
		case "down", "j":
			m.moveCursor(1)
			return m, nil
		}
	}

	// Forward other keys (scrolling, pgup/pgdn) to the active viewport.
	var cmd tea.Cmd
	if m.activePane == paneJobs {
		m.listViewport, cmd = m.listViewport.Update(msg)
	} else {
		m.detailViewport, cmd = m.detailViewport.Update(msg)
	}
	return m, cmd
}

func (m *browseModel) moveCursor(delta int) {
	next := clamp(m.cursor+delta, 0, max(len(m.jobs)-1, 0))
	if next == m.cursor {
		return
	}
	m.cursor = next
	m.recalcContent()
	m.detailViewport.SetYOffset(0)
	m.ensureCursorVisible()
}

func (m *browseModel) ensureCursorVisible() {
	vp := &m.listViewport
	cursorTop := m.cursor * jobItemHeight
	cursorBottom := cursorTop + jobItemHeight - 1

	if cursorTop < vp.YOffset {
		vp.SetYOffset(cursorTop)
	} else if cursorBottom >= vp.YOffset+vp.Height {
		vp.SetYOffset(cursorBottom - vp.Height + 1)
	}
}

func (m *browseModel) recalcLayout() {
	// 2 border chars per pane + 1 gap; the detail pane gets the wider share.
	listWidth := max((m.width-5)*2/5, 20)
	detailWidth := max(m.width-5-listWidth, 20)

	// Header (1 line) + border top/bottom (2) + status bar (1) = 4 lines overhead.
	paneHeight := max(m.height-4, 5)

	if !m.ready {
		m.listViewport = viewport.New(listWidth, paneHeight)
		m.detailViewport = viewport.New(detailWidth, paneHeight)
		m.ready = true
	} else {
		m.listViewport.Width = listWidth
		m.listViewport.Height = paneHeight
		m.detailViewport.Width = detailWidth
		m.detailViewport.Height = paneHeight
	}

	m.recalcContent()
}

func (m *browseModel) recalcContent() {
	m.listViewport.SetContent(renderJobs(m.jobs, m.cursor, m.activePane == paneJobs))
	m.detailViewport.SetContent(m.renderDetail())
}

func (m browseModel) View() string {
	if !m.ready {
		return "Initializing..."
	}

	listHeader := fmt.Sprintf(" Jobs mentioning %s (%d)", m.skill, len(m.jobs))
	detailHeader := " Job Details"

	listHeaderStyle, detailHeaderStyle := activeHeaderStyle, inactiveHeaderStyle
	listBorder, detailBorder := activeBorderStyle, inactiveBorderStyle
	if m.activePane == paneDetail {
		listHeaderStyle, detailHeaderStyle = inactiveHeaderStyle, activeHeaderStyle
		listBorder, detailBorder = inactiveBorderStyle, activeBorderStyle
	}

	listPane := listBorder.Width(m.listViewport.Width).Render(m.listViewport.View())
	detailPane := detailBorder.Width(m.detailViewport.Width).Render(m.detailViewport.View())

	headerRow := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(m.listViewport.Width+2).Render(listHeaderStyle.Render(listHeader)),
		" ",
		lipgloss.NewStyle().Width(m.detailViewport.Width+2).Render(detailHeaderStyle.Render(detailHeader)),
	)

	panes := lipgloss.JoinHorizontal(lipgloss.Top, listPane, " ", detailPane)

	statusText := " ←/→/Tab switch  ↑/↓ move  o open link  Esc skills  q quit"
	statusBar := statusBarStyle.Width(m.width).Render(statusText)

	return headerRow + "\n" + panes + "\n" + statusBar
}

func (m browseModel) renderDetail() string {
	if len(m.jobs) == 0 {
		return "  (no jobs)"
	}
	j := m.jobs[m.cursor]
	var b strings.Builder

	addField := func(label, value string) {
		if value == "" {
			return
		}
		b.WriteString(detailLabelStyle.Render(label))
		b.WriteString(value)
		b.WriteByte('\n')
	}

	b.WriteString(detailTitleStyle.Render(model.OrNA(j.Title)))
	b.WriteByte('\n')
	addField("Company", j.Company)
	addField("Job Type", j.JobType)
	addField("Posted", j.PostDate)
	addField("Link", j.Link)

	if tags := m.tags[m.cursor]; len(tags) > 0 {
		rendered := make([]string, len(tags))
		for i, t := range tags {
			if t == m.skill {
				rendered[i] = focusSkillStyle.Render(t)
			} else {
				rendered[i] = skillStyle.Render(t)
			}
		}
		addField("Skills", strings.Join(rendered, ", "))
	}

	wrapWidth := max(m.detailViewport.Width-2, 20)
	b.WriteByte('\n')
	label := "── Job Description "
	b.WriteString(descDividerStyle.Render(label+strings.Repeat("─", max(wrapWidth-len(label), 3))) + "\n\n")

	if j.HasDescription() {
		b.WriteString(descBodyStyle.Render(wordWrap(j.Description, wrapWidth)) + "\n")
	} else {
		b.WriteString(warnStyle.Render("  "+j.DescriptionText()) + "\n")
	}

	return b.String()
}

func renderJobs(jobs []model.Job, cursor int, isActive bool) string {
	if len(jobs) == 0 {
		return "  (no jobs)"
	}

	var b strings.Builder
	for i, j := range jobs {
		isSelected := i == cursor

		titleSt := jobTitleStyle
		subtitleSt := jobSubtitleStyle
		prefix := "  "
		if isSelected {
			prefix = "> "
			if isActive {
				titleSt = selectedJobTitleStyle
				subtitleSt = selectedJobSubtitleStyle
			}
		}

		b.WriteString(prefix)
		b.WriteString(titleSt.Render(model.OrNA(j.Title)))
		b.WriteByte('\n')

		b.WriteString(prefix)
		b.WriteString(subtitleSt.Render(fmt.Sprintf("%s · %s", model.OrNA(j.Company), model.OrNA(j.PostDate))))
		b.WriteByte('\n')

		if i < len(jobs)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func wordWrap(text string, width int) string {
	var out []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}
		line := words[0]
		for _, w := range words[1:] {
			if len(line)+1+len(w) <= width {
				line += " " + w
			} else {
				out = append(out, line)
				line = w
			}
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// openURL opens url in the default system browser, fire-and-forget.
func openURL(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	default:
		return
	}
	_ = cmd.Start()
}

// RunBrowseTUI shows the jobs mentioning skill next to the selected job's
// details. tagFn supplies the skills matched in each job.
// Returns wantQuit=true if the user pressed q/ctrl+c, false if they pressed esc
// to return to the skill picker.
func RunBrowseTUI(skill string, jobs []model.Job, tagFn func(model.Job) []string) (bool, error) {
	m := newBrowseModel(skill, jobs, tagFn)

	p := tea.NewProgram(m, tea.WithAltScreen())
	result, err := p.Run()
	if err != nil {
		return false, err
	}
	final := result.(browseModel)
	return final.wantQuit, nil
}
