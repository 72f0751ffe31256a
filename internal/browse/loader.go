package browse

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/amishk599/skillradar/internal/model"
)

// ErrCancelled is returned by RunLoader when the user aborts with ctrl+c.
var ErrCancelled = errors.New("cancelled")

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

type collectDoneMsg struct {
	jobs []model.Job
	err  error
}

type spinnerTickMsg struct{}

type loaderModel struct {
	source    string
	collectFn func(ctx context.Context) ([]model.Job, error)
	ctx       context.Context
	cancel    context.CancelFunc
	frame     int
	result    []model.Job
	err       error
	done      bool
}

func (m loaderModel) Init() tea.Cmd {
	return tea.Batch(m.doCollect(), m.tick())
}

func (m loaderModel) doCollect() tea.Cmd {
	collectFn, ctx := m.collectFn, m.ctx
	return func() tea.Msg {
		jobs, err := collectFn(ctx)
		return collectDoneMsg{jobs: jobs, err: err}
	}
}

func (m loaderModel) tick() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(time.Time) tea.Msg {
		return spinnerTickMsg{}
	})
}

func (m loaderModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case collectDoneMsg:
		m.result = msg.jobs
		m.err = msg.err
		m.done = true
		return m, tea.Quit
	case spinnerTickMsg:
		if m.done {
			return m, nil
		}
		m.frame = (m.frame + 1) % len(spinnerFrames)
		return m, m.tick()
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.cancel()
			m.done = true
			m.err = ErrCancelled
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m loaderModel) View() string {
	if m.done {
		return ""
	}
	spinner := lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Render(spinnerFrames[m.frame])
	return fmt.Sprintf("%s Collecting jobs from %s...\n", spinner, m.source)
}

// RunLoader shows a spinner while collectFn runs. It renders inline (no alt screen).
// Cancelling with ctrl+c cancels the context passed to collectFn.
func RunLoader(ctx context.Context, source string, collectFn func(ctx context.Context) ([]model.Job, error)) ([]model.Job, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := loaderModel{
		source:    source,
		collectFn: collectFn,
		ctx:       ctx,
		cancel:    cancel,
	}
	p := tea.NewProgram(m)
	result, err := p.Run()
	if err != nil {
		return nil, err
	}
	final := result.(loaderModel)
	return final.result, final.err
}
