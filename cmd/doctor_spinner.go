package cmd

import (
	"context"
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const doctorCheckLabel = "Contacting Telegram..."

type doctorCheckDoneMsg struct {
	err error
}

// doctorCheckModel animates a spinner while the Telegram check runs,
// then quits carrying the check's error.
type doctorCheckModel struct {
	spinner spinner.Model
	check   tea.Cmd
	err     error
	done    bool
}

func newDoctorCheckModel(check func() error) doctorCheckModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
	)

	return doctorCheckModel{
		spinner: s,
		check: func() tea.Msg {
			return doctorCheckDoneMsg{err: check()}
		},
	}
}

func (m doctorCheckModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.check)
}

func (m doctorCheckModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case doctorCheckDoneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m doctorCheckModel) View() string {
	if m.done {
		return ""
	}
	return m.spinner.View() + " " + doctorCheckLabel
}

func runDoctorCheck(ctx context.Context, output io.Writer, check func(context.Context) error) error {
	p := tea.NewProgram(
		newDoctorCheckModel(func() error { return check(ctx) }),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	if m, ok := finalModel.(doctorCheckModel); ok {
		return m.err
	}
	return nil
}
