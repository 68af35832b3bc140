package tui

import (
	"fmt"

	"codeberg.org/codeweaver/server/internal/dashboard"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// builds the dashboard app; outputDir receives downloaded archives and previews
func NewApp(mode string, backend dashboard.Backend, outputDir string) *Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(colorPurple)

	return &Model{
		state:     StateWelcome,
		mode:      mode,
		session:   dashboard.NewSession(backend),
		welcome:   NewWelcome(mode),
		editor:    NewEditorModel(),
		upgrade:   NewUpgradeModel(),
		spinner:   sp,
		outputDir: outputDir,
	}
}

func (m *Model) Init() tea.Cmd {
	m.busy = true
	return tea.Batch(m.spinner.Tick, refreshProfile(m.session))
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// an error screen is dismissed by any key other than ctrl+c
		if m.err != nil && msg.String() != "ctrl+c" {
			m.err = nil
			return m, nil
		}

		switch {
		case msg.String() == "ctrl+c" && m.state == StateWelcome:
			return m, tea.Quit

		case (msg.String() == "ctrl+c" || msg.String() == "esc") && m.state == StateUpgrade:
			m.session.CloseUpgrade()
			m.state = m.returnState()
			return m, nil

		case msg.String() == "ctrl+c" && m.state == StateEditor:
			m.state = StateWelcome
			return m, nil
		}

		// one request at a time
		if m.busy {
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.editor.Update(msg, m.session, m.outputDir)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case ErrorMsg:
		m.err = msg.err
		return m, nil

	case EnterEditorMsg:
		m.state = StateEditor
		return m, m.editor.Init()

	case EnterUpgradeMsg:
		m.session.UpgradeOpen = true
		m.state = StateUpgrade
		return m, nil

	case refreshRequestMsg:
		return m, m.startBusy(refreshProfile(m.session), true)

	case SessionMsg:
		return m.applySession(msg)
	}

	switch m.state {
	case StateWelcome:
		var cmd tea.Cmd
		m.welcome, cmd = m.welcome.Update(msg)
		return m, cmd

	case StateEditor:
		return m, m.startBusy(m.editor.Update(msg, m.session, m.outputDir))

	case StateUpgrade:
		return m, m.startBusy(m.upgrade.Update(msg, m.session))

	default:
		return m, nil
	}
}

// adopts the session a finished action produced
func (m *Model) applySession(msg SessionMsg) (tea.Model, tea.Cmd) {
	m.busy = false
	m.session = msg.session

	if msg.err == nil && msg.path != "" && m.session.Tab == dashboard.TabPreview {
		m.editor.previewPath = msg.path
	}

	switch {
	case m.session.UpgradeOpen:
		m.state = StateUpgrade
	case m.state == StateUpgrade:
		m.state = m.returnState()
	}

	m.editor.sync(m.session)

	return m, nil
}

// only session actions flip the app into the busy state
func (m *Model) startBusy(cmd tea.Cmd, action bool) tea.Cmd {
	if !action {
		return cmd
	}

	m.busy = true

	return tea.Batch(cmd, m.spinner.Tick)
}

func (m *Model) returnState() AppState {
	if m.session.Code != "" || m.session.Prompt != "" {
		return StateEditor
	}

	return StateWelcome
}

func (m *Model) View() string {
	if m.err != nil {
		return errorView(m.err)
	}

	switch m.state {
	case StateWelcome:
		return m.welcome.View(m.session)

	case StateEditor:
		return m.editor.View(m.session, m.busy, m.spinner.View())

	case StateUpgrade:
		return m.upgrade.View(m.session, m.busy, m.spinner.View())

	default:
		return "Unknown state"
	}
}

func errorView(err error) string {
	return fmt.Sprintf("\n  Error: %v\n\n  Press any key to continue\n", err)
}
