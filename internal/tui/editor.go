package tui

import (
	"fmt"
	"strings"

	"codeberg.org/codeweaver/server/internal/dashboard"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

const editorChrome = 12

// returns a new prompt editor
func NewEditorModel() *EditorModel {
	ti := textinput.New()
	ti.Placeholder = "describe the code you want..."
	ti.Focus()
	ti.CharLimit = 5000
	ti.Width = 80
	ti.Prompt = "> "
	ti.PromptStyle = lipgloss.NewStyle().Foreground(colorLightGray)
	ti.TextStyle = lipgloss.NewStyle().Foreground(colorWhite)

	return &EditorModel{
		input: ti,
	}
}

func (m *EditorModel) Init() tea.Cmd {
	return textinput.Blink
}

// handles editor keys; the bool reports whether a session action was started
func (m *EditorModel) Update(msg tea.Msg, s *dashboard.Session, outputDir string) (tea.Cmd, bool) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			s.Prompt = m.input.Value()
			return generateCode(s), true

		case "ctrl+r":
			return runCode(s), true

		case "ctrl+s":
			return downloadZip(s, outputDir), true

		case "ctrl+y":
			return copyCode(s), true

		case "ctrl+l":
			s.CycleLanguage()
			m.sync(s)
			return nil, false

		case "tab":
			s.CycleTab()
			m.previewPath = ""
			m.sync(s)
			if s.Tab == dashboard.TabPreview && s.PreviewAvailable() {
				return writePreview(s, outputDir), true
			}
			return nil, false

		case "ctrl+u":
			return func() tea.Msg { return EnterUpgradeMsg{} }, false

		case "pgup", "pgdown":
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return cmd, false
		}

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		m.sync(s)
		return nil, false
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	return cmd, false
}

func (m *EditorModel) resize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = max(10, width-10)

	vw, vh := max(10, width-4), max(3, height-editorChrome)

	if !m.ready {
		m.viewport = viewport.New(vw, vh)
		m.ready = true
	} else {
		m.viewport.Width = vw
		m.viewport.Height = vh
	}

	// glamour wraps at a fixed width, so a resize needs a fresh renderer
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(vw),
	)
	if err == nil {
		m.glamourRenderer = renderer
	}

	m.renderedFor = ""
}

// refreshes the viewport from the session
func (m *EditorModel) sync(s *dashboard.Session) {
	if !m.ready {
		return
	}

	var content string

	switch s.Tab {
	case dashboard.TabPreview:
		content = previewText(s, m.previewPath)
	case dashboard.TabConsole:
		content = s.Console
		if content == "" {
			content = infoStyle.Render("Console output will appear here...")
		}
	default:
		content = m.renderCode(s)
	}

	m.viewport.SetContent(content)
}

func (m *EditorModel) renderCode(s *dashboard.Session) string {
	if s.Code == "" {
		return infoStyle.Render("No code generated yet\nEnter a prompt to get started")
	}

	key := s.Language + "\x00" + s.Code
	if key == m.renderedFor {
		return m.rendered
	}

	m.renderedFor = key
	m.rendered = s.Code

	if m.glamourRenderer == nil {
		return m.rendered
	}

	rendered, err := m.glamourRenderer.Render(fmt.Sprintf("```%s\n%s\n```", fenceLanguage(s.Language), s.Code))
	if err == nil {
		m.rendered = rendered
	}

	return m.rendered
}

func previewText(s *dashboard.Session, path string) string {
	if !s.PreviewAvailable() {
		return infoStyle.Render("Preview not available\nOnly available for HTML and React code")
	}

	if path == "" {
		return infoStyle.Render("writing preview...")
	}

	return successStyle.Render("preview written to file://"+path) + "\n" +
		infoStyle.Render("open it in a browser to view the page")
}

// maps a dashboard language to the fence tag chroma highlights
func fenceLanguage(language string) string {
	if language == "react" {
		return "jsx"
	}

	return language
}

func (m *EditorModel) View(s *dashboard.Session, busy bool, spin string) string {
	var b strings.Builder

	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(colorWhite).
		Render("DASHBOARD")

	help := lipgloss.NewStyle().
		Foreground(colorGray).
		Render("[Enter: Generate] [Ctrl+R: Run] [Ctrl+S: Zip] [Ctrl+Y: Copy] [Ctrl+L: Language] [Tab: Panel] [Ctrl+U: Upgrade] [Ctrl+C: Back]")

	headerLine := lipgloss.JoinHorizontal(lipgloss.Left,
		header,
		strings.Repeat(" ", max(0, m.width-lipgloss.Width(header)-lipgloss.Width(help)-2)),
		help,
	)

	b.WriteString(headerLine)
	b.WriteString("\n")
	b.WriteString(infoStyle.Render(fmt.Sprintf("%s | language: %s", profileLine(s.Profile), s.LanguageLabel())))
	b.WriteString("\n\n")

	b.WriteString(tabBar(s.Tab))
	b.WriteString("\n")

	body := m.viewport.View()
	if !m.ready {
		body = infoStyle.Render("loading...")
	}

	b.WriteString(borderStyle.Width(max(10, m.width-4)).Render(body))
	b.WriteString("\n")

	inputBox := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(colorGray).
		Width(max(10, m.width-4)).
		Padding(0, 1).
		Render(m.input.View())

	b.WriteString(inputBox)
	b.WriteString("\n")

	b.WriteString(statusLine(s.Notice, busy, spin))

	return b.String()
}

func tabBar(active dashboard.Tab) string {
	tabs := []dashboard.Tab{dashboard.TabCode, dashboard.TabPreview, dashboard.TabConsole}
	parts := make([]string, 0, len(tabs))

	for _, t := range tabs {
		if t == active {
			parts = append(parts, menuItemSelectedStyle.Render("["+t.String()+"]"))
			continue
		}
		parts = append(parts, menuItemStyle.Render(t.String()))
	}

	return lipgloss.JoinHorizontal(lipgloss.Left, parts...)
}

func statusLine(n *dashboard.Notice, busy bool, spin string) string {
	if busy {
		return infoStyle.Render(spin + " working...")
	}

	if n == nil {
		return ""
	}

	text := n.Title
	if n.Description != "" {
		text += ": " + n.Description
	}

	if n.Destructive {
		return errorStyle.Render(text)
	}

	return successStyle.Render(text)
}
