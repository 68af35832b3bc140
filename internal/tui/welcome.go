package tui

import (
	"fmt"
	"strings"

	"codeberg.org/codeweaver/server/internal/dashboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// returns a new welcome screen
func NewWelcome(mode string) *Welcome {
	commands := []Command{
		{Name: "dashboard", Description: "write a prompt and generate code", Available: true},
		{Name: "upgrade", Description: "see plans and buy credits", Available: true},
		{Name: "refresh", Description: "reload your profile", Available: true},
		{Name: "quit", Description: "exit codeweaver", Available: true},
	}

	return &Welcome{
		mode:     mode,
		commands: commands,
	}
}

func (m *Welcome) Update(msg tea.Msg) (*Welcome, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "enter":
			cmd := m.executeCommand()
			m.input = ""
			return m, cmd
		case "backspace":
			if len(m.input) > 0 {
				m.input = m.input[:len(m.input)-1]
			}
		default:
			if len(msg.String()) == 1 {
				m.input += msg.String()
			}
		}
	}

	return m, nil
}

func (m *Welcome) View(s *dashboard.Session) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(logo))
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render("turn plain language into working code"))
	b.WriteString("\n\n")

	b.WriteString(infoStyle.Render(fmt.Sprintf("mode: %s", strings.ToUpper(m.mode))))
	b.WriteString("\n")
	b.WriteString(infoStyle.Render(profileLine(s.Profile)))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(colorWhite).Render("commands:"))
	b.WriteString("\n\n")

	for _, cmd := range m.commands {
		if !cmd.Available {
			continue
		}
		line := fmt.Sprintf("  %s %s",
			commandStyle.Render(cmd.Name),
			commandDescStyle.Render("- "+cmd.Description),
		)
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")

	prompt := promptStyle.Render("> ")
	input := inputStyle.Render(m.input + "_")
	b.WriteString(prompt + input)
	b.WriteString("\n\n")

	b.WriteString(helpStyle.Render("type a command and press enter. press ctrl+c to quit."))

	return b.String()
}

func (m *Welcome) executeCommand() tea.Cmd {
	cmd := strings.TrimSpace(m.input)

	switch cmd {
	case "quit":
		return tea.Quit

	case "dashboard":
		return func() tea.Msg {
			return EnterEditorMsg{}
		}

	case "upgrade":
		return func() tea.Msg {
			return EnterUpgradeMsg{}
		}

	case "refresh":
		return func() tea.Msg {
			return refreshRequestMsg{}
		}

	default:
		if cmd != "" {
			return func() tea.Msg {
				return ErrorMsg{err: fmt.Errorf("unknown command: %s.", cmd)}
			}
		}
		return nil
	}
}

type refreshRequestMsg struct{}

func profileLine(p *dashboard.Profile) string {
	if p == nil {
		return "profile: not loaded"
	}

	name := p.FullName
	if name == "" {
		name = p.ID
	}

	if p.Unlimited || p.Plan == "pro" {
		return fmt.Sprintf("%s | PRO | unlimited credits", name)
	}

	return fmt.Sprintf("%s | FREE | %d credits", name, p.Credits)
}
