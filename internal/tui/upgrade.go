package tui

import (
	"fmt"
	"strconv"
	"strings"

	"codeberg.org/codeweaver/server/internal/dashboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var proFeatures = []string{
	"Unlimited monthly credits",
	"Advanced AI models (GPT-4, Claude)",
	"Priority generation queue",
	"Custom prompt templates",
	"Affiliate program access",
	"Priority email support",
	"API access",
	"Early access to new features",
}

var creditPerks = []string{
	"Lifetime validity - never expires",
	"Instant credit top-up",
	"No monthly commitment",
}

func NewUpgradeModel() *UpgradeModel {
	ti := textinput.New()
	ti.Placeholder = "Minimum 10 credits"
	ti.CharLimit = 6
	ti.Width = 12
	ti.Prompt = "credits: "
	ti.PromptStyle = lipgloss.NewStyle().Foreground(colorLightGray)
	ti.TextStyle = lipgloss.NewStyle().Foreground(colorWhite)
	ti.SetValue(strconv.Itoa(dashboard.MinCreditPurchase))

	return &UpgradeModel{amount: ti}
}

// parsed credit amount, zero when the field is empty
func (m *UpgradeModel) credits() int {
	n, err := strconv.Atoi(m.amount.Value())
	if err != nil {
		return 0
	}

	return n
}

func (m *UpgradeModel) Update(msg tea.Msg, s *dashboard.Session) (tea.Cmd, bool) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "left", "right", "tab":
			if m.tab == upgradeTabPro {
				m.tab = upgradeTabCredits
				return m.amount.Focus(), false
			}
			m.tab = upgradeTabPro
			m.amount.Blur()
			return nil, false

		case "enter":
			if m.tab == upgradeTabPro {
				if s.Profile != nil && s.Profile.Plan == "pro" {
					return nil, false
				}
				return upgradeToPro(s), true
			}
			return buyCredits(s, m.credits()), true
		}
	}

	if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyRunes && !digitsOnly(key.Runes) {
		return nil, false
	}

	if m.tab == upgradeTabCredits {
		var cmd tea.Cmd
		m.amount, cmd = m.amount.Update(msg)
		return cmd, false
	}

	return nil, false
}

func (m *UpgradeModel) View(s *dashboard.Session, busy bool, spin string) string {
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(colorWhite).Render("UPGRADE"))
	b.WriteString("\n")
	b.WriteString(infoStyle.Render("Choose the plan that works best for you"))
	b.WriteString("\n")
	b.WriteString(infoStyle.Render(profileLine(s.Profile)))
	b.WriteString("\n\n")

	proTab, creditsTab := menuItemStyle.Render("Pro Plan"), menuItemStyle.Render("Buy Credits")
	if m.tab == upgradeTabPro {
		proTab = menuItemSelectedStyle.Render("[Pro Plan]")
	} else {
		creditsTab = menuItemSelectedStyle.Render("[Buy Credits]")
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Left, proTab, creditsTab))
	b.WriteString("\n\n")

	var card strings.Builder

	if m.tab == upgradeTabPro {
		card.WriteString(commandStyle.Render("Pro"))
		card.WriteString(commandDescStyle.Render("Unlimited power for serious developers"))
		card.WriteString("\n\n")
		for _, f := range proFeatures {
			card.WriteString("  + " + f + "\n")
		}
		card.WriteString("\n")

		if s.Profile != nil && s.Profile.Plan == "pro" {
			card.WriteString(infoStyle.Render("Current Plan"))
		} else {
			card.WriteString(successStyle.Render("press enter to Upgrade to Pro"))
		}
	} else {
		credits := m.credits()

		card.WriteString(commandDescStyle.Render("Pay as you go. Credits never expire. Perfect for occasional use."))
		card.WriteString("\n\n")
		card.WriteString(m.amount.View())
		card.WriteString("\n")
		card.WriteString(infoStyle.Render("$1 = 10 credits (minimum purchase)"))
		card.WriteString("\n\n")
		for _, p := range creditPerks {
			card.WriteString("  + " + p + "\n")
		}
		card.WriteString("\n")
		card.WriteString(successStyle.Render(fmt.Sprintf("press enter to Buy %d Credits for $%s", credits, dashboard.Price(credits))))
	}

	b.WriteString(borderStyle.Padding(1, 2).Render(card.String()))
	b.WriteString("\n")
	b.WriteString(statusLine(s.Notice, busy, spin))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("left/right switches tabs. esc closes."))

	return b.String()
}

func digitsOnly(runes []rune) bool {
	for _, r := range runes {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}
