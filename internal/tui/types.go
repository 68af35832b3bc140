package tui

import (
	"codeberg.org/codeweaver/server/internal/dashboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/glamour"
)

// represents the current state of the TUI
type AppState int

const (
	StateWelcome AppState = iota
	StateEditor
	StateUpgrade
)

// main TUI application model
type Model struct {
	state   AppState
	mode    string
	width   int
	height  int
	err     error
	busy    bool
	session *dashboard.Session
	welcome *Welcome
	editor  *EditorModel
	upgrade *UpgradeModel
	spinner spinner.Model

	// where downloaded archives and previews are written
	outputDir string
}

// sent when an error occurs
type ErrorMsg struct {
	err error
}

// sent to transition to the editor state
type EnterEditorMsg struct{}

// sent to open the upgrade screen
type EnterUpgradeMsg struct{}

// sent when a session action finishes off the UI goroutine
type SessionMsg struct {
	session *dashboard.Session
	err     error
	path    string
}

// prompt editor and output panels
type EditorModel struct {
	input           textinput.Model
	viewport        viewport.Model
	width           int
	height          int
	glamourRenderer *glamour.TermRenderer
	renderedFor     string
	rendered        string
	previewPath     string
	ready           bool
}

// welcome screen model
type Welcome struct {
	mode     string
	input    string
	commands []Command
}

// represents an available TUI command
type Command struct {
	Name        string
	Description string
	Available   bool
}

type upgradeTab int

const (
	upgradeTabPro upgradeTab = iota
	upgradeTabCredits
)

// plan and credit purchase screen
type UpgradeModel struct {
	tab    upgradeTab
	amount textinput.Model
}
