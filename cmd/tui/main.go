package main

import (
	"fmt"
	"os"

	"codeberg.org/codeweaver/server/internal/dashboard"
	"codeberg.org/codeweaver/server/internal/tui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/term"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load() // optional .env next to the binary

	env := os.Getenv("CODEWEAVER_ENV")

	if env == "" {
		env = "development"
	}

	if !term.IsTerminal(os.Stdout.Fd()) {
		fmt.Println("codeweaver needs an interactive terminal")
		os.Exit(1)
	}

	token := os.Getenv("CODEWEAVER_TOKEN")
	if token == "" {
		fmt.Println("CODEWEAVER_TOKEN is required (a bearer token for your account)")
		os.Exit(1)
	}

	outputDir, err := os.Getwd()
	if err != nil {
		outputDir = os.TempDir()
	}

	client := dashboard.NewClient(os.Getenv("CODEWEAVER_API_ENDPOINT"), token)

	app := tui.NewApp(env, client, outputDir)
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())

	if _, err := p.Run(); err != nil {
		fmt.Printf("error running codeweaver: %v\n", err)
		os.Exit(1)
	}
}
