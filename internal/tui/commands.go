package tui

import (
	"context"
	"time"

	"codeberg.org/codeweaver/server/internal/dashboard"
	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
)

// generation can take as long as the upstream model allows
const actionTimeout = 90 * time.Second

// runs fn against a copy of the session and hands the copy back as a SessionMsg
func sessionAction(s *dashboard.Session, fn func(ctx context.Context, s *dashboard.Session) (string, error)) tea.Cmd {
	clone := s.Clone()

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
		defer cancel()

		path, err := fn(ctx, clone)

		return SessionMsg{session: clone, err: err, path: path}
	}
}

func refreshProfile(s *dashboard.Session) tea.Cmd {
	return sessionAction(s, func(ctx context.Context, s *dashboard.Session) (string, error) {
		return "", s.Refresh(ctx)
	})
}

func generateCode(s *dashboard.Session) tea.Cmd {
	return sessionAction(s, func(ctx context.Context, s *dashboard.Session) (string, error) {
		return "", s.Generate(ctx)
	})
}

func runCode(s *dashboard.Session) tea.Cmd {
	return sessionAction(s, func(ctx context.Context, s *dashboard.Session) (string, error) {
		return "", s.Run(ctx)
	})
}

func downloadZip(s *dashboard.Session, dir string) tea.Cmd {
	return sessionAction(s, func(ctx context.Context, s *dashboard.Session) (string, error) {
		return s.DownloadZip(ctx, dir)
	})
}

func writePreview(s *dashboard.Session, dir string) tea.Cmd {
	return sessionAction(s, func(_ context.Context, s *dashboard.Session) (string, error) {
		return s.WritePreview(dir)
	})
}

func copyCode(s *dashboard.Session) tea.Cmd {
	return sessionAction(s, func(_ context.Context, s *dashboard.Session) (string, error) {
		return "", s.Copy(clipboard.WriteAll)
	})
}

func upgradeToPro(s *dashboard.Session) tea.Cmd {
	return sessionAction(s, func(ctx context.Context, s *dashboard.Session) (string, error) {
		return "", s.Upgrade(ctx)
	})
}

func buyCredits(s *dashboard.Session, amount int) tea.Cmd {
	return sessionAction(s, func(ctx context.Context, s *dashboard.Session) (string, error) {
		return "", s.BuyCredits(ctx, amount)
	})
}
