package dashboard

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

var (
	ErrEmptyPrompt    = errors.New("Please enter a prompt")
	ErrOutOfCredits   = errors.New("Upgrade to Pro for unlimited credits")
	ErrRunNeedsCredit = errors.New("Running code requires credits")
	ErrNoCode         = errors.New("no code generated yet")
	ErrMinimumCredits = fmt.Errorf("Minimum purchase is %d credits ($1)", MinCreditPurchase)

	ErrPreviewUnavailable = errors.New("Only available for HTML and React code")
)

const (
	MinCreditPurchase = 10

	runningBanner   = "Running code...\n"
	previewFilename = "codeweaver-preview.html"
)

// holds the dashboard state for one signed-in user
type Session struct {
	backend Backend
	now     func() time.Time

	Prompt      string
	Language    string
	Code        string
	Console     string
	Tab         Tab
	Profile     *Profile
	Notice      *Notice
	UpgradeOpen bool
}

func NewSession(backend Backend) *Session {
	return &Session{
		backend:  backend,
		now:      time.Now,
		Language: DefaultLanguage,
		Tab:      TabCode,
	}
}

// reloads the profile from the server
func (s *Session) Refresh(ctx context.Context) error {
	profile, err := s.backend.Profile(ctx)
	if err != nil {
		s.notify("Error", err.Error(), true)
		return fmt.Errorf("failed to fetch profile: %w", err)
	}

	s.Profile = profile

	return nil
}

// selects an output language by value
func (s *Session) SetLanguage(value string) error {
	for _, lang := range Languages {
		if lang.Value == value {
			s.Language = value
			return nil
		}
	}

	return fmt.Errorf("unknown language %q", value)
}

// advances to the next language in display order
func (s *Session) CycleLanguage() {
	for i, lang := range Languages {
		if lang.Value == s.Language {
			_ = s.SetLanguage(Languages[(i+1)%len(Languages)].Value)
			return
		}
	}

	s.Language = DefaultLanguage
}

func (s *Session) LanguageLabel() string {
	for _, lang := range Languages {
		if lang.Value == s.Language {
			return lang.Label
		}
	}

	return s.Language
}

// reports whether the current code can be rendered as a page
func (s *Session) PreviewAvailable() bool {
	return s.Code != "" && (s.Language == "html" || s.Language == "react")
}

func (s *Session) SetTab(tab Tab) {
	s.Tab = tab
}

// advances to the next output panel
func (s *Session) CycleTab() {
	s.Tab = (s.Tab + 1) % (TabConsole + 1)
}

// writes the code as a standalone page into dir so it can be opened in a browser
func (s *Session) WritePreview(dir string) (string, error) {
	if !s.PreviewAvailable() {
		return "", ErrPreviewUnavailable
	}

	path := filepath.Join(dir, previewFilename)

	if err := os.WriteFile(path, []byte(s.Code), 0o644); err != nil {
		return "", fmt.Errorf("failed to write preview: %w", err)
	}

	return path, nil
}

// generates code for the current prompt
func (s *Session) Generate(ctx context.Context) error {
	if strings.TrimSpace(s.Prompt) == "" {
		s.notify("Error", ErrEmptyPrompt.Error(), true)
		return ErrEmptyPrompt
	}

	if s.Profile.OutOfCredits() {
		s.notify("Out of credits", ErrOutOfCredits.Error(), true)
		s.UpgradeOpen = true
		return ErrOutOfCredits
	}

	s.Tab = TabCode

	resp, err := s.backend.GenerateCode(ctx, s.Prompt)
	if err != nil {
		s.notify("Error", messageOr(err, "Failed to generate code"), true)
		return err
	}

	s.Code = resp.Code

	if s.Profile != nil {
		s.refreshQuietly(ctx)
	}

	s.notify("Success", "Code generated successfully!", false)

	return nil
}

// hands the code to a clipboard writer
func (s *Session) Copy(write func(string) error) error {
	if s.Code == "" {
		return ErrNoCode
	}

	if err := write(s.Code); err != nil {
		s.notify("Error", err.Error(), true)
		return fmt.Errorf("failed to copy code: %w", err)
	}

	s.notify("Copied!", "Code copied to clipboard", false)

	return nil
}

// downloads the code as a zip archive into dir and returns the file path
func (s *Session) DownloadZip(ctx context.Context, dir string) (string, error) {
	if s.Code == "" {
		s.notify("Error", "No code to download", true)
		return "", ErrNoCode
	}

	data, err := s.backend.GenerateZip(ctx, s.Code, "", s.Language)
	if err != nil {
		s.notify("Error", messageOr(err, "Failed to download ZIP"), true)
		return "", err
	}

	path := filepath.Join(dir, ZipFilename(s.now()))

	if err := os.WriteFile(path, data, 0o644); err != nil {
		s.notify("Error", "Failed to download ZIP", true)
		return "", fmt.Errorf("failed to write archive: %w", err)
	}

	s.notify("Success", "Code downloaded as ZIP", false)

	return path, nil
}

// runs the code and writes the result to the console
func (s *Session) Run(ctx context.Context) error {
	if s.Code == "" {
		s.notify("Error", "No code to run", true)
		return ErrNoCode
	}

	if s.Profile.OutOfCredits() {
		s.notify("Out of credits", ErrRunNeedsCredit.Error(), true)
		s.UpgradeOpen = true
		return ErrRunNeedsCredit
	}

	s.Tab = TabConsole
	s.Console = runningBanner

	resp, err := s.backend.RunCode(ctx, s.Code, s.Language)
	if err != nil {
		s.Console = FormatConsole("", messageOr(err, "Failed to execute code"))
		s.notify("Error", messageOr(err, "Failed to run code"), true)
		return err
	}

	var runErr string
	if resp.Error != nil {
		runErr = *resp.Error
	}

	s.Console = FormatConsole(resp.Output, runErr)

	if s.Profile != nil && s.Profile.Plan == "free" {
		s.refreshQuietly(ctx)
	}

	s.notify("Success", "Code executed successfully", false)

	return nil
}

// requests the pro plan
func (s *Session) Upgrade(ctx context.Context) error {
	return s.comingSoon(s.backend.Upgrade(ctx))
}

// requests a credit purchase
func (s *Session) BuyCredits(ctx context.Context, amount int) error {
	if amount < MinCreditPurchase {
		s.notify("Invalid Amount", ErrMinimumCredits.Error(), true)
		return ErrMinimumCredits
	}

	return s.comingSoon(s.backend.BuyCredits(ctx, amount))
}

// returns a copy that can be mutated off the UI goroutine
func (s *Session) Clone() *Session {
	c := *s
	return &c
}

func (s *Session) CloseUpgrade() {
	s.UpgradeOpen = false
}

// the billing endpoints answer 501 until payments exist
func (s *Session) comingSoon(err error) error {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Code == "not_implemented" {
		s.notify("Coming Soon!", apiErr.Details, false)
		s.UpgradeOpen = false
		return nil
	}

	if err != nil {
		s.notify("Error", err.Error(), true)
		return err
	}

	s.UpgradeOpen = false

	return nil
}

func (s *Session) refreshQuietly(ctx context.Context) {
	if profile, err := s.backend.Profile(ctx); err == nil {
		s.Profile = profile
	}
}

func (s *Session) notify(title, description string, destructive bool) {
	s.Notice = &Notice{Title: title, Description: description, Destructive: destructive}
}

// formats a run result for the console panel
func FormatConsole(output, runErr string) string {
	if runErr != "" {
		return "Error:\n" + runErr
	}

	if output == "" {
		output = "Code executed successfully"
	}

	return "Output:\n" + output
}

// formats the dollar price of n credits, ten credits per dollar
func Price(credits int) string {
	return fmt.Sprintf("%.2f", float64(credits)/10)
}

// names a downloaded archive after the unix millisecond it was saved
func ZipFilename(at time.Time) string {
	return fmt.Sprintf("codeweaver-%d.zip", at.UnixMilli())
}

func messageOr(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}

	if err != nil && err.Error() != "" {
		return err.Error()
	}

	return fallback
}
