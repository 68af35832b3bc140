package dashboard

import (
	"context"
	"fmt"
)

// a selectable output language
type Language struct {
	Value string
	Label string
}

// the languages offered by the dashboard, in display order
var Languages = []Language{
	{Value: "javascript", Label: "JavaScript"},
	{Value: "python", Label: "Python"},
	{Value: "html", Label: "HTML"},
	{Value: "css", Label: "CSS"},
	{Value: "typescript", Label: "TypeScript"},
	{Value: "react", Label: "React (JSX)"},
}

const DefaultLanguage = "javascript"

// the visible output panel
type Tab int

const (
	TabCode Tab = iota
	TabPreview
	TabConsole
)

func (t Tab) String() string {
	switch t {
	case TabPreview:
		return "preview"
	case TabConsole:
		return "console"
	default:
		return "code"
	}
}

// a toast shown to the user after an action
type Notice struct {
	Title       string
	Description string
	Destructive bool
}

// the server calls a session depends on
type Backend interface {
	Profile(ctx context.Context) (*Profile, error)
	GenerateCode(ctx context.Context, prompt string) (*GenerateResponse, error)
	GenerateZip(ctx context.Context, code, filename, language string) ([]byte, error)
	RunCode(ctx context.Context, code, language string) (*RunResponse, error)
	Upgrade(ctx context.Context) error
	BuyCredits(ctx context.Context, amount int) error
}

type Profile struct {
	ID        string `json:"id"`
	Plan      string `json:"plan"`
	Credits   int    `json:"credits"`
	FullName  string `json:"full_name"`
	Unlimited bool   `json:"unlimited"`
}

// reports whether the free plan has run dry
func (p *Profile) OutOfCredits() bool {
	return p != nil && p.Plan == "free" && p.Credits <= 0
}

type GenerateResponse struct {
	Code             string `json:"code"`
	CreditsRemaining *int   `json:"credits_remaining,omitempty"`
	Unlimited        bool   `json:"unlimited"`
}

type RunResponse struct {
	Output string  `json:"output"`
	Error  *string `json:"error"`
}

type generateRequest struct {
	Prompt string `json:"prompt"`
}

type zipRequest struct {
	Code     string `json:"code"`
	Filename string `json:"filename,omitempty"`
	Language string `json:"language,omitempty"`
}

type zipResponse struct {
	ZipBase64 string `json:"zipBase64"`
}

type runRequest struct {
	Code     string `json:"code"`
	Language string `json:"language"`
}

type creditsRequest struct {
	Amount int `json:"amount"`
}

// a non-2xx answer from the API
type APIError struct {
	StatusCode int
	Message    string
	Code       string
	Details    string
}

func (e *APIError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Details)
	}

	return e.Message
}

type errorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details string `json:"details,omitempty"`
}
