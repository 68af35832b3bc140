package generate

// request body for code generation; a pointer so a missing prompt is distinguishable
type Request struct {
	Prompt *string `json:"prompt"`
}

type Response struct {
	Code             string `json:"code"`
	CreditsRemaining *int   `json:"credits_remaining,omitempty"`
	Unlimited        bool   `json:"unlimited"`
}
