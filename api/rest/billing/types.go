package billing

type CreditsRequest struct {
	Amount int `json:"amount"`
}
