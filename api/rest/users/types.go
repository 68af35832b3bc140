package users

type ProfileResponse struct {
	ID        string `json:"id"`
	Plan      string `json:"plan"`
	Credits   int    `json:"credits"`
	FullName  string `json:"full_name"`
	Unlimited bool   `json:"unlimited"`
}
