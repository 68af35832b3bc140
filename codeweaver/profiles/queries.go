package profiles

const (
	queryFindByID = `
		SELECT id, plan, credits, full_name
		FROM profiles
		WHERE id = $1
	`

	queryUpdateCredits = `
		UPDATE profiles
		SET credits = credits + $1
		WHERE id = $2 AND credits + $1 >= 0
		RETURNING credits
	`

	// conditional so concurrent debits can never drive the balance below zero
	queryDebitCredit = `
		UPDATE profiles
		SET credits = credits - 1
		WHERE id = $1 AND credits > 0
		RETURNING credits
	`
)
