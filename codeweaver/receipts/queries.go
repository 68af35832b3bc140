package receipts

const (
	queryInsert = `
		INSERT INTO receipts (id, user_id, created_at)
		VALUES ($1, $2, $3)
	`

	queryCountSince = `
		SELECT COUNT(*)
		FROM receipts
		WHERE user_id = $1 AND created_at >= $2
	`
)
