package ledger

// combines a profile store with a receipt log kept elsewhere
type CompositeStore struct {
	ProfileStore
	ReceiptLog
}

func New(profileStore ProfileStore, receiptLog ReceiptLog) *CompositeStore {
	return &CompositeStore{
		ProfileStore: profileStore,
		ReceiptLog:   receiptLog,
	}
}
