package ledger

// MaxListLimit caps the number of blocks a single list page returns.
const MaxListLimit uint64 = 500

const (
	defaultPageSize     uint64 = 1000
	defaultAuditWorkers        = 8

	defaultRecentLimit    uint64 = 10
	defaultTopDonorsLimit uint64 = 10
	defaultListLimit      uint64 = 50

	anonymousDonorName   = "Anonymous"
	defaultPaymentMethod = "Unknown"
)
