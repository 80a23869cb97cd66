package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatsFilter narrows aggregations and listings to a subset of blocks.
// Zero values mean "no restriction".
type StatsFilter struct {
	Statuses         []BlockStatus
	VerifiedOnly     bool
	ExcludeAnonymous bool
	DonorID          string
	RecipientID      string
	From             time.Time
	To               time.Time
}

// Page selects a window of a newest-first listing.
type Page struct {
	Offset uint64
	Limit  uint64
}

// ChainCounts summarises the number of blocks in the store.
type ChainCounts struct {
	TotalBlocks    uint64
	VerifiedBlocks uint64
}

// Totals aggregates amounts over a set of blocks.
type Totals struct {
	Amount    decimal.Decimal
	Donations uint64
	Used      decimal.Decimal
}

// CategoryTotal aggregates amounts for one category.
type CategoryTotal struct {
	Category Category
	Amount   decimal.Decimal
	Count    uint64
}

// DonorTotal aggregates the donations of one donor.
type DonorTotal struct {
	DonorID   string
	DonorName string
	Amount    decimal.Decimal
	Count     uint64
}

// Overview is the read-side summary served to dashboards and the chatbot context builder.
type Overview struct {
	TotalAmount    decimal.Decimal
	TotalDonations uint64
	TotalUsed      decimal.Decimal
	ByCategory     []CategoryTotal
	Recent         []Block
	TopDonors      []DonorTotal
}
