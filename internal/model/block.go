// Package model defines domain models for the donation ledger.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// BlockStatus describes the settlement status of a donation block.
type BlockStatus string

var (
	// StatusPending marks a freshly appended block awaiting settlement.
	StatusPending BlockStatus = "pending"
	// StatusConfirmed marks a block confirmed by an administrator or the payment gateway.
	StatusConfirmed BlockStatus = "confirmed"
	// StatusCompleted marks a block whose payment has been settled.
	StatusCompleted BlockStatus = "completed"
	// StatusFailed marks a block whose payment failed.
	StatusFailed BlockStatus = "failed"
)

// Valid reports whether s is one of the known statuses.
func (s BlockStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusFailed:
		return true
	default:
		return false
	}
}

// DefaultCurrency is used when a donation does not name one.
const DefaultCurrency = "INR"

// Block is one donation transaction together with its chain linkage.
type Block struct {
	Number          uint64
	TransactionHash string
	PreviousHash    string
	DonorID         string
	DonorName       string
	RecipientID     string
	RecipientName   string
	Amount          decimal.Decimal
	Currency        string
	Purpose         string
	Category        Category
	CampaignID      string
	Status          BlockStatus
	Verified        bool
	VerifiedAt      *time.Time
	Timestamp       time.Time
	Metadata        Metadata
	Utilization     Utilization
}

// Metadata carries request details captured at append time. It is not sealed.
type Metadata struct {
	IPAddress     string
	UserAgent     string
	Anonymous     bool
	PaymentMethod string
	ReceiptURL    string
}

// Utilization reports how the recipient spent a donation. It is not sealed.
type Utilization struct {
	Used        decimal.Decimal
	Description string
	ProofURLs   []string
	UpdatedAt   *time.Time
}
