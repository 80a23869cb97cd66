package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Donor is a registered user able to donate.
type Donor struct {
	ID    string
	Name  string
	Email string
}

// Recipient is a club or organisation receiving donations.
type Recipient struct {
	ID      string
	Name    string
	TagLine string
	City    string
	Country string
}

// CampaignStatus describes the lifecycle state of a fundraising campaign.
type CampaignStatus string

var (
	CampaignDraft     CampaignStatus = "draft"
	CampaignActive    CampaignStatus = "active"
	CampaignCompleted CampaignStatus = "completed"
	CampaignCancelled CampaignStatus = "cancelled"
)

// Campaign is a fundraising campaign run by a recipient.
type Campaign struct {
	ID          string
	Title       string
	Slug        string
	RecipientID string
	Category    Category
	GoalAmount  decimal.Decimal
	Currency    string
	Status      CampaignStatus
	StartDate   time.Time
	EndDate     time.Time
}

// CampaignRaised is the running total collected by a campaign.
type CampaignRaised struct {
	CampaignID string
	Amount     decimal.Decimal
	DonorCount uint64
}
