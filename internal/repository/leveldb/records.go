package leveldb

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/goodnatureofminers/donationledger-backend/internal/model"
	"github.com/shopspring/decimal"
)

type blockRecord struct {
	Number          uint64          `json:"number"`
	TransactionHash string          `json:"transactionHash"`
	PreviousHash    string          `json:"previousHash"`
	DonorID         string          `json:"donorId"`
	DonorName       string          `json:"donorName"`
	RecipientID     string          `json:"recipientId"`
	RecipientName   string          `json:"recipientName"`
	Amount          decimal.Decimal `json:"amount"`
	Currency        string          `json:"currency"`
	Purpose         string          `json:"purpose,omitempty"`
	Category        string          `json:"category"`
	CampaignID      string          `json:"campaignId,omitempty"`
	Status          string          `json:"status"`
	Verified        bool            `json:"verified"`
	VerifiedAt      *time.Time      `json:"verifiedAt,omitempty"`
	Timestamp       time.Time       `json:"timestamp"`
	IPAddress       string          `json:"ipAddress,omitempty"`
	UserAgent       string          `json:"userAgent,omitempty"`
	Anonymous       bool            `json:"anonymous"`
	PaymentMethod   string          `json:"paymentMethod,omitempty"`
	ReceiptURL      string          `json:"receiptUrl,omitempty"`
	Used            decimal.Decimal `json:"used"`
	UseDescription  string          `json:"useDescription,omitempty"`
	ProofURLs       []string        `json:"proofUrls,omitempty"`
	UsedUpdatedAt   *time.Time      `json:"usedUpdatedAt,omitempty"`
}

func encodeBlock(b model.Block) ([]byte, error) {
	rec := blockRecord{
		Number:          b.Number,
		TransactionHash: b.TransactionHash,
		PreviousHash:    b.PreviousHash,
		DonorID:         b.DonorID,
		DonorName:       b.DonorName,
		RecipientID:     b.RecipientID,
		RecipientName:   b.RecipientName,
		Amount:          b.Amount,
		Currency:        b.Currency,
		Purpose:         b.Purpose,
		Category:        string(b.Category),
		CampaignID:      b.CampaignID,
		Status:          string(b.Status),
		Verified:        b.Verified,
		VerifiedAt:      b.VerifiedAt,
		Timestamp:       b.Timestamp.UTC(),
		IPAddress:       b.Metadata.IPAddress,
		UserAgent:       b.Metadata.UserAgent,
		Anonymous:       b.Metadata.Anonymous,
		PaymentMethod:   b.Metadata.PaymentMethod,
		ReceiptURL:      b.Metadata.ReceiptURL,
		Used:            b.Utilization.Used,
		UseDescription:  b.Utilization.Description,
		ProofURLs:       b.Utilization.ProofURLs,
		UsedUpdatedAt:   b.Utilization.UpdatedAt,
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("encode block %d: %w", b.Number, err)
	}
	return data, nil
}

func decodeBlock(data []byte) (model.Block, error) {
	var rec blockRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return model.Block{}, fmt.Errorf("decode block: %w", err)
	}
	return model.Block{
		Number:          rec.Number,
		TransactionHash: rec.TransactionHash,
		PreviousHash:    rec.PreviousHash,
		DonorID:         rec.DonorID,
		DonorName:       rec.DonorName,
		RecipientID:     rec.RecipientID,
		RecipientName:   rec.RecipientName,
		Amount:          rec.Amount,
		Currency:        rec.Currency,
		Purpose:         rec.Purpose,
		Category:        model.Category(rec.Category),
		CampaignID:      rec.CampaignID,
		Status:          model.BlockStatus(rec.Status),
		Verified:        rec.Verified,
		VerifiedAt:      utcPtr(rec.VerifiedAt),
		Timestamp:       rec.Timestamp.UTC(),
		Metadata: model.Metadata{
			IPAddress:     rec.IPAddress,
			UserAgent:     rec.UserAgent,
			Anonymous:     rec.Anonymous,
			PaymentMethod: rec.PaymentMethod,
			ReceiptURL:    rec.ReceiptURL,
		},
		Utilization: model.Utilization{
			Used:        rec.Used,
			Description: rec.UseDescription,
			ProofURLs:   rec.ProofURLs,
			UpdatedAt:   utcPtr(rec.UsedUpdatedAt),
		},
	}, nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

type campaignRecord struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Slug        string          `json:"slug"`
	RecipientID string          `json:"recipientId"`
	Category    string          `json:"category"`
	GoalAmount  decimal.Decimal `json:"goalAmount"`
	Currency    string          `json:"currency"`
	Status      string          `json:"status"`
	StartDate   time.Time       `json:"startDate"`
	EndDate     time.Time       `json:"endDate"`
}

func encodeCampaign(c model.Campaign) ([]byte, error) {
	return json.Marshal(campaignRecord{
		ID:          c.ID,
		Title:       c.Title,
		Slug:        c.Slug,
		RecipientID: c.RecipientID,
		Category:    string(c.Category),
		GoalAmount:  c.GoalAmount,
		Currency:    c.Currency,
		Status:      string(c.Status),
		StartDate:   c.StartDate.UTC(),
		EndDate:     c.EndDate.UTC(),
	})
}

func decodeCampaign(data []byte) (model.Campaign, error) {
	var rec campaignRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return model.Campaign{}, fmt.Errorf("decode campaign: %w", err)
	}
	return model.Campaign{
		ID:          rec.ID,
		Title:       rec.Title,
		Slug:        rec.Slug,
		RecipientID: rec.RecipientID,
		Category:    model.Category(rec.Category),
		GoalAmount:  rec.GoalAmount,
		Currency:    rec.Currency,
		Status:      model.CampaignStatus(rec.Status),
		StartDate:   rec.StartDate.UTC(),
		EndDate:     rec.EndDate.UTC(),
	}, nil
}
