package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goodnatureofminers/donationledger-backend/internal/model"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// AppendRequest describes a donation to record.
type AppendRequest struct {
	DonorID       string
	RecipientID   string
	Amount        decimal.Decimal
	Currency      string
	Purpose       string
	Category      model.Category
	Anonymous     bool
	PaymentMethod string
	CampaignID    string
	IPAddress     string
	UserAgent     string
}

func (r AppendRequest) withDefaults() AppendRequest {
	r.DonorID = strings.TrimSpace(r.DonorID)
	r.RecipientID = strings.TrimSpace(r.RecipientID)
	r.CampaignID = strings.TrimSpace(r.CampaignID)
	r.Purpose = strings.TrimSpace(r.Purpose)
	if r.Currency == "" {
		r.Currency = model.DefaultCurrency
	}
	if r.PaymentMethod == "" {
		r.PaymentMethod = defaultPaymentMethod
	}
	return r
}

// Validate rejects requests that must not reach the store.
func (r AppendRequest) Validate() error {
	var missing []string
	if r.DonorID == "" {
		missing = append(missing, "donorId")
	}
	if r.RecipientID == "" {
		missing = append(missing, "recipientId")
	}
	if r.Amount.IsZero() {
		missing = append(missing, "amount")
	}
	if r.Purpose == "" {
		missing = append(missing, "purpose")
	}
	if r.Category == "" {
		missing = append(missing, "category")
	}
	if len(missing) > 0 {
		return validationError("missing required fields: %s", strings.Join(missing, ", "))
	}
	if !r.Amount.IsPositive() {
		return validationError("donation amount must be greater than 0")
	}
	if !r.Amount.Equal(r.Amount.Round(amountScale)) {
		return validationError("donation amount %s has more than %d decimal places", r.Amount, amountScale)
	}
	if !r.Category.Valid() {
		return validationError("unknown category %q", r.Category)
	}
	return nil
}

// AppendResult carries the appended block and the outcome of the campaign credit.
type AppendResult struct {
	Block    model.Block
	Campaign CampaignOutcome
}

// CampaignOutcome reports the best-effort campaign credit that follows an append.
// A failed credit leaves the block in place; campaign totals lag until retried.
type CampaignOutcome struct {
	Requested bool
	Err       error
}

// Applied reports whether the campaign was credited.
func (o CampaignOutcome) Applied() bool {
	return o.Requested && o.Err == nil
}

type parties struct {
	donor     model.Donor
	recipient model.Recipient
}

type chainBuilder struct {
	repo      Repository
	directory Directory
	campaigns CampaignUpdater
	now       func() time.Time
	logger    *zap.Logger
}

// resolve looks up every referenced party before the chain is touched.
func (b *chainBuilder) resolve(ctx context.Context, req AppendRequest) (parties, error) {
	donor, found, err := b.directory.Donor(ctx, req.DonorID)
	if err != nil {
		return parties{}, fmt.Errorf("resolve donor %s: %w", req.DonorID, err)
	}
	if !found {
		return parties{}, notFoundError("donor %s", req.DonorID)
	}

	recipient, found, err := b.directory.Recipient(ctx, req.RecipientID)
	if err != nil {
		return parties{}, fmt.Errorf("resolve recipient %s: %w", req.RecipientID, err)
	}
	if !found {
		return parties{}, notFoundError("recipient %s", req.RecipientID)
	}

	if req.CampaignID != "" {
		_, found, err = b.directory.Campaign(ctx, req.CampaignID)
		if err != nil {
			return parties{}, fmt.Errorf("resolve campaign %s: %w", req.CampaignID, err)
		}
		if !found {
			return parties{}, notFoundError("campaign %s", req.CampaignID)
		}
	}

	return parties{donor: donor, recipient: recipient}, nil
}

// build reads the tail, seals the next block and persists it. The caller holds the ledger lock.
func (b *chainBuilder) build(ctx context.Context, req AppendRequest, p parties) (model.Block, error) {
	tail, found, err := b.repo.LastBlock(ctx)
	if err != nil {
		return model.Block{}, fmt.Errorf("read chain tail: %w", err)
	}

	number, previous := uint64(1), GenesisHash
	if found {
		number = tail.Number + 1
		previous = tail.TransactionHash
	}

	donorName := p.donor.Name
	if req.Anonymous {
		donorName = anonymousDonorName
	}

	block := model.Block{
		Number:        number,
		PreviousHash:  previous,
		DonorID:       req.DonorID,
		DonorName:     donorName,
		RecipientID:   req.RecipientID,
		RecipientName: p.recipient.Name,
		Amount:        req.Amount,
		Currency:      req.Currency,
		Purpose:       req.Purpose,
		Category:      req.Category,
		CampaignID:    req.CampaignID,
		Status:        model.StatusPending,
		Verified:      false,
		Timestamp:     b.now(),
		Metadata: model.Metadata{
			IPAddress:     req.IPAddress,
			UserAgent:     req.UserAgent,
			Anonymous:     req.Anonymous,
			PaymentMethod: req.PaymentMethod,
		},
		Utilization: model.Utilization{
			Used: decimal.Zero,
		},
	}
	block.TransactionHash = Seal(block)

	if err := lockHeld(ctx); err != nil {
		return model.Block{}, fmt.Errorf("%w: insert block %d: %w", ErrPersistence, number, err)
	}
	if err := b.repo.InsertBlock(ctx, block); err != nil {
		return model.Block{}, fmt.Errorf("%w: insert block %d: %w", ErrPersistence, number, err)
	}
	return block, nil
}

func (b *chainBuilder) creditCampaign(ctx context.Context, block model.Block) CampaignOutcome {
	outcome := CampaignOutcome{Requested: true}
	if b.campaigns == nil {
		outcome.Err = errors.New("campaign updater is not configured")
	} else if err := b.campaigns.IncrementRaised(ctx, block.CampaignID, block.Number, block.Amount); err != nil {
		outcome.Err = fmt.Errorf("credit campaign %s: %w", block.CampaignID, err)
	}
	if outcome.Err != nil {
		b.logger.Warn("campaign credit failed; campaign totals lag the ledger",
			zap.Error(outcome.Err),
			zap.Uint64("block", block.Number),
			zap.String("campaign", block.CampaignID),
		)
	}
	return outcome
}
