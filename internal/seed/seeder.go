package seed

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/goodnatureofminers/donationledger-backend/internal/clock"
	"github.com/goodnatureofminers/donationledger-backend/internal/ledger"
	"github.com/goodnatureofminers/donationledger-backend/internal/model"
	"github.com/goodnatureofminers/donationledger-backend/pkg/batcher"
	"github.com/goodnatureofminers/donationledger-backend/pkg/workerpool"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	flushInterval = 200 * time.Millisecond
	flushRPS      = 50
)

// Options sizes a seeding run.
type Options struct {
	Donors     int
	Recipients int
	Campaigns  int
	Donations  int
	// SettledShare is the fraction of donations moved out of pending.
	SettledShare float64
	BatchSize    int
	// Workers bounds how many settlements run at once.
	Workers int
	// Seed makes a run reproducible.
	Seed int64
}

// Report counts what a run created.
type Report struct {
	Donors     int
	Recipients int
	Campaigns  int
	Donations  int
	Completed  int
	Confirmed  int
	Failed     int
	// CampaignCreditFailures counts donations whose campaign total was not credited.
	CampaignCreditFailures int
}

// Seeder generates demo data.
type Seeder struct {
	directory Directory
	ledger    Ledger
	logger    *zap.Logger
}

// NewSeeder returns a Seeder writing parties to directory and donations to l.
func NewSeeder(directory Directory, l Ledger, logger *zap.Logger) (*Seeder, error) {
	if directory == nil {
		return nil, errors.New("seed directory is required")
	}
	if l == nil {
		return nil, errors.New("seed ledger is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Seeder{directory: directory, ledger: l, logger: logger}, nil
}

func (o Options) validate() error {
	if o.Donors <= 0 || o.Recipients <= 0 {
		return errors.New("at least one donor and one recipient are required")
	}
	if o.Donations < 0 || o.Campaigns < 0 {
		return errors.New("donation and campaign counts cannot be negative")
	}
	if o.SettledShare < 0 || o.SettledShare > 1 {
		return fmt.Errorf("settled share %.2f is outside [0, 1]", o.SettledShare)
	}
	return nil
}

// Run imports the generated parties in batches, appends the donations one by one and
// then settles a share of them on opts.Workers goroutines.
func (s *Seeder) Run(ctx context.Context, opts Options) (Report, error) {
	if err := opts.validate(); err != nil {
		return Report{}, err
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = 100
	}
	if opts.Workers <= 0 {
		opts.Workers = 4
	}

	g := newGenerator(opts.Seed, clock.Now())
	donors := g.donors(opts.Donors)
	recipients := g.recipients(opts.Recipients)
	campaigns := g.campaigns(opts.Campaigns, recipients)

	var report Report
	var err error
	if report.Donors, err = importAll(ctx, s.logger.Named("donors"), donors, s.directory.UpsertDonors, opts.BatchSize); err != nil {
		return report, fmt.Errorf("import donors: %w", err)
	}
	if report.Recipients, err = importAll(ctx, s.logger.Named("recipients"), recipients, s.directory.UpsertRecipients, opts.BatchSize); err != nil {
		return report, fmt.Errorf("import recipients: %w", err)
	}
	if report.Campaigns, err = importAll(ctx, s.logger.Named("campaigns"), campaigns, s.directory.UpsertCampaigns, opts.BatchSize); err != nil {
		return report, fmt.Errorf("import campaigns: %w", err)
	}
	s.logger.Info("directory imported",
		zap.Int("donors", report.Donors),
		zap.Int("recipients", report.Recipients),
		zap.Int("campaigns", report.Campaigns),
	)

	byRecipient := make(map[string][]model.Campaign)
	for _, c := range campaigns {
		byRecipient[c.RecipientID] = append(byRecipient[c.RecipientID], c)
	}

	var plans []settlement
	for i := 0; i < opts.Donations; i++ {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		req := g.donation(donors, recipients, byRecipient)
		res, err := s.ledger.Append(ctx, req)
		if err != nil {
			return report, fmt.Errorf("append donation %d: %w", i+1, err)
		}
		report.Donations++
		if res.Campaign.Requested && !res.Campaign.Applied() {
			report.CampaignCreditFailures++
		}
		if g.rnd.Float64() < opts.SettledShare {
			plans = append(plans, settlement{number: res.Block.Number, status: g.settledStatus()})
		}
	}

	settled, err := workerpool.Map(ctx, opts.Workers, plans, s.settle)
	if err != nil {
		return report, err
	}
	for _, status := range settled {
		switch status {
		case model.StatusCompleted:
			report.Completed++
		case model.StatusConfirmed:
			report.Confirmed++
		case model.StatusFailed:
			report.Failed++
		}
	}

	s.logger.Info("donations seeded",
		zap.Int("donations", report.Donations),
		zap.Int("completed", report.Completed),
		zap.Int("confirmed", report.Confirmed),
		zap.Int("failed", report.Failed),
	)
	return report, nil
}

type settlement struct {
	number uint64
	status model.BlockStatus
}

func (s *Seeder) settle(ctx context.Context, p settlement) (model.BlockStatus, error) {
	var transition func(context.Context, uint64) (model.Block, error)
	switch p.status {
	case model.StatusCompleted:
		transition = s.ledger.Complete
	case model.StatusConfirmed:
		transition = s.ledger.Confirm
	default:
		transition = s.ledger.Fail
	}
	if _, err := transition(ctx, p.number); err != nil {
		return "", fmt.Errorf("settle block %d: %w", p.number, err)
	}
	return p.status, nil
}

// importAll streams items through a batcher into flush and returns how many were written.
func importAll[T any](ctx context.Context, logger *zap.Logger, items []T, flush func(context.Context, []T) error, size int) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}
	b := batcher.New(logger, flush, size, flushInterval, flushRPS)
	b.Start(ctx)
	for _, item := range items {
		if err := b.Add(ctx, item); err != nil {
			return b.Flushed(), errors.Join(err, b.Close())
		}
	}
	if err := b.Close(); err != nil {
		return b.Flushed(), err
	}
	return b.Flushed(), nil
}

type generator struct {
	rnd *rand.Rand
	now time.Time
}

func newGenerator(seed int64, now time.Time) *generator {
	return &generator{rnd: rand.New(rand.NewSource(seed)), now: now}
}

func (g *generator) id() string {
	id, err := uuid.NewRandomFromReader(g.rnd)
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// settledStatus picks completed, confirmed or failed in a 75/20/5 split.
func (g *generator) settledStatus() model.BlockStatus {
	switch roll := g.rnd.Float64(); {
	case roll < 0.75:
		return model.StatusCompleted
	case roll < 0.95:
		return model.StatusConfirmed
	default:
		return model.StatusFailed
	}
}

func pick[T any](rnd *rand.Rand, items []T) T {
	return items[rnd.Intn(len(items))]
}

func (g *generator) donors(n int) []model.Donor {
	out := make([]model.Donor, 0, n)
	for i := 0; i < n; i++ {
		first, last := pick(g.rnd, firstNames), pick(g.rnd, lastNames)
		out = append(out, model.Donor{
			ID:    g.id(),
			Name:  first + " " + last,
			Email: fmt.Sprintf("%s.%s%d@example.org", strings.ToLower(first), strings.ToLower(last), i),
		})
	}
	return out
}

func (g *generator) recipients(n int) []model.Recipient {
	out := make([]model.Recipient, 0, n)
	for i := 0; i < n; i++ {
		place := pick(g.rnd, cities)
		out = append(out, model.Recipient{
			ID:      g.id(),
			Name:    place.city + " " + pick(g.rnd, clubKinds),
			TagLine: "Community sport since " + fmt.Sprint(1950+g.rnd.Intn(70)),
			City:    place.city,
			Country: place.country,
		})
	}
	return out
}

func (g *generator) campaigns(n int, recipients []model.Recipient) []model.Campaign {
	out := make([]model.Campaign, 0, n)
	for i := 0; i < n; i++ {
		r := pick(g.rnd, recipients)
		title := pick(g.rnd, campaignTitles)
		start := g.now.AddDate(0, 0, -g.rnd.Intn(60))
		out = append(out, model.Campaign{
			ID:          g.id(),
			Title:       title,
			Slug:        fmt.Sprintf("%s-%d", strings.ReplaceAll(strings.ToLower(title), " ", "-"), i+1),
			RecipientID: r.ID,
			Category:    pick(g.rnd, categories),
			GoalAmount:  decimal.NewFromInt(int64(10000 * (1 + g.rnd.Intn(20)))),
			Currency:    model.DefaultCurrency,
			Status:      model.CampaignActive,
			StartDate:   start,
			EndDate:     start.AddDate(0, 3, 0),
		})
	}
	return out
}

func (g *generator) donation(donors []model.Donor, recipients []model.Recipient, campaigns map[string][]model.Campaign) ledger.AppendRequest {
	donor := pick(g.rnd, donors)
	recipient := pick(g.rnd, recipients)
	req := ledger.AppendRequest{
		DonorID:       donor.ID,
		RecipientID:   recipient.ID,
		Amount:        decimal.New(int64(100+g.rnd.Intn(999900)), -2),
		Currency:      model.DefaultCurrency,
		Purpose:       pick(g.rnd, purposes),
		Category:      pick(g.rnd, categories),
		Anonymous:     g.rnd.Float64() < 0.1,
		PaymentMethod: pick(g.rnd, paymentMethods),
		IPAddress:     "127.0.0.1",
		UserAgent:     "ledgerctl-seed",
	}
	if own := campaigns[recipient.ID]; len(own) > 0 && g.rnd.Float64() < 0.4 {
		c := pick(g.rnd, own)
		req.CampaignID = c.ID
		req.Category = c.Category
	}
	return req
}
