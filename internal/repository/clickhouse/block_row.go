package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/goodnatureofminers/donationledger-backend/internal/model"
)

const blockColumns = `
	block_number,
	transaction_hash,
	previous_hash,
	donor_id,
	donor_name,
	recipient_id,
	recipient_name,
	amount,
	currency,
	purpose,
	category,
	campaign_id,
	status,
	verified,
	verified_at,
	timestamp,
	ip_address,
	user_agent,
	anonymous,
	payment_method,
	receipt_url,
	utilized_amount,
	utilization_description,
	utilization_proof_urls,
	utilization_updated_at`

const insertBlockQuery = `
INSERT INTO donation_blocks (` + blockColumns + `,
	version,
	is_deleted
) VALUES`

func scanBlock(rows driver.Rows) (model.Block, error) {
	var (
		block              model.Block
		category, status   string
		verifiedAt, usedAt *time.Time
	)

	if err := rows.Scan(
		&block.Number,
		&block.TransactionHash,
		&block.PreviousHash,
		&block.DonorID,
		&block.DonorName,
		&block.RecipientID,
		&block.RecipientName,
		&block.Amount,
		&block.Currency,
		&block.Purpose,
		&category,
		&block.CampaignID,
		&status,
		&block.Verified,
		&verifiedAt,
		&block.Timestamp,
		&block.Metadata.IPAddress,
		&block.Metadata.UserAgent,
		&block.Metadata.Anonymous,
		&block.Metadata.PaymentMethod,
		&block.Metadata.ReceiptURL,
		&block.Utilization.Used,
		&block.Utilization.Description,
		&block.Utilization.ProofURLs,
		&usedAt,
	); err != nil {
		return model.Block{}, err
	}

	block.Category = model.Category(category)
	block.Status = model.BlockStatus(status)
	block.VerifiedAt = utcPtr(verifiedAt)
	block.Timestamp = block.Timestamp.UTC()
	block.Utilization.UpdatedAt = utcPtr(usedAt)
	if len(block.Utilization.ProofURLs) == 0 {
		block.Utilization.ProofURLs = nil
	}
	return block, nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

func blockValues(block model.Block, version uint64) []any {
	proofURLs := block.Utilization.ProofURLs
	if proofURLs == nil {
		proofURLs = []string{}
	}
	return []any{
		block.Number,
		block.TransactionHash,
		block.PreviousHash,
		block.DonorID,
		block.DonorName,
		block.RecipientID,
		block.RecipientName,
		block.Amount,
		block.Currency,
		block.Purpose,
		string(block.Category),
		block.CampaignID,
		string(block.Status),
		block.Verified,
		block.VerifiedAt,
		block.Timestamp,
		block.Metadata.IPAddress,
		block.Metadata.UserAgent,
		block.Metadata.Anonymous,
		block.Metadata.PaymentMethod,
		block.Metadata.ReceiptURL,
		block.Utilization.Used,
		block.Utilization.Description,
		proofURLs,
		block.Utilization.UpdatedAt,
		version,
		uint8(0),
	}
}

// selectBlock runs a query expected to yield at most one block row.
func (r *Repository) selectBlock(ctx context.Context, query string, args ...any) (block model.Block, found bool, err error) {
	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return model.Block{}, false, fmt.Errorf("query block: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", closeErr)
		}
	}()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return model.Block{}, false, fmt.Errorf("iterate block: %w", err)
		}
		return model.Block{}, false, nil
	}
	if block, err = scanBlock(rows); err != nil {
		return model.Block{}, false, fmt.Errorf("scan block: %w", err)
	}
	if err = rows.Err(); err != nil {
		return model.Block{}, false, fmt.Errorf("iterate block: %w", err)
	}
	return block, true, nil
}

// selectBlocks runs a query yielding block rows.
func (r *Repository) selectBlocks(ctx context.Context, query string, args ...any) (blocks []model.Block, err error) {
	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query blocks: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", closeErr)
		}
	}()

	for rows.Next() {
		block, scanErr := scanBlock(rows)
		if scanErr != nil {
			err = fmt.Errorf("scan block: %w", scanErr)
			return nil, err
		}
		blocks = append(blocks, block)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate blocks: %w", err)
	}
	return blocks, nil
}

// writeBlock inserts a new version of a block row.
func (r *Repository) writeBlock(ctx context.Context, block model.Block) error {
	batch, err := r.conn.PrepareBatch(ctx, insertBlockQuery)
	if err != nil {
		return fmt.Errorf("prepare block batch: %w", err)
	}
	if err = batch.Append(blockValues(block, r.nextVersion())...); err != nil {
		_ = batch.Abort()
		return fmt.Errorf("append block %d: %w", block.Number, err)
	}
	if err = batch.Send(); err != nil {
		return fmt.Errorf("send block %d: %w", block.Number, err)
	}
	return nil
}
