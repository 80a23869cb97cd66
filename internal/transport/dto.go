package transport

import (
	"time"

	"github.com/goodnatureofminers/donationledger-backend/internal/ledger"
	"github.com/goodnatureofminers/donationledger-backend/internal/model"
	"github.com/shopspring/decimal"
)

type appendRequest struct {
	DonorID       string          `json:"donorId"`
	RecipientID   string          `json:"recipientId"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	Purpose       string          `json:"purpose"`
	Category      string          `json:"category"`
	IsAnonymous   bool            `json:"isAnonymous"`
	CampaignID    string          `json:"campaignId"`
	PaymentMethod string          `json:"paymentMethod"`
}

type utilizationRequest struct {
	Used        *decimal.Decimal `json:"used"`
	Description *string          `json:"description"`
	ProofURLs   []string         `json:"proofUrls"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type metadataDTO struct {
	IsAnonymous   bool   `json:"isAnonymous"`
	PaymentMethod string `json:"paymentMethod"`
	ReceiptURL    string `json:"receiptUrl,omitempty"`
}

type utilizationDTO struct {
	Used        decimal.Decimal `json:"used"`
	Description string          `json:"description,omitempty"`
	ProofURLs   []string        `json:"proofUrls"`
	UpdatedAt   *time.Time      `json:"updatedAt,omitempty"`
}

// blockDTO is the public view of a block. Request metadata such as the client
// address and user agent is never exposed.
type blockDTO struct {
	BlockNumber     uint64          `json:"blockNumber"`
	TransactionHash string          `json:"transactionHash"`
	PreviousHash    string          `json:"previousHash"`
	DonorID         string          `json:"donorId"`
	DonorName       string          `json:"donorName"`
	RecipientID     string          `json:"recipientId"`
	RecipientName   string          `json:"recipientName"`
	Amount          decimal.Decimal `json:"amount"`
	Currency        string          `json:"currency"`
	Purpose         string          `json:"purpose"`
	Category        string          `json:"category"`
	CampaignID      string          `json:"campaignId,omitempty"`
	Status          string          `json:"status"`
	Verified        bool            `json:"verified"`
	VerifiedAt      *time.Time      `json:"verifiedAt,omitempty"`
	Timestamp       time.Time       `json:"timestamp"`
	Metadata        metadataDTO     `json:"metadata"`
	Utilization     utilizationDTO  `json:"utilization"`
}

func toUtilizationDTO(u model.Utilization) utilizationDTO {
	proofs := u.ProofURLs
	if proofs == nil {
		proofs = []string{}
	}
	return utilizationDTO{
		Used:        u.Used,
		Description: u.Description,
		ProofURLs:   proofs,
		UpdatedAt:   u.UpdatedAt,
	}
}

func toBlockDTO(b model.Block) blockDTO {
	return blockDTO{
		BlockNumber:     b.Number,
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
		Timestamp:       b.Timestamp,
		Metadata: metadataDTO{
			IsAnonymous:   b.Metadata.Anonymous,
			PaymentMethod: b.Metadata.PaymentMethod,
			ReceiptURL:    b.Metadata.ReceiptURL,
		},
		Utilization: toUtilizationDTO(b.Utilization),
	}
}

func toBlockDTOs(blocks []model.Block) []blockDTO {
	out := make([]blockDTO, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, toBlockDTO(b))
	}
	return out
}

type appendResponse struct {
	Success  bool             `json:"success"`
	Message  string           `json:"message"`
	Donation appendedDonation `json:"donation"`
	Campaign *campaignCredit  `json:"campaign,omitempty"`
}

type appendedDonation struct {
	TransactionHash string          `json:"transactionHash"`
	BlockNumber     uint64          `json:"blockNumber"`
	Amount          decimal.Decimal `json:"amount"`
	RecipientName   string          `json:"recipientName"`
	Status          string          `json:"status"`
}

type campaignCredit struct {
	ID      string `json:"id"`
	Applied bool   `json:"applied"`
	Error   string `json:"error,omitempty"`
}

func toAppendResponse(res ledger.AppendResult) appendResponse {
	out := appendResponse{
		Success: true,
		Message: "Donation transaction created successfully",
		Donation: appendedDonation{
			TransactionHash: res.Block.TransactionHash,
			BlockNumber:     res.Block.Number,
			Amount:          res.Block.Amount,
			RecipientName:   res.Block.RecipientName,
			Status:          string(res.Block.Status),
		},
	}
	if res.Campaign.Requested {
		out.Campaign = &campaignCredit{ID: res.Block.CampaignID, Applied: res.Campaign.Applied()}
		if res.Campaign.Err != nil {
			out.Campaign.Error = res.Campaign.Err.Error()
		}
	}
	return out
}

type paginationDTO struct {
	CurrentPage  uint64 `json:"currentPage"`
	TotalPages   uint64 `json:"totalPages"`
	Total        uint64 `json:"total"`
	ItemsPerPage uint64 `json:"itemsPerPage"`
}

func toPagination(total uint64, page model.Page) paginationDTO {
	out := paginationDTO{Total: total, ItemsPerPage: page.Limit, CurrentPage: 1}
	if page.Limit > 0 {
		out.CurrentPage = page.Offset/page.Limit + 1
		out.TotalPages = (total + page.Limit - 1) / page.Limit
	}
	return out
}

type ledgerPageResponse struct {
	Success    bool          `json:"success"`
	Ledger     []blockDTO    `json:"ledger"`
	Pagination paginationDTO `json:"pagination"`
}

type totalsDTO struct {
	TotalDonated  decimal.Decimal `json:"totalDonated"`
	TotalUsed     decimal.Decimal `json:"totalUsed"`
	DonationCount uint64          `json:"donationCount"`
}

type historyResponse struct {
	Success    bool          `json:"success"`
	Donations  []blockDTO    `json:"donations"`
	Pagination paginationDTO `json:"pagination"`
	Stats      totalsDTO     `json:"stats"`
}

func toHistoryResponse(h ledger.History) historyResponse {
	return historyResponse{
		Success:    true,
		Donations:  toBlockDTOs(h.Blocks),
		Pagination: toPagination(h.Total, h.Page),
		Stats: totalsDTO{
			TotalDonated:  h.Totals.Amount,
			TotalUsed:     h.Totals.Used,
			DonationCount: h.Totals.Donations,
		},
	}
}

type verificationDTO struct {
	HashValid         bool   `json:"hashValid"`
	PreviousHashValid bool   `json:"previousHashValid"`
	Link              string `json:"link"`
	ComputedHash      string `json:"computedHash"`
	Verified          bool   `json:"verified"`
	Status            string `json:"status"`
	ChainIntegrity    bool   `json:"chainIntegrity"`
}

type verifyResponse struct {
	Success      bool            `json:"success"`
	Transaction  blockDTO        `json:"transaction"`
	Verification verificationDTO `json:"verification"`
}

func toVerifyResponse(v ledger.BlockVerification) verifyResponse {
	return verifyResponse{
		Success:     true,
		Transaction: toBlockDTO(v.Block),
		Verification: verificationDTO{
			HashValid:         v.HashValid,
			PreviousHashValid: v.PreviousHashValid,
			Link:              string(v.Link),
			ComputedHash:      v.ComputedHash,
			Verified:          v.Verified,
			Status:            string(v.Status),
			ChainIntegrity:    v.ChainIntegrity,
		},
	}
}

type chainStatusDTO struct {
	Valid         bool   `json:"valid"`
	Message       string `json:"message"`
	BrokenAt      uint64 `json:"brokenAt,omitempty"`
	Reason        string `json:"reason,omitempty"`
	BlocksChecked uint64 `json:"blocksChecked"`
}

func toChainStatus(r ledger.RangeVerification) chainStatusDTO {
	out := chainStatusDTO{
		Valid:         r.Valid,
		Message:       "Chain integrity verified",
		BlocksChecked: r.BlocksChecked,
	}
	if !r.Valid {
		out.Message = "Chain broken"
		out.BrokenAt = r.BrokenAt
		out.Reason = string(r.Reason)
	}
	return out
}

type chainStatsDTO struct {
	TotalBlocks      uint64          `json:"totalBlocks"`
	VerifiedBlocks   uint64          `json:"verifiedBlocks"`
	UnverifiedBlocks uint64          `json:"unverifiedBlocks"`
	TotalDonations   decimal.Decimal `json:"totalDonations"`
	Currency         string          `json:"currency"`
}

type chainStatusResponse struct {
	Success     bool           `json:"success"`
	ChainStatus chainStatusDTO `json:"chainStatus"`
	Stats       chainStatsDTO  `json:"stats"`
}

type categoryDTO struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
	Count    uint64          `json:"count"`
}

type donorDTO struct {
	DonorID       string          `json:"donorId"`
	DonorName     string          `json:"donorName"`
	TotalDonated  decimal.Decimal `json:"totalDonated"`
	DonationCount uint64          `json:"donationCount"`
}

type overviewDTO struct {
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	TotalDonations uint64          `json:"totalDonations"`
	TotalUsed      decimal.Decimal `json:"totalUsed"`
}

type overviewResponse struct {
	Success         bool           `json:"success"`
	Overview        overviewDTO    `json:"overview"`
	ByCategory      []categoryDTO  `json:"byCategory"`
	RecentDonations []blockDTO     `json:"recentDonations"`
	TopDonors       []donorDTO     `json:"topDonors"`
	ChainStatus     chainStatusDTO `json:"chainStatus"`
}

func toOverviewResponse(o model.Overview, chain ledger.RangeVerification) overviewResponse {
	out := overviewResponse{
		Success: true,
		Overview: overviewDTO{
			TotalAmount:    o.TotalAmount,
			TotalDonations: o.TotalDonations,
			TotalUsed:      o.TotalUsed,
		},
		ByCategory:      make([]categoryDTO, 0, len(o.ByCategory)),
		RecentDonations: toBlockDTOs(o.Recent),
		TopDonors:       make([]donorDTO, 0, len(o.TopDonors)),
		ChainStatus:     toChainStatus(chain),
	}
	for _, c := range o.ByCategory {
		out.ByCategory = append(out.ByCategory, categoryDTO{Category: string(c.Category), Amount: c.Amount, Count: c.Count})
	}
	for _, d := range o.TopDonors {
		out.TopDonors = append(out.TopDonors, donorDTO{
			DonorID:       d.DonorID,
			DonorName:     d.DonorName,
			TotalDonated:  d.Amount,
			DonationCount: d.Count,
		})
	}
	return out
}

type blockResponse struct {
	Success  bool     `json:"success"`
	Message  string   `json:"message,omitempty"`
	Donation blockDTO `json:"donation"`
}

type utilizationResponse struct {
	Success     bool           `json:"success"`
	Message     string         `json:"message"`
	Utilization utilizationDTO `json:"utilization"`
}

type repairResponse struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	BlocksUpdated int    `json:"blocksUpdated"`
	TotalBlocks   uint64 `json:"totalBlocks"`
}
