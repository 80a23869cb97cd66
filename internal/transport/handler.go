package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/goodnatureofminers/donationledger-backend/internal/ledger"
	"github.com/goodnatureofminers/donationledger-backend/internal/model"
	gwruntime "github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"go.uber.org/zap"
)

const (
	maxBodyBytes = 1 << 20

	defaultPublicLimit  = 50
	defaultHistoryLimit = 20
)

// statusAll lists every status in the public ledger.
const statusAll = "all"

type routeFunc func(r *http.Request, params map[string]string) (int, any, error)

type route struct {
	method, path, name string
	fn                 routeFunc
}

// Handler serves the donation REST API.
type Handler struct {
	ledger       Ledger
	metrics      HTTPMetrics
	logger       *zap.Logger
	marshaler    gwruntime.Marshaler
	enableRepair bool
}

// NewHandler returns a Handler. Repair is only routed when enableRepair is set.
func NewHandler(l Ledger, metrics HTTPMetrics, logger *zap.Logger, enableRepair bool) (*Handler, error) {
	if l == nil {
		return nil, errors.New("ledger is required")
	}
	if metrics == nil {
		return nil, errors.New("http metrics is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		ledger:       l,
		metrics:      metrics,
		logger:       logger,
		marshaler:    &gwruntime.JSONBuiltin{},
		enableRepair: enableRepair,
	}, nil
}

// Register adds the donation routes to mux.
func (h *Handler) Register(mux *gwruntime.ServeMux) error {
	routes := []route{
		{http.MethodPost, "/api/donations", "append", h.append},
		{http.MethodGet, "/api/donations/public-ledger", "public_ledger", h.publicLedger},
		{http.MethodGet, "/api/donations/verify/{hash}", "verify", h.verify},
		{http.MethodGet, "/api/donations/chain-status", "chain_status", h.chainStatus},
		{http.MethodGet, "/api/donations/blocks/{number}", "block", h.block},
		{http.MethodGet, "/api/donations/club/{recipientId}", "club", h.club},
		{http.MethodGet, "/api/donations/user/{donorId}", "user", h.user},
		{http.MethodPatch, "/api/donations/{number}/utilization", "utilization", h.utilization},
		{http.MethodPatch, "/api/donations/{number}/confirm", "confirm", h.transition(h.ledger.Confirm, "Donation confirmed and verified")},
		{http.MethodPatch, "/api/donations/{number}/complete", "complete", h.transition(h.ledger.Complete, "Donation completed")},
		{http.MethodPatch, "/api/donations/{number}/fail", "fail", h.transition(h.ledger.Fail, "Donation marked as failed")},
		{http.MethodGet, "/api/donations/stats/overview", "overview", h.overview},
	}
	if h.enableRepair {
		routes = append(routes, route{http.MethodPost, "/api/donations/fix-integrity", "fix_integrity", h.repair})
	}

	for _, rt := range routes {
		if err := mux.HandlePath(rt.method, rt.path, h.handle(rt.name, rt.fn)); err != nil {
			return fmt.Errorf("register %s %s: %w", rt.method, rt.path, err)
		}
	}
	return nil
}

func (h *Handler) handle(route string, fn routeFunc) gwruntime.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request, params map[string]string) {
		started := time.Now()
		code, body, err := fn(r, params)
		if err != nil {
			code, body = h.failure(route, err)
		}
		h.write(w, code, body)
		h.metrics.ObserveRequest(route, code, started)
	}
}

func (h *Handler) failure(route string, err error) (int, errorResponse) {
	code := statusOf(err)
	if code >= http.StatusInternalServerError {
		h.logger.Error("request failed", zap.String("route", route), zap.Error(err))
		return code, errorResponse{Error: "internal error while handling " + route}
	}
	return code, errorResponse{Error: err.Error()}
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, ledger.ErrValidation), errors.Is(err, ledger.ErrInvalidTransition):
		return http.StatusBadRequest
	case errors.Is(err, ledger.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ledger.ErrGenesisMissing):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) write(w http.ResponseWriter, code int, body any) {
	data, err := h.marshaler.Marshal(body)
	if err != nil {
		h.logger.Error("marshal response", zap.Error(err))
		code = http.StatusInternalServerError
		data = []byte(`{"success":false,"error":"internal error"}`)
	}
	w.Header().Set("Content-Type", h.marshaler.ContentType(body))
	w.WriteHeader(code)
	if _, err := w.Write(data); err != nil {
		h.logger.Debug("write response", zap.Error(err))
	}
}

func (h *Handler) decode(r *http.Request, dest any) error {
	if err := h.marshaler.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(dest); err != nil {
		return fmt.Errorf("%w: malformed request body: %s", ledger.ErrValidation, err.Error())
	}
	return nil
}

func blockNumber(params map[string]string) (uint64, error) {
	n, err := strconv.ParseUint(params["number"], 10, 64)
	if err != nil || n == 0 {
		return 0, fmt.Errorf("%w: invalid block number %q", ledger.ErrValidation, params["number"])
	}
	return n, nil
}

func queryUint(r *http.Request, key string, def uint64) (uint64, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid %s %q", ledger.ErrValidation, key, raw)
	}
	return v, nil
}

// pageOf reads the 1-based page and limit query parameters. The limit is capped at
// ledger.MaxListLimit and a page whose offset overflows is rejected.
func pageOf(r *http.Request, defaultLimit uint64) (model.Page, error) {
	page, err := queryUint(r, "page", 1)
	if err != nil {
		return model.Page{}, err
	}
	limit, err := queryUint(r, "limit", defaultLimit)
	if err != nil {
		return model.Page{}, err
	}
	if page == 0 {
		page = 1
	}
	if limit == 0 {
		limit = defaultLimit
	}
	if limit > ledger.MaxListLimit {
		limit = ledger.MaxListLimit
	}
	if page-1 > math.MaxUint64/limit {
		return model.Page{}, fmt.Errorf("%w: page %d is out of range", ledger.ErrValidation, page)
	}
	return model.Page{Offset: (page - 1) * limit, Limit: limit}, nil
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		return strings.TrimSpace(first)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func (h *Handler) append(r *http.Request, _ map[string]string) (int, any, error) {
	var req appendRequest
	if err := h.decode(r, &req); err != nil {
		return 0, nil, err
	}
	res, err := h.ledger.Append(r.Context(), ledger.AppendRequest{
		DonorID:       req.DonorID,
		RecipientID:   req.RecipientID,
		Amount:        req.Amount,
		Currency:      req.Currency,
		Purpose:       req.Purpose,
		Category:      model.Category(req.Category),
		Anonymous:     req.IsAnonymous,
		PaymentMethod: req.PaymentMethod,
		CampaignID:    req.CampaignID,
		IPAddress:     clientIP(r),
		UserAgent:     r.UserAgent(),
	})
	if err != nil {
		return 0, nil, err
	}
	return http.StatusCreated, toAppendResponse(res), nil
}

func (h *Handler) publicLedger(r *http.Request, _ map[string]string) (int, any, error) {
	page, err := pageOf(r, defaultPublicLimit)
	if err != nil {
		return 0, nil, err
	}
	status := model.StatusCompleted
	if raw := r.URL.Query().Get("status"); raw != "" {
		status = model.BlockStatus(raw)
		if raw == statusAll {
			status = ""
		}
	}
	res, err := h.ledger.PublicLedger(r.Context(), status, page)
	if err != nil {
		return 0, nil, err
	}
	return http.StatusOK, ledgerPageResponse{
		Success:    true,
		Ledger:     toBlockDTOs(res.Blocks),
		Pagination: toPagination(res.Total, res.Page),
	}, nil
}

func (h *Handler) verify(r *http.Request, params map[string]string) (int, any, error) {
	res, err := h.ledger.VerifyBlock(r.Context(), params["hash"])
	if err != nil {
		return 0, nil, err
	}
	return http.StatusOK, toVerifyResponse(res), nil
}

func (h *Handler) chainStatus(r *http.Request, _ map[string]string) (int, any, error) {
	start, err := queryUint(r, "startBlock", 1)
	if err != nil {
		return 0, nil, err
	}
	end, err := queryUint(r, "endBlock", 0)
	if err != nil {
		return 0, nil, err
	}
	verification, err := h.ledger.VerifyRange(r.Context(), start, end)
	if err != nil {
		return 0, nil, err
	}
	stats, err := h.ledger.ChainStats(r.Context())
	if err != nil {
		return 0, nil, err
	}
	return http.StatusOK, chainStatusResponse{
		Success:     true,
		ChainStatus: toChainStatus(verification),
		Stats: chainStatsDTO{
			TotalBlocks:      stats.TotalBlocks,
			VerifiedBlocks:   stats.VerifiedBlocks,
			UnverifiedBlocks: stats.UnverifiedBlocks,
			TotalDonations:   stats.CompletedAmount,
			Currency:         model.DefaultCurrency,
		},
	}, nil
}

func (h *Handler) block(r *http.Request, params map[string]string) (int, any, error) {
	number, err := blockNumber(params)
	if err != nil {
		return 0, nil, err
	}
	b, err := h.ledger.Block(r.Context(), number)
	if err != nil {
		return 0, nil, err
	}
	return http.StatusOK, blockResponse{Success: true, Donation: toBlockDTO(b)}, nil
}

func (h *Handler) club(r *http.Request, params map[string]string) (int, any, error) {
	page, err := pageOf(r, defaultHistoryLimit)
	if err != nil {
		return 0, nil, err
	}
	res, err := h.ledger.RecipientHistory(r.Context(), params["recipientId"], page)
	if err != nil {
		return 0, nil, err
	}
	return http.StatusOK, toHistoryResponse(res), nil
}

func (h *Handler) user(r *http.Request, params map[string]string) (int, any, error) {
	page, err := pageOf(r, defaultHistoryLimit)
	if err != nil {
		return 0, nil, err
	}
	res, err := h.ledger.DonorHistory(r.Context(), params["donorId"], page)
	if err != nil {
		return 0, nil, err
	}
	return http.StatusOK, toHistoryResponse(res), nil
}

func (h *Handler) utilization(r *http.Request, params map[string]string) (int, any, error) {
	number, err := blockNumber(params)
	if err != nil {
		return 0, nil, err
	}
	var req utilizationRequest
	if err := h.decode(r, &req); err != nil {
		return 0, nil, err
	}
	u, err := h.ledger.UpdateUtilization(r.Context(), number, ledger.UtilizationUpdate{
		Used:        req.Used,
		Description: req.Description,
		ProofURLs:   req.ProofURLs,
	})
	if err != nil {
		return 0, nil, err
	}
	return http.StatusOK, utilizationResponse{
		Success:     true,
		Message:     "Utilization updated successfully",
		Utilization: toUtilizationDTO(u),
	}, nil
}

func (h *Handler) transition(fn func(ctx context.Context, number uint64) (model.Block, error), message string) routeFunc {
	return func(r *http.Request, params map[string]string) (int, any, error) {
		number, err := blockNumber(params)
		if err != nil {
			return 0, nil, err
		}
		b, err := fn(r.Context(), number)
		if err != nil {
			return 0, nil, err
		}
		return http.StatusOK, blockResponse{Success: true, Message: message, Donation: toBlockDTO(b)}, nil
	}
}

func (h *Handler) overview(r *http.Request, _ map[string]string) (int, any, error) {
	o, err := h.ledger.Overview(r.Context(), ledger.OverviewOptions{})
	if err != nil {
		return 0, nil, err
	}
	chain, err := h.ledger.VerifyRange(r.Context(), 1, 0)
	if err != nil {
		return 0, nil, err
	}
	return http.StatusOK, toOverviewResponse(o, chain), nil
}

func (h *Handler) repair(r *http.Request, _ map[string]string) (int, any, error) {
	reanchor, _ := strconv.ParseBool(r.URL.Query().Get("reanchor"))
	res, err := h.ledger.Repair(r.Context(), ledger.RepairOptions{Reanchor: reanchor})
	if err != nil {
		return 0, nil, err
	}
	message := "No donations to fix"
	if res.TotalBlocks > 0 {
		message = fmt.Sprintf("Blockchain integrity fixed. Updated %d blocks.", res.BlocksUpdated)
	}
	return http.StatusOK, repairResponse{
		Success:       true,
		Message:       message,
		BlocksUpdated: res.BlocksUpdated,
		TotalBlocks:   res.TotalBlocks,
	}, nil
}
