package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Zhihong0321/Solar-Calculator-sub002/pkg/engine"
	"github.com/Zhihong0321/Solar-Calculator-sub002/pkg/log"
	"github.com/Zhihong0321/Solar-Calculator-sub002/pkg/types"
)

type quoteRequest struct {
	Params types.QuoteParams `json:"params"`
}

type previewRequest struct {
	SessionID string            `json:"sessionID"`
	Params    types.QuoteParams `json:"params"`
}

type previewResponse struct {
	SessionID string `json:"sessionID"`

	Result types.QuoteResult `json:"result"`

	// Baseline is the first successful result of the session; it is captured
	// once and never silently overwritten while the session lives.
	Baseline *types.QuoteResult `json:"baseline,omitempty"`

	// SavingsDelta is current minus baseline monthly savings.
	SavingsDelta float64 `json:"savingsDelta"`
}

// compute snapshots the reference data and runs the engine. The snapshot is
// fetched strictly before computation starts and is never re-read mid-call.
func (s *Server) compute(w http.ResponseWriter, r *http.Request, params types.QuoteParams) (types.QuoteResult, bool) {
	ctx := r.Context()

	tariffs, err := s.source.Tariffs(ctx)
	if err != nil {
		log.Ctx(ctx).ErrorContext(ctx, "failed to get tariff table", slog.Any("error", err))
		writeJSONError(w, "failed to get tariff table", http.StatusInternalServerError)
		return types.QuoteResult{}, false
	}
	catalog, err := s.source.Packages(ctx)
	if err != nil {
		log.Ctx(ctx).ErrorContext(ctx, "failed to get package catalog", slog.Any("error", err))
		writeJSONError(w, "failed to get package catalog", http.StatusInternalServerError)
		return types.QuoteResult{}, false
	}

	result, err := s.engine.Calculate(ctx, params, tariffs, catalog)
	if err != nil {
		switch {
		case errors.Is(err, engine.ErrValidation):
			writeJSONError(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, engine.ErrNoTariffData):
			writeJSONError(w, err.Error(), http.StatusUnprocessableEntity)
		default:
			log.Ctx(ctx).ErrorContext(ctx, "calculation failed", slog.Any("error", err))
			writeJSONError(w, "calculation failed", http.StatusInternalServerError)
		}
		return types.QuoteResult{}, false
	}
	return result, true
}

// handleQuote is the authoritative compute endpoint used before a quotation
// document is created.
func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	var req quoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	result, ok := s.compute(w, r, req.Params)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		panic(http.ErrAbortHandler)
	}
}

// handleQuotePreview is the interactive endpoint behind live UI sliders. It
// runs the same engine as handleQuote and additionally diffs the result
// against the session baseline. Callers are responsible for discarding
// results from superseded calls.
func (s *Server) handleQuotePreview(w http.ResponseWriter, r *http.Request) {
	var req previewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	sess := s.sessions.get(req.SessionID)

	result, ok := s.compute(w, r, req.Params)
	if !ok {
		return
	}

	baseline := s.sessions.captureBaseline(sess.ID, result)

	resp := previewResponse{
		SessionID: sess.ID,
		Result:    result,
		Baseline:  baseline,
	}
	if baseline != nil {
		resp.SavingsDelta = result.MonthlySavings - baseline.MonthlySavings
	}

	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		panic(http.ErrAbortHandler)
	}
}
