package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/Zhihong0321/Solar-Calculator-sub002/pkg/log"
)

func (s *Server) handleListTariffs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	rows, err := s.source.Tariffs(ctx)
	if err != nil {
		log.Ctx(ctx).ErrorContext(ctx, "failed to get tariff table", slog.Any("error", err))
		writeJSONError(w, "failed to get tariff table", http.StatusInternalServerError)
		return
	}

	// Reference data changes rarely so let clients cache briefly.
	w.Header().Set("Cache-Control", "public, max-age=300")
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(rows); err != nil {
		panic(http.ErrAbortHandler)
	}
}

func (s *Server) handleListPackages(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	catalog, err := s.source.Packages(ctx)
	if err != nil {
		log.Ctx(ctx).ErrorContext(ctx, "failed to get package catalog", slog.Any("error", err))
		writeJSONError(w, "failed to get package catalog", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Cache-Control", "public, max-age=300")
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(catalog); err != nil {
		panic(http.ErrAbortHandler)
	}
}
