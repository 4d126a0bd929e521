package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"slices"
	"time"

	"ratewatch/internal/domain"
)

type HistoryProvider interface {
	Load(ctx context.Context) (domain.History, error)
}

type CycleRunner interface {
	Run(ctx context.Context, execID string, today time.Time) (int, error)
}

type ChartRenderer interface {
	Render(points []domain.Point, label string) ([]byte, error)
}

type ChartCache interface {
	Get(key string) ([]byte, bool)
	Set(key string, png []byte)
}

type Handler struct {
	store      HistoryProvider
	cycle      CycleRunner
	charts     ChartRenderer
	chartCache ChartCache
	codes      []string
	windowDays int
}

func NewHandler(store HistoryProvider, cycle CycleRunner, charts ChartRenderer, chartCache ChartCache, codes []string, windowDays int) *Handler {
	if windowDays <= 0 {
		windowDays = 30
	}
	return &Handler{
		store:      store,
		cycle:      cycle,
		charts:     charts,
		chartCache: chartCache,
		codes:      codes,
		windowDays: windowDays,
	}
}

func (h *Handler) supported(code string) bool {
	return slices.Contains(h.codes, code)
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, statusCode int, errorMsg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(errorResponse{
		Error: errorMsg,
	})
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}
