package handler

import (
	"net/http"
	"strconv"
	"strings"

	"ratewatch/internal/domain"
	"ratewatch/internal/ingest"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

type HistoryPoint struct {
	Date string  `json:"date"`
	Rate float64 `json:"rate"`
}

type GetHistoryResponse struct {
	Code   string         `json:"code"`
	Points []HistoryPoint `json:"points"`
}

func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	code := strings.ToUpper(strings.TrimSpace(chi.URLParam(r, "code")))
	if !h.supported(code) {
		writeError(w, http.StatusNotFound, domain.ErrCodeNotFound.Error())
		return
	}

	days := h.windowDays
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeError(w, http.StatusBadRequest, "days must be a positive integer")
			return
		}
		days = parsed
	}

	history, err := h.store.Load(r.Context())
	if err != nil {
		msg := "ups, couldn't load rate history this time"
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "GetHistory", "code": code}).Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	window := ingest.TrailingWindow(history[code], days)
	points := make([]HistoryPoint, 0, len(window))
	for _, p := range window {
		points = append(points, HistoryPoint{Date: p.Date, Rate: p.Rate})
	}

	writeJSON(w, http.StatusOK, GetHistoryResponse{Code: code, Points: points})
}
