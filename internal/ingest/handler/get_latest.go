package handler

import (
	"net/http"

	"github.com/sirupsen/logrus"
)

type GetLatestResponse struct {
	Date  string             `json:"date"`
	Rates map[string]float64 `json:"rates"`
}

// GetLatest godoc
// @Summary Latest stored quotation
// @Description Returns the most recent stored date and the rate for every configured currency on that date
// @Tags Rates
// @Produce json
// @Success 200 {object} GetLatestResponse
// @Failure 404 {object} errorResponse
// @Router /rates/latest [get]
func (h *Handler) GetLatest(w http.ResponseWriter, r *http.Request) {
	history, err := h.store.Load(r.Context())
	if err != nil {
		msg := "ups, couldn't load rate history this time"
		logrus.WithError(err).WithField("handler", "GetLatest").Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	date, ok := history.LatestDate()
	if !ok {
		writeError(w, http.StatusNotFound, "no rates stored yet")
		return
	}

	rates := make(map[string]float64, len(h.codes))
	for _, code := range h.codes {
		if rate, found := history[code][date]; found {
			rates[code] = rate
		}
	}

	writeJSON(w, http.StatusOK, GetLatestResponse{Date: date, Rates: rates})
}
