package handler

import (
	"net/http"
	"strings"

	"ratewatch/internal/adapters/cache"
	"ratewatch/internal/domain"
	"ratewatch/internal/ingest"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

// GetChart serves the trailing-window trend chart as PNG. Rendered images
// are cached per (code, latest date): the chart only changes when a new
// quotation date lands.
func (h *Handler) GetChart(w http.ResponseWriter, r *http.Request) {
	code := strings.ToUpper(strings.TrimSpace(chi.URLParam(r, "code")))
	if !h.supported(code) {
		writeError(w, http.StatusNotFound, domain.ErrCodeNotFound.Error())
		return
	}

	history, err := h.store.Load(r.Context())
	if err != nil {
		msg := "ups, couldn't load rate history this time"
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "GetChart", "code": code}).Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	series := history[code]
	dates := series.SortedDates()
	if len(dates) == 0 {
		writeError(w, http.StatusNotFound, "no rates stored for currency")
		return
	}

	cacheKey := cache.Key(code, dates[len(dates)-1])
	if png, ok := h.chartCache.Get(cacheKey); ok {
		writePNG(w, png)
		return
	}

	png, err := h.charts.Render(ingest.TrailingWindow(series, h.windowDays), code)
	if err != nil {
		msg := "ups, couldn't render the chart this time"
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "GetChart", "code": code}).Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}
	h.chartCache.Set(cacheKey, png)

	writePNG(w, png)
}

func writePNG(w http.ResponseWriter, png []byte) {
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}
