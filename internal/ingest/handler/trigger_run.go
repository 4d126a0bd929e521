package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type TriggerRunResponse struct {
	RunID          string `json:"run_id"`
	ProcessedDates int    `json:"processed_dates"`
}

// TriggerRun godoc
// @Summary Run an ingestion cycle now
// @Description Runs one full catch-up cycle synchronously and reports how many new quotation dates were processed
// @Tags Ingestion
// @Produce json
// @Success 200 {object} TriggerRunResponse
// @Failure 500 {object} errorResponse
// @Router /ingest/runs [post]
func (h *Handler) TriggerRun(w http.ResponseWriter, r *http.Request) {
	execID := uuid.NewString()

	processed, err := h.cycle.Run(r.Context(), execID, time.Now())
	if err != nil {
		msg := "ups, the ingestion cycle failed this time"
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "TriggerRun", "execID": execID}).Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	writeJSON(w, http.StatusOK, TriggerRunResponse{RunID: execID, ProcessedDates: processed})
}
