package api

import (
	_ "ratewatch/docs"
	"ratewatch/internal/ingest/handler"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	swagger "github.com/swaggo/http-swagger"
)

func NewRouter(rateHandler *handler.Handler) *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(middleware.Heartbeat("/healthz"))

	// Swagger UI
	router.Get("/swagger/*", swagger.WrapHandler)

	router.Get("/api/v1/rates/latest", rateHandler.GetLatest)
	router.Get("/api/v1/rates/{code:[A-Za-z]{3}}/history", rateHandler.GetHistory)
	router.Get("/api/v1/rates/{code:[A-Za-z]{3}}/chart", rateHandler.GetChart)
	router.Post("/api/v1/ingest/runs", rateHandler.TriggerRun)
	return router
}
