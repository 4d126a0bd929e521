package main

import (
	"ratewatch/internal/app"

	"github.com/sirupsen/logrus"
)

// @title ratewatch API
// @version 1.0
// @description Daily official exchange-rate ingestion service
// @BasePath /api/v1
func main() {
	if err := app.Run(); err != nil {
		logrus.WithError(err).Fatal("ratewatch terminated")
	}
}
