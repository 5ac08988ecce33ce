package main

import (
	"gather/config"
	"gather/di"
	"gather/shared/logger"
)

// @title Gather API
// @version 1.0
// @description Events and RSVP service.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	http := di.InitializeService()
	http.Serve()
}
