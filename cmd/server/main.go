package main

import (
	"github.com/belgraph/reifier/internal/config"
	"github.com/belgraph/reifier/internal/server"
	"github.com/belgraph/reifier/internal/util"
	"github.com/belgraph/reifier/pkg/logger"
	"github.com/belgraph/reifier/pkg/logger/console"
)

func main() {
	util.LoadEnv()
	cfg := config.Load()

	consoleLogger := console.NewConsoleLogger(console.ConsoleLoggerParams{
		Debug:  cfg.Debug,
		Format: cfg.LogFormat,
	})
	logger.Init(consoleLogger)

	server.Init(cfg)
}
