package main

import (
	"context"
	"drivingschool/config"
	"drivingschool/di"
	"drivingschool/shared/logger"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	cfg := config.Get()

	logger.Init(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	worker := di.InitializeWorker()
	worker.Run(ctx)
}
