package service

import (
	"drivingschool/config"
	"drivingschool/infras/kafka"
	"drivingschool/infras/metrics"
	"drivingschool/infras/otel"
	"drivingschool/internal/domains/quiz/bank"
	"drivingschool/internal/domains/quiz/engine"
	"drivingschool/internal/domains/quiz/repository"
	"drivingschool/shared/cache"
	"drivingschool/shared/session"
)

func NewExamWithTicks(bank *bank.Bank, repo repository.Result, kafka kafka.Client, cache cache.RedisCache, metrics metrics.Metrics, hub session.Hub, cfg *config.Config, otel otel.Otel, ticks engine.TickSource) Exam {
	return newExam(bank, repo, kafka, cache, metrics, hub, cfg, otel, ticks)
}
