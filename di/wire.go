//go:build wireinject
// +build wireinject

package di

import (
	"drivingschool/config"
	"drivingschool/infras/jwt"
	"drivingschool/infras/kafka"
	"drivingschool/infras/metrics"
	"drivingschool/infras/otel"
	"drivingschool/infras/postgres"
	"drivingschool/infras/redis"
	"drivingschool/infras/s3"
	reservationConsumer "drivingschool/internal/consumers/reservation"
	authService "drivingschool/internal/domains/auth/service"
	instructorRepository "drivingschool/internal/domains/instructor/repository"
	instructorService "drivingschool/internal/domains/instructor/service"
	lessonRepository "drivingschool/internal/domains/lesson/repository"
	lessonService "drivingschool/internal/domains/lesson/service"
	"drivingschool/internal/domains/quiz/bank"
	quizRepository "drivingschool/internal/domains/quiz/repository"
	quizService "drivingschool/internal/domains/quiz/service"
	ratingRepository "drivingschool/internal/domains/rating/repository"
	ratingService "drivingschool/internal/domains/rating/service"
	reservationRepository "drivingschool/internal/domains/reservation/repository"
	reservationService "drivingschool/internal/domains/reservation/service"
	userRepository "drivingschool/internal/domains/user/repository"
	userService "drivingschool/internal/domains/user/service"
	vehicleRepository "drivingschool/internal/domains/vehicle/repository"
	vehicleService "drivingschool/internal/domains/vehicle/service"
	authHandler "drivingschool/internal/handlers/auth"
	examHandler "drivingschool/internal/handlers/exam"
	instructorHandler "drivingschool/internal/handlers/instructor"
	lessonHandler "drivingschool/internal/handlers/lesson"
	quizHandler "drivingschool/internal/handlers/quiz"
	reservationHandler "drivingschool/internal/handlers/reservation"
	userHandler "drivingschool/internal/handlers/user"
	vehicleHandler "drivingschool/internal/handlers/vehicle"
	"drivingschool/permissions"
	"drivingschool/shared/cache"
	"drivingschool/shared/session"
	"drivingschool/transport/http"
	"drivingschool/transport/http/middleware"
	"drivingschool/transport/http/router"
	"drivingschool/transport/worker"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	s3.New,
	metrics.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	session.NewHub,
)

var authDomain = wire.NewSet(
	authService.New,
)

var userDomain = wire.NewSet(
	userRepository.New,
	userService.New,
)

var instructorDomain = wire.NewSet(
	instructorRepository.New,
	instructorService.New,
)

var vehicleDomain = wire.NewSet(
	vehicleRepository.New,
	vehicleService.New,
)

var lessonDomain = wire.NewSet(
	lessonRepository.New,
	lessonService.New,
)

var reservationDomain = wire.NewSet(
	reservationRepository.New,
	reservationService.New,
)

var ratingDomain = wire.NewSet(
	ratingRepository.New,
	ratingService.New,
)

var quizDomain = wire.NewSet(
	bank.New,
	quizRepository.New,
	quizService.New,
	quizService.NewExam,
)

var domains = wire.NewSet(
	authDomain,
	userDomain,
	instructorDomain,
	vehicleDomain,
	lessonDomain,
	reservationDomain,
	ratingDomain,
	quizDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	userHandler.New,
	instructorHandler.New,
	vehicleHandler.New,
	lessonHandler.New,
	reservationHandler.New,
	quizHandler.New,
	examHandler.New,
	router.New,
)

func InitializeService() (*http.HTTP, error) {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}, nil
}

func InitializeWorker() *worker.Worker {
	wire.Build(
		config.Get,
		postgres.New,
		otel.New,
		redis.New,
		kafka.New,
		cache.NewRedisCache,
		lessonDomain,
		reservationConsumer.New,
		worker.New,
	)

	return &worker.Worker{}
}
