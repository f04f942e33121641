package router

import (
	"drivingschool/infras/metrics"
	"drivingschool/internal/handlers/auth"
	"drivingschool/internal/handlers/exam"
	"drivingschool/internal/handlers/instructor"
	"drivingschool/internal/handlers/lesson"
	"drivingschool/internal/handlers/quiz"
	"drivingschool/internal/handlers/reservation"
	"drivingschool/internal/handlers/user"
	"drivingschool/internal/handlers/vehicle"
	"drivingschool/transport/http/middleware"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Auth        auth.Handler
	User        user.Handler
	Instructor  instructor.Handler
	Vehicle     vehicle.Handler
	Lesson      lesson.Handler
	Reservation reservation.Handler
	Quiz        quiz.Handler
	Exam        exam.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	App            middleware.AppMiddleware
	AuthRole       middleware.AuthRole
	Metrics        metrics.Metrics
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Use(r.App.Tracing, r.App.Metrics)
	router.Handle("/metrics", r.Metrics.Handler())

	router.Route("/v1", func(routerGroup chi.Router) {
		routerGroup.Use(r.App.RateLimit(), r.AuthRole.APIKey, r.AuthRole.Auth, r.AuthRole.RBAC)

		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.User.Router(routerGroup)
		r.DomainHandlers.Instructor.Router(routerGroup)
		r.DomainHandlers.Vehicle.Router(routerGroup)
		r.DomainHandlers.Lesson.Router(routerGroup)
		r.DomainHandlers.Reservation.Router(routerGroup)
		r.DomainHandlers.Quiz.Router(routerGroup)
		r.DomainHandlers.Exam.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers, app middleware.AppMiddleware, authRole middleware.AuthRole, metrics metrics.Metrics) Router {
	return Router{
		DomainHandlers: domainHandlers,
		App:            app,
		AuthRole:       authRole,
		Metrics:        metrics,
	}
}
