package handler

import (
	"drivingschool/config"
	"drivingschool/di"
	"drivingschool/shared/failure"
	"drivingschool/shared/logger"
	"drivingschool/transport/http/response"
	"net/http"
	"sync"
)

var (
	once    sync.Once
	service http.Handler
	initErr error
)

func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	once.Do(func() {
		cfg := config.Get()

		logger.Init(cfg)

		handler, err := di.InitializeService()
		if err != nil {
			initErr = err

			return
		}

		service = handler.Handler()
	})

	if initErr != nil {
		response.WithError(w, failure.InternalError(initErr))

		return
	}

	service.ServeHTTP(w, r)
}
