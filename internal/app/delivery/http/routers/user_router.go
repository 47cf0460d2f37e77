package routers

import (
	"learnhub-service/internal/app/delivery/http/controllers"
	"learnhub-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachUserRoutes(router chi.Router, middlewares *middlewares.Middlewares, userController *controllers.UserController) {
	router.Group(func(r chi.Router) {
		r.Use(middlewares.Authenticate)
		r.Get("/profile", userController.GetProfile)
	})
}
