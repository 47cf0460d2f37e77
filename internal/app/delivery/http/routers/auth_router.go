package routers

import (
	"learnhub-service/internal/app/delivery/http/controllers"
	"learnhub-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachAuthRoutes(router chi.Router, middlewares *middlewares.Middlewares, authController *controllers.AuthController) {
	router.Post("/register", authController.Register)
	router.Post("/login", authController.Login)
	router.Post("/verify-otp", authController.VerifyOTP)
	router.Post("/resend-otp", authController.ResendOTP)
	router.Post("/google", authController.GoogleSignIn)

	router.Group(func(r chi.Router) {
		r.Use(middlewares.Authenticate)
		r.Post("/logout", authController.Logout)
	})
}
