package routers

import (
	"learnhub-service/internal/app/config"
	"learnhub-service/internal/app/delivery/http/controllers"
	"learnhub-service/internal/app/delivery/http/middlewares"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
)

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	middlewares *middlewares.Middlewares,
	authController *controllers.AuthController,
	userController *controllers.UserController,
	courseController *controllers.CourseController,
	couponController *controllers.CouponController,
	paymentController *controllers.PaymentController,
	adminPaymentController *controllers.AdminPaymentController,
) {

	corsOptions := cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	router.Use(cors.Handler(corsOptions))

	// Rate limiting middleware using httprate
	rateLimiter := httprate.LimitByIP(
		internalConfig.App.MaxRequests,
		time.Duration(internalConfig.App.MaxTimeRequestsPerSeconds)*time.Second,
	)
	router.Use(rateLimiter)

	router.Use(middlewares.RequestIDMiddleware)
	router.Use(middlewares.Logging(middlewares.Log))
	router.Use(middlewares.ErrorHandler)

	router.Route(internalConfig.App.EndpointPrefix, func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			attachAuthRoutes(r, middlewares, authController)
		})

		r.Route("/users", func(r chi.Router) {
			attachUserRoutes(r, middlewares, userController)
		})

		r.Route("/courses", func(r chi.Router) {
			attachCourseRoutes(r, middlewares, courseController, paymentController)
		})

		r.Route("/coupons", func(r chi.Router) {
			attachCouponRoutes(r, middlewares, couponController)
		})

		r.Route("/payments", func(r chi.Router) {
			attachPaymentRoutes(r, middlewares, paymentController, adminPaymentController)
		})
	})
}
