package routers

import (
	"learnhub-service/internal/app/delivery/http/controllers"
	"learnhub-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachCourseRoutes(
	router chi.Router,
	middlewares *middlewares.Middlewares,
	courseController *controllers.CourseController,
	paymentController *controllers.PaymentController,
) {
	// Catalog is public; only published courses show up here.
	router.Get("/", courseController.ListCourses)

	// Checkout rides under /courses/payment so the client keeps one base path.
	router.Group(func(r chi.Router) {
		r.Use(middlewares.Authenticate)
		r.Post("/payment/create-order", paymentController.CreateOrder)
		r.Post("/payment/verify", paymentController.VerifyPayment)
	})

	router.Group(func(r chi.Router) {
		r.Use(middlewares.Authenticate)
		r.Use(middlewares.RequireAdmin)
		r.Get("/all", courseController.ListAllCourses)
		r.Post("/", courseController.CreateCourse)
		r.Put("/{courseID}", courseController.UpdateCourse)
		r.Delete("/{courseID}", courseController.DeleteCourse)
		r.Post("/{courseID}/thumbnail", courseController.UploadThumbnail)
	})

	router.Group(func(r chi.Router) {
		r.Use(middlewares.Authenticate)
		r.Put("/{courseID}/progress", paymentController.UpdateProgress)
	})

	router.Get("/{courseID}", courseController.GetCourse)
}
