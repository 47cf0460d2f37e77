package routers

import (
	"learnhub-service/internal/app/delivery/http/controllers"
	"learnhub-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachPaymentRoutes(
	router chi.Router,
	middlewares *middlewares.Middlewares,
	paymentController *controllers.PaymentController,
	adminPaymentController *controllers.AdminPaymentController,
) {
	router.Group(func(r chi.Router) {
		r.Use(middlewares.Authenticate)
		r.Get("/history", paymentController.GetPaymentHistory)
		r.Post("/refund", paymentController.RequestRefund)
		r.Post("/deferral", paymentController.RequestDeferral)
	})

	router.Route("/admin", func(r chi.Router) {
		r.Use(middlewares.Authenticate)
		r.Use(middlewares.RequireAdmin)

		r.Get("/", adminPaymentController.ListPayments)
		r.Get("/refunds", adminPaymentController.ListRefundRequests)
		r.Get("/deferrals", adminPaymentController.ListDeferralRequests)

		r.Post("/refunds/{requestID}/approve", adminPaymentController.ApproveRefund)
		r.Post("/refunds/{requestID}/reject", adminPaymentController.RejectRefund)
		r.Post("/deferrals/{requestID}/approve", adminPaymentController.ApproveDeferral)
		r.Post("/deferrals/{requestID}/reject", adminPaymentController.RejectDeferral)

		r.Post("/direct-refund", adminPaymentController.DirectRefund)
		r.Post("/bulk-actions", adminPaymentController.BulkAction)
		r.Put("/update-status", adminPaymentController.UpdatePaymentStatus)
	})
}
