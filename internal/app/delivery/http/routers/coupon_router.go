package routers

import (
	"learnhub-service/internal/app/delivery/http/controllers"
	"learnhub-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachCouponRoutes(router chi.Router, middlewares *middlewares.Middlewares, couponController *controllers.CouponController) {
	router.Group(func(r chi.Router) {
		r.Use(middlewares.Authenticate)
		r.Post("/apply", couponController.ApplyCoupon)
	})

	router.Group(func(r chi.Router) {
		r.Use(middlewares.Authenticate)
		r.Use(middlewares.RequireAdmin)
		r.Get("/", couponController.ListCoupons)
		r.Post("/", couponController.CreateCoupon)
		r.Get("/{couponID}/usage", couponController.GetCouponUsage)
		r.Put("/{couponID}", couponController.UpdateCoupon)
		r.Delete("/{couponID}", couponController.DeleteCoupon)
	})
}
