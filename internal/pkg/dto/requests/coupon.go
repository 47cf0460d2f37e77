package requests

import "time"

type ApplyCoupon struct {
	CouponCode string  `json:"couponCode" validate:"required"`
	CourseID   string  `json:"courseId" validate:"required"`
	Amount     float64 `json:"amount" validate:"required,gt=0"`
}

type CreateCoupon struct {
	Code              string    `json:"code" validate:"required,alphanum,min=3,max=20"`
	Description       string    `json:"description"`
	DiscountType      string    `json:"discountType" validate:"required,oneof=percentage fixed"`
	DiscountValue     float64   `json:"discountValue" validate:"required,gt=0"`
	MaxDiscount       *float64  `json:"maxDiscount,omitempty"`
	MinPurchaseAmount float64   `json:"minPurchaseAmount" validate:"gte=0"`
	ApplicableCourses []string  `json:"applicableCourses"`
	UsageLimit        int       `json:"usageLimit" validate:"required,gt=0"`
	PerUserLimit      int       `json:"perUserLimit" validate:"required,gt=0"`
	ExpiryDate        time.Time `json:"expiryDate" validate:"required"`
}

type UpdateCoupon struct {
	Description       *string    `json:"description,omitempty"`
	DiscountValue     *float64   `json:"discountValue,omitempty"`
	MaxDiscount       *float64   `json:"maxDiscount,omitempty"`
	MinPurchaseAmount *float64   `json:"minPurchaseAmount,omitempty"`
	ApplicableCourses []string   `json:"applicableCourses,omitempty"`
	IsActive          *bool      `json:"isActive,omitempty"`
	UsageLimit        *int       `json:"usageLimit,omitempty"`
	PerUserLimit      *int       `json:"perUserLimit,omitempty"`
	ExpiryDate        *time.Time `json:"expiryDate,omitempty"`
}
