package responses

import "time"

// CouponSummary is what the apply-coupon preview exposes about a coupon.
type CouponSummary struct {
	Name          string  `json:"name"`
	Code          string  `json:"code"`
	DiscountType  string  `json:"discountType"`
	DiscountValue float64 `json:"discountValue"`
}

type ApplyCouponResponse struct {
	Coupon         CouponSummary `json:"coupon"`
	OriginalAmount float64       `json:"originalAmount"`
	DiscountAmount float64       `json:"discountAmount"`
	FinalAmount    float64       `json:"finalAmount"`
}

type CouponDetail struct {
	ID                string    `json:"id"`
	Code              string    `json:"code"`
	Description       string    `json:"description,omitempty"`
	DiscountType      string    `json:"discountType"`
	DiscountValue     float64   `json:"discountValue"`
	MaxDiscount       *float64  `json:"maxDiscount,omitempty"`
	MinPurchaseAmount float64   `json:"minPurchaseAmount"`
	ApplicableCourses []string  `json:"applicableCourses"`
	IsActive          bool      `json:"isActive"`
	UsageLimit        int       `json:"usageLimit"`
	PerUserLimit      int       `json:"perUserLimit"`
	UsedCount         int       `json:"usedCount"`
	ExpiryDate        time.Time `json:"expiryDate"`
}

type CouponUsageEntry struct {
	UserID         string    `json:"userId"`
	CourseID       string    `json:"courseId"`
	DiscountAmount float64   `json:"discountAmount"`
	OriginalAmount float64   `json:"originalAmount"`
	FinalAmount    float64   `json:"finalAmount"`
	UsedAt         time.Time `json:"usedAt"`
}
