package contracts

import (
	"context"
	"learnhub-service/internal/app/models"
	"learnhub-service/internal/pkg/dto/requests"
	"learnhub-service/internal/pkg/dto/responses"
)

type CouponRepository interface {
	CreateCoupon(ctx context.Context, coupon *models.Coupon) (couponID string, err error)
	FindByCode(ctx context.Context, code string) (*models.Coupon, error)
	FindByID(ctx context.Context, couponID string) (*models.Coupon, error)
	FindAll(ctx context.Context) ([]models.Coupon, error)
	UpdateCoupon(ctx context.Context, couponID string, updateData map[string]interface{}) error
	DeleteCoupon(ctx context.Context, couponID string) error

	// RecordUsage increments usedCount and appends the history entry in one
	// conditional update filtered on usedCount < usageLimit. It returns false
	// without error when the filter matched no document, which means a
	// concurrent redemption exhausted the coupon first.
	RecordUsage(ctx context.Context, couponID string, usage *models.CouponUsage) (bool, error)
}

// DiscountResult is the outcome of validating a coupon against a purchase.
type DiscountResult struct {
	Coupon         *models.Coupon
	OriginalAmount float64
	DiscountAmount float64
	FinalAmount    float64
}

type CouponUsecase interface {
	// ValidateCoupon runs the full applicability check and computes the
	// discount without mutating any state.
	ValidateCoupon(ctx context.Context, code, courseID, userID string, amount float64) (*DiscountResult, error)
	ApplyCoupon(ctx context.Context, userID string, request *requests.ApplyCoupon) (*responses.ApplyCouponResponse, error)

	CreateCoupon(ctx context.Context, request *requests.CreateCoupon) (*responses.CouponDetail, error)
	ListCoupons(ctx context.Context) ([]responses.CouponDetail, error)
	GetCouponUsage(ctx context.Context, couponID string) ([]responses.CouponUsageEntry, error)
	UpdateCoupon(ctx context.Context, couponID string, request *requests.UpdateCoupon) error
	DeleteCoupon(ctx context.Context, couponID string) error
}
