package coupons

import (
	"context"
	"fmt"
	"learnhub-service/internal/app/contracts"
	"learnhub-service/internal/app/models"
	"learnhub-service/internal/pkg/constvars"
	"learnhub-service/internal/pkg/dto/requests"
	"learnhub-service/internal/pkg/dto/responses"
	"learnhub-service/internal/pkg/exceptions"
	"math"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

var (
	couponUsecaseInstance contracts.CouponUsecase
	onceCouponUsecase     sync.Once
)

type couponUsecase struct {
	CouponRepository contracts.CouponRepository
	Log              *zap.Logger
}

func NewCouponUsecase(couponRepository contracts.CouponRepository, logger *zap.Logger) contracts.CouponUsecase {
	onceCouponUsecase.Do(func() {
		couponUsecaseInstance = &couponUsecase{
			CouponRepository: couponRepository,
			Log:              logger,
		}
	})
	return couponUsecaseInstance
}

// ValidateCoupon runs every applicability gate in order and computes the
// discount. It never mutates coupon state; redemption is recorded only after
// a payment is verified.
func (uc *couponUsecase) ValidateCoupon(ctx context.Context, code, courseID, userID string, amount float64) (*contracts.DiscountResult, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	normalizedCode := strings.ToUpper(strings.TrimSpace(code))
	uc.Log.Info("couponUsecase.ValidateCoupon called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingCouponCodeKey, normalizedCode),
		zap.String(constvars.LoggingCourseIDKey, courseID),
		zap.Float64("amount", amount),
	)

	couponEntity, err := uc.CouponRepository.FindByCode(ctx, normalizedCode)
	if err != nil {
		return nil, err
	}
	if couponEntity == nil || !couponEntity.IsActive {
		return nil, exceptions.ErrCouponNotFound(fmt.Errorf("coupon %s not found or inactive", normalizedCode))
	}
	if time.Now().After(couponEntity.ExpiryDate) {
		return nil, exceptions.ErrCouponNotFound(fmt.Errorf("coupon %s expired at %s", normalizedCode, couponEntity.ExpiryDate))
	}
	if !couponEntity.AppliesToCourse(courseID) {
		return nil, exceptions.ErrCouponNotApplicable(fmt.Errorf("coupon %s does not cover course %s", normalizedCode, courseID))
	}
	if amount < couponEntity.MinPurchaseAmount {
		return nil, exceptions.ErrCouponBelowMinPurchase(fmt.Errorf("amount %.2f below minimum %.2f", amount, couponEntity.MinPurchaseAmount))
	}
	if couponEntity.UsedCount >= couponEntity.UsageLimit {
		return nil, exceptions.ErrCouponUsageLimitReached(fmt.Errorf("coupon %s used %d of %d times", normalizedCode, couponEntity.UsedCount, couponEntity.UsageLimit))
	}
	if couponEntity.UsageCountForUser(userID) >= couponEntity.PerUserLimit {
		return nil, exceptions.ErrCouponPerUserLimitReached(fmt.Errorf("user %s exhausted per-user limit %d", userID, couponEntity.PerUserLimit))
	}

	discount := computeDiscount(couponEntity, amount)
	return &contracts.DiscountResult{
		Coupon:         couponEntity,
		OriginalAmount: amount,
		DiscountAmount: discount,
		FinalAmount:    roundMoney(amount - discount),
	}, nil
}

func (uc *couponUsecase) ApplyCoupon(ctx context.Context, userID string, request *requests.ApplyCoupon) (*responses.ApplyCouponResponse, error) {
	result, err := uc.ValidateCoupon(ctx, request.CouponCode, request.CourseID, userID, request.Amount)
	if err != nil {
		return nil, err
	}

	return &responses.ApplyCouponResponse{
		Coupon: responses.CouponSummary{
			Name:          result.Coupon.Description,
			Code:          result.Coupon.Code,
			DiscountType:  string(result.Coupon.DiscountType),
			DiscountValue: result.Coupon.DiscountValue,
		},
		OriginalAmount: result.OriginalAmount,
		DiscountAmount: result.DiscountAmount,
		FinalAmount:    result.FinalAmount,
	}, nil
}

func (uc *couponUsecase) CreateCoupon(ctx context.Context, request *requests.CreateCoupon) (*responses.CouponDetail, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	normalizedCode := strings.ToUpper(strings.TrimSpace(request.Code))
	uc.Log.Info("couponUsecase.CreateCoupon called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingCouponCodeKey, normalizedCode),
	)

	existing, err := uc.CouponRepository.FindByCode(ctx, normalizedCode)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, exceptions.ErrCouponCodeTaken(fmt.Errorf("coupon code %s already exists", normalizedCode))
	}

	couponEntity := &models.Coupon{
		Code:              normalizedCode,
		Description:       request.Description,
		DiscountType:      models.CouponDiscountType(request.DiscountType),
		DiscountValue:     request.DiscountValue,
		MaxDiscount:       request.MaxDiscount,
		MinPurchaseAmount: request.MinPurchaseAmount,
		ApplicableCourses: request.ApplicableCourses,
		IsActive:          true,
		UsageLimit:        request.UsageLimit,
		PerUserLimit:      request.PerUserLimit,
		UsedCount:         0,
		ExpiryDate:        request.ExpiryDate,
		UsageHistory:      []models.CouponUsage{},
	}
	couponEntity.SetCreatedAtUpdatedAt()

	couponID, err := uc.CouponRepository.CreateCoupon(ctx, couponEntity)
	if err != nil {
		return nil, err
	}
	couponEntity.ID = couponID

	detail := buildCouponDetail(couponEntity)
	return &detail, nil
}

func (uc *couponUsecase) ListCoupons(ctx context.Context) ([]responses.CouponDetail, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("couponUsecase.ListCoupons called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	couponList, err := uc.CouponRepository.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	details := make([]responses.CouponDetail, 0, len(couponList))
	for i := range couponList {
		details = append(details, buildCouponDetail(&couponList[i]))
	}
	return details, nil
}

func (uc *couponUsecase) GetCouponUsage(ctx context.Context, couponID string) ([]responses.CouponUsageEntry, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("couponUsecase.GetCouponUsage called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	couponEntity, err := uc.CouponRepository.FindByID(ctx, couponID)
	if err != nil {
		return nil, err
	}
	if couponEntity == nil {
		return nil, exceptions.ErrCouponNotFound(fmt.Errorf("coupon %s not found", couponID))
	}

	entries := make([]responses.CouponUsageEntry, 0, len(couponEntity.UsageHistory))
	for _, usage := range couponEntity.UsageHistory {
		entries = append(entries, responses.CouponUsageEntry{
			UserID:         usage.UserID,
			CourseID:       usage.CourseID,
			DiscountAmount: usage.DiscountAmount,
			OriginalAmount: usage.OriginalAmount,
			FinalAmount:    usage.FinalAmount,
			UsedAt:         usage.UsedAt,
		})
	}
	return entries, nil
}

func (uc *couponUsecase) UpdateCoupon(ctx context.Context, couponID string, request *requests.UpdateCoupon) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("couponUsecase.UpdateCoupon called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	couponEntity, err := uc.CouponRepository.FindByID(ctx, couponID)
	if err != nil {
		return err
	}
	if couponEntity == nil {
		return exceptions.ErrCouponNotFound(fmt.Errorf("coupon %s not found", couponID))
	}

	updateData := map[string]interface{}{}
	if request.Description != nil {
		updateData["description"] = *request.Description
	}
	if request.DiscountValue != nil {
		updateData["discountValue"] = *request.DiscountValue
	}
	if request.MaxDiscount != nil {
		updateData["maxDiscount"] = *request.MaxDiscount
	}
	if request.MinPurchaseAmount != nil {
		updateData["minPurchaseAmount"] = *request.MinPurchaseAmount
	}
	if request.ApplicableCourses != nil {
		updateData["applicableCourses"] = request.ApplicableCourses
	}
	if request.IsActive != nil {
		updateData["isActive"] = *request.IsActive
	}
	if request.UsageLimit != nil {
		updateData["usageLimit"] = *request.UsageLimit
	}
	if request.PerUserLimit != nil {
		updateData["perUserLimit"] = *request.PerUserLimit
	}
	if request.ExpiryDate != nil {
		updateData["expiryDate"] = *request.ExpiryDate
	}
	if len(updateData) == 0 {
		return nil
	}

	return uc.CouponRepository.UpdateCoupon(ctx, couponID, updateData)
}

func (uc *couponUsecase) DeleteCoupon(ctx context.Context, couponID string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("couponUsecase.DeleteCoupon called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	couponEntity, err := uc.CouponRepository.FindByID(ctx, couponID)
	if err != nil {
		return err
	}
	if couponEntity == nil {
		return exceptions.ErrCouponNotFound(fmt.Errorf("coupon %s not found", couponID))
	}

	return uc.CouponRepository.DeleteCoupon(ctx, couponID)
}

// computeDiscount applies the coupon's discount rule to amount. Percentage
// discounts are capped by MaxDiscount when set; every discount is clamped so
// the payable amount never goes negative.
func computeDiscount(coupon *models.Coupon, amount float64) float64 {
	var discount float64
	switch coupon.DiscountType {
	case models.DiscountTypePercentage:
		discount = amount * coupon.DiscountValue / 100
		if coupon.MaxDiscount != nil && discount > *coupon.MaxDiscount {
			discount = *coupon.MaxDiscount
		}
	case models.DiscountTypeFixed:
		discount = coupon.DiscountValue
	}
	if discount > amount {
		discount = amount
	}
	return roundMoney(discount)
}

func roundMoney(value float64) float64 {
	return math.Round(value*100) / 100
}

func buildCouponDetail(coupon *models.Coupon) responses.CouponDetail {
	return responses.CouponDetail{
		ID:                coupon.ID,
		Code:              coupon.Code,
		Description:       coupon.Description,
		DiscountType:      string(coupon.DiscountType),
		DiscountValue:     coupon.DiscountValue,
		MaxDiscount:       coupon.MaxDiscount,
		MinPurchaseAmount: coupon.MinPurchaseAmount,
		ApplicableCourses: coupon.ApplicableCourses,
		IsActive:          coupon.IsActive,
		UsageLimit:        coupon.UsageLimit,
		PerUserLimit:      coupon.PerUserLimit,
		UsedCount:         coupon.UsedCount,
		ExpiryDate:        coupon.ExpiryDate,
	}
}
