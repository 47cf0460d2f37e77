package payments

import (
	"context"
	"fmt"
	"learnhub-service/internal/app/config"
	"learnhub-service/internal/app/contracts"
	"learnhub-service/internal/app/models"
	"learnhub-service/internal/pkg/constvars"
	"learnhub-service/internal/pkg/dto/requests"
	"learnhub-service/internal/pkg/dto/responses"
	"learnhub-service/internal/pkg/exceptions"
	"learnhub-service/internal/pkg/utils"
	"math"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// discountTolerance is the allowed drift between the client-supplied discount
// snapshot and the server recomputation before the order is rejected.
const discountTolerance = 0.01

var (
	paymentUsecaseInstance contracts.PaymentUsecase
	oncePaymentUsecase     sync.Once
)

type paymentUsecase struct {
	PaymentRepository         contracts.PaymentRepository
	RefundRequestRepository   contracts.RefundRequestRepository
	DeferralRequestRepository contracts.DeferralRequestRepository
	CouponRepository          contracts.CouponRepository
	CouponUsecase             contracts.CouponUsecase
	CourseRepository          contracts.CourseRepository
	UserRepository            contracts.UserRepository
	PaymentGateway            contracts.PaymentGatewayService
	Locker                    contracts.LockerService
	InternalConfig            *config.InternalConfig
	Log                       *zap.Logger
}

func NewPaymentUsecase(
	paymentRepository contracts.PaymentRepository,
	refundRequestRepository contracts.RefundRequestRepository,
	deferralRequestRepository contracts.DeferralRequestRepository,
	couponRepository contracts.CouponRepository,
	couponUsecase contracts.CouponUsecase,
	courseRepository contracts.CourseRepository,
	userRepository contracts.UserRepository,
	paymentGateway contracts.PaymentGatewayService,
	locker contracts.LockerService,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.PaymentUsecase {
	oncePaymentUsecase.Do(func() {
		paymentUsecaseInstance = &paymentUsecase{
			PaymentRepository:         paymentRepository,
			RefundRequestRepository:   refundRequestRepository,
			DeferralRequestRepository: deferralRequestRepository,
			CouponRepository:          couponRepository,
			CouponUsecase:             couponUsecase,
			CourseRepository:          courseRepository,
			UserRepository:            userRepository,
			PaymentGateway:            paymentGateway,
			Locker:                    locker,
			InternalConfig:            internalConfig,
			Log:                       logger,
		}
	})
	return paymentUsecaseInstance
}

func (uc *paymentUsecase) CreateOrder(ctx context.Context, userID string, request *requests.CreateOrder) (*responses.CreateOrderResponse, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("paymentUsecase.CreateOrder called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, userID),
		zap.String(constvars.LoggingCourseIDKey, request.CourseID),
		zap.String(constvars.LoggingCouponCodeKey, request.CouponCode),
	)

	courseEntity, err := uc.CourseRepository.FindByID(ctx, request.CourseID)
	if err != nil {
		return nil, err
	}
	if courseEntity == nil {
		return nil, exceptions.ErrCourseNotFound(fmt.Errorf("course %s not found", request.CourseID))
	}

	finalAmount := courseEntity.Price
	discountAmount := 0.0
	couponApplied := false

	if request.CouponCode != "" {
		result, err := uc.CouponUsecase.ValidateCoupon(ctx, request.CouponCode, request.CourseID, userID, courseEntity.Price)
		if err != nil {
			return nil, err
		}
		if math.Abs(result.DiscountAmount-request.DiscountAmount) > discountTolerance {
			return nil, exceptions.ErrDiscountMismatch(fmt.Errorf(
				"server discount %.2f vs client discount %.2f", result.DiscountAmount, request.DiscountAmount))
		}
		finalAmount = result.FinalAmount
		discountAmount = result.DiscountAmount
		couponApplied = true
	}

	if math.Abs(finalAmount-request.Amount) > discountTolerance {
		return nil, exceptions.ErrDiscountMismatch(fmt.Errorf(
			"server amount %.2f vs client amount %.2f", finalAmount, request.Amount))
	}

	notes := map[string]string{
		"courseId": request.CourseID,
		"userId":   userID,
	}
	if couponApplied {
		notes["couponCode"] = strings.ToUpper(strings.TrimSpace(request.CouponCode))
		notes["originalAmount"] = strconv.FormatFloat(courseEntity.Price, 'f', 2, 64)
		notes["discountAmount"] = strconv.FormatFloat(discountAmount, 'f', 2, 64)
	}

	order, err := uc.PaymentGateway.CreateOrder(ctx, &requests.RazorpayOrderRequest{
		Amount:   rupeesToPaise(finalAmount),
		Currency: constvars.RazorpayCurrencyINR,
		Receipt:  utils.GenerateOrderReceipt(request.CourseID, userID),
		Notes:    notes,
	})
	if err != nil {
		return nil, err
	}

	uc.Log.Info("paymentUsecase.CreateOrder succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOrderIDKey, order.ID),
	)

	return &responses.CreateOrderResponse{
		Order: responses.OrderResponse{
			ID:             order.ID,
			Amount:         order.Amount,
			Currency:       order.Currency,
			CourseID:       courseEntity.ID,
			CourseName:     courseEntity.Title,
			CouponApplied:  couponApplied,
			CouponCode:     notes["couponCode"],
			OriginalAmount: courseEntity.Price,
			DiscountAmount: discountAmount,
		},
	}, nil
}

// VerifyPayment reconciles a checkout callback: signature check, gateway
// capture check, coupon redemption, payment record, enrollment. A redis lock
// keyed by order id keeps concurrent callbacks for the same order out, and a
// transaction-id lookup makes retries return the recorded outcome instead of
// double-applying effects.
func (uc *paymentUsecase) VerifyPayment(ctx context.Context, userID string, request *requests.VerifyPayment) (*responses.VerifyPaymentResponse, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("paymentUsecase.VerifyPayment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, userID),
		zap.String(constvars.LoggingOrderIDKey, request.RazorpayOrderID),
		zap.String(constvars.LoggingPaymentIDKey, request.RazorpayPaymentID),
	)

	lockKey := fmt.Sprintf(constvars.RedisKeyVerifyLockFmt, request.RazorpayOrderID)
	lockExpiry := time.Duration(uc.InternalConfig.App.PaymentVerifyLockTimeInSeconds) * time.Second
	acquired, lockValue, err := uc.Locker.TryLock(ctx, lockKey, lockExpiry)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, exceptions.ErrVerificationInProgress(fmt.Errorf("lock held for order %s", request.RazorpayOrderID))
	}
	defer func() {
		if unlockErr := uc.Locker.Unlock(ctx, lockKey, lockValue); unlockErr != nil {
			uc.Log.Warn("paymentUsecase.VerifyPayment failed to release lock",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(unlockErr),
			)
		}
	}()

	existing, err := uc.PaymentRepository.FindByTransactionID(ctx, request.RazorpayPaymentID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		uc.Log.Info("paymentUsecase.VerifyPayment already reconciled",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPaymentIDKey, existing.ID),
		)
		courseName := ""
		if courseEntity, err := uc.CourseRepository.FindByID(ctx, existing.CourseID); err == nil && courseEntity != nil {
			courseName = courseEntity.Title
		}
		detail := buildPaymentDetail(existing, courseName)
		return &responses.VerifyPaymentResponse{
			Success:       true,
			Enrolled:      true,
			Message:       constvars.VerifyPaymentSuccessMessage,
			PaymentID:     request.RazorpayPaymentID,
			OrderID:       request.RazorpayOrderID,
			PaymentRecord: &detail,
			CouponApplied: existing.CouponCode != "",
			Savings:       existing.DiscountAmount,
		}, nil
	}

	if !uc.PaymentGateway.VerifySignature(request.RazorpayOrderID, request.RazorpayPaymentID, request.RazorpaySignature) {
		return nil, exceptions.ErrInvalidPaymentSignature(fmt.Errorf("signature mismatch for order %s", request.RazorpayOrderID))
	}

	gatewayPayment, err := uc.PaymentGateway.FetchPayment(ctx, request.RazorpayPaymentID)
	if err != nil {
		return nil, err
	}
	if gatewayPayment.Status != string(constvars.RazorpayPaymentStatusCaptured) {
		return nil, exceptions.ErrPaymentNotSuccessful(fmt.Errorf("gateway payment status is %s", gatewayPayment.Status))
	}

	courseEntity, err := uc.CourseRepository.FindByID(ctx, request.CourseID)
	if err != nil {
		return nil, err
	}
	if courseEntity == nil {
		return nil, exceptions.ErrCourseNotFound(fmt.Errorf("course %s not found", request.CourseID))
	}

	couponCode := ""
	discountAmount := 0.0
	amountPaid := paiseToRupees(gatewayPayment.Amount)

	// Coupon applicability was enforced strictly at order creation; the money
	// has already moved at the discounted price, so from here the coupon is
	// fetch-and-record only. A coupon that expired or exhausted in between
	// cannot fail the enrollment.
	if request.CouponCode != "" {
		code := strings.ToUpper(strings.TrimSpace(request.CouponCode))
		coupon, err := uc.CouponRepository.FindByCode(ctx, code)
		if err != nil {
			return nil, err
		}
		if coupon == nil {
			uc.Log.Warn("paymentUsecase.VerifyPayment coupon vanished after capture",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingCouponCodeKey, code),
			)
		} else {
			couponCode = coupon.Code
			discountAmount = request.DiscountAmount

			usage := &models.CouponUsage{
				UserID:         userID,
				CourseID:       request.CourseID,
				DiscountAmount: request.DiscountAmount,
				OriginalAmount: request.OriginalAmount,
				FinalAmount:    amountPaid,
				UsedAt:         time.Now(),
			}
			applied, err := uc.CouponRepository.RecordUsage(ctx, coupon.ID, usage)
			if err != nil {
				return nil, err
			}
			if !applied {
				uc.Log.Warn("paymentUsecase.VerifyPayment coupon limit exhausted before reconciliation",
					zap.String(constvars.LoggingRequestIDKey, requestID),
					zap.String(constvars.LoggingCouponCodeKey, couponCode),
				)
			}
		}
	}

	paymentEntity := &models.Payment{
		UserID:           userID,
		CourseID:         request.CourseID,
		Amount:           amountPaid,
		Status:           normalizeGatewayStatus(gatewayPayment.Status),
		TransactionID:    request.RazorpayPaymentID,
		OrderID:          request.RazorpayOrderID,
		CouponCode:       couponCode,
		DiscountAmount:   discountAmount,
		PercentCompleted: 0,
	}
	paymentEntity.SetCreatedAtUpdatedAt()

	paymentID, err := uc.PaymentRepository.CreatePayment(ctx, paymentEntity)
	if err != nil {
		return nil, err
	}
	paymentEntity.ID = paymentID

	err = uc.UserRepository.AddEnrolledCourse(ctx, userID, request.CourseID)
	if err != nil {
		return nil, err
	}

	uc.Log.Info("paymentUsecase.VerifyPayment reconciled",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPaymentIDKey, paymentID),
		zap.Float64("amount", amountPaid),
	)

	detail := buildPaymentDetail(paymentEntity, courseEntity.Title)
	return &responses.VerifyPaymentResponse{
		Success:       true,
		Enrolled:      true,
		Message:       constvars.VerifyPaymentSuccessMessage,
		PaymentID:     request.RazorpayPaymentID,
		OrderID:       request.RazorpayOrderID,
		PaymentRecord: &detail,
		CouponApplied: couponCode != "",
		Savings:       discountAmount,
	}, nil
}

func (uc *paymentUsecase) GetPaymentHistory(ctx context.Context, userID string) ([]responses.PaymentDetail, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("paymentUsecase.GetPaymentHistory called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, userID),
	)

	paymentList, err := uc.PaymentRepository.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	courseNames := map[string]string{}
	details := make([]responses.PaymentDetail, 0, len(paymentList))
	for i := range paymentList {
		payment := &paymentList[i]
		name, ok := courseNames[payment.CourseID]
		if !ok {
			courseEntity, err := uc.CourseRepository.FindByID(ctx, payment.CourseID)
			if err == nil && courseEntity != nil {
				name = courseEntity.Title
			}
			courseNames[payment.CourseID] = name
		}
		details = append(details, buildPaymentDetail(payment, name))
	}
	return details, nil
}

func (uc *paymentUsecase) UpdateProgress(ctx context.Context, userID, courseID string, percentCompleted float64) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("paymentUsecase.UpdateProgress called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, userID),
		zap.String(constvars.LoggingCourseIDKey, courseID),
		zap.Float64("percent_completed", percentCompleted),
	)

	paymentEntity, err := uc.PaymentRepository.FindSuccessfulByUserAndCourse(ctx, userID, courseID)
	if err != nil {
		return err
	}
	if paymentEntity == nil {
		return exceptions.ErrPaymentNotFound(fmt.Errorf("no successful payment for user %s on course %s", userID, courseID))
	}

	return uc.PaymentRepository.UpdateProgress(ctx, paymentEntity.ID, percentCompleted)
}

// RequestRefund gates on the refund window and the progress threshold as they
// stand right now; a request that passes stays valid even if progress moves
// past the threshold before an admin decides it.
func (uc *paymentUsecase) RequestRefund(ctx context.Context, userID string, request *requests.RequestRefund) (*responses.RefundRequestDetail, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("paymentUsecase.RequestRefund called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, userID),
		zap.String(constvars.LoggingPaymentIDKey, request.PaymentID),
	)

	paymentEntity, err := uc.PaymentRepository.FindByID(ctx, request.PaymentID)
	if err != nil {
		return nil, err
	}
	if paymentEntity == nil || paymentEntity.UserID != userID {
		return nil, exceptions.ErrPaymentNotFound(fmt.Errorf("payment %s not found for user %s", request.PaymentID, userID))
	}
	if paymentEntity.Status != models.PaymentStatusSuccess {
		return nil, exceptions.ErrPaymentNotSuccessful(fmt.Errorf("payment %s status is %s", request.PaymentID, paymentEntity.Status))
	}

	refundWindow := time.Duration(uc.InternalConfig.App.RefundWindowInDays) * 24 * time.Hour
	if time.Since(paymentEntity.CreatedAt) > refundWindow {
		return nil, exceptions.ErrRefundWindowClosed(fmt.Errorf("payment created at %s", paymentEntity.CreatedAt))
	}
	if paymentEntity.PercentCompleted > uc.InternalConfig.App.RefundMaxProgressPercent {
		return nil, exceptions.ErrRefundProgressExceeded(fmt.Errorf("progress is %.2f%%", paymentEntity.PercentCompleted))
	}

	refundRequest := &models.RefundRequest{
		UserID:      userID,
		PaymentID:   request.PaymentID,
		Reason:      request.Reason,
		Status:      models.RequestStatusPending,
		RequestedAt: time.Now(),
	}
	refundRequestID, err := uc.RefundRequestRepository.CreateRefundRequest(ctx, refundRequest)
	if err != nil {
		return nil, err
	}
	refundRequest.ID = refundRequestID

	detail := buildRefundRequestDetail(refundRequest)
	return &detail, nil
}

func (uc *paymentUsecase) RequestDeferral(ctx context.Context, userID string, request *requests.RequestDeferral) (*responses.DeferralRequestDetail, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("paymentUsecase.RequestDeferral called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, userID),
		zap.String(constvars.LoggingCourseIDKey, request.CourseID),
	)

	paymentEntity, err := uc.PaymentRepository.FindSuccessfulByUserAndCourse(ctx, userID, request.CourseID)
	if err != nil {
		return nil, err
	}
	if paymentEntity == nil {
		return nil, exceptions.ErrPaymentNotFound(fmt.Errorf("no successful payment for user %s on course %s", userID, request.CourseID))
	}
	if paymentEntity.PercentCompleted > uc.InternalConfig.App.DeferralMaxProgressPercent {
		return nil, exceptions.ErrDeferralProgressExceeded(fmt.Errorf("progress is %.2f%%", paymentEntity.PercentCompleted))
	}

	deferralRequest := &models.DeferralRequest{
		UserID:      userID,
		CourseID:    request.CourseID,
		Batch:       request.Batch,
		Reason:      request.Reason,
		Status:      models.RequestStatusPending,
		RequestedAt: time.Now(),
	}
	deferralRequestID, err := uc.DeferralRequestRepository.CreateDeferralRequest(ctx, deferralRequest)
	if err != nil {
		return nil, err
	}
	deferralRequest.ID = deferralRequestID

	detail := buildDeferralRequestDetail(deferralRequest)
	return &detail, nil
}

// normalizeGatewayStatus folds the gateway's capture-side states into the
// payment record's status once, at ingestion; listings never re-map.
func normalizeGatewayStatus(gatewayStatus string) models.PaymentStatus {
	switch constvars.RazorpayPaymentStatus(gatewayStatus) {
	case constvars.RazorpayPaymentStatusCaptured,
		constvars.RazorpayPaymentStatusAuthorized,
		constvars.RazorpayPaymentStatusCreated:
		return models.PaymentStatusSuccess
	case constvars.RazorpayPaymentStatusRefunded:
		return models.PaymentStatusRefunded
	default:
		return models.PaymentStatusFailed
	}
}

func rupeesToPaise(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func paiseToRupees(amount int64) float64 {
	return float64(amount) / 100
}

func buildPaymentDetail(payment *models.Payment, courseName string) responses.PaymentDetail {
	return responses.PaymentDetail{
		ID:               payment.ID,
		UserID:           payment.UserID,
		CourseID:         payment.CourseID,
		CourseName:       courseName,
		Amount:           payment.Amount,
		Status:           string(payment.Status),
		TransactionID:    payment.TransactionID,
		OrderID:          payment.OrderID,
		CouponCode:       payment.CouponCode,
		DiscountAmount:   payment.DiscountAmount,
		PercentCompleted: payment.PercentCompleted,
		AdminNote:        payment.AdminNote,
		CreatedAt:        payment.CreatedAt,
	}
}

func buildRefundRequestDetail(request *models.RefundRequest) responses.RefundRequestDetail {
	return responses.RefundRequestDetail{
		ID:          request.ID,
		UserID:      request.UserID,
		PaymentID:   request.PaymentID,
		Reason:      request.Reason,
		AdminReason: request.AdminReason,
		Status:      string(request.Status),
		RequestedAt: request.RequestedAt,
		ProcessedAt: request.ProcessedAt,
		ProcessedBy: request.ProcessedBy,
	}
}

func buildDeferralRequestDetail(request *models.DeferralRequest) responses.DeferralRequestDetail {
	return responses.DeferralRequestDetail{
		ID:          request.ID,
		UserID:      request.UserID,
		CourseID:    request.CourseID,
		Batch:       request.Batch,
		Reason:      request.Reason,
		AdminReason: request.AdminReason,
		Status:      string(request.Status),
		RequestedAt: request.RequestedAt,
		ProcessedAt: request.ProcessedAt,
		ProcessedBy: request.ProcessedBy,
	}
}
