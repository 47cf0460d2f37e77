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
	"sync"
	"time"

	"go.uber.org/zap"
)

var (
	adminPaymentUsecaseInstance contracts.AdminPaymentUsecase
	onceAdminPaymentUsecase     sync.Once
)

type adminPaymentUsecase struct {
	PaymentRepository         contracts.PaymentRepository
	RefundRequestRepository   contracts.RefundRequestRepository
	DeferralRequestRepository contracts.DeferralRequestRepository
	UserRepository            contracts.UserRepository
	CourseRepository          contracts.CourseRepository
	Mailer                    contracts.MailerService
	InternalConfig            *config.InternalConfig
	Log                       *zap.Logger
}

func NewAdminPaymentUsecase(
	paymentRepository contracts.PaymentRepository,
	refundRequestRepository contracts.RefundRequestRepository,
	deferralRequestRepository contracts.DeferralRequestRepository,
	userRepository contracts.UserRepository,
	courseRepository contracts.CourseRepository,
	mailerService contracts.MailerService,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.AdminPaymentUsecase {
	onceAdminPaymentUsecase.Do(func() {
		adminPaymentUsecaseInstance = &adminPaymentUsecase{
			PaymentRepository:         paymentRepository,
			RefundRequestRepository:   refundRequestRepository,
			DeferralRequestRepository: deferralRequestRepository,
			UserRepository:            userRepository,
			CourseRepository:          courseRepository,
			Mailer:                    mailerService,
			InternalConfig:            internalConfig,
			Log:                       logger,
		}
	})
	return adminPaymentUsecaseInstance
}

func (uc *adminPaymentUsecase) ListPayments(ctx context.Context) ([]responses.PaymentDetail, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("adminPaymentUsecase.ListPayments called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	paymentList, err := uc.PaymentRepository.FindAll(ctx)
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

func (uc *adminPaymentUsecase) ListRefundRequests(ctx context.Context, status models.RequestStatus) ([]responses.RefundRequestDetail, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("adminPaymentUsecase.ListRefundRequests called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String("status_filter", string(status)),
	)

	requestList, err := uc.RefundRequestRepository.FindAll(ctx, status)
	if err != nil {
		return nil, err
	}

	details := make([]responses.RefundRequestDetail, 0, len(requestList))
	for i := range requestList {
		details = append(details, buildRefundRequestDetail(&requestList[i]))
	}
	return details, nil
}

func (uc *adminPaymentUsecase) ListDeferralRequests(ctx context.Context, status models.RequestStatus) ([]responses.DeferralRequestDetail, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("adminPaymentUsecase.ListDeferralRequests called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String("status_filter", string(status)),
	)

	requestList, err := uc.DeferralRequestRepository.FindAll(ctx, status)
	if err != nil {
		return nil, err
	}

	details := make([]responses.DeferralRequestDetail, 0, len(requestList))
	for i := range requestList {
		details = append(details, buildDeferralRequestDetail(&requestList[i]))
	}
	return details, nil
}

func (uc *adminPaymentUsecase) ApproveRefund(ctx context.Context, adminID, requestID, adminReason string) error {
	refundRequest, err := uc.pendingRefundRequest(ctx, requestID)
	if err != nil {
		return err
	}

	paymentEntity, err := uc.PaymentRepository.FindByID(ctx, refundRequest.PaymentID)
	if err != nil {
		return err
	}
	if paymentEntity == nil {
		return exceptions.ErrPaymentNotFound(fmt.Errorf("payment %s not found", refundRequest.PaymentID))
	}

	err = uc.PaymentRepository.UpdateStatus(ctx, paymentEntity.ID, models.PaymentStatusRefunded, adminReason)
	if err != nil {
		return err
	}

	err = uc.decideRequest(ctx, refundRequest, models.RequestStatusApproved, adminID, adminReason)
	if err != nil {
		return err
	}

	uc.deEnroll(ctx, paymentEntity.UserID, paymentEntity.CourseID)
	uc.notifyRefund(ctx, paymentEntity)
	return nil
}

func (uc *adminPaymentUsecase) RejectRefund(ctx context.Context, adminID, requestID, adminReason string) error {
	refundRequest, err := uc.pendingRefundRequest(ctx, requestID)
	if err != nil {
		return err
	}
	return uc.decideRequest(ctx, refundRequest, models.RequestStatusRejected, adminID, adminReason)
}

func (uc *adminPaymentUsecase) ApproveDeferral(ctx context.Context, adminID, requestID, adminReason string) error {
	deferralRequest, err := uc.pendingDeferralRequest(ctx, requestID)
	if err != nil {
		return err
	}

	paymentEntity, err := uc.PaymentRepository.FindSuccessfulByUserAndCourse(ctx, deferralRequest.UserID, deferralRequest.CourseID)
	if err != nil {
		return err
	}
	if paymentEntity == nil {
		return exceptions.ErrPaymentNotFound(fmt.Errorf(
			"no successful payment for user %s on course %s", deferralRequest.UserID, deferralRequest.CourseID))
	}

	err = uc.PaymentRepository.UpdateStatus(ctx, paymentEntity.ID, models.PaymentStatusDeferred, adminReason)
	if err != nil {
		return err
	}

	return uc.decideDeferralRequest(ctx, deferralRequest, models.RequestStatusApproved, adminID, adminReason)
}

func (uc *adminPaymentUsecase) RejectDeferral(ctx context.Context, adminID, requestID, adminReason string) error {
	deferralRequest, err := uc.pendingDeferralRequest(ctx, requestID)
	if err != nil {
		return err
	}
	return uc.decideDeferralRequest(ctx, deferralRequest, models.RequestStatusRejected, adminID, adminReason)
}

// DirectRefund refunds without a pre-existing user request; an approved
// request document is written so the audit trail stays uniform.
func (uc *adminPaymentUsecase) DirectRefund(ctx context.Context, adminID string, request *requests.DirectRefund) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("adminPaymentUsecase.DirectRefund called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPaymentIDKey, request.PaymentID),
	)

	paymentEntity, err := uc.PaymentRepository.FindByID(ctx, request.PaymentID)
	if err != nil {
		return err
	}
	if paymentEntity == nil {
		return exceptions.ErrPaymentNotFound(fmt.Errorf("payment %s not found", request.PaymentID))
	}

	err = uc.PaymentRepository.UpdateStatus(ctx, paymentEntity.ID, models.PaymentStatusRefunded, request.AdminReason)
	if err != nil {
		return err
	}

	now := time.Now()
	refundRequest := &models.RefundRequest{
		UserID:      paymentEntity.UserID,
		PaymentID:   paymentEntity.ID,
		Reason:      "refund issued directly by admin",
		AdminReason: request.AdminReason,
		Status:      models.RequestStatusApproved,
		RequestedAt: now,
		ProcessedAt: &now,
		ProcessedBy: adminID,
	}
	_, err = uc.RefundRequestRepository.CreateRefundRequest(ctx, refundRequest)
	if err != nil {
		return err
	}

	uc.deEnroll(ctx, paymentEntity.UserID, paymentEntity.CourseID)
	uc.notifyRefund(ctx, paymentEntity)
	return nil
}

// BulkAction applies one action over an explicit id list and reports partial
// success; one bad id never aborts the batch.
func (uc *adminPaymentUsecase) BulkAction(ctx context.Context, adminID string, request *requests.BulkPaymentAction) (*responses.BulkActionResponse, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("adminPaymentUsecase.BulkAction called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String("action", request.Action),
		zap.Int("payment_count", len(request.PaymentIDs)),
	)

	var targetStatus models.PaymentStatus
	switch request.Action {
	case "refund":
		targetStatus = models.PaymentStatusRefunded
	case "mark_failed":
		targetStatus = models.PaymentStatusFailed
	case "mark_success":
		targetStatus = models.PaymentStatusSuccess
	}

	report := &responses.BulkActionResponse{Errors: []responses.BulkActionError{}}
	for _, paymentID := range request.PaymentIDs {
		err := uc.applyBulkStatus(ctx, paymentID, targetStatus, request.AdminNote)
		if err != nil {
			report.Failed++
			report.Errors = append(report.Errors, responses.BulkActionError{
				PaymentID: paymentID,
				Error:     err.Error(),
			})
			continue
		}
		report.Updated++
	}
	return report, nil
}

func (uc *adminPaymentUsecase) UpdatePaymentStatus(ctx context.Context, adminID string, request *requests.UpdatePaymentStatus) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("adminPaymentUsecase.UpdatePaymentStatus called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPaymentIDKey, request.PaymentID),
		zap.String("status", request.Status),
	)

	paymentEntity, err := uc.PaymentRepository.FindByID(ctx, request.PaymentID)
	if err != nil {
		return err
	}
	if paymentEntity == nil {
		return exceptions.ErrPaymentNotFound(fmt.Errorf("payment %s not found", request.PaymentID))
	}

	return uc.PaymentRepository.UpdateStatus(ctx, request.PaymentID, models.PaymentStatus(request.Status), request.AdminNote)
}

func (uc *adminPaymentUsecase) applyBulkStatus(ctx context.Context, paymentID string, status models.PaymentStatus, adminNote string) error {
	paymentEntity, err := uc.PaymentRepository.FindByID(ctx, paymentID)
	if err != nil {
		return err
	}
	if paymentEntity == nil {
		return exceptions.ErrPaymentNotFound(fmt.Errorf("payment %s not found", paymentID))
	}

	err = uc.PaymentRepository.UpdateStatus(ctx, paymentID, status, adminNote)
	if err != nil {
		return err
	}

	if status == models.PaymentStatusRefunded {
		uc.deEnroll(ctx, paymentEntity.UserID, paymentEntity.CourseID)
	}
	return nil
}

func (uc *adminPaymentUsecase) pendingRefundRequest(ctx context.Context, requestID string) (*models.RefundRequest, error) {
	refundRequest, err := uc.RefundRequestRepository.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if refundRequest == nil {
		return nil, exceptions.ErrRequestNotFound(fmt.Errorf("refund request %s not found", requestID))
	}
	if refundRequest.Status != models.RequestStatusPending {
		return nil, exceptions.ErrRequestAlreadyDecided(fmt.Errorf("refund request %s is %s", requestID, refundRequest.Status))
	}
	return refundRequest, nil
}

func (uc *adminPaymentUsecase) pendingDeferralRequest(ctx context.Context, requestID string) (*models.DeferralRequest, error) {
	deferralRequest, err := uc.DeferralRequestRepository.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if deferralRequest == nil {
		return nil, exceptions.ErrRequestNotFound(fmt.Errorf("deferral request %s not found", requestID))
	}
	if deferralRequest.Status != models.RequestStatusPending {
		return nil, exceptions.ErrRequestAlreadyDecided(fmt.Errorf("deferral request %s is %s", requestID, deferralRequest.Status))
	}
	return deferralRequest, nil
}

func (uc *adminPaymentUsecase) decideRequest(ctx context.Context, refundRequest *models.RefundRequest, status models.RequestStatus, adminID, adminReason string) error {
	now := time.Now()
	refundRequest.Status = status
	refundRequest.AdminReason = adminReason
	refundRequest.ProcessedAt = &now
	refundRequest.ProcessedBy = adminID
	return uc.RefundRequestRepository.UpdateDecision(ctx, refundRequest.ID, refundRequest)
}

func (uc *adminPaymentUsecase) decideDeferralRequest(ctx context.Context, deferralRequest *models.DeferralRequest, status models.RequestStatus, adminID, adminReason string) error {
	now := time.Now()
	deferralRequest.Status = status
	deferralRequest.AdminReason = adminReason
	deferralRequest.ProcessedAt = &now
	deferralRequest.ProcessedBy = adminID
	return uc.DeferralRequestRepository.UpdateDecision(ctx, deferralRequest.ID, deferralRequest)
}

// deEnroll is best-effort: the refund stands even if the enrollment pull fails.
func (uc *adminPaymentUsecase) deEnroll(ctx context.Context, userID, courseID string) {
	err := uc.UserRepository.RemoveEnrolledCourse(ctx, userID, courseID)
	if err != nil {
		uc.Log.Warn("adminPaymentUsecase.deEnroll failed",
			zap.String(constvars.LoggingUserIDKey, userID),
			zap.String(constvars.LoggingCourseIDKey, courseID),
			zap.Error(err),
		)
	}
}

// notifyRefund queues the refund email; delivery failures are logged only.
func (uc *adminPaymentUsecase) notifyRefund(ctx context.Context, paymentEntity *models.Payment) {
	userEntity, err := uc.UserRepository.FindByID(ctx, paymentEntity.UserID)
	if err != nil || userEntity == nil {
		uc.Log.Warn("adminPaymentUsecase.notifyRefund cannot load user",
			zap.String(constvars.LoggingUserIDKey, paymentEntity.UserID),
			zap.Error(err),
		)
		return
	}

	payload := &requests.EmailPayload{
		Subject:  constvars.EmailRefundSubjectMessage,
		From:     uc.InternalConfig.Mailer.EmailSender,
		To:       []string{userEntity.Email},
		HTMLCode: fmt.Sprintf("<p>Your payment of %.2f INR has been refunded.</p>", paymentEntity.Amount),
	}
	err = uc.Mailer.SendEmail(ctx, payload)
	if err != nil {
		uc.Log.Warn("adminPaymentUsecase.notifyRefund failed to queue email", zap.Error(err))
	}
}
