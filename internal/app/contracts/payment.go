package contracts

import (
	"context"
	"learnhub-service/internal/app/models"
	"learnhub-service/internal/pkg/dto/requests"
	"learnhub-service/internal/pkg/dto/responses"
)

type PaymentRepository interface {
	CreatePayment(ctx context.Context, payment *models.Payment) (paymentID string, err error)
	FindByID(ctx context.Context, paymentID string) (*models.Payment, error)
	FindByTransactionID(ctx context.Context, transactionID string) (*models.Payment, error)
	FindByUserID(ctx context.Context, userID string) ([]models.Payment, error)
	FindSuccessfulByUserAndCourse(ctx context.Context, userID, courseID string) (*models.Payment, error)
	FindAll(ctx context.Context) ([]models.Payment, error)
	UpdateStatus(ctx context.Context, paymentID string, status models.PaymentStatus, adminNote string) error
	UpdateProgress(ctx context.Context, paymentID string, percentCompleted float64) error
}

type RefundRequestRepository interface {
	CreateRefundRequest(ctx context.Context, request *models.RefundRequest) (requestID string, err error)
	FindByID(ctx context.Context, requestID string) (*models.RefundRequest, error)
	FindAll(ctx context.Context, status models.RequestStatus) ([]models.RefundRequest, error)
	UpdateDecision(ctx context.Context, requestID string, decision *models.RefundRequest) error
}

type DeferralRequestRepository interface {
	CreateDeferralRequest(ctx context.Context, request *models.DeferralRequest) (requestID string, err error)
	FindByID(ctx context.Context, requestID string) (*models.DeferralRequest, error)
	FindAll(ctx context.Context, status models.RequestStatus) ([]models.DeferralRequest, error)
	UpdateDecision(ctx context.Context, requestID string, decision *models.DeferralRequest) error
}

type PaymentUsecase interface {
	CreateOrder(ctx context.Context, userID string, request *requests.CreateOrder) (*responses.CreateOrderResponse, error)
	VerifyPayment(ctx context.Context, userID string, request *requests.VerifyPayment) (*responses.VerifyPaymentResponse, error)
	GetPaymentHistory(ctx context.Context, userID string) ([]responses.PaymentDetail, error)
	UpdateProgress(ctx context.Context, userID, courseID string, percentCompleted float64) error

	RequestRefund(ctx context.Context, userID string, request *requests.RequestRefund) (*responses.RefundRequestDetail, error)
	RequestDeferral(ctx context.Context, userID string, request *requests.RequestDeferral) (*responses.DeferralRequestDetail, error)
}

type AdminPaymentUsecase interface {
	ListPayments(ctx context.Context) ([]responses.PaymentDetail, error)
	ListRefundRequests(ctx context.Context, status models.RequestStatus) ([]responses.RefundRequestDetail, error)
	ListDeferralRequests(ctx context.Context, status models.RequestStatus) ([]responses.DeferralRequestDetail, error)

	ApproveRefund(ctx context.Context, adminID, requestID, adminReason string) error
	RejectRefund(ctx context.Context, adminID, requestID, adminReason string) error
	ApproveDeferral(ctx context.Context, adminID, requestID, adminReason string) error
	RejectDeferral(ctx context.Context, adminID, requestID, adminReason string) error

	DirectRefund(ctx context.Context, adminID string, request *requests.DirectRefund) error
	BulkAction(ctx context.Context, adminID string, request *requests.BulkPaymentAction) (*responses.BulkActionResponse, error)
	UpdatePaymentStatus(ctx context.Context, adminID string, request *requests.UpdatePaymentStatus) error
}
