package contracts

import (
	"context"
	"learnhub-service/internal/pkg/dto/requests"
	"learnhub-service/internal/pkg/dto/responses"
)

type PaymentGatewayService interface {
	CreateOrder(ctx context.Context, request *requests.RazorpayOrderRequest) (*responses.RazorpayOrder, error)
	FetchPayment(ctx context.Context, paymentID string) (*responses.RazorpayPayment, error)

	// VerifySignature checks the gateway's HMAC-SHA256 hex digest over
	// "orderID|paymentID" against the supplied signature.
	VerifySignature(orderID, paymentID, signature string) bool
}
