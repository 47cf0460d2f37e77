package requests

// CreateOrder carries the client-computed amounts; the usecase re-validates
// any coupon snapshot server-side before talking to the gateway.
type CreateOrder struct {
	Amount         float64 `json:"amount" validate:"required,gt=0"`
	CourseID       string  `json:"courseId" validate:"required"`
	CouponCode     string  `json:"couponCode,omitempty"`
	OriginalAmount float64 `json:"originalAmount,omitempty"`
	DiscountAmount float64 `json:"discountAmount,omitempty"`
}

type VerifyPayment struct {
	RazorpayOrderID   string  `json:"razorpay_order_id" validate:"required"`
	RazorpayPaymentID string  `json:"razorpay_payment_id" validate:"required"`
	RazorpaySignature string  `json:"razorpay_signature" validate:"required"`
	CourseID          string  `json:"courseId" validate:"required"`
	CouponCode        string  `json:"couponCode,omitempty"`
	OriginalAmount    float64 `json:"originalAmount,omitempty"`
	DiscountAmount    float64 `json:"discountAmount,omitempty"`
}

type RequestRefund struct {
	PaymentID string `json:"paymentId" validate:"required"`
	Reason    string `json:"reason" validate:"required,min=5"`
}

type RequestDeferral struct {
	CourseID string `json:"courseId" validate:"required"`
	Batch    string `json:"batch" validate:"required"`
	Reason   string `json:"reason" validate:"required,min=5"`
}

type ProcessRequest struct {
	AdminReason string `json:"adminReason,omitempty"`
}

type DirectRefund struct {
	PaymentID   string `json:"paymentId" validate:"required"`
	AdminReason string `json:"adminReason,omitempty"`
}

type BulkPaymentAction struct {
	Action     string   `json:"action" validate:"required,oneof=refund mark_failed mark_success"`
	PaymentIDs []string `json:"paymentIds" validate:"required,min=1"`
	AdminNote  string   `json:"adminNote,omitempty"`
}

type UpdatePaymentStatus struct {
	PaymentID string `json:"paymentId" validate:"required"`
	Status    string `json:"status" validate:"required,oneof=success failed refunded deferred"`
	AdminNote string `json:"adminNote,omitempty"`
}

type UpdateProgress struct {
	PercentCompleted float64 `json:"percentCompleted" validate:"gte=0,lte=100"`
}
