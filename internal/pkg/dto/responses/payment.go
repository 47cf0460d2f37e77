package responses

import "time"

// OrderResponse echoes the gateway order plus the coupon context the client
// needs to render checkout.
type OrderResponse struct {
	ID             string  `json:"id"`
	Amount         int64   `json:"amount"`
	Currency       string  `json:"currency"`
	CourseID       string  `json:"courseId"`
	CourseName     string  `json:"courseName"`
	CouponApplied  bool    `json:"couponApplied,omitempty"`
	CouponCode     string  `json:"couponCode,omitempty"`
	OriginalAmount float64 `json:"originalAmount,omitempty"`
	DiscountAmount float64 `json:"discountAmount,omitempty"`
}

type CreateOrderResponse struct {
	Order OrderResponse `json:"order"`
}

type VerifyPaymentResponse struct {
	Success       bool           `json:"success"`
	Enrolled      bool           `json:"enrolled"`
	Message       string         `json:"message"`
	PaymentID     string         `json:"paymentId"`
	OrderID       string         `json:"orderId"`
	PaymentRecord *PaymentDetail `json:"paymentRecord"`
	CouponApplied bool           `json:"couponApplied,omitempty"`
	Savings       float64        `json:"savings,omitempty"`
}

type PaymentDetail struct {
	ID               string    `json:"id"`
	UserID           string    `json:"userId"`
	CourseID         string    `json:"courseId"`
	CourseName       string    `json:"courseName,omitempty"`
	Amount           float64   `json:"amount"`
	Status           string    `json:"status"`
	TransactionID    string    `json:"transactionId"`
	OrderID          string    `json:"orderId"`
	CouponCode       string    `json:"couponCode,omitempty"`
	DiscountAmount   float64   `json:"discountAmount,omitempty"`
	PercentCompleted float64   `json:"percentCompleted"`
	AdminNote        string    `json:"adminNote,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
}

type RefundRequestDetail struct {
	ID          string     `json:"id"`
	UserID      string     `json:"userId"`
	PaymentID   string     `json:"paymentId"`
	Reason      string     `json:"reason"`
	AdminReason string     `json:"adminReason,omitempty"`
	Status      string     `json:"status"`
	RequestedAt time.Time  `json:"requestedAt"`
	ProcessedAt *time.Time `json:"processedAt,omitempty"`
	ProcessedBy string     `json:"processedBy,omitempty"`
}

type DeferralRequestDetail struct {
	ID          string     `json:"id"`
	UserID      string     `json:"userId"`
	CourseID    string     `json:"courseId"`
	Batch       string     `json:"batch"`
	Reason      string     `json:"reason"`
	AdminReason string     `json:"adminReason,omitempty"`
	Status      string     `json:"status"`
	RequestedAt time.Time  `json:"requestedAt"`
	ProcessedAt *time.Time `json:"processedAt,omitempty"`
	ProcessedBy string     `json:"processedBy,omitempty"`
}

// BulkActionResponse reports partial success for admin bulk updates.
type BulkActionResponse struct {
	Updated int               `json:"updated"`
	Failed  int               `json:"failed"`
	Errors  []BulkActionError `json:"errors"`
}

type BulkActionError struct {
	PaymentID string `json:"paymentId"`
	Error     string `json:"error"`
}
