package models

type PaymentStatus string

const (
	PaymentStatusSuccess  PaymentStatus = "success"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
	PaymentStatusDeferred PaymentStatus = "deferred"
)

type Payment struct {
	ID               string        `bson:"_id,omitempty"`
	UserID           string        `bson:"userId"`
	CourseID         string        `bson:"courseId"`
	Amount           float64       `bson:"amount"`
	Status           PaymentStatus `bson:"status"`
	TransactionID    string        `bson:"transactionId"`
	OrderID          string        `bson:"orderId"`
	CouponCode       string        `bson:"couponCode,omitempty"`
	DiscountAmount   float64       `bson:"discountAmount,omitempty"`
	PercentCompleted float64       `bson:"percentCompleted"`
	AdminNote        string        `bson:"adminNote,omitempty"`
	TimeModel        `bson:",inline"`
}
