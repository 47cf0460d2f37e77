package models

import "time"

type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusApproved RequestStatus = "approved"
	RequestStatusRejected RequestStatus = "rejected"
)

type RefundRequest struct {
	ID          string        `bson:"_id,omitempty"`
	UserID      string        `bson:"userId"`
	PaymentID   string        `bson:"paymentId"`
	Reason      string        `bson:"reason"`
	AdminReason string        `bson:"adminReason,omitempty"`
	Status      RequestStatus `bson:"status"`
	RequestedAt time.Time     `bson:"requestedAt"`
	ProcessedAt *time.Time    `bson:"processedAt,omitempty"`
	ProcessedBy string        `bson:"processedBy,omitempty"`
}
