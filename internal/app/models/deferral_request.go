package models

import "time"

type DeferralRequest struct {
	ID          string        `bson:"_id,omitempty"`
	UserID      string        `bson:"userId"`
	CourseID    string        `bson:"courseId"`
	Batch       string        `bson:"batch"`
	Reason      string        `bson:"reason"`
	AdminReason string        `bson:"adminReason,omitempty"`
	Status      RequestStatus `bson:"status"`
	RequestedAt time.Time     `bson:"requestedAt"`
	ProcessedAt *time.Time    `bson:"processedAt,omitempty"`
	ProcessedBy string        `bson:"processedBy,omitempty"`
}
