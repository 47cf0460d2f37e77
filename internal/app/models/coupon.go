package models

import "time"

type CouponDiscountType string

const (
	DiscountTypePercentage CouponDiscountType = "percentage"
	DiscountTypeFixed      CouponDiscountType = "fixed"
)

// CouponUsage is one redemption, embedded in the coupon document.
type CouponUsage struct {
	UserID         string    `bson:"userId"`
	CourseID       string    `bson:"courseId"`
	DiscountAmount float64   `bson:"discountAmount"`
	OriginalAmount float64   `bson:"originalAmount"`
	FinalAmount    float64   `bson:"finalAmount"`
	UsedAt         time.Time `bson:"usedAt"`
}

type Coupon struct {
	ID                string             `bson:"_id,omitempty"`
	Code              string             `bson:"code"`
	Description       string             `bson:"description,omitempty"`
	DiscountType      CouponDiscountType `bson:"discountType"`
	DiscountValue     float64            `bson:"discountValue"`
	MaxDiscount       *float64           `bson:"maxDiscount,omitempty"`
	MinPurchaseAmount float64            `bson:"minPurchaseAmount"`
	ApplicableCourses []string           `bson:"applicableCourses"`
	IsActive          bool               `bson:"isActive"`
	UsageLimit        int                `bson:"usageLimit"`
	PerUserLimit      int                `bson:"perUserLimit"`
	UsedCount         int                `bson:"usedCount"`
	ExpiryDate        time.Time          `bson:"expiryDate"`
	UsageHistory      []CouponUsage      `bson:"usageHistory"`
	TimeModel         `bson:",inline"`
}

// AppliesToCourse reports applicability; an empty list means the coupon is universal.
func (c *Coupon) AppliesToCourse(courseID string) bool {
	if len(c.ApplicableCourses) == 0 {
		return true
	}
	for _, id := range c.ApplicableCourses {
		if id == courseID {
			return true
		}
	}
	return false
}

// UsageCountForUser counts this user's entries in the embedded history.
func (c *Coupon) UsageCountForUser(userID string) int {
	count := 0
	for _, usage := range c.UsageHistory {
		if usage.UserID == userID {
			count++
		}
	}
	return count
}
