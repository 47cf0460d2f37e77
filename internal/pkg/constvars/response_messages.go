package constvars

const (
	// Generic messages
	ResponseUnknown = "unknown"
	ResponseSuccess = "success"
	ResponseError   = "error"

	// Auth messages
	RegisterSuccessMessage  = "account created, verification code sent to your email"
	LoginSuccessMessage     = "successfully login"
	LogoutSuccessMessage    = "successfully logout"
	VerifyOTPSuccessMessage = "email verified successfully"
	ResendOTPSuccessMessage = "verification code sent to your email"

	// Course messages
	GetCoursesSuccessMessage   = "get courses successfully"
	GetCourseSuccessMessage    = "get course successfully"
	CreateCourseSuccessMessage = "course created successfully"
	UpdateCourseSuccessMessage = "course updated successfully"
	DeleteCourseSuccessMessage = "course deleted successfully"
	UpdateProgressSuccess      = "course progress updated successfully"
	UploadThumbnailSuccess     = "thumbnail uploaded successfully"

	// User messages
	GetProfileSuccessMessage = "get profile successfully"

	// Coupon messages
	ApplyCouponSuccessMessage  = "coupon applied successfully"
	GetCouponsSuccessMessage   = "get coupons successfully"
	CreateCouponSuccessMessage = "coupon created successfully"
	UpdateCouponSuccessMessage = "coupon updated successfully"
	DeleteCouponSuccessMessage = "coupon deleted successfully"

	// Payment messages
	CreateOrderSuccessMessage      = "order created successfully"
	VerifyPaymentSuccessMessage    = "payment verified and enrollment completed"
	PaymentHistorySuccessMessage   = "get payment history successfully"
	RefundRequestSuccessMessage    = "refund request submitted successfully"
	DeferralRequestSuccessMessage  = "deferral request submitted successfully"
	RefundApprovedSuccessMessage   = "refund request approved"
	RefundRejectedSuccessMessage   = "refund request rejected"
	DeferralApprovedSuccessMessage = "deferral request approved"
	DeferralRejectedSuccessMessage = "deferral request rejected"
	DirectRefundSuccessMessage     = "payment refunded"
	BulkActionSuccessMessage       = "bulk action processed"
	UpdateStatusSuccessMessage     = "payment status updated"
)
