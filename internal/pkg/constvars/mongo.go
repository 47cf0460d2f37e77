package constvars

const (
	MongoCollectionUsers            = "users"
	MongoCollectionCourses          = "courses"
	MongoCollectionCoupons          = "coupons"
	MongoCollectionPayments         = "payments"
	MongoCollectionRefundRequests   = "refund_requests"
	MongoCollectionDeferralRequests = "deferral_requests"
)
