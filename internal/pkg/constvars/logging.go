package constvars

const (
	LoggingRequestIDKey  = "request_id"
	LoggingRequestKey    = "request"
	LoggingResponseKey   = "response"
	LoggingMethodKey     = "method"
	LoggingEndpointKey   = "endpoint"
	LoggingRemoteAddrKey = "remote_addr"
	LoggingUserAgentKey  = "user_agent"
	LoggingQueryKey      = "query"
	LoggingStatusCodeKey = "status_code"
	LoggingDurationKey   = "duration"
	LoggingSuccessKey    = "success"

	LoggingUserIDKey     = "user_id"
	LoggingCourseIDKey   = "course_id"
	LoggingCouponCodeKey = "coupon_code"
	LoggingPaymentIDKey  = "payment_id"
	LoggingOrderIDKey    = "order_id"
	LoggingRequestRefKey = "request_ref"
	LoggingRedisKey      = "redis_key"
	LoggingLockValueKey  = "lock_value"
	LoggingLockExpiryKey = "lock_expiration"
)
