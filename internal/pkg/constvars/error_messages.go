package constvars

// Validation messages mapper
var CustomValidationErrorMessages = map[string]string{
	"required": "is required",
	"email":    "must be a valid email",
	"alphanum": "must contain only alphanumeric characters",
	"min":      "must be at least %s characters long",
	"max":      "maximum at %s characters long",
	"eqfield":  "must match %s",
	"numeric":  "must be a number",
	"len":      "must be %s characters long",
	"oneof":    "must be one of [%s]",
	"gt":       "must be greater than %s",
	"gte":      "must be greater than or equal to %s",
	"lt":       "must be less than %s",
	"lte":      "must be less than or equal to %s",
	"url":      "must be a valid URL",
}

// Tags that require parameter substitution
var TagsWithParams = map[string]bool{
	"min":     true,
	"max":     true,
	"len":     true,
	"eqfield": true,
	"gt":      true,
	"gte":     true,
	"lt":      true,
	"lte":     true,
	"oneof":   true,
}

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientNotAuthorized                 = "you can't access this feature"
	ErrClientNotLoggedIn                   = "your session ended, please login again"
	ErrClientInvalidEmailOrPassword        = "invalid email or password"
	ErrClientEmailAlreadyExists            = "email already used"
	ErrClientAccountNotVerified            = "please verify your email before logging in"
	ErrClientOTPInvalid                    = "the code you entered is invalid"
	ErrClientOTPExpired                    = "the code you entered already expired, please request a new one"

	ErrClientCouponNotFound          = "coupon not found, expired, or inactive"
	ErrClientCouponNotApplicable     = "coupon is not applicable to this course"
	ErrClientCouponBelowMinPurchase  = "purchase amount is below the coupon minimum"
	ErrClientCouponUsageLimitReached = "coupon usage limit exceeded"
	ErrClientCouponPerUserLimit      = "you have already used this coupon the maximum number of times"
	ErrClientDiscountMismatch        = "discount calculation mismatch"
	ErrClientCouponCodeTaken         = "a coupon with this code already exists"

	ErrClientFileTooLarge           = "uploaded file exceeds the maximum allowed size"
	ErrClientCourseNotFound         = "course not found"
	ErrClientPaymentNotFound        = "payment not found"
	ErrClientInvalidSignature       = "invalid payment signature"
	ErrClientPaymentNotSuccessful   = "payment not successful"
	ErrClientAlreadyEnrolled        = "you are already enrolled in this course"
	ErrClientRefundWindowClosed     = "refunds are only available within 7 days of purchase"
	ErrClientRefundProgressExceeded = "refunds are only available when course progress is 20% or less"
	ErrClientDeferralProgress       = "deferrals are only available when course progress is 20% or less"
	ErrClientRequestNotFound        = "request not found"
	ErrClientRequestAlreadyDecided  = "this request has already been processed"
	ErrClientVerifyInProgress       = "this payment is already being verified, please wait"
)

// Error messages for developers
const (
	ErrDevInvalidInput         = "invalid input"
	ErrDevValidationFailed     = "input validation failed"
	ErrDevCannotParseJSON      = "cannot parse JSON into struct or other data types"
	ErrDevCannotMarshalJSON    = "cannot convert struct or other data types to JSON"
	ErrDevURLParamIDValidation = "invalid %s url parameter"
	ErrDevFailedToHashPassword = "failed to hash the given password"
	ErrDevInvalidCredentials   = "credentials do not match any user"
	ErrDevEmailAlreadyExists   = "a user document with this email already exists"
	ErrDevUserNotExists        = "user document not found"
	ErrDevAccountNotVerified   = "user account status is not active"
	ErrDevOTPInvalid           = "supplied OTP does not match the stored value"
	ErrDevOTPExpired           = "no OTP stored for this user or TTL elapsed"
	ErrDevAuthTokenMissing     = "authorization header missing or malformed"
	ErrDevAuthTokenInvalid     = "cannot parse or verify the JWT"
	ErrDevAuthGenerateToken    = "failed to sign session JWT"
	ErrDevAuthSigningMethod    = "unexpected JWT signing method"
	ErrDevAuthInvalidSession   = "session id not found in redis"
	ErrDevAuthNotAdmin         = "session user does not have the admin role"
	ErrDevMissingRequestID     = "request id missing from request context"
	ErrDevGoogleTokenInvalid   = "google id token failed verification"

	ErrDevDBFailedToFindDocument    = "mongo db failed to find document"
	ErrDevDBFailedToInsertDocument  = "mongo db failed to insert document"
	ErrDevDBFailedToUpdateDocument  = "mongo db failed to update document"
	ErrDevDBFailedToDeleteDocument  = "mongo db failed to delete document"
	ErrDevDBFailedToIterateDocument = "mongo db failed to iterate documents"
	ErrDevDBStringNotObjectID       = "string cannot be converted to mongo object id"

	ErrDevRedisGetData = "redis failed to get data"
	ErrDevRedisSetData = "redis failed to set data"
	ErrDevRedisDelete  = "redis failed to delete data"
	ErrDevRedisSetNX   = "redis failed to set data with NX"
	ErrDevRedisUnlock  = "redis failed to release lock"

	ErrDevGatewayCreateOrder  = "payment gateway rejected order creation"
	ErrDevGatewayFetchPayment = "payment gateway failed to return payment detail"
	ErrDevGatewayUnreachable  = "cannot reach the payment gateway"

	ErrDevRabbitMQPublish = "rabbitmq failed to publish message to queue %s"
	ErrDevSMTPSendEmail   = "smtp failed to send email through host %s"

	ErrDevMinioCreateObject  = "minio failed to create object in bucket %s"
	ErrDevMinioPresignObject = "minio failed to presign object in bucket %s"
)
