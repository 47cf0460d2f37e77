package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_SESSION_DATA_KEY         ContextKey = "session_data"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
)

const (
	REQUEST_ID_PREFIX = "LRNHB_SVC_"
)

const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

const (
	UserStatusPendingVerification = "pending_verification"
	UserStatusActive              = "active"
	UserStatusSuspended           = "suspended"
)

const (
	OTP_LENGTH = 6
)

const (
	AppPaginationUrlFormat = "%s?page=%d&page_size=%d"
)
