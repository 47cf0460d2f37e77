package constvars

const (
	RedisKeySessionFormat = "session:%s"
	RedisKeyOTPFormat     = "otp:%s"
	RedisKeyVerifyLockFmt = "lock:payment-verify:%s"
)
