package constvars

const (
	EmailOTPSubjectMessage     = "[LEARNHUB] Email Verification Code"
	EmailWelcomeSubjectMessage = "[LEARNHUB] Welcome Aboard"
	EmailRefundSubjectMessage  = "[LEARNHUB] Refund Processed"
)

const (
	EmailSendBasicEmailSubjectFormat = "To: %s\r\nSubject: %s\r\n\r\n%s\r\n"
	EmailSendHTMLSubjectFormat       = "To: %s\r\nSubject: %s\r\nMIME-version: 1.0;\r\nContent-Type: text/html; charset=\"UTF-8\";\r\n\r\n%s\r\n"
	EmailBodyOTPFormat               = "Your verification code is %s. It is valid for %d minutes and can only be used once."
)
