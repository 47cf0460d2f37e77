package constvars

// RazorpayPaymentStatus is a typed payment status returned by Razorpay.
type RazorpayPaymentStatus string

const (
	RazorpayPaymentStatusCreated    RazorpayPaymentStatus = "created"
	RazorpayPaymentStatusAuthorized RazorpayPaymentStatus = "authorized"
	RazorpayPaymentStatusCaptured   RazorpayPaymentStatus = "captured"
	RazorpayPaymentStatusRefunded   RazorpayPaymentStatus = "refunded"
	RazorpayPaymentStatusFailed     RazorpayPaymentStatus = "failed"
)

const (
	RazorpayCurrencyINR = "INR"

	// Razorpay rejects receipts longer than 40 characters.
	RazorpayReceiptMaxLength = 40
)
