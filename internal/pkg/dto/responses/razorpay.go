package responses

// RazorpayOrder is the gateway's order handle. Amount is in minor units.
type RazorpayOrder struct {
	ID       string            `json:"id"`
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt"`
	Status   string            `json:"status"`
	Notes    map[string]string `json:"notes,omitempty"`
}

// RazorpayPayment is the gateway's payment detail record. Amount is in minor
// units and Status is one of created/authorized/captured/refunded/failed.
type RazorpayPayment struct {
	ID       string `json:"id"`
	OrderID  string `json:"order_id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Status   string `json:"status"`
	Method   string `json:"method,omitempty"`
	Email    string `json:"email,omitempty"`
}
