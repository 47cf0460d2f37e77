package requests

// RazorpayOrderRequest is the payload posted to the gateway's orders endpoint.
// Amount is in minor units (paise).
type RazorpayOrderRequest struct {
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt"`
	Notes    map[string]string `json:"notes,omitempty"`
}
