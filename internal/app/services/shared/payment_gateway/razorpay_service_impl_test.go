package payment_gateway

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"learnhub-service/internal/pkg/dto/requests"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

func newRazorpayServiceForTest(baseURL string) *razorpayService {
	return &razorpayService{
		HTTPClient: &http.Client{Timeout: 5 * time.Second},
		Limiter:    rate.NewLimiter(rate.Limit(100), 100),
		Log:        zap.NewNop(),
		KeyID:      "rzp_test_key",
		KeySecret:  "rzp_test_secret",
		BaseUrl:    baseURL,
	}
}

func signCheckout(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	service := newRazorpayServiceForTest("")

	orderID := "order_ABC123"
	paymentID := "pay_XYZ789"
	signature := signCheckout("rzp_test_secret", orderID, paymentID)

	t.Run("valid signature", func(t *testing.T) {
		assert.True(t, service.VerifySignature(orderID, paymentID, signature))
	})

	t.Run("tampered signature", func(t *testing.T) {
		tampered := "0" + signature[1:]
		if tampered == signature {
			tampered = "1" + signature[1:]
		}
		assert.False(t, service.VerifySignature(orderID, paymentID, tampered))
	})

	t.Run("signature for a different payment", func(t *testing.T) {
		other := signCheckout("rzp_test_secret", orderID, "pay_OTHER")
		assert.False(t, service.VerifySignature(orderID, paymentID, other))
	})

	t.Run("empty signature", func(t *testing.T) {
		assert.False(t, service.VerifySignature(orderID, paymentID, ""))
	})

	t.Run("signature keyed with the wrong secret", func(t *testing.T) {
		wrongKey := signCheckout("another_secret", orderID, paymentID)
		assert.False(t, service.VerifySignature(orderID, paymentID, wrongKey))
	})
}

func TestCreateOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/orders", r.URL.Path)

		username, password, ok := r.BasicAuth()
		assert.True(t, ok, "gateway calls must carry basic auth")
		assert.Equal(t, "rzp_test_key", username)
		assert.Equal(t, "rzp_test_secret", password)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"order_ABC123","amount":49900,"currency":"INR","receipt":"rcpt_1","status":"created"}`))
	}))
	defer server.Close()

	service := newRazorpayServiceForTest(server.URL)

	order, err := service.CreateOrder(context.Background(), &requests.RazorpayOrderRequest{
		Amount:   49900,
		Currency: "INR",
		Receipt:  "rcpt_1",
	})
	require.NoError(t, err)
	assert.Equal(t, "order_ABC123", order.ID)
	assert.Equal(t, int64(49900), order.Amount)
	assert.Equal(t, "created", order.Status)
}

func TestFetchPayment(t *testing.T) {
	t.Run("captured payment", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/v1/payments/pay_XYZ789", r.URL.Path)

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"id":"pay_XYZ789","order_id":"order_ABC123","amount":49900,"currency":"INR","status":"captured","method":"upi"}`))
		}))
		defer server.Close()

		service := newRazorpayServiceForTest(server.URL)

		payment, err := service.FetchPayment(context.Background(), "pay_XYZ789")
		require.NoError(t, err)
		assert.Equal(t, "captured", payment.Status)
		assert.Equal(t, int64(49900), payment.Amount)
	})

	t.Run("gateway error status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		service := newRazorpayServiceForTest(server.URL)

		_, err := service.FetchPayment(context.Background(), "pay_XYZ789")
		assert.Error(t, err)
	})
}
