package payment_gateway

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"learnhub-service/internal/app/config"
	"learnhub-service/internal/app/contracts"
	"learnhub-service/internal/pkg/constvars"
	"learnhub-service/internal/pkg/dto/requests"
	"learnhub-service/internal/pkg/dto/responses"
	"learnhub-service/internal/pkg/exceptions"
	"net/http"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

var (
	razorpayServiceInstance contracts.PaymentGatewayService
	onceRazorpayService     sync.Once
)

type razorpayService struct {
	HTTPClient *http.Client
	Limiter    *rate.Limiter
	Log        *zap.Logger
	KeyID      string
	KeySecret  string
	BaseUrl    string
}

func NewRazorpayService(internalConfig *config.InternalConfig, logger *zap.Logger) contracts.PaymentGatewayService {
	onceRazorpayService.Do(func() {
		razorpayConfig := internalConfig.Razorpay
		instance := &razorpayService{
			HTTPClient: &http.Client{
				Timeout: time.Duration(razorpayConfig.RequestTimeoutInSeconds) * time.Second,
			},
			Limiter:   rate.NewLimiter(rate.Limit(razorpayConfig.MaxRequestsPerSecond), razorpayConfig.MaxRequestsPerSecond),
			Log:       logger,
			KeyID:     razorpayConfig.KeyID,
			KeySecret: razorpayConfig.KeySecret,
			BaseUrl:   razorpayConfig.BaseUrl,
		}
		razorpayServiceInstance = instance
	})
	return razorpayServiceInstance
}

func (s *razorpayService) CreateOrder(ctx context.Context, request *requests.RazorpayOrderRequest) (*responses.RazorpayOrder, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.Log.Info("razorpayService.CreateOrder called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int64("amount", request.Amount),
	)

	body, err := json.Marshal(request)
	if err != nil {
		return nil, exceptions.ErrCannotMarshalJSON(err)
	}

	order := new(responses.RazorpayOrder)
	err = s.do(ctx, http.MethodPost, "/v1/orders", body, order)
	if err != nil {
		s.Log.Error("razorpayService.CreateOrder gateway call failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrGatewayCreateOrder(err)
	}

	s.Log.Info("razorpayService.CreateOrder succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOrderIDKey, order.ID),
	)
	return order, nil
}

func (s *razorpayService) FetchPayment(ctx context.Context, paymentID string) (*responses.RazorpayPayment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.Log.Info("razorpayService.FetchPayment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPaymentIDKey, paymentID),
	)

	payment := new(responses.RazorpayPayment)
	err := s.do(ctx, http.MethodGet, "/v1/payments/"+paymentID, nil, payment)
	if err != nil {
		s.Log.Error("razorpayService.FetchPayment gateway call failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrGatewayFetchPayment(err)
	}
	return payment, nil
}

// VerifySignature recomputes the checkout signature, an HMAC-SHA256 hex
// digest of "orderID|paymentID" keyed with the API secret, and compares it in
// constant time.
func (s *razorpayService) VerifySignature(orderID, paymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(s.KeySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

func (s *razorpayService) do(ctx context.Context, method, path string, body []byte, out interface{}) error {
	err := s.Limiter.Wait(ctx)
	if err != nil {
		return err
	}

	var reader *bytes.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	} else {
		reader = bytes.NewReader(nil)
	}

	httpRequest, err := http.NewRequestWithContext(ctx, method, s.BaseUrl+path, reader)
	if err != nil {
		return err
	}
	httpRequest.SetBasicAuth(s.KeyID, s.KeySecret)
	httpRequest.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)

	httpResponse, err := s.HTTPClient.Do(httpRequest)
	if err != nil {
		return exceptions.ErrGatewayUnreachable(err)
	}
	defer httpResponse.Body.Close()

	if httpResponse.StatusCode < 200 || httpResponse.StatusCode > 299 {
		return fmt.Errorf("gateway responded with status %d", httpResponse.StatusCode)
	}

	return json.NewDecoder(httpResponse.Body).Decode(out)
}
