package payments

import (
	"context"
	"errors"
	"learnhub-service/internal/app/config"
	"learnhub-service/internal/app/contracts"
	"learnhub-service/internal/app/models"
	"learnhub-service/internal/pkg/dto/requests"
	"learnhub-service/internal/pkg/dto/responses"
	"learnhub-service/internal/pkg/exceptions"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordedStatusUpdate struct {
	status    models.PaymentStatus
	adminNote string
}

type fakePaymentRepository struct {
	paymentsByID            map[string]*models.Payment
	paymentsByTransactionID map[string]*models.Payment
	successfulByUserCourse  map[string]*models.Payment
	created                 []*models.Payment
	progressUpdates         map[string]float64
	statusUpdates           map[string]recordedStatusUpdate
}

func newFakePaymentRepository() *fakePaymentRepository {
	return &fakePaymentRepository{
		paymentsByID:            map[string]*models.Payment{},
		paymentsByTransactionID: map[string]*models.Payment{},
		successfulByUserCourse:  map[string]*models.Payment{},
		progressUpdates:         map[string]float64{},
		statusUpdates:           map[string]recordedStatusUpdate{},
	}
}

func (r *fakePaymentRepository) CreatePayment(ctx context.Context, payment *models.Payment) (string, error) {
	r.created = append(r.created, payment)
	return "payment-new", nil
}

func (r *fakePaymentRepository) FindByID(ctx context.Context, paymentID string) (*models.Payment, error) {
	return r.paymentsByID[paymentID], nil
}

func (r *fakePaymentRepository) FindByTransactionID(ctx context.Context, transactionID string) (*models.Payment, error) {
	return r.paymentsByTransactionID[transactionID], nil
}

func (r *fakePaymentRepository) FindByUserID(ctx context.Context, userID string) ([]models.Payment, error) {
	return nil, nil
}

func (r *fakePaymentRepository) FindSuccessfulByUserAndCourse(ctx context.Context, userID, courseID string) (*models.Payment, error) {
	return r.successfulByUserCourse[userID+"/"+courseID], nil
}

func (r *fakePaymentRepository) FindAll(ctx context.Context) ([]models.Payment, error) {
	return nil, nil
}

func (r *fakePaymentRepository) UpdateStatus(ctx context.Context, paymentID string, status models.PaymentStatus, adminNote string) error {
	r.statusUpdates[paymentID] = recordedStatusUpdate{status: status, adminNote: adminNote}
	return nil
}

func (r *fakePaymentRepository) UpdateProgress(ctx context.Context, paymentID string, percentCompleted float64) error {
	r.progressUpdates[paymentID] = percentCompleted
	return nil
}

type fakeRefundRequestRepository struct {
	byID      map[string]*models.RefundRequest
	created   []*models.RefundRequest
	decisions []*models.RefundRequest
}

func (r *fakeRefundRequestRepository) CreateRefundRequest(ctx context.Context, request *models.RefundRequest) (string, error) {
	r.created = append(r.created, request)
	return "refund-req-1", nil
}

func (r *fakeRefundRequestRepository) FindByID(ctx context.Context, requestID string) (*models.RefundRequest, error) {
	return r.byID[requestID], nil
}

func (r *fakeRefundRequestRepository) FindAll(ctx context.Context, status models.RequestStatus) ([]models.RefundRequest, error) {
	return nil, nil
}

func (r *fakeRefundRequestRepository) UpdateDecision(ctx context.Context, requestID string, decision *models.RefundRequest) error {
	r.decisions = append(r.decisions, decision)
	return nil
}

type fakeDeferralRequestRepository struct {
	byID      map[string]*models.DeferralRequest
	created   []*models.DeferralRequest
	decisions []*models.DeferralRequest
}

func (r *fakeDeferralRequestRepository) CreateDeferralRequest(ctx context.Context, request *models.DeferralRequest) (string, error) {
	r.created = append(r.created, request)
	return "deferral-req-1", nil
}

func (r *fakeDeferralRequestRepository) FindByID(ctx context.Context, requestID string) (*models.DeferralRequest, error) {
	return r.byID[requestID], nil
}

func (r *fakeDeferralRequestRepository) FindAll(ctx context.Context, status models.RequestStatus) ([]models.DeferralRequest, error) {
	return nil, nil
}

func (r *fakeDeferralRequestRepository) UpdateDecision(ctx context.Context, requestID string, decision *models.DeferralRequest) error {
	r.decisions = append(r.decisions, decision)
	return nil
}

type fakeCourseRepository struct {
	courses map[string]*models.Course
}

func (r *fakeCourseRepository) CreateCourse(ctx context.Context, course *models.Course) (string, error) {
	return "", nil
}

func (r *fakeCourseRepository) FindByID(ctx context.Context, courseID string) (*models.Course, error) {
	return r.courses[courseID], nil
}

func (r *fakeCourseRepository) FindAll(ctx context.Context, publishedOnly bool) ([]models.Course, error) {
	return nil, nil
}

func (r *fakeCourseRepository) UpdateCourse(ctx context.Context, courseID string, updateData map[string]interface{}) error {
	return nil
}

func (r *fakeCourseRepository) DeleteCourse(ctx context.Context, courseID string) error {
	return nil
}

type fakeUserRepository struct {
	usersByID map[string]*models.User
	enrolled  []string
	removed   []string
}

func (r *fakeUserRepository) CreateUser(ctx context.Context, userEntity *models.User) (string, error) {
	return "", nil
}

func (r *fakeUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return nil, nil
}

func (r *fakeUserRepository) FindByGoogleID(ctx context.Context, googleID string) (*models.User, error) {
	return nil, nil
}

func (r *fakeUserRepository) FindByID(ctx context.Context, userID string) (*models.User, error) {
	return r.usersByID[userID], nil
}

func (r *fakeUserRepository) UpdateUser(ctx context.Context, userID string, updateData map[string]interface{}) error {
	return nil
}

func (r *fakeUserRepository) AddEnrolledCourse(ctx context.Context, userID, courseID string) error {
	r.enrolled = append(r.enrolled, userID+"/"+courseID)
	return nil
}

func (r *fakeUserRepository) RemoveEnrolledCourse(ctx context.Context, userID, courseID string) error {
	r.removed = append(r.removed, userID+"/"+courseID)
	return nil
}

type fakeUsageRecordingRepository struct {
	couponsByCode map[string]*models.Coupon
	result        bool
	recorded      []models.CouponUsage
}

func (r *fakeUsageRecordingRepository) CreateCoupon(ctx context.Context, coupon *models.Coupon) (string, error) {
	return "", nil
}

func (r *fakeUsageRecordingRepository) FindByCode(ctx context.Context, code string) (*models.Coupon, error) {
	return r.couponsByCode[code], nil
}

func (r *fakeUsageRecordingRepository) FindByID(ctx context.Context, couponID string) (*models.Coupon, error) {
	return nil, nil
}

func (r *fakeUsageRecordingRepository) FindAll(ctx context.Context) ([]models.Coupon, error) {
	return nil, nil
}

func (r *fakeUsageRecordingRepository) UpdateCoupon(ctx context.Context, couponID string, updateData map[string]interface{}) error {
	return nil
}

func (r *fakeUsageRecordingRepository) DeleteCoupon(ctx context.Context, couponID string) error {
	return nil
}

func (r *fakeUsageRecordingRepository) RecordUsage(ctx context.Context, couponID string, usage *models.CouponUsage) (bool, error) {
	if !r.result {
		return false, nil
	}
	r.recorded = append(r.recorded, *usage)
	return true, nil
}

type fakeCouponUsecase struct {
	result *contracts.DiscountResult
	err    error
}

func (u *fakeCouponUsecase) ValidateCoupon(ctx context.Context, code, courseID, userID string, amount float64) (*contracts.DiscountResult, error) {
	return u.result, u.err
}

func (u *fakeCouponUsecase) ApplyCoupon(ctx context.Context, userID string, request *requests.ApplyCoupon) (*responses.ApplyCouponResponse, error) {
	return nil, nil
}

func (u *fakeCouponUsecase) CreateCoupon(ctx context.Context, request *requests.CreateCoupon) (*responses.CouponDetail, error) {
	return nil, nil
}

func (u *fakeCouponUsecase) ListCoupons(ctx context.Context) ([]responses.CouponDetail, error) {
	return nil, nil
}

func (u *fakeCouponUsecase) GetCouponUsage(ctx context.Context, couponID string) ([]responses.CouponUsageEntry, error) {
	return nil, nil
}

func (u *fakeCouponUsecase) UpdateCoupon(ctx context.Context, couponID string, request *requests.UpdateCoupon) error {
	return nil
}

func (u *fakeCouponUsecase) DeleteCoupon(ctx context.Context, couponID string) error {
	return nil
}

type fakePaymentGateway struct {
	orders           []*requests.RazorpayOrderRequest
	order            *responses.RazorpayOrder
	payment          *responses.RazorpayPayment
	signatureIsValid bool
	fetchCalls       int
}

func (g *fakePaymentGateway) CreateOrder(ctx context.Context, request *requests.RazorpayOrderRequest) (*responses.RazorpayOrder, error) {
	g.orders = append(g.orders, request)
	return g.order, nil
}

func (g *fakePaymentGateway) FetchPayment(ctx context.Context, paymentID string) (*responses.RazorpayPayment, error) {
	g.fetchCalls++
	return g.payment, nil
}

func (g *fakePaymentGateway) VerifySignature(orderID, paymentID, signature string) bool {
	return g.signatureIsValid
}

type fakeLocker struct {
	acquired bool
	unlocked []string
}

func (l *fakeLocker) TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error) {
	return l.acquired, "lock-value", nil
}

func (l *fakeLocker) Unlock(ctx context.Context, key, lockValue string) error {
	l.unlocked = append(l.unlocked, key)
	return nil
}

type paymentUsecaseFixture struct {
	usecase         *paymentUsecase
	payments        *fakePaymentRepository
	refundRequests  *fakeRefundRequestRepository
	deferrals       *fakeDeferralRequestRepository
	coupons         *fakeUsageRecordingRepository
	couponValidator *fakeCouponUsecase
	courses         *fakeCourseRepository
	users           *fakeUserRepository
	gateway         *fakePaymentGateway
	locker          *fakeLocker
}

func newPaymentUsecaseFixture() *paymentUsecaseFixture {
	fixture := &paymentUsecaseFixture{
		payments:        newFakePaymentRepository(),
		refundRequests:  &fakeRefundRequestRepository{},
		deferrals:       &fakeDeferralRequestRepository{},
		coupons:         &fakeUsageRecordingRepository{couponsByCode: map[string]*models.Coupon{}, result: true},
		couponValidator: &fakeCouponUsecase{},
		courses:         &fakeCourseRepository{courses: map[string]*models.Course{}},
		users:           &fakeUserRepository{},
		gateway:         &fakePaymentGateway{signatureIsValid: true},
		locker:          &fakeLocker{acquired: true},
	}
	fixture.usecase = &paymentUsecase{
		PaymentRepository:         fixture.payments,
		RefundRequestRepository:   fixture.refundRequests,
		DeferralRequestRepository: fixture.deferrals,
		CouponRepository:          fixture.coupons,
		CouponUsecase:             fixture.couponValidator,
		CourseRepository:          fixture.courses,
		UserRepository:            fixture.users,
		PaymentGateway:            fixture.gateway,
		Locker:                    fixture.locker,
		InternalConfig: &config.InternalConfig{
			App: config.App{
				PaymentVerifyLockTimeInSeconds: 30,
				RefundWindowInDays:             7,
				RefundMaxProgressPercent:       20.0,
				DeferralMaxProgressPercent:     20.0,
			},
		},
		Log: zap.NewNop(),
	}
	return fixture
}

func paymentClientMessage(t *testing.T, err error) string {
	t.Helper()
	var customErr *exceptions.CustomError
	require.True(t, errors.As(err, &customErr), "expected a CustomError, got %v", err)
	return customErr.ClientMessage
}

func TestCreateOrder_DiscountReconciliation(t *testing.T) {
	ctx := context.Background()

	t.Run("client discount drift beyond tolerance is rejected", func(t *testing.T) {
		fixture := newPaymentUsecaseFixture()
		fixture.courses.courses["course-1"] = &models.Course{ID: "course-1", Title: "Go Deep Dive", Price: 500}
		fixture.couponValidator.result = &contracts.DiscountResult{
			Coupon:         &models.Coupon{ID: "coupon-1", Code: "SAVE20"},
			OriginalAmount: 500,
			DiscountAmount: 100,
			FinalAmount:    400,
		}

		_, err := fixture.usecase.CreateOrder(ctx, "user-1", &requests.CreateOrder{
			Amount:         400,
			CourseID:       "course-1",
			CouponCode:     "SAVE20",
			DiscountAmount: 95,
		})
		assert.Error(t, err)
		assert.Equal(t, exceptions.ErrDiscountMismatch(nil).ClientMessage, paymentClientMessage(t, err))
	})

	t.Run("drift within a paisa is tolerated", func(t *testing.T) {
		fixture := newPaymentUsecaseFixture()
		fixture.courses.courses["course-1"] = &models.Course{ID: "course-1", Title: "Go Deep Dive", Price: 500}
		fixture.couponValidator.result = &contracts.DiscountResult{
			Coupon:         &models.Coupon{ID: "coupon-1", Code: "SAVE20"},
			OriginalAmount: 500,
			DiscountAmount: 100,
			FinalAmount:    400,
		}
		fixture.gateway.order = &responses.RazorpayOrder{ID: "order_1", Amount: 40000, Currency: "INR"}

		response, err := fixture.usecase.CreateOrder(ctx, "user-1", &requests.CreateOrder{
			Amount:         400.004,
			CourseID:       "course-1",
			CouponCode:     "SAVE20",
			DiscountAmount: 99.996,
		})
		require.NoError(t, err)
		assert.Equal(t, "order_1", response.Order.ID)
		assert.True(t, response.Order.CouponApplied)
	})

	t.Run("amount mismatch without coupon is rejected", func(t *testing.T) {
		fixture := newPaymentUsecaseFixture()
		fixture.courses.courses["course-1"] = &models.Course{ID: "course-1", Title: "Go Deep Dive", Price: 500}

		_, err := fixture.usecase.CreateOrder(ctx, "user-1", &requests.CreateOrder{
			Amount:   450,
			CourseID: "course-1",
		})
		assert.Error(t, err)
		assert.Equal(t, exceptions.ErrDiscountMismatch(nil).ClientMessage, paymentClientMessage(t, err))
	})

	t.Run("gateway order carries paise and the coupon notes", func(t *testing.T) {
		fixture := newPaymentUsecaseFixture()
		fixture.courses.courses["course-1"] = &models.Course{ID: "course-1", Title: "Go Deep Dive", Price: 500}
		fixture.couponValidator.result = &contracts.DiscountResult{
			Coupon:         &models.Coupon{ID: "coupon-1", Code: "SAVE20"},
			OriginalAmount: 500,
			DiscountAmount: 100,
			FinalAmount:    400,
		}
		fixture.gateway.order = &responses.RazorpayOrder{ID: "order_1", Amount: 40000, Currency: "INR"}

		_, err := fixture.usecase.CreateOrder(ctx, "user-1", &requests.CreateOrder{
			Amount:         400,
			CourseID:       "course-1",
			CouponCode:     "save20",
			DiscountAmount: 100,
		})
		require.NoError(t, err)
		require.Len(t, fixture.gateway.orders, 1)

		orderRequest := fixture.gateway.orders[0]
		assert.Equal(t, int64(40000), orderRequest.Amount)
		assert.Equal(t, "SAVE20", orderRequest.Notes["couponCode"])
		assert.Equal(t, "course-1", orderRequest.Notes["courseId"])
		assert.LessOrEqual(t, len(orderRequest.Receipt), 40, "gateway caps receipts at 40 characters")
	})
}

func TestVerifyPayment(t *testing.T) {
	ctx := context.Background()

	verifyRequest := &requests.VerifyPayment{
		RazorpayOrderID:   "order_1",
		RazorpayPaymentID: "pay_1",
		RazorpaySignature: "sig",
		CourseID:          "course-1",
	}

	t.Run("concurrent callback for the same order is rejected", func(t *testing.T) {
		fixture := newPaymentUsecaseFixture()
		fixture.locker.acquired = false

		_, err := fixture.usecase.VerifyPayment(ctx, "user-1", verifyRequest)
		assert.Error(t, err)
		assert.Equal(t, exceptions.ErrVerificationInProgress(nil).ClientMessage, paymentClientMessage(t, err))
	})

	t.Run("repeated callback returns the recorded outcome", func(t *testing.T) {
		fixture := newPaymentUsecaseFixture()
		fixture.courses.courses["course-1"] = &models.Course{ID: "course-1", Title: "Go Deep Dive", Price: 400}
		fixture.payments.paymentsByTransactionID["pay_1"] = &models.Payment{
			ID:             "payment-1",
			UserID:         "user-1",
			CourseID:       "course-1",
			Amount:         400,
			Status:         models.PaymentStatusSuccess,
			TransactionID:  "pay_1",
			OrderID:        "order_1",
			CouponCode:     "SAVE20",
			DiscountAmount: 100,
		}

		response, err := fixture.usecase.VerifyPayment(ctx, "user-1", verifyRequest)
		require.NoError(t, err)
		assert.True(t, response.Success)
		assert.True(t, response.Enrolled)
		assert.True(t, response.CouponApplied)
		assert.Equal(t, 100.0, response.Savings)
		assert.Equal(t, "Go Deep Dive", response.PaymentRecord.CourseName)
		assert.Zero(t, fixture.gateway.fetchCalls, "no gateway call on replay")
		assert.Empty(t, fixture.payments.created, "no second payment record")
		assert.Empty(t, fixture.users.enrolled, "no repeated enrollment write")
	})

	t.Run("invalid signature", func(t *testing.T) {
		fixture := newPaymentUsecaseFixture()
		fixture.gateway.signatureIsValid = false

		_, err := fixture.usecase.VerifyPayment(ctx, "user-1", verifyRequest)
		assert.Error(t, err)
		assert.Equal(t, exceptions.ErrInvalidPaymentSignature(nil).ClientMessage, paymentClientMessage(t, err))
	})

	t.Run("uncaptured gateway payment", func(t *testing.T) {
		fixture := newPaymentUsecaseFixture()
		fixture.gateway.payment = &responses.RazorpayPayment{ID: "pay_1", Status: "authorized", Amount: 40000}

		_, err := fixture.usecase.VerifyPayment(ctx, "user-1", verifyRequest)
		assert.Error(t, err)
		assert.Equal(t, exceptions.ErrPaymentNotSuccessful(nil).ClientMessage, paymentClientMessage(t, err))
	})

	t.Run("captured payment records and enrolls", func(t *testing.T) {
		fixture := newPaymentUsecaseFixture()
		fixture.gateway.payment = &responses.RazorpayPayment{ID: "pay_1", Status: "captured", Amount: 40000}
		fixture.courses.courses["course-1"] = &models.Course{ID: "course-1", Title: "Go Deep Dive", Price: 400}

		response, err := fixture.usecase.VerifyPayment(ctx, "user-1", verifyRequest)
		require.NoError(t, err)
		assert.True(t, response.Enrolled)

		require.Len(t, fixture.payments.created, 1)
		payment := fixture.payments.created[0]
		assert.Equal(t, models.PaymentStatusSuccess, payment.Status)
		assert.Equal(t, 400.0, payment.Amount, "gateway paise converted to rupees")
		assert.Equal(t, []string{"user-1/course-1"}, fixture.users.enrolled)
		assert.Equal(t, []string{"lock:payment-verify:order_1"}, fixture.locker.unlocked)
	})

	t.Run("captured payment records the coupon usage", func(t *testing.T) {
		fixture := newPaymentUsecaseFixture()
		fixture.gateway.payment = &responses.RazorpayPayment{ID: "pay_1", Status: "captured", Amount: 40000}
		fixture.courses.courses["course-1"] = &models.Course{ID: "course-1", Title: "Go Deep Dive", Price: 500}
		fixture.coupons.couponsByCode["SAVE20"] = &models.Coupon{ID: "coupon-1", Code: "SAVE20"}

		request := *verifyRequest
		request.CouponCode = "save20"
		request.OriginalAmount = 500
		request.DiscountAmount = 100

		response, err := fixture.usecase.VerifyPayment(ctx, "user-1", &request)
		require.NoError(t, err)
		assert.True(t, response.CouponApplied)
		assert.Equal(t, 100.0, response.Savings)

		require.Len(t, fixture.coupons.recorded, 1)
		usage := fixture.coupons.recorded[0]
		assert.Equal(t, "user-1", usage.UserID)
		assert.Equal(t, 500.0, usage.OriginalAmount)
		assert.Equal(t, 100.0, usage.DiscountAmount)
		assert.Equal(t, 400.0, usage.FinalAmount)

		require.Len(t, fixture.payments.created, 1)
		assert.Equal(t, "SAVE20", fixture.payments.created[0].CouponCode)
	})

	t.Run("coupon exhausted after capture still enrolls", func(t *testing.T) {
		fixture := newPaymentUsecaseFixture()
		fixture.gateway.payment = &responses.RazorpayPayment{ID: "pay_1", Status: "captured", Amount: 40000}
		fixture.courses.courses["course-1"] = &models.Course{ID: "course-1", Title: "Go Deep Dive", Price: 500}
		fixture.coupons.couponsByCode["SAVE20"] = &models.Coupon{ID: "coupon-1", Code: "SAVE20"}
		// The coupon became unredeemable between order creation and this
		// callback; the captured charge must still reconcile.
		fixture.couponValidator.err = exceptions.ErrCouponPerUserLimitReached(nil)
		fixture.coupons.result = false

		request := *verifyRequest
		request.CouponCode = "SAVE20"
		request.OriginalAmount = 500
		request.DiscountAmount = 100

		response, err := fixture.usecase.VerifyPayment(ctx, "user-1", &request)
		require.NoError(t, err)
		assert.True(t, response.Enrolled)
		assert.True(t, response.CouponApplied)
		require.Len(t, fixture.payments.created, 1)
		assert.Equal(t, []string{"user-1/course-1"}, fixture.users.enrolled)
	})

	t.Run("coupon deleted after capture still enrolls without it", func(t *testing.T) {
		fixture := newPaymentUsecaseFixture()
		fixture.gateway.payment = &responses.RazorpayPayment{ID: "pay_1", Status: "captured", Amount: 40000}
		fixture.courses.courses["course-1"] = &models.Course{ID: "course-1", Title: "Go Deep Dive", Price: 500}

		request := *verifyRequest
		request.CouponCode = "GONE"
		request.OriginalAmount = 500
		request.DiscountAmount = 100

		response, err := fixture.usecase.VerifyPayment(ctx, "user-1", &request)
		require.NoError(t, err)
		assert.True(t, response.Enrolled)
		assert.False(t, response.CouponApplied)
		require.Len(t, fixture.payments.created, 1)
		assert.Empty(t, fixture.payments.created[0].CouponCode)
		assert.Empty(t, fixture.coupons.recorded)
	})
}

func TestRequestRefund(t *testing.T) {
	ctx := context.Background()

	successfulPayment := func(age time.Duration, progress float64) *models.Payment {
		payment := &models.Payment{
			ID:               "payment-1",
			UserID:           "user-1",
			CourseID:         "course-1",
			Amount:           400,
			Status:           models.PaymentStatusSuccess,
			PercentCompleted: progress,
		}
		payment.CreatedAt = time.Now().Add(-age)
		return payment
	}

	refundRequest := &requests.RequestRefund{PaymentID: "payment-1", Reason: "changed my mind"}

	t.Run("someone else's payment is invisible", func(t *testing.T) {
		fixture := newPaymentUsecaseFixture()
		payment := successfulPayment(time.Hour, 0)
		payment.UserID = "user-2"
		fixture.payments.paymentsByID["payment-1"] = payment

		_, err := fixture.usecase.RequestRefund(ctx, "user-1", refundRequest)
		assert.Error(t, err)
		assert.Equal(t, exceptions.ErrPaymentNotFound(nil).ClientMessage, paymentClientMessage(t, err))
	})

	t.Run("non-successful payment", func(t *testing.T) {
		fixture := newPaymentUsecaseFixture()
		payment := successfulPayment(time.Hour, 0)
		payment.Status = models.PaymentStatusRefunded
		fixture.payments.paymentsByID["payment-1"] = payment

		_, err := fixture.usecase.RequestRefund(ctx, "user-1", refundRequest)
		assert.Error(t, err)
		assert.Equal(t, exceptions.ErrPaymentNotSuccessful(nil).ClientMessage, paymentClientMessage(t, err))
	})

	t.Run("window closed after seven days", func(t *testing.T) {
		fixture := newPaymentUsecaseFixture()
		fixture.payments.paymentsByID["payment-1"] = successfulPayment(8*24*time.Hour, 0)

		_, err := fixture.usecase.RequestRefund(ctx, "user-1", refundRequest)
		assert.Error(t, err)
		assert.Equal(t, exceptions.ErrRefundWindowClosed(nil).ClientMessage, paymentClientMessage(t, err))
	})

	t.Run("just inside the window passes", func(t *testing.T) {
		fixture := newPaymentUsecaseFixture()
		fixture.payments.paymentsByID["payment-1"] = successfulPayment(7*24*time.Hour-time.Minute, 0)

		detail, err := fixture.usecase.RequestRefund(ctx, "user-1", refundRequest)
		require.NoError(t, err)
		assert.Equal(t, string(models.RequestStatusPending), detail.Status)
	})

	t.Run("progress beyond threshold", func(t *testing.T) {
		fixture := newPaymentUsecaseFixture()
		fixture.payments.paymentsByID["payment-1"] = successfulPayment(time.Hour, 20.5)

		_, err := fixture.usecase.RequestRefund(ctx, "user-1", refundRequest)
		assert.Error(t, err)
		assert.Equal(t, exceptions.ErrRefundProgressExceeded(nil).ClientMessage, paymentClientMessage(t, err))
	})

	t.Run("progress exactly at threshold passes", func(t *testing.T) {
		fixture := newPaymentUsecaseFixture()
		fixture.payments.paymentsByID["payment-1"] = successfulPayment(time.Hour, 20.0)

		detail, err := fixture.usecase.RequestRefund(ctx, "user-1", refundRequest)
		require.NoError(t, err)
		assert.Equal(t, "refund-req-1", detail.ID)
		require.Len(t, fixture.refundRequests.created, 1)
		assert.Equal(t, models.RequestStatusPending, fixture.refundRequests.created[0].Status)
	})
}

func TestRequestDeferral(t *testing.T) {
	ctx := context.Background()

	deferralRequest := &requests.RequestDeferral{CourseID: "course-1", Batch: "2026-jan", Reason: "work travel"}

	t.Run("needs a successful payment", func(t *testing.T) {
		fixture := newPaymentUsecaseFixture()

		_, err := fixture.usecase.RequestDeferral(ctx, "user-1", deferralRequest)
		assert.Error(t, err)
		assert.Equal(t, exceptions.ErrPaymentNotFound(nil).ClientMessage, paymentClientMessage(t, err))
	})

	t.Run("progress beyond threshold", func(t *testing.T) {
		fixture := newPaymentUsecaseFixture()
		fixture.payments.successfulByUserCourse["user-1/course-1"] = &models.Payment{
			ID:               "payment-1",
			PercentCompleted: 35,
		}

		_, err := fixture.usecase.RequestDeferral(ctx, "user-1", deferralRequest)
		assert.Error(t, err)
		assert.Equal(t, exceptions.ErrDeferralProgressExceeded(nil).ClientMessage, paymentClientMessage(t, err))
	})

	t.Run("pending request with the target batch", func(t *testing.T) {
		fixture := newPaymentUsecaseFixture()
		fixture.payments.successfulByUserCourse["user-1/course-1"] = &models.Payment{
			ID:               "payment-1",
			PercentCompleted: 10,
		}

		detail, err := fixture.usecase.RequestDeferral(ctx, "user-1", deferralRequest)
		require.NoError(t, err)
		assert.Equal(t, "deferral-req-1", detail.ID)
		assert.Equal(t, "2026-jan", detail.Batch)
		assert.Equal(t, string(models.RequestStatusPending), detail.Status)
	})
}

func TestUpdateProgress(t *testing.T) {
	ctx := context.Background()

	t.Run("requires an enrollment-backed payment", func(t *testing.T) {
		fixture := newPaymentUsecaseFixture()

		err := fixture.usecase.UpdateProgress(ctx, "user-1", "course-1", 50)
		assert.Error(t, err)
		assert.Equal(t, exceptions.ErrPaymentNotFound(nil).ClientMessage, paymentClientMessage(t, err))
	})

	t.Run("writes progress against the payment", func(t *testing.T) {
		fixture := newPaymentUsecaseFixture()
		fixture.payments.successfulByUserCourse["user-1/course-1"] = &models.Payment{ID: "payment-1"}

		err := fixture.usecase.UpdateProgress(ctx, "user-1", "course-1", 50)
		require.NoError(t, err)
		assert.Equal(t, 50.0, fixture.payments.progressUpdates["payment-1"])
	})
}

func TestNormalizeGatewayStatus(t *testing.T) {
	assert.Equal(t, models.PaymentStatusSuccess, normalizeGatewayStatus("captured"))
	assert.Equal(t, models.PaymentStatusSuccess, normalizeGatewayStatus("authorized"))
	assert.Equal(t, models.PaymentStatusSuccess, normalizeGatewayStatus("created"))
	assert.Equal(t, models.PaymentStatusRefunded, normalizeGatewayStatus("refunded"))
	assert.Equal(t, models.PaymentStatusFailed, normalizeGatewayStatus("failed"))
	assert.Equal(t, models.PaymentStatusFailed, normalizeGatewayStatus("something-new"))
}

func TestMinorUnitConversion(t *testing.T) {
	assert.Equal(t, int64(40000), rupeesToPaise(400))
	assert.Equal(t, int64(49999), rupeesToPaise(499.99))
	assert.Equal(t, 499.99, paiseToRupees(49999))
}
