package payments

import (
	"context"
	"learnhub-service/internal/app/config"
	"learnhub-service/internal/app/models"
	"learnhub-service/internal/pkg/dto/requests"
	"learnhub-service/internal/pkg/exceptions"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeMailerService struct {
	sent []*requests.EmailPayload
}

func (m *fakeMailerService) SendEmail(ctx context.Context, request *requests.EmailPayload) error {
	m.sent = append(m.sent, request)
	return nil
}

func (m *fakeMailerService) ValidateEmail(email string) bool {
	return true
}

type adminPaymentUsecaseFixture struct {
	usecase        *adminPaymentUsecase
	payments       *fakePaymentRepository
	refundRequests *fakeRefundRequestRepository
	deferrals      *fakeDeferralRequestRepository
	users          *fakeUserRepository
	courses        *fakeCourseRepository
	mailer         *fakeMailerService
}

func newAdminPaymentUsecaseFixture() *adminPaymentUsecaseFixture {
	fixture := &adminPaymentUsecaseFixture{
		payments:       newFakePaymentRepository(),
		refundRequests: &fakeRefundRequestRepository{byID: map[string]*models.RefundRequest{}},
		deferrals:      &fakeDeferralRequestRepository{byID: map[string]*models.DeferralRequest{}},
		users:          &fakeUserRepository{usersByID: map[string]*models.User{}},
		courses:        &fakeCourseRepository{courses: map[string]*models.Course{}},
		mailer:         &fakeMailerService{},
	}
	fixture.usecase = &adminPaymentUsecase{
		PaymentRepository:         fixture.payments,
		RefundRequestRepository:   fixture.refundRequests,
		DeferralRequestRepository: fixture.deferrals,
		UserRepository:            fixture.users,
		CourseRepository:          fixture.courses,
		Mailer:                    fixture.mailer,
		InternalConfig: &config.InternalConfig{
			Mailer: config.Mailer{EmailSender: "no-reply@learnhub.app"},
		},
		Log: zap.NewNop(),
	}
	return fixture
}

func (f *adminPaymentUsecaseFixture) seedRefundCase() {
	f.refundRequests.byID["req-1"] = &models.RefundRequest{
		ID:        "req-1",
		UserID:    "user-1",
		PaymentID: "payment-1",
		Reason:    "changed my mind",
		Status:    models.RequestStatusPending,
	}
	f.payments.paymentsByID["payment-1"] = &models.Payment{
		ID:       "payment-1",
		UserID:   "user-1",
		CourseID: "course-1",
		Amount:   400,
		Status:   models.PaymentStatusSuccess,
	}
	f.users.usersByID["user-1"] = &models.User{ID: "user-1", Email: "student@example.com"}
}

func TestApproveRefund(t *testing.T) {
	ctx := context.Background()

	t.Run("approval refunds, de-enrolls and notifies", func(t *testing.T) {
		fixture := newAdminPaymentUsecaseFixture()
		fixture.seedRefundCase()

		err := fixture.usecase.ApproveRefund(ctx, "admin-1", "req-1", "verified the charge")
		require.NoError(t, err)

		update := fixture.payments.statusUpdates["payment-1"]
		assert.Equal(t, models.PaymentStatusRefunded, update.status)
		assert.Equal(t, "verified the charge", update.adminNote)

		require.Len(t, fixture.refundRequests.decisions, 1)
		decision := fixture.refundRequests.decisions[0]
		assert.Equal(t, models.RequestStatusApproved, decision.Status)
		assert.Equal(t, "admin-1", decision.ProcessedBy)
		assert.Equal(t, "verified the charge", decision.AdminReason)
		require.NotNil(t, decision.ProcessedAt)

		assert.Equal(t, []string{"user-1/course-1"}, fixture.users.removed)
		require.Len(t, fixture.mailer.sent, 1)
		assert.Equal(t, []string{"student@example.com"}, fixture.mailer.sent[0].To)
	})

	t.Run("unknown request", func(t *testing.T) {
		fixture := newAdminPaymentUsecaseFixture()

		err := fixture.usecase.ApproveRefund(ctx, "admin-1", "req-404", "ok")
		assert.Error(t, err)
		assert.Equal(t, exceptions.ErrRequestNotFound(nil).ClientMessage, paymentClientMessage(t, err))
	})

	t.Run("decided request cannot be decided again", func(t *testing.T) {
		fixture := newAdminPaymentUsecaseFixture()
		fixture.seedRefundCase()
		fixture.refundRequests.byID["req-1"].Status = models.RequestStatusApproved

		err := fixture.usecase.ApproveRefund(ctx, "admin-1", "req-1", "second pass")
		assert.Error(t, err)
		assert.Equal(t, exceptions.ErrRequestAlreadyDecided(nil).ClientMessage, paymentClientMessage(t, err))
		assert.Empty(t, fixture.payments.statusUpdates, "payment stays untouched")
		assert.Empty(t, fixture.refundRequests.decisions)
	})

	t.Run("request pointing at a vanished payment", func(t *testing.T) {
		fixture := newAdminPaymentUsecaseFixture()
		fixture.seedRefundCase()
		delete(fixture.payments.paymentsByID, "payment-1")

		err := fixture.usecase.ApproveRefund(ctx, "admin-1", "req-1", "ok")
		assert.Error(t, err)
		assert.Equal(t, exceptions.ErrPaymentNotFound(nil).ClientMessage, paymentClientMessage(t, err))
		assert.Empty(t, fixture.refundRequests.decisions, "request stays pending")
	})
}

func TestRejectRefund(t *testing.T) {
	ctx := context.Background()

	t.Run("rejection decides the request and nothing else", func(t *testing.T) {
		fixture := newAdminPaymentUsecaseFixture()
		fixture.seedRefundCase()

		err := fixture.usecase.RejectRefund(ctx, "admin-1", "req-1", "outside policy")
		require.NoError(t, err)

		require.Len(t, fixture.refundRequests.decisions, 1)
		decision := fixture.refundRequests.decisions[0]
		assert.Equal(t, models.RequestStatusRejected, decision.Status)
		assert.Equal(t, "admin-1", decision.ProcessedBy)
		require.NotNil(t, decision.ProcessedAt)

		assert.Empty(t, fixture.payments.statusUpdates, "payment keeps its status")
		assert.Empty(t, fixture.users.removed, "enrollment survives a rejection")
		assert.Empty(t, fixture.mailer.sent)
	})

	t.Run("rejected request cannot be re-decided", func(t *testing.T) {
		fixture := newAdminPaymentUsecaseFixture()
		fixture.seedRefundCase()
		fixture.refundRequests.byID["req-1"].Status = models.RequestStatusRejected

		err := fixture.usecase.RejectRefund(ctx, "admin-1", "req-1", "again")
		assert.Error(t, err)
		assert.Equal(t, exceptions.ErrRequestAlreadyDecided(nil).ClientMessage, paymentClientMessage(t, err))
	})
}

func TestApproveDeferral(t *testing.T) {
	ctx := context.Background()

	seedDeferral := func(fixture *adminPaymentUsecaseFixture) {
		fixture.deferrals.byID["def-1"] = &models.DeferralRequest{
			ID:       "def-1",
			UserID:   "user-1",
			CourseID: "course-1",
			Batch:    "2026-jan",
			Status:   models.RequestStatusPending,
		}
	}

	t.Run("approval defers the matched successful payment", func(t *testing.T) {
		fixture := newAdminPaymentUsecaseFixture()
		seedDeferral(fixture)
		fixture.payments.successfulByUserCourse["user-1/course-1"] = &models.Payment{
			ID:       "payment-1",
			UserID:   "user-1",
			CourseID: "course-1",
			Status:   models.PaymentStatusSuccess,
		}

		err := fixture.usecase.ApproveDeferral(ctx, "admin-1", "def-1", "moved to next batch")
		require.NoError(t, err)

		update := fixture.payments.statusUpdates["payment-1"]
		assert.Equal(t, models.PaymentStatusDeferred, update.status)

		require.Len(t, fixture.deferrals.decisions, 1)
		decision := fixture.deferrals.decisions[0]
		assert.Equal(t, models.RequestStatusApproved, decision.Status)
		assert.Equal(t, "admin-1", decision.ProcessedBy)
		require.NotNil(t, decision.ProcessedAt)

		assert.Empty(t, fixture.users.removed, "deferral keeps the enrollment")
	})

	t.Run("no successful payment to defer", func(t *testing.T) {
		fixture := newAdminPaymentUsecaseFixture()
		seedDeferral(fixture)

		err := fixture.usecase.ApproveDeferral(ctx, "admin-1", "def-1", "ok")
		assert.Error(t, err)
		assert.Equal(t, exceptions.ErrPaymentNotFound(nil).ClientMessage, paymentClientMessage(t, err))
		assert.Empty(t, fixture.deferrals.decisions)
	})

	t.Run("decided deferral cannot be decided again", func(t *testing.T) {
		fixture := newAdminPaymentUsecaseFixture()
		seedDeferral(fixture)
		fixture.deferrals.byID["def-1"].Status = models.RequestStatusRejected

		err := fixture.usecase.RejectDeferral(ctx, "admin-1", "def-1", "again")
		assert.Error(t, err)
		assert.Equal(t, exceptions.ErrRequestAlreadyDecided(nil).ClientMessage, paymentClientMessage(t, err))
	})
}

func TestDirectRefund(t *testing.T) {
	ctx := context.Background()

	t.Run("writes a pre-approved request and refunds", func(t *testing.T) {
		fixture := newAdminPaymentUsecaseFixture()
		fixture.payments.paymentsByID["payment-1"] = &models.Payment{
			ID:       "payment-1",
			UserID:   "user-1",
			CourseID: "course-1",
			Amount:   400,
			Status:   models.PaymentStatusSuccess,
		}
		fixture.users.usersByID["user-1"] = &models.User{ID: "user-1", Email: "student@example.com"}

		err := fixture.usecase.DirectRefund(ctx, "admin-1", &requests.DirectRefund{
			PaymentID:   "payment-1",
			AdminReason: "duplicate charge",
		})
		require.NoError(t, err)

		update := fixture.payments.statusUpdates["payment-1"]
		assert.Equal(t, models.PaymentStatusRefunded, update.status)
		assert.Equal(t, "duplicate charge", update.adminNote)

		require.Len(t, fixture.refundRequests.created, 1)
		created := fixture.refundRequests.created[0]
		assert.Equal(t, models.RequestStatusApproved, created.Status)
		assert.Equal(t, "refund issued directly by admin", created.Reason)
		assert.Equal(t, "duplicate charge", created.AdminReason)
		assert.Equal(t, "admin-1", created.ProcessedBy)
		require.NotNil(t, created.ProcessedAt)

		assert.Equal(t, []string{"user-1/course-1"}, fixture.users.removed)
		require.Len(t, fixture.mailer.sent, 1)
	})

	t.Run("unknown payment", func(t *testing.T) {
		fixture := newAdminPaymentUsecaseFixture()

		err := fixture.usecase.DirectRefund(ctx, "admin-1", &requests.DirectRefund{PaymentID: "payment-404"})
		assert.Error(t, err)
		assert.Equal(t, exceptions.ErrPaymentNotFound(nil).ClientMessage, paymentClientMessage(t, err))
		assert.Empty(t, fixture.refundRequests.created)
	})
}

func TestBulkAction(t *testing.T) {
	ctx := context.Background()

	t.Run("one bad id never aborts the batch", func(t *testing.T) {
		fixture := newAdminPaymentUsecaseFixture()
		fixture.payments.paymentsByID["payment-1"] = &models.Payment{ID: "payment-1", UserID: "user-1", CourseID: "course-1"}
		fixture.payments.paymentsByID["payment-2"] = &models.Payment{ID: "payment-2", UserID: "user-2", CourseID: "course-1"}

		report, err := fixture.usecase.BulkAction(ctx, "admin-1", &requests.BulkPaymentAction{
			Action:     "refund",
			PaymentIDs: []string{"payment-1", "payment-404", "payment-2"},
			AdminNote:  "chargeback batch",
		})
		require.NoError(t, err)

		assert.Equal(t, 2, report.Updated)
		assert.Equal(t, 1, report.Failed)
		require.Len(t, report.Errors, 1)
		assert.Equal(t, "payment-404", report.Errors[0].PaymentID)
		assert.NotEmpty(t, report.Errors[0].Error)

		assert.Equal(t, models.PaymentStatusRefunded, fixture.payments.statusUpdates["payment-1"].status)
		assert.Equal(t, models.PaymentStatusRefunded, fixture.payments.statusUpdates["payment-2"].status)
		assert.ElementsMatch(t, []string{"user-1/course-1", "user-2/course-1"}, fixture.users.removed)
	})

	t.Run("mark_failed leaves enrollments alone", func(t *testing.T) {
		fixture := newAdminPaymentUsecaseFixture()
		fixture.payments.paymentsByID["payment-1"] = &models.Payment{ID: "payment-1", UserID: "user-1", CourseID: "course-1"}

		report, err := fixture.usecase.BulkAction(ctx, "admin-1", &requests.BulkPaymentAction{
			Action:     "mark_failed",
			PaymentIDs: []string{"payment-1"},
		})
		require.NoError(t, err)

		assert.Equal(t, 1, report.Updated)
		assert.Zero(t, report.Failed)
		assert.Equal(t, models.PaymentStatusFailed, fixture.payments.statusUpdates["payment-1"].status)
		assert.Empty(t, fixture.users.removed)
	})
}

func TestUpdatePaymentStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("overwrites status with the admin note", func(t *testing.T) {
		fixture := newAdminPaymentUsecaseFixture()
		fixture.payments.paymentsByID["payment-1"] = &models.Payment{ID: "payment-1", Status: models.PaymentStatusFailed}

		err := fixture.usecase.UpdatePaymentStatus(ctx, "admin-1", &requests.UpdatePaymentStatus{
			PaymentID: "payment-1",
			Status:    "success",
			AdminNote: "settlement confirmed manually",
		})
		require.NoError(t, err)

		update := fixture.payments.statusUpdates["payment-1"]
		assert.Equal(t, models.PaymentStatusSuccess, update.status)
		assert.Equal(t, "settlement confirmed manually", update.adminNote)
	})

	t.Run("unknown payment", func(t *testing.T) {
		fixture := newAdminPaymentUsecaseFixture()

		err := fixture.usecase.UpdatePaymentStatus(ctx, "admin-1", &requests.UpdatePaymentStatus{
			PaymentID: "payment-404",
			Status:    "failed",
		})
		assert.Error(t, err)
		assert.Equal(t, exceptions.ErrPaymentNotFound(nil).ClientMessage, paymentClientMessage(t, err))
	})
}
