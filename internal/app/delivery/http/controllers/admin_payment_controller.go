package controllers

import (
	"context"
	"learnhub-service/internal/app/contracts"
	"learnhub-service/internal/app/models"
	"learnhub-service/internal/pkg/constvars"
	"learnhub-service/internal/pkg/dto/requests"
	"learnhub-service/internal/pkg/exceptions"
	"learnhub-service/internal/pkg/utils"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type AdminPaymentController struct {
	Log                 *zap.Logger
	AdminPaymentUsecase contracts.AdminPaymentUsecase
}

func NewAdminPaymentController(logger *zap.Logger, adminPaymentUsecase contracts.AdminPaymentUsecase) *AdminPaymentController {
	return &AdminPaymentController{
		Log:                 logger,
		AdminPaymentUsecase: adminPaymentUsecase,
	}
}

func (ctrl *AdminPaymentController) ListPayments(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.AdminPaymentUsecase.ListPayments(ctx)
	if err != nil {
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	// Send response
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.PaymentHistorySuccessMessage, response)
}

func (ctrl *AdminPaymentController) ListRefundRequests(w http.ResponseWriter, r *http.Request) {
	status := models.RequestStatus(r.URL.Query().Get("status"))

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.AdminPaymentUsecase.ListRefundRequests(ctx, status)
	if err != nil {
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	// Send response
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ResponseSuccess, response)
}

func (ctrl *AdminPaymentController) ListDeferralRequests(w http.ResponseWriter, r *http.Request) {
	status := models.RequestStatus(r.URL.Query().Get("status"))

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.AdminPaymentUsecase.ListDeferralRequests(ctx, status)
	if err != nil {
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	// Send response
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ResponseSuccess, response)
}

func (ctrl *AdminPaymentController) ApproveRefund(w http.ResponseWriter, r *http.Request) {
	ctrl.decideRequest(w, r, ctrl.AdminPaymentUsecase.ApproveRefund, constvars.RefundApprovedSuccessMessage)
}

func (ctrl *AdminPaymentController) RejectRefund(w http.ResponseWriter, r *http.Request) {
	ctrl.decideRequest(w, r, ctrl.AdminPaymentUsecase.RejectRefund, constvars.RefundRejectedSuccessMessage)
}

func (ctrl *AdminPaymentController) ApproveDeferral(w http.ResponseWriter, r *http.Request) {
	ctrl.decideRequest(w, r, ctrl.AdminPaymentUsecase.ApproveDeferral, constvars.DeferralApprovedSuccessMessage)
}

func (ctrl *AdminPaymentController) RejectDeferral(w http.ResponseWriter, r *http.Request) {
	ctrl.decideRequest(w, r, ctrl.AdminPaymentUsecase.RejectDeferral, constvars.DeferralRejectedSuccessMessage)
}

// decideRequest factors the shared approve/reject plumbing; the usecase method
// carries the actual decision semantics.
func (ctrl *AdminPaymentController) decideRequest(
	w http.ResponseWriter,
	r *http.Request,
	decide func(ctx context.Context, adminID, requestID, adminReason string) error,
	successMessage string,
) {
	sessionData, ok := r.Context().Value(constvars.CONTEXT_SESSION_DATA_KEY).(*models.Session)
	if !ok || sessionData == nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrSessionInvalid(nil))
		return
	}

	requestID := chi.URLParam(r, "requestID")
	if requestID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamIDValidation(nil, "requestID"))
		return
	}

	// The body is optional; an empty one means no admin reason.
	request := new(requests.ProcessRequest)
	if r.Body != nil && r.ContentLength != 0 {
		err := json.NewDecoder(r.Body).Decode(&request)
		if err != nil {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	err := decide(ctx, sessionData.UserID, requestID, request.AdminReason)
	if err != nil {
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	// Send response
	utils.BuildSuccessResponse(w, constvars.StatusOK, successMessage, nil)
}

func (ctrl *AdminPaymentController) DirectRefund(w http.ResponseWriter, r *http.Request) {
	sessionData, ok := r.Context().Value(constvars.CONTEXT_SESSION_DATA_KEY).(*models.Session)
	if !ok || sessionData == nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrSessionInvalid(nil))
		return
	}

	// Bind body to request
	request := new(requests.DirectRefund)
	err := json.NewDecoder(r.Body).Decode(&request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	// Validate request
	err = utils.ValidateStruct(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	// Send it to be processed by usecase
	err = ctrl.AdminPaymentUsecase.DirectRefund(ctx, sessionData.UserID, request)
	if err != nil {
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	// Send response
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.DirectRefundSuccessMessage, nil)
}

func (ctrl *AdminPaymentController) BulkAction(w http.ResponseWriter, r *http.Request) {
	sessionData, ok := r.Context().Value(constvars.CONTEXT_SESSION_DATA_KEY).(*models.Session)
	if !ok || sessionData == nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrSessionInvalid(nil))
		return
	}

	// Bind body to request
	request := new(requests.BulkPaymentAction)
	err := json.NewDecoder(r.Body).Decode(&request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	// Validate request
	err = utils.ValidateStruct(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	// Bulk work scales with the id list, so give it more headroom.
	ctx, cancel := context.WithTimeout(r.Context(), 40*time.Second)
	defer cancel()

	// Send it to be processed by usecase
	response, err := ctrl.AdminPaymentUsecase.BulkAction(ctx, sessionData.UserID, request)
	if err != nil {
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	// Send response
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.BulkActionSuccessMessage, response)
}

func (ctrl *AdminPaymentController) UpdatePaymentStatus(w http.ResponseWriter, r *http.Request) {
	sessionData, ok := r.Context().Value(constvars.CONTEXT_SESSION_DATA_KEY).(*models.Session)
	if !ok || sessionData == nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrSessionInvalid(nil))
		return
	}

	// Bind body to request
	request := new(requests.UpdatePaymentStatus)
	err := json.NewDecoder(r.Body).Decode(&request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	// Validate request
	err = utils.ValidateStruct(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	// Send it to be processed by usecase
	err = ctrl.AdminPaymentUsecase.UpdatePaymentStatus(ctx, sessionData.UserID, request)
	if err != nil {
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	// Send response
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.UpdateStatusSuccessMessage, nil)
}
