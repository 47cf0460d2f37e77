package controllers

import (
	"context"
	"learnhub-service/internal/app/contracts"
	"learnhub-service/internal/app/models"
	"learnhub-service/internal/pkg/constvars"
	"learnhub-service/internal/pkg/exceptions"
	"learnhub-service/internal/pkg/utils"
	"net/http"
	"time"

	"go.uber.org/zap"
)

type UserController struct {
	Log         *zap.Logger
	UserUsecase contracts.UserUsecase
}

func NewUserController(logger *zap.Logger, userUsecase contracts.UserUsecase) *UserController {
	return &UserController{
		Log:         logger,
		UserUsecase: userUsecase,
	}
}

func (ctrl *UserController) GetProfile(w http.ResponseWriter, r *http.Request) {
	sessionData, ok := r.Context().Value(constvars.CONTEXT_SESSION_DATA_KEY).(*models.Session)
	if !ok || sessionData == nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrSessionInvalid(nil))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.UserUsecase.GetProfile(ctx, sessionData.UserID)
	if err != nil {
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	// Send response
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetProfileSuccessMessage, response)
}
