package courses

import (
	"context"
	"fmt"
	"learnhub-service/internal/app/config"
	"learnhub-service/internal/app/contracts"
	"learnhub-service/internal/app/models"
	"learnhub-service/internal/pkg/constvars"
	"learnhub-service/internal/pkg/dto/requests"
	"learnhub-service/internal/pkg/dto/responses"
	"learnhub-service/internal/pkg/exceptions"
	"learnhub-service/internal/pkg/utils"
	"mime/multipart"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
)

var (
	courseUsecaseInstance contracts.CourseUsecase
	onceCourseUsecase     sync.Once
)

type courseUsecase struct {
	CourseRepository contracts.CourseRepository
	Storage          contracts.Storage
	InternalConfig   *config.InternalConfig
	Log              *zap.Logger
}

func NewCourseUsecase(
	courseRepository contracts.CourseRepository,
	storage contracts.Storage,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.CourseUsecase {
	onceCourseUsecase.Do(func() {
		courseUsecaseInstance = &courseUsecase{
			CourseRepository: courseRepository,
			Storage:          storage,
			InternalConfig:   internalConfig,
			Log:              logger,
		}
	})
	return courseUsecaseInstance
}

func (uc *courseUsecase) ListCourses(ctx context.Context, includeUnpublished bool) ([]responses.CourseDetail, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("courseUsecase.ListCourses called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Bool("include_unpublished", includeUnpublished),
	)

	courseList, err := uc.CourseRepository.FindAll(ctx, !includeUnpublished)
	if err != nil {
		return nil, err
	}

	details := make([]responses.CourseDetail, 0, len(courseList))
	for i := range courseList {
		details = append(details, uc.buildCourseDetail(ctx, &courseList[i]))
	}
	return details, nil
}

func (uc *courseUsecase) GetCourse(ctx context.Context, courseID string) (*responses.CourseDetail, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("courseUsecase.GetCourse called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingCourseIDKey, courseID),
	)

	courseEntity, err := uc.CourseRepository.FindByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if courseEntity == nil {
		return nil, exceptions.ErrCourseNotFound(fmt.Errorf("course %s not found", courseID))
	}

	detail := uc.buildCourseDetail(ctx, courseEntity)
	return &detail, nil
}

func (uc *courseUsecase) CreateCourse(ctx context.Context, request *requests.CreateCourse) (*responses.CourseDetail, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("courseUsecase.CreateCourse called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	courseEntity := &models.Course{
		Title:       request.Title,
		Description: request.Description,
		Instructor:  request.Instructor,
		Price:       request.Price,
		Batch:       request.Batch,
		Published:   request.Published,
	}
	courseEntity.SetCreatedAtUpdatedAt()

	courseID, err := uc.CourseRepository.CreateCourse(ctx, courseEntity)
	if err != nil {
		return nil, err
	}
	courseEntity.ID = courseID

	detail := uc.buildCourseDetail(ctx, courseEntity)
	return &detail, nil
}

func (uc *courseUsecase) UpdateCourse(ctx context.Context, courseID string, request *requests.UpdateCourse) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("courseUsecase.UpdateCourse called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingCourseIDKey, courseID),
	)

	courseEntity, err := uc.CourseRepository.FindByID(ctx, courseID)
	if err != nil {
		return err
	}
	if courseEntity == nil {
		return exceptions.ErrCourseNotFound(fmt.Errorf("course %s not found", courseID))
	}

	updateData := map[string]interface{}{}
	if request.Title != nil {
		updateData["title"] = *request.Title
	}
	if request.Description != nil {
		updateData["description"] = *request.Description
	}
	if request.Instructor != nil {
		updateData["instructor"] = *request.Instructor
	}
	if request.Price != nil {
		updateData["price"] = *request.Price
	}
	if request.Batch != nil {
		updateData["batch"] = *request.Batch
	}
	if request.Published != nil {
		updateData["published"] = *request.Published
	}
	if len(updateData) == 0 {
		return nil
	}

	return uc.CourseRepository.UpdateCourse(ctx, courseID, updateData)
}

func (uc *courseUsecase) DeleteCourse(ctx context.Context, courseID string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("courseUsecase.DeleteCourse called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingCourseIDKey, courseID),
	)

	courseEntity, err := uc.CourseRepository.FindByID(ctx, courseID)
	if err != nil {
		return err
	}
	if courseEntity == nil {
		return exceptions.ErrCourseNotFound(fmt.Errorf("course %s not found", courseID))
	}

	return uc.CourseRepository.DeleteCourse(ctx, courseID)
}

func (uc *courseUsecase) UploadThumbnail(ctx context.Context, courseID string, file multipart.File, header *multipart.FileHeader) (string, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("courseUsecase.UploadThumbnail called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingCourseIDKey, courseID),
		zap.Int64("file_size", header.Size),
	)

	maxSize := uc.InternalConfig.App.ThumbnailMaxUploadSizeInMB * 1024 * 1024
	if header.Size > maxSize {
		return "", exceptions.ErrFileTooLarge(fmt.Errorf("upload of %d bytes exceeds limit of %d bytes", header.Size, maxSize))
	}

	courseEntity, err := uc.CourseRepository.FindByID(ctx, courseID)
	if err != nil {
		return "", err
	}
	if courseEntity == nil {
		return "", exceptions.ErrCourseNotFound(fmt.Errorf("course %s not found", courseID))
	}

	objectName := utils.GenerateObjectName("thumbnail", courseID, filepath.Ext(header.Filename))
	err = uc.Storage.UploadObject(ctx, objectName, file, header.Size, header.Header.Get(constvars.HeaderContentType))
	if err != nil {
		return "", err
	}

	err = uc.CourseRepository.UpdateCourse(ctx, courseID, map[string]interface{}{"thumbnailObject": objectName})
	if err != nil {
		return "", err
	}

	return uc.presignThumbnail(ctx, objectName), nil
}

func (uc *courseUsecase) buildCourseDetail(ctx context.Context, courseEntity *models.Course) responses.CourseDetail {
	return responses.CourseDetail{
		ID:           courseEntity.ID,
		Title:        courseEntity.Title,
		Description:  courseEntity.Description,
		Instructor:   courseEntity.Instructor,
		Price:        courseEntity.Price,
		Batch:        courseEntity.Batch,
		ThumbnailURL: uc.presignThumbnail(ctx, courseEntity.ThumbnailObject),
		Published:    courseEntity.Published,
		CreatedAt:    courseEntity.CreatedAt,
	}
}

// presignThumbnail is best-effort: a storage hiccup must not break catalog reads.
func (uc *courseUsecase) presignThumbnail(ctx context.Context, objectName string) string {
	if objectName == "" {
		return ""
	}
	expiry := time.Duration(uc.InternalConfig.App.PresignedUrlObjectExpiryTimeInHours) * time.Hour
	presignedURL, err := uc.Storage.PresignedGetURL(ctx, objectName, expiry)
	if err != nil {
		uc.Log.Warn("courseUsecase.presignThumbnail failed", zap.Error(err))
		return ""
	}
	return presignedURL
}
