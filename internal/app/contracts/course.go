package contracts

import (
	"context"
	"learnhub-service/internal/app/models"
	"learnhub-service/internal/pkg/dto/requests"
	"learnhub-service/internal/pkg/dto/responses"
	"mime/multipart"
)

type CourseRepository interface {
	CreateCourse(ctx context.Context, course *models.Course) (courseID string, err error)
	FindByID(ctx context.Context, courseID string) (*models.Course, error)
	FindAll(ctx context.Context, publishedOnly bool) ([]models.Course, error)
	UpdateCourse(ctx context.Context, courseID string, updateData map[string]interface{}) error
	DeleteCourse(ctx context.Context, courseID string) error
}

type CourseUsecase interface {
	ListCourses(ctx context.Context, includeUnpublished bool) ([]responses.CourseDetail, error)
	GetCourse(ctx context.Context, courseID string) (*responses.CourseDetail, error)
	CreateCourse(ctx context.Context, request *requests.CreateCourse) (*responses.CourseDetail, error)
	UpdateCourse(ctx context.Context, courseID string, request *requests.UpdateCourse) error
	DeleteCourse(ctx context.Context, courseID string) error
	UploadThumbnail(ctx context.Context, courseID string, file multipart.File, header *multipart.FileHeader) (string, error)
}
