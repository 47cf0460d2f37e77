package courses

import (
	"context"
	"learnhub-service/internal/app/contracts"
	"learnhub-service/internal/app/models"
	"learnhub-service/internal/pkg/constvars"
	"learnhub-service/internal/pkg/exceptions"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	courseMongoRepositoryInstance contracts.CourseRepository
	onceCourseMongoRepository     sync.Once
)

type CourseMongoRepository struct {
	Collection *mongo.Collection
}

func NewCourseMongoRepository(db *mongo.Client, dbName string) contracts.CourseRepository {
	onceCourseMongoRepository.Do(func() {
		courseMongoRepositoryInstance = &CourseMongoRepository{
			Collection: db.Database(dbName).Collection(constvars.MongoCollectionCourses),
		}
	})
	return courseMongoRepositoryInstance
}

func (r *CourseMongoRepository) CreateCourse(ctx context.Context, course *models.Course) (string, error) {
	result, err := r.Collection.InsertOne(ctx, course)
	if err != nil {
		return "", exceptions.ErrMongoDBInsertDocument(err)
	}
	return result.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (r *CourseMongoRepository) FindByID(ctx context.Context, courseID string) (*models.Course, error) {
	var course models.Course
	objectID, err := primitive.ObjectIDFromHex(courseID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}
	err = r.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&course)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &course, nil
}

func (r *CourseMongoRepository) FindAll(ctx context.Context, publishedOnly bool) ([]models.Course, error) {
	filter := bson.M{}
	if publishedOnly {
		filter["published"] = true
	}

	cursor, err := r.Collection.Find(ctx, filter, options.Find().SetSort(bson.M{"createdAt": -1}))
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	var courseList []models.Course
	err = cursor.All(ctx, &courseList)
	if err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return courseList, nil
}

func (r *CourseMongoRepository) UpdateCourse(ctx context.Context, courseID string, updateData map[string]interface{}) error {
	objectID, err := primitive.ObjectIDFromHex(courseID)
	if err != nil {
		return exceptions.ErrMongoDBNotObjectID(err)
	}
	updateData["updatedAt"] = time.Now()
	update := bson.M{"$set": updateData}

	_, err = r.Collection.UpdateOne(ctx, bson.M{"_id": objectID}, update, options.Update().SetUpsert(false))
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}

func (r *CourseMongoRepository) DeleteCourse(ctx context.Context, courseID string) error {
	objectID, err := primitive.ObjectIDFromHex(courseID)
	if err != nil {
		return exceptions.ErrMongoDBNotObjectID(err)
	}
	_, err = r.Collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return exceptions.ErrMongoDBDeleteDocument(err)
	}
	return nil
}
