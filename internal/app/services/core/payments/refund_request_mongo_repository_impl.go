package payments

import (
	"context"
	"learnhub-service/internal/app/contracts"
	"learnhub-service/internal/app/models"
	"learnhub-service/internal/pkg/constvars"
	"learnhub-service/internal/pkg/exceptions"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	refundRequestMongoRepositoryInstance contracts.RefundRequestRepository
	onceRefundRequestMongoRepository     sync.Once
)

type RefundRequestMongoRepository struct {
	Collection *mongo.Collection
}

func NewRefundRequestMongoRepository(db *mongo.Client, dbName string) contracts.RefundRequestRepository {
	onceRefundRequestMongoRepository.Do(func() {
		refundRequestMongoRepositoryInstance = &RefundRequestMongoRepository{
			Collection: db.Database(dbName).Collection(constvars.MongoCollectionRefundRequests),
		}
	})
	return refundRequestMongoRepositoryInstance
}

func (r *RefundRequestMongoRepository) CreateRefundRequest(ctx context.Context, request *models.RefundRequest) (string, error) {
	result, err := r.Collection.InsertOne(ctx, request)
	if err != nil {
		return "", exceptions.ErrMongoDBInsertDocument(err)
	}
	return result.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (r *RefundRequestMongoRepository) FindByID(ctx context.Context, requestID string) (*models.RefundRequest, error) {
	var request models.RefundRequest
	objectID, err := primitive.ObjectIDFromHex(requestID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}
	err = r.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&request)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &request, nil
}

func (r *RefundRequestMongoRepository) FindAll(ctx context.Context, status models.RequestStatus) ([]models.RefundRequest, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}

	cursor, err := r.Collection.Find(ctx, filter, options.Find().SetSort(bson.M{"requestedAt": -1}))
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	var requestList []models.RefundRequest
	err = cursor.All(ctx, &requestList)
	if err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return requestList, nil
}

func (r *RefundRequestMongoRepository) UpdateDecision(ctx context.Context, requestID string, decision *models.RefundRequest) error {
	objectID, err := primitive.ObjectIDFromHex(requestID)
	if err != nil {
		return exceptions.ErrMongoDBNotObjectID(err)
	}

	update := bson.M{"$set": bson.M{
		"status":      decision.Status,
		"adminReason": decision.AdminReason,
		"processedAt": decision.ProcessedAt,
		"processedBy": decision.ProcessedBy,
	}}
	_, err = r.Collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}
