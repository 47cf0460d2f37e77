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
	deferralRequestMongoRepositoryInstance contracts.DeferralRequestRepository
	onceDeferralRequestMongoRepository     sync.Once
)

type DeferralRequestMongoRepository struct {
	Collection *mongo.Collection
}

func NewDeferralRequestMongoRepository(db *mongo.Client, dbName string) contracts.DeferralRequestRepository {
	onceDeferralRequestMongoRepository.Do(func() {
		deferralRequestMongoRepositoryInstance = &DeferralRequestMongoRepository{
			Collection: db.Database(dbName).Collection(constvars.MongoCollectionDeferralRequests),
		}
	})
	return deferralRequestMongoRepositoryInstance
}

func (r *DeferralRequestMongoRepository) CreateDeferralRequest(ctx context.Context, request *models.DeferralRequest) (string, error) {
	result, err := r.Collection.InsertOne(ctx, request)
	if err != nil {
		return "", exceptions.ErrMongoDBInsertDocument(err)
	}
	return result.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (r *DeferralRequestMongoRepository) FindByID(ctx context.Context, requestID string) (*models.DeferralRequest, error) {
	var request models.DeferralRequest
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

func (r *DeferralRequestMongoRepository) FindAll(ctx context.Context, status models.RequestStatus) ([]models.DeferralRequest, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}

	cursor, err := r.Collection.Find(ctx, filter, options.Find().SetSort(bson.M{"requestedAt": -1}))
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	var requestList []models.DeferralRequest
	err = cursor.All(ctx, &requestList)
	if err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return requestList, nil
}

func (r *DeferralRequestMongoRepository) UpdateDecision(ctx context.Context, requestID string, decision *models.DeferralRequest) error {
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
