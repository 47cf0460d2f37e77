package payments

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
	paymentMongoRepositoryInstance contracts.PaymentRepository
	oncePaymentMongoRepository     sync.Once
)

type PaymentMongoRepository struct {
	Collection *mongo.Collection
}

func NewPaymentMongoRepository(db *mongo.Client, dbName string) contracts.PaymentRepository {
	oncePaymentMongoRepository.Do(func() {
		paymentMongoRepositoryInstance = &PaymentMongoRepository{
			Collection: db.Database(dbName).Collection(constvars.MongoCollectionPayments),
		}
	})
	return paymentMongoRepositoryInstance
}

func (r *PaymentMongoRepository) CreatePayment(ctx context.Context, payment *models.Payment) (string, error) {
	result, err := r.Collection.InsertOne(ctx, payment)
	if err != nil {
		return "", exceptions.ErrMongoDBInsertDocument(err)
	}
	return result.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (r *PaymentMongoRepository) FindByID(ctx context.Context, paymentID string) (*models.Payment, error) {
	var payment models.Payment
	objectID, err := primitive.ObjectIDFromHex(paymentID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}
	err = r.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&payment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &payment, nil
}

// FindByTransactionID backs verification idempotence: a repeated callback for
// the same gateway payment returns the already-recorded document.
func (r *PaymentMongoRepository) FindByTransactionID(ctx context.Context, transactionID string) (*models.Payment, error) {
	var payment models.Payment
	err := r.Collection.FindOne(ctx, bson.M{"transactionId": transactionID}).Decode(&payment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &payment, nil
}

func (r *PaymentMongoRepository) FindByUserID(ctx context.Context, userID string) ([]models.Payment, error) {
	cursor, err := r.Collection.Find(ctx, bson.M{"userId": userID}, options.Find().SetSort(bson.M{"createdAt": -1}))
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	var paymentList []models.Payment
	err = cursor.All(ctx, &paymentList)
	if err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return paymentList, nil
}

func (r *PaymentMongoRepository) FindSuccessfulByUserAndCourse(ctx context.Context, userID, courseID string) (*models.Payment, error) {
	var payment models.Payment
	filter := bson.M{
		"userId":   userID,
		"courseId": courseID,
		"status":   models.PaymentStatusSuccess,
	}
	err := r.Collection.FindOne(ctx, filter, options.FindOne().SetSort(bson.M{"createdAt": -1})).Decode(&payment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &payment, nil
}

func (r *PaymentMongoRepository) FindAll(ctx context.Context) ([]models.Payment, error) {
	cursor, err := r.Collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"createdAt": -1}))
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	var paymentList []models.Payment
	err = cursor.All(ctx, &paymentList)
	if err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return paymentList, nil
}

func (r *PaymentMongoRepository) UpdateStatus(ctx context.Context, paymentID string, status models.PaymentStatus, adminNote string) error {
	objectID, err := primitive.ObjectIDFromHex(paymentID)
	if err != nil {
		return exceptions.ErrMongoDBNotObjectID(err)
	}

	updateData := bson.M{
		"status":    status,
		"updatedAt": time.Now(),
	}
	if adminNote != "" {
		updateData["adminNote"] = adminNote
	}

	_, err = r.Collection.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": updateData})
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}

func (r *PaymentMongoRepository) UpdateProgress(ctx context.Context, paymentID string, percentCompleted float64) error {
	objectID, err := primitive.ObjectIDFromHex(paymentID)
	if err != nil {
		return exceptions.ErrMongoDBNotObjectID(err)
	}

	update := bson.M{"$set": bson.M{
		"percentCompleted": percentCompleted,
		"updatedAt":        time.Now(),
	}}
	_, err = r.Collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}
