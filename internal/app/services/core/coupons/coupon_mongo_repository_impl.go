package coupons

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
	couponMongoRepositoryInstance contracts.CouponRepository
	onceCouponMongoRepository     sync.Once
)

type CouponMongoRepository struct {
	Collection *mongo.Collection
}

func NewCouponMongoRepository(db *mongo.Client, dbName string) contracts.CouponRepository {
	onceCouponMongoRepository.Do(func() {
		couponMongoRepositoryInstance = &CouponMongoRepository{
			Collection: db.Database(dbName).Collection(constvars.MongoCollectionCoupons),
		}
	})
	return couponMongoRepositoryInstance
}

func (r *CouponMongoRepository) CreateCoupon(ctx context.Context, coupon *models.Coupon) (string, error) {
	result, err := r.Collection.InsertOne(ctx, coupon)
	if err != nil {
		return "", exceptions.ErrMongoDBInsertDocument(err)
	}
	return result.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (r *CouponMongoRepository) FindByCode(ctx context.Context, code string) (*models.Coupon, error) {
	var coupon models.Coupon
	err := r.Collection.FindOne(ctx, bson.M{"code": code}).Decode(&coupon)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &coupon, nil
}

func (r *CouponMongoRepository) FindByID(ctx context.Context, couponID string) (*models.Coupon, error) {
	var coupon models.Coupon
	objectID, err := primitive.ObjectIDFromHex(couponID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}
	err = r.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&coupon)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &coupon, nil
}

func (r *CouponMongoRepository) FindAll(ctx context.Context) ([]models.Coupon, error) {
	cursor, err := r.Collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"createdAt": -1}))
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	var couponList []models.Coupon
	err = cursor.All(ctx, &couponList)
	if err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return couponList, nil
}

func (r *CouponMongoRepository) UpdateCoupon(ctx context.Context, couponID string, updateData map[string]interface{}) error {
	objectID, err := primitive.ObjectIDFromHex(couponID)
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

func (r *CouponMongoRepository) DeleteCoupon(ctx context.Context, couponID string) error {
	objectID, err := primitive.ObjectIDFromHex(couponID)
	if err != nil {
		return exceptions.ErrMongoDBNotObjectID(err)
	}
	_, err = r.Collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return exceptions.ErrMongoDBDeleteDocument(err)
	}
	return nil
}

// RecordUsage runs the increment and the history append as one conditional
// update. The filter requires usedCount < usageLimit, so two concurrent
// redemptions of the last slot cannot both match; the loser sees
// MatchedCount == 0 and the caller reports the limit as exhausted.
func (r *CouponMongoRepository) RecordUsage(ctx context.Context, couponID string, usage *models.CouponUsage) (bool, error) {
	objectID, err := primitive.ObjectIDFromHex(couponID)
	if err != nil {
		return false, exceptions.ErrMongoDBNotObjectID(err)
	}

	filter := bson.M{
		"_id":   objectID,
		"$expr": bson.M{"$lt": bson.A{"$usedCount", "$usageLimit"}},
	}
	update := bson.M{
		"$inc":  bson.M{"usedCount": 1},
		"$push": bson.M{"usageHistory": usage},
		"$set":  bson.M{"updatedAt": time.Now()},
	}

	result, err := r.Collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return result.MatchedCount > 0, nil
}
