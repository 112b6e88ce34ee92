package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/menswear/storefront/models"
)

type OrderRepository struct {
	collection *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{collection: db.Collection("orders")}
}

func (r *OrderRepository) Create(ctx context.Context, order *models.Order) error {
	res, err := r.collection.InsertOne(ctx, order)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		order.ID = oid
	}
	return nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	var order models.Order
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// FindByUser lists a user's orders, newest first.
func (r *OrderRepository) FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// buyerLookup joins orders with their buyer's name and email.
func buyerLookup(limit int64) mongo.Pipeline {
	pipeline := mongo.Pipeline{
		{{Key: "$sort", Value: bson.M{"created_at": -1}}},
	}
	if limit > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$limit", Value: limit}})
	}
	pipeline = append(pipeline,
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "users",
			"localField":   "user_id",
			"foreignField": "_id",
			"as":           "buyer",
		}}},
		bson.D{{Key: "$unwind", Value: bson.M{
			"path":                       "$buyer",
			"preserveNullAndEmptyArrays": true,
		}}},
		bson.D{{Key: "$addFields", Value: bson.M{
			"buyer_name":  "$buyer.name",
			"buyer_email": "$buyer.email",
		}}},
		bson.D{{Key: "$project", Value: bson.M{"buyer": 0}}},
	)
	return pipeline
}

// FindAllWithBuyer lists every order, newest first, with buyer display
// fields resolved.
func (r *OrderRepository) FindAllWithBuyer(ctx context.Context) ([]models.OrderWithBuyer, error) {
	return r.aggregateWithBuyer(ctx, buyerLookup(0))
}

// FindRecentWithBuyer lists the most recent orders with buyer display
// fields resolved, for the admin dashboard.
func (r *OrderRepository) FindRecentWithBuyer(ctx context.Context, limit int64) ([]models.OrderWithBuyer, error) {
	return r.aggregateWithBuyer(ctx, buyerLookup(limit))
}

func (r *OrderRepository) aggregateWithBuyer(ctx context.Context, pipeline mongo.Pipeline) ([]models.OrderWithBuyer, error) {
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	orders := []models.OrderWithBuyer{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateStatus sets the order status and refreshes updated_at.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.OrderStatus) (*models.Order, error) {
	after := options.After
	opts := options.FindOneAndUpdate().SetReturnDocument(after)

	var order models.Order
	err := r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status, "updated_at": time.Now().UTC()}},
		opts,
	).Decode(&order)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *OrderRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}
