package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SerhiiL06/feathered-friends-marketplace/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrOrderNotFound = errors.New("order not found")

type OrderRepository interface {
	// Create persists the order and returns its generated id.
	Create(ctx context.Context, order *domain.Order) (string, error)
	// List returns all orders, newest first.
	List(ctx context.Context) ([]domain.Order, error)
	Get(ctx context.Context, id string) (*domain.Order, error)
}

type orderDocument struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Items      []domain.LineItem  `bson:"items_line"`
	Status     string             `bson:"status"`
	CreatedAt  time.Time          `bson:"created_date"`
	Recipient  domain.Recipient   `bson:"recipient_data"`
	TotalPrice float64            `bson:"total_price"`
}

func (d orderDocument) toDomain() domain.Order {
	return domain.Order{
		ID:         d.ID.Hex(),
		Items:      d.Items,
		Status:     d.Status,
		CreatedAt:  d.CreatedAt,
		Recipient:  d.Recipient,
		TotalPrice: d.TotalPrice,
	}
}

func NewMongoOrderRepository(db *mongo.Database) OrderRepository {
	return &mongoOrderRepository{
		orders: db.Collection(ordersCollection),
	}
}

type mongoOrderRepository struct {
	orders *mongo.Collection
}

func (m mongoOrderRepository) Create(ctx context.Context, order *domain.Order) (string, error) {
	doc := orderDocument{
		Items:      order.Items,
		Status:     order.Status,
		CreatedAt:  order.CreatedAt,
		Recipient:  order.Recipient,
		TotalPrice: order.TotalPrice,
	}

	result, err := m.orders.InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("failed to insert order: %w", err)
	}

	id, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected inserted id type %T", result.InsertedID)
	}
	return id.Hex(), nil
}

func (m mongoOrderRepository) List(ctx context.Context) ([]domain.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_date", Value: -1}})

	cursor, err := m.orders.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []orderDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode orders: %w", err)
	}

	orders := make([]domain.Order, 0, len(docs))
	for _, doc := range docs {
		orders = append(orders, doc.toDomain())
	}
	return orders, nil
}

func (m mongoOrderRepository) Get(ctx context.Context, id string) (*domain.Order, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrOrderNotFound
	}

	var doc orderDocument
	err = m.orders.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	order := doc.toDomain()
	return &order, nil
}
