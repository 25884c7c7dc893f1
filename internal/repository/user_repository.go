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
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already registered")
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (string, error)
	ByID(ctx context.Context, id string) (*domain.User, error)
	ByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	UpdateProfile(ctx context.Context, email string, patch domain.ProfilePatch) error
	UpdatePassword(ctx context.Context, email, passwordHash string) error
	UpdateRole(ctx context.Context, email, role string) error
}

type userDocument struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Email        string             `bson:"email"`
	FirstName    string             `bson:"first_name"`
	LastName     string             `bson:"last_name"`
	Role         string             `bson:"role"`
	City         string             `bson:"city"`
	CreatedAt    time.Time          `bson:"created_at"`
	PasswordHash string             `bson:"hash_password"`
}

func (d userDocument) toDomain() domain.User {
	return domain.User{
		ID:           d.ID.Hex(),
		Email:        d.Email,
		FirstName:    d.FirstName,
		LastName:     d.LastName,
		Role:         d.Role,
		City:         d.City,
		CreatedAt:    d.CreatedAt,
		PasswordHash: d.PasswordHash,
	}
}

func NewMongoUserRepository(db *mongo.Database) UserRepository {
	return &mongoUserRepository{
		users: db.Collection(usersCollection),
	}
}

type mongoUserRepository struct {
	users *mongo.Collection
}

func (m mongoUserRepository) Create(ctx context.Context, user *domain.User) (string, error) {
	doc := userDocument{
		Email:        user.Email,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		Role:         user.Role,
		City:         user.City,
		CreatedAt:    user.CreatedAt,
		PasswordHash: user.PasswordHash,
	}

	result, err := m.users.InsertOne(ctx, doc)
	if mongo.IsDuplicateKeyError(err) {
		return "", ErrEmailTaken
	}
	if err != nil {
		return "", fmt.Errorf("failed to insert user: %w", err)
	}

	id, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected inserted id type %T", result.InsertedID)
	}
	return id.Hex(), nil
}

func (m mongoUserRepository) ByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrUserNotFound
	}
	return m.findOne(ctx, bson.M{"_id": oid})
}

func (m mongoUserRepository) ByEmail(ctx context.Context, email string) (*domain.User, error) {
	return m.findOne(ctx, bson.M{"email": email})
}

func (m mongoUserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	var doc userDocument
	err := m.users.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	user := doc.toDomain()
	return &user, nil
}

func (m mongoUserRepository) List(ctx context.Context) ([]domain.User, error) {
	cursor, err := m.users.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []userDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}

	users := make([]domain.User, 0, len(docs))
	for _, doc := range docs {
		users = append(users, doc.toDomain())
	}
	return users, nil
}

func (m mongoUserRepository) UpdateProfile(ctx context.Context, email string, patch domain.ProfilePatch) error {
	set := bson.M{}
	if patch.FirstName != nil {
		set["first_name"] = *patch.FirstName
	}
	if patch.LastName != nil {
		set["last_name"] = *patch.LastName
	}
	if patch.City != nil {
		set["city"] = *patch.City
	}

	return m.updateOne(ctx, email, bson.M{"$set": set})
}

func (m mongoUserRepository) UpdatePassword(ctx context.Context, email, passwordHash string) error {
	return m.updateOne(ctx, email, bson.M{"$set": bson.M{"hash_password": passwordHash}})
}

func (m mongoUserRepository) UpdateRole(ctx context.Context, email, role string) error {
	return m.updateOne(ctx, email, bson.M{"$set": bson.M{"role": role}})
}

func (m mongoUserRepository) updateOne(ctx context.Context, email string, update bson.M) error {
	result, err := m.users.UpdateOne(ctx, bson.M{"email": email}, update)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}
