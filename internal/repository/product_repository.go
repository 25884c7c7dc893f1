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

var ErrProductNotFound = errors.New("product not found")

// ProductRepository defines the catalog operations the services need.
// Consumers define this interface, not the MongoDB implementation.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) (string, error)
	BySlug(ctx context.Context, slug string) (*domain.Product, error)
	BySlugs(ctx context.Context, slugs []string) ([]domain.Product, error)
	// ByIDs is the batch lookup the cart aggregator uses; ids that do not
	// resolve are simply absent from the result.
	ByIDs(ctx context.Context, ids []string) ([]domain.Product, error)
	List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)
	Update(ctx context.Context, slug string, patch domain.ProductPatch) (*domain.Product, error)
	AddComment(ctx context.Context, slug string, comment domain.Comment) (*domain.Product, error)
	Delete(ctx context.Context, slug string) error
	CategoriesByTitle(ctx context.Context, titles []string) ([]domain.CategoryRef, error)
	RemoveStaleNewTags(ctx context.Context, olderThan time.Time) (int64, error)
}

type productDocument struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty"`
	Title       string               `bson:"title"`
	Description string               `bson:"description"`
	Slug        string               `bson:"slug"`
	Price       domain.Price         `bson:"price"`
	Categories  []domain.CategoryRef `bson:"category_ids"`
	Tags        []string             `bson:"tags"`
	Comments    []domain.Comment     `bson:"comments,omitempty"`
	CreatedAt   time.Time            `bson:"created_at"`
}

func (d productDocument) toDomain() domain.Product {
	return domain.Product{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Description: d.Description,
		Slug:        d.Slug,
		Price:       d.Price,
		Categories:  d.Categories,
		Tags:        d.Tags,
		Comments:    d.Comments,
		CreatedAt:   d.CreatedAt,
	}
}

type categoryDocument struct {
	ID    primitive.ObjectID `bson:"_id,omitempty"`
	Title string             `bson:"title"`
}

func NewMongoProductRepository(db *mongo.Database) ProductRepository {
	return &mongoProductRepository{
		products:   db.Collection(productsCollection),
		categories: db.Collection(categoriesCollection),
	}
}

type mongoProductRepository struct {
	products   *mongo.Collection
	categories *mongo.Collection
}

func (m mongoProductRepository) Create(ctx context.Context, product *domain.Product) (string, error) {
	doc := productDocument{
		Title:       product.Title,
		Description: product.Description,
		Slug:        product.Slug,
		Price:       product.Price,
		Categories:  product.Categories,
		Tags:        product.Tags,
		CreatedAt:   product.CreatedAt,
	}

	result, err := m.products.InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("failed to insert product: %w", err)
	}

	id, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected inserted id type %T", result.InsertedID)
	}
	return id.Hex(), nil
}

func (m mongoProductRepository) BySlug(ctx context.Context, slug string) (*domain.Product, error) {
	var doc productDocument
	err := m.products.FindOne(ctx, bson.M{"slug": slug}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	product := doc.toDomain()
	return &product, nil
}

func (m mongoProductRepository) BySlugs(ctx context.Context, slugs []string) ([]domain.Product, error) {
	if len(slugs) == 0 {
		return nil, nil
	}
	return m.find(ctx, bson.M{"slug": bson.M{"$in": slugs}})
}

func (m mongoProductRepository) ByIDs(ctx context.Context, ids []string) ([]domain.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	objectIDs := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			// A malformed id can never resolve; treat it like a deleted product.
			continue
		}
		objectIDs = append(objectIDs, oid)
	}

	return m.find(ctx, bson.M{"_id": bson.M{"$in": objectIDs}})
}

func (m mongoProductRepository) List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	query := bson.M{}
	if filter.Tag != "" {
		query["tags"] = filter.Tag
	}
	if filter.Category != "" {
		query["category_ids.title"] = filter.Category
	}

	priceRange := bson.M{}
	if filter.PriceLT != nil {
		priceRange["$lt"] = *filter.PriceLT
	}
	if filter.PriceGT != nil {
		priceRange["$gt"] = *filter.PriceGT
	}
	if len(priceRange) > 0 {
		query["price.retail"] = priceRange
	}

	return m.find(ctx, query)
}

func (m mongoProductRepository) find(ctx context.Context, query bson.M) ([]domain.Product, error) {
	cursor, err := m.products.Find(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []productDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}

	products := make([]domain.Product, 0, len(docs))
	for _, doc := range docs {
		products = append(products, doc.toDomain())
	}
	return products, nil
}

func (m mongoProductRepository) Update(ctx context.Context, slug string, patch domain.ProductPatch) (*domain.Product, error) {
	set := bson.M{}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.Retail != nil {
		set["price.retail"] = *patch.Retail
	}
	if patch.Wholesale != nil {
		set["price.wholesale"] = *patch.Wholesale
	}
	if patch.Tags != nil {
		set["tags"] = *patch.Tags
	}

	return m.findOneAndUpdate(ctx, slug, bson.M{"$set": set})
}

func (m mongoProductRepository) AddComment(ctx context.Context, slug string, comment domain.Comment) (*domain.Product, error) {
	return m.findOneAndUpdate(ctx, slug, bson.M{"$push": bson.M{"comments": comment}})
}

func (m mongoProductRepository) findOneAndUpdate(ctx context.Context, slug string, update bson.M) (*domain.Product, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc productDocument
	err := m.products.FindOneAndUpdate(ctx, bson.M{"slug": slug}, update, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	product := doc.toDomain()
	return &product, nil
}

func (m mongoProductRepository) Delete(ctx context.Context, slug string) error {
	result, err := m.products.DeleteOne(ctx, bson.M{"slug": slug})
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (m mongoProductRepository) CategoriesByTitle(ctx context.Context, titles []string) ([]domain.CategoryRef, error) {
	if len(titles) == 0 {
		return nil, nil
	}

	cursor, err := m.categories.Find(ctx, bson.M{"title": bson.M{"$in": titles}})
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []categoryDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode categories: %w", err)
	}

	refs := make([]domain.CategoryRef, 0, len(docs))
	for _, doc := range docs {
		refs = append(refs, domain.CategoryRef{ID: doc.ID.Hex(), Title: doc.Title})
	}
	return refs, nil
}

func (m mongoProductRepository) RemoveStaleNewTags(ctx context.Context, olderThan time.Time) (int64, error) {
	result, err := m.products.UpdateMany(ctx,
		bson.M{"tags": "new", "created_at": bson.M{"$lt": olderThan}},
		bson.M{"$pull": bson.M{"tags": "new"}},
	)
	if err != nil {
		return 0, fmt.Errorf("failed to remove stale tags: %w", err)
	}
	return result.ModifiedCount, nil
}
