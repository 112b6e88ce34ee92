package services

import (
	"context"
	"errors"
	"io"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	apperrors "github.com/menswear/storefront/errors"
	"github.com/menswear/storefront/models"
	"github.com/menswear/storefront/repository"
	"github.com/menswear/storefront/storage"
)

// CatalogStore is the persistence surface for the product catalog.
type CatalogStore interface {
	Find(ctx context.Context, category models.Category) ([]models.Product, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, id primitive.ObjectID, updates bson.M) (*models.Product, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
}

// ImageUpload carries an opened multipart image file into the service.
type ImageUpload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

// CreateProductInput is the validated create payload.
type CreateProductInput struct {
	Name        string
	Category    models.Category
	SleeveType  models.SleeveType
	Price       float64
	Description string
	Sizes       []string
	Colors      []string
	Stock       int
	Image       *ImageUpload
}

// UpdateProductInput is a partial update; nil fields are left untouched.
type UpdateProductInput struct {
	Name        *string
	Category    *models.Category
	SleeveType  *models.SleeveType
	Price       *float64
	Description *string
	Sizes       *[]string
	Colors      *[]string
	Stock       *int
	Image       *ImageUpload
}

type ProductService struct {
	catalog CatalogStore
	images  storage.ImageStore
}

func NewProductService(catalog CatalogStore, images storage.ImageStore) *ProductService {
	return &ProductService{catalog: catalog, images: images}
}

// List returns products newest-first, optionally filtered by category.
func (s *ProductService) List(ctx context.Context, category string) ([]models.Product, error) {
	cat := models.Category(category)
	if category != "" && !cat.Valid() {
		return nil, apperrors.Validation("Unknown category")
	}

	products, err := s.catalog.Find(ctx, cat)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return products, nil
}

// Get returns one product. An unknown id is a not-found error, distinct
// from a malformed id.
func (s *ProductService) Get(ctx context.Context, id string) (*models.Product, error) {
	productID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.Validation("Invalid product id")
	}

	product, err := s.catalog.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("Product not found")
		}
		return nil, apperrors.Internal(err)
	}
	return product, nil
}

// Create validates and persists a new product, storing its image first
// when one is attached.
func (s *ProductService) Create(ctx context.Context, input CreateProductInput) (*models.Product, error) {
	if input.Name == "" || input.Description == "" {
		return nil, apperrors.Validation("Name and description are required")
	}
	if !input.Category.Valid() {
		return nil, apperrors.Validation("Unknown category")
	}
	if input.Price <= 0 {
		return nil, apperrors.Validation("Price must be positive")
	}
	if input.Stock < 0 {
		return nil, apperrors.Validation("Stock cannot be negative")
	}
	if err := validateSleeveType(input.Category, input.SleeveType); err != nil {
		return nil, err
	}

	imageRef := ""
	if input.Image != nil {
		ref, err := s.saveImage(ctx, input.Image)
		if err != nil {
			return nil, err
		}
		imageRef = ref
	}

	product := &models.Product{
		Name:        input.Name,
		Category:    input.Category,
		SleeveType:  input.SleeveType,
		Price:       input.Price,
		Image:       imageRef,
		Description: input.Description,
		Sizes:       emptyIfNil(input.Sizes),
		Colors:      emptyIfNil(input.Colors),
		Stock:       input.Stock,
	}

	if err := s.catalog.Create(ctx, product); err != nil {
		s.removeImage(ctx, imageRef)
		return nil, apperrors.Internal(err)
	}
	return product, nil
}

// Update applies a partial update; only supplied fields change. A
// replacement image displaces the stored one.
func (s *ProductService) Update(ctx context.Context, id string, input UpdateProductInput) (*models.Product, error) {
	productID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.Validation("Invalid product id")
	}

	existing, err := s.catalog.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("Product not found")
		}
		return nil, apperrors.Internal(err)
	}

	updates := bson.M{}
	if input.Name != nil {
		if *input.Name == "" {
			return nil, apperrors.Validation("Name cannot be empty")
		}
		updates["name"] = *input.Name
	}

	category := existing.Category
	if input.Category != nil {
		if !input.Category.Valid() {
			return nil, apperrors.Validation("Unknown category")
		}
		category = *input.Category
		updates["category"] = category
	}
	if input.SleeveType != nil {
		if err := validateSleeveType(category, *input.SleeveType); err != nil {
			return nil, err
		}
		updates["sleeve_type"] = *input.SleeveType
	}
	if input.Price != nil {
		if *input.Price <= 0 {
			return nil, apperrors.Validation("Price must be positive")
		}
		updates["price"] = *input.Price
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.Sizes != nil {
		updates["sizes"] = emptyIfNil(*input.Sizes)
	}
	if input.Colors != nil {
		updates["colors"] = emptyIfNil(*input.Colors)
	}
	if input.Stock != nil {
		if *input.Stock < 0 {
			return nil, apperrors.Validation("Stock cannot be negative")
		}
		updates["stock"] = *input.Stock
	}

	if input.Image != nil {
		ref, err := s.saveImage(ctx, input.Image)
		if err != nil {
			return nil, err
		}
		updates["image"] = ref
	}

	updated, err := s.catalog.Update(ctx, productID, updates)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("Product not found")
		}
		return nil, apperrors.Internal(err)
	}

	if input.Image != nil && existing.Image != "" {
		s.removeImage(ctx, existing.Image)
	}
	return updated, nil
}

// Delete removes a product and its stored image, tolerating an image
// that no longer exists.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	productID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperrors.Validation("Invalid product id")
	}

	product, err := s.catalog.Delete(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound("Product not found")
		}
		return apperrors.Internal(err)
	}

	s.removeImage(ctx, product.Image)
	return nil
}

func (s *ProductService) saveImage(ctx context.Context, upload *ImageUpload) (string, error) {
	ref, err := s.images.Save(ctx, upload.Filename, upload.ContentType, upload.Body)
	if err != nil {
		if errors.Is(err, storage.ErrUnsupportedType) {
			return "", apperrors.Validation("Only image files are allowed")
		}
		if errors.Is(err, storage.ErrFileTooLarge) {
			return "", apperrors.Validation("File too large")
		}
		return "", apperrors.Internal(err)
	}
	return ref, nil
}

func (s *ProductService) removeImage(ctx context.Context, ref string) {
	if ref == "" {
		return
	}
	if err := s.images.Remove(ctx, ref); err != nil {
		zap.L().Warn("failed to remove product image", zap.String("ref", ref), zap.Error(err))
	}
}

func validateSleeveType(category models.Category, sleeve models.SleeveType) error {
	if sleeve == "" {
		return nil
	}
	if !sleeve.Valid() {
		return apperrors.Validation("Unknown sleeve type")
	}
	if !category.AllowsSleeveType() {
		return apperrors.Validation("Sleeve type applies only to shirts and tshirts")
	}
	return nil
}

func emptyIfNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
