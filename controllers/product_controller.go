package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apperrors "github.com/menswear/storefront/errors"
	"github.com/menswear/storefront/models"
	"github.com/menswear/storefront/services"
	"github.com/menswear/storefront/storage"
)

// ProductAPI is the catalog service surface the controller depends on.
type ProductAPI interface {
	List(ctx context.Context, category string) ([]models.Product, error)
	Get(ctx context.Context, id string) (*models.Product, error)
	Create(ctx context.Context, input services.CreateProductInput) (*models.Product, error)
	Update(ctx context.Context, id string, input services.UpdateProductInput) (*models.Product, error)
	Delete(ctx context.Context, id string) error
}

type ProductController struct {
	service ProductAPI
}

func NewProductController(service ProductAPI) *ProductController {
	return &ProductController{service: service}
}

// GetProducts lists products, optionally filtered by category.
func (pc *ProductController) GetProducts(c *gin.Context) {
	products, err := pc.service.List(c.Request.Context(), c.Query("category"))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// GetProductByID returns a single product.
func (pc *ProductController) GetProductByID(c *gin.Context) {
	product, err := pc.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// CreateProduct creates a product from a multipart form, storing the
// optional image file. sizes and colors arrive as JSON-encoded arrays
// within form fields.
func (pc *ProductController) CreateProduct(c *gin.Context) {
	price, err := strconv.ParseFloat(c.PostForm("price"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid price"})
		return
	}
	stock, err := strconv.Atoi(c.PostForm("stock"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid stock"})
		return
	}

	sizes, err := parseStringList(c.PostForm("sizes"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "sizes must be a JSON array"})
		return
	}
	colors, err := parseStringList(c.PostForm("colors"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "colors must be a JSON array"})
		return
	}

	upload, closeUpload, err := imageFromForm(c)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	defer closeUpload()

	input := services.CreateProductInput{
		Name:        c.PostForm("name"),
		Category:    models.Category(c.PostForm("category")),
		SleeveType:  models.SleeveType(c.PostForm("sleeve_type")),
		Price:       price,
		Description: c.PostForm("description"),
		Sizes:       sizes,
		Colors:      colors,
		Stock:       stock,
		Image:       upload,
	}

	product, err := pc.service.Create(c.Request.Context(), input)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	zap.L().Info("product created", zap.String("id", product.ID.Hex()), zap.String("name", product.Name))
	c.JSON(http.StatusCreated, gin.H{
		"message": "Product created successfully",
		"product": product,
	})
}

// UpdateProduct applies a partial update; only form fields that are
// present change the product.
func (pc *ProductController) UpdateProduct(c *gin.Context) {
	var input services.UpdateProductInput

	if v, ok := c.GetPostForm("name"); ok {
		input.Name = &v
	}
	if v, ok := c.GetPostForm("category"); ok {
		cat := models.Category(v)
		input.Category = &cat
	}
	if v, ok := c.GetPostForm("sleeve_type"); ok {
		sleeve := models.SleeveType(v)
		input.SleeveType = &sleeve
	}
	if v, ok := c.GetPostForm("description"); ok {
		input.Description = &v
	}
	if v, ok := c.GetPostForm("price"); ok {
		price, err := strconv.ParseFloat(v, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid price"})
			return
		}
		input.Price = &price
	}
	if v, ok := c.GetPostForm("stock"); ok {
		stock, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid stock"})
			return
		}
		input.Stock = &stock
	}
	if v, ok := c.GetPostForm("sizes"); ok {
		sizes, err := parseStringList(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "sizes must be a JSON array"})
			return
		}
		input.Sizes = &sizes
	}
	if v, ok := c.GetPostForm("colors"); ok {
		colors, err := parseStringList(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "colors must be a JSON array"})
			return
		}
		input.Colors = &colors
	}

	upload, closeUpload, err := imageFromForm(c)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	defer closeUpload()
	input.Image = upload

	product, err := pc.service.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product updated successfully",
		"product": product,
	})
}

// DeleteProduct removes a product and its stored image.
func (pc *ProductController) DeleteProduct(c *gin.Context) {
	if err := pc.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

// parseStringList decodes a JSON-encoded string array from a form
// field. An empty field yields an empty list.
func parseStringList(raw string) ([]string, error) {
	if raw == "" {
		return []string{}, nil
	}
	var values []string
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return nil, err
	}
	return values, nil
}

// imageFromForm extracts the optional "image" file from a multipart
// form, enforcing the upload size cap. The returned closer is a no-op
// when no file was sent.
func imageFromForm(c *gin.Context) (*services.ImageUpload, func(), error) {
	noop := func() {}

	fh, err := c.FormFile("image")
	if err == http.ErrMissingFile || err == multipart.ErrMessageTooLarge {
		if err == multipart.ErrMessageTooLarge {
			return nil, noop, apperrors.Validation("File too large")
		}
		return nil, noop, nil
	}
	if err != nil {
		// No multipart body at all is fine; the image is optional.
		return nil, noop, nil
	}

	if fh.Size > storage.MaxImageSize {
		return nil, noop, apperrors.Validation("File too large")
	}

	file, err := fh.Open()
	if err != nil {
		return nil, noop, apperrors.Internal(fmt.Errorf("open upload: %w", err))
	}

	return &services.ImageUpload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Body:        file,
	}, func() { file.Close() }, nil
}
