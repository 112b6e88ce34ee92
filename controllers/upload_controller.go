package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/menswear/storefront/storage"
)

type UploadController struct {
	images storage.ImageStore
}

func NewUploadController(images storage.ImageStore) *UploadController {
	return &UploadController{images: images}
}

// UploadImage accepts one image file and returns its stored reference.
func (uc *UploadController) UploadImage(c *gin.Context) {
	fh, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "No file uploaded"})
		return
	}
	if fh.Size > storage.MaxImageSize {
		c.JSON(http.StatusBadRequest, gin.H{"message": "File too large"})
		return
	}

	file, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	defer file.Close()

	ref, err := uc.images.Save(c.Request.Context(), fh.Filename, fh.Header.Get("Content-Type"), file)
	if err != nil {
		if errors.Is(err, storage.ErrUnsupportedType) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Only image files are allowed"})
			return
		}
		if errors.Is(err, storage.ErrFileTooLarge) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "File too large"})
			return
		}
		zap.L().Error("image upload failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Image uploaded successfully",
		"imageUrl": ref,
	})
}
