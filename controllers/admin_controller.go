package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/menswear/storefront/errors"
	"github.com/menswear/storefront/services"
)

// AdminAPI is the admin service surface the controller depends on.
type AdminAPI interface {
	Stats(ctx context.Context) (*services.AdminStats, error)
}

type AdminController struct {
	service AdminAPI
}

func NewAdminController(service AdminAPI) *AdminController {
	return &AdminController{service: service}
}

// GetStats returns the dashboard rollup, recomputed per request.
func (ac *AdminController) GetStats(c *gin.Context) {
	stats, err := ac.service.Stats(c.Request.Context())
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
