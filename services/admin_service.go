package services

import (
	"context"

	apperrors "github.com/menswear/storefront/errors"
	"github.com/menswear/storefront/models"
)

const (
	// LowStockThreshold is the stock level below which a product is
	// flagged on the admin dashboard.
	LowStockThreshold = 10
	// RecentOrderLimit caps the recent-orders list in the stats view.
	RecentOrderLimit = 5
)

// CatalogCounter exposes the catalog aggregations the dashboard needs.
type CatalogCounter interface {
	Count(ctx context.Context) (int64, error)
	CountLowStock(ctx context.Context, threshold int) (int64, error)
	CategoryCounts(ctx context.Context) (map[models.Category]int64, error)
}

// OrderCounter exposes the order aggregations the dashboard needs.
type OrderCounter interface {
	Count(ctx context.Context) (int64, error)
	FindRecentWithBuyer(ctx context.Context, limit int64) ([]models.OrderWithBuyer, error)
}

// UserCounter counts users by role.
type UserCounter interface {
	CountByRole(ctx context.Context, role string) (int64, error)
}

// CategoryStat is one bar of the category histogram.
type CategoryStat struct {
	Category models.Category `json:"category"`
	Count    int64           `json:"count"`
}

// AdminStats is the dashboard rollup. It is derived on every request;
// nothing here is stored.
type AdminStats struct {
	TotalProducts    int64                   `json:"totalProducts"`
	TotalOrders      int64                   `json:"totalOrders"`
	TotalUsers       int64                   `json:"totalUsers"`
	LowStockProducts int64                   `json:"lowStockProducts"`
	CategoryStats    []CategoryStat          `json:"categoryStats"`
	RecentOrders     []models.OrderWithBuyer `json:"recentOrders"`
}

type AdminService struct {
	products CatalogCounter
	orders   OrderCounter
	users    UserCounter
}

func NewAdminService(products CatalogCounter, orders OrderCounter, users UserCounter) *AdminService {
	return &AdminService{products: products, orders: orders, users: users}
}

// Stats recomputes the dashboard rollup.
func (s *AdminService) Stats(ctx context.Context) (*AdminStats, error) {
	totalProducts, err := s.products.Count(ctx)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	totalOrders, err := s.orders.Count(ctx)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	totalUsers, err := s.users.CountByRole(ctx, models.RoleUser)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	lowStock, err := s.products.CountLowStock(ctx, LowStockThreshold)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	counts, err := s.products.CategoryCounts(ctx)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	categoryStats := make([]CategoryStat, 0, len(models.Categories))
	for _, category := range models.Categories {
		categoryStats = append(categoryStats, CategoryStat{Category: category, Count: counts[category]})
	}

	recent, err := s.orders.FindRecentWithBuyer(ctx, RecentOrderLimit)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	return &AdminStats{
		TotalProducts:    totalProducts,
		TotalOrders:      totalOrders,
		TotalUsers:       totalUsers,
		LowStockProducts: lowStock,
		CategoryStats:    categoryStats,
		RecentOrders:     recent,
	}, nil
}
