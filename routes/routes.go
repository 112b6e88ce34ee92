package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/menswear/storefront/controllers"
	"github.com/menswear/storefront/middleware"
	"github.com/menswear/storefront/services"
)

// Controllers bundles every controller the router mounts.
type Controllers struct {
	Auth    *controllers.AuthController
	Product *controllers.ProductController
	Cart    *controllers.CartController
	Order   *controllers.OrderController
	Admin   *controllers.AdminController
	Upload  *controllers.UploadController
}

// Register mounts all API routes. Catalog reads are public; cart and
// checkout require a logged-in user; catalog mutation, order
// administration and stats require the admin role.
func Register(r *gin.Engine, ctrl Controllers, tokens *services.TokenService) {
	api := r.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", ctrl.Auth.Register)
		auth.POST("/login", ctrl.Auth.Login)
	}

	products := api.Group("/products")
	{
		products.GET("", ctrl.Product.GetProducts)
		products.GET("/:id", ctrl.Product.GetProductByID)

		adminProducts := products.Group("", middleware.RequireAuth(tokens), middleware.RequireAdmin())
		{
			adminProducts.POST("", ctrl.Product.CreateProduct)
			adminProducts.PUT("/:id", ctrl.Product.UpdateProduct)
			adminProducts.DELETE("/:id", ctrl.Product.DeleteProduct)
		}
	}

	cart := api.Group("/cart", middleware.RequireAuth(tokens))
	{
		cart.GET("", ctrl.Cart.GetCart)
		cart.POST("/items", ctrl.Cart.AddItem)
		cart.PUT("/items", ctrl.Cart.UpdateItem)
		cart.DELETE("/items", ctrl.Cart.RemoveItem)
		cart.DELETE("", ctrl.Cart.ClearCart)
	}

	orders := api.Group("/orders", middleware.RequireAuth(tokens))
	{
		orders.POST("", ctrl.Order.CreateOrder)
		orders.GET("/user/:userId", ctrl.Order.GetUserOrders)

		adminOrders := orders.Group("", middleware.RequireAdmin())
		{
			adminOrders.GET("", ctrl.Order.GetAllOrders)
			adminOrders.PUT("/:id/status", ctrl.Order.UpdateStatus)
		}
	}

	admin := api.Group("/admin", middleware.RequireAuth(tokens), middleware.RequireAdmin())
	{
		admin.GET("/stats", ctrl.Admin.GetStats)
	}

	api.POST("/upload", middleware.RequireAuth(tokens), middleware.RequireAdmin(), ctrl.Upload.UploadImage)
}
