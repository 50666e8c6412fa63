package routes

import (
	"catalog-service/controllers"

	"github.com/gin-gonic/gin"
)

// RegisterCatalogRoutes sets up all catalog routes.
func RegisterCatalogRoutes(r *gin.Engine, pc *controllers.ProductController) {
	r.GET("/categories", pc.ListCategories)
	r.GET("/brands", pc.ListBrands)

	products := r.Group("/products")
	products.GET("", pc.ListProducts)
	products.GET("/search", pc.SearchProducts)
	products.GET("/:id", pc.GetProduct)
}
