package routes

import (
	"catalog-service/controllers"
	"catalog-service/models"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires every API route to its controller. Taxonomy kinds each
// get their own route group backed by the shared handler set.
func RegisterRoutes(
	r *gin.Engine,
	products *controllers.ProductController,
	taxonomies *controllers.TaxonomyController,
	seos *controllers.SeoController,
) {
	api := r.Group("/api")

	productRoutes := api.Group("/product")
	{
		productRoutes.GET("/", products.List)
		productRoutes.GET("/view/:id", products.GetByID)
		productRoutes.POST("/addproduct", products.Create)
		productRoutes.PUT("/update/:id", products.Update)
		productRoutes.DELETE("/delete/:id", products.Delete)
		productRoutes.GET("/search/:q", products.Search)
		productRoutes.GET("/slug/:slug", products.BySlug)

		// Lookups by taxonomy reference.
		productRoutes.GET("/category/:id", products.ByReference("category"))
		productRoutes.GET("/structure/:id", products.ByReference("substructure"))
		productRoutes.GET("/content/:id", products.ByReference("content"))
		productRoutes.GET("/finish/:id", products.ByReference("subfinish"))
		productRoutes.GET("/design/:id", products.ByReference("design"))
		productRoutes.GET("/color/:id", products.ByReference("color"))
		productRoutes.GET("/motif/:id", products.ByReference("motif"))
		productRoutes.GET("/suitable/:id", products.ByReference("subsuitable"))
		productRoutes.GET("/vendor/:id", products.ByReference("vendor"))
		productRoutes.GET("/groupcode/:id", products.ByReference("groupcode"))

		// Numeric proximity lookups.
		productRoutes.GET("/gsm/:value", products.ByRange("gsm"))
		productRoutes.GET("/oz/:value", products.ByRange("oz"))
		productRoutes.GET("/cm/:value", products.ByRange("cm"))
		productRoutes.GET("/inch/:value", products.ByRange("inch"))
		productRoutes.GET("/quantity/:value", products.ByRange("quantity"))
	}

	for _, kind := range models.AllTaxonomyKinds() {
		group := api.Group("/" + string(kind))
		{
			group.GET("/", taxonomies.List(kind))
			group.GET("/view/:id", taxonomies.GetByID(kind))
			group.POST("/add", taxonomies.Create(kind))
			group.PUT("/update/:id", taxonomies.Update(kind))
			group.DELETE("/delete/:id", taxonomies.Delete(kind))
		}
	}

	seoRoutes := api.Group("/seo")
	{
		seoRoutes.GET("/", seos.List)
		seoRoutes.GET("/view/:id", seos.GetByID)
		seoRoutes.GET("/slug/:slug", seos.GetBySlug)
		seoRoutes.POST("/add", seos.Create)
		seoRoutes.PUT("/update/:id", seos.Update)
		seoRoutes.DELETE("/delete/:id", seos.Delete)
	}
}
