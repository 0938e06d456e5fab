package routes

import (
	"storefront-admin/apiclient"
	"storefront-admin/handlers"
	"storefront-admin/middleware"
	"storefront-admin/preview"
	"storefront-admin/session"
	"storefront-admin/utils"
	"storefront-admin/variantform"

	"github.com/gin-gonic/gin"
)

// Dependencies are the shared services the handlers are built from.
type Dependencies struct {
	API          *apiclient.Client
	Sessions     *session.Store
	Drafts       *utils.DraftStore
	Previews     *preview.Registry
	LoginLimiter *middleware.RateLimiter
}

func SetupRoutes(r *gin.Engine, deps Dependencies) {
	// Initialize handlers
	authHandler := &handlers.AuthHandler{API: deps.API, Sessions: deps.Sessions, Drafts: deps.Drafts}
	categoryHandler := &handlers.CategoryHandler{API: deps.API, Sessions: deps.Sessions}
	productHandler := &handlers.ProductHandler{API: deps.API, Sessions: deps.Sessions}
	articleHandler := &handlers.ArticleHandler{API: deps.API, Sessions: deps.Sessions}
	previewHandler := &handlers.PreviewHandler{Drafts: deps.Drafts}
	draftHandler := &handlers.ProductDraftHandler{
		API:       deps.API,
		Sessions:  deps.Sessions,
		Drafts:    deps.Drafts,
		Previews:  deps.Previews,
		Submitter: &variantform.Submitter{API: deps.API},
	}

	requireSession := middleware.SessionMiddleware(deps.Sessions)

	// Public routes
	api := r.Group("/api")
	{
		if deps.LoginLimiter != nil {
			api.POST("/auth/login", deps.LoginLimiter.Middleware(), authHandler.Login)
		} else {
			api.POST("/auth/login", authHandler.Login)
		}

		api.GET("/categories", categoryHandler.GetCategories)
		api.GET("/categories/slug-preview", categoryHandler.SlugPreview)
	}

	// Session routes
	protected := api.Group("")
	protected.Use(requireSession)
	{
		protected.POST("/auth/logout", authHandler.Logout)
		protected.GET("/auth/profile", authHandler.GetProfile)
	}

	// Admin routes (require admin role)
	admin := api.Group("/admin")
	admin.Use(requireSession)
	admin.Use(middleware.AdminMiddleware())
	{
		// Category management
		admin.POST("/categories", categoryHandler.CreateCategory)
		admin.DELETE("/categories/:id", categoryHandler.DeleteCategory)

		// Product list and detail
		admin.GET("/products", productHandler.GetProducts)
		admin.GET("/products/:slug", productHandler.GetProduct)
		admin.DELETE("/products/:id", productHandler.DeleteProduct)

		// Product create/edit form
		drafts := admin.Group("/product-drafts")
		drafts.POST("", draftHandler.CreateDraft)
		drafts.POST("/edit", draftHandler.EditDraft)
		drafts.GET("/:id", draftHandler.GetDraft)
		drafts.DELETE("/:id", draftHandler.DiscardDraft)
		drafts.PATCH("/:id/fields", draftHandler.UpdateFields)
		drafts.PUT("/:id/banner", draftHandler.UploadBanner)
		drafts.POST("/:id/variants", draftHandler.AddVariant)
		drafts.PATCH("/:id/variants/:variant", draftHandler.UpdateVariant)
		drafts.DELETE("/:id/variants/:variant", draftHandler.RemoveVariant)
		drafts.PUT("/:id/variants/:variant/image", draftHandler.UploadVariantImage)
		drafts.POST("/:id/variants/:variant/sizes", draftHandler.AddSize)
		drafts.PATCH("/:id/variants/:variant/sizes/:size", draftHandler.UpdateSize)
		drafts.DELETE("/:id/variants/:variant/sizes/:size", draftHandler.RemoveSize)
		drafts.POST("/:id/submit", draftHandler.Submit)

		// Article management
		admin.GET("/articles", articleHandler.GetArticles)
		admin.GET("/articles/:id", articleHandler.GetArticle)
		admin.POST("/articles", articleHandler.CreateArticle)
		admin.PUT("/articles/:id", articleHandler.UpdateArticle)
		admin.DELETE("/articles/:id", articleHandler.DeleteArticle)
	}

	// Local image previews of unsaved drafts
	r.GET(preview.URLPrefix+":id", requireSession, previewHandler.GetPreview)

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
}
