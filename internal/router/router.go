package router

import (
	"html/template"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "medclaim/docs" // registers the OpenAPI document
	"medclaim/internal/handler"
	"medclaim/internal/middleware"
)

// Handlers groups the HTTP handlers mounted by Setup.
type Handlers struct {
	Claim   *handler.ClaimHandler
	History *handler.ClaimHistoryHandler
	Health  *handler.HealthHandler
	UI      *handler.UIHandler
}

// Setup configures the Gin engine with all routes and middleware.
func Setup(h Handlers, pages *template.Template, allowedOrigins []string) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(allowedOrigins))

	r.SetHTMLTemplate(pages)

	// Health checks
	r.GET("/healthz", h.Health.Liveness)
	r.GET("/readyz", h.Health.Readiness)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Upload page
	r.GET("/", h.UI.Index)
	r.POST(handler.UISubmitPath, h.UI.Submit)

	r.POST("/process-claim", h.Claim.Process)

	v1 := r.Group("/api/v1")
	claims := v1.Group("/claims")
	claims.GET("", h.History.List)
	claims.GET("/export", h.History.Export)
	claims.GET("/:id", h.History.GetByID)

	return r
}
