package routes

import (
	"github.com/NguyenHongSon4/app-02/config"
	"github.com/NguyenHongSon4/app-02/database"
	"github.com/NguyenHongSon4/app-02/middleware"
	"github.com/NguyenHongSon4/app-02/services"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Services bundles the handlers' dependencies.
type Services struct {
	Notes     services.NoteServiceInterface
	Accounts  services.AccountServiceInterface
	Auth      services.AuthServiceInterface
	Uploads   services.UploadServiceInterface
	WebSocket services.WebSocketServiceInterface
}

func NewRouter(cfg config.Config, db *database.Database, svc Services) *gin.Engine {
	router := gin.Default()
	router.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))
	router.Use(middleware.MetricsMiddleware())

	router.Static(cfg.UploadURLPrefix, cfg.UploadDir)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	RegisterHealthRoutes(router, db)
	if svc.WebSocket != nil {
		RegisterWebSocketRoutes(router, svc.WebSocket)
	}

	api := router.Group("/api")
	RegisterNoteRoutes(api, db, svc.Notes)
	RegisterAccountRoutes(api, db, svc.Accounts)
	RegisterAuthRoutes(api, db, svc.Accounts, svc.Auth)
	RegisterUploadRoutes(api, svc.Uploads)

	return router
}
