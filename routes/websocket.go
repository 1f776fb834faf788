package routes

import (
	"github.com/NguyenHongSon4/app-02/services"
	"github.com/gin-gonic/gin"
)

// RegisterWebSocketRoutes exposes the change feed
func RegisterWebSocketRoutes(router *gin.Engine, wsService services.WebSocketServiceInterface) {
	router.GET("/ws", func(c *gin.Context) {
		wsService.HandleConnection(c)
	})
}
