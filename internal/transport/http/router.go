package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/connect4-minimax/internal/transport/http/middleware"
)

type RouterConfig struct {
	AllowedOrigins []string
	AdminKeyHash   string

	Engine     *EngineHandler
	Games      *GameHandler
	Watch      *WatchHandler
	Simulation *SimulationHandler
	// WebSocket serves /ws; it authenticates inside the handler.
	WebSocket http.HandlerFunc
}

func NewRouter(rc RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(rc.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	{
		api.POST("/engine/move", rc.Engine.Move)
		api.POST("/games", rc.Games.CreateGame)
		api.GET("/games", rc.Watch.GetLiveGames)
		api.GET("/simulations/latest", rc.Simulation.Latest)
		api.GET("/simulations/:id", rc.Simulation.Get)

		admin := api.Group("/")
		admin.Use(middleware.AdminKeyMiddleware(rc.AdminKeyHash))
		admin.POST("/simulations", rc.Simulation.Run)
	}

	if rc.WebSocket != nil {
		router.GET("/ws", gin.WrapF(rc.WebSocket))
	}

	return router
}
