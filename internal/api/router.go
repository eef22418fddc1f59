package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Wizzel1/cuppl-sub000/internal/auth"
	"github.com/Wizzel1/cuppl-sub000/internal/config"
	"github.com/Wizzel1/cuppl-sub000/internal/handlers"
	"github.com/Wizzel1/cuppl-sub000/internal/recurrence"
	"github.com/Wizzel1/cuppl-sub000/internal/reminders"
	"github.com/Wizzel1/cuppl-sub000/internal/store"
	"github.com/Wizzel1/cuppl-sub000/internal/websocket"
)

func SetupRouter(st store.Store, cfg *config.Config, hub *websocket.Hub, engine *recurrence.Engine, scheduler *reminders.Scheduler) *gin.Engine {
	router := gin.Default()

	// Custom CORS middleware
	router.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		allowed := false
		for _, allowedOrigin := range cfg.CORS.AllowedOrigins {
			if origin == allowedOrigin {
				allowed = true
				break
			}
		}

		if allowed {
			c.Header("Access-Control-Allow-Origin", origin)
		}
		c.Header("Access-Control-Allow-Credentials", "true")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Length, Content-Type, Authorization")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(cfg.JWT)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(st, jwtManager)
	coupleHandler := handlers.NewCoupleHandler(st, hub)
	listHandler := handlers.NewListHandler(st, hub)
	itemHandler := handlers.NewItemHandler(st, engine, scheduler, hub)
	notificationHandler := handlers.NewNotificationHandler(st)
	wsHandler := handlers.NewWebSocketHandler(hub)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public routes
	api := router.Group("/api")
	{
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
		}
	}

	// Protected routes
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(jwtManager))
	{
		accounts := protected.Group("/accounts")
		{
			accounts.GET("/me", authHandler.GetCurrentAccount)
		}

		couple := protected.Group("/couple")
		{
			couple.POST("", coupleHandler.CreateCouple)
			couple.GET("", coupleHandler.GetCurrentCouple)
			couple.PUT("/profile", coupleHandler.UpdateProfile)
			couple.PUT("/background", coupleHandler.SetBackground)
			couple.POST("/invite", coupleHandler.GenerateInvite)
			couple.POST("/join", coupleHandler.JoinCouple)
		}

		lists := protected.Group("/lists")
		{
			lists.GET("", listHandler.GetLists)
			lists.POST("", listHandler.CreateList)
			lists.GET("/:id", listHandler.GetList)
			lists.PUT("/:id", listHandler.UpdateList)
			lists.DELETE("/:id", listHandler.DeleteList)
		}

		// Item routes - using consistent :id parameter
		items := protected.Group("/lists/:id/items")
		{
			items.GET("", itemHandler.GetItems)
			items.POST("", itemHandler.CreateItem)
			items.PUT("/:itemId", itemHandler.UpdateItem)
			items.POST("/:itemId/toggle", itemHandler.ToggleItem)
			items.DELETE("/:itemId", itemHandler.DeleteItem)
		}

		// Notification routes
		notifications := protected.Group("/notifications")
		{
			notifications.GET("", notificationHandler.GetNotifications)
			notifications.GET("/unread-count", notificationHandler.GetUnreadCount)
			notifications.POST("/:id/read", notificationHandler.MarkRead)
			notifications.POST("/read-all", notificationHandler.MarkAllRead)
		}

		// WebSocket routes
		ws := protected.Group("/ws")
		{
			ws.GET("", wsHandler.HandleWebSocket)
			ws.GET("/online", wsHandler.GetOnlineAccounts)
		}
	}

	return router
}
