package handler

import (
	"github.com/eventboard/backend/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type RouterDeps struct {
	Auth           *service.AuthService
	Events         *service.EventService
	Categories     *service.CategoryService
	Users          *service.UserService
	Store          pinger
	AllowedOrigins []string
}

// NewRouter wires every route. Reads are public; writes pass the auth gate.
func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(
		gin.Recovery(),
		RequestID(),
		RequestLogger(),
		MetricsMiddleware(),
		CORSMiddleware(deps.AllowedOrigins, true),
	)

	gate := AuthMiddleware(deps.Auth)

	r.GET("/", Root)
	r.GET("/ping", Ping)
	r.GET("/healthz", NewHealthHandler(deps.Store).Healthz)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/openapi.json", OpenAPIDoc)

	authH := NewAuthHandler(deps.Auth)
	r.POST("/login", authH.Login)
	auth := r.Group("/auth")
	auth.POST("/refresh", authH.Refresh)
	auth.POST("/logout", authH.Logout)
	auth.GET("/me", gate, authH.Me)

	eventH := NewEventHandler(deps.Events)
	events := r.Group("/events")
	events.GET("", eventH.ListEvents)
	events.GET("/:id", eventH.GetEvent)
	events.POST("", gate, eventH.CreateEvent)
	events.PUT("/:id", gate, eventH.UpdateEvent)
	events.DELETE("/:id", gate, eventH.DeleteEvent)

	categoryH := NewCategoryHandler(deps.Categories)
	categories := r.Group("/categories")
	categories.GET("", categoryH.ListCategories)
	categories.GET("/:id", categoryH.GetCategory)
	categories.POST("", gate, categoryH.CreateCategory)
	categories.PUT("/:id", gate, categoryH.UpdateCategory)
	categories.DELETE("/:id", gate, categoryH.DeleteCategory)

	userH := NewUserHandler(deps.Users)
	users := r.Group("/users")
	users.GET("", userH.ListUsers)
	users.GET("/:id", userH.GetUser)
	users.POST("", gate, userH.CreateUser)
	users.PUT("/:id", gate, userH.UpdateUser)
	users.DELETE("/:id", gate, userH.DeleteUser)

	return r
}
