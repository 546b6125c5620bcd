package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/users-auth-api/internal/interface/http"
	"github.com/oksasatya/users-auth-api/internal/interface/middleware"
	"github.com/oksasatya/users-auth-api/pkg/helpers"
)

// UserModule wires the users resource and the bearer-protected profile.
// Public: GET/POST /users, PUT/DELETE /users/:id, GET /users/search
// Protected: GET /profile
type UserModule struct {
	Handler *handlers.UserHandler
	JWT     *helpers.JWTManager
	Redis   *redis.Client
}

func NewUserModule(h *handlers.UserHandler, jwt *helpers.JWTManager, rdb *redis.Client) *UserModule {
	return &UserModule{Handler: h, JWT: jwt, Redis: rdb}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	rg.GET("/users", m.Handler.List)
	rg.POST("/users", m.Handler.Create)
	rg.GET("/users/search", m.Handler.Search)
	rg.PUT("/users/:id", m.Handler.Update)
	rg.DELETE("/users/:id", m.Handler.Delete)

	auth := rg.Group("/")
	auth.Use(
		middleware.JWTAuth(m.JWT),
		middleware.RateLimit(m.Redis, 120, time.Minute, middleware.KeyByUserID(), nil),
	)
	{
		auth.GET("/profile", m.Handler.Profile)
	}
}
