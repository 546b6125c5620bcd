package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/users-auth-api/internal/interface/http"
	"github.com/oksasatya/users-auth-api/internal/interface/middleware"
)

// AuthModule registers the public credential routes:
// POST /register, POST /login, both rate limited per IP when Redis is set.
type AuthModule struct {
	Handler       *handlers.AuthHandler
	Redis         *redis.Client
	LoginLimit    int
	RegisterLimit int
	Window        time.Duration
	Allow         middleware.AllowFunc
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	loginLimiter := middleware.RateLimit(m.Redis, m.LoginLimit, m.Window, middleware.KeyByIPAndPath(), m.Allow)
	registerLimiter := middleware.RateLimit(m.Redis, m.RegisterLimit, m.Window, middleware.KeyByIPAndPath(), m.Allow)

	rg.POST("/register", registerLimiter, m.Handler.Register)
	rg.POST("/login", loginLimiter, m.Handler.Login)
}
