package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/users-auth-api/internal/interface/http"
)

type HealthModule struct {
	Handler *handlers.HealthHandler
}

func NewHealthModule(h *handlers.HealthHandler) *HealthModule {
	return &HealthModule{Handler: h}
}

func (m *HealthModule) Register(rg *gin.RouterGroup) {
	rg.GET("/test", m.Handler.Test)
	rg.GET("/test-login", m.Handler.TestLogin)
}
