package router

import (
	"github.com/oksasatya/users-auth-api/internal/application"
	"github.com/oksasatya/users-auth-api/internal/container"
	pginfra "github.com/oksasatya/users-auth-api/internal/infrastructure/postgres"
	handlers "github.com/oksasatya/users-auth-api/internal/interface/http"
	"github.com/oksasatya/users-auth-api/internal/interface/middleware"
	"github.com/oksasatya/users-auth-api/internal/router/modules"
)

// InitModules wires repositories, services and handlers from c and adds
// their modules to r. Call once during startup.
func InitModules(r *Registry, c *container.Container) {
	cfg := c.Config

	var events application.Publisher
	if c.Events != nil {
		events = c.Events
	}
	index := application.NewUserIndex(c.ES, cfg.ESUsersIndex, c.Logger)

	repo := pginfra.NewUserRepository(c.DB)
	userSvc := application.NewUserService(repo, c.Logger, events, index, cfg.BcryptCost)
	authSvc := application.NewAuthService(repo, c.JWT, c.Logger, events, index, cfg.BcryptCost)

	var allow middleware.AllowFunc
	if cfg.RateLimitAllowPrivate {
		allow = middleware.AllowPrivateIP()
	}

	r.Add(modules.NewHealthModule(handlers.NewHealthHandler()))
	r.Add(&modules.AuthModule{
		Handler:       handlers.NewAuthHandler(authSvc, c.Logger),
		Redis:         c.Redis,
		LoginLimit:    cfg.RateLimitLogin,
		RegisterLimit: cfg.RateLimitRegister,
		Window:        cfg.RateLimitWindow,
		Allow:         allow,
	})
	r.Add(modules.NewUserModule(handlers.NewUserHandler(userSvc, c.Logger), c.JWT, c.Redis))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule(c.Redis))
	}
}
