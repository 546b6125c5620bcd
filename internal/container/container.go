package container

import (
	"database/sql"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/users-auth-api/config"
	"github.com/oksasatya/users-auth-api/pkg/helpers"
)

// Container holds the components built at startup. It is constructed in
// main and passed explicitly to the router; optional clients may be nil.
type Container struct {
	Config *config.Config
	Logger *logrus.Logger
	Pool   *pgxpool.Pool
	DB     *sql.DB
	JWT    *helpers.JWTManager

	Redis  *redis.Client
	Events *helpers.RabbitPublisher
	ES     *elasticsearch.Client
}

// Close releases every client the container owns.
func (c *Container) Close() {
	if c == nil {
		return
	}
	if c.Events != nil {
		c.Events.Close()
	}
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
	if c.DB != nil {
		_ = c.DB.Close()
	}
	if c.Pool != nil {
		c.Pool.Close()
	}
}
