package cache

import (
	"context"
	"fmt"
	"net"
	"time"

	"go-telemedicine/config"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const connectTimeout = 5 * time.Second

// NewRedisClient connects the session store backend and fails fast when the
// server does not answer a PING within connectTimeout.
func NewRedisClient(cfg config.RedisConfig, log *logrus.Logger) (*redis.Client, error) {
	addr := net.JoinHostPort(cfg.Host, cfg.Port)
	client := redis.NewClient(&redis.Options{
		Addr:        addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		ClientName:  "telemedicine-sessions",
		DialTimeout: connectTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis at %s: %w", addr, err)
	}

	log.WithFields(logrus.Fields{"addr": addr, "db": cfg.DB}).Info("Redis session store ready")
	return client, nil
}
