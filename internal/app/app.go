package app

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/hushryd/authsvc/internal/config"
	httpx "github.com/hushryd/authsvc/internal/http"
	"github.com/hushryd/authsvc/internal/http/handlers"
	"github.com/hushryd/authsvc/internal/http/middleware"
)

func Run(cfg *config.Config) error {
	logger := logrus.New()
	if cfg.GinMode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	container, err := NewContainer(cfg, logger)
	if err != nil {
		return err
	}
	defer container.Close()

	if err := container.RedisClient.Ping(context.Background()).Err(); err != nil {
		return err
	}

	httpx.RegisterValidators()

	authH := handlers.NewAuthHandlers(container.AuthSvc, container.OTPSvc, container.UserRepo, logger, cfg.DevMode)
	authMW := middleware.AuthMiddleware(container.TokenSvc, container.SessionRepo)

	r := httpx.BuildRouter(authH, authMW)

	if cfg.DevMode {
		logger.Warn("dev mode enabled: OTP codes are echoed in responses")
	}

	addr := ":" + cfg.Port
	logger.WithField("addr", addr).Info("listening")
	return http.ListenAndServe(addr, r)
}
