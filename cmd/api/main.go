package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/agenda-sync/internal/config"
	dbpkg "github.com/BruksfildServices01/agenda-sync/internal/db"
	"github.com/BruksfildServices01/agenda-sync/internal/logging"
	"github.com/BruksfildServices01/agenda-sync/internal/middleware"
	"github.com/BruksfildServices01/agenda-sync/internal/routes"
)

func main() {

	cfg := config.Load()
	logger := logging.New("info")

	db := dbpkg.NewDB(cfg)
	rdb := dbpkg.NewRedis(cfg)

	if rdb == nil {
		logger.Info("redis not configured, realtime falls back to polling",
			"poll_interval_secs", cfg.PollIntervalSecs,
		)
	}

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, rdb, cfg, logger)

	logger.Info("server starting", "addr", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		logger.Error("server stopped", "err", err)
	}
}
