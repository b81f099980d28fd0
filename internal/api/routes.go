package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"propkpi/server/config"
)

func SetupRoutes(router *gin.Engine, logger *logrus.Logger) {
	handler := NewHandler(logger)

	api := router.Group("/api")
	{
		api.GET("/defaults", handler.GetDefaults)
		api.POST("/kpis", handler.ComputeKPIs)
		api.POST("/compare", handler.CompareProperties)
		api.GET("/dscr/status", handler.GetDSCRStatus)
	}
}

// CORSMiddleware builds the CORS handler for the configured origins.
func CORSMiddleware(cfg *config.Config) gin.HandlerFunc {
	corsConfig := cors.Config{
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
	}
	if cfg.AllowsAnyOrigin() {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.Server.AllowedOrigins
	}
	return cors.New(corsConfig)
}
