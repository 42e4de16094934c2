package handler

import (
	"main/services"
	"main/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports process and dependency health.
func HealthHandler(c *gin.Context) {
	redisUp := false
	if services.TokenBlacklist != nil {
		redisUp = services.TokenBlacklist.IsConnected()
	}

	utils.Success(c, gin.H{
		"status":      "ok",
		"cpu_percent": utils.GetCPUUsage(),
		"mongo":       utils.PingMongo(),
		"redis":       redisUp,
	})
}
