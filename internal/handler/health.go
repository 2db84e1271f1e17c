package handler

import (
	"wallet-keycore/internal/handler/response"

	"github.com/gin-gonic/gin"
)

// Version 构建时可通过 -ldflags 覆盖
var Version = "1.0.0"

// HealthCheck 服务存活检查
// @Tags system
// @Produce  json
// @Success 200 {object} response.Response
// @Router /health [get]
func HealthCheck(c *gin.Context) {
	response.Success(c, gin.H{
		"status":  "UP",
		"version": Version,
		"service": "wallet-keycore",
	})
}
