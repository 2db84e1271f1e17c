package server

import (
	"wallet-keycore/internal/handler"
	"wallet-keycore/internal/handler/response"
	"wallet-keycore/pkg/errno"
	"wallet-keycore/pkg/monitor"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handlers 汇总各业务 Handler，由 main 构造后注入
type Handlers struct {
	Crypto   *handler.CryptoHandler
	Mnemonic *handler.MnemonicHandler
	KMS      *handler.KMSHandler
}

// NewHTTPRouter 初始化并返回一个 Gin Engine。
// gatherer 为 /metrics 暴露的指标来源，nil 时使用 prometheus.DefaultGatherer。
func NewHTTPRouter(h Handlers, metrics *monitor.Metrics, gatherer prometheus.Gatherer) *gin.Engine {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	// 1. 创建 Engine (使用默认中间件: Logger, Recovery)
	r := gin.Default()

	// 2. 注册通用中间件
	r.Use(metrics.Middleware())

	r.NoRoute(func(c *gin.Context) {
		response.Error(c, errno.ErrNotFound)
	})

	// 3. 注册基础路由
	r.GET("/health", handler.HealthCheck)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 4. 注册 API 路由组
	api := r.Group("/api/v1")
	{
		api.GET("/ping", func(c *gin.Context) {
			response.Success(c, gin.H{"pong": true})
		})

		api.POST("/hash", h.Crypto.Hash)
		api.POST("/pbkdf2", h.Crypto.PBKDF2)
		api.POST("/keys/public", h.Crypto.PublicKey)
		api.POST("/signature/recover", h.Crypto.Recover)

		mnemonic := api.Group("/mnemonic")
		mnemonic.POST("/generate", h.Mnemonic.Generate)
		mnemonic.POST("/validate", h.Mnemonic.Validate)
		mnemonic.POST("/entropy", h.Mnemonic.Entropy)
		mnemonic.POST("/seed", h.Mnemonic.Seed)

		ks := api.Group("/keystore")
		ks.POST("/encrypt", h.Mnemonic.EncryptKeystore)
		ks.POST("/decrypt", h.Mnemonic.DecryptKeystore)

		keys := api.Group("/kms/keys")
		keys.POST("", h.KMS.CreateKey)
		keys.POST("/import", h.KMS.ImportKeystore)
		keys.GET("/:id", h.KMS.GetKey)
		keys.POST("/:id/sign", h.KMS.Sign)
		keys.PUT("/:id/state", h.KMS.SetState)
	}

	return r
}
