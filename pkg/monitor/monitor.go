package monitor

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics 汇总 HTTP 与密码学操作指标。nil *Metrics 的所有方法都是空操作。
type Metrics struct {
	// HTTPRequestsTotal 记录 HTTP 请求总量
	HTTPRequestsTotal *prometheus.CounterVec
	// HTTPRequestDuration 记录 HTTP 请求耗时 (Histogram)
	HTTPRequestDuration *prometheus.HistogramVec

	CryptoOpsTotal *prometheus.CounterVec
	KDFDuration    *prometheus.HistogramVec
	KeysManaged    *prometheus.GaugeVec
}

var (
	defaultOnce    sync.Once
	defaultMetrics *Metrics
)

// Init 在全局 DefaultRegisterer 上注册指标，重复调用返回同一实例。
func Init() *Metrics {
	defaultOnce.Do(func() {
		defaultMetrics = New(prometheus.DefaultRegisterer)
	})
	return defaultMetrics
}

// New 在给定 Registerer 上创建并注册指标，测试中传入 prometheus.NewRegistry()。
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		HTTPRequestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		}, []string{"method", "path", "status"}),
		HTTPRequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency distributions.",
			Buckets: []float64{0.01, 0.05, 0.1, 0.3, 0.5, 1.0, 2.0, 5.0},
		}, []string{"method", "path"}),
		CryptoOpsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "keycore_crypto_operations_total",
			Help: "Crypto operations by name and result.",
		}, []string{"op", "result"}),
		KDFDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "keycore_kdf_duration_seconds",
			Help:    "Duration of key stretching (PBKDF2, scrypt, BIP-39 seed).",
			Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10},
		}, []string{"kdf"}),
		KeysManaged: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "keycore_kms_keys",
			Help: "Keys held by the KMS by type.",
		}, []string{"type"}),
	}
}

// Middleware returns a gin middleware for monitoring
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}
		start := time.Now()

		c.Next()

		path := c.FullPath() // 使用路由模板 /api/v1/kms/keys/:id 而不是具体路径
		if path == "" {      // 忽略 404 等未匹配路由
			return
		}
		status := strconv.Itoa(c.Writer.Status())
		m.HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		m.HTTPRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}
