package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// ContentType 是问候响应的内容类型
const ContentType = "text/plain; charset=utf-8"

func init() {
	// 关闭 gin 的调试输出，启动日志由 zerolog 负责
	gin.SetMode(gin.ReleaseMode)
}

// NewHandler 构建只包含 GET / 一个路由的 gin 引擎
//
// 其余路径与方法交给 gin 的默认行为（404）；HandleMethodNotAllowed 保持关闭，所以 POST / 同样是 404
func NewHandler(body string, served prometheus.Counter) *gin.Engine {
	if served == nil {
		served = newServedCounter()
	}
	payload := []byte(body)

	engine := gin.New()
	engine.GET("/", func(c *gin.Context) {
		served.Inc()
		c.Data(http.StatusOK, ContentType, payload)
	})
	return engine
}

func newServedCounter() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "greeter",
		Name:      "greetings_served_total",
		Help:      "Number of GET / requests answered with the greeting.",
	})
}
