package rest

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/Gunvolt24/order_guard/internal/ports"
	"github.com/Gunvolt24/order_guard/internal/scores"
	"github.com/Gunvolt24/order_guard/pkg/httpx"
)

// maxBodyBytes: предел тела запроса для заказов и оценок.
const maxBodyBytes = 1 << 20

// maxTop: верхняя граница параметра top для /scores/final.
const maxTop = 100

// scoreService: подсчёт итоговых оценок (usecase.ScoreService).
type scoreService interface {
	Top() int
	FinalScores(records []scores.Record, top int) ([]scores.FinalScore, error)
}

// validatorRegistry: управление реестром валидаторов (validation.Registry).
type validatorRegistry interface {
	IDs() []int
	Unregister(id int) bool
}

// Handler: HTTP-обработчики поверх прикладных сервисов.
type Handler struct {
	orders   ports.OrderValidationService
	scores   scoreService
	registry validatorRegistry
	log      ports.Logger
	timeout  time.Duration
}

// NewHandler: timeout <= 0 отключает ограничение времени на проверку заказа.
func NewHandler(
	orders ports.OrderValidationService,
	scores scoreService,
	registry validatorRegistry,
	log ports.Logger,
	timeout time.Duration,
) *Handler {
	return &Handler{orders: orders, scores: scores, registry: registry, log: log, timeout: timeout}
}

// NewRouter собирает gin.Engine; при непустом serviceName подключается otelgin.
// extra выполняются после логгера запросов, до обработчиков.
func NewRouter(h *Handler, serviceName string, extra ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true

	if serviceName != "" {
		r.Use(otelgin.Middleware(serviceName))
	}
	r.Use(gin.Recovery())
	r.Use(httpx.RequestIDMiddleware())
	r.Use(httpx.RequestLogger(h.log))
	r.Use(extra...)

	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.POST("/orders/validate", h.validateOrder)
	r.POST("/scores/final", h.finalScores)

	r.GET("/validators", h.listValidators)
	r.DELETE("/validators/:id", h.unregisterValidator)

	return r
}

func errorJSON(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}

// readBody читает тело с ограничением maxBodyBytes.
func readBody(c *gin.Context) ([]byte, bool) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)
	raw, err := c.GetRawData()
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			errorJSON(c, http.StatusRequestEntityTooLarge, "request body too large")
			return nil, false
		}
		errorJSON(c, http.StatusBadRequest, "cannot read request body")
		return nil, false
	}
	if len(raw) == 0 {
		errorJSON(c, http.StatusBadRequest, "empty request body")
		return nil, false
	}
	return raw, true
}
