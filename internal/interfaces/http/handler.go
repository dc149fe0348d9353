// @title           OSRS Grand Exchange Prices API
// @version         1.0
// @description     Cached Grand Exchange prices, catalog search, rankings and price history.

// @license.name  MIT

// @host      localhost:8080
// @BasePath  /api

package http

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	appinterfaces "github.com/asep96/OSRS-GrandExchange-App/internal/application/interfaces"
	"github.com/asep96/OSRS-GrandExchange-App/internal/domain/apperr"
)

const (
	apiBasePath    = "/api"
	cacheKeyPrefix = "cache:"
)

var errMissingID = errors.New("missing or invalid 'id' query parameter")

type Handler struct {
	router    *gin.Engine
	market    appinterfaces.MarketReader
	history   appinterfaces.HistoryReader
	refresher appinterfaces.Refresher

	cache      *redis.Client
	cacheTTL   time.Duration
	cronSecret string
	staticDir  string
	metrics    http.Handler
	logger     logrus.FieldLogger
}

var _ appinterfaces.HTTPHandler = (*Handler)(nil)

type Option func(*Handler)

// WithCache enables the Redis response cache for the search and home routes.
func WithCache(client *redis.Client, ttl time.Duration) Option {
	return func(h *Handler) {
		h.cache = client
		h.cacheTTL = ttl
	}
}

// WithCronSecret guards the combined refresh task with a shared secret.
func WithCronSecret(secret string) Option {
	return func(h *Handler) {
		h.cronSecret = secret
	}
}

// WithStaticDir serves the front-end from dir for every unmatched route.
func WithStaticDir(dir string) Option {
	return func(h *Handler) {
		h.staticDir = dir
	}
}

func WithMetricsHandler(m http.Handler) Option {
	return func(h *Handler) {
		h.metrics = m
	}
}

func WithLogger(logger logrus.FieldLogger) Option {
	return func(h *Handler) {
		h.logger = logger
	}
}

func NewHandler(market appinterfaces.MarketReader, history appinterfaces.HistoryReader, refresher appinterfaces.Refresher, opts ...Option) *Handler {
	router := gin.New()
	router.Use(gin.Recovery())

	h := &Handler{
		router:    router,
		market:    market,
		history:   history,
		refresher: refresher,
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.logger == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		h.logger = discard
	}
	h.logger = h.logger.WithField("component", "http")

	h.registerRoutes()
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) registerRoutes() {
	h.router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	if h.metrics != nil {
		h.router.GET("/metrics", gin.WrapH(h.metrics))
	}

	api := h.router.Group(apiBasePath)
	api.GET("/health", h.health)

	items := api.Group("/items")
	{
		items.GET("/search", h.cacheMiddleware(), h.searchItems)
		items.GET("/latest", h.getLatest)
		items.GET("/profile", h.getProfile)
		items.GET("/history", h.getHistory)
	}

	home := api.Group("/home")
	home.Use(h.cacheMiddleware())
	{
		home.GET("/top-expensive", h.topExpensive)
		home.GET("/top-spread", h.topSpread)
		home.GET("/top-alch", h.topAlch)
	}

	admin := api.Group("/admin")
	{
		for _, method := range []string{http.MethodGet, http.MethodPost} {
			admin.Handle(method, "/refresh-prices", h.refreshPrices)
			admin.Handle(method, "/refresh-mapping", h.refreshMapping)
			admin.Handle(method, "/refresh-snapshot-intervals", h.refreshSnapshots)
		}
		admin.POST("/tasks/refresh-market", h.refreshMarket)
	}

	if h.staticDir != "" {
		if info, err := os.Stat(h.staticDir); err == nil && info.IsDir() {
			h.router.NoRoute(gin.WrapH(http.FileServer(http.Dir(h.staticDir))))
		}
	}
}

// health reports liveness
// @Summary  Health check
// @Tags     system
// @Produce  json
// @Success  200  {object}  map[string]string
// @Router   /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func writeError(c *gin.Context, status int, err error) {
	if err == nil {
		status = http.StatusInternalServerError
		err = errors.New("unknown error")
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// respondError maps the error class to a status. Internal failures are logged
// and their detail is not returned to the caller.
func (h *Handler) respondError(c *gin.Context, err error) {
	log := h.logger.WithFields(logrus.Fields{
		"path":  c.FullPath(),
		"query": c.Request.URL.RawQuery,
	})

	var upstream *apperr.UpstreamError
	switch {
	case apperr.IsValidation(err):
		writeError(c, http.StatusBadRequest, err)
	case apperr.IsNotFound(err):
		log.WithError(err).Debug("not found")
		writeError(c, http.StatusNotFound, err)
	case errors.As(err, &upstream):
		log.WithError(err).Warn("upstream failure")
		c.JSON(http.StatusBadGateway, gin.H{
			"error":  "upstream OSRS API error",
			"status": upstream.Status,
		})
	default:
		log.WithError(err).Error("request failed")
		writeError(c, http.StatusInternalServerError, errors.New("internal server error"))
	}
}

func parseIDQuery(c *gin.Context) (int64, error) {
	raw := c.Query("id")
	if raw == "" {
		return 0, errMissingID
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errMissingID
	}
	return id, nil
}

// cacheMiddleware caches successful GET responses in Redis.
func (h *Handler) cacheMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if h.cache == nil || c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		key := h.cacheKey(c)
		ctx := c.Request.Context()

		if cached, err := h.cache.Get(ctx, key).Bytes(); err == nil {
			c.Header("X-Cache", "HIT")
			c.Data(http.StatusOK, "application/json; charset=utf-8", cached)
			c.Abort()
			return
		}

		recorder := &responseRecorder{
			ResponseWriter: c.Writer,
			status:         http.StatusOK,
			body:           &bytes.Buffer{},
		}
		c.Writer = recorder

		c.Next()

		if recorder.status >= 200 && recorder.status < 300 && recorder.body.Len() > 0 {
			if err := h.cache.Set(ctx, key, recorder.body.Bytes(), h.cacheTTL).Err(); err != nil {
				h.logger.WithError(err).Warn("cache response")
			}
		}
	}
}

type responseRecorder struct {
	gin.ResponseWriter
	body   *bytes.Buffer
	status int
}

func (r *responseRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *responseRecorder) Write(data []byte) (int, error) {
	if len(data) > 0 {
		r.body.Write(data)
	}
	return r.ResponseWriter.Write(data)
}

func (h *Handler) cacheKey(c *gin.Context) string {
	return fmt.Sprintf("%s%s:%s?%s", cacheKeyPrefix, c.Request.Method, c.FullPath(), c.Request.URL.RawQuery)
}

// InvalidateCache drops every cached response. It is a no-op without a cache.
func (h *Handler) InvalidateCache(ctx context.Context) error {
	if h.cache == nil {
		return nil
	}
	var cursor uint64
	for {
		keys, next, err := h.cache.Scan(ctx, cursor, cacheKeyPrefix+"*", 100).Result()
		if err != nil {
			return fmt.Errorf("scan cached responses: %w", err)
		}
		if len(keys) > 0 {
			if err := h.cache.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("delete cached responses: %w", err)
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}
