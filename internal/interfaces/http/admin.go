package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

type refreshResponse struct {
	UpdatedCount int    `json:"updatedCount"`
	Message      string `json:"message"`
}

// refreshPrices reloads the latest price cache from upstream
// @Summary  Refresh latest prices
// @Tags     admin
// @Produce  json
// @Success  200  {object}  refreshResponse
// @Failure  502  {object}  map[string]interface{}
// @Failure  500  {object}  map[string]string
// @Router   /admin/refresh-prices [post]
func (h *Handler) refreshPrices(c *gin.Context) {
	h.runRefresh(c, h.refresher.RefreshLatestPrices, "Bulk price refresh completed")
}

// refreshMapping reloads the item catalog from upstream
// @Summary  Refresh catalog
// @Tags     admin
// @Produce  json
// @Success  200  {object}  refreshResponse
// @Failure  502  {object}  map[string]interface{}
// @Failure  500  {object}  map[string]string
// @Router   /admin/refresh-mapping [post]
func (h *Handler) refreshMapping(c *gin.Context) {
	h.runRefresh(c, h.refresher.RefreshMapping, "Mapping refresh completed")
}

// refreshSnapshots reloads the 5m, 1h and 24h window snapshots
// @Summary  Refresh interval snapshots
// @Tags     admin
// @Produce  json
// @Success  200  {object}  refreshResponse
// @Failure  502  {object}  map[string]interface{}
// @Failure  500  {object}  map[string]string
// @Router   /admin/refresh-snapshot-intervals [post]
func (h *Handler) refreshSnapshots(c *gin.Context) {
	h.runRefresh(c, h.refresher.RefreshIntervalSnapshots, "Interval snapshot refresh completed")
}

// refreshMarket runs the price and snapshot refreshes for cron callers
// @Summary  Refresh market
// @Tags     admin
// @Produce  json
// @Param    secret  query     string  false  "Cron secret"
// @Success  200     {object}  map[string]interface{}
// @Failure  403     {object}  map[string]interface{}
// @Failure  502     {object}  map[string]interface{}
// @Failure  500     {object}  map[string]string
// @Router   /admin/tasks/refresh-market [post]
func (h *Handler) refreshMarket(c *gin.Context) {
	if h.cronSecret != "" && c.Query("secret") != h.cronSecret {
		c.JSON(http.StatusForbidden, gin.H{"ok": false, "error": "forbidden"})
		return
	}
	result, err := h.refresher.RefreshMarket(c.Request.Context())
	if result.Prices > 0 || result.Snapshots > 0 {
		// Prices may have committed before a snapshot failure.
		h.invalidate(c.Request.Context())
	}
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"ok":        true,
		"prices":    result.Prices,
		"snapshots": result.Snapshots,
	})
}

func (h *Handler) runRefresh(c *gin.Context, refresh func(context.Context) (int, error), message string) {
	n, err := refresh(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.invalidate(c.Request.Context())
	c.JSON(http.StatusOK, refreshResponse{UpdatedCount: n, Message: message})
}

func (h *Handler) invalidate(ctx context.Context) {
	if err := h.InvalidateCache(ctx); err != nil {
		h.logger.WithError(err).Warn("invalidate response cache")
	}
}
