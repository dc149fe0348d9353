package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/asep96/OSRS-GrandExchange-App/internal/application/service/market"
	catalog "github.com/asep96/OSRS-GrandExchange-App/internal/domain/entity/catalog"
	history "github.com/asep96/OSRS-GrandExchange-App/internal/domain/entity/history"
)

const defaultTimestep = history.Timestep5m

type searchResponse struct {
	Query   string          `json:"query"`
	Count   int             `json:"count"`
	Results []catalog.Entry `json:"results"`
}

type latestResponse struct {
	market.LatestQuote
	Source string `json:"source"`
}

type historyResponse struct {
	ID       int64            `json:"id"`
	Timestep history.Timestep `json:"timestep"`
	Points   []history.Point  `json:"points"`
}

// searchItems finds catalog entries by name
// @Summary      Search items
// @Description  Case-insensitive substring match on item names, alphabetical, at most 25 results
// @Tags         items
// @Produce      json
// @Param        query  query     string  true  "Name fragment (max 64 characters)"
// @Success      200    {object}  searchResponse
// @Failure      400    {object}  map[string]string
// @Failure      500    {object}  map[string]string
// @Router       /items/search [get]
func (h *Handler) searchItems(c *gin.Context) {
	entries, query, err := h.market.Search(c.Request.Context(), c.Query("query"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, searchResponse{
		Query:   query,
		Count:   len(entries),
		Results: entries,
	})
}

// getLatest returns the cached latest price of an item
// @Summary      Latest price
// @Description  Cached latest high/low quote with a freshness flag
// @Tags         items
// @Produce      json
// @Param        id   query     int  true  "Item id"
// @Success      200  {object}  latestResponse
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /items/latest [get]
func (h *Handler) getLatest(c *gin.Context) {
	id, err := parseIDQuery(c)
	if err != nil {
		writeError(c, http.StatusBadRequest, err)
		return
	}
	quote, err := h.market.LatestPrice(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, latestResponse{LatestQuote: *quote, Source: "cache"})
}

// getProfile returns catalog data joined with cached prices
// @Summary      Item profile
// @Tags         items
// @Produce      json
// @Param        id   query     int  true  "Item id"
// @Success      200  {object}  catalog.Profile
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /items/profile [get]
func (h *Handler) getProfile(c *gin.Context) {
	id, err := parseIDQuery(c)
	if err != nil {
		writeError(c, http.StatusBadRequest, err)
		return
	}
	profile, err := h.market.Profile(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// getHistory returns derived price history straight from upstream
// @Summary      Price history
// @Description  Mid price, total volume and VWAP per upstream bucket, in upstream order
// @Tags         items
// @Produce      json
// @Param        id        query     int     true   "Item id"
// @Param        timestep  query     string  false  "5m, 1h, 6h or 24h"  default(5m)
// @Success      200       {object}  historyResponse
// @Failure      400       {object}  map[string]string
// @Failure      502       {object}  map[string]interface{}
// @Failure      500       {object}  map[string]string
// @Router       /items/history [get]
func (h *Handler) getHistory(c *gin.Context) {
	id, err := parseIDQuery(c)
	if err != nil {
		writeError(c, http.StatusBadRequest, err)
		return
	}
	timestep := c.DefaultQuery("timestep", defaultTimestep.String())

	points, step, err := h.history.History(c.Request.Context(), id, timestep)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, historyResponse{
		ID:       id,
		Timestep: step,
		Points:   points,
	})
}
