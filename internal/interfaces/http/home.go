package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type rankingResponse[T any] struct {
	Count   int `json:"count"`
	Results []T `json:"results"`
}

func newRanking[T any](results []T) rankingResponse[T] {
	if results == nil {
		results = []T{}
	}
	return rankingResponse[T]{Count: len(results), Results: results}
}

// topExpensive lists the items with the highest cached high price
// @Summary  Most expensive items
// @Tags     home
// @Produce  json
// @Success  200  {object}  map[string]interface{}
// @Failure  500  {object}  map[string]string
// @Router   /home/top-expensive [get]
func (h *Handler) topExpensive(c *gin.Context) {
	items, err := h.market.TopExpensive(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newRanking(items))
}

// topSpread lists the items with the widest high-low spread
// @Summary  Widest spreads
// @Tags     home
// @Produce  json
// @Success  200  {object}  map[string]interface{}
// @Failure  500  {object}  map[string]string
// @Router   /home/top-spread [get]
func (h *Handler) topSpread(c *gin.Context) {
	items, err := h.market.TopSpread(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newRanking(items))
}

// topAlch lists the most profitable high-alchemy targets
// @Summary      High-alchemy profit
// @Description  Empty when either reference rune has no cached price
// @Tags         home
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]string
// @Router       /home/top-alch [get]
func (h *Handler) topAlch(c *gin.Context) {
	items, err := h.market.TopAlchProfit(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newRanking(items))
}
