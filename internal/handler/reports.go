package handler

import (
	"net/http"

	"stockledger/internal/infra"
	"stockledger/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportsHandler struct {
	svc   service.ReportService
	cache *infra.StockCache
}

func NewReportsHandler(svc service.ReportService, cache *infra.StockCache) *ReportsHandler {
	return &ReportsHandler{svc: svc, cache: cache}
}

func (h *ReportsHandler) FullDetail(c *gin.Context) {
	resp, err := h.svc.FullDetail(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReportsHandler) AggregatedByPart(c *gin.Context) {
	resp, err := h.svc.AggregatedByPart(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// StockCheck godoc
// @Summary Availability lookup by part number (no side effects)
// @Tags stock
// @Produce json
// @Param part_number path string true "Part number, e.g. P00007"
// @Success 200 {object} dto.StockCheckResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/stock/{part_number} [get]
func (h *ReportsHandler) StockCheck(c *gin.Context) {
	partNumber := c.Param("part_number")
	ctx := c.Request.Context()

	if cached, ok := h.cache.Get(ctx, partNumber); ok {
		c.JSON(http.StatusOK, cached)
		return
	}

	resp, err := h.svc.StockCheck(ctx, partNumber)
	if err != nil {
		respondError(c, err)
		return
	}

	// Best effort — ledger mutations invalidate, the TTL is the backstop.
	h.cache.Set(ctx, resp)

	c.JSON(http.StatusOK, resp)
}
