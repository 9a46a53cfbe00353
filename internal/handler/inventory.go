package handler

import (
	"net/http"

	"stockledger/internal/dto"
	"stockledger/internal/service"

	"github.com/gin-gonic/gin"
)

type InventoryHandler struct{ svc service.LedgerService }

func NewInventoryHandler(svc service.LedgerService) *InventoryHandler {
	return &InventoryHandler{svc: svc}
}

// MergeCreate godoc
// @Summary Additive upsert of stock for a (part, location) pair
// @Tags inventory
// @Accept json
// @Produce json
// @Success 200 {object} dto.InventoryResponse
// @Failure 400 {object} apierror.APIError
// @Failure 404 {object} apierror.APIError
// @Router /v1/inventory [post]
func (h *InventoryHandler) MergeCreate(c *gin.Context) {
	var req dto.MergeCreateRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.MergeCreate(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Adjust godoc
// @Summary Version-guarded signed stock adjustment
// @Tags inventory
// @Accept json
// @Produce json
// @Success 200 {object} dto.AdjustResponse
// @Failure 400 {object} apierror.APIError
// @Failure 409 {object} apierror.Conflict
// @Router /v1/inventory/adjust [post]
func (h *InventoryHandler) Adjust(c *gin.Context) {
	var req dto.AdjustRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Adjust(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Move godoc
// @Summary Atomic transfer of stock between two locations
// @Tags inventory
// @Accept json
// @Produce json
// @Success 200 {object} dto.MoveResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/inventory/move [post]
func (h *InventoryHandler) Move(c *gin.Context) {
	var req dto.MoveRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Move(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
