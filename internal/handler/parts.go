package handler

import (
	"net/http"
	"strconv"

	"stockledger/internal/apierror"
	"stockledger/internal/dto"
	"stockledger/internal/service"

	"github.com/gin-gonic/gin"
)

type PartsHandler struct{ svc service.CatalogService }

func NewPartsHandler(svc service.CatalogService) *PartsHandler {
	return &PartsHandler{svc: svc}
}

// parseID reads a numeric path parameter, writing a 400 on failure.
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return 0, false
	}
	return uint(id), true
}

// Create godoc
// @Summary Create a part, surfacing exact-attribute duplicates unless forced
// @Tags parts
// @Accept json
// @Produce json
// @Param force query bool false "Create even when duplicates exist"
// @Success 201 {object} dto.CreatePartResponse
// @Failure 422 {object} apierror.ValidationError
// @Router /v1/parts [post]
func (h *PartsHandler) Create(c *gin.Context) {
	var req dto.CreatePartRequest
	if !bindAndValidate(c, &req) {
		return
	}
	force := c.Query("force") == "true"
	resp, err := h.svc.CreatePart(c.Request.Context(), req, force)
	if err != nil {
		respondError(c, err)
		return
	}
	// Duplicate detection is a distinguishable outcome, not an error: the
	// client inspects the list and may retry with force=true.
	if resp.Created == nil {
		c.JSON(http.StatusOK, resp)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *PartsHandler) List(c *gin.Context) {
	var filter dto.PartFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.ListParts(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PartsHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.DeletePart(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
