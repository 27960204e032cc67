package handler

import (
	"github.com/gin-gonic/gin"
	ledgerapp "github.com/rentledger/backend/internal/application/ledger"
)

// ArrearsHandler handles arrears reporting API endpoints
type ArrearsHandler struct {
	BaseHandler
	arrearsService *ledgerapp.ArrearsService
}

// NewArrearsHandler creates a new ArrearsHandler
func NewArrearsHandler(arrearsService *ledgerapp.ArrearsService) *ArrearsHandler {
	return &ArrearsHandler{
		arrearsService: arrearsService,
	}
}

// ComputeAll godoc
// @Summary      Compute arrears for every active tenant
// @Description  Rebuild each active tenant's unpaid months from their occupancy history and records
// @Tags         arrears
// @Produce      json
// @Success      200 {object} dto.Response
// @Router       /arrears [get]
func (h *ArrearsHandler) ComputeAll(c *gin.Context) {
	arrears, err := h.arrearsService.ComputeAll(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, arrears)
}

// ComputeForTenant godoc
// @Summary      Compute arrears for one tenant
// @Tags         arrears
// @Produce      json
// @Param        tenantID path string true "Tenant ID" format(uuid)
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /arrears/{tenantID} [get]
func (h *ArrearsHandler) ComputeForTenant(c *gin.Context) {
	tenantID, err := parseUUIDParam(c, "tenantID")
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID format")
		return
	}

	arrears, err := h.arrearsService.ComputeForTenant(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, arrears)
}
