package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	leasingapp "github.com/rentledger/backend/internal/application/leasing"
	"github.com/rentledger/backend/internal/interfaces/http/dto"
)

// FurnitureHandler handles furniture-related API endpoints
type FurnitureHandler struct {
	BaseHandler
	furnitureService *leasingapp.FurnitureService
}

// NewFurnitureHandler creates a new FurnitureHandler
func NewFurnitureHandler(furnitureService *leasingapp.FurnitureService) *FurnitureHandler {
	return &FurnitureHandler{
		furnitureService: furnitureService,
	}
}

// CreateFurnitureRequest represents a request to create a furniture item
// @Description Request body for creating a furniture item
type CreateFurnitureRequest struct {
	Name        string  `json:"name" binding:"required,min=1,max=200" example:"Refrigerador"`
	MonthlyCost float64 `json:"monthly_cost" binding:"required,gt=0" example:"250.00"`
}

// AssignFurnitureRequest represents a request to assign an item to a tenant
type AssignFurnitureRequest struct {
	TenantID string `json:"tenant_id" binding:"required,uuid" example:"8f14e45f-ceea-467f-a9b2-1f1c1455e1a0"`
	Quantity int    `json:"quantity" binding:"required,min=1" example:"1"`
}

// MonthlyCostResponse reports the furniture surcharge a tenant owes per month
type MonthlyCostResponse struct {
	TenantID    string          `json:"tenant_id"`
	MonthlyCost decimal.Decimal `json:"monthly_cost"`
}

// Create godoc
// @Summary      Create a new furniture item
// @Tags         furniture
// @Accept       json
// @Produce      json
// @Param        request body CreateFurnitureRequest true "Furniture creation request"
// @Success      201 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Router       /furniture [post]
func (h *FurnitureHandler) Create(c *gin.Context) {
	var req CreateFurnitureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	cost := decimal.NewFromFloat(req.MonthlyCost)
	item, err := h.furnitureService.Create(c.Request.Context(), req.Name, cost)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, item)
}

// List godoc
// @Summary      List furniture items
// @Tags         furniture
// @Produce      json
// @Success      200 {object} dto.Response
// @Router       /furniture [get]
func (h *FurnitureHandler) List(c *gin.Context) {
	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	items, err := h.furnitureService.List(c.Request.Context(), listRequestToFilter(req, c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, items)
}

// Assign godoc
// @Summary      Assign a furniture item to a tenant
// @Tags         furniture
// @Accept       json
// @Produce      json
// @Param        id path string true "Furniture item ID" format(uuid)
// @Param        request body AssignFurnitureRequest true "Assignment request"
// @Success      204
// @Failure      404 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Router       /furniture/{id}/assignments [post]
func (h *FurnitureHandler) Assign(c *gin.Context) {
	itemID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid furniture item ID format")
		return
	}

	var req AssignFurnitureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	tenantID, err := uuid.Parse(req.TenantID)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID format")
		return
	}

	if err := h.furnitureService.Assign(c.Request.Context(), itemID, tenantID, req.Quantity); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Unassign godoc
// @Summary      Release a furniture item from a tenant
// @Tags         furniture
// @Produce      json
// @Param        id path string true "Furniture item ID" format(uuid)
// @Param        tenantID path string true "Tenant ID" format(uuid)
// @Success      204
// @Failure      404 {object} dto.Response
// @Router       /furniture/{id}/assignments/{tenantID} [delete]
func (h *FurnitureHandler) Unassign(c *gin.Context) {
	itemID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid furniture item ID format")
		return
	}

	tenantID, err := parseUUIDParam(c, "tenantID")
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID format")
		return
	}

	if err := h.furnitureService.Unassign(c.Request.Context(), itemID, tenantID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// MonthlyCostFor godoc
// @Summary      Get a tenant's monthly furniture surcharge
// @Tags         furniture
// @Produce      json
// @Param        tenantID path string true "Tenant ID" format(uuid)
// @Success      200 {object} dto.Response
// @Router       /furniture/costs/{tenantID} [get]
func (h *FurnitureHandler) MonthlyCostFor(c *gin.Context) {
	tenantID, err := parseUUIDParam(c, "tenantID")
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID format")
		return
	}

	cost, err := h.furnitureService.MonthlyCostFor(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, MonthlyCostResponse{
		TenantID:    tenantID.String(),
		MonthlyCost: cost,
	})
}
