package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	leasingapp "github.com/rentledger/backend/internal/application/leasing"
	"github.com/rentledger/backend/internal/domain/leasing"
	"github.com/rentledger/backend/internal/interfaces/http/dto"
)

// PropertyHandler handles property-related API endpoints
type PropertyHandler struct {
	BaseHandler
	propertyService *leasingapp.PropertyService
}

// NewPropertyHandler creates a new PropertyHandler
func NewPropertyHandler(propertyService *leasingapp.PropertyService) *PropertyHandler {
	return &PropertyHandler{
		propertyService: propertyService,
	}
}

// CreatePropertyRequest represents a request to create a property
// @Description Request body for creating a property
type CreatePropertyRequest struct {
	Name        string  `json:"name" binding:"required,min=1,max=200" example:"Departamento 3B"`
	Address     string  `json:"address" binding:"max=500" example:"Av. Reforma 123"`
	MonthlyRent float64 `json:"monthly_rent" binding:"required,gt=0" example:"8500.00"`
}

// SetMonthlyRentRequest represents a request to change a property's rent
type SetMonthlyRentRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0" example:"9000.00"`
}

// Create godoc
// @Summary      Create a new property
// @Tags         properties
// @Accept       json
// @Produce      json
// @Param        request body CreatePropertyRequest true "Property creation request"
// @Success      201 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Router       /properties [post]
func (h *PropertyHandler) Create(c *gin.Context) {
	var req CreatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	rent := decimal.NewFromFloat(req.MonthlyRent)
	property, err := h.propertyService.Create(c.Request.Context(), req.Name, req.Address, rent)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, property)
}

// GetByID godoc
// @Summary      Get property by ID
// @Tags         properties
// @Produce      json
// @Param        id path string true "Property ID" format(uuid)
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /properties/{id} [get]
func (h *PropertyHandler) GetByID(c *gin.Context) {
	propertyID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid property ID format")
		return
	}

	property, err := h.propertyService.Get(c.Request.Context(), propertyID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, property)
}

// List godoc
// @Summary      List properties
// @Tags         properties
// @Produce      json
// @Param        state query string false "Filter by state" Enums(DISPONIBLE, OCUPADO, MANTENIMIENTO)
// @Success      200 {object} dto.Response
// @Router       /properties [get]
func (h *PropertyHandler) List(c *gin.Context) {
	if state := c.Query("state"); state != "" {
		properties, err := h.propertyService.ListByState(c.Request.Context(), leasing.PropertyState(state))
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, properties)
		return
	}

	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	properties, err := h.propertyService.List(c.Request.Context(), listRequestToFilter(req, c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, properties)
}

// SetMonthlyRent godoc
// @Summary      Change a property's monthly rent
// @Tags         properties
// @Accept       json
// @Produce      json
// @Param        id path string true "Property ID" format(uuid)
// @Param        request body SetMonthlyRentRequest true "Rent change request"
// @Success      204
// @Failure      404 {object} dto.Response
// @Router       /properties/{id}/rent [put]
func (h *PropertyHandler) SetMonthlyRent(c *gin.Context) {
	propertyID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid property ID format")
		return
	}

	var req SetMonthlyRentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	amount := decimal.NewFromFloat(req.Amount)
	if err := h.propertyService.SetMonthlyRent(c.Request.Context(), propertyID, amount); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// StartMaintenance godoc
// @Summary      Put a property into maintenance
// @Tags         properties
// @Produce      json
// @Param        id path string true "Property ID" format(uuid)
// @Success      204
// @Failure      404 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Router       /properties/{id}/maintenance [post]
func (h *PropertyHandler) StartMaintenance(c *gin.Context) {
	propertyID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid property ID format")
		return
	}

	if err := h.propertyService.StartMaintenance(c.Request.Context(), propertyID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// EndMaintenance godoc
// @Summary      Take a property out of maintenance
// @Tags         properties
// @Produce      json
// @Param        id path string true "Property ID" format(uuid)
// @Success      204
// @Failure      404 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Router       /properties/{id}/maintenance [delete]
func (h *PropertyHandler) EndMaintenance(c *gin.Context) {
	propertyID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid property ID format")
		return
	}

	if err := h.propertyService.EndMaintenance(c.Request.Context(), propertyID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
