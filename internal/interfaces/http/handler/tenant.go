package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	leasingapp "github.com/rentledger/backend/internal/application/leasing"
	"github.com/rentledger/backend/internal/domain/shared"
	"github.com/rentledger/backend/internal/interfaces/http/dto"
)

// TenantHandler handles tenant-related API endpoints
type TenantHandler struct {
	BaseHandler
	tenantService *leasingapp.TenantService
}

// NewTenantHandler creates a new TenantHandler
func NewTenantHandler(tenantService *leasingapp.TenantService) *TenantHandler {
	return &TenantHandler{
		tenantService: tenantService,
	}
}

// RegisterTenantRequest represents a request to register a new tenant
// @Description Request body for registering a tenant
type RegisterTenantRequest struct {
	Name           string  `json:"name" binding:"required,min=1,max=200" example:"Laura Jimenez"`
	OccupancyStart string  `json:"occupancy_start" binding:"required" example:"2024-03-15"`
	PaysServices   bool    `json:"pays_services" example:"true"`
	PropertyID     *string `json:"property_id" binding:"omitempty,uuid" example:"8f14e45f-ceea-467f-a9b2-1f1c1455e1a0"`
	Phone          string  `json:"phone" binding:"max=30" example:"+52 555 012 3456"`
	Notes          string  `json:"notes" example:"Referred by the owner"`
}

// VacateTenantRequest represents a request to vacate a tenant
type VacateTenantRequest struct {
	Date string `json:"date" binding:"required" example:"2024-09-30"`
}

// ChangeOccupancyStartRequest represents a request to correct the occupancy start date
type ChangeOccupancyStartRequest struct {
	Date   string `json:"date" binding:"required" example:"2024-03-01"`
	Reason string `json:"reason" binding:"required,min=1" example:"Contract signed earlier than recorded"`
}

// SetServiceRequest represents a request to set a contracted service amount
type SetServiceRequest struct {
	ServiceType string  `json:"service_type" binding:"required,min=1,max=50" example:"agua"`
	Amount      float64 `json:"amount" binding:"required,gt=0" example:"350.00"`
}

// parseDate parses a date in YYYY-MM-DD form
func parseDate(value string) (time.Time, error) {
	return time.Parse("2006-01-02", value)
}

// Register godoc
// @Summary      Register a new tenant
// @Tags         tenants
// @Accept       json
// @Produce      json
// @Param        request body RegisterTenantRequest true "Tenant registration request"
// @Success      201 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Router       /tenants [post]
func (h *TenantHandler) Register(c *gin.Context) {
	var req RegisterTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	start, err := parseDate(req.OccupancyStart)
	if err != nil {
		h.BadRequest(c, "Invalid occupancy_start date, expected YYYY-MM-DD")
		return
	}

	appReq := leasingapp.RegisterTenantRequest{
		Name:           req.Name,
		OccupancyStart: start,
		PaysServices:   req.PaysServices,
		Phone:          req.Phone,
		Notes:          req.Notes,
	}
	if req.PropertyID != nil {
		propertyID, err := uuid.Parse(*req.PropertyID)
		if err != nil {
			h.BadRequest(c, "Invalid property ID format")
			return
		}
		appReq.PropertyID = &propertyID
	}

	tenant, err := h.tenantService.Register(c.Request.Context(), appReq)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, tenant)
}

// GetByID godoc
// @Summary      Get tenant by ID
// @Tags         tenants
// @Produce      json
// @Param        id path string true "Tenant ID" format(uuid)
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /tenants/{id} [get]
func (h *TenantHandler) GetByID(c *gin.Context) {
	tenantID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID format")
		return
	}

	tenant, err := h.tenantService.Get(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, tenant)
}

// List godoc
// @Summary      List tenants
// @Tags         tenants
// @Produce      json
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Param        search query string false "Search by name or phone"
// @Success      200 {object} dto.Response
// @Router       /tenants [get]
func (h *TenantHandler) List(c *gin.Context) {
	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := listRequestToFilter(req, c)
	tenants, err := h.tenantService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, tenants)
}

// Vacate godoc
// @Summary      Vacate a tenant
// @Tags         tenants
// @Accept       json
// @Produce      json
// @Param        id path string true "Tenant ID" format(uuid)
// @Param        request body VacateTenantRequest true "Vacate request"
// @Success      204
// @Failure      404 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Router       /tenants/{id}/vacate [post]
func (h *TenantHandler) Vacate(c *gin.Context) {
	tenantID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID format")
		return
	}

	var req VacateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		h.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
		return
	}

	if err := h.tenantService.Vacate(c.Request.Context(), tenantID, date); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// ChangeOccupancyStart godoc
// @Summary      Correct a tenant's occupancy start date
// @Tags         tenants
// @Accept       json
// @Produce      json
// @Param        id path string true "Tenant ID" format(uuid)
// @Param        request body ChangeOccupancyStartRequest true "Occupancy start change request"
// @Success      204
// @Failure      404 {object} dto.Response
// @Router       /tenants/{id}/occupancy-start [put]
func (h *TenantHandler) ChangeOccupancyStart(c *gin.Context) {
	tenantID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID format")
		return
	}

	var req ChangeOccupancyStartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		h.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
		return
	}

	if err := h.tenantService.ChangeOccupancyStart(c.Request.Context(), tenantID, date, req.Reason); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// SetService godoc
// @Summary      Set a contracted service for a tenant
// @Tags         tenants
// @Accept       json
// @Produce      json
// @Param        id path string true "Tenant ID" format(uuid)
// @Param        request body SetServiceRequest true "Service request"
// @Success      204
// @Failure      404 {object} dto.Response
// @Router       /tenants/{id}/services [put]
func (h *TenantHandler) SetService(c *gin.Context) {
	tenantID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID format")
		return
	}

	var req SetServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	amount := decimal.NewFromFloat(req.Amount)
	if err := h.tenantService.SetService(c.Request.Context(), tenantID, req.ServiceType, amount); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// RemoveService godoc
// @Summary      Remove a contracted service from a tenant
// @Tags         tenants
// @Produce      json
// @Param        id path string true "Tenant ID" format(uuid)
// @Param        type path string true "Service type"
// @Success      204
// @Failure      404 {object} dto.Response
// @Router       /tenants/{id}/services/{type} [delete]
func (h *TenantHandler) RemoveService(c *gin.Context) {
	tenantID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID format")
		return
	}

	if err := h.tenantService.RemoveService(c.Request.Context(), tenantID, c.Param("type")); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// listRequestToFilter converts query parameters into a repository filter
func listRequestToFilter(req dto.ListRequest, c *gin.Context) shared.Filter {
	filter := shared.Filter{
		Page:     req.Page,
		PageSize: req.PageSize,
		OrderBy:  req.OrderBy,
		OrderDir: req.OrderDir,
		Search:   req.Search,
		Filters:  map[string]any{},
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	for _, key := range []string{"active", "pays_services", "tenant_id", "property_id", "status", "state", "year", "month_name"} {
		if v := c.Query(key); v != "" {
			filter.Filters[key] = v
		}
	}
	return filter
}
