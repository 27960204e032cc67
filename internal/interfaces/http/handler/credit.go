package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	ledgerapp "github.com/rentledger/backend/internal/application/ledger"
)

// CreditHandler handles credit balance API endpoints
type CreditHandler struct {
	BaseHandler
	creditService *ledgerapp.CreditService
}

// NewCreditHandler creates a new CreditHandler
func NewCreditHandler(creditService *ledgerapp.CreditService) *CreditHandler {
	return &CreditHandler{
		creditService: creditService,
	}
}

// CreateCreditRequest represents a request to record a credit in a tenant's favor
// @Description Request body for recording a credit balance
type CreateCreditRequest struct {
	TenantID string  `json:"tenant_id" binding:"required,uuid" example:"8f14e45f-ceea-467f-a9b2-1f1c1455e1a0"`
	Amount   float64 `json:"amount" binding:"required,gt=0" example:"1200.00"`
	Note     string  `json:"note" example:"Deposit returned as credit"`
}

// Create godoc
// @Summary      Record a credit in a tenant's favor
// @Description  Merge the amount into the tenant's active credit, or open a new one
// @Tags         credits
// @Accept       json
// @Produce      json
// @Param        request body CreateCreditRequest true "Credit creation request"
// @Success      201 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Router       /credits [post]
func (h *CreditHandler) Create(c *gin.Context) {
	var req CreateCreditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	tenantID, err := uuid.Parse(req.TenantID)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID format")
		return
	}

	amount := decimal.NewFromFloat(req.Amount)
	credit, err := h.creditService.CreateOrMerge(c.Request.Context(), tenantID, amount, req.Note)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, credit)
}

// ListForTenant godoc
// @Summary      List a tenant's credit balances
// @Tags         credits
// @Produce      json
// @Param        tenantID path string true "Tenant ID" format(uuid)
// @Success      200 {object} dto.Response
// @Router       /credits/{tenantID} [get]
func (h *CreditHandler) ListForTenant(c *gin.Context) {
	tenantID, err := parseUUIDParam(c, "tenantID")
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID format")
		return
	}

	credits, err := h.creditService.ListForTenant(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, credits)
}

// ApplyToOutstanding godoc
// @Summary      Apply a tenant's active credit to their oldest unpaid record
// @Description  Applies the active credit to the chronologically-first outstanding record; one record per call
// @Tags         credits
// @Produce      json
// @Param        tenantID path string true "Tenant ID" format(uuid)
// @Success      200 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Router       /credits/{tenantID}/apply [post]
func (h *CreditHandler) ApplyToOutstanding(c *gin.Context) {
	tenantID, err := parseUUIDParam(c, "tenantID")
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID format")
		return
	}

	result, err := h.creditService.ApplyToOutstanding(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
