package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	ledgerapp "github.com/rentledger/backend/internal/application/ledger"
	"github.com/rentledger/backend/internal/interfaces/http/dto"
)

// PaymentHandler handles payment record API endpoints
type PaymentHandler struct {
	BaseHandler
	paymentService *ledgerapp.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(paymentService *ledgerapp.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
	}
}

// RegisterPaymentRequest represents a request to register a payment
// @Description Request body for registering a payment against a period
type RegisterPaymentRequest struct {
	TenantID  string  `json:"tenant_id" binding:"required,uuid" example:"8f14e45f-ceea-467f-a9b2-1f1c1455e1a0"`
	Year      int     `json:"year" binding:"required,min=2000,max=2100" example:"2024"`
	MonthName string  `json:"month_name" binding:"required" example:"Marzo"`
	Amount    float64 `json:"amount" binding:"required,gt=0" example:"8500.00"`
	PaidAt    string  `json:"paid_at" binding:"omitempty" example:"2024-03-05"`
	Note      string  `json:"note" example:"Transferencia bancaria"`
}

// MarkServicePaidRequest represents a request to mark a service as paid on a record
type MarkServicePaidRequest struct {
	ServiceType string  `json:"service_type" binding:"required,min=1,max=50" example:"agua"`
	Amount      float64 `json:"amount" binding:"required,gt=0" example:"350.00"`
}

// MarkFurniturePaidRequest represents a request to mark the furniture surcharge as paid
type MarkFurniturePaidRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0" example:"250.00"`
}

// RefreshOverdueRequest represents a request to re-evaluate overdue records
type RefreshOverdueRequest struct {
	TenantID string `json:"tenant_id" binding:"required,uuid" example:"8f14e45f-ceea-467f-a9b2-1f1c1455e1a0"`
}

// RefreshOverdueResponse reports how many records flipped to overdue
type RefreshOverdueResponse struct {
	Updated int `json:"updated"`
}

// Register godoc
// @Summary      Register a payment
// @Description  Apply a payment to a tenant's record for a period, opening the record when needed. Overpayment lands in the tenant's credit balance.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Idempotency key for safe retries"
// @Param        request body RegisterPaymentRequest true "Payment registration request"
// @Success      201 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Failure      409 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Router       /payments [post]
func (h *PaymentHandler) Register(c *gin.Context) {
	var req RegisterPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	tenantID, err := uuid.Parse(req.TenantID)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID format")
		return
	}

	paidAt := time.Now()
	if req.PaidAt != "" {
		paidAt, err = parseDate(req.PaidAt)
		if err != nil {
			h.BadRequest(c, "Invalid paid_at date, expected YYYY-MM-DD")
			return
		}
	}

	result, err := h.paymentService.RegisterPayment(c.Request.Context(), ledgerapp.RegisterPaymentRequest{
		TenantID:       tenantID,
		Year:           req.Year,
		MonthName:      req.MonthName,
		Amount:         decimal.NewFromFloat(req.Amount),
		PaidAt:         paidAt,
		Note:           req.Note,
		IdempotencyKey: c.GetHeader("Idempotency-Key"),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// GetByID godoc
// @Summary      Get a payment record by ID
// @Tags         payments
// @Produce      json
// @Param        id path string true "Payment record ID" format(uuid)
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /payments/{id} [get]
func (h *PaymentHandler) GetByID(c *gin.Context) {
	recordID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid payment record ID format")
		return
	}

	record, err := h.paymentService.GetRecord(c.Request.Context(), recordID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, record)
}

// List godoc
// @Summary      List payment records
// @Tags         payments
// @Produce      json
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Param        tenant_id query string false "Filter by tenant"
// @Param        status query string false "Filter by status" Enums(PENDIENTE, PARCIAL, PAGADO, VENCIDO)
// @Param        year query int false "Filter by year"
// @Success      200 {object} dto.Response
// @Router       /payments [get]
func (h *PaymentHandler) List(c *gin.Context) {
	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.paymentService.ListRecords(c.Request.Context(), listRequestToFilter(req, c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// MarkServicePaid godoc
// @Summary      Mark a contracted service as paid on a record
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        id path string true "Payment record ID" format(uuid)
// @Param        request body MarkServicePaidRequest true "Service payment request"
// @Success      204
// @Failure      404 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Router       /payments/{id}/services [put]
func (h *PaymentHandler) MarkServicePaid(c *gin.Context) {
	recordID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid payment record ID format")
		return
	}

	var req MarkServicePaidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	amount := decimal.NewFromFloat(req.Amount)
	if err := h.paymentService.MarkServicePaid(c.Request.Context(), recordID, req.ServiceType, amount); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// MarkFurniturePaid godoc
// @Summary      Mark the furniture surcharge as paid on a record
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        id path string true "Payment record ID" format(uuid)
// @Param        request body MarkFurniturePaidRequest true "Furniture payment request"
// @Success      204
// @Failure      404 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Router       /payments/{id}/furniture [put]
func (h *PaymentHandler) MarkFurniturePaid(c *gin.Context) {
	recordID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid payment record ID format")
		return
	}

	var req MarkFurniturePaidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	amount := decimal.NewFromFloat(req.Amount)
	if err := h.paymentService.MarkFurniturePaid(c.Request.Context(), recordID, amount); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// RefreshOverdue godoc
// @Summary      Re-evaluate a tenant's records against their billing anchor
// @Description  Flip unpaid records past the tenant's payment deadline to VENCIDO
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        request body RefreshOverdueRequest true "Refresh request"
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /payments/refresh-overdue [post]
func (h *PaymentHandler) RefreshOverdue(c *gin.Context) {
	var req RefreshOverdueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	tenantID, err := uuid.Parse(req.TenantID)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID format")
		return
	}

	updated, err := h.paymentService.RefreshOverdue(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, RefreshOverdueResponse{Updated: updated})
}
