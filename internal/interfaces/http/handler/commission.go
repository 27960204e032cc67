package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	ledgerapp "github.com/rentledger/backend/internal/application/ledger"
	"github.com/rentledger/backend/internal/domain/ledger"
)

// CommissionHandler handles commission API endpoints
type CommissionHandler struct {
	BaseHandler
	commissionService *ledgerapp.CommissionService
}

// NewCommissionHandler creates a new CommissionHandler
func NewCommissionHandler(commissionService *ledgerapp.CommissionService) *CommissionHandler {
	return &CommissionHandler{
		commissionService: commissionService,
	}
}

// SetCollectedRequest represents a request to flag a month's fee as collected
type SetCollectedRequest struct {
	Collected bool `json:"collected" example:"true"`
}

// parsePeriodParams parses year and month path parameters into a period
func parsePeriodParams(c *gin.Context) (ledger.Period, bool) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		return ledger.Period{}, false
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil || month < 1 || month > 12 {
		return ledger.Period{}, false
	}
	return ledger.Period{Year: year, Month: time.Month(month)}, true
}

// ComputeMonthly godoc
// @Summary      Compute the management fee for a month
// @Description  Derive the fee from settled records attributed to the period and report which occupied properties have not paid yet
// @Tags         commissions
// @Produce      json
// @Param        year path int true "Year" example(2024)
// @Param        month path int true "Month (1-12)" example(3)
// @Success      200 {object} dto.Response
// @Router       /commissions/{year}/{month} [get]
func (h *CommissionHandler) ComputeMonthly(c *gin.Context) {
	period, ok := parsePeriodParams(c)
	if !ok {
		h.BadRequest(c, "Invalid year or month")
		return
	}

	report, err := h.commissionService.ComputeMonthly(c.Request.Context(), period)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, report)
}

// YearOverview godoc
// @Summary      List the year's commission records
// @Tags         commissions
// @Produce      json
// @Param        year path int true "Year" example(2024)
// @Success      200 {object} dto.Response
// @Router       /commissions/{year} [get]
func (h *CommissionHandler) YearOverview(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		h.BadRequest(c, "Invalid year")
		return
	}

	records, err := h.commissionService.YearOverview(c.Request.Context(), year)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, records)
}

// SetCollected godoc
// @Summary      Flag a month's fee as collected or not
// @Tags         commissions
// @Accept       json
// @Produce      json
// @Param        year path int true "Year" example(2024)
// @Param        month path int true "Month (1-12)" example(3)
// @Param        request body SetCollectedRequest true "Collection flag"
// @Success      200 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Router       /commissions/{year}/{month}/collected [put]
func (h *CommissionHandler) SetCollected(c *gin.Context) {
	period, ok := parsePeriodParams(c)
	if !ok {
		h.BadRequest(c, "Invalid year or month")
		return
	}

	var req SetCollectedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	record, err := h.commissionService.SetCollected(c.Request.Context(), period, req.Collected)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, record)
}
