package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/reflyh2/accounting-sub001/internal/core/ports/services"
	"github.com/reflyh2/accounting-sub001/internal/dto"
	"github.com/reflyh2/accounting-sub001/internal/middleware"
)

// reportingHandler handles HTTP requests for financial reports.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

// newReportingHandler creates a new reportingHandler.
func newReportingHandler(reportingService portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{reportingService: reportingService}
}

// registerReportingRoutes wires report endpoints into the router group.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("/general-ledger", h.generalLedger)
		reports.GET("/cash-bank-book", h.cashBankBook)
		reports.GET("/trial-balance", h.trialBalance)
	}
}

// trialBalanceParams parameterizes a trial balance report.
type trialBalanceParams struct {
	From time.Time `form:"from" time_format:"2006-01-02" binding:"required"`
	To   time.Time `form:"to" time_format:"2006-01-02" binding:"required"`
	dto.ScopeParams
}

// generalLedger godoc
// @Summary General ledger report
// @Description Per-account opening balance, dated entry rows with running balance, and ending balance
// @Tags reports
// @Produce json
// @Param accountID query []string true "Account IDs"
// @Param from query string true "Period start (YYYY-MM-DD)"
// @Param to query string true "Period end (YYYY-MM-DD)"
// @Param branchID query []string false "Branch scope"
// @Param companyID query []string false "Company scope"
// @Success 200 {object} dto.GeneralLedgerResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Router /reports/general-ledger [get]
func (h *reportingHandler) generalLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.GeneralLedgerParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}
	if params.To.Before(params.From) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "to must not be before from"})
		return
	}

	accounts, err := h.reportingService.GeneralLedger(c.Request.Context(), params)
	if err != nil {
		respondWithError(c, logger, err, "Failed to build general ledger report")
		return
	}
	c.JSON(http.StatusOK, dto.GeneralLedgerResponse{From: params.From, To: params.To, Accounts: accounts})
}

// cashBankBook godoc
// @Summary Cash/bank book report
// @Description Per-currency opening, debit, credit, and ending balances for cash/bank accounts
// @Tags reports
// @Produce json
// @Param accountID query []string false "Kas/bank account IDs; all in scope when omitted"
// @Param from query string true "Period start (YYYY-MM-DD)"
// @Param to query string true "Period end (YYYY-MM-DD)"
// @Param branchID query []string false "Branch scope"
// @Param companyID query []string false "Company scope"
// @Success 200 {object} dto.CashBankBookResponse
// @Failure 400 {object} map[string]string "Account is not a cash/bank account"
// @Router /reports/cash-bank-book [get]
func (h *reportingHandler) cashBankBook(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.CashBankBookParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}
	if params.To.Before(params.From) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "to must not be before from"})
		return
	}

	accounts, err := h.reportingService.CashBankBook(c.Request.Context(), params)
	if err != nil {
		respondWithError(c, logger, err, "Failed to build cash/bank book report")
		return
	}
	c.JSON(http.StatusOK, dto.CashBankBookResponse{From: params.From, To: params.To, Accounts: accounts})
}

// trialBalance godoc
// @Summary Trial balance report
// @Description Opening, period debit/credit, and closing per account with parent rollups
// @Tags reports
// @Produce json
// @Param from query string true "Period start (YYYY-MM-DD)"
// @Param to query string true "Period end (YYYY-MM-DD)"
// @Param branchID query []string false "Branch scope"
// @Param companyID query []string false "Company scope"
// @Success 200 {object} dto.TrialBalanceResponse
// @Router /reports/trial-balance [get]
func (h *reportingHandler) trialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params trialBalanceParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}
	if params.To.Before(params.From) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "to must not be before from"})
		return
	}

	rows, err := h.reportingService.TrialBalance(c.Request.Context(), params.From, params.To, params.Filter())
	if err != nil {
		respondWithError(c, logger, err, "Failed to build trial balance report")
		return
	}
	c.JSON(http.StatusOK, dto.TrialBalanceResponse{From: params.From, To: params.To, Rows: rows})
}
