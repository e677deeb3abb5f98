package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/reflyh2/accounting-sub001/internal/core/domain"
	portssvc "github.com/reflyh2/accounting-sub001/internal/core/ports/services"
	"github.com/reflyh2/accounting-sub001/internal/dto"
	"github.com/reflyh2/accounting-sub001/internal/middleware"
)

// debtHandler handles HTTP requests for receivable/payable documents and
// their reports.
type debtHandler struct {
	debtService portssvc.DebtSvcFacade
}

// newDebtHandler creates a new debtHandler.
func newDebtHandler(debtService portssvc.DebtSvcFacade) *debtHandler {
	return &debtHandler{debtService: debtService}
}

// registerDebtRoutes wires debt endpoints into the router group.
func registerDebtRoutes(rg *gin.RouterGroup, debtService portssvc.DebtSvcFacade) {
	h := newDebtHandler(debtService)

	debts := rg.Group("/debts")
	{
		debts.POST("", h.createDebt)
		debts.POST("/payments", h.recordPayment)
		debts.GET("/aging", h.aging)
		debts.GET("/mutation", h.mutation)
	}
}

// agingParams parameterizes an aging report query.
type agingParams struct {
	DebtType domain.DebtType `form:"debtType" binding:"required,oneof=RECEIVABLE PAYABLE"`
	AsOf     time.Time       `form:"asOf" time_format:"2006-01-02" binding:"required"`
	dto.ScopeParams
}

// mutationParams parameterizes a debt mutation report query.
type mutationParams struct {
	DebtType domain.DebtType `form:"debtType" binding:"required,oneof=RECEIVABLE PAYABLE"`
	From     time.Time       `form:"from" time_format:"2006-01-02" binding:"required"`
	To       time.Time       `form:"to" time_format:"2006-01-02" binding:"required"`
	dto.ScopeParams
}

// createDebt godoc
// @Summary Record a receivable/payable document
// @Description Captures an external debt document with its currency and rate snapshot
// @Tags debts
// @Accept json
// @Produce json
// @Param debt body dto.CreateDebtRequest true "Debt document details"
// @Success 201 {object} dto.DebtResponse "The recorded document"
// @Failure 400 {object} map[string]string "Invalid amount or dates"
// @Failure 409 {object} map[string]string "Duplicate document number"
// @Router /debts [post]
func (h *debtHandler) createDebt(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateDebtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for createDebt", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	debt, err := h.debtService.CreateDebt(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to record debt document")
		return
	}

	logger.Info("Debt document recorded",
		slog.String("debt_id", debt.DebtID),
		slog.String("number", debt.Number))
	c.JSON(http.StatusCreated, dto.ToDebtResponse(debt))
}

// recordPayment godoc
// @Summary Record a payment against a debt document
// @Description Allocates a payment to one document; cheque/giro payments carry a withdrawal date
// @Tags debts
// @Accept json
// @Produce json
// @Param payment body dto.RecordPaymentRequest true "Payment details"
// @Success 201 {object} dto.PaymentResponse "The recorded payment"
// @Failure 400 {object} map[string]string "Overpayment or missing withdrawal date"
// @Failure 404 {object} map[string]string "Debt document not found"
// @Router /debts/payments [post]
func (h *debtHandler) recordPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for recordPayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	payment, err := h.debtService.RecordPayment(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to record payment")
		return
	}

	logger.Info("Payment recorded",
		slog.String("payment_id", payment.PaymentID),
		slog.String("debt_id", payment.DebtID))
	c.JSON(http.StatusCreated, dto.ToPaymentResponse(payment))
}

// aging godoc
// @Summary Aging report
// @Description Buckets outstanding documents by days past due as of a date; fully paid documents are excluded
// @Tags debts
// @Produce json
// @Param debtType query string true "RECEIVABLE or PAYABLE"
// @Param asOf query string true "Report date (YYYY-MM-DD)"
// @Param branchID query []string false "Branch scope"
// @Param companyID query []string false "Company scope"
// @Success 200 {object} domain.AgingReport
// @Router /debts/aging [get]
func (h *debtHandler) aging(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params agingParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	report, err := h.debtService.Aging(c.Request.Context(), params.DebtType, params.AsOf, params.Filter())
	if err != nil {
		respondWithError(c, logger, err, "Failed to build aging report")
		return
	}
	c.JSON(http.StatusOK, report)
}

// mutation godoc
// @Summary Debt mutation report
// @Description Opening, issued, paid, and closing amounts per document over a period
// @Tags debts
// @Produce json
// @Param debtType query string true "RECEIVABLE or PAYABLE"
// @Param from query string true "Period start (YYYY-MM-DD)"
// @Param to query string true "Period end (YYYY-MM-DD)"
// @Param branchID query []string false "Branch scope"
// @Param companyID query []string false "Company scope"
// @Success 200 {object} domain.DebtMutationReport
// @Router /debts/mutation [get]
func (h *debtHandler) mutation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params mutationParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}
	if params.To.Before(params.From) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "to must not be before from"})
		return
	}

	report, err := h.debtService.Mutation(c.Request.Context(), params.DebtType, params.From, params.To, params.Filter())
	if err != nil {
		respondWithError(c, logger, err, "Failed to build mutation report")
		return
	}
	c.JSON(http.StatusOK, report)
}
