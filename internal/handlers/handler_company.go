package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/reflyh2/accounting-sub001/internal/core/ports/services"
	"github.com/reflyh2/accounting-sub001/internal/dto"
	"github.com/reflyh2/accounting-sub001/internal/middleware"
)

// companyHandler handles HTTP requests for companies and branches.
type companyHandler struct {
	companyService portssvc.CompanySvcFacade
}

// newCompanyHandler creates a new companyHandler.
func newCompanyHandler(companyService portssvc.CompanySvcFacade) *companyHandler {
	return &companyHandler{companyService: companyService}
}

// registerCompanyRoutes wires company and branch endpoints into the router group.
func registerCompanyRoutes(rg *gin.RouterGroup, companyService portssvc.CompanySvcFacade) {
	h := newCompanyHandler(companyService)

	companies := rg.Group("/companies")
	{
		companies.POST("", h.createCompany)
		companies.GET("", h.listCompanies)
		companies.GET("/:companyID", h.getCompany)
		companies.DELETE("/:companyID", h.deleteCompany)
	}

	branches := rg.Group("/branches")
	{
		branches.POST("", h.createBranch)
		branches.GET("", h.listBranches)
		branches.GET("/:branchID", h.getBranch)
	}
}

// createCompany godoc
// @Summary Create a company
// @Tags companies
// @Accept json
// @Produce json
// @Param company body dto.CreateCompanyRequest true "Company details"
// @Success 201 {object} dto.CompanyResponse
// @Failure 409 {object} map[string]string "Duplicate name"
// @Router /companies [post]
func (h *companyHandler) createCompany(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for createCompany", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	company, err := h.companyService.CreateCompany(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to create company")
		return
	}

	logger.Info("Company created", slog.String("company_id", company.CompanyID))
	c.JSON(http.StatusCreated, dto.ToCompanyResponse(company))
}

// listCompanies godoc
// @Summary List companies
// @Tags companies
// @Produce json
// @Success 200 {array} dto.CompanyResponse
// @Router /companies [get]
func (h *companyHandler) listCompanies(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	companies, err := h.companyService.ListCompanies(c.Request.Context())
	if err != nil {
		respondWithError(c, logger, err, "Failed to list companies")
		return
	}

	responses := make([]dto.CompanyResponse, len(companies))
	for i := range companies {
		responses[i] = dto.ToCompanyResponse(&companies[i])
	}
	c.JSON(http.StatusOK, responses)
}

// getCompany godoc
// @Summary Get a company
// @Tags companies
// @Produce json
// @Param companyID path string true "Company ID"
// @Success 200 {object} dto.CompanyResponse
// @Failure 404 {object} map[string]string "Company not found"
// @Router /companies/{companyID} [get]
func (h *companyHandler) getCompany(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	company, err := h.companyService.GetCompany(c.Request.Context(), c.Param("companyID"))
	if err != nil {
		respondWithError(c, logger, err, "Failed to retrieve company")
		return
	}
	c.JSON(http.StatusOK, dto.ToCompanyResponse(company))
}

// deleteCompany godoc
// @Summary Delete a company
// @Description Removes a company; blocked while branches or accounts reference it
// @Tags companies
// @Produce json
// @Param companyID path string true "Company ID"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]string "Company not found"
// @Failure 409 {object} map[string]string "Dependent records exist"
// @Router /companies/{companyID} [delete]
func (h *companyHandler) deleteCompany(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.companyService.DeleteCompany(c.Request.Context(), companyID, userID); err != nil {
		respondWithError(c, logger, err, "Failed to delete company")
		return
	}

	logger.Info("Company deleted", slog.String("company_id", companyID))
	c.Status(http.StatusNoContent)
}

// createBranch godoc
// @Summary Create a branch
// @Tags companies
// @Accept json
// @Produce json
// @Param branch body dto.CreateBranchRequest true "Branch details"
// @Success 201 {object} dto.BranchResponse
// @Failure 404 {object} map[string]string "Company not found"
// @Failure 409 {object} map[string]string "Duplicate branch code"
// @Router /branches [post]
func (h *companyHandler) createBranch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for createBranch", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	branch, err := h.companyService.CreateBranch(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to create branch")
		return
	}

	logger.Info("Branch created", slog.String("branch_id", branch.BranchID))
	c.JSON(http.StatusCreated, dto.ToBranchResponse(branch))
}

// listBranches godoc
// @Summary List branches
// @Tags companies
// @Produce json
// @Param companyID query string false "Company ID filter"
// @Success 200 {array} dto.BranchResponse
// @Router /branches [get]
func (h *companyHandler) listBranches(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var companyID *string
	if v := c.Query("companyID"); v != "" {
		companyID = &v
	}

	branches, err := h.companyService.ListBranches(c.Request.Context(), companyID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list branches")
		return
	}

	responses := make([]dto.BranchResponse, len(branches))
	for i := range branches {
		responses[i] = dto.ToBranchResponse(&branches[i])
	}
	c.JSON(http.StatusOK, responses)
}

// getBranch godoc
// @Summary Get a branch
// @Tags companies
// @Produce json
// @Param branchID path string true "Branch ID"
// @Success 200 {object} dto.BranchResponse
// @Failure 404 {object} map[string]string "Branch not found"
// @Router /branches/{branchID} [get]
func (h *companyHandler) getBranch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	branch, err := h.companyService.GetBranch(c.Request.Context(), c.Param("branchID"))
	if err != nil {
		respondWithError(c, logger, err, "Failed to retrieve branch")
		return
	}
	c.JSON(http.StatusOK, dto.ToBranchResponse(branch))
}
