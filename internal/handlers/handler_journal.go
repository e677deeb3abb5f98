package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/reflyh2/accounting-sub001/internal/core/ports/services"
	"github.com/reflyh2/accounting-sub001/internal/dto"
	"github.com/reflyh2/accounting-sub001/internal/middleware"
)

// journalHandler handles HTTP requests related to journals.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
}

// newJournalHandler creates a new journalHandler.
func newJournalHandler(journalService portssvc.JournalSvcFacade) *journalHandler {
	return &journalHandler{journalService: journalService}
}

// registerJournalRoutes wires journal endpoints into the router group.
func registerJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade) {
	h := newJournalHandler(journalService)

	journals := rg.Group("/journals")
	{
		journals.POST("", h.postJournal)
		journals.POST("/cash", h.postCashJournal)
		journals.GET("/:journalID", h.getJournal)
		journals.PUT("/:journalID", h.updateJournal)
		journals.DELETE("/:journalID", h.deleteJournal)
		journals.POST("/:journalID/reverse", h.reverseJournal)
	}
	rg.GET("/branches/:branchID/journals", h.listJournals)
}

// postJournal godoc
// @Summary Post a general journal
// @Description Validates and persists a balanced multi-line journal atomically
// @Tags journals
// @Accept json
// @Produce json
// @Param journal body dto.PostJournalRequest true "Journal details"
// @Success 201 {object} dto.JournalResponse "The posted journal"
// @Failure 400 {object} map[string]string "Unbalanced or invalid journal"
// @Failure 404 {object} map[string]string "Branch or account not found"
// @Router /journals [post]
func (h *journalHandler) postJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.PostJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for postJournal", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	journal, err := h.journalService.PostJournal(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to post journal")
		return
	}

	logger.Info("Journal posted",
		slog.String("journal_id", journal.JournalID),
		slog.String("journal_number", journal.JournalNumber))
	c.JSON(http.StatusCreated, dto.ToJournalResponse(journal))
}

// postCashJournal godoc
// @Summary Post a cash receipt or payment
// @Description Posts N document lines against one aggregated cash/bank counter-line
// @Tags journals
// @Accept json
// @Produce json
// @Param journal body dto.PostCashJournalRequest true "Cash journal details"
// @Success 201 {object} dto.JournalResponse "The posted journal"
// @Failure 400 {object} map[string]string "Invalid lines or account type"
// @Failure 404 {object} map[string]string "Branch or account not found"
// @Router /journals/cash [post]
func (h *journalHandler) postCashJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.PostCashJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for postCashJournal", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	journal, err := h.journalService.PostCashJournal(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to post cash journal")
		return
	}

	logger.Info("Cash journal posted",
		slog.String("journal_id", journal.JournalID),
		slog.String("journal_number", journal.JournalNumber))
	c.JSON(http.StatusCreated, dto.ToJournalResponse(journal))
}

// getJournal godoc
// @Summary Get a journal
// @Description Retrieves a journal with its entries
// @Tags journals
// @Produce json
// @Param journalID path string true "Journal ID"
// @Success 200 {object} dto.JournalResponse
// @Failure 404 {object} map[string]string "Journal not found"
// @Router /journals/{journalID} [get]
func (h *journalHandler) getJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	journalID := c.Param("journalID")

	journal, err := h.journalService.GetJournalByID(c.Request.Context(), journalID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to retrieve journal")
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalResponse(journal))
}

// listJournals godoc
// @Summary List journals for a branch
// @Description Lists journals newest first with cursor pagination; reversal pairs hidden unless requested
// @Tags journals
// @Produce json
// @Param branchID path string true "Branch ID"
// @Param limit query int false "Page size (default 20)"
// @Param nextToken query string false "Cursor from previous page"
// @Param includeReversals query bool false "Include reversed journals and their reversing counterparts"
// @Param includeEntries query bool false "Attach entries to each journal"
// @Success 200 {object} dto.ListJournalsResponse
// @Router /branches/{branchID}/journals [get]
func (h *journalHandler) listJournals(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	branchID := c.Param("branchID")

	var params dto.ListJournalsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	resp, err := h.journalService.ListJournals(c.Request.Context(), branchID, params)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list journals")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// updateJournal godoc
// @Summary Update a journal
// @Description Replaces header fields and entries; branch and fiscal year are immutable
// @Tags journals
// @Accept json
// @Produce json
// @Param journalID path string true "Journal ID"
// @Param journal body dto.UpdateJournalRequest true "Fields to update"
// @Success 200 {object} dto.JournalResponse
// @Failure 400 {object} map[string]string "Unbalanced or invalid entries"
// @Failure 404 {object} map[string]string "Journal not found"
// @Failure 409 {object} map[string]string "Journal not editable or fiscal year change"
// @Router /journals/{journalID} [put]
func (h *journalHandler) updateJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	journalID := c.Param("journalID")

	var req dto.UpdateJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for updateJournal", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	journal, err := h.journalService.UpdateJournal(c.Request.Context(), journalID, req, userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to update journal")
		return
	}

	logger.Info("Journal updated", slog.String("journal_id", journalID))
	c.JSON(http.StatusOK, dto.ToJournalResponse(journal))
}

// deleteJournal godoc
// @Summary Delete a journal
// @Description Removes a journal and its entries, rolling back balance effects
// @Tags journals
// @Produce json
// @Param journalID path string true "Journal ID"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]string "Journal not found"
// @Failure 409 {object} map[string]string "Journal has been reversed"
// @Router /journals/{journalID} [delete]
func (h *journalHandler) deleteJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	journalID := c.Param("journalID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.journalService.DeleteJournal(c.Request.Context(), journalID, userID); err != nil {
		respondWithError(c, logger, err, "Failed to delete journal")
		return
	}

	logger.Info("Journal deleted", slog.String("journal_id", journalID))
	c.Status(http.StatusNoContent)
}

// reverseJournal godoc
// @Summary Reverse a journal
// @Description Posts a mirrored journal and marks the original as reversed
// @Tags journals
// @Produce json
// @Param journalID path string true "Journal ID"
// @Success 201 {object} dto.JournalResponse "The reversing journal"
// @Failure 404 {object} map[string]string "Journal not found"
// @Failure 409 {object} map[string]string "Journal already reversed or is itself a reversal"
// @Router /journals/{journalID}/reverse [post]
func (h *journalHandler) reverseJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	journalID := c.Param("journalID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	journal, err := h.journalService.ReverseJournal(c.Request.Context(), journalID, userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to reverse journal")
		return
	}

	logger.Info("Journal reversed",
		slog.String("original_journal_id", journalID),
		slog.String("reversing_journal_id", journal.JournalID))
	c.JSON(http.StatusCreated, dto.ToJournalResponse(journal))
}
