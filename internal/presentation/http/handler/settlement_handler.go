package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mataampos/mataam-api/internal/application/service"
	"github.com/mataampos/mataam-api/internal/domain/repository"
	"github.com/mataampos/mataam-api/internal/presentation/http/dto/response"
	"github.com/mataampos/mataam-api/pkg/pagination"
)

// SettlementHandler handles close-day and summary HTTP requests
type SettlementHandler struct {
	settlementService *service.SettlementService
}

// NewSettlementHandler creates a new settlement handler
func NewSettlementHandler(settlementService *service.SettlementService) *SettlementHandler {
	return &SettlementHandler{settlementService: settlementService}
}

// CloseDay handles settling a business day. The date defaults to today;
// admins may pass an explicit date for late closes.
func (h *SettlementHandler) CloseDay(c *gin.Context) {
	businessDate := time.Now().UTC()
	if dateStr := c.Query("date"); dateStr != "" {
		parsed, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			response.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
			return
		}
		businessDate = parsed
	}

	summary, err := h.settlementService.CloseDay(c.Request.Context(), businessDate)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Business day closed successfully", summary)
}

// ListSummaries handles listing daily summaries
func (h *SettlementHandler) ListSummaries(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &repository.SummaryFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    page,
			PerPage: perPage,
		},
	}

	if startDateStr := c.Query("start_date"); startDateStr != "" {
		if startDate, err := time.Parse("2006-01-02", startDateStr); err == nil {
			params.StartDate = &startDate
		}
	}

	if endDateStr := c.Query("end_date"); endDateStr != "" {
		if endDate, err := time.Parse("2006-01-02", endDateStr); err == nil {
			params.EndDate = &endDate
		}
	}

	result, err := h.settlementService.ListSummaries(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Summaries retrieved successfully", result)
}

// GetSummary handles getting one summary by id or date
func (h *SettlementHandler) GetSummary(c *gin.Context) {
	idParam := c.Param("id")

	if date, err := time.Parse("2006-01-02", idParam); err == nil {
		summary, err := h.settlementService.GetSummaryByDate(c.Request.Context(), date)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, "Summary retrieved successfully", summary)
		return
	}

	id, err := strconv.ParseUint(idParam, 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid summary ID")
		return
	}

	summary, err := h.settlementService.GetSummary(c.Request.Context(), uint(id))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Summary retrieved successfully", summary)
}

// DeleteSummary handles removing one summary row
func (h *SettlementHandler) DeleteSummary(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid summary ID")
		return
	}

	if err := h.settlementService.DeleteSummary(c.Request.Context(), uint(id)); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Summary deleted successfully", nil)
}

// ClearSummaries handles wiping the settlement log
func (h *SettlementHandler) ClearSummaries(c *gin.Context) {
	if err := h.settlementService.ClearSummaries(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Summaries cleared successfully", nil)
}

// ListArchivedOrders handles listing archived orders
func (h *SettlementHandler) ListArchivedOrders(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &repository.ArchivedOrderFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    page,
			PerPage: perPage,
		},
	}

	if dateStr := c.Query("date"); dateStr != "" {
		date, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			response.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
			return
		}
		params.BusinessDate = &date
	}

	result, err := h.settlementService.ListArchivedOrders(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Archived orders retrieved successfully", result)
}
