package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mataampos/mataam-api/internal/application/service"
	"github.com/mataampos/mataam-api/internal/domain/enum"
	"github.com/mataampos/mataam-api/internal/domain/repository"
	"github.com/mataampos/mataam-api/internal/presentation/http/dto/request"
	"github.com/mataampos/mataam-api/internal/presentation/http/dto/response"
	"github.com/mataampos/mataam-api/pkg/pagination"
)

// TransactionHandler handles revenue/expense ledger HTTP requests
type TransactionHandler struct {
	transactionService *service.TransactionService
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(transactionService *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// Post handles recording a ledger posting
func (h *TransactionHandler) Post(c *gin.Context) {
	var req request.PostTransactionRequest
	if !bindJSON(c, &req) {
		return
	}

	txn, err := h.transactionService.PostTransaction(c.Request.Context(), &service.PostTransactionInput{
		OccurredAt:  req.OccurredAt,
		Type:        enum.TransactionType(req.Type),
		Class:       enum.TransactionClass(req.Classification),
		Amount:      req.Amount,
		Currency:    req.Currency,
		Description: req.Description,
		RelatedID:   req.RelatedID,
		UserID:      GetUserID(c),
		BranchID:    req.BranchID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Transaction recorded successfully", txn)
}

// PaySalary handles posting a salary payout for an employee
func (h *TransactionHandler) PaySalary(c *gin.Context) {
	var req request.PaySalaryRequest
	if !bindJSON(c, &req) {
		return
	}

	txn, err := h.transactionService.PaySalary(c.Request.Context(), &service.PaySalaryInput{
		EmployeeID: req.EmployeeID,
		Amount:     req.Amount,
		Currency:   req.Currency,
		UserID:     GetUserID(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Salary recorded successfully", txn)
}

// List handles listing ledger postings
func (h *TransactionHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &repository.TransactionFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    page,
			PerPage: perPage,
		},
		Currency: c.Query("currency"),
	}

	if typeStr := c.Query("type"); typeStr != "" {
		txnType := enum.TransactionType(typeStr)
		if !txnType.Valid() {
			response.BadRequest(c, "Unknown transaction type")
			return
		}
		params.Type = &txnType
	}

	if classStr := c.Query("classification"); classStr != "" {
		class := enum.TransactionClass(classStr)
		if !class.Valid() {
			response.BadRequest(c, "Unknown transaction classification")
			return
		}
		params.Class = &class
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

	result, err := h.transactionService.ListTransactions(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Transactions retrieved successfully", result)
}

// Get handles getting a single posting
func (h *TransactionHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid transaction ID")
		return
	}

	txn, err := h.transactionService.GetTransaction(c.Request.Context(), uint(id))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Transaction retrieved successfully", txn)
}

// Delete handles removing one posting
func (h *TransactionHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid transaction ID")
		return
	}

	if err := h.transactionService.DeleteTransaction(c.Request.Context(), uint(id)); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Transaction deleted successfully", nil)
}

// Clear handles wiping the whole ledger
func (h *TransactionHandler) Clear(c *gin.Context) {
	if err := h.transactionService.ClearTransactions(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Transactions cleared successfully", nil)
}

// Aggregate handles per-currency revenue/expense totals
func (h *TransactionHandler) Aggregate(c *gin.Context) {
	filter := &repository.TransactionAggregateFilter{
		Currency: c.Query("currency"),
	}

	if typeStr := c.Query("type"); typeStr != "" {
		txnType := enum.TransactionType(typeStr)
		if !txnType.Valid() {
			response.BadRequest(c, "Unknown transaction type")
			return
		}
		filter.Type = &txnType
	}

	if startDateStr := c.Query("start_date"); startDateStr != "" {
		if startDate, err := time.Parse("2006-01-02", startDateStr); err == nil {
			filter.StartDate = &startDate
		}
	}

	if endDateStr := c.Query("end_date"); endDateStr != "" {
		if endDate, err := time.Parse("2006-01-02", endDateStr); err == nil {
			filter.EndDate = &endDate
		}
	}

	totals, err := h.transactionService.Aggregate(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Totals retrieved successfully", totals)
}
