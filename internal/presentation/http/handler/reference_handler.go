package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mataampos/mataam-api/internal/application/service"
	"github.com/mataampos/mataam-api/internal/presentation/http/dto/request"
	"github.com/mataampos/mataam-api/internal/presentation/http/dto/response"
)

// ReferenceHandler handles reference-table HTTP requests: banks, currencies,
// branches and employees.
type ReferenceHandler struct {
	referenceService *service.ReferenceService
}

// NewReferenceHandler creates a new reference handler
func NewReferenceHandler(referenceService *service.ReferenceService) *ReferenceHandler {
	return &ReferenceHandler{referenceService: referenceService}
}

// CreateBank handles adding a bank
func (h *ReferenceHandler) CreateBank(c *gin.Context) {
	var req request.CreateBankRequest
	if !bindJSON(c, &req) {
		return
	}

	bank, err := h.referenceService.CreateBank(c.Request.Context(), req.Name)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Bank created successfully", bank)
}

// ListBanks handles listing all banks
func (h *ReferenceHandler) ListBanks(c *gin.Context) {
	banks, err := h.referenceService.ListBanks(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Banks retrieved successfully", banks)
}

// DeleteBank handles removing a bank
func (h *ReferenceHandler) DeleteBank(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid bank ID")
		return
	}

	if err := h.referenceService.DeleteBank(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Bank deleted successfully", nil)
}

// CreateCurrency handles configuring a currency
func (h *ReferenceHandler) CreateCurrency(c *gin.Context) {
	var req request.CreateCurrencyRequest
	if !bindJSON(c, &req) {
		return
	}

	currency, err := h.referenceService.CreateCurrency(c.Request.Context(), &service.CreateCurrencyInput{
		Name:         req.Name,
		Symbol:       req.Symbol,
		ExchangeRate: req.ExchangeRate,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Currency created successfully", currency)
}

// ListCurrencies handles listing configured currencies
func (h *ReferenceHandler) ListCurrencies(c *gin.Context) {
	currencies, err := h.referenceService.ListCurrencies(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Currencies retrieved successfully", currencies)
}

// UpdateCurrencyRate handles the informational exchange-rate update
func (h *ReferenceHandler) UpdateCurrencyRate(c *gin.Context) {
	var req request.UpdateCurrencyRateRequest
	if !bindJSON(c, &req) {
		return
	}

	currency, err := h.referenceService.UpdateCurrencyRate(c.Request.Context(), c.Param("symbol"), req.ExchangeRate)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Currency updated successfully", currency)
}

// DeleteCurrency handles removing a configured currency
func (h *ReferenceHandler) DeleteCurrency(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid currency ID")
		return
	}

	if err := h.referenceService.DeleteCurrency(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Currency deleted successfully", nil)
}

// CreateBranch handles adding a branch
func (h *ReferenceHandler) CreateBranch(c *gin.Context) {
	var req request.CreateBranchRequest
	if !bindJSON(c, &req) {
		return
	}

	branch, err := h.referenceService.CreateBranch(c.Request.Context(), &service.CreateBranchInput{
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Branch created successfully", branch)
}

// ListBranches handles listing all branches
func (h *ReferenceHandler) ListBranches(c *gin.Context) {
	branches, err := h.referenceService.ListBranches(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Branches retrieved successfully", branches)
}

// UpdateBranch handles editing a branch
func (h *ReferenceHandler) UpdateBranch(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid branch ID")
		return
	}

	var req request.UpdateBranchRequest
	if !bindJSON(c, &req) {
		return
	}

	branch, err := h.referenceService.UpdateBranch(c.Request.Context(), id, &service.UpdateBranchInput{
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Branch updated successfully", branch)
}

// DeleteBranch handles removing a branch
func (h *ReferenceHandler) DeleteBranch(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid branch ID")
		return
	}

	if err := h.referenceService.DeleteBranch(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Branch deleted successfully", nil)
}

// CreateEmployee handles adding a staff member
func (h *ReferenceHandler) CreateEmployee(c *gin.Context) {
	var req request.CreateEmployeeRequest
	if !bindJSON(c, &req) {
		return
	}

	employee, err := h.referenceService.CreateEmployee(c.Request.Context(), &service.CreateEmployeeInput{
		BranchID: req.BranchID,
		Name:     req.Name,
		Phone:    req.Phone,
		Salary:   req.Salary,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Employee created successfully", employee)
}

// ListEmployees handles listing staff
func (h *ReferenceHandler) ListEmployees(c *gin.Context) {
	employees, err := h.referenceService.ListEmployees(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Employees retrieved successfully", employees)
}

// GetEmployee handles getting one staff member
func (h *ReferenceHandler) GetEmployee(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid employee ID")
		return
	}

	employee, err := h.referenceService.GetEmployee(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Employee retrieved successfully", employee)
}

// UpdateEmployee handles editing a staff member
func (h *ReferenceHandler) UpdateEmployee(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid employee ID")
		return
	}

	var req request.UpdateEmployeeRequest
	if !bindJSON(c, &req) {
		return
	}

	employee, err := h.referenceService.UpdateEmployee(c.Request.Context(), id, &service.UpdateEmployeeInput{
		BranchID: req.BranchID,
		Name:     req.Name,
		Phone:    req.Phone,
		Salary:   req.Salary,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Employee updated successfully", employee)
}

// DeleteEmployee handles removing a staff member
func (h *ReferenceHandler) DeleteEmployee(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid employee ID")
		return
	}

	if err := h.referenceService.DeleteEmployee(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Employee deleted successfully", nil)
}
