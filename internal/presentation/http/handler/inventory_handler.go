package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mataampos/mataam-api/internal/application/service"
	"github.com/mataampos/mataam-api/internal/domain/repository"
	"github.com/mataampos/mataam-api/internal/presentation/http/dto/request"
	"github.com/mataampos/mataam-api/internal/presentation/http/dto/response"
	"github.com/mataampos/mataam-api/pkg/pagination"
)

// InventoryHandler handles stock administration HTTP requests
type InventoryHandler struct {
	inventoryService *service.InventoryService
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(inventoryService *service.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService}
}

// List handles listing inventory rows
func (h *InventoryHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &repository.InventoryFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    page,
			PerPage: perPage,
		},
		Search:   c.Query("search"),
		LowStock: c.Query("low_stock") == "true",
	}

	result, err := h.inventoryService.ListStock(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Inventory retrieved successfully", result)
}

// Get handles getting one product's stock row
func (h *InventoryHandler) Get(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("product_id"))
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	item, err := h.inventoryService.GetStock(c.Request.Context(), productID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Stock retrieved successfully", item)
}

// Set handles the administrative quantity overwrite
func (h *InventoryHandler) Set(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("product_id"))
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	var req request.SetStockRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := h.inventoryService.SetStock(c.Request.Context(), productID, req.Quantity, req.QuantityAlert)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Stock updated successfully", item)
}
