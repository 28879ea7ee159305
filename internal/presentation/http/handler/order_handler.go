package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mataampos/mataam-api/internal/application/service"
	"github.com/mataampos/mataam-api/internal/domain/entity"
	"github.com/mataampos/mataam-api/internal/domain/enum"
	"github.com/mataampos/mataam-api/internal/domain/repository"
	"github.com/mataampos/mataam-api/internal/presentation/http/dto/request"
	"github.com/mataampos/mataam-api/internal/presentation/http/dto/response"
	"github.com/mataampos/mataam-api/pkg/pagination"
)

// OrderHandler handles order ledger HTTP requests
type OrderHandler struct {
	orderService *service.OrderService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// Create handles recording a sale
func (h *OrderHandler) Create(c *gin.Context) {
	var req request.CreateOrderRequest
	if !bindJSON(c, &req) {
		return
	}

	fulfillment := enum.FulfillmentType(req.FulfillmentType)
	if req.FulfillmentType == "" {
		fulfillment = enum.FulfillmentPickup
	}

	items := make([]service.CreateOrderItemInput, len(req.Items))
	for i, item := range req.Items {
		items[i] = service.CreateOrderItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Note:      item.Note,
		}
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), &service.CreateOrderInput{
		UserID:          GetUserID(c),
		CashierName:     req.CashierName,
		CustomerName:    req.CustomerName,
		FulfillmentType: fulfillment,
		Payment: entity.PaymentDetails{
			Method:    enum.PaymentMethod(req.PaymentMethod),
			BankName:  req.BankName,
			Recipient: req.HospitalityRecipient,
		},
		Discount: req.Discount,
		Notes:    req.Notes,
		Items:    items,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Order created successfully", order)
}

// List handles listing active orders
func (h *OrderHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &repository.OrderFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    page,
			PerPage: perPage,
		},
		Search: c.Query("search"),
	}

	if statusStr := c.Query("status"); statusStr != "" {
		status, err := enum.ParseOrderStatus(statusStr)
		if err != nil {
			response.BadRequest(c, "Unknown order status")
			return
		}
		params.Status = &status
	}

	if methodStr := c.Query("payment_method"); methodStr != "" {
		method := enum.PaymentMethod(methodStr)
		if !method.Valid() {
			response.BadRequest(c, "Unknown payment method")
			return
		}
		params.PaymentMethod = &method
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

	result, err := h.orderService.ListOrders(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Orders retrieved successfully", result)
}

// Get handles getting a single order
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order retrieved successfully", order)
}

// UpdateStatus handles moving an order through its lifecycle
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}

	var req request.UpdateOrderStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	status, err := enum.ParseOrderStatus(req.Status)
	if err != nil {
		response.BadRequest(c, "Unknown order status")
		return
	}

	order, err := h.orderService.UpdateOrderStatus(c.Request.Context(), id, status)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order status updated successfully", order)
}

// Refund handles rejecting an order and crediting stock back
func (h *OrderHandler) Refund(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}

	order, err := h.orderService.RefundOrder(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order refunded successfully", order)
}

// Delete handles the administrative hard delete
func (h *OrderHandler) Delete(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}

	if err := h.orderService.DeleteOrder(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order deleted successfully", nil)
}

func orderID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return 0, false
	}
	return uint(id), true
}
