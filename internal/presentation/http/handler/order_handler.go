package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"opticare-backend/internal/application/service"
	"opticare-backend/internal/domain/enum"
	"opticare-backend/internal/domain/finance"
	"opticare-backend/internal/domain/repository"
	"opticare-backend/internal/presentation/http/dto/request"
	"opticare-backend/internal/presentation/http/dto/response"
	"opticare-backend/pkg/pagination"
)

// OrderHandler handles order-related HTTP requests
type OrderHandler struct {
	orderService *service.OrderService
	numbers      *service.NumberGenerator
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *service.OrderService, numbers *service.NumberGenerator) *OrderHandler {
	return &OrderHandler{orderService: orderService, numbers: numbers}
}

// Save handles creating a new order. Rewrites of an existing order go
// through Update; a resubmitted save fails as a duplicate instead.
func (h *OrderHandler) Save(c *gin.Context) {
	var req request.SaveOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input, err := saveInputFromRequest(&req)
	if err != nil {
		response.BadRequest(c, "Invalid prescription ID")
		return
	}

	if input.OrderNo == "" {
		input.OrderNo, err = h.numbers.Generate(c.Request.Context(), service.NumberKindOrder)
		if err != nil {
			response.Error(c, err)
			return
		}
	}

	orderID, err := h.orderService.SaveOrder(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Order saved successfully", gin.H{"order_id": orderID, "order_no": input.OrderNo})
}

// Update handles rewriting an existing order in place
func (h *OrderHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	var req request.SaveOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input, err := saveInputFromRequest(&req)
	if err != nil {
		response.BadRequest(c, "Invalid prescription ID")
		return
	}

	orderID, err := h.orderService.UpdateOrder(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order updated successfully", gin.H{"order_id": orderID, "order_no": input.OrderNo})
}

func saveInputFromRequest(req *request.SaveOrderRequest) (*service.SaveOrderInput, error) {
	prescriptionID, err := uuid.Parse(req.PrescriptionID)
	if err != nil {
		return nil, err
	}

	input := &service.SaveOrderInput{
		OrderNo:        req.OrderNo,
		PrescriptionID: prescriptionID,
		BillNo:         req.BillNo,
		OrderDate:      parseDate(req.OrderDate, time.Now()),
		Remarks:        req.Remarks,
		BookedBy:       req.BookedBy,
		Items:          make([]service.OrderItemInput, len(req.Items)),
		Payment: service.PaymentInput{
			AdvanceCash:     finance.ParseAmount(req.Payment.AdvanceCash),
			AdvanceCardUpi:  finance.ParseAmount(req.Payment.AdvanceCardUpi),
			AdvanceOther:    finance.ParseAmount(req.Payment.AdvanceOther),
			ScheduleAmount:  finance.ParseAmount(req.Payment.ScheduleAmount),
			AppliedDiscount: finance.ParseAmount(req.Payment.AppliedDiscount),
		},
	}

	if req.DeliveryDate != "" {
		if d, err := time.Parse("2006-01-02", req.DeliveryDate); err == nil {
			input.DeliveryDate = &d
		}
	}
	if req.Status != nil {
		input.Status = enum.OrderStatus(*req.Status)
	}

	for i, item := range req.Items {
		input.Items[i] = service.OrderItemInput{
			ItemType:        item.ItemType,
			Code:            item.Code,
			Name:            item.Name,
			Rate:            item.Rate,
			Qty:             item.Qty,
			TaxPercent:      item.TaxPercent,
			DiscountPercent: item.DiscountPercent,
			DiscountAmount:  item.DiscountAmount,
		}
	}

	return input, nil
}

// Get handles retrieving an order with its items and payment
func (h *OrderHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	order, snapshot, err := h.orderService.GetOrder(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order retrieved successfully", gin.H{
		"order":    order,
		"snapshot": snapshotView(snapshot),
	})
}

// List handles listing orders
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
		if statusInt, err := strconv.Atoi(statusStr); err == nil {
			status := enum.OrderStatus(statusInt)
			params.Status = &status
		}
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

// UpdateStatus handles changing an order's fulfilment status
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	var req request.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.orderService.UpdateOrderStatus(c.Request.Context(), id, enum.OrderStatus(req.Status)); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order status updated successfully", nil)
}

// RemoveItem handles deleting one line from an order. History recording
// is best-effort, so its outcome travels in the response instead of
// failing the removal.
func (h *OrderHandler) RemoveItem(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}
	itemID, err := uuid.Parse(c.Param("item_id"))
	if err != nil {
		response.BadRequest(c, "Invalid item ID")
		return
	}

	result, err := h.orderService.RemoveItem(c.Request.Context(), orderID, itemID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item removed successfully", result)
}

func parseDate(s string, fallback time.Time) time.Time {
	if s == "" {
		return fallback
	}
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return fallback
	}
	return d
}

func snapshotView(s finance.Snapshot) gin.H {
	return gin.H{
		"source":           s.Source.String(),
		"subtotal":         s.Subtotal,
		"tax_amount":       s.TaxAmount,
		"discount_amount":  s.DiscountAmount,
		"payment_estimate": s.PaymentEstimate,
		"final_amount":     s.FinalAmount,
		"total_advance":    s.TotalAdvance,
		"balance":          s.Balance,
	}
}
