package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"opticare-backend/internal/application/service"
	"opticare-backend/internal/presentation/http/dto/response"
)

// HistoryHandler handles customer deletion-history HTTP requests
type HistoryHandler struct {
	historyService *service.HistoryService
}

// NewHistoryHandler creates a new history handler
func NewHistoryHandler(historyService *service.HistoryService) *HistoryHandler {
	return &HistoryHandler{historyService: historyService}
}

// Get handles retrieving a customer's history aggregate by mobile number
// or customer id
func (h *HistoryHandler) Get(c *gin.Context) {
	key, ok := customerKeyFromQuery(c)
	if !ok {
		response.BadRequest(c, "mobile_no or customer_id is required")
		return
	}

	history, err := h.historyService.Get(c.Request.Context(), key)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer history retrieved successfully", history)
}

// Search handles filtering a customer's history by reference or
// prescription number. The returned aggregate is a projection; the
// stored record is untouched.
func (h *HistoryHandler) Search(c *gin.Context) {
	key, ok := customerKeyFromQuery(c)
	if !ok {
		response.BadRequest(c, "mobile_no or customer_id is required")
		return
	}

	field := service.SearchByReferenceNo
	value := c.Query("reference_no")
	if value == "" {
		field = service.SearchByPrescriptionNo
		value = c.Query("prescription_no")
	}
	if value == "" {
		response.BadRequest(c, "reference_no or prescription_no is required")
		return
	}

	projection, err := h.historyService.Search(c.Request.Context(), key, field, value)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer history retrieved successfully", projection)
}

func customerKeyFromQuery(c *gin.Context) (service.CustomerKey, bool) {
	key := service.CustomerKey{MobileNo: c.Query("mobile_no")}
	if idStr := c.Query("customer_id"); idStr != "" {
		if id, err := uuid.Parse(idStr); err == nil {
			key.CustomerID = &id
		}
	}
	return key, key.MobileNo != "" || key.CustomerID != nil
}
