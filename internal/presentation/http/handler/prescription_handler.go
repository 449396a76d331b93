package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"opticare-backend/internal/application/service"
	"opticare-backend/internal/presentation/http/dto/request"
	"opticare-backend/internal/presentation/http/dto/response"
)

// PrescriptionHandler handles prescription HTTP requests
type PrescriptionHandler struct {
	prescriptionService *service.PrescriptionService
}

// NewPrescriptionHandler creates a new prescription handler
func NewPrescriptionHandler(prescriptionService *service.PrescriptionService) *PrescriptionHandler {
	return &PrescriptionHandler{prescriptionService: prescriptionService}
}

// Create handles creating a prescription
func (h *PrescriptionHandler) Create(c *gin.Context) {
	var req request.CreatePrescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	prescription, err := h.prescriptionService.CreatePrescription(c.Request.Context(), &service.CreatePrescriptionInput{
		PrescriptionNo: req.PrescriptionNo,
		ReferenceNo:    req.ReferenceNo,
		CustomerName:   req.CustomerName,
		MobileNo:       req.MobileNo,
		Age:            req.Age,
		Gender:         req.Gender,
		Address:        req.Address,
		TestedBy:       req.TestedBy,
		RightSphere:    req.RightSphere,
		RightCylinder:  req.RightCylinder,
		RightAxis:      req.RightAxis,
		RightAdd:       req.RightAdd,
		LeftSphere:     req.LeftSphere,
		LeftCylinder:   req.LeftCylinder,
		LeftAxis:       req.LeftAxis,
		LeftAdd:        req.LeftAdd,
		PD:             req.PD,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Prescription created successfully", prescription)
}

// Get handles retrieving a prescription by ID
func (h *PrescriptionHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid prescription ID")
		return
	}

	prescription, err := h.prescriptionService.GetPrescription(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Prescription retrieved successfully", prescription)
}

// UpdateReferenceNo handles changing the reference number
func (h *PrescriptionHandler) UpdateReferenceNo(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid prescription ID")
		return
	}

	var req request.UpdateReferenceNoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	prescription, err := h.prescriptionService.UpdateReferenceNo(c.Request.Context(), id, req.ReferenceNo)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Reference number updated successfully", prescription)
}
