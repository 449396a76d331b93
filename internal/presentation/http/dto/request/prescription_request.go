package request

// CreatePrescriptionRequest is the JSON body for creating a prescription
type CreatePrescriptionRequest struct {
	PrescriptionNo string `json:"prescription_no"`
	ReferenceNo    string `json:"reference_no"`
	CustomerName   string `json:"customer_name" binding:"required"`
	MobileNo       string `json:"mobile_no" binding:"required"`
	Age            *int   `json:"age"`
	Gender         string `json:"gender"`
	Address        string `json:"address"`
	TestedBy       string `json:"tested_by"`
	RightSphere    string `json:"right_sphere"`
	RightCylinder  string `json:"right_cylinder"`
	RightAxis      string `json:"right_axis"`
	RightAdd       string `json:"right_add"`
	LeftSphere     string `json:"left_sphere"`
	LeftCylinder   string `json:"left_cylinder"`
	LeftAxis       string `json:"left_axis"`
	LeftAdd        string `json:"left_add"`
	PD             string `json:"pd"`
}

// UpdateReferenceNoRequest changes a prescription's reference number
type UpdateReferenceNoRequest struct {
	ReferenceNo string `json:"reference_no" binding:"required"`
}

// LoginRequest is the staff login body
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}
