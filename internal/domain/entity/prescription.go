package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Prescription anchors one customer encounter. Orders reference it but
// never own it; it outlives any order written against it.
type Prescription struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	PrescriptionNo string    `gorm:"size:50;uniqueIndex;not null" json:"prescription_no"`
	// ReferenceNo defaults to the prescription number but is independently
	// editable. Uniqueness is enforced by the index; the application check
	// is only an advisory pre-check.
	ReferenceNo  string `gorm:"size:50;uniqueIndex;not null" json:"reference_no"`
	CustomerName string `gorm:"size:255;not null" json:"customer_name"`
	MobileNo     string `gorm:"size:20;index;not null" json:"mobile_no"`
	Age          *int   `json:"age,omitempty"`
	Gender       string `gorm:"size:10" json:"gender,omitempty"`
	Address      string `gorm:"type:text" json:"address,omitempty"`
	TestedBy     string `gorm:"size:100" json:"tested_by,omitempty"`

	// Optical measurements, right and left eye
	RightSphere   string `gorm:"size:20" json:"right_sphere,omitempty"`
	RightCylinder string `gorm:"size:20" json:"right_cylinder,omitempty"`
	RightAxis     string `gorm:"size:20" json:"right_axis,omitempty"`
	RightAdd      string `gorm:"size:20" json:"right_add,omitempty"`
	LeftSphere    string `gorm:"size:20" json:"left_sphere,omitempty"`
	LeftCylinder  string `gorm:"size:20" json:"left_cylinder,omitempty"`
	LeftAxis      string `gorm:"size:20" json:"left_axis,omitempty"`
	LeftAdd       string `gorm:"size:20" json:"left_add,omitempty"`
	PD            string `gorm:"size:20;column:pd" json:"pd,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Orders []Order `gorm:"foreignKey:PrescriptionID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new prescription
func (p *Prescription) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.ReferenceNo == "" {
		p.ReferenceNo = p.PrescriptionNo
	}
	return nil
}

// TableName returns the table name for the Prescription model
func (Prescription) TableName() string {
	return "prescriptions"
}
