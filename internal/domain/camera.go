package domain

import "time"

type CameraStatus string

const (
	CameraStatusAvailable   CameraStatus = "AVAILABLE"
	CameraStatusUnavailable CameraStatus = "UNAVAILABLE"
)

type CameraCondition string

const (
	CameraConditionExcellent  CameraCondition = "EXCELLENT"
	CameraConditionGood       CameraCondition = "GOOD"
	CameraConditionAcceptable CameraCondition = "ACCEPTABLE"
	CameraConditionDamaged    CameraCondition = "DAMAGED/NEEDS_REPAIR"
)

// Camera is one physical, serialized unit of inventory. Units sharing
// a ModelName are interchangeable and pooled for allocation.
type Camera struct {
	ID           int64           `json:"id"`
	ModelName    string          `json:"model_name"`
	SerialNumber string          `json:"serial_number"`
	Status       CameraStatus    `json:"status"`
	Condition    CameraCondition `json:"condition"`
	Notes        string          `json:"notes"`
	CreatedOn    time.Time       `json:"created_on"`
	DeletedOn    *time.Time      `json:"deleted_on,omitempty"`
}
