package dto

import "repair-system/internal/entities"

// FaultInputDTO is one fault row on the request form. Rows with a blank
// description are dropped on submit, not rejected.
type FaultInputDTO struct {
	Description  string `json:"description"`
	WorkshopID   string `json:"workshopId"`
	MechanicName string `json:"mechanicName"`
}

type CreateRepairRequestDTO struct {
	EquipmentID string          `json:"equipmentId" validate:"required"`
	DriverName  string          `json:"driverName" validate:"required"`
	Mileage     string          `json:"mileage"`
	Purpose     string          `json:"purpose" validate:"required,purpose"`
	Faults      []FaultInputDTO `json:"faults" validate:"required,min=1,max=10"`
}

// UpdateRepairRequestDTO carries the append-fault edit: the merged fault
// list replaces the stored one, the identity fields of the original request
// are preserved server-side.
type UpdateRepairRequestDTO struct {
	DriverName string          `json:"driverName" validate:"required"`
	Mileage    string          `json:"mileage"`
	Purpose    string          `json:"purpose" validate:"required,purpose"`
	Faults     []FaultInputDTO `json:"faults" validate:"required,min=1,max=10"`
}

type PartInputDTO struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
}

// CompletionFaultDTO matches a stored fault by id and carries the work
// narrative plus the edited parts list; blank part rows are filtered out.
type CompletionFaultDTO struct {
	FaultID   string         `json:"faultId" validate:"required"`
	WorkDone  string         `json:"workDone"`
	PartsUsed []PartInputDTO `json:"partsUsed"`
}

type CompleteRepairRequestDTO struct {
	DateOut string               `json:"dateOut"`
	TimeOut string               `json:"timeOut"`
	Faults  []CompletionFaultDTO `json:"faults" validate:"required,min=1,dive"`
}

// PendingCheckDTO answers the duplicate-request probe for an equipment:
// when a Pending request exists the client must offer "add fault to
// existing" vs "create new anyway" instead of a blank form.
type PendingCheckDTO struct {
	HasPending bool                    `json:"has_pending"`
	Request    *entities.RepairRequest `json:"request,omitempty"`
}

type RequestFilterDTO struct {
	EquipmentID string `query:"equipment_id"`
	WorkshopID  string `query:"workshop_id"`
	Month       string `query:"month"`
	Status      string `query:"status"`
}

type DashboardDTO struct {
	TotalEquipment    int `json:"total_equipment"`
	PendingRequests   int `json:"pending_requests"`
	CompletedRequests int `json:"completed_requests"`
	TotalWorkshops    int `json:"total_workshops"`
}
