package entities

type RequestStatus string

const (
	StatusPending   RequestStatus = "Pending"
	StatusCompleted RequestStatus = "Completed"
)

func (s RequestStatus) IsValid() bool {
	return s == StatusPending || s == StatusCompleted
}

type Purpose string

const (
	PurposeRepairing        Purpose = "Repairing"
	PurposePreparingForWork Purpose = "preparing for work"
	PurposeGeneralChecking  Purpose = "General Checking"
	PurposeOther            Purpose = "Other"
)

func (p Purpose) IsValid() bool {
	switch p {
	case PurposeRepairing, PurposePreparingForWork, PurposeGeneralChecking, PurposeOther:
		return true
	}
	return false
}

type Part struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
}

// Fault is one reported problem on a request. A fault is "real" once it has
// a non-empty description; real faults must carry a workshop id. WorkDone
// and PartsUsed are filled at completion time.
type Fault struct {
	ID           string `json:"id"`
	Description  string `json:"description"`
	WorkshopID   string `json:"workshopId"`
	MechanicName string `json:"mechanicName,omitempty"`
	WorkDone     string `json:"workDone,omitempty"`
	PartsUsed    []Part `json:"partsUsed,omitempty"`
}

// RepairRequest is a job card. ID is the string form of the incrementing
// job-card number. DateIn/TimeIn are set at creation and never change;
// DateOut/TimeOut are set at completion. WorkshopID mirrors the first
// fault's workshop for cheap filtering.
type RepairRequest struct {
	ID          string        `json:"id"`
	EquipmentID string        `json:"equipmentId"`
	DriverName  string        `json:"driverName"`
	Mileage     string        `json:"mileage,omitempty"`
	Purpose     Purpose       `json:"purpose"`
	Faults      []Fault       `json:"faults"`
	DateIn      string        `json:"dateIn"`
	TimeIn      string        `json:"timeIn"`
	DateOut     string        `json:"dateOut,omitempty"`
	TimeOut     string        `json:"timeOut,omitempty"`
	Status      RequestStatus `json:"status"`
	WorkshopID  string        `json:"workshopId,omitempty"`
}

type Settings struct {
	JobCardStartNumber int64 `json:"jobCardStartNumber,omitempty"`
}
