package sheetdb

import (
	"encoding/json"
	"fmt"

	"repair-system/internal/entities"
)

// RequestPayload is a repair request as it is written to the sheet: the
// fault list travels as a JSON-encoded string inside one cell.
type RequestPayload struct {
	ID          string                 `json:"id"`
	EquipmentID string                 `json:"equipmentId"`
	DriverName  string                 `json:"driverName"`
	Mileage     string                 `json:"mileage,omitempty"`
	Purpose     entities.Purpose       `json:"purpose"`
	Faults      string                 `json:"faults"`
	DateIn      string                 `json:"dateIn"`
	TimeIn      string                 `json:"timeIn"`
	DateOut     string                 `json:"dateOut,omitempty"`
	TimeOut     string                 `json:"timeOut,omitempty"`
	Status      entities.RequestStatus `json:"status"`
	WorkshopID  string                 `json:"workshopId,omitempty"`
}

func EncodeRequest(r entities.RepairRequest) (RequestPayload, error) {
	faults, err := json.Marshal(r.Faults)
	if err != nil {
		return RequestPayload{}, fmt.Errorf("encoding faults for request %s: %w", r.ID, err)
	}
	return RequestPayload{
		ID:          r.ID,
		EquipmentID: r.EquipmentID,
		DriverName:  r.DriverName,
		Mileage:     r.Mileage,
		Purpose:     r.Purpose,
		Faults:      string(faults),
		DateIn:      r.DateIn,
		TimeIn:      r.TimeIn,
		DateOut:     r.DateOut,
		TimeOut:     r.TimeOut,
		Status:      r.Status,
		WorkshopID:  r.WorkshopID,
	}, nil
}

// DecodeFaults accepts the fault cell either as a JSON array or as a
// JSON string containing an encoded array.
func DecodeFaults(raw json.RawMessage) ([]entities.Fault, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return []entities.Fault{}, nil
	}

	var faults []entities.Fault
	if err := json.Unmarshal(raw, &faults); err == nil {
		return faults, nil
	}

	var encoded string
	if err := json.Unmarshal(raw, &encoded); err != nil {
		return nil, fmt.Errorf("faults cell is neither an array nor a string: %w", err)
	}
	if encoded == "" {
		return []entities.Fault{}, nil
	}
	if err := json.Unmarshal([]byte(encoded), &faults); err != nil {
		return nil, fmt.Errorf("decoding fault string: %w", err)
	}
	return faults, nil
}

// Request converts a raw sheet row into the domain entity using the given
// decoded fault list.
func (r RawRepairRequest) Request(faults []entities.Fault) entities.RepairRequest {
	return entities.RepairRequest{
		ID:          r.ID,
		EquipmentID: r.EquipmentID,
		DriverName:  r.DriverName,
		Mileage:     r.Mileage,
		Purpose:     r.Purpose,
		Faults:      faults,
		DateIn:      r.DateIn,
		TimeIn:      r.TimeIn,
		DateOut:     r.DateOut,
		TimeOut:     r.TimeOut,
		Status:      r.Status,
		WorkshopID:  r.WorkshopID,
	}
}
