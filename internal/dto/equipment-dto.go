package dto

type CreateEquipmentDTO struct {
	EquipmentType   string `json:"equipmentType" validate:"required"`
	EquipmentNumber string `json:"equipmentNumber" validate:"required"`
	Make            string `json:"make"`
	ModelNumber     string `json:"modelNumber"`
	SerialNumber    string `json:"serialNumber" validate:"required"`
	BranchLocation  string `json:"branchLocation"`
}

type UpdateEquipmentDTO struct {
	EquipmentType   *string `json:"equipmentType,omitempty"`
	EquipmentNumber *string `json:"equipmentNumber,omitempty"`
	Make            *string `json:"make,omitempty"`
	ModelNumber     *string `json:"modelNumber,omitempty"`
	SerialNumber    *string `json:"serialNumber,omitempty"`
	BranchLocation  *string `json:"branchLocation,omitempty"`
}

// DeleteEquipmentResponseDTO reports how many repair requests still point at
// the removed equipment; deletion is allowed, the orphans are the caller's
// warning.
type DeleteEquipmentResponseDTO struct {
	OrphanedRequests int `json:"orphaned_requests"`
}
