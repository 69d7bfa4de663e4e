package entities

// EquipmentType is free text; the preset list below is advisory vocabulary,
// not a closed set.
type EquipmentType string

var PresetEquipmentTypes = []EquipmentType{
	"Shovel", "Loader", "Excavator", "Generator", "Dump Truck", "Forklift", "Poclain",
}

func (t EquipmentType) IsPreset() bool {
	for _, p := range PresetEquipmentTypes {
		if t == p {
			return true
		}
	}
	return false
}

type Equipment struct {
	ID              string        `json:"id"`
	EquipmentType   EquipmentType `json:"equipmentType"`
	EquipmentNumber string        `json:"equipmentNumber"`
	Make            string        `json:"make"`
	ModelNumber     string        `json:"modelNumber"`
	SerialNumber    string        `json:"serialNumber"`
	BranchLocation  string        `json:"branchLocation"`
}
