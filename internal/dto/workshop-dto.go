package dto

type CreateWorkshopDTO struct {
	SubName  string `json:"subName" validate:"required"`
	Foreman  string `json:"foreman" validate:"required"`
	Mechanic string `json:"mechanic"`
}

type UpdateWorkshopDTO struct {
	SubName  *string `json:"subName,omitempty"`
	Foreman  *string `json:"foreman,omitempty"`
	Mechanic *string `json:"mechanic,omitempty"`
}
