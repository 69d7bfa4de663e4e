package dto

type TranslateDTO struct {
	Text string `json:"text" validate:"required"`
}

type TranslateResponseDTO struct {
	Text string `json:"text"`
}
