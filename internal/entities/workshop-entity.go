package entities

type Workshop struct {
	ID       string `json:"id"`
	SubName  string `json:"subName"`
	Foreman  string `json:"foreman"`
	Mechanic string `json:"mechanic,omitempty"`
}
