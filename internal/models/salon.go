package models

type Salon struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
	OpeningTime string `json:"openingTime"`
	ClosingTime string `json:"closingTime"`
	Timezone    string `json:"timezone"`
}
