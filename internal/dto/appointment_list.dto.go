package dto

type AppointmentListDTO struct {
	ID           string   `json:"id"`
	Date         string   `json:"date"`
	Time         string   `json:"time"`
	Status       string   `json:"status"`
	CustomerName string   `json:"customer_name"`
	ServiceName  string   `json:"service_name"`
	Amount       float64  `json:"amount"`
	Actions      []string `json:"actions"`
}
