package models

type Appointment struct {
	ID         string   `json:"id"`
	SalonID    string   `json:"salonId"`
	ServiceID  string   `json:"serviceId"`
	ServiceIDs []string `json:"serviceIds,omitempty"`
	CustomerID string   `json:"customerId"`

	Date string `json:"date"`
	Time string `json:"time"`

	Status string  `json:"status"`
	Amount float64 `json:"amount"`
	Notes  string  `json:"notes,omitempty"`

	CustomerName string `json:"customerName,omitempty"`
	ServiceName  string `json:"serviceName,omitempty"`
}
