package models

// Service is immutable once fetched; the salon API owns it.
type Service struct {
	ID              string   `json:"id"`
	SalonID         string   `json:"salonId"`
	Name            string   `json:"name"`
	Description     string   `json:"description,omitempty"`
	Price           float64  `json:"price"`
	DurationMinutes int      `json:"durationMinutes"`
	Discount        *float64 `json:"discount,omitempty"`
	Category        string   `json:"category,omitempty"`
}

// FinalPrice applies the percentage discount, when one is set.
func (s Service) FinalPrice() float64 {
	if s.Discount == nil || *s.Discount <= 0 {
		return s.Price
	}
	d := *s.Discount
	if d > 100 {
		d = 100
	}
	return s.Price * (100 - d) / 100
}
