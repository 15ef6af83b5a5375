package model

// DeliveryStatus represents the status of a delivery
type DeliveryStatus string

const (
	DeliveryPending   DeliveryStatus = "pending"
	DeliveryDelivered DeliveryStatus = "delivered"
	DeliveryCancelled DeliveryStatus = "cancelled"
)

// Delivery is the hand-over record tied to a completed appointment.
type Delivery struct {
	ID           int            `json:"id"`
	Appointment  *Appointment   `json:"appointment,omitempty"`
	Status       DeliveryStatus `json:"status"`
	DeliveryDate string         `json:"delivery_date,omitempty"`
	Notes        string         `json:"notes,omitempty"`
	CreatedAt    string         `json:"created_at,omitempty"`
}

// StatusLabel returns the display label for the delivery status
func (d Delivery) StatusLabel() string {
	switch d.Status {
	case DeliveryPending:
		return "Pending"
	case DeliveryDelivered:
		return "Delivered"
	case DeliveryCancelled:
		return "Cancelled"
	default:
		return string(d.Status)
	}
}

// StatusIcon returns the icon for the delivery status
func (d Delivery) StatusIcon() string {
	switch d.Status {
	case DeliveryPending:
		return "○"
	case DeliveryDelivered:
		return "✓"
	case DeliveryCancelled:
		return "⊘"
	default:
		return "○"
	}
}
