package model

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusScheduled  AppointmentStatus = "scheduled"
	StatusInProgress AppointmentStatus = "in_progress"
	StatusCompleted  AppointmentStatus = "completed"
	StatusCancelled  AppointmentStatus = "cancelled"
)

// AppointmentPriority represents the priority of an appointment
type AppointmentPriority string

const (
	PriorityHigh   AppointmentPriority = "high"
	PriorityMedium AppointmentPriority = "medium"
	PriorityLow    AppointmentPriority = "low"
)

// Appointment is a scheduled vehicle-preparation slot.
type Appointment struct {
	ID              int                 `json:"id"`
	AppointmentDate string              `json:"appointment_date"`
	ScheduledDate   string              `json:"scheduled_date,omitempty"`
	DeliveryDate    string              `json:"delivery_date,omitempty"`
	Time            string              `json:"time"`
	Seller          string              `json:"seller"`
	Client          string              `json:"client"`
	ClientPhone     string              `json:"client_phone,omitempty"`
	ClientEmail     string              `json:"client_email,omitempty"`
	Vehicle         *Vehicle            `json:"vehicle,omitempty"`
	Branch          *Branch             `json:"branch,omitempty"`
	Status          AppointmentStatus   `json:"status"`
	Priority        AppointmentPriority `json:"priority"`
	Notes           string              `json:"notes,omitempty"`
	CreatedAt       string              `json:"created_at,omitempty"`
	UpdatedAt       string              `json:"updated_at,omitempty"`
}

// StatusLabel returns the display label for the appointment status
func (a Appointment) StatusLabel() string {
	switch a.Status {
	case StatusScheduled:
		return "Scheduled"
	case StatusInProgress:
		return "In Progress"
	case StatusCompleted:
		return "Completed"
	case StatusCancelled:
		return "Cancelled"
	default:
		return string(a.Status)
	}
}

// StatusIcon returns the icon for the appointment status
func (a Appointment) StatusIcon() string {
	switch a.Status {
	case StatusScheduled:
		return "○"
	case StatusInProgress:
		return "●"
	case StatusCompleted:
		return "✓"
	case StatusCancelled:
		return "⊘"
	default:
		return "○"
	}
}

// PriorityLabel returns the display label for the appointment priority
func (a Appointment) PriorityLabel() string {
	switch a.Priority {
	case PriorityHigh:
		return "High"
	case PriorityMedium:
		return "Medium"
	case PriorityLow:
		return "Low"
	default:
		return string(a.Priority)
	}
}

// NextStatus returns the status an appointment advances to from the
// board, or the current status when no advance applies.
func (a Appointment) NextStatus() AppointmentStatus {
	switch a.Status {
	case StatusScheduled:
		return StatusInProgress
	case StatusInProgress:
		return StatusCompleted
	default:
		return a.Status
	}
}

// VehicleLabel returns a short vehicle description for list rows.
func (a Appointment) VehicleLabel() string {
	if a.Vehicle == nil {
		return ""
	}
	if a.Vehicle.Chassis == "" {
		return a.Vehicle.Model
	}
	return a.Vehicle.Model + " · " + a.Vehicle.Chassis
}
