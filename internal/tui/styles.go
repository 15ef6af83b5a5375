package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/prepdesk/prepdesk/internal/model"
)

// One Dark Pro color palette
var (
	// Background colors
	ColorBgPrimary   = lipgloss.Color("#282C34")
	ColorBgHighlight = lipgloss.Color("#2C313C")

	// Foreground colors
	ColorFgPrimary   = lipgloss.Color("#ABB2BF")
	ColorFgSecondary = lipgloss.Color("#828997")
	ColorFgMuted     = lipgloss.Color("#636B78")

	// Syntax colors
	ColorRed     = lipgloss.Color("#E06C75")
	ColorGreen   = lipgloss.Color("#98C379")
	ColorYellow  = lipgloss.Color("#E5C07B")
	ColorBlue    = lipgloss.Color("#61AFEF")
	ColorMagenta = lipgloss.Color("#C678DD")
	ColorCyan    = lipgloss.Color("#56B6C2")

	// UI colors
	ColorBorder = lipgloss.Color("#3F4451")
)

// Component styles
var (
	// Header style
	HeaderTitleStyle = lipgloss.NewStyle().
				Foreground(ColorBlue).
				Bold(true)

	HeaderInfoStyle = lipgloss.NewStyle().
			Foreground(ColorFgSecondary)

	// List styles
	ListTitleStyle = lipgloss.NewStyle().
			Foreground(ColorMagenta).
			Bold(true)

	ListSelectedStyle = lipgloss.NewStyle().
				Background(ColorBgHighlight).
				Foreground(ColorFgPrimary).
				Bold(true)

	ListRowStyle = lipgloss.NewStyle().
			Foreground(ColorFgPrimary)

	ListEmptyStyle = lipgloss.NewStyle().
			Foreground(ColorFgMuted)

	// Form styles
	FormBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(1, 2)

	FormLabelStyle = lipgloss.NewStyle().
			Foreground(ColorFgSecondary)

	FormLabelFocusedStyle = lipgloss.NewStyle().
				Foreground(ColorBlue).
				Bold(true)

	InputPromptStyle = lipgloss.NewStyle().
				Foreground(ColorGreen)

	// Status bar styles
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorFgMuted).
			PaddingLeft(1).
			PaddingRight(1)

	// Notice styles
	NoticeSuccessStyle = lipgloss.NewStyle().
				Foreground(ColorGreen).
				Bold(true)

	NoticeErrorStyle = lipgloss.NewStyle().
				Foreground(ColorRed).
				Bold(true)

	NoticeInfoStyle = lipgloss.NewStyle().
			Foreground(ColorCyan)

	// Appointment status styles
	StatusScheduledStyle = lipgloss.NewStyle().
				Foreground(ColorBlue)

	StatusInProgressStyle = lipgloss.NewStyle().
				Foreground(ColorYellow)

	StatusCompletedStyle = lipgloss.NewStyle().
				Foreground(ColorGreen)

	StatusCancelledStyle = lipgloss.NewStyle().
				Foreground(ColorRed)

	// Priority styles
	PriorityHighStyle = lipgloss.NewStyle().
				Foreground(ColorRed)

	PriorityMediumStyle = lipgloss.NewStyle().
				Foreground(ColorYellow)

	PriorityLowStyle = lipgloss.NewStyle().
				Foreground(ColorFgMuted)

	// Help overlay styles
	HelpStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(1, 2)

	HelpTitleStyle = lipgloss.NewStyle().
			Foreground(ColorBlue).
			Bold(true)

	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(ColorYellow)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(ColorFgPrimary)

	// Centered box (login, errors)
	CenterBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(1, 2)

	HintStyle = lipgloss.NewStyle().
			Foreground(ColorFgMuted)
)

// statusStyle maps an appointment status to its display style
func statusStyle(status model.AppointmentStatus) lipgloss.Style {
	switch status {
	case model.StatusScheduled:
		return StatusScheduledStyle
	case model.StatusInProgress:
		return StatusInProgressStyle
	case model.StatusCompleted:
		return StatusCompletedStyle
	case model.StatusCancelled:
		return StatusCancelledStyle
	default:
		return ListRowStyle
	}
}

// priorityStyle maps an appointment priority to its display style
func priorityStyle(priority model.AppointmentPriority) lipgloss.Style {
	switch priority {
	case model.PriorityHigh:
		return PriorityHighStyle
	case model.PriorityMedium:
		return PriorityMediumStyle
	case model.PriorityLow:
		return PriorityLowStyle
	default:
		return ListRowStyle
	}
}

// deliveryStatusStyle maps a delivery status to its display style
func deliveryStatusStyle(status model.DeliveryStatus) lipgloss.Style {
	switch status {
	case model.DeliveryPending:
		return StatusInProgressStyle
	case model.DeliveryDelivered:
		return StatusCompletedStyle
	case model.DeliveryCancelled:
		return StatusCancelledStyle
	default:
		return ListRowStyle
	}
}
