package lifecycle

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusScheduled   AppointmentStatus = "SCHEDULED"
	StatusConfirmed   AppointmentStatus = "CONFIRMED"
	StatusInProgress  AppointmentStatus = "IN_PROGRESS"
	StatusCompleted   AppointmentStatus = "COMPLETED"
	StatusCancelled   AppointmentStatus = "CANCELLED"
	StatusRescheduled AppointmentStatus = "RESCHEDULED"
	StatusNoShow      AppointmentStatus = "NO_SHOW"
)

// AllStatuses lists every appointment status in canonical order.
var AllStatuses = []AppointmentStatus{
	StatusScheduled,
	StatusConfirmed,
	StatusInProgress,
	StatusCompleted,
	StatusCancelled,
	StatusRescheduled,
	StatusNoShow,
}

// transitions is the role-independent transition table. A status missing
// from the map (or mapped to an empty set) has no outgoing transitions.
var transitions = map[AppointmentStatus][]AppointmentStatus{
	StatusScheduled:  {StatusConfirmed, StatusInProgress, StatusCancelled, StatusNoShow, StatusRescheduled},
	StatusConfirmed:  {StatusInProgress, StatusCancelled, StatusNoShow, StatusRescheduled},
	StatusInProgress: {StatusCompleted},
}

// IsValidStatus reports whether s is a member of the status enum.
func IsValidStatus(s AppointmentStatus) bool {
	for _, known := range AllStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// IsTerminal reports whether s permits no further status transitions.
func (s AppointmentStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusNoShow
}

// normalize maps RESCHEDULED to SCHEDULED: a rescheduled appointment is
// schedulable again and follows SCHEDULED's rules from then on.
func normalize(s AppointmentStatus) AppointmentStatus {
	if s == StatusRescheduled {
		return StatusScheduled
	}
	return s
}
