// Package lifecycle owns the appointment status rules: which status
// transitions exist, which roles may apply them, and what a legal transition
// does to the appointment value. It performs no I/O; callers persist the
// returned value (and deal with conflicts) themselves. Every handler that
// changes an appointment's status must go through this package rather than
// re-deriving the rules locally.
package lifecycle

import (
	"errors"
	"strings"
	"time"
)

// Error kinds returned by the lifecycle operations. All four are expected,
// user-correctable conditions; network-layer failures are a separate taxonomy
// owned by the HTTP layer.
var (
	ErrInvalidTransition = errors.New("requested status is not reachable from the current status")
	ErrUnauthorized      = errors.New("role has no transition rights on this appointment")
	ErrMissingReason     = errors.New("a cancellation reason is required")
	ErrPastDate          = errors.New("new appointment time must be in the future")
)

// Appointment is the value the lifecycle operations decide over. It mirrors
// the persisted appointment record; operations return updated copies and
// never mutate their input.
type Appointment struct {
	ID                 string
	PatientID          string
	DoctorID           string
	DepartmentID       string
	ScheduledAt        time.Time
	Status             AppointmentStatus
	Notes              string
	CancellationReason string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// ListAvailableTransitions returns the statuses to offer the given role for
// an appointment currently in the given status: the current status (always
// present, it is the selected option) followed by the intersection of the
// transition table and the role matrix. When no transition is legal the
// current status is the only member.
func ListAvailableTransitions(current AppointmentStatus, role ActorRole) []AppointmentStatus {
	out := []AppointmentStatus{current}
	for _, dest := range allowedTransitions(current, role) {
		if dest != current {
			out = append(out, dest)
		}
	}
	return out
}

func allowedTransitions(current AppointmentStatus, role ActorRole) []AppointmentStatus {
	source := normalize(current)
	tableAllowed := transitions[source]
	roleAllowed := roleMatrix[role][source]

	var out []AppointmentStatus
	for _, dest := range tableAllowed {
		for _, permitted := range roleAllowed {
			if dest == permitted {
				out = append(out, dest)
				break
			}
		}
	}
	return out
}

// ApplyStatusChange validates the (current status, requested status, role)
// triple and, when legal, returns a copy of the appointment with the new
// status and a refreshed UpdatedAt. The caller persists the result; it is not
// persisted here.
func ApplyStatusChange(appt Appointment, requested AppointmentStatus, role ActorRole) (Appointment, error) {
	if requested == appt.Status {
		// A no-op "transition" is not a legal transition.
		return Appointment{}, ErrInvalidTransition
	}

	source := normalize(appt.Status)

	reachable := false
	for _, dest := range transitions[source] {
		if dest == requested {
			reachable = true
			break
		}
	}
	if !reachable {
		// Covers terminal source statuses, unknown requested statuses and
		// no-op requests (requesting the current status is not a transition).
		return Appointment{}, ErrInvalidTransition
	}

	roleAllowed := roleMatrix[role][source]
	if len(roleAllowed) == 0 {
		return Appointment{}, ErrUnauthorized
	}
	permitted := false
	for _, dest := range roleAllowed {
		if dest == requested {
			permitted = true
			break
		}
	}
	if !permitted {
		return Appointment{}, ErrInvalidTransition
	}

	updated := appt
	updated.Status = requested
	updated.UpdatedAt = time.Now()
	return updated, nil
}

// Cancel moves the appointment to CANCELLED and records the reason. The
// reason is mandatory; cancellation is only reachable from SCHEDULED and
// CONFIRMED, which ApplyStatusChange enforces.
func Cancel(appt Appointment, reason string, role ActorRole) (Appointment, error) {
	if strings.TrimSpace(reason) == "" {
		return Appointment{}, ErrMissingReason
	}

	updated, err := ApplyStatusChange(appt, StatusCancelled, role)
	if err != nil {
		return Appointment{}, err
	}
	updated.CancellationReason = reason
	return updated, nil
}

// Reschedule moves the appointment to a new time. The new time must be
// strictly in the future regardless of what the caller's date picker allowed.
// A successful reschedule returns the appointment to SCHEDULED (never a
// pending RESCHEDULED state) and clears any stale cancellation reason.
func Reschedule(appt Appointment, newScheduledAt time.Time, role ActorRole) (Appointment, error) {
	if !newScheduledAt.After(time.Now()) {
		return Appointment{}, ErrPastDate
	}

	source := normalize(appt.Status)
	if source != StatusScheduled && source != StatusConfirmed {
		return Appointment{}, ErrInvalidTransition
	}
	if role != RoleAdmin && role != RoleDoctor && role != RoleHelpdesk {
		return Appointment{}, ErrUnauthorized
	}

	updated := appt
	updated.ScheduledAt = newScheduledAt
	updated.Status = StatusScheduled
	updated.CancellationReason = ""
	updated.UpdatedAt = time.Now()
	return updated, nil
}
