package lifecycle

import "log"

// ActorRole identifies the authenticated actor for authorization purposes.
type ActorRole string

const (
	RoleAdmin    ActorRole = "admin"
	RoleDoctor   ActorRole = "doctor"
	RoleHelpdesk ActorRole = "helpdesk"
	RolePatient  ActorRole = "patient"
)

// roleMatrix holds, per role and (normalized) source status, the destination
// statuses the role may apply. The effective destinations for a request are
// this set intersected with the transition table.
var roleMatrix = map[ActorRole]map[AppointmentStatus][]AppointmentStatus{
	RoleAdmin: {
		StatusScheduled:  {StatusConfirmed, StatusInProgress, StatusCancelled, StatusNoShow, StatusRescheduled},
		StatusConfirmed:  {StatusInProgress, StatusCancelled, StatusNoShow, StatusRescheduled},
		StatusInProgress: {StatusCompleted},
	},
	RoleDoctor: {
		StatusScheduled:  {StatusConfirmed, StatusInProgress, StatusNoShow},
		StatusConfirmed:  {StatusInProgress, StatusNoShow},
		StatusInProgress: {StatusCompleted},
	},
	RoleHelpdesk: {
		StatusScheduled: {StatusConfirmed},
	},
	// RolePatient has no transition rights at all.
}

// backendRoles maps the role strings issued by the backend session contract
// to the role enum. Matching is case-sensitive; the stored lowercase forms
// are accepted as well so roles survive a round trip through our own tokens.
var backendRoles = map[string]ActorRole{
	"ROLE_ADMIN":    RoleAdmin,
	"ROLE_DOCTOR":   RoleDoctor,
	"ROLE_HELPDESK": RoleHelpdesk,
	"ROLE_PATIENT":  RolePatient,
	"admin":         RoleAdmin,
	"doctor":        RoleDoctor,
	"helpdesk":      RoleHelpdesk,
	"patient":       RolePatient,
}

// IsValidRole reports whether r is one of the known roles. Use this for
// validating client-supplied role values; ParseActorRole is for session
// tokens only, since it falls back instead of rejecting.
func IsValidRole(r ActorRole) bool {
	switch r {
	case RoleAdmin, RoleDoctor, RoleHelpdesk, RolePatient:
		return true
	}
	return false
}

// ParseActorRole maps a backend role string to an ActorRole. Unrecognized
// strings fall back to the least-privileged role (patient, which holds no
// transition rights) and log a warning.
func ParseActorRole(s string) ActorRole {
	if role, ok := backendRoles[s]; ok {
		return role
	}
	log.Printf("warning: unrecognized role %q, defaulting to %s", s, RolePatient)
	return RolePatient
}
