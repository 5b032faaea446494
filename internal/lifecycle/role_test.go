package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseActorRole(t *testing.T) {
	tests := []struct {
		input string
		want  ActorRole
	}{
		{"ROLE_ADMIN", RoleAdmin},
		{"ROLE_DOCTOR", RoleDoctor},
		{"ROLE_HELPDESK", RoleHelpdesk},
		{"ROLE_PATIENT", RolePatient},
		{"admin", RoleAdmin},
		{"doctor", RoleDoctor},
		{"helpdesk", RoleHelpdesk},
		{"patient", RolePatient},

		// Unrecognized strings fall back to the least-privileged role.
		{"", RolePatient},
		{"ROLE_NURSE", RolePatient},
		{"Admin", RolePatient},
		{"role_admin", RolePatient},
		{"ADMIN", RolePatient},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseActorRole(tt.input), "input %q", tt.input)
	}
}

func TestIsValidRole(t *testing.T) {
	for _, role := range []ActorRole{RoleAdmin, RoleDoctor, RoleHelpdesk, RolePatient} {
		assert.True(t, IsValidRole(role), "role %q", role)
	}
	for _, role := range []ActorRole{"", "ROLE_ADMIN", "Admin", "nurse", "typo"} {
		assert.False(t, IsValidRole(role), "role %q", role)
	}
}

func TestUnknownRoleHasNoRights(t *testing.T) {
	role := ParseActorRole("ROLE_INTERN")
	for _, status := range AllStatuses {
		assert.Equal(t, []AppointmentStatus{status}, ListAvailableTransitions(status, role))
	}
}
