package lifecycle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleAppointment(status AppointmentStatus) Appointment {
	return Appointment{
		ID:           "f6a7f2a0-4a86-4c5d-9c2a-1f0e2d3c4b5a",
		PatientID:    "11111111-1111-1111-1111-111111111111",
		DoctorID:     "22222222-2222-2222-2222-222222222222",
		DepartmentID: "33333333-3333-3333-3333-333333333333",
		ScheduledAt:  time.Now().Add(48 * time.Hour),
		Status:       status,
		Notes:        "bring previous lab results",
		CreatedAt:    time.Now().Add(-24 * time.Hour),
		UpdatedAt:    time.Now().Add(-time.Hour),
	}
}

var allRoles = []ActorRole{RoleAdmin, RoleDoctor, RoleHelpdesk, RolePatient}

func TestListAvailableTransitions(t *testing.T) {
	tests := []struct {
		name    string
		current AppointmentStatus
		role    ActorRole
		want    []AppointmentStatus
	}{
		{
			name:    "admin from scheduled gets every table destination",
			current: StatusScheduled,
			role:    RoleAdmin,
			want:    []AppointmentStatus{StatusScheduled, StatusConfirmed, StatusInProgress, StatusCancelled, StatusNoShow, StatusRescheduled},
		},
		{
			name:    "admin from confirmed",
			current: StatusConfirmed,
			role:    RoleAdmin,
			want:    []AppointmentStatus{StatusConfirmed, StatusInProgress, StatusCancelled, StatusNoShow, StatusRescheduled},
		},
		{
			name:    "doctor from scheduled cannot cancel or reschedule",
			current: StatusScheduled,
			role:    RoleDoctor,
			want:    []AppointmentStatus{StatusScheduled, StatusConfirmed, StatusInProgress, StatusNoShow},
		},
		{
			name:    "doctor from confirmed",
			current: StatusConfirmed,
			role:    RoleDoctor,
			want:    []AppointmentStatus{StatusConfirmed, StatusInProgress, StatusNoShow},
		},
		{
			name:    "helpdesk from scheduled may only confirm",
			current: StatusScheduled,
			role:    RoleHelpdesk,
			want:    []AppointmentStatus{StatusScheduled, StatusConfirmed},
		},
		{
			name:    "helpdesk from confirmed has nothing",
			current: StatusConfirmed,
			role:    RoleHelpdesk,
			want:    []AppointmentStatus{StatusConfirmed},
		},
		{
			name:    "patient never has transitions",
			current: StatusScheduled,
			role:    RolePatient,
			want:    []AppointmentStatus{StatusScheduled},
		},
		{
			name:    "doctor from in progress may complete",
			current: StatusInProgress,
			role:    RoleDoctor,
			want:    []AppointmentStatus{StatusInProgress, StatusCompleted},
		},
		{
			name:    "rescheduled follows scheduled rules",
			current: StatusRescheduled,
			role:    RoleDoctor,
			want:    []AppointmentStatus{StatusRescheduled, StatusConfirmed, StatusInProgress, StatusNoShow},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ListAvailableTransitions(tt.current, tt.role)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestListAvailableTransitionsTerminalStatuses(t *testing.T) {
	for _, status := range []AppointmentStatus{StatusCompleted, StatusCancelled, StatusNoShow} {
		for _, role := range allRoles {
			got := ListAvailableTransitions(status, role)
			assert.Equal(t, []AppointmentStatus{status}, got,
				"terminal status %s must offer only itself to role %s", status, role)
		}
	}
}

func TestListAvailableTransitionsStaysInsideTable(t *testing.T) {
	// Whatever the role, the offered set may only contain the current status
	// plus destinations the transition table itself reaches.
	for _, status := range AllStatuses {
		for _, role := range allRoles {
			for _, offered := range ListAvailableTransitions(status, role) {
				if offered == status {
					continue
				}
				assert.Contains(t, transitions[normalize(status)], offered,
					"role %s offered %s from %s, which the table does not reach", role, offered, status)
			}
		}
	}
}

func TestApplyStatusChange(t *testing.T) {
	tests := []struct {
		name      string
		current   AppointmentStatus
		requested AppointmentStatus
		role      ActorRole
		wantErr   error
	}{
		{"admin confirms scheduled", StatusScheduled, StatusConfirmed, RoleAdmin, nil},
		{"admin cancels confirmed", StatusConfirmed, StatusCancelled, RoleAdmin, nil},
		{"doctor starts confirmed", StatusConfirmed, StatusInProgress, RoleDoctor, nil},
		{"doctor completes in progress", StatusInProgress, StatusCompleted, RoleDoctor, nil},
		{"doctor marks scheduled no-show", StatusScheduled, StatusNoShow, RoleDoctor, nil},
		{"helpdesk confirms scheduled", StatusScheduled, StatusConfirmed, RoleHelpdesk, nil},
		{"rescheduled behaves as scheduled", StatusRescheduled, StatusConfirmed, RoleDoctor, nil},

		{"helpdesk cannot complete in progress", StatusInProgress, StatusCompleted, RoleHelpdesk, ErrUnauthorized},
		{"helpdesk cannot act on confirmed", StatusConfirmed, StatusInProgress, RoleHelpdesk, ErrUnauthorized},
		{"patient has no rights", StatusScheduled, StatusConfirmed, RolePatient, ErrUnauthorized},

		{"doctor cannot cancel", StatusScheduled, StatusCancelled, RoleDoctor, ErrInvalidTransition},
		{"completed is terminal even for admin", StatusCompleted, StatusCancelled, RoleAdmin, ErrInvalidTransition},
		{"cancelled is terminal", StatusCancelled, StatusScheduled, RoleAdmin, ErrInvalidTransition},
		{"no-show is terminal", StatusNoShow, StatusScheduled, RoleAdmin, ErrInvalidTransition},
		{"cannot skip to completed from scheduled", StatusScheduled, StatusCompleted, RoleAdmin, ErrInvalidTransition},
		{"cannot leave in progress except to completed", StatusInProgress, StatusCancelled, RoleAdmin, ErrInvalidTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appt := sampleAppointment(tt.current)
			updated, err := ApplyStatusChange(appt, tt.requested, tt.role)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.requested, updated.Status)
			assert.True(t, updated.UpdatedAt.After(appt.UpdatedAt), "UpdatedAt must be refreshed")
			assert.Equal(t, appt.ID, updated.ID)
			assert.Equal(t, appt.ScheduledAt, updated.ScheduledAt)
		})
	}
}

func TestApplyStatusChangeNoOpIsInvalid(t *testing.T) {
	for _, status := range AllStatuses {
		for _, role := range allRoles {
			_, err := ApplyStatusChange(sampleAppointment(status), status, role)
			assert.ErrorIs(t, err, ErrInvalidTransition,
				"requesting the current status %s as role %s must be rejected", status, role)
		}
	}
}

func TestApplyStatusChangeDoesNotMutateInput(t *testing.T) {
	appt := sampleAppointment(StatusScheduled)
	original := appt

	updated, err := ApplyStatusChange(appt, StatusConfirmed, RoleAdmin)
	require.NoError(t, err)

	assert.Equal(t, original, appt, "input appointment must be left untouched")
	assert.NotEqual(t, appt.Status, updated.Status)
}

func TestApplyStatusChangeRejectsUnknownStatus(t *testing.T) {
	_, err := ApplyStatusChange(sampleAppointment(StatusScheduled), AppointmentStatus("ARCHIVED"), RoleAdmin)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestCancel(t *testing.T) {
	t.Run("admin cancels with reason", func(t *testing.T) {
		appt := sampleAppointment(StatusScheduled)
		updated, err := Cancel(appt, "patient requested", RoleAdmin)
		require.NoError(t, err)
		assert.Equal(t, StatusCancelled, updated.Status)
		assert.Equal(t, "patient requested", updated.CancellationReason)
		assert.Empty(t, appt.CancellationReason, "input must not be mutated")
	})

	t.Run("missing reason", func(t *testing.T) {
		_, err := Cancel(sampleAppointment(StatusScheduled), "", RoleAdmin)
		assert.ErrorIs(t, err, ErrMissingReason)
	})

	t.Run("whitespace reason counts as missing", func(t *testing.T) {
		_, err := Cancel(sampleAppointment(StatusScheduled), "   \t", RoleAdmin)
		assert.ErrorIs(t, err, ErrMissingReason)
	})

	t.Run("doctor may not cancel", func(t *testing.T) {
		_, err := Cancel(sampleAppointment(StatusScheduled), "double booked", RoleDoctor)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("helpdesk may not cancel", func(t *testing.T) {
		_, err := Cancel(sampleAppointment(StatusScheduled), "double booked", RoleHelpdesk)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("cannot cancel in progress", func(t *testing.T) {
		_, err := Cancel(sampleAppointment(StatusInProgress), "running late", RoleAdmin)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("cannot cancel completed", func(t *testing.T) {
		_, err := Cancel(sampleAppointment(StatusCompleted), "changed my mind", RoleAdmin)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})
}

func TestReschedule(t *testing.T) {
	future := time.Now().Add(72 * time.Hour)

	t.Run("admin reschedules scheduled", func(t *testing.T) {
		appt := sampleAppointment(StatusScheduled)
		updated, err := Reschedule(appt, future, RoleAdmin)
		require.NoError(t, err)
		assert.Equal(t, StatusScheduled, updated.Status)
		assert.Equal(t, future, updated.ScheduledAt)
		assert.NotEqual(t, future, appt.ScheduledAt, "input must not be mutated")
	})

	t.Run("helpdesk reschedules confirmed back to scheduled", func(t *testing.T) {
		updated, err := Reschedule(sampleAppointment(StatusConfirmed), future, RoleHelpdesk)
		require.NoError(t, err)
		assert.Equal(t, StatusScheduled, updated.Status)
	})

	t.Run("doctor reschedules", func(t *testing.T) {
		updated, err := Reschedule(sampleAppointment(StatusScheduled), future, RoleDoctor)
		require.NoError(t, err)
		assert.Equal(t, StatusScheduled, updated.Status)
	})

	t.Run("stale cancellation reason is cleared", func(t *testing.T) {
		appt := sampleAppointment(StatusScheduled)
		appt.CancellationReason = "left over from a bad import"
		updated, err := Reschedule(appt, future, RoleAdmin)
		require.NoError(t, err)
		assert.Empty(t, updated.CancellationReason)
	})

	t.Run("past date", func(t *testing.T) {
		_, err := Reschedule(sampleAppointment(StatusScheduled), time.Now().Add(-time.Hour), RoleAdmin)
		assert.ErrorIs(t, err, ErrPastDate)
	})

	t.Run("patient may not reschedule", func(t *testing.T) {
		_, err := Reschedule(sampleAppointment(StatusScheduled), future, RolePatient)
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("in progress cannot be rescheduled", func(t *testing.T) {
		_, err := Reschedule(sampleAppointment(StatusInProgress), future, RoleAdmin)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("terminal statuses cannot be rescheduled", func(t *testing.T) {
		for _, status := range []AppointmentStatus{StatusCompleted, StatusCancelled, StatusNoShow} {
			_, err := Reschedule(sampleAppointment(status), future, RoleAdmin)
			assert.ErrorIs(t, err, ErrInvalidTransition, "status %s", status)
		}
	})

	t.Run("rescheduled appointment can be rescheduled again", func(t *testing.T) {
		updated, err := Reschedule(sampleAppointment(StatusRescheduled), future, RoleAdmin)
		require.NoError(t, err)
		assert.Equal(t, StatusScheduled, updated.Status)
	})
}

func TestCancelThenStatusIsTerminal(t *testing.T) {
	cancelled, err := Cancel(sampleAppointment(StatusConfirmed), "clinic closed", RoleAdmin)
	require.NoError(t, err)

	_, err = ApplyStatusChange(cancelled, StatusScheduled, RoleAdmin)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	_, err = Reschedule(cancelled, time.Now().Add(time.Hour), RoleAdmin)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.True(t, StatusNoShow.IsTerminal())
	assert.False(t, StatusScheduled.IsTerminal())
	assert.False(t, StatusConfirmed.IsTerminal())
	assert.False(t, StatusInProgress.IsTerminal())
	assert.False(t, StatusRescheduled.IsTerminal())
}

func TestIsValidStatus(t *testing.T) {
	for _, status := range AllStatuses {
		assert.True(t, IsValidStatus(status))
	}
	assert.False(t, IsValidStatus(AppointmentStatus("PENDING")))
	assert.False(t, IsValidStatus(AppointmentStatus("scheduled")))
}
