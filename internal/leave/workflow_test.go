package leave

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	leaveerrors "go-leavehub/internal/leave/errors"
	"go-leavehub/internal/shared/apperror"
)

func TestInitialStatus(t *testing.T) {
	assert.Equal(t, StatusPendingManager, InitialStatus(true))
	assert.Equal(t, StatusPendingHR, InitialStatus(false))
}

func TestNextStatus_Transitions(t *testing.T) {
	managerCaps := CapabilitySet{CapManagerDecision: true}
	hrCaps := CapabilitySet{CapHRDecision: true}
	ownerCaps := CapabilitySet{CapOwner: true}

	cases := []struct {
		name    string
		current string
		action  Action
		caps    CapabilitySet
		want    string
		wantErr bool
	}{
		{"manager approve", StatusPendingManager, ActionManagerApprove, managerCaps, StatusPendingHR, false},
		{"manager reject", StatusPendingManager, ActionManagerReject, managerCaps, StatusRejected, false},
		{"hr approve", StatusPendingHR, ActionHRApprove, hrCaps, StatusApproved, false},
		{"hr reject", StatusPendingHR, ActionHRReject, hrCaps, StatusRejected, false},
		{"owner cancel at manager stage", StatusPendingManager, ActionCancel, ownerCaps, StatusCancelled, false},
		{"owner cancel at hr stage", StatusPendingHR, ActionCancel, ownerCaps, StatusCancelled, false},

		{"manager approve at hr stage", StatusPendingHR, ActionManagerApprove, managerCaps, "", true},
		{"hr approve at manager stage", StatusPendingManager, ActionHRApprove, hrCaps, "", true},
		{"approve already approved", StatusApproved, ActionHRApprove, hrCaps, "", true},
		{"reject already rejected", StatusRejected, ActionManagerReject, managerCaps, "", true},
		{"cancel approved request", StatusApproved, ActionCancel, ownerCaps, "", true},
		{"cancel cancelled request", StatusCancelled, ActionCancel, ownerCaps, "", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NextStatus(tc.current, tc.action, tc.caps)
			if tc.wantErr {
				assert.Error(t, err)
				assert.Empty(t, got)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNextStatus_IllegalTransitionNamesCurrentStatus(t *testing.T) {
	_, err := NextStatus(StatusApproved, ActionHRApprove, CapabilitySet{CapHRDecision: true})

	var appErr *apperror.AppError
	assert.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperror.CodeInvalidState, appErr.Code)
	assert.Contains(t, appErr.Message, StatusApproved)
}

func TestNextStatus_CapabilityChecks(t *testing.T) {
	// capability check fires before the state check
	_, err := NextStatus(StatusApproved, ActionManagerApprove, CapabilitySet{})
	var appErr *apperror.AppError
	assert.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperror.CodeForbidden, appErr.Code)

	_, err = NextStatus(StatusPendingHR, ActionHRApprove, CapabilitySet{CapManagerDecision: true})
	assert.Error(t, err)

	_, err = NextStatus(StatusPendingManager, ActionCancel, CapabilitySet{CapManagerDecision: true, CapHRDecision: true})
	assert.ErrorIs(t, err, leaveerrors.ErrNotRequestOwner)
}

func TestNextStatus_UnknownAction(t *testing.T) {
	_, err := NextStatus(StatusPendingManager, Action("escalate"), CapabilitySet{CapManagerDecision: true})
	assert.Error(t, err)
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, IsTerminal(StatusPendingManager))
	assert.False(t, IsTerminal(StatusPendingHR))
	assert.True(t, IsTerminal(StatusApproved))
	assert.True(t, IsTerminal(StatusRejected))
	assert.True(t, IsTerminal(StatusCancelled))
}
