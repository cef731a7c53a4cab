package leave

import (
	leaveerrors "go-leavehub/internal/leave/errors"
)

// Workflow statuses of a leave request. A request starts in one of the
// pending stages and ends in exactly one terminal status.
const (
	StatusPendingManager = "PENDING_MANAGER"
	StatusPendingHR      = "PENDING_HR"
	StatusApproved       = "APPROVED"
	StatusRejected       = "REJECTED"
	StatusCancelled      = "CANCELLED"
)

// Actions a caller can request against a pending leave request
type Action string

const (
	ActionManagerApprove Action = "manager_approve"
	ActionManagerReject  Action = "manager_reject"
	ActionHRApprove      Action = "hr_approve"
	ActionHRReject       Action = "hr_reject"
	ActionCancel         Action = "cancel"
)

// Capability is resolved once per actor+request by the service and
// passed in explicitly; the workflow never inspects roles itself.
type Capability string

const (
	CapManagerDecision Capability = "manager_decision"
	CapHRDecision      Capability = "hr_decision"
	CapOwner           Capability = "owner"
)

type CapabilitySet map[Capability]bool

func (cs CapabilitySet) Has(c Capability) bool {
	return cs[c]
}

type transition struct {
	from       string
	to         string
	capability Capability
}

var transitions = map[Action]transition{
	ActionManagerApprove: {from: StatusPendingManager, to: StatusPendingHR, capability: CapManagerDecision},
	ActionManagerReject:  {from: StatusPendingManager, to: StatusRejected, capability: CapManagerDecision},
	ActionHRApprove:      {from: StatusPendingHR, to: StatusApproved, capability: CapHRDecision},
	ActionHRReject:       {from: StatusPendingHR, to: StatusRejected, capability: CapHRDecision},
}

// InitialStatus picks the first workflow stage. Employees without an
// assigned manager skip the manager stage entirely.
func InitialStatus(hasManager bool) string {
	if hasManager {
		return StatusPendingManager
	}
	return StatusPendingHR
}

func IsTerminal(status string) bool {
	switch status {
	case StatusApproved, StatusRejected, StatusCancelled:
		return true
	}
	return false
}

// BlockingStatuses are the statuses that make a request occupy its date
// range for overlap purposes.
func BlockingStatuses() []string {
	return []string{StatusPendingManager, StatusPendingHR, StatusApproved}
}

// NextStatus validates a requested action against the current status
// and the actor's capabilities. It returns the resulting status without
// mutating anything; on failure the error names the current status so
// the caller can report exactly which precondition failed.
func NextStatus(current string, action Action, caps CapabilitySet) (string, error) {
	if action == ActionCancel {
		if !caps.Has(CapOwner) {
			return "", leaveerrors.ErrNotRequestOwner
		}
		if current != StatusPendingManager && current != StatusPendingHR {
			return "", leaveerrors.InvalidTransition(string(ActionCancel), current)
		}
		return StatusCancelled, nil
	}

	t, ok := transitions[action]
	if !ok {
		return "", leaveerrors.ErrUnknownAction
	}
	if !caps.Has(t.capability) {
		return "", leaveerrors.MissingCapability(string(t.capability))
	}
	if current != t.from {
		return "", leaveerrors.InvalidTransition(string(action), current)
	}
	return t.to, nil
}
