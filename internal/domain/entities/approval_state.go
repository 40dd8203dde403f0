package entities

import (
	"fmt"

	domainerrors "charity-pay.backend/internal/domain/errors"
)

// ApprovalState represents where an organization is in merchant onboarding
type ApprovalState string

const (
	ApprovalStatePending          ApprovalState = "pending"
	ApprovalStateKycSubmitted     ApprovalState = "kyc_submitted"
	ApprovalStateMerchantApproved ApprovalState = "merchant_approved"
	ApprovalStateActive           ApprovalState = "active"
	ApprovalStateRejected         ApprovalState = "rejected"
	ApprovalStateSuspended        ApprovalState = "suspended"
)

// approvalTransitions is the full set of legal state changes. Anything not
// listed here is rejected by Transition with a TransitionError.
var approvalTransitions = map[ApprovalState][]ApprovalState{
	ApprovalStatePending:          {ApprovalStateKycSubmitted, ApprovalStateMerchantApproved, ApprovalStateRejected},
	ApprovalStateKycSubmitted:     {ApprovalStateMerchantApproved, ApprovalStateRejected},
	ApprovalStateMerchantApproved: {ApprovalStateKycSubmitted, ApprovalStateActive, ApprovalStateRejected},
	ApprovalStateActive:           {ApprovalStateSuspended},
	ApprovalStateSuspended:        {ApprovalStateActive},
	ApprovalStateRejected:         {},
}

// TransitionError is returned when a state change is not permitted
// from the current state.
type TransitionError struct {
	From ApprovalState
	To   ApprovalState
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("illegal approval state transition: %s -> %s", e.From, e.To)
}

func (e *TransitionError) Unwrap() error {
	return domainerrors.ErrIllegalTransition
}

// CanTransitionTo reports whether the state machine permits moving to target.
func (s ApprovalState) CanTransitionTo(target ApprovalState) bool {
	for _, t := range approvalTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// Transition validates the requested change and returns the new state.
// It performs no I/O; persistence is the caller's responsibility and must
// only happen after the transition succeeds.
func (s ApprovalState) Transition(target ApprovalState) (ApprovalState, error) {
	if !s.CanTransitionTo(target) {
		return s, &TransitionError{From: s, To: target}
	}
	return target, nil
}

// IsValid reports whether the value is a known approval state.
func (s ApprovalState) IsValid() bool {
	switch s {
	case ApprovalStatePending, ApprovalStateKycSubmitted, ApprovalStateMerchantApproved,
		ApprovalStateActive, ApprovalStateRejected, ApprovalStateSuspended:
		return true
	}
	return false
}
