package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"charity-pay.backend/internal/domain/entities"
	domainerrors "charity-pay.backend/internal/domain/errors"
)

func TestApprovalState_CanTransitionTo(t *testing.T) {
	cases := []struct {
		from    entities.ApprovalState
		to      entities.ApprovalState
		allowed bool
	}{
		{entities.ApprovalStatePending, entities.ApprovalStateKycSubmitted, true},
		{entities.ApprovalStatePending, entities.ApprovalStateMerchantApproved, true},
		{entities.ApprovalStatePending, entities.ApprovalStateRejected, true},
		{entities.ApprovalStatePending, entities.ApprovalStateActive, false},
		{entities.ApprovalStatePending, entities.ApprovalStateSuspended, false},
		{entities.ApprovalStateKycSubmitted, entities.ApprovalStateMerchantApproved, true},
		{entities.ApprovalStateKycSubmitted, entities.ApprovalStateRejected, true},
		{entities.ApprovalStateKycSubmitted, entities.ApprovalStateActive, false},
		{entities.ApprovalStateMerchantApproved, entities.ApprovalStateActive, true},
		{entities.ApprovalStateMerchantApproved, entities.ApprovalStateKycSubmitted, true},
		{entities.ApprovalStateMerchantApproved, entities.ApprovalStateRejected, true},
		{entities.ApprovalStateActive, entities.ApprovalStateSuspended, true},
		{entities.ApprovalStateActive, entities.ApprovalStateRejected, false},
		{entities.ApprovalStateActive, entities.ApprovalStatePending, false},
		{entities.ApprovalStateSuspended, entities.ApprovalStateActive, true},
		{entities.ApprovalStateSuspended, entities.ApprovalStateRejected, false},
		{entities.ApprovalStateRejected, entities.ApprovalStateKycSubmitted, false},
		{entities.ApprovalStateRejected, entities.ApprovalStateActive, false},
	}

	for _, tc := range cases {
		assert.Equalf(t, tc.allowed, tc.from.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestApprovalState_Transition(t *testing.T) {
	next, err := entities.ApprovalStateKycSubmitted.Transition(entities.ApprovalStateMerchantApproved)
	assert.NoError(t, err)
	assert.Equal(t, entities.ApprovalStateMerchantApproved, next)
}

func TestApprovalState_Transition_Illegal(t *testing.T) {
	next, err := entities.ApprovalStateRejected.Transition(entities.ApprovalStateActive)
	assert.ErrorIs(t, err, domainerrors.ErrIllegalTransition)
	// The state is unchanged on rejection.
	assert.Equal(t, entities.ApprovalStateRejected, next)

	var terr *entities.TransitionError
	assert.ErrorAs(t, err, &terr)
	assert.Equal(t, entities.ApprovalStateRejected, terr.From)
	assert.Equal(t, entities.ApprovalStateActive, terr.To)
	assert.Contains(t, terr.Error(), "rejected -> active")
}

func TestApprovalState_SelfTransitionIllegal(t *testing.T) {
	_, err := entities.ApprovalStateActive.Transition(entities.ApprovalStateActive)
	assert.ErrorIs(t, err, domainerrors.ErrIllegalTransition)
}

func TestApprovalState_IsValid(t *testing.T) {
	assert.True(t, entities.ApprovalStatePending.IsValid())
	assert.True(t, entities.ApprovalStateSuspended.IsValid())
	assert.False(t, entities.ApprovalState("archived").IsValid())
	assert.False(t, entities.ApprovalState("").IsValid())
}
