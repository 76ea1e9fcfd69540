package db_models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderTransitions(t *testing.T) {
	order := &Order{Status: OrderPending}

	assert.NoError(t, order.Transition(OrderAuthorized))
	assert.NoError(t, order.Transition(OrderActive))
	assert.NoError(t, order.Transition(OrderShipped))
	assert.NoError(t, order.Transition(OrderCompleted))
	assert.Equal(t, OrderCompleted, order.Status)

	// completed is terminal
	assert.Error(t, order.Transition(OrderActive))
	assert.Error(t, order.Transition(OrderFailed))
}

func TestOrderTransitionSameStatusIsNoop(t *testing.T) {
	order := &Order{Status: OrderActive}
	assert.NoError(t, order.Transition(OrderActive))
	assert.Equal(t, OrderActive, order.Status)
}

func TestOrderCannotSkipToShipped(t *testing.T) {
	order := &Order{Status: OrderPending}
	assert.Error(t, order.Transition(OrderShipped))
	assert.Equal(t, OrderPending, order.Status)
}

func TestMandateTransitions(t *testing.T) {
	mandate := &Mandate{Status: MandatePendingAuth}

	assert.NoError(t, mandate.Transition(MandateActive))
	assert.NoError(t, mandate.Transition(MandateFailed))
	assert.NoError(t, mandate.Transition(MandateReplaced))

	// replaced is terminal
	assert.Error(t, mandate.Transition(MandateActive))
}

func TestMandateFailedOnlyGoesToReplaced(t *testing.T) {
	mandate := &Mandate{Status: MandateFailed}
	assert.Error(t, mandate.Transition(MandateActive))
	assert.Error(t, mandate.Transition(MandateCompleted))
	assert.NoError(t, mandate.Transition(MandateReplaced))
}

func TestMandateCompletedIsTerminal(t *testing.T) {
	mandate := &Mandate{Status: MandateCompleted}
	assert.Error(t, mandate.Transition(MandateFailed))
	assert.Error(t, mandate.Transition(MandateReplaced))
}

func TestMandateSettled(t *testing.T) {
	assert.False(t, (&Mandate{Status: MandatePendingAuth}).Settled())
	assert.False(t, (&Mandate{Status: MandateActive}).Settled())
	assert.True(t, (&Mandate{Status: MandateCompleted}).Settled())
	assert.True(t, (&Mandate{Status: MandateFailed}).Settled())
	assert.True(t, (&Mandate{Status: MandateReplaced}).Settled())
}

func TestOrderInstallmentCount(t *testing.T) {
	order := &Order{}
	assert.Equal(t, 1, order.InstallmentCount())

	n := 4
	order.Installments = &n
	assert.Equal(t, 4, order.InstallmentCount())
}
