package workflow

import (
	"context"
	"errors"
)

// ConfirmState tracks a destructive-action dialog.
type ConfirmState int

const (
	ConfirmPending ConfirmState = iota
	ConfirmApproved
	ConfirmDeclined
)

// ErrConfirmResolved reports a second answer to an already-answered dialog.
var ErrConfirmResolved = errors.New("confirmation already resolved")

// Confirm is a single-use confirmation for a destructive action. The action
// runs only on approval, exactly once; declining discards it untouched.
type Confirm struct {
	state  ConfirmState
	action func(ctx context.Context) error
}

// Confirm opens a confirmation dialog around the given action.
func (m *Machine) Confirm(action func(ctx context.Context) error) *Confirm {
	return &Confirm{state: ConfirmPending, action: action}
}

func (c *Confirm) State() ConfirmState {
	return c.state
}

// Decline dismisses the dialog. The wrapped action never runs.
func (c *Confirm) Decline() {
	if c.state == ConfirmPending {
		c.state = ConfirmDeclined
	}
}

// Approve runs the wrapped action. The action's error is the caller's to
// report; the dialog is spent either way.
func (c *Confirm) Approve(ctx context.Context) error {
	if c.state != ConfirmPending {
		return ErrConfirmResolved
	}
	c.state = ConfirmApproved
	return c.action(ctx)
}
