package workflow

import (
	"context"
)

// NotifyPrompt is the post-save offer to send the patient a reminder through
// the messaging deep link. Either answer returns to the previous screen; the
// saved data is already on the server and is never affected by the outcome.
type NotifyPrompt struct {
	m       *Machine
	phone   string
	message string
}

// OfferReminder opens the prompt after a successful appointment save.
func (m *Machine) OfferReminder(phone, message string) *NotifyPrompt {
	return &NotifyPrompt{m: m, phone: phone, message: message}
}

// Decline skips the reminder and returns to the previous screen.
func (p *NotifyPrompt) Decline(ctx context.Context) error {
	return p.m.Pop(ctx)
}

// Send hands the reminder to the messaging handler, then returns to the
// previous screen regardless. A handler failure is reported on its own; the
// appointment stays saved.
func (p *NotifyPrompt) Send(ctx context.Context) error {
	sendErr := p.m.notifier.Send(p.phone, p.message)
	if err := p.m.Pop(ctx); err != nil {
		return err
	}
	return sendErr
}
