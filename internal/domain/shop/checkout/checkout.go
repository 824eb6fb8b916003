// Package checkout contains the pure checkout state machine.
//
// The machine owns only the step sequencing; reading input, storing captured
// values, and talking to Telegram or the database are the caller's job, which
// keeps every transition testable without a transport.
package checkout

import "github.com/makarov13/gastrobot/internal/domain/shop/address"

// State is a checkout wizard step
type State int

const (
	// StateIdle means no checkout is in progress
	StateIdle State = iota
	// StateCollectingAddress waits for a delivery address
	StateCollectingAddress
	// StateCollectingComment waits for an order comment
	StateCollectingComment
	// StateCollectingPayment waits for a payment method choice
	StateCollectingPayment
	// StateAwaitingPayment waits for the payment provider confirmation
	StateAwaitingPayment
	// StateFinalized is terminal: the order was persisted
	StateFinalized
	// StateCanceled is terminal: the user aborted checkout
	StateCanceled
)

// EventKind discriminates checkout events
type EventKind int

const (
	// EventBegin starts the wizard
	EventBegin EventKind = iota
	// EventTextInput carries free text from the user
	EventTextInput
	// EventPayOnline selects online payment
	EventPayOnline
	// EventPayOnDelivery selects payment on delivery
	EventPayOnDelivery
	// EventPaymentConfirmed is the provider's confirmation signal
	EventPaymentConfirmed
	// EventCancel aborts checkout from any non-terminal state
	EventCancel
)

// Event is an input to the machine
type Event struct {
	Kind EventKind
	Text string
}

// Effect tells the caller what to do after a transition
type Effect int

const (
	// EffectNone means nothing to do
	EffectNone Effect = iota
	// EffectPromptAddress asks for the delivery address
	EffectPromptAddress
	// EffectRetryAddress re-prompts after an invalid address
	EffectRetryAddress
	// EffectStoreAddress stores Event.Text as the address and prompts
	// for a comment
	EffectStoreAddress
	// EffectStoreComment stores Event.Text as the comment and prompts
	// for a payment method
	EffectStoreComment
	// EffectSendInvoice issues the payment request for the discounted total
	EffectSendInvoice
	// EffectFinalizeOnDelivery persists the order with payment on delivery
	EffectFinalizeOnDelivery
	// EffectFinalizeOnline persists the order as paid online
	EffectFinalizeOnline
	// EffectCancel aborts checkout, keeping the cart
	EffectCancel
)

// Next is the pure transition function. Unknown events leave the state
// unchanged with no effect.
func Next(state State, ev Event) (State, Effect) {
	if ev.Kind == EventCancel {
		switch state {
		case StateIdle, StateFinalized, StateCanceled:
			return state, EffectNone
		default:
			return StateCanceled, EffectCancel
		}
	}

	switch state {
	case StateIdle:
		if ev.Kind == EventBegin {
			return StateCollectingAddress, EffectPromptAddress
		}

	case StateCollectingAddress:
		if ev.Kind == EventTextInput {
			if !address.Valid(ev.Text) {
				return StateCollectingAddress, EffectRetryAddress
			}
			return StateCollectingComment, EffectStoreAddress
		}

	case StateCollectingComment:
		// Any text advances, including the "no comment" sentinel
		if ev.Kind == EventTextInput {
			return StateCollectingPayment, EffectStoreComment
		}

	case StateCollectingPayment:
		switch ev.Kind {
		case EventPayOnDelivery:
			return StateFinalized, EffectFinalizeOnDelivery
		case EventPayOnline:
			return StateAwaitingPayment, EffectSendInvoice
		}

	case StateAwaitingPayment:
		if ev.Kind == EventPaymentConfirmed {
			return StateFinalized, EffectFinalizeOnline
		}
	}

	return state, EffectNone
}

// Collecting reports whether the state consumes free-text input
func Collecting(state State) bool {
	return state == StateCollectingAddress || state == StateCollectingComment
}

// Active reports whether a checkout is in progress
func Active(state State) bool {
	switch state {
	case StateIdle, StateFinalized, StateCanceled:
		return false
	}
	return true
}
