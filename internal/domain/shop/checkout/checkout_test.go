package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNext_HappyPathOnDelivery(t *testing.T) {
	state, effect := Next(StateIdle, Event{Kind: EventBegin})
	assert.Equal(t, StateCollectingAddress, state)
	assert.Equal(t, EffectPromptAddress, effect)

	state, effect = Next(state, Event{Kind: EventTextInput, Text: "Москва, ул. Ленина, д. 10, кв. 5"})
	assert.Equal(t, StateCollectingComment, state)
	assert.Equal(t, EffectStoreAddress, effect)

	state, effect = Next(state, Event{Kind: EventTextInput, Text: "позвоните за час"})
	assert.Equal(t, StateCollectingPayment, state)
	assert.Equal(t, EffectStoreComment, effect)

	state, effect = Next(state, Event{Kind: EventPayOnDelivery})
	assert.Equal(t, StateFinalized, state)
	assert.Equal(t, EffectFinalizeOnDelivery, effect)
}

func TestNext_HappyPathOnline(t *testing.T) {
	state := StateCollectingPayment

	state, effect := Next(state, Event{Kind: EventPayOnline})
	assert.Equal(t, StateAwaitingPayment, state)
	assert.Equal(t, EffectSendInvoice, effect)

	state, effect = Next(state, Event{Kind: EventPaymentConfirmed})
	assert.Equal(t, StateFinalized, state)
	assert.Equal(t, EffectFinalizeOnline, effect)
}

func TestNext_InvalidAddressRepromptsInPlace(t *testing.T) {
	state, effect := Next(StateCollectingAddress, Event{Kind: EventTextInput, Text: "ленина 10"})

	assert.Equal(t, StateCollectingAddress, state)
	assert.Equal(t, EffectRetryAddress, effect)
}

func TestNext_CommentAlwaysAdvances(t *testing.T) {
	state, effect := Next(StateCollectingComment, Event{Kind: EventTextInput, Text: "-"})

	assert.Equal(t, StateCollectingPayment, state)
	assert.Equal(t, EffectStoreComment, effect)
}

func TestNext_CancelFromEveryActiveState(t *testing.T) {
	for _, from := range []State{
		StateCollectingAddress,
		StateCollectingComment,
		StateCollectingPayment,
		StateAwaitingPayment,
	} {
		state, effect := Next(from, Event{Kind: EventCancel})
		assert.Equal(t, StateCanceled, state, "from state %d", from)
		assert.Equal(t, EffectCancel, effect, "from state %d", from)
	}
}

func TestNext_CancelWhenIdleIsNoop(t *testing.T) {
	state, effect := Next(StateIdle, Event{Kind: EventCancel})

	assert.Equal(t, StateIdle, state)
	assert.Equal(t, EffectNone, effect)
}

func TestNext_UnknownEventKeepsState(t *testing.T) {
	state, effect := Next(StateAwaitingPayment, Event{Kind: EventTextInput, Text: "hello"})

	assert.Equal(t, StateAwaitingPayment, state)
	assert.Equal(t, EffectNone, effect)
}

func TestCollecting(t *testing.T) {
	assert.True(t, Collecting(StateCollectingAddress))
	assert.True(t, Collecting(StateCollectingComment))
	assert.False(t, Collecting(StateCollectingPayment))
	assert.False(t, Collecting(StateIdle))
}

func TestActive(t *testing.T) {
	assert.False(t, Active(StateIdle))
	assert.False(t, Active(StateFinalized))
	assert.False(t, Active(StateCanceled))
	assert.True(t, Active(StateCollectingAddress))
	assert.True(t, Active(StateAwaitingPayment))
}
