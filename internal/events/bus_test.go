package events

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	model "github.com/sang6174/ocean-chat-server-sub000/internal/chat/model"
	"github.com/sang6174/ocean-chat-server-sub000/pkg/errors"
)

func TestBus_PublishInRegistrationOrder(t *testing.T) {
	bus := NewInProcessBus(nil)

	var order []string
	bus.Subscribe(KindMessageCreated, func(ctx context.Context, e Event) error {
		order = append(order, "first")
		return nil
	})
	bus.Subscribe(KindMessageCreated, func(ctx context.Context, e Event) error {
		order = append(order, "second")
		return nil
	})

	bus.Publish(context.Background(), MessageCreated{Message: &model.Message{}})

	require.Equal(t, []string{"first", "second"}, order)
}

func TestBus_HandlerFailureIsIsolated(t *testing.T) {
	bus := NewInProcessBus(nil)

	var reached bool
	bus.Subscribe(KindMessageCreated, func(ctx context.Context, e Event) error {
		return errors.Internal("handler blew up")
	})
	bus.Subscribe(KindMessageCreated, func(ctx context.Context, e Event) error {
		panic("handler panicked")
	})
	bus.Subscribe(KindMessageCreated, func(ctx context.Context, e Event) error {
		reached = true
		return nil
	})

	// must not panic and must reach the last handler
	bus.Publish(context.Background(), MessageCreated{Message: &model.Message{}})

	assert.True(t, reached)
}

func TestBus_PublishOnlyMatchingKind(t *testing.T) {
	bus := NewInProcessBus(nil)

	var calls int
	bus.Subscribe(KindConversationCreated, func(ctx context.Context, e Event) error {
		calls++
		return nil
	})

	bus.Publish(context.Background(), MessageCreated{Message: &model.Message{}})
	assert.Equal(t, 0, calls)

	bus.Publish(context.Background(), ConversationCreated{Conversation: &model.Conversation{}})
	assert.Equal(t, 1, calls)
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := NewInProcessBus(nil)

	var calls int
	id := bus.Subscribe(KindMessageCreated, func(ctx context.Context, e Event) error {
		calls++
		return nil
	})

	bus.Publish(context.Background(), MessageCreated{Message: &model.Message{}})
	bus.Unsubscribe(KindMessageCreated, id)
	bus.Publish(context.Background(), MessageCreated{Message: &model.Message{}})

	assert.Equal(t, 1, calls)
}

func TestBus_HandlerSeesTypedPayload(t *testing.T) {
	bus := NewInProcessBus(nil)

	msg := &model.Message{Body: "hello"}
	var got *model.Message
	bus.Subscribe(KindMessageCreated, func(ctx context.Context, e Event) error {
		ev, ok := e.(MessageCreated)
		require.True(t, ok)
		got = ev.Message
		return nil
	})

	bus.Publish(context.Background(), MessageCreated{Message: msg})

	require.Same(t, msg, got)
}
