package realtime

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	chatmodel "github.com/sang6174/ocean-chat-server-sub000/internal/chat/model"
	"github.com/sang6174/ocean-chat-server-sub000/internal/events"
	notifmodel "github.com/sang6174/ocean-chat-server-sub000/internal/notification/model"
	apperrors "github.com/sang6174/ocean-chat-server-sub000/pkg/errors"
	"github.com/sang6174/ocean-chat-server-sub000/pkg/logger"
)

// ParticipantResolver is the slice of the chat repository fanout needs to
// resolve an event's recipients. Recipients are re-read per event; delivery
// order across concurrent senders is best-effort and consumers resolve
// authoritative order from the persisted sequence.
type ParticipantResolver interface {
	ListParticipants(ctx context.Context, conversationID uuid.UUID) ([]*chatmodel.Participant, error)
}

// Fanout converts successful mutations into deliveries to live connections.
// Its handlers run on the publisher's call path; every failure here is
// logged and contained, never surfaced to the mutation.
type Fanout struct {
	registry *Registry
	resolver ParticipantResolver
	log      *logger.Logger
}

func NewFanout(registry *Registry, resolver ParticipantResolver, log *logger.Logger) *Fanout {
	return &Fanout{registry: registry, resolver: resolver, log: log}
}

// RegisterHandlers wires one handler per event kind. Called once at startup.
func (f *Fanout) RegisterHandlers(bus events.Bus) {
	bus.Subscribe(events.KindConversationCreated, f.onConversationCreated)
	bus.Subscribe(events.KindMessageCreated, f.onMessageCreated)
	bus.Subscribe(events.KindParticipantsAdded, f.onParticipantsAdded)
	bus.Subscribe(events.KindFriendRequestSent, f.onFriendRequest)
	bus.Subscribe(events.KindFriendRequestAccepted, f.onFriendRequest)
	bus.Subscribe(events.KindFriendRequestDenied, f.onFriendRequest)
	bus.Subscribe(events.KindFriendRequestCancelled, f.onFriendRequest)
}

// conversation created: the creator's other sessions plus every other
// participant, skipping only the creator's originating session.
func (f *Fanout) onConversationCreated(ctx context.Context, e events.Event) error {
	ev, ok := e.(events.ConversationCreated)
	if !ok {
		return apperrors.Internal("unexpected payload for conversation.created")
	}

	payload, err := f.marshal(e.Kind(), Metadata{
		SenderID:       ev.ActorID,
		ToConversation: &ev.Conversation.ID,
	}, toConversationData(ev.Conversation, ev.Participants))
	if err != nil {
		return err
	}

	f.registry.BroadcastToUsers(userIDs(ev.Participants), ev.OriginSessionToken, payload)
	return nil
}

// message created: all participants, skipping only the sender's originating
// session; the sender's other devices still mirror the message.
func (f *Fanout) onMessageCreated(ctx context.Context, e events.Event) error {
	ev, ok := e.(events.MessageCreated)
	if !ok {
		return apperrors.Internal("unexpected payload for message.created")
	}

	participants, err := f.resolver.ListParticipants(ctx, ev.Message.ConversationID)
	if err != nil {
		return err
	}

	payload, err := f.marshal(e.Kind(), Metadata{
		SenderID:       ev.ActorID,
		ToConversation: &ev.Message.ConversationID,
	}, toMessageData(ev.Message))
	if err != nil {
		return err
	}

	f.registry.BroadcastToUsers(userIDs(participants), ev.OriginSessionToken, payload)
	return nil
}

// participants added: prior members get a member-added notice, new members
// get the full conversation snapshot; the actor's originating session is
// skipped.
func (f *Fanout) onParticipantsAdded(ctx context.Context, e events.Event) error {
	ev, ok := e.(events.ParticipantsAdded)
	if !ok {
		return apperrors.Internal("unexpected payload for participants.added")
	}

	meta := Metadata{
		SenderID:       ev.ActorID,
		ToConversation: &ev.Conversation.ID,
	}

	added := make([]participantData, 0, len(ev.Added))
	for _, p := range ev.Added {
		added = append(added, toParticipantData(p))
	}
	notice, err := f.marshal(e.Kind(), meta, membersAddedData{
		ConversationID: ev.Conversation.ID,
		Added:          added,
	})
	if err != nil {
		return err
	}
	f.registry.BroadcastToUsers(userIDs(ev.Prior), ev.OriginSessionToken, notice)

	everyone := append(append([]*chatmodel.Participant(nil), ev.Prior...), ev.Added...)
	snapshot, err := f.marshal(e.Kind(), meta, toConversationData(ev.Conversation, everyone))
	if err != nil {
		return err
	}
	f.registry.BroadcastToUsers(userIDs(ev.Added), ev.OriginSessionToken, snapshot)
	return nil
}

// friend request lifecycle: the counterparty hears on every session, no
// exclusion; the actor already has the mutation's response.
func (f *Fanout) onFriendRequest(ctx context.Context, e events.Event) error {
	var (
		n            *notifmodel.Notification
		actor        uuid.UUID
		counterparty uuid.UUID
	)
	switch ev := e.(type) {
	case events.FriendRequestSent:
		n, actor, counterparty = ev.Notification, ev.Notification.SenderID, ev.Notification.RecipientID
	case events.FriendRequestAccepted:
		n, actor, counterparty = ev.Notification, ev.Notification.RecipientID, ev.Notification.SenderID
	case events.FriendRequestDenied:
		n, actor, counterparty = ev.Notification, ev.Notification.RecipientID, ev.Notification.SenderID
	case events.FriendRequestCancelled:
		n, actor, counterparty = ev.Notification, ev.Notification.SenderID, ev.Notification.RecipientID
	default:
		return apperrors.Internal("unexpected payload for friend request event")
	}

	payload, err := f.marshal(e.Kind(), Metadata{
		SenderID: actor,
		ToUserID: &counterparty,
	}, toNotificationData(n))
	if err != nil {
		return err
	}

	f.registry.DeliverToUser(counterparty, payload)
	return nil
}

func (f *Fanout) marshal(kind events.Kind, meta Metadata, data any) ([]byte, error) {
	payload, err := json.Marshal(Envelope{
		Type:     string(kind),
		Metadata: meta,
		Data:     data,
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, "fanout.marshal", err)
	}
	return payload, nil
}

func userIDs(participants []*chatmodel.Participant) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(participants))
	for _, p := range participants {
		ids = append(ids, p.UserID)
	}
	return ids
}
