package events

import (
	"github.com/google/uuid"

	chatmodel "github.com/sang6174/ocean-chat-server-sub000/internal/chat/model"
	notifmodel "github.com/sang6174/ocean-chat-server-sub000/internal/notification/model"
)

type Kind string

const (
	KindConversationCreated    Kind = "conversation.created"
	KindMessageCreated         Kind = "message.created"
	KindParticipantsAdded      Kind = "participants.added"
	KindFriendRequestSent      Kind = "friend_request.sent"
	KindFriendRequestAccepted  Kind = "friend_request.accepted"
	KindFriendRequestDenied    Kind = "friend_request.denied"
	KindFriendRequestCancelled Kind = "friend_request.cancelled"
)

// Event is a transient (kind, payload) pair. One payload struct per kind,
// so a handler's type assertion is the only runtime check left.
type Event interface {
	Kind() Kind
}

// OriginSessionToken identifies the client session that triggered the
// mutation. Fanout skips that exact session; the actor's other sessions
// are still notified.

type ConversationCreated struct {
	Conversation       *chatmodel.Conversation
	Participants       []*chatmodel.Participant
	ActorID            uuid.UUID
	OriginSessionToken string
}

func (ConversationCreated) Kind() Kind { return KindConversationCreated }

type MessageCreated struct {
	Message            *chatmodel.Message
	ActorID            uuid.UUID
	OriginSessionToken string
}

func (MessageCreated) Kind() Kind { return KindMessageCreated }

type ParticipantsAdded struct {
	Conversation       *chatmodel.Conversation
	Added              []*chatmodel.Participant
	Prior              []*chatmodel.Participant
	ActorID            uuid.UUID
	OriginSessionToken string
}

func (ParticipantsAdded) Kind() Kind { return KindParticipantsAdded }

type FriendRequestSent struct {
	Notification *notifmodel.Notification
}

func (FriendRequestSent) Kind() Kind { return KindFriendRequestSent }

type FriendRequestAccepted struct {
	Notification *notifmodel.Notification
}

func (FriendRequestAccepted) Kind() Kind { return KindFriendRequestAccepted }

type FriendRequestDenied struct {
	Notification *notifmodel.Notification
}

func (FriendRequestDenied) Kind() Kind { return KindFriendRequestDenied }

type FriendRequestCancelled struct {
	Notification *notifmodel.Notification
}

func (FriendRequestCancelled) Kind() Kind { return KindFriendRequestCancelled }
