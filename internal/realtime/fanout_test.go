package realtime

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	chatmodel "github.com/sang6174/ocean-chat-server-sub000/internal/chat/model"
	"github.com/sang6174/ocean-chat-server-sub000/internal/events"
	notifmodel "github.com/sang6174/ocean-chat-server-sub000/internal/notification/model"
)

type stubResolver struct {
	participants []*chatmodel.Participant
}

func (s *stubResolver) ListParticipants(ctx context.Context, conversationID uuid.UUID) ([]*chatmodel.Participant, error) {
	return s.participants, nil
}

type fanoutFixture struct {
	registry *Registry
	bus      events.Bus
	resolver *stubResolver
}

func newFanoutFixture(t *testing.T) *fanoutFixture {
	t.Helper()
	f := &fanoutFixture{
		registry: NewRegistry(nil),
		bus:      events.NewInProcessBus(nil),
		resolver: &stubResolver{},
	}
	NewFanout(f.registry, f.resolver, nil).RegisterHandlers(f.bus)
	return f
}

func (f *fanoutFixture) connect(t *testing.T, userID uuid.UUID, token string) *fakeConn {
	t.Helper()
	s, conn := newTestSession(t, userID, token)
	f.registry.Register(s)
	return conn
}

func participant(conversationID, userID uuid.UUID, role string) *chatmodel.Participant {
	return &chatmodel.Participant{
		ConversationID: conversationID,
		UserID:         userID,
		Role:           role,
		JoinedAt:       time.Now(),
	}
}

func decodeEnvelope(t *testing.T, frame []byte) Envelope {
	t.Helper()
	var env Envelope
	require.NoError(t, json.Unmarshal(frame, &env))
	return env
}

func TestFanout_ConversationCreated(t *testing.T) {
	f := newFanoutFixture(t)

	alice, bob, carol := uuid.New(), uuid.New(), uuid.New()
	aliceOrigin := f.connect(t, alice, "alice-origin")
	alicePhone := f.connect(t, alice, "alice-phone")
	bobConn := f.connect(t, bob, "bob-token")
	carolConn := f.connect(t, carol, "carol-token")

	conv := &chatmodel.Conversation{
		ID:          uuid.New(),
		Type:        chatmodel.TypeGroup,
		Name:        "fishing",
		CreatorID:   alice,
		LastEventAt: time.Now(),
	}
	members := []*chatmodel.Participant{
		participant(conv.ID, alice, chatmodel.RoleAdmin),
		participant(conv.ID, bob, chatmodel.RoleMember),
		participant(conv.ID, carol, chatmodel.RoleMember),
	}

	f.bus.Publish(context.Background(), events.ConversationCreated{
		Conversation:       conv,
		Participants:       members,
		ActorID:            alice,
		OriginSessionToken: "alice-origin",
	})

	eventuallyCount(t, alicePhone, 1)
	eventuallyCount(t, bobConn, 1)
	eventuallyCount(t, carolConn, 1)
	assert.Equal(t, 0, aliceOrigin.count())

	env := decodeEnvelope(t, bobConn.frames[0])
	assert.Equal(t, string(events.KindConversationCreated), env.Type)
	assert.Equal(t, alice, env.Metadata.SenderID)
	require.NotNil(t, env.Metadata.ToConversation)
	assert.Equal(t, conv.ID, *env.Metadata.ToConversation)
}

func TestFanout_MessageCreatedSkipsOriginAndOffline(t *testing.T) {
	f := newFanoutFixture(t)

	alice, bob, offline := uuid.New(), uuid.New(), uuid.New()
	aliceOrigin := f.connect(t, alice, "alice-origin")
	alicePhone := f.connect(t, alice, "alice-phone")
	bobConn := f.connect(t, bob, "bob-token")

	conversationID := uuid.New()
	f.resolver.participants = []*chatmodel.Participant{
		participant(conversationID, alice, chatmodel.RoleAdmin),
		participant(conversationID, bob, chatmodel.RoleMember),
		participant(conversationID, offline, chatmodel.RoleMember),
	}

	msg := &chatmodel.Message{
		ID:             uuid.New(),
		ConversationID: conversationID,
		SenderID:       alice,
		Body:           "hello",
		CreatedAt:      time.Now(),
	}
	f.bus.Publish(context.Background(), events.MessageCreated{
		Message:            msg,
		ActorID:            alice,
		OriginSessionToken: "alice-origin",
	})

	eventuallyCount(t, alicePhone, 1)
	eventuallyCount(t, bobConn, 1)
	assert.Equal(t, 0, aliceOrigin.count())

	env := decodeEnvelope(t, bobConn.frames[0])
	assert.Equal(t, string(events.KindMessageCreated), env.Type)

	data, err := json.Marshal(env.Data)
	require.NoError(t, err)
	var got messageData
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, msg.ID, got.ID)
	assert.Equal(t, "hello", got.Body)
}

func TestFanout_ParticipantsAddedSplitsPayloads(t *testing.T) {
	f := newFanoutFixture(t)

	alice, bob, dave := uuid.New(), uuid.New(), uuid.New()
	aliceOrigin := f.connect(t, alice, "alice-origin")
	bobConn := f.connect(t, bob, "bob-token")
	daveConn := f.connect(t, dave, "dave-token")

	conv := &chatmodel.Conversation{
		ID:          uuid.New(),
		Type:        chatmodel.TypeGroup,
		Name:        "fishing",
		CreatorID:   alice,
		LastEventAt: time.Now(),
	}
	prior := []*chatmodel.Participant{
		participant(conv.ID, alice, chatmodel.RoleAdmin),
		participant(conv.ID, bob, chatmodel.RoleMember),
	}
	added := []*chatmodel.Participant{
		participant(conv.ID, dave, chatmodel.RoleMember),
	}

	f.bus.Publish(context.Background(), events.ParticipantsAdded{
		Conversation:       conv,
		Added:              added,
		Prior:              prior,
		ActorID:            alice,
		OriginSessionToken: "alice-origin",
	})

	eventuallyCount(t, bobConn, 1)
	eventuallyCount(t, daveConn, 1)
	assert.Equal(t, 0, aliceOrigin.count())

	// prior member sees who joined
	noticeBytes, err := json.Marshal(decodeEnvelope(t, bobConn.frames[0]).Data)
	require.NoError(t, err)
	var notice membersAddedData
	require.NoError(t, json.Unmarshal(noticeBytes, &notice))
	require.Len(t, notice.Added, 1)
	assert.Equal(t, dave, notice.Added[0].UserID)

	// new member sees the whole conversation
	snapBytes, err := json.Marshal(decodeEnvelope(t, daveConn.frames[0]).Data)
	require.NoError(t, err)
	var snap conversationData
	require.NoError(t, json.Unmarshal(snapBytes, &snap))
	assert.Equal(t, conv.ID, snap.ID)
	assert.Len(t, snap.Participants, 3)
}

func TestFanout_FriendRequestSentReachesRecipientOnly(t *testing.T) {
	f := newFanoutFixture(t)

	sender, recipient := uuid.New(), uuid.New()
	senderConn := f.connect(t, sender, "sender-token")
	recipientPhone := f.connect(t, recipient, "recipient-phone")
	recipientDesk := f.connect(t, recipient, "recipient-desk")

	n := &notifmodel.Notification{
		ID:          uuid.New(),
		SenderID:    sender,
		RecipientID: recipient,
		Type:        notifmodel.TypeFriendRequest,
		Status:      notifmodel.StatusPending,
		CreatedAt:   time.Now(),
	}
	f.bus.Publish(context.Background(), events.FriendRequestSent{Notification: n})

	eventuallyCount(t, recipientPhone, 1)
	eventuallyCount(t, recipientDesk, 1)
	assert.Equal(t, 0, senderConn.count())

	env := decodeEnvelope(t, recipientPhone.frames[0])
	assert.Equal(t, string(events.KindFriendRequestSent), env.Type)
	assert.Equal(t, sender, env.Metadata.SenderID)
	require.NotNil(t, env.Metadata.ToUserID)
	assert.Equal(t, recipient, *env.Metadata.ToUserID)
}

func TestFanout_FriendRequestAcceptedReachesSender(t *testing.T) {
	f := newFanoutFixture(t)

	sender, recipient := uuid.New(), uuid.New()
	senderConn := f.connect(t, sender, "sender-token")
	recipientConn := f.connect(t, recipient, "recipient-token")

	n := &notifmodel.Notification{
		ID:          uuid.New(),
		SenderID:    sender,
		RecipientID: recipient,
		Type:        notifmodel.TypeFriendRequest,
		Status:      notifmodel.StatusAccepted,
		CreatedAt:   time.Now(),
	}
	f.bus.Publish(context.Background(), events.FriendRequestAccepted{Notification: n})

	eventuallyCount(t, senderConn, 1)
	assert.Equal(t, 0, recipientConn.count())

	env := decodeEnvelope(t, senderConn.frames[0])
	assert.Equal(t, string(events.KindFriendRequestAccepted), env.Type)
	assert.Equal(t, recipient, env.Metadata.SenderID)
}
