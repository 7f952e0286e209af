package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	"testing"

	model "github.com/sang6174/ocean-chat-server-sub000/internal/chat/model"
	usermodel "github.com/sang6174/ocean-chat-server-sub000/internal/user/model"
	apperrors "github.com/sang6174/ocean-chat-server-sub000/pkg/errors"
	"github.com/sang6174/ocean-chat-server-sub000/pkg/logger"
)

var testDB *bun.DB

func TestMain(m *testing.M) {
	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("ocean"),
		postgres.WithUsername("ocean"),
		postgres.WithPassword("password"),
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		log.Printf("failed to start container: %s", err)
		return
	}

	defer func() {
		if err := postgresContainer.Terminate(ctx); err != nil {
			log.Printf("failed to terminate container: %s", err)
		}
	}()

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable", "application_name=test")
	if err != nil {
		log.Printf("failed to get connections string, %v", err)
	}

	connector := pgdriver.NewConnector(pgdriver.WithDSN(connStr))
	sqlDB := sql.OpenDB(connector)
	testDB = bun.NewDB(sqlDB, pgdialect.New())

	if err := sqlDB.PingContext(ctx); err != nil {
		log.Fatalf("failed to ping db: %v", err)
	}

	tables := []any{
		(*usermodel.User)(nil),
		(*model.Conversation)(nil),
		(*model.Participant)(nil),
		(*model.Message)(nil),
	}
	for _, t := range tables {
		if _, err := testDB.NewCreateTable().Model(t).IfNotExists().Exec(ctx); err != nil {
			testDB.Close()
			log.Fatalf("failed to create table for %T: %v", t, err)
		}
	}

	// uniqueness only among live rows, same as the production migration
	indexes := []string{
		`CREATE UNIQUE INDEX IF NOT EXISTS conversations_direct_pair_live ON conversations (direct_key) WHERE type = 'direct' AND deleted_at IS NULL`,
	}
	for _, idx := range indexes {
		if _, err := testDB.ExecContext(ctx, idx); err != nil {
			testDB.Close()
			log.Fatalf("failed to create index: %v", err)
		}
	}

	code := m.Run()

	testDB.Close()

	os.Exit(code)
}

func truncateChat(t *testing.T) {
	t.Cleanup(func() {
		_, err := testDB.ExecContext(context.Background(),
			`TRUNCATE TABLE messages, participants, conversations, users RESTART IDENTITY CASCADE`)
		require.NoError(t, err)
	})
}

func createUser(t *testing.T, name string) uuid.UUID {
	t.Helper()
	u := &usermodel.User{Name: name, Email: fmt.Sprintf("%s-%s@example.com", name, uuid.NewString()[:8])}
	_, err := testDB.NewInsert().Model(u).Returning("*").Exec(context.Background())
	require.NoError(t, err)
	return u.ID
}

func createGroup(t *testing.T, repo *ChatRepository, creator uuid.UUID, members ...uuid.UUID) *model.Conversation {
	t.Helper()
	conv := &model.Conversation{Type: model.TypeGroup, Name: "fishing", CreatorID: creator}
	participants := []*model.Participant{{UserID: creator, Role: model.RoleAdmin}}
	for _, id := range members {
		participants = append(participants, &model.Participant{UserID: id, Role: model.RoleMember})
	}
	require.NoError(t, repo.CreateConversationWithParticipants(context.Background(), conv, participants))
	return conv
}

func Test_CreateConversationWithParticipants(t *testing.T) {
	truncateChat(t)
	repo := NewChatRepository(testDB, logger.Logger{})

	alice := createUser(t, "alice")
	bob := createUser(t, "bob")
	conv := createGroup(t, repo, alice, bob)

	assert.NotEqual(t, uuid.Nil, conv.ID)
	assert.False(t, conv.LastEventAt.IsZero())

	participants, err := repo.ListParticipants(context.Background(), conv.ID)
	require.NoError(t, err)
	require.Len(t, participants, 2)
	assert.Equal(t, conv.ID, participants[0].ConversationID)
	assert.False(t, participants[0].JoinedAt.IsZero())
}

func Test_GetParticipant(t *testing.T) {
	truncateChat(t)
	repo := NewChatRepository(testDB, logger.Logger{})

	alice := createUser(t, "alice")
	bob := createUser(t, "bob")
	outsider := createUser(t, "outsider")
	conv := createGroup(t, repo, alice, bob)

	p, err := repo.GetParticipant(context.Background(), conv.ID, alice)
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, p.Role)

	_, err = repo.GetParticipant(context.Background(), conv.ID, outsider)
	assert.True(t, apperrors.Is(err, apperrors.CodeNotFound))
}

func Test_AddParticipants_SkipsExisting(t *testing.T) {
	truncateChat(t)
	repo := NewChatRepository(testDB, logger.Logger{})

	alice := createUser(t, "alice")
	bob := createUser(t, "bob")
	carol := createUser(t, "carol")
	conv := createGroup(t, repo, alice, bob)

	added, prior, err := repo.AddParticipants(context.Background(), conv.ID, []*model.Participant{
		{UserID: bob, Role: model.RoleMember},
		{UserID: carol, Role: model.RoleMember},
	})
	require.NoError(t, err)

	require.Len(t, added, 1)
	assert.Equal(t, carol, added[0].UserID)
	assert.False(t, added[0].JoinedAt.IsZero())
	assert.Len(t, prior, 2)

	// repeating the same call changes nothing
	added, prior, err = repo.AddParticipants(context.Background(), conv.ID, []*model.Participant{
		{UserID: bob, Role: model.RoleMember},
		{UserID: carol, Role: model.RoleMember},
	})
	require.NoError(t, err)
	assert.Empty(t, added)
	assert.Len(t, prior, 3)
}

func Test_AddParticipants_ConcurrentAdders(t *testing.T) {
	truncateChat(t)
	repo := NewChatRepository(testDB, logger.Logger{})
	ctx := context.Background()

	alice := createUser(t, "alice")
	carol := createUser(t, "carol")
	conv := createGroup(t, repo, alice)

	// two admins race to add the same new member; the row lock on the
	// conversation serializes them, so one inserts and the other skips
	results := make([][]*model.Participant, 2)
	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			added, _, err := repo.AddParticipants(ctx, conv.ID, []*model.Participant{
				{UserID: carol, Role: model.RoleMember},
			})
			results[i] = added
			errs[i] = err
		}(i)
	}
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])
	assert.Equal(t, 1, len(results[0])+len(results[1]))

	participants, err := repo.ListParticipants(ctx, conv.ID)
	require.NoError(t, err)
	assert.Len(t, participants, 2)
}

func Test_AddParticipants_BumpsLastEventAt(t *testing.T) {
	truncateChat(t)
	repo := NewChatRepository(testDB, logger.Logger{})

	alice := createUser(t, "alice")
	carol := createUser(t, "carol")
	conv := createGroup(t, repo, alice)
	before := conv.LastEventAt

	time.Sleep(10 * time.Millisecond)
	_, _, err := repo.AddParticipants(context.Background(), conv.ID, []*model.Participant{
		{UserID: carol, Role: model.RoleMember},
	})
	require.NoError(t, err)

	after, err := repo.GetConversationByID(context.Background(), conv.ID)
	require.NoError(t, err)
	assert.True(t, after.LastEventAt.After(before))
}

func Test_FindDirectConversation(t *testing.T) {
	truncateChat(t)
	repo := NewChatRepository(testDB, logger.Logger{})

	alice := createUser(t, "alice")
	bob := createUser(t, "bob")
	carol := createUser(t, "carol")

	conv := &model.Conversation{Type: model.TypeDirect, CreatorID: alice}
	require.NoError(t, repo.CreateConversationWithParticipants(context.Background(), conv, []*model.Participant{
		{UserID: alice, Role: model.RoleAdmin},
		{UserID: bob, Role: model.RoleMember},
	}))

	// order of the pair does not matter
	found, err := repo.FindDirectConversation(context.Background(), bob, alice)
	require.NoError(t, err)
	assert.Equal(t, conv.ID, found.ID)

	_, err = repo.FindDirectConversation(context.Background(), alice, carol)
	assert.ErrorIs(t, err, apperrors.ErrConversationNotFound)
}

func Test_CreateConversation_DuplicateDirectPair(t *testing.T) {
	truncateChat(t)
	repo := NewChatRepository(testDB, logger.Logger{})

	alice := createUser(t, "alice")
	bob := createUser(t, "bob")

	makeDirect := func(creator uuid.UUID) error {
		conv := &model.Conversation{
			Type:      model.TypeDirect,
			CreatorID: creator,
			DirectKey: model.DirectPairKey(alice, bob),
		}
		return repo.CreateConversationWithParticipants(context.Background(), conv, []*model.Participant{
			{UserID: alice, Role: model.RoleAdmin},
			{UserID: bob, Role: model.RoleMember},
		})
	}

	require.NoError(t, makeDirect(alice))

	// a second live row for the same pair is refused by the unique index
	err := makeDirect(bob)
	assert.True(t, apperrors.Is(err, apperrors.CodeConflict))
}

func Test_CreateConversation_ConcurrentDirectCreators(t *testing.T) {
	truncateChat(t)
	repo := NewChatRepository(testDB, logger.Logger{})
	ctx := context.Background()

	alice := createUser(t, "alice")
	bob := createUser(t, "bob")

	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i, creator := range []uuid.UUID{alice, bob} {
		wg.Add(1)
		go func(i int, creator uuid.UUID) {
			defer wg.Done()
			conv := &model.Conversation{
				Type:      model.TypeDirect,
				CreatorID: creator,
				DirectKey: model.DirectPairKey(alice, bob),
			}
			errs[i] = repo.CreateConversationWithParticipants(ctx, conv, []*model.Participant{
				{UserID: creator, Role: model.RoleAdmin},
				{UserID: pairOther(creator, alice, bob), Role: model.RoleMember},
			})
		}(i, creator)
	}
	wg.Wait()

	// exactly one creator wins, the loser sees a conflict
	var conflicts, wins int
	for _, err := range errs {
		switch {
		case err == nil:
			wins++
		case apperrors.Is(err, apperrors.CodeConflict):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, wins)
	assert.Equal(t, 1, conflicts)

	var count int
	err := testDB.NewSelect().
		Model((*model.Conversation)(nil)).
		Where("type = ?", model.TypeDirect).
		Where("direct_key = ?", model.DirectPairKey(alice, bob)).
		ColumnExpr("count(*)").
		Scan(ctx, &count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func pairOther(creator, a, b uuid.UUID) uuid.UUID {
	if creator == a {
		return b
	}
	return a
}

func Test_ListConversationsForUser(t *testing.T) {
	truncateChat(t)
	repo := NewChatRepository(testDB, logger.Logger{})

	alice := createUser(t, "alice")
	bob := createUser(t, "bob")

	first := createGroup(t, repo, alice, bob)
	time.Sleep(10 * time.Millisecond)
	second := createGroup(t, repo, alice)
	createGroup(t, repo, bob)

	convs, err := repo.ListConversationsForUser(context.Background(), alice)
	require.NoError(t, err)
	require.Len(t, convs, 2)

	// newest activity first
	assert.Equal(t, second.ID, convs[0].ID)
	assert.Equal(t, first.ID, convs[1].ID)
}

func Test_CreateMessage(t *testing.T) {
	truncateChat(t)
	repo := NewChatRepository(testDB, logger.Logger{})

	alice := createUser(t, "alice")
	conv := createGroup(t, repo, alice)

	msg := &model.Message{ConversationID: conv.ID, SenderID: alice, Body: "hello"}
	require.NoError(t, repo.CreateMessage(context.Background(), msg))

	assert.NotEqual(t, uuid.Nil, msg.ID)
	assert.False(t, msg.CreatedAt.IsZero())

	// the conversation's ordering timestamp tracks the message exactly
	after, err := repo.GetConversationByID(context.Background(), conv.ID)
	require.NoError(t, err)
	assert.Equal(t, msg.CreatedAt.UTC(), after.LastEventAt.UTC())
}

func Test_ListMessages(t *testing.T) {
	truncateChat(t)
	repo := NewChatRepository(testDB, logger.Logger{})

	alice := createUser(t, "alice")
	conv := createGroup(t, repo, alice)

	var sent []*model.Message
	for i := 0; i < 5; i++ {
		msg := &model.Message{ConversationID: conv.ID, SenderID: alice, Body: fmt.Sprintf("msg-%d", i)}
		require.NoError(t, repo.CreateMessage(context.Background(), msg))
		sent = append(sent, msg)
		time.Sleep(5 * time.Millisecond)
	}

	t.Run("oldest first", func(t *testing.T) {
		msgs, err := repo.ListMessages(context.Background(), conv.ID, 10, time.Time{})
		require.NoError(t, err)
		require.Len(t, msgs, 5)
		for i, m := range msgs {
			assert.Equal(t, sent[i].ID, m.ID)
		}
	})

	t.Run("limit keeps the newest page", func(t *testing.T) {
		msgs, err := repo.ListMessages(context.Background(), conv.ID, 2, time.Time{})
		require.NoError(t, err)
		require.Len(t, msgs, 2)
		assert.Equal(t, sent[3].ID, msgs[0].ID)
		assert.Equal(t, sent[4].ID, msgs[1].ID)
	})

	t.Run("before pages backwards", func(t *testing.T) {
		msgs, err := repo.ListMessages(context.Background(), conv.ID, 2, sent[3].CreatedAt)
		require.NoError(t, err)
		require.Len(t, msgs, 2)
		assert.Equal(t, sent[1].ID, msgs[0].ID)
		assert.Equal(t, sent[2].ID, msgs[1].ID)
	})
}

func Test_TouchLastSeen(t *testing.T) {
	truncateChat(t)
	repo := NewChatRepository(testDB, logger.Logger{})

	alice := createUser(t, "alice")
	conv := createGroup(t, repo, alice)

	p, err := repo.GetParticipant(context.Background(), conv.ID, alice)
	require.NoError(t, err)
	assert.True(t, p.LastSeenAt.IsZero())

	require.NoError(t, repo.TouchLastSeen(context.Background(), conv.ID, alice))

	p, err = repo.GetParticipant(context.Background(), conv.ID, alice)
	require.NoError(t, err)
	assert.False(t, p.LastSeenAt.IsZero())
}
