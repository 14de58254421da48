package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"feedgram/internal/models"
)

func newMessageRepoMock(t *testing.T) (MessageRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewMessageRepository(sqlxDB)

	return repo, mock, func() { db.Close() }
}

func messageRows(msgs ...models.Message) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"message_id", "sender_id", "receiver_id", "message", "is_read", "created_at",
		"sender_name", "sender_avatar", "receiver_name", "receiver_avatar",
	})
	for _, m := range msgs {
		rows.AddRow(m.MessageID, m.SenderID, m.ReceiverID, m.Message, m.IsRead, m.CreatedAt,
			m.SenderName, m.SenderAvatar, m.ReceiverName, m.ReceiverAvatar)
	}
	return rows
}

func TestMessageRepository_Create(t *testing.T) {
	repo, mock, closeDB := newMessageRepoMock(t)
	defer closeDB()

	ctx := context.Background()
	senderID := uuid.New().String()
	receiverID := uuid.New().String()

	t.Run("inserts and reloads with display fields", func(t *testing.T) {
		msg := &models.Message{
			SenderID:   senderID,
			ReceiverID: receiverID,
			Message:    "hey",
		}

		mock.ExpectExec(`INSERT INTO messages`).
			WithArgs(sqlmock.AnyArg(), senderID, receiverID, "hey", false, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		populated := models.Message{
			SenderID:   senderID,
			ReceiverID: receiverID,
			Message:    "hey",
			CreatedAt:  time.Now(),
			SenderName: "alice",
		}

		mock.ExpectQuery(`FROM messages m JOIN users s`).
			WithArgs(sqlmock.AnyArg()).
			WillReturnRows(messageRows(populated))

		err := repo.Create(ctx, msg)

		require.NoError(t, err)
		assert.Equal(t, "alice", msg.SenderName)
		assert.False(t, msg.IsRead)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestMessageRepository_GetHistory(t *testing.T) {
	repo, mock, closeDB := newMessageRepoMock(t)
	defer closeDB()

	ctx := context.Background()
	userA := uuid.New().String()
	userB := uuid.New().String()

	t.Run("returns the conversation oldest first", func(t *testing.T) {
		older := models.Message{
			MessageID:  uuid.New().String(),
			SenderID:   userA,
			ReceiverID: userB,
			Message:    "first",
			CreatedAt:  time.Now().Add(-time.Hour),
		}
		newer := models.Message{
			MessageID:  uuid.New().String(),
			SenderID:   userB,
			ReceiverID: userA,
			Message:    "second",
			CreatedAt:  time.Now(),
		}

		mock.ExpectQuery(`ORDER BY recent.created_at ASC`).
			WithArgs(userA, userB, 50).
			WillReturnRows(messageRows(older, newer))

		messages, err := repo.GetHistory(ctx, userA, userB, 50)

		require.NoError(t, err)
		require.Len(t, messages, 2)
		assert.Equal(t, "first", messages[0].Message)
		assert.Equal(t, "second", messages[1].Message)
	})
}

func TestMessageRepository_MarkRead(t *testing.T) {
	repo, mock, closeDB := newMessageRepoMock(t)
	defer closeDB()

	ctx := context.Background()
	senderID := uuid.New().String()
	receiverID := uuid.New().String()

	t.Run("reports the number of updated rows", func(t *testing.T) {
		mock.ExpectExec(`UPDATE messages SET is_read = TRUE`).
			WithArgs(senderID, receiverID).
			WillReturnResult(sqlmock.NewResult(0, 4))

		updated, err := repo.MarkRead(ctx, senderID, receiverID)

		require.NoError(t, err)
		assert.Equal(t, int64(4), updated)
	})

	t.Run("nothing unread is a no-op", func(t *testing.T) {
		mock.ExpectExec(`UPDATE messages SET is_read = TRUE`).
			WithArgs(senderID, receiverID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		updated, err := repo.MarkRead(ctx, senderID, receiverID)

		require.NoError(t, err)
		assert.Zero(t, updated)
	})
}

func TestMessageRepository_ListPartners(t *testing.T) {
	repo, mock, closeDB := newMessageRepoMock(t)
	defer closeDB()

	ctx := context.Background()
	userID := uuid.New().String()
	partnerID := uuid.New().String()
	quietID := uuid.New().String()
	lastAt := time.Now()

	t.Run("carries last message and unread count", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{
			"user_id", "username", "avatar_url",
			"last_message", "last_created_at", "last_sender_id", "last_sender_name",
			"unread_count",
		}).
			AddRow(partnerID, "bob", nil, "see you", lastAt, partnerID, "bob", 2).
			AddRow(quietID, "carol", nil, nil, nil, nil, nil, 0)

		mock.ExpectQuery(`WITH partners AS`).
			WithArgs(userID).
			WillReturnRows(rows)

		partners, err := repo.ListPartners(ctx, userID)

		require.NoError(t, err)
		require.Len(t, partners, 2)

		require.NotNil(t, partners[0].LastMessage)
		assert.Equal(t, "see you", partners[0].LastMessage.Message)
		assert.Equal(t, 2, partners[0].UnreadCount)

		assert.Nil(t, partners[1].LastMessage)
		assert.Zero(t, partners[1].UnreadCount)
	})
}
