package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"feedgram/internal/models"
)

type messageRepository struct {
	db *sqlx.DB
}

func NewMessageRepository(db *sqlx.DB) MessageRepository {
	return &messageRepository{db: db}
}

const messageColumns = `
	m.message_id, m.sender_id, m.receiver_id, m.message, m.is_read, m.created_at,
	s.username AS sender_name, s.avatar_url AS sender_avatar,
	r.username AS receiver_name, r.avatar_url AS receiver_avatar
`

// Create inserts the message and reloads it with sender/receiver display
// fields, so the caller can broadcast the populated message directly.
func (r *messageRepository) Create(ctx context.Context, msg *models.Message) error {
	msg.MessageID = uuid.New().String()
	msg.CreatedAt = time.Now()
	msg.IsRead = false

	query := `
		INSERT INTO messages (message_id, sender_id, receiver_id, message, is_read, created_at)
		VALUES (:message_id, :sender_id, :receiver_id, :message, :is_read, :created_at)
	`

	_, err := r.db.NamedExecContext(ctx, query, msg)
	if err != nil {
		return fmt.Errorf("creating message: %w", err)
	}

	populated, err := r.getByID(ctx, msg.MessageID)
	if err != nil {
		return err
	}
	*msg = *populated

	return nil
}

func (r *messageRepository) getByID(ctx context.Context, messageID string) (*models.Message, error) {
	var msg models.Message

	query := `
		SELECT ` + messageColumns + `
		FROM messages m
		JOIN users s ON s.user_id = m.sender_id
		JOIN users r ON r.user_id = m.receiver_id
		WHERE m.message_id = $1
	`

	err := r.db.GetContext(ctx, &msg, query, messageID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting message: %w", err)
	}

	return &msg, nil
}

// GetHistory returns up to limit most recent messages between the two
// users, oldest first.
func (r *messageRepository) GetHistory(ctx context.Context, userA, userB string, limit int) ([]models.Message, error) {
	var messages []models.Message

	query := `
		SELECT * FROM (
			SELECT ` + messageColumns + `
			FROM messages m
			JOIN users s ON s.user_id = m.sender_id
			JOIN users r ON r.user_id = m.receiver_id
			WHERE (m.sender_id = $1 AND m.receiver_id = $2)
			   OR (m.sender_id = $2 AND m.receiver_id = $1)
			ORDER BY m.created_at DESC
			LIMIT $3
		) recent
		ORDER BY recent.created_at ASC
	`

	err := r.db.SelectContext(ctx, &messages, query, userA, userB, limit)
	if err != nil {
		return nil, fmt.Errorf("getting chat history: %w", err)
	}

	return messages, nil
}

func (r *messageRepository) MarkRead(ctx context.Context, senderID, receiverID string) (int64, error) {
	query := `
		UPDATE messages
		SET is_read = TRUE
		WHERE sender_id = $1 AND receiver_id = $2 AND is_read = FALSE
	`

	result, err := r.db.ExecContext(ctx, query, senderID, receiverID)
	if err != nil {
		return 0, fmt.Errorf("marking messages read: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("checking updated rows: %w", err)
	}

	return rowsAffected, nil
}

type partnerRow struct {
	UserID      string     `db:"user_id"`
	Username    string     `db:"username"`
	AvatarURL   *string    `db:"avatar_url"`
	UnreadCount int        `db:"unread_count"`
	LastText    *string    `db:"last_message"`
	LastAt      *time.Time `db:"last_created_at"`
	LastSender  *string    `db:"last_sender_id"`
	LastName    *string    `db:"last_sender_name"`
}

// ListPartners collects everyone the user might chat with: follow-graph
// neighbors in either direction plus anyone with message history. Each
// partner carries the newest message and the unread count; partners with
// no history sort last.
func (r *messageRepository) ListPartners(ctx context.Context, userID string) ([]models.ChatPartner, error) {
	var rows []partnerRow

	query := `
		WITH partners AS (
			SELECT followed_id AS user_id FROM follows WHERE follower_id = $1
			UNION
			SELECT follower_id FROM follows WHERE followed_id = $1
			UNION
			SELECT CASE WHEN sender_id = $1 THEN receiver_id ELSE sender_id END
			FROM messages WHERE sender_id = $1 OR receiver_id = $1
		)
		SELECT u.user_id, u.username, u.avatar_url,
			lm.message AS last_message,
			lm.created_at AS last_created_at,
			lm.sender_id AS last_sender_id,
			lm.sender_name AS last_sender_name,
			COALESCE(un.unread_count, 0) AS unread_count
		FROM partners pa
		JOIN users u ON u.user_id = pa.user_id
		LEFT JOIN LATERAL (
			SELECT m.message, m.created_at, m.sender_id, s.username AS sender_name
			FROM messages m
			JOIN users s ON s.user_id = m.sender_id
			WHERE (m.sender_id = $1 AND m.receiver_id = u.user_id)
			   OR (m.sender_id = u.user_id AND m.receiver_id = $1)
			ORDER BY m.created_at DESC
			LIMIT 1
		) lm ON TRUE
		LEFT JOIN LATERAL (
			SELECT COUNT(*) AS unread_count
			FROM messages m
			WHERE m.sender_id = u.user_id AND m.receiver_id = $1 AND m.is_read = FALSE
		) un ON TRUE
		ORDER BY lm.created_at DESC NULLS LAST, u.username ASC
	`

	err := r.db.SelectContext(ctx, &rows, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing chat partners: %w", err)
	}

	partners := make([]models.ChatPartner, 0, len(rows))
	for _, row := range rows {
		partner := models.ChatPartner{
			UserID:      row.UserID,
			Username:    row.Username,
			AvatarURL:   row.AvatarURL,
			UnreadCount: row.UnreadCount,
		}
		if row.LastText != nil && row.LastAt != nil && row.LastSender != nil && row.LastName != nil {
			partner.LastMessage = &models.LastMessage{
				Message:    *row.LastText,
				Timestamp:  *row.LastAt,
				SenderID:   *row.LastSender,
				SenderName: *row.LastName,
			}
		}
		partners = append(partners, partner)
	}

	return partners, nil
}
