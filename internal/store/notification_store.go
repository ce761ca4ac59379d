package store

import (
	"context"
	"time"
)

// NotificationStore is the append-only deletion audit log.
type NotificationStore struct {
	db DB
}

type Notification struct {
	ID         string    `db:"id" json:"id"`
	Message    string    `db:"message" json:"message"`
	EntityType string    `db:"entity_type" json:"entity_type"`
	EntityID   string    `db:"entity_id" json:"entity_id"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

func NewNotificationStore(db DB) *NotificationStore {
	return &NotificationStore{db: db}
}

func (s *NotificationStore) Append(ctx context.Context, tx Execer, id, message, entityType, entityID string) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO notifications (id, message, entity_type, entity_id)
		VALUES ($1, $2, $3, $4)
	`, id, message, entityType, entityID)
	return err
}

func (s *NotificationStore) List(ctx context.Context, limit, offset int) ([]Notification, error) {
	var rows []Notification
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, message, entity_type, entity_id, created_at
		FROM notifications
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	return rows, err
}

func (s *NotificationStore) Delete(ctx context.Context, id string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM notifications WHERE id = $1`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
