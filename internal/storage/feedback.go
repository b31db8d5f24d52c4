package storage

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/wedding-planner/internal/models"
)

// CreateFeedback сохраняет отзыв пользователя и возвращает его ID.
func (s *Storage) CreateFeedback(ctx context.Context, feedback models.Feedback) (string, error) {
	const op = "storage.CreateFeedback"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO feedback (id, user_uid, text, allow_public_use)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id`
	var newID string
	err := s.DB.QueryRowContext(ctx, query,
		feedback.ID, feedback.UserUID, feedback.Text, feedback.AllowPublicUse).Scan(&newID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// HasSubmittedFeedback сообщает, оставлял ли пользователь отзыв.
func (s *Storage) HasSubmittedFeedback(ctx context.Context, userUID string) (bool, error) {
	const op = "storage.HasSubmittedFeedback"

	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM feedback WHERE user_uid = $1)`
	if err := s.DB.QueryRowContext(ctx, query, userUID).Scan(&exists); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return exists, nil
}
