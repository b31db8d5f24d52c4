package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/wedding-planner/internal/models"
)

// ErrWeddingNotFound возвращается, когда свадьба не найдена в базе.
var ErrWeddingNotFound = errors.New("wedding not found")

// CreateWedding вставляет новую запись свадьбы и возвращает её ID.
func (s *Storage) CreateWedding(ctx context.Context, wedding models.Wedding) (string, error) {
	const op = "storage.CreateWedding"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO weddings (id, user_uid, partner_1_name, partner_2_name,
			      wedding_date, guest_count, ceremony_type, total_budget)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  RETURNING id`
	var newID string
	err := s.DB.QueryRowContext(ctx, query,
		wedding.ID, wedding.UserUID, wedding.Partner1Name, wedding.Partner2Name,
		wedding.WeddingDate, wedding.GuestCount, wedding.CeremonyType,
		wedding.TotalBudget).Scan(&newID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ReadWeddingByUserUID возвращает свадьбу владельца.
func (s *Storage) ReadWeddingByUserUID(ctx context.Context, userUID string) (*models.Wedding, error) {
	const op = "storage.ReadWeddingByUserUID"

	query := `SELECT id, user_uid, partner_1_name, partner_2_name, wedding_date,
				guest_count, ceremony_type, total_budget, created_at, updated_at
			  FROM weddings WHERE user_uid = $1`
	row := s.DB.QueryRowContext(ctx, query, userUID)

	var result models.Wedding
	err := row.Scan(&result.ID, &result.UserUID, &result.Partner1Name, &result.Partner2Name,
		&result.WeddingDate, &result.GuestCount, &result.CeremonyType, &result.TotalBudget,
		&result.CreatedAt, &result.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrWeddingNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// UpdateWedding обновляет данные свадьбы и возвращает количество изменённых строк.
func (s *Storage) UpdateWedding(ctx context.Context, wedding models.Wedding, id string) (int, error) {
	const op = "storage.UpdateWedding"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE weddings
			  SET partner_1_name = $1, partner_2_name = $2, wedding_date = $3,
			      guest_count = $4, ceremony_type = $5, total_budget = $6,
			      updated_at = now()
			  WHERE id = $7`
	result, err := s.DB.ExecContext(ctx, query,
		wedding.Partner1Name, wedding.Partner2Name, wedding.WeddingDate,
		wedding.GuestCount, wedding.CeremonyType, wedding.TotalBudget, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}
