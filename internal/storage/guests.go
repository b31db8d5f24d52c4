package storage

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/wedding-planner/internal/models"
)

// CreateGuest вставляет нового гостя и возвращает его ID.
func (s *Storage) CreateGuest(ctx context.Context, guest models.Guest) (string, error) {
	const op = "storage.CreateGuest"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO guests (id, wedding_id, name, email, phone, rsvp_status,
			      plus_one, dietary_restrictions, table_number, address, notes)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			  RETURNING id`
	var newID string
	err := s.DB.QueryRowContext(ctx, query,
		guest.ID, guest.WeddingID, guest.Name, guest.Email, guest.Phone,
		guest.RSVPStatus, guest.PlusOne, guest.DietaryRestrictions,
		guest.TableNumber, guest.Address, guest.Notes).Scan(&newID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListGuests возвращает гостей свадьбы, отсортированных по имени.
func (s *Storage) ListGuests(ctx context.Context, weddingID string) ([]*models.Guest, error) {
	const op = "storage.ListGuests"

	query := `SELECT id, wedding_id, name, email, phone, rsvp_status, plus_one,
				dietary_restrictions, table_number, address, notes, created_at
			  FROM guests WHERE wedding_id = $1 ORDER BY name`
	rows, err := s.DB.QueryContext(ctx, query, weddingID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	var guests []*models.Guest
	for rows.Next() {
		var guest models.Guest
		if err := rows.Scan(&guest.ID, &guest.WeddingID, &guest.Name, &guest.Email,
			&guest.Phone, &guest.RSVPStatus, &guest.PlusOne, &guest.DietaryRestrictions,
			&guest.TableNumber, &guest.Address, &guest.Notes, &guest.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		guests = append(guests, &guest)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return guests, nil
}

// UpdateGuest обновляет данные гостя и возвращает количество изменённых строк.
func (s *Storage) UpdateGuest(ctx context.Context, guest models.Guest, id string) (int, error) {
	const op = "storage.UpdateGuest"

	query := `UPDATE guests
			  SET name = $1, email = $2, phone = $3, rsvp_status = $4, plus_one = $5,
			      dietary_restrictions = $6, table_number = $7, address = $8, notes = $9
			  WHERE id = $10`
	result, err := s.DB.ExecContext(ctx, query,
		guest.Name, guest.Email, guest.Phone, guest.RSVPStatus, guest.PlusOne,
		guest.DietaryRestrictions, guest.TableNumber, guest.Address, guest.Notes, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// RemoveGuest удаляет гостя по ID и возвращает количество удалённых строк.
func (s *Storage) RemoveGuest(ctx context.Context, id string) (int, error) {
	const op = "storage.RemoveGuest"

	result, err := s.DB.ExecContext(ctx, `DELETE FROM guests WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}
