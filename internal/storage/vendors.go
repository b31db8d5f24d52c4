package storage

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/wedding-planner/internal/models"
)

// CreateVendor вставляет нового подрядчика и возвращает его ID.
func (s *Storage) CreateVendor(ctx context.Context, vendor models.Vendor) (string, error) {
	const op = "storage.CreateVendor"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO vendors (id, wedding_id, name, category, contact_name,
			      email, phone, website, contract_status, total_cost, paid_amount, notes)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			  RETURNING id`
	var newID string
	err := s.DB.QueryRowContext(ctx, query,
		vendor.ID, vendor.WeddingID, vendor.Name, vendor.Category, vendor.ContactName,
		vendor.Email, vendor.Phone, vendor.Website, vendor.ContractStatus,
		vendor.TotalCost, vendor.PaidAmount, vendor.Notes).Scan(&newID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListVendors возвращает подрядчиков свадьбы по категориям.
func (s *Storage) ListVendors(ctx context.Context, weddingID string) ([]*models.Vendor, error) {
	const op = "storage.ListVendors"

	query := `SELECT id, wedding_id, name, category, contact_name, email, phone,
				website, contract_status, total_cost, paid_amount, notes, created_at
			  FROM vendors WHERE wedding_id = $1 ORDER BY category, name`
	rows, err := s.DB.QueryContext(ctx, query, weddingID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	var vendors []*models.Vendor
	for rows.Next() {
		var vendor models.Vendor
		if err := rows.Scan(&vendor.ID, &vendor.WeddingID, &vendor.Name, &vendor.Category,
			&vendor.ContactName, &vendor.Email, &vendor.Phone, &vendor.Website,
			&vendor.ContractStatus, &vendor.TotalCost, &vendor.PaidAmount,
			&vendor.Notes, &vendor.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		vendors = append(vendors, &vendor)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return vendors, nil
}

// UpdateVendor обновляет подрядчика и возвращает количество изменённых строк.
func (s *Storage) UpdateVendor(ctx context.Context, vendor models.Vendor, id string) (int, error) {
	const op = "storage.UpdateVendor"

	query := `UPDATE vendors
			  SET name = $1, category = $2, contact_name = $3, email = $4, phone = $5,
			      website = $6, contract_status = $7, total_cost = $8, paid_amount = $9,
			      notes = $10
			  WHERE id = $11`
	result, err := s.DB.ExecContext(ctx, query,
		vendor.Name, vendor.Category, vendor.ContactName, vendor.Email, vendor.Phone,
		vendor.Website, vendor.ContractStatus, vendor.TotalCost, vendor.PaidAmount,
		vendor.Notes, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// RemoveVendor удаляет подрядчика и возвращает количество удалённых строк.
func (s *Storage) RemoveVendor(ctx context.Context, id string) (int, error) {
	const op = "storage.RemoveVendor"

	result, err := s.DB.ExecContext(ctx, `DELETE FROM vendors WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}
