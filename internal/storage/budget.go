package storage

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/wedding-planner/internal/models"
)

// CreateBudgetItem вставляет новую статью бюджета и возвращает её ID.
func (s *Storage) CreateBudgetItem(ctx context.Context, item models.BudgetItem) (string, error) {
	const op = "storage.CreateBudgetItem"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO budget_items (id, wedding_id, category, item_name,
			      actual_cost, paid, payment_method, notes)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  RETURNING id`
	var newID string
	err := s.DB.QueryRowContext(ctx, query,
		item.ID, item.WeddingID, item.Category, item.ItemName,
		item.ActualCost, item.Paid, item.PaymentMethod, item.Notes).Scan(&newID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListBudgetItems возвращает статьи бюджета свадьбы по категориям.
func (s *Storage) ListBudgetItems(ctx context.Context, weddingID string) ([]*models.BudgetItem, error) {
	const op = "storage.ListBudgetItems"

	query := `SELECT id, wedding_id, category, item_name, actual_cost, paid,
				payment_method, notes, created_at
			  FROM budget_items WHERE wedding_id = $1 ORDER BY category, item_name`
	rows, err := s.DB.QueryContext(ctx, query, weddingID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	var items []*models.BudgetItem
	for rows.Next() {
		var item models.BudgetItem
		if err := rows.Scan(&item.ID, &item.WeddingID, &item.Category, &item.ItemName,
			&item.ActualCost, &item.Paid, &item.PaymentMethod, &item.Notes,
			&item.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return items, nil
}

// UpdateBudgetItem обновляет статью бюджета и возвращает количество изменённых строк.
func (s *Storage) UpdateBudgetItem(ctx context.Context, item models.BudgetItem, id string) (int, error) {
	const op = "storage.UpdateBudgetItem"

	query := `UPDATE budget_items
			  SET category = $1, item_name = $2, actual_cost = $3, paid = $4,
			      payment_method = $5, notes = $6
			  WHERE id = $7`
	result, err := s.DB.ExecContext(ctx, query,
		item.Category, item.ItemName, item.ActualCost, item.Paid,
		item.PaymentMethod, item.Notes, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// RemoveBudgetItem удаляет статью бюджета и возвращает количество удалённых строк.
func (s *Storage) RemoveBudgetItem(ctx context.Context, id string) (int, error) {
	const op = "storage.RemoveBudgetItem"

	result, err := s.DB.ExecContext(ctx, `DELETE FROM budget_items WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// SumBudget считает общую и оплаченную суммы бюджета и суммы по категориям.
func (s *Storage) SumBudget(ctx context.Context, weddingID string) (*models.BudgetSummary, error) {
	const op = "storage.SumBudget"

	query := `SELECT category,
				COALESCE(SUM(actual_cost), 0),
				COALESCE(SUM(actual_cost) FILTER (WHERE paid), 0)
			  FROM budget_items WHERE wedding_id = $1 GROUP BY category`
	rows, err := s.DB.QueryContext(ctx, query, weddingID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	summary := &models.BudgetSummary{ByCategory: make(map[string]float64)}
	for rows.Next() {
		var category string
		var total, paid float64
		if err := rows.Scan(&category, &total, &paid); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		summary.ByCategory[category] = total
		summary.Total += total
		summary.Paid += paid
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return summary, nil
}
