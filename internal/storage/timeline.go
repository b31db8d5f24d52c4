package storage

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/wedding-planner/internal/models"
)

// CreateTimelineBlock вставляет новый блок тайм-плана в конец списка
// и возвращает его ID.
func (s *Storage) CreateTimelineBlock(ctx context.Context, block models.TimelineBlock) (string, error) {
	const op = "storage.CreateTimelineBlock"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO timeline_blocks (id, wedding_id, start_time, title,
			      description, location, duration_minutes, sort_order)
			  VALUES ($1, $2, $3, $4, $5, $6, $7,
			      (SELECT COALESCE(MAX(sort_order), 0) + 1 FROM timeline_blocks WHERE wedding_id = $2))
			  RETURNING id`
	var newID string
	err := s.DB.QueryRowContext(ctx, query,
		block.ID, block.WeddingID, block.Time, block.Title, block.Description,
		block.Location, block.DurationMinutes).Scan(&newID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListTimelineBlocks возвращает блоки тайм-плана в порядке sort_order.
func (s *Storage) ListTimelineBlocks(ctx context.Context, weddingID string) ([]*models.TimelineBlock, error) {
	const op = "storage.ListTimelineBlocks"

	query := `SELECT id, wedding_id, start_time, title, description, location,
				duration_minutes, sort_order, created_at
			  FROM timeline_blocks WHERE wedding_id = $1 ORDER BY sort_order`
	rows, err := s.DB.QueryContext(ctx, query, weddingID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	var blocks []*models.TimelineBlock
	for rows.Next() {
		var block models.TimelineBlock
		if err := rows.Scan(&block.ID, &block.WeddingID, &block.Time, &block.Title,
			&block.Description, &block.Location, &block.DurationMinutes,
			&block.SortOrder, &block.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		blocks = append(blocks, &block)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return blocks, nil
}

// UpdateTimelineBlock обновляет блок тайм-плана и возвращает количество изменённых строк.
func (s *Storage) UpdateTimelineBlock(ctx context.Context, block models.TimelineBlock, id string) (int, error) {
	const op = "storage.UpdateTimelineBlock"

	query := `UPDATE timeline_blocks
			  SET start_time = $1, title = $2, description = $3, location = $4,
			      duration_minutes = $5
			  WHERE id = $6`
	result, err := s.DB.ExecContext(ctx, query,
		block.Time, block.Title, block.Description, block.Location,
		block.DurationMinutes, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// RemoveTimelineBlock удаляет блок тайм-плана и возвращает количество удалённых строк.
func (s *Storage) RemoveTimelineBlock(ctx context.Context, id string) (int, error) {
	const op = "storage.RemoveTimelineBlock"

	result, err := s.DB.ExecContext(ctx, `DELETE FROM timeline_blocks WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// ReorderTimelineBlocks переустанавливает sort_order блоков согласно
// переданному порядку идентификаторов. Выполняется в одной транзакции.
func (s *Storage) ReorderTimelineBlocks(ctx context.Context, weddingID string, blockIDs []string) error {
	const op = "storage.ReorderTimelineBlocks"

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `UPDATE timeline_blocks SET sort_order = $1 WHERE id = $2 AND wedding_id = $3`
	for i, id := range blockIDs {
		if _, err := tx.ExecContext(ctx, query, i+1, id, weddingID); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
