package storage

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/wedding-planner/internal/models"
)

// CreateTask вставляет новую задачу и возвращает её ID.
func (s *Storage) CreateTask(ctx context.Context, task models.Task) (string, error) {
	const op = "storage.CreateTask"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO tasks (id, wedding_id, title, category, assigned_to,
			      due_date, status, priority, notes)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			  RETURNING id`
	var newID string
	err := s.DB.QueryRowContext(ctx, query,
		task.ID, task.WeddingID, task.Title, task.Category, task.AssignedTo,
		task.DueDate, task.Status, task.Priority, task.Notes).Scan(&newID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListTasks возвращает задачи свадьбы, отсортированные по сроку выполнения.
func (s *Storage) ListTasks(ctx context.Context, weddingID string) ([]*models.Task, error) {
	const op = "storage.ListTasks"

	query := `SELECT id, wedding_id, title, category, assigned_to, due_date,
				status, priority, notes, created_at
			  FROM tasks WHERE wedding_id = $1
			  ORDER BY due_date NULLS LAST, created_at`
	rows, err := s.DB.QueryContext(ctx, query, weddingID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	var tasks []*models.Task
	for rows.Next() {
		var task models.Task
		if err := rows.Scan(&task.ID, &task.WeddingID, &task.Title, &task.Category,
			&task.AssignedTo, &task.DueDate, &task.Status, &task.Priority,
			&task.Notes, &task.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		tasks = append(tasks, &task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return tasks, nil
}

// UpdateTask обновляет задачу и возвращает количество изменённых строк.
func (s *Storage) UpdateTask(ctx context.Context, task models.Task, id string) (int, error) {
	const op = "storage.UpdateTask"

	query := `UPDATE tasks
			  SET title = $1, category = $2, assigned_to = $3, due_date = $4,
			      status = $5, priority = $6, notes = $7
			  WHERE id = $8`
	result, err := s.DB.ExecContext(ctx, query,
		task.Title, task.Category, task.AssignedTo, task.DueDate,
		task.Status, task.Priority, task.Notes, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// RemoveTask удаляет задачу по ID и возвращает количество удалённых строк.
func (s *Storage) RemoveTask(ctx context.Context, id string) (int, error) {
	const op = "storage.RemoveTask"

	result, err := s.DB.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}
