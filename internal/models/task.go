package models

import "time"

// Task представляет задачу подготовки к свадьбе.
type Task struct {
	ID         string     // Уникальный идентификатор задачи
	WeddingID  string     // Свадьба, к которой относится задача
	Title      string     // Заголовок
	Category   string     // Категория (например, "Location", "Catering")
	AssignedTo string     // Ответственный
	DueDate    *time.Time // Срок выполнения (nil — без срока)
	Status     string     // pending, in_progress или completed
	Priority   string     // low, medium или high
	Notes      string     // Заметки
	CreatedAt  time.Time
}

// DummyTask используется для приёма данных задачи из JSON-запроса.
// Срок приходит строкой в формате 2006-01-02.
type DummyTask struct {
	Title      string `json:"title" validate:"required"`
	Category   string `json:"category" validate:"required"`
	AssignedTo string `json:"assigned_to,omitempty"`
	DueDate    string `json:"due_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Status     string `json:"status" validate:"required,oneof=pending in_progress completed"`
	Priority   string `json:"priority" validate:"required,oneof=low medium high"`
	Notes      string `json:"notes,omitempty"`
}
