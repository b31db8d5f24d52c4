package models

import "time"

// BudgetItem представляет статью бюджета свадьбы.
type BudgetItem struct {
	ID            string  // Уникальный идентификатор статьи
	WeddingID     string  // Свадьба, к которой относится статья
	Category      string  // Категория расходов
	ItemName      string  // Название статьи
	ActualCost    float64 // Фактическая стоимость
	Paid          bool    // Оплачено ли
	PaymentMethod string  // Способ оплаты
	Notes         string  // Заметки
	CreatedAt     time.Time
}

// DummyBudgetItem используется для приёма статьи бюджета из JSON-запроса.
type DummyBudgetItem struct {
	Category      string  `json:"category" validate:"required"`
	ItemName      string  `json:"item_name" validate:"required"`
	ActualCost    float64 `json:"actual_cost" validate:"gte=0"`
	Paid          bool    `json:"paid"`
	PaymentMethod string  `json:"payment_method,omitempty"`
	Notes         string  `json:"notes,omitempty"`
}

// BudgetSummary агрегирует бюджет: общая и оплаченная суммы,
// а также суммы по категориям.
type BudgetSummary struct {
	Total      float64            `json:"total"`
	Paid       float64            `json:"paid"`
	ByCategory map[string]float64 `json:"by_category"`
}
