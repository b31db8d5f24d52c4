package models

import "time"

// Wedding представляет свадьбу пользователя. Создаётся один раз при
// онбординге и служит корнем для всех остальных записей.
type Wedding struct {
	ID           string    // Уникальный идентификатор свадьбы
	UserUID      string    // Владелец записи
	Partner1Name string    // Имя первого партнёра
	Partner2Name string    // Имя второго партнёра
	WeddingDate  time.Time // Дата свадьбы
	GuestCount   int       // Планируемое количество гостей
	CeremonyType string    // Тип церемонии
	TotalBudget  float64   // Общий бюджет
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// DummyWedding используется для приёма данных свадьбы из JSON-запроса.
// Дата приходит строкой в формате 2006-01-02 и парсится в сервисе.
type DummyWedding struct {
	Partner1Name string  `json:"partner_1_name" validate:"required"`
	Partner2Name string  `json:"partner_2_name" validate:"required"`
	WeddingDate  string  `json:"wedding_date" validate:"required,datetime=2006-01-02"`
	GuestCount   int     `json:"guest_count" validate:"gte=0"`
	CeremonyType string  `json:"ceremony_type" validate:"required"`
	TotalBudget  float64 `json:"total_budget" validate:"gte=0"`
}
