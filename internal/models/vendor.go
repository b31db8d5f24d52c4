package models

import "time"

// Vendor представляет подрядчика (фотограф, кейтеринг, локация и т.п.).
type Vendor struct {
	ID             string   // Уникальный идентификатор подрядчика
	WeddingID      string   // Свадьба, к которой относится подрядчик
	Name           string   // Название
	Category       string   // Категория услуг
	ContactName    *string  // Контактное лицо
	Email          *string  // Электронная почта
	Phone          *string  // Телефон
	Website        *string  // Сайт
	ContractStatus string   // Статус договора
	TotalCost      *float64 // Полная стоимость (nil, если не определена)
	PaidAmount     float64  // Уже оплачено
	Notes          *string  // Заметки
	CreatedAt      time.Time
}

// DummyVendor используется для приёма данных подрядчика из JSON-запроса.
type DummyVendor struct {
	Name           string   `json:"name" validate:"required"`
	Category       string   `json:"category" validate:"required"`
	ContactName    string   `json:"contact_name,omitempty"`
	Email          string   `json:"email,omitempty" validate:"omitempty,email"`
	Phone          string   `json:"phone,omitempty"`
	Website        string   `json:"website,omitempty"`
	ContractStatus string   `json:"contract_status" validate:"required,oneof=none requested offer_received signed cancelled"`
	TotalCost      *float64 `json:"total_cost,omitempty" validate:"omitempty,gte=0"`
	PaidAmount     float64  `json:"paid_amount" validate:"gte=0"`
	Notes          string   `json:"notes,omitempty"`
}
