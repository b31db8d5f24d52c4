package models

import "time"

// Guest представляет гостя свадьбы.
type Guest struct {
	ID                  string  // Уникальный идентификатор гостя
	WeddingID           string  // Свадьба, к которой относится гость
	Name                string  // Полное имя
	Email               *string // Электронная почта (опционально)
	Phone               *string // Телефон (опционально)
	RSVPStatus          string  // planned, invited, accepted или declined
	PlusOne             bool    // Приглашён ли сопровождающий
	DietaryRestrictions *string // Ограничения в питании
	TableNumber         *int    // Номер стола при рассадке
	Address             *string // Почтовый адрес для приглашений
	Notes               *string // Заметки
	CreatedAt           time.Time
}

// DummyGuest используется для приёма данных гостя из JSON-запроса.
type DummyGuest struct {
	Name                string  `json:"name" validate:"required"`
	Email               string  `json:"email,omitempty" validate:"omitempty,email"`
	Phone               string  `json:"phone,omitempty"`
	RSVPStatus          string  `json:"rsvp_status" validate:"required,oneof=planned invited accepted declined"`
	PlusOne             bool    `json:"plus_one"`
	DietaryRestrictions string  `json:"dietary_restrictions,omitempty"`
	TableNumber         *int    `json:"table_number,omitempty"`
	Address             string  `json:"address,omitempty"`
	Notes               string  `json:"notes,omitempty"`
}
