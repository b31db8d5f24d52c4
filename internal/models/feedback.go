package models

import "time"

// Feedback представляет отзыв пользователя о сервисе.
type Feedback struct {
	ID             string    // Уникальный идентификатор отзыва
	UserUID        string    // Автор отзыва
	Text           string    // Текст отзыва
	AllowPublicUse bool      // Разрешено ли публичное использование
	CreatedAt      time.Time
}

// DummyFeedback используется для приёма отзыва из JSON-запроса.
// Текст короче 10 символов отклоняется валидацией до обращения к хранилищу.
type DummyFeedback struct {
	Text           string `json:"text" validate:"required,min=10"`
	AllowPublicUse bool   `json:"allow_public_use" validate:"required"`
}
