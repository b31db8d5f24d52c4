package models

import "time"

// TimelineBlock представляет блок тайм-плана дня свадьбы.
// Порядок блоков определяется полем SortOrder.
type TimelineBlock struct {
	ID              string  // Уникальный идентификатор блока
	WeddingID       string  // Свадьба, к которой относится блок
	Time            string  // Время начала в формате 15:04
	Title           string  // Заголовок блока
	Description     *string // Описание
	Location        *string // Место проведения
	DurationMinutes int     // Длительность в минутах
	SortOrder       int     // Позиция в тайм-плане
	CreatedAt       time.Time
}

// DummyTimelineBlock используется для приёма блока тайм-плана из JSON-запроса.
type DummyTimelineBlock struct {
	Time            string `json:"time" validate:"required,datetime=15:04"`
	Title           string `json:"title" validate:"required"`
	Description     string `json:"description,omitempty"`
	Location        string `json:"location,omitempty"`
	DurationMinutes int    `json:"duration_minutes" validate:"gt=0"`
}

// DummyTimelineReorder используется для приёма нового порядка блоков.
// Список содержит идентификаторы блоков в желаемом порядке.
type DummyTimelineReorder struct {
	BlockIDs []string `json:"block_ids" validate:"required,min=1,dive,uuid"`
}
