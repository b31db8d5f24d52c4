package models

// DummySupportRequest используется для приёма обращения в поддержку
// из JSON-запроса.
type DummySupportRequest struct {
	Subject string `json:"subject" validate:"required"`
	Text    string `json:"text" validate:"required,min=10"`
}
