package export

import (
	"fmt"
	"net/http"
)

// Типы содержимого файлов выгрузки.
const (
	ContentTypeCSV  = "text/csv; charset=utf-8"
	ContentTypePDF  = "application/pdf"
	ContentTypeJSON = "application/json; charset=utf-8"
)

// Sink принимает готовый файл выгрузки.
type Sink interface {
	Write(name, contentType string, data []byte) error
}

// HTTPSink отдаёт файл выгрузки как вложение в HTTP-ответе.
type HTTPSink struct {
	W http.ResponseWriter
}

// Write выставляет заголовки скачивания и пишет тело файла.
func (s HTTPSink) Write(name, contentType string, data []byte) error {
	s.W.Header().Set("Content-Type", contentType)
	s.W.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	s.W.Header().Set("Content-Length", fmt.Sprintf("%d", len(data)))
	if _, err := s.W.Write(data); err != nil {
		return fmt.Errorf("write export body: %w", err)
	}
	return nil
}
