// Package export содержит форматтеры выгрузки данных свадьбы:
// CSV-таблицы, PDF-документы с промежуточными итогами по группам
// и полный JSON-экспорт. Форматтеры не имеют состояния и не ходят
// в хранилище, на вход подаются уже подготовленные данные.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// Table — плоская таблица для CSV-выгрузки.
type Table struct {
	Columns []string
	Rows    [][]string
}

// CSV сериализует таблицу в CSV: первая строка — заголовки колонок,
// экранирование по RFC 4180 выполняет encoding/csv.
func CSV(table Table) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(table.Columns); err != nil {
		return nil, fmt.Errorf("write CSV header: %w", err)
	}
	for i, row := range table.Rows {
		if len(row) != len(table.Columns) {
			return nil, fmt.Errorf("row %d has %d cells, want %d", i, len(row), len(table.Columns))
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("write CSV row %d: %w", i, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("CSV write error: %w", err)
	}
	return buf.Bytes(), nil
}
