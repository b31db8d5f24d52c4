package export

import (
	"encoding/json"
	"fmt"
	"time"
)

// JSON сериализует полный экспорт данных с отступами: каждая группа
// записей становится ключом верхнего уровня рядом с меткой времени
// выгрузки exported_at.
func JSON(groups map[string]any, exportedAt time.Time) ([]byte, error) {
	payload := make(map[string]any, len(groups)+1)
	for key, value := range groups {
		payload[key] = value
	}
	payload["exported_at"] = exportedAt.UTC()

	out, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal JSON export: %w", err)
	}
	return out, nil
}
