package export

import (
	"strings"
	"time"
)

// Filename собирает имя файла выгрузки вида <subject>-<дата>.<ext>,
// например guests-2026-08-30.csv. Тема приводится к нижнему регистру,
// пробелы заменяются дефисами, прочие небезопасные символы отбрасываются.
func Filename(subject, ext string, at time.Time) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(subject)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		case r == ' ' || r == '_':
			b.WriteRune('-')
		}
	}
	subject = b.String()
	if subject == "" {
		subject = "export"
	}
	return subject + "-" + at.UTC().Format("2006-01-02") + "." + strings.TrimPrefix(ext, ".")
}
