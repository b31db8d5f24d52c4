package export_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/wedding-planner/internal/export"
)

func TestCSV(t *testing.T) {
	tests := []struct {
		name    string
		table   export.Table
		want    string
		wantErr bool
	}{
		{
			name: "plain rows",
			table: export.Table{
				Columns: []string{"Name", "RSVP"},
				Rows: [][]string{
					{"Anna", "accepted"},
					{"Boris", "invited"},
				},
			},
			want: "Name,RSVP\nAnna,accepted\nBoris,invited\n",
		},
		{
			name: "cells with commas and quotes are escaped",
			table: export.Table{
				Columns: []string{"Name", "Notes"},
				Rows: [][]string{
					{`Anna "Annie" Smith`, "vegan, no nuts"},
				},
			},
			want: "Name,Notes\n\"Anna \"\"Annie\"\" Smith\",\"vegan, no nuts\"\n",
		},
		{
			name: "cell with newline is quoted",
			table: export.Table{
				Columns: []string{"Name", "Notes"},
				Rows: [][]string{
					{"Anna", "line one\nline two"},
				},
			},
			want: "Name,Notes\nAnna,\"line one\nline two\"\n",
		},
		{
			name: "empty set yields header-only file",
			table: export.Table{
				Columns: []string{"Name", "RSVP"},
			},
			want: "Name,RSVP\n",
		},
		{
			name: "row width mismatch fails",
			table: export.Table{
				Columns: []string{"Name", "RSVP"},
				Rows:    [][]string{{"Anna"}},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := export.CSV(tt.table)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestJSON(t *testing.T) {
	exportedAt := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	payload := map[string]any{
		"guests": []string{"Anna", "Boris"},
		"tasks":  []string{"book venue"},
	}

	got, err := export.JSON(payload, exportedAt)
	require.NoError(t, err)

	// читаемый вывод с отступами
	assert.True(t, strings.Contains(string(got), "\n  "))

	// группы записей и метка времени — соседние ключи верхнего уровня
	var decoded struct {
		ExportedAt time.Time `json:"exported_at"`
		Guests     []string  `json:"guests"`
		Tasks      []string  `json:"tasks"`
	}
	require.NoError(t, json.Unmarshal(got, &decoded))
	assert.True(t, decoded.ExportedAt.Equal(exportedAt))
	assert.Equal(t, []string{"Anna", "Boris"}, decoded.Guests)
	assert.Equal(t, []string{"book venue"}, decoded.Tasks)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(got, &raw))
	assert.NotContains(t, raw, "data")
}

func TestFilename(t *testing.T) {
	at := time.Date(2026, 8, 30, 23, 59, 0, 0, time.UTC)

	tests := []struct {
		name    string
		subject string
		ext     string
		want    string
	}{
		{"simple subject", "guests", "csv", "guests-2026-08-30.csv"},
		{"spaces become dashes", "Budget Items", "pdf", "budget-items-2026-08-30.pdf"},
		{"unsafe characters dropped", "guests/../../etc", "csv", "guestsetc-2026-08-30.csv"},
		{"extension with dot", "wedding", ".json", "wedding-2026-08-30.json"},
		{"empty subject falls back", "  ", "json", "export-2026-08-30.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, export.Filename(tt.subject, tt.ext, at))
		})
	}
}

func TestPDFGenerator_Generate(t *testing.T) {
	gen := export.NewPDFGenerator()

	doc := &export.PDFDocument{
		Title:       "Budget",
		Subtitle:    "Anna & Boris",
		GeneratedAt: time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
		Columns:     []string{"Item", "Paid", "Cost"},
		Groups: []export.PDFGroup{
			{
				Title: "Catering",
				Rows: [][]string{
					{"Dinner", "yes", "3000.00"},
					{"Cake", "no", "450.00"},
				},
				Subtotal: "3450.00",
			},
			{
				Title: "Venue",
				Rows: [][]string{
					{"Hall rental", "yes", "5000.00"},
				},
				Subtotal: "5000.00",
			},
		},
		Total: "8450.00",
	}

	got, err := gen.Generate(doc)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(got, []byte("%PDF-")))
	assert.Greater(t, len(got), 1000)
}

func TestPDFGenerator_GenerateManyRowsPaginates(t *testing.T) {
	gen := export.NewPDFGenerator()

	rows := make([][]string, 200)
	for i := range rows {
		rows[i] = []string{"Guest", "accepted", "1"}
	}
	doc := &export.PDFDocument{
		Title:       "Guests",
		GeneratedAt: time.Now(),
		Columns:     []string{"Name", "RSVP", "Table"},
		Groups:      []export.PDFGroup{{Rows: rows}},
	}

	got, err := gen.Generate(doc)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(got, []byte("%PDF-")))
	// двести строк не помещаются на одну страницу: объектов /Type /Page
	// больше двух (страницы плюс корневой /Type /Pages)
	assert.GreaterOrEqual(t, strings.Count(string(got), "/Type /Page"), 3)
}

func TestPDFGenerator_GenerateEmptyDocument(t *testing.T) {
	gen := export.NewPDFGenerator()

	got, err := gen.Generate(&export.PDFDocument{
		Title:       "Vendors",
		GeneratedAt: time.Now(),
		Columns:     []string{"Name", "Category"},
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(got, []byte("%PDF-")))
}
