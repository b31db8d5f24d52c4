package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
)

var (
	pdfColorHeader   = [3]int{30, 58, 95}    // тёмно-синяя шапка таблиц
	pdfColorText     = [3]int{44, 62, 80}    // основной текст
	pdfColorMuted    = [3]int{127, 140, 141} // подписи и колонтитулы
	pdfColorAltRow   = [3]int{241, 245, 249} // чередующиеся строки
	pdfColorGridLine = [3]int{220, 220, 220}
)

// PDFGroup — группа строк с промежуточным итогом, например категория бюджета.
type PDFGroup struct {
	Title    string
	Rows     [][]string
	Subtotal string // пустая строка — группа без итога
}

// PDFDocument — данные для PDF-выгрузки: заголовок, колонки и группы строк.
type PDFDocument struct {
	Title       string
	Subtitle    string
	GeneratedAt time.Time
	Columns     []string
	Groups      []PDFGroup
	Total       string // общий итог по документу, пустая строка — без итога
}

// PDFGenerator собирает постраничный PDF-документ выгрузки.
type PDFGenerator struct{}

// NewPDFGenerator создает новый генератор PDF.
func NewPDFGenerator() *PDFGenerator {
	return &PDFGenerator{}
}

// Generate формирует PDF: шапка документа, таблицы групп с промежуточными
// итогами, общий итог и номера страниц. Разбиение на страницы выполняет
// автоперенос fpdf.
func (g *PDFGenerator) Generate(doc *PDFDocument) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	g.writeTitle(pdf, doc)

	colWidth := g.columnWidth(pdf, len(doc.Columns))
	for _, group := range doc.Groups {
		g.writeGroup(pdf, doc, group, colWidth)
	}

	if doc.Total != "" {
		pdf.Ln(4)
		pdf.SetFont("Arial", "B", 11)
		pdf.SetTextColor(pdfColorText[0], pdfColorText[1], pdfColorText[2])
		pdf.CellFormat(colWidth*float64(len(doc.Columns)-1), 8, "Total", "T", 0, "R", false, 0, "")
		pdf.CellFormat(colWidth, 8, doc.Total, "T", 1, "R", false, 0, "")
	}

	g.addPageNumbers(pdf)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("PDF output error: %w", err)
	}
	return buf.Bytes(), nil
}

func (g *PDFGenerator) writeTitle(pdf *fpdf.Fpdf, doc *PDFDocument) {
	pdf.SetFont("Arial", "B", 18)
	pdf.SetTextColor(pdfColorHeader[0], pdfColorHeader[1], pdfColorHeader[2])
	pdf.CellFormat(0, 10, doc.Title, "", 1, "L", false, 0, "")

	if doc.Subtitle != "" {
		pdf.SetFont("Arial", "", 11)
		pdf.SetTextColor(pdfColorMuted[0], pdfColorMuted[1], pdfColorMuted[2])
		pdf.CellFormat(0, 6, doc.Subtitle, "", 1, "L", false, 0, "")
	}

	pdf.SetFont("Arial", "", 9)
	pdf.SetTextColor(pdfColorMuted[0], pdfColorMuted[1], pdfColorMuted[2])
	pdf.CellFormat(0, 5, "Generated "+doc.GeneratedAt.UTC().Format("2006-01-02 15:04 MST"),
		"", 1, "L", false, 0, "")
	pdf.Ln(4)
}

func (g *PDFGenerator) writeGroup(pdf *fpdf.Fpdf, doc *PDFDocument, group PDFGroup, colWidth float64) {
	if group.Title != "" {
		pdf.SetFont("Arial", "B", 12)
		pdf.SetTextColor(pdfColorHeader[0], pdfColorHeader[1], pdfColorHeader[2])
		pdf.CellFormat(0, 8, group.Title, "", 1, "L", false, 0, "")
	}

	g.writeTableHeader(pdf, doc.Columns, colWidth)

	pdf.SetFont("Arial", "", 9)
	pdf.SetTextColor(pdfColorText[0], pdfColorText[1], pdfColorText[2])
	for i, row := range group.Rows {
		fill := i%2 == 1
		if fill {
			pdf.SetFillColor(pdfColorAltRow[0], pdfColorAltRow[1], pdfColorAltRow[2])
		}
		// повтор шапки таблицы после автопереноса страницы
		if pdf.GetY() > 260 {
			pdf.AddPage()
			g.writeTableHeader(pdf, doc.Columns, colWidth)
			pdf.SetFont("Arial", "", 9)
			pdf.SetTextColor(pdfColorText[0], pdfColorText[1], pdfColorText[2])
		}
		for _, cell := range row {
			pdf.CellFormat(colWidth, 7, cell, "", 0, "L", fill, 0, "")
		}
		pdf.Ln(-1)
	}

	if group.Subtotal != "" {
		pdf.SetFont("Arial", "B", 9)
		pdf.SetDrawColor(pdfColorGridLine[0], pdfColorGridLine[1], pdfColorGridLine[2])
		pdf.CellFormat(colWidth*float64(len(doc.Columns)-1), 7, "Subtotal", "T", 0, "R", false, 0, "")
		pdf.CellFormat(colWidth, 7, group.Subtotal, "T", 1, "R", false, 0, "")
	}
	pdf.Ln(3)
}

func (g *PDFGenerator) writeTableHeader(pdf *fpdf.Fpdf, columns []string, colWidth float64) {
	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(pdfColorHeader[0], pdfColorHeader[1], pdfColorHeader[2])
	pdf.SetTextColor(255, 255, 255)
	for _, col := range columns {
		pdf.CellFormat(colWidth, 7, col, "", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)
}

func (g *PDFGenerator) columnWidth(pdf *fpdf.Fpdf, columns int) float64 {
	pageWidth, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	if columns == 0 {
		return pageWidth - left - right
	}
	return (pageWidth - left - right) / float64(columns)
}

func (g *PDFGenerator) addPageNumbers(pdf *fpdf.Fpdf) {
	pdf.SetAutoPageBreak(false, 0)

	totalPages := pdf.PageCount()
	for i := 1; i <= totalPages; i++ {
		pdf.SetPage(i)
		pageWidth, pageHeight := pdf.GetPageSize()

		pdf.SetY(pageHeight - 12)
		pdf.SetFont("Arial", "", 8)
		pdf.SetTextColor(pdfColorMuted[0], pdfColorMuted[1], pdfColorMuted[2])
		pdf.CellFormat(0, 5, fmt.Sprintf("Page %d of %d", i, totalPages), "", 0, "C", false, 0, "")

		pdf.SetDrawColor(pdfColorGridLine[0], pdfColorGridLine[1], pdfColorGridLine[2])
		pdf.SetLineWidth(0.3)
		pdf.Line(15, pageHeight-15, pageWidth-15, pageHeight-15)
	}
}
