// Package exporter собирает данные свадьбы в файлы выгрузки:
// CSV-списки, PDF бюджета с итогами по категориям и полный JSON-экспорт.
package exporter

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/magabrotheeeer/wedding-planner/internal/export"
	"github.com/magabrotheeeer/wedding-planner/internal/models"
)

// Свободные темы CSV-выгрузки.
const (
	SubjectGuests   = "guests"
	SubjectTasks    = "tasks"
	SubjectBudget   = "budget"
	SubjectVendors  = "vendors"
	SubjectTimeline = "timeline"
)

// ErrUnknownSubject возвращается для неизвестной темы выгрузки.
var ErrUnknownSubject = fmt.Errorf("unknown export subject")

// DataSource отдаёт данные свадьбы для выгрузки.
type DataSource interface {
	ReadWedding(ctx context.Context, userUID string) (*models.Wedding, error)
	ListGuests(ctx context.Context, userUID string) ([]*models.Guest, error)
	ListTasks(ctx context.Context, userUID string) ([]*models.Task, error)
	ListBudgetItems(ctx context.Context, userUID string) ([]*models.BudgetItem, error)
	ListVendors(ctx context.Context, userUID string) ([]*models.Vendor, error)
	ListTimeline(ctx context.Context, userUID string) ([]*models.TimelineBlock, error)
}

// File — готовый файл выгрузки.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Service собирает файлы выгрузки из данных свадьбы.
type Service struct {
	source DataSource
	pdf    *export.PDFGenerator

	now func() time.Time
}

// New создает новый экземпляр Service.
func New(source DataSource) *Service {
	return &Service{
		source: source,
		pdf:    export.NewPDFGenerator(),
		now:    time.Now,
	}
}

// CSV выгружает список по теме subject в CSV-файл.
func (s *Service) CSV(ctx context.Context, userUID, subject string) (*File, error) {
	table, err := s.table(ctx, userUID, subject)
	if err != nil {
		return nil, err
	}
	data, err := export.CSV(table)
	if err != nil {
		return nil, err
	}
	return &File{
		Name:        export.Filename(subject, "csv", s.now()),
		ContentType: export.ContentTypeCSV,
		Data:        data,
	}, nil
}

func (s *Service) table(ctx context.Context, userUID, subject string) (export.Table, error) {
	switch subject {
	case SubjectGuests:
		guests, err := s.source.ListGuests(ctx, userUID)
		if err != nil {
			return export.Table{}, err
		}
		return guestsTable(guests), nil
	case SubjectTasks:
		tasks, err := s.source.ListTasks(ctx, userUID)
		if err != nil {
			return export.Table{}, err
		}
		return tasksTable(tasks), nil
	case SubjectBudget:
		items, err := s.source.ListBudgetItems(ctx, userUID)
		if err != nil {
			return export.Table{}, err
		}
		return budgetTable(items), nil
	case SubjectVendors:
		vendors, err := s.source.ListVendors(ctx, userUID)
		if err != nil {
			return export.Table{}, err
		}
		return vendorsTable(vendors), nil
	case SubjectTimeline:
		blocks, err := s.source.ListTimeline(ctx, userUID)
		if err != nil {
			return export.Table{}, err
		}
		return timelineTable(blocks), nil
	}
	return export.Table{}, fmt.Errorf("%w: %s", ErrUnknownSubject, subject)
}

// BudgetPDF выгружает бюджет в PDF: статьи сгруппированы по категориям,
// у каждой категории промежуточный итог, в конце общий итог.
func (s *Service) BudgetPDF(ctx context.Context, userUID string) (*File, error) {
	wedding, err := s.source.ReadWedding(ctx, userUID)
	if err != nil {
		return nil, err
	}
	items, err := s.source.ListBudgetItems(ctx, userUID)
	if err != nil {
		return nil, err
	}

	data, err := s.pdf.Generate(budgetDocument(wedding, items, s.now().UTC()))
	if err != nil {
		return nil, err
	}
	return &File{
		Name:        export.Filename(SubjectBudget, "pdf", s.now()),
		ContentType: export.ContentTypePDF,
		Data:        data,
	}, nil
}

// FullJSON выгружает все данные свадьбы одним JSON-файлом с меткой
// времени выгрузки.
func (s *Service) FullJSON(ctx context.Context, userUID string) (*File, error) {
	wedding, err := s.source.ReadWedding(ctx, userUID)
	if err != nil {
		return nil, err
	}
	guests, err := s.source.ListGuests(ctx, userUID)
	if err != nil {
		return nil, err
	}
	tasks, err := s.source.ListTasks(ctx, userUID)
	if err != nil {
		return nil, err
	}
	items, err := s.source.ListBudgetItems(ctx, userUID)
	if err != nil {
		return nil, err
	}
	vendors, err := s.source.ListVendors(ctx, userUID)
	if err != nil {
		return nil, err
	}
	blocks, err := s.source.ListTimeline(ctx, userUID)
	if err != nil {
		return nil, err
	}

	payload := map[string]any{
		"wedding":      wedding,
		"guests":       guests,
		"tasks":        tasks,
		"budget_items": items,
		"vendors":      vendors,
		"timeline":     blocks,
	}
	data, err := export.JSON(payload, s.now())
	if err != nil {
		return nil, err
	}
	return &File{
		Name:        export.Filename("wedding", "json", s.now()),
		ContentType: export.ContentTypeJSON,
		Data:        data,
	}, nil
}

// budgetDocument группирует статьи бюджета по категориям в порядке их
// первого появления: у каждой категории промежуточный итог, в конце
// общий итог. Пустой список даёт документ с нулевым итогом.
func budgetDocument(wedding *models.Wedding, items []*models.BudgetItem, generatedAt time.Time) *export.PDFDocument {
	doc := &export.PDFDocument{
		Title:       "Wedding Budget",
		Subtitle:    wedding.Partner1Name + " & " + wedding.Partner2Name,
		GeneratedAt: generatedAt,
		Columns:     []string{"Item", "Paid", "Method", "Cost"},
	}

	var total float64
	var order []string
	grouped := make(map[string][]*models.BudgetItem)
	for _, item := range items {
		if _, ok := grouped[item.Category]; !ok {
			order = append(order, item.Category)
		}
		grouped[item.Category] = append(grouped[item.Category], item)
	}
	for _, category := range order {
		group := export.PDFGroup{Title: category}
		var subtotal float64
		for _, item := range grouped[category] {
			group.Rows = append(group.Rows, []string{
				item.ItemName, yesNo(item.Paid), item.PaymentMethod, money(item.ActualCost),
			})
			subtotal += item.ActualCost
		}
		group.Subtotal = money(subtotal)
		total += subtotal
		doc.Groups = append(doc.Groups, group)
	}
	doc.Total = money(total)
	return doc
}

func guestsTable(guests []*models.Guest) export.Table {
	table := export.Table{
		Columns: []string{"Name", "Email", "Phone", "RSVP", "Plus One",
			"Dietary Restrictions", "Table", "Address", "Notes"},
	}
	for _, g := range guests {
		table.Rows = append(table.Rows, []string{
			g.Name, deref(g.Email), deref(g.Phone), g.RSVPStatus, yesNo(g.PlusOne),
			deref(g.DietaryRestrictions), derefInt(g.TableNumber), deref(g.Address), deref(g.Notes),
		})
	}
	return table
}

func tasksTable(tasks []*models.Task) export.Table {
	table := export.Table{
		Columns: []string{"Title", "Category", "Assigned To", "Due Date",
			"Status", "Priority", "Notes"},
	}
	for _, t := range tasks {
		dueDate := ""
		if t.DueDate != nil {
			dueDate = t.DueDate.Format("2006-01-02")
		}
		table.Rows = append(table.Rows, []string{
			t.Title, t.Category, t.AssignedTo, dueDate, t.Status, t.Priority, t.Notes,
		})
	}
	return table
}

func budgetTable(items []*models.BudgetItem) export.Table {
	table := export.Table{
		Columns: []string{"Category", "Item", "Cost", "Paid", "Payment Method", "Notes"},
	}
	for _, item := range items {
		table.Rows = append(table.Rows, []string{
			item.Category, item.ItemName, money(item.ActualCost), yesNo(item.Paid),
			item.PaymentMethod, item.Notes,
		})
	}
	return table
}

func vendorsTable(vendors []*models.Vendor) export.Table {
	table := export.Table{
		Columns: []string{"Name", "Category", "Contact", "Email", "Phone",
			"Website", "Contract", "Total Cost", "Paid", "Notes"},
	}
	for _, v := range vendors {
		totalCost := ""
		if v.TotalCost != nil {
			totalCost = money(*v.TotalCost)
		}
		table.Rows = append(table.Rows, []string{
			v.Name, v.Category, deref(v.ContactName), deref(v.Email), deref(v.Phone),
			deref(v.Website), v.ContractStatus, totalCost, money(v.PaidAmount), deref(v.Notes),
		})
	}
	return table
}

func timelineTable(blocks []*models.TimelineBlock) export.Table {
	table := export.Table{
		Columns: []string{"Time", "Title", "Description", "Location", "Duration (min)"},
	}
	for _, b := range blocks {
		table.Rows = append(table.Rows, []string{
			b.Time, b.Title, deref(b.Description), deref(b.Location),
			strconv.Itoa(b.DurationMinutes),
		})
	}
	return table
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

func derefInt(value *int) string {
	if value == nil {
		return ""
	}
	return strconv.Itoa(*value)
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}

func money(value float64) string {
	return strconv.FormatFloat(value, 'f', 2, 64)
}
