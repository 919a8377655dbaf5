// Package report renders comprehensive device reports for export.
package report

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/RanaNomiRana/backend-afa/internal/models"
)

// ContentType is the MIME type of the exported workbook.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Sheet names, in workbook order.
const (
	SheetSummary     = "Summary"
	SheetMessages    = "SMS"
	SheetCallLogs    = "Call Logs"
	SheetContacts    = "Contacts"
	SheetTimeline    = "Timeline"
	SheetURLs        = "SMS With URLs"
	SheetCorrelation = "Correlation"
)

type sheet struct {
	name    string
	headers []string
	widths  []float64
	rows    [][]any
}

// Filename returns the attachment name for a device's export.
func Filename(deviceName string, generatedAt time.Time) string {
	return fmt.Sprintf("%s-report-%s.xlsx", deviceName, generatedAt.Format("20060102-150405"))
}

// Workbook renders r as an XLSX file with one sheet per report section.
func Workbook(r *models.ComprehensiveReport) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for i, s := range sheets(r) {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", s.name); err != nil {
				return nil, fmt.Errorf("failed to rename default sheet: %w", err)
			}
		} else if _, err := f.NewSheet(s.name); err != nil {
			return nil, fmt.Errorf("failed to create sheet %s: %w", s.name, err)
		}
		if err := writeSheet(f, s, headerStyle); err != nil {
			return nil, err
		}
	}
	f.SetActiveSheet(0)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSheet(f *excelize.File, s sheet, headerStyle int) error {
	header := make([]any, len(s.headers))
	for i, h := range s.headers {
		header[i] = h
	}
	if err := f.SetSheetRow(s.name, "A1", &header); err != nil {
		return fmt.Errorf("failed to write %s header: %w", s.name, err)
	}

	last, err := excelize.CoordinatesToCellName(len(s.headers), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(s.name, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("failed to style %s header: %w", s.name, err)
	}

	for i, w := range s.widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(s.name, col, col, w); err != nil {
			return fmt.Errorf("failed to set %s column width: %w", s.name, err)
		}
	}

	for i, row := range s.rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(s.name, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", s.name, i+2, err)
		}
	}
	return nil
}

func sheets(r *models.ComprehensiveReport) []sheet {
	summary := sheet{
		name:    SheetSummary,
		headers: []string{"Metric", "Value"},
		widths:  []float64{28, 30},
		rows: [][]any{
			{"Device", r.DeviceName},
			{"Generated At", r.GeneratedAt.Format(time.RFC3339)},
			{"Contacts", len(r.Contacts)},
			{"Total Messages", r.MessageStats.TotalMessages},
			{"Suspicious Messages", r.MessageStats.SuspiciousMessages},
			{"Fraud", r.MessageStats.Fraud},
			{"Criminal", r.MessageStats.Criminal},
			{"Cyberbullying", r.MessageStats.Cyberbullying},
			{"Threat", r.MessageStats.Threat},
			{"Negative Sentiment", r.MessageStats.NegativeSentiment},
			{"Total Calls", r.CallStats.TotalCalls},
			{"Incoming Calls", r.CallStats.IncomingCalls},
			{"Outgoing Calls", r.CallStats.OutgoingCalls},
			{"Missed Calls", r.CallStats.MissedCalls},
		},
	}

	messages := sheet{
		name:    SheetMessages,
		headers: []string{"Date", "Address", "Contact", "Direction", "Category", "Suspicious", "Sentiment", "Body"},
		widths:  []float64{20, 18, 20, 10, 18, 10, 10, 80},
	}
	for _, m := range r.Messages {
		messages.rows = append(messages.rows, []any{
			deref(m.Date), m.Address, deref(m.ContactName), deref(m.Direction),
			string(m.Category), yesNo(m.IsSuspicious), m.SentimentEmoji, deref(m.Body),
		})
	}

	calls := sheet{
		name:    SheetCallLogs,
		headers: []string{"Date", "Number", "Direction", "Duration"},
		widths:  []float64{20, 18, 10, 12},
	}
	for _, c := range r.CallLogs {
		calls.rows = append(calls.rows, []any{deref(c.Date), c.Number, deref(c.Direction), deref(c.Duration)})
	}

	contacts := sheet{
		name:    SheetContacts,
		headers: []string{"Display Name", "Number"},
		widths:  []float64{30, 20},
	}
	for _, c := range r.Contacts {
		contacts.rows = append(contacts.rows, []any{c.DisplayName, deref(c.Number)})
	}

	timeline := sheet{
		name:    SheetTimeline,
		headers: []string{"Date", "Messages", "Suspicious", "Calls", "Incoming", "Outgoing", "Missed"},
		widths:  []float64{12, 10, 10, 10, 10, 10, 10},
	}
	for _, e := range r.Timeline {
		timeline.rows = append(timeline.rows, []any{
			e.Date, e.TotalMessages, e.SuspiciousMessages, e.TotalCalls, e.IncomingCalls, e.OutgoingCalls, e.MissedCalls,
		})
	}

	urls := sheet{
		name:    SheetURLs,
		headers: []string{"Date", "Sender", "Body"},
		widths:  []float64{20, 18, 80},
	}
	for _, m := range r.MessagesWithURL {
		urls.rows = append(urls.rows, []any{deref(m.Date), m.Address, deref(m.Body)})
	}

	correlation := sheet{
		name:    SheetCorrelation,
		headers: []string{"Number", "SMS Count", "Calls", "Call Dates"},
		widths:  []float64{18, 10, 10, 60},
	}
	for _, c := range r.Correlation {
		dates := make([]string, 0, len(c.CallLogs))
		for _, call := range c.CallLogs {
			dates = append(dates, deref(call.Date))
		}
		correlation.rows = append(correlation.rows, []any{c.Number, c.SMSCount, len(c.CallLogs), strings.Join(dates, ", ")})
	}

	return []sheet{summary, messages, calls, contacts, timeline, urls, correlation}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
