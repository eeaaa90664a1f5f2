package exchange

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
)

// BuildSummaryXLSX renders settlement summaries as a workbook with a
// per-team overview sheet and a flat items sheet.
func BuildSummaryXLSX(from, to time.Time, summaries []*TeamSummary) ([]byte, error) {
	f := excelize.NewFile()
	summarySheet := "summary"
	itemsSheet := "items"
	f.SetSheetName("Sheet1", summarySheet)
	if _, err := f.NewSheet(itemsSheet); err != nil {
		return nil, fmt.Errorf("failed to create items sheet: %w", err)
	}

	_ = f.SetCellValue(summarySheet, "A1", "Labor Exchange Settlement")
	_ = f.SetCellValue(summarySheet, "A2", fmt.Sprintf("Period: %s ~ %s",
		from.Format("2006-01-02"), to.Format("2006-01-02")))

	headers := []string{"Team", "Outgoing Man-Days", "Outgoing Amount", "Incoming Man-Days", "Incoming Amount", "Net Amount"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 4)
		_ = f.SetCellValue(summarySheet, cell, header)
	}

	for i, summary := range summaries {
		row := 5 + i
		values := []interface{}{
			summary.TeamID,
			summary.Outgoing.TotalManDays,
			summary.Outgoing.TotalAmount,
			summary.Incoming.TotalManDays,
			summary.Incoming.TotalAmount,
			summary.NetAmount,
		}
		for j, value := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, row)
			_ = f.SetCellValue(summarySheet, cell, value)
		}
	}

	itemHeaders := []string{"Date", "Site", "Report Team", "Worker Team", "Worker", "Man-Days", "Support Rate", "Amount"}
	for i, header := range itemHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(itemsSheet, cell, header)
	}

	itemRow := 2
	written := make(map[*SettlementItem]bool)
	for _, summary := range summaries {
		legs := append(append([]*SettlementItem{}, summary.Outgoing.Items...), summary.Incoming.Items...)
		for _, item := range legs {
			if written[item] {
				continue
			}
			written[item] = true
			values := []interface{}{
				item.WorkDate.Format("2006-01-02"),
				item.SiteID,
				item.ReportTeamID,
				item.WorkerTeamID,
				item.WorkerName,
				item.ManDay,
				item.SupportRate,
				item.Amount,
			}
			for j, value := range values {
				cell, _ := excelize.CoordinatesToCellName(j+1, itemRow)
				_ = f.SetCellValue(itemsSheet, cell, value)
			}
			itemRow++
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
