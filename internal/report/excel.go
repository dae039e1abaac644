package report

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/angelcm/campaign-report-go/internal/models"
)

const (
	sheetReport  = "Report"
	sheetSummary = "Executive Summary"
	sheetKPIs    = "KPIs"
	sheetChart   = "Chart"
	sheetTop5    = "Top 5 Campaigns"
)

// Write assembles the campaign report workbook: title page, executive summary
// (first four insights), KPI sheet, embedded chart and the top-5 ranking when
// present. chartPath may be empty to skip the chart sheet.
func Write(s models.SummaryStatistics, ins []models.Insight, chartPath, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetReport); err != nil {
		return err
	}
	f.SetCellValue(sheetReport, "A1", "Campaign Performance Report")
	f.SetCellValue(sheetReport, "A2", time.Now().Format("January 2, 2006"))

	if _, err := f.NewSheet(sheetSummary); err != nil {
		return err
	}
	head := ins
	if len(head) > 4 {
		head = head[:4]
	}
	for i, in := range head {
		f.SetCellValue(sheetSummary, fmt.Sprintf("A%d", i+1), string(in))
	}

	if _, err := f.NewSheet(sheetKPIs); err != nil {
		return err
	}
	kpis := []struct {
		label string
		value any
	}{
		{"Total Impressions", s.TotalImpressions},
		{"Total Clicks", s.TotalClicks},
		{"Total Spend", s.TotalSpend},
		{"Total Revenue", s.TotalRevenue},
		{"Avg CTR (%)", s.AvgCTR * 100},
		{"Avg CPC", s.AvgCPC},
		{"Avg ROAS", s.AvgROAS},
	}
	for i, kv := range kpis {
		f.SetCellValue(sheetKPIs, fmt.Sprintf("A%d", i+1), kv.label)
		f.SetCellValue(sheetKPIs, fmt.Sprintf("B%d", i+1), kv.value)
	}

	if chartPath != "" {
		if _, err := f.NewSheet(sheetChart); err != nil {
			return err
		}
		f.SetCellValue(sheetChart, "A1", "Campaign Performance Overview")
		if err := f.AddPicture(sheetChart, "A2", chartPath, nil); err != nil {
			return fmt.Errorf("embed chart: %w", err)
		}
	}

	if len(s.Top5) > 0 {
		if _, err := f.NewSheet(sheetTop5); err != nil {
			return err
		}
		for i, r := range s.Top5 {
			row := i + 1
			f.SetCellValue(sheetTop5, fmt.Sprintf("A%d", row), row)
			f.SetCellValue(sheetTop5, fmt.Sprintf("B%d", row), r.Campaign)
			f.SetCellValue(sheetTop5, fmt.Sprintf("C%d", row), r.Revenue)
			f.SetCellValue(sheetTop5, fmt.Sprintf("D%d", row), r.ROAS)
		}
	}

	return f.SaveAs(path)
}
