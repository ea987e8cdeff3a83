package pipeline

import (
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"bidrank/internal"
)

// ExportRankingsToXLSX writes the ranked records to a workbook, one row per
// bid in rank order.
func ExportRankingsToXLSX(rows []internal.RankingRow, outputPath string) error {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	headers := []string{
		"rank", "source", "contract_name", "license_category",
		"project_duration_months", "warranty_period_months",
		"client_rating", "project_success_rate", "rejection_history",
		"safety_certification", "bid_amount",
		"composite_score", "comprehensive_score",
		"win_probability", "predicted_winner",
	}

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for i, row := range rows {
		r := i + 2
		set := func(col int, value any) {
			cell, _ := excelize.CoordinatesToCellName(col, r)
			_ = f.SetCellValue(sheet, cell, value)
		}

		set(1, row.Rank)
		set(2, row.Source)
		set(3, row.ContractName)
		set(4, row.LicenseCategory)
		set(5, row.ProjectDuration)
		set(6, row.WarrantyPeriod)
		set(7, row.ClientRating)
		set(8, row.ProjectSuccessRate)
		set(9, row.RejectionHistory)
		set(10, row.SafetyCert)
		set(11, row.BidAmount)
		set(12, row.CompositeScore)
		set(13, row.ComprehensiveScore)
		set(14, row.WinProbability)
		set(15, boolLabel(row.PredictedWinner))
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return f.SaveAs(outputPath)
}

func boolLabel(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
