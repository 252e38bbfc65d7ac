// Package reports renders contributions as downloadable documents.
package reports

import (
	"fmt"
	"io"
	"time"

	"github.com/Govind-619/BuyMeAChai/models"
	"github.com/Govind-619/BuyMeAChai/utils"
	"github.com/tealeg/xlsx"
)

// ExportHeaders are the column titles of the contributions sheet
var ExportHeaders = []string{"ID", "Created At", "User ID", "Name", "Message", "Amount", "Order ID", "Payment ID"}

// WriteContributionsXLSX writes contributions as a single-sheet workbook
// followed by a short summary
func WriteContributionsXLSX(w io.Writer, contributions []models.Contribution, currency string, generated time.Time) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Contributions")
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	bold := xlsx.NewStyle()
	font := xlsx.DefaultFont()
	font.Bold = true
	bold.Font = *font
	bold.ApplyFont = true

	titleRow := sheet.AddRow()
	titleRow.AddCell().SetString(utils.AppName + " - Contributions")
	titleRow.Cells[0].SetStyle(bold)
	sheet.AddRow().AddCell().SetString("Generated: " + generated.UTC().Format("2006-01-02 15:04 MST"))
	sheet.AddRow() // spacing

	headerRow := sheet.AddRow()
	for _, h := range ExportHeaders {
		cell := headerRow.AddCell()
		cell.SetString(h)
		cell.SetStyle(bold)
	}

	var total int64
	supporters := make(map[string]struct{})
	for _, c := range contributions {
		row := sheet.AddRow()
		row.AddCell().SetInt64(int64(c.ID))
		row.AddCell().SetString(c.CreatedAt.UTC().Format("2006-01-02 15:04:05"))
		row.AddCell().SetString(c.UserID)
		row.AddCell().SetString(c.Name)
		row.AddCell().SetString(c.Message)
		row.AddCell().SetInt64(c.Amount)
		row.AddCell().SetString(c.OrderID)
		row.AddCell().SetString(c.PaymentID)

		total += c.Amount
		supporters[c.UserID] = struct{}{}
	}

	sheet.AddRow() // spacing
	summaryRow := sheet.AddRow()
	summaryRow.AddCell().SetString("Summary")
	summaryRow.Cells[0].SetStyle(bold)
	summaryData := [][]string{
		{"Contributions", fmt.Sprintf("%d", len(contributions))},
		{"Supporters", fmt.Sprintf("%d", len(supporters))},
		{"Total (" + currency + ")", fmt.Sprintf("%d", total)},
	}
	for _, data := range summaryData {
		row := sheet.AddRow()
		row.AddCell().SetString(data[0])
		row.AddCell().SetString(data[1])
	}

	if err := file.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
