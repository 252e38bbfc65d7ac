package reports

import (
	"fmt"
	"io"

	"github.com/Govind-619/BuyMeAChai/models"
	"github.com/Govind-619/BuyMeAChai/utils"
	"github.com/jung-kurt/gofpdf"
)

// WriteReceiptPDF renders a one-page receipt for a contribution
func WriteReceiptPDF(w io.Writer, c models.Contribution, currency string, unitPrice int64) error {
	pdf := gofpdf.New("P", "mm", "A5", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(0, 10, tr(utils.AppName))
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 11)
	pdf.Cell(0, 6, "Payment Receipt")
	pdf.Ln(12)

	rows := [][2]string{
		{"Receipt No.", fmt.Sprintf("CHAI-%06d", c.ID)},
		{"Date", c.CreatedAt.UTC().Format("2006-01-02 15:04 MST")},
		{"Name", tr(c.Name)},
		{"Amount", fmt.Sprintf("%s %d", currency, c.Amount)},
		{"Order ID", c.OrderID},
		{"Payment ID", c.PaymentID},
	}
	if unitPrice > 0 && c.Amount%unitPrice == 0 {
		rows = append(rows, [2]string{"Chai", fmt.Sprintf("%d", c.Amount/unitPrice)})
	}

	for i, r := range rows {
		fill := i%2 == 0
		pdf.SetFillColor(255, 243, 224)
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(40, 8, r[0], "1", 0, "L", fill, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(0, 8, r[1], "1", 0, "L", fill, 0, "")
		pdf.Ln(-1)
	}

	pdf.Ln(6)
	pdf.SetFont("Arial", "B", 11)
	pdf.Cell(0, 6, "Message")
	pdf.Ln(7)
	pdf.SetFont("Arial", "I", 10)
	pdf.MultiCell(0, 5, tr(c.Message), "", "L", false)

	pdf.Ln(8)
	pdf.SetFont("Arial", "", 9)
	pdf.Cell(0, 5, "Thank you for the chai!")

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to render receipt: %w", err)
	}
	return nil
}
