package reports

import (
	"bytes"
	"testing"
	"time"

	"github.com/Govind-619/BuyMeAChai/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx"
)

func sampleContributions() []models.Contribution {
	created := time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)
	return []models.Contribution{
		{ID: 2, UserID: "u1", Name: "Asha", Message: "Chai on me", Amount: 60, OrderID: "order_2", PaymentID: "pay_2", CreatedAt: created},
		{ID: 1, UserID: "u1", Name: "Asha", Message: "First one", Amount: 30, OrderID: "order_1", PaymentID: "pay_1", CreatedAt: created.Add(-time.Hour)},
		{ID: 3, UserID: "u2", Name: "Ravi", Message: "Cheers", Amount: 90, OrderID: "order_3", PaymentID: "pay_3", CreatedAt: created.Add(time.Hour)},
	}
}

func TestWriteContributionsXLSX(t *testing.T) {
	var buf bytes.Buffer
	err := WriteContributionsXLSX(&buf, sampleContributions(), "INR", time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	file, err := xlsx.OpenBinary(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, file.Sheets, 1)
	rows := file.Sheets[0].Rows

	assert.Equal(t, "Buy Me a Chai - Contributions", rows[0].Cells[0].Value)

	headerAt := -1
	for i, row := range rows {
		if len(row.Cells) > 0 && row.Cells[0].Value == "ID" {
			headerAt = i
			break
		}
	}
	require.NotEqual(t, -1, headerAt, "header row not found")
	header := rows[headerAt]
	require.Len(t, header.Cells, len(ExportHeaders))
	for i, h := range ExportHeaders {
		assert.Equal(t, h, header.Cells[i].Value)
	}

	assert.Equal(t, "Asha", rows[headerAt+1].Cells[3].Value)
	assert.Equal(t, "60", rows[headerAt+1].Cells[5].Value)
	assert.Equal(t, "pay_3", rows[headerAt+3].Cells[7].Value)

	summary := rows[len(rows)-3:]
	assert.Equal(t, "3", summary[0].Cells[1].Value)
	assert.Equal(t, "2", summary[1].Cells[1].Value)
	assert.Equal(t, "Total (INR)", summary[2].Cells[0].Value)
	assert.Equal(t, "180", summary[2].Cells[1].Value)
}

func TestWriteReceiptPDF(t *testing.T) {
	var buf bytes.Buffer
	c := sampleContributions()[0]
	c.Message = "Ek cutting chai, please!\nWith a second line."

	require.NoError(t, WriteReceiptPDF(&buf, c, "INR", 30))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}
