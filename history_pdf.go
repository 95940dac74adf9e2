package main

import (
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/otterlog/daypulse/pkg/models"
)

// writeHistoryPDF renders the filtered interaction list as a simple table,
// one interaction per row, newest first.
func writeHistoryPDF(w io.Writer, items []models.Interaction) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("DayPulse interaction history", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Interaction history")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 9)
	pdf.Cell(0, 6, fmt.Sprintf("Exported %s · %d interactions", time.Now().Format("2006-01-02 15:04"), len(items)))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(45, 7, "Task", "1", 0, "L", false, 0, "")
	pdf.CellFormat(30, 7, "Category", "1", 0, "L", false, 0, "")
	pdf.CellFormat(28, 7, "Date", "1", 0, "L", false, 0, "")
	pdf.CellFormat(27, 7, "Alert", "1", 0, "L", false, 0, "")
	pdf.CellFormat(35, 7, "Response", "1", 0, "L", false, 0, "")
	pdf.CellFormat(25, 7, "Times", "1", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for _, item := range items {
		date := ""
		if len(item.AlertStartedAt) >= 10 {
			date = item.AlertStartedAt[:10]
		}
		resp := item.ResponseType
		if resp == "" {
			resp = "none"
		}
		if item.ResponseStage != "" {
			resp += " (" + item.ResponseStage + ")"
		}

		pdf.CellFormat(45, 6, item.TaskName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 6, item.Category, "1", 0, "L", false, 0, "")
		pdf.CellFormat(28, 6, date, "1", 0, "L", false, 0, "")
		pdf.CellFormat(27, 6, item.AlertType, "1", 0, "L", false, 0, "")
		pdf.CellFormat(35, 6, resp, "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 6, interactionTimes(item), "1", 1, "L", false, 0, "")
	}

	return pdf.Output(w)
}
