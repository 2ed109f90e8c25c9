package export

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/noah-isme/sma-timetable-engine/internal/models"
)

var pdfHeaders = []string{"Day", "Slot", "Requirement", "Teacher", "Classroom"}

// RenderTimetablePDF creates a tabular PDF of the schedule with a title and
// run summary header.
func RenderTimetablePDF(result *models.ScheduleResult, title string) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("pdf requires a schedule result")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	pdf.AddPage()

	if title != "" {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, strings.ToUpper(title), "", 1, "C", false, 0, "")
	}
	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(0, 6, summaryLine(result), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 10)
	colWidth := 190.0 / float64(len(pdfHeaders))
	for _, header := range pdfHeaders {
		pdf.CellFormat(colWidth, 8, header, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, a := range result.Assignments {
		pdf.CellFormat(colWidth, 7, a.Day.String(), "1", 0, "", false, 0, "")
		pdf.CellFormat(colWidth, 7, strconv.Itoa(a.Slot), "1", 0, "", false, 0, "")
		pdf.CellFormat(colWidth, 7, a.RequirementID, "1", 0, "", false, 0, "")
		pdf.CellFormat(colWidth, 7, a.TeacherID, "1", 0, "", false, 0, "")
		pdf.CellFormat(colWidth, 7, a.ClassroomID, "1", 0, "", false, 0, "")
		pdf.Ln(-1)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render timetable pdf: %w", err)
	}
	return buf.Bytes(), nil
}
