package services

import (
	"fmt"

	"advocate_desk_go/authz"
	"advocate_desk_go/errs"
	"advocate_desk_go/models"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// BuildCaseBook exports the advocate's full case list as an XLSX workbook.
// Advocate-only: the export crosses clients and payments, which no other
// role may see together.
func BuildCaseBook(db *gorm.DB, actor *authz.Actor) (*excelize.File, error) {
	if !actor.IsAdvocate() {
		return nil, errs.ErrForbidden
	}

	var cases []models.Case
	err := db.Preload("Client").Where("advocate_id = ?", actor.ID).
		Order("created_at").Find(&cases).Error
	if err != nil {
		return nil, errs.Dependency("list cases for export", err)
	}

	f := excelize.NewFile()
	const sheet = "Cases"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Case", "Number", "Court", "Client", "Status", "Next Hearing", "Opened"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}
	headerStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	f.SetCellStyle(sheet, "A1", "G1", headerStyle)
	f.SetColWidth(sheet, "A", "A", 40)
	f.SetColWidth(sheet, "B", "G", 18)

	for i, c := range cases {
		row := i + 2
		clientName := ""
		if c.Client != nil {
			clientName = c.Client.FullName
		}
		hearing := ""
		if c.NextHearingDate != nil {
			hearing = c.NextHearingDate.Format("2006-01-02")
		}
		values := []interface{}{
			c.Title,
			deref(c.CaseNumber),
			deref(c.Court),
			clientName,
			c.Status,
			hearing,
			c.CreatedAt.Format("2006-01-02"),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			f.SetCellValue(sheet, cell, v)
		}
	}

	return f, nil
}

// CaseBookFilename returns the attachment name for the export.
func CaseBookFilename(actor *authz.Actor) string {
	short := actor.ID
	if len(short) > 8 {
		short = short[:8]
	}
	return fmt.Sprintf("cases_%s.xlsx", short)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
