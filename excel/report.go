// Package excel renders a workbook summarising an export run.
package excel

import (
	"github.com/xuri/excelize/v2"
	"kastelo.dev/roster"
)

const (
	ExportedSheet = "Exported"
	SkippedSheet  = "Skipped"
)

// ReportXLSX returns a workbook listing the exported statements and the
// skipped rows together with the reason each was skipped.
func ReportXLSX(stmts []roster.Statement, skipped []*roster.RowError) ([]byte, error) {
	xlsx := excelize.NewFile()

	_ = xlsx.SetAppProps(&excelize.AppProperties{
		Application: "kastelo.dev/roster",
		Company:     "Kastelo AB",
		DocSecurity: 2,
	})

	sheet := xlsx.GetSheetName(xlsx.GetActiveSheetIndex())
	if err := xlsx.SetSheetName(sheet, ExportedSheet); err != nil {
		return nil, err
	}
	writeExported(xlsx, ExportedSheet, stmts)

	if _, err := xlsx.NewSheet(SkippedSheet); err != nil {
		return nil, err
	}
	writeSkipped(xlsx, SkippedSheet, skipped)

	xlsx.SetActiveSheet(0)

	buf, err := xlsx.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeExported(xlsx *excelize.File, sheet string, stmts []roster.Statement) {
	_ = xlsx.SetColWidth(sheet, "A", "A", 8)
	_ = xlsx.SetColWidth(sheet, "B", "B", 160)

	xlsxHeader(xlsx, sheet, "Row", "Statement")

	row := 2
	for _, stmt := range stmts {
		_ = xlsx.SetCellInt(sheet, cell('A', row), stmt.Row)
		_ = xlsx.SetCellStr(sheet, cell('B', row), stmt.SQL)
		row++
	}

	if row > 2 {
		style, _ := xlsx.NewStyle(mergeStyles(defaultStyle(), fontMono()))
		_ = xlsx.SetCellStyle(sheet, cell('B', 2), cell('B', row-1), style)
	}
}

func writeSkipped(xlsx *excelize.File, sheet string, skipped []*roster.RowError) {
	_ = xlsx.SetColWidth(sheet, "A", "A", 8)
	_ = xlsx.SetColWidth(sheet, "B", "B", 20)
	_ = xlsx.SetColWidth(sheet, "C", "C", 60)

	xlsxHeader(xlsx, sheet, "Row", "Column", "Reason")

	row := 2
	for _, rerr := range skipped {
		_ = xlsx.SetCellInt(sheet, cell('A', row), rerr.Row)
		_ = xlsx.SetCellStr(sheet, cell('B', row), rerr.Column)
		_ = xlsx.SetCellStr(sheet, cell('C', row), rerr.Err.Error())
		row++
	}

	if row > 2 {
		style, _ := xlsx.NewStyle(mergeStyles(defaultStyle(), highlight()))
		_ = xlsx.SetCellStyle(sheet, cell('A', 2), cell('C', row-1), style)
	}
}

func xlsxHeader(xlsx *excelize.File, sheet string, titles ...string) {
	for i, title := range titles {
		_ = xlsx.SetCellStr(sheet, cell('A'+rune(i), 1), title)
	}

	style, _ := xlsx.NewStyle(mergeStyles(defaultStyle(), fontBold(), thinBorder("bottom"), textAlignment("left")))
	_ = xlsx.SetCellStyle(sheet, cell('A', 1), cell('A'+rune(len(titles)-1), 1), style)

	_ = xlsx.SetPanes(sheet, &excelize.Panes{
		ActivePane:  "bottomLeft",
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
	})
}
