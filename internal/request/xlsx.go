package request

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// WriteXLSX отрисовывает TableDocument в Excel-файл: заголовок, блок
// информации, таблицу позиций с рамками и итоговую строку.
func WriteXLSX(doc *TableDocument) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := doc.Sheet
	f.SetSheetName("Sheet1", sheet)

	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 16},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, err
	}
	sectionStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 12},
	})
	if err != nil {
		return nil, err
	}
	boldStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return nil, err
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"366092"}},
		Border:    border,
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, err
	}
	cellStyle, err := f.NewStyle(&excelize.Style{Border: border})
	if err != nil {
		return nil, err
	}
	cellRightStyle, err := f.NewStyle(&excelize.Style{
		Border:    border,
		Alignment: &excelize.Alignment{Horizontal: "right"},
	})
	if err != nil {
		return nil, err
	}
	cellCenterStyle, err := f.NewStyle(&excelize.Style{
		Border:    border,
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, err
	}
	totalStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Border: border,
	})
	if err != nil {
		return nil, err
	}

	row := 1

	// Заголовок документа на всю ширину таблицы
	if doc.Title != "" {
		lastCol, err := excelize.ColumnNumberToName(len(doc.Columns))
		if err != nil {
			return nil, err
		}
		if err := f.MergeCell(sheet, "A1", lastCol+"1"); err != nil {
			return nil, err
		}
		f.SetCellValue(sheet, "A1", doc.Title)
		f.SetCellStyle(sheet, "A1", "A1", titleStyle)
		row = 3
	}

	// Блок информации
	if len(doc.Header) > 0 {
		if doc.InfoLabel != "" {
			f.SetCellValue(sheet, fmt.Sprintf("A%d", row), doc.InfoLabel)
			f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), sectionStyle)
			row++
		}
		for _, kv := range doc.Header {
			f.SetCellValue(sheet, fmt.Sprintf("A%d", row), kv.Label)
			f.SetCellValue(sheet, fmt.Sprintf("B%d", row), kv.Value)
			f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), boldStyle)
			row++
		}
		row += 2
	}

	if doc.TableLabel != "" {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), doc.TableLabel)
		f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), sectionStyle)
		row++
	}

	// Шапка таблицы
	for i, name := range doc.Columns {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return nil, err
		}
		f.SetCellValue(sheet, cell, name)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}
	row++

	// Строки позиций: цена и сумма вправо, количество и процент по центру
	for _, dataRow := range doc.Rows {
		for i, value := range dataRow {
			cell, err := excelize.CoordinatesToCellName(i+1, row)
			if err != nil {
				return nil, err
			}
			f.SetCellValue(sheet, cell, value)
			switch i {
			case 2, 3:
				f.SetCellStyle(sheet, cell, cell, cellRightStyle)
			case 1, 4:
				f.SetCellStyle(sheet, cell, cell, cellCenterStyle)
			default:
				f.SetCellStyle(sheet, cell, cell, cellStyle)
			}
		}
		row++
	}

	// Итоговая строка
	for i, value := range doc.Totals {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return nil, err
		}
		if value != "" {
			f.SetCellValue(sheet, cell, value)
		}
		f.SetCellStyle(sheet, cell, cell, totalStyle)
	}

	// Ширина колонок по содержимому
	widths := make([]int, len(doc.Columns))
	for i, name := range doc.Columns {
		widths[i] = len([]rune(name))
	}
	for _, dataRow := range doc.Rows {
		for i, value := range dataRow {
			if n := len([]rune(value)); n > widths[i] {
				widths[i] = n
			}
		}
	}
	for i, w := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if w > 28 {
			w = 28
		}
		f.SetColWidth(sheet, col, col, float64(w+2))
	}

	return f, nil
}
