package xlsexport

import "github.com/xuri/excelize/v2"

const (
	fontFamily  = "Times New Roman"
	columnWidth = 25
)

type cellStyle struct {
	bold       bool
	size       float64
	horizontal string
	vertical   string
}

var (
	titleStyle  = cellStyle{bold: true, size: 14}
	headerStyle = cellStyle{bold: true, size: 11, horizontal: "center"}
	dataStyle   = cellStyle{size: 11, horizontal: "left", vertical: "center"}
)

func writeColumn(f *excelize.File, sheet string, col, row int, value interface{}) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return f.SetCellValue(sheet, cell, value)
}

// applyStyle стиль на прямоугольный диапазон ячеек
func applyStyle(f *excelize.File, sheet string, s cellStyle, colFrom, rowFrom, colTo, rowTo int) error {
	style := &excelize.Style{
		Font: &excelize.Font{
			Bold:   s.bold,
			Family: fontFamily,
			Size:   s.size,
		},
	}
	if s.horizontal != "" || s.vertical != "" {
		style.Alignment = &excelize.Alignment{
			Horizontal: s.horizontal,
			Vertical:   s.vertical,
		}
	}
	id, err := f.NewStyle(style)
	if err != nil {
		return err
	}
	cellFirst, err := excelize.CoordinatesToCellName(colFrom, rowFrom)
	if err != nil {
		return err
	}
	cellLast, err := excelize.CoordinatesToCellName(colTo, rowTo)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, cellFirst, cellLast, id)
}

func writeHeader(f *excelize.File, sheet string, row int, headers []string) (int, error) {
	row++
	if err := applyStyle(f, sheet, headerStyle, 1, row, len(headers), row); err != nil {
		return row, err
	}
	lastCol, err := excelize.ColumnNumberToName(len(headers))
	if err != nil {
		return row, err
	}
	if err = f.SetColWidth(sheet, "A", lastCol, columnWidth); err != nil {
		return row, err
	}
	for idx, value := range headers {
		if err = writeColumn(f, sheet, idx+1, row, value); err != nil {
			return row, err
		}
	}
	return row, nil
}

func applyDataCellStyle(f *excelize.File, sheet string, colFrom, rowFrom, colTo, rowTo int) error {
	return applyStyle(f, sheet, dataStyle, colFrom, rowFrom, colTo, rowTo)
}

// writeTitle название процесса в первой строке листа
func writeTitle(f *excelize.File, sheet string, row int, title string) (int, error) {
	row++
	if err := applyStyle(f, sheet, titleStyle, 1, row, 1, row); err != nil {
		return row, err
	}
	return row, writeColumn(f, sheet, 1, row, title)
}
