package pdfexport

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	boardapimodels "hr-pipeline-backend/models/api/board"
)

const (
	utf8Font  = "Arial"
	coreFont  = "Helvetica"
	lineHt    = 7.0
	pageWidth = 277.0 // A4 альбомная без полей
)

var cardHeaders = []string{"ФИО", "Статус", "Время на этапе", "Контакты", "Навыки"}

var cardWidths = []float64{70, 35, 35, 70, 67}

// GenerateBoard fontDir - каталог с Arial.ttf и "Arial Bold.ttf",
// без него используется встроенный шрифт, кириллица при этом не отображается
func GenerateBoard(board boardapimodels.BoardView, fontDir string) (pdfFile []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("GenerateBoard panic recover: %v", r)
		}
	}()
	if board.Process == nil {
		return nil, errors.New("не выбран процесс подбора")
	}
	pdf := fpdf.New("L", "mm", "A4", fontDir)
	family, tr := setupFont(pdf, fontDir)
	if pdf.Error() != nil {
		return nil, pdf.Error()
	}
	pdf.SetTitle(tr(board.Process.Title), fontDir != "")
	pdf.AddPage()

	pdf.SetFont(family, "B", 14)
	pdf.CellFormat(pageWidth, lineHt+2, tr(fmt.Sprintf("%v (%v)", board.Process.Title, board.Process.TargetRole)), "", 1, "L", false, 0, "")
	pdf.SetFont(family, "", 10)
	if board.Process.Department != "" {
		pdf.CellFormat(pageWidth, lineHt, tr(board.Process.Department), "", 1, "L", false, 0, "")
	}
	pdf.Ln(2)

	for _, column := range board.Columns {
		pdf.SetFont(family, "B", 11)
		pdf.SetFillColor(230, 230, 230)
		title := fmt.Sprintf("%d. %v (%d)", column.Rank, column.Name, len(column.Cards))
		pdf.CellFormat(pageWidth, lineHt, tr(title), "1", 1, "L", true, 0, "")
		pdf.SetFont(family, "", 9)
		if len(column.Cards) == 0 {
			pdf.CellFormat(pageWidth, lineHt, tr(column.Placeholder), "1", 1, "C", false, 0, "")
			continue
		}
		for k, header := range cardHeaders {
			pdf.CellFormat(cardWidths[k], lineHt, tr(header), "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
		for _, card := range column.Cards {
			values := []string{
				card.FIO,
				card.StatusName,
				card.StageTime,
				strings.TrimSpace(fmt.Sprintf("%v %v", card.Phone, card.Email)),
				strings.Join(card.Skills, ", "),
			}
			for k, value := range values {
				pdf.CellFormat(cardWidths[k], lineHt, tr(fitText(pdf, value, cardWidths[k])), "1", 0, "L", false, 0, "")
			}
			pdf.Ln(-1)
		}
		pdf.Ln(2)
	}
	if pdf.Error() != nil {
		return nil, pdf.Error()
	}

	buf := new(bytes.Buffer)
	err = pdf.Output(buf)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func setupFont(pdf *fpdf.Fpdf, fontDir string) (family string, tr func(string) string) {
	if fontDir != "" {
		pdf.AddUTF8Font(utf8Font, "", "Arial.ttf")
		pdf.AddUTF8Font(utf8Font, "B", "Arial Bold.ttf")
		return utf8Font, func(s string) string { return s }
	}
	log.Warn("не задан каталог шрифтов для pdf, используется встроенный шрифт")
	return coreFont, pdf.UnicodeTranslatorFromDescriptor("")
}

// fitText обрезает строку по ширине ячейки
func fitText(pdf *fpdf.Fpdf, value string, width float64) string {
	maxWidth := width - 2
	if pdf.GetStringWidth(value) <= maxWidth {
		return value
	}
	runes := []rune(value)
	for len(runes) > 0 && pdf.GetStringWidth(string(runes)+"...") > maxWidth {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}
