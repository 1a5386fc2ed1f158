package xlsexport

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
	boardapimodels "hr-pipeline-backend/models/api/board"
)

type Provider interface {
	ExportBoard(board boardapimodels.BoardView) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

const (
	boardSheet = "Доска подбора"
	stageSheet = "Этапы"
)

var boardHeaders = []string{"Этап", "ФИО", "Контакты", "Желаемая должность", "Навыки", "Статус", "Время на этапе", "Последнее изменение"}

var stageHeaders = []string{"№", "Этап", "Тип этапа", "Ответственный", "Обязательный", "Кол-во кандидатов"}

func (i impl) ExportBoard(board boardapimodels.BoardView) (*bytes.Buffer, error) {
	if board.Process == nil {
		return nil, errors.New("не выбран процесс подбора")
	}
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("ошибка закрытия файла")
		}
	}()
	sheet := "Sheet1"
	row, err := writeTitle(f, sheet, 0, fmt.Sprintf("%v (%v)", board.Process.Title, board.Process.TargetRole))
	if err != nil {
		return nil, errors.Wrap(err, "ошибка формирования заголовка в xlsx")
	}
	row, err = writeHeader(f, sheet, row, boardHeaders)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка формирования заголовка в xlsx")
	}
	if len(board.Columns) != 0 {
		_, err = writeBoardData(f, sheet, board.Columns, row)
		if err != nil {
			return nil, errors.Wrap(err, "ошибка формирования таблицы с данными в xlsx")
		}
	}
	if err = f.SetSheetName(sheet, boardSheet); err != nil {
		return nil, errors.Wrap(err, "ошибка переименования листа xlsx")
	}

	if _, err = f.NewSheet(stageSheet); err != nil {
		return nil, errors.Wrap(err, "ошибка создания листа xlsx")
	}
	row, err = writeHeader(f, stageSheet, 0, stageHeaders)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка формирования заголовка в xlsx")
	}
	if len(board.Columns) != 0 {
		if _, err = writeStageData(f, stageSheet, board.Columns, row); err != nil {
			return nil, errors.Wrap(err, "ошибка формирования таблицы этапов в xlsx")
		}
	}
	return f.WriteToBuffer()
}

func writeBoardData(f *excelize.File, sheet string, columns []boardapimodels.ColumnView, row int) (int, error) {
	rowCount := 0
	for _, column := range columns {
		if len(column.Cards) == 0 {
			rowCount++
		}
		rowCount += len(column.Cards)
	}
	if err := applyDataCellStyle(f, sheet, 1, row+1, len(boardHeaders), row+rowCount); err != nil {
		return row, err
	}
	for _, column := range columns {
		if len(column.Cards) == 0 {
			row++
			if err := writeColumn(f, sheet, 1, row, column.Name); err != nil {
				return row, err
			}
			if err := writeColumn(f, sheet, 2, row, column.Placeholder); err != nil {
				return row, err
			}
			continue
		}
		for _, card := range column.Cards {
			row++
			values := []interface{}{
				column.Name,
				card.FIO,
				strings.TrimSpace(fmt.Sprintf("%v\r%v", card.Phone, card.Email)),
				card.DesiredRole,
				strings.Join(card.Skills, ", "),
				card.StatusName,
				card.StageTime,
				card.UpdatedAt,
			}
			for k, value := range values {
				if err := writeColumn(f, sheet, k+1, row, value); err != nil {
					return row, err
				}
			}
		}
	}
	return row, nil
}

func writeStageData(f *excelize.File, sheet string, columns []boardapimodels.ColumnView, row int) (int, error) {
	if err := applyDataCellStyle(f, sheet, 1, row+1, len(stageHeaders), row+len(columns)); err != nil {
		return row, err
	}
	for _, column := range columns {
		row++
		mandatory := "Нет"
		if column.Mandatory {
			mandatory = "Да"
		}
		values := []interface{}{
			column.Rank,
			column.Name,
			column.Category.ToHuman(),
			column.Responsible,
			mandatory,
			len(column.Cards),
		}
		for k, value := range values {
			if err := writeColumn(f, sheet, k+1, row, value); err != nil {
				return row, err
			}
		}
	}
	return row, nil
}
