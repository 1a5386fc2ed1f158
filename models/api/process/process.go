package processapimodels

import (
	"github.com/pkg/errors"
	"hr-pipeline-backend/models"
	apimodels "hr-pipeline-backend/models/api"
	dbmodels "hr-pipeline-backend/models/db"
)

var processFieldNames = map[string]string{
	"Title":           "название процесса",
	"Department":      "подразделение",
	"TargetRole":      "должность",
	"OpenedPositions": "кол-во вакантных мест",
}

type ProcessData struct {
	Title           string `json:"title" validate:"required,max=255"`       // Название процесса подбора
	Department      string `json:"department" validate:"max=255"`           // Подразделение
	TargetRole      string `json:"target_role" validate:"required,max=255"` // Должность
	OpenedPositions int    `json:"opened_positions" validate:"gte=0"`       // Кол-во вакантных мест
	ResponsibleName string `json:"responsible_name"`                        // Ответственный
}

func (p ProcessData) Validate() error {
	return apimodels.ValidateStruct(p, processFieldNames)
}

// ProcessCreate этапы берутся из шаблона, если указан TemplateCode, иначе из Stages
type ProcessCreate struct {
	ProcessData
	TemplateCode models.TemplateCategory `json:"template_code"` // Шаблон этапов
	Stages       []StageData             `json:"stages"`        // Этапы при создании с нуля
}

func (p ProcessCreate) Validate() error {
	if err := p.ProcessData.Validate(); err != nil {
		return err
	}
	if p.TemplateCode != "" {
		if !p.TemplateCode.IsValid() {
			return errors.New("неизвестный шаблон этапов подбора")
		}
		if len(p.Stages) != 0 {
			return errors.New("этапы указываются либо шаблоном, либо списком")
		}
		return nil
	}
	for _, stage := range p.Stages {
		if err := stage.Validate(); err != nil {
			return err
		}
	}
	return nil
}

type ProcessFilter struct {
	apimodels.Pagination
	Search   string                 `json:"search"`   // Поиск по названию, подразделению, должности
	Statuses []models.ProcessStatus `json:"statuses"` // Статусы процесса
}

type StatusChangeRequest struct {
	Status models.ProcessStatus `json:"status"` // Новый статус процесса
}

func (r StatusChangeRequest) Validate() error {
	if !r.Status.IsValid() {
		return errors.New("неизвестный статус процесса подбора")
	}
	return nil
}

type ProcessView struct {
	ProcessData
	ID            string                  `json:"id"`             // Идентификатор процесса
	Status        models.ProcessStatus    `json:"status"`         // Статус
	StatusName    string                  `json:"status_name"`    // Статус (текст)
	TemplateCode  models.TemplateCategory `json:"template_code"`  // Шаблон этапов
	Stages        []StageView             `json:"stages"`         // Этапы в порядке ранга
	CandidateQty  int                     `json:"candidate_qty"`  // Кол-во кандидатов в процессе
	CreationDate  string                  `json:"creation_date"`  // Дата создания
	ResponsibleID string                  `json:"responsible_id"` // Идентификатор ответственного
}

// ProcessConvert totals - кол-во кандидатов по идентификатору этапа
func ProcessConvert(rec dbmodels.SelectionProcess, totals map[string]int) ProcessView {
	result := ProcessView{
		ProcessData: ProcessData{
			Title:           rec.Title,
			Department:      rec.Department,
			TargetRole:      rec.TargetRole,
			OpenedPositions: rec.OpenedPositions,
			ResponsibleName: rec.ResponsibleName,
		},
		ID:            rec.ID,
		Status:        rec.Status,
		StatusName:    rec.Status.ToHuman(),
		TemplateCode:  rec.TemplateCode,
		Stages:        make([]StageView, 0, len(rec.Stages)),
		CreationDate:  rec.CreatedAt.Format("02.01.2006"),
		ResponsibleID: rec.ResponsibleID,
	}
	for _, stage := range rec.Stages {
		view := StageConvert(stage)
		view.CandidateQty = totals[stage.ID]
		result.CandidateQty += view.CandidateQty
		result.Stages = append(result.Stages, view)
	}
	return result
}
