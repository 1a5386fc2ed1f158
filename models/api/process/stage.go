package processapimodels

import (
	"github.com/pkg/errors"
	"hr-pipeline-backend/models"
	apimodels "hr-pipeline-backend/models/api"
	dbmodels "hr-pipeline-backend/models/db"
)

var stageFieldNames = map[string]string{
	"Name":         "название этапа",
	"DurationDays": "длительность этапа",
}

type StageData struct {
	Name            string               `json:"name" validate:"required,max=255"` // Название этапа
	Description     string               `json:"description"`                      // Описание
	Category        models.StageCategory `json:"category"`                         // Тип этапа
	ResponsibleName string               `json:"responsible_name"`                 // Ответственный
	DurationDays    int                  `json:"duration_days" validate:"gte=0"`   // Длительность, дней
	Mandatory       bool                 `json:"mandatory"`                        // Обязательный этап
}

func (s StageData) Validate() error {
	if err := apimodels.ValidateStruct(s, stageFieldNames); err != nil {
		return err
	}
	if s.Category != "" && !s.Category.IsValid() {
		return errors.New("неизвестный тип этапа подбора")
	}
	return nil
}

func (s StageData) ToDB() dbmodels.SelectionStage {
	category := s.Category
	if category == "" {
		category = models.StageCategoryInterview
	}
	return dbmodels.SelectionStage{
		Name:            s.Name,
		Description:     s.Description,
		Category:        category,
		ResponsibleName: s.ResponsibleName,
		DurationDays:    s.DurationDays,
		Mandatory:       s.Mandatory,
	}
}

// StageAdd Rank 0 - добавить в конец
type StageAdd struct {
	StageData
	Rank int `json:"rank"` // Позиция нового этапа
}

type StageView struct {
	StageData
	ID           string `json:"id"`            // Идентификатор этапа
	StageOrder   int    `json:"stage_order"`   // Порядковый номер этапа
	CategoryName string `json:"category_name"` // Тип этапа (текст)
	CanDelete    bool   `json:"can_delete"`    // Возможность удаления этапа
	CandidateQty int    `json:"candidate_qty"` // Кол-во кандидатов на этапе
}

type StageOrderData struct {
	ID       string `json:"id"`        // Идентификатор этапа
	NewOrder int    `json:"new_order"` // Новый порядковый номер
}

func (d StageOrderData) Validate() error {
	if d.ID == "" {
		return errors.New("не указан идентификатор этапа")
	}
	if d.NewOrder <= 0 {
		return errors.New("некорректный порядковый номер этапа")
	}
	return nil
}

func StageConvert(rec dbmodels.SelectionStage) StageView {
	return StageView{
		StageData: StageData{
			Name:            rec.Name,
			Description:     rec.Description,
			Category:        rec.Category,
			ResponsibleName: rec.ResponsibleName,
			DurationDays:    rec.DurationDays,
			Mandatory:       rec.Mandatory,
		},
		ID:           rec.ID,
		StageOrder:   rec.StageOrder,
		CategoryName: rec.Category.ToHuman(),
		CanDelete:    !rec.Mandatory,
	}
}

type TemplateView struct {
	Code   models.TemplateCategory `json:"code"`   // Код шаблона
	Name   string                  `json:"name"`   // Название
	Stages []StageData             `json:"stages"` // Этапы шаблона
}
