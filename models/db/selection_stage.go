package dbmodels

import "hr-pipeline-backend/models"

type SelectionStage struct {
	BaseModel
	ProcessID       string `gorm:"type:varchar(36);index"`
	StageOrder      int    // ранг этапа внутри процесса, 1..N без пропусков
	Name            string `gorm:"type:varchar(255)"`
	Description     string
	Category        models.StageCategory `gorm:"type:varchar(50)"`
	ResponsibleName string               `gorm:"type:varchar(255)"`
	DurationDays    int                  // ожидаемая длительность этапа
	Mandatory       bool                 // обязательный этап нельзя удалить
}

const (
	ScreenStage           string = "Скрининг"
	HrInterviewStage      string = "Интервью с HR"
	TechInterviewStage    string = "Техническое интервью"
	TestStage             string = "Тестирование"
	ExerciseStage         string = "Практическое задание"
	ManagerInterviewStage string = "Интервью с руководителем"
	OfferStage            string = "Оффер"
)
