package dbmodels

import "hr-pipeline-backend/models"

type SelectionProcess struct {
	BaseModel
	Title           string                  `gorm:"type:varchar(255)"`
	Department      string                  `gorm:"type:varchar(255)"`
	TargetRole      string                  `gorm:"type:varchar(255)"`
	OpenedPositions int                     // вакантных мест
	Status          models.ProcessStatus    `gorm:"type:varchar(50);index"`
	ResponsibleID   string                  `gorm:"type:varchar(36)"`
	ResponsibleName string                  `gorm:"type:varchar(255)"`
	TemplateCode    models.TemplateCategory `gorm:"type:varchar(50)"` // шаблон, из которого скопированы этапы
	Stages          []SelectionStage        `gorm:"foreignKey:ProcessID"`
}
