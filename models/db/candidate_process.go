package dbmodels

import (
	"time"

	"hr-pipeline-backend/models"
)

// CandidateProcess участие кандидата в процессе подбора: текущий этап и статус
type CandidateProcess struct {
	BaseModel
	CandidateID      string                 `gorm:"type:varchar(36);index"`
	ProcessID        string                 `gorm:"type:varchar(36);index"`
	SelectionStageID string                 `gorm:"type:varchar(36)"`
	Status           models.CandidateStatus `gorm:"type:varchar(50)"`
	StageChangedAt   time.Time
}
