package dbmodels

import (
	"database/sql/driver"
	"encoding/json"

	"github.com/pkg/errors"
)

type CandidateHistory struct {
	BaseModel
	AssociationID string `gorm:"type:varchar(36);index"`
	CandidateID   string `gorm:"type:varchar(36)"`
	ProcessID     string `gorm:"type:varchar(36)"`
	UserID        *string
	UserName      string
	ActionType    ActionType       `gorm:"type:varchar(255)"`
	Changes       CandidateChanges `gorm:"type:jsonb"`
}

func (j CandidateChanges) Value() (driver.Value, error) {
	valueString, err := json.Marshal(j)
	return string(valueString), err
}

func (j *CandidateChanges) Scan(value interface{}) error {
	data, ok := value.([]byte)
	if !ok {
		return errors.New("неподдерживаемый тип значения")
	}
	return json.Unmarshal(data, &j)
}

type CandidateChanges struct {
	Description string            `json:"description"` // Комментарий
	Data        []CandidateChange `json:"data"`        // Список изменений
}

type CandidateChange struct {
	Field    string      `json:"field"`     // Измененное поле
	OldValue interface{} `json:"old_value"` // Старое значение
	NewValue interface{} `json:"new_value"` // Новое значение
}

type ActionType string

const (
	HistoryTypeEnroll       ActionType = "enroll"        // Кандидат добавлен в процесс
	HistoryTypeStageChange  ActionType = "stage_change"  // Кандидат переведен на другой этап
	HistoryTypeStatusChange ActionType = "status_change" // Изменен статус кандидата
)
