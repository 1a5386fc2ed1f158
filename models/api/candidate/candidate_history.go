package candidateapimodels

import (
	apimodels "hr-pipeline-backend/models/api"
	dbmodels "hr-pipeline-backend/models/db"
)

type HistoryFilter struct {
	apimodels.Pagination
	ActionType dbmodels.ActionType `json:"action_type"` // Только указанный тип действия
}

type HistoryView struct {
	ProcessID  string                    `json:"process_id"`  // Идентификатор процесса подбора
	UserID     string                    `json:"user_id"`     // Идентификатор сотрудника
	UserName   string                    `json:"user_name"`   // Имя сотрудника
	ActionType dbmodels.ActionType       `json:"action_type"` // Тип действия
	Changes    dbmodels.CandidateChanges `json:"changes"`     // Изменения
	Date       string                    `json:"date"`        // Дата действия
}

func HistoryConvert(rec dbmodels.CandidateHistory) HistoryView {
	result := HistoryView{
		ProcessID:  rec.ProcessID,
		UserName:   rec.UserName,
		ActionType: rec.ActionType,
		Changes:    rec.Changes,
		Date:       rec.CreatedAt.Format("02.01.2006 15:04"),
	}
	if rec.UserID != nil {
		result.UserID = *rec.UserID
	}
	return result
}
