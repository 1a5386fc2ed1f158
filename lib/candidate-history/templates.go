package candidatehistoryhandler

import (
	"fmt"

	"hr-pipeline-backend/models"
	dbmodels "hr-pipeline-backend/models/db"
)

func GetStageChange(fromStage, toStage string) dbmodels.CandidateChanges {
	return dbmodels.CandidateChanges{
		Description: fmt.Sprintf("Перевод на этап %v", toStage),
		Data: []dbmodels.CandidateChange{
			{
				Field:    "stage",
				OldValue: fromStage,
				NewValue: toStage,
			},
		},
	}
}

func GetStatusChange(oldStatus, newStatus models.CandidateStatus) dbmodels.CandidateChanges {
	return dbmodels.CandidateChanges{
		Description: fmt.Sprintf("Статус изменен на \"%v\"", newStatus.ToHuman()),
		Data: []dbmodels.CandidateChange{
			{
				Field:    "status",
				OldValue: oldStatus,
				NewValue: newStatus,
			},
		},
	}
}

func GetEnrollChange(stageName string) dbmodels.CandidateChanges {
	return dbmodels.CandidateChanges{
		Description: fmt.Sprintf("Кандидат добавлен в процесс подбора на этап %v", stageName),
		Data:        []dbmodels.CandidateChange{},
	}
}
