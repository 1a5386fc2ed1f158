package db

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	dbmodels "hr-pipeline-backend/models/db"
)

func AutoMigrateDB() error {
	log.Info("Запуск миграций")
	if err := DB.AutoMigrate(&dbmodels.SelectionProcess{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры SelectionProcess")
	}
	if err := DB.AutoMigrate(&dbmodels.SelectionStage{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры SelectionStage")
	}
	if err := DB.AutoMigrate(&dbmodels.Candidate{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Candidate")
	}
	if err := DB.AutoMigrate(&dbmodels.CandidateProcess{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры CandidateProcess")
	}
	if err := DB.AutoMigrate(&dbmodels.CandidateHistory{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры CandidateHistory")
	}
	log.Info("Миграция прошла успешно")
	return nil
}
