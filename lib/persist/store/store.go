package persiststore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	pipelinestate "hr-pipeline-backend/lib/pipeline-state"
	dbmodels "hr-pipeline-backend/models/db"
)

type Provider interface {
	Load() (snapshot pipelinestate.Snapshot, err error)
	Save(snapshot pipelinestate.Snapshot) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Load() (snapshot pipelinestate.Snapshot, err error) {
	err = i.db.
		Preload("Stages", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("stage_order")
		}).
		Order("created_at").
		Find(&snapshot.Processes).
		Error
	if err != nil {
		return pipelinestate.Snapshot{}, errors.Wrap(err, "ошибка загрузки процессов подбора")
	}
	err = i.db.
		Order("created_at").
		Find(&snapshot.Candidates).
		Error
	if err != nil {
		return pipelinestate.Snapshot{}, errors.Wrap(err, "ошибка загрузки кандидатов")
	}
	err = i.db.
		Order("created_at").
		Find(&snapshot.Associations).
		Error
	if err != nil {
		return pipelinestate.Snapshot{}, errors.Wrap(err, "ошибка загрузки кандидатов в процессах подбора")
	}
	return snapshot, nil
}

// Save записывает снимок целиком, удаленные из снимка этапы удаляются из БД
func (i impl) Save(snapshot pipelinestate.Snapshot) error {
	return i.db.Transaction(func(tx *gorm.DB) error {
		upsert := tx.Clauses(clause.OnConflict{UpdateAll: true})
		for _, process := range snapshot.Processes {
			stages := process.Stages
			process.Stages = nil
			if err := upsert.Create(&process).Error; err != nil {
				return errors.Wrap(err, "ошибка сохранения процесса подбора")
			}
			stageIDs := make([]string, 0, len(stages))
			for k := range stages {
				stageIDs = append(stageIDs, stages[k].ID)
				if err := upsert.Create(&stages[k]).Error; err != nil {
					return errors.Wrap(err, "ошибка сохранения этапа подбора")
				}
			}
			deleteTx := tx.Where("process_id = ?", process.ID)
			if len(stageIDs) != 0 {
				deleteTx = deleteTx.Where("id NOT IN ?", stageIDs)
			}
			if err := deleteTx.Delete(&dbmodels.SelectionStage{}).Error; err != nil {
				return errors.Wrap(err, "ошибка удаления этапов подбора")
			}
		}
		for k := range snapshot.Candidates {
			if err := upsert.Create(&snapshot.Candidates[k]).Error; err != nil {
				return errors.Wrap(err, "ошибка сохранения кандидата")
			}
		}
		for k := range snapshot.Associations {
			if err := upsert.Create(&snapshot.Associations[k]).Error; err != nil {
				return errors.Wrap(err, "ошибка сохранения кандидата в процессе подбора")
			}
		}
		return nil
	})
}
