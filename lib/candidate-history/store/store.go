package candidatehistorystore

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	candidateapimodels "hr-pipeline-backend/models/api/candidate"
	dbmodels "hr-pipeline-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.CandidateHistory) (id string, err error)
	ListCount(associationID string, filter candidateapimodels.HistoryFilter) (count int64, err error)
	List(associationID string, filter candidateapimodels.HistoryFilter) (list []dbmodels.CandidateHistory, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.CandidateHistory) (id string, err error) {
	err = i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) ListCount(associationID string, filter candidateapimodels.HistoryFilter) (count int64, err error) {
	var rowCount int64
	tx := i.db.
		Model(dbmodels.CandidateHistory{}).
		Where("association_id = ?", associationID)
	if filter.ActionType != "" {
		tx = tx.Where("action_type = ?", filter.ActionType)
	}
	err = tx.Count(&rowCount).Error
	if err != nil {
		log.WithError(err).Error("ошибка получения общего количества действий по кандидату")
		return 0, errors.New("ошибка получения общего количества действий по кандидату")
	}
	return rowCount, nil
}

func (i impl) List(associationID string, filter candidateapimodels.HistoryFilter) (list []dbmodels.CandidateHistory, err error) {
	list = []dbmodels.CandidateHistory{}
	tx := i.db.
		Model(dbmodels.CandidateHistory{}).
		Where("association_id = ?", associationID)
	if filter.ActionType != "" {
		tx = tx.Where("action_type = ?", filter.ActionType)
	}
	page, limit := filter.GetPage()
	offset := (page - 1) * limit
	err = tx.
		Order("created_at").
		Limit(limit).
		Offset(offset).
		Find(&list).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}
