package candidatehistoryhandler

import (
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"hr-pipeline-backend/db"
	candidatehistorystore "hr-pipeline-backend/lib/candidate-history/store"
	"hr-pipeline-backend/models"
	candidateapimodels "hr-pipeline-backend/models/api/candidate"
	dbmodels "hr-pipeline-backend/models/db"
)

type Provider interface {
	List(associationID string, filter candidateapimodels.HistoryFilter) ([]candidateapimodels.HistoryView, int64, error)
	Save(processID, associationID, candidateID, userID, userName string, action dbmodels.ActionType, changes dbmodels.CandidateChanges)
}

var Instance Provider

func NewHandler() {
	store := candidatehistorystore.NewMemInstance()
	if db.DB != nil {
		store = candidatehistorystore.NewInstance(db.DB)
	}
	Instance = NewInstance(store, time.Now)
}

func NewInstance(store candidatehistorystore.Provider, now func() time.Time) Provider {
	if now == nil {
		now = time.Now
	}
	return impl{
		store: store,
		now:   now,
	}
}

type impl struct {
	store candidatehistorystore.Provider
	now   func() time.Time
}

func (i impl) List(associationID string, filter candidateapimodels.HistoryFilter) ([]candidateapimodels.HistoryView, int64, error) {
	rowCount, err := i.store.ListCount(associationID, filter)
	if err != nil {
		return nil, 0, err
	}

	page, limit := filter.GetPage()
	offset := (page - 1) * limit
	if int64(offset) > rowCount {
		return []candidateapimodels.HistoryView{}, rowCount, nil
	}

	list, err := i.store.List(associationID, filter)
	if err != nil {
		log.WithError(err).Error("ошибка получения списка действий")
		return nil, 0, errors.New("ошибка получения списка действий")
	}
	result := make([]candidateapimodels.HistoryView, 0, len(list))
	for _, rec := range list {
		result = append(result, candidateapimodels.HistoryConvert(rec))
	}
	return result, rowCount, nil
}

func (i impl) Save(processID, associationID, candidateID, userID, userName string, action dbmodels.ActionType, changes dbmodels.CandidateChanges) {
	logger := log.WithField("process_id", processID).
		WithField("association_id", associationID).
		WithField("action", action).
		WithField("description", changes.Description)
	now := i.now()
	rec := dbmodels.CandidateHistory{
		BaseModel: dbmodels.BaseModel{
			CreatedAt: now,
			UpdatedAt: now,
		},
		AssociationID: associationID,
		CandidateID:   candidateID,
		ProcessID:     processID,
		ActionType:    action,
		Changes:       changes,
		UserName:      models.SystemUser,
	}
	if userID != "" {
		rec.UserID = &userID
		if userName != "" {
			rec.UserName = userName
		}
	}
	_, err := i.store.Create(rec)
	if err != nil {
		logger.WithError(err).Error("ошибка сохранения истории действий по кандидату")
	}
}
