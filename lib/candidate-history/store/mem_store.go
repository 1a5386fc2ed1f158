package candidatehistorystore

import (
	"sync"

	"github.com/google/uuid"
	candidateapimodels "hr-pipeline-backend/models/api/candidate"
	dbmodels "hr-pipeline-backend/models/db"
)

// NewMemInstance история в памяти, используется без подключения к БД
func NewMemInstance() Provider {
	return &memImpl{}
}

type memImpl struct {
	mu   sync.RWMutex
	list []dbmodels.CandidateHistory
}

func (i *memImpl) Create(rec dbmodels.CandidateHistory) (id string, err error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	i.list = append(i.list, rec)
	return rec.ID, nil
}

func (i *memImpl) ListCount(associationID string, filter candidateapimodels.HistoryFilter) (count int64, err error) {
	return int64(len(i.filtered(associationID, filter))), nil
}

func (i *memImpl) List(associationID string, filter candidateapimodels.HistoryFilter) (list []dbmodels.CandidateHistory, err error) {
	all := i.filtered(associationID, filter)
	page, limit := filter.GetPage()
	offset := (page - 1) * limit
	if offset >= len(all) {
		return []dbmodels.CandidateHistory{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (i *memImpl) filtered(associationID string, filter candidateapimodels.HistoryFilter) []dbmodels.CandidateHistory {
	i.mu.RLock()
	defer i.mu.RUnlock()
	result := make([]dbmodels.CandidateHistory, 0)
	for _, rec := range i.list {
		if rec.AssociationID != associationID {
			continue
		}
		if filter.ActionType != "" && rec.ActionType != filter.ActionType {
			continue
		}
		result = append(result, rec)
	}
	return result
}
