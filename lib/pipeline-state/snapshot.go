package pipelinestate

import (
	"time"

	"hr-pipeline-backend/models"
	dbmodels "hr-pipeline-backend/models/db"
)

// StageRef ссылка на этап, привязанная к процессу подбора.
// Создается только через ResolveStage, поэтому этап всегда принадлежит процессу.
type StageRef struct {
	processID string
	stageID   string
}

func (r StageRef) ProcessID() string { return r.processID }

func (r StageRef) StageID() string { return r.stageID }

type EntityType string

const (
	EntityProcess     EntityType = "process"
	EntityStage       EntityType = "stage"
	EntityCandidate   EntityType = "candidate"
	EntityAssociation EntityType = "association"
)

type ChangeKind string

const (
	ChangeCreated ChangeKind = "created"
	ChangeUpdated ChangeKind = "updated"
	ChangeDeleted ChangeKind = "deleted"
)

type ChangeEvent struct {
	Entity    EntityType
	Kind      ChangeKind
	ID        string
	ProcessID string // пусто для кандидатов
}

type Snapshot struct {
	Processes    []dbmodels.SelectionProcess // этапы в поле Stages
	Candidates   []dbmodels.Candidate
	Associations []dbmodels.CandidateProcess
}

type RestoreReport struct {
	Repaired int // участия, перенесенные на первый этап своего процесса
	Dropped  int // участия без процесса или этапов
}

func (i *impl) Snapshot() Snapshot {
	i.mu.RLock()
	defer i.mu.RUnlock()
	result := Snapshot{
		Processes:    make([]dbmodels.SelectionProcess, 0, len(i.processOrder)),
		Candidates:   make([]dbmodels.Candidate, 0, len(i.candidateOrder)),
		Associations: make([]dbmodels.CandidateProcess, 0, len(i.associationOrder)),
	}
	for _, id := range i.processOrder {
		result.Processes = append(result.Processes, i.processCopy(id))
	}
	for _, id := range i.candidateOrder {
		result.Candidates = append(result.Candidates, candidateCopy(*i.candidates[id]))
	}
	for _, id := range i.associationOrder {
		result.Associations = append(result.Associations, *i.associations[id])
	}
	return result
}

// Restore заменяет состояние целиком. Ранги этапов нормализуются,
// участие с этапом чужого процесса переносится на первый этап своего процесса.
func (i *impl) Restore(snapshot Snapshot) RestoreReport {
	report := RestoreReport{}
	logger := i.getLogger()

	i.mu.Lock()
	now := i.now()
	i.processes = map[string]*dbmodels.SelectionProcess{}
	i.processOrder = nil
	i.stages = map[string][]dbmodels.SelectionStage{}
	i.candidates = map[string]*dbmodels.Candidate{}
	i.candidateOrder = nil
	i.associations = map[string]*dbmodels.CandidateProcess{}
	i.associationOrder = nil

	for _, rec := range snapshot.Processes {
		if rec.ID == "" {
			rec.ID = i.newID()
		}
		if _, exist := i.processes[rec.ID]; exist {
			continue
		}
		stages := make([]dbmodels.SelectionStage, 0, len(rec.Stages))
		for _, stage := range rec.Stages {
			if stage.ID == "" {
				stage.ID = i.newID()
			}
			stage.ProcessID = rec.ID
			stages = append(stages, stage)
		}
		sortByOrder(stages)
		rec.Stages = nil
		fillTimes(&rec.BaseModel, now)
		process := rec
		i.processes[rec.ID] = &process
		i.processOrder = append(i.processOrder, rec.ID)
		i.stages[rec.ID] = resequence(stages)
	}
	for _, rec := range snapshot.Candidates {
		if rec.ID == "" {
			rec.ID = i.newID()
		}
		if _, exist := i.candidates[rec.ID]; exist {
			continue
		}
		fillTimes(&rec.BaseModel, now)
		candidate := candidateCopy(rec)
		i.candidates[rec.ID] = &candidate
		i.candidateOrder = append(i.candidateOrder, rec.ID)
	}
	for _, rec := range snapshot.Associations {
		if rec.ID == "" {
			rec.ID = i.newID()
		}
		if _, exist := i.associations[rec.ID]; exist {
			continue
		}
		stages := i.stages[rec.ProcessID]
		if _, ok := i.processes[rec.ProcessID]; !ok || len(stages) == 0 {
			report.Dropped++
			logger.
				WithField("association_id", rec.ID).
				WithField("process_id", rec.ProcessID).
				Warn("участие кандидата пропущено: процесс не найден или не содержит этапов")
			continue
		}
		if i.stageIndex(rec.ProcessID, rec.SelectionStageID) < 0 {
			report.Repaired++
			logger.
				WithField("association_id", rec.ID).
				WithField("stage_id", rec.SelectionStageID).
				Warn("этап участия не принадлежит процессу, кандидат перенесен на первый этап")
			rec.SelectionStageID = stages[0].ID
		}
		if !rec.Status.IsValid() {
			rec.Status = models.CandidateStatusInProgress
		}
		fillTimes(&rec.BaseModel, now)
		if rec.StageChangedAt.IsZero() {
			rec.StageChangedAt = rec.UpdatedAt
		}
		association := rec
		i.associations[rec.ID] = &association
		i.associationOrder = append(i.associationOrder, rec.ID)
	}
	i.mu.Unlock()
	return report
}

func fillTimes(rec *dbmodels.BaseModel, now time.Time) {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	if rec.UpdatedAt.IsZero() {
		rec.UpdatedAt = rec.CreatedAt
	}
}
