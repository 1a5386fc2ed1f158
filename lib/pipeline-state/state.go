package pipelinestate

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"hr-pipeline-backend/models"
	dbmodels "hr-pipeline-backend/models/db"
)

var (
	ErrProcessNotFound     = errors.New("процесс подбора не найден")
	ErrStageNotFound       = errors.New("этап подбора не найден")
	ErrCandidateNotFound   = errors.New("кандидат не найден")
	ErrAssociationNotFound = errors.New("кандидат в процессе подбора не найден")
	ErrForeignStage        = errors.New("этап не принадлежит процессу подбора кандидата")
	ErrAlreadyEnrolled     = errors.New("кандидат уже участвует в процессе подбора")
	ErrUnknownStatus       = errors.New("неизвестный статус")
)

// Reader read-only проекции состояния, все методы возвращают копии
type Reader interface {
	ListProcesses() []dbmodels.SelectionProcess
	GetProcess(id string) *dbmodels.SelectionProcess
	StageList(processID string) []dbmodels.SelectionStage
	ResolveStage(processID, stageID string) (StageRef, bool)
	ListCandidates() []dbmodels.Candidate
	GetCandidate(id string) *dbmodels.Candidate
	CandidatesByIDs(ids []string) map[string]dbmodels.Candidate
	GetAssociation(id string) *dbmodels.CandidateProcess
	AssociationsByProcess(processID string) []dbmodels.CandidateProcess
}

type ProcessWriter interface {
	CreateProcess(rec dbmodels.SelectionProcess) (id string, err error)
	UpdateProcess(rec dbmodels.SelectionProcess) error
	SetProcessStatus(id string, status models.ProcessStatus) (changed bool, err error)
	AddStage(processID string, rec dbmodels.SelectionStage, rank int) (id string, err error)
	UpdateStage(processID string, rec dbmodels.SelectionStage) error
	RemoveStage(processID, stageID string) (hMsg string, err error)
	ReorderStage(processID, stageID string, newRank int) (changed bool, err error)
}

type CandidateWriter interface {
	CreateCandidate(rec dbmodels.Candidate) (id string, err error)
	UpdateCandidate(rec dbmodels.Candidate) error
	SetResumeFile(candidateID, fileName string) error
}

// BoardWriter изменение участия кандидатов, используется только доской подбора
type BoardWriter interface {
	CreateAssociation(candidateID string, ref StageRef) (id string, err error)
	// MoveAssociation previous - этап до переноса, прочитанный под той же блокировкой
	MoveAssociation(id string, ref StageRef) (previous string, moved bool, err error)
	// SetAssociationStatus previous - статус до изменения, прочитанный под той же блокировкой
	SetAssociationStatus(id string, status models.CandidateStatus) (previous models.CandidateStatus, changed bool, err error)
}

type Provider interface {
	Reader
	ProcessWriter
	CandidateWriter
	BoardWriter
	Subscribe(fn func(event ChangeEvent))
	Restore(snapshot Snapshot) RestoreReport
	Snapshot() Snapshot
}

var Instance Provider

func NewHandler() {
	Instance = NewInstance(time.Now)
}

func NewInstance(now func() time.Time) Provider {
	if now == nil {
		now = time.Now
	}
	return &impl{
		now:          now,
		newID:        uuid.NewString,
		processes:    map[string]*dbmodels.SelectionProcess{},
		stages:       map[string][]dbmodels.SelectionStage{},
		candidates:   map[string]*dbmodels.Candidate{},
		associations: map[string]*dbmodels.CandidateProcess{},
	}
}

type impl struct {
	mu    sync.RWMutex
	now   func() time.Time
	newID func() string

	processes    map[string]*dbmodels.SelectionProcess
	processOrder []string
	// этапы процесса, всегда отсортированы по StageOrder = 1..N
	stages           map[string][]dbmodels.SelectionStage
	candidates       map[string]*dbmodels.Candidate
	candidateOrder   []string
	associations     map[string]*dbmodels.CandidateProcess
	associationOrder []string

	subMu       sync.RWMutex
	subscribers []func(event ChangeEvent)
}

func (i *impl) Subscribe(fn func(event ChangeEvent)) {
	i.subMu.Lock()
	defer i.subMu.Unlock()
	i.subscribers = append(i.subscribers, fn)
}

// publish вызывается после снятия блокировки состояния
func (i *impl) publish(events ...ChangeEvent) {
	i.subMu.RLock()
	subscribers := append([]func(event ChangeEvent){}, i.subscribers...)
	i.subMu.RUnlock()
	for _, event := range events {
		for _, fn := range subscribers {
			fn(event)
		}
	}
}

func (i *impl) ListProcesses() []dbmodels.SelectionProcess {
	i.mu.RLock()
	defer i.mu.RUnlock()
	result := make([]dbmodels.SelectionProcess, 0, len(i.processOrder))
	for _, id := range i.processOrder {
		result = append(result, i.processCopy(id))
	}
	return result
}

func (i *impl) GetProcess(id string) *dbmodels.SelectionProcess {
	i.mu.RLock()
	defer i.mu.RUnlock()
	if _, ok := i.processes[id]; !ok {
		return nil
	}
	rec := i.processCopy(id)
	return &rec
}

func (i *impl) StageList(processID string) []dbmodels.SelectionStage {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return append([]dbmodels.SelectionStage{}, i.stages[processID]...)
}

func (i *impl) ResolveStage(processID, stageID string) (StageRef, bool) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	if i.stageIndex(processID, stageID) < 0 {
		return StageRef{}, false
	}
	return StageRef{processID: processID, stageID: stageID}, true
}

func (i *impl) ListCandidates() []dbmodels.Candidate {
	i.mu.RLock()
	defer i.mu.RUnlock()
	result := make([]dbmodels.Candidate, 0, len(i.candidateOrder))
	for _, id := range i.candidateOrder {
		result = append(result, candidateCopy(*i.candidates[id]))
	}
	return result
}

func (i *impl) GetCandidate(id string) *dbmodels.Candidate {
	i.mu.RLock()
	defer i.mu.RUnlock()
	rec, ok := i.candidates[id]
	if !ok {
		return nil
	}
	result := candidateCopy(*rec)
	return &result
}

func (i *impl) CandidatesByIDs(ids []string) map[string]dbmodels.Candidate {
	i.mu.RLock()
	defer i.mu.RUnlock()
	result := make(map[string]dbmodels.Candidate, len(ids))
	for _, id := range ids {
		if rec, ok := i.candidates[id]; ok {
			result[id] = candidateCopy(*rec)
		}
	}
	return result
}

func (i *impl) GetAssociation(id string) *dbmodels.CandidateProcess {
	i.mu.RLock()
	defer i.mu.RUnlock()
	rec, ok := i.associations[id]
	if !ok {
		return nil
	}
	result := *rec
	return &result
}

func (i *impl) AssociationsByProcess(processID string) []dbmodels.CandidateProcess {
	i.mu.RLock()
	defer i.mu.RUnlock()
	result := make([]dbmodels.CandidateProcess, 0)
	for _, id := range i.associationOrder {
		rec := i.associations[id]
		if rec.ProcessID == processID {
			result = append(result, *rec)
		}
	}
	return result
}

func (i *impl) CreateProcess(rec dbmodels.SelectionProcess) (id string, err error) {
	i.mu.Lock()
	now := i.now()
	rec.ID = i.newID()
	rec.CreatedAt = now
	rec.UpdatedAt = now
	if rec.Status == "" {
		rec.Status = models.ProcessStatusActive
	}
	stages := make([]dbmodels.SelectionStage, 0, len(rec.Stages))
	for _, stage := range rec.Stages {
		stage.ID = i.newID()
		stage.ProcessID = rec.ID
		stage.CreatedAt = now
		stage.UpdatedAt = now
		stages = append(stages, stage)
	}
	rec.Stages = nil
	i.processes[rec.ID] = &rec
	i.processOrder = append(i.processOrder, rec.ID)
	i.stages[rec.ID] = resequence(stages)
	i.mu.Unlock()

	i.publish(ChangeEvent{Entity: EntityProcess, Kind: ChangeCreated, ID: rec.ID, ProcessID: rec.ID})
	return rec.ID, nil
}

func (i *impl) UpdateProcess(rec dbmodels.SelectionProcess) error {
	i.mu.Lock()
	current, ok := i.processes[rec.ID]
	if !ok {
		i.mu.Unlock()
		return ErrProcessNotFound
	}
	current.Title = rec.Title
	current.Department = rec.Department
	current.TargetRole = rec.TargetRole
	current.OpenedPositions = rec.OpenedPositions
	current.ResponsibleID = rec.ResponsibleID
	current.ResponsibleName = rec.ResponsibleName
	current.UpdatedAt = i.now()
	i.mu.Unlock()

	i.publish(ChangeEvent{Entity: EntityProcess, Kind: ChangeUpdated, ID: rec.ID, ProcessID: rec.ID})
	return nil
}

func (i *impl) SetProcessStatus(id string, status models.ProcessStatus) (changed bool, err error) {
	if !status.IsValid() {
		return false, ErrUnknownStatus
	}
	i.mu.Lock()
	current, ok := i.processes[id]
	if !ok {
		i.mu.Unlock()
		return false, ErrProcessNotFound
	}
	if current.Status == status {
		i.mu.Unlock()
		return false, nil
	}
	current.Status = status
	current.UpdatedAt = i.now()
	i.mu.Unlock()

	i.publish(ChangeEvent{Entity: EntityProcess, Kind: ChangeUpdated, ID: id, ProcessID: id})
	return true, nil
}

func (i *impl) AddStage(processID string, rec dbmodels.SelectionStage, rank int) (id string, err error) {
	i.mu.Lock()
	if _, ok := i.processes[processID]; !ok {
		i.mu.Unlock()
		return "", ErrProcessNotFound
	}
	now := i.now()
	rec.ID = i.newID()
	rec.ProcessID = processID
	rec.CreatedAt = now
	rec.UpdatedAt = now

	list := i.stages[processID]
	pos := len(list)
	if rank > 0 && rank <= len(list) {
		pos = rank - 1
	}
	newList := make([]dbmodels.SelectionStage, 0, len(list)+1)
	newList = append(newList, list[:pos]...)
	newList = append(newList, rec)
	newList = append(newList, list[pos:]...)
	i.stages[processID] = resequence(newList)
	i.mu.Unlock()

	i.publish(ChangeEvent{Entity: EntityStage, Kind: ChangeCreated, ID: rec.ID, ProcessID: processID})
	return rec.ID, nil
}

func (i *impl) UpdateStage(processID string, rec dbmodels.SelectionStage) error {
	i.mu.Lock()
	idx := i.stageIndex(processID, rec.ID)
	if idx < 0 {
		i.mu.Unlock()
		return ErrStageNotFound
	}
	stage := &i.stages[processID][idx]
	stage.Name = rec.Name
	stage.Description = rec.Description
	stage.Category = rec.Category
	stage.ResponsibleName = rec.ResponsibleName
	stage.DurationDays = rec.DurationDays
	stage.Mandatory = rec.Mandatory
	stage.UpdatedAt = i.now()
	i.mu.Unlock()

	i.publish(ChangeEvent{Entity: EntityStage, Kind: ChangeUpdated, ID: rec.ID, ProcessID: processID})
	return nil
}

func (i *impl) RemoveStage(processID, stageID string) (hMsg string, err error) {
	i.mu.Lock()
	idx := i.stageIndex(processID, stageID)
	if idx < 0 {
		i.mu.Unlock()
		return "", ErrStageNotFound
	}
	list := i.stages[processID]
	if list[idx].Mandatory {
		i.mu.Unlock()
		return "обязательный этап нельзя удалить", nil
	}
	for _, assocID := range i.associationOrder {
		if i.associations[assocID].SelectionStageID == stageID {
			i.mu.Unlock()
			return "на этапе есть кандидаты, переведите их на другой этап", nil
		}
	}
	newList := make([]dbmodels.SelectionStage, 0, len(list)-1)
	newList = append(newList, list[:idx]...)
	newList = append(newList, list[idx+1:]...)
	i.stages[processID] = resequence(newList)
	i.mu.Unlock()

	i.publish(ChangeEvent{Entity: EntityStage, Kind: ChangeDeleted, ID: stageID, ProcessID: processID})
	return "", nil
}

func (i *impl) ReorderStage(processID, stageID string, newRank int) (changed bool, err error) {
	i.mu.Lock()
	idx := i.stageIndex(processID, stageID)
	if idx < 0 {
		i.mu.Unlock()
		return false, ErrStageNotFound
	}
	list := i.stages[processID]
	if newRank < 1 {
		newRank = 1
	}
	if newRank > len(list) {
		newRank = len(list)
	}
	if list[idx].StageOrder == newRank {
		i.mu.Unlock()
		return false, nil
	}
	changedStage := list[idx]
	rest := make([]dbmodels.SelectionStage, 0, len(list))
	rest = append(rest, list[:idx]...)
	rest = append(rest, list[idx+1:]...)

	newSet := make([]dbmodels.SelectionStage, 0, len(list))
	newSet = append(newSet, rest[:newRank-1]...)
	newSet = append(newSet, changedStage)
	newSet = append(newSet, rest[newRank-1:]...)
	now := i.now()
	for k := range newSet {
		if newSet[k].StageOrder != k+1 {
			newSet[k].UpdatedAt = now
		}
	}
	i.stages[processID] = resequence(newSet)
	i.mu.Unlock()

	i.publish(ChangeEvent{Entity: EntityStage, Kind: ChangeUpdated, ID: stageID, ProcessID: processID})
	return true, nil
}

func (i *impl) CreateCandidate(rec dbmodels.Candidate) (id string, err error) {
	i.mu.Lock()
	now := i.now()
	rec.ID = i.newID()
	rec.CreatedAt = now
	rec.UpdatedAt = now
	rec = candidateCopy(rec)
	i.candidates[rec.ID] = &rec
	i.candidateOrder = append(i.candidateOrder, rec.ID)
	i.mu.Unlock()

	i.publish(ChangeEvent{Entity: EntityCandidate, Kind: ChangeCreated, ID: rec.ID})
	return rec.ID, nil
}

func (i *impl) UpdateCandidate(rec dbmodels.Candidate) error {
	i.mu.Lock()
	current, ok := i.candidates[rec.ID]
	if !ok {
		i.mu.Unlock()
		return ErrCandidateNotFound
	}
	rec.CreatedAt = current.CreatedAt
	rec.ResumeFileName = current.ResumeFileName
	rec.UpdatedAt = i.now()
	rec = candidateCopy(rec)
	i.candidates[rec.ID] = &rec
	i.mu.Unlock()

	i.publish(ChangeEvent{Entity: EntityCandidate, Kind: ChangeUpdated, ID: rec.ID})
	return nil
}

func (i *impl) SetResumeFile(candidateID, fileName string) error {
	i.mu.Lock()
	current, ok := i.candidates[candidateID]
	if !ok {
		i.mu.Unlock()
		return ErrCandidateNotFound
	}
	current.ResumeFileName = fileName
	current.UpdatedAt = i.now()
	i.mu.Unlock()

	i.publish(ChangeEvent{Entity: EntityCandidate, Kind: ChangeUpdated, ID: candidateID})
	return nil
}

func (i *impl) CreateAssociation(candidateID string, ref StageRef) (id string, err error) {
	i.mu.Lock()
	if _, ok := i.candidates[candidateID]; !ok {
		i.mu.Unlock()
		return "", ErrCandidateNotFound
	}
	if i.stageIndex(ref.processID, ref.stageID) < 0 {
		i.mu.Unlock()
		return "", ErrStageNotFound
	}
	for _, assocID := range i.associationOrder {
		rec := i.associations[assocID]
		if rec.CandidateID == candidateID && rec.ProcessID == ref.processID {
			i.mu.Unlock()
			return "", ErrAlreadyEnrolled
		}
	}
	now := i.now()
	rec := dbmodels.CandidateProcess{
		BaseModel: dbmodels.BaseModel{
			ID:        i.newID(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		CandidateID:      candidateID,
		ProcessID:        ref.processID,
		SelectionStageID: ref.stageID,
		Status:           models.CandidateStatusInProgress,
		StageChangedAt:   now,
	}
	i.associations[rec.ID] = &rec
	i.associationOrder = append(i.associationOrder, rec.ID)
	i.mu.Unlock()

	i.publish(ChangeEvent{Entity: EntityAssociation, Kind: ChangeCreated, ID: rec.ID, ProcessID: rec.ProcessID})
	return rec.ID, nil
}

func (i *impl) MoveAssociation(id string, ref StageRef) (previous string, moved bool, err error) {
	i.mu.Lock()
	rec, ok := i.associations[id]
	if !ok {
		i.mu.Unlock()
		return "", false, ErrAssociationNotFound
	}
	previous = rec.SelectionStageID
	if rec.ProcessID != ref.processID {
		i.mu.Unlock()
		return previous, false, ErrForeignStage
	}
	if i.stageIndex(ref.processID, ref.stageID) < 0 {
		i.mu.Unlock()
		return previous, false, ErrStageNotFound
	}
	if previous == ref.stageID {
		i.mu.Unlock()
		return previous, false, nil
	}
	now := i.now()
	rec.SelectionStageID = ref.stageID
	rec.StageChangedAt = now
	rec.UpdatedAt = now
	processID := rec.ProcessID
	i.mu.Unlock()

	i.publish(ChangeEvent{Entity: EntityAssociation, Kind: ChangeUpdated, ID: id, ProcessID: processID})
	return previous, true, nil
}

func (i *impl) SetAssociationStatus(id string, status models.CandidateStatus) (previous models.CandidateStatus, changed bool, err error) {
	if !status.IsValid() {
		return "", false, ErrUnknownStatus
	}
	i.mu.Lock()
	rec, ok := i.associations[id]
	if !ok {
		i.mu.Unlock()
		return "", false, ErrAssociationNotFound
	}
	previous = rec.Status
	if previous == status {
		i.mu.Unlock()
		return previous, false, nil
	}
	rec.Status = status
	rec.UpdatedAt = i.now()
	processID := rec.ProcessID
	i.mu.Unlock()

	i.publish(ChangeEvent{Entity: EntityAssociation, Kind: ChangeUpdated, ID: id, ProcessID: processID})
	return previous, true, nil
}

func (i *impl) processCopy(id string) dbmodels.SelectionProcess {
	rec := *i.processes[id]
	rec.Stages = append([]dbmodels.SelectionStage{}, i.stages[id]...)
	return rec
}

func (i *impl) stageIndex(processID, stageID string) int {
	for k, stage := range i.stages[processID] {
		if stage.ID == stageID {
			return k
		}
	}
	return -1
}

func candidateCopy(rec dbmodels.Candidate) dbmodels.Candidate {
	if rec.Skills != nil {
		rec.Skills = append([]string{}, rec.Skills...)
	}
	return rec
}

// resequence проставляет ранги 1..N в порядке следования этапов
func resequence(list []dbmodels.SelectionStage) []dbmodels.SelectionStage {
	for k := range list {
		list[k].StageOrder = k + 1
	}
	return list
}

func sortByOrder(list []dbmodels.SelectionStage) {
	sort.SliceStable(list, func(a, b int) bool {
		return list[a].StageOrder < list[b].StageOrder
	})
}

func (i *impl) getLogger() *log.Entry {
	return log.WithField("component", "pipeline_state")
}
