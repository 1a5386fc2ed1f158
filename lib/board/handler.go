package board

import (
	"sync"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	candidatehistoryhandler "hr-pipeline-backend/lib/candidate-history"
	pipelinestate "hr-pipeline-backend/lib/pipeline-state"
	"hr-pipeline-backend/models"
	boardapimodels "hr-pipeline-backend/models/api/board"
	dbmodels "hr-pipeline-backend/models/db"
)

type Provider interface {
	SelectProcess(userID, processID string) boardapimodels.BoardView
	Board(userID string) boardapimodels.BoardView
	ActiveProcessID(userID string) string
	BeginMove(userID, associationID string) (ok bool, reason string)
	CompleteMove(userID, userName, associationID, stageID string) boardapimodels.MoveResult
	CancelMove(userID string)
	SetStatus(userID, userName, associationID string, status models.CandidateStatus) (hMsg string, err error)
	Enroll(userID, userName, processID, candidateID string) (id string, hMsg string, err error)
}

var Instance Provider

func NewHandler() {
	Instance = NewInstance(pipelinestate.Instance, candidatehistoryhandler.Instance, time.Now)
}

type state interface {
	pipelinestate.Reader
	pipelinestate.BoardWriter
}

func NewInstance(st state, history candidatehistoryhandler.Provider, now func() time.Time) Provider {
	if now == nil {
		now = time.Now
	}
	return &impl{
		state:    st,
		history:  history,
		now:      now,
		sessions: map[string]*session{},
	}
}

// Drag перетаскиваемое участие, не более одного на оператора
type Drag struct {
	AssociationID string
	StartedAt     time.Time
}

type session struct {
	activeProcessID string
	drag            *Drag
}

type impl struct {
	state   state
	history candidatehistoryhandler.Provider
	now     func() time.Time

	mu       sync.Mutex
	sessions map[string]*session // map[userID]
}

func (i *impl) SelectProcess(userID, processID string) boardapimodels.BoardView {
	i.mu.Lock()
	sess := i.getSession(userID)
	resolved := i.resolveProcess(processID)
	if sess.activeProcessID != resolved {
		sess.drag = nil
	}
	sess.activeProcessID = resolved
	view := i.buildView(sess)
	i.mu.Unlock()

	i.getLogger(userID, sess.activeProcessID).Debug("выбран процесс подбора")
	return view
}

func (i *impl) Board(userID string) boardapimodels.BoardView {
	i.mu.Lock()
	defer i.mu.Unlock()
	sess := i.getSession(userID)
	sess.activeProcessID = i.resolveProcess(sess.activeProcessID)
	return i.buildView(sess)
}

func (i *impl) ActiveProcessID(userID string) string {
	i.mu.Lock()
	defer i.mu.Unlock()
	sess := i.getSession(userID)
	sess.activeProcessID = i.resolveProcess(sess.activeProcessID)
	return sess.activeProcessID
}

func (i *impl) BeginMove(userID, associationID string) (ok bool, reason string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	sess := i.getSession(userID)
	sess.activeProcessID = i.resolveProcess(sess.activeProcessID)
	if reason = i.checkAssociation(sess.activeProcessID, associationID); reason != "" {
		i.getLogger(userID, sess.activeProcessID).
			WithField("association_id", associationID).
			WithField("reason", reason).
			Debug("перетаскивание не начато")
		return false, reason
	}
	sess.drag = &Drag{
		AssociationID: associationID,
		StartedAt:     i.now(),
	}
	return true, ""
}

func (i *impl) CompleteMove(userID, userName, associationID, stageID string) boardapimodels.MoveResult {
	i.mu.Lock()
	sess := i.getSession(userID)
	sess.drag = nil
	sess.activeProcessID = i.resolveProcess(sess.activeProcessID)
	processID := sess.activeProcessID
	i.mu.Unlock()

	// подписчики состояния читают сессии, поэтому перенос выполняется без блокировки
	result, from, to := i.move(processID, associationID, stageID)

	logger := i.getLogger(userID, processID).
		WithField("association_id", associationID).
		WithField("stage_id", stageID).
		WithField("outcome", result.Outcome)
	switch result.Outcome {
	case models.MoveOutcomeRejected:
		logger.WithField("reason", result.Reason).Debug("перенос кандидата отклонен")
	case models.MoveOutcomeMoved:
		logger.Info("кандидат переведен на другой этап")
		assoc := i.state.GetAssociation(associationID)
		if assoc != nil && i.history != nil {
			changes := candidatehistoryhandler.GetStageChange(from, to)
			i.history.Save(processID, associationID, assoc.CandidateID, userID, userName, dbmodels.HistoryTypeStageChange, changes)
		}
	}
	return result
}

func (i *impl) CancelMove(userID string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.getSession(userID).drag = nil
}

func (i *impl) SetStatus(userID, userName, associationID string, status models.CandidateStatus) (hMsg string, err error) {
	logger := i.getLogger(userID, "").
		WithField("association_id", associationID).
		WithField("status", status)
	if !status.IsValid() {
		return "неизвестный статус кандидата", nil
	}
	previous, changed, err := i.state.SetAssociationStatus(associationID, status)
	if err != nil {
		if errors.Is(err, pipelinestate.ErrAssociationNotFound) {
			return "кандидат в процессе подбора не найден", nil
		}
		return "", errors.Wrap(err, "ошибка изменения статуса кандидата")
	}
	if !changed {
		return "", nil
	}
	logger.WithField("previous_status", previous).Info("изменен статус кандидата")
	assoc := i.state.GetAssociation(associationID)
	if assoc != nil && i.history != nil {
		changes := candidatehistoryhandler.GetStatusChange(previous, status)
		i.history.Save(assoc.ProcessID, associationID, assoc.CandidateID, userID, userName, dbmodels.HistoryTypeStatusChange, changes)
	}
	return "", nil
}

func (i *impl) Enroll(userID, userName, processID, candidateID string) (id string, hMsg string, err error) {
	logger := i.getLogger(userID, processID).
		WithField("candidate_id", candidateID)
	if i.state.GetProcess(processID) == nil {
		return "", "процесс подбора не найден", nil
	}
	if i.state.GetCandidate(candidateID) == nil {
		return "", "кандидат не найден", nil
	}
	stages := i.state.StageList(processID)
	if len(stages) == 0 {
		return "", "для процесса подбора не настроены этапы", nil
	}
	ref, ok := i.state.ResolveStage(processID, stages[0].ID)
	if !ok {
		return "", "", errors.New("ошибка получения первого этапа подбора")
	}
	id, err = i.state.CreateAssociation(candidateID, ref)
	if err != nil {
		if errors.Is(err, pipelinestate.ErrAlreadyEnrolled) {
			return "", "кандидат уже участвует в этом процессе подбора", nil
		}
		return "", "", errors.Wrap(err, "ошибка добавления кандидата в процесс подбора")
	}
	logger.WithField("association_id", id).Info("кандидат добавлен в процесс подбора")
	if i.history != nil {
		changes := candidatehistoryhandler.GetEnrollChange(stages[0].Name)
		i.history.Save(processID, id, candidateID, userID, userName, dbmodels.HistoryTypeEnroll, changes)
	}
	return id, "", nil
}

func (i *impl) move(processID, associationID, stageID string) (result boardapimodels.MoveResult, from, to string) {
	if reason := i.checkAssociation(processID, associationID); reason != "" {
		return boardapimodels.Rejected(reason), "", ""
	}
	ref, ok := i.state.ResolveStage(processID, stageID)
	if !ok {
		return boardapimodels.Rejected("этап не относится к выбранному процессу подбора"), "", ""
	}
	from, moved, err := i.state.MoveAssociation(associationID, ref)
	if err != nil {
		return boardapimodels.Rejected(err.Error()), "", ""
	}
	if !moved {
		return boardapimodels.NoOp(), "", ""
	}
	return boardapimodels.Moved(), i.stageName(processID, from), i.stageName(processID, ref.StageID())
}

func (i *impl) checkAssociation(processID, associationID string) (reason string) {
	if processID == "" {
		return "не выбран процесс подбора"
	}
	assoc := i.state.GetAssociation(associationID)
	if assoc == nil {
		return "кандидат в процессе подбора не найден"
	}
	if assoc.ProcessID != processID {
		return "кандидат не относится к выбранному процессу подбора"
	}
	return ""
}

// resolveProcess при отсутствии процесса возвращает первый доступный или пустую строку
func (i *impl) resolveProcess(processID string) string {
	if processID != "" && i.state.GetProcess(processID) != nil {
		return processID
	}
	list := i.state.ListProcesses()
	if len(list) == 0 {
		return ""
	}
	return list[0].ID
}

func (i *impl) buildView(sess *session) boardapimodels.BoardView {
	processes := i.state.ListProcesses()
	view := boardapimodels.BoardView{
		ProcessID: sess.activeProcessID,
		Processes: make([]boardapimodels.ProcessInfo, 0, len(processes)),
		Columns:   []boardapimodels.ColumnView{},
	}
	for _, rec := range processes {
		view.Processes = append(view.Processes, boardapimodels.ProcessInfoConvert(rec))
	}
	if sess.activeProcessID == "" {
		view.EmptyState = boardapimodels.NoProcessState()
		return view
	}
	process := i.state.GetProcess(sess.activeProcessID)
	if process == nil {
		view.EmptyState = boardapimodels.NoProcessState()
		return view
	}
	info := boardapimodels.ProcessInfoConvert(*process)
	view.Process = &info
	if sess.drag != nil {
		view.Drag = &boardapimodels.DragView{
			AssociationID: sess.drag.AssociationID,
			StartedAt:     sess.drag.StartedAt.Format("02.01.2006 15:04:05"),
		}
	}
	if len(process.Stages) == 0 {
		view.EmptyState = boardapimodels.NoStagesState()
		return view
	}

	associations := i.state.AssociationsByProcess(process.ID)
	ids := make([]string, 0, len(associations))
	for _, assoc := range associations {
		ids = append(ids, assoc.CandidateID)
	}
	grouping := GroupByStage(process.Stages, associations, i.state.CandidatesByIDs(ids))
	now := i.now()
	for _, stage := range process.Stages {
		bucket := grouping.Buckets[stage.ID]
		cards := make([]boardapimodels.CardView, 0, len(bucket))
		for _, card := range bucket {
			cards = append(cards, boardapimodels.CardConvert(card.Association, card.Candidate, now))
		}
		view.Columns = append(view.Columns, boardapimodels.ColumnConvert(stage, cards))
	}
	view.Skipped = len(grouping.Skipped)
	return view
}

func (i *impl) stageName(processID, stageID string) string {
	for _, stage := range i.state.StageList(processID) {
		if stage.ID == stageID {
			return stage.Name
		}
	}
	return stageID
}

func (i *impl) getSession(userID string) *session {
	sess, ok := i.sessions[userID]
	if !ok {
		sess = &session{}
		i.sessions[userID] = sess
	}
	return sess
}

func (i *impl) getLogger(userID, processID string) *log.Entry {
	logger := log.WithField("user_id", userID)
	if processID != "" {
		logger = logger.WithField("process_id", processID)
	}
	return logger
}
