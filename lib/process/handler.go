package processhandler

import (
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	pipelinestate "hr-pipeline-backend/lib/pipeline-state"
	"hr-pipeline-backend/models"
	processapimodels "hr-pipeline-backend/models/api/process"
	dbmodels "hr-pipeline-backend/models/db"
)

type Provider interface {
	Templates() []processapimodels.TemplateView
	Create(userID, userName string, data processapimodels.ProcessCreate) (id string, err error)
	GetByID(id string) (item processapimodels.ProcessView, err error)
	List(filter processapimodels.ProcessFilter) (list []processapimodels.ProcessView, rowCount int64, err error)
	Update(id string, data processapimodels.ProcessData) error
	StatusChange(id, userID string, status models.ProcessStatus) error
	StageList(id string) (list []processapimodels.StageView, err error)
	StageCreate(id string, data processapimodels.StageAdd) (stageID string, err error)
	StageUpdate(id, stageID string, data processapimodels.StageData) error
	StageDelete(id, stageID string) (hMsg string, err error)
	StageChangeOrder(id, stageID string, newOrder int) error
}

var Instance Provider

func NewHandler() {
	Instance = NewInstance(pipelinestate.Instance)
}

type state interface {
	pipelinestate.Reader
	pipelinestate.ProcessWriter
}

func NewInstance(st state) Provider {
	return impl{
		state: st,
	}
}

type impl struct {
	state state
}

func (i impl) Templates() []processapimodels.TemplateView {
	result := make([]processapimodels.TemplateView, 0, len(templateOrder))
	for _, code := range templateOrder {
		result = append(result, processapimodels.TemplateView{
			Code:   code,
			Name:   code.ToHuman(),
			Stages: TemplateStages(code),
		})
	}
	return result
}

func (i impl) Create(userID, userName string, data processapimodels.ProcessCreate) (id string, err error) {
	stages := data.Stages
	if data.TemplateCode != "" {
		stages = TemplateStages(data.TemplateCode)
		if stages == nil {
			return "", errors.New("неизвестный шаблон этапов подбора")
		}
	}
	rec := dbmodels.SelectionProcess{
		Title:           data.Title,
		Department:      data.Department,
		TargetRole:      data.TargetRole,
		OpenedPositions: data.OpenedPositions,
		Status:          models.ProcessStatusActive,
		ResponsibleID:   userID,
		ResponsibleName: data.ResponsibleName,
		TemplateCode:    data.TemplateCode,
		Stages:          make([]dbmodels.SelectionStage, 0, len(stages)),
	}
	if rec.ResponsibleName == "" {
		rec.ResponsibleName = userName
	}
	for _, stage := range stages {
		rec.Stages = append(rec.Stages, stage.ToDB())
	}
	id, err = i.state.CreateProcess(rec)
	if err != nil {
		return "", errors.Wrap(err, "ошибка создания процесса подбора")
	}
	i.getLogger(id).
		WithField("user_id", userID).
		WithField("template", data.TemplateCode).
		Info("создан процесс подбора")
	return id, nil
}

func (i impl) GetByID(id string) (item processapimodels.ProcessView, err error) {
	rec := i.state.GetProcess(id)
	if rec == nil {
		return processapimodels.ProcessView{}, pipelinestate.ErrProcessNotFound
	}
	return processapimodels.ProcessConvert(*rec, i.stageTotals(id)), nil
}

func (i impl) List(filter processapimodels.ProcessFilter) (list []processapimodels.ProcessView, rowCount int64, err error) {
	search := strings.ToLower(strings.TrimSpace(filter.Search))
	filtered := make([]dbmodels.SelectionProcess, 0)
	for _, rec := range i.state.ListProcesses() {
		if len(filter.Statuses) != 0 && !containsStatus(filter.Statuses, rec.Status) {
			continue
		}
		if search != "" && !matchProcess(rec, search) {
			continue
		}
		filtered = append(filtered, rec)
	}
	rowCount = int64(len(filtered))
	page, limit := filter.GetPage()
	offset := (page - 1) * limit
	list = []processapimodels.ProcessView{}
	for k := offset; k < len(filtered) && k < offset+limit; k++ {
		list = append(list, processapimodels.ProcessConvert(filtered[k], i.stageTotals(filtered[k].ID)))
	}
	return list, rowCount, nil
}

func (i impl) Update(id string, data processapimodels.ProcessData) error {
	current := i.state.GetProcess(id)
	if current == nil {
		return pipelinestate.ErrProcessNotFound
	}
	current.Title = data.Title
	current.Department = data.Department
	current.TargetRole = data.TargetRole
	current.OpenedPositions = data.OpenedPositions
	if data.ResponsibleName != "" {
		current.ResponsibleName = data.ResponsibleName
	}
	err := i.state.UpdateProcess(*current)
	if err != nil {
		return errors.Wrap(err, "ошибка обновления процесса подбора")
	}
	i.getLogger(id).Info("обновлен процесс подбора")
	return nil
}

func (i impl) StatusChange(id, userID string, status models.ProcessStatus) error {
	changed, err := i.state.SetProcessStatus(id, status)
	if err != nil {
		return err
	}
	if changed {
		i.getLogger(id).
			WithField("user_id", userID).
			WithField("status", status).
			Info("изменен статус процесса подбора")
	}
	return nil
}

func (i impl) StageList(id string) (list []processapimodels.StageView, err error) {
	if i.state.GetProcess(id) == nil {
		return nil, pipelinestate.ErrProcessNotFound
	}
	totals := i.stageTotals(id)
	stages := i.state.StageList(id)
	list = make([]processapimodels.StageView, 0, len(stages))
	for _, rec := range stages {
		view := processapimodels.StageConvert(rec)
		view.CandidateQty = totals[rec.ID]
		list = append(list, view)
	}
	return list, nil
}

func (i impl) StageCreate(id string, data processapimodels.StageAdd) (stageID string, err error) {
	stageID, err = i.state.AddStage(id, data.ToDB(), data.Rank)
	if err != nil {
		return "", err
	}
	i.getLogger(id).
		WithField("stage_id", stageID).
		Info("добавлен этап подбора")
	return stageID, nil
}

func (i impl) StageUpdate(id, stageID string, data processapimodels.StageData) error {
	rec := data.ToDB()
	rec.ID = stageID
	return i.state.UpdateStage(id, rec)
}

func (i impl) StageDelete(id, stageID string) (hMsg string, err error) {
	logger := i.getLogger(id).
		WithField("stage_id", stageID)
	hMsg, err = i.state.RemoveStage(id, stageID)
	if err != nil {
		return "", err
	}
	if hMsg != "" {
		logger.WithField("reason", hMsg).Info("удаление этапа подбора отклонено")
		return hMsg, nil
	}
	logger.Info("удален этап подбора")
	return "", nil
}

func (i impl) StageChangeOrder(id, stageID string, newOrder int) error {
	changed, err := i.state.ReorderStage(id, stageID, newOrder)
	if err != nil {
		return err
	}
	if changed {
		i.getLogger(id).
			WithField("stage_id", stageID).
			WithField("new_order", newOrder).
			Info("изменен порядок этапов подбора")
	}
	return nil
}

func (i impl) stageTotals(processID string) map[string]int {
	result := map[string]int{}
	for _, assoc := range i.state.AssociationsByProcess(processID) {
		result[assoc.SelectionStageID]++
	}
	return result
}

func (i impl) getLogger(processID string) *log.Entry {
	return log.WithField("process_id", processID)
}

func containsStatus(list []models.ProcessStatus, status models.ProcessStatus) bool {
	for _, s := range list {
		if s == status {
			return true
		}
	}
	return false
}

func matchProcess(rec dbmodels.SelectionProcess, search string) bool {
	for _, value := range []string{rec.Title, rec.Department, rec.TargetRole} {
		if strings.Contains(strings.ToLower(value), search) {
			return true
		}
	}
	return false
}
