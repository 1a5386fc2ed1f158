package candidatehandler

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	filestorage "hr-pipeline-backend/lib/file-storage"
	pipelinestate "hr-pipeline-backend/lib/pipeline-state"
	candidateapimodels "hr-pipeline-backend/models/api/candidate"
	dbmodels "hr-pipeline-backend/models/db"
)

type Provider interface {
	Create(data candidateapimodels.CandidateData) (id string, err error)
	GetByID(id string) (item candidateapimodels.CandidateView, err error)
	Update(id string, data candidateapimodels.CandidateData) error
	List(filter candidateapimodels.CandidateFilter) (list []candidateapimodels.CandidateView, rowCount int64, err error)
	UploadResume(ctx context.Context, id string, file []byte, fileName, contentType string) (hMsg string, err error)
	GetResume(ctx context.Context, id string) (body []byte, fileName string, err error)
}

var Instance Provider

func NewHandler() {
	Instance = NewInstance(pipelinestate.Instance, filestorage.Instance)
}

type state interface {
	pipelinestate.Reader
	pipelinestate.CandidateWriter
}

func NewInstance(st state, fileStorage filestorage.Provider) Provider {
	return impl{
		state:       st,
		fileStorage: fileStorage,
	}
}

type impl struct {
	state       state
	fileStorage filestorage.Provider
}

var allowedResumeExt = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
	".rtf":  true,
	".txt":  true,
}

func (i impl) Create(data candidateapimodels.CandidateData) (id string, err error) {
	id, err = i.state.CreateCandidate(data.ToDB())
	if err != nil {
		return "", errors.Wrap(err, "ошибка добавления кандидата")
	}
	i.getLogger(id).Info("добавлен кандидат")
	return id, nil
}

func (i impl) GetByID(id string) (item candidateapimodels.CandidateView, err error) {
	rec := i.state.GetCandidate(id)
	if rec == nil {
		return candidateapimodels.CandidateView{}, pipelinestate.ErrCandidateNotFound
	}
	result := candidateapimodels.CandidateConvert(*rec)
	for _, process := range i.state.ListProcesses() {
		for _, assoc := range i.state.AssociationsByProcess(process.ID) {
			if assoc.CandidateID != id {
				continue
			}
			result.Processes = append(result.Processes, candidateapimodels.ParticipationView{
				AssociationID: assoc.ID,
				ProcessID:     process.ID,
				ProcessTitle:  process.Title,
				StageName:     stageName(process.Stages, assoc.SelectionStageID),
				StatusName:    assoc.Status.ToHuman(),
			})
		}
	}
	return result, nil
}

func (i impl) Update(id string, data candidateapimodels.CandidateData) error {
	rec := data.ToDB()
	rec.ID = id
	err := i.state.UpdateCandidate(rec)
	if err != nil {
		return err
	}
	i.getLogger(id).Info("обновлены данные кандидата")
	return nil
}

func (i impl) List(filter candidateapimodels.CandidateFilter) (list []candidateapimodels.CandidateView, rowCount int64, err error) {
	search := strings.ToLower(strings.TrimSpace(filter.Search))
	skill := strings.TrimSpace(filter.Skill)
	filtered := make([]dbmodels.Candidate, 0)
	for _, rec := range i.state.ListCandidates() {
		if skill != "" && !rec.HasSkill(skill) {
			continue
		}
		if search != "" && !matchCandidate(rec, search) {
			continue
		}
		filtered = append(filtered, rec)
	}
	rowCount = int64(len(filtered))
	page, limit := filter.GetPage()
	offset := (page - 1) * limit
	list = []candidateapimodels.CandidateView{}
	for k := offset; k < len(filtered) && k < offset+limit; k++ {
		list = append(list, candidateapimodels.CandidateConvert(filtered[k]))
	}
	return list, rowCount, nil
}

func (i impl) UploadResume(ctx context.Context, id string, file []byte, fileName, contentType string) (hMsg string, err error) {
	logger := i.getLogger(id).
		WithField("file_name", fileName)
	if i.state.GetCandidate(id) == nil {
		return "кандидат не найден", nil
	}
	if len(file) == 0 {
		return "файл резюме пустой", nil
	}
	fileName = filepath.Base(fileName)
	if !allowedResumeExt[strings.ToLower(filepath.Ext(fileName))] {
		return "неподдерживаемый формат файла резюме", nil
	}
	err = i.fileStorage.UploadResume(ctx, id, file, fileName, contentType)
	if err != nil {
		return "", err
	}
	err = i.state.SetResumeFile(id, fileName)
	if err != nil {
		return "", errors.Wrap(err, "ошибка сохранения имени файла резюме")
	}
	logger.Info("загружено резюме кандидата")
	return "", nil
}

func (i impl) GetResume(ctx context.Context, id string) (body []byte, fileName string, err error) {
	rec := i.state.GetCandidate(id)
	if rec == nil {
		return nil, "", pipelinestate.ErrCandidateNotFound
	}
	if rec.ResumeFileName == "" {
		return nil, "", filestorage.ErrFileNotFound
	}
	body, err = i.fileStorage.GetResume(ctx, id, rec.ResumeFileName)
	if err != nil {
		return nil, "", err
	}
	return body, rec.ResumeFileName, nil
}

func (i impl) getLogger(candidateID string) *log.Entry {
	return log.WithField("candidate_id", candidateID)
}

func matchCandidate(rec dbmodels.Candidate, search string) bool {
	for _, value := range []string{rec.GetFIO(), rec.Email, rec.Phone, rec.DesiredRole} {
		if strings.Contains(strings.ToLower(value), search) {
			return true
		}
	}
	return false
}

func stageName(stages []dbmodels.SelectionStage, stageID string) string {
	for _, stage := range stages {
		if stage.ID == stageID {
			return stage.Name
		}
	}
	return ""
}
