package fixtures

import (
	"os"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
	pipelinestate "hr-pipeline-backend/lib/pipeline-state"
	processhandler "hr-pipeline-backend/lib/process"
	"hr-pipeline-backend/models"
	dbmodels "hr-pipeline-backend/models/db"
)

var ErrFixturesNotFound = errors.New("файл начальных данных не найден")

type fixtureFile struct {
	Processes    []processFixture     `yaml:"processes"`
	Candidates   []candidateFixture   `yaml:"candidates"`
	Associations []associationFixture `yaml:"associations"`
}

// processFixture этапы берутся из template, если список stages пуст
type processFixture struct {
	ID              string                  `yaml:"id"`
	Title           string                  `yaml:"title"`
	Department      string                  `yaml:"department"`
	TargetRole      string                  `yaml:"target_role"`
	OpenedPositions int                     `yaml:"opened_positions"`
	Status          models.ProcessStatus    `yaml:"status"`
	Responsible     string                  `yaml:"responsible"`
	Template        models.TemplateCategory `yaml:"template"`
	Stages          []stageFixture          `yaml:"stages"`
}

type stageFixture struct {
	ID           string               `yaml:"id"`
	Name         string               `yaml:"name"`
	Description  string               `yaml:"description"`
	Category     models.StageCategory `yaml:"category"`
	Responsible  string               `yaml:"responsible"`
	DurationDays int                  `yaml:"duration_days"`
	Mandatory    bool                 `yaml:"mandatory"`
}

type candidateFixture struct {
	ID          string   `yaml:"id"`
	FirstName   string   `yaml:"first_name"`
	LastName    string   `yaml:"last_name"`
	MiddleName  string   `yaml:"middle_name"`
	Phone       string   `yaml:"phone"`
	Email       string   `yaml:"email"`
	DesiredRole string   `yaml:"desired_role"`
	Skills      []string `yaml:"skills"`
	Comment     string   `yaml:"comment"`
}

type associationFixture struct {
	ID             string                 `yaml:"id"`
	CandidateID    string                 `yaml:"candidate_id"`
	ProcessID      string                 `yaml:"process_id"`
	StageID        string                 `yaml:"stage_id"`
	Status         models.CandidateStatus `yaml:"status"`
	StageChangedAt time.Time              `yaml:"stage_changed_at"`
}

func Load(path string) (pipelinestate.Snapshot, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return pipelinestate.Snapshot{}, errors.Wrap(ErrFixturesNotFound, path)
		}
		return pipelinestate.Snapshot{}, errors.Wrap(err, "ошибка чтения файла начальных данных")
	}
	return Parse(raw)
}

// Parse ссылки на этап в участии можно задавать порядковым номером: "#2"
func Parse(raw []byte) (pipelinestate.Snapshot, error) {
	var file fixtureFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return pipelinestate.Snapshot{}, errors.Wrap(err, "ошибка разбора файла начальных данных")
	}
	snapshot := pipelinestate.Snapshot{
		Processes:    make([]dbmodels.SelectionProcess, 0, len(file.Processes)),
		Candidates:   make([]dbmodels.Candidate, 0, len(file.Candidates)),
		Associations: make([]dbmodels.CandidateProcess, 0, len(file.Associations)),
	}
	for _, item := range file.Processes {
		if item.ID == "" {
			return pipelinestate.Snapshot{}, errors.Errorf("не указан идентификатор процесса подбора '%v'", item.Title)
		}
		status := item.Status
		if status == "" {
			status = models.ProcessStatusActive
		}
		if !status.IsValid() {
			return pipelinestate.Snapshot{}, errors.Errorf("неизвестный статус процесса подбора '%v': %v", item.ID, status)
		}
		rec := dbmodels.SelectionProcess{
			BaseModel:       dbmodels.BaseModel{ID: item.ID},
			Title:           item.Title,
			Department:      item.Department,
			TargetRole:      item.TargetRole,
			OpenedPositions: item.OpenedPositions,
			Status:          status,
			ResponsibleName: item.Responsible,
			TemplateCode:    item.Template,
		}
		rec.Stages = processStages(item)
		snapshot.Processes = append(snapshot.Processes, rec)
	}
	for _, item := range file.Candidates {
		if item.ID == "" {
			return pipelinestate.Snapshot{}, errors.Errorf("не указан идентификатор кандидата '%v %v'", item.LastName, item.FirstName)
		}
		snapshot.Candidates = append(snapshot.Candidates, dbmodels.Candidate{
			BaseModel:   dbmodels.BaseModel{ID: item.ID},
			FirstName:   item.FirstName,
			LastName:    item.LastName,
			MiddleName:  item.MiddleName,
			Phone:       item.Phone,
			Email:       item.Email,
			DesiredRole: item.DesiredRole,
			Skills:      item.Skills,
			Comment:     item.Comment,
		})
	}
	for _, item := range file.Associations {
		status := item.Status
		if status == "" {
			status = models.CandidateStatusInProgress
		}
		snapshot.Associations = append(snapshot.Associations, dbmodels.CandidateProcess{
			BaseModel:        dbmodels.BaseModel{ID: item.ID},
			CandidateID:      item.CandidateID,
			ProcessID:        item.ProcessID,
			SelectionStageID: resolveStageID(snapshot.Processes, item.ProcessID, item.StageID),
			Status:           status,
			StageChangedAt:   item.StageChangedAt,
		})
	}
	return snapshot, nil
}

func processStages(item processFixture) []dbmodels.SelectionStage {
	result := make([]dbmodels.SelectionStage, 0, len(item.Stages))
	if len(item.Stages) == 0 && item.Template != "" {
		for k, stage := range processhandler.TemplateStages(item.Template) {
			rec := stage.ToDB()
			rec.ID = templateStageID(item.ID, k+1)
			rec.StageOrder = k + 1
			result = append(result, rec)
		}
		return result
	}
	for k, stage := range item.Stages {
		id := stage.ID
		if id == "" {
			id = templateStageID(item.ID, k+1)
		}
		category := stage.Category
		if category == "" {
			category = models.StageCategoryInterview
		}
		result = append(result, dbmodels.SelectionStage{
			BaseModel:       dbmodels.BaseModel{ID: id},
			ProcessID:       item.ID,
			StageOrder:      k + 1,
			Name:            stage.Name,
			Description:     stage.Description,
			Category:        category,
			ResponsibleName: stage.Responsible,
			DurationDays:    stage.DurationDays,
			Mandatory:       stage.Mandatory,
		})
	}
	return result
}

func resolveStageID(processes []dbmodels.SelectionProcess, processID, stageRef string) string {
	if len(stageRef) < 2 || stageRef[0] != '#' {
		return stageRef
	}
	for _, process := range processes {
		if process.ID != processID {
			continue
		}
		for _, stage := range process.Stages {
			if "#"+strconv.Itoa(stage.StageOrder) == stageRef {
				return stage.ID
			}
		}
	}
	return stageRef
}

func templateStageID(processID string, rank int) string {
	return processID + "-stage-" + strconv.Itoa(rank)
}
