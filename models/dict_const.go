package models

type ProcessStatus string

const (
	ProcessStatusActive   ProcessStatus = "active"   // идет подбор
	ProcessStatusPaused   ProcessStatus = "paused"   // приостановлен
	ProcessStatusFinished ProcessStatus = "finished" // завершен
)

var processStatusHumanName = map[ProcessStatus]string{
	ProcessStatusActive:   "Активный",
	ProcessStatusPaused:   "Приостановлен",
	ProcessStatusFinished: "Завершен",
}

func (s ProcessStatus) ToHuman() string {
	if human, exist := processStatusHumanName[s]; exist {
		return human
	}
	return string(s)
}

func (s ProcessStatus) IsValid() bool {
	_, ok := processStatusHumanName[s]
	return ok
}

type StageCategory string

const (
	StageCategoryScreening StageCategory = "screening"
	StageCategoryInterview StageCategory = "interview"
	StageCategoryTest      StageCategory = "test"
	StageCategoryExercise  StageCategory = "exercise"
	StageCategoryApproval  StageCategory = "approval"
)

var stageCategoryHumanName = map[StageCategory]string{
	StageCategoryScreening: "Скрининг",
	StageCategoryInterview: "Интервью",
	StageCategoryTest:      "Тестирование",
	StageCategoryExercise:  "Практическое задание",
	StageCategoryApproval:  "Согласование",
}

func (c StageCategory) ToHuman() string {
	if human, exist := stageCategoryHumanName[c]; exist {
		return human
	}
	return string(c)
}

func (c StageCategory) IsValid() bool {
	_, ok := stageCategoryHumanName[c]
	return ok
}

// CandidateStatus статус кандидата в процессе подбора, не зависит от этапа
type CandidateStatus string

const (
	CandidateStatusInProgress CandidateStatus = "in_progress"
	CandidateStatusWaiting    CandidateStatus = "waiting"
	CandidateStatusApproved   CandidateStatus = "approved"
	CandidateStatusRejected   CandidateStatus = "rejected"
)

var candidateStatusHumanName = map[CandidateStatus]string{
	CandidateStatusInProgress: "В процессе",
	CandidateStatusWaiting:    "Ожидание",
	CandidateStatusApproved:   "Одобрен",
	CandidateStatusRejected:   "Отклонен",
}

func (s CandidateStatus) ToHuman() string {
	if human, exist := candidateStatusHumanName[s]; exist {
		return human
	}
	return string(s)
}

func (s CandidateStatus) IsValid() bool {
	_, ok := candidateStatusHumanName[s]
	return ok
}

type TemplateCategory string

const (
	TemplateCategoryDefault        TemplateCategory = "default"
	TemplateCategoryTechnical      TemplateCategory = "technical"
	TemplateCategorySales          TemplateCategory = "sales"
	TemplateCategoryAdministrative TemplateCategory = "administrative"
)

var templateCategoryHumanName = map[TemplateCategory]string{
	TemplateCategoryDefault:        "Базовый",
	TemplateCategoryTechnical:      "Технические специальности",
	TemplateCategorySales:          "Продажи",
	TemplateCategoryAdministrative: "Административный персонал",
}

func (c TemplateCategory) ToHuman() string {
	if name, ok := templateCategoryHumanName[c]; ok {
		return name
	}
	return string(c)
}

func (c TemplateCategory) IsValid() bool {
	_, ok := templateCategoryHumanName[c]
	return ok
}

// MoveOutcome результат переноса кандидата на доске подбора
type MoveOutcome string

const (
	MoveOutcomeMoved    MoveOutcome = "moved"
	MoveOutcomeNoOp     MoveOutcome = "noop"
	MoveOutcomeRejected MoveOutcome = "rejected"
)

type BoardEmptyState string

const (
	BoardEmptyNoProcess BoardEmptyState = "no_process"
	BoardEmptyNoStages  BoardEmptyState = "no_stages"
)
