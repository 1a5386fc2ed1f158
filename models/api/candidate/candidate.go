package candidateapimodels

import (
	apimodels "hr-pipeline-backend/models/api"
	dbmodels "hr-pipeline-backend/models/db"
)

var candidateFieldNames = map[string]string{
	"FirstName":   "имя",
	"LastName":    "фамилия",
	"Email":       "емайл",
	"Phone":       "телефон",
	"DesiredRole": "желаемая должность",
}

type CandidateData struct {
	FirstName   string   `json:"first_name" validate:"required,max=255"`   // Имя
	LastName    string   `json:"last_name" validate:"required,max=255"`    // Фамилия
	MiddleName  string   `json:"middle_name" validate:"max=255"`           // Отчество
	Phone       string   `json:"phone" validate:"max=255"`                 // Телефон
	Email       string   `json:"email" validate:"omitempty,email,max=255"` // Емайл
	DesiredRole string   `json:"desired_role" validate:"max=255"`          // Желаемая должность
	Skills      []string `json:"skills"`                                   // Навыки
	Comment     string   `json:"comment"`                                  // Комментарий
}

func (c CandidateData) Validate() error {
	return apimodels.ValidateStruct(c, candidateFieldNames)
}

func (c CandidateData) ToDB() dbmodels.Candidate {
	return dbmodels.Candidate{
		FirstName:   c.FirstName,
		LastName:    c.LastName,
		MiddleName:  c.MiddleName,
		Phone:       c.Phone,
		Email:       c.Email,
		DesiredRole: c.DesiredRole,
		Skills:      c.Skills,
		Comment:     c.Comment,
	}
}

type CandidateFilter struct {
	apimodels.Pagination
	Search string `json:"search"` // Поиск по ФИО, емайлу, телефону
	Skill  string `json:"skill"`  // Навык
}

type CandidateView struct {
	CandidateData
	ID           string              `json:"id"`            // Идентификатор кандидата
	FIO          string              `json:"fio"`           // ФИО
	HasResume    bool                `json:"has_resume"`    // Загружено резюме
	ResumeFile   string              `json:"resume_file"`   // Имя файла резюме
	CreationDate string              `json:"creation_date"` // Дата добавления
	Processes    []ParticipationView `json:"processes"`     // Участие в процессах подбора
}

type ParticipationView struct {
	AssociationID string `json:"association_id"` // Идентификатор участия
	ProcessID     string `json:"process_id"`     // Идентификатор процесса
	ProcessTitle  string `json:"process_title"`  // Процесс подбора
	StageName     string `json:"stage_name"`     // Текущий этап
	StatusName    string `json:"status_name"`    // Статус
}

func CandidateConvert(rec dbmodels.Candidate) CandidateView {
	skills := []string(rec.Skills)
	if skills == nil {
		skills = []string{}
	}
	return CandidateView{
		CandidateData: CandidateData{
			FirstName:   rec.FirstName,
			LastName:    rec.LastName,
			MiddleName:  rec.MiddleName,
			Phone:       rec.Phone,
			Email:       rec.Email,
			DesiredRole: rec.DesiredRole,
			Skills:      skills,
			Comment:     rec.Comment,
		},
		ID:           rec.ID,
		FIO:          rec.GetFIO(),
		HasResume:    rec.ResumeFileName != "",
		ResumeFile:   rec.ResumeFileName,
		CreationDate: rec.CreatedAt.Format("02.01.2006"),
		Processes:    []ParticipationView{},
	}
}
