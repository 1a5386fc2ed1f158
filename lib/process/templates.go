package processhandler

import (
	"hr-pipeline-backend/models"
	processapimodels "hr-pipeline-backend/models/api/process"
	dbmodels "hr-pipeline-backend/models/db"
)

var templateOrder = []models.TemplateCategory{
	models.TemplateCategoryDefault,
	models.TemplateCategoryTechnical,
	models.TemplateCategorySales,
	models.TemplateCategoryAdministrative,
}

var (
	screenStage = processapimodels.StageData{
		Name:         dbmodels.ScreenStage,
		Description:  "Отбор резюме на соответствие требованиям",
		Category:     models.StageCategoryScreening,
		DurationDays: 2,
		Mandatory:    true,
	}
	hrInterviewStage = processapimodels.StageData{
		Name:         dbmodels.HrInterviewStage,
		Description:  "Знакомство, мотивация, ожидания кандидата",
		Category:     models.StageCategoryInterview,
		DurationDays: 3,
	}
	techInterviewStage = processapimodels.StageData{
		Name:         dbmodels.TechInterviewStage,
		Description:  "Проверка профессиональных навыков",
		Category:     models.StageCategoryInterview,
		DurationDays: 5,
	}
	testStage = processapimodels.StageData{
		Name:         dbmodels.TestStage,
		Description:  "Онлайн тестирование",
		Category:     models.StageCategoryTest,
		DurationDays: 3,
	}
	exerciseStage = processapimodels.StageData{
		Name:         dbmodels.ExerciseStage,
		Description:  "Выполнение практического задания",
		Category:     models.StageCategoryExercise,
		DurationDays: 7,
	}
	managerInterviewStage = processapimodels.StageData{
		Name:         dbmodels.ManagerInterviewStage,
		Description:  "Финальное интервью с руководителем",
		Category:     models.StageCategoryInterview,
		DurationDays: 5,
	}
	offerStage = processapimodels.StageData{
		Name:         dbmodels.OfferStage,
		Description:  "Согласование и отправка предложения о работе",
		Category:     models.StageCategoryApproval,
		DurationDays: 3,
		Mandatory:    true,
	}
)

var templates = map[models.TemplateCategory][]processapimodels.StageData{
	models.TemplateCategoryDefault: {
		screenStage,
		hrInterviewStage,
		managerInterviewStage,
		offerStage,
	},
	models.TemplateCategoryTechnical: {
		screenStage,
		hrInterviewStage,
		testStage,
		techInterviewStage,
		exerciseStage,
		managerInterviewStage,
		offerStage,
	},
	models.TemplateCategorySales: {
		screenStage,
		hrInterviewStage,
		exerciseStage,
		managerInterviewStage,
		offerStage,
	},
	models.TemplateCategoryAdministrative: {
		screenStage,
		hrInterviewStage,
		testStage,
		offerStage,
	},
}

// TemplateStages копия этапов шаблона, nil для неизвестного шаблона
func TemplateStages(code models.TemplateCategory) []processapimodels.StageData {
	list, ok := templates[code]
	if !ok {
		return nil
	}
	return append([]processapimodels.StageData{}, list...)
}
