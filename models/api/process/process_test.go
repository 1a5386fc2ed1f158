package processapimodels

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"hr-pipeline-backend/models"
)

func TestProcessValidate(t *testing.T) {
	valid := ProcessData{
		Title:           "Go разработчик",
		TargetRole:      "Senior Go Developer",
		OpenedPositions: 2,
	}

	t.Run(`valid process`, func(t *testing.T) {
		require.NoError(t, valid.Validate())
		require.NoError(t, ProcessCreate{ProcessData: valid, TemplateCode: models.TemplateCategoryTechnical}.Validate())
		require.NoError(t, ProcessCreate{ProcessData: valid, Stages: []StageData{{Name: "Скрининг"}}}.Validate())
	})

	t.Run(`required fields`, func(t *testing.T) {
		data := valid
		data.Title = ""
		err := data.Validate()
		require.Error(t, err)
		require.Contains(t, err.Error(), "название процесса")

		data = valid
		data.TargetRole = ""
		require.ErrorContains(t, data.Validate(), "должность")
	})

	t.Run(`length and range`, func(t *testing.T) {
		data := valid
		data.Title = strings.Repeat("а", 256)
		require.ErrorContains(t, data.Validate(), "превышена длина")

		data = valid
		data.OpenedPositions = -1
		require.ErrorContains(t, data.Validate(), "кол-во вакантных мест")
	})

	t.Run(`template and stages`, func(t *testing.T) {
		require.Error(t, ProcessCreate{ProcessData: valid, TemplateCode: "unknown"}.Validate())
		require.Error(t, ProcessCreate{
			ProcessData:  valid,
			TemplateCode: models.TemplateCategorySales,
			Stages:       []StageData{{Name: "Звонок"}},
		}.Validate())
		require.Error(t, ProcessCreate{ProcessData: valid, Stages: []StageData{{Name: ""}}}.Validate())
	})

	t.Run(`status change`, func(t *testing.T) {
		require.NoError(t, StatusChangeRequest{Status: models.ProcessStatusFinished}.Validate())
		require.Error(t, StatusChangeRequest{Status: "closed"}.Validate())
	})
}

func TestStageData(t *testing.T) {
	t.Run(`unknown category`, func(t *testing.T) {
		require.Error(t, StageData{Name: "Тест", Category: "call"}.Validate())
		require.NoError(t, StageData{Name: "Тест", Category: models.StageCategoryTest}.Validate())
	})

	t.Run(`default category`, func(t *testing.T) {
		rec := StageData{Name: "Интервью", DurationDays: 3, Mandatory: true}.ToDB()
		require.Equal(t, models.StageCategoryInterview, rec.Category)
		require.Equal(t, 3, rec.DurationDays)
		require.True(t, rec.Mandatory)
	})
}
