package fixtures

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	pipelinestate "hr-pipeline-backend/lib/pipeline-state"
	processhandler "hr-pipeline-backend/lib/process"
	"hr-pipeline-backend/models"
)

const testFixtures = `
processes:
  - id: dev
    title: Go разработчик
    template: default
  - id: office
    title: Офис-менеджер
    status: paused
    stages:
      - name: Скрининг
        mandatory: true
      - id: office-offer
        name: Оффер
        category: approval
candidates:
  - id: c1
    first_name: Иван
    last_name: Иванов
    skills: [Go, SQL]
associations:
  - id: a1
    candidate_id: c1
    process_id: dev
    stage_id: "#2"
  - id: a2
    candidate_id: c1
    process_id: office
    stage_id: office-offer
    status: approved
`

func TestParse(t *testing.T) {
	t.Run(`stages from template and list`, func(t *testing.T) {
		snapshot, err := Parse([]byte(testFixtures))
		require.NoError(t, err)
		require.Len(t, snapshot.Processes, 2)

		dev := snapshot.Processes[0]
		require.Equal(t, models.ProcessStatusActive, dev.Status)
		require.Len(t, dev.Stages, len(processhandler.TemplateStages(models.TemplateCategoryDefault)))
		require.Equal(t, "dev-stage-1", dev.Stages[0].ID)

		office := snapshot.Processes[1]
		require.Equal(t, models.ProcessStatusPaused, office.Status)
		require.Equal(t, "office-stage-1", office.Stages[0].ID)
		require.Equal(t, models.StageCategoryInterview, office.Stages[0].Category)
		require.Equal(t, "office-offer", office.Stages[1].ID)
		require.Equal(t, 2, office.Stages[1].StageOrder)

		require.Equal(t, "dev-stage-2", snapshot.Associations[0].SelectionStageID)
		require.Equal(t, models.CandidateStatusInProgress, snapshot.Associations[0].Status)
		require.Equal(t, models.CandidateStatusApproved, snapshot.Associations[1].Status)
	})

	t.Run(`restore into state`, func(t *testing.T) {
		snapshot, err := Parse([]byte(testFixtures))
		require.NoError(t, err)
		st := pipelinestate.NewInstance(nil)
		report := st.Restore(snapshot)
		require.Zero(t, report.Dropped)
		require.Zero(t, report.Repaired)
		require.Equal(t, "dev-stage-2", st.GetAssociation("a1").SelectionStageID)
		require.Equal(t, []string{"Go", "SQL"}, []string(st.GetCandidate("c1").Skills))
	})

	t.Run(`errors`, func(t *testing.T) {
		_, err := Parse([]byte("processes: [title"))
		require.Error(t, err)

		_, err = Parse([]byte("processes:\n  - title: Без идентификатора\n"))
		require.Error(t, err)

		_, err = Parse([]byte("processes:\n  - id: p1\n    status: closed\n"))
		require.Error(t, err)
	})
}

func TestLoad(t *testing.T) {
	t.Run(`repository fixtures`, func(t *testing.T) {
		snapshot, err := Load("../../fixtures.yml")
		require.NoError(t, err)
		require.NotEmpty(t, snapshot.Processes)

		st := pipelinestate.NewInstance(nil)
		report := st.Restore(snapshot)
		require.Zero(t, report.Dropped)
		require.Zero(t, report.Repaired)
		require.Len(t, st.ListProcesses(), len(snapshot.Processes))
	})

	t.Run(`missing file`, func(t *testing.T) {
		_, err := Load("not-exist.yml")
		require.True(t, errors.Is(err, ErrFixturesNotFound))
	})
}
