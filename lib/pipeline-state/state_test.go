package pipelinestate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"hr-pipeline-backend/models"
	dbmodels "hr-pipeline-backend/models/db"
)

func newTestState(t *testing.T) (Provider, *[]ChangeEvent) {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	st := NewInstance(func() time.Time { return now })
	events := &[]ChangeEvent{}
	st.Subscribe(func(event ChangeEvent) {
		*events = append(*events, event)
	})
	return st, events
}

func createProcess(t *testing.T, st Provider, stageNames ...string) string {
	stages := make([]dbmodels.SelectionStage, 0, len(stageNames))
	for _, name := range stageNames {
		stages = append(stages, dbmodels.SelectionStage{Name: name, Category: models.StageCategoryInterview})
	}
	id, err := st.CreateProcess(dbmodels.SelectionProcess{Title: "Go разработчик", Stages: stages})
	require.NoError(t, err)
	return id
}

func stageNames(list []dbmodels.SelectionStage) []string {
	result := make([]string, 0, len(list))
	for _, stage := range list {
		result = append(result, stage.Name)
	}
	return result
}

func requireDenseRanks(t *testing.T, list []dbmodels.SelectionStage) {
	for k, stage := range list {
		require.Equal(t, k+1, stage.StageOrder)
	}
}

func TestProcessStages(t *testing.T) {
	t.Run(`create process assigns ranks and default status`, func(t *testing.T) {
		st, events := newTestState(t)
		processID := createProcess(t, st, "Скрининг", "Интервью", "Оффер")

		process := st.GetProcess(processID)
		require.NotNil(t, process)
		require.Equal(t, models.ProcessStatusActive, process.Status)
		require.Equal(t, []string{"Скрининг", "Интервью", "Оффер"}, stageNames(process.Stages))
		requireDenseRanks(t, process.Stages)
		for _, stage := range process.Stages {
			require.Equal(t, processID, stage.ProcessID)
			require.NotEmpty(t, stage.ID)
		}
		require.Len(t, *events, 1)
		require.Equal(t, EntityProcess, (*events)[0].Entity)
		require.Equal(t, ChangeCreated, (*events)[0].Kind)
	})

	t.Run(`add stage inserts at rank and shifts the rest`, func(t *testing.T) {
		st, _ := newTestState(t)
		processID := createProcess(t, st, "A", "B", "C")
		_, err := st.AddStage(processID, dbmodels.SelectionStage{Name: "X"}, 2)
		require.NoError(t, err)
		list := st.StageList(processID)
		require.Equal(t, []string{"A", "X", "B", "C"}, stageNames(list))
		requireDenseRanks(t, list)

		_, err = st.AddStage(processID, dbmodels.SelectionStage{Name: "Y"}, 0)
		require.NoError(t, err)
		require.Equal(t, []string{"A", "X", "B", "C", "Y"}, stageNames(st.StageList(processID)))

		_, err = st.AddStage("unknown", dbmodels.SelectionStage{Name: "Z"}, 1)
		require.ErrorIs(t, err, ErrProcessNotFound)
	})

	t.Run(`reorder stage keeps ranks dense`, func(t *testing.T) {
		st, events := newTestState(t)
		processID := createProcess(t, st, "A", "B", "C", "D")
		list := st.StageList(processID)
		*events = nil

		changed, err := st.ReorderStage(processID, list[0].ID, 3)
		require.NoError(t, err)
		require.True(t, changed)
		list = st.StageList(processID)
		require.Equal(t, []string{"B", "C", "A", "D"}, stageNames(list))
		requireDenseRanks(t, list)
		require.Len(t, *events, 1)

		changed, err = st.ReorderStage(processID, list[3].ID, 100)
		require.NoError(t, err)
		require.False(t, changed)

		changed, err = st.ReorderStage(processID, list[3].ID, -5)
		require.NoError(t, err)
		require.True(t, changed)
		require.Equal(t, []string{"D", "B", "C", "A"}, stageNames(st.StageList(processID)))

		_, err = st.ReorderStage(processID, "unknown", 1)
		require.ErrorIs(t, err, ErrStageNotFound)
	})

	t.Run(`remove stage refuses mandatory and occupied stages`, func(t *testing.T) {
		st, _ := newTestState(t)
		id, err := st.CreateProcess(dbmodels.SelectionProcess{
			Title: "Продажи",
			Stages: []dbmodels.SelectionStage{
				{Name: "Скрининг", Mandatory: true},
				{Name: "Интервью"},
				{Name: "Тест"},
			},
		})
		require.NoError(t, err)
		list := st.StageList(id)
		candidateID, err := st.CreateCandidate(dbmodels.Candidate{FirstName: "Иван"})
		require.NoError(t, err)
		ref, ok := st.ResolveStage(id, list[1].ID)
		require.True(t, ok)
		_, err = st.CreateAssociation(candidateID, ref)
		require.NoError(t, err)

		hMsg, err := st.RemoveStage(id, list[0].ID)
		require.NoError(t, err)
		require.NotEmpty(t, hMsg)

		hMsg, err = st.RemoveStage(id, list[1].ID)
		require.NoError(t, err)
		require.NotEmpty(t, hMsg)

		hMsg, err = st.RemoveStage(id, list[2].ID)
		require.NoError(t, err)
		require.Empty(t, hMsg)
		after := st.StageList(id)
		require.Equal(t, []string{"Скрининг", "Интервью"}, stageNames(after))
		requireDenseRanks(t, after)
	})

	t.Run(`process status change is idempotent`, func(t *testing.T) {
		st, events := newTestState(t)
		processID := createProcess(t, st, "A")
		*events = nil
		changed, err := st.SetProcessStatus(processID, models.ProcessStatusPaused)
		require.NoError(t, err)
		require.True(t, changed)
		changed, err = st.SetProcessStatus(processID, models.ProcessStatusPaused)
		require.NoError(t, err)
		require.False(t, changed)
		require.Len(t, *events, 1)

		_, err = st.SetProcessStatus(processID, "closed")
		require.ErrorIs(t, err, ErrUnknownStatus)
	})
}

func TestAssociations(t *testing.T) {
	t.Run(`resolve stage only inside own process`, func(t *testing.T) {
		st, _ := newTestState(t)
		first := createProcess(t, st, "A", "B")
		second := createProcess(t, st, "C")
		foreign := st.StageList(second)[0].ID

		_, ok := st.ResolveStage(first, foreign)
		require.False(t, ok)
		ref, ok := st.ResolveStage(second, foreign)
		require.True(t, ok)
		require.Equal(t, second, ref.ProcessID())
		require.Equal(t, foreign, ref.StageID())
	})

	t.Run(`candidate enrolled once per process`, func(t *testing.T) {
		st, _ := newTestState(t)
		processID := createProcess(t, st, "A", "B")
		candidateID, err := st.CreateCandidate(dbmodels.Candidate{FirstName: "Мария", Skills: []string{"Go"}})
		require.NoError(t, err)
		ref, _ := st.ResolveStage(processID, st.StageList(processID)[0].ID)

		id, err := st.CreateAssociation(candidateID, ref)
		require.NoError(t, err)
		assoc := st.GetAssociation(id)
		require.NotNil(t, assoc)
		require.Equal(t, models.CandidateStatusInProgress, assoc.Status)
		require.False(t, assoc.StageChangedAt.IsZero())

		_, err = st.CreateAssociation(candidateID, ref)
		require.ErrorIs(t, err, ErrAlreadyEnrolled)

		_, err = st.CreateAssociation("unknown", ref)
		require.ErrorIs(t, err, ErrCandidateNotFound)
	})

	t.Run(`move association`, func(t *testing.T) {
		st, events := newTestState(t)
		processID := createProcess(t, st, "A", "B")
		other := createProcess(t, st, "C")
		stages := st.StageList(processID)
		candidateID, _ := st.CreateCandidate(dbmodels.Candidate{FirstName: "Алексей"})
		ref, _ := st.ResolveStage(processID, stages[0].ID)
		id, err := st.CreateAssociation(candidateID, ref)
		require.NoError(t, err)
		*events = nil

		target, _ := st.ResolveStage(processID, stages[1].ID)
		previous, moved, err := st.MoveAssociation(id, target)
		require.NoError(t, err)
		require.True(t, moved)
		require.Equal(t, stages[0].ID, previous)
		require.Equal(t, stages[1].ID, st.GetAssociation(id).SelectionStageID)
		require.Len(t, *events, 1)
		require.Equal(t, processID, (*events)[0].ProcessID)

		previous, moved, err = st.MoveAssociation(id, target)
		require.NoError(t, err)
		require.False(t, moved)
		require.Equal(t, stages[1].ID, previous)
		require.Len(t, *events, 1)

		foreign, _ := st.ResolveStage(other, st.StageList(other)[0].ID)
		_, _, err = st.MoveAssociation(id, foreign)
		require.ErrorIs(t, err, ErrForeignStage)
		require.Equal(t, stages[1].ID, st.GetAssociation(id).SelectionStageID)
	})

	t.Run(`status does not change stage`, func(t *testing.T) {
		st, _ := newTestState(t)
		processID := createProcess(t, st, "A", "B")
		candidateID, _ := st.CreateCandidate(dbmodels.Candidate{FirstName: "Елена"})
		ref, _ := st.ResolveStage(processID, st.StageList(processID)[1].ID)
		id, _ := st.CreateAssociation(candidateID, ref)

		previous, changed, err := st.SetAssociationStatus(id, models.CandidateStatusRejected)
		require.NoError(t, err)
		require.True(t, changed)
		require.Equal(t, models.CandidateStatusInProgress, previous)
		assoc := st.GetAssociation(id)
		require.Equal(t, models.CandidateStatusRejected, assoc.Status)
		require.Equal(t, ref.StageID(), assoc.SelectionStageID)

		previous, changed, err = st.SetAssociationStatus(id, models.CandidateStatusRejected)
		require.NoError(t, err)
		require.False(t, changed)
		require.Equal(t, models.CandidateStatusRejected, previous)

		_, _, err = st.SetAssociationStatus(id, "hired")
		require.ErrorIs(t, err, ErrUnknownStatus)
	})

	t.Run(`readers return copies`, func(t *testing.T) {
		st, _ := newTestState(t)
		processID := createProcess(t, st, "A")
		candidateID, _ := st.CreateCandidate(dbmodels.Candidate{FirstName: "Иван", Skills: []string{"Go"}})

		process := st.GetProcess(processID)
		process.Stages[0].Name = "changed"
		require.Equal(t, "A", st.StageList(processID)[0].Name)

		candidate := st.GetCandidate(candidateID)
		candidate.Skills[0] = "Java"
		require.Equal(t, "Go", st.GetCandidate(candidateID).Skills[0])
	})
}

func TestSnapshotRestore(t *testing.T) {
	t.Run(`restore repairs foreign stages and drops orphans`, func(t *testing.T) {
		st, _ := newTestState(t)
		report := st.Restore(Snapshot{
			Processes: []dbmodels.SelectionProcess{
				{
					BaseModel: dbmodels.BaseModel{ID: "p1"},
					Title:     "Разработчик",
					Stages: []dbmodels.SelectionStage{
						{BaseModel: dbmodels.BaseModel{ID: "s2"}, Name: "B", StageOrder: 5},
						{BaseModel: dbmodels.BaseModel{ID: "s1"}, Name: "A", StageOrder: 2},
					},
				},
				{BaseModel: dbmodels.BaseModel{ID: "p2"}, Title: "Без этапов"},
			},
			Candidates: []dbmodels.Candidate{
				{BaseModel: dbmodels.BaseModel{ID: "c1"}, FirstName: "Иван"},
			},
			Associations: []dbmodels.CandidateProcess{
				{BaseModel: dbmodels.BaseModel{ID: "a1"}, CandidateID: "c1", ProcessID: "p1", SelectionStageID: "s2"},
				{BaseModel: dbmodels.BaseModel{ID: "a2"}, CandidateID: "c1", ProcessID: "p1", SelectionStageID: "foreign"},
				{BaseModel: dbmodels.BaseModel{ID: "a3"}, CandidateID: "c1", ProcessID: "p2", SelectionStageID: "s1"},
				{BaseModel: dbmodels.BaseModel{ID: "a4"}, CandidateID: "c1", ProcessID: "unknown", SelectionStageID: "s1"},
			},
		})
		require.Equal(t, 1, report.Repaired)
		require.Equal(t, 2, report.Dropped)

		list := st.StageList("p1")
		require.Equal(t, []string{"A", "B"}, stageNames(list))
		requireDenseRanks(t, list)

		repaired := st.GetAssociation("a2")
		require.NotNil(t, repaired)
		require.Equal(t, "s1", repaired.SelectionStageID)
		require.Equal(t, models.CandidateStatusInProgress, repaired.Status)
		require.Nil(t, st.GetAssociation("a3"))
		require.Nil(t, st.GetAssociation("a4"))
	})

	t.Run(`snapshot round trip keeps order`, func(t *testing.T) {
		st, _ := newTestState(t)
		first := createProcess(t, st, "A", "B")
		second := createProcess(t, st, "C")
		candidateID, _ := st.CreateCandidate(dbmodels.Candidate{FirstName: "Иван"})
		ref, _ := st.ResolveStage(first, st.StageList(first)[1].ID)
		assocID, _ := st.CreateAssociation(candidateID, ref)

		snapshot := st.Snapshot()
		restored, _ := newTestState(t)
		report := restored.Restore(snapshot)
		require.Zero(t, report.Repaired)
		require.Zero(t, report.Dropped)

		processes := restored.ListProcesses()
		require.Len(t, processes, 2)
		require.Equal(t, first, processes[0].ID)
		require.Equal(t, second, processes[1].ID)
		require.Equal(t, ref.StageID(), restored.GetAssociation(assocID).SelectionStageID)
	})
}
