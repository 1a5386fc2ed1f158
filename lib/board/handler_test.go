package board

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	candidatehistoryhandler "hr-pipeline-backend/lib/candidate-history"
	candidatehistorystore "hr-pipeline-backend/lib/candidate-history/store"
	pipelinestate "hr-pipeline-backend/lib/pipeline-state"
	"hr-pipeline-backend/models"
	candidateapimodels "hr-pipeline-backend/models/api/candidate"
	dbmodels "hr-pipeline-backend/models/db"
)

const (
	testUser     = "user-1"
	testUserName = "Смирнова Анна"
)

type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time {
	return c.now
}

type boardFixture struct {
	state   pipelinestate.Provider
	history candidatehistoryhandler.Provider
	board   Provider
	clock   *testClock
}

func newBoardFixture(t *testing.T) boardFixture {
	clock := &testClock{now: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)}
	st := pipelinestate.NewInstance(clock.Now)
	report := st.Restore(pipelinestate.Snapshot{
		Processes: []dbmodels.SelectionProcess{
			{
				BaseModel: dbmodels.BaseModel{ID: "P1"},
				Title:     "Go разработчик",
				Status:    models.ProcessStatusActive,
				Stages: []dbmodels.SelectionStage{
					{BaseModel: dbmodels.BaseModel{ID: "S1"}, Name: "Скрининг", StageOrder: 1, Mandatory: true},
					{BaseModel: dbmodels.BaseModel{ID: "S2"}, Name: "Интервью", StageOrder: 2},
				},
			},
			{
				BaseModel: dbmodels.BaseModel{ID: "P2"},
				Title:     "Менеджер по продажам",
				Status:    models.ProcessStatusActive,
				Stages: []dbmodels.SelectionStage{
					{BaseModel: dbmodels.BaseModel{ID: "S3"}, Name: "Звонок", StageOrder: 1},
				},
			},
			{
				BaseModel: dbmodels.BaseModel{ID: "P3"},
				Title:     "Без этапов",
				Status:    models.ProcessStatusActive,
			},
		},
		Candidates: []dbmodels.Candidate{
			{BaseModel: dbmodels.BaseModel{ID: "C1"}, FirstName: "Иван", LastName: "Иванов", Skills: []string{"Go"}},
			{BaseModel: dbmodels.BaseModel{ID: "C2"}, FirstName: "Мария", LastName: "Петрова"},
			{BaseModel: dbmodels.BaseModel{ID: "C3"}, FirstName: "Алексей", LastName: "Сидоров"},
		},
		Associations: []dbmodels.CandidateProcess{
			{BaseModel: dbmodels.BaseModel{ID: "A1"}, CandidateID: "C1", ProcessID: "P1", SelectionStageID: "S1", Status: models.CandidateStatusInProgress},
			{BaseModel: dbmodels.BaseModel{ID: "A2"}, CandidateID: "C2", ProcessID: "P1", SelectionStageID: "S1", Status: models.CandidateStatusWaiting},
			{BaseModel: dbmodels.BaseModel{ID: "A3"}, CandidateID: "C3", ProcessID: "P1", SelectionStageID: "S2", Status: models.CandidateStatusInProgress},
			{BaseModel: dbmodels.BaseModel{ID: "A4"}, CandidateID: "C1", ProcessID: "P2", SelectionStageID: "S3", Status: models.CandidateStatusInProgress},
		},
	})
	require.Zero(t, report.Dropped)
	history := candidatehistoryhandler.NewInstance(candidatehistorystore.NewMemInstance(), clock.Now)
	return boardFixture{
		state:   st,
		history: history,
		board:   NewInstance(st, history, clock.Now),
		clock:   clock,
	}
}

func columnCards(t *testing.T, f boardFixture, stageID string) []string {
	view := f.board.Board(testUser)
	for _, column := range view.Columns {
		if column.DropTarget == stageID {
			result := make([]string, 0, len(column.Cards))
			for _, card := range column.Cards {
				result = append(result, card.AssociationID)
			}
			return result
		}
	}
	t.Fatalf("колонка %v не найдена", stageID)
	return nil
}

func TestGroupByStage(t *testing.T) {
	stages := []dbmodels.SelectionStage{
		{BaseModel: dbmodels.BaseModel{ID: "S1"}, StageOrder: 1},
		{BaseModel: dbmodels.BaseModel{ID: "S2"}, StageOrder: 2},
		{BaseModel: dbmodels.BaseModel{ID: "S3"}, StageOrder: 3},
	}
	candidates := map[string]dbmodels.Candidate{
		"C1": {BaseModel: dbmodels.BaseModel{ID: "C1"}},
		"C2": {BaseModel: dbmodels.BaseModel{ID: "C2"}},
	}

	t.Run(`every association lands in exactly one bucket`, func(t *testing.T) {
		associations := []dbmodels.CandidateProcess{
			{BaseModel: dbmodels.BaseModel{ID: "A1"}, CandidateID: "C1", SelectionStageID: "S2"},
			{BaseModel: dbmodels.BaseModel{ID: "A2"}, CandidateID: "C2", SelectionStageID: "S1"},
			{BaseModel: dbmodels.BaseModel{ID: "A3"}, CandidateID: "C2", SelectionStageID: "S2"},
		}
		grouping := GroupByStage(stages, associations, candidates)
		require.Len(t, grouping.Buckets, 3)
		require.Equal(t, len(associations), grouping.Total())
		require.Empty(t, grouping.Skipped)
		require.Len(t, grouping.Buckets["S1"], 1)
		require.Len(t, grouping.Buckets["S3"], 0)
		// порядок внутри корзины совпадает с порядком входа
		require.Equal(t, "A1", grouping.Buckets["S2"][0].Association.ID)
		require.Equal(t, "A3", grouping.Buckets["S2"][1].Association.ID)
	})

	t.Run(`dangling candidate and foreign stage are skipped`, func(t *testing.T) {
		associations := []dbmodels.CandidateProcess{
			{BaseModel: dbmodels.BaseModel{ID: "A1"}, CandidateID: "missing", SelectionStageID: "S1"},
			{BaseModel: dbmodels.BaseModel{ID: "A2"}, CandidateID: "C1", SelectionStageID: "foreign"},
			{BaseModel: dbmodels.BaseModel{ID: "A3"}, CandidateID: "C1", SelectionStageID: "S3"},
		}
		grouping := GroupByStage(stages, associations, candidates)
		require.Equal(t, 1, grouping.Total())
		require.Equal(t, []Skipped{
			{AssociationID: "A1", Reason: SkipCandidateMissing},
			{AssociationID: "A2", Reason: SkipStageNotInProcess},
		}, grouping.Skipped)
	})

	t.Run(`process without stages gives empty grouping`, func(t *testing.T) {
		associations := []dbmodels.CandidateProcess{
			{BaseModel: dbmodels.BaseModel{ID: "A1"}, CandidateID: "C1", SelectionStageID: "S1"},
		}
		grouping := GroupByStage(nil, associations, candidates)
		require.Empty(t, grouping.Buckets)
		require.Empty(t, grouping.Skipped)
		require.Zero(t, grouping.Total())
	})
}

func TestSelectProcess(t *testing.T) {
	t.Run(`falls back to first process`, func(t *testing.T) {
		f := newBoardFixture(t)
		view := f.board.SelectProcess(testUser, "deleted")
		require.Equal(t, "P1", view.ProcessID)
		require.Len(t, view.Processes, 3)
		require.Len(t, view.Columns, 2)
		require.Nil(t, view.EmptyState)
	})

	t.Run(`process without stages shows configuration prompt`, func(t *testing.T) {
		f := newBoardFixture(t)
		view := f.board.SelectProcess(testUser, "P3")
		require.Equal(t, "P3", view.ProcessID)
		require.Empty(t, view.Columns)
		require.NotNil(t, view.EmptyState)
		require.Equal(t, models.BoardEmptyNoStages, view.EmptyState.Code)
	})

	t.Run(`no processes shows create prompt`, func(t *testing.T) {
		st := pipelinestate.NewInstance(nil)
		b := NewInstance(st, nil, nil)
		view := b.SelectProcess(testUser, "P1")
		require.Equal(t, "", view.ProcessID)
		require.Empty(t, view.Columns)
		require.NotNil(t, view.EmptyState)
		require.Equal(t, models.BoardEmptyNoProcess, view.EmptyState.Code)

		ok, reason := b.BeginMove(testUser, "A1")
		require.False(t, ok)
		require.NotEmpty(t, reason)
	})

	t.Run(`empty column keeps placeholder`, func(t *testing.T) {
		f := newBoardFixture(t)
		view := f.board.SelectProcess(testUser, "P1")
		for _, column := range view.Columns {
			require.NotNil(t, column.Cards)
			require.Empty(t, column.Placeholder)
		}
		result := f.board.CompleteMove(testUser, testUserName, "A3", "S1")
		require.Equal(t, models.MoveOutcomeMoved, result.Outcome)
		view = f.board.Board(testUser)
		require.Empty(t, view.Columns[1].Cards)
		require.NotEmpty(t, view.Columns[1].Placeholder)
		require.Equal(t, "S2", view.Columns[1].DropTarget)
	})

	t.Run(`switching process clears drag`, func(t *testing.T) {
		f := newBoardFixture(t)
		f.board.SelectProcess(testUser, "P1")
		ok, _ := f.board.BeginMove(testUser, "A1")
		require.True(t, ok)
		require.NotNil(t, f.board.Board(testUser).Drag)

		view := f.board.SelectProcess(testUser, "P2")
		require.Nil(t, view.Drag)
	})

	t.Run(`operators have separate sessions`, func(t *testing.T) {
		f := newBoardFixture(t)
		f.board.SelectProcess(testUser, "P2")
		f.board.SelectProcess("user-2", "P1")
		require.Equal(t, "P2", f.board.ActiveProcessID(testUser))
		require.Equal(t, "P1", f.board.ActiveProcessID("user-2"))
	})
}

func TestMove(t *testing.T) {
	t.Run(`basic move keeps status`, func(t *testing.T) {
		f := newBoardFixture(t)
		f.board.SelectProcess(testUser, "P1")
		ok, _ := f.board.BeginMove(testUser, "A1")
		require.True(t, ok)

		f.clock.now = f.clock.now.Add(time.Hour)
		result := f.board.CompleteMove(testUser, testUserName, "A1", "S2")
		require.Equal(t, models.MoveOutcomeMoved, result.Outcome)

		assoc := f.state.GetAssociation("A1")
		require.Equal(t, "S2", assoc.SelectionStageID)
		require.Equal(t, models.CandidateStatusInProgress, assoc.Status)
		require.Equal(t, f.clock.now, assoc.UpdatedAt)
		require.Equal(t, []string{"A2"}, columnCards(t, f, "S1"))
		require.Equal(t, []string{"A1", "A3"}, columnCards(t, f, "S2"))
		require.Nil(t, f.board.Board(testUser).Drag)

		list, total, err := f.history.List("A1", candidateapimodels.HistoryFilter{})
		require.NoError(t, err)
		require.Equal(t, int64(1), total)
		require.Equal(t, dbmodels.HistoryTypeStageChange, list[0].ActionType)
		require.Equal(t, testUserName, list[0].UserName)
		require.Equal(t, "Скрининг", list[0].Changes.Data[0].OldValue)
		require.Equal(t, "Интервью", list[0].Changes.Data[0].NewValue)
	})

	t.Run(`same stage drop is noop`, func(t *testing.T) {
		f := newBoardFixture(t)
		f.board.SelectProcess(testUser, "P1")
		before := *f.state.GetAssociation("A2")

		f.clock.now = f.clock.now.Add(time.Hour)
		for k := 0; k < 2; k++ {
			result := f.board.CompleteMove(testUser, testUserName, "A2", "S1")
			require.Equal(t, models.MoveOutcomeNoOp, result.Outcome)
		}
		require.Equal(t, before, *f.state.GetAssociation("A2"))

		_, total, err := f.history.List("A2", candidateapimodels.HistoryFilter{})
		require.NoError(t, err)
		require.Zero(t, total)
	})

	t.Run(`foreign stage is rejected without changes`, func(t *testing.T) {
		f := newBoardFixture(t)
		f.board.SelectProcess(testUser, "P1")
		before := *f.state.GetAssociation("A1")
		ok, _ := f.board.BeginMove(testUser, "A1")
		require.True(t, ok)

		for _, stageID := range []string{"S3", "unknown", ""} {
			result := f.board.CompleteMove(testUser, testUserName, "A1", stageID)
			require.Equal(t, models.MoveOutcomeRejected, result.Outcome)
			require.NotEmpty(t, result.Reason)
			require.Equal(t, before, *f.state.GetAssociation("A1"))
		}
		require.Nil(t, f.board.Board(testUser).Drag)
	})

	t.Run(`association of another process is rejected`, func(t *testing.T) {
		f := newBoardFixture(t)
		f.board.SelectProcess(testUser, "P1")
		ok, reason := f.board.BeginMove(testUser, "A4")
		require.False(t, ok)
		require.NotEmpty(t, reason)

		result := f.board.CompleteMove(testUser, testUserName, "A4", "S2")
		require.Equal(t, models.MoveOutcomeRejected, result.Outcome)
		require.Equal(t, "S3", f.state.GetAssociation("A4").SelectionStageID)
	})

	t.Run(`cancel clears drag without mutation`, func(t *testing.T) {
		f := newBoardFixture(t)
		f.board.SelectProcess(testUser, "P1")
		before := f.state.Snapshot()
		ok, _ := f.board.BeginMove(testUser, "A1")
		require.True(t, ok)
		ok, _ = f.board.BeginMove(testUser, "A2")
		require.True(t, ok)
		require.Equal(t, "A2", f.board.Board(testUser).Drag.AssociationID)

		f.board.CancelMove(testUser)
		require.Nil(t, f.board.Board(testUser).Drag)
		require.Equal(t, before, f.state.Snapshot())
	})

	t.Run(`move state subscriber may read sessions`, func(t *testing.T) {
		f := newBoardFixture(t)
		f.board.SelectProcess(testUser, "P1")
		var seen []string
		f.state.Subscribe(func(event pipelinestate.ChangeEvent) {
			seen = append(seen, f.board.ActiveProcessID(testUser))
		})
		result := f.board.CompleteMove(testUser, testUserName, "A1", "S2")
		require.Equal(t, models.MoveOutcomeMoved, result.Outcome)
		require.Equal(t, []string{"P1"}, seen)
	})
}

func TestStatusAndEnroll(t *testing.T) {
	t.Run(`status change does not move candidate`, func(t *testing.T) {
		f := newBoardFixture(t)
		hMsg, err := f.board.SetStatus(testUser, testUserName, "A3", models.CandidateStatusApproved)
		require.NoError(t, err)
		require.Empty(t, hMsg)
		assoc := f.state.GetAssociation("A3")
		require.Equal(t, models.CandidateStatusApproved, assoc.Status)
		require.Equal(t, "S2", assoc.SelectionStageID)

		// одобренного кандидата можно переводить дальше
		f.board.SelectProcess(testUser, "P1")
		result := f.board.CompleteMove(testUser, testUserName, "A3", "S1")
		require.Equal(t, models.MoveOutcomeMoved, result.Outcome)
		require.Equal(t, models.CandidateStatusApproved, f.state.GetAssociation("A3").Status)

		list, total, err := f.history.List("A3", candidateapimodels.HistoryFilter{ActionType: dbmodels.HistoryTypeStatusChange})
		require.NoError(t, err)
		require.Equal(t, int64(1), total)
		require.Equal(t, dbmodels.HistoryTypeStatusChange, list[0].ActionType)
	})

	t.Run(`status refusals`, func(t *testing.T) {
		f := newBoardFixture(t)
		hMsg, err := f.board.SetStatus(testUser, testUserName, "A1", "hired")
		require.NoError(t, err)
		require.NotEmpty(t, hMsg)
		hMsg, err = f.board.SetStatus(testUser, testUserName, "unknown", models.CandidateStatusRejected)
		require.NoError(t, err)
		require.NotEmpty(t, hMsg)
	})

	t.Run(`enroll puts candidate on first stage`, func(t *testing.T) {
		f := newBoardFixture(t)
		id, hMsg, err := f.board.Enroll(testUser, testUserName, "P2", "C2")
		require.NoError(t, err)
		require.Empty(t, hMsg)
		assoc := f.state.GetAssociation(id)
		require.NotNil(t, assoc)
		require.Equal(t, "S3", assoc.SelectionStageID)
		require.Equal(t, models.CandidateStatusInProgress, assoc.Status)

		_, hMsg, err = f.board.Enroll(testUser, testUserName, "P2", "C2")
		require.NoError(t, err)
		require.NotEmpty(t, hMsg)

		_, hMsg, err = f.board.Enroll(testUser, testUserName, "P3", "C2")
		require.NoError(t, err)
		require.NotEmpty(t, hMsg)

		_, hMsg, err = f.board.Enroll(testUser, testUserName, "P1", "missing")
		require.NoError(t, err)
		require.NotEmpty(t, hMsg)
	})
}

// racingState перед первой записью выполняет конкурирующее изменение того же участия
type racingState struct {
	pipelinestate.Provider
	statusRace models.CandidateStatus
	stageRace  pipelinestate.StageRef
	raced      bool
}

func (s *racingState) SetAssociationStatus(id string, status models.CandidateStatus) (models.CandidateStatus, bool, error) {
	if !s.raced && s.statusRace != "" {
		s.raced = true
		if _, _, err := s.Provider.SetAssociationStatus(id, s.statusRace); err != nil {
			return "", false, err
		}
	}
	return s.Provider.SetAssociationStatus(id, status)
}

func (s *racingState) MoveAssociation(id string, ref pipelinestate.StageRef) (string, bool, error) {
	if !s.raced && s.stageRace.StageID() != "" {
		s.raced = true
		if _, _, err := s.Provider.MoveAssociation(id, s.stageRace); err != nil {
			return "", false, err
		}
	}
	return s.Provider.MoveAssociation(id, ref)
}

func TestConcurrentChangesHistory(t *testing.T) {
	t.Run(`status history keeps replaced value`, func(t *testing.T) {
		f := newBoardFixture(t)
		st := &racingState{Provider: f.state, statusRace: models.CandidateStatusWaiting}
		b := NewInstance(st, f.history, f.clock.Now)

		hMsg, err := b.SetStatus(testUser, testUserName, "A1", models.CandidateStatusApproved)
		require.NoError(t, err)
		require.Empty(t, hMsg)
		require.Equal(t, models.CandidateStatusApproved, f.state.GetAssociation("A1").Status)

		list, total, err := f.history.List("A1", candidateapimodels.HistoryFilter{ActionType: dbmodels.HistoryTypeStatusChange})
		require.NoError(t, err)
		require.Equal(t, int64(1), total)
		require.Equal(t, models.CandidateStatusWaiting, list[0].Changes.Data[0].OldValue)
		require.Equal(t, models.CandidateStatusApproved, list[0].Changes.Data[0].NewValue)
	})

	t.Run(`stage history keeps replaced stage`, func(t *testing.T) {
		f := newBoardFixture(t)
		race, ok := f.state.ResolveStage("P1", "S2")
		require.True(t, ok)
		st := &racingState{Provider: f.state, stageRace: race}
		b := NewInstance(st, f.history, f.clock.Now)
		b.SelectProcess(testUser, "P1")

		result := b.CompleteMove(testUser, testUserName, "A2", "S1")
		require.Equal(t, models.MoveOutcomeMoved, result.Outcome)
		require.Equal(t, "S1", f.state.GetAssociation("A2").SelectionStageID)

		list, total, err := f.history.List("A2", candidateapimodels.HistoryFilter{ActionType: dbmodels.HistoryTypeStageChange})
		require.NoError(t, err)
		require.Equal(t, int64(1), total)
		require.Equal(t, "Интервью", list[0].Changes.Data[0].OldValue)
		require.Equal(t, "Скрининг", list[0].Changes.Data[0].NewValue)
	})
}
