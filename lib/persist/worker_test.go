package persist

import (
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	pipelinestate "hr-pipeline-backend/lib/pipeline-state"
	dbmodels "hr-pipeline-backend/models/db"
)

type fakeStore struct {
	mu      sync.Mutex
	loaded  pipelinestate.Snapshot
	saved   []pipelinestate.Snapshot
	saveErr error
}

func (s *fakeStore) Load() (pipelinestate.Snapshot, error) {
	return s.loaded, nil
}

func (s *fakeStore) Save(snapshot pipelinestate.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saved = append(s.saved, snapshot)
	return nil
}

func TestLoad(t *testing.T) {
	t.Run(`empty db`, func(t *testing.T) {
		st := pipelinestate.NewInstance(nil)
		loaded, err := Load(st, &fakeStore{})
		require.NoError(t, err)
		require.False(t, loaded)
	})

	t.Run(`state restored from db`, func(t *testing.T) {
		st := pipelinestate.NewInstance(nil)
		store := &fakeStore{loaded: pipelinestate.Snapshot{
			Processes: []dbmodels.SelectionProcess{{BaseModel: dbmodels.BaseModel{ID: "P1"}, Title: "Go разработчик"}},
		}}
		loaded, err := Load(st, store)
		require.NoError(t, err)
		require.True(t, loaded)
		require.NotNil(t, st.GetProcess("P1"))
	})
}

func TestWorker(t *testing.T) {
	t.Run(`flush only after changes`, func(t *testing.T) {
		st := pipelinestate.NewInstance(nil)
		store := &fakeStore{}
		worker := NewWorker(st, store, 0)

		require.NoError(t, worker.Flush())
		require.Empty(t, store.saved)

		_, err := st.CreateCandidate(dbmodels.Candidate{FirstName: "Иван"})
		require.NoError(t, err)
		require.NoError(t, worker.Flush())
		require.Len(t, store.saved, 1)
		require.Len(t, store.saved[0].Candidates, 1)

		require.NoError(t, worker.Flush())
		require.Len(t, store.saved, 1)
	})

	t.Run(`failed save is retried`, func(t *testing.T) {
		st := pipelinestate.NewInstance(nil)
		store := &fakeStore{saveErr: errors.New("connection refused")}
		worker := NewWorker(st, store, 0)
		worker.MarkDirty()

		require.Error(t, worker.Flush())
		store.saveErr = nil
		require.NoError(t, worker.Flush())
		require.Len(t, store.saved, 1)
	})
}
