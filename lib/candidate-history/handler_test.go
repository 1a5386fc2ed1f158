package candidatehistoryhandler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	candidatehistorystore "hr-pipeline-backend/lib/candidate-history/store"
	"hr-pipeline-backend/models"
	apimodels "hr-pipeline-backend/models/api"
	candidateapimodels "hr-pipeline-backend/models/api/candidate"
	dbmodels "hr-pipeline-backend/models/db"
)

func TestHistory(t *testing.T) {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	newHandler := func() Provider {
		return NewInstance(candidatehistorystore.NewMemInstance(), func() time.Time { return now })
	}

	t.Run(`save and list`, func(t *testing.T) {
		handler := newHandler()
		handler.Save("P1", "A1", "C1", "user-1", "Смирнова Анна", dbmodels.HistoryTypeEnroll, GetEnrollChange("Скрининг"))
		handler.Save("P1", "A1", "C1", "", "", dbmodels.HistoryTypeStageChange, GetStageChange("Скрининг", "Интервью"))
		handler.Save("P1", "A2", "C2", "user-1", "Смирнова Анна", dbmodels.HistoryTypeEnroll, GetEnrollChange("Скрининг"))

		list, total, err := handler.List("A1", candidateapimodels.HistoryFilter{})
		require.NoError(t, err)
		require.Equal(t, int64(2), total)
		require.Len(t, list, 2)
		require.Equal(t, "user-1", list[0].UserID)
		require.Equal(t, "Смирнова Анна", list[0].UserName)
		require.Equal(t, "01.03.2024 10:00", list[0].Date)
		require.Empty(t, list[1].UserID)
		require.Equal(t, models.SystemUser, list[1].UserName)
		require.Equal(t, "Перевод на этап Интервью", list[1].Changes.Description)
	})

	t.Run(`filter and pages`, func(t *testing.T) {
		handler := newHandler()
		for k := 0; k < 5; k++ {
			handler.Save("P1", "A1", "C1", "user-1", "", dbmodels.HistoryTypeStatusChange,
				GetStatusChange(models.CandidateStatusInProgress, models.CandidateStatusWaiting))
		}
		handler.Save("P1", "A1", "C1", "user-1", "", dbmodels.HistoryTypeEnroll, GetEnrollChange("Скрининг"))

		list, total, err := handler.List("A1", candidateapimodels.HistoryFilter{ActionType: dbmodels.HistoryTypeEnroll})
		require.NoError(t, err)
		require.Equal(t, int64(1), total)
		require.Len(t, list, 1)

		list, total, err = handler.List("A1", candidateapimodels.HistoryFilter{Pagination: apimodels.Pagination{Limit: 4, Page: 2}})
		require.NoError(t, err)
		require.Equal(t, int64(6), total)
		require.Len(t, list, 2)

		list, _, err = handler.List("A1", candidateapimodels.HistoryFilter{Pagination: apimodels.Pagination{Limit: 4, Page: 5}})
		require.NoError(t, err)
		require.Empty(t, list)
	})
}
