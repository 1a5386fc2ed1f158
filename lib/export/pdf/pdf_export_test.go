package pdfexport

import (
	"bytes"
	"strings"
	"testing"

	"github.com/go-pdf/fpdf"
	"github.com/stretchr/testify/require"
	boardapimodels "hr-pipeline-backend/models/api/board"
)

func TestGenerateBoard(t *testing.T) {
	t.Run(`core font`, func(t *testing.T) {
		board := boardapimodels.BoardView{
			Process: &boardapimodels.ProcessInfo{ID: "P1", Title: "Backend developer", TargetRole: "Go", Department: "R&D"},
			Columns: []boardapimodels.ColumnView{
				{
					Rank: 1,
					Name: "Screening",
					Cards: []boardapimodels.CardView{
						{FIO: "Ivanov Ivan", StatusName: "in progress", Skills: []string{"Go"}},
					},
				},
				{Rank: 2, Name: "Offer", Cards: []boardapimodels.CardView{}, Placeholder: "-"},
			},
		}
		body, err := GenerateBoard(board, "")
		require.NoError(t, err)
		require.True(t, bytes.HasPrefix(body, []byte("%PDF")))
	})

	t.Run(`no process`, func(t *testing.T) {
		_, err := GenerateBoard(boardapimodels.BoardView{}, "")
		require.Error(t, err)
	})

	t.Run(`fit text`, func(t *testing.T) {
		pdf := fpdf.New("L", "mm", "A4", "")
		pdf.SetFont(coreFont, "", 9)
		require.Equal(t, "short", fitText(pdf, "short", 30))
		long := fitText(pdf, strings.Repeat("w", 100), 30)
		require.True(t, strings.HasSuffix(long, "..."))
		require.LessOrEqual(t, pdf.GetStringWidth(long), 28.0)
	})
}
