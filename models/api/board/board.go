package boardapimodels

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	"hr-pipeline-backend/models"
	dbmodels "hr-pipeline-backend/models/db"
)

const EmptyColumnPlaceholder = "Нет кандидатов"

type BoardView struct {
	ProcessID  string          `json:"process_id"`            // Идентификатор активного процесса подбора
	Process    *ProcessInfo    `json:"process,omitempty"`     // Активный процесс подбора
	Processes  []ProcessInfo   `json:"processes"`             // Доступные процессы подбора
	Columns    []ColumnView    `json:"columns"`               // Колонки этапов в порядке ранга
	EmptyState *EmptyStateView `json:"empty_state,omitempty"` // Пустое состояние доски
	Drag       *DragView       `json:"drag,omitempty"`        // Перетаскиваемый кандидат
	Skipped    int             `json:"skipped"`               // Кол-во участий, не попавших на доску
}

type ProcessInfo struct {
	ID         string               `json:"id"`          // Идентификатор процесса
	Title      string               `json:"title"`       // Название
	Department string               `json:"department"`  // Подразделение
	TargetRole string               `json:"target_role"` // Должность
	Status     models.ProcessStatus `json:"status"`      // Статус процесса
}

type EmptyStateView struct {
	Code         models.BoardEmptyState `json:"code"`           // no_process / no_stages
	Message      string                 `json:"message"`        // Текст для пользователя
	CallToAction string                 `json:"call_to_action"` // Подпись кнопки
}

type DragView struct {
	AssociationID string `json:"association_id"` // Идентификатор перетаскиваемого участия
	StartedAt     string `json:"started_at"`     // Время начала перетаскивания
}

// ColumnView колонка этапа, DropTarget совпадает с идентификатором этапа
type ColumnView struct {
	DropTarget   string               `json:"drop_target"`
	Rank         int                  `json:"rank"`
	Name         string               `json:"name"`
	Description  string               `json:"description"`
	Responsible  string               `json:"responsible,omitempty"`
	Category     models.StageCategory `json:"category"`
	DurationDays int                  `json:"duration_days,omitempty"`
	Mandatory    bool                 `json:"mandatory"`
	Cards        []CardView           `json:"cards"`
	Placeholder  string               `json:"placeholder,omitempty"` // Заполнено для пустой колонки
}

type CardView struct {
	AssociationID string                 `json:"association_id"` // Идентификатор участия
	CandidateID   string                 `json:"candidate_id"`   // Идентификатор кандидата
	FIO           string                 `json:"fio"`            // ФИО кандидата
	Email         string                 `json:"email"`          // Емайл
	Phone         string                 `json:"phone"`          // Телефон
	DesiredRole   string                 `json:"desired_role"`   // Желаемая должность
	Skills        []string               `json:"skills"`         // Навыки
	Status        models.CandidateStatus `json:"status"`         // Статус
	StatusName    string                 `json:"status_name"`    // Статус (текст)
	UpdatedAt     string                 `json:"updated_at"`     // Последнее изменение
	StageTime     string                 `json:"stage_time"`     // Время на этапе
}

type MoveResult struct {
	Outcome models.MoveOutcome `json:"outcome"`          // moved / noop / rejected
	Reason  string             `json:"reason,omitempty"` // Причина отказа
}

func Moved() MoveResult {
	return MoveResult{Outcome: models.MoveOutcomeMoved}
}

func NoOp() MoveResult {
	return MoveResult{Outcome: models.MoveOutcomeNoOp}
}

func Rejected(reason string) MoveResult {
	return MoveResult{Outcome: models.MoveOutcomeRejected, Reason: reason}
}

// DragResult результат начала перетаскивания
type DragResult struct {
	Started bool   `json:"started"`          // Перетаскивание начато
	Reason  string `json:"reason,omitempty"` // Причина отказа
}

type SelectRequest struct {
	ProcessID string `json:"process_id"` // Идентификатор процесса подбора
}

type BeginMoveRequest struct {
	AssociationID string `json:"association_id"` // Идентификатор участия
}

func (r BeginMoveRequest) Validate() error {
	if r.AssociationID == "" {
		return errors.New("не указан идентификатор кандидата в процессе")
	}
	return nil
}

type CompleteMoveRequest struct {
	AssociationID string `json:"association_id"` // Идентификатор участия
	StageID       string `json:"stage_id"`       // Идентификатор этапа назначения (drop target)
}

func (r CompleteMoveRequest) Validate() error {
	if r.AssociationID == "" {
		return errors.New("не указан идентификатор кандидата в процессе")
	}
	return nil
}

type EnrollRequest struct {
	ProcessID   string `json:"process_id"`   // Идентификатор процесса подбора
	CandidateID string `json:"candidate_id"` // Идентификатор кандидата
}

func (r EnrollRequest) Validate() error {
	if r.ProcessID == "" {
		return errors.New("не указан процесс подбора")
	}
	if r.CandidateID == "" {
		return errors.New("не указан кандидат")
	}
	return nil
}

type StatusChangeRequest struct {
	Status models.CandidateStatus `json:"status"` // Новый статус
}

func (r StatusChangeRequest) Validate() error {
	if !r.Status.IsValid() {
		return errors.New("неизвестный статус кандидата")
	}
	return nil
}

func ProcessInfoConvert(rec dbmodels.SelectionProcess) ProcessInfo {
	return ProcessInfo{
		ID:         rec.ID,
		Title:      rec.Title,
		Department: rec.Department,
		TargetRole: rec.TargetRole,
		Status:     rec.Status,
	}
}

func CardConvert(assoc dbmodels.CandidateProcess, candidate dbmodels.Candidate, now time.Time) CardView {
	skills := []string(candidate.Skills)
	if skills == nil {
		skills = []string{}
	}
	result := CardView{
		AssociationID: assoc.ID,
		CandidateID:   candidate.ID,
		FIO:           candidate.GetFIO(),
		Email:         candidate.Email,
		Phone:         candidate.Phone,
		DesiredRole:   candidate.DesiredRole,
		Skills:        skills,
		Status:        assoc.Status,
		StatusName:    assoc.Status.ToHuman(),
		UpdatedAt:     assoc.UpdatedAt.Format("02.01.2006 15:04"),
	}
	if !assoc.StageChangedAt.IsZero() {
		result.StageTime = StageTime(now.Sub(assoc.StageChangedAt))
	}
	return result
}

func ColumnConvert(stage dbmodels.SelectionStage, cards []CardView) ColumnView {
	result := ColumnView{
		DropTarget:   stage.ID,
		Rank:         stage.StageOrder,
		Name:         stage.Name,
		Description:  stage.Description,
		Responsible:  stage.ResponsibleName,
		Category:     stage.Category,
		DurationDays: stage.DurationDays,
		Mandatory:    stage.Mandatory,
		Cards:        cards,
	}
	if len(cards) == 0 {
		result.Cards = []CardView{}
		result.Placeholder = EmptyColumnPlaceholder
	}
	return result
}

func NoProcessState() *EmptyStateView {
	return &EmptyStateView{
		Code:         models.BoardEmptyNoProcess,
		Message:      "Нет ни одного процесса подбора",
		CallToAction: "Создать процесс подбора",
	}
}

func NoStagesState() *EmptyStateView {
	return &EmptyStateView{
		Code:         models.BoardEmptyNoStages,
		Message:      "Для процесса подбора не настроены этапы",
		CallToAction: "Настроить этапы",
	}
}

// StageTime время нахождения на этапе: "2 д. 3 ч." / "3 ч. 15 мин." / "15 мин."
func StageTime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	switch {
	case days > 0:
		return formatPair(days, "д.", hours, "ч.")
	case hours > 0:
		return formatPair(hours, "ч.", minutes, "мин.")
	default:
		return formatPair(minutes, "мин.", 0, "")
	}
}

func formatPair(a int, aUnit string, b int, bUnit string) string {
	if b == 0 || bUnit == "" {
		return fmt.Sprintf("%d %s", a, aUnit)
	}
	return fmt.Sprintf("%d %s %d %s", a, aUnit, b, bUnit)
}
