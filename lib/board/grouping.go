package board

import (
	dbmodels "hr-pipeline-backend/models/db"
)

type SkipReason string

const (
	SkipStageNotInProcess SkipReason = "stage_not_in_process"
	SkipCandidateMissing  SkipReason = "candidate_missing"
)

type Card struct {
	Association dbmodels.CandidateProcess
	Candidate   dbmodels.Candidate
}

type Skipped struct {
	AssociationID string
	Reason        SkipReason
}

type Grouping struct {
	Buckets map[string][]Card // ключ - идентификатор этапа
	Skipped []Skipped
}

// GroupByStage раскладывает участия по этапам процесса.
// Для каждого этапа создается корзина, даже пустая; порядок внутри корзины
// совпадает с порядком участий во входном списке.
// Участия с чужим этапом или без резюме кандидата на доску не попадают.
func GroupByStage(stages []dbmodels.SelectionStage, associations []dbmodels.CandidateProcess, candidates map[string]dbmodels.Candidate) Grouping {
	result := Grouping{
		Buckets: make(map[string][]Card, len(stages)),
	}
	if len(stages) == 0 {
		return result
	}
	for _, stage := range stages {
		result.Buckets[stage.ID] = []Card{}
	}
	for _, assoc := range associations {
		bucket, ok := result.Buckets[assoc.SelectionStageID]
		if !ok {
			result.Skipped = append(result.Skipped, Skipped{AssociationID: assoc.ID, Reason: SkipStageNotInProcess})
			continue
		}
		candidate, ok := candidates[assoc.CandidateID]
		if !ok {
			result.Skipped = append(result.Skipped, Skipped{AssociationID: assoc.ID, Reason: SkipCandidateMissing})
			continue
		}
		result.Buckets[assoc.SelectionStageID] = append(bucket, Card{Association: assoc, Candidate: candidate})
	}
	return result
}

// Total кол-во кандидатов на доске
func (g Grouping) Total() int {
	total := 0
	for _, bucket := range g.Buckets {
		total += len(bucket)
	}
	return total
}
