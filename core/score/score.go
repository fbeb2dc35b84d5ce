// Package score turns entered proficiency and competency figures into the
// final grade of an evaluation.
package score

import (
	"github.com/novetech/deskeval/schema"
)

// Scorecard is the computed result of one evaluation's inputs.
type Scorecard struct {
	ProficiencyIndex float64           `json:"proficiency_index"`
	CompetencyIndex  float64           `json:"competency_index"`
	FinalGrade       float64           `json:"final_grade"`
	Grade            schema.GradeLabel `json:"grade"`
	Stars            int               `json:"stars"`
}

// ProficiencyIndex is the weighted mean of per-tool proficiency on the 0-100
// scale. Weights are normalized by their own sum, so partial weight sets
// behave the same as ones summing to exactly 100. An all-zero weight set
// yields zero.
func ProficiencyIndex(proficiency map[string]float64, weights map[string]float64) float64 {
	var weighted, total float64
	for tool, w := range weights {
		if w <= 0 {
			continue
		}
		weighted += proficiency[tool] * w
		total += w
	}
	if total == 0 {
		return 0
	}
	return weighted / total
}

// CompetencyIndex is the weighted mean of per-competency scores on the 0-10
// scale, with the same sum normalization and zero fallback.
func CompetencyIndex(scores map[string]float64, weights map[string]int) float64 {
	var weighted, total float64
	for comp, w := range weights {
		if w <= 0 {
			continue
		}
		weighted += scores[comp] * float64(w)
		total += float64(w)
	}
	if total == 0 {
		return 0
	}
	return weighted / total
}

// ValidateBlockWeights rejects block weights that fall outside [0, 100] or
// do not sum to exactly 100.
func ValidateBlockWeights(bw schema.BlockWeights) error {
	if bw.Proficiency < 0 || bw.Proficiency > 100 || bw.Competency < 0 || bw.Competency > 100 {
		return schema.ErrBlockWeightsSum
	}
	if bw.Proficiency+bw.Competency != 100 {
		return schema.ErrBlockWeightsSum
	}
	return nil
}

// FinalGrade blends the proficiency index (0-100) and competency index
// (0-10) into a 0-10 grade using the block weight percentages.
func FinalGrade(proficiency, competency float64, bw schema.BlockWeights) float64 {
	return (proficiency/10)*float64(bw.Proficiency)/100 +
		competency*float64(bw.Competency)/100
}

// Compute validates the block weights and produces the full scorecard for
// one set of evaluation inputs.
func Compute(in schema.ScoreInputs) (Scorecard, error) {
	if err := ValidateBlockWeights(in.BlockWeights); err != nil {
		return Scorecard{}, err
	}

	card := Scorecard{
		ProficiencyIndex: ProficiencyIndex(in.ToolProficiency, in.ToolWeights),
		CompetencyIndex:  CompetencyIndex(in.CompetencyScores, in.CompetencyWeights),
	}
	card.FinalGrade = FinalGrade(card.ProficiencyIndex, card.CompetencyIndex, in.BlockWeights)
	card.Grade = schema.GradeForScore(&card.FinalGrade)
	card.Stars = schema.StarsForScore(&card.FinalGrade)
	return card, nil
}
