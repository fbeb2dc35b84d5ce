package schema

// BlockWeights are the two percentages blending the proficiency and
// competency indices into the final grade. They must sum to 100.
type BlockWeights struct {
	Proficiency int `json:"proficiency" mapstructure:"proficiency"`
	Competency  int `json:"competency" mapstructure:"competency"`
}

// ScoreInputs carries everything the scoring engine needs for one technician.
type ScoreInputs struct {
	// ToolProficiency maps tool name to an entered proficiency in [0,100].
	ToolProficiency map[string]float64 `json:"tool_proficiency"`
	// ToolWeights maps tool name to its configured weight percentage.
	ToolWeights map[string]float64 `json:"tool_weights"`
	// CompetencyScores maps competency name to an entered score in [0,10].
	CompetencyScores map[string]float64 `json:"competency_scores"`
	// CompetencyWeights maps competency name to a non-negative relative
	// weight, normalized at computation time.
	CompetencyWeights map[string]int `json:"competency_weights"`
	// BlockWeights blends the two indices; validated to sum to 100.
	BlockWeights BlockWeights `json:"block_weights"`
}

// WeightPreset is a named snapshot of the full weight configuration.
type WeightPreset struct {
	Name              string             `json:"name"`
	ToolWeights       map[string]float64 `json:"tool_weights"`
	CompetencyWeights map[string]int     `json:"competency_weights"`
	BlockWeights      BlockWeights       `json:"block_weights"`
}

// GetDefaultToolWeights returns the default tool weight map (sums to 100).
func GetDefaultToolWeights() map[string]float64 {
	return map[string]float64{
		"Ticketing":      20,
		"Remote Access":  15,
		"Monitoring":     10,
		"Knowledge Base": 10,
		"Telephony":      15,
		"Asset Registry": 10,
		"Field Toolkit":  10,
		"Reporting":      10,
	}
}

// GetDefaultCompetencyWeights returns the default competency weights.
// Weights are relative; they do not need to sum to any particular total.
func GetDefaultCompetencyWeights() map[string]int {
	return map[string]int{
		"Customer service":    1,
		"Level 1 support":     1,
		"Level 2 support":     1,
		"Infrastructure":      1,
		"Training delivery":   1,
		"Knowledge authoring": 1,
	}
}

// GetDefaultBlockWeights returns an even proficiency/competency split.
func GetDefaultBlockWeights() BlockWeights {
	return BlockWeights{Proficiency: 50, Competency: 50}
}
