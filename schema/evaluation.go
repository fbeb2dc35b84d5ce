package schema

import (
	"errors"
	"strings"
	"time"
)

// Validation errors surfaced when saving an evaluation record.
var (
	ErrNoGoals          = errors.New("at least one goal must be defined")
	ErrNoFinalFeedback  = errors.New("final feedback must not be empty")
	ErrBlockWeightsSum  = errors.New("block weights must sum to 100")
	ErrMissingEvaluator = errors.New("evaluator must be set")
)

// Goal is one SMART goal attached to an evaluation record. IsCourse is the
// coordinator's explicit choice; DetectedAsCourse is the heuristic signal and
// never overwrites it.
type Goal struct {
	Title            string `json:"title"`
	Description      string `json:"description"`
	Indicator        string `json:"indicator"`
	Owner            string `json:"owner"`
	DueDate          string `json:"due_date"`
	IsCourse         bool   `json:"is_course"`
	DetectedAsCourse bool   `json:"detected_as_course"`
	ShowToTechnician bool   `json:"show_to_technician"`
	CourseCompleted  bool   `json:"course_completed"`
	CertificatePath  string `json:"certificate_path,omitempty"`
}

// DevelopmentPlan carries the narrative development sections with their
// per-section technician visibility toggles.
type DevelopmentPlan struct {
	Courses          string `json:"courses"`
	Strengths        string `json:"strengths"`
	Improvements     string `json:"improvements"`
	ShowCourses      bool   `json:"show_courses"`
	ShowStrengths    bool   `json:"show_strengths"`
	ShowImprovements bool   `json:"show_improvements"`
}

// EvaluationRecord is the persisted artifact of one "save evaluation" action.
// Records are append-only; only course progress on the most recent record is
// updated in place afterwards.
type EvaluationRecord struct {
	SavedAt         time.Time `json:"saved_at"`
	Evaluator       string    `json:"evaluator"`
	Technician      string    `json:"technician"`
	ReferencePeriod string    `json:"reference_period"`

	PeriodStart string      `json:"period_start,omitempty"`
	PeriodEnd   string      `json:"period_end,omitempty"`
	Indicators  KPISnapshot `json:"indicators"`
	// ResolvedLabel is the responsible label the indicators were taken from.
	ResolvedLabel string `json:"resolved_label,omitempty"`

	Inputs           ScoreInputs `json:"inputs"`
	ProficiencyIndex float64     `json:"proficiency_index"`
	CompetencyIndex  float64     `json:"competency_index"`
	FinalGrade       float64     `json:"final_grade"`
	Grade            GradeLabel  `json:"grade"`
	Stars            int         `json:"stars"`

	CultureAdherence string          `json:"culture_adherence,omitempty"`
	Goals            []Goal          `json:"goals"`
	Plan             DevelopmentPlan `json:"plan"`
	FinalFeedback    string          `json:"final_feedback"`
	SuggestPIP       bool            `json:"suggest_pip"`
	SuggestHighlight bool            `json:"suggest_highlight"`
	NextReview       string          `json:"next_review,omitempty"`
	ShowGoals        bool            `json:"show_goals"`
}

// Validate checks the mandatory fields of a record before persistence.
// A failed validation rejects the save; no partial record is stored.
func (r *EvaluationRecord) Validate() error {
	if strings.TrimSpace(r.Evaluator) == "" {
		return ErrMissingEvaluator
	}
	if len(r.Goals) == 0 {
		return ErrNoGoals
	}
	if strings.TrimSpace(r.FinalFeedback) == "" {
		return ErrNoFinalFeedback
	}
	if r.Inputs.BlockWeights.Proficiency+r.Inputs.BlockWeights.Competency != 100 {
		return ErrBlockWeightsSum
	}
	return nil
}
