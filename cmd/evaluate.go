package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/novetech/deskeval/core"
	"github.com/novetech/deskeval/core/match"
	"github.com/novetech/deskeval/core/score"
	"github.com/novetech/deskeval/internal/contract"
	"github.com/novetech/deskeval/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// evaluateCmd scores one technician and persists the evaluation record.
var evaluateCmd = &cobra.Command{
	Use:   "evaluate [input-file]",
	Short: "Score a technician and save the evaluation record.",
	Long: `Compute a technician's final grade from tool proficiency and competency
scores, then persist the full evaluation record.

The evaluation inputs (technician, scores, goals, development plan and final
feedback) are read from a YAML file. Weights come from a named preset, the
evaluation file, or the built-in defaults, in that order.

When a ticket export is given, the technician's KPI indicators for the
reference period are resolved and stored with the record.

Examples:
  # Evaluate from a YAML file with default weights
  deskeval evaluate --evaluator chief.coord --eval-file maria-2024q1.yaml

  # Attach KPI indicators from a ticket export
  deskeval evaluate tickets.csv --evaluator chief.coord --eval-file maria-2024q1.yaml \
    --start 2024-01-01 --end 2024-03-31

  # Score with a stored weight preset
  deskeval evaluate --evaluator chief.coord --eval-file maria-2024q1.yaml --preset field-team`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := runEvaluate(); err != nil {
			contract.LogFatal("Cannot run evaluation", err)
		}
	},
}

// evalFileGoal mirrors schema.Goal with mapstructure tags for the YAML file.
type evalFileGoal struct {
	Title            string `mapstructure:"title"`
	Description      string `mapstructure:"description"`
	Indicator        string `mapstructure:"indicator"`
	Owner            string `mapstructure:"owner"`
	DueDate          string `mapstructure:"due_date"`
	IsCourse         bool   `mapstructure:"is_course"`
	ShowToTechnician bool   `mapstructure:"show_to_technician"`
}

// evalFilePlan mirrors schema.DevelopmentPlan for the YAML file.
type evalFilePlan struct {
	Courses          string `mapstructure:"courses"`
	Strengths        string `mapstructure:"strengths"`
	Improvements     string `mapstructure:"improvements"`
	ShowCourses      bool   `mapstructure:"show_courses"`
	ShowStrengths    bool   `mapstructure:"show_strengths"`
	ShowImprovements bool   `mapstructure:"show_improvements"`
}

// evalFileInput is the full shape of an evaluation YAML file. Weight sections
// are optional; when present they override preset and default weights.
type evalFileInput struct {
	Technician      string `mapstructure:"technician"`
	ReferencePeriod string `mapstructure:"reference_period"`

	ToolProficiency  map[string]float64 `mapstructure:"tool_proficiency"`
	CompetencyScores map[string]float64 `mapstructure:"competency_scores"`

	ToolWeights       map[string]float64   `mapstructure:"tool_weights"`
	CompetencyWeights map[string]int       `mapstructure:"competency_weights"`
	BlockWeights      *schema.BlockWeights `mapstructure:"block_weights"`

	CultureAdherence string         `mapstructure:"culture_adherence"`
	Goals            []evalFileGoal `mapstructure:"goals"`
	Plan             evalFilePlan   `mapstructure:"plan"`
	FinalFeedback    string         `mapstructure:"final_feedback"`
	SuggestPIP       bool           `mapstructure:"suggest_pip"`
	SuggestHighlight bool           `mapstructure:"suggest_highlight"`
	NextReview       string         `mapstructure:"next_review"`
	ShowGoals        bool           `mapstructure:"show_goals"`
}

// loadEvaluationFile reads the evaluation YAML through a dedicated viper
// instance so it never collides with the CLI configuration.
func loadEvaluationFile(path string) (*evalFileInput, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read evaluation file %q: %w", path, err)
	}

	in := &evalFileInput{}
	if err := v.Unmarshal(in); err != nil {
		return nil, fmt.Errorf("failed to parse evaluation file %q: %w", path, err)
	}
	if strings.TrimSpace(in.Technician) == "" {
		return nil, fmt.Errorf("evaluation file %q does not name a technician", path)
	}
	return in, nil
}

// buildScoreInputs layers weights as defaults, then preset, then the
// evaluation file's own overrides.
func buildScoreInputs(in *evalFileInput, presetName string) (schema.ScoreInputs, error) {
	inputs := schema.ScoreInputs{
		ToolProficiency:   in.ToolProficiency,
		CompetencyScores:  in.CompetencyScores,
		ToolWeights:       schema.GetDefaultToolWeights(),
		CompetencyWeights: schema.GetDefaultCompetencyWeights(),
		BlockWeights:      schema.GetDefaultBlockWeights(),
	}

	if presetName != "" {
		preset, err := storeManager.Presets().GetPreset(presetName)
		if err != nil {
			return inputs, fmt.Errorf("failed to load preset %q: %w", presetName, err)
		}
		if preset == nil {
			return inputs, fmt.Errorf("no preset named %q", presetName)
		}
		inputs.ToolWeights = preset.ToolWeights
		inputs.CompetencyWeights = preset.CompetencyWeights
		inputs.BlockWeights = preset.BlockWeights
	}

	if len(in.ToolWeights) > 0 {
		inputs.ToolWeights = in.ToolWeights
	}
	if len(in.CompetencyWeights) > 0 {
		inputs.CompetencyWeights = in.CompetencyWeights
	}
	if in.BlockWeights != nil {
		inputs.BlockWeights = *in.BlockWeights
	}
	return inputs, nil
}

func runEvaluate() error {
	if cfg.EvalFile == "" {
		return fmt.Errorf("--eval-file is required")
	}
	in, err := loadEvaluationFile(cfg.EvalFile)
	if err != nil {
		return err
	}

	inputs, err := buildScoreInputs(in, cfg.Preset)
	if err != nil {
		return err
	}
	card, err := score.Compute(inputs)
	if err != nil {
		return err
	}

	goals := make([]schema.Goal, 0, len(in.Goals))
	for _, g := range in.Goals {
		goals = append(goals, schema.Goal{
			Title:            g.Title,
			Description:      g.Description,
			Indicator:        g.Indicator,
			Owner:            g.Owner,
			DueDate:          g.DueDate,
			IsCourse:         g.IsCourse,
			DetectedAsCourse: score.LooksLikeCourse(g.Title + " " + g.Description),
			ShowToTechnician: g.ShowToTechnician,
		})
	}

	rec := &schema.EvaluationRecord{
		SavedAt:          time.Now().UTC(),
		Evaluator:        cfg.Evaluator,
		Technician:       in.Technician,
		ReferencePeriod:  in.ReferencePeriod,
		Inputs:           inputs,
		ProficiencyIndex: card.ProficiencyIndex,
		CompetencyIndex:  card.CompetencyIndex,
		FinalGrade:       card.FinalGrade,
		Grade:            card.Grade,
		Stars:            card.Stars,
		CultureAdherence: in.CultureAdherence,
		Goals:            goals,
		Plan: schema.DevelopmentPlan{
			Courses:          in.Plan.Courses,
			Strengths:        in.Plan.Strengths,
			Improvements:     in.Plan.Improvements,
			ShowCourses:      in.Plan.ShowCourses,
			ShowStrengths:    in.Plan.ShowStrengths,
			ShowImprovements: in.Plan.ShowImprovements,
		},
		FinalFeedback:    in.FinalFeedback,
		SuggestPIP:       in.SuggestPIP,
		SuggestHighlight: in.SuggestHighlight,
		NextReview:       in.NextReview,
		ShowGoals:        in.ShowGoals,
	}
	if cfg.HasPeriod {
		rec.PeriodStart = cfg.Period.Start.Format(contract.DateFormat)
		rec.PeriodEnd = cfg.Period.End.Format(contract.DateFormat)
	}

	if cfg.InputFile != "" {
		ds, err := core.LoadDataset(cfg.InputFile, periodOrNil())
		if err != nil {
			return err
		}
		res, err := resolveAgainst(in.Technician, ds)
		if err != nil {
			return err
		}
		if res.Method == match.NoMatch {
			fmt.Fprintf(os.Stderr, "⚠️  No ticket activity found for %q; saving without indicators\n", in.Technician)
		} else {
			rec.Indicators = res.Bucket.Stats
			rec.ResolvedLabel = res.Bucket.Label
		}
	}

	if err := storeManager.Evaluations().SaveRecord(rec); err != nil {
		return err
	}

	label := string(rec.Grade)
	if cfg.UseColors {
		label = contract.GetColorGradeLabel(rec.Grade)
	}
	fmt.Printf("Saved evaluation for %s (%s)\n", rec.Technician, rec.ReferencePeriod)
	fmt.Printf("  Proficiency: %.1f  Competency: %.1f\n", rec.ProficiencyIndex, rec.CompetencyIndex)
	fmt.Printf("  Final grade: %.1f  %s  %s\n", rec.FinalGrade, label, schema.StarString(rec.Stars))
	if rec.ResolvedLabel != "" {
		fmt.Printf("  Indicators from %q (%d tickets)\n", rec.ResolvedLabel, rec.Indicators.Count)
	}
	return nil
}
