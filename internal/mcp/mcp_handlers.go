package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/novetech/deskeval/core"
	"github.com/novetech/deskeval/core/match"
	"github.com/novetech/deskeval/core/score"
	"github.com/novetech/deskeval/internal/contract"
	"github.com/novetech/deskeval/schema"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.StoreManager
}

// parsePeriod turns the optional start/end arguments into a period window.
func parsePeriod(start, end string) (*schema.PeriodWindow, error) {
	if start == "" && end == "" {
		return nil, nil
	}
	if start == "" || end == "" {
		return nil, fmt.Errorf("start and end must be provided together")
	}
	startTime, err := time.Parse(contract.DateFormat, start)
	if err != nil {
		return nil, fmt.Errorf("invalid start date %q: %w", start, err)
	}
	endTime, err := time.Parse(contract.DateFormat, end)
	if err != nil {
		return nil, fmt.Errorf("invalid end date %q: %w", end, err)
	}
	return &schema.PeriodWindow{Start: startTime, End: endTime}, nil
}

func (h *toolHandler) handleGetKPIReport(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	inputFile := request.GetString("input_file", "")
	if inputFile == "" {
		return mcp.NewToolResultError("input_file is required"), nil
	}

	period, err := parsePeriod(request.GetString("start", ""), request.GetString("end", ""))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid period: %v", err)), nil
	}

	ds, err := core.LoadDataset(inputFile, period)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load dataset: %v", err)), nil
	}

	report, _ := core.BuildReport(ds, period)
	limit := request.GetInt("limit", h.baseCfg.Limit)
	if limit > 0 && len(report.Buckets) > limit {
		report.Buckets = report.Buckets[:limit]
	}

	jsonData, _ := json.MarshalIndent(report, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

// resolutionResult is the JSON shape returned by resolve_technician.
type resolutionResult struct {
	Method      match.MatchMethod  `json:"method"`
	Label       string             `json:"label,omitempty"`
	Similarity  float64            `json:"similarity,omitempty"`
	Indicators  schema.KPISnapshot `json:"indicators"`
	Suggestions []match.Candidate  `json:"suggestions,omitempty"`
}

func (h *toolHandler) handleResolveTechnician(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	inputFile := request.GetString("input_file", "")
	if inputFile == "" {
		return mcp.NewToolResultError("input_file is required"), nil
	}
	identifier := request.GetString("identifier", "")
	if identifier == "" {
		return mcp.NewToolResultError("identifier is required"), nil
	}

	ds, err := core.LoadDataset(inputFile, nil)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load dataset: %v", err)), nil
	}

	var aliases map[string]string
	if h.mgr != nil {
		aliases, err = h.mgr.Aliases().ListAliases()
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to load aliases: %v", err)), nil
		}
	}

	acct := schema.TechnicianAccount{Name: identifier, Login: identifier}
	res := core.ResolveTechnician(acct, ds, aliases)

	result := resolutionResult{
		Method:     res.Method,
		Label:      res.Bucket.Label,
		Similarity: res.Similarity,
		Indicators: res.Bucket.Stats,
	}
	if res.Method == match.NoMatch {
		_, ix := core.BuildReport(ds, nil)
		result.Suggestions = match.Suggestions(acct, ix, 3)
	}

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

// scorePreviewResult is the JSON shape returned by score_preview.
type scorePreviewResult struct {
	FinalGrade float64           `json:"final_grade"`
	Grade      schema.GradeLabel `json:"grade"`
	Stars      int               `json:"stars"`
	StarString string            `json:"star_string"`
}

func (h *toolHandler) handleScorePreview(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	proficiency := request.GetFloat("proficiency_index", 0)
	competency := request.GetFloat("competency_index", 0)
	bw := schema.BlockWeights{
		Proficiency: request.GetInt("proficiency_weight", 50),
		Competency:  request.GetInt("competency_weight", 50),
	}

	if err := score.ValidateBlockWeights(bw); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid block weights: %v", err)), nil
	}
	if proficiency < 0 || proficiency > 100 {
		return mcp.NewToolResultError("proficiency_index must be in [0,100]"), nil
	}
	if competency < 0 || competency > 10 {
		return mcp.NewToolResultError("competency_index must be in [0,10]"), nil
	}

	final := score.FinalGrade(proficiency, competency, bw)
	result := scorePreviewResult{
		FinalGrade: final,
		Grade:      schema.GradeForScore(&final),
		Stars:      schema.StarsForScore(&final),
		StarString: schema.StarString(schema.StarsForScore(&final)),
	}

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
