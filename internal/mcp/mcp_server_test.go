package mcp_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/novetech/deskeval/internal/contract"
	mcp_internal "github.com/novetech/deskeval/internal/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMCPServerHandlers_ValidationErrors(t *testing.T) {
	baseCfg := &contract.Config{Limit: contract.DefaultResultLimit}

	// A nil manager is fine here: validation errors fire before any store access
	var mgr contract.StoreManager
	s := mcp_internal.NewMCPServer(baseCfg, mgr)

	ctx := context.Background()

	t.Run("get_kpi_report missing input_file", func(t *testing.T) {
		tool := s.GetTool("get_kpi_report")
		require.NotNil(t, tool, "Tool get_kpi_report should exist")

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name:      "get_kpi_report",
				Arguments: map[string]any{},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
		assert.True(t, res.IsError, "The response should indicate an error state")
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "input_file is required")
	})

	t.Run("get_kpi_report inverted period", func(t *testing.T) {
		tool := s.GetTool("get_kpi_report")
		require.NotNil(t, tool)

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "get_kpi_report",
				Arguments: map[string]any{
					"input_file": writeSampleCSV(t),
					"start":      "2024-01-10",
					"end":        "2024-01-05",
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		assert.True(t, res.IsError, "The response should indicate an error state")
	})

	t.Run("score_preview bad block weights", func(t *testing.T) {
		tool := s.GetTool("score_preview")
		require.NotNil(t, tool)

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "score_preview",
				Arguments: map[string]any{
					"proficiency_index":  80.0,
					"competency_index":   6.0,
					"proficiency_weight": 70.0,
					"competency_weight":  40.0, // sums to 110
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "block weights")
	})
}

func TestMCPServerScorePreview(t *testing.T) {
	baseCfg := &contract.Config{Limit: contract.DefaultResultLimit}
	var mgr contract.StoreManager
	s := mcp_internal.NewMCPServer(baseCfg, mgr)

	tool := s.GetTool("score_preview")
	require.NotNil(t, tool)

	req := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name: "score_preview",
			Arguments: map[string]any{
				"proficiency_index":  80.0,
				"competency_index":   6.0,
				"proficiency_weight": 70.0,
				"competency_weight":  30.0,
			},
		},
	}

	res, err := tool.Handler(context.Background(), req)
	require.NoError(t, err)
	require.False(t, res.IsError)

	var result struct {
		FinalGrade float64 `json:"final_grade"`
		Grade      string  `json:"grade"`
		Stars      int     `json:"stars"`
	}
	require.NoError(t, json.Unmarshal([]byte(res.Content[0].(mcp.TextContent).Text), &result))
	assert.InDelta(t, 7.4, result.FinalGrade, 1e-9)
	assert.Equal(t, "Good", result.Grade)
	assert.Equal(t, 3, result.Stars)
}

func TestMCPServerResolveTechnician(t *testing.T) {
	baseCfg := &contract.Config{Limit: contract.DefaultResultLimit}
	var mgr contract.StoreManager
	s := mcp_internal.NewMCPServer(baseCfg, mgr)

	tool := s.GetTool("resolve_technician")
	require.NotNil(t, tool)

	req := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name: "resolve_technician",
			Arguments: map[string]any{
				"input_file": writeSampleCSV(t),
				"identifier": "Maria Silva",
			},
		},
	}

	res, err := tool.Handler(context.Background(), req)
	require.NoError(t, err)
	require.False(t, res.IsError)

	var result struct {
		Method string `json:"method"`
		Label  string `json:"label"`
	}
	require.NoError(t, json.Unmarshal([]byte(res.Content[0].(mcp.TextContent).Text), &result))
	assert.Equal(t, "exact", result.Method)
	assert.Equal(t, "Maria Silva", result.Label)
}

func writeSampleCSV(t *testing.T) string {
	t.Helper()
	const sample = `responsible,waiting_time,duration,rating,created_at
Maria Silva,01:40,02:00,4.0,2024-01-10 09:00:00
Pedro Souza,00:30,01:00,3.0,2024-02-01 14:00:00
`
	path := filepath.Join(t.TempDir(), "tickets.csv")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))
	return path
}
