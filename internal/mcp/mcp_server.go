// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/novetech/deskeval/internal/contract"
)

// NewMCPServer initializes and configures the deskeval MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.StoreManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Deskeval Evaluation Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: get_kpi_report ---
	s.AddTool(mcp.NewTool("get_kpi_report",
		mcp.WithDescription("Aggregate a helpdesk ticket export into ranked technician KPIs."),
		mcp.WithString("input_file", mcp.Description("Path to the ticket export CSV."), mcp.Required()),
		mcp.WithString("start", mcp.Description("Reference period start date (YYYY-MM-DD).")),
		mcp.WithString("end", mcp.Description("Reference period end date (YYYY-MM-DD).")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of technicians returned.")),
	), h.handleGetKPIReport)

	// --- 2. Tool: resolve_technician ---
	s.AddTool(mcp.NewTool("resolve_technician",
		mcp.WithDescription("Match a technician name or login against the responsible labels of a ticket export."),
		mcp.WithString("input_file", mcp.Description("Path to the ticket export CSV."), mcp.Required()),
		mcp.WithString("identifier", mcp.Description("Technician name, login or email to resolve."), mcp.Required()),
	), h.handleResolveTechnician)

	// --- 3. Tool: score_preview ---
	s.AddTool(mcp.NewTool("score_preview",
		mcp.WithDescription("Preview the final grade, band and stars for given proficiency and competency indices."),
		mcp.WithNumber("proficiency_index", mcp.Description("Weighted tool proficiency index in [0,100]."), mcp.Required()),
		mcp.WithNumber("competency_index", mcp.Description("Weighted competency index in [0,10]."), mcp.Required()),
		mcp.WithNumber("proficiency_weight", mcp.Description("Block weight of the proficiency index (default 50).")),
		mcp.WithNumber("competency_weight", mcp.Description("Block weight of the competency index (default 50).")),
	), h.handleScorePreview)

	return s
}

// StartMCPServer starts the deskeval MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.StoreManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
