// Package mcp provides the MCP (Model Context Protocol) server implementation.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/xvierd/pomo-cli/internal/domain"
	"github.com/xvierd/pomo-cli/internal/ports"
)

// Server implements the MCP server using mark3labs/mcp-go.
type Server struct {
	server   *server.MCPServer
	provider ports.TaskProvider
	stdin    io.Reader
	stdout   io.Writer
	ctx      context.Context
	cancel   context.CancelFunc
}

// NewServer creates a new MCP server instance.
func NewServer(provider ports.TaskProvider, version string) *Server {
	s := &Server{
		provider: provider,
		stdin:    os.Stdin,
		stdout:   os.Stdout,
	}

	s.server = server.NewMCPServer(
		"pomo",
		version,
		server.WithLogging(),
	)

	s.registerTools()

	return s
}

// registerTools registers all available MCP tools.
func (s *Server) registerTools() {
	// Tool: list_tasks
	listTasksTool := mcp.NewTool(
		"list_tasks",
		mcp.WithDescription("List the pomodoro task list with 1-based positions, optionally fuzzy filtered by title"),
		mcp.WithString(
			"query",
			mcp.Description("Optional fuzzy search over task titles"),
		),
	)
	s.server.AddTool(listTasksTool, s.handleListTasks)

	// Tool: add_task
	addTaskTool := mcp.NewTool(
		"add_task",
		mcp.WithDescription("Append a task to the end of the task list"),
		mcp.WithString(
			"title",
			mcp.Required(),
			mcp.Description("The title of the task"),
		),
		mcp.WithNumber(
			"pomodoros_expected",
			mcp.Description("How many pomodoros the task should take (default: 1)"),
		),
	)
	s.server.AddTool(addTaskTool, s.handleAddTask)

	// Tool: toggle_task
	toggleTaskTool := mcp.NewTool(
		"toggle_task",
		mcp.WithDescription("Mark a task done, or not done if it already is"),
		mcp.WithNumber(
			"position",
			mcp.Required(),
			mcp.Description("1-based position of the task in the list"),
		),
	)
	s.server.AddTool(toggleTaskTool, s.handleToggleTask)

	// Tool: adjust_pomodoros
	adjustTool := mcp.NewTool(
		"adjust_pomodoros",
		mcp.WithDescription("Add or remove finished pomodoros on a task; the count never drops below zero"),
		mcp.WithNumber(
			"position",
			mcp.Required(),
			mcp.Description("1-based position of the task in the list"),
		),
		mcp.WithNumber(
			"delta",
			mcp.Required(),
			mcp.Description("Pomodoros to add, negative to remove"),
		),
	)
	s.server.AddTool(adjustTool, s.handleAdjustPomodoros)
}

// Start serves MCP requests over stdio until ctx is cancelled or stdin closes.
func (s *Server) Start(ctx context.Context) error {
	s.ctx, s.cancel = context.WithCancel(ctx)
	defer s.cancel()

	stdio := server.NewStdioServer(s.server)
	return stdio.Listen(s.ctx, s.stdin, s.stdout)
}

// Stop gracefully shuts down the server.
func (s *Server) Stop() error {
	if s.cancel != nil {
		s.cancel()
	}
	return nil
}

// IsRunning returns true if the server is active.
func (s *Server) IsRunning() bool {
	if s.ctx == nil {
		return false
	}
	return s.ctx.Err() == nil
}

// Ensure Server implements ports.MCPHandler.
var _ ports.MCPHandler = (*Server)(nil)

// taskJSON is the wire shape of one task.
func taskJSON(t domain.IndexedTask) map[string]interface{} {
	return map[string]interface{}{
		"position":            t.Position,
		"title":               t.Title,
		"pomodoros_expected":  t.PomodorosExpected,
		"pomodoros_completed": t.PomodorosCompleted,
		"completed":           t.Completed,
	}
}

func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

// handleListTasks handles the list_tasks tool.
func (s *Server) handleListTasks(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query := request.GetString("query", "")

	tasks, err := s.provider.ListTasks(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	items := make([]map[string]interface{}, 0, len(tasks))
	for _, task := range tasks {
		items = append(items, taskJSON(task))
	}

	result := map[string]interface{}{
		"tasks":       items,
		"total_count": len(items),
	}
	if query != "" {
		result["query"] = query
	}
	return jsonResult(result)
}

// handleAddTask handles the add_task tool.
func (s *Server) handleAddTask(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title, err := request.RequireString("title")
	if err != nil {
		return mcp.NewToolResultError("title is required: " + err.Error()), nil
	}
	expected, err := wholeNumber(request.GetFloat("pomodoros_expected", 1))
	if err != nil {
		return mcp.NewToolResultError("pomodoros_expected: " + err.Error()), nil
	}

	task, err := s.provider.AddTask(ctx, title, expected)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to add task: %v", err)), nil
	}
	return jsonResult(taskJSON(task))
}

// handleToggleTask handles the toggle_task tool.
func (s *Server) handleToggleTask(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	position, err := requireInt(request, "position")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	task, err := s.provider.ToggleTask(ctx, position)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to toggle task: %v", err)), nil
	}
	return jsonResult(taskJSON(task))
}

// handleAdjustPomodoros handles the adjust_pomodoros tool.
func (s *Server) handleAdjustPomodoros(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	position, err := requireInt(request, "position")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	delta, err := requireInt(request, "delta")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	task, err := s.provider.AdjustPomodoros(ctx, position, delta)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to adjust pomodoros: %v", err)), nil
	}
	return jsonResult(taskJSON(task))
}

// maxToolInt bounds integer tool arguments.
const maxToolInt = math.MaxInt32

// requireInt reads a required whole-number argument.
func requireInt(request mcp.CallToolRequest, name string) (int, error) {
	f, err := request.RequireFloat(name)
	if err != nil {
		return 0, fmt.Errorf("%s is required: %w", name, err)
	}
	n, err := wholeNumber(f)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	return n, nil
}

// wholeNumber converts a JSON number to an int, rejecting fractions,
// NaN, infinities and values beyond maxToolInt.
func wholeNumber(f float64) (int, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, fmt.Errorf("%v is not a whole number", f)
	}
	if math.Abs(f) > maxToolInt {
		return 0, fmt.Errorf("%v is out of range", f)
	}
	return int(f), nil
}
