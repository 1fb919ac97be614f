package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xvierd/pomo-cli/internal/domain"
)

// mockTaskProvider is a mock implementation of ports.TaskProvider for testing.
type mockTaskProvider struct {
	tasks     []domain.Task
	lastQuery string
}

func (m *mockTaskProvider) ListTasks(ctx context.Context, query string) ([]domain.IndexedTask, error) {
	m.lastQuery = query
	out := make([]domain.IndexedTask, len(m.tasks))
	for i, t := range m.tasks {
		out[i] = domain.IndexedTask{Position: i + 1, Task: t}
	}
	return out, nil
}

func (m *mockTaskProvider) AddTask(ctx context.Context, title string, expected int) (domain.IndexedTask, error) {
	task, err := domain.NewTask(title, expected)
	if err != nil {
		return domain.IndexedTask{}, err
	}
	m.tasks = append(m.tasks, task)
	return domain.IndexedTask{Position: len(m.tasks), Task: task}, nil
}

func (m *mockTaskProvider) at(position int) (*domain.Task, error) {
	if position < 1 || position > len(m.tasks) {
		return nil, fmt.Errorf("position %d: %w", position, domain.ErrTaskNotFound)
	}
	return &m.tasks[position-1], nil
}

func (m *mockTaskProvider) ToggleTask(ctx context.Context, position int) (domain.IndexedTask, error) {
	task, err := m.at(position)
	if err != nil {
		return domain.IndexedTask{}, err
	}
	task.ToggleComplete()
	return domain.IndexedTask{Position: position, Task: *task}, nil
}

func (m *mockTaskProvider) AdjustPomodoros(ctx context.Context, position, delta int) (domain.IndexedTask, error) {
	task, err := m.at(position)
	if err != nil {
		return domain.IndexedTask{}, err
	}
	task.PomodorosCompleted = max(task.PomodorosCompleted+delta, 0)
	return domain.IndexedTask{Position: position, Task: *task}, nil
}

func callRequest(args map[string]interface{}) mcp.CallToolRequest {
	request := mcp.CallToolRequest{}
	request.Params.Arguments = args
	return request
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, result)
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content")
	return text.Text
}

func decodeTask(t *testing.T, result *mcp.CallToolResult) map[string]interface{} {
	t.Helper()
	var task map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &task))
	return task
}

func TestNewServer(t *testing.T) {
	mock := &mockTaskProvider{}
	server := NewServer(mock, "test")

	require.NotNil(t, server)
	assert.Equal(t, mock, server.provider)
	assert.NotNil(t, server.server)
	assert.False(t, server.IsRunning(), "IsRunning() should return false before Start()")
}

func TestServer_handleListTasks(t *testing.T) {
	mock := &mockTaskProvider{tasks: []domain.Task{
		{Title: "Write report", PomodorosExpected: 3},
		{Title: "Email", PomodorosExpected: 1, Completed: true},
	}}
	server := NewServer(mock, "test")

	result, err := server.handleListTasks(context.Background(), callRequest(map[string]interface{}{"query": "rep"}))
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Equal(t, "rep", mock.lastQuery)

	var body struct {
		Tasks      []map[string]interface{} `json:"tasks"`
		TotalCount int                      `json:"total_count"`
		Query      string                   `json:"query"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &body))
	assert.Equal(t, 2, body.TotalCount)
	assert.Equal(t, "rep", body.Query)
	assert.Equal(t, float64(1), body.Tasks[0]["position"])
	assert.Equal(t, true, body.Tasks[1]["completed"])
}

func TestServer_handleListTasks_Empty(t *testing.T) {
	server := NewServer(&mockTaskProvider{}, "test")

	result, err := server.handleListTasks(context.Background(), mcp.CallToolRequest{})
	require.NoError(t, err)
	assert.Contains(t, resultText(t, result), `"total_count": 0`)
}

func TestServer_handleAddTask(t *testing.T) {
	mock := &mockTaskProvider{}
	server := NewServer(mock, "test")

	result, err := server.handleAddTask(context.Background(), callRequest(map[string]interface{}{
		"title":              "Plan sprint",
		"pomodoros_expected": float64(4),
	}))
	require.NoError(t, err)
	assert.False(t, result.IsError)

	task := decodeTask(t, result)
	assert.Equal(t, "Plan sprint", task["title"])
	assert.Equal(t, float64(4), task["pomodoros_expected"])
	assert.Equal(t, float64(1), task["position"])
	require.Len(t, mock.tasks, 1)
}

func TestServer_handleAddTask_DefaultsToOnePomodoro(t *testing.T) {
	mock := &mockTaskProvider{}
	server := NewServer(mock, "test")

	_, err := server.handleAddTask(context.Background(), callRequest(map[string]interface{}{"title": "Read"}))
	require.NoError(t, err)
	require.Len(t, mock.tasks, 1)
	assert.Equal(t, 1, mock.tasks[0].PomodorosExpected)
}

func TestServer_handleAddTask_Errors(t *testing.T) {
	server := NewServer(&mockTaskProvider{}, "test")

	result, err := server.handleAddTask(context.Background(), mcp.CallToolRequest{})
	require.NoError(t, err)
	assert.True(t, result.IsError, "missing title should be a tool error")

	result, err = server.handleAddTask(context.Background(), callRequest(map[string]interface{}{"title": ""}))
	require.NoError(t, err)
	assert.True(t, result.IsError, "empty title should be a tool error")
}

func TestServer_handleToggleTask(t *testing.T) {
	mock := &mockTaskProvider{tasks: []domain.Task{{Title: "Email"}}}
	server := NewServer(mock, "test")

	result, err := server.handleToggleTask(context.Background(), callRequest(map[string]interface{}{"position": float64(1)}))
	require.NoError(t, err)
	assert.Equal(t, true, decodeTask(t, result)["completed"])
	assert.True(t, mock.tasks[0].Completed)

	result, err = server.handleToggleTask(context.Background(), callRequest(map[string]interface{}{"position": float64(2)}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), domain.ErrTaskNotFound.Error())

	result, err = server.handleToggleTask(context.Background(), mcp.CallToolRequest{})
	require.NoError(t, err)
	assert.True(t, result.IsError, "missing position should be a tool error")
}

func TestServer_handleAdjustPomodoros(t *testing.T) {
	mock := &mockTaskProvider{tasks: []domain.Task{{Title: "Email", PomodorosCompleted: 1}}}
	server := NewServer(mock, "test")

	tests := []struct {
		delta float64
		want  float64
	}{
		{2, 3},
		{-1, 2},
		{-10, 0},
	}

	for _, tt := range tests {
		result, err := server.handleAdjustPomodoros(context.Background(), callRequest(map[string]interface{}{
			"position": float64(1),
			"delta":    tt.delta,
		}))
		require.NoError(t, err)
		assert.Equal(t, tt.want, decodeTask(t, result)["pomodoros_completed"], "delta %v", tt.delta)
	}

	result, err := server.handleAdjustPomodoros(context.Background(), callRequest(map[string]interface{}{"position": float64(1)}))
	require.NoError(t, err)
	assert.True(t, result.IsError, "missing delta should be a tool error")
}

func TestServer_RejectsNonIntegerArguments(t *testing.T) {
	mock := &mockTaskProvider{tasks: []domain.Task{{Title: "Email", PomodorosCompleted: 1}}}
	server := NewServer(mock, "test")

	for _, delta := range []float64{math.NaN(), math.Inf(1), math.Inf(-1), 1 << 40, -(1 << 40), 1.5} {
		result, err := server.handleAdjustPomodoros(context.Background(), callRequest(map[string]interface{}{
			"position": float64(1),
			"delta":    delta,
		}))
		require.NoError(t, err)
		assert.True(t, result.IsError, "delta %v should be a tool error", delta)
	}
	assert.Equal(t, 1, mock.tasks[0].PomodorosCompleted, "rejected deltas must not change the task")

	result, err := server.handleToggleTask(context.Background(), callRequest(map[string]interface{}{"position": math.Inf(1)}))
	require.NoError(t, err)
	assert.True(t, result.IsError)

	result, err = server.handleAddTask(context.Background(), callRequest(map[string]interface{}{
		"title":              "Read",
		"pomodoros_expected": float64(1 << 40),
	}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Len(t, mock.tasks, 1)
}

func TestServer_Stop(t *testing.T) {
	server := NewServer(&mockTaskProvider{}, "test")
	assert.NoError(t, server.Stop(), "Stop() before Start() should be a no-op")

	server.ctx, server.cancel = context.WithCancel(context.Background())
	assert.True(t, server.IsRunning())
	require.NoError(t, server.Stop())
	assert.False(t, server.IsRunning())
}
