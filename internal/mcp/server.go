// Package mcp exposes the diagnosis engine to reasoning agents as MCP
// tools over stdio. The log corpus, the indicator extractors, and the
// classifier are each a tool; alongside them the server carries the
// deep-agent session surface (todo plan, virtual file store, event log)
// so an agent can manage its own context across a multi-step analysis.
package mcp

import (
	"context"
	"fmt"

	"sparkrca/internal/classify"
	"sparkrca/internal/indicators"
	"sparkrca/internal/logcorpus"
	"sparkrca/internal/logging"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the MCP SDK server around an injected log corpus and a
// per-connection session.
type Server struct {
	MCPServer *sdkmcp.Server

	corpus  *logcorpus.Corpus
	session *Session
}

// NewServer creates an MCP server over the given corpus. A nil corpus
// falls back to the embedded fixtures.
func NewServer(corpus *logcorpus.Corpus) *Server {
	if corpus == nil {
		corpus = logcorpus.Default()
	}
	s := &Server{
		corpus:  corpus,
		session: NewSession(),
	}
	s.MCPServer = sdkmcp.NewServer(
		&sdkmcp.Implementation{Name: "sparkrca", Version: "dev"},
		nil,
	)
	s.registerTools()
	return s
}

func (s *Server) registerTools() {
	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "get_log",
		Description: "Fetch a corpus log by flat key, e.g. 'oom_driver' or 'gc_executor'. Unknown keys return a 'not found' text, not an error.",
	}, s.handleGetLog)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "get_driver_log",
		Description: "Fetch the Spark driver log for a failure scenario (oom, gc, mixed).",
	}, s.handleGetDriverLog)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "get_executor_log",
		Description: "Fetch the Spark executor log for a specific executor and scenario.",
	}, s.handleGetExecutorLog)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "search_gc_indicators",
		Description: "Extract GC pressure indicators (Full GC counts, pause stats, heartbeat timeout, overhead limit) from log text.",
	}, s.handleSearchGC)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "search_oom_indicators",
		Description: "Extract OOM indicators (heap space OOM, container kill, memory limits, free-memory exhaustion) from log text.",
	}, s.handleSearchOOM)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "analyze_failure_pattern",
		Description: "Classify an executor loss as pure_oom, pure_gc, mixed_gc_oom, or unknown from the driver and executor logs. Deterministic; returns evidence and recommendations.",
	}, s.handleAnalyze)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "write_todos",
		Description: "Replace the session todo plan. Each item has content and a status: pending, in_progress, or completed.",
	}, s.handleWriteTodos)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "read_todos",
		Description: "Read the current session todo plan.",
	}, s.handleReadTodos)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "write_file",
		Description: "Write a file into the session's virtual file store (in-memory scratch space for intermediate notes).",
	}, s.handleWriteFile)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "read_file",
		Description: "Read a file from the session's virtual file store. Missing files return a 'not found' text, not an error.",
	}, s.handleReadFile)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "ls",
		Description: "List the files in the session's virtual file store.",
	}, s.handleLs)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "get_events",
		Description: "Read the session event log. Returns all events, or events since a given index.",
	}, s.handleGetEvents)
}

// --- Tool input/output types ---

type getLogInput struct {
	Key string `json:"key" jsonschema:"flat log key: <scenario>_driver or <scenario>_executor"`
}

type logOutput struct {
	Log string `json:"log"`
}

type getDriverLogInput struct {
	Scenario string `json:"scenario" jsonschema:"failure scenario (oom, gc, mixed)"`
}

type getExecutorLogInput struct {
	ExecutorID int    `json:"executor_id" jsonschema:"executor ID as reported by the driver"`
	Scenario   string `json:"scenario" jsonschema:"failure scenario (oom, gc, mixed)"`
}

type searchInput struct {
	LogText string `json:"log_text" jsonschema:"raw log text to scan"`
}

type analyzeInput struct {
	DriverLog   string `json:"driver_log" jsonschema:"full driver log text"`
	ExecutorLog string `json:"executor_log" jsonschema:"full executor log text"`
}

type writeTodosInput struct {
	Todos []Todo `json:"todos" jsonschema:"the full todo plan; replaces any existing plan"`
}

type writeTodosOutput struct {
	OK    string `json:"ok"`
	Count int    `json:"count"`
}

type readTodosInput struct{}

type readTodosOutput struct {
	Todos []Todo `json:"todos"`
}

type writeFileInput struct {
	FileName string `json:"file_name" jsonschema:"virtual file name"`
	Content  string `json:"content" jsonschema:"file content"`
}

type writeFileOutput struct {
	OK string `json:"ok"`
}

type readFileInput struct {
	FileName string `json:"file_name" jsonschema:"virtual file name"`
}

type readFileOutput struct {
	Content string `json:"content"`
}

type lsInput struct{}

type lsOutput struct {
	Files []string `json:"files"`
}

type getEventsInput struct {
	Since int `json:"since,omitempty" jsonschema:"return events from this index onward (0-based)"`
}

type getEventsOutput struct {
	Events []Event `json:"events"`
	Total  int     `json:"total"`
}

// --- Tool handlers ---

func (s *Server) handleGetLog(ctx context.Context, _ *sdkmcp.CallToolRequest, input getLogInput) (*sdkmcp.CallToolResult, logOutput, error) {
	log := s.corpus.GetLog(input.Key)
	s.session.Bus.Emit("log_fetched", "get_log", map[string]string{"key": input.Key})
	return nil, logOutput{Log: log}, nil
}

func (s *Server) handleGetDriverLog(ctx context.Context, _ *sdkmcp.CallToolRequest, input getDriverLogInput) (*sdkmcp.CallToolResult, logOutput, error) {
	log := s.corpus.DriverLog(input.Scenario)
	s.session.Bus.Emit("log_fetched", "get_driver_log", map[string]string{"scenario": input.Scenario})
	return nil, logOutput{Log: log}, nil
}

func (s *Server) handleGetExecutorLog(ctx context.Context, _ *sdkmcp.CallToolRequest, input getExecutorLogInput) (*sdkmcp.CallToolResult, logOutput, error) {
	log := s.corpus.ExecutorLog(input.ExecutorID, input.Scenario)
	s.session.Bus.Emit("log_fetched", "get_executor_log", map[string]string{
		"scenario":    input.Scenario,
		"executor_id": fmt.Sprintf("%d", input.ExecutorID),
	})
	return nil, logOutput{Log: log}, nil
}

func (s *Server) handleSearchGC(ctx context.Context, _ *sdkmcp.CallToolRequest, input searchInput) (*sdkmcp.CallToolResult, indicators.GCIndicators, error) {
	return nil, indicators.SearchGC(input.LogText), nil
}

func (s *Server) handleSearchOOM(ctx context.Context, _ *sdkmcp.CallToolRequest, input searchInput) (*sdkmcp.CallToolResult, indicators.OOMIndicators, error) {
	return nil, indicators.SearchOOM(input.LogText), nil
}

func (s *Server) handleAnalyze(ctx context.Context, _ *sdkmcp.CallToolRequest, input analyzeInput) (*sdkmcp.CallToolResult, classify.Diagnosis, error) {
	d := classify.Classify(input.DriverLog, input.ExecutorLog)
	s.session.Bus.Emit("diagnosis", "analyze_failure_pattern", map[string]string{
		"failure_type": string(d.FailureType),
		"confidence":   string(d.Confidence),
	})
	logging.New("mcp").Info("classified failure",
		"failure_type", d.FailureType, "confidence", d.Confidence, "evidence_count", len(d.Evidence))
	return nil, d, nil
}

func (s *Server) handleWriteTodos(ctx context.Context, _ *sdkmcp.CallToolRequest, input writeTodosInput) (*sdkmcp.CallToolResult, writeTodosOutput, error) {
	if err := s.session.SetTodos(input.Todos); err != nil {
		return nil, writeTodosOutput{}, fmt.Errorf("write_todos: %w", err)
	}
	s.session.Bus.Emit("todos_updated", "write_todos", map[string]string{
		"count": fmt.Sprintf("%d", len(input.Todos)),
	})
	return nil, writeTodosOutput{OK: "todos updated", Count: len(input.Todos)}, nil
}

func (s *Server) handleReadTodos(ctx context.Context, _ *sdkmcp.CallToolRequest, _ readTodosInput) (*sdkmcp.CallToolResult, readTodosOutput, error) {
	return nil, readTodosOutput{Todos: s.session.Todos()}, nil
}

func (s *Server) handleWriteFile(ctx context.Context, _ *sdkmcp.CallToolRequest, input writeFileInput) (*sdkmcp.CallToolResult, writeFileOutput, error) {
	if input.FileName == "" {
		return nil, writeFileOutput{}, fmt.Errorf("file_name is required")
	}
	s.session.WriteFile(input.FileName, input.Content)
	s.session.Bus.Emit("file_written", "write_file", map[string]string{
		"name":  input.FileName,
		"bytes": fmt.Sprintf("%d", len(input.Content)),
	})
	return nil, writeFileOutput{OK: fmt.Sprintf("wrote %s", input.FileName)}, nil
}

func (s *Server) handleReadFile(ctx context.Context, _ *sdkmcp.CallToolRequest, input readFileInput) (*sdkmcp.CallToolResult, readFileOutput, error) {
	content, ok := s.session.ReadFile(input.FileName)
	if !ok {
		// Mirrors the corpus contract: missing entries are an inspectable
		// text, so the agent can notice and re-plan instead of crashing.
		content = fmt.Sprintf("Error: file %q not found (files: %v)", input.FileName, s.session.ListFiles())
	}
	return nil, readFileOutput{Content: content}, nil
}

func (s *Server) handleLs(ctx context.Context, _ *sdkmcp.CallToolRequest, _ lsInput) (*sdkmcp.CallToolResult, lsOutput, error) {
	return nil, lsOutput{Files: s.session.ListFiles()}, nil
}

func (s *Server) handleGetEvents(ctx context.Context, _ *sdkmcp.CallToolRequest, input getEventsInput) (*sdkmcp.CallToolResult, getEventsOutput, error) {
	return nil, getEventsOutput{
		Events: s.session.Bus.Since(input.Since),
		Total:  s.session.Bus.Len(),
	}, nil
}
